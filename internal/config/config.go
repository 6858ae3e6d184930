package config

import (
	"errors"
	"regexp"
	"strings"

	"go.uber.org/zap/zapcore"
)

type Config struct {
	LogLevel zapcore.Level
	Hub      HubConfig  `mapstructure:"hub"`
	MQTT     MQTTConfig `mapstructure:"mqtt"`

	Poll    PollConfig `mapstructure:"poll"`
	Port    uint       `mapstructure:"port"`
	HttpLog bool       `mapstructure:"http_log"`
}

type HubConfig struct {
	Host                    string
	Username                string
	Password                string
	TimeoutMillis           uint32 `mapstructure:"timeout_millis"`
	CommandRetries          uint   `mapstructure:"command_retries"`
	CommandRetryDelayMillis uint32 `mapstructure:"command_retry_delay_millis"`
}

type PollConfig struct {
	IntervalSeconds    uint32 `mapstructure:"interval_seconds"`
	Attempts           uint   `mapstructure:"attempts"`
	AttemptDelayMillis uint32 `mapstructure:"attempt_delay_millis"`
}

type MQTTConfig struct {
	Host              string
	Port              int
	Username          string
	Password          string
	BaseTopic         string `mapstructure:"base_topic"`
	HADiscoveryEnable bool   `mapstructure:"ha_discovery_enable"`
	HADiscoveryTopic  string `mapstructure:"ha_discovery_topic"`
}

func CheckMQTTTopic(baseTopic string) (string, error) {
	// check and fix base topic
	lowerBaseTopic := strings.ToLower(baseTopic)
	baseTopicRegexp := regexp.MustCompile("^[a-z0-9_]+$")
	matches := baseTopicRegexp.FindAllStringSubmatch(lowerBaseTopic, 1)
	if len(matches) <= 0 {
		return "", errors.New("invalid topic. can only contain letters, numbers and underscores")
	}
	return lowerBaseTopic, nil
}
