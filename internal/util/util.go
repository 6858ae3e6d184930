package util

import (
	"wunda2mqtt/internal/config"

	"go.uber.org/zap"
)

func LoadTestConfig() config.Config {
	return config.Config{
		LogLevel: zap.DebugLevel,
		Hub: config.HubConfig{
			Host:                    "-.-.-.-",
			Username:                "root",
			Password:                "root",
			TimeoutMillis:           2000,
			CommandRetries:          2,
			CommandRetryDelayMillis: 100,
		},
		MQTT: config.MQTTConfig{
			Host: "localhost",
			Port: 1883,
		},
		Poll: config.PollConfig{
			IntervalSeconds:    300,
			Attempts:           2,
			AttemptDelayMillis: 100,
		},
		Port: 8080,
	}
}
