package mqtt

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"regexp"
	"strconv"
	"time"

	"wunda2mqtt/internal/config"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

const (
	MQTT_PAYLOAD_ONLINE  = "online"
	MQTT_PAYLOAD_OFFLINE = "offline"
	MQTT_PAYLOAD_ON      = "on"
	MQTT_PAYLOAD_OFF     = "off"

	COMMAND_CLIMATE_TEMPERATURE = "climate_temperature"
	COMMAND_CLIMATE_MODE        = "climate_mode"
	COMMAND_CLIMATE_PRESET      = "climate_preset"
	COMMAND_WATER_HEATER_MODE   = "water_heater_mode"
)

func OptsFromConfig(cfg *config.Config) *mqtt.ClientOptions {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("tcp://%s:%d", cfg.MQTT.Host, cfg.MQTT.Port))
	opts.SetClientID(fmt.Sprintf("wunda2mqtt_%d", rand.IntN(1000)))
	if cfg.MQTT.Username != "" && cfg.MQTT.Password != "" {
		opts.SetUsername(cfg.MQTT.Username)
		opts.SetPassword(cfg.MQTT.Password)
	}
	opts.WillEnabled = true
	opts.WillPayload = []byte(MQTT_PAYLOAD_OFFLINE)
	opts.WillRetained = true
	opts.WillTopic = bridgeStateTopic(cfg.MQTT.BaseTopic)
	opts.WillQos = 0

	return opts
}

func CreateMQTTClient(cfg *config.Config, opts *mqtt.ClientOptions, onConnectHandler func(client mqtt.Client),
	onConnectionLostHandler func(mqtt.Client, error)) *MQTTClient {
	if onConnectHandler != nil {
		opts.OnConnect = onConnectHandler
	}
	if onConnectionLostHandler != nil {
		opts.OnConnectionLost = onConnectionLostHandler
	}
	return &MQTTClient{
		client:                   mqtt.NewClient(opts),
		cfg:                      cfg.MQTT,
		climateTempCmdRegexp:     climateTemperatureCommandExtractor(cfg.MQTT.BaseTopic),
		climateModeCmdRegexp:     climateModeCommandExtractor(cfg.MQTT.BaseTopic),
		climatePresetCmdRegexp:   climatePresetCommandExtractor(cfg.MQTT.BaseTopic),
		waterHeaterModeCmdRegexp: waterHeaterModeCommandExtractor(cfg.MQTT.BaseTopic),
	}
}

type MQTTClient struct {
	client                   mqtt.Client
	cfg                      config.MQTTConfig
	climateTempCmdRegexp     *regexp.Regexp
	climateModeCmdRegexp     *regexp.Regexp
	climatePresetCmdRegexp   *regexp.Regexp
	waterHeaterModeCmdRegexp *regexp.Regexp
}

type ParsedMQTTCommand struct {
	DeviceId string
	Command  string
	Param    string
	Payload  string
}

func (c *MQTTClient) baseTopic() string {
	return c.cfg.BaseTopic
}

func (c *MQTTClient) BridgeStateTopic() string {
	return bridgeStateTopic(c.baseTopic())
}

func (c *MQTTClient) SensorStateTopic(sensorId string) string {
	return fmt.Sprintf("%s/sensor/%s/state", c.baseTopic(), sensorId)
}

func (c *MQTTClient) BinarySensorStateTopic(sensorId string) string {
	return fmt.Sprintf("%s/binary_sensor/%s/state", c.baseTopic(), sensorId)
}

func (c *MQTTClient) ClimateCurrentTemperatureTopic(roomId string) string {
	return fmt.Sprintf("%s/climate/%s/current_temperature", c.baseTopic(), roomId)
}

func (c *MQTTClient) ClimateHumidityTopic(roomId string) string {
	return fmt.Sprintf("%s/climate/%s/humidity", c.baseTopic(), roomId)
}

func (c *MQTTClient) ClimateTemperatureStateTopic(roomId string) string {
	return fmt.Sprintf("%s/climate/%s/temperature/state", c.baseTopic(), roomId)
}

func (c *MQTTClient) ClimateTemperatureCommandTopic(roomId string) string {
	return fmt.Sprintf("%s/climate/%s/temperature/set", c.baseTopic(), roomId)
}

func (c *MQTTClient) ClimateModeStateTopic(roomId string) string {
	return fmt.Sprintf("%s/climate/%s/mode/state", c.baseTopic(), roomId)
}

func (c *MQTTClient) ClimateModeCommandTopic(roomId string) string {
	return fmt.Sprintf("%s/climate/%s/mode/set", c.baseTopic(), roomId)
}

func (c *MQTTClient) ClimateActionTopic(roomId string) string {
	return fmt.Sprintf("%s/climate/%s/action", c.baseTopic(), roomId)
}

func (c *MQTTClient) ClimatePresetStateTopic(roomId string) string {
	return fmt.Sprintf("%s/climate/%s/preset/state", c.baseTopic(), roomId)
}

func (c *MQTTClient) ClimatePresetCommandTopic(roomId string) string {
	return fmt.Sprintf("%s/climate/%s/preset/set", c.baseTopic(), roomId)
}

func (c *MQTTClient) WaterHeaterStateTopic() string {
	return fmt.Sprintf("%s/water_heater/state", c.baseTopic())
}

func (c *MQTTClient) WaterHeaterModeCommandTopic() string {
	return fmt.Sprintf("%s/water_heater/mode/set", c.baseTopic())
}

func (c *MQTTClient) ParseMQTTCommand(msg mqtt.Message) (*ParsedMQTTCommand, error) {
	tempCmd, err := c.parseClimateTemperatureCommand(msg)
	if err == nil {
		return tempCmd, nil
	}
	modeCmd, err := c.parseClimateModeCommand(msg)
	if err == nil {
		return modeCmd, nil
	}
	presetCmd, err := c.parseClimatePresetCommand(msg)
	if err == nil {
		return presetCmd, nil
	}
	whCmd, err := c.parseWaterHeaterModeCommand(msg)
	if err == nil {
		return whCmd, nil
	}
	return nil, err
}

func (c *MQTTClient) parseClimateTemperatureCommand(msg mqtt.Message) (*ParsedMQTTCommand, error) {
	matches := c.climateTempCmdRegexp.FindAllStringSubmatch(msg.Topic(), 1)
	if len(matches) == 0 || len(matches[0]) != 2 {
		return nil, errors.New("invalid command")
	}

	// payload must be a valid temperature
	_, err := strconv.ParseFloat(string(msg.Payload()), 64)
	if err != nil {
		return nil, err
	}

	return &ParsedMQTTCommand{
		DeviceId: matches[0][1],
		Command:  COMMAND_CLIMATE_TEMPERATURE,
		Payload:  string(msg.Payload()),
	}, nil
}

func (c *MQTTClient) parseClimateModeCommand(msg mqtt.Message) (*ParsedMQTTCommand, error) {
	matches := c.climateModeCmdRegexp.FindAllStringSubmatch(msg.Topic(), 1)
	if len(matches) == 0 || len(matches[0]) != 2 {
		return nil, errors.New("invalid command")
	}
	return &ParsedMQTTCommand{
		DeviceId: matches[0][1],
		Command:  COMMAND_CLIMATE_MODE,
		Payload:  string(msg.Payload()),
	}, nil
}

func (c *MQTTClient) parseClimatePresetCommand(msg mqtt.Message) (*ParsedMQTTCommand, error) {
	matches := c.climatePresetCmdRegexp.FindAllStringSubmatch(msg.Topic(), 1)
	if len(matches) == 0 || len(matches[0]) != 2 {
		return nil, errors.New("invalid command")
	}
	return &ParsedMQTTCommand{
		DeviceId: matches[0][1],
		Command:  COMMAND_CLIMATE_PRESET,
		Payload:  string(msg.Payload()),
	}, nil
}

func (c *MQTTClient) parseWaterHeaterModeCommand(msg mqtt.Message) (*ParsedMQTTCommand, error) {
	if !c.waterHeaterModeCmdRegexp.MatchString(msg.Topic()) {
		return nil, errors.New("invalid command")
	}
	return &ParsedMQTTCommand{
		Command: COMMAND_WATER_HEATER_MODE,
		Payload: string(msg.Payload()),
	}, nil
}

func (c *MQTTClient) Publish(topic string, payload any, qos byte, retain bool, continuation func(error), timeout time.Duration) {
	token := c.client.Publish(topic, qos, retain, payload)
	go func() {
		didTO := token.WaitTimeout(timeout)
		if !didTO {
			continuation(errors.New("MQTT publish timed out"))
		} else {
			continuation(token.Error())
		}
	}()
}

func (c *MQTTClient) Subscribe(topic string, qos byte, handler mqtt.MessageHandler, continuation func(error), timeout time.Duration) {
	token := c.client.Subscribe(topic, qos, handler)
	go func() {
		didTO := token.WaitTimeout(timeout)
		if !didTO {
			continuation(errors.New("MQTT subscribe timed out"))
		} else {
			continuation(token.Error())
		}
	}()
}

func (c *MQTTClient) SubscribeToCommandTopic(handler mqtt.MessageHandler, continuation func(error), timeout time.Duration) {
	c.Subscribe(c.commandTopic(), 1, handler, continuation, timeout)
}

func (c *MQTTClient) Unsubscribe(topic string, continuation func(error), timeout time.Duration) {
	token := c.client.Unsubscribe(topic)
	go func() {
		didTO := token.WaitTimeout(timeout)
		if !didTO {
			continuation(errors.New("MQTT unsubscribe timed out"))
		} else {
			continuation(token.Error())
		}
	}()
}

func (c *MQTTClient) Connect(continuation func(error), timeout time.Duration) {
	token := c.client.Connect()
	go func() {
		didTO := token.WaitTimeout(timeout)
		if !didTO {
			continuation(errors.New("MQTT connect timed out"))
		} else {
			continuation(token.Error())
		}
	}()
}

func (c *MQTTClient) Disconnect(timeout time.Duration) {
	c.client.Disconnect(uint(timeout.Milliseconds()))
}

func (c *MQTTClient) commandTopic() string {
	return fmt.Sprintf("%s/#", c.baseTopic())
}

func climateTemperatureCommandExtractor(baseTopic string) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf("%s/climate/([a-zA-Z0-9_]+)/temperature/set", baseTopic))
}

func climateModeCommandExtractor(baseTopic string) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf("%s/climate/([a-zA-Z0-9_]+)/mode/set", baseTopic))
}

func climatePresetCommandExtractor(baseTopic string) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf("%s/climate/([a-zA-Z0-9_]+)/preset/set", baseTopic))
}

func waterHeaterModeCommandExtractor(baseTopic string) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf("%s/water_heater/mode/set", baseTopic))
}

func bridgeStateTopic(baseTopic string) string {
	return fmt.Sprintf("%s/bridge/state", baseTopic)
}
