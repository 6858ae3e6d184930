package mqtt

import (
	"fmt"

	"wunda2mqtt/internal/core/domain"
)

type HADiscoveryConfig struct {
	Device            HADiscoveryDevice `json:"device"`
	StateTopic        string            `json:"state_topic,omitempty"`
	CommandTopic      string            `json:"command_topic,omitempty"`
	StateClass        string            `json:"state_class,omitempty"`
	DeviceClass       string            `json:"device_class,omitempty"`
	UnitOfMeasurement string            `json:"unit_of_measurement,omitempty"`
	AvTopic           string            `json:"availability_topic,omitempty"`
	EntityCategory    string            `json:"entity_category,omitempty"`
	Name              string            `json:"name"`
	UniqueId          string            `json:"unique_id"`
	Platform          string            `json:"platform"`
	EnabledByDefault  *bool             `json:"enabled_by_default,omitempty"`
	PayloadOn         string            `json:"payload_on,omitempty"`
	PayloadOff        string            `json:"payload_off,omitempty"`
	Icon              string            `json:"icon,omitempty"`

	// climate / water heater
	CurrentTemperatureTopic string   `json:"current_temperature_topic,omitempty"`
	CurrentHumidityTopic    string   `json:"current_humidity_topic,omitempty"`
	TemperatureStateTopic   string   `json:"temperature_state_topic,omitempty"`
	TemperatureCommandTopic string   `json:"temperature_command_topic,omitempty"`
	ModeStateTopic          string   `json:"mode_state_topic,omitempty"`
	ModeCommandTopic        string   `json:"mode_command_topic,omitempty"`
	ActionTopic             string   `json:"action_topic,omitempty"`
	PresetModeStateTopic    string   `json:"preset_mode_state_topic,omitempty"`
	PresetModeCommandTopic  string   `json:"preset_mode_command_topic,omitempty"`
	Modes                   []string `json:"modes,omitempty"`
	PresetModes             []string `json:"preset_modes,omitempty"`
	MinTemp                 float64  `json:"min_temp,omitempty"`
	MaxTemp                 float64  `json:"max_temp,omitempty"`
	TempStep                float64  `json:"temp_step,omitempty"`
	TemperatureUnit         string   `json:"temperature_unit,omitempty"`
}

type HADiscoveryDevice struct {
	Id           []string `json:"identifiers"`
	Manufacturer string   `json:"manufacturer,omitempty"`
	Version      string   `json:"sw_version,omitempty"`
	Model        string   `json:"model,omitempty"`
	Name         string   `json:"name,omitempty"`
	ViaDevice    string   `json:"via_device,omitempty"`
}

func HADiscoverySensorTopic(discoveryTopic string, sensor domain.GenericSensor) string {
	return fmt.Sprintf("%s/%s/%s/%s/config", discoveryTopic, sensor.SensorType, sensor.Device.Id, sensor.Id)
}

func HADiscoveryClimateTopic(discoveryTopic string, climate domain.GenericClimate) string {
	return fmt.Sprintf("%s/climate/%s/%s/config", discoveryTopic, climate.Device.Id, climate.Id)
}

func HADiscoveryWaterHeaterTopic(discoveryTopic string, waterHeater domain.GenericWaterHeater) string {
	return fmt.Sprintf("%s/water_heater/%s/%s/config", discoveryTopic, waterHeater.Device.Id, waterHeater.Id)
}

func GenericSensorToHADiscoveryMessage(client *MQTTClient, sensor domain.GenericSensor) HADiscoveryConfig {
	dev := device(sensor.Device)
	var topic string
	switch {
	case sensor.Id == domain.SENSOR_ID_BRIDGE_STATE:
		topic = client.BridgeStateTopic()
	case sensor.SensorType == domain.SENSOR_TYPE_SENSOR:
		topic = client.SensorStateTopic(sensor.Id)
	case sensor.SensorType == domain.SENSOR_TYPE_BINARY:
		topic = client.BinarySensorStateTopic(sensor.Id)
	}
	disConfig := HADiscoveryConfig{
		Device:            dev,
		StateTopic:        topic,
		StateClass:        sensor.StateClass,
		DeviceClass:       sensor.DeviceClass,
		UnitOfMeasurement: sensor.UnitOfMeasurement,
		AvTopic:           client.BridgeStateTopic(),
		EntityCategory:    sensor.EntityCategory,
		Name:              sensor.Name,
		UniqueId:          sensor.UniqueId,
		Icon:              sensor.Icon,
		EnabledByDefault:  sensor.EnabledByDefault,
		Platform:          "mqtt",
	}
	if sensor.Id == domain.SENSOR_ID_BRIDGE_STATE {
		disConfig.PayloadOn = MQTT_PAYLOAD_ONLINE
		disConfig.PayloadOff = MQTT_PAYLOAD_OFFLINE
	} else if sensor.SensorType == domain.SENSOR_TYPE_BINARY {
		disConfig.PayloadOn = MQTT_PAYLOAD_ON
		disConfig.PayloadOff = MQTT_PAYLOAD_OFF
	}
	return disConfig
}

func GenericClimateToHADiscoveryMessage(client *MQTTClient, climate domain.GenericClimate) HADiscoveryConfig {
	dev := device(climate.Device)

	var modes []string
	for _, m := range climate.Modes {
		modes = append(modes, string(m))
	}
	// "none" is implicit in HA's preset handling
	var presets []string
	for _, p := range climate.Presets {
		if p != domain.PRESET_NONE {
			presets = append(presets, string(p))
		}
	}

	return HADiscoveryConfig{
		Device:                  dev,
		AvTopic:                 client.BridgeStateTopic(),
		Name:                    climate.Name,
		UniqueId:                climate.UniqueId,
		Platform:                "mqtt",
		CurrentTemperatureTopic: client.ClimateCurrentTemperatureTopic(climate.Id),
		CurrentHumidityTopic:    client.ClimateHumidityTopic(climate.Id),
		TemperatureStateTopic:   client.ClimateTemperatureStateTopic(climate.Id),
		TemperatureCommandTopic: client.ClimateTemperatureCommandTopic(climate.Id),
		ModeStateTopic:          client.ClimateModeStateTopic(climate.Id),
		ModeCommandTopic:        client.ClimateModeCommandTopic(climate.Id),
		ActionTopic:             client.ClimateActionTopic(climate.Id),
		PresetModeStateTopic:    client.ClimatePresetStateTopic(climate.Id),
		PresetModeCommandTopic:  client.ClimatePresetCommandTopic(climate.Id),
		Modes:                   modes,
		PresetModes:             presets,
		MinTemp:                 climate.MinTemp,
		MaxTemp:                 climate.MaxTemp,
		TempStep:                climate.TempStep,
		TemperatureUnit:         "C",
	}
}

func GenericWaterHeaterToHADiscoveryMessage(client *MQTTClient, waterHeater domain.GenericWaterHeater) HADiscoveryConfig {
	dev := device(waterHeater.Device)

	var modes []string
	for _, op := range waterHeater.Operations {
		modes = append(modes, string(op))
	}

	return HADiscoveryConfig{
		Device:           dev,
		AvTopic:          client.BridgeStateTopic(),
		Name:             waterHeater.Name,
		UniqueId:         waterHeater.UniqueId,
		Platform:         "mqtt",
		ModeStateTopic:   client.WaterHeaterStateTopic(),
		ModeCommandTopic: client.WaterHeaterModeCommandTopic(),
		Modes:            modes,
		TemperatureUnit:  "C",
	}
}

func device(d domain.Device) HADiscoveryDevice {
	return HADiscoveryDevice{
		Id:           []string{d.Id},
		Manufacturer: d.Manufacturer,
		Version:      d.Version,
		Model:        d.Model,
		Name:         d.Name,
		ViaDevice:    d.ViaDevice,
	}
}
