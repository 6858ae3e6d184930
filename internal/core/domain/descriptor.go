package domain

import (
	"strconv"
	"wunda2mqtt/pkg/wundahub"
)

// Availability gates a sensor entity on the owning device's state. The zero
// value means always available.
type Availability struct {
	when func(dev wundahub.Device) bool
}

func Always() Availability {
	return Availability{}
}

func When(fn func(dev wundahub.Device) bool) Availability {
	return Availability{when: fn}
}

func (a Availability) Available(dev wundahub.Device) bool {
	if a.when == nil {
		return true
	}
	return a.when(dev)
}

// SensorDescriptor declares one state key of a device type as an HA sensor
// entity. Default, when set, substitutes for a missing state key.
type SensorDescriptor struct {
	Key              string
	Name             string
	Unit             string
	DeviceClass      string
	StateClass       string
	EntityCategory   string
	Icon             string
	Decimals         uint
	EnabledByDefault *bool
	Availability     Availability
	Default          *float64
}

// Value reads the descriptor's state key from a device. Missing keys fall
// back to Default when one is declared.
func (d SensorDescriptor) Value(dev wundahub.Device) (float64, bool) {
	raw, ok := dev.State[d.Key]
	if !ok {
		if d.Default != nil {
			return *d.Default, true
		}
		return 0, false
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		if d.Default != nil {
			return *d.Default, true
		}
		return 0, false
	}
	return value, true
}

// Preset setpoints are only meaningful once the user has programmed them;
// the hub reports 0 otherwise.
func presetProgrammed(key string) Availability {
	return When(func(dev wundahub.Device) bool {
		raw, ok := dev.State[key]
		if !ok {
			return false
		}
		value, err := strconv.ParseFloat(raw, 64)
		return err == nil && value > 0
	})
}

// External probe readings only exist when the probe is plugged in.
func externalProbePresent() Availability {
	return When(func(dev wundahub.Device) bool {
		raw, ok := dev.State["ext"]
		if !ok {
			return false
		}
		value, err := strconv.ParseFloat(raw, 64)
		return err == nil && value != 0
	})
}

var roomSensorDescriptors = []SensorDescriptor{
	{
		Key:          wundahub.KeyPresetReduced,
		Name:         "Reduced preset temperature",
		Unit:         "°C",
		DeviceClass:  DEVICE_CLASS_TEMPERATURE,
		StateClass:   STATE_CLASS_MEASUREMENT,
		Decimals:     1,
		Availability: presetProgrammed(wundahub.KeyPresetReduced),
		Default:      optionalFloat(0),
	},
	{
		Key:          wundahub.KeyPresetEco,
		Name:         "Eco preset temperature",
		Unit:         "°C",
		DeviceClass:  DEVICE_CLASS_TEMPERATURE,
		StateClass:   STATE_CLASS_MEASUREMENT,
		Decimals:     1,
		Availability: presetProgrammed(wundahub.KeyPresetEco),
		Default:      optionalFloat(0),
	},
	{
		Key:          wundahub.KeyPresetComfort,
		Name:         "Comfort preset temperature",
		Unit:         "°C",
		DeviceClass:  DEVICE_CLASS_TEMPERATURE,
		StateClass:   STATE_CLASS_MEASUREMENT,
		Decimals:     1,
		Availability: presetProgrammed(wundahub.KeyPresetComfort),
		Default:      optionalFloat(0),
	},
}

var sensorSensorDescriptors = []SensorDescriptor{
	{
		Key:         wundahub.KeyTemp,
		Name:        "Temperature",
		Unit:        "°C",
		DeviceClass: DEVICE_CLASS_TEMPERATURE,
		StateClass:  STATE_CLASS_MEASUREMENT,
		Decimals:    1,
	},
	{
		Key:         wundahub.KeyHumidity,
		Name:        "Humidity",
		Unit:        "%",
		DeviceClass: DEVICE_CLASS_HUMIDITY,
		StateClass:  STATE_CLASS_MEASUREMENT,
		Decimals:    1,
	},
	{
		Key:          wundahub.KeyExternalTemp,
		Name:         "External probe temperature",
		Unit:         "°C",
		DeviceClass:  DEVICE_CLASS_TEMPERATURE,
		StateClass:   STATE_CLASS_MEASUREMENT,
		Decimals:     1,
		Availability: externalProbePresent(),
	},
	{
		Key:            wundahub.KeyBattery,
		Name:           "Battery",
		Unit:           "%",
		DeviceClass:    DEVICE_CLASS_BATTERY,
		StateClass:     STATE_CLASS_MEASUREMENT,
		EntityCategory: ENTITY_CLASS_DIAGNOSTIC,
	},
	{
		// sig is a 0-100 signal level, not a dBm reading
		Key:              wundahub.KeySignal,
		Name:             "Signal level",
		Unit:             "%",
		StateClass:       STATE_CLASS_MEASUREMENT,
		EntityCategory:   ENTITY_CLASS_DIAGNOSTIC,
		Icon:             "mdi:signal",
		EnabledByDefault: optionalBool(false),
	},
}

var trvSensorDescriptors = []SensorDescriptor{
	{
		Key:         wundahub.KeyValveTemp,
		Name:        "Valve temperature",
		Unit:        "°C",
		DeviceClass: DEVICE_CLASS_TEMPERATURE,
		StateClass:  STATE_CLASS_MEASUREMENT,
		Decimals:    1,
	},
	{
		Key:            wundahub.KeyBattery,
		Name:           "Battery",
		Unit:           "%",
		DeviceClass:    DEVICE_CLASS_BATTERY,
		StateClass:     STATE_CLASS_MEASUREMENT,
		EntityCategory: ENTITY_CLASS_DIAGNOSTIC,
	},
	{
		// sig is a 0-100 signal level, not a dBm reading
		Key:              wundahub.KeySignal,
		Name:             "Signal level",
		Unit:             "%",
		StateClass:       STATE_CLASS_MEASUREMENT,
		EntityCategory:   ENTITY_CLASS_DIAGNOSTIC,
		Icon:             "mdi:signal",
		EnabledByDefault: optionalBool(false),
	},
	{
		Key:        wundahub.KeyValvePosition,
		Name:       "Valve position",
		Unit:       "%",
		StateClass: STATE_CLASS_MEASUREMENT,
		Icon:       "mdi:valve",
	},
	{
		Key:              wundahub.KeyValvePosMin,
		Name:             "Valve position minimum",
		Unit:             "%",
		EntityCategory:   ENTITY_CLASS_DIAGNOSTIC,
		EnabledByDefault: optionalBool(false),
	},
	{
		Key:              wundahub.KeyValvePosRange,
		Name:             "Valve position range",
		Unit:             "%",
		EntityCategory:   ENTITY_CLASS_DIAGNOSTIC,
		EnabledByDefault: optionalBool(false),
	},
	{
		Key:              wundahub.KeyValveDownforce,
		Name:             "Valve downforce",
		EntityCategory:   ENTITY_CLASS_DIAGNOSTIC,
		EnabledByDefault: optionalBool(false),
	},
	{
		Key:              wundahub.KeyValveTravel,
		Name:             "Valve travel range",
		EntityCategory:   ENTITY_CLASS_DIAGNOSTIC,
		EnabledByDefault: optionalBool(false),
	},
}

// SensorDescriptorsFor returns the descriptor table of a device type. Hub
// and UFH devices expose no plain sensors.
func SensorDescriptorsFor(t wundahub.DeviceType) []SensorDescriptor {
	switch t {
	case wundahub.DeviceRoom:
		return roomSensorDescriptors
	case wundahub.DeviceSensor:
		return sensorSensorDescriptors
	case wundahub.DeviceTRV:
		return trvSensorDescriptors
	default:
		return nil
	}
}

func optionalBool(value bool) *bool {
	return &value
}

func optionalFloat(value float64) *float64 {
	return &value
}
