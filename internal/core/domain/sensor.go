package domain

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"wunda2mqtt/pkg/wundahub"

	"github.com/carlmjohnson/versioninfo"
)

const (
	SENSOR_ID_BRIDGE_STATE       = "bridge"
	CLIMATE_ID_PREFIX            = "climate"
	WATER_HEATER_ID              = "water_heater"
	STATE_CLASS_MEASUREMENT      = "measurement"
	STATE_CLASS_TOTAL_INCREASING = "total_increasing"
	DEVICE_CLASS_TEMPERATURE     = "temperature"
	DEVICE_CLASS_HUMIDITY        = "humidity"
	DEVICE_CLASS_BATTERY         = "battery"
	DEVICE_CLASS_CONNECTIVITY    = "connectivity"
	ENTITY_CLASS_DIAGNOSTIC      = "diagnostic"
	ENTITY_CLASS_CONFIG          = "config"
	SENSOR_TYPE_SENSOR           = "sensor"
	SENSOR_TYPE_BINARY           = "binary_sensor"
)

func BridgeDevice(baseTopic string) Device {
	return Device{
		Id:           fmt.Sprintf("wunda_bridge_%s", md5HashShort(baseTopic)),
		Manufacturer: "WundaSmart",
		Model:        "Wunda2MQTT",
		Version:      versioninfo.Short(),
		Name:         fmt.Sprintf("Wunda2MQTT %s", md5HashShort(baseTopic)),
	}
}

func HubDevice(hub wundahub.Device) Device {
	return Device{
		Id:           fmt.Sprintf("wunda_hub_%s", md5HashShort(hub.SerialNumber())),
		Manufacturer: "WundaSmart",
		Model:        "HubSwitch",
		Version:      fmt.Sprintf("%g", hub.HWVersion),
		Name:         fmt.Sprintf("WundaSmart Hub %s", md5HashShort(hub.SerialNumber())),
	}
}

// HubChildDevice builds the HA device entry for a room, sensor or TRV,
// linked under the hub device.
func HubChildDevice(dev wundahub.Device, hubDevice Device) Device {
	return Device{
		Id:           fmt.Sprintf("wunda_%s_%s", dev.Type, externalIdSlug(dev)),
		Manufacturer: "WundaSmart",
		Model:        strings.ToUpper(dev.Type.String()[:1]) + dev.Type.String()[1:],
		Name:         dev.DisplayName(),
		ViaDevice:    hubDevice.Id,
	}
}

func IdDevice(device Device) Device {
	return Device{
		Id:   device.Id,
		Name: device.Name,
	}
}

func BridgeSensors(bridgeDevice Device) []GenericSensor {

	var sensors []GenericSensor

	// Bridge connectivity
	sensors = append(sensors, GenericSensor{
		Device:         bridgeDevice,
		Id:             SENSOR_ID_BRIDGE_STATE,
		SensorType:     SENSOR_TYPE_BINARY,
		Name:           "Connection state",
		DeviceClass:    DEVICE_CLASS_CONNECTIVITY,
		EntityCategory: ENTITY_CLASS_DIAGNOSTIC,
		UniqueId:       UniqueId(bridgeDevice.Id, SENSOR_ID_BRIDGE_STATE),
	})

	return sensors
}

// DeviceSensors declares the HA sensor entities of one hub device, per its
// device type's descriptor table.
func DeviceSensors(dev wundahub.Device, haDevice Device) []GenericSensor {

	var sensors []GenericSensor

	for _, desc := range SensorDescriptorsFor(dev.Type) {
		if !desc.Availability.Available(dev) {
			continue
		}
		id := DeviceSensorId(dev, desc.Key)
		sensors = append(sensors, GenericSensor{
			Device:            haDevice,
			Id:                id,
			SensorType:        SENSOR_TYPE_SENSOR,
			Name:              desc.Name,
			UnitOfMeasurement: desc.Unit,
			StateClass:        desc.StateClass,
			DeviceClass:       desc.DeviceClass,
			EntityCategory:    desc.EntityCategory,
			EnabledByDefault:  desc.EnabledByDefault,
			Icon:              desc.Icon,
			UniqueId:          UniqueId(haDevice.Id, id),
		})
	}

	return sensors
}

// RoomClimate declares the HA climate entity of one room. Temperature bounds
// and step follow what the hub's own app offers.
func RoomClimate(room wundahub.Device, haDevice Device) GenericClimate {
	return GenericClimate{
		Device:   haDevice,
		Id:       fmt.Sprintf("%d", room.Id),
		Name:     room.DisplayName(),
		UniqueId: UniqueId(haDevice.Id, ClimateId(room.Id)),
		Modes:    []HvacMode{HVAC_MODE_AUTO, HVAC_MODE_HEAT, HVAC_MODE_OFF},
		Presets:  []Preset{PRESET_REDUCED, PRESET_ECO, PRESET_COMFORT, PRESET_NONE},
		MinTemp:  7,
		MaxTemp:  35,
		TempStep: 0.5,
	}
}

// HubWaterHeater declares the hub's hot water circuit entity.
func HubWaterHeater(haDevice Device) GenericWaterHeater {
	return GenericWaterHeater{
		Device:   haDevice,
		Id:       WATER_HEATER_ID,
		Name:     "Hot water",
		UniqueId: UniqueId(haDevice.Id, WATER_HEATER_ID),
		Operations: []WaterHeaterOperation{
			WATER_HEATER_AUTO,
			WATER_HEATER_BOOST_ON,
			WATER_HEATER_MANUAL_OFF,
		},
	}
}

// DeviceSensorId builds the event/topic id of one device state key, e.g.
// "room_121_t_norm".
func DeviceSensorId(dev wundahub.Device, key string) string {
	return fmt.Sprintf("%s_%d_%s", dev.Type, dev.Id, key)
}

// ClimateId builds the event/topic id of one room's climate entity.
func ClimateId(roomId wundahub.DeviceId) string {
	return fmt.Sprintf("%s_%d", CLIMATE_ID_PREFIX, roomId)
}

func UniqueId(baseId, id string) string {
	return fmt.Sprintf("uid_%s_%s", baseId, id)
}

func externalIdSlug(dev wundahub.Device) string {
	return strings.ReplaceAll(dev.ExternalId, ".", "_")
}

func md5Hash(text string) string {
	hash := md5.Sum([]byte(text))
	return hex.EncodeToString(hash[:])
}

func md5HashShort(text string) string {
	hash := md5Hash(text)
	return hash[0:8]
}
