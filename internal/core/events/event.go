package events

import (
	"strconv"

	. "wunda2mqtt/internal/core/domain"
	"wunda2mqtt/pkg/wundahub"
)

// DeviceStateToUpdateEvents converts one device's raw state into sensor
// update events following its device type's descriptor table.
func DeviceStateToUpdateEvents(dev wundahub.Device) []any {
	var events []any

	for _, desc := range SensorDescriptorsFor(dev.Type) {
		if !desc.Availability.Available(dev) {
			continue
		}
		value, ok := desc.Value(dev)
		if !ok {
			continue
		}
		events = append(events, FloatSensorUpdateEvent{
			SensorUpdateEventMixIn: SensorUpdateEventMixIn{
				Id: DeviceSensorId(dev, desc.Key),
			},
			Value:    value,
			Decimals: desc.Decimals,
		})
	}

	return events
}

// DeviceGraphToUpdateEvents flattens a full snapshot into the sensor update
// events of every device in it.
func DeviceGraphToUpdateEvents(graph wundahub.DeviceGraph) []any {
	var events []any
	for _, dev := range graph {
		events = append(events, DeviceStateToUpdateEvents(dev)...)
	}
	return events
}

func ClimateStateToUpdateEvent(roomId wundahub.DeviceId, state ClimateState) any {
	return ClimateStateUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: strconv.Itoa(int(roomId)),
		},
		State: state,
	}
}

func WaterHeaterToUpdateEvent(operation WaterHeaterOperation) any {
	return WaterHeaterStateUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: WATER_HEATER_ID,
		},
		Operation: operation,
	}
}

func BridgeStateToUpdateEvent(online bool) any {
	return BridgeStateUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: SENSOR_ID_BRIDGE_STATE,
		},
		Value: online,
	}
}
