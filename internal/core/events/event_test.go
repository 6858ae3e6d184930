package events

import (
	"testing"
	"wunda2mqtt/internal/core/domain"
	"wunda2mqtt/pkg/wundahub"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eventIds(events []any) map[string]float64 {
	out := make(map[string]float64)
	for _, ev := range events {
		fe, ok := ev.(domain.FloatSensorUpdateEvent)
		if ok {
			out[fe.Id] = fe.Value
		}
	}
	return out
}

func TestRoomPresetEvents(t *testing.T) {
	room := wundahub.Device{
		Id:   121,
		Type: wundahub.DeviceRoom,
		State: map[string]string{
			"t_lo":   "16.0",
			"t_norm": "20.0",
			// t_hi unprogrammed, must not produce an event
			"t_hi": "0",
		},
	}

	ids := eventIds(DeviceStateToUpdateEvents(room))

	assert.Equal(t, 16.0, ids["room_121_t_lo"])
	assert.Equal(t, 20.0, ids["room_121_t_norm"])
	assert.NotContains(t, ids, "room_121_t_hi")
}

func TestSensorEvents(t *testing.T) {
	sensor := wundahub.Device{
		Id:   1,
		Type: wundahub.DeviceSensor,
		State: map[string]string{
			"temp": "17.8",
			"rh":   "66.57",
			"bat":  "92",
			"sig":  "78",
		},
	}

	ids := eventIds(DeviceStateToUpdateEvents(sensor))

	assert.Equal(t, 17.8, ids["sensor_1_temp"])
	assert.Equal(t, 66.57, ids["sensor_1_rh"])
	assert.Equal(t, 92.0, ids["sensor_1_bat"])
	assert.Equal(t, 78.0, ids["sensor_1_sig"])
	assert.NotContains(t, ids, "sensor_1_temp_ext")
}

func TestSensorExternalProbeGating(t *testing.T) {
	sensor := wundahub.Device{
		Id:   1,
		Type: wundahub.DeviceSensor,
		State: map[string]string{
			"ext":      "1",
			"temp_ext": "12.5",
		},
	}

	ids := eventIds(DeviceStateToUpdateEvents(sensor))
	assert.Equal(t, 12.5, ids["sensor_1_temp_ext"])
}

func TestTRVEvents(t *testing.T) {
	trv := wundahub.Device{
		Id:   31,
		Type: wundahub.DeviceTRV,
		State: map[string]string{
			"vtemp": "21.0",
			"vpos":  "40",
			"bat":   "80",
		},
	}

	ids := eventIds(DeviceStateToUpdateEvents(trv))

	assert.Equal(t, 21.0, ids["trv_31_vtemp"])
	assert.Equal(t, 40.0, ids["trv_31_vpos"])
	assert.Equal(t, 80.0, ids["trv_31_bat"])
	// keys absent from the wire produce no events
	assert.NotContains(t, ids, "trv_31_sig")
}

func TestHubProducesNoSensorEvents(t *testing.T) {
	hub := wundahub.Device{
		Id:    0,
		Type:  wundahub.DeviceHub,
		State: map[string]string{"hw_mode_state": "1"},
	}
	assert.Empty(t, DeviceStateToUpdateEvents(hub))
}

func TestClimateAndWaterHeaterEvents(t *testing.T) {
	require := require.New(t)

	target := 20.0
	ev := ClimateStateToUpdateEvent(121, domain.ClimateState{
		TargetTemperature: &target,
		Mode:              domain.HVAC_MODE_AUTO,
		Action:            domain.HVAC_ACTION_IDLE,
		Preset:            domain.PRESET_ECO,
	})
	ce, ok := ev.(domain.ClimateStateUpdateEvent)
	require.True(ok)
	assert.Equal(t, "121", ce.SensorId())
	assert.Equal(t, domain.PRESET_ECO, ce.State.Preset)

	we, ok := WaterHeaterToUpdateEvent(domain.WATER_HEATER_BOOST_ON).(domain.WaterHeaterStateUpdateEvent)
	require.True(ok)
	assert.Equal(t, "water_heater", we.SensorId())

	be, ok := BridgeStateToUpdateEvent(true).(domain.BridgeStateUpdateEvent)
	require.True(ok)
	assert.Equal(t, "bridge", be.SensorId())
	assert.True(t, be.Value)
}
