package service

import (
	"testing"
	"wunda2mqtt/internal/core/domain"
	"wunda2mqtt/pkg/wundahub"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var climate = &DefaultClimateStateLogic{
	Logger: zap.Must(zap.NewDevelopment()),
}

func genRoom(state, sensorState map[string]string) wundahub.Device {
	return wundahub.Device{
		Id:          121,
		Type:        wundahub.DeviceRoom,
		State:       state,
		SensorState: sensorState,
	}
}

func genTRV(id wundahub.DeviceId, vtemp string) wundahub.Device {
	return wundahub.Device{
		Id:    id,
		Type:  wundahub.DeviceTRV,
		State: map[string]string{"vtemp": vtemp},
	}
}

func TestHvacModeFromFlags(t *testing.T) {
	tests := []struct {
		name  string
		flags string
		mode  domain.HvacMode
	}{
		{"manual override with off bit", "20", domain.HVAC_MODE_OFF},
		{"manual override alone", "16", domain.HVAC_MODE_HEAT},
		{"manual override plus adaptive start", "144", domain.HVAC_MODE_AUTO},
		{"schedule idle", "0", domain.HVAC_MODE_AUTO},
		{"schedule heating", "32", domain.HVAC_MODE_AUTO},
		{"float encoded flags", "16.0", domain.HVAC_MODE_HEAT},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			room := genRoom(map[string]string{"temp_pre": tc.flags}, nil)
			state := climate.Derive(room, nil)
			assert.Equal(t, tc.mode, state.Mode)
		})
	}
}

func TestHvacActionFromFlags(t *testing.T) {
	tests := []struct {
		name   string
		flags  string
		action domain.HvacAction
	}{
		{"adaptive start with demand", "160", domain.HVAC_ACTION_PREHEATING},
		{"heat demand", "32", domain.HVAC_ACTION_HEATING},
		{"off bit", "4", domain.HVAC_ACTION_OFF},
		{"idle", "0", domain.HVAC_ACTION_IDLE},
		{"off bit with manual override", "20", domain.HVAC_ACTION_OFF},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			room := genRoom(map[string]string{"temp_pre": tc.flags}, nil)
			state := climate.Derive(room, nil)
			assert.Equal(t, tc.action, state.Action)
		})
	}
}

func TestCurrentTemperaturePrefersSensor(t *testing.T) {
	require := require.New(t)

	room := genRoom(nil, map[string]string{"temp": "19.3"})
	trvs := []wundahub.Device{genTRV(31, "22.0")}

	temp := climate.CurrentTemperature(room, trvs)
	require.NotNil(temp)
	assert.InDelta(t, 19.3, *temp, 0.001)
}

func TestCurrentTemperatureAveragesTRVs(t *testing.T) {
	require := require.New(t)

	room := genRoom(nil, nil)
	trvs := []wundahub.Device{
		genTRV(31, "20.0"),
		genTRV(32, "22.0"),
		// zero vtemp means no reading yet, must not drag the average down
		genTRV(33, "0"),
		genTRV(34, "garbage"),
	}

	temp := climate.CurrentTemperature(room, trvs)
	require.NotNil(temp)
	assert.InDelta(t, 21.0, *temp, 0.001)
}

func TestCurrentTemperatureUnknown(t *testing.T) {
	room := genRoom(nil, nil)
	assert.Nil(t, climate.CurrentTemperature(room, nil))
	assert.Nil(t, climate.CurrentTemperature(room, []wundahub.Device{genTRV(31, "0")}))
}

func TestDeriveFullRoom(t *testing.T) {
	require := require.New(t)

	room := genRoom(
		map[string]string{
			"temp":     "20.0",
			"temp_pre": "32",
			"t_lo":     "16.0",
			"t_norm":   "20.0",
			"t_hi":     "22.5",
		},
		map[string]string{"temp": "17.8", "rh": "66.57"},
	)

	state := climate.Derive(room, nil)

	require.NotNil(state.CurrentTemperature)
	assert.InDelta(t, 17.8, *state.CurrentTemperature, 0.001)
	require.NotNil(state.CurrentHumidity)
	assert.InDelta(t, 66.57, *state.CurrentHumidity, 0.001)
	require.NotNil(state.TargetTemperature)
	assert.InDelta(t, 20.0, *state.TargetTemperature, 0.001)
	assert.Equal(t, domain.HVAC_MODE_AUTO, state.Mode)
	assert.Equal(t, domain.HVAC_ACTION_HEATING, state.Action)
	assert.Equal(t, domain.PRESET_ECO, state.Preset)
}

func TestPresetResolutionOrder(t *testing.T) {
	// reduced wins when two setpoints share the target value
	room := genRoom(map[string]string{
		"temp":   "16.0",
		"t_lo":   "16.0",
		"t_norm": "16.0",
		"t_hi":   "22.5",
	}, nil)

	state := climate.Derive(room, nil)
	assert.Equal(t, domain.PRESET_REDUCED, state.Preset)
}

func TestPresetNoneWhenTargetOffSchedule(t *testing.T) {
	room := genRoom(map[string]string{
		"temp":   "21.0",
		"t_lo":   "16.0",
		"t_norm": "20.0",
		"t_hi":   "22.5",
	}, nil)

	state := climate.Derive(room, nil)
	assert.Equal(t, domain.PRESET_NONE, state.Preset)
}

func TestPresetTemperature(t *testing.T) {
	room := genRoom(map[string]string{"t_lo": "16.0", "t_hi": "22.5"}, nil)

	temp, ok := climate.PresetTemperature(room, domain.PRESET_COMFORT)
	assert.True(t, ok)
	assert.InDelta(t, 22.5, temp, 0.001)

	_, ok = climate.PresetTemperature(room, domain.PRESET_ECO)
	assert.False(t, ok)

	_, ok = climate.PresetTemperature(room, domain.PRESET_NONE)
	assert.False(t, ok)
}
