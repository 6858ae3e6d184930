package service

import (
	"strconv"
	"wunda2mqtt/internal/core/domain"
	"wunda2mqtt/pkg/wundahub"

	"go.uber.org/zap"
)

type DefaultClimateStateLogic struct {
	Logger *zap.Logger
}

// Derive builds the typed climate view of one room from the room record,
// its paired sensor state and the TRVs assigned to it.
func (l *DefaultClimateStateLogic) Derive(room wundahub.Device, trvs []wundahub.Device) domain.ClimateState {
	flags := roomFlags(room)

	state := domain.ClimateState{
		CurrentTemperature: l.CurrentTemperature(room, trvs),
		CurrentHumidity:    parseStateFloat(room.SensorState, wundahub.KeyHumidity),
		TargetTemperature:  parseStateFloat(room.State, wundahub.KeyTemp),
		Mode:               hvacMode(flags),
		Action:             hvacAction(flags),
		Preset:             domain.PRESET_NONE,
	}

	if state.TargetTemperature != nil {
		state.Preset = l.presetForTarget(room, *state.TargetTemperature)
	}
	return state
}

// CurrentTemperature prefers the room's paired sensor reading and falls back
// to the average of the assigned TRVs' valve temperatures. Zero vtemp values
// mean the TRV has no reading yet and are skipped.
func (l *DefaultClimateStateLogic) CurrentTemperature(room wundahub.Device, trvs []wundahub.Device) *float64 {
	if temp := parseStateFloat(room.SensorState, wundahub.KeyTemp); temp != nil {
		return temp
	}

	var sum float64
	var count int
	for _, trv := range trvs {
		vtemp := parseStateFloat(trv.State, wundahub.KeyValveTemp)
		if vtemp == nil || *vtemp == 0 {
			continue
		}
		sum += *vtemp
		count++
	}
	if count == 0 {
		return nil
	}
	avg := sum / float64(count)
	return &avg
}

// PresetTemperature returns the room's stored setpoint for a preset.
func (l *DefaultClimateStateLogic) PresetTemperature(room wundahub.Device, preset domain.Preset) (float64, bool) {
	var key string
	switch preset {
	case domain.PRESET_REDUCED:
		key = wundahub.KeyPresetReduced
	case domain.PRESET_ECO:
		key = wundahub.KeyPresetEco
	case domain.PRESET_COMFORT:
		key = wundahub.KeyPresetComfort
	default:
		return 0, false
	}
	temp := parseStateFloat(room.State, key)
	if temp == nil {
		return 0, false
	}
	return *temp, true
}

func (l *DefaultClimateStateLogic) presetForTarget(room wundahub.Device, target float64) domain.Preset {
	for _, preset := range []domain.Preset{domain.PRESET_REDUCED, domain.PRESET_ECO, domain.PRESET_COMFORT} {
		if temp, ok := l.PresetTemperature(room, preset); ok && temp == target {
			return preset
		}
	}
	return domain.PRESET_NONE
}

func hvacMode(flags int) domain.HvacMode {
	switch {
	case flags&(wundahub.FlagManualOverride|wundahub.FlagOff) == (wundahub.FlagManualOverride | wundahub.FlagOff):
		return domain.HVAC_MODE_OFF
	case flags&(wundahub.FlagManualOverride|wundahub.FlagAdaptiveStart) == wundahub.FlagManualOverride:
		return domain.HVAC_MODE_HEAT
	default:
		return domain.HVAC_MODE_AUTO
	}
}

func hvacAction(flags int) domain.HvacAction {
	switch {
	case flags&(wundahub.FlagAdaptiveStart|wundahub.FlagHeatDemand) == (wundahub.FlagAdaptiveStart | wundahub.FlagHeatDemand):
		return domain.HVAC_ACTION_PREHEATING
	case flags&wundahub.FlagHeatDemand != 0:
		return domain.HVAC_ACTION_HEATING
	case flags&wundahub.FlagOff != 0:
		return domain.HVAC_ACTION_OFF
	default:
		return domain.HVAC_ACTION_IDLE
	}
}

// roomFlags reads the temp_pre bitfield. Hubs report it as a float string.
func roomFlags(room wundahub.Device) int {
	raw, ok := room.State[wundahub.KeyTempPre]
	if !ok {
		return 0
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return int(value)
}

func parseStateFloat(state map[string]string, key string) *float64 {
	raw, ok := state[key]
	if !ok {
		return nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &value
}
