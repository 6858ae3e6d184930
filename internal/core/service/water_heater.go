package service

import (
	"strconv"
	"wunda2mqtt/internal/core/domain"
	"wunda2mqtt/pkg/wundahub"

	"go.uber.org/zap"
)

type DefaultWaterHeaterLogic struct {
	Logger *zap.Logger
}

// Derive maps the hub's hw_mode_state relay flag and hw_boost_state override
// onto the four reportable hot water states.
func (l *DefaultWaterHeaterLogic) Derive(hub wundahub.Device) domain.WaterHeaterOperation {
	relayOn := parseStateBool(hub.State, wundahub.KeyHotWaterMode)
	boost := parseStateInt(hub.State, wundahub.KeyHotWaterBoost)

	if relayOn {
		if boost != wundahub.HotWaterAuto {
			return domain.WATER_HEATER_BOOST_ON
		}
		return domain.WATER_HEATER_AUTO_ON
	}
	if boost != wundahub.HotWaterAuto {
		return domain.WATER_HEATER_MANUAL_OFF
	}
	return domain.WATER_HEATER_AUTO_OFF
}

func parseStateBool(state map[string]string, key string) bool {
	return parseStateInt(state, key) != 0
}

func parseStateInt(state map[string]string, key string) int {
	raw, ok := state[key]
	if !ok {
		return 0
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return int(value)
}
