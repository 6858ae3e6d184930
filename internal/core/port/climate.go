package port

import (
	"wunda2mqtt/internal/core/domain"
	"wunda2mqtt/pkg/wundahub"
)

// ClimateStateLogic derives the typed climate view of a room from the raw
// device graph.
type ClimateStateLogic interface {
	Derive(room wundahub.Device, trvs []wundahub.Device) domain.ClimateState
	CurrentTemperature(room wundahub.Device, trvs []wundahub.Device) *float64
	PresetTemperature(room wundahub.Device, preset domain.Preset) (float64, bool)
}

// WaterHeaterLogic derives the hot water circuit state from the hub device.
type WaterHeaterLogic interface {
	Derive(hub wundahub.Device) domain.WaterHeaterOperation
}
