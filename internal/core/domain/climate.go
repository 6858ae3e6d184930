package domain

// HvacMode is the user-facing operating mode of a room.
type HvacMode string

const (
	HVAC_MODE_AUTO HvacMode = "auto"
	HVAC_MODE_HEAT HvacMode = "heat"
	HVAC_MODE_OFF  HvacMode = "off"
)

// HvacAction is what a room's heating circuit is doing right now.
type HvacAction string

const (
	HVAC_ACTION_IDLE       HvacAction = "idle"
	HVAC_ACTION_HEATING    HvacAction = "heating"
	HVAC_ACTION_PREHEATING HvacAction = "preheating"
	HVAC_ACTION_OFF        HvacAction = "off"
)

// Preset names map to the room's stored setpoints (t_lo/t_norm/t_hi).
type Preset string

const (
	PRESET_REDUCED Preset = "reduced"
	PRESET_ECO     Preset = "eco"
	PRESET_COMFORT Preset = "comfort"
	PRESET_NONE    Preset = "none"
)

// ClimateState is the derived, typed view of one room.
type ClimateState struct {
	CurrentTemperature *float64
	CurrentHumidity    *float64
	TargetTemperature  *float64
	Mode               HvacMode
	Action             HvacAction
	Preset             Preset
}

// WaterHeaterOperation is the hub's hot water circuit state/command. The
// boost and off operations are timed overrides on top of the schedule.
type WaterHeaterOperation string

const (
	WATER_HEATER_AUTO_ON    WaterHeaterOperation = "auto_on"
	WATER_HEATER_AUTO_OFF   WaterHeaterOperation = "auto_off"
	WATER_HEATER_BOOST_ON   WaterHeaterOperation = "boost_on"
	WATER_HEATER_MANUAL_OFF WaterHeaterOperation = "manual_off"
	WATER_HEATER_AUTO       WaterHeaterOperation = "auto"
)
