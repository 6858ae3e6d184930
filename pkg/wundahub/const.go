package wundahub

import "time"

const (
	syncValuesPath = "/syncvalues.cgi"
	commandPath    = "/cmd.cgi"

	DefaultTimeout    = 10 * time.Second
	DefaultRetries    = 5
	DefaultRetryDelay = 500 * time.Millisecond

	// The hub mishandles connections torn down and re-established faster
	// than its firmware expects, so idle keep-alive never drops below this.
	MinKeepAlive = 300 * time.Second
)

// Identity keys are metadata, everything else on the wire is state.
var identityKeys = map[string]struct{}{
	"device_sn":   {},
	"prod_sn":     {},
	"device_name": {},
	"device_type": {},
	"eth_mac":     {},
	"name":        {},
	"id":          {},
	"i":           {},
}

// Room state keys.
const (
	KeyEnable         = "enable"
	KeyRoomId         = "room_id"
	KeyHardVersion    = "device_hard_version"
	KeyTemp           = "temp"
	KeyTempPre        = "temp_pre"
	KeyHeat           = "heat"
	KeyPresetReduced  = "t_lo"
	KeyPresetEco      = "t_norm"
	KeyPresetComfort  = "t_hi"
	KeyHotWaterMode   = "hw_mode_state"
	KeyHotWaterBoost  = "hw_boost_state"
	KeyHumidity       = "rh"
	KeyValveTemp      = "vtemp"
	KeyExternalTemp   = "temp_ext"
	KeyBattery        = "bat"
	KeySignal         = "sig"
	KeyValvePosition  = "vpos"
	KeyValvePosMin    = "vpos_min"
	KeyValvePosRange  = "vpos_range"
	KeyValveDownforce = "downforce"
	KeyValveTravel    = "trv_range"
)

// A room with enable == 255 is configured but disabled on the hub and is
// excluded from the device graph entirely.
const roomDisabled = "255"

// temp_pre bit flags reported by room records.
const (
	FlagOverrideUntilNext = 0x01
	FlagOff               = 0x04
	FlagManualOverride    = 0x10
	FlagHeatDemand        = 0x20
	FlagAdaptiveStart     = 0x80
)

// hw_boost_state values for the hub's hot water circuit.
const (
	HotWaterAuto      = 0
	HotWaterBoostOn   = 1
	HotWaterManualOff = 2
)

// Command ids accepted by cmd.cgi.
const (
	CmdSetRoom  = 1
	CmdHotWater = 3
)
