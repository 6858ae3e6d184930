package wundahub

import (
	"fmt"
	"math"
	"strings"
)

// Param is one cmd.cgi query parameter. Bare params encode as the key with
// no `=value` at all, a vendor quirk used for flag-only parameters.
type Param struct {
	Key   string
	Value string
	Bare  bool
}

func P(key string, value any) Param {
	return Param{Key: key, Value: fmt.Sprint(value)}
}

func Flag(key string) Param {
	return Param{Key: key, Bare: true}
}

// Params is an ordered parameter list. Order and verbatim values matter to
// the hub firmware, so this never reorders and never escapes.
type Params []Param

func (p Params) Encode() string {
	var sb strings.Builder
	for i, param := range p {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(param.Key)
		if !param.Bare {
			sb.WriteByte('=')
			sb.WriteString(param.Value)
		}
	}
	return sb.String()
}

// SetRoomTemperature overrides a room's setpoint until changed again.
func SetRoomTemperature(roomId DeviceId, temp float64) Params {
	return Params{
		P("cmd", CmdSetRoom),
		P("roomid", int(roomId)),
		P("temp", formatTemp(temp)),
		P("locktt", 0),
		P("time", 0),
	}
}

// SetRoomProgrammed returns a room to its programmed schedule. `prog` is a
// flag-only parameter.
func SetRoomProgrammed(roomId DeviceId) Params {
	return Params{
		P("cmd", CmdSetRoom),
		P("roomid", int(roomId)),
		Flag("prog"),
		P("locktt", 0),
		P("time", 0),
	}
}

// SetRoomHeat forces heating by setting the target just above the current
// temperature.
func SetRoomHeat(roomId DeviceId, currentTemp float64) Params {
	return SetRoomTemperature(roomId, math.Ceil(currentTemp)+1)
}

// SetRoomOff turns a room's heating off via a zero setpoint.
func SetRoomOff(roomId DeviceId) Params {
	return SetRoomTemperature(roomId, 0)
}

const (
	DefaultBoostDuration = 30 * 60 // seconds
	DefaultOffDuration   = 60 * 60 // seconds
)

// BoostHotWater forces the hot water circuit on for the given number of
// seconds. Zero resets the circuit to its automatic schedule.
func BoostHotWater(seconds int) Params {
	return Params{
		P("cmd", CmdHotWater),
		P("hw_boost_time", seconds),
	}
}

// HotWaterOff forces the hot water circuit off for the given number of
// seconds.
func HotWaterOff(seconds int) Params {
	return Params{
		P("cmd", CmdHotWater),
		P("hw_off_time", seconds),
	}
}

func formatTemp(t float64) string {
	return fmt.Sprintf("%.1f", t)
}
