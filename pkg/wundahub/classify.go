package wundahub

import (
	"fmt"
	"strconv"
	"sync"
)

// IdRanges partitions the device id space of one hardware generation.
// Ranges are inclusive and must not overlap; anything below MinSensorId is
// the hub itself, anything outside every range is unknown.
type IdRanges struct {
	MinSensorId DeviceId
	MaxSensorId DeviceId
	MinTRVId    DeviceId
	MaxTRVId    DeviceId
	MinUFHId    DeviceId
	MaxUFHId    DeviceId
	MinRoomId   DeviceId
	MaxRoomId   DeviceId
}

var idRangeTables = map[int]IdRanges{
	2: {
		MinSensorId: 1, MaxSensorId: 30,
		MinTRVId: 31, MaxTRVId: 79,
		MinUFHId: 80, MaxUFHId: 84,
		MinRoomId: 100, MaxRoomId: 119,
	},
	4: {
		MinSensorId: 1, MaxSensorId: 30,
		MinTRVId: 31, MaxTRVId: 89,
		MinUFHId: 90, MaxUFHId: 94,
		MinRoomId: 121, MaxRoomId: 150,
	},
}

const defaultHardwareVersion = 4

// UnknownVersionWarning is called at most once per distinct unknown hardware
// version value, when the classifier falls back to the default range table.
var UnknownVersionWarning func(version float64)

var warnedVersions sync.Map

// IdRangesForVersion resolves the range table for a reported hardware
// version. Unknown versions fall back to the newest known table and warn
// once per distinct value.
func IdRangesForVersion(version float64) IdRanges {
	if r, ok := idRangeTables[int(version)]; ok {
		return r
	}
	if _, warned := warnedVersions.LoadOrStore(version, struct{}{}); !warned {
		if UnknownVersionWarning != nil {
			UnknownVersionWarning(version)
		}
	}
	return idRangeTables[defaultHardwareVersion]
}

// DeviceTypeForId classifies a device id against the version's range table.
func DeviceTypeForId(id DeviceId, version float64) DeviceType {
	r := IdRangesForVersion(version)
	switch {
	case id < r.MinSensorId:
		return DeviceHub
	case id <= r.MaxSensorId:
		return DeviceSensor
	case id >= r.MinTRVId && id <= r.MaxTRVId:
		return DeviceTRV
	case id >= r.MinUFHId && id <= r.MaxUFHId:
		return DeviceUFH
	case id >= r.MinRoomId && id <= r.MaxRoomId:
		return DeviceRoom
	default:
		return DeviceUnknown
	}
}

// SensorIdForRoom computes the id of the sensor paired with a room. The wire
// format carries no foreign key; the pairing is positional, same offset into
// the sensor range as the room has into the room range.
func SensorIdForRoom(room Device) (DeviceId, error) {
	if room.Type != DeviceRoom {
		return 0, fmt.Errorf("wundahub: device %d is a %s, not a room", room.Id, room.Type)
	}
	r := IdRangesForVersion(room.HWVersion)
	return room.Id - r.MinRoomId + r.MinSensorId, nil
}

// RoomIdForDevice resolves the room a device belongs to. Sensors pair by
// offset arithmetic, TRVs carry a zero-based room_id in their state (absent
// means the valve is unassigned, ErrNoRoomAssociation), rooms resolve to
// themselves. Hubs, UFH boxes and unknown devices have no room concept.
func RoomIdForDevice(dev Device) (DeviceId, error) {
	r := IdRangesForVersion(dev.HWVersion)
	switch dev.Type {
	case DeviceRoom:
		return dev.Id, nil
	case DeviceSensor:
		return dev.Id - r.MinSensorId + r.MinRoomId, nil
	case DeviceTRV:
		raw, ok := dev.State[KeyRoomId]
		if !ok {
			return 0, ErrNoRoomAssociation
		}
		idx, err := strconv.Atoi(raw)
		if err != nil {
			return 0, fmt.Errorf("wundahub: trv %d has unparseable room_id %q: %w", dev.Id, raw, err)
		}
		return DeviceId(idx) + r.MinRoomId, nil
	default:
		return 0, fmt.Errorf("wundahub: device type %s has no room association", dev.Type)
	}
}
