package wundahub

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeviceTypeForId(t *testing.T) {
	tests := []struct {
		id      DeviceId
		version float64
		want    DeviceType
	}{
		{0, 4, DeviceHub},
		{1, 4, DeviceSensor},
		{30, 4, DeviceSensor},
		{31, 4, DeviceTRV},
		{89, 4, DeviceTRV},
		{90, 4, DeviceUFH},
		{94, 4, DeviceUFH},
		{95, 4, DeviceUnknown},
		{120, 4, DeviceUnknown},
		{121, 4, DeviceRoom},
		{150, 4, DeviceRoom},
		{151, 4, DeviceUnknown},
		{0, 2, DeviceHub},
		{31, 2, DeviceTRV},
		{79, 2, DeviceTRV},
		{80, 2, DeviceUFH},
		{84, 2, DeviceUFH},
		{100, 2, DeviceRoom},
		{119, 2, DeviceRoom},
		{120, 2, DeviceUnknown},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, DeviceTypeForId(tc.id, tc.version),
			"id %d version %v", tc.id, tc.version)
	}
}

func TestUnknownVersionFallsBackAndWarnsOnce(t *testing.T) {
	var warned []float64
	prev := UnknownVersionWarning
	UnknownVersionWarning = func(v float64) { warned = append(warned, v) }
	defer func() { UnknownVersionWarning = prev }()

	// unknown version classifies like version 4
	assert.Equal(t, DeviceRoom, DeviceTypeForId(121, 7.5))
	assert.Equal(t, DeviceTRV, DeviceTypeForId(85, 7.5))
	assert.Equal(t, DeviceUFH, DeviceTypeForId(90, 7.5))

	assert.Equal(t, []float64{7.5}, warned, "one warning per distinct version value")
}

func TestSensorIdForRoom(t *testing.T) {
	for _, version := range []float64{2, 4} {
		ranges := IdRangesForVersion(version)
		for offset := DeviceId(0); offset < 5; offset++ {
			room := Device{Id: ranges.MinRoomId + offset, Type: DeviceRoom, HWVersion: version}
			sensorId, err := SensorIdForRoom(room)
			require.NoError(t, err)
			assert.Equal(t, room.Id-ranges.MinRoomId+ranges.MinSensorId, sensorId)
		}
	}

	_, err := SensorIdForRoom(Device{Id: 1, Type: DeviceSensor, HWVersion: 4})
	assert.Error(t, err)
}

func TestRoomIdForDevice(t *testing.T) {
	roomId, err := RoomIdForDevice(Device{Id: 3, Type: DeviceSensor, HWVersion: 4})
	require.NoError(t, err)
	assert.Equal(t, DeviceId(123), roomId)

	roomId, err = RoomIdForDevice(Device{Id: 125, Type: DeviceRoom, HWVersion: 4})
	require.NoError(t, err)
	assert.Equal(t, DeviceId(125), roomId)

	roomId, err = RoomIdForDevice(Device{
		Id: 31, Type: DeviceTRV, HWVersion: 4,
		State: map[string]string{KeyRoomId: "2"},
	})
	require.NoError(t, err)
	assert.Equal(t, DeviceId(123), roomId)
}

func TestRoomIdForUnassignedTRV(t *testing.T) {
	_, err := RoomIdForDevice(Device{Id: 31, Type: DeviceTRV, HWVersion: 4, State: map[string]string{}})
	assert.ErrorIs(t, err, ErrNoRoomAssociation)
}

func TestRoomIdForDeviceInvalidTypes(t *testing.T) {
	for _, devType := range []DeviceType{DeviceHub, DeviceUFH, DeviceUnknown} {
		_, err := RoomIdForDevice(Device{Id: 0, Type: devType, HWVersion: 4})
		assert.Error(t, err, "type %s", devType)
		assert.NotErrorIs(t, err, ErrNoRoomAssociation)
	}
}
