package wundahub

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFetch() DeviceGraph {
	return DeviceGraph{
		1: {
			Id: 1, Type: DeviceSensor, HWVersion: 4, ExternalId: "SN.1",
			Identity: map[string]string{"name": "Sensor"},
			State:    map[string]string{"temp": "18.0", "rh": "50.00"},
		},
		121: {
			Id: 121, Type: DeviceRoom, HWVersion: 4, ExternalId: "SN.121",
			Identity:    map[string]string{"name": "Living Room"},
			State:       map[string]string{"temp": "20.0", "t_norm": "20.0"},
			SensorState: map[string]string{"temp": "18.0", "rh": "50.00"},
		},
	}
}

func TestCacheMergeIdempotent(t *testing.T) {
	cache := NewDeviceCache()
	fetch := sampleFetch()

	cache.Merge(fetch)
	first := cache.All()
	cache.Merge(sampleFetch())
	second := cache.All()

	assert.Equal(t, first, second)
}

func TestCacheMergeRetainsMissingKeys(t *testing.T) {
	cache := NewDeviceCache()
	cache.Merge(sampleFetch())

	// next poll reports temp only, rh dropped from the wire
	cache.Merge(DeviceGraph{
		1: {
			Id: 1, Type: DeviceSensor, HWVersion: 4, ExternalId: "SN.1",
			Identity: map[string]string{"name": "Sensor"},
			State:    map[string]string{"temp": "18.5"},
		},
	})

	dev, ok := cache.Get(1)
	require.True(t, ok)
	assert.Equal(t, "18.5", dev.State["temp"], "new key wins")
	assert.Equal(t, "50.00", dev.State["rh"], "omitted key retained")
}

func TestCacheMergeReplacesNonStateFields(t *testing.T) {
	cache := NewDeviceCache()
	cache.Merge(sampleFetch())

	cache.Merge(DeviceGraph{
		1: {
			Id: 1, Type: DeviceSensor, HWVersion: 4, ExternalId: "SN.1",
			Identity: map[string]string{"name": "Renamed Sensor"},
			State:    map[string]string{},
		},
	})

	dev, ok := cache.Get(1)
	require.True(t, ok)
	assert.Equal(t, "Renamed Sensor", dev.Identity["name"])
}

func TestCacheNeverRemovesDevices(t *testing.T) {
	cache := NewDeviceCache()
	cache.Merge(sampleFetch())

	// poll that only reports the room
	cache.Merge(DeviceGraph{121: sampleFetch()[121]})

	_, ok := cache.Get(1)
	assert.True(t, ok, "unreported device stays cached")
	assert.Len(t, cache.All(), 2)
}

func TestCacheSensorStateMerges(t *testing.T) {
	cache := NewDeviceCache()
	cache.Merge(sampleFetch())

	cache.Merge(DeviceGraph{
		121: {
			Id: 121, Type: DeviceRoom, HWVersion: 4, ExternalId: "SN.121",
			Identity:    map[string]string{"name": "Living Room"},
			State:       map[string]string{"temp": "20.0"},
			SensorState: map[string]string{"temp": "18.7"},
		},
	})

	room, ok := cache.Get(121)
	require.True(t, ok)
	assert.Equal(t, "18.7", room.SensorState["temp"])
	assert.Equal(t, "50.00", room.SensorState["rh"], "omitted sensor key retained")
}

func TestCacheReadsAreCopies(t *testing.T) {
	cache := NewDeviceCache()
	cache.Merge(sampleFetch())

	dev, ok := cache.Get(1)
	require.True(t, ok)
	dev.State["temp"] = "99.9"

	again, _ := cache.Get(1)
	assert.Equal(t, "18.0", again.State["temp"])

	all := cache.All()
	all[1].State["temp"] = "99.9"
	again, _ = cache.Get(1)
	assert.Equal(t, "18.0", again.State["temp"])
}

func TestCacheByType(t *testing.T) {
	cache := NewDeviceCache()
	cache.Merge(sampleFetch())

	rooms := cache.ByType(DeviceRoom)
	require.Len(t, rooms, 1)
	assert.Equal(t, DeviceId(121), rooms[0].Id)
	assert.Empty(t, cache.ByType(DeviceTRV))
}
