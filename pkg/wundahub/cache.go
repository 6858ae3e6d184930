package wundahub

import "sync"

// DeviceCache holds the last-known merged device graph across polls.
//
// Merge policy: per device, State and SensorState merge key-wise (new keys
// win, keys the new poll omits are retained) and every other field is
// replaced wholesale. Devices never leave the cache once seen, a poll that
// omits one means temporarily unreported, not gone.
type DeviceCache struct {
	mu      sync.RWMutex
	devices DeviceGraph
}

func NewDeviceCache() *DeviceCache {
	return &DeviceCache{devices: DeviceGraph{}}
}

// Merge folds one fetch into the cache. Re-merging an identical fetch is a
// no-op.
func (c *DeviceCache) Merge(fetch DeviceGraph) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, incoming := range fetch {
		existing, ok := c.devices[id]
		if !ok {
			c.devices[id] = incoming.clone()
			continue
		}
		existing.Id = incoming.Id
		existing.Type = incoming.Type
		existing.HWVersion = incoming.HWVersion
		existing.ExternalId = incoming.ExternalId
		existing.Identity = cloneStateMap(incoming.Identity)
		existing.State = mergeStateMaps(existing.State, incoming.State)
		existing.SensorState = mergeStateMaps(existing.SensorState, incoming.SensorState)
		c.devices[id] = existing
	}
}

// Get returns a copy of one cached device.
func (c *DeviceCache) Get(id DeviceId) (Device, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	d, ok := c.devices[id]
	if !ok {
		return Device{}, false
	}
	return d.clone(), true
}

// All returns a copy of the full cached graph.
func (c *DeviceCache) All() DeviceGraph {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.devices.clone()
}

// Hub returns the cached hub device, if one has been seen.
func (c *DeviceCache) Hub() (Device, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	d, ok := c.devices.Hub()
	if !ok {
		return Device{}, false
	}
	return d.clone(), true
}

// ByType returns copies of all cached devices of one type.
func (c *DeviceCache) ByType(t DeviceType) []Device {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []Device
	for _, d := range c.devices {
		if d.Type == t {
			out = append(out, d.clone())
		}
	}
	return out
}

func mergeStateMaps(old, incoming map[string]string) map[string]string {
	if incoming == nil {
		return old
	}
	if old == nil {
		return cloneStateMap(incoming)
	}
	for k, v := range incoming {
		old[k] = v
	}
	return old
}
