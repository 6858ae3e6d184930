package wundahub

import (
	"fmt"
	"strings"
)

type DeviceId int

type DeviceType int

const (
	DeviceUnknown DeviceType = iota
	DeviceHub
	DeviceSensor
	DeviceTRV
	DeviceUFH
	DeviceRoom
)

func (t DeviceType) String() string {
	switch t {
	case DeviceHub:
		return "hub"
	case DeviceSensor:
		return "sensor"
	case DeviceTRV:
		return "trv"
	case DeviceUFH:
		return "ufh"
	case DeviceRoom:
		return "room"
	default:
		return "unknown"
	}
}

// Device is one normalized record of the hub's device graph.
// Identity holds the reserved metadata keys (serial numbers, names, MAC),
// State holds every other wire key, untyped. SensorState is only populated
// on rooms and mirrors the paired sensor's State at merge time.
type Device struct {
	Id          DeviceId
	Type        DeviceType
	HWVersion   float64
	ExternalId  string
	Identity    map[string]string
	State       map[string]string
	SensorState map[string]string
}

// SerialNumber returns the device_sn identity field, set on the hub only.
func (d Device) SerialNumber() string {
	return d.Identity["device_sn"]
}

// DisplayName prefers the user-assigned name over the factory device_name.
// The hub encodes spaces in names as %20 on the wire.
func (d Device) DisplayName() string {
	if n := d.Identity["name"]; n != "" {
		return decodeName(n)
	}
	if n := d.Identity["device_name"]; n != "" {
		return decodeName(n)
	}
	return fmt.Sprintf("%s %d", d.Type, d.Id)
}

func decodeName(n string) string {
	return strings.ReplaceAll(n, "%20", " ")
}

func (d Device) clone() Device {
	d.Identity = cloneStateMap(d.Identity)
	d.State = cloneStateMap(d.State)
	d.SensorState = cloneStateMap(d.SensorState)
	return d
}

// DeviceGraph is the full snapshot produced by one fetch, keyed by device id.
type DeviceGraph map[DeviceId]Device

// Hub returns the device carrying the hub serial number.
func (g DeviceGraph) Hub() (Device, bool) {
	for _, d := range g {
		if d.Type == DeviceHub {
			return d, true
		}
	}
	return Device{}, false
}

func (g DeviceGraph) clone() DeviceGraph {
	out := make(DeviceGraph, len(g))
	for id, d := range g {
		out[id] = d.clone()
	}
	return out
}

func cloneStateMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
