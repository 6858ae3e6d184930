package wundahub

import (
	"fmt"
	"strconv"
	"strings"
)

type rawRecord struct {
	line int
	id   DeviceId
	kvs  map[string]string
}

// ParseSyncValues decodes a syncvalues.cgi payload into a device graph.
//
// Records are newline separated, fields are `;` separated: field 0 is the
// device id, field 1 is a used flag ("0" marks an unused slot), everything
// after that is `key:value`. The hub serial number and hardware version may
// appear on any line; a payload without a serial number is a FormatError.
func ParseSyncValues(raw string) (DeviceGraph, error) {
	var (
		records   []rawRecord
		hubSerial string
		hwVersion = float64(defaultHardwareVersion)
		hwLatched bool
	)

	for i, line := range strings.Split(raw, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, ";")
		if len(fields) < 2 {
			return nil, &FormatError{Line: i + 1, Reason: fmt.Sprintf("expected at least 2 fields, got %q", line)}
		}
		id, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, &FormatError{Line: i + 1, Reason: fmt.Sprintf("bad device id %q", fields[0])}
		}
		if fields[1] == "0" {
			// unused slot
			continue
		}
		kvs := make(map[string]string, len(fields)-2)
		for _, f := range fields[2:] {
			if f == "" {
				continue
			}
			k, v, _ := strings.Cut(f, ":")
			kvs[k] = v
		}
		if sn, ok := kvs["device_sn"]; ok && hubSerial == "" {
			hubSerial = sn
		}
		if hv, ok := kvs[KeyHardVersion]; ok && !hwLatched {
			if parsed, err := strconv.ParseFloat(hv, 64); err == nil {
				hwVersion = parsed
				hwLatched = true
			}
		}
		records = append(records, rawRecord{line: i + 1, id: DeviceId(id), kvs: kvs})
	}

	if hubSerial == "" {
		return nil, &FormatError{Reason: "no hub serial number (device_sn) in payload"}
	}

	graph := make(DeviceGraph, len(records))
	for _, rec := range records {
		devType := DeviceTypeForId(rec.id, hwVersion)
		if devType == DeviceRoom && rec.kvs[KeyEnable] == roomDisabled {
			continue
		}
		dev, seen := graph[rec.id]
		if !seen {
			dev = Device{
				Id:         rec.id,
				Type:       devType,
				HWVersion:  hwVersion,
				ExternalId: fmt.Sprintf("%s.%d", hubSerial, rec.id),
				Identity:   map[string]string{},
				State:      map[string]string{},
			}
		}
		for k, v := range rec.kvs {
			if _, identity := identityKeys[k]; identity {
				dev.Identity[k] = v
			} else {
				dev.State[k] = v
			}
		}
		graph[rec.id] = dev
	}

	// Rooms mirror their positionally paired sensor's state. The sensor may
	// legitimately be absent from this poll; the cache merge fills it in later.
	for id, dev := range graph {
		if dev.Type != DeviceRoom {
			continue
		}
		sensorId, err := SensorIdForRoom(dev)
		if err != nil {
			continue
		}
		if sensor, ok := graph[sensorId]; ok {
			dev.SensorState = cloneStateMap(sensor.State)
			graph[id] = dev
		}
	}

	return graph, nil
}
