package domain

import (
	"testing"
	"wunda2mqtt/pkg/wundahub"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The hub reports sig as a 0-100 level, not a dBm reading.
func TestSignalLevelDescriptorIsPercentage(t *testing.T) {
	for _, devType := range []wundahub.DeviceType{wundahub.DeviceSensor, wundahub.DeviceTRV} {
		descriptors := SensorDescriptorsFor(devType)
		var found *SensorDescriptor
		for i := range descriptors {
			if descriptors[i].Key == wundahub.KeySignal {
				found = &descriptors[i]
				break
			}
		}
		require.NotNil(t, found, "%s has no signal descriptor", devType)
		assert.Equal(t, "%", found.Unit)
		assert.Empty(t, found.DeviceClass)
	}
}

func TestSignalLevelValue(t *testing.T) {
	sensor := wundahub.Device{
		Id:    1,
		Type:  wundahub.DeviceSensor,
		State: map[string]string{wundahub.KeySignal: "78"},
	}

	for _, d := range SensorDescriptorsFor(wundahub.DeviceSensor) {
		if d.Key != wundahub.KeySignal {
			continue
		}
		value, ok := d.Value(sensor)
		require.True(t, ok)
		assert.Equal(t, 78.0, value)
	}
}
