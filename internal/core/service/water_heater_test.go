package service

import (
	"testing"
	"wunda2mqtt/internal/core/domain"
	"wunda2mqtt/pkg/wundahub"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

var waterHeater = &DefaultWaterHeaterLogic{
	Logger: zap.Must(zap.NewDevelopment()),
}

func genHub(mode, boost string) wundahub.Device {
	return wundahub.Device{
		Id:   0,
		Type: wundahub.DeviceHub,
		State: map[string]string{
			"hw_mode_state":  mode,
			"hw_boost_state": boost,
		},
	}
}

func TestWaterHeaterDerive(t *testing.T) {
	tests := []struct {
		name      string
		mode      string
		boost     string
		operation domain.WaterHeaterOperation
	}{
		{"relay on schedule", "1", "0", domain.WATER_HEATER_AUTO_ON},
		{"relay on boost", "1", "1", domain.WATER_HEATER_BOOST_ON},
		{"relay off schedule", "0", "0", domain.WATER_HEATER_AUTO_OFF},
		{"relay off manual", "0", "2", domain.WATER_HEATER_MANUAL_OFF},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.operation, waterHeater.Derive(genHub(tc.mode, tc.boost)))
		})
	}
}

func TestWaterHeaterDeriveMissingState(t *testing.T) {
	hub := wundahub.Device{Id: 0, Type: wundahub.DeviceHub}
	assert.Equal(t, domain.WATER_HEATER_AUTO_OFF, waterHeater.Derive(hub))
}
