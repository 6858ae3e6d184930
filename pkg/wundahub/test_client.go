package wundahub

import "context"

func CreateTestHubService() (*TestHubService, error) {
	return &TestHubService{}, nil
}

// TestHubService serves a canned two-room device graph without touching the
// network.
type TestHubService struct {
	Commands []Params
}

func (hub *TestHubService) Host() string {
	return "-.-.-.-"
}

func (hub *TestHubService) ValidateConnection(ctx context.Context) error {
	return nil
}

func (hub *TestHubService) GetDevices(ctx context.Context) (DeviceGraph, error) {
	return DeviceGraph{
		0: {
			Id:        0,
			Type:      DeviceHub,
			HWVersion: 4,
			Identity: map[string]string{
				"device_sn":   "0123456789AB",
				"device_name": "HubSwitch",
			},
			State: map[string]string{
				KeyHardVersion:   "4",
				KeyHotWaterMode:  "0",
				KeyHotWaterBoost: "0",
			},
		},
		1: {
			Id:        1,
			Type:      DeviceSensor,
			HWVersion: 4,
			Identity: map[string]string{
				"name": "Living%20Room%20Sensor",
			},
			State: map[string]string{
				KeyTemp:     "21.4",
				KeyHumidity: "47.2",
				KeyBattery:  "92",
				KeySignal:   "78",
			},
		},
		31: {
			Id:        31,
			Type:      DeviceTRV,
			HWVersion: 4,
			Identity: map[string]string{
				"name": "Living%20Room%20TRV",
			},
			State: map[string]string{
				KeyRoomId:        "0",
				KeyValveTemp:     "21.0",
				KeyValvePosition: "35",
				KeyBattery:       "88",
				KeySignal:        "64",
			},
		},
		121: {
			Id:        121,
			Type:      DeviceRoom,
			HWVersion: 4,
			Identity: map[string]string{
				"name": "Living%20Room",
			},
			State: map[string]string{
				KeyTemp:          "21.5",
				KeyTempPre:       "32",
				KeyPresetReduced: "16.0",
				KeyPresetEco:     "19.0",
				KeyPresetComfort: "21.5",
			},
			SensorState: map[string]string{
				KeyTemp:     "21.4",
				KeyHumidity: "47.2",
			},
		},
	}, nil
}

func (hub *TestHubService) SendCommand(ctx context.Context, params Params) (map[string]any, error) {
	hub.Commands = append(hub.Commands, params)
	return map[string]any{"cmd_resp": "ok"}, nil
}
