package port

import (
	"context"

	"wunda2mqtt/pkg/wundahub"
)

// HubService is the hub-facing side of the bridge. Implemented by
// wundahub.HubClient, faked in tests.
type HubService interface {
	Host() string
	GetDevices(ctx context.Context) (wundahub.DeviceGraph, error)
	SendCommand(ctx context.Context, params wundahub.Params) (map[string]any, error)
	ValidateConnection(ctx context.Context) error
}

var _ HubService = (*wundahub.HubClient)(nil)
