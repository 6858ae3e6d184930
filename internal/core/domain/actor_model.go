package domain

import "wunda2mqtt/pkg/wundahub"

const (
	ACTOR_ID_MASTER       = "master"
	ACTOR_ID_HUB          = "hub"
	ACTOR_ID_POLLER       = "poller"
	ACTOR_ID_MQTT         = "mqtt"
	ACTOR_ID_HA_DISCOVERY = "hadiscovery"
)

type FetchDevicesRequest struct {
	ActorRequestMixIn
}

type FetchDevicesResponse struct {
	ActorResponseMixIn
	Graph wundahub.DeviceGraph
}

type SendHubCommandRequest struct {
	ActorRequestMixIn
	Params wundahub.Params
}

type SendHubCommandResponse struct {
	ActorResponseMixIn
	Envelope map[string]any
}

type PublishMessageRequest struct {
	ActorRequestMixIn
	Topic   string
	Payload string
	Retain  bool
}

type PublishMessageResponse struct {
	ActorResponseMixIn
}

type PublishSensorUpdateRequest struct {
	ActorRequestMixIn
	Retain bool
	Event  SensorUpdateEvent
}

type PublishSensorUpdateResponse struct {
	ActorResponseMixIn
}

type PublishDiscoveryRequest struct {
	ActorRequestMixIn
	Sensors      []GenericSensor
	Climates     []GenericClimate
	WaterHeaters []GenericWaterHeater
}

type PublishDiscoveryResponse struct {
	ActorResponseMixIn
}

type ActorHealthRequest struct {
	ActorRequestMixIn
}

type ActorHealthResponse struct {
	ActorResponseMixIn
	Id      string
	Healthy bool
	State   string
}
