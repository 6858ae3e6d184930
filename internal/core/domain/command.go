package domain

import (
	"fmt"

	"wunda2mqtt/pkg/wundahub"
)

// HeatingCommandRequest

type HeatingCommandRequest interface {
	ActorRequest
	HeatingCommand() string
}

type HeatingCommandRequestMixIn struct {
	ActorRequestMixIn
}

func (r HeatingCommandRequestMixIn) HeatingCommand() string {
	return fmt.Sprintf("%T", r)
}

// HeatingCommandResponse

type HeatingCommandResponse interface {
	ActorResponse
	HeatingCommandResponse() string
}

type HeatingCommandResponseMixIn struct {
	ActorResponse
}

func (r HeatingCommandResponseMixIn) HeatingCommandResponse() string {
	return fmt.Sprintf("%T", r)
}

// Heating commands

type SetRoomTemperatureRequest struct {
	HeatingCommandRequestMixIn
	RoomId      wundahub.DeviceId
	Temperature float64
}

type SetRoomTemperatureResponse struct {
	HeatingCommandResponseMixIn
}

type SetRoomModeRequest struct {
	HeatingCommandRequestMixIn
	RoomId wundahub.DeviceId
	Mode   HvacMode
}

type SetRoomModeResponse struct {
	HeatingCommandResponseMixIn
}

type SetRoomPresetRequest struct {
	HeatingCommandRequestMixIn
	RoomId wundahub.DeviceId
	Preset Preset
}

type SetRoomPresetResponse struct {
	HeatingCommandResponseMixIn
}

type SetWaterHeaterOperationRequest struct {
	HeatingCommandRequestMixIn
	Operation WaterHeaterOperation
}

type SetWaterHeaterOperationResponse struct {
	HeatingCommandResponseMixIn
}

// ensure interface compliance
var _ HeatingCommandRequest = (*SetRoomTemperatureRequest)(nil)
