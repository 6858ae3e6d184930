package actor

import (
	"errors"
	"fmt"
	"time"

	"wunda2mqtt/internal/config"
	"wunda2mqtt/internal/core/domain"
	"wunda2mqtt/internal/util/actorutil"
	"wunda2mqtt/pkg/wundahub"

	"github.com/asynkron/protoactor-go/actor"
	"go.uber.org/zap"
)

type HADiscoveryActor struct {
	config           *config.Config
	behavior         actor.Behavior
	stash            *actorutil.Stash
	hubActor         *actor.PID
	mqttActor        *actor.PID
	hubActorHealthy  bool
	mqttActorHealthy bool
	healthyRecv      int

	logger *zap.Logger
}

func NewHADiscoveryActor(config *config.Config, hubActor *actor.PID, mqttActor *actor.PID, logger *zap.Logger) *HADiscoveryActor {
	act := &HADiscoveryActor{
		config:    config,
		hubActor:  hubActor,
		mqttActor: mqttActor,
		behavior:  actor.NewBehavior(),
		stash:     &actorutil.Stash{},
		logger:    actorutil.ActorLogger(domain.ACTOR_ID_HA_DISCOVERY, logger),
	}
	act.behavior.Become(act.StartingReceive)
	return act
}

func (state *HADiscoveryActor) Receive(context actor.Context) {
	state.behavior.Receive(context)
}

func (state *HADiscoveryActor) StartingReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		state.logger.Debug("hadiscovery@starting started")

		// Check Hub and MQTT actor healthy
		state.healthyRecv = 0
		state.hubActorHealthy = false
		state.mqttActorHealthy = false
		// Hub Actor Request
		actorutil.PipeToSelfWithRecover(ctx, ctx.RequestFuture(state.hubActor, domain.ActorHealthRequest{}, 2*time.Second), func(err error) any {
			return domain.ActorHealthResponse{
				Id:      domain.ACTOR_ID_HUB,
				Healthy: false,
			}
		})
		// MQTT Actor Request
		actorutil.PipeToSelfWithRecover(ctx, ctx.RequestFuture(state.mqttActor, domain.ActorHealthRequest{}, 2*time.Second), func(err error) any {
			return domain.ActorHealthResponse{
				Id:      domain.ACTOR_ID_MQTT,
				Healthy: false,
			}
		})
		state.behavior.Become(state.WaitingHealthyReceive)
	case *actor.Restarting:
	default:
		state.logger.Debug("hadiscovery@starting: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *HADiscoveryActor) WaitingHealthyReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.ActorHealthResponse:
		state.logger.Debug("hadiscovery@healthcheck ActorHealthResponse", zap.String("sender", msg.Id), zap.Bool("healthy", msg.Healthy))
		state.healthyRecv++
		if msg.Healthy {
			switch msg.Id {
			case domain.ACTOR_ID_HUB:
				state.hubActorHealthy = true
			case domain.ACTOR_ID_MQTT:
				state.mqttActorHealthy = true
			}
		}
		if state.healthyRecv == 2 {

			if state.hubActorHealthy && state.mqttActorHealthy {
				// Ask Hub FetchDevicesRequest
				fetchTimeout := time.Duration(state.config.Hub.TimeoutMillis)*time.Millisecond + 4*time.Second
				actorutil.PipeToSelfWithRecover(ctx, ctx.RequestFuture(state.hubActor, domain.FetchDevicesRequest{}, fetchTimeout), func(err error) any {
					return domain.FetchDevicesResponse{
						ActorResponseMixIn: domain.ActorResponseMixIn{
							ResponseError: err,
						},
					}
				})
				state.behavior.Become(state.WaitingDevicesReceive)
				state.stash.UnstashAll(ctx)
			} else {
				panic(errors.New("MQTT Actor or Hub Actor are not healthy"))
			}
		}
	default:
		state.logger.Debug("hadiscovery@healthcheck: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *HADiscoveryActor) Done(ctx actor.Context) {

}

func (state *HADiscoveryActor) WaitingDevicesReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.FetchDevicesResponse:
		if msg.HasResponseError() {
			panic(msg.GetResponseError())
		}
		state.logger.Debug("hadiscovery@devices: FetchDevicesResponse", zap.Int("devices", len(msg.Graph)))

		ctx.Send(state.mqttActor, state.buildDiscovery(msg.Graph))
		state.behavior.Become(state.Done)

	default:
		state.logger.Debug("hadiscovery@devices: default recv", zap.String("type", fmt.Sprintf("%T", msg)))
	}
}

// buildDiscovery declares every entity the bridge publishes: the bridge
// connectivity sensor, per-device sensors, one climate per room and the hot
// water circuit, all linked under the hub device.
func (state *HADiscoveryActor) buildDiscovery(graph wundahub.DeviceGraph) domain.PublishDiscoveryRequest {

	var sensors []domain.GenericSensor
	var climates []domain.GenericClimate
	var waterHeaters []domain.GenericWaterHeater

	bridgeDevice := domain.BridgeDevice(state.config.MQTT.BaseTopic)
	sensors = append(sensors, domain.BridgeSensors(bridgeDevice)...)

	hub, hasHub := graph.Hub()
	hubDevice := bridgeDevice
	if hasHub {
		hubDevice = domain.HubDevice(hub)
		hubDevice.ViaDevice = bridgeDevice.Id
		waterHeaters = append(waterHeaters, domain.HubWaterHeater(hubDevice))
	}

	for _, dev := range graph {
		switch dev.Type {
		case wundahub.DeviceRoom:
			haDevice := domain.HubChildDevice(dev, hubDevice)
			climates = append(climates, domain.RoomClimate(dev, haDevice))
			deviceSensors := domain.DeviceSensors(dev, haDevice)
			for i := range deviceSensors {
				deviceSensors[i].Device = domain.IdDevice(haDevice)
			}
			sensors = append(sensors, deviceSensors...)
		case wundahub.DeviceSensor, wundahub.DeviceTRV:
			haDevice := domain.HubChildDevice(dev, hubDevice)
			deviceSensors := domain.DeviceSensors(dev, haDevice)
			for i := range deviceSensors {
				if i > 0 {
					deviceSensors[i].Device = domain.IdDevice(haDevice)
				}
				sensors = append(sensors, deviceSensors[i])
			}
		}
	}

	return domain.PublishDiscoveryRequest{
		Sensors:      sensors,
		Climates:     climates,
		WaterHeaters: waterHeaters,
	}
}
