package actor

import (
	stdcontext "context"
	"fmt"
	"time"

	"wunda2mqtt/internal/config"
	"wunda2mqtt/internal/core/domain"
	"wunda2mqtt/internal/core/events"
	"wunda2mqtt/internal/core/port"
	. "wunda2mqtt/internal/util/actorutil"
	"wunda2mqtt/pkg/wundahub"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/asynkron/protoactor-go/eventstream"
	"github.com/asynkron/protoactor-go/scheduler"
	"github.com/reugn/go-quartz/job"
	"github.com/reugn/go-quartz/quartz"
	"go.uber.org/zap"
)

// PollerActor owns the device cache. It fetches full snapshots from the hub
// actor on a fixed schedule, merges them and publishes the resulting update
// events. Heating commands also land here so they can be computed against
// the freshest snapshot and trigger a refresh on success.
type PollerActor struct {
	behavior  actor.Behavior
	stash     *Stash
	scheduler *scheduler.TimerScheduler
	cron      quartz.Scheduler

	hubActor    *actor.PID
	config      *config.Config
	eventStream *eventstream.EventStream
	cache       *wundahub.DeviceCache
	climate     port.ClimateStateLogic
	waterHeater port.WaterHeaterLogic

	attempt uint
	online  bool

	logger *zap.Logger
}

type pollTick struct {
}

type pollRetry struct {
}

func NewPollerActor(config *config.Config, hubActor *actor.PID, eventStream *eventstream.EventStream,
	climate port.ClimateStateLogic, waterHeater port.WaterHeaterLogic, logger *zap.Logger) *PollerActor {
	act := &PollerActor{
		config:      config,
		hubActor:    hubActor,
		behavior:    actor.NewBehavior(),
		stash:       &Stash{},
		logger:      ActorLogger(domain.ACTOR_ID_POLLER, logger),
		eventStream: eventStream,
		cache:       wundahub.NewDeviceCache(),
		climate:     climate,
		waterHeater: waterHeater,
	}
	act.behavior.Become(act.StartingReceive)
	return act
}

func (state *PollerActor) Receive(context actor.Context) {
	state.behavior.Receive(context)
}

func (state *PollerActor) StartingReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		state.logger.Debug("poller@starting started")

		state.scheduler = scheduler.NewTimerScheduler(ctx)

		if state.config.Poll.IntervalSeconds > 0 {
			if err := state.startCron(ctx); err != nil {
				panic(err)
			}
		}

		// first poll right away, the cron trigger only fires after one
		// full interval
		ctx.Send(ctx.Self(), pollTick{})
		state.behavior.Become(state.DefaultReceive)
		state.stash.UnstashAll(ctx)
	case *actor.Restarting:
		state.stopCron()
	default:
		state.logger.Debug("poller@starting: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *PollerActor) startCron(ctx actor.Context) error {
	state.cron = quartz.NewStdScheduler()
	state.cron.Start(stdcontext.Background())

	self := ctx.Self()
	root := ctx.ActorSystem().Root
	pollJob := job.NewFunctionJob(func(_ stdcontext.Context) (bool, error) {
		root.Send(self, pollTick{})
		return true, nil
	})
	interval := time.Duration(state.config.Poll.IntervalSeconds) * time.Second
	return state.cron.ScheduleJob(quartz.NewJobDetail(pollJob, quartz.NewJobKey("poll")),
		quartz.NewSimpleTrigger(interval))
}

func (state *PollerActor) stopCron() {
	if state.cron != nil {
		state.cron.Stop()
		state.cron = nil
	}
}

func (state *PollerActor) DefaultReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.ActorHealthRequest:
		state.logger.Debug("poller@default: ActorHealthRequest")
		ctx.Respond(domain.ActorHealthResponse{
			Id:      domain.ACTOR_ID_POLLER,
			Healthy: true,
			State:   state.healthState(),
		})
	case pollTick:
		state.logger.Debug("poller@default tick")
		state.attempt = 1
		state.requestFetch(ctx)
		state.behavior.BecomeStacked(state.WaitingFetchReceive)
	case pollRetry:
		state.logger.Debug("poller@default retry", zap.Uint("attempt", state.attempt))
		state.requestFetch(ctx)
		state.behavior.BecomeStacked(state.WaitingFetchReceive)
	case domain.HeatingCommandRequest:
		state.handleHeatingCommand(ctx, msg)
	case domain.SendHubCommandResponse:
		if msg.HasResponseError() {
			state.logger.Error("poller@default command failed", zap.Error(msg.GetResponseError()))
			return
		}
		state.logger.Debug("poller@default command done, refreshing")
		ctx.Send(ctx.Self(), pollTick{})
	case *actor.Stopping:
		state.stopCron()
	default:
		state.logger.Debug("poller@default: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *PollerActor) WaitingFetchReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.FetchDevicesResponse:
		state.behavior.UnbecomeStacked()
		if msg.HasResponseError() {
			state.logger.Error("poller@waiting fetch error", zap.Error(msg.GetResponseError()),
				zap.Uint("attempt", state.attempt))
			if state.attempt < state.config.Poll.Attempts {
				state.attempt++
				delay := time.Duration(state.config.Poll.AttemptDelayMillis) * time.Millisecond
				state.scheduler.RequestOnce(delay, ctx.Self(), pollRetry{})
			} else {
				// poll cycle lost. Keep the stale cache, report offline.
				state.markOffline()
			}
			state.stash.UnstashAll(ctx)
			return
		}
		state.logger.Debug("poller@waiting fetch done", zap.Int("devices", len(msg.Graph)))
		state.cache.Merge(msg.Graph)
		state.markOnline()
		state.publishUpdates()
		state.stash.UnstashAll(ctx)
	case *actor.Stopping:
		state.stopCron()
	default:
		state.logger.Debug("poller@waiting: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *PollerActor) requestFetch(ctx actor.Context) {
	timeout := time.Duration(state.config.Hub.TimeoutMillis)*time.Millisecond + 2*time.Second
	PipeToSelfWithRecover(ctx, ctx.RequestFuture(state.hubActor, domain.FetchDevicesRequest{}, timeout), func(err error) any {
		return domain.FetchDevicesResponse{
			ActorResponseMixIn: domain.ActorResponseMixIn{
				ResponseError: err,
			},
		}
	})
}

func (state *PollerActor) markOnline() {
	if !state.online {
		state.online = true
		state.eventStream.Publish(events.BridgeStateToUpdateEvent(true))
	}
}

func (state *PollerActor) markOffline() {
	if state.online {
		state.online = false
		state.eventStream.Publish(events.BridgeStateToUpdateEvent(false))
	}
}

func (state *PollerActor) healthState() string {
	if state.online {
		return "online"
	}
	return "offline"
}

// publishUpdates converts the merged snapshot into update events: plain
// sensors per device, a climate state per room and the hot water state.
func (state *PollerActor) publishUpdates() {
	graph := state.cache.All()

	for _, ev := range events.DeviceGraphToUpdateEvents(graph) {
		state.eventStream.Publish(ev)
	}

	for _, room := range state.cache.ByType(wundahub.DeviceRoom) {
		cs := state.climate.Derive(room, trvsForRoom(graph, room.Id))
		state.eventStream.Publish(events.ClimateStateToUpdateEvent(room.Id, cs))
	}

	if hub, ok := state.cache.Hub(); ok {
		op := state.waterHeater.Derive(hub)
		state.eventStream.Publish(events.WaterHeaterToUpdateEvent(op))
	}
}

func (state *PollerActor) handleHeatingCommand(ctx actor.Context, cmd domain.HeatingCommandRequest) {
	params, err := state.commandParams(cmd)
	if err != nil {
		state.logger.Error("poller@default invalid heating command", zap.Error(err),
			zap.String("type", fmt.Sprintf("%T", cmd)))
		return
	}
	state.logger.Debug("poller@default heating command", zap.String("params", params.Encode()))
	ctx.Request(state.hubActor, domain.SendHubCommandRequest{
		Params: params,
	})
}

func (state *PollerActor) commandParams(cmd domain.HeatingCommandRequest) (wundahub.Params, error) {
	switch msg := cmd.(type) {
	case domain.SetRoomTemperatureRequest:
		if _, ok := state.cache.Get(msg.RoomId); !ok {
			return nil, fmt.Errorf("unknown room %d", msg.RoomId)
		}
		return wundahub.SetRoomTemperature(msg.RoomId, msg.Temperature), nil
	case domain.SetRoomModeRequest:
		room, ok := state.cache.Get(msg.RoomId)
		if !ok {
			return nil, fmt.Errorf("unknown room %d", msg.RoomId)
		}
		switch msg.Mode {
		case domain.HVAC_MODE_OFF:
			return wundahub.SetRoomOff(msg.RoomId), nil
		case domain.HVAC_MODE_HEAT:
			current := state.climate.CurrentTemperature(room, trvsForRoom(state.cache.All(), msg.RoomId))
			if current == nil {
				return nil, fmt.Errorf("room %d has no temperature reading", msg.RoomId)
			}
			return wundahub.SetRoomHeat(msg.RoomId, *current), nil
		case domain.HVAC_MODE_AUTO:
			return wundahub.SetRoomProgrammed(msg.RoomId), nil
		default:
			return nil, fmt.Errorf("unsupported hvac mode %s", msg.Mode)
		}
	case domain.SetRoomPresetRequest:
		room, ok := state.cache.Get(msg.RoomId)
		if !ok {
			return nil, fmt.Errorf("unknown room %d", msg.RoomId)
		}
		temp, ok := state.climate.PresetTemperature(room, msg.Preset)
		if !ok {
			return nil, fmt.Errorf("room %d has no %s preset", msg.RoomId, msg.Preset)
		}
		return wundahub.SetRoomTemperature(msg.RoomId, temp), nil
	case domain.SetWaterHeaterOperationRequest:
		switch msg.Operation {
		case domain.WATER_HEATER_BOOST_ON:
			return wundahub.BoostHotWater(wundahub.DefaultBoostDuration), nil
		case domain.WATER_HEATER_MANUAL_OFF:
			return wundahub.HotWaterOff(wundahub.DefaultOffDuration), nil
		case domain.WATER_HEATER_AUTO:
			return wundahub.BoostHotWater(0), nil
		default:
			return nil, fmt.Errorf("unsupported water heater operation %s", msg.Operation)
		}
	default:
		return nil, fmt.Errorf("unsupported heating command %T", cmd)
	}
}

func trvsForRoom(graph wundahub.DeviceGraph, roomId wundahub.DeviceId) []wundahub.Device {
	var trvs []wundahub.Device
	for _, dev := range graph {
		if dev.Type != wundahub.DeviceTRV {
			continue
		}
		id, err := wundahub.RoomIdForDevice(dev)
		if err != nil {
			continue
		}
		if id == roomId {
			trvs = append(trvs, dev)
		}
	}
	return trvs
}
