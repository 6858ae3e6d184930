package actor

import (
	"context"
	"fmt"
	"time"

	"wunda2mqtt/internal/config"
	"wunda2mqtt/internal/core/domain"
	"wunda2mqtt/internal/core/port"
	"wunda2mqtt/internal/util/actorutil"
	"wunda2mqtt/pkg/wundahub"

	"github.com/asynkron/protoactor-go/actor"
	"go.uber.org/zap"
)

type HubActor struct {
	behavior actor.Behavior
	stash    *actorutil.Stash
	hub      port.HubService

	fetchTimeout   time.Duration
	commandTimeout time.Duration

	logger *zap.Logger
}

type backgroundTaskResult struct {
	message any
	replyTo *actor.PID
}

func NewHubActor(cfg *config.Config, hub port.HubService, logger *zap.Logger) *HubActor {
	requestTimeout := time.Duration(cfg.Hub.TimeoutMillis) * time.Millisecond
	retryDelay := time.Duration(cfg.Hub.CommandRetryDelayMillis) * time.Millisecond
	act := &HubActor{
		hub:            hub,
		behavior:       actor.NewBehavior(),
		stash:          &actorutil.Stash{},
		fetchTimeout:   requestTimeout + 2*time.Second,
		commandTimeout: time.Duration(cfg.Hub.CommandRetries)*(requestTimeout+retryDelay) + 2*time.Second,
		logger:         actorutil.ActorLogger("hub", logger),
	}
	act.behavior.Become(act.StartingReceive)
	return act
}

func (state *HubActor) Receive(context actor.Context) {
	state.behavior.Receive(context)
}

func (state *HubActor) StartingReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		state.logger.Debug("hub@starting started")
		err := state.hub.ValidateConnection(context.Background())
		if err != nil {
			panic(err)
		}
		state.behavior.Become(state.DefaultReceive)
		state.stash.UnstashAll(ctx)
	default:
		state.logger.Debug("hub@starting: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *HubActor) DefaultReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.ActorHealthRequest:
		state.logger.Debug("hub@default: ActorHealthRequest")
		ctx.Respond(domain.ActorHealthResponse{
			Id:      domain.ACTOR_ID_HUB,
			Healthy: true,
			State:   "idle",
		})
	case domain.FetchDevicesRequest:
		state.logger.Debug("hub@default: FetchDevicesRequest")
		sender := actorutil.ForRequest(msg).ReplyTo(ctx)

		actorutil.MapBackgroundTask(actorutil.NewBackgroundTask(ctx, state.fetchDevices),
			mapTaskResult[domain.FetchDevicesResponse](sender)).Recover(func(err error) backgroundTaskResult {
			return backgroundTaskResult{
				message: domain.FetchDevicesResponse{
					ActorResponseMixIn: domain.ActorResponseMixIn{
						ResponseError: err,
					},
				},
				replyTo: sender,
			}
		}).WithTimeout(state.fetchTimeout).PipeTo(ctx.Self())
		state.behavior.BecomeStacked(state.WaitingHub)
	case domain.SendHubCommandRequest:
		state.logger.Debug("hub@default: SendHubCommandRequest")
		sender := actorutil.ForRequest(msg).ReplyTo(ctx)

		params := msg.Params
		actorutil.MapBackgroundTask(actorutil.NewBackgroundTask(ctx, func() (*domain.SendHubCommandResponse, error) {
			return state.sendCommand(params)
		}),
			mapTaskResult[domain.SendHubCommandResponse](sender)).Recover(func(err error) backgroundTaskResult {
			return backgroundTaskResult{
				message: domain.SendHubCommandResponse{
					ActorResponseMixIn: domain.ActorResponseMixIn{
						ResponseError: err,
					},
				},
				replyTo: sender,
			}
		}).WithTimeout(state.commandTimeout).PipeTo(ctx.Self())
		state.behavior.BecomeStacked(state.WaitingHub)
	default:
		state.logger.Debug("hub@default default recv", zap.String("type", fmt.Sprintf("%T", msg)))
	}
}

func (state *HubActor) WaitingHub(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case backgroundTaskResult:
		state.logger.Debug("hub@waitingHub backgroundTaskResult", zap.String("type", fmt.Sprintf("%T", msg.message)))
		ctx.Send(msg.replyTo, msg.message)
		state.behavior.UnbecomeStacked()
		state.stash.UnstashAll(ctx)
	default:
		state.logger.Debug("hub@waitingHub stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (a *HubActor) fetchDevices() (*domain.FetchDevicesResponse, error) {
	graph, err := a.hub.GetDevices(context.Background())
	if err != nil {
		a.logger.Error("fetch devices failed", zap.Error(err))
		return nil, err
	}
	return &domain.FetchDevicesResponse{
		Graph: graph,
	}, nil
}

func (a *HubActor) sendCommand(params wundahub.Params) (*domain.SendHubCommandResponse, error) {
	envelope, err := a.hub.SendCommand(context.Background(), params)
	if err != nil {
		a.logger.Error("send command failed", zap.Error(err))
		return nil, err
	}
	return &domain.SendHubCommandResponse{
		Envelope: envelope,
	}, nil
}

func mapTaskResult[T any](sender *actor.PID) func(t *T) *backgroundTaskResult {
	return func(t *T) *backgroundTaskResult {
		return &backgroundTaskResult{
			message: *t,
			replyTo: sender,
		}
	}
}
