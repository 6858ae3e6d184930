package actor

import (
	"testing"
	"time"

	"wunda2mqtt/internal/core/domain"
	"wunda2mqtt/internal/util"
	"wunda2mqtt/internal/util/actorutil"
	"wunda2mqtt/pkg/wundahub"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestFetchDevicesHubActor(t *testing.T) {

	assert := assert.New(t)

	cfg := util.LoadTestConfig()

	hub, err := wundahub.CreateTestHubService()
	if err != nil {
		t.Error(err)
		return
	}

	logger := zap.Must(zap.NewDevelopment())

	as := actorutil.NewActorSystemWithZapLogger(logger)

	context := as.Root

	props := actor.PropsFromProducer(func() actor.Actor { return NewHubActor(&cfg, hub, logger) })
	pid := context.Spawn(props)

	time.Sleep(1 * time.Second)

	msg := domain.FetchDevicesRequest{}
	result, err := context.RequestFuture(pid, msg, 15*time.Second).Result()
	if err != nil {
		t.Error(err)
		return
	}
	resp := result.(domain.FetchDevicesResponse)

	assert.False(resp.HasResponseError())
	assert.Equal(wundahub.DeviceRoom, resp.Graph[121].Type, "room type")
	assert.Equal(wundahub.DeviceTRV, resp.Graph[31].Type, "trv type")

	hubDev, ok := resp.Graph.Hub()
	assert.True(ok, "graph has hub")
	assert.Equal("0123456789AB", hubDev.SerialNumber(), "hub serial")

	context.Stop(pid)

	as.Shutdown()
}

func TestSendCommandHubActor(t *testing.T) {

	assert := assert.New(t)

	cfg := util.LoadTestConfig()

	hub, err := wundahub.CreateTestHubService()
	if err != nil {
		t.Error(err)
		return
	}

	logger := zap.Must(zap.NewDevelopment())

	as := actorutil.NewActorSystemWithZapLogger(logger)
	context := as.Root

	props := actor.PropsFromProducer(func() actor.Actor { return NewHubActor(&cfg, hub, logger) })
	pid := context.Spawn(props)

	time.Sleep(1 * time.Second)

	msg := domain.SendHubCommandRequest{
		Params: wundahub.SetRoomTemperature(121, 21.5),
	}

	result, err := context.RequestFuture(pid, msg, 15*time.Second).Result()
	if err != nil {
		t.Error(err)
		return
	}
	resp := result.(domain.SendHubCommandResponse)

	assert.False(resp.HasResponseError())
	assert.Equal("ok", resp.Envelope["cmd_resp"], "command response")
	assert.Len(hub.Commands, 1, "one command sent")
	assert.Equal("cmd=1&roomid=121&temp=21.5&locktt=0&time=0", hub.Commands[0].Encode(), "command encoding")

	context.Stop(pid)

	as.Shutdown()
}
