package actorutil

import (
	"errors"
	"log/slog"
	"strconv"
	"time"

	"wunda2mqtt/internal/core/domain"
	"wunda2mqtt/internal/mqtt"
	"wunda2mqtt/pkg/wundahub"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/lmittmann/tint"
	"go.uber.org/zap"
)

func PipeToSelfWithRecover(ctx actor.Context, future *actor.Future, mapFn func(error) any) {
	ctx.ReenterAfter(future, func(msg any, err error) {
		if err != nil {
			ctx.Send(ctx.Self(), mapFn(err))
			return
		}
		ctx.Send(ctx.Self(), msg)
	})
}

func NewActorSystemWithZapLogger(logger *zap.Logger) *actor.ActorSystem {
	stdOutLogger := zap.NewStdLog(logger)

	var slogLevel slog.Level = slog.LevelInfo

	switch logger.Level() {
	case zap.DebugLevel:
		slogLevel = slog.LevelDebug
	case zap.InfoLevel:
		slogLevel = slog.LevelInfo
	case zap.WarnLevel:
		slogLevel = slog.LevelWarn
	case zap.ErrorLevel:
		slogLevel = slog.LevelError
	case zap.PanicLevel:
		slogLevel = slog.LevelError
	}

	return actor.NewActorSystem(actor.WithLoggerFactory(func(system *actor.ActorSystem) *slog.Logger {

		// create a new logger
		return slog.New(tint.NewHandler(stdOutLogger.Writer(), &tint.Options{
			Level:      slogLevel,
			TimeFormat: time.DateTime,
		}))
	}))
}

func ActorLogger(actorName string, logger *zap.Logger) *zap.Logger {
	return logger.With(zap.String("actor", actorName))
}

// ParsedMQTTCommandToCommand maps an inbound MQTT command to the actor
// request the poller handles. Unknown commands map to (nil, nil) and are
// ignored upstream.
func ParsedMQTTCommandToCommand(cmd mqtt.ParsedMQTTCommand) (domain.ActorRequest, error) {
	switch cmd.Command {
	case mqtt.COMMAND_CLIMATE_TEMPERATURE:
		roomId, err := parseRoomId(cmd.DeviceId)
		if err != nil {
			return nil, err
		}
		temp, err := strconv.ParseFloat(cmd.Payload, 64)
		if err != nil {
			return nil, err
		}
		return domain.SetRoomTemperatureRequest{
			RoomId:      roomId,
			Temperature: temp,
		}, nil
	case mqtt.COMMAND_CLIMATE_MODE:
		roomId, err := parseRoomId(cmd.DeviceId)
		if err != nil {
			return nil, err
		}
		mode := domain.HvacMode(cmd.Payload)
		switch mode {
		case domain.HVAC_MODE_AUTO, domain.HVAC_MODE_HEAT, domain.HVAC_MODE_OFF:
		default:
			return nil, errors.New("invalid hvac mode")
		}
		return domain.SetRoomModeRequest{
			RoomId: roomId,
			Mode:   mode,
		}, nil
	case mqtt.COMMAND_CLIMATE_PRESET:
		roomId, err := parseRoomId(cmd.DeviceId)
		if err != nil {
			return nil, err
		}
		preset := domain.Preset(cmd.Payload)
		switch preset {
		case domain.PRESET_REDUCED, domain.PRESET_ECO, domain.PRESET_COMFORT:
		default:
			return nil, errors.New("invalid preset")
		}
		return domain.SetRoomPresetRequest{
			RoomId: roomId,
			Preset: preset,
		}, nil
	case mqtt.COMMAND_WATER_HEATER_MODE:
		op := domain.WaterHeaterOperation(cmd.Payload)
		switch op {
		case domain.WATER_HEATER_AUTO, domain.WATER_HEATER_BOOST_ON, domain.WATER_HEATER_MANUAL_OFF:
		default:
			return nil, errors.New("invalid water heater operation")
		}
		return domain.SetWaterHeaterOperationRequest{
			Operation: op,
		}, nil
	}
	return nil, nil
}

func parseRoomId(deviceId string) (wundahub.DeviceId, error) {
	id, err := strconv.Atoi(deviceId)
	if err != nil {
		return 0, err
	}
	return wundahub.DeviceId(id), nil
}
