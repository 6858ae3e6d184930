package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	adactor "wunda2mqtt/internal/adapter/actor"
	"wunda2mqtt/internal/config"
	"wunda2mqtt/internal/core/actor"
	"wunda2mqtt/internal/server"
	"wunda2mqtt/internal/util/actorutil"
	"wunda2mqtt/pkg/wundahub"

	pactor "github.com/asynkron/protoactor-go/actor"
	"github.com/asynkron/protoactor-go/eventstream"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func gracefulShutdown(apiServer *http.Server, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Listen for the interrupt signal.
	<-ctx.Done()

	log.Println("shutting down gracefully, press Ctrl+C again to force")

	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown with error: %v", err)
	}

	log.Println("Server exiting")

	// Notify the main goroutine that the shutdown is complete
	done <- true
}

func main() {

	// load and print config
	cfg, err := initConfig()
	if err != nil {
		slog.Error("config errors", "error", err)
		return
	}
	safePrintConfig(*cfg)

	// zap logger
	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(cfg.LogLevel)

	logger := zap.Must(zapCfg.Build())

	// init actor system
	as := actorutil.NewActorSystemWithZapLogger(logger)
	ctx := as.Root

	defer logger.Sync()

	props := pactor.PropsFromProducer(func() pactor.Actor {
		return actor.NewMasterOfPuppetsActor(*cfg, hubActorProvider(cfg, logger), mqttActorProvider(cfg, logger), logger)
	})
	pid, err := ctx.SpawnNamed(props, "master")
	if err != nil {
		return
	}

	server := server.NewServer(*cfg, ctx, pid)
	// Create a done channel to signal when the shutdown is complete
	done := make(chan bool, 1)

	// Run graceful shutdown in a separate goroutine
	go gracefulShutdown(server, done)

	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		panic(fmt.Sprintf("http server error: %s", err))
	}

	// Wait for the graceful shutdown to complete
	<-done
	log.Println("Graceful shutdown complete.")

	ctx.Stop(pid)
	as.Shutdown()
}

func initConfig() (*config.Config, error) {

	// alias PORT => WUNDA_PORT
	if port := os.Getenv("PORT"); port != "" {
		os.Setenv("WUNDA_PORT", port)
	}

	setConfigDefaults()

	viper.SetEnvPrefix("wunda")
	viper.AutomaticEnv()

	// if defined, try to load config from yaml file
	if cfgFile := os.Getenv("CONFIG_FILE"); cfgFile != "" {
		if _, err := os.Stat(cfgFile); err == nil {
			slog.Info("Using config", "file", cfgFile)
			viper.SetConfigFile(cfgFile)

			err = viper.ReadInConfig()
			if err != nil {
				slog.Error("Error reading config file", "error", err)
			}
		}
	}

	var cfg config.Config

	err := viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	// parse log level
	switch viper.GetString("log_level") {
	case "trace":
		cfg.LogLevel = zap.DebugLevel
	case "debug":
		cfg.LogLevel = zap.DebugLevel
	case "info":
		cfg.LogLevel = zap.InfoLevel
	case "error":
		cfg.LogLevel = zap.ErrorLevel
	case "warn":
		cfg.LogLevel = zap.WarnLevel
	case "fatal":
		cfg.LogLevel = zap.FatalLevel
	default:
		cfg.LogLevel = zap.InfoLevel
	}

	// check and fix base topic
	baseTopic, err := config.CheckMQTTTopic(cfg.MQTT.BaseTopic)
	if err != nil {
		return nil, errors.New("invalid base topic. can only contain letters, numbers and underscores")
	}
	cfg.MQTT.BaseTopic = baseTopic

	// check and fix homeassistant discovery topic
	hadBaseTopic, err := config.CheckMQTTTopic(cfg.MQTT.HADiscoveryTopic)
	if err != nil {
		return nil, errors.New("invalid homeassistant discovery topic. can only contain letters, numbers and underscores")
	}
	cfg.MQTT.HADiscoveryTopic = hadBaseTopic

	// check bounds
	if cfg.Hub.Host == "" {
		return nil, errors.New("config param hub.host is required")
	}
	if cfg.Poll.IntervalSeconds < 60 {
		return nil, errors.New("config param poll.interval_seconds should be >= 60")
	}
	if cfg.Poll.Attempts < 1 {
		return nil, errors.New("config param poll.attempts should be >= 1")
	}
	if cfg.Hub.TimeoutMillis < 1000 {
		return nil, errors.New("config param hub.timeout_millis should be >= 1000")
	}

	return &cfg, nil
}

func hubActorProvider(cfg *config.Config, logger *zap.Logger) actor.HubActorProvider {

	sessions := wundahub.NewSessionManager()
	client := wundahub.NewHubClient(wundahub.HubClientConfig{
		Host:       cfg.Hub.Host,
		Username:   cfg.Hub.Username,
		Password:   cfg.Hub.Password,
		Timeout:    time.Duration(cfg.Hub.TimeoutMillis) * time.Millisecond,
		Retries:    int(cfg.Hub.CommandRetries),
		RetryDelay: time.Duration(cfg.Hub.CommandRetryDelayMillis) * time.Millisecond,
	}, sessions, logger)

	return func() *adactor.HubActor {
		return adactor.NewHubActor(cfg, client, logger)
	}
}

func mqttActorProvider(cfg *config.Config, logger *zap.Logger) actor.MQTTActorProvider {
	return func(es *eventstream.EventStream) *adactor.MQTTActor {
		return adactor.NewMQTTActor(cfg, es, logger)
	}
}

func setConfigDefaults() {
	viper.SetDefault("log_level", "warn")
	viper.SetDefault("mqtt.ha_discovery_enable", false)
	viper.SetDefault("mqtt.base_topic", "wunda2mqtt")
	viper.SetDefault("mqtt.ha_discovery_topic", "homeassistant")
	viper.SetDefault("hub.username", "root")
	viper.SetDefault("hub.password", "root")
	viper.SetDefault("hub.timeout_millis", 10000)
	viper.SetDefault("hub.command_retries", 5)
	viper.SetDefault("hub.command_retry_delay_millis", 500)
	viper.SetDefault("poll.interval_seconds", 300)
	viper.SetDefault("poll.attempts", 5)
	viper.SetDefault("poll.attempt_delay_millis", 1000)
	viper.SetDefault("port", 8080)
}

func safePrintConfig(cfg config.Config) {
	cfg.Hub.Username = "*redacted*"
	cfg.Hub.Password = "*redacted*"
	cfg.MQTT.Username = "*redacted*"
	cfg.MQTT.Password = "*redacted*"
	slog.Info("Using", "config", cfg)
}
