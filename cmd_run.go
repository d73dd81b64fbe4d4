package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rook-computer/watchface/internal/app"
	"github.com/rook-computer/watchface/internal/config"
	"github.com/rook-computer/watchface/internal/events"
	"github.com/rook-computer/watchface/internal/face"
	"github.com/rook-computer/watchface/internal/history"
	"github.com/rook-computer/watchface/internal/mqttfeed"
	"github.com/rook-computer/watchface/internal/render"
	"github.com/rook-computer/watchface/internal/state"
	"github.com/rook-computer/watchface/internal/system"
	"github.com/rook-computer/watchface/internal/web"
)

var (
	runListen string
	runHidden bool
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Draw the face on the Linux framebuffer",
		Args:  cobra.NoArgs,
		RunE:  runDevice,
	}
	cmd.Flags().StringVar(&runListen, "listen", "", "also serve the preview API on this address (default: [preview] listen or "+config.EnvListenAddr+"; empty disables it)")
	cmd.Flags().BoolVar(&runHidden, "hidden", false, "start hidden and wait for a show event")
	return cmd
}

func runDevice(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, closeLog := newLogger()
	defer closeLog()

	ctx, stop := signalContext()
	defer stop()

	store := state.NewStore()
	if cfg.Display.Is24Hour != nil {
		store.Apply(state.SensorUpdate{Is24Hour: cfg.Display.Is24Hour})
	}

	var samples *history.Store
	if cfg.History.Path != "" {
		samples, err = history.Open(cfg.History.Path)
		if err != nil {
			return fmt.Errorf("open heart-rate history: %w", err)
		}
		defer samples.Close()
		store.SetHistory(samples)
		if retention := cfg.History.Retention.Duration; retention > 0 {
			pruneHistory(ctx, samples, retention, time.Now(), logger)
			go runHistoryPruner(ctx, samples, retention, historyPruneInterval, logger)
		}
	}

	if cfg.MQTT.Broker != "" {
		feed := &mqttfeed.Feed{Store: store, Logger: logger, Prefix: cfg.MQTT.TopicPrefix}
		if samples != nil {
			feed.Recorder = samples
		}
		subscriber := &mqttfeed.Subscriber{Config: mqttConfig(cfg), Feed: feed}
		if err := subscriber.Start(ctx); err != nil {
			// The face still runs on sysfs battery and defaults.
			logger.Errorf("mqtt", "sensor feed unavailable: %v", err)
		} else {
			defer subscriber.Stop()
		}
	}

	lifecycle := events.NewChannel(8)
	renderer := render.NewFBRenderer(cfg.Render())
	renderer.Logger = logger
	screen := face.NewScreen(cfg.FacePalette())
	sources := &deviceSources{Store: store, battery: system.BatteryReader{Path: cfg.Display.BatteryPath}, logger: logger}

	a := app.New(sources, renderer, screen, lifecycle)
	a.Logger = logger
	a.ShowOnStart = !runHidden
	a.ConsoleGraphics = true
	a.Visibility.Active = cfg.Display.Active.Duration
	a.Visibility.LowPower = cfg.Display.LowPower.Duration

	system.WatchKeys(ctx, logger, system.KeyHandlers{
		system.KeyF4: func() { a.Exit(nil) },
		system.KeyPower: func() { lifecycle.Publish(events.ToggleSleep) },
	})

	listen := runListen
	if listen == "" {
		listen = cfg.Preview.ListenAddr
	}
	if listen != "" {
		deps := web.APIV1Deps{
			Store:      store,
			Snapshot:   a.Snapshot,
			Frames:     renderer,
			Events:     lifecycle,
			Visibility: a.Visibility,
		}
		if samples != nil {
			deps.History = samples
		}
		server := web.NewHTTPServer(web.ServerConfig{ListenAddr: listen, DevMode: cfg.Preview.DevMode}, web.NewDefaultMux(web.APIV1Config{Deps: deps}))
		if err := server.Start(ctx); err != nil {
			return fmt.Errorf("start preview server: %w", err)
		}
		defer server.Stop()
		logger.Infof("web", "preview API on %s", server.Addr)
	}

	if err := a.Start(ctx); err != nil && !errors.Is(err, ctx.Err()) {
		fmt.Println("app error:", err)
		return err
	}
	return nil
}

func mqttConfig(cfg config.FileConfig) mqttfeed.Config {
	return mqttfeed.Config{
		Broker:      cfg.MQTT.Broker,
		ClientID:    cfg.MQTT.ClientID,
		Username:    cfg.MQTT.Username,
		Password:    cfg.MQTT.Password,
		TopicPrefix: cfg.MQTT.TopicPrefix,
	}
}
