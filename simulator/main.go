package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rook-computer/watchface/internal/app"
	"github.com/rook-computer/watchface/internal/config"
	"github.com/rook-computer/watchface/internal/events"
	"github.com/rook-computer/watchface/internal/face"
	"github.com/rook-computer/watchface/internal/history"
	"github.com/rook-computer/watchface/internal/mqttfeed"
	"github.com/rook-computer/watchface/internal/render"
	"github.com/rook-computer/watchface/internal/state"
	"github.com/rook-computer/watchface/internal/web"
)

const defaultListenAddr = ":8080"

var (
	configPath  string
	listenAddr  string
	devMode     bool
	scenario    string
	historyPath string
	showQR      bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "watchface-sim",
		Short:        "Serve the watch face preview with simulated sensors",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         runSimulator,
	}
	cmd.Flags().StringVar(&configPath, "config", config.DefaultConfigPath(), "TOML config file; also configurable via "+config.EnvConfigPath)
	cmd.Flags().StringVar(&listenAddr, "listen", "", "http listen address (default: [preview] listen, "+config.EnvListenAddr+", or "+defaultListenAddr+")")
	cmd.Flags().BoolVar(&devMode, "dev", false, "enable dev mode (CORS); defaults to [preview] dev or "+config.EnvDevMode)
	cmd.Flags().StringVar(&scenario, "scenario", ScenarioHealthy, "startup sensor scenario: "+strings.Join(ScenarioNames(), " | "))
	cmd.Flags().StringVar(&historyPath, "history", "", "sqlite heart-rate history (default: [history] path or the XDG data dir)")
	cmd.Flags().BoolVar(&showQR, "qr", true, "print a QR code of the preview URL")
	return cmd
}

func runSimulator(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if listenAddr == "" {
		listenAddr = cfg.Preview.ListenAddr
	}
	if listenAddr == "" {
		listenAddr = defaultListenAddr
	}
	if !cmd.Flags().Changed("dev") {
		devMode = cfg.Preview.DevMode
	}
	if historyPath == "" {
		historyPath = cfg.History.Path
	}
	if historyPath == "" {
		historyPath = config.DefaultHistoryPath()
	}

	processCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := app.NewFileLogger(cmd.ErrOrStderr())

	store := state.NewStore()
	samples, err := history.Open(historyPath)
	if err != nil {
		// History only backs the heart-rate fallback; the preview works without it.
		logger.Errorf("history", "disabled: %v", err)
		samples = nil
	} else {
		defer samples.Close()
		store.SetHistory(samples)
	}

	control := NewSimControl(processCtx, store, samples, scenario)
	if err := control.ApplyScenario(scenario); err != nil {
		return fmt.Errorf("scenario init: %w", err)
	}

	if cfg.MQTT.Broker != "" {
		feed := &mqttfeed.Feed{Store: store, Logger: logger, Prefix: cfg.MQTT.TopicPrefix}
		if samples != nil {
			feed.Recorder = samples
		}
		subscriber := &mqttfeed.Subscriber{Config: mqttfeed.Config{
			Broker:      cfg.MQTT.Broker,
			ClientID:    cfg.MQTT.ClientID + "-sim",
			Username:    cfg.MQTT.Username,
			Password:    cfg.MQTT.Password,
			TopicPrefix: cfg.MQTT.TopicPrefix,
		}, Feed: feed}
		if err := subscriber.Start(processCtx); err != nil {
			logger.Errorf("mqtt", "sensor feed unavailable: %v", err)
		} else {
			defer subscriber.Stop()
		}
	}

	lifecycle := events.NewChannel(8)
	renderer := render.NewCanvasRenderer(cfg.Render())
	renderer.Logger = logger

	a := app.New(store, renderer, face.NewScreen(cfg.FacePalette()), lifecycle)
	a.Logger = logger
	a.ShowOnStart = true
	a.Now = control.Now
	a.Visibility.Active = cfg.Display.Active.Duration
	a.Visibility.LowPower = cfg.Display.LowPower.Duration

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
	mux := web.NewDefaultMux(web.APIV1Config{Deps: deps})
	server := web.NewHTTPServer(web.ServerConfig{ListenAddr: listenAddr, DevMode: devMode}, mux)
	registerSimEndpoints(mux, control, func() string { return previewURL(server.Addr) })

	if err := server.Start(processCtx); err != nil {
		return fmt.Errorf("server start: %w", err)
	}
	defer server.Stop()

	url := previewURL(server.Addr)
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Watch face simulator listening on", server.Addr)
	fmt.Fprintln(out, "Scenario:", control.Scenario())
	fmt.Fprintln(out, "History:", historyPath)
	fmt.Fprintln(out, "Preview:", url)
	fmt.Fprintln(out, "API:", url+"api/v1/")
	if showQR {
		if qr, err := render.QRCodeTerminal(url); err == nil {
			fmt.Fprint(out, qr)
		}
	}

	if err := a.Start(processCtx); err != nil && !errors.Is(err, processCtx.Err()) {
		return err
	}
	return nil
}

// previewURL turns a listen address into something a browser can open.
func previewURL(addr string) string {
	if addr == "" {
		addr = defaultListenAddr
	}
	if strings.HasPrefix(addr, ":") {
		addr = "127.0.0.1" + addr
	}
	for _, wildcard := range []string{"[::]:", "0.0.0.0:"} {
		if strings.HasPrefix(addr, wildcard) {
			addr = "127.0.0.1:" + strings.TrimPrefix(addr, wildcard)
		}
	}
	return "http://" + addr + "/"
}
