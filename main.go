package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rook-computer/watchface/internal/app"
	"github.com/rook-computer/watchface/internal/config"
)

var (
	configPath string
	debug      bool
	stdioLog   string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "watchface",
		Short:         "Watch face renderer",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Best-effort: redirect all stdout/stderr output (including panic stack traces)
			// to a file so crashes are diagnosable even when the console is left in graphics mode.
			logPath := stdioLog
			if logPath == "" {
				logPath = os.Getenv(config.EnvStdioLog)
			}
			if logPath != "" {
				if err := redirectStdIO(logPath); err != nil {
					fmt.Println("stdio log redirect error:", err)
				}
			}
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultConfigPath(), "TOML config file; also configurable via "+config.EnvConfigPath)
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging to ./watchface-debug.log")
	rootCmd.PersistentFlags().StringVar(&stdioLog, "stdio-log", "", "redirect stdout+stderr (including panics) to this file; also configurable via "+config.EnvStdioLog)

	rootCmd.AddCommand(newRunCmd(), newRenderCmd())
	return rootCmd
}

func loadConfig() (config.FileConfig, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.FileConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// newLogger returns a file logger when debug is enabled.
func newLogger() (app.Logger, func()) {
	if !debug {
		return app.NoopLogger{}, func() {}
	}
	f, err := os.OpenFile("./watchface-debug.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Println("debug log open error:", err)
		return app.NoopLogger{}, func() {}
	}
	logger := app.NewFileLogger(f)
	logger.Infof("main", "debug logging enabled")
	return logger, func() { _ = f.Close() }
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
