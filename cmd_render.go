package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/rook-computer/watchface/internal/face"
	"github.com/rook-computer/watchface/internal/render"
	"github.com/rook-computer/watchface/internal/state"
)

var (
	renderOut       string
	renderAt        string
	renderBattery   float64
	renderSteps     int
	renderHeartRate int
	renderPhone     bool
	render12Hour    bool
)

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a single frame to PNG",
		Args:  cobra.NoArgs,
		RunE:  runRender,
	}
	cmd.Flags().StringVar(&renderOut, "out", "face.png", "output PNG path")
	cmd.Flags().StringVar(&renderAt, "at", "", "local time to render, e.g. 2026-09-03T14:05 (default: now)")
	cmd.Flags().Float64Var(&renderBattery, "battery", 100, "battery percentage")
	cmd.Flags().IntVar(&renderSteps, "steps", 0, "step count")
	cmd.Flags().IntVar(&renderHeartRate, "heart-rate", 0, "live heart rate; 0 means no reading")
	cmd.Flags().BoolVar(&renderPhone, "phone", true, "phone connected")
	cmd.Flags().BoolVar(&render12Hour, "12h", false, "use the 12-hour clock")
	return cmd
}

func runRender(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, closeLog := newLogger()
	defer closeLog()

	now := time.Now()
	if renderAt != "" {
		now, err = time.ParseInLocation("2006-01-02T15:04", renderAt, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --at %q: %w", renderAt, err)
		}
	}

	store := state.NewStore()
	is24 := !render12Hour
	update := state.SensorUpdate{
		Is24Hour:       &is24,
		BatteryPercent: &renderBattery,
		Steps:          &renderSteps,
		PhoneConnected: &renderPhone,
	}
	if renderHeartRate > 0 {
		hr := state.SomeHeartRate(renderHeartRate)
		update.LiveHeartRate = &hr
	}
	store.Apply(update)

	renderer := render.NewCanvasRenderer(cfg.Render())
	renderer.Logger = logger
	if err := renderer.Start(context.Background()); err != nil {
		return fmt.Errorf("start renderer: %w", err)
	}
	renderer.SetScreen(face.NewScreen(cfg.FacePalette()))

	var buf bytes.Buffer
	if err := renderer.RenderPNG(&buf, state.Capture(store, now)); err != nil {
		return fmt.Errorf("render frame: %w", err)
	}
	if err := os.WriteFile(renderOut, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", renderOut, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%s)\n", renderOut, humanize.Bytes(uint64(buf.Len())))
	return nil
}
