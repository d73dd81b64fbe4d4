package main

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/rook-computer/watchface/internal/app"
	"github.com/rook-computer/watchface/internal/state"
)

const historyPruneInterval = time.Hour

type batteryReader interface {
	Percent() (float64, error)
}

// deviceSources reads the battery from sysfs and everything else from the
// store fed over MQTT. A failing read logs once until a read succeeds again.
type deviceSources struct {
	*state.Store
	battery batteryReader
	logger  app.Logger
	failing atomic.Bool
}

func (d *deviceSources) BatteryPercent() float64 {
	percent, err := d.battery.Percent()
	if err != nil {
		if d.failing.CompareAndSwap(false, true) {
			d.logger.Errorf("power", "battery read failed, using last known value: %v", err)
		}
		return d.Store.BatteryPercent()
	}
	if d.failing.CompareAndSwap(true, false) {
		d.logger.Infof("power", "battery readings recovered")
	}
	d.Store.SetBatteryPercent(percent)
	return d.Store.BatteryPercent()
}

type historyPruner interface {
	Prune(ctx context.Context, cutoff time.Time) (int64, error)
}

// pruneHistory drops samples older than retention and returns how many went.
func pruneHistory(ctx context.Context, h historyPruner, retention time.Duration, now time.Time, logger app.Logger) int64 {
	cutoff := now.Add(-retention)
	removed, err := h.Prune(ctx, cutoff)
	if err != nil {
		logger.Errorf("history", "prune failed: %v", err)
		return 0
	}
	if removed > 0 {
		logger.Infof("history", "pruned %s samples older than %s", humanize.Comma(removed), humanize.Time(cutoff))
	}
	return removed
}

// runHistoryPruner prunes every interval until ctx is done.
func runHistoryPruner(ctx context.Context, h historyPruner, retention, interval time.Duration, logger app.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			pruneHistory(ctx, h, retention, now, logger)
		}
	}
}
