package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rook-computer/watchface/internal/history"
	"github.com/rook-computer/watchface/internal/state"
)

type logLine struct {
	level, component, msg string
}

type recordingLogger struct {
	mu    sync.Mutex
	lines []logLine
}

func (l *recordingLogger) Infof(component, format string, args ...interface{}) {
	l.add("INFO", component, format, args...)
}

func (l *recordingLogger) Errorf(component, format string, args ...interface{}) {
	l.add("ERROR", component, format, args...)
}

func (l *recordingLogger) add(level, component, format string, args ...interface{}) {
	l.mu.Lock()
	l.lines = append(l.lines, logLine{level, component, fmt.Sprintf(format, args...)})
	l.mu.Unlock()
}

func (l *recordingLogger) count(level string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, line := range l.lines {
		if line.level == level {
			n++
		}
	}
	return n
}

type scriptedBattery struct {
	percent float64
	err     error
}

func (b *scriptedBattery) Percent() (float64, error) { return b.percent, b.err }

func TestDeviceSourcesLogsBatteryFailureOnce(t *testing.T) {
	store := state.NewStore()
	store.SetBatteryPercent(64)
	battery := &scriptedBattery{err: errors.New("no such file")}
	logger := &recordingLogger{}
	sources := &deviceSources{Store: store, battery: battery, logger: logger}

	for i := 0; i < 5; i++ {
		if got := sources.BatteryPercent(); got != 64 {
			t.Fatalf("expected last known value 64, got %v", got)
		}
	}
	if got := logger.count("ERROR"); got != 1 {
		t.Fatalf("expected one error line for repeated failures, got %d", got)
	}

	battery.err = nil
	battery.percent = 30
	if got := sources.BatteryPercent(); got != 30 {
		t.Fatalf("expected fresh reading 30, got %v", got)
	}
	if got := logger.count("INFO"); got != 1 {
		t.Fatalf("expected one recovery line, got %d", got)
	}

	battery.err = errors.New("gone again")
	sources.BatteryPercent()
	if got := logger.count("ERROR"); got != 2 {
		t.Fatalf("expected a new error line after recovery, got %d", got)
	}
	if got := store.BatteryPercent(); got != 30 {
		t.Fatalf("store should keep 30, got %v", got)
	}
}

func TestPruneHistoryDropsOldSamples(t *testing.T) {
	samples, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer samples.Close()

	ctx := context.Background()
	now := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	for _, age := range []time.Duration{10 * 24 * time.Hour, 8 * 24 * time.Hour, time.Hour} {
		if err := samples.Record(ctx, now.Add(-age), 70); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	logger := &recordingLogger{}
	if removed := pruneHistory(ctx, samples, 7*24*time.Hour, now, logger); removed != 2 {
		t.Fatalf("expected 2 samples pruned, got %d", removed)
	}
	if logger.count("INFO") != 1 {
		t.Fatalf("expected a prune log line, got %+v", logger.lines)
	}
	_, takenAt, ok, err := samples.Latest(ctx)
	if err != nil || !ok || !takenAt.Equal(now.Add(-time.Hour)) {
		t.Fatalf("expected recent sample kept, got %v %v %v", takenAt, ok, err)
	}

	if removed := pruneHistory(ctx, samples, 7*24*time.Hour, now, logger); removed != 0 {
		t.Fatalf("expected nothing left to prune, got %d", removed)
	}
	if logger.count("INFO") != 1 {
		t.Fatalf("empty prune should not log")
	}
}

type failingPruner struct{}

func (failingPruner) Prune(context.Context, time.Time) (int64, error) {
	return 0, errors.New("disk full")
}

func TestRunHistoryPrunerTicksUntilCancelled(t *testing.T) {
	logger := &recordingLogger{}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		runHistoryPruner(ctx, failingPruner{}, time.Hour, 2*time.Millisecond, logger)
		close(done)
	}()
	deadline := time.Now().Add(2 * time.Second)
	for logger.count("ERROR") == 0 && time.Now().Before(deadline) {
		time.Sleep(2 * time.Millisecond)
	}
	cancel()
	<-done
	if logger.count("ERROR") == 0 {
		t.Fatalf("expected the pruner to run and log its failure")
	}
}
