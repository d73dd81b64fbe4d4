package main

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/rook-computer/watchface/internal/history"
	"github.com/rook-computer/watchface/internal/render"
	"github.com/rook-computer/watchface/internal/state"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	ScenarioHealthy      = "healthy"
	ScenarioWarning      = "warning"
	ScenarioLowBattery   = "low-battery"
	ScenarioHistoryHR    = "history-hr"
	ScenarioNoHR         = "no-hr"
	ScenarioDisconnected = "disconnected"
	ScenarioTwelveHour   = "12h"
)

type scenarioSpec struct {
	sensors state.SensorUpdate
	// sample is written to the history before the live reading is cleared.
	sample    int
	noHistory bool
}

func ptr[T any](v T) *T { return &v }

var scenarios = map[string]scenarioSpec{
	ScenarioHealthy: {sensors: state.SensorUpdate{
		Is24Hour: ptr(true), BatteryPercent: ptr(82.0), Steps: ptr(8432),
		LiveHeartRate: ptr(state.SomeHeartRate(72)), PhoneConnected: ptr(true),
	}},
	ScenarioWarning: {sensors: state.SensorUpdate{
		Is24Hour: ptr(true), BatteryPercent: ptr(35.0), Steps: ptr(5120),
		LiveHeartRate: ptr(state.SomeHeartRate(88)), PhoneConnected: ptr(true),
	}},
	ScenarioLowBattery: {sensors: state.SensorUpdate{
		Is24Hour: ptr(true), BatteryPercent: ptr(4.0), Steps: ptr(120),
		ClearLiveHeartRate: true, PhoneConnected: ptr(true),
	}, noHistory: true},
	ScenarioHistoryHR: {sensors: state.SensorUpdate{
		Is24Hour: ptr(true), BatteryPercent: ptr(60.0), Steps: ptr(2300),
		ClearLiveHeartRate: true, PhoneConnected: ptr(true),
	}, sample: 64},
	ScenarioNoHR: {sensors: state.SensorUpdate{
		Is24Hour: ptr(true), BatteryPercent: ptr(70.0), Steps: ptr(0),
		ClearLiveHeartRate: true, PhoneConnected: ptr(true),
	}, noHistory: true},
	ScenarioDisconnected: {sensors: state.SensorUpdate{
		Is24Hour: ptr(true), BatteryPercent: ptr(51.0), Steps: ptr(999),
		LiveHeartRate: ptr(state.SomeHeartRate(0)), PhoneConnected: ptr(false),
	}, noHistory: true},
	ScenarioTwelveHour: {sensors: state.SensorUpdate{
		Is24Hour: ptr(false), BatteryPercent: ptr(100.0), Steps: ptr(12000),
		LiveHeartRate: ptr(state.SomeHeartRate(58)), PhoneConnected: ptr(true),
	}},
}

func ScenarioNames() []string {
	names := make([]string, 0, len(scenarios))
	for name := range scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SimControl drives the simulated sensors and clock behind the preview.
type SimControl struct {
	processCtx      context.Context
	store           *state.Store
	samples         *history.Store
	startupScenario string
	currentScenario atomic.Value // string

	clock struct {
		mu     sync.RWMutex
		frozen time.Time
	}
}

func NewSimControl(processCtx context.Context, store *state.Store, samples *history.Store, startupScenario string) *SimControl {
	if processCtx == nil {
		processCtx = context.Background()
	}
	c := &SimControl{processCtx: processCtx, store: store, samples: samples, startupScenario: strings.TrimSpace(startupScenario)}
	if c.startupScenario == "" {
		c.startupScenario = ScenarioHealthy
	}
	c.currentScenario.Store(c.startupScenario)
	return c
}

func (c *SimControl) Scenario() string {
	return c.currentScenario.Load().(string)
}

func (c *SimControl) ApplyScenario(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		name = c.startupScenario
	}
	spec, ok := scenarios[name]
	if !ok {
		return fmt.Errorf("unknown scenario %q", name)
	}
	if spec.sample != 0 {
		if c.samples == nil {
			return fmt.Errorf("scenario %q needs the heart-rate history", name)
		}
		if err := c.samples.Record(c.processCtx, time.Now(), spec.sample); err != nil {
			return fmt.Errorf("seed history: %w", err)
		}
	}
	if spec.noHistory || c.samples == nil {
		c.store.SetHistory(nil)
	} else {
		c.store.SetHistory(c.samples)
	}
	c.store.Apply(spec.sensors)
	c.currentScenario.Store(name)
	return nil
}

func (c *SimControl) Reset() error {
	c.FreezeClock(time.Time{})
	return c.ApplyScenario(c.startupScenario)
}

// Now is the simulated clock; the zero frozen time follows the wall clock.
func (c *SimControl) Now() time.Time {
	c.clock.mu.RLock()
	defer c.clock.mu.RUnlock()
	if c.clock.frozen.IsZero() {
		return time.Now()
	}
	return c.clock.frozen
}

func (c *SimControl) FreezeClock(at time.Time) {
	c.clock.mu.Lock()
	c.clock.frozen = at
	c.clock.mu.Unlock()
}

func registerSimEndpoints(mux *http.ServeMux, control *SimControl, previewURL func() string) {
	mux.HandleFunc("/sim/reset", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		if err := control.Reset(); err != nil {
			writeSimError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeSimJSON(w, http.StatusOK, map[string]any{"ok": true, "scenario": control.Scenario()})
	})

	mux.HandleFunc("/sim/scenario/", func(w http.ResponseWriter, r *http.Request) {
		name := strings.Trim(strings.TrimPrefix(r.URL.Path, "/sim/scenario/"), "/")
		switch r.Method {
		case http.MethodGet:
			writeSimJSON(w, http.StatusOK, map[string]any{"scenario": control.Scenario(), "available": ScenarioNames()})
		case http.MethodPost:
			if err := control.ApplyScenario(name); err != nil {
				writeSimError(w, http.StatusBadRequest, err.Error())
				return
			}
			writeSimJSON(w, http.StatusOK, map[string]any{"ok": true, "scenario": control.Scenario()})
		default:
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	})

	mux.HandleFunc("/sim/clock", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
		case http.MethodPost:
			var patch struct {
				At string `json:"at"`
			}
			if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
				writeSimError(w, http.StatusBadRequest, "invalid json")
				return
			}
			var at time.Time
			if patch.At != "" {
				parsed, err := time.ParseInLocation("2006-01-02T15:04", patch.At, time.Local)
				if err != nil {
					writeSimError(w, http.StatusBadRequest, "at must look like 2006-01-02T15:04")
					return
				}
				at = parsed
			}
			control.FreezeClock(at)
		default:
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		writeSimJSON(w, http.StatusOK, map[string]any{"now": control.Now().Format(time.RFC3339)})
	})

	mux.HandleFunc("/qr.png", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		png, err := render.QRCodePNG(previewURL(), 0)
		if err != nil {
			writeSimError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(png)
	})
}

func writeSimJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeSimError(w http.ResponseWriter, status int, message string) {
	writeSimJSON(w, status, map[string]any{"error": message})
}
