package state

import (
	"encoding/json"
	"math"
	"testing"
	"time"
)

type fakeHeartRate struct {
	live      HeartRate
	sample    int
	hasSample bool
	queried   bool
}

func (f *fakeHeartRate) LiveHeartRate() HeartRate { return f.live }
func (f *fakeHeartRate) LastHeartRateSample() (int, bool) {
	f.queried = true
	return f.sample, f.hasSample
}

func TestResolveHeartRatePrefersLive(t *testing.T) {
	src := &fakeHeartRate{live: SomeHeartRate(72), sample: 60, hasSample: true}
	got, ok := ResolveHeartRate(src).Get()
	if !ok || got != 72 {
		t.Fatalf("expected live 72, got %d,%v", got, ok)
	}
	if src.queried {
		t.Fatalf("history must not be queried when a live reading exists")
	}
}

func TestResolveHeartRateFallsBackToHistory(t *testing.T) {
	src := &fakeHeartRate{sample: 64, hasSample: true}
	got, ok := ResolveHeartRate(src).Get()
	if !ok || got != 64 {
		t.Fatalf("expected history 64, got %d,%v", got, ok)
	}
}

func TestResolveHeartRateAbsent(t *testing.T) {
	cases := []*fakeHeartRate{
		{},
		{sample: InvalidHeartRateSample, hasSample: true},
	}
	for i, src := range cases {
		hr := ResolveHeartRate(src)
		if _, ok := hr.Get(); ok {
			t.Fatalf("case %d: expected no heart rate, got %+v", i, hr)
		}
		if hr.Displayable() {
			t.Fatalf("case %d: absent heart rate must not be displayable", i)
		}
	}
}

func TestHeartRateDisplayable(t *testing.T) {
	if SomeHeartRate(0).Displayable() {
		t.Fatalf("zero bpm must not be displayable")
	}
	if !SomeHeartRate(58).Displayable() {
		t.Fatalf("positive bpm must be displayable")
	}
}

func TestHeartRateJSON(t *testing.T) {
	out, err := json.Marshal(struct {
		A HeartRate `json:"a"`
		B HeartRate `json:"b"`
	}{A: SomeHeartRate(80)})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"a":80,"b":null}` {
		t.Fatalf("unexpected json: %s", out)
	}
	var hr HeartRate
	if err := json.Unmarshal([]byte("null"), &hr); err != nil {
		t.Fatalf("unmarshal null: %v", err)
	}
	if _, ok := hr.Get(); ok {
		t.Fatalf("expected null to decode to no value")
	}
}

func TestCaptureReadsClockAndSensors(t *testing.T) {
	store := NewStore()
	store.SetBatteryPercent(15)
	store.SetSteps(8432)
	store.SetPhoneConnected(false)
	// 2026-09-03 is a Thursday.
	now := time.Date(2026, time.September, 3, 14, 5, 0, 0, time.UTC)
	snap := Capture(store, now)
	if snap.Hour != 14 || snap.Minute != 5 || !snap.Is24Hour {
		t.Fatalf("unexpected clock fields: %+v", snap)
	}
	if snap.Weekday != 5 || snap.Day != 3 || snap.Month != 9 {
		t.Fatalf("unexpected calendar fields: %+v", snap)
	}
	if snap.BatteryPercent != 15 || snap.Steps != 8432 || snap.PhoneConnected {
		t.Fatalf("unexpected sensor fields: %+v", snap)
	}
	if _, ok := snap.HeartRate.Get(); ok {
		t.Fatalf("expected no heart rate without live reading or history")
	}
}

type staticHistory int

func (h staticHistory) LastHeartRateSample() (int, bool) { return int(h), true }

func TestStoreClampsAndUsesHistory(t *testing.T) {
	store := NewStore()
	store.SetBatteryPercent(-3)
	if got := store.BatteryPercent(); got != 0 {
		t.Fatalf("expected battery clamped to 0, got %v", got)
	}
	store.SetBatteryPercent(140)
	if got := store.BatteryPercent(); got != 100 {
		t.Fatalf("expected battery clamped to 100, got %v", got)
	}
	store.SetSteps(-10)
	if got := store.Steps(); got != 0 {
		t.Fatalf("expected steps clamped to 0, got %d", got)
	}
	store.SetHistory(staticHistory(61))
	if got, ok := ResolveHeartRate(store).Get(); !ok || got != 61 {
		t.Fatalf("expected history value 61, got %d,%v", got, ok)
	}
}

func TestStoreIgnoresNonFiniteBattery(t *testing.T) {
	store := NewStore()
	store.SetBatteryPercent(42)
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		store.SetBatteryPercent(v)
		if got := store.BatteryPercent(); got != 42 {
			t.Fatalf("SetBatteryPercent(%v) changed battery to %v", v, got)
		}
	}
}
