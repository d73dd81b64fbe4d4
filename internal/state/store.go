package state

import (
	"math"
	"sync"
)

// Sensors are the host-side values the face reads every frame.
type Sensors struct {
	Is24Hour       bool      `json:"is24Hour"`
	BatteryPercent float64   `json:"batteryPercent"`
	Steps          int       `json:"steps"`
	LiveHeartRate  HeartRate `json:"liveHeartRate"`
	PhoneConnected bool      `json:"phoneConnected"`
}

// SensorUpdate is a partial change; nil fields are left alone.
type SensorUpdate struct {
	Is24Hour       *bool      `json:"is24Hour,omitempty"`
	BatteryPercent *float64   `json:"batteryPercent,omitempty"`
	Steps          *int       `json:"steps,omitempty"`
	LiveHeartRate  *HeartRate `json:"liveHeartRate,omitempty"`
	PhoneConnected *bool      `json:"phoneConnected,omitempty"`
	// ClearLiveHeartRate drops the live reading; JSON null cannot express it.
	ClearLiveHeartRate bool `json:"clearLiveHeartRate,omitempty"`
}

// HeartRateHistory is the activity history backing the fallback heart rate.
type HeartRateHistory interface {
	LastHeartRateSample() (sample int, ok bool)
}

// Store holds simulated or device-fed sensor values and implements Sources.
// Writers are the web API and the MQTT feed; the render loop only reads.
type Store struct {
	mu      sync.RWMutex
	sensors Sensors
	history HeartRateHistory
}

func NewStore() *Store {
	return &Store{sensors: Sensors{Is24Hour: true, BatteryPercent: 100}}
}

// SetHistory attaches the heart-rate history; nil detaches it.
func (store *Store) SetHistory(history HeartRateHistory) {
	store.mu.Lock()
	store.history = history
	store.mu.Unlock()
}

func (store *Store) Sensors() Sensors {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.sensors
}

func (store *Store) Apply(update SensorUpdate) {
	store.mu.Lock()
	defer store.mu.Unlock()
	if update.Is24Hour != nil {
		store.sensors.Is24Hour = *update.Is24Hour
	}
	if update.BatteryPercent != nil && validPercent(*update.BatteryPercent) {
		store.sensors.BatteryPercent = clampPercent(*update.BatteryPercent)
	}
	if update.Steps != nil {
		steps := *update.Steps
		if steps < 0 {
			steps = 0
		}
		store.sensors.Steps = steps
	}
	if update.LiveHeartRate != nil {
		store.sensors.LiveHeartRate = *update.LiveHeartRate
	}
	if update.ClearLiveHeartRate {
		store.sensors.LiveHeartRate = NoHeartRate()
	}
	if update.PhoneConnected != nil {
		store.sensors.PhoneConnected = *update.PhoneConnected
	}
}

func (store *Store) SetBatteryPercent(percent float64) {
	store.Apply(SensorUpdate{BatteryPercent: &percent})
}

func (store *Store) SetSteps(steps int) {
	store.Apply(SensorUpdate{Steps: &steps})
}

func (store *Store) SetLiveHeartRate(heartRate HeartRate) {
	store.Apply(SensorUpdate{LiveHeartRate: &heartRate})
}

func (store *Store) SetPhoneConnected(connected bool) {
	store.Apply(SensorUpdate{PhoneConnected: &connected})
}

func (store *Store) Is24Hour() bool {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.sensors.Is24Hour
}

func (store *Store) BatteryPercent() float64 {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.sensors.BatteryPercent
}

func (store *Store) Steps() int {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.sensors.Steps
}

func (store *Store) LiveHeartRate() HeartRate {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.sensors.LiveHeartRate
}

func (store *Store) LastHeartRateSample() (int, bool) {
	store.mu.RLock()
	history := store.history
	store.mu.RUnlock()
	if history == nil {
		return 0, false
	}
	return history.LastHeartRateSample()
}

func (store *Store) PhoneConnected() bool {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.sensors.PhoneConnected
}

// validPercent rejects NaN and infinities; the last good value is kept.
func validPercent(percent float64) bool {
	return !math.IsNaN(percent) && !math.IsInf(percent, 0)
}

func clampPercent(percent float64) float64 {
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}
