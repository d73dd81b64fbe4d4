package face

import (
	"sync"
	"time"
)

const (
	ActiveInterval   = time.Second
	LowPowerInterval = time.Minute
)

// Visibility tracks whether the face is on screen and how often it should be
// redrawn. Transitions never draw; the next tick redraws the full frame.
type Visibility struct {
	mu       sync.RWMutex
	visible  bool
	sleeping bool

	Active   time.Duration
	LowPower time.Duration
}

func NewVisibility() *Visibility {
	return &Visibility{Active: ActiveInterval, LowPower: LowPowerInterval}
}

func (v *Visibility) Show() {
	v.mu.Lock()
	v.visible = true
	v.mu.Unlock()
}

func (v *Visibility) Hide() {
	v.mu.Lock()
	v.visible = false
	v.mu.Unlock()
}

func (v *Visibility) EnterSleep() {
	v.mu.Lock()
	v.sleeping = true
	v.mu.Unlock()
}

func (v *Visibility) ExitSleep() {
	v.mu.Lock()
	v.sleeping = false
	v.mu.Unlock()
}

// ShouldDraw reports whether the face is Visible.
func (v *Visibility) ShouldDraw() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.visible
}

func (v *Visibility) Sleeping() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.sleeping
}

// Interval is the redraw cadence for the current power mode.
func (v *Visibility) Interval() time.Duration {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.sleeping {
		if v.LowPower > 0 {
			return v.LowPower
		}
		return LowPowerInterval
	}
	if v.Active > 0 {
		return v.Active
	}
	return ActiveInterval
}
