package state

import "time"

// State is the per-frame snapshot of clock, calendar and sensor values.
// It is captured at the start of a redraw and dropped when the frame is done.
type State struct {
	Hour     int  `json:"hour"`
	Minute   int  `json:"minute"`
	Is24Hour bool `json:"is24Hour"`

	// Weekday is 1..7 with 1 = Sunday.
	Weekday int `json:"weekday"`
	Day     int `json:"day"`
	Month   int `json:"month"`

	BatteryPercent float64   `json:"batteryPercent"`
	Steps          int       `json:"steps"`
	HeartRate      HeartRate `json:"heartRate"`
	PhoneConnected bool      `json:"phoneConnected"`
}

// Sources is everything the host has to provide for one frame.
// Clock and calendar values are taken from the time passed to Capture.
type Sources interface {
	HeartRateSources
	Is24Hour() bool
	BatteryPercent() float64
	Steps() int
	PhoneConnected() bool
}

// Capture builds a fresh State from the host accessors.
func Capture(src Sources, now time.Time) State {
	return State{
		Hour:           now.Hour(),
		Minute:         now.Minute(),
		Is24Hour:       src.Is24Hour(),
		Weekday:        int(now.Weekday()) + 1,
		Day:            now.Day(),
		Month:          int(now.Month()),
		BatteryPercent: src.BatteryPercent(),
		Steps:          src.Steps(),
		HeartRate:      ResolveHeartRate(src),
		PhoneConnected: src.PhoneConnected(),
	}
}
