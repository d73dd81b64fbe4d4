package state

import (
	"bytes"
	"strconv"
)

// InvalidHeartRateSample is what the activity history reports for a sample
// slot that holds no measurement.
const InvalidHeartRateSample = 255

// HeartRate is an optional beats-per-minute reading.
type HeartRate struct {
	bpm   int
	valid bool
}

func SomeHeartRate(bpm int) HeartRate { return HeartRate{bpm: bpm, valid: true} }
func NoHeartRate() HeartRate          { return HeartRate{} }

// HeartRateFromSample converts a raw history sample, mapping the sentinel to no value.
func HeartRateFromSample(raw int) HeartRate {
	if raw == InvalidHeartRateSample {
		return NoHeartRate()
	}
	return SomeHeartRate(raw)
}

func (h HeartRate) Get() (int, bool) { return h.bpm, h.valid }

// Displayable reports whether the value should be drawn at all.
func (h HeartRate) Displayable() bool { return h.valid && h.bpm > 0 }

func (h HeartRate) MarshalJSON() ([]byte, error) {
	if !h.valid {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(h.bpm)), nil
}

func (h *HeartRate) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*h = NoHeartRate()
		return nil
	}
	bpm, err := strconv.Atoi(string(data))
	if err != nil {
		return err
	}
	*h = SomeHeartRate(bpm)
	return nil
}

// HeartRateSources are the two places a heart rate can come from.
type HeartRateSources interface {
	// LiveHeartRate is the reading of the current activity, if any.
	LiveHeartRate() HeartRate
	// LastHeartRateSample returns the newest history sample. ok is false when
	// the history is empty; sample may still be InvalidHeartRateSample.
	LastHeartRateSample() (sample int, ok bool)
}

// ResolveHeartRate prefers the live reading and falls back to the newest
// history sample. Missing data is a normal outcome and yields NoHeartRate.
func ResolveHeartRate(src HeartRateSources) HeartRate {
	if live := src.LiveHeartRate(); live.valid {
		return live
	}
	if sample, ok := src.LastHeartRateSample(); ok {
		return HeartRateFromSample(sample)
	}
	return NoHeartRate()
}
