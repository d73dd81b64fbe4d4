package system

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

// BatteryReader reads the charge level from a sysfs power-supply capacity
// file such as /sys/class/power_supply/BAT0/capacity.
type BatteryReader struct {
	Path string
}

// Percent returns the capacity clamped to [0,100].
func (b BatteryReader) Percent() (float64, error) {
	if b.Path == "" {
		return 0, fmt.Errorf("battery path not configured")
	}
	raw, err := os.ReadFile(b.Path)
	if err != nil {
		return 0, fmt.Errorf("read battery capacity: %w", err)
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(string(raw)), 64)
	if err != nil {
		return 0, fmt.Errorf("parse battery capacity %q: %w", strings.TrimSpace(string(raw)), err)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("battery capacity %q is not a number", strings.TrimSpace(string(raw)))
	}
	if value < 0 {
		value = 0
	}
	if value > 100 {
		value = 100
	}
	return value, nil
}
