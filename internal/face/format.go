// Package face is the watch face: value formatting, battery policy, and the
// per-frame layout drawn from a state.State.
package face

import (
	"fmt"
	"math"
	"strconv"

	"github.com/rook-computer/watchface/internal/locale"
)

// FormatTime returns HH:MM. In 12-hour mode 0 shows as 12 and afternoon
// hours drop by 12; no AM/PM marker is added.
func FormatTime(hour, minute int, is24Hour bool) string {
	if !is24Hour {
		if hour > 12 {
			hour -= 12
		} else if hour == 0 {
			hour = 12
		}
	}
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// FormatDate returns e.g. "Po 25. úno". Unknown weekday or month degrade to
// the placeholder for that field only.
func FormatDate(weekday, day, month int) string {
	return fmt.Sprintf("%s %d. %s", locale.WeekdayOrPlaceholder(weekday), day, locale.MonthOrPlaceholder(month))
}

func FormatBattery(percent float64) string {
	return strconv.Itoa(int(math.Floor(percent))) + "%"
}

func FormatSteps(steps int) string {
	return strconv.Itoa(steps)
}

func FormatHeartRate(bpm int) string {
	return strconv.Itoa(bpm)
}
