package face

import (
	"image"
	"image/color"

	"github.com/rook-computer/watchface/internal/render"
	"github.com/rook-computer/watchface/internal/render/layout"
	"github.com/rook-computer/watchface/internal/state"
)

// Vertical bands as fractions of the surface height.
const (
	timeBand      = 0.32
	dateBand      = 0.50
	statsBand     = 0.64
	heartRateBand = 0.78
	phoneBand     = 0.92

	// Horizontal offsets of the battery and steps groups from the center.
	statsOffset = 0.22

	phoneIndicatorRadius = 4
	batteryTextGap       = 4
)

// Screen draws the whole face from one snapshot. Each element is drawn
// independently; a missing value only drops its own element.
type Screen struct {
	Palette Palette
}

func NewScreen(palette Palette) *Screen {
	return &Screen{Palette: palette}
}

func (s *Screen) Draw(d render.Drawer, snap state.State) {
	width, height := d.Size()
	centerX := width / 2
	p := s.Palette

	d.Clear(p.Background)

	d.DrawText(FormatTime(snap.Hour, snap.Minute, snap.Is24Hour), centerX, layout.Fraction(height, timeBand), centered(p.Time, render.TextSizeLarge))

	d.DrawText(FormatDate(snap.Weekday, snap.Day, snap.Month), centerX, layout.Fraction(height, dateBand), centered(p.Date, render.TextSizeMedium))

	statsY := layout.Fraction(height, statsBand)
	s.drawBattery(d, centerX-layout.Fraction(width, statsOffset), statsY, snap.BatteryPercent)

	d.DrawText(FormatSteps(snap.Steps), centerX+layout.Fraction(width, statsOffset), statsY, centered(p.Steps, render.TextSizeSmall))

	if snap.HeartRate.Displayable() {
		bpm, _ := snap.HeartRate.Get()
		d.DrawText(FormatHeartRate(bpm), centerX, layout.Fraction(height, heartRateBand), centered(p.HeartRate, render.TextSizeSmall))
	}

	d.FillCircle(image.Pt(centerX, layout.Fraction(height, phoneBand)), phoneIndicatorRadius, p.Phone(snap.PhoneConnected))
}

// drawBattery puts the icon left of groupX and the percentage right of it,
// both centered on y.
func (s *Screen) drawBattery(d render.Drawer, groupX, y int, percent float64) {
	c := s.Palette.Battery(BatteryTier(percent))
	iconOrigin := image.Pt(groupX-BatteryIconWidth-batteryNubWidth-batteryTextGap/2, y-BatteryIconHeight/2)
	s.Palette.drawBatteryIcon(d, iconOrigin, percent)
	d.DrawText(FormatBattery(percent), groupX+batteryTextGap/2, y, render.TextStyle{
		Color:  c,
		Size:   render.TextSizeSmall,
		Align:  render.TextAlignLeft,
		VAlign: render.VerticalAlignMiddle,
	})
}

func centered(c color.Color, size render.TextSize) render.TextStyle {
	return render.TextStyle{Color: c, Size: size, Align: render.TextAlignCenter, VAlign: render.VerticalAlignMiddle}
}
