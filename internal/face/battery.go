package face

import (
	"image"
	"math"

	"github.com/rook-computer/watchface/internal/render"
	"github.com/rook-computer/watchface/internal/render/layout"
)

// Tier is the color category of the battery level.
type Tier int

const (
	TierCritical Tier = iota
	TierWarning
	TierFull
)

func (t Tier) String() string {
	switch t {
	case TierFull:
		return "full"
	case TierWarning:
		return "warning"
	default:
		return "critical"
	}
}

// BatteryTier maps a percentage to its tier. Boundaries fall to the lower tier.
func BatteryTier(percent float64) Tier {
	switch {
	case percent > 50:
		return TierFull
	case percent > 20:
		return TierWarning
	default:
		return TierCritical
	}
}

// Battery icon geometry in display units.
const (
	BatteryIconWidth  = 16
	BatteryIconHeight = 10
	batteryNubWidth   = 2
	batteryNubHeight  = 4
	// BatteryInteriorWidth is the icon width minus the one unit border on each side.
	BatteryInteriorWidth = BatteryIconWidth - 2
)

// BatteryFillWidth is the width of the icon's level bar. It never drops below
// one unit so the bar stays visible near 0%.
func BatteryFillWidth(percent float64) int {
	width := int(math.Floor(percent / 100 * BatteryInteriorWidth))
	if width < 1 {
		width = 1
	}
	if width > BatteryInteriorWidth {
		width = BatteryInteriorWidth
	}
	return width
}

// BatteryIcon is the computed geometry of one icon.
type BatteryIcon struct {
	Outline image.Rectangle
	Nub     image.Rectangle
	Fill    image.Rectangle
}

func BatteryIconAt(origin image.Point, percent float64) BatteryIcon {
	outline := layout.At(origin, BatteryIconWidth, BatteryIconHeight)
	fill, _ := layout.SplitVertical(layout.Inset(outline, 1), BatteryFillWidth(percent))
	return BatteryIcon{
		Outline: outline,
		Nub:     layout.CenteredRight(outline, batteryNubWidth, batteryNubHeight),
		Fill:    fill,
	}
}

func (p Palette) drawBatteryIcon(d render.Drawer, origin image.Point, percent float64) {
	icon := BatteryIconAt(origin, percent)
	c := p.Battery(BatteryTier(percent))
	d.DrawRect(icon.Outline, c)
	d.FillRect(icon.Nub, c)
	d.FillRect(icon.Fill, c)
}
