package face

import "image/color"

// Palette holds every color the face draws with.
type Palette struct {
	Background   color.RGBA
	Time         color.RGBA
	Date         color.RGBA
	Steps        color.RGBA
	BatteryFull  color.RGBA
	BatteryWarn  color.RGBA
	BatteryLow   color.RGBA
	HeartRate    color.RGBA
	Connected    color.RGBA
	Disconnected color.RGBA
}

func DefaultPalette() Palette {
	return Palette{
		Background:   color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xFF},
		Time:         color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
		Date:         color.RGBA{R: 0xAA, G: 0xAA, B: 0xAA, A: 0xFF},
		Steps:        color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
		BatteryFull:  color.RGBA{R: 0x00, G: 0xFF, B: 0x00, A: 0xFF},
		BatteryWarn:  color.RGBA{R: 0xFF, G: 0xAA, B: 0x00, A: 0xFF},
		BatteryLow:   color.RGBA{R: 0xFF, G: 0x00, B: 0x00, A: 0xFF},
		HeartRate:    color.RGBA{R: 0xFF, G: 0x55, B: 0x55, A: 0xFF},
		Connected:    color.RGBA{R: 0x00, G: 0xAA, B: 0xFF, A: 0xFF},
		Disconnected: color.RGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xFF},
	}
}

// Battery returns the color for a tier; the text readout and the icon both use it.
func (p Palette) Battery(tier Tier) color.RGBA {
	switch tier {
	case TierFull:
		return p.BatteryFull
	case TierWarning:
		return p.BatteryWarn
	default:
		return p.BatteryLow
	}
}

func (p Palette) Phone(connected bool) color.RGBA {
	if connected {
		return p.Connected
	}
	return p.Disconnected
}
