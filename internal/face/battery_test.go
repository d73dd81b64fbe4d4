package face

import (
	"image"
	"testing"
)

func TestBatteryTierBoundaries(t *testing.T) {
	cases := []struct {
		percent float64
		want    Tier
	}{
		{100, TierFull},
		{50.01, TierFull},
		{50.0, TierWarning},
		{20.01, TierWarning},
		{20.0, TierCritical},
		{0, TierCritical},
		{-5, TierCritical},
	}
	for _, tc := range cases {
		if got := BatteryTier(tc.percent); got != tc.want {
			t.Fatalf("BatteryTier(%v) = %s, want %s", tc.percent, got, tc.want)
		}
	}
}

func TestBatteryFillWidth(t *testing.T) {
	cases := map[float64]int{0: 1, -10: 1, 5: 1, 15: 2, 50: 7, 100: 14, 120: 14}
	for percent, want := range cases {
		if got := BatteryFillWidth(percent); got != want {
			t.Fatalf("BatteryFillWidth(%v) = %d, want %d", percent, got, want)
		}
	}
}

func TestBatteryIconGeometry(t *testing.T) {
	icon := BatteryIconAt(image.Pt(100, 50), 15)
	if icon.Outline != image.Rect(100, 50, 116, 60) {
		t.Fatalf("unexpected outline %v", icon.Outline)
	}
	if icon.Nub != image.Rect(116, 53, 118, 57) {
		t.Fatalf("unexpected nub %v", icon.Nub)
	}
	if icon.Fill != image.Rect(101, 51, 103, 59) {
		t.Fatalf("unexpected fill %v", icon.Fill)
	}
}

func TestPaletteBatterySharedColor(t *testing.T) {
	p := DefaultPalette()
	if p.Battery(TierFull) == p.Battery(TierCritical) || p.Battery(TierWarning) == p.Battery(TierCritical) {
		t.Fatalf("tiers must have distinct colors")
	}
}
