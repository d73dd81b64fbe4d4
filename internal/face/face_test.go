package face

import (
	"testing"

	"github.com/rook-computer/watchface/internal/render"
	"github.com/rook-computer/watchface/internal/render/rendertest"
	"github.com/rook-computer/watchface/internal/state"
)

func endToEndSnapshot() state.State {
	return state.State{
		Hour:           14,
		Minute:         5,
		Is24Hour:       true,
		Weekday:        5,
		Day:            3,
		Month:          9,
		BatteryPercent: 15.0,
		Steps:          8432,
		HeartRate:      state.NoHeartRate(),
		PhoneConnected: false,
	}
}

func TestScreenDrawsFullFrame(t *testing.T) {
	palette := DefaultPalette()
	rec := rendertest.NewRecorder(240, 240)
	NewScreen(palette).Draw(rec, endToEndSnapshot())

	ops := rec.Ops()
	wantKinds := []rendertest.OpKind{
		rendertest.OpClear,
		rendertest.OpText,
		rendertest.OpText,
		rendertest.OpDrawRect,
		rendertest.OpFillRect,
		rendertest.OpFillRect,
		rendertest.OpText,
		rendertest.OpText,
		rendertest.OpFillCircle,
	}
	if len(ops) != len(wantKinds) {
		t.Fatalf("expected %d ops, got %d: %+v", len(wantKinds), len(ops), ops)
	}
	for i, kind := range wantKinds {
		if ops[i].Kind != kind {
			t.Fatalf("op %d: expected %s, got %s", i, kind, ops[i].Kind)
		}
	}
	if ops[0].Color != palette.Background {
		t.Fatalf("expected background clear, got %v", ops[0].Color)
	}

	wantTexts := []string{"14:05", "Čt 3. zář", "15%", "8432"}
	texts := rec.Texts()
	for i, want := range wantTexts {
		if texts[i] != want {
			t.Fatalf("text %d: expected %q, got %q", i, want, texts[i])
		}
	}

	battery, _ := rec.FindText("15%")
	if battery.Color != palette.BatteryLow {
		t.Fatalf("expected critical battery color, got %v", battery.Color)
	}
	if ops[3].Color != palette.BatteryLow || ops[5].Color != palette.BatteryLow {
		t.Fatalf("icon must share the critical color")
	}
	if ops[3].Rect.Dx() != BatteryIconWidth || ops[3].Rect.Dy() != BatteryIconHeight {
		t.Fatalf("unexpected outline %v", ops[3].Rect)
	}
	if w := ops[5].Rect.Dx(); w != 2 {
		t.Fatalf("expected fill width 2, got %d", w)
	}
	if ops[8].Color != palette.Disconnected || ops[8].Radius != phoneIndicatorRadius {
		t.Fatalf("unexpected phone indicator %+v", ops[8])
	}
}

func TestScreenLayoutIsCenteredAndOrdered(t *testing.T) {
	rec := rendertest.NewRecorder(240, 240)
	NewScreen(DefaultPalette()).Draw(rec, endToEndSnapshot())

	timeOp, _ := rec.FindText("14:05")
	dateOp, _ := rec.FindText("Čt 3. zář")
	steps, _ := rec.FindText("8432")
	battery, _ := rec.FindText("15%")
	if timeOp.Point.X != 120 || dateOp.Point.X != 120 {
		t.Fatalf("time and date must be centered, got %v %v", timeOp.Point, dateOp.Point)
	}
	if timeOp.Style.Align != render.TextAlignCenter || timeOp.Style.VAlign != render.VerticalAlignMiddle {
		t.Fatalf("time must be centered on both axes: %+v", timeOp.Style)
	}
	if timeOp.Point.Y >= 120 || dateOp.Point.Y <= timeOp.Point.Y {
		t.Fatalf("time must sit above center and date below it: %v %v", timeOp.Point, dateOp.Point)
	}
	if battery.Point.X >= 120 || steps.Point.X <= 120 {
		t.Fatalf("battery left and steps right of center: %v %v", battery.Point, steps.Point)
	}
	if battery.Point.Y != steps.Point.Y {
		t.Fatalf("battery and steps share a row: %v %v", battery.Point, steps.Point)
	}
}

func TestScreenHeartRateRow(t *testing.T) {
	palette := DefaultPalette()
	snap := endToEndSnapshot()
	snap.HeartRate = state.SomeHeartRate(68)
	snap.PhoneConnected = true

	rec := rendertest.NewRecorder(240, 240)
	NewScreen(palette).Draw(rec, snap)
	hr, ok := rec.FindText("68")
	if !ok {
		t.Fatalf("expected heart-rate row, got %v", rec.Texts())
	}
	if hr.Color != palette.HeartRate || hr.Point.X != 120 {
		t.Fatalf("unexpected heart-rate op %+v", hr)
	}
	steps, _ := rec.FindText("8432")
	if hr.Point.Y <= steps.Point.Y {
		t.Fatalf("heart rate must be below the stats row")
	}
	ops := rec.Ops()
	if last := ops[len(ops)-1]; last.Kind != rendertest.OpFillCircle || last.Color != palette.Connected {
		t.Fatalf("expected connected indicator last, got %+v", last)
	}
}

func TestScreenSuppressesNonPositiveHeartRate(t *testing.T) {
	snap := endToEndSnapshot()
	snap.HeartRate = state.SomeHeartRate(0)
	rec := rendertest.NewRecorder(240, 240)
	NewScreen(DefaultPalette()).Draw(rec, snap)
	if n := len(rec.Texts()); n != 4 {
		t.Fatalf("expected 4 texts without heart rate, got %v", rec.Texts())
	}
}

func TestScreenDegradesUnknownCalendar(t *testing.T) {
	snap := endToEndSnapshot()
	snap.Weekday = 0
	rec := rendertest.NewRecorder(320, 200)
	NewScreen(DefaultPalette()).Draw(rec, snap)
	if _, ok := rec.FindText("? 3. zář"); !ok {
		t.Fatalf("expected placeholder weekday, got %v", rec.Texts())
	}
	if _, ok := rec.FindText("8432"); !ok {
		t.Fatalf("later elements must still draw")
	}
}
