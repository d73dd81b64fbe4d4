package render

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/rook-computer/watchface/internal/state"
)

type screenFunc func(Drawer, state.State)

func (f screenFunc) Draw(d Drawer, s state.State) { f(d, s) }

func startedCanvas(t *testing.T) *CanvasRenderer {
	t.Helper()
	r := NewCanvasRenderer(DefaultConfig())
	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	return r
}

func TestCanvasRendererPrimitives(t *testing.T) {
	r := startedCanvas(t)
	red := color.RGBA{R: 0xFF, A: 0xFF}
	blue := color.RGBA{B: 0xFF, A: 0xFF}
	r.SetScreen(screenFunc(func(d Drawer, _ state.State) {
		d.Clear(color.Black)
		d.FillRect(image.Rect(10, 10, 20, 20), red)
		d.DrawRect(image.Rect(40, 40, 56, 50), blue)
		d.FillCircle(image.Pt(100, 100), 4, red)
	}))

	var buf bytes.Buffer
	if err := r.RenderPNG(&buf, state.State{}); err != nil {
		t.Fatalf("render: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 240 || img.Bounds().Dy() != 240 {
		t.Fatalf("unexpected size %v", img.Bounds())
	}
	assertColor(t, img, 0, 0, color.RGBA{A: 0xFF})
	assertColor(t, img, 15, 15, red)
	assertColor(t, img, 40, 45, blue)
	assertColor(t, img, 48, 45, color.RGBA{A: 0xFF})
	assertColor(t, img, 100, 100, red)
	assertColor(t, img, 104, 100, red)
	assertColor(t, img, 104, 104, color.RGBA{A: 0xFF})
}

func TestCanvasRendererDrawsText(t *testing.T) {
	r := startedCanvas(t)
	var metrics TextMetrics
	r.SetScreen(screenFunc(func(d Drawer, _ state.State) {
		d.Clear(color.Black)
		metrics = d.DrawText("Čt 3. zář", 120, 120, TextStyle{Color: color.White, Size: TextSizeMedium, Align: TextAlignCenter, VAlign: VerticalAlignMiddle})
	}))
	var buf bytes.Buffer
	if err := r.RenderPNG(&buf, state.State{}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if metrics.Width <= 0 || metrics.Ascent <= 0 {
		t.Fatalf("expected measured text, got %+v", metrics)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	lit := 0
	for y := 100; y < 140; y++ {
		for x := 120 - metrics.Width/2; x < 120+metrics.Width/2; x++ {
			if r, _, _, _ := img.At(x, y).RGBA(); r > 0 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Fatalf("expected text pixels around the anchor")
	}
}

func TestRenderPNGRequiresScreen(t *testing.T) {
	r := startedCanvas(t)
	if err := r.RenderPNG(&bytes.Buffer{}, state.State{}); err == nil {
		t.Fatalf("expected error without screen")
	}
}

func TestQRCodePNG(t *testing.T) {
	data, err := QRCodePNG("http://127.0.0.1:8080/", 0)
	if err != nil {
		t.Fatalf("qr: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode qr: %v", err)
	}
	if img.Bounds().Dx() != defaultQRCodeSizePx {
		t.Fatalf("unexpected qr size %v", img.Bounds())
	}
	if data, err := QRCodePNG("", 64); data != nil || err != nil {
		t.Fatalf("expected nil result for empty payload")
	}
}

func assertColor(t *testing.T, img image.Image, x, y int, want color.RGBA) {
	t.Helper()
	got := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
	if got != want {
		t.Fatalf("pixel (%d,%d): expected %v, got %v", x, y, want, got)
	}
}
