// Package rendertest provides a render.Drawer that records draw calls.
package rendertest

import (
	"image"
	"image/color"
	"sync"

	"github.com/rook-computer/watchface/internal/render"
)

type OpKind string

const (
	OpClear      OpKind = "clear"
	OpText       OpKind = "text"
	OpFillRect   OpKind = "fill-rect"
	OpDrawRect   OpKind = "draw-rect"
	OpFillCircle OpKind = "fill-circle"
)

// Op is one recorded draw call.
type Op struct {
	Kind   OpKind
	Text   string
	Point  image.Point
	Rect   image.Rectangle
	Radius int
	Style  render.TextStyle
	Color  color.Color
}

// Recorder is a fixed-size Drawer. Text is measured as 8x12 per rune.
type Recorder struct {
	Width  int
	Height int

	mu  sync.Mutex
	ops []Op
}

func NewRecorder(width, height int) *Recorder {
	return &Recorder{Width: width, Height: height}
}

func (r *Recorder) Ops() []Op {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Op, len(r.ops))
	copy(out, r.ops)
	return out
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	r.ops = nil
	r.mu.Unlock()
}

// Texts returns the drawn strings in order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.Ops() {
		if op.Kind == OpText {
			out = append(out, op.Text)
		}
	}
	return out
}

// FindText returns the first text op drawing s.
func (r *Recorder) FindText(s string) (Op, bool) {
	for _, op := range r.Ops() {
		if op.Kind == OpText && op.Text == s {
			return op, true
		}
	}
	return Op{}, false
}

func (r *Recorder) record(op Op) {
	r.mu.Lock()
	r.ops = append(r.ops, op)
	r.mu.Unlock()
}

func (r *Recorder) Size() (int, int) { return r.Width, r.Height }

func (r *Recorder) Clear(c color.Color) { r.record(Op{Kind: OpClear, Color: c}) }

func (r *Recorder) MeasureText(text string, style render.TextStyle) render.TextMetrics {
	return render.TextMetrics{Width: 8 * len([]rune(text)), Height: 12, Ascent: 10, Descent: 2, LineHeight: 14}
}

func (r *Recorder) DrawText(text string, x, y int, style render.TextStyle) render.TextMetrics {
	r.record(Op{Kind: OpText, Text: text, Point: image.Pt(x, y), Style: style, Color: style.Color})
	return r.MeasureText(text, style)
}

func (r *Recorder) FillRect(rect image.Rectangle, c color.Color) {
	r.record(Op{Kind: OpFillRect, Rect: rect, Color: c})
}

func (r *Recorder) DrawRect(rect image.Rectangle, c color.Color) {
	r.record(Op{Kind: OpDrawRect, Rect: rect, Color: c})
}

func (r *Recorder) FillCircle(center image.Point, radius int, c color.Color) {
	r.record(Op{Kind: OpFillCircle, Point: center, Radius: radius, Color: c})
}
