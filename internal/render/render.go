package render

import (
	"context"
	"image"
	"image/color"

	"github.com/rook-computer/watchface/internal/state"
)

type Renderer interface {
	Start(ctx context.Context) error
	Stop() error
	SetScreen(screen Screen)
	RedrawWithState(snap state.State)
}

// Screen draws one full frame from a snapshot.
type Screen interface {
	Draw(r Drawer, s state.State)
}

// Drawer is the display surface screens draw on. Coordinates are in logical
// canvas pixels; Size reports the canvas at call time so layouts can be
// computed relative to it.
type Drawer interface {
	Size() (width int, height int)

	Clear(c color.Color)

	MeasureText(text string, style TextStyle) TextMetrics
	DrawText(text string, x, y int, style TextStyle) TextMetrics

	FillRect(rect image.Rectangle, c color.Color)
	// DrawRect strokes a one pixel outline just inside rect.
	DrawRect(rect image.Rectangle, c color.Color)
	FillCircle(center image.Point, radius int, c color.Color)
}

type TextAlign int

const (
	TextAlignLeft TextAlign = iota
	TextAlignCenter
	TextAlignRight
)

type VerticalAlign int

const (
	VerticalAlignTop VerticalAlign = iota
	VerticalAlignMiddle
)

type TextSize int

const (
	TextSizeSmall TextSize = iota
	TextSizeMedium
	TextSizeLarge
)

// TextStyle describes how to render text.
// Align controls how x is interpreted, VAlign how y is interpreted.
type TextStyle struct {
	Color  color.Color
	Size   TextSize
	Align  TextAlign
	VAlign VerticalAlign
}

type TextMetrics struct {
	Width      int
	Height     int
	Ascent     int
	Descent    int
	LineHeight int
}
