package render

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"sync"

	"github.com/golang/freetype/truetype"
	"github.com/rook-computer/watchface/internal/assets"
	"github.com/rook-computer/watchface/internal/state"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const fontDPI = 72

// Logger matches app.Logger without importing it.
type Logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

// CanvasRenderer draws screens into an in-memory RGBA canvas. It is the
// Drawer handed to screens and the base of FBRenderer.
type CanvasRenderer struct {
	Config Config
	Logger Logger

	mu      sync.Mutex
	canvas  *image.RGBA
	faces   map[TextSize]font.Face
	current Screen
}

func NewCanvasRenderer(cfg Config) *CanvasRenderer {
	return &CanvasRenderer{Config: cfg}
}

func (r *CanvasRenderer) Start(ctx context.Context) error {
	if r.Config.CanvasWidth <= 0 || r.Config.CanvasHeight <= 0 {
		return errors.New("canvas size must be positive")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.canvas = image.NewRGBA(image.Rect(0, 0, r.Config.CanvasWidth, r.Config.CanvasHeight))
	r.faces = map[TextSize]font.Face{
		TextSizeSmall:  r.loadFace("regular", assets.FontTTF, fontPixels(TextSizeSmall, r.Config.CanvasHeight)),
		TextSizeMedium: r.loadFace("regular", assets.FontTTF, fontPixels(TextSizeMedium, r.Config.CanvasHeight)),
		TextSizeLarge:  r.loadFace("bold", assets.BoldFontTTF, fontPixels(TextSizeLarge, r.Config.CanvasHeight)),
	}
	return nil
}

// loadFace prefers the opentype parser, then freetype, then basicfont so a
// broken font never stops the face from drawing.
func (r *CanvasRenderer) loadFace(name string, ttf []byte, size float64) font.Face {
	fnt, err := opentype.Parse(ttf)
	if err == nil {
		face, ferr := opentype.NewFace(fnt, &opentype.FaceOptions{Size: size, DPI: fontDPI, Hinting: font.HintingFull})
		if ferr == nil {
			r.infof("loaded %s font at %.0fpx", name, size)
			return face
		}
		err = ferr
	}
	r.errorf("opentype %s font failed, trying freetype: %v", name, err)
	tt, terr := truetype.Parse(ttf)
	if terr != nil {
		r.errorf("truetype %s font failed, using basicfont: %v", name, terr)
		return basicfont.Face7x13
	}
	return truetype.NewFace(tt, &truetype.Options{Size: size, DPI: fontDPI, Hinting: font.HintingFull})
}

func (r *CanvasRenderer) Stop() error { return nil }

// SetScreen sets the screen drawn by RedrawWithState.
func (r *CanvasRenderer) SetScreen(screen Screen) {
	r.mu.Lock()
	r.current = screen
	r.mu.Unlock()
}

// RedrawWithState draws the current screen into the canvas.
func (r *CanvasRenderer) RedrawWithState(snap state.State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.redrawLocked(snap)
}

func (r *CanvasRenderer) redrawLocked(snap state.State) bool {
	if r.canvas == nil || r.current == nil {
		return false
	}
	r.current.Draw(r, snap)
	return true
}

// RenderPNG redraws with snap and writes the canvas as PNG.
func (r *CanvasRenderer) RenderPNG(w io.Writer, snap state.State) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.redrawLocked(snap) {
		return errors.New("renderer not started or no screen set")
	}
	return png.Encode(w, r.canvas)
}

// Drawer primitives. They are called from Screen.Draw with r.mu held.

func (r *CanvasRenderer) Size() (int, int) {
	return r.canvas.Bounds().Dx(), r.canvas.Bounds().Dy()
}

func (r *CanvasRenderer) Clear(c color.Color) {
	draw.Draw(r.canvas, r.canvas.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
}

func (r *CanvasRenderer) face(size TextSize) font.Face {
	if face, ok := r.faces[size]; ok && face != nil {
		return face
	}
	return basicfont.Face7x13
}

func (r *CanvasRenderer) MeasureText(text string, style TextStyle) TextMetrics {
	face := r.face(style.Size)
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	descent := metrics.Descent.Ceil()
	return TextMetrics{
		Width:      font.MeasureString(face, text).Ceil(),
		Height:     ascent + descent,
		Ascent:     ascent,
		Descent:    descent,
		LineHeight: metrics.Height.Ceil(),
	}
}

func (r *CanvasRenderer) DrawText(text string, x, y int, style TextStyle) TextMetrics {
	m := r.MeasureText(text, style)
	switch style.Align {
	case TextAlignCenter:
		x -= m.Width / 2
	case TextAlignRight:
		x -= m.Width
	}
	baseline := y + m.Ascent
	if style.VAlign == VerticalAlignMiddle {
		baseline = y + (m.Ascent-m.Descent)/2
	}
	fg := style.Color
	if fg == nil {
		fg = color.White
	}
	drawer := &font.Drawer{
		Dst:  r.canvas,
		Src:  image.NewUniform(fg),
		Face: r.face(style.Size),
		Dot:  fixed.P(x, baseline),
	}
	drawer.DrawString(text)
	return m
}

func (r *CanvasRenderer) FillRect(rect image.Rectangle, c color.Color) {
	draw.Draw(r.canvas, rect.Intersect(r.canvas.Bounds()), &image.Uniform{C: c}, image.Point{}, draw.Over)
}

func (r *CanvasRenderer) DrawRect(rect image.Rectangle, c color.Color) {
	rect = rect.Canon()
	if rect.Empty() {
		return
	}
	r.FillRect(image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+1), c)
	r.FillRect(image.Rect(rect.Min.X, rect.Max.Y-1, rect.Max.X, rect.Max.Y), c)
	r.FillRect(image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+1, rect.Max.Y), c)
	r.FillRect(image.Rect(rect.Max.X-1, rect.Min.Y, rect.Max.X, rect.Max.Y), c)
}

func (r *CanvasRenderer) FillCircle(center image.Point, radius int, c color.Color) {
	if radius <= 0 {
		return
	}
	for dy := -radius; dy <= radius; dy++ {
		dx := 0
		for (dx+1)*(dx+1)+dy*dy <= radius*radius {
			dx++
		}
		r.FillRect(image.Rect(center.X-dx, center.Y+dy, center.X+dx+1, center.Y+dy+1), c)
	}
}

func (r *CanvasRenderer) infof(format string, args ...interface{}) {
	if r.Logger != nil {
		r.Logger.Infof("render", format, args...)
	}
}

func (r *CanvasRenderer) errorf(format string, args ...interface{}) {
	if r.Logger != nil {
		r.Logger.Errorf("render", format, args...)
	}
}
