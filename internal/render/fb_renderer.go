package render

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	fb "github.com/gonutz/framebuffer"
	"github.com/rook-computer/watchface/internal/state"
	xdraw "golang.org/x/image/draw"
)

// FBRenderer renders to the Linux framebuffer using an offscreen logical canvas.
type FBRenderer struct {
	*CanvasRenderer

	fbDev   *fb.Device
	running atomic.Bool
	frames  atomic.Int64
}

func NewFBRenderer(cfg Config) *FBRenderer {
	return &FBRenderer{CanvasRenderer: NewCanvasRenderer(cfg)}
}

func (r *FBRenderer) Start(ctx context.Context) error {
	device := r.Config.FramebufferDevice
	if device == "" {
		device = DefaultConfig().FramebufferDevice
	}
	dev, err := fb.Open(device)
	if err != nil {
		return fmt.Errorf("open framebuffer %s: %w", device, err)
	}
	r.fbDev = dev
	bounds := dev.Bounds()
	r.infof("framebuffer open, bounds=%dx%d", bounds.Dx(), bounds.Dy())

	if err := r.CanvasRenderer.Start(ctx); err != nil {
		dev.Close()
		r.fbDev = nil
		return err
	}
	r.running.Store(true)
	return nil
}

func (r *FBRenderer) Stop() error {
	r.running.Store(false)
	if r.fbDev != nil {
		r.fbDev.Close()
		r.fbDev = nil
	}
	return nil
}

// RedrawWithState draws the current screen and pushes it to the framebuffer.
func (r *FBRenderer) RedrawWithState(snap state.State) {
	if !r.running.Load() || r.fbDev == nil {
		return
	}
	started := time.Now()
	r.mu.Lock()
	drawn := r.redrawLocked(snap)
	if drawn {
		blitToFB(r.fbDev, r.CanvasRenderer)
	}
	r.mu.Unlock()
	if !drawn {
		return
	}
	if n := r.frames.Add(1); n == 1 || n%60 == 0 {
		bounds := r.fbDev.Bounds()
		r.infof("frame %d pushed (%s) in %s", n,
			humanize.Bytes(uint64(bounds.Dx()*bounds.Dy()*4)), time.Since(started).Round(time.Millisecond))
	}
}

// blitToFB scales the logical canvas onto the device.
func blitToFB(dev *fb.Device, r *CanvasRenderer) {
	xdraw.NearestNeighbor.Scale(dev, dev.Bounds(), r.canvas, r.canvas.Bounds(), xdraw.Src, nil)
}
