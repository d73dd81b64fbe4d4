package render

// Config is the logical canvas the screens draw into; FBRenderer scales it
// to the framebuffer.
type Config struct {
	CanvasWidth  int
	CanvasHeight int
	// FramebufferDevice is only used by FBRenderer.
	FramebufferDevice string
}

func DefaultConfig() Config {
	return Config{
		CanvasWidth:       240,
		CanvasHeight:      240,
		FramebufferDevice: "/dev/fb0",
	}
}

// fontPixels returns the pixel size for a text size on a canvas of the given
// height. Sizes track the canvas so layouts stay proportional.
func fontPixels(size TextSize, canvasHeight int) float64 {
	switch size {
	case TextSizeLarge:
		return float64(canvasHeight) / 4.5
	case TextSizeMedium:
		return float64(canvasHeight) / 11
	default:
		return float64(canvasHeight) / 15
	}
}
