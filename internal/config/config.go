// Package config loads the face configuration from TOML, .env and the environment.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/rook-computer/watchface/internal/face"
	"github.com/rook-computer/watchface/internal/render"
)

// DefaultHistoryRetention keeps a week of heart-rate samples.
const DefaultHistoryRetention = 7 * 24 * time.Hour

const (
	EnvConfigPath  = "WATCHFACE_CONFIG"
	EnvListenAddr  = "WATCHFACE_LISTEN"
	EnvDevMode     = "WATCHFACE_DEV"
	EnvMQTTBroker  = "WATCHFACE_MQTT_BROKER"
	EnvHistoryPath = "WATCHFACE_HISTORY_DB"
	EnvFramebuffer = "WATCHFACE_FB"
	EnvStdioLog    = "WATCHFACE_STDIO_LOG"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Display DisplayConfig `toml:"display"`
	Palette PaletteConfig `toml:"palette"`
	Preview PreviewConfig `toml:"preview"`
	MQTT    MQTTConfig    `toml:"mqtt"`
	History HistoryConfig `toml:"history"`
}

type DisplayConfig struct {
	Width       int      `toml:"width"`
	Height      int      `toml:"height"`
	Framebuffer string   `toml:"framebuffer"`
	Active      Duration `toml:"active-interval"`
	LowPower    Duration `toml:"low-power-interval"`
	Is24Hour    *bool    `toml:"24-hour"`
	BatteryPath string   `toml:"battery-path"`
}

// PaletteConfig holds hex colors; empty entries keep the default.
type PaletteConfig struct {
	Background   string `toml:"background"`
	Time         string `toml:"time"`
	Date         string `toml:"date"`
	Steps        string `toml:"steps"`
	BatteryFull  string `toml:"battery-full"`
	BatteryWarn  string `toml:"battery-warning"`
	BatteryLow   string `toml:"battery-critical"`
	HeartRate    string `toml:"heart-rate"`
	Connected    string `toml:"connected"`
	Disconnected string `toml:"disconnected"`
}

// PreviewConfig controls the preview API. An empty ListenAddr keeps
// `watchface run` from serving it; the simulator falls back to :8080.
type PreviewConfig struct {
	ListenAddr string `toml:"listen"`
	DevMode    bool   `toml:"dev"`
}

type MQTTConfig struct {
	Broker      string `toml:"broker"`
	ClientID    string `toml:"client-id"`
	Username    string `toml:"username"`
	Password    string `toml:"password"`
	TopicPrefix string `toml:"topic-prefix"`
}

type HistoryConfig struct {
	Path string `toml:"path"`
	// Retention is how long samples are kept; zero keeps them forever.
	Retention Duration `toml:"retention"`
}

// Duration decodes TOML strings such as "1s" or "1m".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

func Default() FileConfig {
	canvas := render.DefaultConfig()
	return FileConfig{
		Display: DisplayConfig{
			Width:       canvas.CanvasWidth,
			Height:      canvas.CanvasHeight,
			Framebuffer: canvas.FramebufferDevice,
			Active:      Duration{face.ActiveInterval},
			LowPower:    Duration{face.LowPowerInterval},
			BatteryPath: "/sys/class/power_supply/BAT0/capacity",
		},
		MQTT:    MQTTConfig{ClientID: "watchface", TopicPrefix: "watchface"},
		History: HistoryConfig{Retention: Duration{DefaultHistoryRetention}},
	}
}

// Load reads the TOML file at path over the defaults, then applies .env and
// WATCHFACE_* overrides. A missing file is not an error.
func Load(path string) (FileConfig, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			if !os.IsNotExist(err) {
				return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
			}
		} else if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return FileConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return FileConfig{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *FileConfig) error {
	if v := os.Getenv(EnvListenAddr); v != "" {
		cfg.Preview.ListenAddr = v
	}
	if v := os.Getenv(EnvMQTTBroker); v != "" {
		cfg.MQTT.Broker = v
	}
	if v := os.Getenv(EnvHistoryPath); v != "" {
		cfg.History.Path = v
	}
	if v := os.Getenv(EnvFramebuffer); v != "" {
		cfg.Display.Framebuffer = v
	}
	dev, err := BoolFromEnv(EnvDevMode, cfg.Preview.DevMode)
	if err != nil {
		return err
	}
	cfg.Preview.DevMode = dev
	return nil
}

func (cfg FileConfig) Validate() error {
	if cfg.Display.Width <= 0 || cfg.Display.Height <= 0 {
		return fmt.Errorf("display size must be positive (got %dx%d)", cfg.Display.Width, cfg.Display.Height)
	}
	if cfg.Display.Active.Duration < 0 || cfg.Display.LowPower.Duration < 0 {
		return errors.New("redraw intervals must not be negative")
	}
	if cfg.History.Retention.Duration < 0 {
		return errors.New("history retention must not be negative")
	}
	if _, err := cfg.Palette.Resolve(face.DefaultPalette()); err != nil {
		return err
	}
	return nil
}

// Render returns the canvas settings.
func (cfg FileConfig) Render() render.Config {
	return render.Config{
		CanvasWidth:       cfg.Display.Width,
		CanvasHeight:      cfg.Display.Height,
		FramebufferDevice: cfg.Display.Framebuffer,
	}
}

// FacePalette returns the configured palette. Load has already validated it.
func (cfg FileConfig) FacePalette() face.Palette {
	palette, err := cfg.Palette.Resolve(face.DefaultPalette())
	if err != nil {
		return face.DefaultPalette()
	}
	return palette
}

// Resolve overlays the configured hex colors on base.
func (pc PaletteConfig) Resolve(base face.Palette) (face.Palette, error) {
	entries := []struct {
		name string
		hex  string
		dst  *color.RGBA
	}{
		{"background", pc.Background, &base.Background},
		{"time", pc.Time, &base.Time},
		{"date", pc.Date, &base.Date},
		{"steps", pc.Steps, &base.Steps},
		{"battery-full", pc.BatteryFull, &base.BatteryFull},
		{"battery-warning", pc.BatteryWarn, &base.BatteryWarn},
		{"battery-critical", pc.BatteryLow, &base.BatteryLow},
		{"heart-rate", pc.HeartRate, &base.HeartRate},
		{"connected", pc.Connected, &base.Connected},
		{"disconnected", pc.Disconnected, &base.Disconnected},
	}
	for _, entry := range entries {
		if entry.hex == "" {
			continue
		}
		c, err := ParseHexColor(entry.hex)
		if err != nil {
			return face.Palette{}, fmt.Errorf("palette %s: %w", entry.name, err)
		}
		*entry.dst = c
	}
	return base, nil
}

// ParseHexColor parses "#rrggbb" or "#rgb" into an opaque color.
func ParseHexColor(hex string) (color.RGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}, nil
}

// BoolFromEnv parses a boolean env var, returning fallback when unset.
func BoolFromEnv(name string, fallback bool) (bool, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback, fmt.Errorf("%s must be a boolean (got %q): %w", name, raw, err)
	}
	return parsed, nil
}
