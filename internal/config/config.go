// Package config loads the demo settings from TOML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"os"
	"strings"

	"github.com/kjkrol/gokdraw/internal/platform"
	"github.com/kjkrol/gokdraw/pkg/gfx"
	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	Window  Window  `toml:"window"`
	Surface Surface `toml:"surface"`
	Log     Log     `toml:"log"`
}

type Window struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	VSync  bool   `toml:"vsync"`
}

type Surface struct {
	Shape      string     `toml:"shape"`
	Points     int        `toml:"points"`
	Seed       uint64     `toml:"seed"`
	ClearColor [4]float64 `toml:"clear_color"`
	FlatColor  [4]float64 `toml:"flat_color"`
}

type Log struct {
	Level string `toml:"level"`
}

func Default() Config {
	return Config{
		Window: Window{
			Title:  "gokdraw",
			Width:  800,
			Height: 600,
			VSync:  true,
		},
		Surface: Surface{
			Shape:      gfx.ShapeFan.String(),
			Points:     gfx.DefaultFanPoints,
			ClearColor: [4]float64{0.4, 0.6, 1.0, 1.0},
			FlatColor:  [4]float64{1, 1, 1, 1},
		},
		Log: Log{Level: "info"},
	}
}

// Load reads path over the defaults. Keys the Config does not know are an
// error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := Decode(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Decode(data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf("unknown keys:\n%s", strict.String())
		}
		return err
	}
	return cfg.Validate()
}

func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	shape, err := gfx.ParseShape(c.Surface.Shape)
	if err != nil {
		errs = append(errs, err)
	}
	if shape == gfx.ShapeFan && c.Surface.Points < 3 {
		errs = append(errs, fmt.Errorf("fan needs at least 3 points, got %d", c.Surface.Points))
	}
	if err := checkColor("clear_color", c.Surface.ClearColor); err != nil {
		errs = append(errs, err)
	}
	if err := checkColor("flat_color", c.Surface.FlatColor); err != nil {
		errs = append(errs, err)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func checkColor(name string, c [4]float64) error {
	for _, v := range c {
		if v < 0 || v > 1 || math.IsNaN(v) {
			return fmt.Errorf("%s components must be in [0, 1], got %v", name, c)
		}
	}
	return nil
}

func toColor(c [4]float64) color.NRGBA {
	ch := func(v float64) uint8 { return uint8(math.Round(v * 255)) }
	return color.NRGBA{R: ch(c[0]), G: ch(c[1]), B: ch(c[2]), A: ch(c[3])}
}

// SurfaceConfig converts the validated settings for gfx.
func (c Config) SurfaceConfig() gfx.SurfaceConfig {
	shape, _ := gfx.ParseShape(c.Surface.Shape)
	return gfx.SurfaceConfig{
		Shape:      shape,
		Points:     c.Surface.Points,
		Seed:       c.Surface.Seed,
		ClearColor: toColor(c.Surface.ClearColor),
		FlatColor:  toColor(c.Surface.FlatColor),
	}
}

func (c Config) WindowConfig() platform.WindowConfig {
	return platform.WindowConfig{
		Title:  c.Window.Title,
		Width:  c.Window.Width,
		Height: c.Window.Height,
		VSync:  c.Window.VSync,
	}
}

func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("log level %q: %w", s, err)
	}
	return level, nil
}
