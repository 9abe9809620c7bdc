package gfx

import "image/color"

// SurfaceConfig fixes what a Surface draws. It is read once by Init.
// Points applies to ShapeFan, FlatColor to ShapeFlatQuad, Seed feeds the
// random fan colors.
type SurfaceConfig struct {
	Shape      Shape
	Points     int
	Seed       uint64
	ClearColor color.Color
	FlatColor  color.Color
}

const DefaultFanPoints = 8

func DefaultSurfaceConfig() SurfaceConfig {
	return SurfaceConfig{
		Shape:      ShapeFan,
		Points:     DefaultFanPoints,
		ClearColor: color.NRGBA{R: 102, G: 153, B: 255, A: 255},
		FlatColor:  color.NRGBA{R: 255, G: 255, B: 255, A: 255},
	}
}

func colorToFloat(c color.Color) [4]float32 {
	if c == nil {
		return [4]float32{}
	}
	r, g, b, a := c.RGBA()
	const inv = 1.0 / 65535.0
	return [4]float32{
		float32(r) * inv,
		float32(g) * inv,
		float32(b) * inv,
		float32(a) * inv,
	}
}
