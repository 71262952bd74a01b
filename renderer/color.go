package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// toColor converts a component color to a raylib color.
func toColor(c color.RGBA) rl.Color {
	return rl.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

// shade scales the RGB channels by f, clamped to [0, 1].
func shade(c rl.Color, f float32) rl.Color {
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	return rl.Color{
		R: uint8(float32(c.R) * f),
		G: uint8(float32(c.G) * f),
		B: uint8(float32(c.B) * f),
		A: c.A,
	}
}
