package core

import "github.com/go-gl/mathgl/mgl32"

// Color is an RGBA color with float channels in [0,1].
type Color struct {
	R, G, B, A float32
}

// White is the identity tint.
func White() Color {
	return Color{R: 1, G: 1, B: 1, A: 1}
}

func (c Color) Vec4() mgl32.Vec4 {
	return mgl32.Vec4{c.R, c.G, c.B, c.A}
}

// Modulate multiplies two colors component-wise, alpha included.
func (c Color) Modulate(other Color) Color {
	return Color{
		R: c.R * other.R,
		G: c.G * other.G,
		B: c.B * other.B,
		A: c.A * other.A,
	}
}
