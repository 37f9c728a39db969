package shading

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// FilterMode selects how texels are combined when sampling.
type FilterMode int

const (
	FilterNearest FilterMode = iota
	FilterLinear
)

// AddressMode decides how coordinates outside [0,1] resolve.
type AddressMode int

const (
	AddressRepeat AddressMode = iota
	AddressMirrorRepeat
	AddressClampToEdge
)

// SamplerState is the sampling configuration half of a combined
// image-sampler. It is external configuration as far as the fragment stage is
// concerned; the stage only forwards it to Sample.
type SamplerState struct {
	Filter   FilterMode
	AddressU AddressMode
	AddressV AddressMode
}

// Texture2D is the image half of a combined image-sampler: a dense
// row-major grid of RGBA texels in [0,1] floats.
type Texture2D struct {
	Width  int
	Height int
	Texels []mgl32.Vec4
}

// NewTexture2D wraps the given texels. len(texels) must be width*height.
func NewTexture2D(width, height int, texels []mgl32.Vec4) *Texture2D {
	if len(texels) != width*height {
		panic("shading: texel count does not match texture dimensions")
	}
	return &Texture2D{Width: width, Height: height, Texels: texels}
}

// TextureFromRGBA8 converts tightly packed 8-bit RGBA pixels into a float
// texture.
func TextureFromRGBA8(width, height int, pix []byte) *Texture2D {
	if len(pix) != width*height*4 {
		panic("shading: pixel count does not match texture dimensions")
	}
	texels := make([]mgl32.Vec4, width*height)
	for i := range texels {
		texels[i] = mgl32.Vec4{
			float32(pix[i*4+0]) / 255.0,
			float32(pix[i*4+1]) / 255.0,
			float32(pix[i*4+2]) / 255.0,
			float32(pix[i*4+3]) / 255.0,
		}
	}
	return &Texture2D{Width: width, Height: height, Texels: texels}
}

// Sample resolves one RGBA value at the given normalized coordinates using
// the sampler's filter and address modes.
func (t *Texture2D) Sample(uv mgl32.Vec2, smp SamplerState) mgl32.Vec4 {
	switch smp.Filter {
	case FilterLinear:
		return t.sampleLinear(uv, smp)
	default:
		return t.sampleNearest(uv, smp)
	}
}

func (t *Texture2D) sampleNearest(uv mgl32.Vec2, smp SamplerState) mgl32.Vec4 {
	x := wrapTexel(int(math.Floor(float64(uv.X())*float64(t.Width))), t.Width, smp.AddressU)
	y := wrapTexel(int(math.Floor(float64(uv.Y())*float64(t.Height))), t.Height, smp.AddressV)
	return t.Texels[y*t.Width+x]
}

func (t *Texture2D) sampleLinear(uv mgl32.Vec2, smp SamplerState) mgl32.Vec4 {
	// Texel centers sit at (i+0.5)/size.
	fx := float64(uv.X())*float64(t.Width) - 0.5
	fy := float64(uv.Y())*float64(t.Height) - 0.5
	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx := float32(fx - math.Floor(fx))
	ty := float32(fy - math.Floor(fy))

	c00 := t.texelAt(x0, y0, smp)
	c10 := t.texelAt(x0+1, y0, smp)
	c01 := t.texelAt(x0, y0+1, smp)
	c11 := t.texelAt(x0+1, y0+1, smp)

	top := c00.Mul(1 - tx).Add(c10.Mul(tx))
	bottom := c01.Mul(1 - tx).Add(c11.Mul(tx))
	return top.Mul(1 - ty).Add(bottom.Mul(ty))
}

func (t *Texture2D) texelAt(x, y int, smp SamplerState) mgl32.Vec4 {
	x = wrapTexel(x, t.Width, smp.AddressU)
	y = wrapTexel(y, t.Height, smp.AddressV)
	return t.Texels[y*t.Width+x]
}

func wrapTexel(i, n int, mode AddressMode) int {
	switch mode {
	case AddressMirrorRepeat:
		m := i % (2 * n)
		if m < 0 {
			m += 2 * n
		}
		if m >= n {
			m = 2*n - 1 - m
		}
		return m
	case AddressClampToEdge:
		if i < 0 {
			return 0
		}
		if i >= n {
			return n - 1
		}
		return i
	default: // AddressRepeat
		m := i % n
		if m < 0 {
			m += n
		}
		return m
	}
}
