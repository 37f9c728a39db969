package shading

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

const eps = 1e-5

func identityFrame() FrameData {
	return FrameData{
		Projection: mgl32.Ident4(),
		View:       mgl32.Ident4(),
	}
}

func whiteTexel() *Texture2D {
	return NewTexture2D(1, 1, []mgl32.Vec4{{1, 1, 1, 1}})
}

func TestShadeVertex_Identity(t *testing.T) {
	out := ShadeVertex(
		Vertex{Position: mgl32.Vec3{1, 2, 3}, TexCoord: mgl32.Vec2{0.25, 0.75}},
		identityFrame(),
		DrawTransform{Model: mgl32.Ident4()},
	)

	want := mgl32.Vec4{1, 2, 3, 1}
	if !out.ClipPosition.ApproxEqualThreshold(want, eps) {
		t.Errorf("Expected clip position %v, got %v", want, out.ClipPosition)
	}
	if out.TexCoord != (mgl32.Vec2{0.25, 0.75}) {
		t.Errorf("Expected tex coords to pass through, got %v", out.TexCoord)
	}
}

func TestShadeVertex_Translation(t *testing.T) {
	out := ShadeVertex(
		Vertex{Position: mgl32.Vec3{0, 0, 0}, TexCoord: mgl32.Vec2{0.5, 0.5}},
		identityFrame(),
		DrawTransform{Model: mgl32.Translate3D(10, 0, 0)},
	)

	want := mgl32.Vec4{10, 0, 0, 1}
	if !out.ClipPosition.ApproxEqualThreshold(want, eps) {
		t.Errorf("Expected clip position %v, got %v", want, out.ClipPosition)
	}
	if out.TexCoord != (mgl32.Vec2{0.5, 0.5}) {
		t.Errorf("Expected tex coords (0.5, 0.5), got %v", out.TexCoord)
	}
}

// The stage must compose projection * view * model * [p, 1] in exactly that
// order. Compare against the composed matrix for transforms that do not
// commute.
func TestShadeVertex_CompositionOrder(t *testing.T) {
	projection := mgl32.Perspective(mgl32.DegToRad(45), 16.0/9.0, 0.1, 1000)
	view := mgl32.LookAtV(mgl32.Vec3{3, 4, 5}, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0})
	model := mgl32.Translate3D(1, -2, 3).
		Mul4(mgl32.HomogRotate3DZ(0.7)).
		Mul4(mgl32.Scale3D(2, 0.5, 1.5))

	positions := []mgl32.Vec3{
		{0, 0, 0},
		{1, 2, 3},
		{-5, 0.25, 12},
	}
	for _, p := range positions {
		out := ShadeVertex(
			Vertex{Position: p},
			FrameData{Projection: projection, View: view},
			DrawTransform{Model: model},
		)
		want := projection.Mul4(view).Mul4(model).Mul4x1(p.Vec4(1))
		if !out.ClipPosition.ApproxEqualThreshold(want, eps) {
			t.Errorf("Position %v: expected clip %v, got %v", p, want, out.ClipPosition)
		}
	}
}

func TestShadeVertex_TexCoordPassthrough(t *testing.T) {
	coords := []mgl32.Vec2{
		{0, 0},
		{1, 1},
		{0.5, 0.5},
		{-0.25, 3.5}, // out of [0,1] on purpose
		{100, -100},
	}
	frame := identityFrame()
	for _, uv := range coords {
		out := ShadeVertex(Vertex{TexCoord: uv}, frame, DrawTransform{Model: mgl32.Ident4()})
		if out.TexCoord != uv {
			t.Errorf("Expected tex coords %v to pass through unmodified, got %v", uv, out.TexCoord)
		}
	}
}

// Invocations are stateless, so processing A then B must match B then A.
func TestShadeVertex_OrderIndependence(t *testing.T) {
	frame := FrameData{
		Projection: mgl32.Perspective(mgl32.DegToRad(60), 1, 0.1, 100),
		View:       mgl32.LookAtV(mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0}),
	}
	draw := DrawTransform{Model: mgl32.Translate3D(2, 0, -3)}
	a := Vertex{Position: mgl32.Vec3{1, 0, 0}, TexCoord: mgl32.Vec2{0, 1}}
	b := Vertex{Position: mgl32.Vec3{0, 1, 0}, TexCoord: mgl32.Vec2{1, 0}}

	aFirst := ShadeVertex(a, frame, draw)
	bSecond := ShadeVertex(b, frame, draw)

	bFirst := ShadeVertex(b, frame, draw)
	aSecond := ShadeVertex(a, frame, draw)

	assert.Equal(t, aFirst, aSecond)
	assert.Equal(t, bFirst, bSecond)
}

func TestShadeFragment_ModulationWhiteSample(t *testing.T) {
	tints := []mgl32.Vec4{
		{1, 1, 1, 1},
		{0.5, 0.25, 0.75, 0.5},
		{0, 0, 0, 0},
		{0.2, 0.4, 0.6, 0.8},
	}
	tex := whiteTexel()
	for _, tint := range tints {
		got := ShadeFragment(mgl32.Vec2{0.5, 0.5}, MaterialData{DiffuseColor: tint}, tex, SamplerState{})
		if !got.ApproxEqualThreshold(tint, eps) {
			t.Errorf("White sample with tint %v: expected %v, got %v", tint, tint, got)
		}
	}
}

func TestShadeFragment_ModulationWhiteTint(t *testing.T) {
	samples := []mgl32.Vec4{
		{0.2, 0.4, 0.6, 1.0},
		{1, 0, 0, 0.5},
		{0.1, 0.1, 0.1, 0.1},
	}
	white := MaterialData{DiffuseColor: mgl32.Vec4{1, 1, 1, 1}}
	for _, s := range samples {
		tex := NewTexture2D(1, 1, []mgl32.Vec4{s})
		got := ShadeFragment(mgl32.Vec2{0, 0}, white, tex, SamplerState{})
		if !got.ApproxEqualThreshold(s, eps) {
			t.Errorf("Sample %v with white tint: expected %v, got %v", s, s, got)
		}
	}
}

// Alpha is modulated like any other channel, not treated specially.
func TestShadeFragment_AlphaModulated(t *testing.T) {
	tex := NewTexture2D(1, 1, []mgl32.Vec4{{0.2, 0.4, 0.6, 1.0}})
	mat := MaterialData{DiffuseColor: mgl32.Vec4{1, 1, 1, 0.5}}

	got := ShadeFragment(mgl32.Vec2{0.5, 0.5}, mat, tex, SamplerState{})

	want := mgl32.Vec4{0.2, 0.4, 0.6, 0.5}
	if !got.ApproxEqualThreshold(want, eps) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

// Whole pipeline scenario: identity camera, translate(10,0,0) model.
func TestPipelineScenario(t *testing.T) {
	vout := ShadeVertex(
		Vertex{Position: mgl32.Vec3{0, 0, 0}, TexCoord: mgl32.Vec2{0.5, 0.5}},
		identityFrame(),
		DrawTransform{Model: mgl32.Translate3D(10, 0, 0)},
	)
	assert.True(t, vout.ClipPosition.ApproxEqualThreshold(mgl32.Vec4{10, 0, 0, 1}, eps))
	assert.Equal(t, mgl32.Vec2{0.5, 0.5}, vout.TexCoord)

	tex := NewTexture2D(1, 1, []mgl32.Vec4{{0.2, 0.4, 0.6, 1.0}})
	fout := ShadeFragment(vout.TexCoord, MaterialData{DiffuseColor: mgl32.Vec4{1, 1, 1, 0.5}}, tex, SamplerState{})
	assert.True(t, fout.ApproxEqualThreshold(mgl32.Vec4{0.2, 0.4, 0.6, 0.5}, eps))
}

// Both stages must be referentially transparent: same inputs, same outputs,
// every time.
func TestStagesArePure(t *testing.T) {
	frame := FrameData{
		Projection: mgl32.Perspective(mgl32.DegToRad(45), 1.5, 0.1, 100),
		View:       mgl32.LookAtV(mgl32.Vec3{1, 1, 1}, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0}),
	}
	draw := DrawTransform{Model: mgl32.HomogRotate3DY(0.3)}
	v := Vertex{Position: mgl32.Vec3{0.5, -0.5, 2}, TexCoord: mgl32.Vec2{0.1, 0.9}}

	first := ShadeVertex(v, frame, draw)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ShadeVertex(v, frame, draw))
	}

	tex := NewTexture2D(1, 1, []mgl32.Vec4{{0.3, 0.6, 0.9, 1}})
	mat := MaterialData{DiffuseColor: mgl32.Vec4{0.5, 0.5, 0.5, 1}}
	firstFrag := ShadeFragment(v.TexCoord, mat, tex, SamplerState{})
	for i := 0; i < 10; i++ {
		assert.Equal(t, firstFrag, ShadeFragment(v.TexCoord, mat, tex, SamplerState{}))
	}
}
