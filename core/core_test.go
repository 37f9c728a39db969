package core

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

const eps = 1e-5

func TestNewCameraDefaults(t *testing.T) {
	cam := NewCamera(16.0 / 9.0)

	assert.Equal(t, mgl32.Vec3{0, 0, -1}, cam.Eye)
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, cam.Center)
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, cam.Up)
	assert.Equal(t, Perspective, cam.Projection)
	assert.InDelta(t, mgl32.DegToRad(45), cam.Fov, eps)
	assert.InDelta(t, 0.1, cam.NearClip, eps)
	assert.InDelta(t, 1000.0, cam.FarClip, eps)
}

func TestCameraMatrices(t *testing.T) {
	cam := NewCamera(1.5)

	wantView := mgl32.LookAtV(cam.Eye, cam.Center, cam.Up)
	wantProj := mgl32.Perspective(cam.Fov, 1.5, cam.NearClip, cam.FarClip)

	assert.True(t, cam.ViewMatrix().ApproxEqualThreshold(wantView, eps))
	assert.True(t, cam.ProjectionMatrix().ApproxEqualThreshold(wantProj, eps))
}

// FrameData is a value snapshot: camera changes after the snapshot must not
// leak into it.
func TestCameraFrameDataSnapshot(t *testing.T) {
	cam := NewCamera(1.0)
	frame := cam.FrameData()

	cam.Eye = mgl32.Vec3{100, 100, 100}
	cam.Fov = mgl32.DegToRad(90)

	stale := cam.FrameData()
	assert.False(t, frame.View.ApproxEqualThreshold(stale.View, eps),
		"moving the camera should produce a different view matrix")
	assert.True(t, frame.View.ApproxEqualThreshold(
		mgl32.LookAtV(mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0}), eps),
		"the old snapshot must keep the old view matrix")
}

func TestCameraUpdateAspectRatio(t *testing.T) {
	cam := NewCamera(1.0)
	cam.UpdateAspectRatio(2.0)

	want := mgl32.Perspective(cam.Fov, 2.0, cam.NearClip, cam.FarClip)
	assert.True(t, cam.ProjectionMatrix().ApproxEqualThreshold(want, eps))
}

func TestTransformModelMatrix(t *testing.T) {
	tr := NewTransform()
	tr.Position = mgl32.Vec3{10, 0, 0}

	p := tr.ModelMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.True(t, p.ApproxEqualThreshold(mgl32.Vec4{10, 0, 0, 1}, eps))
}

func TestTransformComposesTRS(t *testing.T) {
	tr := Transform{
		Position: mgl32.Vec3{1, 2, 3},
		Rotation: mgl32.QuatRotate(0.5, mgl32.Vec3{0, 0, 1}),
		Scale:    mgl32.Vec3{2, 2, 2},
	}

	want := mgl32.Translate3D(1, 2, 3).
		Mul4(mgl32.QuatRotate(0.5, mgl32.Vec3{0, 0, 1}).Mat4()).
		Mul4(mgl32.Scale3D(2, 2, 2))
	assert.True(t, tr.ModelMatrix().ApproxEqualThreshold(want, eps))
}

func TestColorModulate(t *testing.T) {
	c := Color{R: 0.2, G: 0.4, B: 0.6, A: 1.0}.Modulate(Color{R: 1, G: 1, B: 1, A: 0.5})

	assert.InDelta(t, 0.2, c.R, eps)
	assert.InDelta(t, 0.4, c.G, eps)
	assert.InDelta(t, 0.6, c.B, eps)
	assert.InDelta(t, 0.5, c.A, eps)

	assert.Equal(t, Color{R: 1, G: 1, B: 1, A: 1}, White())
}
