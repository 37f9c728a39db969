package core

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/ember3d/ember/shading"
)

// Transform places one object in the world.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

func NewTransform() Transform {
	return Transform{
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// ModelMatrix composes translation, rotation and scale, scale applied first.
func (t Transform) ModelMatrix() mgl32.Mat4 {
	return mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z()).
		Mul4(t.Rotation.Mat4()).
		Mul4(mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z()))
}

// DrawTransform wraps the model matrix into the per-draw push block.
func (t Transform) DrawTransform() shading.DrawTransform {
	return shading.DrawTransform{Model: t.ModelMatrix()}
}
