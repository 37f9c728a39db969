// Package core holds the CPU-side scene math feeding the shading pipeline:
// camera, object transform, and color.
package core

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/ember3d/ember/shading"
)

type ProjectionType int

const (
	Perspective ProjectionType = iota
	Orthographic
)

// Camera produces the per-frame view and projection matrices. It is owned by
// the frame loop; the pipeline only ever sees the immutable FrameData
// snapshot taken once per frame.
type Camera struct {
	Eye    mgl32.Vec3
	Center mgl32.Vec3
	Up     mgl32.Vec3

	Projection  ProjectionType
	Fov         float32 // radians, perspective only
	NearClip    float32
	FarClip     float32
	AspectRatio float32
}

// NewCamera returns a camera with the engine defaults, looking at the origin
// from just in front of it.
func NewCamera(aspectRatio float32) *Camera {
	return &Camera{
		Eye:         mgl32.Vec3{0, 0, -1},
		Center:      mgl32.Vec3{0, 0, 0},
		Up:          mgl32.Vec3{0, 1, 0},
		Projection:  Perspective,
		Fov:         mgl32.DegToRad(45),
		NearClip:    0.1,
		FarClip:     1000,
		AspectRatio: aspectRatio,
	}
}

func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye, c.Center, c.Up)
}

func (c *Camera) ProjectionMatrix() mgl32.Mat4 {
	if c.Projection == Orthographic {
		halfH := float32(1)
		halfW := halfH * c.AspectRatio
		return mgl32.Ortho(-halfW, halfW, -halfH, halfH, c.NearClip, c.FarClip)
	}
	return mgl32.Perspective(c.Fov, c.AspectRatio, c.NearClip, c.FarClip)
}

// FrameData snapshots the camera into the per-frame uniform block. The
// snapshot is a value copy; mutating the camera afterwards does not affect
// draws already recorded against it.
func (c *Camera) FrameData() shading.FrameData {
	return shading.FrameData{
		Projection: c.ProjectionMatrix(),
		View:       c.ViewMatrix(),
	}
}

func (c *Camera) UpdateAspectRatio(aspectRatio float32) {
	c.AspectRatio = aspectRatio
}
