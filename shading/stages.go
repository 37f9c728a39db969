// Package shading is the shading contract of the opaque textured-object
// pipeline: the vertex and fragment stage transforms, their I/O types, and
// the binding-slot layout they rely on.
//
// Both stages are pure functions. They hold no state, perform no validation
// and never fail; degenerate matrices or unbound resources are caller
// contract violations that propagate silently. Invocations are independent,
// so the host may process vertices and fragments in any order, concurrently.
package shading

import "github.com/go-gl/mathgl/mgl32"

// Vertex is one mesh vertex as laid out in the vertex buffer: position at
// location 0, texture coordinates at location 1.
type Vertex struct {
	Position mgl32.Vec3
	TexCoord mgl32.Vec2
}

// FrameData is the per-frame uniform block at group 0, binding 0. It is
// written once per frame and read-only while any draw using it is in flight.
type FrameData struct {
	Projection mgl32.Mat4
	View       mgl32.Mat4
}

// DrawTransform is the per-draw inline block pushed through the
// lowest-latency channel, never a caller-visible buffer.
type DrawTransform struct {
	Model mgl32.Mat4
}

// MaterialData is the per-object uniform block at group 1, binding 0.
type MaterialData struct {
	DiffuseColor mgl32.Vec4
}

// VertexOutput is what the vertex stage hands to the rasterizer: the
// clip-space position plus the interpolated payload.
type VertexOutput struct {
	ClipPosition mgl32.Vec4
	TexCoord     mgl32.Vec2
}

// ShadeVertex transforms one vertex into clip space:
//
//	clip = projection * view * model * [position, 1]
//
// The composition order is part of the contract. Texture coordinates pass
// through untouched. No perspective divide happens here; that belongs to the
// fixed-function rasterization step.
func ShadeVertex(v Vertex, frame FrameData, draw DrawTransform) VertexOutput {
	p := mgl32.Vec4{v.Position.X(), v.Position.Y(), v.Position.Z(), 1}
	clip := frame.Projection.Mul4x1(frame.View.Mul4x1(draw.Model.Mul4x1(p)))
	return VertexOutput{
		ClipPosition: clip,
		TexCoord:     v.TexCoord,
	}
}

// ShadeFragment resolves one fragment color: the texture sampled at the
// interpolated coordinates, modulated component-wise by the material's
// diffuse color. Alpha is multiplied like any other component. Out-of-range
// coordinates resolve according to the sampler's address mode.
func ShadeFragment(texCoord mgl32.Vec2, mat MaterialData, tex *Texture2D, smp SamplerState) mgl32.Vec4 {
	sampled := tex.Sample(texCoord, smp)
	return mgl32.Vec4{
		sampled.X() * mat.DiffuseColor.X(),
		sampled.Y() * mat.DiffuseColor.Y(),
		sampled.Z() * mat.DiffuseColor.Z(),
		sampled.W() * mat.DiffuseColor.W(),
	}
}
