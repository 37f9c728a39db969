// Package renderer is the frame-level frontend of the rendering system. It
// owns the main camera and the per-frame draw loop, delegates GPU work to a
// Backend, and manages texture assets and per-object shader state. The
// shading contract itself lives in the shading package.
package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
)

// GeometryRenderData is everything one draw call needs: the model matrix
// (delivered to the vertex stage through the per-draw push channel), the
// object's shader-state id, and the object group resources.
type GeometryRenderData struct {
	Model    mgl32.Mat4
	ObjectID uint32

	Mesh         AssetId
	DiffuseColor mgl32.Vec4
	Texture      AssetId
}

// Backend is the GPU side of the renderer. BeginFrame returning (false, nil)
// means the frame cannot start right now (for example mid-resize) and should
// be skipped without error.
type Backend interface {
	Resize(width, height uint32) error
	BeginFrame(deltaTime float64) (bool, error)
	// UpdateGlobalState uploads the per-frame uniform block. Called exactly
	// once per frame, before any draw.
	UpdateGlobalState(projection, view mgl32.Mat4) error
	DrawGeometry(data GeometryRenderData) error
	EndFrame(deltaTime float64) error
	Shutdown() error
}
