package renderer

import (
	"fmt"

	"github.com/ember3d/ember/core"
)

// Frontend drives the per-frame render loop: snapshot the main camera,
// upload the global state once, then submit the frame's draws in order.
type Frontend struct {
	backend     Backend
	mainCamera  *core.Camera
	log         Logger
	frameNumber uint64
}

func NewFrontend(backend Backend, aspectRatio float32, log Logger) *Frontend {
	if log == nil {
		log = NewNopLogger()
	}
	return &Frontend{
		backend:    backend,
		mainCamera: core.NewCamera(aspectRatio),
		log:        log,
	}
}

func (f *Frontend) MainCamera() *core.Camera {
	return f.mainCamera
}

func (f *Frontend) SetMainCamera(camera *core.Camera) {
	f.mainCamera = camera
}

func (f *Frontend) FrameNumber() uint64 {
	return f.frameNumber
}

// DrawFrame renders one frame. The camera is snapshotted before any draw is
// recorded, so mutating it mid-frame cannot retroactively affect this
// frame's draws. A backend that cannot begin the frame makes DrawFrame skip
// it without error.
func (f *Frontend) DrawFrame(deltaTime float64, draws []GeometryRenderData) error {
	ok, err := f.backend.BeginFrame(deltaTime)
	if err != nil {
		return fmt.Errorf("begin frame: %w", err)
	}
	if !ok {
		f.log.Warnf("Could not begin the frame, skipping it")
		return nil
	}

	frame := f.mainCamera.FrameData()
	if err := f.backend.UpdateGlobalState(frame.Projection, frame.View); err != nil {
		return fmt.Errorf("update global state: %w", err)
	}

	for _, draw := range draws {
		if err := f.backend.DrawGeometry(draw); err != nil {
			return fmt.Errorf("draw object %d: %w", draw.ObjectID, err)
		}
	}

	if err := f.backend.EndFrame(deltaTime); err != nil {
		return fmt.Errorf("end frame: %w", err)
	}
	f.frameNumber++
	return nil
}

func (f *Frontend) Resize(width, height uint32) error {
	if err := f.backend.Resize(width, height); err != nil {
		return fmt.Errorf("resize backend: %w", err)
	}
	if height > 0 {
		f.mainCamera.UpdateAspectRatio(float32(width) / float32(height))
	}
	return nil
}

func (f *Frontend) Shutdown() error {
	return f.backend.Shutdown()
}
