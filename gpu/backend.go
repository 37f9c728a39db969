package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/ember3d/ember/renderer"
	"github.com/ember3d/ember/shading"
)

const (
	// drawSlotStride is the spacing between per-draw model matrices in the
	// draw ring. 256 is the minimum dynamic-offset alignment wgpu guarantees.
	drawSlotStride uint64 = 256
	drawRingSlots  uint64 = 1024
)

type meshBuffers struct {
	vertex     *wgpu.Buffer
	index      *wgpu.Buffer
	indexCount uint32
}

type textureEntry struct {
	view       *wgpu.TextureView
	generation uint32
}

type objectResources struct {
	materialBuffer *wgpu.Buffer
	bindGroup      *wgpu.BindGroup

	boundView       *wgpu.TextureView
	lastColor       mgl32.Vec4
	colorGeneration uint32
}

// Backend renders object geometry through wgpu. It owns the pipeline, the
// per-frame and per-draw uniform buffers, and caches of GPU-side meshes,
// textures and per-object bind groups.
type Backend struct {
	ctx      *Context
	pipeline *ObjectPipeline
	assets   *renderer.AssetServer
	objects  *renderer.ObjectStates
	sampler  *wgpu.Sampler
	log      renderer.Logger

	frameBuffer *wgpu.Buffer
	frameGroup  *wgpu.BindGroup

	drawBuffer *wgpu.Buffer
	drawGroup  *wgpu.BindGroup
	drawIndex  uint64

	meshes      map[renderer.AssetId]*meshBuffers
	textures    map[renderer.AssetId]*textureEntry
	objectsByID map[uint32]*objectResources
	clearColor  wgpu.Color
	minimized   bool
	frameNumber uint64
	frameIndex  int

	// live only between BeginFrame and EndFrame
	surfaceView *wgpu.TextureView
	encoder     *wgpu.CommandEncoder
	pass        *wgpu.RenderPassEncoder
}

// NewBackend builds the pipeline and the frame-level GPU resources. The
// sampler state applies to every diffuse texture; per-object samplers are not
// supported.
func NewBackend(ctx *Context, assets *renderer.AssetServer, smp shading.SamplerState, log renderer.Logger) (*Backend, error) {
	if log == nil {
		log = renderer.NewNopLogger()
	}

	pipeline, err := NewObjectPipeline(ctx)
	if err != nil {
		return nil, err
	}

	sampler, err := CreateSampler(ctx, smp)
	if err != nil {
		pipeline.Release()
		return nil, err
	}

	b := &Backend{
		ctx:         ctx,
		pipeline:    pipeline,
		assets:      assets,
		objects:     renderer.NewObjectStates(),
		sampler:     sampler,
		log:         log,
		meshes:      map[renderer.AssetId]*meshBuffers{},
		textures:    map[renderer.AssetId]*textureEntry{},
		objectsByID: map[uint32]*objectResources{},
		clearColor:  wgpu.Color{R: 0.1, G: 0.2, B: 0.3, A: 1.0},
	}

	if err := b.createFrameResources(); err != nil {
		b.Shutdown()
		return nil, err
	}
	return b, nil
}

func (b *Backend) createFrameResources() error {
	frameBuffer, err := CreateUniformBuffer(b.ctx.Device, "Frame Uniforms",
		shading.FrameData{Projection: mgl32.Ident4(), View: mgl32.Ident4()},
		wgpu.BufferUsageUniform|wgpu.BufferUsageCopyDst)
	if err != nil {
		return err
	}
	b.frameBuffer = frameBuffer

	b.frameGroup, err = b.ctx.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Frame Bind Group",
		Layout: b.pipeline.GroupLayouts[shading.FrameGroup],
		Entries: []wgpu.BindGroupEntry{
			{Binding: shading.FrameBinding, Buffer: frameBuffer, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		return fmt.Errorf("create frame bind group: %w", err)
	}

	b.drawBuffer, err = b.ctx.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Draw Ring",
		Size:  drawRingSlots * drawSlotStride,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create draw ring: %w", err)
	}

	b.drawGroup, err = b.ctx.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Draw Bind Group",
		Layout: b.pipeline.GroupLayouts[shading.DrawGroup],
		Entries: []wgpu.BindGroupEntry{
			{Binding: shading.DrawBinding, Buffer: b.drawBuffer, Size: shading.DrawBlockSize},
		},
	})
	if err != nil {
		return fmt.Errorf("create draw bind group: %w", err)
	}
	return nil
}

// AcquireObject reserves a per-object shader-state slot. The returned id goes
// into GeometryRenderData.ObjectID.
func (b *Backend) AcquireObject() (uint32, error) {
	return b.objects.Acquire()
}

// ReleaseObject frees the slot and its GPU resources.
func (b *Backend) ReleaseObject(id uint32) error {
	if res, ok := b.objectsByID[id]; ok {
		releaseObjectResources(res)
		delete(b.objectsByID, id)
	}
	return b.objects.Release(id)
}

func (b *Backend) Resize(width, height uint32) error {
	if width == 0 || height == 0 {
		b.minimized = true
		return nil
	}
	b.minimized = false
	b.ctx.Reconfigure(width, height)
	return nil
}

func (b *Backend) BeginFrame(deltaTime float64) (bool, error) {
	if b.minimized {
		return false, nil
	}

	next, err := b.ctx.Surface.GetCurrentTexture()
	if err != nil {
		// Happens transiently around resizes; skip the frame and let the
		// surface recover on the next Reconfigure.
		b.log.Warnf("skipping frame, surface texture unavailable: %v", err)
		b.ctx.Reconfigure(b.ctx.SurfaceConfig.Width, b.ctx.SurfaceConfig.Height)
		return false, nil
	}

	view, err := next.CreateView(nil)
	if err != nil {
		return false, fmt.Errorf("create surface view: %w", err)
	}

	encoder, err := b.ctx.Device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		return false, fmt.Errorf("create command encoder: %w", err)
	}

	b.surfaceView = view
	b.encoder = encoder
	b.drawIndex = 0
	return true, nil
}

func (b *Backend) UpdateGlobalState(projection, view mgl32.Mat4) error {
	if b.encoder == nil {
		return fmt.Errorf("UpdateGlobalState called outside a frame")
	}

	frame := shading.FrameData{Projection: projection, View: view}
	if err := b.ctx.Queue.WriteBuffer(b.frameBuffer, 0, ToUniformBytes(frame)); err != nil {
		return fmt.Errorf("write frame uniforms: %w", err)
	}

	b.pass = b.encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       b.surfaceView,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: b.clearColor,
			},
		},
	})
	b.pass.SetPipeline(b.pipeline.Pipeline)
	b.pass.SetBindGroup(shading.FrameGroup, b.frameGroup, nil)
	return nil
}

func (b *Backend) DrawGeometry(data renderer.GeometryRenderData) error {
	if b.pass == nil {
		return fmt.Errorf("DrawGeometry called before UpdateGlobalState")
	}
	if b.drawIndex >= drawRingSlots {
		return fmt.Errorf("draw ring exhausted: %d draws per frame max", drawRingSlots)
	}

	mesh, err := b.meshFor(data.Mesh)
	if err != nil {
		return err
	}
	res, err := b.objectFor(data)
	if err != nil {
		return err
	}

	offset := b.drawIndex * drawSlotStride
	b.drawIndex++
	if err := b.ctx.Queue.WriteBuffer(b.drawBuffer, offset, ToUniformBytes(shading.DrawTransform{Model: data.Model})); err != nil {
		return fmt.Errorf("write draw transform: %w", err)
	}

	b.pass.SetBindGroup(shading.ObjectGroup, res.bindGroup, nil)
	b.pass.SetBindGroup(shading.DrawGroup, b.drawGroup, []uint32{uint32(offset)})
	b.pass.SetVertexBuffer(0, mesh.vertex, 0, wgpu.WholeSize)
	b.pass.SetIndexBuffer(mesh.index, wgpu.IndexFormatUint16, 0, wgpu.WholeSize)
	b.pass.DrawIndexed(mesh.indexCount, 1, 0, 0, 0)
	return nil
}

func (b *Backend) EndFrame(deltaTime float64) error {
	if b.encoder == nil {
		return fmt.Errorf("EndFrame called outside a frame")
	}

	var err error
	if b.pass != nil {
		err = b.pass.End()
		b.pass.Release()
		b.pass = nil
	}
	if err != nil {
		return fmt.Errorf("end render pass: %w", err)
	}

	cmd, err := b.encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("finish encoder: %w", err)
	}
	b.ctx.Queue.Submit(cmd)
	cmd.Release()
	b.ctx.Surface.Present()

	b.encoder.Release()
	b.encoder = nil
	b.surfaceView.Release()
	b.surfaceView = nil

	b.frameNumber++
	b.frameIndex = int(b.frameNumber % renderer.MaxInFlightFrames)
	return nil
}

func (b *Backend) Shutdown() error {
	for _, mesh := range b.meshes {
		mesh.vertex.Release()
		mesh.index.Release()
	}
	b.meshes = map[renderer.AssetId]*meshBuffers{}
	for _, tex := range b.textures {
		tex.view.Release()
	}
	b.textures = map[renderer.AssetId]*textureEntry{}
	for _, res := range b.objectsByID {
		releaseObjectResources(res)
	}
	b.objectsByID = map[uint32]*objectResources{}

	if b.drawGroup != nil {
		b.drawGroup.Release()
	}
	if b.drawBuffer != nil {
		b.drawBuffer.Release()
	}
	if b.frameGroup != nil {
		b.frameGroup.Release()
	}
	if b.frameBuffer != nil {
		b.frameBuffer.Release()
	}
	if b.sampler != nil {
		b.sampler.Release()
	}
	if b.pipeline != nil {
		b.pipeline.Release()
	}
	return nil
}

func (b *Backend) meshFor(id renderer.AssetId) (*meshBuffers, error) {
	if mesh, ok := b.meshes[id]; ok {
		return mesh, nil
	}

	asset, ok := b.assets.Mesh(id)
	if !ok {
		return nil, fmt.Errorf("unknown mesh asset %q", id)
	}

	vertex, err := b.ctx.Device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "Mesh Vertices",
		Contents: ToUniformBytes(asset.Vertices),
		Usage:    wgpu.BufferUsageVertex,
	})
	if err != nil {
		return nil, fmt.Errorf("create vertex buffer: %w", err)
	}
	index, err := b.ctx.Device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "Mesh Indices",
		Contents: ToUniformBytes(asset.Indices),
		Usage:    wgpu.BufferUsageIndex,
	})
	if err != nil {
		vertex.Release()
		return nil, fmt.Errorf("create index buffer: %w", err)
	}

	mesh := &meshBuffers{
		vertex:     vertex,
		index:      index,
		indexCount: uint32(len(asset.Indices)),
	}
	b.meshes[id] = mesh
	return mesh, nil
}

// textureFor resolves the texture asset (falling back to the default) and
// returns a GPU view in sync with the asset's generation.
func (b *Backend) textureFor(id renderer.AssetId) (renderer.AssetId, *textureEntry, error) {
	asset, fallback := b.assets.Texture(id)
	if fallback {
		id = b.assets.DefaultTexture()
	}

	entry, ok := b.textures[id]
	if ok && entry.generation == asset.Generation {
		return id, entry, nil
	}

	view, err := CreateTexture(b.ctx, asset)
	if err != nil {
		return id, nil, err
	}
	if ok {
		entry.view.Release()
		entry.view = view
		entry.generation = asset.Generation
	} else {
		entry = &textureEntry{view: view, generation: asset.Generation}
		b.textures[id] = entry
	}
	return id, entry, nil
}

func (b *Backend) objectFor(data renderer.GeometryRenderData) (*objectResources, error) {
	res, ok := b.objectsByID[data.ObjectID]
	if !ok {
		materialBuffer, err := CreateUniformBuffer(b.ctx.Device, "Material Uniforms",
			data.DiffuseColor, wgpu.BufferUsageUniform|wgpu.BufferUsageCopyDst)
		if err != nil {
			return nil, err
		}
		res = &objectResources{
			materialBuffer:  materialBuffer,
			lastColor:       data.DiffuseColor,
			colorGeneration: 1,
		}
		b.objectsByID[data.ObjectID] = res
		if err := b.objects.MarkUpdated(data.ObjectID, renderer.MaterialDescriptor, b.frameIndex, res.colorGeneration); err != nil {
			return nil, err
		}
	}

	if data.DiffuseColor != res.lastColor {
		res.lastColor = data.DiffuseColor
		res.colorGeneration++
	}
	needsColor, err := b.objects.NeedsUpdate(data.ObjectID, renderer.MaterialDescriptor, b.frameIndex, res.colorGeneration)
	if err != nil {
		return nil, err
	}
	if needsColor {
		if err := b.ctx.Queue.WriteBuffer(res.materialBuffer, 0, ToUniformBytes(data.DiffuseColor)); err != nil {
			return nil, fmt.Errorf("write material uniforms: %w", err)
		}
		if err := b.objects.MarkUpdated(data.ObjectID, renderer.MaterialDescriptor, b.frameIndex, res.colorGeneration); err != nil {
			return nil, err
		}
	}

	_, tex, err := b.textureFor(data.Texture)
	if err != nil {
		return nil, err
	}
	needsTexture, err := b.objects.NeedsUpdate(data.ObjectID, renderer.TextureDescriptor, b.frameIndex, tex.generation)
	if err != nil {
		return nil, err
	}
	if needsTexture || res.bindGroup == nil || res.boundView != tex.view {
		if res.bindGroup != nil {
			res.bindGroup.Release()
		}
		res.bindGroup, err = b.ctx.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
			Label:  "Object Bind Group",
			Layout: b.pipeline.GroupLayouts[shading.ObjectGroup],
			Entries: []wgpu.BindGroupEntry{
				{Binding: shading.MaterialBinding, Buffer: res.materialBuffer, Size: wgpu.WholeSize},
				{Binding: shading.DiffuseTextureBinding, TextureView: tex.view},
				{Binding: shading.DiffuseSamplerBinding, Sampler: b.sampler},
			},
		})
		if err != nil {
			return nil, fmt.Errorf("create object bind group: %w", err)
		}
		res.boundView = tex.view
		if err := b.objects.MarkUpdated(data.ObjectID, renderer.TextureDescriptor, b.frameIndex, tex.generation); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func releaseObjectResources(res *objectResources) {
	if res.bindGroup != nil {
		res.bindGroup.Release()
	}
	if res.materialBuffer != nil {
		res.materialBuffer.Release()
	}
}
