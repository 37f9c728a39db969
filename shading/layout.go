package shading

import "github.com/cogentcore/webgpu/wgpu"

// Binding-slot contract of the object shader. These constants are the single
// source of truth for both the pipeline-setup code (gpu package) and the WGSL
// stage source; object.wgsl is checked against them in tests so the two can
// never drift apart.
const (
	// Per-frame data (projection + view), vertex stage.
	FrameGroup   uint32 = 0
	FrameBinding uint32 = 0

	// Per-object data. Tint and texture share the group because they are
	// always bound together and share the object's lifetime.
	ObjectGroup           uint32 = 1
	MaterialBinding       uint32 = 0
	DiffuseTextureBinding uint32 = 1
	// WGSL has no combined image-samplers; the sampler half of the combined
	// resource at slot 1 lands on the next slot of the same group.
	DiffuseSamplerBinding uint32 = 2

	// WebGPU has no push constants. The per-draw model matrix gets its own
	// group backed by a dynamic-offset uniform ring the backend advances once
	// per draw. Callers never see the buffer.
	DrawGroup   uint32 = 2
	DrawBinding uint32 = 0
)

// Vertex attribute locations.
const (
	PositionLocation uint32 = 0
	TexCoordLocation uint32 = 1
)

// DrawBlockSize is the size of the per-draw inline block: one 4x4 float
// matrix.
const DrawBlockSize uint64 = 64

// GroupLayout pairs a bind group index with its layout entries.
type GroupLayout struct {
	Group   uint32
	Entries []wgpu.BindGroupLayoutEntry
}

// Layout is the full resource-binding contract of the object shader,
// consumable by wgpu pipeline setup.
type Layout struct {
	Groups []GroupLayout

	// VertexAttributes describes the two vertex inputs; ArrayStride is the
	// tightly packed vec3 + vec2.
	VertexAttributes []wgpu.VertexAttribute
	VertexStride     uint64
}

// ObjectLayout returns the binding layout of the object shader. The returned
// value is freshly built on every call; callers may mutate their copy.
func ObjectLayout() Layout {
	return Layout{
		Groups: []GroupLayout{
			{
				Group: FrameGroup,
				Entries: []wgpu.BindGroupLayoutEntry{
					{
						Binding:    FrameBinding,
						Visibility: wgpu.ShaderStageVertex,
						Buffer: wgpu.BufferBindingLayout{
							Type:             wgpu.BufferBindingTypeUniform,
							MinBindingSize:   128, // two mat4x4<f32>
							HasDynamicOffset: false,
						},
					},
				},
			},
			{
				Group: ObjectGroup,
				Entries: []wgpu.BindGroupLayoutEntry{
					{
						Binding:    MaterialBinding,
						Visibility: wgpu.ShaderStageFragment,
						Buffer: wgpu.BufferBindingLayout{
							Type:             wgpu.BufferBindingTypeUniform,
							MinBindingSize:   16, // one vec4<f32>
							HasDynamicOffset: false,
						},
					},
					{
						Binding:    DiffuseTextureBinding,
						Visibility: wgpu.ShaderStageFragment,
						Texture: wgpu.TextureBindingLayout{
							SampleType:    wgpu.TextureSampleTypeFloat,
							ViewDimension: wgpu.TextureViewDimension2D,
							Multisampled:  false,
						},
					},
					{
						Binding:    DiffuseSamplerBinding,
						Visibility: wgpu.ShaderStageFragment,
						Sampler: wgpu.SamplerBindingLayout{
							Type: wgpu.SamplerBindingTypeFiltering,
						},
					},
				},
			},
			{
				Group: DrawGroup,
				Entries: []wgpu.BindGroupLayoutEntry{
					{
						Binding:    DrawBinding,
						Visibility: wgpu.ShaderStageVertex,
						Buffer: wgpu.BufferBindingLayout{
							Type:             wgpu.BufferBindingTypeUniform,
							MinBindingSize:   DrawBlockSize,
							HasDynamicOffset: true,
						},
					},
				},
			},
		},
		VertexAttributes: []wgpu.VertexAttribute{
			{
				ShaderLocation: PositionLocation,
				Offset:         0,
				Format:         wgpu.VertexFormatFloat32x3,
			},
			{
				ShaderLocation: TexCoordLocation,
				Offset:         12,
				Format:         wgpu.VertexFormatFloat32x2,
			},
		},
		VertexStride: 20,
	}
}
