package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/ember3d/ember/shading"
)

// ObjectPipeline is the render pipeline for the object shader, plus the bind
// group layouts the backend needs to create bind groups against it. Group
// layouts are indexed by bind group number.
type ObjectPipeline struct {
	Pipeline     *wgpu.RenderPipeline
	GroupLayouts []*wgpu.BindGroupLayout
}

// NewObjectPipeline compiles the object WGSL and builds the pipeline with the
// explicit bind group layouts from shading.ObjectLayout.
func NewObjectPipeline(ctx *Context) (*ObjectPipeline, error) {
	shader, err := ctx.Device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "Object Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shading.ObjectWGSL},
	})
	if err != nil {
		return nil, fmt.Errorf("create shader module: %w", err)
	}
	defer shader.Release()

	layout := shading.ObjectLayout()

	groupLayouts := make([]*wgpu.BindGroupLayout, len(layout.Groups))
	for _, group := range layout.Groups {
		bgl, err := ctx.Device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
			Label:   fmt.Sprintf("Object Group %d", group.Group),
			Entries: group.Entries,
		})
		if err != nil {
			releaseGroupLayouts(groupLayouts)
			return nil, fmt.Errorf("create bind group layout %d: %w", group.Group, err)
		}
		groupLayouts[group.Group] = bgl
	}

	pipelineLayout, err := ctx.Device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Object Pipeline Layout",
		BindGroupLayouts: groupLayouts,
	})
	if err != nil {
		releaseGroupLayouts(groupLayouts)
		return nil, fmt.Errorf("create pipeline layout: %w", err)
	}
	defer pipelineLayout.Release()

	pipeline, err := ctx.Device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "Object Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: layout.VertexStride,
					StepMode:    wgpu.VertexStepModeVertex,
					Attributes:  layout.VertexAttributes,
				},
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    ctx.SurfaceConfig.Format,
					Blend:     nil,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeBack,
		},
		Multisample: wgpu.MultisampleState{
			Count:                  1,
			Mask:                   0xFFFFFFFF,
			AlphaToCoverageEnabled: false,
		},
	})
	if err != nil {
		releaseGroupLayouts(groupLayouts)
		return nil, fmt.Errorf("create render pipeline: %w", err)
	}

	return &ObjectPipeline{
		Pipeline:     pipeline,
		GroupLayouts: groupLayouts,
	}, nil
}

func (p *ObjectPipeline) Release() {
	if p.Pipeline != nil {
		p.Pipeline.Release()
	}
	releaseGroupLayouts(p.GroupLayouts)
}

func releaseGroupLayouts(layouts []*wgpu.BindGroupLayout) {
	for _, l := range layouts {
		if l != nil {
			l.Release()
		}
	}
}
