package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/ember3d/ember/renderer"
	"github.com/ember3d/ember/shading"
)

// CreateTexture uploads an RGBA8 texture asset and returns its view.
func CreateTexture(ctx *Context, asset *renderer.TextureAsset) (*wgpu.TextureView, error) {
	extent := wgpu.Extent3D{
		Width:              asset.Width,
		Height:             asset.Height,
		DepthOrArrayLayers: 1,
	}
	texture, err := ctx.Device.CreateTexture(&wgpu.TextureDescriptor{
		Size:          extent,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatRGBA8Unorm,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create texture: %w", err)
	}
	defer texture.Release()

	view, err := texture.CreateView(nil)
	if err != nil {
		return nil, fmt.Errorf("create texture view: %w", err)
	}

	err = ctx.Queue.WriteTexture(
		texture.AsImageCopy(),
		asset.Pixels,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  asset.Width * 4, // RGBA8
			RowsPerImage: asset.Height,
		},
		&extent,
	)
	if err != nil {
		return nil, fmt.Errorf("write texture: %w", err)
	}
	return view, nil
}

// CreateSampler builds a wgpu sampler from the shading-level sampler state.
func CreateSampler(ctx *Context, smp shading.SamplerState) (*wgpu.Sampler, error) {
	filter := filterMode(smp.Filter)
	sampler, err := ctx.Device.CreateSampler(&wgpu.SamplerDescriptor{
		AddressModeU:  addressMode(smp.AddressU),
		AddressModeV:  addressMode(smp.AddressV),
		AddressModeW:  wgpu.AddressModeRepeat,
		MagFilter:     filter,
		MinFilter:     filter,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMinClamp:   0,
		LodMaxClamp:   32,
		Compare:       wgpu.CompareFunctionUndefined,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("create sampler: %w", err)
	}
	return sampler, nil
}

func filterMode(mode shading.FilterMode) wgpu.FilterMode {
	if mode == shading.FilterLinear {
		return wgpu.FilterModeLinear
	}
	return wgpu.FilterModeNearest
}

func addressMode(mode shading.AddressMode) wgpu.AddressMode {
	switch mode {
	case shading.AddressMirrorRepeat:
		return wgpu.AddressModeMirrorRepeat
	case shading.AddressClampToEdge:
		return wgpu.AddressModeClampToEdge
	default:
		return wgpu.AddressModeRepeat
	}
}

// ParseFilterMode maps a configuration string onto a filter mode.
func ParseFilterMode(name string) (shading.FilterMode, error) {
	switch name {
	case "nearest":
		return shading.FilterNearest, nil
	case "linear":
		return shading.FilterLinear, nil
	default:
		return 0, fmt.Errorf("unknown filter mode: %s", name)
	}
}

// ParseAddressMode maps a configuration string onto an address mode.
func ParseAddressMode(name string) (shading.AddressMode, error) {
	switch name {
	case "wrap":
		return shading.AddressRepeat, nil
	case "mirror":
		return shading.AddressMirrorRepeat, nil
	case "clamp":
		return shading.AddressClampToEdge, nil
	default:
		return 0, fmt.Errorf("unknown wrap mode: %s", name)
	}
}
