package gpu

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ember3d/ember/shading"
)

func TestParseFilterMode(t *testing.T) {
	mode, err := ParseFilterMode("nearest")
	require.NoError(t, err)
	assert.Equal(t, shading.FilterNearest, mode)

	mode, err = ParseFilterMode("linear")
	require.NoError(t, err)
	assert.Equal(t, shading.FilterLinear, mode)

	_, err = ParseFilterMode("cubic")
	assert.Error(t, err)
}

func TestParseAddressMode(t *testing.T) {
	cases := map[string]shading.AddressMode{
		"wrap":   shading.AddressRepeat,
		"mirror": shading.AddressMirrorRepeat,
		"clamp":  shading.AddressClampToEdge,
	}
	for name, want := range cases {
		mode, err := ParseAddressMode(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, mode, name)
	}

	_, err := ParseAddressMode("border")
	assert.Error(t, err)
}

func TestFilterModeMapping(t *testing.T) {
	assert.Equal(t, wgpu.FilterModeNearest, filterMode(shading.FilterNearest))
	assert.Equal(t, wgpu.FilterModeLinear, filterMode(shading.FilterLinear))
}

func TestAddressModeMapping(t *testing.T) {
	assert.Equal(t, wgpu.AddressModeRepeat, addressMode(shading.AddressRepeat))
	assert.Equal(t, wgpu.AddressModeMirrorRepeat, addressMode(shading.AddressMirrorRepeat))
	assert.Equal(t, wgpu.AddressModeClampToEdge, addressMode(shading.AddressClampToEdge))
}
