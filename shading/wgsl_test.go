package shading

import (
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type wgslBinding struct {
	group   uint32
	binding uint32
}

var bindingRe = regexp.MustCompile(`@group\((\d+)\)\s*@binding\((\d+)\)\s*var(?:<[^>]+>)?\s+(\w+)\s*:`)

func parseWGSLBindings(t *testing.T, src string) map[string]wgslBinding {
	t.Helper()
	out := map[string]wgslBinding{}
	for _, m := range bindingRe.FindAllStringSubmatch(src, -1) {
		group, err := strconv.Atoi(m[1])
		require.NoError(t, err)
		binding, err := strconv.Atoi(m[2])
		require.NoError(t, err)
		out[m[3]] = wgslBinding{group: uint32(group), binding: uint32(binding)}
	}
	return out
}

// The embedded WGSL and the layout constants are two renderings of the same
// contract; this keeps them from drifting apart.
func TestObjectWGSL_BindingsMatchLayoutConstants(t *testing.T) {
	bindings := parseWGSLBindings(t, ObjectWGSL)
	require.Len(t, bindings, 5)

	assert.Equal(t, wgslBinding{FrameGroup, FrameBinding}, bindings["frame"])
	assert.Equal(t, wgslBinding{ObjectGroup, MaterialBinding}, bindings["material"])
	assert.Equal(t, wgslBinding{ObjectGroup, DiffuseTextureBinding}, bindings["diffuse_texture"])
	assert.Equal(t, wgslBinding{ObjectGroup, DiffuseSamplerBinding}, bindings["diffuse_sampler"])
	assert.Equal(t, wgslBinding{DrawGroup, DrawBinding}, bindings["draw"])
}

func TestObjectWGSL_EntryPoints(t *testing.T) {
	assert.Contains(t, ObjectWGSL, "fn vs_main")
	assert.Contains(t, ObjectWGSL, "fn fs_main")
}

func TestObjectWGSL_CompositionOrder(t *testing.T) {
	// Matrix composition order is part of the contract.
	assert.Contains(t, ObjectWGSL, "frame.projection * frame.view * draw.model")
}

func TestObjectWGSL_VertexLocations(t *testing.T) {
	posDecl := "@location(" + strconv.FormatUint(uint64(PositionLocation), 10) + ") position"
	uvDecl := "@location(" + strconv.FormatUint(uint64(TexCoordLocation), 10) + ") tex_coord"
	assert.True(t, strings.Contains(ObjectWGSL, posDecl), "position must sit at location %d", PositionLocation)
	assert.True(t, strings.Contains(ObjectWGSL, uvDecl), "tex_coord must sit at location %d", TexCoordLocation)
}
