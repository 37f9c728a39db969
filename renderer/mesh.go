package renderer

import (
	"github.com/ember3d/ember/shading"
)

// MeshAsset is CPU-side geometry: the vertex layout the object pipeline
// consumes plus a 16-bit index list.
type MeshAsset struct {
	Vertices []shading.Vertex
	Indices  []uint16
}

func (s *AssetServer) CreateMesh(vertices []shading.Vertex, indices []uint16) AssetId {
	id := makeAssetId()
	s.meshes[id] = &MeshAsset{
		Vertices: vertices,
		Indices:  indices,
	}
	return id
}

func (s *AssetServer) Mesh(id AssetId) (*MeshAsset, bool) {
	m, ok := s.meshes[id]
	return m, ok
}
