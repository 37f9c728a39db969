package renderer

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/google/uuid"
	xdraw "golang.org/x/image/draw"
)

type AssetId string

// TextureAsset is a CPU-side RGBA8 texture. Generation starts at 1 and is
// bumped on every pixel update, so descriptor bookkeeping can tell whether a
// bound texture is stale. Generation 0 never occurs on a live asset.
type TextureAsset struct {
	Generation uint32
	Pixels     []uint8
	Width      uint32
	Height     uint32
}

// AssetServer owns the CPU copies of mesh and texture assets. The default
// texture is created eagerly so a missing texture can always fall back to it.
type AssetServer struct {
	textures  map[AssetId]*TextureAsset
	meshes    map[AssetId]*MeshAsset
	defaultId AssetId
}

func NewAssetServer() *AssetServer {
	s := &AssetServer{
		textures: make(map[AssetId]*TextureAsset),
		meshes:   make(map[AssetId]*MeshAsset),
	}
	s.defaultId = s.CreateTexture(defaultTexturePixels(defaultTextureSize), defaultTextureSize, defaultTextureSize)
	return s
}

// CreateTexture registers tightly packed RGBA8 pixels as a new asset.
func (s *AssetServer) CreateTexture(pixels []uint8, width, height uint32) AssetId {
	id := makeAssetId()
	s.textures[id] = &TextureAsset{
		Generation: 1,
		Pixels:     pixels,
		Width:      width,
		Height:     height,
	}
	return id
}

// LoadTexture decodes a PNG file into an RGBA8 asset.
func (s *AssetServer) LoadTexture(filename string) (AssetId, error) {
	file, err := os.Open(filename)
	if err != nil {
		return "", fmt.Errorf("open texture %q: %w", filename, err)
	}
	defer file.Close()

	img, err := png.Decode(file)
	if err != nil {
		return "", fmt.Errorf("decode texture %q: %w", filename, err)
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	xdraw.Copy(rgba, image.Point{}, img, bounds, xdraw.Src, nil)

	return s.CreateTexture(rgba.Pix, uint32(bounds.Dx()), uint32(bounds.Dy())), nil
}

// UpdateTexture replaces an asset's pixels and bumps its generation.
func (s *AssetServer) UpdateTexture(id AssetId, pixels []uint8, width, height uint32) error {
	tx, ok := s.textures[id]
	if !ok {
		return fmt.Errorf("unknown texture asset %q", id)
	}
	tx.Pixels = pixels
	tx.Width = width
	tx.Height = height
	tx.Generation++
	return nil
}

// Texture resolves an asset id, falling back to the default texture for the
// empty id or an unknown id. The second result reports whether the fallback
// was used.
func (s *AssetServer) Texture(id AssetId) (*TextureAsset, bool) {
	if tx, ok := s.textures[id]; ok && id != s.defaultId {
		return tx, false
	}
	return s.textures[s.defaultId], true
}

func (s *AssetServer) DefaultTexture() AssetId {
	return s.defaultId
}

func makeAssetId() AssetId {
	return AssetId(uuid.NewString())
}

const defaultTextureSize = 256

// defaultTexturePixels builds the magenta/white checkerboard shown whenever
// an object has no usable texture, loud enough to spot in a scene.
func defaultTexturePixels(size uint32) []uint8 {
	const cell = 16
	pixels := make([]uint8, size*size*4)
	for y := uint32(0); y < size; y++ {
		for x := uint32(0); x < size; x++ {
			i := (y*size + x) * 4
			if (x/cell+y/cell)%2 == 0 {
				pixels[i+0] = 255
				pixels[i+1] = 0
				pixels[i+2] = 255
			} else {
				pixels[i+0] = 255
				pixels[i+1] = 255
				pixels[i+2] = 255
			}
			pixels[i+3] = 255
		}
	}
	return pixels
}
