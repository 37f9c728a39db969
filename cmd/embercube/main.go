// Command embercube renders a spinning textured cube through the object
// shading pipeline. Without -texture it falls back to the built-in
// checkerboard.
package main

import (
	"flag"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/ember3d/ember/core"
	"github.com/ember3d/ember/gpu"
	"github.com/ember3d/ember/renderer"
	"github.com/ember3d/ember/shading"
)

func main() {
	width := flag.Int("width", 1280, "Window width")
	height := flag.Int("height", 720, "Window height")
	title := flag.String("title", "Ember Cube", "Window title")
	texturePath := flag.String("texture", "", "PNG texture for the cube (default: checkerboard)")
	filter := flag.String("filter", "linear", "Texture filter: nearest or linear")
	wrap := flag.String("wrap", "wrap", "Texture addressing: wrap, mirror or clamp")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	log := renderer.NewDefaultLogger("embercube", *debug)

	filterMode, err := gpu.ParseFilterMode(*filter)
	if err != nil {
		panic(err)
	}
	addressMode, err := gpu.ParseAddressMode(*wrap)
	if err != nil {
		panic(err)
	}

	window, err := gpu.NewWindow(*width, *height, *title)
	if err != nil {
		panic(err)
	}
	defer window.Destroy()

	ctx, err := gpu.NewContext(window)
	if err != nil {
		panic(err)
	}
	defer ctx.Release()

	assets := renderer.NewAssetServer()

	texture := assets.DefaultTexture()
	if *texturePath != "" {
		texture, err = assets.LoadTexture(*texturePath)
		if err != nil {
			panic(err)
		}
	}

	vertices, indices := cubeMesh()
	mesh := assets.CreateMesh(vertices, indices)

	backend, err := gpu.NewBackend(ctx, assets, shading.SamplerState{
		Filter:   filterMode,
		AddressU: addressMode,
		AddressV: addressMode,
	}, log)
	if err != nil {
		panic(err)
	}

	frontend := renderer.NewFrontend(backend, float32(*width)/float32(*height), log)
	defer func() {
		if err := frontend.Shutdown(); err != nil {
			log.Errorf("shutdown: %v", err)
		}
	}()

	objectID, err := backend.AcquireObject()
	if err != nil {
		panic(err)
	}

	window.SetResizeCallback(func(w, h int) {
		if err := frontend.Resize(uint32(w), uint32(h)); err != nil {
			log.Errorf("resize: %v", err)
		}
	})
	window.SetKeyCallback(func(key glfw.Key, action glfw.Action) {
		if key == glfw.KeyEscape && action == glfw.Press {
			window.SetShouldClose(true)
		}
	})

	transform := core.NewTransform()
	transform.Position = mgl32.Vec3{0, 0, 5}

	angle := float32(0)
	last := time.Now()
	for !window.ShouldClose() {
		window.PollEvents()

		now := time.Now()
		deltaTime := now.Sub(last).Seconds()
		last = now

		angle += float32(deltaTime)
		transform.Rotation = mgl32.QuatRotate(angle, mgl32.Vec3{0, 1, 0}).
			Mul(mgl32.QuatRotate(angle*0.35, mgl32.Vec3{1, 0, 0}))

		err := frontend.DrawFrame(deltaTime, []renderer.GeometryRenderData{
			{
				Model:        transform.ModelMatrix(),
				ObjectID:     objectID,
				Mesh:         mesh,
				DiffuseColor: core.White().Vec4(),
				Texture:      texture,
			},
		})
		if err != nil {
			panic(err)
		}
	}
}

// cubeMesh builds a unit cube with per-face UVs, faces wound CCW as seen
// from outside.
func cubeMesh() ([]shading.Vertex, []uint16) {
	const s = 0.5
	faces := [][4]mgl32.Vec3{
		{{-s, -s, s}, {s, -s, s}, {s, s, s}, {-s, s, s}},     // +z
		{{s, -s, -s}, {-s, -s, -s}, {-s, s, -s}, {s, s, -s}}, // -z
		{{s, -s, s}, {s, -s, -s}, {s, s, -s}, {s, s, s}},     // +x
		{{-s, -s, -s}, {-s, -s, s}, {-s, s, s}, {-s, s, -s}}, // -x
		{{-s, s, s}, {s, s, s}, {s, s, -s}, {-s, s, -s}},     // +y
		{{-s, -s, -s}, {s, -s, -s}, {s, -s, s}, {-s, -s, s}}, // -y
	}
	uvs := [4]mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

	var vertices []shading.Vertex
	var indices []uint16
	for _, face := range faces {
		base := uint16(len(vertices))
		for i, pos := range face {
			vertices = append(vertices, shading.Vertex{Position: pos, TexCoord: uvs[i]})
		}
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}
	return vertices, indices
}
