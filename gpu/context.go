// Package gpu is the WebGPU side of the renderer: device bring-up, buffer
// and texture plumbing, and the object pipeline built from the shading
// package's binding layout.
package gpu

import (
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Window wraps the GLFW window the surface is created against.
type Window struct {
	glfwWindow *glfw.Window
	Width      int
	Height     int
	Title      string
}

func NewWindow(width, height int, title string) (*Window, error) {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("init glfw: %w", err)
	}

	// No OpenGL context; the surface goes through wgpu.
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}

	return &Window{
		glfwWindow: win,
		Width:      width,
		Height:     height,
		Title:      title,
	}, nil
}

func (w *Window) ShouldClose() bool {
	return w.glfwWindow.ShouldClose()
}

func (w *Window) SetShouldClose(value bool) {
	w.glfwWindow.SetShouldClose(value)
}

// SetResizeCallback registers a framebuffer-size callback and keeps the
// window's own dimensions in sync.
func (w *Window) SetResizeCallback(fn func(width, height int)) {
	w.glfwWindow.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.Width = width
		w.Height = height
		fn(width, height)
	})
}

func (w *Window) SetKeyCallback(fn func(key glfw.Key, action glfw.Action)) {
	w.glfwWindow.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		fn(key, action)
	})
}

func (w *Window) PollEvents() {
	glfw.PollEvents()
}

func (w *Window) Destroy() {
	w.glfwWindow.Destroy()
	glfw.Terminate()
}

// Context is the wgpu device state shared by everything that talks to the
// GPU.
type Context struct {
	Surface       *wgpu.Surface
	Adapter       *wgpu.Adapter
	Device        *wgpu.Device
	Queue         *wgpu.Queue
	SurfaceConfig wgpu.SurfaceConfiguration
}

// NewContext brings up the instance, adapter, device and swapchain surface
// for the given window.
func NewContext(win *Window) (*Context, error) {
	instance := wgpu.CreateInstance(nil)
	defer instance.Release()

	surface := instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(win.glfwWindow))

	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return nil, fmt.Errorf("request adapter: %w", err)
	}

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
	})
	if err != nil {
		return nil, fmt.Errorf("request device: %w", err)
	}
	queue := device.GetQueue()

	caps := surface.GetCapabilities(adapter)
	surfaceConfig := wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      caps.Formats[0],
		Width:       uint32(win.Width),
		Height:      uint32(win.Height),
		PresentMode: wgpu.PresentModeFifo, // vsync
		AlphaMode:   caps.AlphaModes[0],
	}
	surface.Configure(adapter, device, &surfaceConfig)

	return &Context{
		Surface:       surface,
		Adapter:       adapter,
		Device:        device,
		Queue:         queue,
		SurfaceConfig: surfaceConfig,
	}, nil
}

// Reconfigure resizes the swapchain surface.
func (c *Context) Reconfigure(width, height uint32) {
	c.SurfaceConfig.Width = width
	c.SurfaceConfig.Height = height
	c.Surface.Configure(c.Adapter, c.Device, &c.SurfaceConfig)
}

func (c *Context) Release() {
	if c.Device != nil {
		c.Device.Release()
	}
	if c.Adapter != nil {
		c.Adapter.Release()
	}
	if c.Surface != nil {
		c.Surface.Release()
	}
}
