// Copyright 2026 The Updraft Authors. All rights reserved.

package wsi

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/go-gl/glfw/v3.3/glfw"
	vk "github.com/goki/vulkan"

	"updraft/internal/diag"
)

// GLFW is the windowed Platform implementation.
// GLFW selects the native window system at runtime
// (Wayland or X11 on Linux), so a single backend covers
// both. All methods except Closed must run on the thread
// that called Connect, which must be the main thread.
type GLFW struct {
	log *diag.Logger

	win       *glfw.Window
	geometry  Geometry
	connected bool

	configured atomic.Bool
	closed     atomic.Bool

	onResize func(Geometry)
	onClose  func()
	onFrame  func()
}

// NewGLFW returns an unconnected GLFW platform.
func NewGLFW(log *diag.Logger) *GLFW {
	if log == nil {
		log = diag.Nop()
	}
	return &GLFW{log: log}
}

// Connect initializes GLFW and the Vulkan loader.
func (p *GLFW) Connect() error {
	if p.connected {
		p.log.Infof("wsi: already connected, skipping")
		return nil
	}
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("wsi: connect: %w", err)
	}
	if !glfw.VulkanSupported() {
		glfw.Terminate()
		return errors.New("wsi: no Vulkan loader available")
	}
	vk.SetGetInstanceProcAddr(glfw.GetVulkanGetInstanceProcAddress())
	if err := vk.Init(); err != nil {
		glfw.Terminate()
		return fmt.Errorf("wsi: vulkan init: %w", err)
	}
	p.connected = true
	p.log.Infof("wsi: connected to window system")
	return nil
}

// CreateWindow creates the window and blocks dispatching
// events until it has a usable framebuffer geometry.
func (p *GLFW) CreateWindow(cfg Config) error {
	if !p.connected {
		return ErrDisconnected
	}
	if p.win != nil {
		p.log.Infof("wsi: window exists, skipping")
		return nil
	}
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	var monitor *glfw.Monitor
	if cfg.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
	}
	width := int(cfg.Geometry.Width)
	height := int(cfg.Geometry.Height)
	win, err := glfw.CreateWindow(width, height, cfg.Title, monitor, nil)
	if err != nil {
		return fmt.Errorf("wsi: create window: %w", err)
	}
	p.win = win
	win.SetFramebufferSizeCallback(p.framebufferSize)
	win.SetCloseCallback(p.closeRequested)

	// Rendezvous with the window system: a zero-sized
	// framebuffer cannot back a swapchain yet.
	w, h := win.GetFramebufferSize()
	for w == 0 || h == 0 {
		glfw.WaitEvents()
		if p.Closed() {
			return ErrNoWindow
		}
		w, h = win.GetFramebufferSize()
	}
	p.geometry = Geometry{Width: uint32(w), Height: uint32(h)}
	p.configured.Store(true)
	p.log.Infof("wsi: window configured at %dx%d", w, h)
	return nil
}

func (p *GLFW) framebufferSize(_ *glfw.Window, width, height int) {
	if width == 0 || height == 0 {
		// Minimized. Keep the last usable geometry.
		return
	}
	geo := Geometry{Width: uint32(width), Height: uint32(height)}
	p.geometry = geo
	if p.configured.Load() && p.onResize != nil {
		p.onResize(geo)
	}
}

func (p *GLFW) closeRequested(_ *glfw.Window) {
	p.closed.Store(true)
	if p.onClose != nil {
		p.onClose()
	}
}

// CreateSurface creates a surface for the window on the
// given instance.
func (p *GLFW) CreateSurface(instance vk.Instance) (vk.Surface, error) {
	if p.win == nil {
		return vk.NullSurface, ErrNoWindow
	}
	ptr, err := p.win.CreateWindowSurface(instance, nil)
	if err != nil {
		return vk.NullSurface, fmt.Errorf("wsi: create surface: %w", err)
	}
	return vk.SurfaceFromPointer(ptr), nil
}

// InstanceExtensions returns the instance extensions the
// window system requires for surface creation.
func (p *GLFW) InstanceExtensions() []string {
	if p.win == nil {
		return nil
	}
	return p.win.GetRequiredInstanceExtensions()
}

// Geometry returns the last configured window geometry.
func (p *GLFW) Geometry() Geometry { return p.geometry }

// Dispatch blocks until at least one event has been
// processed.
func (p *GLFW) Dispatch() error {
	if !p.connected {
		return ErrDisconnected
	}
	glfw.WaitEvents()
	return nil
}

// SetResizeHandler registers the resize callback.
func (p *GLFW) SetResizeHandler(fn func(Geometry)) { p.onResize = fn }

// SetCloseHandler registers the close callback.
func (p *GLFW) SetCloseHandler(fn func()) { p.onClose = fn }

// SetFrameHandler registers the per-frame callback.
func (p *GLFW) SetFrameHandler(fn func()) { p.onFrame = fn }

// Closed reports whether a window close was requested.
func (p *GLFW) Closed() bool { return p.closed.Load() }

// RequestClose marks the window closed and wakes the
// event loop if it is blocked on dispatch.
func (p *GLFW) RequestClose() {
	p.closed.Store(true)
	if p.connected {
		glfw.PostEmptyEvent()
	}
}

// EventLoop runs the dispatch/redraw loop.
// While frames are scheduled it polls so that redraw
// pacing is left to presentation; once onTick stops the
// redraws it blocks on dispatch instead.
func (p *GLFW) EventLoop(onTick func() bool) error {
	if p.win == nil {
		return ErrNoWindow
	}
	scheduled := true
	for !p.Closed() {
		if scheduled {
			glfw.PollEvents()
		} else {
			glfw.WaitEvents()
		}
		if p.win.ShouldClose() {
			p.closed.Store(true)
		}
		if p.Closed() {
			break
		}
		if !scheduled {
			continue
		}
		if onTick != nil && !onTick() {
			scheduled = false
			p.log.Infof("wsi: frame scheduling stopped")
			continue
		}
		if p.onFrame != nil {
			p.onFrame()
		}
	}
	p.log.Infof("wsi: event loop finished")
	return nil
}

// Disconnect destroys the window and terminates GLFW.
func (p *GLFW) Disconnect() {
	if !p.connected {
		return
	}
	if p.win != nil {
		p.win.Destroy()
		p.win = nil
	}
	glfw.Terminate()
	p.connected = false
	p.configured.Store(false)
	p.log.Infof("wsi: disconnected")
}
