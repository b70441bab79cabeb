// Copyright 2026 The Updraft Authors. All rights reserved.

package wsi

import (
	"sync/atomic"

	vk "github.com/goki/vulkan"

	"updraft/internal/diag"
)

// Headless is a Platform for systems without a window
// system and for tests. It mirrors the windowed protocol
// (configuration rendezvous, geometry, close flag) but
// cannot create drawable surfaces; events are injected
// with NotifyResize and NotifyClose.
type Headless struct {
	log *diag.Logger

	geometry  Geometry
	connected bool
	window    bool

	configured atomic.Bool
	closed     atomic.Bool

	onResize func(Geometry)
	onClose  func()
	onFrame  func()
}

// NewHeadless returns an unconnected headless platform.
func NewHeadless(log *diag.Logger) *Headless {
	if log == nil {
		log = diag.Nop()
	}
	return &Headless{log: log}
}

// Connect establishes the fictitious connection.
func (p *Headless) Connect() error {
	if p.connected {
		p.log.Infof("wsi: already connected, skipping")
		return nil
	}
	p.connected = true
	return nil
}

// CreateWindow records the requested geometry and marks
// the window configured immediately; there is no
// compositor to wait for.
func (p *Headless) CreateWindow(cfg Config) error {
	if !p.connected {
		return ErrDisconnected
	}
	if p.window {
		p.log.Infof("wsi: window exists, skipping")
		return nil
	}
	geo := cfg.Geometry
	if geo.Width == 0 || geo.Height == 0 {
		return ErrNoWindow
	}
	p.geometry = geo
	p.window = true
	p.configured.Store(true)
	return nil
}

// CreateSurface always fails: there is nothing to
// present into.
func (p *Headless) CreateSurface(vk.Instance) (vk.Surface, error) {
	if !p.window {
		return vk.NullSurface, ErrNoWindow
	}
	return vk.NullSurface, ErrNoSurfaceSupport
}

// InstanceExtensions returns nil; no surface extensions
// are needed.
func (p *Headless) InstanceExtensions() []string { return nil }

// Geometry returns the current window geometry.
func (p *Headless) Geometry() Geometry { return p.geometry }

// Dispatch returns immediately; events are injected
// synchronously by the Notify methods.
func (p *Headless) Dispatch() error {
	if !p.connected {
		return ErrDisconnected
	}
	return nil
}

// SetResizeHandler registers the resize callback.
func (p *Headless) SetResizeHandler(fn func(Geometry)) { p.onResize = fn }

// SetCloseHandler registers the close callback.
func (p *Headless) SetCloseHandler(fn func()) { p.onClose = fn }

// SetFrameHandler registers the per-frame callback.
func (p *Headless) SetFrameHandler(fn func()) { p.onFrame = fn }

// Closed reports whether a close was requested.
func (p *Headless) Closed() bool { return p.closed.Load() }

// RequestClose marks the window closed without invoking
// the close handler.
func (p *Headless) RequestClose() { p.closed.Store(true) }

// EventLoop invokes the frame handler until the window
// is closed or onTick stops scheduling frames. Unlike a
// windowed backend there are no further events to block
// on once redrawing stops, so the loop returns instead.
func (p *Headless) EventLoop(onTick func() bool) error {
	if !p.window {
		return ErrNoWindow
	}
	for !p.Closed() {
		if onTick != nil && !onTick() {
			return nil
		}
		if p.Closed() {
			break
		}
		if p.onFrame != nil {
			p.onFrame()
		}
	}
	return nil
}

// NotifyResize injects a geometry change, invoking the
// resize handler as a window system would.
func (p *Headless) NotifyResize(geo Geometry) {
	if !p.window || geo.Width == 0 || geo.Height == 0 {
		return
	}
	p.geometry = geo
	if p.configured.Load() && p.onResize != nil {
		p.onResize(geo)
	}
}

// NotifyClose injects a close request.
func (p *Headless) NotifyClose() {
	p.closed.Store(true)
	if p.onClose != nil {
		p.onClose()
	}
}

// Disconnect drops the fictitious connection.
func (p *Headless) Disconnect() {
	if !p.connected {
		return
	}
	p.connected = false
	p.window = false
	p.configured.Store(false)
}
