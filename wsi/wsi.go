// Copyright 2026 The Updraft Authors. All rights reserved.

// Package wsi provides window system integration (WSI)
// for the rendering backend.
// The window system negotiates a drawable surface on the
// renderer's behalf. Because a system need not have a
// window system, support is conditional: a concrete
// Platform is chosen at construction time and a headless
// implementation stands in where no compositor exists.
package wsi

import (
	"errors"

	vk "github.com/goki/vulkan"
)

// Geometry is a window size in pixels.
type Geometry struct {
	Width  uint32
	Height uint32
}

// Config describes the window to negotiate with the
// window system.
type Config struct {
	Title      string
	Geometry   Geometry
	Fullscreen bool
}

// Platform is the interface that a windowing backend
// implements. Unless noted otherwise, methods must be
// called from the thread that called Connect.
type Platform interface {
	// Connect establishes the window system connection.
	// Calling Connect on a connected Platform has no
	// effect.
	Connect() error

	// CreateWindow negotiates a window with the window
	// system. It blocks, dispatching events, until the
	// window's first configuration is acknowledged.
	CreateWindow(cfg Config) error

	// CreateSurface creates a drawable surface bound to
	// the window.
	CreateSurface(instance vk.Instance) (vk.Surface, error)

	// InstanceExtensions returns the instance extensions
	// the backend requires for surface creation.
	InstanceExtensions() []string

	// Geometry returns the current window geometry.
	Geometry() Geometry

	// Dispatch processes pending window system events.
	// It blocks until at least one event has been
	// handled.
	Dispatch() error

	// SetResizeHandler registers fn to be called when the
	// window geometry changes. fn runs on the dispatching
	// thread.
	SetResizeHandler(fn func(Geometry))

	// SetCloseHandler registers fn to be called when the
	// window system requests that the window be closed.
	SetCloseHandler(fn func())

	// SetFrameHandler registers the redraw callback that
	// EventLoop invokes once per frame.
	SetFrameHandler(fn func())

	// Closed reports whether a close has been requested.
	// Closed may be called from any thread.
	Closed() bool

	// RequestClose asks the event loop to finish, as if
	// the window system had requested a close. The close
	// handler is not invoked. RequestClose is safe to
	// call from event handlers.
	RequestClose()

	// EventLoop dispatches events until the window is
	// closed or dispatching fails. Before each frame it
	// calls onTick; while onTick returns true the frame
	// handler runs and the next frame is scheduled. A nil
	// onTick redraws unconditionally.
	EventLoop(onTick func() bool) error

	// Disconnect tears down the window and the window
	// system connection. Disconnecting a disconnected
	// Platform has no effect.
	Disconnect()
}

// ErrDisconnected means that an operation requiring a
// window system connection was called before Connect.
var ErrDisconnected = errors.New("wsi: not connected")

// ErrNoWindow means that an operation requiring a window
// was called before CreateWindow.
var ErrNoWindow = errors.New("wsi: no window")

// ErrNoSurfaceSupport means that the Platform cannot
// create drawable surfaces.
var ErrNoSurfaceSupport = errors.New("wsi: platform cannot create surfaces")
