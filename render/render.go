// Copyright 2026 The Updraft Authors. All rights reserved.

// Package render implements the Vulkan rendering backend.
// It sequences the dependency-ordered construction of the
// backend (instance, accelerator, device and queues,
// presentable chain, command recording and frame
// synchronization state), the reverse-ordered teardown,
// and the per-frame acquire/record/submit/present cycle.
//
// Resources split into two ownership scopes: the Context
// holds everything that survives a window resize, while
// the Chain and SyncRing hold everything keyed to the
// window geometry and are destroyed and rebuilt as a unit
// by the Lifecycle whenever the geometry changes.
package render

import "errors"

// ErrNoAccelerator means that no enumerated device met
// the selection criteria, or that none were enumerated.
var ErrNoAccelerator = errors.New("render: no suitable accelerator found")

// ErrNoSurface means that an operation requiring a bound
// surface ran before one was created.
var ErrNoSurface = errors.New("render: no surface bound")

// ErrNoSurfaceFormat means that the surface does not
// offer the required format and color space pairing.
var ErrNoSurfaceFormat = errors.New("render: required surface format unavailable")

// ErrNoPresentMode means that the surface does not offer
// the required presentation mode.
var ErrNoPresentMode = errors.New("render: required present mode unavailable")

// ErrIncompleteQueues means that the accelerator lacks a
// queue family for one or more submission roles.
var ErrIncompleteQueues = errors.New("render: incomplete queue family selection")

// ErrNoImages means that the swapchain yielded an empty
// image set.
var ErrNoImages = errors.New("render: swapchain has no images")
