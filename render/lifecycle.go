// Copyright 2026 The Updraft Authors. All rights reserved.

package render

import (
	"fmt"
	"math"
	"sync/atomic"

	vk "github.com/goki/vulkan"

	"updraft/internal/diag"
	"updraft/wsi"
)

// SurfaceFunc creates a drawable surface on the given
// instance. The Lifecycle invokes it at most once per
// surface lifetime; re-entry after a resize reuses the
// surface already bound.
type SurfaceFunc func(instance vk.Instance) (vk.Surface, error)

// Lifecycle sequences construction of the rendering
// backend in dependency order and drives the per-frame
// redraw. Init and Destroy pair up across resizes: each
// resize destroys and rebuilds the geometry-scoped state
// while the Context and the surface carry over.
//
// Lifecycle methods are not safe for parallel execution;
// the operational flag is the only state a concurrent
// frame callback may observe.
type Lifecycle struct {
	log      *diag.Logger
	platform wsi.Platform

	ctx   *Context
	chain *Chain
	ring  *SyncRing

	surface  vk.Surface
	geometry wsi.Geometry

	pipelineLayout vk.PipelineLayout
	pipeline       vk.Pipeline

	clearColor [4]float32

	operational atomic.Bool
}

// New returns a Lifecycle bound to the given platform.
func New(platform wsi.Platform, log *diag.Logger) *Lifecycle {
	if log == nil {
		log = diag.Nop()
	}
	return &Lifecycle{
		log:        log,
		platform:   platform,
		ctx:        newContext(log),
		chain:      newChain(log),
		ring:       newSyncRing(log),
		clearColor: [4]float32{1, 0.3, 0, 1},
	}
}

// Instance returns the instance handle, for surface
// creation callbacks.
func (l *Lifecycle) Instance() vk.Instance { return l.ctx.instance }

// Operational reports whether the backend is ready to
// redraw. It is cleared before teardown begins and set
// only after construction completes, so a frame callback
// racing a resize sees a consistent answer.
func (l *Lifecycle) Operational() bool { return l.operational.Load() }

// Init builds the backend in dependency order. On first
// entry createSurface is invoked to bind the surface; on
// re-entry after Destroy the bound surface is reused and
// createSurface may be nil. Any failure is returned as is
// and leaves the backend non-operational; Destroy cleans
// up whatever was built.
func (l *Lifecycle) Init(createSurface SurfaceFunc) error {
	if err := l.ctx.createConnection(l.platform.InstanceExtensions()); err != nil {
		return err
	}
	if err := l.ctx.selectAccelerator(); err != nil {
		return err
	}
	if l.surface == vk.NullSurface {
		if createSurface == nil {
			return ErrNoSurface
		}
		surface, err := createSurface(l.ctx.instance)
		if err != nil {
			return fmt.Errorf("render: create surface: %w", err)
		}
		if surface == vk.NullSurface {
			return ErrNoSurface
		}
		l.surface = surface
		l.log.Infof("render: surface bound")
	} else {
		l.log.Infof("render: surface bound, skipping")
	}
	if err := l.ctx.createDevice(l.surface); err != nil {
		return err
	}
	l.geometry = l.platform.Geometry()
	if err := l.chain.create(l.ctx, l.surface, l.geometry); err != nil {
		return err
	}
	if err := l.chain.createViews(l.ctx.device); err != nil {
		return err
	}
	if err := l.chain.createRenderPass(l.ctx.device); err != nil {
		return err
	}
	if err := l.createPipeline(); err != nil {
		return err
	}
	if err := l.chain.createFramebuffers(l.ctx.device); err != nil {
		return err
	}
	if err := l.ring.createPools(l.ctx.device, l.ctx.families); err != nil {
		return err
	}
	if err := l.ring.createBuffers(l.ctx.device, len(l.chain.framebuffers)); err != nil {
		return err
	}
	if err := l.ring.createSyncObjects(l.ctx.device); err != nil {
		return err
	}
	l.operational.Store(true)
	l.log.Infof("render: backend operational")
	return nil
}

// Destroy releases the geometry-scoped state in reverse
// creation order, after waiting for the device to go
// idle. The instance, accelerator, device, queues and
// surface survive so Init can rebuild against them.
// Destroy is idempotent and safe on a Lifecycle that was
// never initialized.
func (l *Lifecycle) Destroy() {
	l.operational.Store(false)
	if l.ctx.device != nil {
		vk.DeviceWaitIdle(l.ctx.device)
	}
	l.ring.destroy(l.ctx.device)
	l.destroyPipeline()
	l.chain.destroy(l.ctx.device)
}

// HandleResize reacts to a geometry change. Geometry that
// matches the current one is a no-op; otherwise the
// geometry-scoped state is destroyed and rebuilt against
// the existing surface. It reports whether a rebuild took
// place.
func (l *Lifecycle) HandleResize(geo wsi.Geometry) (bool, error) {
	if geo == l.geometry {
		l.log.Verbosef("render: geometry unchanged, skipping rebuild")
		return false, nil
	}
	l.log.Infof("render: rebuilding for %dx%d", geo.Width, geo.Height)
	l.Destroy()
	if err := l.Init(nil); err != nil {
		return false, err
	}
	return true, nil
}

// Shutdown releases everything, including the surface and
// the Context. The Lifecycle must not be reused after.
func (l *Lifecycle) Shutdown() {
	l.Destroy()
	if l.surface != vk.NullSurface && l.ctx.instance != nil {
		vk.DestroySurface(l.ctx.instance, l.surface, nil)
		l.surface = vk.NullSurface
		l.log.Verbosef("render: surface released")
	}
	l.ctx.close()
}

// Redraw renders and presents one frame: wait for the
// in-flight fence, acquire an image, re-record that
// image's graphics buffer with a clear-only pass, submit,
// and present. When the backend is not operational the
// call is ignored, so a frame callback arriving during a
// resize is harmless. Any native failure aborts the frame
// with an error; there is no partial recovery.
func (l *Lifecycle) Redraw() error {
	if !l.operational.Load() {
		l.log.Tracef("render: redraw ignored, not operational")
		return nil
	}
	device := l.ctx.device
	fences := []vk.Fence{l.ring.inFlight}
	if res := vk.WaitForFences(device, 1, fences, vk.True, math.MaxUint64); res != vk.Success {
		return fmt.Errorf("render: wait for fence: %w", vk.Error(res))
	}
	if res := vk.ResetFences(device, 1, fences); res != vk.Success {
		return fmt.Errorf("render: reset fence: %w", vk.Error(res))
	}
	var imageIndex uint32
	res := vk.AcquireNextImage(device, l.chain.swapchain, math.MaxUint64,
		l.ring.imageAvailable, vk.NullFence, &imageIndex)
	if res != vk.Success && res != vk.Suboptimal {
		return fmt.Errorf("render: acquire image: %w", vk.Error(res))
	}

	buffer := l.ring.buffers[roleGraphics][imageIndex]
	if res := vk.ResetCommandBuffer(buffer, 0); res != vk.Success {
		return fmt.Errorf("render: reset command buffer: %w", vk.Error(res))
	}
	if err := l.recordFrame(buffer, imageIndex); err != nil {
		return err
	}

	submit := vk.SubmitInfo{
		SType:              vk.StructureTypeSubmitInfo,
		WaitSemaphoreCount: 1,
		PWaitSemaphores:    []vk.Semaphore{l.ring.imageAvailable},
		PWaitDstStageMask: []vk.PipelineStageFlags{
			vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
		},
		CommandBufferCount:   1,
		PCommandBuffers:      []vk.CommandBuffer{buffer},
		SignalSemaphoreCount: 1,
		PSignalSemaphores:    []vk.Semaphore{l.ring.renderFinished},
	}
	if res := vk.QueueSubmit(l.ctx.queues.Graphics, 1, []vk.SubmitInfo{submit}, l.ring.inFlight); res != vk.Success {
		return fmt.Errorf("render: submit: %w", vk.Error(res))
	}

	present := vk.PresentInfo{
		SType:              vk.StructureTypePresentInfo,
		WaitSemaphoreCount: 1,
		PWaitSemaphores:    []vk.Semaphore{l.ring.renderFinished},
		SwapchainCount:     1,
		PSwapchains:        []vk.Swapchain{l.chain.swapchain},
		PImageIndices:      []uint32{imageIndex},
	}
	res = vk.QueuePresent(l.ctx.queues.Present, &present)
	if res != vk.Success && res != vk.Suboptimal {
		return fmt.Errorf("render: present: %w", vk.Error(res))
	}
	l.log.Tracef("render: frame presented, image %d", imageIndex)
	return nil
}

// recordFrame records the clear-only pass into buffer for
// the given chain image.
func (l *Lifecycle) recordFrame(buffer vk.CommandBuffer, imageIndex uint32) error {
	begin := vk.CommandBufferBeginInfo{
		SType: vk.StructureTypeCommandBufferBeginInfo,
	}
	if res := vk.BeginCommandBuffer(buffer, &begin); res != vk.Success {
		return fmt.Errorf("render: begin command buffer: %w", vk.Error(res))
	}
	info := vk.RenderPassBeginInfo{
		SType:       vk.StructureTypeRenderPassBeginInfo,
		RenderPass:  l.chain.renderPass,
		Framebuffer: l.chain.framebuffers[imageIndex],
		RenderArea: vk.Rect2D{
			Offset: vk.Offset2D{},
			Extent: l.chain.extent,
		},
		ClearValueCount: 1,
		PClearValues:    []vk.ClearValue{vk.NewClearValue(l.clearColor[:])},
	}
	vk.CmdBeginRenderPass(buffer, &info, vk.SubpassContentsInline)
	vk.CmdEndRenderPass(buffer)
	if res := vk.EndCommandBuffer(buffer); res != vk.Success {
		return fmt.Errorf("render: end command buffer: %w", vk.Error(res))
	}
	return nil
}
