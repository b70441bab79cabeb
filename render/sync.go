// Copyright 2026 The Updraft Authors. All rights reserved.

package render

import (
	"fmt"

	vk "github.com/goki/vulkan"

	"updraft/internal/diag"
)

// role identifies a command submission role.
type role int

const (
	roleGraphics role = iota
	rolePresent
	roleTransfer
	roleCompute
	roleCount
)

func (r role) String() string {
	switch r {
	case roleGraphics:
		return "graphics"
	case rolePresent:
		return "present"
	case roleTransfer:
		return "transfer"
	case roleCompute:
		return "compute"
	}
	return "unknown"
}

// SyncRing owns the command recording state and the frame
// synchronization primitives. Each role gets its own pool
// so buffers can be reset independently; graphics gets
// one buffer per framebuffer so re-recording targets only
// the acquired image, the other roles get exactly one.
//
// A single frame is kept in flight: one semaphore pair
// and one fence are reused every frame.
type SyncRing struct {
	log *diag.Logger

	pools   [roleCount]vk.CommandPool
	buffers [roleCount][]vk.CommandBuffer

	imageAvailable vk.Semaphore
	renderFinished vk.Semaphore
	inFlight       vk.Fence
}

func newSyncRing(log *diag.Logger) *SyncRing {
	return &SyncRing{log: log}
}

func (r *SyncRing) familyFor(q QueueFamilyIndices, ro role) FamilyIndex {
	switch ro {
	case roleGraphics:
		return q.Graphics
	case rolePresent:
		return q.Present
	case roleTransfer:
		return q.Transfer
	case roleCompute:
		return q.Compute
	}
	return FamilyIndex{}
}

// createPools builds one resettable command pool per
// role, on that role's queue family.
func (r *SyncRing) createPools(device vk.Device, families QueueFamilyIndices) error {
	if !families.Complete() {
		return ErrIncompleteQueues
	}
	for ro := roleGraphics; ro < roleCount; ro++ {
		info := vk.CommandPoolCreateInfo{
			SType:            vk.StructureTypeCommandPoolCreateInfo,
			Flags:            vk.CommandPoolCreateFlags(vk.CommandPoolCreateResetCommandBufferBit),
			QueueFamilyIndex: r.familyFor(families, ro).Get(),
		}
		if res := vk.CreateCommandPool(device, &info, nil, &r.pools[ro]); res != vk.Success {
			return fmt.Errorf("render: create %s command pool: %w", ro, vk.Error(res))
		}
	}
	return nil
}

// createBuffers allocates the command buffers: one per
// framebuffer for graphics, one for every other role.
func (r *SyncRing) createBuffers(device vk.Device, framebuffers int) error {
	for ro := roleGraphics; ro < roleCount; ro++ {
		count := 1
		if ro == roleGraphics {
			count = framebuffers
		}
		bufs := make([]vk.CommandBuffer, count)
		info := vk.CommandBufferAllocateInfo{
			SType:              vk.StructureTypeCommandBufferAllocateInfo,
			CommandPool:        r.pools[ro],
			Level:              vk.CommandBufferLevelPrimary,
			CommandBufferCount: uint32(count),
		}
		if res := vk.AllocateCommandBuffers(device, &info, bufs); res != vk.Success {
			return fmt.Errorf("render: allocate %s command buffers: %w", ro, vk.Error(res))
		}
		r.buffers[ro] = bufs
	}
	r.log.Verbosef("render: command buffers allocated, %d for graphics", framebuffers)
	return nil
}

// createSyncObjects builds the semaphore pair and the
// in-flight fence. The fence starts signaled so the first
// frame's wait falls through.
func (r *SyncRing) createSyncObjects(device vk.Device) error {
	semInfo := vk.SemaphoreCreateInfo{
		SType: vk.StructureTypeSemaphoreCreateInfo,
	}
	fenceInfo := vk.FenceCreateInfo{
		SType: vk.StructureTypeFenceCreateInfo,
		Flags: vk.FenceCreateFlags(vk.FenceCreateSignaledBit),
	}
	if res := vk.CreateSemaphore(device, &semInfo, nil, &r.imageAvailable); res != vk.Success {
		return fmt.Errorf("render: create image-available semaphore: %w", vk.Error(res))
	}
	if res := vk.CreateSemaphore(device, &semInfo, nil, &r.renderFinished); res != vk.Success {
		return fmt.Errorf("render: create render-finished semaphore: %w", vk.Error(res))
	}
	if res := vk.CreateFence(device, &fenceInfo, nil, &r.inFlight); res != vk.Success {
		return fmt.Errorf("render: create in-flight fence: %w", vk.Error(res))
	}
	return nil
}

// destroy releases the synchronization primitives, frees
// the command buffers against their pools, and destroys
// the pools, in reverse creation order. Every release is
// guarded, so destroy is safe on a partially built or
// never built SyncRing.
func (r *SyncRing) destroy(device vk.Device) {
	if device == nil {
		return
	}
	if r.inFlight != vk.NullFence {
		vk.DestroyFence(device, r.inFlight, nil)
		r.inFlight = vk.NullFence
		r.log.Verbosef("render: in-flight fence released")
	}
	if r.renderFinished != vk.NullSemaphore {
		vk.DestroySemaphore(device, r.renderFinished, nil)
		r.renderFinished = vk.NullSemaphore
		r.log.Verbosef("render: render-finished semaphore released")
	}
	if r.imageAvailable != vk.NullSemaphore {
		vk.DestroySemaphore(device, r.imageAvailable, nil)
		r.imageAvailable = vk.NullSemaphore
		r.log.Verbosef("render: image-available semaphore released")
	}
	for ro := roleGraphics; ro < roleCount; ro++ {
		if r.buffers[ro] != nil && r.pools[ro] != vk.NullCommandPool {
			vk.FreeCommandBuffers(device, r.pools[ro], uint32(len(r.buffers[ro])), r.buffers[ro])
			r.log.Verbosef("render: %s command buffers released", ro)
		}
		r.buffers[ro] = nil
	}
	for ro := roleCount - 1; ro >= roleGraphics; ro-- {
		if r.pools[ro] != vk.NullCommandPool {
			vk.DestroyCommandPool(device, r.pools[ro], nil)
			r.pools[ro] = vk.NullCommandPool
			r.log.Verbosef("render: %s command pool released", ro)
		}
	}
}
