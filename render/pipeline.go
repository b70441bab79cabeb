// Copyright 2026 The Updraft Authors. All rights reserved.

package render

import (
	vk "github.com/goki/vulkan"
)

// The programmable pipeline stage is not wired up yet:
// the frame loop only clears. createPipeline still takes
// its place in the construction sequence, and teardown
// guards both handles, so a real pipeline can slot in
// without reordering either path.

func (l *Lifecycle) createPipeline() error {
	l.log.Verbosef("render: pipeline creation skipped, nothing to bind")
	return nil
}

func (l *Lifecycle) destroyPipeline() {
	device := l.ctx.device
	if device == nil {
		return
	}
	if l.pipeline != vk.NullPipeline {
		vk.DestroyPipeline(device, l.pipeline, nil)
		l.pipeline = vk.NullPipeline
		l.log.Verbosef("render: pipeline released")
	}
	if l.pipelineLayout != vk.NullPipelineLayout {
		vk.DestroyPipelineLayout(device, l.pipelineLayout, nil)
		l.pipelineLayout = vk.NullPipelineLayout
		l.log.Verbosef("render: pipeline layout released")
	}
}
