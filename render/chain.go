// Copyright 2026 The Updraft Authors. All rights reserved.

package render

import (
	"fmt"
	"math"

	vk "github.com/goki/vulkan"

	"updraft/internal/diag"
	"updraft/wsi"
)

// Chain owns the presentable image chain and everything
// keyed to the window geometry: the swapchain, its images
// and views, the render pass and the framebuffers. The
// whole Chain is destroyed and rebuilt as a unit when the
// geometry changes.
type Chain struct {
	log *diag.Logger

	swapchain    vk.Swapchain
	format       vk.Format
	colorSpace   vk.ColorSpace
	extent       vk.Extent2D
	images       []vk.Image
	views        []vk.ImageView
	renderPass   vk.RenderPass
	framebuffers []vk.Framebuffer
}

func newChain(log *diag.Logger) *Chain {
	return &Chain{log: log}
}

// extentUndefined is the sentinel a surface reports when
// the window system leaves the extent to the swapchain.
const extentUndefined = math.MaxUint32

// chooseSurfaceFormat selects 8-bit BGRA with sRGB
// encoding in the sRGB non-linear color space. There is
// no fallback: presenting through an unknown transfer
// function would silently distort output.
func chooseSurfaceFormat(formats []vk.SurfaceFormat) (vk.SurfaceFormat, error) {
	for i := range formats {
		f := formats[i]
		f.Deref()
		if f.Format == vk.FormatB8g8r8a8Srgb && f.ColorSpace == vk.ColorSpaceSrgbNonlinear {
			return f, nil
		}
	}
	return vk.SurfaceFormat{}, ErrNoSurfaceFormat
}

// choosePresentMode requires FIFO presentation. FIFO is
// the only mode the specification guarantees, and its
// vsync pacing is what the frame loop relies on.
func choosePresentMode(modes []vk.PresentMode) (vk.PresentMode, error) {
	for _, m := range modes {
		if m == vk.PresentModeFifo {
			return m, nil
		}
	}
	return 0, ErrNoPresentMode
}

// chooseImageCount requests one image more than the
// surface minimum, clamped to the surface maximum. A
// maximum of zero means unbounded and caps the request
// at three.
func chooseImageCount(caps vk.SurfaceCapabilities) uint32 {
	max := caps.MaxImageCount
	if max == 0 {
		max = 3
	}
	n := caps.MinImageCount + 1
	if n > max {
		n = max
	}
	if n < caps.MinImageCount {
		n = caps.MinImageCount
	}
	return n
}

// chooseExtent returns the surface's current extent
// unless the window system left it undefined, in which
// case the window geometry is clamped into the supported
// image extent range.
func chooseExtent(caps vk.SurfaceCapabilities, geo wsi.Geometry) vk.Extent2D {
	if caps.CurrentExtent.Width != extentUndefined {
		return caps.CurrentExtent
	}
	clamp := func(v, lo, hi uint32) uint32 {
		if v < lo {
			return lo
		}
		if v > hi {
			return hi
		}
		return v
	}
	return vk.Extent2D{
		Width:  clamp(geo.Width, caps.MinImageExtent.Width, caps.MaxImageExtent.Width),
		Height: clamp(geo.Height, caps.MinImageExtent.Height, caps.MaxImageExtent.Height),
	}
}

// create builds the swapchain and retrieves its images.
func (ch *Chain) create(ctx *Context, surface vk.Surface, geo wsi.Geometry) error {
	var caps vk.SurfaceCapabilities
	if res := vk.GetPhysicalDeviceSurfaceCapabilities(ctx.gpu, surface, &caps); res != vk.Success {
		return fmt.Errorf("render: surface capabilities: %w", vk.Error(res))
	}
	caps.Deref()
	caps.CurrentExtent.Deref()
	caps.MinImageExtent.Deref()
	caps.MaxImageExtent.Deref()
	ch.log.Verbosef("render: surface images %d..%d, current extent %dx%d",
		caps.MinImageCount, caps.MaxImageCount, caps.CurrentExtent.Width, caps.CurrentExtent.Height)

	var formatCount uint32
	vk.GetPhysicalDeviceSurfaceFormats(ctx.gpu, surface, &formatCount, nil)
	formats := make([]vk.SurfaceFormat, formatCount)
	vk.GetPhysicalDeviceSurfaceFormats(ctx.gpu, surface, &formatCount, formats)
	format, err := chooseSurfaceFormat(formats)
	if err != nil {
		return err
	}
	ch.format = format.Format
	ch.colorSpace = format.ColorSpace

	var modeCount uint32
	vk.GetPhysicalDeviceSurfacePresentModes(ctx.gpu, surface, &modeCount, nil)
	modes := make([]vk.PresentMode, modeCount)
	vk.GetPhysicalDeviceSurfacePresentModes(ctx.gpu, surface, &modeCount, modes)
	mode, err := choosePresentMode(modes)
	if err != nil {
		return err
	}

	ch.extent = chooseExtent(caps, geo)

	info := vk.SwapchainCreateInfo{
		SType:            vk.StructureTypeSwapchainCreateInfo,
		Surface:          surface,
		MinImageCount:    chooseImageCount(caps),
		ImageFormat:      ch.format,
		ImageColorSpace:  ch.colorSpace,
		ImageExtent:      ch.extent,
		ImageArrayLayers: 1,
		ImageUsage:       vk.ImageUsageFlags(vk.ImageUsageColorAttachmentBit),
		PreTransform:     caps.CurrentTransform,
		CompositeAlpha:   vk.CompositeAlphaOpaqueBit,
		PresentMode:      mode,
		Clipped:          vk.True,
		OldSwapchain:     vk.NullSwapchain,
	}
	if !ctx.families.Complete() {
		return ErrIncompleteQueues
	}
	graphics := ctx.families.Graphics.Get()
	present := ctx.families.Present.Get()
	if graphics != present {
		info.ImageSharingMode = vk.SharingModeConcurrent
		info.QueueFamilyIndexCount = 2
		info.PQueueFamilyIndices = []uint32{graphics, present}
	} else {
		info.ImageSharingMode = vk.SharingModeExclusive
	}
	var swapchain vk.Swapchain
	if res := vk.CreateSwapchain(ctx.device, &info, nil, &swapchain); res != vk.Success {
		return fmt.Errorf("render: create swapchain: %w", vk.Error(res))
	}
	ch.swapchain = swapchain

	var imageCount uint32
	vk.GetSwapchainImages(ctx.device, swapchain, &imageCount, nil)
	if imageCount == 0 {
		return ErrNoImages
	}
	ch.images = make([]vk.Image, imageCount)
	vk.GetSwapchainImages(ctx.device, swapchain, &imageCount, ch.images)
	ch.log.Infof("render: swapchain created, %d images at %dx%d",
		imageCount, ch.extent.Width, ch.extent.Height)
	return nil
}

// createViews builds one image view per chain image.
func (ch *Chain) createViews(device vk.Device) error {
	ch.views = make([]vk.ImageView, len(ch.images))
	for i := range ch.images {
		info := vk.ImageViewCreateInfo{
			SType:    vk.StructureTypeImageViewCreateInfo,
			Image:    ch.images[i],
			ViewType: vk.ImageViewType2d,
			Format:   ch.format,
			Components: vk.ComponentMapping{
				R: vk.ComponentSwizzleIdentity,
				G: vk.ComponentSwizzleIdentity,
				B: vk.ComponentSwizzleIdentity,
				A: vk.ComponentSwizzleIdentity,
			},
			SubresourceRange: vk.ImageSubresourceRange{
				AspectMask: vk.ImageAspectFlags(vk.ImageAspectColorBit),
				LevelCount: 1,
				LayerCount: 1,
			},
		}
		if res := vk.CreateImageView(device, &info, nil, &ch.views[i]); res != vk.Success {
			return fmt.Errorf("render: create image view %d: %w", i, vk.Error(res))
		}
	}
	return nil
}

// createRenderPass builds the single clear-to-present
// pass the frame loop records against.
func (ch *Chain) createRenderPass(device vk.Device) error {
	colorAttachment := vk.AttachmentDescription{
		Format:         ch.format,
		Samples:        vk.SampleCount1Bit,
		LoadOp:         vk.AttachmentLoadOpClear,
		StoreOp:        vk.AttachmentStoreOpStore,
		StencilLoadOp:  vk.AttachmentLoadOpDontCare,
		StencilStoreOp: vk.AttachmentStoreOpDontCare,
		InitialLayout:  vk.ImageLayoutUndefined,
		FinalLayout:    vk.ImageLayoutPresentSrc,
	}
	colorRef := vk.AttachmentReference{
		Attachment: 0,
		Layout:     vk.ImageLayoutColorAttachmentOptimal,
	}
	subpass := vk.SubpassDescription{
		PipelineBindPoint:    vk.PipelineBindPointGraphics,
		ColorAttachmentCount: 1,
		PColorAttachments:    []vk.AttachmentReference{colorRef},
	}
	dependency := vk.SubpassDependency{
		SrcSubpass:    vk.SubpassExternal,
		DstSubpass:    0,
		SrcStageMask:  vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
		DstStageMask:  vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
		SrcAccessMask: 0,
		DstAccessMask: vk.AccessFlags(vk.AccessColorAttachmentReadBit | vk.AccessColorAttachmentWriteBit),
	}
	info := vk.RenderPassCreateInfo{
		SType:           vk.StructureTypeRenderPassCreateInfo,
		AttachmentCount: 1,
		PAttachments:    []vk.AttachmentDescription{colorAttachment},
		SubpassCount:    1,
		PSubpasses:      []vk.SubpassDescription{subpass},
		DependencyCount: 1,
		PDependencies:   []vk.SubpassDependency{dependency},
	}
	var renderPass vk.RenderPass
	if res := vk.CreateRenderPass(device, &info, nil, &renderPass); res != vk.Success {
		return fmt.Errorf("render: create render pass: %w", vk.Error(res))
	}
	ch.renderPass = renderPass
	return nil
}

// createFramebuffers builds one framebuffer per view.
func (ch *Chain) createFramebuffers(device vk.Device) error {
	ch.framebuffers = make([]vk.Framebuffer, len(ch.views))
	for i := range ch.views {
		info := vk.FramebufferCreateInfo{
			SType:           vk.StructureTypeFramebufferCreateInfo,
			RenderPass:      ch.renderPass,
			AttachmentCount: 1,
			PAttachments:    []vk.ImageView{ch.views[i]},
			Width:           ch.extent.Width,
			Height:          ch.extent.Height,
			Layers:          1,
		}
		if res := vk.CreateFramebuffer(device, &info, nil, &ch.framebuffers[i]); res != vk.Success {
			return fmt.Errorf("render: create framebuffer %d: %w", i, vk.Error(res))
		}
	}
	return nil
}

// destroy releases the chain in reverse creation order.
// Every release is guarded, so destroy is safe on a
// partially built or never built Chain.
func (ch *Chain) destroy(device vk.Device) {
	if device == nil {
		return
	}
	for i := range ch.framebuffers {
		if ch.framebuffers[i] != vk.NullFramebuffer {
			vk.DestroyFramebuffer(device, ch.framebuffers[i], nil)
		}
	}
	if ch.framebuffers != nil {
		ch.log.Verbosef("render: framebuffers released")
		ch.framebuffers = nil
	}
	if ch.renderPass != vk.NullRenderPass {
		vk.DestroyRenderPass(device, ch.renderPass, nil)
		ch.renderPass = vk.NullRenderPass
		ch.log.Verbosef("render: render pass released")
	}
	for i := range ch.views {
		if ch.views[i] != vk.NullImageView {
			vk.DestroyImageView(device, ch.views[i], nil)
		}
	}
	if ch.views != nil {
		ch.log.Verbosef("render: image views released")
		ch.views = nil
	}
	if ch.swapchain != vk.NullSwapchain {
		vk.DestroySwapchain(device, ch.swapchain, nil)
		ch.swapchain = vk.NullSwapchain
		ch.log.Verbosef("render: swapchain released")
	}
	ch.images = nil
}
