// Copyright 2026 The Updraft Authors. All rights reserved.

package render

import (
	"errors"
	"testing"

	vk "github.com/goki/vulkan"

	"updraft/wsi"
)

func TestChooseSurfaceFormat(t *testing.T) {
	formats := []vk.SurfaceFormat{
		{Format: vk.FormatR8g8b8a8Srgb, ColorSpace: vk.ColorSpaceSrgbNonlinear},
		{Format: vk.FormatB8g8r8a8Srgb, ColorSpace: vk.ColorSpaceSrgbNonlinear},
	}
	f, err := chooseSurfaceFormat(formats)
	if err != nil {
		t.Fatalf("chooseSurfaceFormat failed: %v", err)
	}
	if f.Format != vk.FormatB8g8r8a8Srgb || f.ColorSpace != vk.ColorSpaceSrgbNonlinear {
		t.Fatalf("chooseSurfaceFormat\nhave %d/%d\nwant %d/%d",
			f.Format, f.ColorSpace, vk.FormatB8g8r8a8Srgb, vk.ColorSpaceSrgbNonlinear)
	}
}

func TestChooseSurfaceFormatNoFallback(t *testing.T) {
	formats := []vk.SurfaceFormat{
		{Format: vk.FormatB8g8r8a8Unorm, ColorSpace: vk.ColorSpaceSrgbNonlinear},
		{Format: vk.FormatR8g8b8a8Srgb, ColorSpace: vk.ColorSpaceSrgbNonlinear},
	}
	if _, err := chooseSurfaceFormat(formats); !errors.Is(err, ErrNoSurfaceFormat) {
		t.Fatalf("chooseSurfaceFormat\nhave %v\nwant %v", err, ErrNoSurfaceFormat)
	}
	if _, err := chooseSurfaceFormat(nil); !errors.Is(err, ErrNoSurfaceFormat) {
		t.Fatalf("chooseSurfaceFormat on empty set\nhave %v\nwant %v", err, ErrNoSurfaceFormat)
	}
}

func TestChoosePresentMode(t *testing.T) {
	modes := []vk.PresentMode{vk.PresentModeMailbox, vk.PresentModeFifo}
	m, err := choosePresentMode(modes)
	if err != nil {
		t.Fatalf("choosePresentMode failed: %v", err)
	}
	if m != vk.PresentModeFifo {
		t.Fatalf("choosePresentMode\nhave %d\nwant %d", m, vk.PresentModeFifo)
	}
}

func TestChoosePresentModeNoFallback(t *testing.T) {
	modes := []vk.PresentMode{vk.PresentModeMailbox, vk.PresentModeImmediate}
	if _, err := choosePresentMode(modes); !errors.Is(err, ErrNoPresentMode) {
		t.Fatalf("choosePresentMode\nhave %v\nwant %v", err, ErrNoPresentMode)
	}
}

func TestChooseImageCount(t *testing.T) {
	cases := []struct {
		min, max uint32
		want     uint32
	}{
		{2, 0, 3}, // unbounded, capped at 3
		{2, 2, 2}, // clamped to max
		{2, 5, 3},
		{3, 0, 3},
		{1, 1, 1},
	}
	for _, c := range cases {
		caps := vk.SurfaceCapabilities{MinImageCount: c.min, MaxImageCount: c.max}
		if have := chooseImageCount(caps); have != c.want {
			t.Fatalf("chooseImageCount(min=%d, max=%d)\nhave %d\nwant %d",
				c.min, c.max, have, c.want)
		}
	}
}

func TestChooseExtentCurrent(t *testing.T) {
	caps := vk.SurfaceCapabilities{
		CurrentExtent:  vk.Extent2D{Width: 1920, Height: 1080},
		MinImageExtent: vk.Extent2D{Width: 1, Height: 1},
		MaxImageExtent: vk.Extent2D{Width: 4096, Height: 4096},
	}
	have := chooseExtent(caps, wsi.Geometry{Width: 800, Height: 600})
	if have.Width != 1920 || have.Height != 1080 {
		t.Fatalf("chooseExtent with defined current extent\nhave %dx%d\nwant 1920x1080",
			have.Width, have.Height)
	}
}

func TestChooseExtentUndefined(t *testing.T) {
	caps := vk.SurfaceCapabilities{
		CurrentExtent:  vk.Extent2D{Width: extentUndefined, Height: extentUndefined},
		MinImageExtent: vk.Extent2D{Width: 640, Height: 480},
		MaxImageExtent: vk.Extent2D{Width: 1024, Height: 768},
	}
	cases := []struct {
		geo  wsi.Geometry
		want vk.Extent2D
	}{
		{wsi.Geometry{800, 600}, vk.Extent2D{Width: 800, Height: 600}},
		{wsi.Geometry{100, 100}, vk.Extent2D{Width: 640, Height: 480}},
		{wsi.Geometry{5000, 5000}, vk.Extent2D{Width: 1024, Height: 768}},
	}
	for _, c := range cases {
		if have := chooseExtent(caps, c.geo); have != c.want {
			t.Fatalf("chooseExtent(%v)\nhave %dx%d\nwant %dx%d",
				c.geo, have.Width, have.Height, c.want.Width, c.want.Height)
		}
	}
}
