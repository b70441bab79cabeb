// Copyright 2026 The Updraft Authors. All rights reserved.

package wsi

import (
	"errors"
	"testing"
)

func TestHeadlessBeforeConnect(t *testing.T) {
	p := NewHeadless(nil)
	if err := p.CreateWindow(Config{Geometry: Geometry{800, 600}}); !errors.Is(err, ErrDisconnected) {
		t.Fatalf("CreateWindow before Connect\nhave %v\nwant %v", err, ErrDisconnected)
	}
	if err := p.Dispatch(); !errors.Is(err, ErrDisconnected) {
		t.Fatalf("Dispatch before Connect\nhave %v\nwant %v", err, ErrDisconnected)
	}
	if err := p.EventLoop(nil); !errors.Is(err, ErrNoWindow) {
		t.Fatalf("EventLoop before CreateWindow\nhave %v\nwant %v", err, ErrNoWindow)
	}
	if _, err := p.CreateSurface(nil); !errors.Is(err, ErrNoWindow) {
		t.Fatalf("CreateSurface before CreateWindow\nhave %v\nwant %v", err, ErrNoWindow)
	}
}

func TestHeadlessProtocol(t *testing.T) {
	p := NewHeadless(nil)
	if err := p.Connect(); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	if err := p.Connect(); err != nil {
		t.Fatalf("second Connect failed: %v", err)
	}
	want := Geometry{Width: 1024, Height: 768}
	if err := p.CreateWindow(Config{Title: "test", Geometry: want}); err != nil {
		t.Fatalf("CreateWindow failed: %v", err)
	}
	if have := p.Geometry(); have != want {
		t.Fatalf("Geometry\nhave %v\nwant %v", have, want)
	}
	if _, err := p.CreateSurface(nil); !errors.Is(err, ErrNoSurfaceSupport) {
		t.Fatalf("CreateSurface\nhave %v\nwant %v", err, ErrNoSurfaceSupport)
	}
	if err := p.Dispatch(); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if p.Closed() {
		t.Fatal("Closed before NotifyClose")
	}
	p.Disconnect()
	p.Disconnect()
}

func TestHeadlessZeroGeometry(t *testing.T) {
	p := NewHeadless(nil)
	if err := p.Connect(); err != nil {
		t.Fatal(err)
	}
	if err := p.CreateWindow(Config{}); !errors.Is(err, ErrNoWindow) {
		t.Fatalf("CreateWindow with zero geometry\nhave %v\nwant %v", err, ErrNoWindow)
	}
}

func TestHeadlessHandlers(t *testing.T) {
	p := NewHeadless(nil)
	if err := p.Connect(); err != nil {
		t.Fatal(err)
	}
	if err := p.CreateWindow(Config{Geometry: Geometry{800, 600}}); err != nil {
		t.Fatal(err)
	}
	var resized []Geometry
	closed := 0
	p.SetResizeHandler(func(geo Geometry) { resized = append(resized, geo) })
	p.SetCloseHandler(func() { closed++ })

	p.NotifyResize(Geometry{1280, 720})
	p.NotifyResize(Geometry{0, 720}) // ignored
	if len(resized) != 1 || resized[0] != (Geometry{1280, 720}) {
		t.Fatalf("resize handler calls\nhave %v\nwant [{1280 720}]", resized)
	}
	if have := p.Geometry(); have != (Geometry{1280, 720}) {
		t.Fatalf("Geometry after resize\nhave %v\nwant {1280 720}", have)
	}
	p.NotifyClose()
	if closed != 1 {
		t.Fatalf("close handler calls\nhave %d\nwant 1", closed)
	}
	if !p.Closed() {
		t.Fatal("Closed after NotifyClose is false")
	}
}

func TestHeadlessEventLoop(t *testing.T) {
	p := NewHeadless(nil)
	if err := p.Connect(); err != nil {
		t.Fatal(err)
	}
	if err := p.CreateWindow(Config{Geometry: Geometry{800, 600}}); err != nil {
		t.Fatal(err)
	}
	frames := 0
	p.SetFrameHandler(func() { frames++ })
	ticks := 0
	err := p.EventLoop(func() bool {
		ticks++
		if ticks == 3 {
			p.NotifyClose()
		}
		return true
	})
	if err != nil {
		t.Fatalf("EventLoop failed: %v", err)
	}
	if frames != 2 {
		t.Fatalf("frames before close\nhave %d\nwant 2", frames)
	}
}

func TestHeadlessEventLoopStops(t *testing.T) {
	p := NewHeadless(nil)
	if err := p.Connect(); err != nil {
		t.Fatal(err)
	}
	if err := p.CreateWindow(Config{Geometry: Geometry{800, 600}}); err != nil {
		t.Fatal(err)
	}
	frames := 0
	p.SetFrameHandler(func() { frames++ })
	ticks := 0
	err := p.EventLoop(func() bool {
		ticks++
		return ticks <= 2
	})
	if err != nil {
		t.Fatalf("EventLoop failed: %v", err)
	}
	if frames != 2 {
		t.Fatalf("frames before scheduling stopped\nhave %d\nwant 2", frames)
	}
}

func TestHeadlessRequestClose(t *testing.T) {
	p := NewHeadless(nil)
	if err := p.Connect(); err != nil {
		t.Fatal(err)
	}
	if err := p.CreateWindow(Config{Geometry: Geometry{800, 600}}); err != nil {
		t.Fatal(err)
	}
	closed := 0
	p.SetCloseHandler(func() { closed++ })
	frames := 0
	p.SetFrameHandler(func() {
		frames++
		if frames == 2 {
			// An application-side failure ends the loop.
			p.RequestClose()
		}
	})
	if err := p.EventLoop(nil); err != nil {
		t.Fatalf("EventLoop failed: %v", err)
	}
	if frames != 2 {
		t.Fatalf("frames before RequestClose\nhave %d\nwant 2", frames)
	}
	if !p.Closed() {
		t.Fatal("Closed after RequestClose is false")
	}
	if closed != 0 {
		t.Fatalf("close handler calls on RequestClose\nhave %d\nwant 0", closed)
	}
}

// TestGLFW exercises the windowed backend when a window
// system is reachable; otherwise it logs and skips.
func TestGLFW(t *testing.T) {
	p := NewGLFW(nil)
	if err := p.Connect(); err != nil {
		t.Skipf("no window system: %v", err)
	}
	defer p.Disconnect()
	if err := p.CreateWindow(Config{Title: "wsi test", Geometry: Geometry{320, 240}}); err != nil {
		t.Skipf("cannot create window: %v", err)
	}
	geo := p.Geometry()
	if geo.Width == 0 || geo.Height == 0 {
		t.Fatalf("Geometry after CreateWindow\nhave %v\nwant non-zero", geo)
	}
	if exts := p.InstanceExtensions(); len(exts) == 0 {
		t.Fatal("InstanceExtensions is empty")
	}
	if p.Closed() {
		t.Fatal("Closed on a fresh window")
	}
}
