// Copyright 2026 The Updraft Authors. All rights reserved.

// Updraft opens a window and drives the Vulkan backend:
// connect to the window system, negotiate a window from
// the persisted geometry, build the rendering backend
// against its surface, then loop dispatching events and
// presenting frames. Resizes rebuild the geometry-scoped
// backend state in place; closing the window shuts
// everything down in reverse order.
package main

import (
	"flag"
	"os"
	"runtime"

	"updraft/internal/config"
	"updraft/internal/diag"
	"updraft/render"
	"updraft/wsi"
)

func init() {
	// The window system and the loader are bound to the
	// thread that initializes them.
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

// run owns every resource behind a defer, so fatal errors
// inside event handlers still unwind the backend and the
// window system in order. Errors are reported where they
// occur; run's result only selects the exit status.
func run() error {
	verbosity := flag.Int("v", 0, "diagnostics verbosity (0-3)")
	title := flag.String("title", "Updraft", "window title")
	fullscreen := flag.Bool("fullscreen", false, "open fullscreen")
	flag.Parse()

	log := diag.New(*verbosity)

	cfgPath, err := config.Path()
	if err != nil {
		log.Errorf("resolve config path: %v", err)
		return err
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Errorf("load config: %v", err)
		return err
	}
	if *fullscreen {
		cfg.Display.Fullscreen = true
	}

	platform := wsi.NewGLFW(log)
	if err := platform.Connect(); err != nil {
		log.Errorf("connect: %v", err)
		return err
	}
	defer platform.Disconnect()

	winCfg := wsi.Config{
		Title: *title,
		Geometry: wsi.Geometry{
			Width:  cfg.Display.Width,
			Height: cfg.Display.Height,
		},
		Fullscreen: cfg.Display.Fullscreen,
	}
	if err := platform.CreateWindow(winCfg); err != nil {
		log.Errorf("create window: %v", err)
		return err
	}

	backend := render.New(platform, log)
	defer backend.Shutdown()
	if err := backend.Init(platform.CreateSurface); err != nil {
		log.Errorf("initialize backend: %v", err)
		return err
	}

	// Handler failures are fatal: report, remember, and
	// end the loop so the defers run.
	var runErr error
	fail := func(stage string, err error) {
		log.Errorf("%s: %v", stage, err)
		runErr = err
		platform.RequestClose()
	}

	platform.SetResizeHandler(func(geo wsi.Geometry) {
		rebuilt, err := backend.HandleResize(geo)
		if err != nil {
			fail("resize", err)
			return
		}
		if !rebuilt {
			return
		}
		cfg.Display.Width = geo.Width
		cfg.Display.Height = geo.Height
		if err := cfg.Save(cfgPath); err != nil {
			log.Errorf("save config: %v", err)
		}
	})
	platform.SetCloseHandler(func() {
		log.Infof("close requested")
	})
	platform.SetFrameHandler(func() {
		if err := backend.Redraw(); err != nil {
			fail("redraw", err)
		}
	})

	// First frame before entering the loop, so the window
	// has content as soon as it appears.
	if err := backend.Redraw(); err != nil {
		log.Errorf("redraw: %v", err)
		return err
	}

	if err := platform.EventLoop(nil); err != nil {
		log.Errorf("event loop: %v", err)
		return err
	}
	return runErr
}
