package orion

import (
	"fmt"
	"log/slog"

	"github.com/oliverbestmann/cubes/config"
	"github.com/oliverbestmann/cubes/glimpse"
	"github.com/oliverbestmann/cubes/glm"
	"github.com/oliverbestmann/cubes/lifecycle"
	"github.com/oliverbestmann/cubes/pulse"
	"github.com/pkg/profile"
)

// Run opens the window and drives the renderer until the window is closed
// or a fatal error occurs.
func Run(cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if p := startProfile(cfg.Profile); p != nil {
		defer p.Stop()
	}

	// create a new window
	win, err := glimpse.NewWindow(
		cfg.Window.Width,
		cfg.Window.Height,
		cfg.Window.Title,
	)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}

	defer win.Terminate()

	backend := pulse.NewBackend(win, BackendOptions(cfg))
	defer backend.Release()

	machine := lifecycle.NewMachine(backend, cfg.LifecycleOptions())

	var reporter frameReporter

	loop := lifecycle.Loop{
		Machine: machine,
		OnFrame: reporter.observe,
	}

	err = loop.Run(win)

	stats := machine.Stats()
	slog.Info(
		"Renderer stopped",
		slog.Int("presented", stats.FramesPresented),
		slog.Int("outdated", stats.FramesOutdated),
		slog.Int("failed", stats.FramesFailed),
		slog.Int("contexts", stats.ContextBuilds),
	)

	return err
}

// BackendOptions translates the render settings of cfg.
func BackendOptions(cfg config.Config) pulse.BackendOptions {
	return pulse.BackendOptions{
		ForceFallbackAdapter: cfg.Render.ForceFallbackAdapter,
		ValidateShader:       cfg.Render.ValidateShader,
		ClearColor:           pulse.ColorOf(glm.Vec4f(cfg.Render.ClearColor)),
		Mesh:                 cfg.Mesh(),
		Grid:                 cfg.GridOptions(),
		Random:               cfg.RandomSource(),
	}
}

func startProfile(cfg config.Profile) interface{ Stop() } {
	var mode func(*profile.Profile)

	switch cfg.Mode {
	case "cpu":
		mode = profile.CPUProfile
	case "mem":
		mode = profile.MemProfile
	default:
		return nil
	}

	options := []func(*profile.Profile){mode, profile.NoShutdownHook}
	if cfg.Path != "" {
		options = append(options, profile.ProfilePath(cfg.Path))
	}

	return profile.Start(options...)
}
