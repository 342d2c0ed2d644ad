// Package config loads the optional settings file of the demo. Every value
// has a default, running without a file is the normal case.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/oliverbestmann/cubes/lifecycle"
	"github.com/oliverbestmann/cubes/scene"
	"github.com/pelletier/go-toml/v2"
)

// EnvVar names the environment variable holding the path of the settings file.
const EnvVar = "CUBES_CONFIG"

type Config struct {
	Window  Window  `toml:"window"`
	Grid    Grid    `toml:"grid"`
	Render  Render  `toml:"render"`
	Log     Log     `toml:"log"`
	Profile Profile `toml:"profile"`
}

type Window struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

type Grid struct {
	PerRow        int     `toml:"per_row"`
	Spacing       float32 `toml:"spacing"`
	RotationSpeed float32 `toml:"rotation_speed"`

	// seed for the rotation axes, random if not set
	Seed *uint64 `toml:"seed"`
}

type Render struct {
	// linear rgba
	ClearColor [4]float32 `toml:"clear_color"`

	// "drop" or "keep"
	SuspendPolicy string `toml:"suspend_policy"`

	// zero disables escalation
	MaxConsecutiveFailures int `toml:"max_consecutive_failures"`

	// "cube" or "pentagon"
	Mesh string `toml:"mesh"`

	ValidateShader       bool `toml:"validate_shader"`
	ForceFallbackAdapter bool `toml:"force_fallback_adapter"`
}

type Log struct {
	// "debug", "info", "warn" or "error"
	Level        string `toml:"level"`
	ReportCaller bool   `toml:"report_caller"`
}

type Profile struct {
	// "", "cpu" or "mem"
	Mode string `toml:"mode"`

	// directory for the profile output, defaults to the working directory
	Path string `toml:"path"`
}

func Default() Config {
	grid := scene.DefaultGridOptions()

	return Config{
		Window: Window{
			Width:  1000,
			Height: 600,
			Title:  "Cubes",
		},
		Grid: Grid{
			PerRow:        grid.PerRow,
			Spacing:       grid.Spacing,
			RotationSpeed: grid.RotationSpeed,
		},
		Render: Render{
			ClearColor:     [4]float32{0, 0, 1, 1},
			SuspendPolicy:  "drop",
			Mesh:           "cube",
			ValidateShader: true,
		},
		Log: Log{
			Level: "debug",
		},
	}
}

// FromEnv loads the file named by EnvVar, or returns the defaults if the
// variable is not set.
func FromEnv() (Config, error) {
	path := os.Getenv(EnvVar)
	if path == "" {
		return Default(), nil
	}

	return Load(path)
}

func Load(path string) (Config, error) {
	fp, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}

	defer fp.Close()

	config, err := Decode(fp)
	if err != nil {
		return Config{}, fmt.Errorf("load %q: %w", path, err)
	}

	return config, nil
}

// Decode parses a settings file. Values missing from the file keep their
// defaults, unknown keys are an error.
func Decode(r io.Reader) (Config, error) {
	config := Default()

	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&config); err != nil {
		var strictErr *toml.StrictMissingError
		if errors.As(err, &strictErr) {
			var keys []string
			for _, keyErr := range strictErr.Errors {
				keys = append(keys, strings.Join(keyErr.Key(), "."))
			}

			return Config{}, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
		}

		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

func (c Config) Validate() error {
	var errs []error

	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		invalid("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}

	if c.Grid.PerRow <= 0 {
		invalid("grid.per_row must be positive, got %d", c.Grid.PerRow)
	}

	if c.Grid.Spacing <= 0 {
		invalid("grid.spacing must be positive, got %v", c.Grid.Spacing)
	}

	for idx, value := range c.Render.ClearColor {
		if value < 0 || value > 1 {
			invalid("render.clear_color[%d] must be in [0, 1], got %v", idx, value)
		}
	}

	if _, err := parseSuspendPolicy(c.Render.SuspendPolicy); err != nil {
		errs = append(errs, err)
	}

	if c.Render.MaxConsecutiveFailures < 0 {
		invalid("render.max_consecutive_failures must not be negative")
	}

	if _, err := parseMesh(c.Render.Mesh); err != nil {
		errs = append(errs, err)
	}

	if _, err := parseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}

	switch c.Profile.Mode {
	case "", "cpu", "mem":
	default:
		invalid("unknown profile.mode %q", c.Profile.Mode)
	}

	return errors.Join(errs...)
}

func (c Config) SuspendPolicy() lifecycle.SuspendPolicy {
	policy, _ := parseSuspendPolicy(c.Render.SuspendPolicy)
	return policy
}

func (c Config) LifecycleOptions() lifecycle.Options {
	return lifecycle.Options{
		Policy:                 c.SuspendPolicy(),
		MaxConsecutiveFailures: c.Render.MaxConsecutiveFailures,
	}
}

func (c Config) LogLevel() slog.Level {
	level, _ := parseLevel(c.Log.Level)
	return level
}

func (c Config) GridOptions() scene.GridOptions {
	return scene.GridOptions{
		PerRow:        c.Grid.PerRow,
		Spacing:       c.Grid.Spacing,
		RotationSpeed: c.Grid.RotationSpeed,
	}
}

func (c Config) Mesh() scene.Mesh {
	mesh, _ := parseMesh(c.Render.Mesh)
	return mesh
}

// RandomSource returns a seeded source if a seed is configured, nil otherwise.
func (c Config) RandomSource() rand.Source {
	if c.Grid.Seed == nil {
		return nil
	}

	return rand.NewPCG(*c.Grid.Seed, 0)
}

func parseSuspendPolicy(value string) (lifecycle.SuspendPolicy, error) {
	switch strings.ToLower(value) {
	case "drop":
		return lifecycle.DropContext, nil
	case "keep":
		return lifecycle.KeepContext, nil
	default:
		return lifecycle.DropContext, fmt.Errorf("unknown render.suspend_policy %q", value)
	}
}

func parseMesh(value string) (scene.Mesh, error) {
	switch strings.ToLower(value) {
	case "cube":
		return scene.Cube(1), nil
	case "pentagon":
		return scene.Pentagon(), nil
	default:
		return scene.Mesh{}, fmt.Errorf("unknown render.mesh %q", value)
	}
}

func parseLevel(value string) (slog.Level, error) {
	switch strings.ToLower(value) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelDebug, fmt.Errorf("unknown log.level %q", value)
	}
}
