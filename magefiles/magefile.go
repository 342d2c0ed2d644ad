//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

var Default = Test

type Run mg.Namespace

// Runs all package tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Runs go vet on all packages.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Runs the demo with the default settings.
func (Run) Cubes() error {
	mg.Deps(Vet)

	fmt.Println("Run cubes...")
	return sh.RunV("go", "run", "./examples/cubes")
}

// Runs the demo with the settings file at path.
func (Run) Config(path string) error {
	mg.Deps(Vet)

	env := map[string]string{"CUBES_CONFIG": path}
	return sh.RunWithV(env, "go", "run", "./examples/cubes")
}

// Runs the demo on the fallback adapter.
func (Run) Fallback() error {
	env := map[string]string{
		"WGPU_FORCE_FALLBACK_ADAPTER": "1",
		"WGPU_LOG_LEVEL":              "WARN",
	}

	return sh.RunWithV(env, "go", "run", "./examples/cubes")
}
