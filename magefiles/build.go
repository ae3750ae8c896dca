//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Sandbox compiles the demo app into bin/sandbox.
func (Build) Sandbox() error {
	_, err := executeCmd("go", withArgs("build", "-o", "bin/sandbox", "./cmd/sandbox"), withStream())
	return err
}

type Test mg.Namespace

// All runs every package test. Needs cgo plus GL and GLFW headers.
func (Test) All() error {
	_, err := executeCmd("go", withArgs("test", "./..."), withStream())
	return err
}

// Core runs the tests of the packages that build without cgo.
func (Test) Core() error {
	_, err := executeCmd("go",
		withArgs("test",
			"./engine/core/...",
			"./engine/colors/...",
			"./engine/shapes/...",
			"./engine/scene/...",
			"./engine/text/...",
			"./engine/gfx/renderer2d/...",
			"./engine/assets/...",
			"./engine/config/...",
			"./engine/capture/...",
		),
		withEnv("CGO_ENABLED=0"),
		withStream())
	return err
}

type Run mg.Namespace

// Sandbox runs the demo app with the repository config.
func (Run) Sandbox() error {
	mg.Deps(Build.Sandbox)
	_, err := executeCmd("bin/sandbox", withArgs("-config", "sprout.toml"), withStream())
	return err
}
