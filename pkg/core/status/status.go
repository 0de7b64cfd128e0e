// Copyright © 2018 One Concern

// Package status exports errors produced by the core package.
package status

import (
	"github.com/oneconcern/devsetup/pkg/errors"
)

var (
	// ErrPrecondition indicates that the shared package cache already holds private exports
	ErrPrecondition = errors.New("private exports already present in the package cache")

	// ErrRetrieval indicates that the sources of a repository could not be retrieved
	ErrRetrieval = errors.New("could not retrieve repository")

	// ErrExport indicates that a recipe could not be exported under the reserved channel
	ErrExport = errors.New("could not export recipe")

	// ErrLock indicates that the dependency graph of the downstream repository could not be locked
	ErrLock = errors.New("could not lock dependency graph")

	// ErrResolution indicates that some repository has no resolved requirement in the locked graph
	ErrResolution = errors.New("unresolved requirements")

	// ErrBuild indicates that the dependencies of a repository could not be installed, or that its build failed
	ErrBuild = errors.New("build failed")

	// ErrReconfigure indicates that the build configuration of a repository could not be regenerated
	ErrReconfigure = errors.New("could not reconfigure build")

	// ErrRetract indicates that a private export could not be removed from the package cache
	ErrRetract = errors.New("could not retract private export")
)
