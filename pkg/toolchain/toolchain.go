// Copyright © 2018 One Concern

// Package toolchain declares the external tools orchestrated by devsetup.
//
// Implementations:
//   - git: retrieves source repositories
//   - conan: the package manager (exports, locks, installs, builds and packages recipes)
//   - cmake: the build configuration generator
package toolchain

import "context"

// Retriever knows how to retrieve the sources of a repository
type Retriever interface {
	// Retrieve clones origin at branch into dest, including nested submodules
	Retrieve(ctx context.Context, origin, branch, dest string) error
}

// InstallRequest describes the dependencies to materialize for some recipe
type InstallRequest struct {
	Recipe   string
	Lockfile string
	// Reference of the recipe itself in the locked graph. Empty when the recipe is the root of the graph.
	Reference     string
	InstallFolder string
}

// BuildRequest describes how to build and package a repository
type BuildRequest struct {
	Recipe        string
	SourceFolder  string
	BuildFolder   string
	PackageFolder string
}

// PackageManager knows how to export, lock, install and build package recipes
type PackageManager interface {
	// Export the recipe under reference, in the local package cache
	Export(ctx context.Context, recipe, reference string) error

	// Remove a reference from the local package cache
	Remove(ctx context.Context, reference string) error

	// Lock the dependency graph of recipe for some profile into lockfile
	Lock(ctx context.Context, recipe, profile, lockfile string) error

	// Graph returns the textual listing of the locked graph of recipe
	Graph(ctx context.Context, recipe, lockfile string) (string, error)

	// Install the dependencies of a recipe
	Install(ctx context.Context, req InstallRequest) error

	// Build and package a recipe
	Build(ctx context.Context, req BuildRequest) error

	// Search the local package cache for references matching pattern
	Search(ctx context.Context, pattern string) ([]string, error)
}

// Configurer knows how to generate the native build configuration of a repository
type Configurer interface {
	// Configure the build folder of source, with some location hints (variable name -> path)
	Configure(ctx context.Context, sourceFolder, buildFolder string, hints map[string]string) error
}

// Toolchain bundles all the tools needed by an orchestration run
type Toolchain struct {
	Retriever
	PackageManager
	Configurer
}
