// Copyright © 2018 One Concern

// Package cmake generates native build configurations with the cmake command line.
package cmake

import (
	"context"
	"sort"

	"github.com/oneconcern/devsetup/pkg/runner"
	"github.com/oneconcern/devsetup/pkg/toolchain"
)

// DefaultExecutable is the name of the cmake executable
const DefaultExecutable = "cmake"

var _ toolchain.Configurer = &CMake{}

// CMake drives the cmake command line
type CMake struct {
	runner     runner.Runner
	executable string
}

// New cmake configurer. An empty executable defaults to "cmake", looked up in $PATH.
func New(r runner.Runner, executable string) *CMake {
	if executable == "" {
		executable = DefaultExecutable
	}
	return &CMake{runner: r, executable: executable}
}

// Configure regenerates the build system in buildFolder, passing hints as cache entries.
//
// Hints are passed in lexical order of their names.
func (c *CMake) Configure(ctx context.Context, sourceFolder, buildFolder string, hints map[string]string) error {
	keys := make([]string, 0, len(hints))
	for k := range hints {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	args := make([]string, 0, 5+len(keys))
	args = append(args, c.executable, "-S", sourceFolder, "-B", buildFolder)
	for _, k := range keys {
		args = append(args, "-D"+k+"="+hints[k])
	}
	return c.runner.Run(ctx, runner.Cmd(args...))
}
