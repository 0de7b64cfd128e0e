// Copyright © 2018 One Concern

// Package git retrieves repositories with the git command line.
package git

import (
	"context"

	"github.com/oneconcern/devsetup/pkg/runner"
	"github.com/oneconcern/devsetup/pkg/toolchain"
)

// DefaultExecutable is the name of the git executable
const DefaultExecutable = "git"

var _ toolchain.Retriever = &Git{}

// Git drives the git command line
type Git struct {
	runner     runner.Runner
	executable string
}

// New git retriever. An empty executable defaults to "git", looked up in $PATH.
func New(r runner.Runner, executable string) *Git {
	if executable == "" {
		executable = DefaultExecutable
	}
	return &Git{runner: r, executable: executable}
}

// Retrieve clones a branch of some origin, with all its submodules
func (g *Git) Retrieve(ctx context.Context, origin, branch, dest string) error {
	return g.runner.Run(ctx, runner.Cmd(g.executable,
		"clone", "--recurse-submodules",
		"--branch", branch,
		"--", origin, dest,
	))
}
