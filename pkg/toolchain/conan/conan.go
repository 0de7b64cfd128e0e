// Copyright © 2018 One Concern

// Package conan drives the conan (1.x) package manager command line.
package conan

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/oneconcern/devsetup/pkg/runner"
	"github.com/oneconcern/devsetup/pkg/toolchain"
)

// DefaultExecutable is the name of the conan executable
const DefaultExecutable = "conan"

var _ toolchain.PackageManager = &Conan{}

// Conan drives the conan command line
type Conan struct {
	runner     runner.Runner
	executable string
}

// New conan package manager. An empty executable defaults to "conan", looked up in $PATH.
func New(r runner.Runner, executable string) *Conan {
	if executable == "" {
		executable = DefaultExecutable
	}
	return &Conan{runner: r, executable: executable}
}

func (c *Conan) cmd(args ...string) runner.Command {
	return runner.Cmd(append([]string{c.executable}, args...)...)
}

// Export a recipe to the local cache
func (c *Conan) Export(ctx context.Context, recipe, reference string) error {
	return c.runner.Run(ctx, c.cmd("export", recipe, reference))
}

// Remove a recipe and its packages from the local cache, without confirmation
func (c *Conan) Remove(ctx context.Context, reference string) error {
	return c.runner.Run(ctx, c.cmd("remove", "--force", reference))
}

// Lock the graph of a recipe
func (c *Conan) Lock(ctx context.Context, recipe, profile, lockfile string) error {
	return c.runner.Run(ctx, c.cmd("graph", "lock", recipe,
		"--profile="+profile,
		"--lockfile="+lockfile,
	))
}

// Graph lists the references of the locked graph of a recipe, one per line
func (c *Conan) Graph(ctx context.Context, recipe, lockfile string) (string, error) {
	return c.runner.Output(ctx, c.cmd("info", recipe,
		"--lockfile="+lockfile,
		"--only=None",
	))
}

// Install the dependencies of a recipe into its install folder
func (c *Conan) Install(ctx context.Context, req toolchain.InstallRequest) error {
	args := []string{"install", req.Recipe}
	if req.Reference != "" {
		args = append(args, req.Reference)
	}
	args = append(args,
		"--install-folder="+req.InstallFolder,
		"--lockfile="+req.Lockfile,
	)
	return c.runner.Run(ctx, c.cmd(args...))
}

// Build a recipe then install the result in the package folder
func (c *Conan) Build(ctx context.Context, req toolchain.BuildRequest) error {
	return c.runner.Run(ctx, c.cmd("build", req.Recipe,
		"--source-folder="+req.SourceFolder,
		"--build-folder="+req.BuildFolder,
		"--package-folder="+req.PackageFolder,
	))
}

// Search the local cache for recipes matching pattern
func (c *Conan) Search(ctx context.Context, pattern string) ([]string, error) {
	out, err := c.runner.Output(ctx, c.cmd("search", pattern, "--raw"))
	if err != nil {
		return nil, err
	}
	var refs []string
	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			refs = append(refs, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading search results for %s: %w", pattern, err)
	}
	return refs, nil
}
