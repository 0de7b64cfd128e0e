// Copyright © 2018 One Concern

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/oneconcern/devsetup/pkg/core"
	"github.com/oneconcern/devsetup/pkg/errors"
	"github.com/oneconcern/devsetup/pkg/runner"
)

var failureColor = color.New(color.FgRed, color.Bold)

// printFailure writes a diagnostic section identifying the failed stage and repository,
// followed by the captured output of the failed tool.
func printFailure(w io.Writer, err error) {
	title := "Failed"
	if serr, ok := core.AsStageError(err); ok {
		title = strings.TrimSpace(fmt.Sprintf("Failed: %s %s", serr.Stage, serr.Repository))
	}
	_, _ = failureColor.Fprintf(w, "\n###\n### %s\n###\n", title)

	var leftover *core.LeftoverError
	if errors.As(err, &leftover) {
		_, _ = fmt.Fprintln(w, "Aborting: private exports already present in the package cache:")
		for _, ref := range leftover.References {
			_, _ = fmt.Fprintln(w, "  "+ref)
		}
		_, _ = fmt.Fprintln(w, "Run 'devsetup purge --force' to remove them")
		return
	}

	var failed *runner.CommandFailed
	if errors.As(err, &failed) {
		_, _ = fmt.Fprintf(w, "$ %s\n", runner.Command{Args: failed.Args, Dir: failed.Dir})
		if failed.Output != "" {
			_, _ = fmt.Fprint(w, failed.Output)
			if !strings.HasSuffix(failed.Output, "\n") {
				_, _ = fmt.Fprintln(w)
			}
		}
	}
	_, _ = fmt.Fprintln(w, err)
}

// exitWithFailure reports a failed command and exits, with status 130 when the operator interrupted it
func exitWithFailure(name string, err error) {
	printFailure(os.Stderr, err)
	if errors.Is(err, context.Canceled) {
		wrapFatalWithCodef(130, "%s interrupted", name)
		return
	}
	wrapFatalWithCodef(1, "%s failed", name)
}
