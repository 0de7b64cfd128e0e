// Copyright © 2018 One Concern

// Package mockrunner provides a fake command runner which records commands instead of executing them.
package mockrunner

import (
	"context"
	"sync"

	"github.com/oneconcern/devsetup/pkg/runner"
)

var _ runner.Runner = &Runner{}

// Runner records the commands it is asked to run.
//
// RunFunc and OutputFunc, when set, determine the outcome of each command.
type Runner struct {
	RunFunc    func(context.Context, runner.Command) error
	OutputFunc func(context.Context, runner.Command) (string, error)

	mx       sync.Mutex
	commands []runner.Command
}

// New fake runner that runs nothing and always succeeds
func New() *Runner {
	return &Runner{}
}

func (r *Runner) record(cmd runner.Command) {
	r.mx.Lock()
	defer r.mx.Unlock()
	r.commands = append(r.commands, cmd)
}

// Run records a command
func (r *Runner) Run(ctx context.Context, cmd runner.Command) error {
	r.record(cmd)
	if r.RunFunc != nil {
		return r.RunFunc(ctx, cmd)
	}
	return nil
}

// Output records a command and returns the output produced by OutputFunc
func (r *Runner) Output(ctx context.Context, cmd runner.Command) (string, error) {
	r.record(cmd)
	if r.OutputFunc != nil {
		return r.OutputFunc(ctx, cmd)
	}
	return "", nil
}

// Commands returns all recorded commands, in order
func (r *Runner) Commands() []runner.Command {
	r.mx.Lock()
	defer r.mx.Unlock()
	return append([]runner.Command(nil), r.commands...)
}

// Last returns the last recorded command
func (r *Runner) Last() runner.Command {
	r.mx.Lock()
	defer r.mx.Unlock()
	if len(r.commands) == 0 {
		return runner.Command{}
	}
	return r.commands[len(r.commands)-1]
}
