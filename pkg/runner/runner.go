// Copyright © 2018 One Concern

package runner

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/oneconcern/devsetup/pkg/runner/status"
	"go.uber.org/zap"
	"gotest.tools/v3/icmd"
)

// Command to execute
type Command struct {
	Args []string
	// Dir is the working directory of the command. When empty, the command inherits the current working directory.
	Dir string
}

// Cmd builds a command from its arguments
func Cmd(args ...string) Command {
	return Command{Args: args}
}

// In returns a copy of the command, set to run in dir
func (c Command) In(dir string) Command {
	c.Dir = dir
	return c
}

// String renders the command line, quoting arguments when needed
func (c Command) String() string {
	quoted := make([]string, 0, len(c.Args))
	for _, arg := range c.Args {
		if arg == "" || strings.ContainsAny(arg, " \t\n\"'\\$`;&|<>*?()[]{}#~") {
			arg = strconv.Quote(arg)
		}
		quoted = append(quoted, arg)
	}
	return strings.Join(quoted, " ")
}

// Runner knows how to run external commands
type Runner interface {
	// Run a command, and fails if the command exits with a non-zero status
	Run(context.Context, Command) error

	// Output runs a command and captures its standard output
	Output(context.Context, Command) (string, error)
}

// CommandFailed describes a command which did not succeed.
//
// It unwraps to status.ErrCommandFailed or status.ErrInterrupted.
type CommandFailed struct {
	Args     []string
	Dir      string
	ExitCode int
	// Output combines the standard output and error of the command
	Output string

	err error
}

func (e *CommandFailed) Error() string {
	msg := fmt.Sprintf("%s (exit code: %d)", Command{Args: e.Args}, e.ExitCode)
	if e.Dir != "" {
		msg += " in " + e.Dir
	}
	if e.err == nil {
		return msg
	}
	return msg + ": " + e.err.Error()
}

// Unwrap the reason for the failure
func (e *CommandFailed) Unwrap() error {
	return e.err
}

// New command runner
func New(opts ...Option) Runner {
	settings := defaultSettings()
	for _, apply := range opts {
		apply(&settings)
	}
	return &runner{Settings: settings}
}

type runner struct {
	Settings
}

func (r *runner) Run(ctx context.Context, cmd Command) error {
	_, err := r.exec(ctx, cmd)
	return err
}

func (r *runner) Output(ctx context.Context, cmd Command) (string, error) {
	res, err := r.exec(ctx, cmd)
	if err != nil {
		return "", err
	}
	return res.Stdout(), nil
}

func (r *runner) exec(ctx context.Context, cmd Command) (*icmd.Result, error) {
	if len(cmd.Args) == 0 {
		return nil, status.ErrEmptyCommand
	}
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	logger := r.logger.With(zap.Stringer("command", cmd), zap.String("dir", cmd.Dir))
	if err := ctx.Err(); err != nil {
		return nil, &CommandFailed{Args: cmd.Args, Dir: cmd.Dir, ExitCode: -1, err: status.ErrInterrupted.Wrap(err)}
	}

	logger.Debug("starting command")
	start := time.Now()

	res := icmd.StartCmd(icmd.Cmd{Command: cmd.Args, Dir: cmd.Dir, Stdout: r.echo, Stderr: r.echo})
	if res.Error != nil {
		logger.Error("command could not start", zap.Error(res.Error))
		return res, &CommandFailed{
			Args:     cmd.Args,
			Dir:      cmd.Dir,
			ExitCode: res.ExitCode,
			Output:   res.Combined(),
			err:      status.ErrCommandFailed.Wrap(res.Error),
		}
	}

	// descendants inheriting the output pipes must not hold the wait once the command is gone
	res.Cmd.WaitDelay = r.waitDelay

	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			_ = res.Cmd.Process.Kill()
		case <-done:
		}
	}()
	res = icmd.WaitOnCmd(0, res)
	close(done)

	elapsed := time.Since(start)
	logger = logger.With(zap.Int("exit_code", res.ExitCode), zap.Duration("elapsed", elapsed))
	if out := res.Combined(); out != "" {
		logger.Debug("command output", zap.String("output", out))
	}

	switch {
	case ctx.Err() != nil:
		logger.Warn("command interrupted", zap.Error(ctx.Err()))
		return res, &CommandFailed{
			Args:     cmd.Args,
			Dir:      cmd.Dir,
			ExitCode: interruptedExitCode(res),
			Output:   res.Combined(),
			err:      status.ErrInterrupted.Wrap(ctx.Err()),
		}
	case errors.Is(res.Error, exec.ErrWaitDelay) && res.Cmd.ProcessState.Success():
		logger.Warn("output of command held open by a background process", zap.Duration("wait_delay", r.waitDelay))
	case res.Error != nil || res.ExitCode != 0:
		cause := res.Error
		if cause == nil {
			cause = fmt.Errorf("exit status %d", res.ExitCode)
		}
		logger.Debug("command failed", zap.Error(cause))
		return res, &CommandFailed{
			Args:     cmd.Args,
			Dir:      cmd.Dir,
			ExitCode: res.ExitCode,
			Output:   res.Combined(),
			err:      status.ErrCommandFailed.Wrap(cause),
		}
	}

	logger.Debug("command succeeded")
	return res, nil
}

// interruptedExitCode is -1 when the command was killed
func interruptedExitCode(res *icmd.Result) int {
	if res.Cmd == nil || res.Cmd.ProcessState == nil {
		return -1
	}
	return res.Cmd.ProcessState.ExitCode()
}
