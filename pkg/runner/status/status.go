// Copyright © 2018 One Concern

// Package status exports errors produced by the runner package.
package status

import "github.com/oneconcern/devsetup/pkg/errors"

var (
	// ErrCommandFailed indicates that an external command could not be started or exited with a non-zero code
	ErrCommandFailed = errors.New("command failed")

	// ErrInterrupted indicates that an external command was interrupted before completion
	ErrInterrupted = errors.New("command interrupted")

	// ErrEmptyCommand indicates an attempt to run an empty command line
	ErrEmptyCommand = errors.New("empty command")
)
