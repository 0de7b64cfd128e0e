// Copyright © 2018 One Concern

// Package runner executes external commands.
//
// Commands are argument vectors: no shell ever interprets them, so names and paths containing spaces
// or shell metacharacters are passed through as-is.
//
// The working directory of a command is an explicit part of the command. The process-wide
// working directory is never changed.
package runner
