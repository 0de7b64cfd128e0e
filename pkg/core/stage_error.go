// Copyright © 2018 One Concern

package core

import (
	"github.com/oneconcern/devsetup/pkg/errors"
)

// Stages of an orchestration run
const (
	StageCheck       = "check"
	StageClone       = "clone"
	StageExport      = "export"
	StageLock        = "lock"
	StageResolve     = "resolve"
	StageBuild       = "build"
	StageReconfigure = "reconfigure"
	StageRetract     = "retract"
)

var stageTitles = map[string]string{
	StageCheck:       "Check package cache",
	StageClone:       "Clone",
	StageExport:      "Export",
	StageLock:        "Graph-lock for",
	StageResolve:     "Resolve requirements of",
	StageBuild:       "Generate",
	StageReconfigure: "Reconfigure",
	StageRetract:     "Retract",
}

// StageError reports the stage and the repository of a failed run.
//
// A StageError matches the sentinel error of the stage (e.g. status.ErrBuild) as well as the underlying cause.
type StageError struct {
	Stage      string
	Repository string
	Err        error
}

func (e *StageError) Error() string {
	if e.Repository == "" {
		return e.Stage + ": " + e.Err.Error()
	}
	return e.Stage + " " + e.Repository + ": " + e.Err.Error()
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// AsStageError extracts the stage error from some error chain, if any
func AsStageError(err error) (*StageError, bool) {
	var serr *StageError
	if errors.As(err, &serr) {
		return serr, true
	}
	return nil, false
}
