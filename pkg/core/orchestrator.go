// Copyright © 2018 One Concern

package core

import (
	"context"
	"time"

	"github.com/oneconcern/devsetup/pkg/errors"
	"github.com/oneconcern/devsetup/pkg/model"
	"github.com/oneconcern/devsetup/pkg/toolchain"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Orchestrator builds a set of interdependent repositories against each other
type Orchestrator struct {
	Settings
	tools toolchain.Toolchain
}

// New orchestrator, driving some toolchain
func New(tools toolchain.Toolchain, opts ...Option) *Orchestrator {
	settings := defaultSettings()
	for _, apply := range opts {
		apply(&settings)
	}
	return &Orchestrator{
		Settings: settings,
		tools:    tools,
	}
}

// session holds the state of a single run
type session struct {
	*Orchestrator
	run    model.Run
	l      *zap.Logger
	report *Report

	leases       []model.PrivateReference
	lock         model.LockArtifact
	requirements model.RequirementMap
}

func (o *Orchestrator) newSession(run model.Run) *session {
	return &session{
		Orchestrator: o,
		run:          run,
		l:            o.l.With(zap.String("run", run.ID)),
		report:       newReport(run.ID),
	}
}

// Run the orchestration:
//
//  1. check that the package cache holds no private export
//  2. retrieve all repositories: upstreams first, then the downstream
//  3. export the recipes of upstreams under the reserved channel
//  4. lock the graph of the downstream and resolve its requirements
//  5. build all repositories, in order
//  6. reconfigure all repositories against the build folders of their upstreams
//
// All private exports made during the run are retracted before returning, whatever the outcome.
// A retraction failure is returned only if the run otherwise succeeded.
func (o *Orchestrator) Run(ctx context.Context, run model.Run) (report *Report, err error) {
	s := o.newSession(run)
	report = s.report
	defer report.finish()

	s.l.Info("starting run",
		zap.Int("upstreams", len(run.Upstreams)),
		zap.String("downstream", run.Downstream.Name),
		zap.String("profile", run.Settings.Profile),
	)

	if err = s.checkSystem(ctx); err != nil {
		return report, err
	}

	for _, repo := range run.All() {
		if err = s.ensureRetrieved(ctx, repo); err != nil {
			return report, err
		}
	}

	// from now on, private exports may exist and must be retracted, even when interrupted
	defer func() {
		rerr := s.retractAll(context.Background())
		if rerr == nil {
			return
		}
		if err == nil {
			err = rerr
			return
		}
		s.l.Warn("retraction failed after a failed run", zap.Error(rerr))
	}()

	for _, repo := range run.Upstreams {
		if err = s.export(ctx, repo); err != nil {
			return report, err
		}
	}

	if err = s.lockGraph(ctx); err != nil {
		return report, err
	}

	if err = s.resolveRequirements(ctx); err != nil {
		return report, err
	}

	for _, repo := range run.All() {
		if err = s.build(ctx, repo); err != nil {
			return report, err
		}
	}

	for _, repo := range run.All() {
		if err = s.reconfigure(ctx, repo, run.Predecessors(repo)); err != nil {
			return report, err
		}
	}

	s.l.Info("run completed")
	return report, nil
}

// step runs some action for a stage, then records its outcome.
//
// The error returned by the action is wrapped as a StageError matching the sentinel for the stage.
func (s *session) step(ctx context.Context, stage string, sentinel *errors.Error, repo string, action func(*zap.Logger) error) error {
	l := s.l.With(zap.String("stage", stage))
	if repo != "" {
		l = l.With(zap.String("repo", repo))
	}
	section := stageTitles[stage]
	if repo != "" {
		section += " " + repo
	}
	printSection(s.out, section)

	start := time.Now()
	err := ctx.Err()
	if err == nil {
		err = action(l)
	}
	elapsed := time.Since(start)

	if err != nil {
		s.report.add(Step{Stage: stage, Repository: repo, Status: StepFailed, Elapsed: elapsed})
		l.Error("stage failed", zap.Duration("elapsed", elapsed), zap.Error(err))
		return &StageError{Stage: stage, Repository: repo, Err: sentinel.Wrap(err)}
	}

	s.report.add(Step{Stage: stage, Repository: repo, Status: StepOK, Elapsed: elapsed})
	l.Debug("stage completed", zap.Duration("elapsed", elapsed))
	return nil
}

func (s *session) skip(stage, repo string) {
	s.report.add(Step{Stage: stage, Repository: repo, Status: StepSkipped})
}

// retractAll removes every private export leased during the run, in the order of export.
//
// All leases are attempted, and all failures reported.
func (s *session) retractAll(ctx context.Context) error {
	var merr error
	for _, ref := range s.leases {
		merr = multierr.Append(merr, s.retract(ctx, ref))
	}
	return merr
}
