// Copyright © 2018 One Concern

package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/oneconcern/devsetup/pkg/core/status"
	"github.com/oneconcern/devsetup/pkg/model"
	"go.uber.org/zap"
)

// lockGraph locks the dependency graph of the downstream repository
func (s *session) lockGraph(ctx context.Context) error {
	downstream := s.run.Downstream
	lockfile := s.run.Settings.Lockfile

	return s.step(ctx, StageLock, status.ErrLock, downstream.Name, func(l *zap.Logger) error {
		if err := s.tools.Lock(ctx, downstream.RecipePath, s.run.Settings.Profile, lockfile); err != nil {
			return err
		}
		s.lock = model.LockArtifact{Path: lockfile}
		l.Info("locked dependency graph", zap.Stringer("lockfile", s.lock))
		return nil
	})
}

// resolveRequirements maps every upstream to the reference resolved in the locked graph of the downstream
func (s *session) resolveRequirements(ctx context.Context) error {
	downstream := s.run.Downstream

	return s.step(ctx, StageResolve, status.ErrResolution, downstream.Name, func(l *zap.Logger) error {
		listing, err := s.tools.Graph(ctx, downstream.RecipePath, s.lock.Path)
		if err != nil {
			return err
		}

		reqs, err := model.ParseRequirements(listing, downstream.Name, s.run.Settings.Channel)
		if err != nil {
			return err
		}
		if missing := reqs.Missing(s.run.Upstreams); len(missing) > 0 {
			return fmt.Errorf("the locked graph of %s does not require %s", downstream.Name, strings.Join(missing, ", "))
		}

		s.requirements = reqs
		s.report.resolved(reqs)
		l.Info("resolved requirements", zap.Any("requirements", reqs))
		return nil
	})
}
