// Copyright © 2018 One Concern

package core

import (
	"context"

	"github.com/oneconcern/devsetup/pkg/core/status"
	"github.com/oneconcern/devsetup/pkg/model"
	"go.uber.org/zap"
)

// export the recipe of a repository under the reserved channel.
//
// On success, the private reference is recorded as a lease to be retracted at the end of the run.
func (s *session) export(ctx context.Context, repo model.Repository) error {
	channel := s.run.Settings.Channel
	ref := channel.Reference(repo.Name)

	return s.step(ctx, StageExport, status.ErrExport, repo.Name, func(l *zap.Logger) error {
		if err := s.tools.Export(ctx, repo.RecipePath, channel.ExportArg()); err != nil {
			return err
		}
		s.leases = append(s.leases, ref)
		s.report.exported(ref)
		l.Info("exported recipe", zap.Stringer("reference", ref))
		return nil
	})
}

// retract a private export from the package cache
func (s *session) retract(ctx context.Context, ref model.PrivateReference) error {
	return s.step(ctx, StageRetract, status.ErrRetract, ref.String(), func(l *zap.Logger) error {
		if err := s.tools.Remove(ctx, ref.String()); err != nil {
			return err
		}
		s.report.retracted(ref)
		l.Info("retracted private export")
		return nil
	})
}
