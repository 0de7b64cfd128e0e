// Copyright © 2018 One Concern

package core

import (
	"context"

	"github.com/oneconcern/devsetup/pkg/core/status"
	"github.com/oneconcern/devsetup/pkg/model"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Leftovers lists the private exports present in the package cache under some channel
func (o *Orchestrator) Leftovers(ctx context.Context, channel model.Channel) ([]model.PrivateReference, error) {
	s := o.newSession(model.Run{Settings: model.Settings{Channel: channel}})
	return s.leftovers(ctx)
}

// Purge retracts all private exports left in the package cache under some channel.
//
// This recovers from a run which could not clean up after itself, e.g. when killed.
// All leftovers are attempted, and the successfully retracted ones returned.
func (o *Orchestrator) Purge(ctx context.Context, channel model.Channel) ([]model.PrivateReference, error) {
	s := o.newSession(model.Run{Settings: model.Settings{Channel: channel}})
	refs, err := s.leftovers(ctx)
	if err != nil {
		return nil, err
	}

	var merr error
	for _, ref := range refs {
		merr = multierr.Append(merr, s.retract(ctx, ref))
	}
	return s.report.Retracted, merr
}

func (s *session) leftovers(ctx context.Context) ([]model.PrivateReference, error) {
	pattern := s.run.Settings.Channel.Pattern()
	var refs []model.PrivateReference

	err := s.step(ctx, StageCheck, status.ErrPrecondition, "", func(l *zap.Logger) error {
		found, err := s.tools.Search(ctx, pattern)
		if err != nil {
			return err
		}
		for _, ref := range found {
			refs = append(refs, model.PrivateReference(ref))
		}
		l.Info("private exports in the package cache", zap.String("pattern", pattern), zap.Int("count", len(refs)))
		return nil
	})
	return refs, err
}
