// Copyright © 2018 One Concern

package core

import (
	"context"

	"github.com/oneconcern/devsetup/pkg/core/status"
	"github.com/oneconcern/devsetup/pkg/model"
	"go.uber.org/zap"
)

// reconfigure regenerates the build configuration of a repository, so it locates
// the build folders of its peers instead of installed packages.
//
// The repository is never hinted to itself.
func (s *session) reconfigure(ctx context.Context, repo model.Repository, peers []model.Repository) error {
	hints := s.run.Hints(repo, peers)

	return s.step(ctx, StageReconfigure, status.ErrReconfigure, repo.Name, func(l *zap.Logger) error {
		l.Info("reconfiguring build", zap.Any("hints", hints))
		return s.tools.Configure(ctx, repo.RootPath, repo.BuildPath, hints)
	})
}
