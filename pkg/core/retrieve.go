// Copyright © 2018 One Concern

package core

import (
	"context"
	"fmt"
	"os"

	"github.com/oneconcern/devsetup/pkg/core/status"
	"github.com/oneconcern/devsetup/pkg/model"
	"go.uber.org/zap"
)

// ensureRetrieved clones a repository, unless its root folder is already present.
//
// A failed clone leaves no root folder behind.
func (s *session) ensureRetrieved(ctx context.Context, repo model.Repository) error {
	info, err := s.fs.Stat(repo.RootPath)
	switch {
	case err == nil && info.IsDir():
		s.l.Info("repository already present, skipping retrieval",
			zap.String("repo", repo.Name),
			zap.String("dir", repo.RootPath),
		)
		s.skip(StageClone, repo.Name)
		return nil

	case err == nil:
		err = fmt.Errorf("%s exists and is not a directory", repo.RootPath)

	case os.IsNotExist(err):
		return s.step(ctx, StageClone, status.ErrRetrieval, repo.Name, func(l *zap.Logger) error {
			l.Info("cloning repository",
				zap.String("origin", repo.Origin),
				zap.String("branch", repo.Branch),
				zap.String("dir", repo.RootPath),
			)
			if err := s.tools.Retrieve(ctx, repo.Origin, repo.Branch, repo.RootPath); err != nil {
				// the root folder was absent: whatever a killed clone left there is partial
				if rerr := s.fs.RemoveAll(repo.RootPath); rerr != nil {
					l.Warn("could not remove partial clone", zap.String("dir", repo.RootPath), zap.Error(rerr))
				}
				return err
			}
			return nil
		})
	}

	s.skip(StageClone, repo.Name)
	return &StageError{Stage: StageClone, Repository: repo.Name, Err: status.ErrRetrieval.Wrap(err)}
}
