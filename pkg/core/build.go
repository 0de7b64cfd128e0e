// Copyright © 2018 One Concern

package core

import (
	"context"

	"github.com/oneconcern/devsetup/pkg/core/status"
	"github.com/oneconcern/devsetup/pkg/model"
	"github.com/oneconcern/devsetup/pkg/toolchain"
	"go.uber.org/zap"
)

// build installs the locked dependencies of a repository, then builds and packages it
func (s *session) build(ctx context.Context, repo model.Repository) error {
	return s.step(ctx, StageBuild, status.ErrBuild, repo.Name, func(l *zap.Logger) error {
		if s.run.Settings.Clean {
			l.Info("removing build folder", zap.String("dir", repo.BuildPath))
			if err := s.fs.RemoveAll(repo.BuildPath); err != nil {
				return err
			}
		}

		// the downstream is the root of the graph: it has no reference of its own
		selfRef, _ := s.requirements.Get(repo.Name)
		if err := s.tools.Install(ctx, toolchain.InstallRequest{
			Recipe:        repo.RecipePath,
			Lockfile:      s.lock.Path,
			Reference:     selfRef,
			InstallFolder: repo.BuildPath,
		}); err != nil {
			return err
		}

		packageFolder := s.run.PackageFolder(repo)
		if err := s.tools.Build(ctx, toolchain.BuildRequest{
			Recipe:        repo.RecipePath,
			SourceFolder:  repo.RootPath,
			BuildFolder:   repo.BuildPath,
			PackageFolder: packageFolder,
		}); err != nil {
			return err
		}

		l.Info("packaged", zap.String("dir", packageFolder))
		return nil
	})
}
