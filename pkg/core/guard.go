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

// LeftoverError lists the private exports found in the package cache before a run
type LeftoverError struct {
	Pattern    string
	References []string
}

func (e *LeftoverError) Error() string {
	return fmt.Sprintf("found %d reference(s) matching %q: %s", len(e.References), e.Pattern, strings.Join(e.References, ", "))
}

// checkSystem ensures that no private export is present in the package cache.
//
// Private exports left over by some previous run would otherwise be silently picked up by the build.
func (s *session) checkSystem(ctx context.Context) error {
	pattern := s.run.Settings.Channel.Pattern()
	return s.step(ctx, StageCheck, status.ErrPrecondition, "", func(l *zap.Logger) error {
		refs, err := s.tools.Search(ctx, pattern)
		if err != nil {
			return err
		}
		if len(refs) > 0 {
			return &LeftoverError{Pattern: pattern, References: refs}
		}
		l.Debug("package cache is clean", zap.String("pattern", pattern))
		return nil
	})
}

// Check that the package cache holds no private export under some channel
func (o *Orchestrator) Check(ctx context.Context, channel model.Channel) error {
	return o.newSession(model.Run{Settings: model.Settings{Channel: channel}}).checkSystem(ctx)
}
