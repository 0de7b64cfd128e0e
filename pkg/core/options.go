// Copyright © 2018 One Concern

package core

import (
	"io"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Option sets options for the orchestrator
type Option func(*Settings)

// Settings defines the settings of the orchestrator
type Settings struct {
	l   *zap.Logger
	fs  afero.Fs
	out io.Writer
}

// WithLogger sets a logger for the orchestrator. The default is to log nothing.
func WithLogger(l *zap.Logger) Option {
	return func(s *Settings) {
		if l != nil {
			s.l = l
		}
	}
}

// WithFs sets the file system used to probe and clean up repositories. It defaults to the OS file system.
func WithFs(fs afero.Fs) Option {
	return func(s *Settings) {
		if fs != nil {
			s.fs = fs
		}
	}
}

// WithOutput sets the writer for progress sections. The default is to discard progress.
func WithOutput(w io.Writer) Option {
	return func(s *Settings) {
		if w != nil {
			s.out = w
		}
	}
}

func defaultSettings() Settings {
	return Settings{
		l:   zap.NewNop(),
		fs:  afero.NewOsFs(),
		out: io.Discard,
	}
}
