// Copyright © 2018 One Concern

package runner

import (
	"io"
	"time"

	"go.uber.org/zap"
)

const defaultWaitDelay = 500 * time.Millisecond

// Option sets options for the command runner
type Option func(*Settings)

// Settings defines the settings of the command runner
type Settings struct {
	logger  *zap.Logger
	timeout time.Duration
	echo    io.Writer

	waitDelay time.Duration
}

// Logger sets a logger for the runner. It defaults to a no-op logger.
func Logger(l *zap.Logger) Option {
	return func(s *Settings) {
		if l == nil {
			return
		}
		s.logger = l
	}
}

// Timeout bounds the execution time of every command. There is no timeout by default.
func Timeout(timeout time.Duration) Option {
	return func(s *Settings) {
		s.timeout = timeout
	}
}

// Echo copies the output of commands to w as they run. The output is captured in any case.
func Echo(w io.Writer) Option {
	return func(s *Settings) {
		s.echo = w
	}
}

// WaitDelay bounds the time spent collecting the output of a command once it has exited or has been killed,
// while some of its descendants still hold the output open. It defaults to 500ms.
func WaitDelay(delay time.Duration) Option {
	return func(s *Settings) {
		if delay <= 0 {
			return
		}
		s.waitDelay = delay
	}
}

func defaultSettings() Settings {
	return Settings{
		logger:    zap.NewNop(),
		waitDelay: defaultWaitDelay,
	}
}
