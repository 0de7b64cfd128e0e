// Package dlogger exposes a simple zap logger, with log levels
package dlogger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// LogLevelInfo sets the log level to info
	LogLevelInfo = "info"

	// LogLevelDebug sets the log level to debug
	LogLevelDebug = "debug"

	// LogLevelNone sets logger to no logging
	LogLevelNone = "none"

	// FormatConsole renders human readable log lines
	FormatConsole = "console"

	// FormatJSON renders log lines as JSON documents
	FormatJSON = "json"
)

// GetLogger returns a zap logger with the specified level and format.
//
// An empty format defaults to console output.
func GetLogger(logLevel, format string) (*zap.Logger, error) {
	if logLevel == LogLevelNone {
		return zap.NewNop(), nil
	}

	var zapConfig zap.Config
	switch format {
	case FormatJSON:
		zapConfig = zap.NewProductionConfig()
	case FormatConsole, "":
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.Development = false
		zapConfig.DisableStacktrace = true
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		return nil, fmt.Errorf("unsupported log format %q", format)
	}

	var lvl zapcore.Level
	err := lvl.UnmarshalText([]byte(logLevel))
	if err != nil {
		return nil, err
	}
	zapConfig.Level = zap.NewAtomicLevelAt(lvl)
	logger, err := zapConfig.Build()
	if err != nil {
		return nil, err
	}
	return logger, nil
}

// MustGetLogger returns a zap logger with the specified level or panics
func MustGetLogger(logLevel, format string) *zap.Logger {
	l, err := GetLogger(logLevel, format)
	if err != nil {
		panic(err)
	}
	return l
}
