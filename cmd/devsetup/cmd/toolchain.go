// Copyright © 2018 One Concern

package cmd

import (
	"os"
	"sync"

	"github.com/oneconcern/devsetup/pkg/core"
	"github.com/oneconcern/devsetup/pkg/dlogger"
	"github.com/oneconcern/devsetup/pkg/runner"
	"github.com/oneconcern/devsetup/pkg/toolchain"
	"github.com/oneconcern/devsetup/pkg/toolchain/cmake"
	"github.com/oneconcern/devsetup/pkg/toolchain/conan"
	"github.com/oneconcern/devsetup/pkg/toolchain/git"
	"go.uber.org/zap"
)

var (
	onceLogger sync.Once
	logger     *zap.Logger

	// newToolchain builds the toolchain driven by the orchestrator. It may be patched for tests.
	newToolchain = defaultToolchain
)

func getLogger() *zap.Logger {
	onceLogger.Do(func() {
		var err error
		logger, err = dlogger.GetLogger(devsetupFlags.root.logLevel, devsetupFlags.root.logFormat)
		if err != nil {
			wrapFatalln("failed to set log level", err)
			logger = zap.NewNop()
		}
	})
	return logger
}

func defaultToolchain(l *zap.Logger) toolchain.Toolchain {
	r := runner.New(
		runner.Logger(l),
		runner.Timeout(devsetupFlags.run.timeout),
		runner.Echo(os.Stdout),
	)
	return toolchain.Toolchain{
		Retriever:      git.New(r, devsetupFlags.tools.git),
		PackageManager: conan.New(r, devsetupFlags.tools.conan),
		Configurer:     cmake.New(r, devsetupFlags.tools.cmake),
	}
}

func newOrchestrator() *core.Orchestrator {
	l := getLogger()
	return core.New(newToolchain(l),
		core.WithLogger(l),
		core.WithFs(appFs),
		core.WithOutput(os.Stdout),
	)
}
