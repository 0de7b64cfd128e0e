// Copyright © 2018 One Concern

package cmd

import (
	"context"
	"os"

	"github.com/oneconcern/devsetup/pkg/model"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var setupCmd = &cobra.Command{
	Use:   "setup <repositories file> [profile]",
	Short: "Set up a development folder with several related repositories",
	Long: `Retrieves, builds and packages a set of related repositories, each against freshly built versions of the others.

The repositories file is a json (or yaml) document listing the upstream repositories in build order
and the downstream repository which depends on them:

  {
    "dependencies": [
      "git@github.com:org/pkga.git",
      ["git@github.com:org/pkgb.git", "feature/x"]
    ],
    "downstream": "git@github.com:org/app.git"
  }

Each repository is either an url, or an [url, branch] pair. Repositories already present in the work
folder are not retrieved again.

The run fails before doing anything if the package cache already holds private exports,
e.g. left over by some interrupted run. Use "devsetup purge" to remove them.
`,
	Example: `% devsetup setup repositories.json gcc9-release --package-path /opt/sdk

% devsetup setup repositories.json --profile default --clean --hint-case upper`,
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		profile := devsetupFlags.run.profile
		if len(args) > 1 {
			profile = args[1]
		}

		run, err := loadRun(args[0], profile)
		if err != nil {
			wrapFatalln("invalid setup", err)
			return
		}

		ctx, cancel := contextWithSignals(context.Background())
		defer cancel()

		l := getLogger()
		l.Info("setting up",
			zap.String("run", run.ID),
			zap.String("workdir", run.Settings.Layout.Workdir),
			zap.String("package_path", run.Settings.PackagePath),
		)

		report, err := newOrchestrator().Run(ctx, run)
		if report != nil {
			_ = report.Render(os.Stdout)
		}
		if err != nil {
			exitWithFailure("setup", err)
			return
		}
	},
}

// loadRun reads a repositories file and builds the corresponding run
func loadRun(file, profile string) (model.Run, error) {
	data, err := afero.ReadFile(appFs, file)
	if err != nil {
		return model.Run{}, err
	}

	cfg, err := model.ParseConfig(data)
	if err != nil {
		return model.Run{}, err
	}

	return model.NewRun(cfg, runSettings(profile))
}

func init() {
	addRunFlags(setupCmd)
	addTimeoutFlag(setupCmd)
	rootCmd.AddCommand(setupCmd)
}
