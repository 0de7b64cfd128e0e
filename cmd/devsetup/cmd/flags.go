// Copyright © 2018 One Concern

package cmd

import (
	"fmt"
	"time"

	"github.com/oneconcern/devsetup/pkg/dlogger"
	"github.com/oneconcern/devsetup/pkg/model"
	"github.com/oneconcern/devsetup/pkg/toolchain/cmake"
	"github.com/oneconcern/devsetup/pkg/toolchain/conan"
	"github.com/oneconcern/devsetup/pkg/toolchain/git"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type flagsT struct {
	root struct {
		logLevel  string
		logFormat string
	}
	tools struct {
		git   string
		conan string
		cmake string
	}
	run struct {
		profile        string
		packagePath    string
		workdir        string
		buildFolder    string
		recipeFolder   string
		clean          bool
		channelVersion string
		userChannel    string
		lockfile       string
		hintCase       string
		defaultBranch  string
		timeout        time.Duration
	}
	plan struct {
		format string
	}
	purge struct {
		force bool
	}
	doc struct {
		docTarget string
	}
}

var devsetupFlags = flagsT{}

const (
	formatYAML = "yaml"
	formatJSON = "json"
)

func addLogLevel(cmd *cobra.Command) string {
	logLevel := "loglevel"
	cmd.PersistentFlags().StringVar(&devsetupFlags.root.logLevel, logLevel, dlogger.LogLevelInfo,
		"The logging level. Levels by increasing order of verbosity: none, error, warn, info, debug")
	return logLevel
}

func addLogFormat(cmd *cobra.Command) string {
	logFormat := "log-format"
	cmd.PersistentFlags().StringVar(&devsetupFlags.root.logFormat, logFormat, dlogger.FormatConsole,
		"The format of log entries: console or json")
	return logFormat
}

func addToolsFlags(cmd *cobra.Command) []string {
	gitFlag, conanFlag, cmakeFlag := "tools-git", "tools-conan", "tools-cmake"
	cmd.PersistentFlags().StringVar(&devsetupFlags.tools.git, gitFlag, git.DefaultExecutable, "The git executable")
	cmd.PersistentFlags().StringVar(&devsetupFlags.tools.conan, conanFlag, conan.DefaultExecutable, "The conan executable")
	cmd.PersistentFlags().StringVar(&devsetupFlags.tools.cmake, cmakeFlag, cmake.DefaultExecutable, "The cmake executable")
	return []string{gitFlag, conanFlag, cmakeFlag}
}

func addProfileFlag(cmd *cobra.Command) string {
	profile := "profile"
	cmd.Flags().StringVar(&devsetupFlags.run.profile, profile, "",
		"The package manager profile to build against. The profile passed as an argument takes precedence")
	return profile
}

func addPackagePathFlag(cmd *cobra.Command) string {
	packagePath := "package-path"
	cmd.Flags().StringVar(&devsetupFlags.run.packagePath, packagePath, model.DefaultPackagePath,
		"The folder where built packages are installed, one subfolder per repository")
	return packagePath
}

func addWorkdirFlag(cmd *cobra.Command) string {
	workdir := "workdir"
	cmd.Flags().StringVar(&devsetupFlags.run.workdir, workdir, ".", "The folder where repositories are checked out")
	return workdir
}

func addBuildFolderFlag(cmd *cobra.Command) string {
	buildFolder := "build-folder"
	cmd.Flags().StringVar(&devsetupFlags.run.buildFolder, buildFolder, model.DefaultBuildFolder,
		"The build folder of each repository, relative to its root")
	return buildFolder
}

func addRecipeFolderFlag(cmd *cobra.Command) string {
	recipeFolder := "recipe-folder"
	cmd.Flags().StringVar(&devsetupFlags.run.recipeFolder, recipeFolder, model.DefaultRecipeFolder,
		"The folder holding the package recipe of each repository, relative to its root")
	return recipeFolder
}

func addCleanFlag(cmd *cobra.Command) string {
	clean := "clean"
	cmd.Flags().BoolVar(&devsetupFlags.run.clean, clean, false, "Remove build folders before building")
	return clean
}

func addChannelFlags(cmd *cobra.Command) []string {
	version, channel := "channel-version", "channel"
	cmd.Flags().StringVar(&devsetupFlags.run.channelVersion, version, model.DefaultChannelVersion,
		"The version under which recipes are privately exported during a run")
	cmd.Flags().StringVar(&devsetupFlags.run.userChannel, channel, "",
		`The "user/channel" under which recipes are privately exported during a run`)
	return []string{version, channel}
}

func addLockfileFlag(cmd *cobra.Command) string {
	lockfile := "lockfile"
	cmd.Flags().StringVar(&devsetupFlags.run.lockfile, lockfile, "",
		"The location of the lockfile produced for the downstream repository. Defaults to <workdir>/"+model.DefaultLockfile)
	return lockfile
}

func addHintCaseFlag(cmd *cobra.Command) string {
	hintCase := "hint-case"
	cmd.Flags().StringVar(&devsetupFlags.run.hintCase, hintCase, model.HintCasePreserve,
		fmt.Sprintf("The case of repository names in <name>_DIR build configuration hints: %s, %s or %s",
			model.HintCasePreserve, model.HintCaseUpper, model.HintCaseLower))
	return hintCase
}

func addDefaultBranchFlag(cmd *cobra.Command) string {
	defaultBranch := "default-branch"
	cmd.Flags().StringVar(&devsetupFlags.run.defaultBranch, defaultBranch, model.DefaultBranch,
		"The branch to check out for repositories configured without any")
	return defaultBranch
}

func addTimeoutFlag(cmd *cobra.Command) string {
	timeout := "timeout"
	cmd.Flags().DurationVar(&devsetupFlags.run.timeout, timeout, 0,
		`The maximum duration of every external command (e.g. "45m"). No timeout by default`)
	return timeout
}

// addRunFlags adds all the flags describing the settings of a run
func addRunFlags(cmd *cobra.Command) {
	addProfileFlag(cmd)
	addPackagePathFlag(cmd)
	addWorkdirFlag(cmd)
	addBuildFolderFlag(cmd)
	addRecipeFolderFlag(cmd)
	addCleanFlag(cmd)
	addChannelFlags(cmd)
	addLockfileFlag(cmd)
	addHintCaseFlag(cmd)
	addDefaultBranchFlag(cmd)
}

func addFormatFlag(cmd *cobra.Command) string {
	format := "format"
	cmd.Flags().StringVar(&devsetupFlags.plan.format, format, formatYAML, "The output format: yaml or json")
	return format
}

func addForceFlag(cmd *cobra.Command, usage string) string {
	force := "force"
	cmd.Flags().BoolVar(&devsetupFlags.purge.force, force, false, usage)
	return force
}

func addTargetFlag(cmd *cobra.Command) string {
	target := "target-dir"
	cmd.Flags().StringVar(&devsetupFlags.doc.docTarget, target, ".", "The target directory for the generated documentation")
	return target
}

// applyConfig sets flags not set on the command line from the environment or the config file.
//
// Precedence is: flag > environment > config file > flag default.
func applyConfig(cmd *cobra.Command) error {
	var err error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if err != nil || f.Changed || !viper.IsSet(f.Name) {
			return
		}
		if serr := cmd.Flags().Set(f.Name, viper.GetString(f.Name)); serr != nil {
			err = fmt.Errorf("invalid value for %s in config: %w", f.Name, serr)
		}
	})
	return err
}

func channel() model.Channel {
	return model.Channel{
		Version:     devsetupFlags.run.channelVersion,
		UserChannel: devsetupFlags.run.userChannel,
	}
}

func runSettings(profile string) model.Settings {
	return model.Settings{
		Profile:     profile,
		PackagePath: devsetupFlags.run.packagePath,
		Layout: model.Layout{
			Workdir:      devsetupFlags.run.workdir,
			BuildFolder:  devsetupFlags.run.buildFolder,
			RecipeFolder: devsetupFlags.run.recipeFolder,
		},
		Clean:         devsetupFlags.run.clean,
		Channel:       channel(),
		Lockfile:      devsetupFlags.run.lockfile,
		HintCase:      devsetupFlags.run.hintCase,
		DefaultBranch: devsetupFlags.run.defaultBranch,
	}
}
