// Copyright © 2018 One Concern

package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// appFs is the file system used by the CLI. It may be patched for tests.
var appFs = afero.NewOsFs()

var configSet = &cobra.Command{
	Aliases: []string{"create"},
	Use:     "set",
	Short:   "Create a local config file",
	Long: `Creates or updates a local config file, holding flags that do not change across runs.

Only the flags set on the command line are updated. Other settings already present in the config file are kept.

By default, this configuration file will be placed in ` + configFileLocation(false) + `.

Use the ` + envConfigLocation + ` environment variable to change this default target.
`,
	Example: `# Always build against the "gcc9-release" profile and install packages in /opt/sdk
% devsetup config set --profile gcc9-release --package-path /opt/sdk
config file created in /home/me/.devsetup/devsetup.yaml

# Generate config in some non-default location
% ` + envConfigLocation + `=~/.config/devsetup.yaml devsetup config set --hint-case upper
config file created in /home/me/.config/devsetup.yaml
`,
	Run: func(cmd *cobra.Command, args []string) {
		localConfig := CLIConfig{}
		if config != nil {
			localConfig = *config
		}
		cmd.Flags().Visit(func(f *pflag.Flag) {
			localConfig.set(f.Name, f.Value.String())
		})

		file := configFileLocation(true)
		if ext := filepath.Ext(file); ext != ".yaml" {
			infoLogger.Printf("warning: the generated config file will contain a yaml document, but the file extension is %q", ext)
		}

		o, err := localConfig.MarshalConfig()
		if err != nil {
			wrapFatalln("could not serialize config to yaml", err)
			return
		}

		err = appFs.MkdirAll(filepath.Dir(file), 0o700)
		if err != nil && !os.IsExist(err) {
			wrapFatalln("could not create directory to hold config "+filepath.Dir(file), err)
			return
		}

		err = afero.WriteFile(appFs, file, o, 0o600)
		if err != nil {
			wrapFatalln("error writing config file "+file, err)
			return
		}

		infoLogger.Printf("config file created in %s", file)
	},
}

func (c *CLIConfig) set(flag, value string) {
	switch flag {
	case "profile":
		c.Profile = value
	case "package-path":
		c.PackagePath = value
	case "workdir":
		c.Workdir = value
	case "build-folder":
		c.BuildFolder = value
	case "recipe-folder":
		c.RecipeFolder = value
	case "channel-version":
		c.ChannelVersion = value
	case "channel":
		c.Channel = value
	case "hint-case":
		c.HintCase = value
	case "default-branch":
		c.DefaultBranch = value
	case "loglevel":
		c.LogLevel = value
	case "log-format":
		c.LogFormat = value
	case "tools-git":
		c.Git = value
	case "tools-conan":
		c.Conan = value
	case "tools-cmake":
		c.CMake = value
	}
}

func init() {
	addProfileFlag(configSet)
	addPackagePathFlag(configSet)
	addWorkdirFlag(configSet)
	addBuildFolderFlag(configSet)
	addRecipeFolderFlag(configSet)
	addChannelFlags(configSet)
	addHintCaseFlag(configSet)
	addDefaultBranchFlag(configSet)
	configCmd.AddCommand(configSet)
}
