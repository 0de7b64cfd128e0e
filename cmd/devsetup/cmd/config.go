// Copyright © 2018 One Concern

package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

// CLIConfig describes the CLI configuration.
//
// Keys are the names of the flags they provide a default for.
type CLIConfig struct {
	Profile        string `json:"profile,omitempty" yaml:"profile,omitempty" mapstructure:"profile"`
	PackagePath    string `json:"package-path,omitempty" yaml:"package-path,omitempty" mapstructure:"package-path"`
	Workdir        string `json:"workdir,omitempty" yaml:"workdir,omitempty" mapstructure:"workdir"`
	BuildFolder    string `json:"build-folder,omitempty" yaml:"build-folder,omitempty" mapstructure:"build-folder"`
	RecipeFolder   string `json:"recipe-folder,omitempty" yaml:"recipe-folder,omitempty" mapstructure:"recipe-folder"`
	ChannelVersion string `json:"channel-version,omitempty" yaml:"channel-version,omitempty" mapstructure:"channel-version"`
	Channel        string `json:"channel,omitempty" yaml:"channel,omitempty" mapstructure:"channel"`
	HintCase       string `json:"hint-case,omitempty" yaml:"hint-case,omitempty" mapstructure:"hint-case"`
	DefaultBranch  string `json:"default-branch,omitempty" yaml:"default-branch,omitempty" mapstructure:"default-branch"`
	LogLevel       string `json:"loglevel,omitempty" yaml:"loglevel,omitempty" mapstructure:"loglevel"`
	LogFormat      string `json:"log-format,omitempty" yaml:"log-format,omitempty" mapstructure:"log-format"`
	Git            string `json:"tools-git,omitempty" yaml:"tools-git,omitempty" mapstructure:"tools-git"`
	Conan          string `json:"tools-conan,omitempty" yaml:"tools-conan,omitempty" mapstructure:"tools-conan"`
	CMake          string `json:"tools-cmake,omitempty" yaml:"tools-cmake,omitempty" mapstructure:"tools-cmake"`
}

func newConfig() (*CLIConfig, error) {
	var config CLIConfig
	err := viper.Unmarshal(&config)
	if err != nil {
		return nil, err
	}
	return &config, nil
}

// MarshalConfig serializes the config as yaml
func (c *CLIConfig) MarshalConfig() ([]byte, error) {
	return yaml.Marshal(c)
}

// configFileLocation yields the location of the local config file.
//
// When expandEnv is false, the location is rendered unexpanded, for documentation purposes.
func configFileLocation(expandEnv bool) string {
	if location := os.Getenv(envConfigLocation); location != "" {
		return location
	}
	if !expandEnv {
		return filepath.Join("$HOME", ".devsetup", configName+".yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".devsetup", configName+".yaml")
}

// configCmd represents the config related commands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Commands to manage a config",
	Long: `Commands to manage devsetup CLI config.

Configuration for devsetup is the common set of flags that do not change across runs,
such as the profile to build against or the location of packages.

Every setting may also be passed as an environment variable, e.g. ` + envPrefix + `_PACKAGE_PATH.`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
