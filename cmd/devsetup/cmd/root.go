// Copyright © 2018 One Concern

package cmd

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	envPrefix         = "DEVSETUP"
	envConfigLocation = envPrefix + "_CONFIG"
	configName        = "devsetup"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "devsetup",
	Short: "devsetup sets up a development folder with several related repositories",
	Long: `devsetup sets up a development folder with several related repositories.

It retrieves an ordered list of upstream repositories and one downstream repository which depends on them,
then builds each of them against freshly built versions of the others.

Upstream recipes are exported to the local package cache under a reserved channel for the duration of the run only:
they are always retracted before devsetup exits, whether the run succeeds or fails.

When done, the native build configuration of each repository points at the build folders of its upstreams,
so changes may be made across repositories and rebuilt incrementally.
`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return applyConfig(cmd)
	},
}

var config *CLIConfig

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		osExit(1)
	}
}

func init() {
	log.SetFlags(0)
	cobra.OnInitialize(initConfig)

	addLogLevel(rootCmd)
	addLogFormat(rootCmd)
	addToolsFlags(rootCmd)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	viper.SetFs(appFs)
	if os.Getenv(envConfigLocation) != "" {
		viper.SetConfigFile(os.Getenv(envConfigLocation))
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.devsetup")
		viper.SetConfigName(configName)
	}

	// DEVSETUP_PACKAGE_PATH sets package-path
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		infoLogger.Println("Using config file:", viper.ConfigFileUsed())
	}

	var err error
	config, err = newConfig()
	if err != nil {
		wrapFatalln("invalid configuration", err)
		return
	}
}
