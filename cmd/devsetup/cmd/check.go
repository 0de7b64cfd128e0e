// Copyright © 2018 One Concern

package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that the package cache holds no private export",
	Long: `Checks that the package cache holds no recipe exported under the reserved channel.

A setup run performs this check before anything else.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := contextWithSignals(context.Background())
		defer cancel()

		if err := newOrchestrator().Check(ctx, channel()); err != nil {
			exitWithFailure("check", err)
			return
		}
		infoLogger.Println("package cache is clean")
	},
}

func init() {
	addChannelFlags(checkCmd)
	rootCmd.AddCommand(checkCmd)
}
