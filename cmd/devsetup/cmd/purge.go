// Copyright © 2018 One Concern

package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Remove private exports left in the package cache",
	Long: `Removes all the recipes exported under the reserved channel from the package cache.

A setup run always retracts its private exports, but cannot when killed abruptly.
Without --force, leftovers are only listed.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := contextWithSignals(context.Background())
		defer cancel()

		o := newOrchestrator()
		if !devsetupFlags.purge.force {
			leftovers, err := o.Leftovers(ctx, channel())
			if err != nil {
				exitWithFailure("purge", err)
				return
			}
			for _, ref := range leftovers {
				logStdOut("%s\n", ref)
			}
			if len(leftovers) > 0 {
				infoLogger.Println("use --force to remove these references")
			}
			return
		}

		purged, err := o.Purge(ctx, channel())
		for _, ref := range purged {
			logStdOut("removed %s\n", ref)
		}
		if err != nil {
			exitWithFailure("purge", err)
			return
		}
	},
}

func init() {
	addChannelFlags(purgeCmd)
	addForceFlag(purgeCmd, "Actually remove leftover private exports")
	rootCmd.AddCommand(purgeCmd)
}
