// Copyright © 2018 One Concern

package cmd

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/oneconcern/devsetup/pkg/model"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

// Plan describes what a setup run would do
type Plan struct {
	Run        model.Run                         `json:"run" yaml:"run"`
	Exports    map[string]model.PrivateReference `json:"exports" yaml:"exports"`
	Lockfile   string                            `json:"lockfile" yaml:"lockfile"`
	Packages   map[string]string                 `json:"packages" yaml:"packages"`
	BuildOrder []string                          `json:"buildOrder" yaml:"buildOrder"`
}

func newPlan(run model.Run) Plan {
	plan := Plan{
		Run:        run,
		Exports:    make(map[string]model.PrivateReference, len(run.Upstreams)),
		Lockfile:   run.Settings.Lockfile,
		Packages:   make(map[string]string, len(run.Upstreams)+1),
		BuildOrder: make([]string, 0, len(run.Upstreams)+1),
	}
	for _, repo := range run.Upstreams {
		plan.Exports[repo.Name] = run.Settings.Channel.Reference(repo.Name)
	}
	for _, repo := range run.All() {
		plan.Packages[repo.Name] = run.PackageFolder(repo)
		plan.BuildOrder = append(plan.BuildOrder, repo.Name)
	}
	return plan
}

func (p Plan) marshal(format string) ([]byte, error) {
	switch format {
	case formatYAML:
		return yaml.Marshal(p)
	case formatJSON:
		return jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(p, "", "  ")
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
}

var planCmd = &cobra.Command{
	Use:   "plan <repositories file> [profile]",
	Short: "Print what a setup run would do",
	Long: `Resolves the repositories file and settings of a setup run, then prints
the repositories with their locations, private export references and packages, without running anything.`,
	Example: `% devsetup plan repositories.json default --format json`,
	Args:    cobra.RangeArgs(1, 2),
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

		out, err := newPlan(run).marshal(devsetupFlags.plan.format)
		if err != nil {
			wrapFatalln("could not render plan", err)
			return
		}
		logStdOut("%s\n", out)
	},
}

func init() {
	addRunFlags(planCmd)
	addFormatFlag(planCmd)
	rootCmd.AddCommand(planCmd)
}
