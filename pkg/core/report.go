// Copyright © 2018 One Concern

package core

import (
	"fmt"
	"io"
	"sync"
	"time"

	units "github.com/docker/go-units"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/oneconcern/devsetup/pkg/model"
)

// Outcomes of a step
const (
	StepOK      = "ok"
	StepFailed  = "failed"
	StepSkipped = "skipped"
)

// Step is one stage of a run, applied to one repository
type Step struct {
	Stage      string        `json:"stage" yaml:"stage"`
	Repository string        `json:"repository,omitempty" yaml:"repository,omitempty"`
	Status     string        `json:"status" yaml:"status"`
	Elapsed    time.Duration `json:"elapsed" yaml:"elapsed"`
}

// Report on an orchestration run
type Report struct {
	RunID        string                   `json:"run" yaml:"run"`
	Started      time.Time                `json:"started" yaml:"started"`
	Elapsed      time.Duration            `json:"elapsed" yaml:"elapsed"`
	Steps        []Step                   `json:"steps" yaml:"steps"`
	Exported     []model.PrivateReference `json:"exported,omitempty" yaml:"exported,omitempty"`
	Retracted    []model.PrivateReference `json:"retracted,omitempty" yaml:"retracted,omitempty"`
	Requirements model.RequirementMap     `json:"requirements,omitempty" yaml:"requirements,omitempty"`

	mx sync.Mutex
}

func newReport(runID string) *Report {
	return &Report{
		RunID:   runID,
		Started: time.Now(),
	}
}

func (r *Report) add(step Step) {
	r.mx.Lock()
	defer r.mx.Unlock()
	r.Steps = append(r.Steps, step)
}

func (r *Report) exported(ref model.PrivateReference) {
	r.mx.Lock()
	defer r.mx.Unlock()
	r.Exported = append(r.Exported, ref)
}

func (r *Report) retracted(ref model.PrivateReference) {
	r.mx.Lock()
	defer r.mx.Unlock()
	r.Retracted = append(r.Retracted, ref)
}

func (r *Report) resolved(reqs model.RequirementMap) {
	r.mx.Lock()
	defer r.mx.Unlock()
	r.Requirements = reqs
}

func (r *Report) finish() {
	r.mx.Lock()
	defer r.mx.Unlock()
	r.Elapsed = time.Since(r.Started)
}

// Failed returns the failed steps
func (r *Report) Failed() []Step {
	r.mx.Lock()
	defer r.mx.Unlock()
	var failed []Step
	for _, step := range r.Steps {
		if step.Status == StepFailed {
			failed = append(failed, step)
		}
	}
	return failed
}

// Render the report as a table
func (r *Report) Render(w io.Writer) error {
	r.mx.Lock()
	defer r.mx.Unlock()

	table := uitable.New()
	table.MaxColWidth = 60
	table.AddRow("STAGE", "REPOSITORY", "STATUS", "ELAPSED")
	for _, step := range r.Steps {
		table.AddRow(step.Stage, step.Repository, colorStatus(step.Status), units.HumanDuration(step.Elapsed))
	}
	_, err := fmt.Fprintf(w, "%s\n\nrun %s completed in %s\n", table, r.RunID, units.HumanDuration(r.Elapsed))
	return err
}

func colorStatus(status string) string {
	switch status {
	case StepOK:
		return color.GreenString(status)
	case StepFailed:
		return color.RedString(status)
	default:
		return color.YellowString(status)
	}
}

var bannerColor = color.New(color.FgCyan, color.Bold)

// printSection writes a section banner, such as:
//
//	###
//	### Clone pkga
//	###
func printSection(w io.Writer, section string) {
	_, _ = bannerColor.Fprintf(w, "\n###\n### %s\n###\n", section)
}
