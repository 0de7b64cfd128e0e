// Copyright © 2018 One Concern

package model

import (
	"path/filepath"

	"github.com/oneconcern/devsetup/pkg/model/status"
	"github.com/segmentio/ksuid"
)

const (
	// DefaultPackagePath is the folder where packages are installed, one subfolder per repository
	DefaultPackagePath = "SDK"

	// DefaultLockfile is the name of the lockfile produced for the downstream repository
	DefaultLockfile = "conan.lock"
)

// Settings for a run
type Settings struct {
	// Profile is the package manager profile to lock and build against
	Profile string `json:"profile" yaml:"profile"`

	// PackagePath is the folder where built packages are installed
	PackagePath string `json:"packagePath" yaml:"packagePath"`

	Layout Layout `json:"layout" yaml:"layout"`

	// Clean removes build folders before building
	Clean bool `json:"clean" yaml:"clean"`

	Channel Channel `json:"channel" yaml:"channel"`

	// Lockfile is the location of the lock artifact. Defaults to <workdir>/conan.lock
	Lockfile string `json:"lockfile" yaml:"lockfile"`

	// HintCase is the case convention for location hints passed when reconfiguring builds
	HintCase string `json:"hintCase" yaml:"hintCase"`

	// DefaultBranch applies to repositories configured without any branch
	DefaultBranch string `json:"defaultBranch" yaml:"defaultBranch"`
}

// Run describes an orchestration run: an ordered list of upstream repositories, and a downstream repository
// which depends on them.
type Run struct {
	ID         string       `json:"id" yaml:"id"`
	Upstreams  []Repository `json:"upstreams" yaml:"upstreams"`
	Downstream Repository   `json:"downstream" yaml:"downstream"`
	Settings   Settings     `json:"settings" yaml:"settings"`

	hints HintConvention
}

// NewRun builds a run from a repositories configuration.
//
// Relative paths in settings are resolved against the current working directory. Defaults are
// applied to empty settings, except for the profile which is required.
func NewRun(cfg Config, settings Settings) (Run, error) {
	settings, err := settings.withDefaults()
	if err != nil {
		return Run{}, err
	}

	hints, err := NewHintConvention(settings.HintCase)
	if err != nil {
		return Run{}, err
	}

	run := Run{
		ID:        ksuid.New().String(),
		Upstreams: make([]Repository, 0, len(cfg.Dependencies)),
		Settings:  settings,
		hints:     hints,
	}

	seenNames := make(map[string]string, len(cfg.Dependencies)+1)
	add := func(spec RepoSpec) (Repository, error) {
		branch := spec.Branch
		if branch == "" {
			branch = settings.DefaultBranch
		}
		repo, err := NewRepository(spec.Origin, branch, settings.Layout)
		if err != nil {
			return Repository{}, err
		}
		if other, ok := seenNames[repo.Name]; ok {
			return Repository{}, status.ErrDuplicateRepository.Wrapf("origins %q and %q are both checked out as %q",
				other, repo.Origin, repo.RootPath)
		}
		seenNames[repo.Name] = repo.Origin
		return repo, nil
	}

	for _, spec := range cfg.Dependencies {
		repo, err := add(spec)
		if err != nil {
			return Run{}, err
		}
		run.Upstreams = append(run.Upstreams, repo)
	}

	if cfg.Downstream == nil {
		return Run{}, status.ErrInvalidConfig.Wrapf("missing downstream repository")
	}
	run.Downstream, err = add(*cfg.Downstream)
	if err != nil {
		return Run{}, err
	}

	return run, nil
}

func (s Settings) withDefaults() (Settings, error) {
	if s.Profile == "" {
		return s, status.ErrInvalidSettings.Wrapf("a profile is required")
	}

	var err error
	if s.Layout.Workdir == "" {
		s.Layout.Workdir = "."
	}
	if s.Layout.Workdir, err = filepath.Abs(s.Layout.Workdir); err != nil {
		return s, status.ErrInvalidSettings.Wrap(err)
	}
	if s.Layout.BuildFolder == "" {
		s.Layout.BuildFolder = DefaultBuildFolder
	}
	if s.Layout.RecipeFolder == "" {
		s.Layout.RecipeFolder = DefaultRecipeFolder
	}
	if err = s.Layout.validate(); err != nil {
		return s, err
	}

	if s.PackagePath == "" {
		s.PackagePath = DefaultPackagePath
	}
	if s.PackagePath, err = filepath.Abs(s.PackagePath); err != nil {
		return s, status.ErrInvalidSettings.Wrap(err)
	}

	if s.Lockfile == "" {
		s.Lockfile = filepath.Join(s.Layout.Workdir, DefaultLockfile)
	}
	if s.Lockfile, err = filepath.Abs(s.Lockfile); err != nil {
		return s, status.ErrInvalidSettings.Wrap(err)
	}

	if s.Channel.Version == "" {
		s.Channel.Version = DefaultChannelVersion
	}
	if s.DefaultBranch == "" {
		s.DefaultBranch = DefaultBranch
	}
	if s.HintCase == "" {
		s.HintCase = HintCasePreserve
	}
	return s, nil
}

// All repositories of the run, in build order: upstreams first, then the downstream
func (r Run) All() []Repository {
	all := make([]Repository, 0, len(r.Upstreams)+1)
	all = append(all, r.Upstreams...)
	return append(all, r.Downstream)
}

// Predecessors returns the upstream repositories which precede repo in build order.
//
// Upstreams are listed in dependency order, so these are the only repositories repo may depend on.
// Repositories listed after repo are never hinted to it, e.g. the first upstream gets no hint at all.
func (r Run) Predecessors(repo Repository) []Repository {
	for i, upstream := range r.Upstreams {
		if upstream.Name == repo.Name {
			return r.Upstreams[:i:i]
		}
	}
	return r.Upstreams[:len(r.Upstreams):len(r.Upstreams)]
}

// PackageFolder is the folder where the package built from repo is installed
func (r Run) PackageFolder(repo Repository) string {
	return filepath.Join(r.Settings.PackagePath, repo.Name)
}

// Hints yields the location hints for reconfiguring repo against peers
func (r Run) Hints(repo Repository, peers []Repository) map[string]string {
	hints := r.hints
	if hints == nil {
		hints, _ = NewHintConvention(HintCasePreserve)
	}
	return hints.Hints(repo, peers)
}
