// Copyright © 2018 One Concern

package model

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/oneconcern/devsetup/pkg/model/status"
)

const (
	// DefaultBranch is checked out when a repository does not specify any branch
	DefaultBranch = "develop"

	// DefaultBuildFolder is the name of the build folder, relative to the repository root
	DefaultBuildFolder = "build"

	// DefaultRecipeFolder is the name of the folder holding the package recipe, relative to the repository root
	DefaultRecipeFolder = "conan"
)

// Layout describes where repositories are located on the local file system.
type Layout struct {
	Workdir      string `json:"workdir" yaml:"workdir"`
	BuildFolder  string `json:"buildFolder" yaml:"buildFolder"`
	RecipeFolder string `json:"recipeFolder" yaml:"recipeFolder"`
}

// DefaultLayout checks out repositories in workdir, with the default build and recipe folders
func DefaultLayout(workdir string) Layout {
	return Layout{
		Workdir:      workdir,
		BuildFolder:  DefaultBuildFolder,
		RecipeFolder: DefaultRecipeFolder,
	}
}

func (l Layout) validate() error {
	switch {
	case l.Workdir == "":
		return status.ErrInvalidSettings.Wrapf("empty workdir")
	case !filepath.IsAbs(l.Workdir):
		return status.ErrInvalidSettings.Wrapf("workdir must be an absolute path: %q", l.Workdir)
	case l.BuildFolder == "":
		return status.ErrInvalidSettings.Wrapf("empty build folder")
	case l.RecipeFolder == "":
		return status.ErrInvalidSettings.Wrapf("empty recipe folder")
	}
	return nil
}

// Repository describes a source repository under orchestration.
//
// A Repository is a value: it is built once by NewRepository and only read afterwards.
type Repository struct {
	Origin     string `json:"origin" yaml:"origin"`
	Branch     string `json:"branch" yaml:"branch"`
	Name       string `json:"name" yaml:"name"`
	RootPath   string `json:"rootPath" yaml:"rootPath"`
	BuildPath  string `json:"buildPath" yaml:"buildPath"`
	RecipePath string `json:"recipePath" yaml:"recipePath"`
}

// NewRepository builds a repository descriptor from its origin and branch.
//
// The branch defaults to DefaultBranch. All paths are derived from the name of the repository and the layout.
func NewRepository(origin, branch string, layout Layout) (Repository, error) {
	name, err := NameFromOrigin(origin)
	if err != nil {
		return Repository{}, err
	}
	if branch == "" {
		branch = DefaultBranch
	}
	root := filepath.Join(layout.Workdir, name)
	return Repository{
		Origin:     origin,
		Branch:     branch,
		Name:       name,
		RootPath:   root,
		BuildPath:  filepath.Join(root, layout.BuildFolder),
		RecipePath: filepath.Join(root, layout.RecipeFolder),
	}, nil
}

// String representation of a repository is its name
func (r Repository) String() string {
	return r.Name
}

// NameFromOrigin derives the name of a repository from its origin: this is the last element of its path,
// without any ".git" suffix.
//
// Supported origins are URLs (e.g. https://host/org/repo.git, ssh://git@host/org/repo.git),
// scp-like locations (git@host:org/repo.git) and local paths.
func NameFromOrigin(origin string) (string, error) {
	location := strings.TrimSpace(origin)
	if location == "" {
		return "", status.ErrInvalidRepository.Wrapf("empty origin")
	}

	if strings.Contains(location, "://") {
		u, err := url.Parse(location)
		if err != nil {
			return "", status.ErrInvalidRepository.Wrap(err)
		}
		location = u.Path
	}

	location = strings.TrimRight(location, `/\`)
	if i := strings.LastIndexAny(location, `/\:`); i >= 0 {
		location = location[i+1:]
	}
	name := strings.TrimSuffix(location, ".git")

	if name == "" || name == "." || name == ".." {
		return "", status.ErrInvalidRepository.Wrapf("cannot derive a repository name from origin %q", origin)
	}
	return name, nil
}
