// Copyright © 2018 One Concern

package model

import (
	"github.com/oneconcern/devsetup/pkg/model/status"
	"gopkg.in/yaml.v2"
)

// RepoSpec specifies a repository in the configuration file: either a bare origin or an [origin, branch] pair.
type RepoSpec struct {
	Origin string
	Branch string
}

// UnmarshalYAML accepts a scalar origin or a sequence of exactly two scalars.
func (s *RepoSpec) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var origin string
	if err := unmarshal(&origin); err == nil {
		s.Origin = origin
		s.Branch = ""
		return nil
	}

	var pair []string
	if err := unmarshal(&pair); err != nil {
		return status.ErrInvalidConfig.Wrapf("a repository is specified either as an origin or as an [origin, branch] pair")
	}
	if len(pair) != 2 {
		return status.ErrInvalidConfig.Wrapf("expected an [origin, branch] pair, but got %d elements: %v", len(pair), pair)
	}
	s.Origin = pair[0]
	s.Branch = pair[1]
	return nil
}

// MarshalYAML renders the spec in its shortest form
func (s RepoSpec) MarshalYAML() (interface{}, error) {
	if s.Branch == "" {
		return s.Origin, nil
	}
	return []string{s.Origin, s.Branch}, nil
}

// Config describes the repositories to orchestrate.
//
// Example (JSON, which is also valid YAML):
//
//	{
//	  "dependencies": ["git@host:org/pkga.git", ["https://host/org/pkgb.git", "feature/x"]],
//	  "downstream": "https://host/org/app.git"
//	}
type Config struct {
	Dependencies []RepoSpec `yaml:"dependencies"`
	Downstream   *RepoSpec  `yaml:"downstream"`
}

// ParseConfig reads a repositories configuration document, in YAML or JSON
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, status.ErrInvalidConfig.Wrap(err)
	}
	if cfg.Downstream == nil || cfg.Downstream.Origin == "" {
		return Config{}, status.ErrInvalidConfig.Wrapf("missing downstream repository")
	}
	for i, dep := range cfg.Dependencies {
		if dep.Origin == "" {
			return Config{}, status.ErrInvalidConfig.Wrapf("empty origin for dependency #%d", i)
		}
	}
	return cfg, nil
}
