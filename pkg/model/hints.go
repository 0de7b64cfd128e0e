// Copyright © 2018 One Concern

package model

import (
	"strings"

	"github.com/oneconcern/devsetup/pkg/model/status"
)

// Supported case conventions for location hints
const (
	HintCasePreserve = "preserve"
	HintCaseUpper    = "upper"
	HintCaseLower    = "lower"
)

// HintConvention derives the name of the build configuration variable telling where the
// build folder of some repository is located.
type HintConvention func(name string) string

// NewHintConvention yields a convention producing "<name>_DIR" keys, with the case of the name normalized.
//
// CMake looks up "<PackageName>_DIR" with the package name spelled as in find_package(), hence the case
// of the repository name is preserved by default.
func NewHintConvention(caseConvention string) (HintConvention, error) {
	var normalize func(string) string
	switch caseConvention {
	case HintCasePreserve, "":
		normalize = func(s string) string { return s }
	case HintCaseUpper:
		normalize = strings.ToUpper
	case HintCaseLower:
		normalize = strings.ToLower
	default:
		return nil, status.ErrInvalidSettings.Wrapf("unsupported hint case convention %q", caseConvention)
	}
	return func(name string) string {
		return normalize(name) + "_DIR"
	}, nil
}

// Hints builds the location hints for repository repo: one per peer, excluding repo itself.
func (h HintConvention) Hints(repo Repository, peers []Repository) map[string]string {
	hints := make(map[string]string, len(peers))
	for _, peer := range peers {
		if peer.Name == repo.Name {
			continue
		}
		hints[h(peer.Name)] = peer.BuildPath
	}
	return hints
}
