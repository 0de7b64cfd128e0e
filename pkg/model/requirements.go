// Copyright © 2018 One Concern

package model

import (
	"bufio"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/oneconcern/devsetup/pkg/model/status"
)

// RequirementMap maps the name of a repository to the concrete package reference
// that satisfied it in a resolved dependency graph.
type RequirementMap map[string]string

// Get the reference resolved for some repository name
func (m RequirementMap) Get(name string) (string, bool) {
	ref, ok := m[name]
	return ref, ok
}

// Names of all resolved requirements, sorted
func (m RequirementMap) Names() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Missing returns the names of the repositories with no resolved reference
func (m RequirementMap) Missing(repos []Repository) []string {
	var missing []string
	for _, repo := range repos {
		if _, ok := m[repo.Name]; !ok {
			missing = append(missing, repo.Name)
		}
	}
	return missing
}

// requirementRex matches "<name>/<version>[@<user/channel>]"
var requirementRex = regexp.MustCompile(`^([^/@]+)/([^/@]+)(@.*)?$`)

// ParseRequirements extracts requirements from the textual listing of a resolved graph.
//
// Lines are processed as follows:
//   - blank lines are skipped
//   - lines with embedded white space are informational messages and are skipped
//   - lines not shaped as "<name>/<version>[@<user/channel>]" are skipped
//   - the line describing the root project itself is skipped
//
// References without any "@" part are qualified with the reserved channel.
// When a name appears several times, the first reference wins.
//
// A listing which cannot be read through, e.g. with an overlong line, is an error rather than a partial map.
func ParseRequirements(listing, root string, channel Channel) (RequirementMap, error) {
	reqs := make(RequirementMap)
	scanner := bufio.NewScanner(strings.NewReader(listing))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.IndexFunc(line, unicode.IsSpace) >= 0 {
			continue
		}
		parts := requirementRex.FindStringSubmatch(line)
		if parts == nil {
			continue
		}
		name := parts[1]
		if name == root {
			continue
		}
		if _, seen := reqs[name]; seen {
			continue
		}
		reqs[name] = channel.Qualify(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, status.ErrInvalidListing.Wrap(err)
	}
	return reqs, nil
}
