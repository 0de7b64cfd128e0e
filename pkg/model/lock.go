// Copyright © 2018 One Concern

package model

// LockArtifact is a handle on the snapshot of a resolved dependency graph, produced by the package manager.
//
// The artifact itself is opaque: all the repositories of a run install against the same one.
type LockArtifact struct {
	Path string `json:"path" yaml:"path"`
}

func (l LockArtifact) String() string {
	return l.Path
}
