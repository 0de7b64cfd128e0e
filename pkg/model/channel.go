// Copyright © 2018 One Concern

package model

import "strings"

// DefaultChannelVersion is the version under which recipes are exported privately
const DefaultChannelVersion = "local"

// PrivateReference is the package reference of a recipe exported under the reserved channel.
//
// Any private reference created during a run is a lease on the shared package cache: it must be retracted
// before the run ends.
type PrivateReference string

func (p PrivateReference) String() string {
	return string(p)
}

// Channel describes the reserved namespace for private exports.
//
// With the default channel, recipe "pkga" is exported as "pkga/local@": version "local", with no user or channel.
type Channel struct {
	Version     string `json:"version" yaml:"version"`
	UserChannel string `json:"userChannel,omitempty" yaml:"userChannel,omitempty"`
}

// DefaultChannel is the reserved channel used when none is configured
func DefaultChannel() Channel {
	return Channel{Version: DefaultChannelVersion}
}

// ExportArg is the reference passed to the package manager when exporting a recipe, e.g. "local@"
func (c Channel) ExportArg() string {
	return c.Version + "@" + c.UserChannel
}

// Reference to the recipe of a repository exported under this channel, e.g. "pkga/local@"
func (c Channel) Reference(name string) PrivateReference {
	return PrivateReference(name + "/" + c.ExportArg())
}

// Pattern matches any recipe exported under this channel, e.g. "*/local"
func (c Channel) Pattern() string {
	if c.UserChannel == "" {
		return "*/" + c.Version
	}
	return "*/" + c.ExportArg()
}

// Qualify appends the user and channel part to a reference which does not specify any,
// so the reference designates the artifact built during the run and not any cached one of the same name and version.
func (c Channel) Qualify(ref string) string {
	if strings.Contains(ref, "@") {
		return ref
	}
	return ref + "@" + c.UserChannel
}
