// Copyright © 2018 One Concern

// Package model describes the base objects manipulated by devsetup.
//
// The object model for devsetup is composed of:
//
//  Repositories:
//    A repository is a source tree retrieved from an origin at some branch.
//    Its name is derived from the origin and determines where it is checked out,
//    built and where its package recipe is found.
//
//  Runs:
//    A run orchestrates an ordered list of upstream repositories and a single downstream
//    repository. Upstreams are exported to the package manager under a reserved channel,
//    the downstream graph is locked, then every repository is built and reconfigured
//    against the build folders of its peers.
//
//  Channels:
//    The reserved namespace under which upstream recipes are privately exported for the
//    duration of a run.
//
//  Requirements:
//    The mapping from repository name to the concrete package reference that satisfied it
//    in the locked graph of the downstream repository.
package model
