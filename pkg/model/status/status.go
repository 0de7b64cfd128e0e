// Copyright © 2018 One Concern

// Package status exports errors produced by the model package.
package status

import "github.com/oneconcern/devsetup/pkg/errors"

var (
	// ErrInvalidConfig indicates that the repositories configuration is malformed
	ErrInvalidConfig = errors.New("invalid repositories configuration")

	// ErrInvalidRepository indicates that a repository descriptor cannot be derived from its origin
	ErrInvalidRepository = errors.New("invalid repository")

	// ErrInvalidSettings indicates that run settings are incomplete or inconsistent
	ErrInvalidSettings = errors.New("invalid run settings")

	// ErrDuplicateRepository indicates that two repositories of a run resolve to the same name or location
	ErrDuplicateRepository = errors.New("duplicate repository")

	// ErrInvalidListing indicates that the listing of a dependency graph could not be read through
	ErrInvalidListing = errors.New("unreadable dependency graph listing")
)
