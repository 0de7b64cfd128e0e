// Copyright © 2018 One Concern

// Package mocktoolchain provides a fake toolchain which records all invocations, in order.
package mocktoolchain

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/oneconcern/devsetup/pkg/toolchain"
)

// Operations recorded by the mock
const (
	OpRetrieve  = "retrieve"
	OpExport    = "export"
	OpRemove    = "remove"
	OpLock      = "lock"
	OpGraph     = "graph"
	OpInstall   = "install"
	OpBuild     = "build"
	OpSearch    = "search"
	OpConfigure = "configure"
)

// Call is a recorded invocation of the toolchain
type Call struct {
	Op   string
	Args []string
}

func (c Call) String() string {
	return strings.TrimSpace(c.Op + " " + strings.Join(c.Args, " "))
}

var (
	_ toolchain.Retriever      = &Mock{}
	_ toolchain.PackageManager = &Mock{}
	_ toolchain.Configurer     = &Mock{}
)

// Mock toolchain.
//
// Every call is recorded first. Then the corresponding XxxFunc, when set, determines the outcome.
type Mock struct {
	RetrieveFunc  func(ctx context.Context, origin, branch, dest string) error
	ExportFunc    func(ctx context.Context, recipe, reference string) error
	RemoveFunc    func(ctx context.Context, reference string) error
	LockFunc      func(ctx context.Context, recipe, profile, lockfile string) error
	GraphFunc     func(ctx context.Context, recipe, lockfile string) (string, error)
	InstallFunc   func(ctx context.Context, req toolchain.InstallRequest) error
	BuildFunc     func(ctx context.Context, req toolchain.BuildRequest) error
	SearchFunc    func(ctx context.Context, pattern string) ([]string, error)
	ConfigureFunc func(ctx context.Context, sourceFolder, buildFolder string, hints map[string]string) error

	mx    sync.Mutex
	calls []Call
}

// New mock toolchain, succeeding on every call
func New() *Mock {
	return &Mock{}
}

// Toolchain exposes the mock as a complete toolchain
func (m *Mock) Toolchain() toolchain.Toolchain {
	return toolchain.Toolchain{
		Retriever:      m,
		PackageManager: m,
		Configurer:     m,
	}
}

func (m *Mock) record(op string, args ...string) {
	m.mx.Lock()
	defer m.mx.Unlock()
	m.calls = append(m.calls, Call{Op: op, Args: args})
}

// Calls returns all recorded calls
func (m *Mock) Calls() []Call {
	m.mx.Lock()
	defer m.mx.Unlock()
	return append([]Call(nil), m.calls...)
}

// CallsTo returns the recorded calls to some operation
func (m *Mock) CallsTo(op string) []Call {
	var res []Call
	for _, c := range m.Calls() {
		if c.Op == op {
			res = append(res, c)
		}
	}
	return res
}

// Trace returns all recorded calls, formatted as strings
func (m *Mock) Trace() []string {
	calls := m.Calls()
	res := make([]string, 0, len(calls))
	for _, c := range calls {
		res = append(res, c.String())
	}
	return res
}

// Retrieve records a retrieval
func (m *Mock) Retrieve(ctx context.Context, origin, branch, dest string) error {
	m.record(OpRetrieve, origin, branch, dest)
	if m.RetrieveFunc != nil {
		return m.RetrieveFunc(ctx, origin, branch, dest)
	}
	return nil
}

// Export records an export
func (m *Mock) Export(ctx context.Context, recipe, reference string) error {
	m.record(OpExport, recipe, reference)
	if m.ExportFunc != nil {
		return m.ExportFunc(ctx, recipe, reference)
	}
	return nil
}

// Remove records a removal
func (m *Mock) Remove(ctx context.Context, reference string) error {
	m.record(OpRemove, reference)
	if m.RemoveFunc != nil {
		return m.RemoveFunc(ctx, reference)
	}
	return nil
}

// Lock records a lock
func (m *Mock) Lock(ctx context.Context, recipe, profile, lockfile string) error {
	m.record(OpLock, recipe, profile, lockfile)
	if m.LockFunc != nil {
		return m.LockFunc(ctx, recipe, profile, lockfile)
	}
	return nil
}

// Graph records a graph listing
func (m *Mock) Graph(ctx context.Context, recipe, lockfile string) (string, error) {
	m.record(OpGraph, recipe, lockfile)
	if m.GraphFunc != nil {
		return m.GraphFunc(ctx, recipe, lockfile)
	}
	return "", nil
}

// Install records an install
func (m *Mock) Install(ctx context.Context, req toolchain.InstallRequest) error {
	m.record(OpInstall, req.Recipe, req.Reference, req.InstallFolder, req.Lockfile)
	if m.InstallFunc != nil {
		return m.InstallFunc(ctx, req)
	}
	return nil
}

// Build records a build
func (m *Mock) Build(ctx context.Context, req toolchain.BuildRequest) error {
	m.record(OpBuild, req.Recipe, req.SourceFolder, req.BuildFolder, req.PackageFolder)
	if m.BuildFunc != nil {
		return m.BuildFunc(ctx, req)
	}
	return nil
}

// Search records a search
func (m *Mock) Search(ctx context.Context, pattern string) ([]string, error) {
	m.record(OpSearch, pattern)
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, pattern)
	}
	return nil, nil
}

// Configure records a configuration. Hints are recorded as sorted "key=value" arguments.
func (m *Mock) Configure(ctx context.Context, sourceFolder, buildFolder string, hints map[string]string) error {
	args := []string{sourceFolder, buildFolder}
	keys := make([]string, 0, len(hints))
	for k := range hints {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		args = append(args, k+"="+hints[k])
	}
	m.record(OpConfigure, args...)
	if m.ConfigureFunc != nil {
		return m.ConfigureFunc(ctx, sourceFolder, buildFolder, hints)
	}
	return nil
}
