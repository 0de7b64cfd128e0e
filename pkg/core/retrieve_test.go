package core

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/oneconcern/devsetup/pkg/core/status"
	runnerstatus "github.com/oneconcern/devsetup/pkg/runner/status"
	"github.com/oneconcern/devsetup/pkg/toolchain/mocktoolchain"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureRetrieved(t *testing.T) {
	fs := afero.NewMemMapFs()
	m := testToolchain()
	m.RetrieveFunc = func(_ context.Context, _, _, dest string) error {
		return fs.MkdirAll(dest, 0o755)
	}
	run := testRun(t, false)
	s := testOrchestrator(t, m, fs).newSession(run)
	repo := run.Upstreams[0]

	require.NoError(t, s.ensureRetrieved(context.Background(), repo))
	require.NoError(t, s.ensureRetrieved(context.Background(), repo))

	assert.Len(t, m.CallsTo(mocktoolchain.OpRetrieve), 1)
	require.Len(t, s.report.Steps, 2)
	assert.Equal(t, StepOK, s.report.Steps[0].Status)
	assert.Equal(t, StepSkipped, s.report.Steps[1].Status)
}

func TestEnsureRetrievedNotADirectory(t *testing.T) {
	fs := afero.NewMemMapFs()
	run := testRun(t, false)
	repo := run.Upstreams[0]
	require.NoError(t, afero.WriteFile(fs, repo.RootPath, []byte("oops"), 0o644))

	m := testToolchain()
	err := testOrchestrator(t, m, fs).newSession(run).ensureRetrieved(context.Background(), repo)
	require.Error(t, err)
	assert.ErrorIs(t, err, status.ErrRetrieval)
	assert.Empty(t, m.CallsTo(mocktoolchain.OpRetrieve))
}

func TestEnsureRetrievedInterrupted(t *testing.T) {
	fs := afero.NewMemMapFs()
	run := testRun(t, false)
	repo := run.Upstreams[0]

	m := testToolchain()
	m.RetrieveFunc = func(_ context.Context, _, _, dest string) error {
		require.NoError(t, afero.WriteFile(fs, filepath.Join(dest, ".git", "HEAD"), []byte("ref: "), 0o644))
		return fmt.Errorf("git killed: %w", runnerstatus.ErrInterrupted.Wrap(context.Canceled))
	}
	s := testOrchestrator(t, m, fs).newSession(run)

	err := s.ensureRetrieved(context.Background(), repo)
	require.Error(t, err)
	assert.ErrorIs(t, err, status.ErrRetrieval)
	assert.ErrorIs(t, err, runnerstatus.ErrInterrupted)

	exists, err := afero.Exists(fs, repo.RootPath)
	require.NoError(t, err)
	assert.False(t, exists, "a partial clone must not pass for a retrieved repository")

	m.RetrieveFunc = func(_ context.Context, _, _, dest string) error {
		return fs.MkdirAll(dest, 0o755)
	}
	require.NoError(t, s.ensureRetrieved(context.Background(), repo))
	assert.Len(t, m.CallsTo(mocktoolchain.OpRetrieve), 2)
}

func TestRunSkipsPresentRepositories(t *testing.T) {
	fs := afero.NewMemMapFs()
	run := testRun(t, false)
	for _, repo := range run.All() {
		require.NoError(t, fs.MkdirAll(repo.RootPath, 0o755))
	}

	m := testToolchain()
	_, err := testOrchestrator(t, m, fs).Run(context.Background(), run)
	require.NoError(t, err)
	assert.Empty(t, m.CallsTo(mocktoolchain.OpRetrieve))
	assert.Len(t, m.CallsTo(mocktoolchain.OpBuild), 3)
}
