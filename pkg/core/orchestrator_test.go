package core

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/oneconcern/devsetup/pkg/core/status"
	"github.com/oneconcern/devsetup/pkg/model"
	"github.com/oneconcern/devsetup/pkg/toolchain"
	"github.com/oneconcern/devsetup/pkg/toolchain/mocktoolchain"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

const (
	testWorkdir = "/work"
	testListing = "conanfile.py (d/None)\na/1.0@priv\nb/2.0\n"
)

func testRun(t testing.TB, clean bool) model.Run {
	run, err := model.NewRun(model.Config{
		Dependencies: []model.RepoSpec{
			{Origin: "git@github.com:org/a.git"},
			{Origin: "https://github.com/org/b.git", Branch: "feature/x"},
		},
		Downstream: &model.RepoSpec{Origin: "https://github.com/org/d.git"},
	}, model.Settings{
		Profile:     "default",
		PackagePath: "/work/SDK",
		Layout:      model.DefaultLayout(testWorkdir),
		Clean:       clean,
		Channel:     model.Channel{Version: "local", UserChannel: "priv"},
	})
	require.NoError(t, err)
	return run
}

func testToolchain() *mocktoolchain.Mock {
	m := mocktoolchain.New()
	m.GraphFunc = func(_ context.Context, _, _ string) (string, error) {
		return testListing, nil
	}
	return m
}

func testOrchestrator(t testing.TB, m *mocktoolchain.Mock, fs afero.Fs) *Orchestrator {
	return New(m.Toolchain(), WithLogger(zaptest.NewLogger(t)), WithFs(fs))
}

func call(op string, args ...string) mocktoolchain.Call {
	return mocktoolchain.Call{Op: op, Args: args}
}

func TestRunEndToEnd(t *testing.T) {
	defer goleak.VerifyNone(t)

	m := testToolchain()
	var out bytes.Buffer
	o := New(m.Toolchain(), WithLogger(zaptest.NewLogger(t)), WithFs(afero.NewMemMapFs()), WithOutput(&out))

	report, err := o.Run(context.Background(), testRun(t, false))
	require.NoError(t, err)

	assert.Equal(t, []mocktoolchain.Call{
		call(mocktoolchain.OpSearch, "*/local@priv"),
		call(mocktoolchain.OpRetrieve, "git@github.com:org/a.git", "develop", "/work/a"),
		call(mocktoolchain.OpRetrieve, "https://github.com/org/b.git", "feature/x", "/work/b"),
		call(mocktoolchain.OpRetrieve, "https://github.com/org/d.git", "develop", "/work/d"),
		call(mocktoolchain.OpExport, "/work/a/conan", "local@priv"),
		call(mocktoolchain.OpExport, "/work/b/conan", "local@priv"),
		call(mocktoolchain.OpLock, "/work/d/conan", "default", "/work/conan.lock"),
		call(mocktoolchain.OpGraph, "/work/d/conan", "/work/conan.lock"),
		call(mocktoolchain.OpInstall, "/work/a/conan", "a/1.0@priv", "/work/a/build", "/work/conan.lock"),
		call(mocktoolchain.OpBuild, "/work/a/conan", "/work/a", "/work/a/build", "/work/SDK/a"),
		call(mocktoolchain.OpInstall, "/work/b/conan", "b/2.0@priv", "/work/b/build", "/work/conan.lock"),
		call(mocktoolchain.OpBuild, "/work/b/conan", "/work/b", "/work/b/build", "/work/SDK/b"),
		call(mocktoolchain.OpInstall, "/work/d/conan", "", "/work/d/build", "/work/conan.lock"),
		call(mocktoolchain.OpBuild, "/work/d/conan", "/work/d", "/work/d/build", "/work/SDK/d"),
		call(mocktoolchain.OpConfigure, "/work/a", "/work/a/build"),
		call(mocktoolchain.OpConfigure, "/work/b", "/work/b/build", "a_DIR=/work/a/build"),
		call(mocktoolchain.OpConfigure, "/work/d", "/work/d/build", "a_DIR=/work/a/build", "b_DIR=/work/b/build"),
		call(mocktoolchain.OpRemove, "a/local@priv"),
		call(mocktoolchain.OpRemove, "b/local@priv"),
	}, m.Calls())

	assert.Equal(t, model.RequirementMap{"a": "a/1.0@priv", "b": "b/2.0@priv"}, report.Requirements)
	assert.Equal(t, []model.PrivateReference{"a/local@priv", "b/local@priv"}, report.Exported)
	assert.Equal(t, report.Exported, report.Retracted)
	assert.Empty(t, report.Failed())

	assert.Contains(t, out.String(), "### Clone a")
	assert.Contains(t, out.String(), "### Graph-lock for d")
	assert.Contains(t, out.String(), "### Reconfigure d")

	var table bytes.Buffer
	require.NoError(t, report.Render(&table))
	assert.Contains(t, table.String(), "STAGE")
	assert.Contains(t, table.String(), report.RunID)
}

type failureFixture struct {
	name      string
	inject    func(*mocktoolchain.Mock, error)
	sentinel  error
	stage     string
	repo      string
	exports   int
	configure bool
}

func failureTestCases() []failureFixture {
	failOn := func(name string) func(string) bool {
		return func(pth string) bool { return pth == "/work/"+name+"/conan" }
	}
	return []failureFixture{
		{
			name: "retrieval",
			inject: func(m *mocktoolchain.Mock, boom error) {
				m.RetrieveFunc = func(_ context.Context, _, _, dest string) error {
					if dest == "/work/b" {
						return boom
					}
					return nil
				}
			},
			sentinel: status.ErrRetrieval,
			stage:    StageClone,
			repo:     "b",
		},
		{
			name: "first export",
			inject: func(m *mocktoolchain.Mock, boom error) {
				m.ExportFunc = func(_ context.Context, recipe, _ string) error {
					if failOn("a")(recipe) {
						return boom
					}
					return nil
				}
			},
			sentinel: status.ErrExport,
			stage:    StageExport,
			repo:     "a",
		},
		{
			name: "second export",
			inject: func(m *mocktoolchain.Mock, boom error) {
				m.ExportFunc = func(_ context.Context, recipe, _ string) error {
					if failOn("b")(recipe) {
						return boom
					}
					return nil
				}
			},
			sentinel: status.ErrExport,
			stage:    StageExport,
			repo:     "b",
			exports:  1,
		},
		{
			name: "lock",
			inject: func(m *mocktoolchain.Mock, boom error) {
				m.LockFunc = func(_ context.Context, _, _, _ string) error { return boom }
			},
			sentinel: status.ErrLock,
			stage:    StageLock,
			repo:     "d",
			exports:  2,
		},
		{
			name: "graph listing",
			inject: func(m *mocktoolchain.Mock, boom error) {
				m.GraphFunc = func(_ context.Context, _, _ string) (string, error) { return "", boom }
			},
			sentinel: status.ErrResolution,
			stage:    StageResolve,
			repo:     "d",
			exports:  2,
		},
		{
			name: "install",
			inject: func(m *mocktoolchain.Mock, boom error) {
				m.InstallFunc = func(_ context.Context, req toolchain.InstallRequest) error {
					if failOn("b")(req.Recipe) {
						return boom
					}
					return nil
				}
			},
			sentinel: status.ErrBuild,
			stage:    StageBuild,
			repo:     "b",
			exports:  2,
		},
		{
			name: "build",
			inject: func(m *mocktoolchain.Mock, boom error) {
				m.BuildFunc = func(_ context.Context, req toolchain.BuildRequest) error {
					if failOn("d")(req.Recipe) {
						return boom
					}
					return nil
				}
			},
			sentinel: status.ErrBuild,
			stage:    StageBuild,
			repo:     "d",
			exports:  2,
		},
		{
			name: "reconfigure",
			inject: func(m *mocktoolchain.Mock, boom error) {
				m.ConfigureFunc = func(_ context.Context, source, _ string, _ map[string]string) error {
					if source == "/work/b" {
						return boom
					}
					return nil
				}
			},
			sentinel:  status.ErrReconfigure,
			stage:     StageReconfigure,
			repo:      "b",
			exports:   2,
			configure: true,
		},
	}
}

func TestRunFailures(t *testing.T) {
	defer goleak.VerifyNone(t)

	for _, toPin := range failureTestCases() {
		fixture := toPin

		t.Run(fixture.name, func(t *testing.T) {
			boom := errors.New("boom")
			m := testToolchain()
			fixture.inject(m, boom)

			report, err := testOrchestrator(t, m, afero.NewMemMapFs()).Run(context.Background(), testRun(t, false))
			require.Error(t, err)

			assert.ErrorIs(t, err, fixture.sentinel)
			assert.ErrorIs(t, err, boom)

			serr, ok := AsStageError(err)
			require.True(t, ok)
			assert.Equal(t, fixture.stage, serr.Stage)
			assert.Equal(t, fixture.repo, serr.Repository)

			// every successful export is retracted, whatever the failure
			assert.Len(t, report.Exported, fixture.exports)
			assert.Len(t, m.CallsTo(mocktoolchain.OpRemove), fixture.exports)
			assert.Equal(t, report.Exported, report.Retracted)

			if !fixture.configure {
				assert.Empty(t, m.CallsTo(mocktoolchain.OpConfigure))
			}

			require.Len(t, report.Failed(), 1)
			assert.Equal(t, fixture.stage, report.Failed()[0].Stage)
		})
	}
}

func TestRunGuard(t *testing.T) {
	defer goleak.VerifyNone(t)

	m := testToolchain()
	m.SearchFunc = func(_ context.Context, _ string) ([]string, error) {
		return []string{"a/local@priv"}, nil
	}

	_, err := testOrchestrator(t, m, afero.NewMemMapFs()).Run(context.Background(), testRun(t, false))
	require.Error(t, err)
	assert.ErrorIs(t, err, status.ErrPrecondition)

	var leftover *LeftoverError
	require.ErrorAs(t, err, &leftover)
	assert.Equal(t, []string{"a/local@priv"}, leftover.References)
	assert.Equal(t, "*/local@priv", leftover.Pattern)

	// nothing but the query
	assert.Equal(t, []mocktoolchain.Call{call(mocktoolchain.OpSearch, "*/local@priv")}, m.Calls())
}

func TestRunReconfigureAfterAllBuilds(t *testing.T) {
	defer goleak.VerifyNone(t)

	m := testToolchain()
	_, err := testOrchestrator(t, m, afero.NewMemMapFs()).Run(context.Background(), testRun(t, false))
	require.NoError(t, err)

	lastBuild, firstConfigure := -1, -1
	for i, c := range m.Calls() {
		switch c.Op {
		case mocktoolchain.OpBuild, mocktoolchain.OpInstall:
			lastBuild = i
		case mocktoolchain.OpConfigure:
			if firstConfigure < 0 {
				firstConfigure = i
			}
		}
	}
	require.True(t, lastBuild > 0)
	assert.Greater(t, firstConfigure, lastBuild)
	assert.Len(t, m.CallsTo(mocktoolchain.OpConfigure), 3)
}

func TestRunUnresolved(t *testing.T) {
	defer goleak.VerifyNone(t)

	m := testToolchain()
	m.GraphFunc = func(_ context.Context, _, _ string) (string, error) {
		return "d/None\na/1.0@priv\n", nil
	}

	_, err := testOrchestrator(t, m, afero.NewMemMapFs()).Run(context.Background(), testRun(t, false))
	require.Error(t, err)
	assert.ErrorIs(t, err, status.ErrResolution)
	assert.Contains(t, err.Error(), "does not require b")

	assert.Empty(t, m.CallsTo(mocktoolchain.OpInstall))
	assert.Len(t, m.CallsTo(mocktoolchain.OpRemove), 2)
}

func TestRunRetractionFailure(t *testing.T) {
	defer goleak.VerifyNone(t)

	failingRemove := func(m *mocktoolchain.Mock) {
		m.RemoveFunc = func(_ context.Context, ref string) error {
			if ref == "a/local@priv" {
				return errors.New("locked cache")
			}
			return nil
		}
	}

	t.Run("otherwise successful run", func(t *testing.T) {
		m := testToolchain()
		failingRemove(m)

		report, err := testOrchestrator(t, m, afero.NewMemMapFs()).Run(context.Background(), testRun(t, false))
		require.Error(t, err)
		assert.ErrorIs(t, err, status.ErrRetract)

		// all leases are attempted
		assert.Len(t, m.CallsTo(mocktoolchain.OpRemove), 2)
		assert.Equal(t, []model.PrivateReference{"b/local@priv"}, report.Retracted)
	})

	t.Run("does not mask the original failure", func(t *testing.T) {
		boom := errors.New("compiler error")
		m := testToolchain()
		failingRemove(m)
		m.BuildFunc = func(_ context.Context, _ toolchain.BuildRequest) error { return boom }

		_, err := testOrchestrator(t, m, afero.NewMemMapFs()).Run(context.Background(), testRun(t, false))
		require.Error(t, err)
		assert.ErrorIs(t, err, status.ErrBuild)
		assert.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, status.ErrRetract)
		assert.Len(t, m.CallsTo(mocktoolchain.OpRemove), 2)
	})
}

func TestRunInterrupted(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := testToolchain()
	m.LockFunc = func(_ context.Context, _, _, _ string) error {
		cancel()
		return nil
	}

	_, err := testOrchestrator(t, m, afero.NewMemMapFs()).Run(ctx, testRun(t, false))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, err, status.ErrResolution)

	assert.Empty(t, m.CallsTo(mocktoolchain.OpGraph))
	// retraction runs after interruption
	assert.Len(t, m.CallsTo(mocktoolchain.OpRemove), 2)
}
