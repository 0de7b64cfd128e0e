package git

import (
	"context"
	"errors"
	"testing"

	"github.com/oneconcern/devsetup/pkg/runner"
	"github.com/oneconcern/devsetup/pkg/runner/mockrunner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetrieve(t *testing.T) {
	r := mockrunner.New()
	g := New(r, "")

	require.NoError(t, g.Retrieve(context.Background(), "git@github.com:org/pkga.git", "develop", "/work/pkga"))
	assert.Equal(t, []string{
		"git", "clone", "--recurse-submodules", "--branch", "develop", "--", "git@github.com:org/pkga.git", "/work/pkga",
	}, r.Last().Args)
	assert.Empty(t, r.Last().Dir)
}

func TestRetrieveExecutable(t *testing.T) {
	r := mockrunner.New()
	g := New(r, "/opt/bin/git")

	require.NoError(t, g.Retrieve(context.Background(), "o", "b", "d"))
	assert.Equal(t, "/opt/bin/git", r.Last().Args[0])
}

func TestRetrieveError(t *testing.T) {
	boom := errors.New("boom")
	r := mockrunner.New()
	r.RunFunc = func(_ context.Context, _ runner.Command) error { return boom }

	err := New(r, "").Retrieve(context.Background(), "o", "b", "d")
	assert.ErrorIs(t, err, boom)
}
