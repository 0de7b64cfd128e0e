package core

import (
	"context"
	"errors"
	"testing"

	"github.com/oneconcern/devsetup/pkg/core/status"
	"github.com/oneconcern/devsetup/pkg/model"
	"github.com/oneconcern/devsetup/pkg/toolchain/mocktoolchain"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestCheck(t *testing.T) {
	m := testToolchain()
	o := testOrchestrator(t, m, afero.NewMemMapFs())

	require.NoError(t, o.Check(context.Background(), model.DefaultChannel()))
	assert.Equal(t, []mocktoolchain.Call{call(mocktoolchain.OpSearch, "*/local")}, m.Calls())

	m.SearchFunc = func(_ context.Context, _ string) ([]string, error) {
		return []string{"pkga/local@"}, nil
	}
	err := o.Check(context.Background(), model.DefaultChannel())
	assert.ErrorIs(t, err, status.ErrPrecondition)
}

func TestPurge(t *testing.T) {
	defer goleak.VerifyNone(t)

	m := testToolchain()
	m.SearchFunc = func(_ context.Context, _ string) ([]string, error) {
		return []string{"pkga/local@", "pkgb/local@"}, nil
	}
	m.RemoveFunc = func(_ context.Context, ref string) error {
		if ref == "pkga/local@" {
			return errors.New("locked")
		}
		return nil
	}
	o := testOrchestrator(t, m, afero.NewMemMapFs())

	leftovers, err := o.Leftovers(context.Background(), model.DefaultChannel())
	require.NoError(t, err)
	assert.Equal(t, []model.PrivateReference{"pkga/local@", "pkgb/local@"}, leftovers)
	assert.Empty(t, m.CallsTo(mocktoolchain.OpRemove))

	purged, err := o.Purge(context.Background(), model.DefaultChannel())
	require.Error(t, err)
	assert.ErrorIs(t, err, status.ErrRetract)
	assert.Equal(t, []model.PrivateReference{"pkgb/local@"}, purged)
	assert.Len(t, m.CallsTo(mocktoolchain.OpRemove), 2)
}
