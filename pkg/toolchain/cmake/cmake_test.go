package cmake

import (
	"context"
	"testing"

	"github.com/oneconcern/devsetup/pkg/runner/mockrunner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigure(t *testing.T) {
	for _, toPin := range []struct {
		name     string
		hints    map[string]string
		expected []string
	}{
		{
			name:     "no hints",
			expected: []string{"cmake", "-S", "/w/app", "-B", "/w/app/build"},
		},
		{
			name: "sorted hints",
			hints: map[string]string{
				"pkgb_DIR": "/w/pkgb/build",
				"pkga_DIR": "/w/pkga/build",
			},
			expected: []string{
				"cmake", "-S", "/w/app", "-B", "/w/app/build",
				"-Dpkga_DIR=/w/pkga/build",
				"-Dpkgb_DIR=/w/pkgb/build",
			},
		},
	} {
		fixture := toPin
		t.Run(fixture.name, func(t *testing.T) {
			r := mockrunner.New()
			require.NoError(t, New(r, "").Configure(context.Background(), "/w/app", "/w/app/build", fixture.hints))
			assert.Equal(t, fixture.expected, r.Last().Args)
		})
	}
}
