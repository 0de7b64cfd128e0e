package cmd

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/oneconcern/devsetup/pkg/toolchain"
	"github.com/oneconcern/devsetup/pkg/toolchain/mocktoolchain"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type ExitMocks struct {
	mock.Mock
	exitStatuses []int
}

func (m *ExitMocks) Fatalf(format string, v ...interface{}) {
	fmt.Printf(format+"\n", v...)
	m.exitStatuses = append(m.exitStatuses, 1)
}

func (m *ExitMocks) Fatalln(v ...interface{}) {
	fmt.Println(v...)
	m.exitStatuses = append(m.exitStatuses, 1)
}

func (m *ExitMocks) Exit(code int) {
	m.exitStatuses = append(m.exitStatuses, code)
}

func (m *ExitMocks) fatalCalls() int {
	return len(m.exitStatuses)
}

func NewExitMocks() *ExitMocks {
	return &ExitMocks{
		exitStatuses: make([]int, 0),
	}
}

var exitMocks *ExitMocks

// testEnv patches the globals of the CLI for a test
type testEnv struct {
	fs    afero.Fs
	tools *mocktoolchain.Mock
	out   *bytes.Buffer
}

func setupTests(t *testing.T) *testEnv {
	env := &testEnv{
		fs:    afero.NewMemMapFs(),
		tools: mocktoolchain.New(),
		out:   new(bytes.Buffer),
	}

	exitMocks = NewExitMocks()
	savedFatalf, savedFatalln, savedExit, savedStdOut := logFatalf, logFatalln, osExit, logStdOut
	savedFs, savedToolchain := appFs, newToolchain

	logFatalf = exitMocks.Fatalf
	logFatalln = exitMocks.Fatalln
	osExit = exitMocks.Exit
	logStdOut = func(format string, args ...interface{}) (int, error) {
		return fmt.Fprintf(env.out, format, args...)
	}
	appFs = env.fs
	newToolchain = func(_ *zap.Logger) toolchain.Toolchain {
		return env.tools.Toolchain()
	}

	t.Setenv(envConfigLocation, "/config/devsetup.yaml")
	viper.Reset()

	t.Cleanup(func() {
		logFatalf, logFatalln, osExit, logStdOut = savedFatalf, savedFatalln, savedExit, savedStdOut
		appFs, newToolchain = savedFs, savedToolchain
		viper.Reset()
	})
	return env
}

// resetFlags restores all flags to their defaults, since flags are bound to globals
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func runCmd(t *testing.T, cmd []string, intentMsg string, expectError bool) {
	fatalCallsBefore := exitMocks.fatalCalls()

	resetFlags(rootCmd)
	rootCmd.SetArgs(cmd)
	require.NoError(t, rootCmd.Execute(), "error executing '"+strings.Join(cmd, " ")+"' : "+intentMsg)

	if expectError {
		require.Equal(t, fatalCallsBefore+1, exitMocks.fatalCalls(),
			"ran '"+strings.Join(cmd, " ")+"' expecting error and didn't see one in mocks : "+intentMsg)
	} else {
		require.Equal(t, fatalCallsBefore, exitMocks.fatalCalls(),
			"unexpected error in mocks on '"+strings.Join(cmd, " ")+"' : "+intentMsg)
	}
}

func writeTestFile(t *testing.T, fs afero.Fs, pth, content string) {
	require.NoError(t, afero.WriteFile(fs, pth, []byte(content), 0o644))
}
