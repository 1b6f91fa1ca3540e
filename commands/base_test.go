package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/josephlewis42/minishell/core/config"
	"github.com/josephlewis42/minishell/core/vos"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
)

var defaultTestEnv = []string{"PATH=/usr/bin:/bin"}

// runScript feeds script to a non-interactive shell started in an empty
// directory and returns everything it wrote to standard output and error,
// followed by its exit status.
func runScript(t *testing.T, env []string, script string) []byte {
	t.Helper()

	dir := t.TempDir()
	chdirForTest(t, dir)

	outPath := filepath.Join(dir, ".output")
	out, err := os.Create(outPath)
	require.NoError(t, err)
	devNull, err := os.Open(os.DevNull)
	require.NoError(t, err)
	defer devNull.Close()

	sh := NewShell(config.Default(), vos.NewStdio(devNull, out, out))
	sh.Init(env)
	sh.Reader = NewStreamReader(strings.NewReader(script), nil, sh.Signals)

	status := sh.Run()
	fmt.Fprintf(out, "[exit status %d]\n", status)
	require.NoError(t, out.Close())

	contents, err := os.ReadFile(outPath)
	require.NoError(t, err)
	return contents
}

type goldenTestSuite map[string]goldenTest

type goldenTest struct {
	// Script is the input of the shell.
	Script string
	// Env is the starting environment, defaultTestEnv if nil.
	Env []string
}

func (gts goldenTestSuite) Run(t *testing.T) {
	t.Helper()

	// Scripts run in their own directory, fixtures are found before that.
	fixtureDir, err := filepath.Abs(filepath.Join("testdata", "golden"))
	require.NoError(t, err)

	g := goldie.New(
		t,
		goldie.WithFixtureDir(fixtureDir),
		goldie.WithDiffEngine(goldie.ColoredDiff),
		goldie.WithTestNameForDir(true),
	)

	for tn, tc := range gts {
		t.Run(tn, func(t *testing.T) {
			env := tc.Env
			if env == nil {
				env = defaultTestEnv
			}

			out := runScript(t, env, tc.Script)
			g.Assert(t, tn, out)
		})
	}
}

func TestAllBuiltins(t *testing.T) {
	for _, name := range BuiltinNames() {
		t.Run(name, func(t *testing.T) {
			if AllBuiltins[name] == nil {
				t.Fatal("nil builtin", name)
			}
		})
	}
}

// chdirForTest mirrors testing.T.Chdir (Go 1.24+) for older toolchains:
// it changes the working directory, sets PWD, and restores both on cleanup.
func chdirForTest(t *testing.T, dir string) {
	t.Helper()
	oldwd, err := os.Getwd()
	require.NoError(t, err)
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(oldwd, dir)
	}
	require.NoError(t, os.Chdir(dir))
	t.Setenv("PWD", dir)
	t.Cleanup(func() {
		if err := os.Chdir(oldwd); err != nil {
			panic("testing.Chdir: " + err.Error())
		}
	})
}
