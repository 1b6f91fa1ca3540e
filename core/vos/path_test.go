package vos

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string, perm os.FileMode) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), perm))
	require.NoError(t, os.Chmod(path, perm))
}

func TestLookPath_slash(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "exec"), 0755)
	writeFile(t, filepath.Join(dir, "noexec"), 0644)
	env := NewOrderedEnv()

	cases := map[string]struct {
		file    string
		want    string
		wantErr error
	}{
		"executable":     {file: filepath.Join(dir, "exec"), want: filepath.Join(dir, "exec")},
		"not-executable": {file: filepath.Join(dir, "noexec"), wantErr: ErrPermission},
		"directory":      {file: dir + "/", wantErr: ErrIsDirectory},
		"missing":        {file: filepath.Join(dir, "missing"), wantErr: ErrNoSuchFile},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			got, err := LookPath(env, tc.file)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestLookPath_search(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first")
	second := filepath.Join(dir, "second")
	third := filepath.Join(dir, "third")
	writeFile(t, filepath.Join(first, "tool"), 0644)
	writeFile(t, filepath.Join(second, "tool"), 0755)
	writeFile(t, filepath.Join(third, "tool"), 0755)
	writeFile(t, filepath.Join(first, "broken"), 0644)
	writeFile(t, filepath.Join(third, "broken"), 0600)
	require.NoError(t, os.MkdirAll(filepath.Join(first, "dironly"), 0755))

	env := NewOrderedEnv()
	env.Setenv("PATH", first+":"+second+":"+third)

	t.Run("executable wins over earlier non-executable", func(t *testing.T) {
		got, err := LookPath(env, "tool")
		assert.NoError(t, err)
		assert.Equal(t, filepath.Join(second, "tool"), got)
	})

	t.Run("first non-executable is remembered", func(t *testing.T) {
		got, err := LookPath(env, "broken")
		assert.ErrorIs(t, err, ErrPermission)
		assert.Equal(t, filepath.Join(first, "broken"), got)
	})

	t.Run("directories are skipped", func(t *testing.T) {
		_, err := LookPath(env, "dironly")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := LookPath(env, "does-not-exist")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := LookPath(env, "")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestLookPath_noPath(t *testing.T) {
	env := NewOrderedEnv()
	_, err := LookPath(env, "sh")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLookPath_emptyElementIsCwd(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "local-tool"), 0755)

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })

	env := NewOrderedEnv()
	env.Setenv("PATH", "/nonexistent::")

	got, err := LookPath(env, "local-tool")
	assert.NoError(t, err)
	assert.Equal(t, "./local-tool", got)
}
