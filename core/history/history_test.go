package history

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Add(t *testing.T) {
	s := New(afero.NewMemMapFs(), 0)

	assert.True(t, s.Add("ls"))
	assert.False(t, s.Add("ls"), "duplicate of last")
	assert.False(t, s.Add("   "), "blank")
	assert.False(t, s.Add(""), "empty")
	assert.True(t, s.Add("pwd"))
	assert.True(t, s.Add("ls"), "duplicate of older entry")

	assert.Equal(t, []string{"ls", "pwd", "ls"}, s.Entries())
}

func TestStore_limit(t *testing.T) {
	s := New(afero.NewMemMapFs(), 2)
	s.Add("one")
	s.Add("two")
	s.Add("three")

	assert.Equal(t, []string{"two", "three"}, s.Entries())
}

func TestStore_saveAndLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := filepath.Join("/home/user", ".minishell_history")

	s := New(fs, 10)
	require.NoError(t, s.Init(path))
	assert.Empty(t, s.Entries(), "missing file loads nothing")

	s.Add("echo one")
	s.Add("echo two")
	require.NoError(t, s.Save())

	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.Equal(t, "echo one\necho two\n", string(data))

	loaded := New(fs, 10)
	require.NoError(t, loaded.Init(path))
	assert.Equal(t, []string{"echo one", "echo two"}, loaded.Entries())
	assert.Equal(t, path, loaded.Path())
}

func TestStore_loadAppliesRules(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/hist", []byte("a\na\n\nb\nc\nd\n"), 0600))

	s := New(fs, 3)
	require.NoError(t, s.Init("/hist"))
	assert.Equal(t, []string{"b", "c", "d"}, s.Entries())
}

func TestStore_Clear(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := New(fs, 10)
	require.NoError(t, s.Init("/hist"))
	s.Add("secret")
	require.NoError(t, s.Save())

	s.Clear()
	assert.Empty(t, s.Entries())
	require.NoError(t, s.Save())

	data, err := afero.ReadFile(fs, "/hist")
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestStore_saveBeforeInit(t *testing.T) {
	s := New(afero.NewMemMapFs(), 10)
	s.Add("ls")
	assert.NoError(t, s.Save())
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	assert.Equal(t, "/home/tester/.minishell_history", DefaultPath())

	t.Setenv("HOME", "")
	assert.Equal(t, ".minishell_history", DefaultPath())
}
