package config

import (
	"errors"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialize(t *testing.T) {
	tempDir := t.TempDir()
	if _, err := Initialize(tempDir, log.New(io.Discard, "", 0)); err != nil {
		t.Fatal(err)
	}

	// Check that the config is valid
	cfg, err := Load(tempDir)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, defaultConfig().Prompt, cfg.Prompt)

	t.Run("OpenEventLog", func(t *testing.T) {
		cfg.EventLog = "events.jsonl"
		fd, err := cfg.OpenEventLog()
		require.NoError(t, err)
		fd.Close()

		_, err = os.Stat(filepath.Join(tempDir, "events.jsonl"))
		assert.NoError(t, err, "event log is relative to the config dir")

		rd, err := cfg.ReadEventLog()
		require.NoError(t, err)
		rd.Close()
	})

	t.Run("LoadConfigFile", func(t *testing.T) {
		_, err := Load(filepath.Join(tempDir, ConfigurationName))
		assert.NoError(t, err)
	})
}

func TestInitialize_keepsExisting(t *testing.T) {
	tempDir := t.TempDir()
	custom := []byte("prompt: \"$ \"\n")
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, ConfigurationName), custom, 0600))

	cfg, err := Initialize(tempDir, log.New(io.Discard, "", 0))
	require.NoError(t, err)
	assert.Equal(t, "$ ", cfg.Prompt)
	assert.Equal(t, "> ", cfg.HeredocPrompt, "unset fields keep their defaults")
}

func TestLoad(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		_, err := Load(t.TempDir())
		assert.True(t, errors.Is(err, fs.ErrNotExist))
	})

	t.Run("missing falls back to defaults", func(t *testing.T) {
		cfg, err := LoadOrDefault(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, defaultConfig(), cfg)
	})

	t.Run("unknown field", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigurationName), []byte("bogus: 1\n"), 0600))

		_, err := Load(dir)
		assert.Error(t, err)
	})

	t.Run("invalid value", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigurationName), []byte("color: rainbow\n"), 0600))

		_, err := LoadOrDefault(dir)
		assert.ErrorContains(t, err, "color")
	})
}
