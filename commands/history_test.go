package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistory(t *testing.T) {
	sh, output := newTestShell(t)
	sh.History.Add("ls")
	sh.History.Add("pwd")

	assert.Equal(t, 0, History(sh, []string{"history"}))
	assert.Equal(t, "1  ls\n2  pwd\n", output())

	t.Run("clear in subshell", func(t *testing.T) {
		sub := sh.fork(sh.Stdio)
		assert.Equal(t, 0, History(sub, []string{"history", "-c"}))
		assert.Len(t, sh.History.Entries(), 2)
	})

	t.Run("clear", func(t *testing.T) {
		assert.Equal(t, 0, History(sh, []string{"history", "-c"}))
		assert.Empty(t, sh.History.Entries())
	})

	t.Run("bad flag", func(t *testing.T) {
		assert.Equal(t, StatusFailure, History(sh, []string{"history", "-z"}))
	})
}
