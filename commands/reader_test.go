package commands

import (
	"bytes"
	"io"
	"os"
	"strings"
	"syscall"
	"testing"

	"github.com/josephlewis42/minishell/core/signals"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamReader(t *testing.T) {
	var prompts bytes.Buffer
	r := NewStreamReader(strings.NewReader("first\n\nlast"), &prompts, nil)

	for _, want := range []string{"first", "", "last"} {
		line, err := r.ReadLine("> ")
		require.NoError(t, err)
		assert.Equal(t, want, line)
	}

	_, err := r.ReadLine("> ")
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, "> > > > ", prompts.String())
}

func TestStreamReader_leavesRemainingInput(t *testing.T) {
	in := strings.NewReader("line\nrest of input")
	r := NewStreamReader(in, nil, nil)

	line, err := r.ReadLine("")
	require.NoError(t, err)
	assert.Equal(t, "line", line)

	rest, err := io.ReadAll(in)
	require.NoError(t, err)
	assert.Equal(t, "rest of input", string(rest))
}

func TestStreamReader_interrupt(t *testing.T) {
	pr, pw, err := os.Pipe()
	require.NoError(t, err)
	defer pr.Close()
	defer pw.Close()

	dispatcher := signals.NewDispatcher()
	defer dispatcher.Enter(signals.ModePrompt)()
	r := NewStreamReader(pr, nil, dispatcher)

	dispatcher.Handle(syscall.SIGINT)
	_, err = r.ReadLine("")
	assert.ErrorIs(t, err, signals.ErrInterrupted)

	// The read in progress is picked up by the next call.
	_, err = io.WriteString(pw, "after\n")
	require.NoError(t, err)
	line, err := r.ReadLine("")
	require.NoError(t, err)
	assert.Equal(t, "after", line)
}
