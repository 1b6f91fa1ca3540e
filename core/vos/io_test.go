package vos

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStdio_Close(t *testing.T) {
	borrowed, err := os.CreateTemp(t.TempDir(), "borrowed")
	require.NoError(t, err)
	defer borrowed.Close()

	r, w, err := os.Pipe()
	require.NoError(t, err)

	stdio := NewStdio(nil, borrowed, borrowed)
	stdio.RedirectStdin(r)
	stdio.RedirectStdout(w)
	assert.Same(t, r, stdio.Stdin)
	assert.Same(t, w, stdio.Stdout)

	require.NoError(t, stdio.Close())
	assert.ErrorIs(t, r.Close(), os.ErrClosed)
	assert.ErrorIs(t, w.Close(), os.ErrClosed)

	// Borrowed files stay open and closing again is harmless.
	_, err = borrowed.WriteString("still open")
	assert.NoError(t, err)
	assert.NoError(t, stdio.Close())
}

func TestStdio_missingStreams(t *testing.T) {
	stdio := NewStdio(nil, nil, nil)

	n, err := stdio.In().Read(make([]byte, 1))
	assert.Zero(t, n)
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, io.Discard, stdio.Out())
	assert.Equal(t, io.Discard, stdio.Err())
}
