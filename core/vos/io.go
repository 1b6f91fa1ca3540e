package vos

import (
	"errors"
	"io"
	"os"
)

// Stdio is the set of standard streams handed to one command, together with
// the descriptors it owns. Owned descriptors are closed exactly once by Close,
// whichever way the command finishes.
type Stdio struct {
	Stdin  *os.File
	Stdout *os.File
	Stderr *os.File

	owned []*os.File
}

// NewStdio creates a Stdio that borrows the given streams without owning them.
func NewStdio(stdin, stdout, stderr *os.File) *Stdio {
	return &Stdio{
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	}
}

// Own registers f to be closed by Close. Nil files are ignored.
func (s *Stdio) Own(f *os.File) *os.File {
	if f != nil {
		s.owned = append(s.owned, f)
	}
	return f
}

// RedirectStdin replaces standard input with an owned file. Later calls win.
func (s *Stdio) RedirectStdin(f *os.File) {
	s.Stdin = s.Own(f)
}

// RedirectStdout replaces standard output with an owned file. Later calls win.
func (s *Stdio) RedirectStdout(f *os.File) {
	s.Stdout = s.Own(f)
}

// Close closes every owned descriptor.
func (s *Stdio) Close() error {
	var lastErr error
	for _, f := range s.owned {
		if err := f.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
			lastErr = err
		}
	}
	s.owned = nil
	return lastErr
}

// Readers and writers for in-process commands.

// In returns standard input, or an always-EOF reader if there is none.
func (s *Stdio) In() io.Reader {
	if s.Stdin == nil {
		return eofReader{}
	}
	return s.Stdin
}

// Out returns standard output, discarding writes if there is none.
func (s *Stdio) Out() io.Writer {
	if s.Stdout == nil {
		return io.Discard
	}
	return s.Stdout
}

// Err returns standard error, discarding writes if there is none.
func (s *Stdio) Err() io.Writer {
	if s.Stderr == nil {
		return io.Discard
	}
	return s.Stderr
}

type eofReader struct{}

func (eofReader) Read([]byte) (int, error) {
	return 0, io.EOF
}
