package commands

import (
	"errors"
	"io"
	"strings"
	"syscall"

	"github.com/abiosoft/readline"
	"github.com/josephlewis42/minishell/core/shell"
	"github.com/josephlewis42/minishell/core/signals"
	"github.com/josephlewis42/minishell/core/vos"
)

// ReadlineReader reads lines from a terminal with line editing and history
// recall.
type ReadlineReader struct {
	Readline *readline.Instance
	signals  *signals.Dispatcher
}

var _ shell.LineReader = (*ReadlineReader)(nil)

// NewReadlineReader creates a reader on the terminal attached to stdio.
// History is kept in memory only, the shell persists it itself.
func NewReadlineReader(stdio *vos.Stdio, dispatcher *signals.Dispatcher, historyLimit int) (*ReadlineReader, error) {
	cfg := &readline.Config{
		Stdin:                  readline.NewCancelableStdin(stdio.In()),
		Stdout:                 stdio.Out(),
		Stderr:                 stdio.Err(),
		HistoryLimit:           historyLimit,
		DisableAutoSaveHistory: true,
	}

	if err := cfg.Init(); err != nil {
		return nil, err
	}

	rl, err := readline.NewEx(cfg)
	if err != nil {
		return nil, err
	}

	return &ReadlineReader{
		Readline: rl,
		signals:  dispatcher,
	}, nil
}

// ReadLine implements shell.LineReader.
//
// Ctrl-C arrives as a key press while the terminal is in raw mode, it's
// routed through the dispatcher as if SIGINT had been delivered.
func (r *ReadlineReader) ReadLine(prompt string) (string, error) {
	r.Readline.SetPrompt(prompt)
	line, err := r.Readline.Readline()

	switch {
	case errors.Is(err, readline.ErrInterrupt):
		if r.signals == nil {
			return "", signals.ErrInterrupted
		}
		r.signals.Handle(syscall.SIGINT)
		if r.signals.TakeInterrupt() {
			return "", signals.ErrInterrupted
		}
		// Not reading in an interruptible mode, treat it as an empty line.
		return "", nil
	case err != nil:
		return "", err
	}

	return line, nil
}

// AddHistory makes line available for recall with the arrow keys.
func (r *ReadlineReader) AddHistory(line string) error {
	return r.Readline.SaveHistory(line)
}

// ResetHistory forgets every recallable line.
func (r *ReadlineReader) ResetHistory() {
	r.Readline.ResetHistory()
}

// Close restores the terminal.
func (r *ReadlineReader) Close() error {
	return r.Readline.Close()
}

// StreamReader reads lines from a non-interactive input such as a pipe or a
// file.
//
// It reads one byte at a time and never ahead of the line it returns, so
// input following that line is left for the commands the shell starts.
type StreamReader struct {
	in      io.Reader
	out     io.Writer
	signals *signals.Dispatcher

	pending chan readResult
}

type readResult struct {
	line string
	err  error
}

var _ shell.LineReader = (*StreamReader)(nil)

// NewStreamReader creates a reader on in. Prompts are written to out if it's
// not nil. Reads may be interrupted through dispatcher if it's not nil.
func NewStreamReader(in io.Reader, out io.Writer, dispatcher *signals.Dispatcher) *StreamReader {
	return &StreamReader{
		in:      in,
		out:     out,
		signals: dispatcher,
	}
}

func (r *StreamReader) readLine(results chan<- readResult) {
	var sb strings.Builder
	buf := make([]byte, 1)
	for {
		n, err := r.in.Read(buf)
		if n == 1 {
			if buf[0] == '\n' {
				results <- readResult{line: sb.String()}
				return
			}
			sb.WriteByte(buf[0])
		}
		if err != nil {
			// A final line without a newline is still a line.
			if errors.Is(err, io.EOF) && sb.Len() > 0 {
				results <- readResult{line: sb.String()}
				return
			}
			results <- readResult{err: err}
			return
		}
	}
}

// ReadLine implements shell.LineReader.
//
// If the read is interrupted the line being read is not lost, it's returned
// by the next call.
func (r *StreamReader) ReadLine(prompt string) (string, error) {
	if prompt != "" && r.out != nil {
		io.WriteString(r.out, prompt)
	}

	if r.pending == nil {
		r.pending = make(chan readResult, 1)
		go r.readLine(r.pending)
	}

	var wake <-chan struct{}
	if r.signals != nil {
		wake = r.signals.Wake()
	}

	for {
		select {
		case res := <-r.pending:
			r.pending = nil
			return res.line, res.err
		case <-wake:
			if r.signals.TakeInterrupt() {
				return "", signals.ErrInterrupted
			}
		}
	}
}
