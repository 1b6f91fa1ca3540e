package shell

import (
	"errors"
	"io"
	"strings"

	"github.com/josephlewis42/minishell/core/signals"
)

// LineReader reads one physical line of input.
//
// It returns io.EOF at the end of input and signals.ErrInterrupted if the
// read was cut short by SIGINT.
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

// HasUnclosedQuotes reports whether line ends inside a quoted string.
func HasUnclosedQuotes(line string) bool {
	var quote byte
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case quote == '\'':
			if c == '\'' {
				quote = 0
			}
		case quote == '"':
			if c == '\\' {
				i++
			} else if c == '"' {
				quote = 0
			}
		case c == '\\':
			i++
		case c == '\'' || c == '"':
			quote = c
		}
	}
	return quote != 0
}

// trailingBackslashes counts the backslashes ending line, ignoring trailing
// blanks. It also returns the index of the last non-blank byte.
func trailingBackslashes(line string) (count, last int) {
	i := len(line) - 1
	for i >= 0 && isBlank(line[i]) {
		i--
	}
	last = i
	for i >= 0 && line[i] == '\\' {
		count++
		i--
	}
	return count, last
}

// NeedsContinuation reports whether line is incomplete: it has an open quote
// or ends in an odd number of backslashes.
func NeedsContinuation(line string) bool {
	if HasUnclosedQuotes(line) {
		return true
	}
	count, _ := trailingBackslashes(line)
	return count%2 == 1
}

// JoinContinuation appends next to line. A line continuation backslash is
// dropped along with any blanks after it, leading blanks of next are dropped.
func JoinContinuation(line, next string) string {
	if count, last := trailingBackslashes(line); count%2 == 1 {
		line = line[:last]
	}
	return line + strings.TrimLeft(next, " \t\n")
}

// ContinuationReader produces logically complete lines from a LineReader.
type ContinuationReader struct {
	Reader             LineReader
	Prompt             string
	ContinuationPrompt string

	// Signals, if set, tracks whether the first line or a continuation line
	// is being read.
	Signals *signals.Dispatcher
}

func (c *ContinuationReader) read(mode signals.Mode, prompt string) (string, error) {
	if c.Signals != nil {
		defer c.Signals.Enter(mode)()
	}
	return c.Reader.ReadLine(prompt)
}

// ReadLogicalLine reads a line, then keeps reading continuation lines while
// it is incomplete.
//
// It returns io.EOF if input ends before any line, ErrUnexpectedEOF if it ends
// in the middle of one and signals.ErrInterrupted if a read was interrupted.
func (c *ContinuationReader) ReadLogicalLine() (string, error) {
	line, err := c.read(signals.ModePrompt, c.Prompt)
	if err != nil {
		return "", err
	}

	for NeedsContinuation(line) {
		more, err := c.read(signals.ModeContinuation, c.ContinuationPrompt)
		switch {
		case errors.Is(err, io.EOF):
			return "", ErrUnexpectedEOF
		case err != nil:
			return "", err
		}
		line = JoinContinuation(line, more)
	}

	return line, nil
}
