package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/josephlewis42/minishell/core/shell"
	"github.com/josephlewis42/minishell/core/signals"
)

// heredocs holds the collected body of every here-document of a stage.
type heredocs map[*shell.Redirection]string

// collectHeredocs reads the body of every here-document in p, in source order.
// It must run before p is expanded, the delimiters are taken verbatim.
//
// signals.ErrInterrupted is returned if the user interrupted the collection,
// the bodies collected so far are discarded.
func (s *Shell) collectHeredocs(p *shell.Pipeline) (heredocs, error) {
	docs := make(heredocs)
	for _, cmd := range p.Commands {
		for i := range cmd.Redirections {
			r := &cmd.Redirections[i]
			if r.Kind != shell.RedirectHeredoc {
				continue
			}

			body, err := s.readHeredoc(r.Target)
			if err != nil {
				return nil, err
			}
			docs[r] = body
		}
	}
	return docs, nil
}

func (s *Shell) readHeredoc(rawDelimiter string) (string, error) {
	quoted := strings.ContainsAny(rawDelimiter, `'"`)
	delimiter := shell.RemoveQuotes(rawDelimiter)
	expander := &shell.Expander{Env: s.Env, LastStatus: s.LastStatus}

	if s.Signals != nil {
		defer s.Signals.Enter(signals.ModeHeredoc)()
	}

	var body strings.Builder
	for {
		line, err := s.Reader.ReadLine(s.heredocPrompt())
		switch {
		case errors.Is(err, io.EOF):
			fmt.Fprintf(s.Stdio.Err(), "minishell: warning: here-document delimited by end-of-file (wanted '%s')\n", delimiter)
			return body.String(), nil
		case err != nil:
			return "", err
		case line == delimiter:
			return body.String(), nil
		}

		if !quoted {
			line = expander.ExpandHeredocLine(line)
		}
		body.WriteString(line)
		body.WriteByte('\n')
	}
}

// heredocPipe returns a file that reads back body. The body is written from
// a separate goroutine so it may be larger than the pipe buffer.
func heredocPipe(body string) (*os.File, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, err
	}

	go func() {
		defer w.Close()
		// The reader may exit without consuming everything.
		_, _ = io.WriteString(w, body)
	}()

	return r, nil
}
