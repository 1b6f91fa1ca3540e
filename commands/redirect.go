package commands

import (
	"fmt"
	"os"

	"github.com/josephlewis42/minishell/core/shell"
	"github.com/josephlewis42/minishell/core/vos"
)

// RedirectError is returned when a redirection target can't be opened.
type RedirectError struct {
	Target string
	Err    error
}

func (e *RedirectError) Error() string {
	return fmt.Sprintf("%s: %s", e.Target, Strerror(e.Err))
}

func (e *RedirectError) Unwrap() error {
	return e.Err
}

// openRedirection opens the file a single redirection refers to.
func openRedirection(r *shell.Redirection, docs heredocs) (*os.File, error) {
	switch r.Kind {
	case shell.RedirectIn:
		return os.Open(r.Target)
	case shell.RedirectOut:
		return os.OpenFile(r.Target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	case shell.RedirectAppend:
		return os.OpenFile(r.Target, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	case shell.RedirectHeredoc:
		return heredocPipe(docs[r])
	default:
		return nil, fmt.Errorf("unknown redirection %v", r.Kind)
	}
}

// applyRedirections opens the redirections of cmd in source order and
// installs them in stdio. Later redirections of the same stream replace
// earlier ones, every file opened is still created and owned by stdio.
//
// Processing stops at the first file that can't be opened.
func applyRedirections(cmd *shell.Command, stdio *vos.Stdio, docs heredocs) error {
	for i := range cmd.Redirections {
		r := &cmd.Redirections[i]

		f, err := openRedirection(r, docs)
		if err != nil {
			return &RedirectError{Target: r.Target, Err: err}
		}

		switch r.Kind {
		case shell.RedirectIn, shell.RedirectHeredoc:
			stdio.RedirectStdin(f)
		default:
			stdio.RedirectStdout(f)
		}
	}
	return nil
}
