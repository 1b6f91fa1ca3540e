package commands

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"syscall"
	"unicode"
	"unicode/utf8"

	"github.com/josephlewis42/minishell/core/vos"
)

const (
	// StatusFailure is returned by failed builtins and redirections.
	StatusFailure = 1
	// StatusCannotExecute is returned when a command exists but can't be run.
	StatusCannotExecute = 126
	// StatusNotFound is returned when a command doesn't exist.
	StatusNotFound = 127
	// StatusSignalBase is added to the number of the signal that killed a
	// command.
	StatusSignalBase = 128
	// StatusExitUsage is returned by exit given a non-numeric argument.
	StatusExitUsage = 255
)

// Strerror describes err the way the C library does: capitalized and without
// the operation and path os errors carry.
func Strerror(err error) string {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return capitalize(errno.Error())
	}

	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return capitalize(pathErr.Err.Error())
	}

	return capitalize(err.Error())
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// printError writes a single diagnostic line prefixed with the shell name.
func printError(w io.Writer, context ...string) {
	fmt.Fprintln(w, "minishell: "+strings.Join(context, ": "))
}

// resolutionStatus reports a failed command lookup and returns the status
// the command finishes with.
func resolutionStatus(w io.Writer, name string, err error) int {
	switch {
	case errors.Is(err, vos.ErrNotFound):
		printError(w, name, "command not found")
		return StatusNotFound
	case errors.Is(err, vos.ErrIsDirectory):
		printError(w, name, "is a directory")
		return StatusCannotExecute
	case errors.Is(err, vos.ErrPermission):
		printError(w, name, "Permission denied")
		return StatusCannotExecute
	case errors.Is(err, vos.ErrNoSuchFile):
		printError(w, name, "No such file or directory")
		return StatusNotFound
	default:
		printError(w, name, Strerror(err))
		return StatusNotFound
	}
}

// startStatus reports a command that was resolved but failed to start.
func startStatus(w io.Writer, name string, err error) int {
	if errors.Is(err, syscall.EACCES) || errors.Is(err, syscall.ENOEXEC) {
		printError(w, name, "Permission denied")
		return StatusCannotExecute
	}
	printError(w, name, Strerror(err))
	return StatusNotFound
}
