package vos

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"golang.org/x/sys/unix"
)

var (
	// ErrNotFound is the error resulting if a path search failed to find an
	// executable file.
	ErrNotFound = errors.New("command not found")

	// ErrNoSuchFile is returned for a command given as a path that does not
	// exist.
	ErrNoSuchFile = fs.ErrNotExist

	// ErrPermission is returned when the best candidate exists but can't be
	// executed.
	ErrPermission = fs.ErrPermission

	// ErrIsDirectory is returned when a command given as a path names a
	// directory.
	ErrIsDirectory = errors.New("is a directory")
)

// isExecutable reports whether path is a regular file the process may execute.
func isExecutable(path string) bool {
	d, err := os.Stat(path)
	if err != nil || !d.Mode().IsRegular() {
		return false
	}
	return unix.Access(path, unix.X_OK) == nil
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return ErrNoSuchFile
	case err != nil:
		return err
	case d.IsDir():
		return ErrIsDirectory
	case isExecutable(file):
		return nil
	}
	return ErrPermission
}

// LookPath searches for an executable named file in the directories named by
// the PATH variable. If file contains a slash, it is tried directly and the
// PATH is not consulted.
//
// An empty PATH element means the current directory. If no element holds an
// executable but one holds a non-executable regular file, the first such
// candidate is returned along with ErrPermission.
func LookPath(env VEnv, file string) (string, error) {
	if file == "" {
		return "", ErrNotFound
	}
	if strings.Contains(file, "/") {
		if err := findExecutable(file); err != nil {
			return "", err
		}
		return file, nil
	}

	path, ok := env.LookupEnv("PATH")
	if !ok {
		return "", ErrNotFound
	}

	var nonExec string
	for _, dir := range strings.Split(path, ":") {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := dir + "/" + file
		if isExecutable(candidate) {
			return candidate, nil
		}
		if nonExec != "" {
			continue
		}
		if d, err := os.Stat(candidate); err == nil && !d.IsDir() {
			nonExec = candidate
		}
	}

	if nonExec != "" {
		return nonExec, ErrPermission
	}
	return "", ErrNotFound
}
