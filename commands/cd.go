package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// cdTarget picks the directory cd changes to. It reports whether the new
// directory should be printed.
func cdTarget(s *Shell, args []string) (dir string, show bool, ok bool) {
	switch {
	case len(args) < 2:
		dir, ok = s.Env.LookupEnv(EnvHome)
		if !ok {
			printError(s.Stdio.Err(), "cd", "HOME not set")
		}
		return dir, false, ok

	case args[1] == "-":
		dir, ok = s.Env.LookupEnv(EnvOldPWD)
		if !ok {
			printError(s.Stdio.Err(), "cd", "OLDPWD not set")
		}
		return dir, true, ok

	default:
		return args[1], false, true
	}
}

// checkDir fails the way chdir would for dir, without changing the working
// directory.
func checkDir(dir string) error {
	var st unix.Stat_t
	if err := unix.Stat(dir, &st); err != nil {
		return err
	}
	if st.Mode&unix.S_IFMT != unix.S_IFDIR {
		return unix.ENOTDIR
	}
	return unix.Access(dir, unix.X_OK)
}

// Cd changes the working directory and updates PWD and OLDPWD.
//
// In a subshell the directory is only checked and the variables of the
// subshell updated, the working directory of the process is shared.
func Cd(s *Shell, args []string) int {
	dir, show, ok := cdTarget(s, args)
	if !ok {
		return StatusFailure
	}

	oldWd, oldErr := os.Getwd()

	var err error
	if s.subshell {
		err = checkDir(dir)
	} else {
		err = os.Chdir(dir)
	}
	if err != nil {
		printError(s.Stdio.Err(), "cd", dir, Strerror(err))
		return StatusFailure
	}

	if oldErr != nil {
		oldWd = ""
	}
	s.Env.Setenv(EnvOldPWD, oldWd)

	newWd, err := os.Getwd()
	if s.subshell {
		newWd, err = dir, nil
		if !filepath.IsAbs(newWd) {
			newWd = filepath.Join(oldWd, newWd)
		}
	}
	if err == nil {
		s.Env.Setenv(EnvPWD, newWd)
		if show {
			fmt.Fprintln(s.Stdio.Out(), newWd)
		}
	}

	return 0
}

func init() {
	AllBuiltins["cd"] = ShellBuiltinFunc(Cd)
}
