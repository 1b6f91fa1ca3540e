package commands

import (
	"fmt"
	"os"
)

// Pwd prints the current working directory.
func Pwd(s *Shell, args []string) int {
	wd, err := os.Getwd()
	if err != nil {
		printError(s.Stdio.Err(), "pwd", "error getting current directory")
		return StatusFailure
	}

	fmt.Fprintln(s.Stdio.Out(), wd)
	return 0
}

func init() {
	AllBuiltins["pwd"] = ShellBuiltinFunc(Pwd)
}
