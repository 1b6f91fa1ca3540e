package commands

import (
	"fmt"
)

// Env prints every variable that has a value, in the order they were first
// set.
func Env(s *Shell, args []string) int {
	w := s.Stdio.Out()
	for _, envDef := range s.Env.Environ() {
		fmt.Fprintln(w, envDef)
	}

	return 0
}

func init() {
	AllBuiltins["env"] = ShellBuiltinFunc(Env)
}
