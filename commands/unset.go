package commands

import (
	"mvdan.cc/sh/v3/syntax"
)

// Unset removes each named variable. Invalid names are ignored.
func Unset(s *Shell, args []string) int {
	for _, name := range args[1:] {
		if syntax.ValidName(name) {
			s.Env.Unsetenv(name)
		}
	}

	return 0
}

func init() {
	AllBuiltins["unset"] = ShellBuiltinFunc(Unset)
}
