package commands

import (
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// Export sets variables given as KEY=VALUE. A bare KEY declares the variable
// without giving it a value. Without arguments it behaves like env.
//
// Processing stops at the first invalid identifier.
func Export(s *Shell, args []string) int {
	if len(args) < 2 {
		return Env(s, args)
	}

	for _, arg := range args[1:] {
		key, value, hasValue := strings.Cut(arg, "=")
		if !syntax.ValidName(key) {
			printError(s.Stdio.Err(), "export", "`"+key+"'", "not a valid identifier")
			return StatusFailure
		}

		if hasValue {
			s.Env.Setenv(key, value)
		} else {
			s.Env.Declare(key)
		}
	}

	return 0
}

func init() {
	AllBuiltins["export"] = ShellBuiltinFunc(Export)
}
