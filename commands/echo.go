package commands

import (
	"io"
	"strings"
)

// isNoNewlineFlag matches -n, -nn, -nnn...
func isNoNewlineFlag(arg string) bool {
	return len(arg) >= 2 && arg[0] == '-' && strings.Trim(arg[1:], "n") == ""
}

// Echo writes its arguments separated by spaces. A leading run of -n flags
// suppresses the trailing newline.
func Echo(s *Shell, args []string) int {
	args = args[1:]
	newline := true
	for len(args) > 0 && isNoNewlineFlag(args[0]) {
		newline = false
		args = args[1:]
	}

	out := strings.Join(args, " ")
	if newline {
		out += "\n"
	}
	io.WriteString(s.Stdio.Out(), out)

	return 0
}

func init() {
	AllBuiltins["echo"] = ShellBuiltinFunc(Echo)
}
