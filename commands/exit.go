package commands

import (
	"strconv"
	"strings"
)

// maxExitDigits is the most significant digits an exit argument may have.
const maxExitDigits = 18

// parseExitStatus parses a decimal argument to exit. Surrounding whitespace
// and a sign are allowed. It reports false for anything else, or if the
// number doesn't fit.
func parseExitStatus(arg string) (int, bool) {
	trimmed := strings.Trim(arg, " \t\n\v\f\r")
	digits := strings.TrimLeft(trimmed, "+-")
	if len(trimmed)-len(digits) > 1 || digits == "" {
		return 0, false
	}
	if strings.Trim(digits, "0123456789") != "" {
		return 0, false
	}
	if len(strings.TrimLeft(digits, "0")) > maxExitDigits {
		return 0, false
	}

	n, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return 0, false
	}

	status := int(n % 256)
	if status < 0 {
		status += 256
	}
	return status, true
}

// Exit ends the shell with the given status, or the last one.
//
// In a subshell only the subshell ends, exit's status becomes the status of
// the command.
func Exit(s *Shell, args []string) int {
	if len(args) > 2 {
		printError(s.Stdio.Err(), "exit", "too many arguments")
		return StatusFailure
	}

	status := s.LastStatus
	if len(args) == 2 {
		var ok bool
		status, ok = parseExitStatus(args[1])
		if !ok {
			printError(s.Stdio.Err(), "exit", args[1], "numeric argument required")
			status = StatusExitUsage
		}
	}

	s.Quit = true
	s.LastStatus = status
	return status
}

func init() {
	AllBuiltins["exit"] = ShellBuiltinFunc(Exit)
}
