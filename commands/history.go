package commands

import (
	"fmt"
)

// History prints the history list numbered from 1, or clears it.
func History(s *Shell, args []string) int {
	cmd := &SimpleCommand{
		Use:   "history [-c]",
		Short: "Display or manipulate the history list.",
	}
	clearOpt := cmd.Flags().Bool('c', "clear the history list by deleting all the entries")

	return cmd.Run(s, args, func() int {
		if *clearOpt {
			// Subshells share the parent's store.
			if !s.subshell {
				s.clearHistory()
			}
			return 0
		}

		w := s.Stdio.Out()
		for i, line := range s.History.Entries() {
			fmt.Fprintf(w, "%d  %s\n", i+1, line)
		}
		return 0
	})
}

func init() {
	AllBuiltins["history"] = ShellBuiltinFunc(History)
}
