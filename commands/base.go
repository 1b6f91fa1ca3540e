package commands

import (
	"fmt"
	"io"

	getopt "github.com/pborman/getopt/v2"
)

// SimpleCommand parses the options of builtins that take any.
type SimpleCommand struct {
	// Use holds a one line usage string
	Use string
	// Short holds a one line description of the command.
	Short string
	// ShowHelp sets whether help is displayed or not.
	// If this is non-nil when Run() is called, then the default help flag isn't
	// added.
	ShowHelp *bool

	flags *getopt.Set
}

// Flags gets the command's flag set.
func (s *SimpleCommand) Flags() *getopt.Set {
	if s.flags == nil {
		s.flags = getopt.New()
	}

	return s.flags
}

// PrintHelp writes help for the command to the given writer.
func (s *SimpleCommand) PrintHelp(w io.Writer) {
	fmt.Fprint(w, "usage: ")
	fmt.Fprintln(w, s.Use)
	fmt.Fprintln(w, s.Short)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	s.Flags().PrintOptions(w)
}

// Run parses args, args[0] being the name of the command. If flag parsing was
// successful the callback is called.
func (s *SimpleCommand) Run(sh *Shell, args []string, callback func() int) int {
	opts := s.Flags()

	// Add help flag if not overridden.
	if s.ShowHelp == nil {
		s.ShowHelp = opts.BoolLong("help", 'h', "show this help and exit")
	}

	if err := opts.Getopt(args, nil); err != nil {
		printError(sh.Stdio.Err(), args[0], err.Error())
		s.PrintHelp(sh.Stdio.Err())
		return StatusFailure
	}

	if *s.ShowHelp {
		s.PrintHelp(sh.Stdio.Out())
		return 0
	}

	return callback()
}
