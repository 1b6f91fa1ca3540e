package commands

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/josephlewis42/minishell/core/config"
	"github.com/josephlewis42/minishell/core/history"
	"github.com/josephlewis42/minishell/core/logger"
	"github.com/josephlewis42/minishell/core/shell"
	"github.com/josephlewis42/minishell/core/signals"
	"github.com/josephlewis42/minishell/core/vos"
	"github.com/spf13/afero"
)

const (
	EnvHome   = "HOME"
	EnvPWD    = "PWD"
	EnvOldPWD = "OLDPWD"
	EnvPath   = "PATH"
	EnvShlvl  = "SHLVL"

	clearScreen = "\033[2J\033[H"
)

// historyAdder is implemented by readers that keep their own copy of the
// history for recall.
type historyAdder interface {
	AddHistory(line string) error
	ResetHistory()
}

// Shell holds the state of the read-eval loop.
type Shell struct {
	Env     *vos.OrderedEnv
	Stdio   *vos.Stdio
	Config  *config.Configuration
	Signals *signals.Dispatcher
	History *history.Store
	// Events receives one entry per line and per command, it may be nil.
	Events *logger.SessionLogger
	// Log receives debugging output.
	Log *log.Logger
	// Reader supplies physical lines of input.
	Reader shell.LineReader
	// Interactive enables prompts, history and the exit message on EOF.
	Interactive bool

	LastStatus int
	// Set to true to quit the shell
	Quit bool

	// subshell is set on copies of the shell that run a builtin in a pipeline
	// or with redirections. Their changes never reach the parent.
	subshell bool
}

// NewShell creates a shell using the given configuration and standard
// streams. The environment starts out empty, see Init.
func NewShell(cfg *config.Configuration, stdio *vos.Stdio) *Shell {
	if cfg == nil {
		cfg = config.Default()
	}

	return &Shell{
		Env:     vos.NewOrderedEnv(),
		Stdio:   stdio,
		Config:  cfg,
		Signals: signals.NewDispatcher(),
		History: history.New(afero.NewOsFs(), cfg.HistoryLimit),
		Log:     log.New(io.Discard, "", 0),
	}
}

// Init imports the KEY=VALUE entries of environ and increments SHLVL.
func (s *Shell) Init(environ []string) {
	s.Env = vos.NewOrderedEnvFromEnvList(environ)

	level := 0
	if val, ok := s.Env.LookupEnv(EnvShlvl); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(val)); err == nil && n > 0 {
			level = n
		}
	}
	s.Env.Setenv(EnvShlvl, strconv.Itoa(level+1))
}

// LoadHistory reads the history file and makes its entries available to the
// reader.
func (s *Shell) LoadHistory() error {
	if err := s.History.Init(s.Config.HistoryPath()); err != nil {
		return err
	}

	if adder, ok := s.Reader.(historyAdder); ok {
		for _, line := range s.History.Entries() {
			if err := adder.AddHistory(line); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Shell) addHistory(line string) {
	if !s.History.Add(line) {
		return
	}
	if adder, ok := s.Reader.(historyAdder); ok {
		if err := adder.AddHistory(line); err != nil {
			s.Log.Printf("couldn't add history: %v", err)
		}
	}
}

func (s *Shell) clearHistory() {
	s.History.Clear()
	if adder, ok := s.Reader.(historyAdder); ok {
		adder.ResetHistory()
	}
}

func (s *Shell) colors() *ColorPrinter {
	return &ColorPrinter{
		Mode:       s.Config.Color,
		IsTerminal: s.Interactive,
	}
}

func (s *Shell) prompt() string {
	if !s.Interactive {
		return ""
	}
	return s.colors().Sprintf(ColorBoldYellow, "%s", s.Config.Prompt)
}

func (s *Shell) continuationPrompt() string {
	if !s.Interactive {
		return ""
	}
	return s.Config.ContinuationPrompt
}

func (s *Shell) heredocPrompt() string {
	if !s.Interactive {
		return ""
	}
	return s.Config.HeredocPrompt
}

// Run reads and executes lines until the input ends or exit is called. It
// returns the status the shell should exit with.
func (s *Shell) Run() int {
	if s.Interactive && s.Config.ClearScreen {
		io.WriteString(s.Stdio.Out(), clearScreen)
	}

	reader := &shell.ContinuationReader{
		Reader:             s.Reader,
		ContinuationPrompt: s.continuationPrompt(),
		Signals:            s.Signals,
	}

	var syntaxErr *shell.SyntaxError
	for !s.Quit {
		reader.Prompt = s.prompt()
		line, err := reader.ReadLogicalLine()

		switch {
		case errors.Is(err, io.EOF):
			if s.Interactive {
				fmt.Fprintln(s.Stdio.Out(), "exit")
			}
			return s.LastStatus

		case errors.Is(err, signals.ErrInterrupted):
			// Interrupt discards the line.
			s.LastStatus = signals.StatusInterrupted
			continue

		case errors.As(err, &syntaxErr):
			s.reportSyntaxError(line, err)
			continue

		case err != nil:
			log.Printf("Error readline: %v", err)
			return s.LastStatus

		case strings.TrimSpace(line) == "":
			continue // empty line
		}

		if s.Interactive {
			s.addHistory(line)
		}
		s.RunLine(line)
	}

	return s.LastStatus
}

// RunCommandString runs a single line given on the command line, as with
// sh -c. The line can't be continued.
func (s *Shell) RunCommandString(line string) int {
	switch {
	case shell.HasUnclosedQuotes(line):
		s.reportSyntaxError(line, shell.ErrUnclosedQuotes)
	case shell.NeedsContinuation(line):
		s.reportSyntaxError(line, shell.ErrUnexpectedEOF)
	default:
		s.RunLine(line)
	}
	return s.LastStatus
}

// RunLine lexes, validates, parses and executes a logical line and returns
// the resulting status.
func (s *Shell) RunLine(line string) int {
	tokens, err := shell.Tokenize(line)
	if err == nil {
		err = shell.Validate(tokens)
	}
	if err != nil {
		s.reportSyntaxError(line, err)
		return s.LastStatus
	}
	if len(tokens) == 0 {
		return s.LastStatus
	}

	s.executeSequence(shell.Parse(tokens))

	if err := s.Events.RecordLine(line, s.LastStatus); err != nil {
		s.Log.Printf("couldn't record line: %v", err)
	}
	return s.LastStatus
}

func (s *Shell) reportSyntaxError(line string, err error) {
	printError(s.Stdio.Err(), err.Error())
	s.LastStatus = shell.StatusSyntaxError

	if err := s.Events.RecordSyntaxError(line, err, s.LastStatus); err != nil {
		s.Log.Printf("couldn't record syntax error: %v", err)
	}
}

// Close saves the history of interactive shells and releases the reader.
func (s *Shell) Close() error {
	var lastErr error
	if s.Interactive {
		if err := s.History.Save(); err != nil {
			lastErr = err
		}
	}
	if closer, ok := s.Reader.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

// fork creates a subshell that runs with its own environment and streams.
func (s *Shell) fork(stdio *vos.Stdio) *Shell {
	return &Shell{
		Env:         s.Env.Clone(),
		Stdio:       stdio,
		Config:      s.Config,
		History:     s.History,
		Log:         s.Log,
		Interactive: s.Interactive,
		LastStatus:  s.LastStatus,
		subshell:    true,
	}
}
