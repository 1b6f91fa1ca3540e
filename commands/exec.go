package commands

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"syscall"

	"github.com/josephlewis42/minishell/core/shell"
	"github.com/josephlewis42/minishell/core/signals"
	"github.com/josephlewis42/minishell/core/vos"
	"mvdan.cc/sh/v3/syntax"
)

// executeSequence runs the stages of seq in order. A stage joined to the
// next one by && ends the sequence if it failed, one joined by || ends it if
// it succeeded.
func (s *Shell) executeSequence(seq *shell.Sequence) {
	for _, stage := range seq.Stages {
		status, err := s.executePipeline(stage)
		s.LastStatus = status

		switch {
		case err != nil:
			return
		case s.Quit:
			return
		case stage.Op == shell.OpAnd && status != 0:
			return
		case stage.Op == shell.OpOr && status == 0:
			return
		}
	}
}

// executePipeline collects the here-documents of p, expands it and runs it.
// A non-nil error means the rest of the line must not run.
func (s *Shell) executePipeline(p *shell.Pipeline) (int, error) {
	docs, err := s.collectHeredocs(p)
	switch {
	case errors.Is(err, signals.ErrInterrupted):
		return signals.StatusInterrupted, err
	case err != nil:
		printError(s.Stdio.Err(), "here-document", Strerror(err))
		return StatusFailure, err
	}

	expander := &shell.Expander{Env: s.Env, LastStatus: s.LastStatus}
	expander.ExpandPipeline(p)

	// Builtins that change the shell's state have to run in it.
	if len(p.Commands) == 1 && len(p.Commands[0].Redirections) == 0 {
		args := p.Commands[0].Args
		if len(args) == 0 {
			return 0, nil
		}
		if builtin, ok := AllBuiltins[args[0]]; ok {
			status := builtin.Main(s, args)
			s.recordCommand(args, "", true, status)
			return status, nil
		}
	}

	return s.runPipeline(p, docs), nil
}

// process is a command of a pipeline that was started, or that failed before
// it could be.
type process struct {
	argv    []string
	path    string
	builtin bool

	// cmd is set for external commands.
	cmd *exec.Cmd
	// done receives the status of builtins running in a subshell.
	done chan int
	// status holds the result of commands that never started.
	status int
}

func finished(argv []string, status int) *process {
	return &process{argv: argv, status: status}
}

func (p *process) started() bool {
	return p.cmd != nil || p.done != nil
}

// wait blocks until the process ends. It returns its exit status and the
// signal that killed it, if any.
func (p *process) wait() (int, syscall.Signal) {
	switch {
	case p.cmd != nil:
		if err := p.cmd.Wait(); err != nil && p.cmd.ProcessState == nil {
			return StatusFailure, 0
		}
		state := p.cmd.ProcessState
		if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
			return StatusSignalBase + int(ws.Signal()), ws.Signal()
		}
		return state.ExitCode(), 0

	case p.done != nil:
		return <-p.done, 0

	default:
		return p.status, 0
	}
}

// runPipeline starts every command of p left to right, connected by pipes,
// then waits for all of them. The status is the one of the last command.
func (s *Shell) runPipeline(p *shell.Pipeline, docs heredocs) int {
	if s.Signals != nil {
		defer s.Signals.Enter(signals.ModeExecuting)()
	}

	var procs []*process
	var prevRead *os.File
	for i, cmd := range p.Commands {
		stdio := vos.NewStdio(s.Stdio.Stdin, s.Stdio.Stdout, s.Stdio.Stderr)
		if prevRead != nil {
			stdio.RedirectStdin(prevRead)
			prevRead = nil
		}

		if i < len(p.Commands)-1 {
			r, w, err := os.Pipe()
			if err != nil {
				printError(s.Stdio.Err(), "pipe", Strerror(err))
				stdio.Close()
				procs = append(procs, finished(cmd.Args, StatusFailure))
				break
			}
			stdio.RedirectStdout(w)
			prevRead = r
		}

		procs = append(procs, s.start(cmd, stdio, docs))
	}

	return s.wait(procs)
}

func (s *Shell) wait(procs []*process) int {
	status := 0
	var sig syscall.Signal
	for _, proc := range procs {
		status, sig = proc.wait()
		if proc.started() {
			s.recordCommand(proc.argv, proc.path, proc.builtin, status)
		}
	}

	switch sig {
	case syscall.SIGINT:
		fmt.Fprintln(s.Stdio.Out())
	case syscall.SIGQUIT:
		fmt.Fprintln(s.Stdio.Err(), "Quit (core dumped)")
	}

	return status
}

// start applies the redirections of cmd and starts it. Descriptors in stdio
// are closed once the command no longer needs them in this process.
func (s *Shell) start(cmd *shell.Command, stdio *vos.Stdio, docs heredocs) *process {
	if err := applyRedirections(cmd, stdio, docs); err != nil {
		printError(stdio.Err(), err.Error())
		stdio.Close()
		return finished(cmd.Args, StatusFailure)
	}

	if len(cmd.Args) == 0 {
		stdio.Close()
		return finished(nil, 0)
	}

	if builtin, ok := AllBuiltins[cmd.Args[0]]; ok {
		return s.startBuiltin(builtin, cmd.Args, stdio)
	}
	return s.startExternal(cmd.Args, stdio)
}

func (s *Shell) startBuiltin(builtin ShellBuiltin, argv []string, stdio *vos.Stdio) *process {
	proc := &process{
		argv:    argv,
		builtin: true,
		done:    make(chan int, 1),
	}

	sub := s.fork(stdio)
	go func() {
		status := builtin.Main(sub, argv)
		stdio.Close()
		proc.done <- status
	}()

	return proc
}

func (s *Shell) startExternal(argv []string, stdio *vos.Stdio) *process {
	path, err := vos.LookPath(s.Env, argv[0])
	if err != nil {
		status := resolutionStatus(stdio.Err(), argv[0], err)
		stdio.Close()
		s.recordUnknownCommand(argv, err, status)
		return finished(argv, status)
	}

	// A nil Env would hand the shell's own environment to the child.
	env := s.Env.Environ()
	if env == nil {
		env = []string{}
	}

	cmd := &exec.Cmd{
		Path: path,
		Args: argv,
		Env:  env,
	}
	// Only set real files, a typed nil would be used as one.
	if stdio.Stdin != nil {
		cmd.Stdin = stdio.Stdin
	}
	if stdio.Stdout != nil {
		cmd.Stdout = stdio.Stdout
	}
	if stdio.Stderr != nil {
		cmd.Stderr = stdio.Stderr
	}

	s.Log.Printf("exec %s: %s", path, quoteArgs(argv))
	err = cmd.Start()
	if err != nil {
		status := startStatus(stdio.Err(), argv[0], err)
		stdio.Close()
		s.recordUnknownCommand(argv, err, status)
		return finished(argv, status)
	}

	// The child holds its own copies now.
	stdio.Close()
	return &process{
		argv: argv,
		path: path,
		cmd:  cmd,
	}
}

// quoteArgs formats argv so it could be pasted back into a shell.
func quoteArgs(argv []string) string {
	quoted := make([]string, len(argv))
	for i, arg := range argv {
		q, err := syntax.Quote(arg, syntax.LangBash)
		if err != nil {
			q = strconv.Quote(arg)
		}
		quoted[i] = q
	}
	return strings.Join(quoted, " ")
}

func (s *Shell) recordCommand(argv []string, path string, builtin bool, status int) {
	if err := s.Events.RecordCommand(argv, path, builtin, status); err != nil {
		s.Log.Printf("couldn't record command: %v", err)
	}
}

func (s *Shell) recordUnknownCommand(argv []string, err error, status int) {
	if err := s.Events.RecordUnknownCommand(argv, err, status); err != nil {
		s.Log.Printf("couldn't record unknown command: %v", err)
	}
}
