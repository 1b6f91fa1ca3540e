// Package signals decides what an interactive shell does when SIGINT or
// SIGQUIT arrive.
//
// Signal delivery only flips flags and wakes readers. The read-eval loop polls
// those flags right after each blocking call returns and reacts there.
package signals

import (
	"errors"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
)

// ErrInterrupted is returned by blocking reads that were cut short by SIGINT.
var ErrInterrupted = errors.New("interrupted")

// StatusInterrupted is the exit status recorded after an interrupted read.
const StatusInterrupted = 130

// Mode describes which blocking operation the shell is in.
type Mode int32

const (
	// ModeIdle is used while the shell is neither reading nor waiting.
	ModeIdle Mode = iota
	// ModePrompt is used while reading the first line of a command.
	ModePrompt
	// ModeContinuation is used while reading continuation lines.
	ModeContinuation
	// ModeHeredoc is used while collecting a here-document body.
	ModeHeredoc
	// ModeExecuting is used while waiting for foreground commands.
	ModeExecuting
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModePrompt:
		return "prompt"
	case ModeContinuation:
		return "continuation"
	case ModeHeredoc:
		return "heredoc"
	case ModeExecuting:
		return "executing"
	default:
		return "unknown"
	}
}

// Dispatcher routes SIGINT and SIGQUIT according to the current Mode.
type Dispatcher struct {
	mode atomic.Int32

	readInterrupt         atomic.Bool
	continuationInterrupt atomic.Bool
	heredocInterrupt      atomic.Bool

	wake chan struct{}

	mu      sync.Mutex
	signals chan os.Signal
	done    chan struct{}
}

// NewDispatcher creates a Dispatcher in ModeIdle. It does not receive OS
// signals until Start is called.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		wake: make(chan struct{}, 1),
	}
}

// Mode returns the current mode.
func (d *Dispatcher) Mode() Mode {
	return Mode(d.mode.Load())
}

// Enter switches to mode and returns a function restoring the previous one.
// Any stale interrupt for mode is cleared first.
func (d *Dispatcher) Enter(mode Mode) (restore func()) {
	if flag := d.flag(mode); flag != nil {
		flag.Store(false)
	}
	prev := Mode(d.mode.Swap(int32(mode)))
	return func() {
		d.mode.Store(int32(prev))
	}
}

func (d *Dispatcher) flag(mode Mode) *atomic.Bool {
	switch mode {
	case ModePrompt:
		return &d.readInterrupt
	case ModeContinuation:
		return &d.continuationInterrupt
	case ModeHeredoc:
		return &d.heredocInterrupt
	default:
		return nil
	}
}

// Handle applies the dispatch decision for sig in the current mode.
//
// SIGQUIT is always discarded by the shell itself. SIGINT marks the active
// read as interrupted and wakes it; while foreground commands run it is left
// to them.
func (d *Dispatcher) Handle(sig os.Signal) {
	if sig != syscall.SIGINT {
		return
	}

	flag := d.flag(d.Mode())
	if flag == nil {
		return
	}
	flag.Store(true)

	select {
	case d.wake <- struct{}{}:
	default:
	}
}

// TakeInterrupt reports whether the current mode was interrupted and clears
// the flag.
func (d *Dispatcher) TakeInterrupt() bool {
	flag := d.flag(d.Mode())
	if flag == nil {
		return false
	}
	return flag.Swap(false)
}

// Wake is signalled every time a read is interrupted.
func (d *Dispatcher) Wake() <-chan struct{} {
	return d.wake
}

// Start begins receiving SIGINT and SIGQUIT from the OS.
//
// Signals are caught rather than ignored so processes started by the shell
// inherit the default dispositions.
func (d *Dispatcher) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.signals != nil {
		return
	}

	d.signals = make(chan os.Signal, 4)
	d.done = make(chan struct{})
	signal.Notify(d.signals, syscall.SIGINT, syscall.SIGQUIT)

	go func(signals <-chan os.Signal, done <-chan struct{}) {
		for {
			select {
			case sig := <-signals:
				d.Handle(sig)
			case <-done:
				return
			}
		}
	}(d.signals, d.done)
}

// Stop restores the default signal behavior.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.signals == nil {
		return
	}
	signal.Stop(d.signals)
	close(d.done)
	d.signals = nil
	d.done = nil
}
