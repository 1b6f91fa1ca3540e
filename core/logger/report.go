package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
)

// ReadJSONLinesLog parses a newline delimited JSON log.
func ReadJSONLinesLog(r io.Reader, handler func(le *LogEntry)) error {
	decoder := json.NewDecoder(r)
	for decoder.More() {
		var logEntry LogEntry
		if err := decoder.Decode(&logEntry); err != nil {
			return err
		}

		handler(&logEntry)
	}
	return nil
}

// Report holds statistics about the logged events.
type Report struct {
	LogEntries     int        `json:"log_entries"`
	Sessions       StrCounter `json:"sessions"`
	InvalidEntries StrCounter `json:"unknown_log_entries,omitempty"`

	Lines          LineReport           `json:"line_report"`
	RunCommand     RunCommandReport     `json:"run_command_report"`
	UnknownCommand UnknownCommandReport `json:"unknown_command_report"`
	SyntaxErrors   SyntaxErrorReport    `json:"syntax_error_report"`
}

func (r *Report) Update(le *LogEntry) {
	r.LogEntries++
	if le.SessionID != "" {
		r.Sessions.Increment(le.SessionID)
	}

	switch le.Type {
	case EventLine:
		r.Lines.update(le)
	case EventRunCommand:
		r.RunCommand.update(le)
	case EventUnknownCommand:
		r.UnknownCommand.update(le)
	case EventSyntaxError:
		r.SyntaxErrors.update(le)
	default:
		r.InvalidEntries.Increment(fmt.Sprintf("%q", le.Type))
	}
}

type LineReport struct {
	Count int `json:"count"`
	// Exit statuses lines finished with and their counts.
	ExitStatuses StrCounter `json:"exit_statuses"`
}

func (r *LineReport) update(le *LogEntry) {
	r.Count++
	r.ExitStatuses.Increment(strconv.Itoa(le.ExitStatus))
}

type RunCommandReport struct {
	// Path of the resolved command
	ResolvedCommandPaths StrCounter `json:"resolved_command_paths"`
	// Name of the command
	CommandNames StrCounter `json:"command_names"`
	// Builtins run
	Builtins StrCounter `json:"builtins"`
	// Commands that didn't exit with 0.
	Failures *PathCounter `json:"failures"`
}

func (r *RunCommandReport) update(le *LogEntry) {
	if r.Failures == nil {
		r.Failures = NewPathCounter("command", "exit_status")
	}
	if le.ResolvedPath != "" {
		r.ResolvedCommandPaths.Increment(le.ResolvedPath)
	}
	if len(le.Command) == 0 {
		return
	}
	r.CommandNames.Increment(le.Command[0])
	if le.Builtin {
		r.Builtins.Increment(le.Command[0])
	}
	if le.ExitStatus != 0 {
		r.Failures.Increment(le.Command[0], strconv.Itoa(le.ExitStatus))
	}
}

type UnknownCommandReport struct {
	CommandNames StrCounter `json:"command_names"`
	Errors       StrCounter `json:"errors"`
}

func (r *UnknownCommandReport) update(le *LogEntry) {
	if len(le.Command) > 0 {
		r.CommandNames.Increment(le.Command[0])
	}
	r.Errors.Increment(le.Error)
}

type SyntaxErrorReport struct {
	Errors StrCounter `json:"errors"`
}

func (r *SyntaxErrorReport) update(le *LogEntry) {
	r.Errors.Increment(le.Error)
}

// StrCounter counts the number of strings seen.
type StrCounter struct {
	internal map[string]int
}

// Increment adds one to the given key.
func (s *StrCounter) Increment(toAdd string) {
	if s.internal == nil {
		s.internal = make(map[string]int)
	}

	s.internal[toAdd]++
}

// Count returns how many times key was seen.
func (s *StrCounter) Count(key string) int {
	return s.internal[key]
}

// MarshalJSON implements a custom JSON marshaler.
func (s StrCounter) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.internal)
}

func NewPathCounter(cols ...string) *PathCounter {
	return &PathCounter{
		cols:     cols,
		internal: make(map[string]int),
	}
}

// PathCounter counts the number of times each combination of values is seen.
type PathCounter struct {
	cols     []string
	internal map[string]int
}

// Increment adds one to the given key.
func (ctr *PathCounter) Increment(toAdd ...string) {
	if len(toAdd) != len(ctr.cols) {
		panic("wrong number of columns to add")
	}

	ctr.internal[toKey(toAdd...)]++
}

// Count returns how many times the combination was seen.
func (ctr *PathCounter) Count(vals ...string) int {
	return ctr.internal[toKey(vals...)]
}

// MarshalJSON implements a custom JSON marshaler.
func (ctr *PathCounter) MarshalJSON() ([]byte, error) {
	type Count struct {
		Count  int               `json:"count"`
		Fields map[string]string `json:"event"`
		Path   string            `json:"-"`
	}

	out := []Count{}
	for k, v := range ctr.internal {
		count := Count{
			Count:  v,
			Path:   k,
			Fields: make(map[string]string),
		}

		splitPath := fromKey(k)
		for colNum, colVal := range ctr.cols {
			count.Fields[colVal] = splitPath[colNum]
		}

		out = append(out, count)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Path < out[j].Path
		}
		return out[i].Count > out[j].Count
	})

	return json.Marshal(out)
}

func toKey(vals ...string) string {
	key, _ := json.Marshal(vals)
	return string(key)
}

func fromKey(key string) (out []string) {
	json.Unmarshal([]byte(key), &out)
	return
}
