package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2021, 8, 1, 12, 0, 0, 5000, time.UTC)
}

func ExampleNewJsonLinesLogRecorder() {
	var buf bytes.Buffer
	l := NewJsonLinesLogRecorder(&buf)
	l.Now = fixedClock

	// Entries without a session leave the ID out.
	session := &SessionLogger{Logger: l}
	session.RecordLine("echo hi | wc -c", 0)
	session.RecordCommand([]string{"wc", "-c"}, "/usr/bin/wc", false, 0)

	fmt.Print(buf.String())

	// Output: {"timestamp_micros":1627819200000005,"type":"line","line":"echo hi | wc -c","exit_status":0}
	// {"timestamp_micros":1627819200000005,"type":"run_command","command":["wc","-c"],"resolved_path":"/usr/bin/wc","exit_status":0}
}

func TestSessionLogger_nil(t *testing.T) {
	var l *SessionLogger
	assert.NoError(t, l.RecordLine("ls", 0))
	assert.NoError(t, l.RecordSyntaxError("|", errors.New("bad"), 258))
	assert.Equal(t, "", l.SessionID())
}

func TestLogger_NewSession(t *testing.T) {
	var entries []*LogEntry
	l := &Logger{Record: func(le *LogEntry) error {
		entries = append(entries, le)
		return nil
	}}

	session := l.NewSession()
	require.NotEmpty(t, session.SessionID())
	require.NoError(t, session.RecordUnknownCommand([]string{"nope"}, errors.New("command not found"), 127))

	require.Len(t, entries, 1)
	assert.Equal(t, session.SessionID(), entries[0].SessionID)
	assert.Equal(t, EventUnknownCommand, entries[0].Type)
	assert.Equal(t, "command not found", entries[0].Error)
	assert.NotZero(t, entries[0].TimestampMicros)
}

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	session := NewJsonLinesLogRecorder(&buf).NewSession()

	session.RecordCommand([]string{"ls"}, "/bin/ls", false, 0)
	session.RecordCommand([]string{"false"}, "/bin/false", false, 1)
	session.RecordCommand([]string{"cd", "/nope"}, "", true, 1)
	session.RecordLine("ls; false; cd /nope", 1)
	session.RecordUnknownCommand([]string{"nope"}, errors.New("command not found"), 127)
	session.RecordLine("nope", 127)
	session.RecordSyntaxError("|", errors.New("syntax error near unexpected token `|'"), 258)
	buf.WriteString(`{"type":"mystery"}` + "\n")

	var report Report
	require.NoError(t, ReadJSONLinesLog(&buf, report.Update))

	assert.Equal(t, 8, report.LogEntries)
	assert.Equal(t, 7, report.Sessions.Count(session.SessionID()))
	assert.Equal(t, 2, report.Lines.Count)
	assert.Equal(t, 1, report.Lines.ExitStatuses.Count("127"))
	assert.Equal(t, 1, report.RunCommand.CommandNames.Count("false"))
	assert.Equal(t, 1, report.RunCommand.Builtins.Count("cd"))
	assert.Equal(t, 1, report.RunCommand.Failures.Count("cd", "1"))
	assert.Equal(t, 0, report.RunCommand.Failures.Count("ls", "0"))
	assert.Equal(t, 1, report.UnknownCommand.CommandNames.Count("nope"))
	assert.Equal(t, 1, report.SyntaxErrors.Errors.Count("syntax error near unexpected token `|'"))
	assert.Equal(t, 1, report.InvalidEntries.Count(`"mystery"`))

	_, err := json.Marshal(report)
	assert.NoError(t, err)
}

func TestPathCounter_MarshalJSON(t *testing.T) {
	ctr := NewPathCounter("command", "exit_status")
	ctr.Increment("false", "1")
	ctr.Increment("false", "1")
	ctr.Increment("grep", "2")

	out, err := json.Marshal(ctr)
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"count": 2, "event": {"command": "false", "exit_status": "1"}},
		{"count": 1, "event": {"command": "grep", "exit_status": "2"}}
	]`, string(out))
}
