package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJsonLinesRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	log := NewJsonLinesLogRecorder(&buf)

	assert.Nil(t, log.LogRunCommand(&RunCommand{
		Command:    []string{"sleep", "5"},
		Pid:        1234,
		Background: true,
	}))
	assert.Nil(t, log.LogCommandDone(&CommandDone{Pid: 1234, Status: 0}))
	assert.Nil(t, log.LogBuiltin(&Builtin{Command: []string{"cd", "/tmp"}}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 3)

	var entries []*LogEntry
	err := ReadJSONLinesLog(&buf, func(le *LogEntry) {
		entries = append(entries, le)
	})
	assert.Nil(t, err)
	assert.Len(t, entries, 3)

	assert.NotNil(t, entries[0].RunCommand)
	assert.Equal(t, []string{"sleep", "5"}, entries[0].RunCommand.Command)
	assert.True(t, entries[0].RunCommand.Background)
	assert.NotZero(t, entries[0].TimestampMicros)

	assert.NotNil(t, entries[1].CommandDone)
	assert.NotNil(t, entries[2].Builtin)
}

func TestReadJSONLinesLogBadInput(t *testing.T) {
	err := ReadJSONLinesLog(strings.NewReader("{not json"), func(le *LogEntry) {})
	assert.Error(t, err)
}

func TestReport(t *testing.T) {
	var report Report

	report.Update(&LogEntry{RunCommand: &RunCommand{Command: []string{"ls"}}})
	report.Update(&LogEntry{RunCommand: &RunCommand{Command: []string{"sleep"}, Background: true}})
	report.Update(&LogEntry{CommandDone: &CommandDone{Status: 0}})
	report.Update(&LogEntry{CommandDone: &CommandDone{Status: 2}})
	report.Update(&LogEntry{CommandDone: &CommandDone{Status: 130}})
	report.Update(&LogEntry{Builtin: &Builtin{Command: []string{"cd"}}})
	report.Update(&LogEntry{ChildReaped: &ChildReaped{Pid: 99}})
	report.Update(&LogEntry{InputError: &InputError{Line: ">", Error: "syntax error"}})

	assert.Equal(t, 8, report.LogEntries)
	assert.Equal(t, []string{"ls", "sleep"}, report.CommandNames.Keys())
	assert.Equal(t, 1, report.BackgroundRun)
	assert.Equal(t, 1, report.ChildrenReaped)
	assert.Equal(t, 1, report.ExitStatuses.Count("success"))
	assert.Equal(t, 1, report.ExitStatuses.Count("failure"))
	assert.Equal(t, 1, report.ExitStatuses.Count("signaled"))
	assert.Equal(t, 1, report.BuiltinNames.Count("cd"))
}
