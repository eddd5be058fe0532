package logger

import (
	"encoding/json"
	"sort"
)

// StrCounter counts occurrences of strings.
type StrCounter struct {
	counts map[string]int
}

func (c *StrCounter) Increment(key string) {
	if c.counts == nil {
		c.counts = make(map[string]int)
	}
	c.counts[key]++
}

// MarshalJSON implements a custom JSON marshaler with sorted keys.
func (c StrCounter) MarshalJSON() ([]byte, error) {
	if c.counts == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(c.counts)
}

// Keys returns the counted strings sorted lexicographically.
func (c *StrCounter) Keys() []string {
	var keys []string
	for k := range c.counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Count returns the count for key.
func (c *StrCounter) Count(key string) int {
	return c.counts[key]
}

// Report holds statistics about the logged events.
type Report struct {
	LogEntries int `json:"log_entries"`

	CommandNames   StrCounter `json:"command_names"`
	BuiltinNames   StrCounter `json:"builtin_names"`
	ExitStatuses   StrCounter `json:"exit_statuses"`
	InputErrors    StrCounter `json:"input_errors"`
	BackgroundRun  int        `json:"background_run"`
	ChildrenReaped int        `json:"children_reaped"`
}

func (r *Report) Update(le *LogEntry) {
	r.LogEntries++

	switch {
	case le.RunCommand != nil:
		if len(le.RunCommand.Command) > 0 {
			r.CommandNames.Increment(le.RunCommand.Command[0])
		}
		if le.RunCommand.Background {
			r.BackgroundRun++
		}
	case le.CommandDone != nil:
		r.ExitStatuses.Increment(statusKey(le.CommandDone.Status))
	case le.Builtin != nil:
		if len(le.Builtin.Command) > 0 {
			r.BuiltinNames.Increment(le.Builtin.Command[0])
		}
	case le.ChildReaped != nil:
		r.ChildrenReaped++
	case le.InputError != nil:
		r.InputErrors.Increment(le.InputError.Error)
	}
}

func statusKey(status int) string {
	switch {
	case status == 0:
		return "success"
	case status > 128:
		return "signaled"
	default:
		return "failure"
	}
}
