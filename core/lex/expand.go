package lex

import (
	"os"
	"strconv"
	"strings"
)

// Status exposes the pieces of interpreter state consulted by the
// special parameters $? and $!.
type Status interface {
	// LastStatus is the exit status of the most recent foreground
	// command, with signal deaths mapped to 128+signal.
	LastStatus() int
	// LastBackgroundPID is the PID of the most recently launched
	// background process, or 0 if none has run yet.
	LastBackgroundPID() int
}

// Expander rewrites the special parameters $$, $?, $! and named
// parameters of the form ${NAME} within a single word.
//
// The scratch buffer is owned by the Expander and reused across calls:
// exactly one Expand call may be in flight at a time, and the result is
// copied out before the next call resets the buffer.
type Expander struct {
	state  Status
	lookup func(string) string
	pid    int
	buf    strings.Builder
}

// NewExpander returns an Expander that reads named parameters through
// lookup. A nil lookup falls back to the process environment.
func NewExpander(state Status, lookup func(string) string) *Expander {
	if lookup == nil {
		lookup = os.Getenv
	}
	return &Expander{state: state, lookup: lookup, pid: os.Getpid()}
}

// Lookup resolves a named parameter the same way ${NAME} expansion
// does: the parameter's value, or the empty string if unset.
func (e *Expander) Lookup(name string) string {
	return e.lookup(name)
}

// Expand returns word with every parameter occurrence substituted,
// scanning left to right in a single non-overlapping pass. A bare '$'
// and an unterminated '${' are copied literally.
func (e *Expander) Expand(word string) string {
	e.buf.Reset()

	for i := 0; i < len(word); {
		d := strings.IndexByte(word[i:], '$')
		if d < 0 {
			e.buf.WriteString(word[i:])
			break
		}
		d += i
		e.buf.WriteString(word[i:d])

		if d+1 >= len(word) {
			e.buf.WriteByte('$')
			break
		}

		switch word[d+1] {
		case '$':
			e.buf.WriteString(strconv.Itoa(e.pid))
			i = d + 2
		case '?':
			e.buf.WriteString(strconv.Itoa(e.state.LastStatus()))
			i = d + 2
		case '!':
			// Formats as empty until the first background process runs.
			if pid := e.state.LastBackgroundPID(); pid != 0 {
				e.buf.WriteString(strconv.Itoa(pid))
			}
			i = d + 2
		case '{':
			end := strings.IndexByte(word[d+2:], '}')
			if end < 0 {
				// Unterminated ${ is not a parameter.
				e.buf.WriteByte('$')
				i = d + 1
				break
			}
			e.buf.WriteString(e.lookup(word[d+2 : d+2+end]))
			i = d + 2 + end + 1
		default:
			e.buf.WriteByte('$')
			i = d + 1
		}
	}

	return e.buf.String()
}
