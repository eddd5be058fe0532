// Package parse turns a sequence of expanded words into a command ready
// for dispatch, separating redirection operators and the trailing
// background operator from the argument vector.
package parse

import "fmt"

// Command is the parsed, ephemeral form of one input line.
type Command struct {
	// Argv is the argument vector, command name first.
	Argv []string
	// Stdin is the input redirection path, empty if none.
	Stdin string
	// Stdout is the output redirection path, empty if none.
	Stdout string
	// Append selects append mode for Stdout instead of truncation.
	Append bool
	// Background requests execution without waiting.
	Background bool
}

// Empty reports whether the command names nothing to run.
func (c *Command) Empty() bool { return len(c.Argv) == 0 }

func (c *Command) String() string {
	return fmt.Sprintf("argv=%q stdin=%q stdout=%q append=%t background=%t",
		c.Argv, c.Stdin, c.Stdout, c.Append, c.Background)
}

// Parse partitions words into argv and redirection fields in one left to
// right pass. A redirection operator must be followed by a path word;
// one that ends the line instead is a parse error. The '&' operator is
// positional: it only means background as the final word.
func Parse(words []string) (*Command, error) {
	cmd := &Command{}
	var write, appendTo string

	for i := 0; i < len(words); i++ {
		w := words[i]

		if w == "&" && i == len(words)-1 {
			cmd.Background = true
			continue
		}

		switch w {
		case "<", ">", ">>":
			if i+1 >= len(words) {
				return nil, fmt.Errorf("syntax error: %q requires a path", w)
			}
			i++
			switch w {
			case "<":
				cmd.Stdin = words[i]
			case ">":
				write = words[i]
			case ">>":
				appendTo = words[i]
			}
		default:
			cmd.Argv = append(cmd.Argv, w)
		}
	}

	// Truncation wins if both output forms appear on one line.
	switch {
	case write != "":
		cmd.Stdout = write
	case appendTo != "":
		cmd.Stdout = appendTo
		cmd.Append = true
	}

	return cmd, nil
}
