package lex

import (
	"fmt"
	"strings"
)

// Split breaks one line of input into words delimited by whitespace.
// A backslash escapes the character that follows it, including
// whitespace; the backslash itself is not copied. A word beginning with
// '#' ends scanning for the whole line. If max is greater than zero it
// bounds the number of words; exceeding the bound is an error rather
// than a truncation.
func Split(line string, max int) ([]string, error) {
	var words []string
	var b strings.Builder

	for i := 0; i < len(line); {
		for i < len(line) && isSpace(line[i]) {
			i++
		}
		if i >= len(line) || line[i] == '#' {
			break
		}
		if max > 0 && len(words) == max {
			return nil, fmt.Errorf("too many words (limit %d)", max)
		}

		b.Reset()
		for i < len(line) && !isSpace(line[i]) {
			if line[i] == '\\' {
				i++
				if i >= len(line) {
					// A trailing backslash has nothing to escape;
					// keep it literal.
					b.WriteByte('\\')
					break
				}
			}
			b.WriteByte(line[i])
			i++
		}
		words = append(words, b.String())
	}

	return words, nil
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
