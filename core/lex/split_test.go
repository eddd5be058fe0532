package lex

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplit(t *testing.T) {
	cases := []struct {
		name     string
		line     string
		expected []string
	}{
		{"empty", "", nil},
		{"blank", "   \t  ", nil},
		{"single", "echo", []string{"echo"}},
		{"collapses whitespace", "echo a b  c", []string{"echo", "a", "b", "c"}},
		{"leading whitespace", "   ls -l", []string{"ls", "-l"}},
		{"trailing whitespace", "ls -l   ", []string{"ls", "-l"}},
		{"tabs", "a\tb\t\tc", []string{"a", "b", "c"}},
		{"comment line", "#comment and more", nil},
		{"comment after words", "echo hi # the rest", []string{"echo", "hi"}},
		{"hash inside word", "echo hi#there", []string{"echo", "hi#there"}},
		{"escaped space joins words", `a\ b c`, []string{"a b", "c"}},
		{"escaped backslash", `a\\b`, []string{`a\b`}},
		{"escaped hash", `echo \#nope`, []string{"echo", "#nope"}},
		{"escaped dollar", `echo \$HOME`, []string{"echo", "$HOME"}},
		{"trailing backslash", `echo a\`, []string{"echo", `a\`}},
		{"lone backslash word", `\`, []string{`\`}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			words, err := Split(tc.line, 0)
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, words)
		})
	}
}

func TestSplitMaxWords(t *testing.T) {
	words, err := Split("a b c", 3)
	assert.NoError(t, err)
	assert.Len(t, words, 3)

	_, err = Split("a b c d", 3)
	assert.Error(t, err)
}

func TestSplitAllocatesFreshWords(t *testing.T) {
	first, err := Split("alpha beta", 0)
	assert.NoError(t, err)
	second, err := Split("alpha beta", 0)
	assert.NoError(t, err)

	assert.Equal(t, first, second)
	second[0] = "mutated"
	assert.Equal(t, "alpha", first[0])
}

func ExampleSplit() {
	words, _ := Split(`echo one\ word  two # ignored`, 0)
	fmt.Printf("%q\n", words)

	// Output: ["echo" "one word" "two"]
}
