package core

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/abiosoft/readline"
	"github.com/fatih/color"
	"github.com/spf13/afero"
	"golang.org/x/term"

	"github.com/blakeaaronroberts/smallsh/core/config"
	"github.com/blakeaaronroberts/smallsh/core/lex"
	"github.com/blakeaaronroberts/smallsh/core/logger"
	"github.com/blakeaaronroberts/smallsh/core/parse"
)

// Shell interprets command lines read from a terminal or a script.
type Shell struct {
	cfg      *config.Configuration
	fs       afero.Fs
	state    *State
	expander *lex.Expander
	monitor  *Monitor
	log      *logger.Logger
	diag     io.Writer
	errColor *color.Color

	interactive bool
	reader      lineReader
	toClose     listCloser
}

// Options configure a Shell. Zero values pick the process defaults.
type Options struct {
	// Config provides tunables; nil means the built-in defaults.
	Config *config.Configuration
	// Input is the script stream; nil means standard input, which is
	// interactive when attached to a terminal.
	Input *os.File
	// Diag receives the prompt, job notices and error reports; nil
	// means standard error.
	Diag io.Writer
	// Fs resolves redirection targets; nil means the host filesystem.
	Fs afero.Fs
	// Log receives interpreter events; nil discards them.
	Log *logger.Logger
	// Lookup resolves named parameters; nil means the process
	// environment.
	Lookup func(string) string
}

// NewShell builds a Shell and installs the signal dispositions for its
// mode. Callers own Options.Input and any writer behind Options.Log.
func NewShell(opts Options) (*Shell, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	diag := opts.Diag
	if diag == nil {
		diag = os.Stderr
	}

	fsys := opts.Fs
	if fsys == nil {
		fsys = afero.NewOsFs()
	}

	log := opts.Log
	if log == nil {
		log = logger.NewNopLogger()
	}

	s := &Shell{
		cfg:      cfg,
		fs:       fsys,
		state:    &State{},
		log:      log,
		diag:     diag,
		errColor: color.New(color.FgRed),
	}
	s.expander = lex.NewExpander(s.state, opts.Lookup)

	s.interactive = opts.Input == nil && term.IsTerminal(int(os.Stdin.Fd()))
	s.monitor = NewMonitor(diag, log, s.interactive)

	if s.interactive {
		rl, err := readline.NewEx(&readline.Config{
			Stdin:          readline.NewCancelableStdin(os.Stdin),
			Stdout:         diag,
			Stderr:         diag,
			FuncIsTerminal: func() bool { return true },
		})
		if err != nil {
			s.monitor.Close()
			return nil, err
		}
		s.reader = &readlineReader{rl: rl}
		s.toClose = append(s.toClose, rl)
	} else {
		var src io.Reader = os.Stdin
		if opts.Input != nil {
			src = opts.Input
		}
		s.reader = &scanReader{scanner: bufio.NewScanner(src)}
	}

	return s, nil
}

// State exposes the interpreter status for parameter expansion.
func (s *Shell) State() *State { return s.state }

// Run interprets input until end of file or the exit builtin and
// returns the interpreter's final exit status.
func (s *Shell) Run() int {
	defer s.Close()

	for {
		s.monitor.Reap()

		line, err := s.reader.ReadLine(s.prompt())
		switch {
		case errors.Is(err, io.EOF):
			// End of input is an implicit exit with the last status.
			return s.state.LastStatus()
		case errors.Is(err, readline.ErrInterrupt):
			continue
		case err != nil:
			fmt.Fprintln(s.diag)
			continue
		}

		status, done := s.interpret(line)
		if done {
			return status
		}
	}
}

// interpret runs one input line through the split, expand, parse and
// dispatch pipeline. done reports that the interpreter should
// terminate with status.
func (s *Shell) interpret(line string) (status int, done bool) {
	words, err := lex.Split(line, s.cfg.MaxWords)
	if err != nil {
		s.reportInput(line, err)
		return 0, false
	}

	for i := range words {
		words[i] = s.expander.Expand(words[i])
	}

	cmd, err := parse.Parse(words)
	if err != nil {
		s.reportInput(line, err)
		return 0, false
	}
	if cmd.Empty() {
		return 0, false
	}

	// Builtins run in-process on argv alone; any redirection paths in
	// cmd are parsed but never opened for them.
	if handled, err := s.runBuiltin(cmd.Argv); handled {
		var req exitRequest
		if errors.As(err, &req) {
			return req.code, true
		}
		if err != nil {
			s.report(err)
		}
		return 0, false
	}

	if err := s.runExternal(cmd); err != nil {
		s.report(err)
	}
	return 0, false
}

// prompt is the expansion of the configured prompt parameter, empty in
// non-interactive mode.
func (s *Shell) prompt() string {
	if !s.interactive {
		return ""
	}
	return s.expander.Expand("${" + s.cfg.PromptVar + "}")
}

func (s *Shell) report(err error) {
	if s.interactive {
		s.errColor.Fprintf(s.diag, "smallsh: %v\n", err)
		return
	}
	fmt.Fprintf(s.diag, "smallsh: %v\n", err)
}

func (s *Shell) reportInput(line string, err error) {
	s.report(err)
	s.log.LogInputError(&logger.InputError{Line: line, Error: err.Error()})
}

// Close restores signal dispositions and releases the reader.
func (s *Shell) Close() error {
	s.monitor.Close()
	return s.toClose.Close()
}

// lineReader yields one line of input without its trailing newline.
type lineReader interface {
	ReadLine(prompt string) (string, error)
}

type readlineReader struct {
	rl *readline.Instance
}

func (r *readlineReader) ReadLine(prompt string) (string, error) {
	r.rl.SetPrompt(prompt)
	return r.rl.Readline()
}

type scanReader struct {
	scanner *bufio.Scanner
	failed  bool
}

func (r *scanReader) ReadLine(string) (string, error) {
	if r.scanner.Scan() {
		return r.scanner.Text(), nil
	}
	// A scanner error is sticky and cannot be retried; report it once,
	// then treat the stream as closed.
	if err := r.scanner.Err(); err != nil && !r.failed {
		r.failed = true
		return "", err
	}
	return "", io.EOF
}

type listCloser []io.Closer

func (lc listCloser) Close() error {
	var lastErr error
	for _, v := range lc {
		if err := v.Close(); err != nil {
			lastErr = err
		}
	}

	return lastErr
}
