package core

import (
	"fmt"
	"os"
	"strconv"

	"github.com/blakeaaronroberts/smallsh/core/logger"
)

// exitRequest travels up through the read loop when the exit builtin
// (or end of input) terminates the interpreter.
type exitRequest struct{ code int }

func (e exitRequest) Error() string { return fmt.Sprintf("exit %d", e.code) }

// runBuiltin dispatches argv if its first token names a builtin.
// handled reports whether it did; err carries either a user error to
// report or an exitRequest.
func (s *Shell) runBuiltin(argv []string) (handled bool, err error) {
	switch argv[0] {
	case "exit":
		err = s.builtinExit(argv)
	case "cd":
		err = s.builtinCd(argv)
	default:
		return false, nil
	}

	msg := &logger.Builtin{Command: argv}
	if err != nil {
		msg.Error = err.Error()
	}
	s.log.LogBuiltin(msg)

	return true, err
}

// builtinExit terminates the interpreter with the given status, or with
// the last foreground status when called bare. Bad arguments are
// reported without terminating.
func (s *Shell) builtinExit(argv []string) error {
	switch len(argv) {
	case 1:
		return exitRequest{code: s.state.LastStatus()}
	case 2:
		code, err := strconv.Atoi(argv[1])
		if err != nil {
			return fmt.Errorf("exit: %s: numeric argument required", argv[1])
		}
		return exitRequest{code: code}
	default:
		return fmt.Errorf("exit: too many arguments")
	}
}

// builtinCd changes the working directory, defaulting to the home
// parameter when called bare. The target must exist; failure is
// reported and the working directory is left unchanged.
func (s *Shell) builtinCd(argv []string) error {
	switch len(argv) {
	case 1:
		home := s.expander.Lookup(s.cfg.HomeVar)
		if err := os.Chdir(home); err != nil {
			return fmt.Errorf("cd: %s: %v", home, underlying(err))
		}
	case 2:
		if _, err := os.Stat(argv[1]); err != nil {
			return fmt.Errorf("cd: %s: %v", argv[1], underlying(err))
		}
		if err := os.Chdir(argv[1]); err != nil {
			return fmt.Errorf("cd: %s: %v", argv[1], underlying(err))
		}
	default:
		return fmt.Errorf("cd: too many arguments")
	}
	return nil
}

// underlying strips the redundant op and path from a *os.PathError so
// reports read "cd: /nope: no such file or directory".
func underlying(err error) error {
	if pe, ok := err.(*os.PathError); ok {
		return pe.Err
	}
	return err
}
