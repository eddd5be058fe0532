package core

// State holds the interpreter-wide status consulted by parameter
// expansion and mutated by the execution engine. The interpreter is
// single flow: exactly one command is parsed, expanded and executed at
// a time, so no locking is needed.
type State struct {
	lastStatus int
	lastBgPID  int
}

// LastStatus is the exit status of the most recent foreground command.
// Signal deaths are recorded as 128+signal.
func (s *State) LastStatus() int { return s.lastStatus }

// LastBackgroundPID is the PID of the most recently launched background
// process, or 0 if none has run yet.
func (s *State) LastBackgroundPID() int { return s.lastBgPID }

func (s *State) setStatus(code int) { s.lastStatus = code }

func (s *State) setBackgroundPID(pid int) { s.lastBgPID = pid }
