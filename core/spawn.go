package core

import (
	"fmt"
	"os"
	"os/exec"

	"golang.org/x/sys/unix"

	"github.com/blakeaaronroberts/smallsh/core/logger"
	"github.com/blakeaaronroberts/smallsh/core/parse"
)

// runExternal launches cmd.Argv as a child process, applying any
// redirections, then either waits for it (foreground) or records it as
// the last background process. Failures are reported as an ordinary
// nonzero status, never as a shell-level error.
func (s *Shell) runExternal(cmd *parse.Command) error {
	in, out, err := openRedirects(s.fs, cmd)
	if err != nil {
		s.state.setStatus(1)
		return err
	}
	if in != nil {
		defer in.Close()
	}
	if out != nil {
		defer out.Close()
	}

	child := exec.Command(cmd.Argv[0], cmd.Argv[1:]...)
	child.Stdin = os.Stdin
	child.Stdout = os.Stdout
	child.Stderr = os.Stderr
	if in != nil {
		child.Stdin = in
	}
	if out != nil {
		child.Stdout = out
	}

	if err := child.Start(); err != nil {
		s.state.setStatus(1)
		return fmt.Errorf("%s: %w", cmd.Argv[0], err)
	}

	pid := child.Process.Pid
	s.log.LogRunCommand(&logger.RunCommand{
		Command:    cmd.Argv,
		Pid:        pid,
		Background: cmd.Background,
		Stdin:      cmd.Stdin,
		Stdout:     cmd.Stdout,
		Append:     cmd.Append,
	})

	if cmd.Background {
		s.state.setBackgroundPID(pid)
		return nil
	}

	return s.waitForeground(pid, cmd.Argv[0])
}

// waitForeground blocks until the child changes state, including stop
// events. A stopped child is treated as freshly backgrounded: reported,
// recorded as the last background PID and sent SIGCONT.
func (s *Shell) waitForeground(pid int, name string) error {
	var ws unix.WaitStatus
	for {
		_, err := unix.Wait4(pid, &ws, unix.WUNTRACED, nil)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			s.state.setStatus(1)
			return fmt.Errorf("wait %s: %w", name, err)
		}
		break
	}

	switch {
	case ws.Stopped():
		fmt.Fprintf(s.diag, "Child process %d stopped. Continuing.\n", pid)
		s.state.setBackgroundPID(pid)
		_ = unix.Kill(pid, unix.SIGCONT)
		s.log.LogCommandDone(&logger.CommandDone{Pid: pid, Stopped: true})
	case ws.Signaled():
		s.state.setStatus(exitStatus(ws))
		s.log.LogCommandDone(&logger.CommandDone{
			Pid:    pid,
			Status: exitStatus(ws),
			Signal: int(ws.Signal()),
		})
	default:
		s.state.setStatus(exitStatus(ws))
		s.log.LogCommandDone(&logger.CommandDone{Pid: pid, Status: exitStatus(ws)})
	}

	return nil
}

// exitStatus maps a wait status to the value $? reports: the exit code
// for normal exits, 128+signal for signal deaths.
func exitStatus(ws unix.WaitStatus) int {
	if ws.Signaled() {
		return 128 + int(ws.Signal())
	}
	return ws.ExitStatus()
}
