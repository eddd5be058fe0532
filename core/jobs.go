package core

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sys/unix"

	"github.com/blakeaaronroberts/smallsh/core/logger"
)

// Monitor owns the process-wide signal disposition and the background
// child bookkeeping consulted once per read-loop iteration.
type Monitor struct {
	diag   io.Writer
	log    *logger.Logger
	notify chan os.Signal
}

// NewMonitor sets up signal handling for the interpreter. In
// interactive mode the shell itself swallows SIGINT and SIGTSTP;
// non-interactive runs keep the inherited defaults.
//
// Handlers registered through os/signal are reset to the default
// disposition across exec, so children always see the dispositions the
// shell itself inherited at startup.
func NewMonitor(diag io.Writer, log *logger.Logger, interactive bool) *Monitor {
	m := &Monitor{diag: diag, log: log}

	if interactive {
		m.notify = make(chan os.Signal, 1)
		signal.Notify(m.notify, syscall.SIGINT, syscall.SIGTSTP)
		go func() {
			// Drain. A SIGINT at the prompt cancels the pending read in
			// the readline layer; a SIGTSTP must never stop the shell.
			for range m.notify {
			}
		}()
	}

	return m
}

// Close restores the inherited signal dispositions.
func (m *Monitor) Close() {
	if m.notify != nil {
		signal.Stop(m.notify)
		close(m.notify)
		m.notify = nil
	}
}

// Reap performs one non-blocking wait for any child and reports the
// result on the diagnostic stream. Called once per loop iteration
// before the prompt; collection is opportunistic, at most one child is
// drained per call. Stopped children are sent SIGCONT.
func (m *Monitor) Reap() {
	var ws unix.WaitStatus
	pid, err := unix.Wait4(-1, &ws, unix.WNOHANG|unix.WUNTRACED, nil)
	if err != nil || pid <= 0 {
		return
	}

	switch {
	case ws.Exited():
		fmt.Fprintf(m.diag, "Child process %d done. Exit status %d.\n", pid, ws.ExitStatus())
		m.log.LogChildReaped(&logger.ChildReaped{Pid: pid, Status: ws.ExitStatus()})
	case ws.Signaled():
		fmt.Fprintf(m.diag, "Child process %d done. Signaled %d.\n", pid, int(ws.Signal()))
		m.log.LogChildReaped(&logger.ChildReaped{Pid: pid, Signal: int(ws.Signal())})
	case ws.Stopped():
		fmt.Fprintf(m.diag, "Child process %d stopped. Continuing.\n", pid)
		_ = unix.Kill(pid, unix.SIGCONT)
		m.log.LogChildReaped(&logger.ChildReaped{Pid: pid, Stopped: true})
	}
}
