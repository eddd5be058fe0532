package core

import (
	"bytes"
	"fmt"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blakeaaronroberts/smallsh/core/logger"
)

func TestReapWithoutChildren(t *testing.T) {
	diag := &bytes.Buffer{}
	m := NewMonitor(diag, logger.NewNopLogger(), false)
	defer m.Close()

	m.Reap()
	assert.Empty(t, diag.String())
}

func TestReapExitedChild(t *testing.T) {
	requireCommand(t, "true")

	diag := &bytes.Buffer{}
	m := NewMonitor(diag, logger.NewNopLogger(), false)
	defer m.Close()

	cmd := exec.Command("true")
	require.NoError(t, cmd.Start())
	pid := cmd.Process.Pid

	// Reap is non-blocking; poll until the child has exited.
	deadline := time.Now().Add(5 * time.Second)
	for diag.Len() == 0 && time.Now().Before(deadline) {
		m.Reap()
		time.Sleep(10 * time.Millisecond)
	}

	assert.Contains(t, diag.String(),
		fmt.Sprintf("Child process %d done. Exit status 0.", pid))
}

func TestReapIsOpportunistic(t *testing.T) {
	diag := &bytes.Buffer{}
	m := NewMonitor(diag, logger.NewNopLogger(), false)
	defer m.Close()

	// At most one status is drained per call even when no child exists.
	m.Reap()
	m.Reap()
	assert.Empty(t, diag.String())
}

func TestMonitorCloseIdempotent(t *testing.T) {
	m := NewMonitor(&bytes.Buffer{}, logger.NewNopLogger(), true)
	m.Close()
	m.Close()
}
