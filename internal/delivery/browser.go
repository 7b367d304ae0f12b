package delivery

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/shirou/gopsutil/v4/process"

	"github.com/notifica-ued/notifica/internal/common"
)

// DefaultBrowserMarker identifies the debug browser instance the send
// script attaches to.
const DefaultBrowserMarker = "--remote-debugging-port=9223"

// BrowserSupervisor makes sure at most one debug-browser instance is
// running before the send script needs it. The browser is otherwise
// opaque: it is found by its command line, never managed beyond that.
type BrowserSupervisor struct {
	marker  string
	command string
}

// NewBrowserSupervisor creates a supervisor that looks for marker in
// running process command lines and starts command when nothing matches.
func NewBrowserSupervisor(marker, command string) *BrowserSupervisor {
	if marker == "" {
		marker = DefaultBrowserMarker
	}
	return &BrowserSupervisor{marker: marker, command: command}
}

// EnsureRunning starts the debug browser unless an instance already
// matches the marker. It reports whether a new instance was launched.
func (b *BrowserSupervisor) EnsureRunning(ctx context.Context) (bool, error) {
	running, err := b.isRunning(ctx)
	if err != nil {
		return false, err
	}
	if running {
		slog.Debug("Debug browser already running", "marker", b.marker)
		return false, nil
	}

	fields := strings.Fields(b.command)
	if len(fields) == 0 {
		return false, fmt.Errorf("%w: browser command", common.ErrMissingConfig)
	}

	// Detached on purpose: the browser outlives this invocation.
	cmd := exec.Command(fields[0], fields[1:]...)
	if err := cmd.Start(); err != nil {
		return false, fmt.Errorf("failed to start debug browser: %w", err)
	}
	if err := cmd.Process.Release(); err != nil {
		return true, fmt.Errorf("failed to release browser process: %w", err)
	}

	slog.Info("Started debug browser", "command", b.command)

	return true, nil
}

func (b *BrowserSupervisor) isRunning(ctx context.Context) (bool, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to list processes: %w", err)
	}

	for _, p := range procs {
		cmdline, err := p.CmdlineWithContext(ctx)
		if err != nil {
			// Processes we cannot inspect are not ours.
			continue
		}
		if strings.Contains(cmdline, b.marker) {
			return true, nil
		}
	}

	return false, nil
}
