// Package delivery coordinates the external WhatsApp send process and
// its debug-browser prerequisite. Both are opaque collaborators: the
// send script writes its own notification updates into the history
// store, and we only read them back on the next load.
package delivery

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/notifica-ued/notifica/internal/common"
	"github.com/notifica-ued/notifica/internal/service"
)

// Runner invokes the configured send command and captures its output.
type Runner struct {
	name string
	args []string
}

var _ service.Deliverer = (*Runner)(nil)

// NewRunner creates a runner for a shell-style command line, e.g.
// "python notificar_ued.py". The command is split on whitespace; the
// send script takes no arguments that would need quoting.
func NewRunner(commandLine string) (*Runner, error) {
	fields := strings.Fields(commandLine)
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: delivery command", common.ErrMissingConfig)
	}
	return &Runner{name: fields[0], args: fields[1:]}, nil
}

// Run executes the send process to completion and returns its combined
// output verbatim, success or not. A non-zero exit wraps the output in
// the error so the operator sees exactly what the script printed. No
// retries: the script owns its own state and partial progress.
func (r *Runner) Run(ctx context.Context) (string, error) {
	slog.Info("Running delivery process", "command", r.name, "args", r.args)

	cmd := exec.CommandContext(ctx, r.name, r.args...)
	out, err := cmd.CombinedOutput()
	output := string(out)
	if err != nil {
		return output, fmt.Errorf("%w: %v\n%s", common.ErrDeliveryFailed, err, output)
	}

	return output, nil
}
