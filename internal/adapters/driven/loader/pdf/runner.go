package pdf

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/custodia-labs/pagerag/internal/core/ports/driven"
)

// Ensure ExecRunner implements the interface.
var _ driven.CommandRunner = ExecRunner{}

// ExecRunner executes external commands with os/exec.
type ExecRunner struct{}

// Run executes the command and returns its stdout. On a non-zero exit
// the command's stderr is folded into the error.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return nil, fmt.Errorf("%s: %s", name, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}
