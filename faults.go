package llfisetup

import (
	"context"
	"path/filepath"

	"github.com/rs/zerolog"
)

// FaultGeneratorScript returns the FIDL generator of an installer root.
func FaultGeneratorScript(root string) string {
	return filepath.Join(root, "tools", "FIDL", "FIDL-Algorithm.py")
}

// GenerateFaultData produces the default fault/failure-mode dataset by running
// the FIDL generator with "-a default". Its output is discarded; a non-zero
// exit becomes a *StepError with the same status.
func GenerateFaultData(ctx context.Context, runner ProcessRunner, journal *Journal, logger zerolog.Logger, root, python string) error {
	if python == "" {
		python = pythonTool.Name
	}
	_, err := runStep(ctx, runner, journal, logger, Command{
		Step:  "fault-data",
		Name:  python,
		Args:  []string{FaultGeneratorScript(root), "-a", "default"},
		Quiet: true,
	})
	return err
}
