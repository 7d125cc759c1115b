package llfisetup

import (
	"fmt"
	"strings"
)

// Exit statuses used by the installer. A failing subprocess propagates its own
// status instead.
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// UsageError reports a malformed or incomplete command line.
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string {
	return e.Message
}

// ExitStatus implements the mage exit-status contract.
func (e *UsageError) ExitStatus() int {
	return ExitFailure
}

func usageErrorf(format string, args ...any) error {
	return &UsageError{Message: fmt.Sprintf(format, args...)}
}

// PlatformError reports an unsupported host. It is the only environment check
// that stops validation early.
type PlatformError struct {
	GOOS string
}

func (e *PlatformError) Error() string {
	return fmt.Sprintf("unsupported platform %q (supported: %s)", e.GOOS, strings.Join(supportedPlatforms, ", "))
}

// ExitStatus implements the mage exit-status contract.
func (e *PlatformError) ExitStatus() int {
	return ExitFailure
}

// EnvironmentError carries every unmet precondition found during one
// validation pass, in the order the checks ran.
type EnvironmentError struct {
	Failures []string
}

func (e *EnvironmentError) Error() string {
	if len(e.Failures) == 1 {
		return e.Failures[0]
	}
	return fmt.Sprintf("%d environment checks failed: %s", len(e.Failures), strings.Join(e.Failures, "; "))
}

// ExitStatus implements the mage exit-status contract.
func (e *EnvironmentError) ExitStatus() int {
	return ExitFailure
}

// StepError reports an external command that exited non-zero or could not be
// started. Its exit status is the child's.
type StepError struct {
	Result StepResult
}

func (e *StepError) Error() string {
	cmdline := strings.TrimSpace(e.Result.Command + " " + strings.Join(e.Result.Args, " "))
	if !e.Result.Ran {
		return fmt.Sprintf("%s failed: could not run %q: %v", e.Result.Step, cmdline, e.Result.Err)
	}
	return fmt.Sprintf("%s failed: %q exited with code %d", e.Result.Step, cmdline, e.Result.ExitCode)
}

// ExitStatus implements the mage exit-status contract.
func (e *StepError) ExitStatus() int {
	if e.Result.ExitCode == 0 {
		return ExitFailure
	}
	return e.Result.ExitCode
}

func (e *StepError) Unwrap() error {
	return e.Result.Err
}
