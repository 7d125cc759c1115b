package llfisetup

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/magefile/mage/sh"
)

// ProcessRunner runs external commands for the installer.
//
// Every subprocess of a run goes through one ProcessRunner, so tests can
// substitute a fake that scripts exit codes per step.
//
// # Parameters
//
//   - ctx: cancels a command that has not finished yet; a command is not
//     started at all when ctx is already done
//   - cmd: the program, its arguments and whether its output is shown
//
// # Returns
//
// Run blocks until the process exits and returns a StepResult recording the
// command line, the working directory at invocation time, the exit code and
// the elapsed time.
//
// # Error Handling
//
// Failure is reported through StepResult (Failed, ExitCode, Err), never
// through a panic. A command that could not be started reports exit code 127
// and Ran=false.
//
// # Thread Safety
//
// Implementations need not be safe for concurrent use; the installer runs
// one command at a time.
type ProcessRunner interface {
	Run(ctx context.Context, cmd Command) StepResult
}

// notStartedExitCode is reported when a command could not be started at all.
const notStartedExitCode = 127

// killWaitDelay bounds how long Run waits for output pipes held open by
// grandchildren after a cancelled command was killed.
const killWaitDelay = 5 * time.Second

// ShellRunner executes commands on the local host.
//
// Output is streamed to Stdout and Stderr unless the Command is Quiet. The
// child inherits the installer's environment, stdin and working directory.
// Arguments reach the child exactly as given: no shell and no variable
// expansion is involved.
type ShellRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

// NewShellRunner creates a runner streaming to the given writers.
func NewShellRunner(stdout, stderr io.Writer) *ShellRunner {
	return &ShellRunner{Stdout: stdout, Stderr: stderr}
}

// Run executes cmd and waits for it. Cancelling ctx kills the child.
func (r *ShellRunner) Run(ctx context.Context, cmd Command) StepResult {
	result := StepResult{
		Step:    cmd.Step,
		Command: cmd.Name,
		Args:    append([]string(nil), cmd.Args...),
	}
	if dir, err := os.Getwd(); err == nil {
		result.Dir = dir
	}

	if err := ctx.Err(); err != nil {
		result.ExitCode = notStartedExitCode
		result.Err = err
		return result
	}

	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Stdin = os.Stdin
	c.WaitDelay = killWaitDelay
	c.Stdout, c.Stderr = r.Stdout, r.Stderr
	if cmd.Quiet || c.Stdout == nil {
		c.Stdout = io.Discard
	}
	if cmd.Quiet || c.Stderr == nil {
		c.Stderr = io.Discard
	}

	start := time.Now()
	err := c.Run()
	result.Elapsed = time.Since(start)
	result.Ran = c.ProcessState != nil

	switch {
	case err == nil:
		result.ExitCode = 0
	case !result.Ran:
		result.ExitCode = notStartedExitCode
		result.Err = fmt.Errorf("failed to run %q: %w", cmd.Name, err)
	default:
		result.ExitCode = sh.ExitStatus(err)
		// A child killed by a signal has no exit code of its own.
		if result.ExitCode <= 0 {
			result.ExitCode = ExitFailure
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = fmt.Errorf("%w (%v)", err, ctxErr)
		}
		result.Err = err
	}
	return result
}
