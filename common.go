package llfisetup

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
)

// BuildSteps defines the three phases of an LLFI build.
//
//  1. Prepare: create and enter the destination directory
//  2. Configure: generate the build files (cmake)
//  3. Build: compile (make)
//
// runBuildSteps executes them in order and stops at the first error; later
// phases do not run and nothing already done is undone. A nil phase is
// skipped, and a cancelled ctx stops the sequence before the next phase.
type BuildSteps struct {
	PrepareFunc   func(ctx context.Context) error
	ConfigureFunc func(ctx context.Context) error
	BuildFunc     func(ctx context.Context) error
}

func runBuildSteps(ctx context.Context, steps BuildSteps) error {
	for _, step := range []func(context.Context) error{steps.PrepareFunc, steps.ConfigureFunc, steps.BuildFunc} {
		if step == nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := step(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Journal keeps the StepResult of every command of a run, in order.
type Journal struct {
	steps []StepResult
}

// Record appends a result.
func (j *Journal) Record(result StepResult) {
	j.steps = append(j.steps, result)
}

// Steps returns a copy of the recorded results.
func (j *Journal) Steps() []StepResult {
	return append([]StepResult(nil), j.steps...)
}

// runStep runs cmd, journals the result and turns a failure into a *StepError.
func runStep(ctx context.Context, runner ProcessRunner, journal *Journal, logger zerolog.Logger, cmd Command) (StepResult, error) {
	logger.Info().
		Str("step", cmd.Step).
		Str("cmd", strings.TrimSpace(cmd.Name+" "+strings.Join(cmd.Args, " "))).
		Msg("running")

	result := runner.Run(ctx, cmd)
	if journal != nil {
		journal.Record(result)
	}

	event := logger.Debug()
	if result.Failed() {
		event = logger.Error().Err(result.Err)
	}
	event.Str("step", result.Step).
		Int("exit_code", result.ExitCode).
		Dur("elapsed", result.Elapsed).
		Str("dir", result.Dir).
		Msg("finished")

	if result.Failed() {
		return result, &StepError{Result: result}
	}
	return result, nil
}
