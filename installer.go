package llfisetup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Installer runs the whole setup pipeline for one installer root.
//
// Stages run strictly in order and each is a hard gate:
//  1. Parse the command line (help exits here with status 0)
//  2. Write the zgrviewer helper script
//  3. Validate the host environment
//  4. Resolve the JDK (GUI builds only)
//  5. Write the config/ artifacts
//  6. Generate the default fault dataset
//  7. Configure and build into the destination
//  8. Run the regression suite (--runTests only)
//
// Every returned error implements ExitStatus() int, so callers can hand it to
// mg.ExitStatus. User-facing diagnostics are printed to Stderr by the
// installer itself.
type Installer struct {
	Root   string
	Runner ProcessRunner
	Logger zerolog.Logger
	Stdout io.Writer
	Stderr io.Writer
}

// NewInstaller creates an installer printing to the process streams.
func NewInstaller(root string, runner ProcessRunner, logger zerolog.Logger) *Installer {
	return &Installer{
		Root:   root,
		Runner: runner,
		Logger: logger,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Run parses args and, unless help was requested, installs.
//
// # Parameters
//
//   - ctx: passed to every command the run starts
//   - args: the command line without the program name
//
// # Returns
//
// nil when help was printed or the build succeeded; a failing regression
// suite does not change that.
//
// # Error Handling
//
// The usage text goes to Stdout for --help and, after the error, to Stderr
// for a *UsageError. Every other failure is printed to Stderr as ERROR lines
// (environment failures end with ClosingInstruction). The returned error
// always implements ExitStatus() int:
//
//	os.Exit(mg.ExitStatus(installer.Run(ctx, os.Args[1:])))
func (in *Installer) Run(ctx context.Context, args []string) error {
	inv, err := ParseArgs(args)
	if err != nil {
		fmt.Fprint(in.Stderr, FormatUsageError(err))
		return err
	}
	if inv.Help {
		fmt.Fprint(in.Stdout, Usage)
		return nil
	}
	return in.Install(ctx, inv)
}

// Install runs every stage after argument parsing.
func (in *Installer) Install(ctx context.Context, inv Invocation) error {
	viewer, err := ConfigureViewerScript(in.Root)
	if err != nil {
		return in.fail(err)
	}
	in.Logger.Info().Str("path", viewer).Msg("wrote viewer script")

	report, err := ValidateEnvironment(ctx, in.Runner, inv.Request)
	if err != nil {
		return in.fail(err)
	}
	if err := report.Err(); err != nil {
		return in.fail(err)
	}

	var jre *JavaRuntime
	if inv.Flags.BuildGUI {
		rt, err := ResolveJavaRuntime(inv.Request)
		if err != nil {
			return in.fail(err)
		}
		in.Logger.Info().Str("java_home", rt.Home).Msg("using JDK")
		jre = &rt
	}

	artifacts := PlanArtifacts(in.Root, inv.Request, jre)
	if err := WriteArtifacts(artifacts); err != nil {
		return in.fail(err)
	}
	for _, artifact := range artifacts {
		in.Logger.Info().Str("path", artifact.Path).Stringer("format", artifact.Format).Msg("wrote config")
	}

	journal := &Journal{}
	if err := GenerateFaultData(ctx, in.Runner, journal, in.Logger, in.Root, report.Python); err != nil {
		return in.fail(err)
	}

	orchestrator := &Orchestrator{
		Root:    in.Root,
		Runner:  in.Runner,
		Journal: journal,
		Logger:  in.Logger,
	}
	buildErr := orchestrator.Build(ctx, inv.Request, inv.Flags)
	if buildErr == nil && inv.Flags.RunTests {
		RunTests(ctx, in.Runner, journal, in.Logger, inv.Request.LLFIBuildRoot)
	}

	if isDir(inv.Request.LLFIBuildRoot) {
		record := NewRunRecord(in.Root, inv, artifacts, journal.Steps(), buildErr)
		if path, err := WriteRunRecord(inv.Request.LLFIBuildRoot, record); err != nil {
			in.Logger.Warn().Err(err).Msg("could not write run record")
		} else {
			in.Logger.Debug().Str("path", path).Msg("wrote run record")
		}
	}

	if buildErr != nil {
		return in.fail(buildErr)
	}
	in.Logger.Info().Str("dir", inv.Request.LLFIBuildRoot).Msg("LLFI build complete")
	return nil
}

// fail prints err for the user and returns it with an exit status attached.
func (in *Installer) fail(err error) error {
	var envErr *EnvironmentError
	var stepErr *StepError
	switch {
	case errors.As(err, &envErr):
		for _, failure := range envErr.Failures {
			fmt.Fprintf(in.Stderr, "ERROR: %s\n", failure)
		}
		fmt.Fprintln(in.Stderr, ClosingInstruction)
		return envErr
	case errors.As(err, &stepErr):
		fmt.Fprintf(in.Stderr, "ERROR: %v\n", stepErr)
		return stepErr
	default:
		fmt.Fprintf(in.Stderr, "ERROR: %v\n", err)
		if _, ok := err.(interface{ ExitStatus() int }); ok {
			return err
		}
		return &setupError{err: err}
	}
}

// setupError gives plain I/O failures the generic exit status.
type setupError struct {
	err error
}

func (e *setupError) Error() string   { return e.err.Error() }
func (e *setupError) Unwrap() error   { return e.err }
func (e *setupError) ExitStatus() int { return ExitFailure }
