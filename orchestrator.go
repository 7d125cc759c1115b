package llfisetup

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

const (
	cmakeProgram = "cmake"
	makeProgram  = "make"
	noGUIDefine  = "-DNO_GUI=ON"
)

// Orchestrator drives the CMake build of LLFI into the destination directory.
type Orchestrator struct {
	Root    string // LLFI source tree, passed to cmake
	Runner  ProcessRunner
	Journal *Journal
	Logger  zerolog.Logger
}

// Build creates req.LLFIBuildRoot, changes into it, runs cmake on the
// installer root and then make.
//
// # Parameters
//
//   - ctx: cancels the running command
//   - req: only LLFIBuildRoot is used
//   - flags: BuildGUI=false adds -DNO_GUI=ON to the cmake call
//
// # Error Handling
//
// The destination must not exist; ValidateEnvironment guarantees that before
// Build is reached. A failing command stops the build with a *StepError
// carrying the command's exit status, and make is not run after a failed
// cmake. Nothing is cleaned up: the destination is left as the tools left it.
//
// # Thread Safety
//
// Build changes the process working directory and must not run concurrently
// with anything relying on it.
func (o *Orchestrator) Build(ctx context.Context, req ConfigRequest, flags BuildFlags) error {
	return runBuildSteps(ctx, BuildSteps{
		PrepareFunc: func(context.Context) error {
			return o.enterBuildRoot(req.LLFIBuildRoot)
		},
		ConfigureFunc: func(ctx context.Context) error {
			return o.runCmake(ctx, flags)
		},
		BuildFunc: o.runMake,
	})
}

func (o *Orchestrator) enterBuildRoot(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", KeyLLFIBuildRoot, err)
	}
	if err := os.Chdir(dir); err != nil {
		return fmt.Errorf("enter %s: %w", KeyLLFIBuildRoot, err)
	}
	o.Logger.Info().Str("dir", dir).Msg("created build root")
	return nil
}

// runCmake configures the build with the installer root as the source tree.
func (o *Orchestrator) runCmake(ctx context.Context, flags BuildFlags) error {
	args := []string{o.Root}
	if !flags.BuildGUI {
		args = append(args, noGUIDefine)
	}
	_, err := runStep(ctx, o.Runner, o.Journal, o.Logger, Command{
		Step: "configure",
		Name: cmakeProgram,
		Args: args,
	})
	return err
}

// runMake builds every default target in the current directory.
func (o *Orchestrator) runMake(ctx context.Context) error {
	_, err := runStep(ctx, o.Runner, o.Journal, o.Logger, Command{
		Step: "build",
		Name: makeProgram,
	})
	return err
}
