// Package llfisetup installs and builds LLFI on top of a pre-built LLVM toolchain.
//
// This package is the Go equivalent of the project's setup script: it checks that the
// host can build LLFI, writes the path configuration consumed by CMake, by the
// project's Python tooling and by make, then drives the CMake build and optionally
// the regression suite.
//
// # Pipeline
//
// A run is a strict sequence of stages. Each stage is a hard gate: the first failing
// stage stops the run with a non-zero exit status and nothing is cleaned up.
//
//	ParseArgs
//	├── ConfigureViewerScript   (tools/zgrviewer/llfi_run.sh)
//	├── ValidateEnvironment     (platform, LLVM roots, clang, cmake, python yaml)
//	├── ResolveJavaRuntime      (GUI builds only)
//	├── GenerateArtifacts       (config/llvm_paths.*, config/java_paths.*)
//	├── GenerateFaultData       (tools/FIDL/FIDL-Algorithm.py -a default)
//	├── Orchestrator.Build      (mkdir, cmake, make)
//	└── RunTests                (--runTests only)
//
// # Basic Usage
//
//	installer := llfisetup.NewInstaller(root, llfisetup.NewShellRunner(os.Stdout, os.Stderr), logger)
//	err := installer.Run(ctx, os.Args[1:])
//	os.Exit(mg.ExitStatus(err))
//
// Every error returned by the pipeline carries its exit status, so the command
// layer never has to classify failures itself.
//
// # Subprocesses
//
// All external commands go through a ProcessRunner. The production runner
// starts them with exec.CommandContext and maps exit codes with mage's sh
// package; tests substitute a runner that scripts exit codes.
// Each invocation is journaled and the journal is written to the destination
// directory as llfi_setup_record.toml once the build phase has started.
//
// # Platform Support
//
// Linux and macOS only. Any other platform is rejected before further checks run.
package llfisetup
