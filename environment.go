package llfisetup

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
)

var supportedPlatforms = []string{"linux", "darwin"}

// hostOS is swapped out in tests.
var hostOS = runtime.GOOS

// ClosingInstruction is printed once after the aggregated environment errors.
const ClosingInstruction = "Please fix the errors above and run llfi-setup again."

var (
	clangTool = ToolRequirement{
		Name:    "clang",
		Purpose: "compiling programs for instrumentation",
		Hint:    fmt.Sprintf("install it or pass -%s <directory containing clang>", KeyLLVMGxxBinDir),
	}
	cmakeTool = ToolRequirement{
		Name:    "cmake",
		Purpose: "generating the LLFI build files",
	}
	pythonTool = ToolRequirement{
		Name:         "python3",
		Alternatives: []string{"python"},
		Purpose:      "running the LLFI tooling",
	}
)

// Capability is the outcome of probing the YAML library in the project's
// Python interpreter.
type Capability int

const (
	CapabilityAvailable Capability = iota
	CapabilityInterpreterMissing
	CapabilityModuleMissing
)

func (c Capability) String() string {
	switch c {
	case CapabilityAvailable:
		return "available"
	case CapabilityInterpreterMissing:
		return "interpreter missing"
	case CapabilityModuleMissing:
		return "module missing"
	default:
		return fmt.Sprintf("Capability(%d)", int(c))
	}
}

// ProbeYAML checks that the tooling interpreter can import yaml. It returns
// the interpreter path when one was found.
func ProbeYAML(ctx context.Context, runner ProcessRunner) (Capability, string) {
	python, err := pythonTool.Resolve()
	if err != nil {
		return CapabilityInterpreterMissing, ""
	}
	result := runner.Run(ctx, Command{
		Step:  "probe-yaml",
		Name:  python,
		Args:  []string{"-c", "import yaml"},
		Quiet: true,
	})
	if result.Failed() {
		return CapabilityModuleMissing, python
	}
	return CapabilityAvailable, python
}

// EnvironmentReport collects validation failures in check order.
type EnvironmentReport struct {
	Failures []string
	HasError bool

	// Python is the interpreter that passed or failed the yaml probe, empty
	// when none was found.
	Python string
}

func (r *EnvironmentReport) addf(format string, args ...any) {
	r.Failures = append(r.Failures, fmt.Sprintf(format, args...))
	r.HasError = true
}

// Err returns an *EnvironmentError when any check failed.
func (r *EnvironmentReport) Err() error {
	if !r.HasError {
		return nil
	}
	return &EnvironmentError{Failures: append([]string(nil), r.Failures...)}
}

// ValidateEnvironment runs every precondition check for req.
//
// # Checks
//
// In order:
//  1. The host is linux or darwin
//  2. LLFI_BUILD_ROOT does not exist yet
//  3. LLVM_DST_ROOT and LLVM_SRC_ROOT exist; LLVM_DST_ROOT/bin/opt is executable
//  4. clang is in LLVM_GXX_BIN_DIR, or in PATH when that key is unset
//  5. cmake is in PATH
//  6. LLVM_DST_ROOT/CMakeFiles exists
//  7. The tooling interpreter can import yaml (see ProbeYAML)
//
// # Returns
//
// The report lists every failed check in check order; report.Err() turns it
// into an *EnvironmentError. report.Python is the interpreter found for the
// fault generator.
//
// # Error Handling
//
// Only the platform check fails fast, with a *PlatformError and a nil report.
// Every other check always runs, so one run shows the whole list. Nothing on
// disk is modified; the yaml probe is the only command started.
func ValidateEnvironment(ctx context.Context, runner ProcessRunner, req ConfigRequest) (*EnvironmentReport, error) {
	if !platformSupported(hostOS) {
		return nil, &PlatformError{GOOS: hostOS}
	}

	report := &EnvironmentReport{}

	if pathExists(req.LLFIBuildRoot) {
		report.addf("%s %s already exists; choose a directory that does not exist yet", KeyLLFIBuildRoot, req.LLFIBuildRoot)
	}

	checkLLVMRoots(report, req)

	if req.LLVMGxxBinDir != "" {
		if _, err := clangTool.ResolveIn(req.LLVMGxxBinDir); err != nil {
			report.addf("%v; check -%s", err, KeyLLVMGxxBinDir)
		}
	} else if _, err := clangTool.Resolve(); err != nil {
		report.addf("%v", err)
	}

	if _, err := cmakeTool.Resolve(); err != nil {
		report.addf("%v", err)
	}

	if !isDir(filepath.Join(req.LLVMDstRoot, "CMakeFiles")) {
		report.addf("%s %s has no CMakeFiles directory; LLVM must be built with CMake", KeyLLVMDstRoot, req.LLVMDstRoot)
	}

	capability, python := ProbeYAML(ctx, runner)
	report.Python = python
	switch capability {
	case CapabilityInterpreterMissing:
		report.addf("python3 not found in PATH (required for: %s); install Python 3 with the yaml module", pythonTool.Purpose)
	case CapabilityModuleMissing:
		report.addf("the yaml module is not importable by %s; install PyYAML (pip3 install pyyaml)", python)
	}

	return report, nil
}

func checkLLVMRoots(report *EnvironmentReport, req ConfigRequest) {
	if !isDir(req.LLVMDstRoot) {
		report.addf("%s %s does not exist", KeyLLVMDstRoot, req.LLVMDstRoot)
	}
	if !isDir(req.LLVMSrcRoot) {
		report.addf("%s %s does not exist", KeyLLVMSrcRoot, req.LLVMSrcRoot)
	}

	binDir := filepath.Join(req.LLVMDstRoot, "bin")
	if !isDir(binDir) {
		report.addf("%s %s has no bin directory; is it an LLVM build root?", KeyLLVMDstRoot, req.LLVMDstRoot)
		return
	}
	if !isExecutable(filepath.Join(binDir, "opt")) {
		report.addf("%s is missing the opt executable; build LLVM before LLFI", binDir)
	}
}

func platformSupported(goos string) bool {
	for _, p := range supportedPlatforms {
		if p == goos {
			return true
		}
	}
	return false
}
