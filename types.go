package llfisetup

import "time"

// Option keys accepted on the command line as -KEY VALUE.
const (
	KeyLLVMDstRoot   = "LLVM_DST_ROOT"
	KeyLLVMSrcRoot   = "LLVM_SRC_ROOT"
	KeyLLFIBuildRoot = "LLFI_BUILD_ROOT"
	KeyLLVMGxxBinDir = "LLVM_GXX_BIN_DIR"
	KeyJavaHomeDir   = "JAVA_HOME_DIR"
)

// ConfigRequest holds the paths supplied on the command line.
//
// All non-empty values are absolute. It is built once by ParseArgs and passed by
// value to every later stage; no stage modifies it.
//
// Required paths:
//   - LLVMDstRoot: LLVM CMake build root
//   - LLVMSrcRoot: LLVM source root
//   - LLFIBuildRoot: destination for the LLFI build, must not exist yet
//
// Optional paths (empty means auto-detect):
//   - LLVMGxxBinDir: directory holding clang
//   - JavaHomeDir: JDK home for the GUI build
type ConfigRequest struct {
	LLVMDstRoot   string
	LLVMSrcRoot   string
	LLFIBuildRoot string

	LLVMGxxBinDir string
	JavaHomeDir   string
}

// BuildFlags are the boolean switches of a run.
type BuildFlags struct {
	BuildGUI bool // false with --no_gui
	RunTests bool // true with --runTests
}

// DefaultBuildFlags returns the flags used when no switch is given.
func DefaultBuildFlags() BuildFlags {
	return BuildFlags{BuildGUI: true}
}

// Invocation is the parsed command line.
type Invocation struct {
	Request ConfigRequest
	Flags   BuildFlags
	Help    bool // --help or -h was given; nothing else should run
}

// Command describes one external process to run.
type Command struct {
	Step  string   // Journal label, e.g. "configure"
	Name  string   // Executable name or path
	Args  []string // Passed to the process verbatim
	Quiet bool     // Discard stdout and stderr
}

// StepResult records the outcome of one Command.
//
// It only lives for the duration of the run that produced it; the installer
// copies the journal into the run record and then drops it.
type StepResult struct {
	Step     string
	Command  string
	Args     []string
	Dir      string        // Working directory at invocation time
	Ran      bool          // False if the process could not be started
	ExitCode int           // 0 on success, 127 if not started
	Elapsed  time.Duration // Wall time of the process
	Err      error         // Underlying error, nil on success
}

// Failed reports whether the step did not complete with status 0.
func (r StepResult) Failed() bool {
	return r.Err != nil || r.ExitCode != 0
}
