package llfisetup

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Usage is printed for --help and after every usage error.
const Usage = `Usage: llfi-setup -LLVM_DST_ROOT <LLVM CMake build root dir>
                  -LLVM_SRC_ROOT <LLVM source root dir>
                  -LLFI_BUILD_ROOT <path where you want to build LLFI>
                  [-LLVM_GXX_BIN_DIR <directory containing clang>]
                  [-JAVA_HOME_DIR <JDK home directory, for the GUI>]
                  [--no_gui] [--runTests] [--help | -h]

  -LLVM_DST_ROOT     LLVM build directory, must contain bin/opt and CMakeFiles
  -LLVM_SRC_ROOT     LLVM source directory
  -LLFI_BUILD_ROOT   destination of the LLFI build, must not exist yet
  -LLVM_GXX_BIN_DIR  directory holding clang (default: search PATH)
  -JAVA_HOME_DIR     JDK home for the GUI (default: derived from javac on PATH)
  --no_gui           do not build the GUI and skip the Java checks
  --runTests         run the regression suite after a successful build
  --help, -h         print this message and exit
`

// optionKey binds a -KEY token to its ConfigRequest field.
type optionKey struct {
	name     string
	required bool
	field    func(*ConfigRequest) *string
}

// optionKeys lists every value option; required keys come first, in the order
// missing keys are reported.
var optionKeys = []optionKey{
	{KeyLLVMDstRoot, true, func(r *ConfigRequest) *string { return &r.LLVMDstRoot }},
	{KeyLLVMSrcRoot, true, func(r *ConfigRequest) *string { return &r.LLVMSrcRoot }},
	{KeyLLFIBuildRoot, true, func(r *ConfigRequest) *string { return &r.LLFIBuildRoot }},
	{KeyLLVMGxxBinDir, false, func(r *ConfigRequest) *string { return &r.LLVMGxxBinDir }},
	{KeyJavaHomeDir, false, func(r *ConfigRequest) *string { return &r.JavaHomeDir }},
}

func lookupOptionKey(name string) (optionKey, bool) {
	for _, key := range optionKeys {
		if key.name == name {
			return key, true
		}
	}
	return optionKey{}, false
}

// ParseArgs turns the command-line tokens into an Invocation.
//
// Tokens are scanned left to right:
//   - --help or -h stops scanning and returns Help=true, whatever came before
//   - --no_gui and --runTests toggle BuildFlags
//   - -KEY VALUE sets a path option; VALUE is the next token, taken verbatim
//
// # Parameters
//
//   - args: the command line without the program name (os.Args[1:])
//
// # Returns
//
// The Invocation holds an immutable ConfigRequest with every path made
// absolute, plus the BuildFlags. When Help is set the rest of the Invocation
// is not meaningful.
//
// # Error Handling
//
// Returns a *UsageError (exit status 1) for an unknown option, a bare value,
// or a key without a value, naming the offending token. An error earlier on
// the line wins over a later --help. Missing required keys are checked after
// the scan and reported together:
//
//	missing required options: -LLVM_SRC_ROOT, -LLFI_BUILD_ROOT
//
// Nothing on disk is read or written.
func ParseArgs(args []string) (Invocation, error) {
	inv := Invocation{Flags: DefaultBuildFlags()}
	req := ConfigRequest{}

	for i := 0; i < len(args); i++ {
		token := args[i]
		switch token {
		case "--help", "-h":
			return Invocation{Help: true, Flags: DefaultBuildFlags()}, nil
		case "--no_gui":
			inv.Flags.BuildGUI = false
			continue
		case "--runTests":
			inv.Flags.RunTests = true
			continue
		}

		if !strings.HasPrefix(token, "-") {
			return Invocation{}, usageErrorf("unexpected argument %q: expected an option", token)
		}

		key, ok := lookupOptionKey(strings.TrimPrefix(token, "-"))
		if !ok {
			return Invocation{}, usageErrorf("unknown option %q", token)
		}
		if i+1 >= len(args) {
			return Invocation{}, usageErrorf("option %q requires a value", token)
		}
		i++
		*key.field(&req) = args[i]
	}

	var missing []string
	for _, key := range optionKeys {
		if key.required && strings.TrimSpace(*key.field(&req)) == "" {
			missing = append(missing, "-"+key.name)
		}
	}
	if len(missing) > 0 {
		return Invocation{}, usageErrorf("missing required options: %s", strings.Join(missing, ", "))
	}

	for _, key := range optionKeys {
		value := key.field(&req)
		if *value == "" {
			continue
		}
		abs, err := filepath.Abs(*value)
		if err != nil {
			return Invocation{}, usageErrorf("cannot resolve -%s %q: %v", key.name, *value, err)
		}
		*value = abs
	}

	inv.Request = req
	return inv, nil
}

// FormatUsageError renders a usage error the way it is shown to the user:
// the message followed by the full help text.
func FormatUsageError(err error) string {
	return fmt.Sprintf("error: %v\n\n%s", err, Usage)
}
