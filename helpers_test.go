package llfisetup

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// fakeRunner scripts exit codes per step and records every command.
type fakeRunner struct {
	exitCodes map[string]int
	calls     []Command
	dirs      []string
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{exitCodes: map[string]int{}}
}

func (f *fakeRunner) Run(_ context.Context, cmd Command) StepResult {
	f.calls = append(f.calls, cmd)
	dir, _ := os.Getwd()
	f.dirs = append(f.dirs, dir)

	result := StepResult{
		Step:     cmd.Step,
		Command:  cmd.Name,
		Args:     append([]string(nil), cmd.Args...),
		Dir:      dir,
		Ran:      true,
		ExitCode: f.exitCodes[cmd.Step],
	}
	if result.ExitCode != 0 {
		result.Err = fmt.Errorf("exit status %d", result.ExitCode)
	}
	return result
}

func (f *fakeRunner) steps() []string {
	steps := make([]string, 0, len(f.calls))
	for _, call := range f.calls {
		steps = append(steps, call.Step)
	}
	return steps
}

func (f *fakeRunner) call(step string) (Command, bool) {
	for _, call := range f.calls {
		if call.Step == step {
			return call, true
		}
	}
	return Command{}, false
}

// stubHost pretends to run on linux with the given tools in PATH.
func stubHost(t *testing.T, tools map[string]string) {
	t.Helper()

	origLookPath := execLookPath
	origOS := hostOS
	t.Cleanup(func() {
		execLookPath = origLookPath
		hostOS = origOS
	})

	hostOS = "linux"
	execLookPath = func(name string) (string, error) {
		if path, ok := tools[name]; ok {
			return path, nil
		}
		return "", errors.New("executable file not found in $PATH")
	}
}

func defaultTools() map[string]string {
	return map[string]string{
		"clang":   "/usr/bin/clang",
		"cmake":   "/usr/bin/cmake",
		"python3": "/usr/bin/python3",
	}
}

const testViewerScript = `#!/bin/sh
# zgrviewer launcher
ZGRV_HOME=.
java -jar "$ZGRV_HOME/target/zgrviewer.jar" "$@"
`

type fixture struct {
	root      string
	llvmDst   string
	llvmSrc   string
	buildRoot string
}

// newFixture lays out an installer root and a valid LLVM build.
func newFixture(t *testing.T) fixture {
	t.Helper()
	base := t.TempDir()

	fx := fixture{
		root:      filepath.Join(base, "llfi"),
		llvmDst:   filepath.Join(base, "llvm-build"),
		llvmSrc:   filepath.Join(base, "llvm-src"),
		buildRoot: filepath.Join(base, "out", "llfi-build"),
	}

	mustMkdir(t, ViewerDir(fx.root))
	mustWrite(t, filepath.Join(ViewerDir(fx.root), "run.sh"), testViewerScript, 0o755)
	mustMkdir(t, filepath.Join(fx.llvmDst, "bin"))
	mustMkdir(t, filepath.Join(fx.llvmDst, "CMakeFiles"))
	mustWrite(t, filepath.Join(fx.llvmDst, "bin", "opt"), "#!/bin/sh\n", 0o755)
	mustMkdir(t, fx.llvmSrc)

	return fx
}

func (fx fixture) request() ConfigRequest {
	return ConfigRequest{
		LLVMDstRoot:   fx.llvmDst,
		LLVMSrcRoot:   fx.llvmSrc,
		LLFIBuildRoot: fx.buildRoot,
	}
}

// newJDK creates a JDK home with JavaFX in the jre/lib/ext layout.
func newJDK(t *testing.T) string {
	t.Helper()
	home := filepath.Join(t.TempDir(), "jdk")
	mustMkdir(t, filepath.Join(home, "bin"))
	mustWrite(t, filepath.Join(home, "bin", "javac"), "#!/bin/sh\n", 0o755)
	mustWrite(t, filepath.Join(home, "bin", "java"), "#!/bin/sh\n", 0o755)
	mustMkdir(t, filepath.Join(home, "jre", "lib", "ext"))
	mustWrite(t, filepath.Join(home, "jre", "lib", "ext", "jfxrt.jar"), "jar", 0o644)
	return home
}

func mustMkdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("failed to create %s: %v", dir, err)
	}
}

func mustWrite(t *testing.T, path, content string, mode os.FileMode) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), mode); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	if err := os.Chmod(path, mode); err != nil {
		t.Fatalf("failed to chmod %s: %v", path, err)
	}
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains: it changes
// the working directory for the duration of the test and restores it on cleanup.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
