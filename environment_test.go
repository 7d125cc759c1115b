package llfisetup

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateEnvironmentAcceptsValidHost(t *testing.T) {
	fx := newFixture(t)
	stubHost(t, defaultTools())
	runner := newFakeRunner()

	report, err := ValidateEnvironment(context.Background(), runner, fx.request())
	if err != nil {
		t.Fatalf("ValidateEnvironment returned error: %v", err)
	}
	if report.HasError {
		t.Fatalf("expected no failures, got %v", report.Failures)
	}
	if report.Err() != nil {
		t.Fatalf("expected nil Err, got %v", report.Err())
	}
	if report.Python != "/usr/bin/python3" {
		t.Errorf("expected python3 to be recorded, got %q", report.Python)
	}

	probe, ok := runner.call("probe-yaml")
	if !ok {
		t.Fatal("expected the yaml probe to run")
	}
	if probe.Name != "/usr/bin/python3" || strings.Join(probe.Args, " ") != "-c import yaml" || !probe.Quiet {
		t.Errorf("unexpected probe command: %+v", probe)
	}
}

func TestValidateEnvironmentRejectsUnsupportedPlatform(t *testing.T) {
	fx := newFixture(t)
	stubHost(t, defaultTools())
	hostOS = "windows"
	runner := newFakeRunner()

	report, err := ValidateEnvironment(context.Background(), runner, fx.request())
	var platformErr *PlatformError
	if !errors.As(err, &platformErr) {
		t.Fatalf("expected *PlatformError, got %v", err)
	}
	if report != nil {
		t.Errorf("expected no report, got %+v", report)
	}
	if len(runner.calls) != 0 {
		t.Errorf("expected no further checks after the platform check, got %v", runner.steps())
	}
}

func TestValidateEnvironmentExistingBuildRoot(t *testing.T) {
	fx := newFixture(t)
	stubHost(t, defaultTools())
	mustMkdir(t, fx.buildRoot)

	report, err := ValidateEnvironment(context.Background(), newFakeRunner(), fx.request())
	if err != nil {
		t.Fatalf("ValidateEnvironment returned error: %v", err)
	}
	if len(report.Failures) != 1 || !strings.Contains(report.Failures[0], "already exists") {
		t.Fatalf("expected one already-exists failure, got %v", report.Failures)
	}
}

func TestValidateEnvironmentAggregatesEveryFailure(t *testing.T) {
	fx := newFixture(t)
	stubHost(t, map[string]string{"python3": "/usr/bin/python3"})
	mustMkdir(t, fx.buildRoot)
	if err := os.RemoveAll(filepath.Join(fx.llvmDst, "CMakeFiles")); err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(filepath.Join(fx.llvmDst, "bin", "opt")); err != nil {
		t.Fatal(err)
	}
	if err := os.RemoveAll(fx.llvmSrc); err != nil {
		t.Fatal(err)
	}

	runner := newFakeRunner()
	runner.exitCodes["probe-yaml"] = 1

	report, err := ValidateEnvironment(context.Background(), runner, fx.request())
	if err != nil {
		t.Fatalf("ValidateEnvironment returned error: %v", err)
	}

	wants := []string{
		"already exists",
		"LLVM_SRC_ROOT",
		"missing the opt executable",
		"clang not found",
		"cmake not found",
		"CMakeFiles",
		"yaml module",
	}
	if len(report.Failures) != len(wants) {
		t.Fatalf("expected %d failures, got %d: %v", len(wants), len(report.Failures), report.Failures)
	}
	for i, want := range wants {
		if !strings.Contains(report.Failures[i], want) {
			t.Errorf("failure %d: expected %q in %q", i, want, report.Failures[i])
		}
	}

	var envErr *EnvironmentError
	if !errors.As(report.Err(), &envErr) {
		t.Fatalf("expected *EnvironmentError, got %v", report.Err())
	}
	if len(envErr.Failures) != len(wants) {
		t.Errorf("expected the error to carry every failure, got %v", envErr.Failures)
	}
}

func TestValidateEnvironmentMissingLLVMBuildRoot(t *testing.T) {
	fx := newFixture(t)
	stubHost(t, defaultTools())
	req := fx.request()
	req.LLVMDstRoot = filepath.Join(t.TempDir(), "missing")

	report, err := ValidateEnvironment(context.Background(), newFakeRunner(), req)
	if err != nil {
		t.Fatalf("ValidateEnvironment returned error: %v", err)
	}
	joined := strings.Join(report.Failures, "\n")
	for _, want := range []string{"LLVM_DST_ROOT " + req.LLVMDstRoot + " does not exist", "no bin directory", "no CMakeFiles"} {
		if !strings.Contains(joined, want) {
			t.Errorf("expected %q in failures:\n%s", want, joined)
		}
	}
}

func TestValidateEnvironmentClangFromBinDir(t *testing.T) {
	fx := newFixture(t)
	tools := defaultTools()
	delete(tools, "clang")
	stubHost(t, tools)

	binDir := t.TempDir()
	req := fx.request()
	req.LLVMGxxBinDir = binDir

	report, err := ValidateEnvironment(context.Background(), newFakeRunner(), req)
	if err != nil {
		t.Fatalf("ValidateEnvironment returned error: %v", err)
	}
	if len(report.Failures) != 1 || !strings.Contains(report.Failures[0], "LLVM_GXX_BIN_DIR") {
		t.Fatalf("expected a clang failure naming the bin dir option, got %v", report.Failures)
	}

	mustWrite(t, filepath.Join(binDir, "clang"), "#!/bin/sh\n", 0o755)
	report, err = ValidateEnvironment(context.Background(), newFakeRunner(), req)
	if err != nil {
		t.Fatalf("ValidateEnvironment returned error: %v", err)
	}
	if report.HasError {
		t.Fatalf("expected clang in the bin dir to satisfy the check, got %v", report.Failures)
	}
}

func TestProbeYAML(t *testing.T) {
	testCases := []struct {
		name   string
		tools  map[string]string
		exit   int
		want   Capability
		python string
	}{
		{"available", map[string]string{"python3": "/usr/bin/python3"}, 0, CapabilityAvailable, "/usr/bin/python3"},
		{"module missing", map[string]string{"python3": "/usr/bin/python3"}, 1, CapabilityModuleMissing, "/usr/bin/python3"},
		{"interpreter missing", nil, 0, CapabilityInterpreterMissing, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			stubHost(t, tc.tools)
			runner := newFakeRunner()
			runner.exitCodes["probe-yaml"] = tc.exit

			got, python := ProbeYAML(context.Background(), runner)
			if got != tc.want {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
			if python != tc.python {
				t.Errorf("expected interpreter %q, got %q", tc.python, python)
			}
		})
	}
}
