package llfisetup

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// RecordFileName is written into the build root once the build phase starts.
const RecordFileName = "llfi_setup_record.toml"

// RunRecord describes what a run asked for and which commands it ran.
type RunRecord struct {
	Root      string       `toml:"root"`
	Result    string       `toml:"result"`
	Artifacts []string     `toml:"artifacts"`
	Request   RecordInputs `toml:"request"`
	Steps     []RecordStep `toml:"steps"`
}

// RecordInputs mirrors ConfigRequest and BuildFlags.
type RecordInputs struct {
	LLVMDstRoot   string `toml:"llvm_dst_root"`
	LLVMSrcRoot   string `toml:"llvm_src_root"`
	LLFIBuildRoot string `toml:"llfi_build_root"`
	LLVMGxxBinDir string `toml:"llvm_gxx_bin_dir"`
	JavaHomeDir   string `toml:"java_home_dir"`
	BuildGUI      bool   `toml:"build_gui"`
	RunTests      bool   `toml:"run_tests"`
}

// RecordStep is one journaled command.
type RecordStep struct {
	Step     string `toml:"step"`
	Command  string `toml:"command"`
	Dir      string `toml:"dir"`
	ExitCode int    `toml:"exit_code"`
	Elapsed  string `toml:"elapsed"`
}

// NewRunRecord assembles a record from the run's inputs and journal.
func NewRunRecord(root string, inv Invocation, artifacts []ConfigArtifact, steps []StepResult, runErr error) RunRecord {
	record := RunRecord{
		Root:   root,
		Result: "success",
		Request: RecordInputs{
			LLVMDstRoot:   inv.Request.LLVMDstRoot,
			LLVMSrcRoot:   inv.Request.LLVMSrcRoot,
			LLFIBuildRoot: inv.Request.LLFIBuildRoot,
			LLVMGxxBinDir: inv.Request.LLVMGxxBinDir,
			JavaHomeDir:   inv.Request.JavaHomeDir,
			BuildGUI:      inv.Flags.BuildGUI,
			RunTests:      inv.Flags.RunTests,
		},
	}
	if runErr != nil {
		record.Result = runErr.Error()
	}
	for _, artifact := range artifacts {
		record.Artifacts = append(record.Artifacts, artifact.Path)
	}
	for _, step := range steps {
		record.Steps = append(record.Steps, RecordStep{
			Step:     step.Step,
			Command:  strings.TrimSpace(step.Command + " " + strings.Join(step.Args, " ")),
			Dir:      step.Dir,
			ExitCode: step.ExitCode,
			Elapsed:  step.Elapsed.String(),
		})
	}
	return record
}

// WriteRunRecord writes record to dir/RecordFileName, replacing any previous one.
func WriteRunRecord(dir string, record RunRecord) (string, error) {
	path := filepath.Join(dir, RecordFileName)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create run record: %w", err)
	}
	if err := toml.NewEncoder(f).Encode(record); err != nil {
		f.Close()
		return "", fmt.Errorf("encode run record: %w", err)
	}
	return path, f.Close()
}

// LoadRunRecord reads a record written by WriteRunRecord.
func LoadRunRecord(path string) (RunRecord, error) {
	var record RunRecord
	if _, err := toml.DecodeFile(path, &record); err != nil {
		return RunRecord{}, fmt.Errorf("load run record (%s): %w", path, err)
	}
	return record, nil
}
