package llfisetup

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// execLookPath is swapped out in tests.
var execLookPath = exec.LookPath

// ToolRequirement describes an executable the build depends on.
//
// Alternatives are tried in order when Name is not found; the first hit
// satisfies the requirement.
//
//	ToolRequirement{
//	    Name:         "python3",
//	    Alternatives: []string{"python"},
//	    Purpose:      "interpreter for the LLFI tooling",
//	}
type ToolRequirement struct {
	// Name is the primary binary name, e.g. "cmake".
	Name string

	// Alternatives can satisfy the requirement when Name is missing.
	Alternatives []string

	// Purpose is shown in error messages.
	Purpose string

	// Hint tells the user how to fix a missing tool.
	Hint string
}

// Resolve returns the absolute path of the first candidate found in PATH.
func (r ToolRequirement) Resolve() (string, error) {
	candidates := append([]string{r.Name}, r.Alternatives...)
	for _, candidate := range candidates {
		if path, err := execLookPath(candidate); err == nil {
			return path, nil
		}
	}
	return "", r.missing()
}

// ResolveIn looks for Name inside dir instead of PATH.
func (r ToolRequirement) ResolveIn(dir string) (string, error) {
	path := filepath.Join(dir, r.Name)
	if isExecutable(path) {
		return path, nil
	}
	msg := fmt.Sprintf("%s not found in %s", r.Name, dir)
	if r.Purpose != "" {
		msg += fmt.Sprintf(" (required for: %s)", r.Purpose)
	}
	return "", fmt.Errorf("%s", msg)
}

func (r ToolRequirement) missing() error {
	msg := fmt.Sprintf("%s not found in PATH", r.Name)
	if r.Purpose != "" {
		msg += fmt.Sprintf(" (required for: %s)", r.Purpose)
	}
	if r.Hint != "" {
		msg += "; " + r.Hint
	}
	return fmt.Errorf("%s", msg)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular() && info.Mode().Perm()&0o111 != 0
}

func pathExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
