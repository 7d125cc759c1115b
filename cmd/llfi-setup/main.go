package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"

	llfisetup "github.com/contriboss/llfi-setup"
	"github.com/contriboss/llfi-setup/internal/logging"
)

func main() {
	root, err := installerRoot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "llfi-setup: %v\n", err)
		os.Exit(llfisetup.ExitFailure)
	}

	logger := logging.New(os.Stderr, logging.ProfileRuntime)
	installer := llfisetup.NewInstaller(root, llfisetup.NewShellRunner(os.Stdout, os.Stderr), logger)

	err = installer.Run(context.Background(), os.Args[1:])
	os.Exit(mg.ExitStatus(err))
}

// installerRoot is the directory holding the llfi-setup binary, with symlinks
// resolved. The binary ships at the top of the LLFI source tree.
func installerRoot() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate executable: %w", err)
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return "", fmt.Errorf("resolve executable: %w", err)
	}
	return filepath.Dir(exe), nil
}
