package llfisetup

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

const (
	viewerHomeVar    = "ZGRV_HOME"
	viewerScriptName = "run.sh"
	viewerOutputName = "llfi_run.sh"
)

// ViewerDir returns the zgrviewer directory of an installer root.
func ViewerDir(root string) string {
	return filepath.Join(root, "tools", "zgrviewer")
}

// ConfigureViewerScript writes tools/zgrviewer/llfi_run.sh from the bundled
// run.sh, pointing ZGRV_HOME at the absolute zgrviewer directory. The first
// line assigning ZGRV_HOME is replaced; every other line is copied as is.
// The result is owner read/write/execute only.
func ConfigureViewerScript(root string) (string, error) {
	dir := ViewerDir(root)
	src := filepath.Join(dir, viewerScriptName)
	dst := filepath.Join(dir, viewerOutputName)

	content, err := os.ReadFile(src)
	if err != nil {
		return "", fmt.Errorf("read viewer script: %w", err)
	}

	rewritten, ok := rewriteHomeVar(content, viewerHomeVar+"="+dir)
	if !ok {
		return "", fmt.Errorf("viewer script %s does not define %s", src, viewerHomeVar)
	}

	if err := os.WriteFile(dst, rewritten, 0o700); err != nil {
		return "", fmt.Errorf("write viewer script: %w", err)
	}
	// WriteFile keeps the mode of an existing file.
	if err := os.Chmod(dst, 0o700); err != nil {
		return "", fmt.Errorf("chmod viewer script: %w", err)
	}
	return dst, nil
}

func rewriteHomeVar(content []byte, replacement string) ([]byte, bool) {
	lines := bytes.SplitAfter(content, []byte("\n"))
	for i, line := range lines {
		body := bytes.TrimRight(line, "\r\n")
		if !bytes.HasPrefix(bytes.TrimSpace(body), []byte(viewerHomeVar+"=")) {
			continue
		}
		ending := line[len(body):]
		lines[i] = append([]byte(replacement), ending...)
		return bytes.Join(lines, nil), true
	}
	return nil, false
}
