package llfisetup

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ArtifactFormat selects the syntax of a generated configuration file.
type ArtifactFormat int

const (
	FormatCMake ArtifactFormat = iota
	FormatPython
	FormatMake
)

// Extension returns the file extension used for the format.
func (f ArtifactFormat) Extension() string {
	switch f {
	case FormatCMake:
		return ".cmake"
	case FormatPython:
		return ".py"
	case FormatMake:
		return ".make"
	default:
		return ""
	}
}

func (f ArtifactFormat) String() string {
	switch f {
	case FormatCMake:
		return "cmake"
	case FormatPython:
		return "python"
	case FormatMake:
		return "make"
	default:
		return fmt.Sprintf("ArtifactFormat(%d)", int(f))
	}
}

const (
	configDirName     = "config"
	llvmArtifactStem  = "llvm_paths"
	javaArtifactStem  = "java_paths"
	generatedFileNote = "# Generated by llfi-setup. Do not edit; re-run llfi-setup instead."
)

// PathEntry is one key of a canonical path table.
type PathEntry struct {
	Key   string
	Value string
}

// PathTable is the single source every artifact variant is rendered from.
type PathTable []PathEntry

// Lookup returns the value stored for key.
func (t PathTable) Lookup(key string) (string, bool) {
	for _, entry := range t {
		if entry.Key == key {
			return entry.Value, true
		}
	}
	return "", false
}

// LLVMPathTable builds the canonical table for the llvm_paths artifacts.
// LLVM_GXX_BIN_DIR is present with an empty value when it was not given.
func LLVMPathTable(req ConfigRequest) PathTable {
	return PathTable{
		{KeyLLVMDstRoot, req.LLVMDstRoot},
		{KeyLLVMSrcRoot, req.LLVMSrcRoot},
		{KeyLLFIBuildRoot, req.LLFIBuildRoot},
		{KeyLLVMGxxBinDir, req.LLVMGxxBinDir},
	}
}

// JavaPathTable builds the canonical table for the java_paths artifacts.
func JavaPathTable(rt JavaRuntime) PathTable {
	return PathTable{
		{"JAVA_HOME", rt.Home},
		{"JAVAC", rt.Javac},
		{"JAVA", rt.Java},
		{"JAVA_CLASSPATH", rt.Classpath},
	}
}

// ConfigArtifact is one rendered configuration file.
type ConfigArtifact struct {
	Format  ArtifactFormat
	Path    string
	Content []byte
}

// RenderArtifact serializes table in the given format.
func RenderArtifact(format ArtifactFormat, table PathTable) []byte {
	var b strings.Builder
	b.WriteString(generatedFileNote)
	b.WriteByte('\n')
	for _, entry := range table {
		switch format {
		case FormatCMake:
			fmt.Fprintf(&b, "set(%s %s)\n", entry.Key, cmakeQuote(entry.Value))
		case FormatPython:
			fmt.Fprintf(&b, "%s = %s\n", entry.Key, pythonQuote(entry.Value))
		case FormatMake:
			fmt.Fprintf(&b, "%s = %s\n", entry.Key, makeEscape(entry.Value))
		}
	}
	return []byte(b.String())
}

// PlanArtifacts lists the files a run writes under root/config, in write
// order. The java_paths files are only planned when rt is non-nil.
func PlanArtifacts(root string, req ConfigRequest, rt *JavaRuntime) []ConfigArtifact {
	dir := filepath.Join(root, configDirName)
	llvm := LLVMPathTable(req)

	artifacts := make([]ConfigArtifact, 0, 5)
	for _, format := range []ArtifactFormat{FormatCMake, FormatPython, FormatMake} {
		artifacts = append(artifacts, ConfigArtifact{
			Format:  format,
			Path:    filepath.Join(dir, llvmArtifactStem+format.Extension()),
			Content: RenderArtifact(format, llvm),
		})
	}

	if rt != nil {
		java := JavaPathTable(*rt)
		for _, format := range []ArtifactFormat{FormatCMake, FormatPython} {
			artifacts = append(artifacts, ConfigArtifact{
				Format:  format,
				Path:    filepath.Join(dir, javaArtifactStem+format.Extension()),
				Content: RenderArtifact(format, java),
			})
		}
	}
	return artifacts
}

// WriteArtifacts writes every artifact, replacing previous versions.
func WriteArtifacts(artifacts []ConfigArtifact) error {
	for _, artifact := range artifacts {
		if err := os.MkdirAll(filepath.Dir(artifact.Path), 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
		if err := os.WriteFile(artifact.Path, artifact.Content, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", artifact.Path, err)
		}
	}
	return nil
}

func cmakeQuote(value string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, `$`, `\$`)
	return `"` + r.Replace(value) + `"`
}

func pythonQuote(value string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)
	return `"` + r.Replace(value) + `"`
}

// makeEscape keeps make from expanding $ or starting a comment at #.
func makeEscape(value string) string {
	r := strings.NewReplacer(`$`, `$$`, `#`, `\#`)
	return r.Replace(value)
}
