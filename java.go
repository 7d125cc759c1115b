package llfisetup

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// javaFXArchiveLocations are the places jfxrt.jar lives in the JDK layouts the
// GUI supports, relative to the JDK home.
var javaFXArchiveLocations = []string{
	filepath.Join("jre", "lib", "ext", "jfxrt.jar"),
	filepath.Join("jre", "lib", "jfxrt.jar"),
}

// javaClasspathDirs are the JDK directories whose jars make up the GUI
// classpath, in classpath order.
var javaClasspathDirs = []string{
	filepath.Join("jre", "lib"),
	filepath.Join("jre", "lib", "ext"),
	"lib",
}

var javacTool = ToolRequirement{
	Name:    "javac",
	Purpose: "building the LLFI GUI",
	Hint:    fmt.Sprintf("install a JDK or pass -%s <JDK home>", KeyJavaHomeDir),
}

// JavaRuntime is the resolved JDK used by the GUI build.
type JavaRuntime struct {
	Home      string
	Javac     string
	Java      string
	FXArchive string
	Classpath string
}

// ResolveJavaRuntime locates and checks the JDK for the GUI build.
//
// The home comes from req.JavaHomeDir, or is derived from the javac found in
// PATH (symlinks resolved, two levels up from the binary). The home must
// provide bin/javac, bin/java and jfxrt.jar in one of the supported
// locations. Every missing piece is reported in a single *EnvironmentError.
func ResolveJavaRuntime(req ConfigRequest) (JavaRuntime, error) {
	report := &EnvironmentReport{}

	home := req.JavaHomeDir
	if home == "" {
		detected, err := detectJavaHome()
		if err != nil {
			report.addf("%v", err)
			return JavaRuntime{}, report.Err()
		}
		home = detected
	}

	if !isDir(home) {
		report.addf("%s %s does not exist", KeyJavaHomeDir, home)
		return JavaRuntime{}, report.Err()
	}

	rt := JavaRuntime{
		Home:  home,
		Javac: filepath.Join(home, "bin", "javac"),
		Java:  filepath.Join(home, "bin", "java"),
	}

	if !isExecutable(rt.Javac) {
		report.addf("javac not found at %s", rt.Javac)
	}
	if !isExecutable(rt.Java) {
		report.addf("java not found at %s", rt.Java)
	}

	for _, rel := range javaFXArchiveLocations {
		candidate := filepath.Join(home, rel)
		if isFile(candidate) {
			rt.FXArchive = candidate
			break
		}
	}
	if rt.FXArchive == "" {
		report.addf("jfxrt.jar not found under %s (looked in %s); the GUI needs a JDK with JavaFX",
			home, strings.Join(javaFXArchiveLocations, ", "))
	}

	if err := report.Err(); err != nil {
		return JavaRuntime{}, err
	}

	rt.Classpath = javaClasspath(home)
	return rt, nil
}

func detectJavaHome() (string, error) {
	javac, err := javacTool.Resolve()
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(javac)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", javac, err)
	}
	return filepath.Dir(filepath.Dir(resolved)), nil
}

func javaClasspath(home string) string {
	var entries []string
	for _, rel := range javaClasspathDirs {
		dir := filepath.Join(home, rel)
		if isDir(dir) {
			entries = append(entries, filepath.Join(dir, "*"))
		}
	}
	return strings.Join(entries, string(os.PathListSeparator))
}
