package cliconfig

import (
	"os"
	"path/filepath"
)

// ConfigFileName is looked up in the working directory and next to the
// executable.
const ConfigFileName = "hartool.yaml"

// Source is one candidate location for the filter configuration file.
type Source struct {
	// Name identifies the source in logs, e.g. "flag" or "env".
	Name string
	Path string
	// Required sources are returned even when the file does not exist, so
	// that loading fails with a not-found error instead of silently moving
	// on to the next candidate.
	Required bool
}

// Resolved is the source Resolve picked.
type Resolved struct {
	Name string
	Path string
}

// Resolve returns the first source that names an existing file, or a
// Required source with a non-empty path. Sources with an empty path are
// skipped. The second result is false when no source applies.
func Resolve(sources ...Source) (Resolved, bool) {
	for _, src := range sources {
		if src.Path == "" {
			continue
		}
		if src.Required || isFile(src.Path) {
			return Resolved{Name: src.Name, Path: src.Path}, true
		}
	}
	return Resolved{}, false
}

// DefaultSources returns the standard discovery order: the --config flag
// value, hartool.yaml in cwd, hartool.yaml in baseDir, then HARTOOL_FILTER.
func DefaultSources(flagPath, cwd, baseDir string) []Source {
	var flagResolved string
	if flagPath != "" {
		flagResolved = ResolvePath(flagPath, cwd, baseDir)
	}
	var baseCandidate string
	if baseDir != "" {
		baseCandidate = filepath.Join(baseDir, ConfigFileName)
	}
	return []Source{
		{Name: "flag", Path: flagResolved, Required: true},
		{Name: "cwd", Path: filepath.Join(cwd, ConfigFileName)},
		{Name: "executable", Path: baseCandidate},
		{Name: "env", Path: os.Getenv(EnvFilter), Required: true},
	}
}

// ResolvePath makes path usable from cwd. Absolute paths are returned as is.
// A relative path is tried against cwd and then baseDir; when neither
// exists the cwd-relative path is returned so the caller's error names it.
func ResolvePath(path, cwd, baseDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	cwdPath := filepath.Join(cwd, path)
	if exists(cwdPath) {
		return cwdPath
	}
	if baseDir != "" {
		basePath := filepath.Join(baseDir, path)
		if exists(basePath) {
			return basePath
		}
	}
	return cwdPath
}

// BaseDir returns the directory holding the running executable, with
// symlinks resolved. It returns "" when that cannot be determined.
func BaseDir() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
