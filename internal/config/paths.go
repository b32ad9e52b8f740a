package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// ExecutableDir returns the directory of the running binary with symlinks resolved
func ExecutableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to get executable path: %w", err)
	}

	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return "", fmt.Errorf("failed to resolve executable symlinks: %w", err)
	}

	return filepath.Dir(exe), nil
}

// DatasetCandidates lists where the dataset file is looked for, in order:
// the configured path, each fallback, then the same relative paths under the
// executable directory
func (d DatasetConfig) DatasetCandidates() []string {
	paths := append([]string{d.Path}, d.FallbackPaths...)
	candidates := make([]string, 0, len(paths)*2)
	seen := make(map[string]bool)
	add := func(p string) {
		if p == "" || seen[p] {
			return
		}
		seen[p] = true
		candidates = append(candidates, p)
	}

	for _, p := range paths {
		if abs, err := filepath.Abs(p); err == nil {
			add(abs)
		} else {
			add(p)
		}
	}

	if exeDir, err := ExecutableDir(); err == nil {
		for _, p := range paths {
			if p != "" && !filepath.IsAbs(p) {
				add(filepath.Join(exeDir, p))
			}
		}
	}
	return candidates
}

// ResolveDatasetPath returns the first candidate that exists. When none does
// the configured path is returned together with an error naming every
// location tried.
func (d DatasetConfig) ResolveDatasetPath(logger *slog.Logger) (string, error) {
	candidates := d.DatasetCandidates()
	for _, p := range candidates {
		if FileExists(p) {
			if logger != nil {
				logger.Debug("dataset path resolved", slog.String("path", p))
			}
			return p, nil
		}
	}
	return d.Path, fmt.Errorf("dataset not found in any of %v", candidates)
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
