package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// rootMarkers identify a project root, strongest first.
var rootMarkers = []string{ConfigFileName, "package.json", ".git"}

// Discover finds the project root by walking up from cwd. The nearest
// directory holding a .structurex.yaml wins; failing that, the nearest
// package.json, then the nearest .git. If none is found cwd itself is the root.
func Discover(cwd string) (string, error) {
	absPath, err := filepath.Abs(cwd)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	for _, marker := range rootMarkers {
		if dir, ok := findUp(absPath, marker); ok {
			return dir, nil
		}
	}
	return absPath, nil
}

func findUp(start, marker string) (string, bool) {
	current := start
	for {
		// .git can be a directory or a file (for worktrees/submodules)
		if _, err := os.Stat(filepath.Join(current, marker)); err == nil {
			return current, true
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", false
		}
		current = parent
	}
}
