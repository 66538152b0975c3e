package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ConstCodeX/structurex/internal/clock"
	"github.com/ConstCodeX/structurex/internal/config"
	"github.com/ConstCodeX/structurex/internal/engine"
	"github.com/ConstCodeX/structurex/internal/fsops"
	"github.com/ConstCodeX/structurex/internal/hash"
	"github.com/ConstCodeX/structurex/internal/logger"
	"github.com/ConstCodeX/structurex/internal/manifest"
	"github.com/ConstCodeX/structurex/internal/render"
)

// loadProject resolves the project paths and configuration for the current directory.
func loadProject() (*config.Paths, *config.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get current directory: %w", err)
	}

	if err := config.LoadEnv(cwd); err != nil {
		return nil, nil, err
	}

	root, err := config.Discover(cwd)
	if err != nil {
		return nil, nil, err
	}

	paths, err := config.DefaultPaths(root)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get config paths: %w", err)
	}

	cfg, err := config.Load(paths.Config)
	if err != nil {
		return nil, nil, err
	}

	return paths, cfg, nil
}

// newEngine creates a new engine with real implementations of all dependencies.
func newEngine() (*engine.Engine, error) {
	paths, cfg, err := loadProject()
	if err != nil {
		return nil, err
	}

	templatesDir := cfg.Templates.Dir
	if templatesDir != "" && !filepath.IsAbs(templatesDir) {
		templatesDir = filepath.Join(paths.Root, templatesDir)
	}
	renderer, err := render.New(templatesDir)
	if err != nil {
		return nil, err
	}
	logger.ForComponent("cli").Debug("templates loaded", "ids", renderer.IDs(), "overrides", templatesDir)

	fs := fsops.NewRealFS(paths.Root)
	hasher := hash.NewSHA256Hasher()
	clk := &clock.RealClock{}
	store := manifest.NewFileStore(fs, paths.Manifest)

	return engine.New(fs, renderer, hasher, clk, store, cfg.PlannerLayout()), nil
}

// formatJSON formats a value as JSON.
func formatJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// formatError formats an error for display.
func formatError(err error) string {
	return errorColor.Sprintf("Error: %v", err)
}

// outputJSON writes a value as indented JSON.
func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
