// Package config manages structurex configuration and project paths.
//
// The project root is discovered by walking up from the current directory.
// It holds the optional .structurex.yaml configuration file and the
// .structurex/ state directory containing the generation manifest. Locations can be overridden with
// environment variables, which may also come from a .env file in the
// working directory.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

const (
	// EnvRoot overrides the project root.
	EnvRoot = "STRUCTUREX_ROOT"

	// EnvConfig overrides the configuration file location.
	EnvConfig = "STRUCTUREX_CONFIG"

	// ConfigFileName is the configuration file looked up in the project root.
	ConfigFileName = ".structurex.yaml"

	// StateDirName is the state directory inside the project root.
	StateDirName = ".structurex"
)

// Paths contains all the filesystem paths used by structurex.
type Paths struct {
	// Root is the absolute project root all generated paths are relative to
	Root string

	// Config is the absolute path to the project configuration file
	Config string

	// Manifest is the manifest path relative to Root
	Manifest string
}

// LoadEnv loads dir/.env into the process environment if it exists.
// Variables already set are not overridden.
func LoadEnv(dir string) error {
	err := godotenv.Load(filepath.Join(dir, ".env"))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

// DefaultPaths returns the paths for a project rooted at dir.
// Paths can be overridden with environment variables:
// - STRUCTUREX_ROOT: Override the project root
// - STRUCTUREX_CONFIG: Override the configuration file
func DefaultPaths(dir string) (*Paths, error) {
	root := os.Getenv(EnvRoot)
	if root == "" {
		root = dir
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project root: %w", err)
	}

	cfg := os.Getenv(EnvConfig)
	if cfg == "" {
		cfg = filepath.Join(root, ConfigFileName)
	} else if !filepath.IsAbs(cfg) {
		cfg = filepath.Join(root, cfg)
	}

	return &Paths{
		Root:     root,
		Config:   cfg,
		Manifest: StateDirName + "/manifest.json",
	}, nil
}
