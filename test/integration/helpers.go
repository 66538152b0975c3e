package integration

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ConstCodeX/structurex/internal/clock"
	"github.com/ConstCodeX/structurex/internal/config"
	"github.com/ConstCodeX/structurex/internal/engine"
	"github.com/ConstCodeX/structurex/internal/fsops"
	"github.com/ConstCodeX/structurex/internal/hash"
	"github.com/ConstCodeX/structurex/internal/manifest"
	"github.com/ConstCodeX/structurex/internal/render"
)

// setupTestEngine wires an engine to a real project directory under t.TempDir,
// the same way the CLI does.
func setupTestEngine(t *testing.T) (*engine.Engine, string) {
	t.Helper()

	root := t.TempDir()
	t.Setenv(config.EnvRoot, "")
	t.Setenv(config.EnvConfig, "")
	paths, err := config.DefaultPaths(root)
	require.NoError(t, err)

	cfg, err := config.Load(paths.Config)
	require.NoError(t, err)

	renderer, err := render.New("")
	require.NoError(t, err)

	fs := fsops.NewRealFS(paths.Root)
	clk := clock.NewFakeClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	store := manifest.NewFileStore(fs, paths.Manifest)

	return engine.New(fs, renderer, hash.NewSHA256Hasher(), clk, store, cfg.PlannerLayout()), paths.Root
}

func readFile(t *testing.T, root, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}
