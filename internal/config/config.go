package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ConstCodeX/structurex/internal/fsops"
	"github.com/ConstCodeX/structurex/internal/planner"
)

// LayoutConfig controls where files are generated and how they are named.
type LayoutConfig struct {
	Src          string   `yaml:"src"`
	Test         string   `yaml:"test"`
	ComponentExt string   `yaml:"component_ext"`
	ScriptExt    string   `yaml:"script_ext"`
	Marker       string   `yaml:"marker"`
	RootExports  []string `yaml:"root_exports"`
}

// TemplatesConfig points at optional template overrides.
type TemplatesConfig struct {
	// Dir holds <id>.tmpl files overriding the built-in templates
	Dir string `yaml:"dir,omitempty"`
}

// Config models .structurex.yaml.
type Config struct {
	Layout    LayoutConfig    `yaml:"layout"`
	Templates TemplatesConfig `yaml:"templates"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	l := planner.DefaultLayout()
	return &Config{
		Layout: LayoutConfig{
			Src:          l.SrcDir,
			Test:         l.TestDir,
			ComponentExt: l.ComponentExt,
			ScriptExt:    l.ScriptExt,
			Marker:       l.Marker,
			RootExports:  l.RootExports,
		},
	}
}

// Load reads the configuration at path. A missing file yields Default().
// Keys present in the file override the defaults; unknown keys are rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates configuration data on top of the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the layout can produce safe paths.
func (c *Config) Validate() error {
	l := c.Layout
	var errs []error

	for field, dir := range map[string]string{"layout.src": l.Src, "layout.test": l.Test} {
		if err := fsops.ValidateRelPath(dir); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", field, err))
		}
	}
	for field, ext := range map[string]string{"layout.component_ext": l.ComponentExt, "layout.script_ext": l.ScriptExt} {
		if ext == "" || strings.ContainsAny(ext, "./\\ ") {
			errs = append(errs, fmt.Errorf("%s: invalid extension %q", field, ext))
		}
	}
	if strings.TrimSpace(l.Marker) == "" || strings.ContainsAny(l.Marker, "\r\n") {
		errs = append(errs, fmt.Errorf("layout.marker: must be a single non-empty line"))
	}
	for _, mod := range l.RootExports {
		if err := fsops.ValidateRelPath(mod); err != nil {
			errs = append(errs, fmt.Errorf("layout.root_exports: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// PlannerLayout converts the configuration into a planner layout.
func (c *Config) PlannerLayout() planner.Layout {
	return planner.Layout{
		SrcDir:       c.Layout.Src,
		TestDir:      c.Layout.Test,
		ComponentExt: c.Layout.ComponentExt,
		ScriptExt:    c.Layout.ScriptExt,
		Marker:       c.Layout.Marker,
		RootExports:  append([]string(nil), c.Layout.RootExports...),
	}
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
