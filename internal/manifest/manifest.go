// Package manifest records what structurex generated in a project.
//
// The manifest lives at .structurex/manifest.json. Each entry lists the files
// a generator invocation owns (component body, container, test, local
// barrel, hook, presenter) with the checksum written at generation time.
// Shared barrels are not owned by any entry and are never recorded.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/ConstCodeX/structurex/internal/fsops"
)

// Version is the current manifest format version.
const Version = 1

// Manifest is the record of generated units.
type Manifest struct {
	// Version is the manifest format version
	Version int `json:"version"`

	// Entries is sorted by generator, then name
	Entries []Entry `json:"entries"`
}

// Entry describes one generated unit.
type Entry struct {
	// Generator is "component", "hook" or "presenter"
	Generator string `json:"generator"`

	// Name is the unit's PascalCase name
	Name string `json:"name"`

	// Tier is the tier key (components only)
	Tier string `json:"tier,omitempty"`

	// Files are the owned files in plan order
	Files []File `json:"files"`

	// GeneratedAt is when the unit was last generated
	GeneratedAt time.Time `json:"generatedAt"`
}

// File is an owned file and its checksum at generation time.
type File struct {
	Path     string `json:"path"`
	Checksum string `json:"checksum"`
}

// New creates a new empty Manifest.
func New() *Manifest {
	return &Manifest{
		Version: Version,
		Entries: []Entry{},
	}
}

// Record adds e, replacing an earlier entry for the same generator and name.
func (m *Manifest) Record(e Entry) {
	for i, existing := range m.Entries {
		if existing.Generator == e.Generator && existing.Name == e.Name {
			m.Entries[i] = e
			return
		}
	}
	m.Entries = append(m.Entries, e)
	sort.SliceStable(m.Entries, func(i, j int) bool {
		if m.Entries[i].Generator != m.Entries[j].Generator {
			return m.Entries[i].Generator < m.Entries[j].Generator
		}
		return m.Entries[i].Name < m.Entries[j].Name
	})
}

// Find returns the entry for generator and name.
func (m *Manifest) Find(generator, name string) (Entry, bool) {
	for _, e := range m.Entries {
		if e.Generator == generator && e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// Store persists the manifest.
type Store interface {
	// Load returns the manifest, or an empty one if none was saved yet.
	Load() (*Manifest, error)

	// Save writes the manifest atomically.
	Save(m *Manifest) error
}

// FileStore implements Store with a JSON file.
type FileStore struct {
	fs   fsops.FS
	path string
}

// NewFileStore creates a FileStore at path relative to the fs root.
func NewFileStore(fs fsops.FS, path string) *FileStore {
	return &FileStore{fs: fs, path: path}
}

// Load reads the manifest.
func (s *FileStore) Load() (*Manifest, error) {
	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return New(), nil
		}
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to unmarshal manifest: %w", err)
	}
	if m.Version > Version {
		return nil, fmt.Errorf("manifest version %d is newer than supported version %d", m.Version, Version)
	}
	if m.Entries == nil {
		m.Entries = []Entry{}
	}

	return &m, nil
}

// Save writes the manifest atomically.
func (s *FileStore) Save(m *Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := s.fs.AtomicWrite(s.path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	return nil
}
