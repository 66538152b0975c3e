package engine

import (
	"context"
	"fmt"
)

// List returns every recorded unit with the current state of its owned files.
func (e *Engine) List(ctx context.Context) (*ListResult, error) {
	m, err := e.manifest.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load manifest: %w", err)
	}

	result := &ListResult{Entries: make([]ListedEntry, 0, len(m.Entries))}
	for _, entry := range m.Entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		listed := ListedEntry{Entry: entry, States: make([]ListedFile, 0, len(entry.Files))}
		for _, f := range entry.Files {
			state, err := e.fileState(f.Path, f.Checksum)
			if err != nil {
				return nil, err
			}
			listed.States = append(listed.States, ListedFile{Path: f.Path, State: state})
		}
		result.Entries = append(result.Entries, listed)
	}
	return result, nil
}

func (e *Engine) fileState(path, checksum string) (FileState, error) {
	exists, err := e.fs.Exists(path)
	if err != nil {
		return "", fmt.Errorf("failed to check if path exists: %w", err)
	}
	if !exists {
		return FileMissing, nil
	}
	sum, err := e.hasher.HashFile(e.fs, path)
	if err != nil {
		return "", fmt.Errorf("failed to hash %s: %w", path, err)
	}
	if sum != checksum {
		return FileModified, nil
	}
	return FileClean, nil
}
