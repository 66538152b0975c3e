// Package barrel merges export lines into aggregation ("barrel") files.
//
// A barrel carries a marker line. New export lines are inserted directly
// above the first marker so exports accumulate in generation order and the
// marker stays in place as the anchor for the next merge. A line that is
// already present is never inserted again.
package barrel

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMergeTargetMalformed indicates a non-empty barrel without its marker.
var ErrMergeTargetMalformed = errors.New("merge target has no marker")

// Merge describes one idempotent insertion into a barrel file.
type Merge struct {
	// Path is the barrel path, used for error reporting
	Path string

	// Marker is the anchor; the line is inserted above its first occurrence
	Marker string

	// Line is the export statement to insert, without a trailing newline
	Line string

	// Seed materializes an absent or empty target and must contain Marker
	Seed string
}

// MalformedError reports a barrel that lost its marker.
type MalformedError struct {
	Path   string
	Marker string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("%s: marker %q not found", e.Path, e.Marker)
}

// Unwrap lets errors.Is match ErrMergeTargetMalformed.
func (e *MalformedError) Unwrap() error {
	return ErrMergeTargetMalformed
}

// Apply returns the content of the barrel after merging m into current.
// exists reports whether the target file is present; an absent or empty
// target starts from m.Seed. If m.Line is already present the content is
// returned unchanged.
func Apply(m Merge, current string, exists bool) (string, error) {
	if m.Marker == "" {
		return "", fmt.Errorf("barrel: merge into %s has no marker", m.Path)
	}

	content := current
	if !exists || content == "" {
		content = m.Seed
	}

	if ContainsLine(content, m.Line) {
		return content, nil
	}

	newline := "\n"
	if strings.Contains(content, "\r\n") {
		newline = "\r\n"
	}

	lines := strings.SplitAfter(content, "\n")
	for i, line := range lines {
		if !strings.Contains(line, m.Marker) {
			continue
		}
		var b strings.Builder
		b.Grow(len(content) + len(m.Line) + len(newline))
		for _, prev := range lines[:i] {
			b.WriteString(prev)
		}
		b.WriteString(m.Line)
		b.WriteString(newline)
		for _, rest := range lines[i:] {
			b.WriteString(rest)
		}
		return b.String(), nil
	}

	return "", &MalformedError{Path: m.Path, Marker: m.Marker}
}

// ContainsLine reports whether content has a line equal to line, ignoring
// surrounding whitespace and line endings on both sides.
func ContainsLine(content, line string) bool {
	want := strings.TrimSpace(line)
	if want == "" {
		return false
	}
	for _, l := range strings.Split(content, "\n") {
		if strings.TrimSpace(l) == want {
			return true
		}
	}
	return false
}
