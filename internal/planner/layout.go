package planner

import (
	"fmt"
	"strings"
)

// DefaultMarker is the anchor comment new exports are inserted next to.
const DefaultMarker = "// AUTO-EXPORTS"

// Layout controls where generated files go and how they are named.
type Layout struct {
	// SrcDir is the source root (default "src")
	SrcDir string

	// TestDir is the test root (default "test")
	TestDir string

	// ComponentExt is the extension of component and test files (default "tsx")
	ComponentExt string

	// ScriptExt is the extension of containers, barrels, hooks and presenters (default "ts")
	ScriptExt string

	// Marker is the barrel anchor line
	Marker string

	// RootExports are the foundational modules the root barrel is seeded with
	RootExports []string
}

// DefaultLayout returns the layout used when no project configuration is set.
func DefaultLayout() Layout {
	return Layout{
		SrcDir:       "src",
		TestDir:      "test",
		ComponentExt: "tsx",
		ScriptExt:    "ts",
		Marker:       DefaultMarker,
		RootExports:  []string{"config", "core"},
	}
}

// FolderSeed is the initial content of a per-folder barrel.
func (l Layout) FolderSeed() string {
	return l.Marker + "\n"
}

// RootSeed is the initial content of the root barrel.
func (l Layout) RootSeed() string {
	var b strings.Builder
	for _, mod := range l.RootExports {
		b.WriteString(ExportLine("./" + mod))
		b.WriteString("\n")
	}
	if len(l.RootExports) > 0 {
		b.WriteString("\n")
	}
	b.WriteString(l.Marker)
	b.WriteString("\n")
	return b.String()
}

// ExportLine returns a re-export statement for the given module specifier.
func ExportLine(spec string) string {
	return fmt.Sprintf("export * from '%s';", spec)
}
