package planner

import (
	"errors"
	"fmt"

	"github.com/ConstCodeX/structurex/internal/barrel"
)

// ErrOrdering indicates a merge action planned before its target was ensured.
var ErrOrdering = errors.New("merge planned before ensure")

// Kind is the type of a file action.
type Kind string

// Action kinds
const (
	KindWrite        Kind = "write"
	KindEnsureExists Kind = "ensure_exists"
	KindMergeAppend  Kind = "merge_append"
)

// Source is the content of a Write or EnsureExists action: either a template
// reference with its data bag, or literal text.
type Source struct {
	// Template is the template identifier (empty for literal sources)
	Template string `json:"template,omitempty"`

	// Data is the data bag handed to the template
	Data map[string]any `json:"data,omitempty"`

	// Literal is used verbatim when Template is empty
	Literal string `json:"literal,omitempty"`
}

// IsTemplate reports whether the source needs rendering.
func (s Source) IsTemplate() bool {
	return s.Template != ""
}

// Action represents a single file action to execute.
type Action struct {
	// Kind is the action type
	Kind Kind `json:"kind"`

	// Path is the slash-separated target path relative to the project root
	Path string `json:"path"`

	// Source is the content for write and ensure_exists actions
	Source Source `json:"source,omitempty"`

	// Overwrite replaces an existing target (write only)
	Overwrite bool `json:"overwrite,omitempty"`

	// Marker is the anchor line a merge inserts next to (merge_append only)
	Marker string `json:"marker,omitempty"`

	// Line is the line a merge inserts (merge_append only)
	Line string `json:"line,omitempty"`

	// Seed materializes an absent merge target; it contains Marker
	Seed string `json:"seed,omitempty"`
}

// Merge returns the merge description of a merge_append action.
func (a Action) Merge() barrel.Merge {
	return barrel.Merge{
		Path:   a.Path,
		Marker: a.Marker,
		Line:   a.Line,
		Seed:   a.Seed,
	}
}

// Plan is an ordered list of actions produced for one generator invocation.
type Plan struct {
	// Generator is the generator that produced the plan ("component", "hook", "presenter")
	Generator string `json:"generator"`

	// Name is the validated name the plan was built for
	Name string `json:"name"`

	// Tier is the tier key (component plans only)
	Tier string `json:"tier,omitempty"`

	// Actions is the ordered list of actions to execute
	Actions []Action `json:"actions"`
}

// NewPlan creates a new empty Plan.
func NewPlan(generator, name string) *Plan {
	return &Plan{
		Generator: generator,
		Name:      name,
		Actions:   []Action{},
	}
}

// AddAction adds an action to the plan.
func (p *Plan) AddAction(a Action) {
	p.Actions = append(p.Actions, a)
}

// Count returns the number of actions of the given kind.
func (p *Plan) Count(kind Kind) int {
	n := 0
	for _, a := range p.Actions {
		if a.Kind == kind {
			n++
		}
	}
	return n
}

// Index returns the position of the first action matching kind and path, or -1.
func (p *Plan) Index(kind Kind, path string) int {
	for i, a := range p.Actions {
		if a.Kind == kind && a.Path == path {
			return i
		}
	}
	return -1
}

// Validate checks that every merge target is ensured earlier in the plan
// and that every merge seed contains its marker.
func (p *Plan) Validate() error {
	ensured := make(map[string]bool)
	for i, a := range p.Actions {
		switch a.Kind {
		case KindEnsureExists:
			ensured[a.Path] = true
		case KindMergeAppend:
			if !ensured[a.Path] {
				return fmt.Errorf("%w: action %d targets %s", ErrOrdering, i, a.Path)
			}
			if a.Marker == "" || !barrel.ContainsLine(a.Seed, a.Marker) {
				return fmt.Errorf("action %d: seed for %s does not contain marker %q", i, a.Path, a.Marker)
			}
		}
	}
	return nil
}

// OwnedPaths returns the paths written by the plan that are not shared
// merge targets, in plan order.
func (p *Plan) OwnedPaths() []string {
	shared := make(map[string]bool)
	for _, a := range p.Actions {
		if a.Kind == KindMergeAppend {
			shared[a.Path] = true
		}
	}
	var owned []string
	for _, a := range p.Actions {
		if a.Kind != KindMergeAppend && !shared[a.Path] {
			owned = append(owned, a.Path)
		}
	}
	return owned
}
