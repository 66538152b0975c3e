// Package layers publishes the allowed-import policy between tiers and roles.
//
// The table is a contract for an external boundary checker: each entry pairs
// a glob over generated source paths with the roles that code matching the
// glob may import from. Nothing in structurex enforces it at generation time.
package layers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/ConstCodeX/structurex/internal/tier"
)

// ErrUnknownRole indicates a role outside the policy table.
var ErrUnknownRole = errors.New("unknown role")

// Role identifies a tier folder or a cross-cutting role.
type Role string

// Roles in table order.
const (
	Atoms      Role = "atoms"
	Molecules  Role = "molecules"
	Organisms  Role = "organisms"
	Templates  Role = "templates"
	Pages      Role = "pages"
	Hooks      Role = "hooks"
	Presenters Role = "presenters"
	Containers Role = "containers"
)

// Entry is one row of the policy table.
type Entry struct {
	Role       Role            `json:"type" yaml:"type"`
	Pattern    string          `json:"pattern" yaml:"pattern"`
	Allow      []Role          `json:"allow" yaml:"allow"`
	Capability tier.Capability `json:"capability" yaml:"capability"`
}

var table = build()

func build() []Entry {
	var entries []Entry
	var visual []Role

	// each visual tier may import itself and every tier below it
	for _, def := range tier.All() {
		role := Role(def.Folder)
		visual = append(visual, role)
		entries = append(entries, Entry{
			Role:       role,
			Pattern:    "src/" + def.Folder + "/*",
			Allow:      append([]Role(nil), visual...),
			Capability: def.Capability(),
		})
	}

	entries = append(entries,
		Entry{
			Role:       Hooks,
			Pattern:    "src/**/hooks/*",
			Allow:      append(append([]Role(nil), visual...), Hooks),
			Capability: tier.CapTransform,
		},
		Entry{
			Role:       Presenters,
			Pattern:    "src/**/presenters/*",
			Allow:      []Role{Presenters},
			Capability: tier.CapTransform,
		},
		Entry{
			Role:       Containers,
			Pattern:    "src/**/containers/*",
			Allow:      append(append([]Role(nil), visual...), Hooks, Presenters),
			Capability: tier.CapStateful,
		},
	)
	return entries
}

// Table returns a copy of the policy table in fixed order.
func Table() []Entry {
	out := make([]Entry, len(table))
	for i, e := range table {
		out[i] = e
		out[i].Allow = append([]Role(nil), e.Allow...)
	}
	return out
}

// Lookup returns the entry for role.
func Lookup(role Role) (Entry, error) {
	for _, e := range table {
		if e.Role == role {
			e.Allow = append([]Role(nil), e.Allow...)
			return e, nil
		}
	}
	return Entry{}, fmt.Errorf("%w: %q", ErrUnknownRole, role)
}

// AllowedSources returns the roles that role may import from.
func AllowedSources(role Role) ([]Role, error) {
	e, err := Lookup(role)
	if err != nil {
		return nil, err
	}
	return e.Allow, nil
}

// Allows reports whether code in role from may import code in role to.
// Unknown roles are never allowed.
func Allows(from, to Role) bool {
	allowed, err := AllowedSources(from)
	if err != nil {
		return false
	}
	for _, r := range allowed {
		if r == to {
			return true
		}
	}
	return false
}

// Classify returns the role of a slash-separated path relative to the project
// root. Entries are tried in table order, so a hook under src/atoms/ is
// classified as an atom; the boundary checker resolves the same way.
func Classify(path string) (Role, bool) {
	path = strings.TrimPrefix(path, "./")
	for _, e := range table {
		if matchesElement(e.Pattern, path) {
			return e.Role, true
		}
	}
	return "", false
}

// matchesElement matches the pattern against path or any of its parent
// directories, since an element pattern like src/atoms/* names a component
// folder and everything inside it belongs to the same element.
func matchesElement(pattern, path string) bool {
	for p := path; p != "" && p != "."; {
		if ok, _ := doublestar.Match(pattern, p); ok {
			return true
		}
		i := strings.LastIndex(p, "/")
		if i < 0 {
			break
		}
		p = p[:i]
	}
	return false
}

// ParseRole validates a role name.
func ParseRole(s string) (Role, error) {
	role := Role(strings.ToLower(strings.TrimSpace(s)))
	if _, err := Lookup(role); err != nil {
		return "", err
	}
	return role, nil
}
