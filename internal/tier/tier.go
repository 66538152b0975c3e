// Package tier holds the fixed registry of atomic-design tiers.
//
// Each tier maps to the folder its components live in, the file suffix used
// for the component body and the base label handed to the component template.
// The registry is read-only package data; nothing mutates it after init.
package tier

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownTier indicates a tier key outside the fixed registry.
var ErrUnknownTier = errors.New("unknown tier")

// Key identifies a tier.
type Key string

// Tier keys in hierarchy order, lowest first.
const (
	Atom     Key = "atom"
	Molecule Key = "molecule"
	Organism Key = "organism"
	Template Key = "template"
	Page     Key = "page"
)

// Definition describes where a tier's components are generated.
type Definition struct {
	// Key is the canonical tier key
	Key Key `json:"key" yaml:"key"`

	// Folder is the directory under the source root (e.g. "atoms")
	Folder string `json:"folder" yaml:"folder"`

	// Suffix is inserted between the component name and extension (e.g. "atom")
	Suffix string `json:"suffix" yaml:"suffix"`

	// Base is the base-class label passed to the component template
	Base string `json:"base" yaml:"base"`
}

var registry = []Definition{
	{Key: Atom, Folder: "atoms", Suffix: "atom", Base: "Atom"},
	{Key: Molecule, Folder: "molecules", Suffix: "mol", Base: "Molecule"},
	{Key: Organism, Folder: "organisms", Suffix: "org", Base: "Organism"},
	{Key: Template, Folder: "templates", Suffix: "tpl", Base: "Template"},
	{Key: Page, Folder: "pages", Suffix: "pg", Base: "Page"},
}

// aliases maps the short tier keys to canonical keys.
var aliases = map[string]Key{
	"mol": Molecule,
	"org": Organism,
	"tpl": Template,
	"pg":  Page,
}

// Lookup returns the definition for key. Short aliases (mol, org, tpl, pg)
// and any letter case are accepted.
func Lookup(key string) (Definition, error) {
	k := Key(strings.ToLower(strings.TrimSpace(key)))
	if canonical, ok := aliases[string(k)]; ok {
		k = canonical
	}
	for _, def := range registry {
		if def.Key == k {
			return def, nil
		}
	}
	return Definition{}, fmt.Errorf("%w: %q", ErrUnknownTier, key)
}

// MustLookup is like Lookup but panics on an unknown key.
// Use it only for keys that already passed validation.
func MustLookup(key Key) Definition {
	def, err := Lookup(string(key))
	if err != nil {
		panic(err)
	}
	return def
}

// All returns every definition in hierarchy order.
func All() []Definition {
	out := make([]Definition, len(registry))
	copy(out, registry)
	return out
}

// Keys returns the canonical tier keys in hierarchy order.
func Keys() []Key {
	keys := make([]Key, 0, len(registry))
	for _, def := range registry {
		keys = append(keys, def.Key)
	}
	return keys
}
