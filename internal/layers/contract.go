package layers

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Contract is the document handed to the boundary checker.
type Contract struct {
	Version int     `json:"version" yaml:"version"`
	Default string  `json:"default" yaml:"default"`
	Layers  []Entry `json:"layers" yaml:"layers"`
}

// NewContract returns the policy table wrapped as a contract document.
// Imports not listed in an entry's allow list are disallowed by default.
func NewContract() Contract {
	return Contract{
		Version: 1,
		Default: "disallow",
		Layers:  Table(),
	}
}

// Marshal renders the contract as "yaml" or "json".
func Marshal(format string) ([]byte, error) {
	c := NewContract()
	switch format {
	case "", "yaml", "yml":
		return yaml.Marshal(c)
	case "json":
		data, err := json.MarshalIndent(c, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("unsupported contract format %q", format)
	}
}

// Unmarshal parses a YAML (or JSON, which is valid YAML) contract document.
func Unmarshal(data []byte) (Contract, error) {
	var c Contract
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Contract{}, fmt.Errorf("failed to parse layer contract: %w", err)
	}
	return c, nil
}
