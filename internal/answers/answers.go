// Package answers validates raw generator answers and turns them into typed
// requests for the planner.
//
// Answers typically come from CLI flags or a form. Nothing in here performs
// I/O; an invalid answer set never produces a request.
package answers

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/ConstCodeX/structurex/internal/tier"
)

// ErrInvalidName indicates a component name that is not PascalCase.
var ErrInvalidName = errors.New("name must be PascalCase")

// ErrInvalidFlag indicates a flag value that cannot be read as a boolean.
var ErrInvalidFlag = errors.New("invalid boolean value")

var namePattern = regexp.MustCompile(`^[A-Z][A-Za-z0-9]+$`)

// Defaults applied when a flag is absent from the raw answers.
const (
	DefaultWithContainer = false
	DefaultWithTest      = true
)

// ComponentRequest is a validated request to generate one component.
type ComponentRequest struct {
	// Name is the PascalCase component name
	Name string `json:"name"`

	// Tier is the canonical tier key
	Tier tier.Key `json:"tier"`

	// WithContainer requests a container file next to the component
	WithContainer bool `json:"withContainer"`

	// WithTest requests a test file under the test root
	WithTest bool `json:"withTest"`
}

// Raw holds unvalidated answers. Flag values may be nil (absent), a bool, or
// a string such as "yes" or "false".
type Raw struct {
	Name          string
	Tier          string
	WithContainer any
	WithTest      any
}

// ValidateName checks raw against the PascalCase rule and returns it unchanged.
// This is the only gate between user input and generated paths.
func ValidateName(raw string) (string, error) {
	if !namePattern.MatchString(raw) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, raw)
	}
	return raw, nil
}

// BuildRequest validates raw and returns a ComponentRequest.
// All problems are reported together.
func BuildRequest(raw Raw) (*ComponentRequest, error) {
	var errs []error

	name, err := ValidateName(raw.Name)
	if err != nil {
		errs = append(errs, err)
	}

	def, err := tier.Lookup(raw.Tier)
	if err != nil {
		errs = append(errs, err)
	}

	withContainer, err := coerceBool("withContainer", raw.WithContainer, DefaultWithContainer)
	if err != nil {
		errs = append(errs, err)
	}

	withTest, err := coerceBool("withTest", raw.WithTest, DefaultWithTest)
	if err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return &ComponentRequest{
		Name:          name,
		Tier:          def.Key,
		WithContainer: withContainer,
		WithTest:      withTest,
	}, nil
}

func coerceBool(field string, v any, def bool) (bool, error) {
	switch val := v.(type) {
	case nil:
		return def, nil
	case bool:
		return val, nil
	case *bool:
		if val == nil {
			return def, nil
		}
		return *val, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "":
			return def, nil
		case "y", "yes", "true", "1":
			return true, nil
		case "n", "no", "false", "0":
			return false, nil
		}
	}
	return false, fmt.Errorf("%w for %s: %v", ErrInvalidFlag, field, v)
}
