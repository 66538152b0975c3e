package engine

import "github.com/ConstCodeX/structurex/internal/answers"

// ComponentRequest represents a request to generate a component.
type ComponentRequest struct {
	// Answers are the raw, unvalidated generator answers
	Answers answers.Raw

	// DryRun performs planning only without making changes
	DryRun bool
}

// HookRequest represents a request to generate a hook.
type HookRequest struct {
	// Name is the PascalCase hook name without the "use" prefix
	Name string

	// DryRun performs planning only without making changes
	DryRun bool
}

// PresenterRequest represents a request to generate a presenter.
type PresenterRequest struct {
	// Name is the PascalCase presenter name without the "Presenter" suffix
	Name string

	// DryRun performs planning only without making changes
	DryRun bool
}
