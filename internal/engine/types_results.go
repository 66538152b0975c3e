package engine

import (
	"github.com/ConstCodeX/structurex/internal/manifest"
	"github.com/ConstCodeX/structurex/internal/planner"
)

// Status is the outcome of executing one action.
type Status string

const (
	// StatusCreated means the target did not exist and was written.
	StatusCreated Status = "created"

	// StatusOverwritten means an existing target was replaced with new content.
	StatusOverwritten Status = "overwritten"

	// StatusUnchanged means the target already had the desired content.
	StatusUnchanged Status = "unchanged"

	// StatusKept means an existing target was left alone by design.
	StatusKept Status = "kept"

	// StatusMerged means a line was inserted into a barrel.
	StatusMerged Status = "merged"

	// StatusSkipped means a merge was skipped because the barrel is malformed.
	StatusSkipped Status = "skipped"
)

// AppliedAction is an executed action and its outcome.
type AppliedAction struct {
	Action planner.Action `json:"action"`
	Status Status         `json:"status"`

	// Reason explains a skipped action
	Reason string `json:"reason,omitempty"`
}

// GenerateResult represents the result of a generation.
type GenerateResult struct {
	// Plan is the generated plan
	Plan *planner.Plan `json:"plan"`

	// Applied is the list of executed actions (empty if DryRun)
	Applied []AppliedAction `json:"applied"`

	// DryRun reports that nothing was executed
	DryRun bool `json:"dryRun"`
}

// Skipped returns the actions that were skipped.
func (r *GenerateResult) Skipped() []AppliedAction {
	var out []AppliedAction
	for _, a := range r.Applied {
		if a.Status == StatusSkipped {
			out = append(out, a)
		}
	}
	return out
}

// FileState is the state of an owned file compared to the manifest.
type FileState string

const (
	FileClean    FileState = "clean"
	FileModified FileState = "modified"
	FileMissing  FileState = "missing"
)

// ListedFile is an owned file with its current state.
type ListedFile struct {
	Path  string    `json:"path"`
	State FileState `json:"state"`
}

// ListedEntry is a manifest entry with the current state of its files.
type ListedEntry struct {
	manifest.Entry
	States []ListedFile `json:"states"`
}

// ListResult represents the generated units recorded in the manifest.
type ListResult struct {
	Entries []ListedEntry `json:"entries"`
}
