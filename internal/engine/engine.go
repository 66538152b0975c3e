// Package engine provides the core business logic for structurex operations.
//
// The engine package acts as the orchestration layer between CLI commands and
// lower-level operations. It validates answers, asks the planner for an
// ordered action list, executes each action against the filesystem and
// records the owned files in the manifest.
//
// Key components:
//   - Engine: Main orchestrator that coordinates all operations
//   - Generate*: Validation, planning and execution of one generator
//   - List: Manifest entries with the current state of their files
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ConstCodeX/structurex/internal/barrel"
	"github.com/ConstCodeX/structurex/internal/clock"
	"github.com/ConstCodeX/structurex/internal/fsops"
	"github.com/ConstCodeX/structurex/internal/hash"
	"github.com/ConstCodeX/structurex/internal/logger"
	"github.com/ConstCodeX/structurex/internal/manifest"
	"github.com/ConstCodeX/structurex/internal/planner"
	"github.com/ConstCodeX/structurex/internal/render"
)

const filePerm = 0o644

// Engine orchestrates all structurex operations.
// It is the main API surface called by the CLI.
type Engine struct {
	fs       fsops.FS
	renderer render.Renderer
	hasher   hash.Hasher
	clock    clock.Clock
	manifest manifest.Store
	layout   planner.Layout
	log      *slog.Logger

	// mu serializes generations so barrel read-modify-write cycles never interleave
	mu sync.Mutex
}

// New creates a new Engine with the given dependencies.
func New(
	fs fsops.FS,
	renderer render.Renderer,
	hasher hash.Hasher,
	clk clock.Clock,
	store manifest.Store,
	layout planner.Layout,
) *Engine {
	return &Engine{
		fs:       fs,
		renderer: renderer,
		hasher:   hasher,
		clock:    clk,
		manifest: store,
		layout:   layout,
		log:      logger.ForComponent("engine"),
	}
}

// executeAction executes a single action.
func (e *Engine) executeAction(a planner.Action) (AppliedAction, error) {
	if err := e.fs.ValidateRelPath(a.Path); err != nil {
		return AppliedAction{}, fmt.Errorf("refusing to touch %s: %w", a.Path, err)
	}

	switch a.Kind {
	case planner.KindWrite:
		return e.executeWrite(a)
	case planner.KindEnsureExists:
		return e.executeEnsureExists(a)
	case planner.KindMergeAppend:
		return e.executeMergeAppend(a)
	default:
		return AppliedAction{}, fmt.Errorf("unknown action kind: %s", a.Kind)
	}
}

// executeWrite renders the source and writes it to the target.
func (e *Engine) executeWrite(a planner.Action) (AppliedAction, error) {
	exists, err := e.fs.Exists(a.Path)
	if err != nil {
		return AppliedAction{}, fmt.Errorf("failed to check if path exists: %w", err)
	}
	if exists && !a.Overwrite {
		return AppliedAction{Action: a, Status: StatusKept}, nil
	}

	content, err := e.content(a.Source)
	if err != nil {
		return AppliedAction{}, err
	}

	status := StatusCreated
	if exists {
		current, err := e.hasher.HashFile(e.fs, a.Path)
		if err != nil {
			return AppliedAction{}, fmt.Errorf("failed to hash %s: %w", a.Path, err)
		}
		if current == e.hasher.HashBytes(content) {
			return AppliedAction{Action: a, Status: StatusUnchanged}, nil
		}
		status = StatusOverwritten
	}

	if err := e.fs.AtomicWrite(a.Path, content, filePerm); err != nil {
		return AppliedAction{}, fmt.Errorf("failed to write %s: %w", a.Path, err)
	}
	return AppliedAction{Action: a, Status: status}, nil
}

// executeEnsureExists creates the target from its seed if it is absent.
func (e *Engine) executeEnsureExists(a planner.Action) (AppliedAction, error) {
	exists, err := e.fs.Exists(a.Path)
	if err != nil {
		return AppliedAction{}, fmt.Errorf("failed to check if path exists: %w", err)
	}
	if exists {
		return AppliedAction{Action: a, Status: StatusKept}, nil
	}

	content, err := e.content(a.Source)
	if err != nil {
		return AppliedAction{}, err
	}
	if err := e.fs.AtomicWrite(a.Path, content, filePerm); err != nil {
		return AppliedAction{}, fmt.Errorf("failed to seed %s: %w", a.Path, err)
	}
	return AppliedAction{Action: a, Status: StatusCreated}, nil
}

// executeMergeAppend inserts the action's line into a barrel above its marker.
// A barrel without the marker is reported as skipped, not as an error.
func (e *Engine) executeMergeAppend(a planner.Action) (AppliedAction, error) {
	exists, err := e.fs.Exists(a.Path)
	if err != nil {
		return AppliedAction{}, fmt.Errorf("failed to check if path exists: %w", err)
	}

	var current string
	if exists {
		data, err := e.fs.ReadFile(a.Path)
		if err != nil {
			return AppliedAction{}, fmt.Errorf("failed to read %s: %w", a.Path, err)
		}
		current = string(data)
	}

	merged, err := barrel.Apply(a.Merge(), current, exists)
	if err != nil {
		var malformed *barrel.MalformedError
		if errors.As(err, &malformed) {
			e.log.Warn("skipping barrel merge", "path", a.Path, "marker", a.Marker)
			return AppliedAction{Action: a, Status: StatusSkipped, Reason: err.Error()}, nil
		}
		return AppliedAction{}, fmt.Errorf("failed to merge %s: %w", a.Path, err)
	}

	if exists && merged == current {
		return AppliedAction{Action: a, Status: StatusUnchanged}, nil
	}
	if err := e.fs.AtomicWrite(a.Path, []byte(merged), filePerm); err != nil {
		return AppliedAction{}, fmt.Errorf("failed to write %s: %w", a.Path, err)
	}
	return AppliedAction{Action: a, Status: StatusMerged}, nil
}

// content resolves an action source to bytes.
func (e *Engine) content(src planner.Source) ([]byte, error) {
	if !src.IsTemplate() {
		return []byte(src.Literal), nil
	}
	out, err := e.renderer.Render(src.Template, src.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to render template %s: %w", src.Template, err)
	}
	return out, nil
}

// apply executes every action of the plan in order and records the result.
func (e *Engine) apply(ctx context.Context, plan *planner.Plan) (*GenerateResult, error) {
	result := &GenerateResult{Plan: plan, Applied: make([]AppliedAction, 0, len(plan.Actions))}

	for _, a := range plan.Actions {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		applied, err := e.executeAction(a)
		if err != nil {
			return result, err
		}
		e.log.Debug("action applied", "kind", a.Kind, "path", a.Path, "status", applied.Status)
		result.Applied = append(result.Applied, applied)
	}

	if err := e.record(plan); err != nil {
		return result, err
	}

	if skipped := result.Skipped(); len(skipped) > 0 {
		return result, fmt.Errorf("%w: %d barrel(s) missing marker", ErrMergeSkipped, len(skipped))
	}
	return result, nil
}

// record stores the plan's owned files and their checksums in the manifest.
func (e *Engine) record(plan *planner.Plan) error {
	m, err := e.manifest.Load()
	if err != nil {
		return fmt.Errorf("failed to load manifest: %w", err)
	}
	if prev, ok := m.Find(plan.Generator, plan.Name); ok {
		e.log.Debug("replacing manifest entry", "generator", plan.Generator, "name", plan.Name, "previous", prev.GeneratedAt)
	}

	entry := manifest.Entry{
		Generator:   plan.Generator,
		Name:        plan.Name,
		Tier:        plan.Tier,
		GeneratedAt: e.clock.Now(),
	}
	for _, p := range plan.OwnedPaths() {
		sum, err := e.hasher.HashFile(e.fs, p)
		if err != nil {
			return fmt.Errorf("failed to hash %s: %w", p, err)
		}
		entry.Files = append(entry.Files, manifest.File{Path: p, Checksum: sum})
	}
	m.Record(entry)

	if err := e.manifest.Save(m); err != nil {
		return fmt.Errorf("failed to save manifest: %w", err)
	}
	return nil
}
