package engine

import (
	"context"
	"fmt"

	"github.com/ConstCodeX/structurex/internal/answers"
	"github.com/ConstCodeX/structurex/internal/planner"
)

// GenerateComponent validates the answers, plans the component and executes
// the plan unless DryRun is set.
func (e *Engine) GenerateComponent(ctx context.Context, req *ComponentRequest) (*GenerateResult, error) {
	validated, err := answers.BuildRequest(req.Answers)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	plan := planner.PlanComponent(validated, e.layout)
	return e.Generate(ctx, plan, req.DryRun)
}

// GenerateHook validates the name, plans the hook and executes the plan
// unless DryRun is set.
func (e *Engine) GenerateHook(ctx context.Context, req *HookRequest) (*GenerateResult, error) {
	name, err := answers.ValidateName(req.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return e.Generate(ctx, planner.PlanHook(name, e.layout), req.DryRun)
}

// GeneratePresenter validates the name, plans the presenter and executes the
// plan unless DryRun is set.
func (e *Engine) GeneratePresenter(ctx context.Context, req *PresenterRequest) (*GenerateResult, error) {
	name, err := answers.ValidateName(req.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return e.Generate(ctx, planner.PlanPresenter(name, e.layout), req.DryRun)
}

// Generate executes a plan. Actions run strictly in plan order; the first
// filesystem error stops execution and is returned with the partial result.
// A skipped barrel merge does not stop execution but makes Generate return
// ErrMergeSkipped alongside the full result.
func (e *Engine) Generate(ctx context.Context, plan *planner.Plan, dryRun bool) (*GenerateResult, error) {
	if err := plan.Validate(); err != nil {
		return nil, fmt.Errorf("invalid plan: %w", err)
	}

	if dryRun {
		return &GenerateResult{Plan: plan, Applied: []AppliedAction{}, DryRun: true}, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.log.Info("generating", "generator", plan.Generator, "name", plan.Name, "actions", len(plan.Actions))
	return e.apply(ctx, plan)
}
