// Package planner handles the planning phase of generation.
//
// The planner turns a validated request into a deterministic, ordered list of
// file actions. It performs no I/O: the engine executes the actions, the
// renderer expands template sources and the barrel resolver handles merges.
//
// Key responsibilities:
//   - Map (tier, flags, name) to component, container, test and barrel actions
//   - Keep EnsureExists ahead of MergeAppend for every shared barrel
//   - Plan the standalone hook and presenter generators
package planner
