// Package params holds the validated answers that drive a generation run.
// A ParameterSet is built once from operator input and passed read-only to
// the planner, renderer, manifest builder and orchestrator.
package params
