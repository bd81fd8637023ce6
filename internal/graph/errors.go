package graph

import (
	"errors"
	"strings"
)

// Sentinel errors for graph operations.
var (
	// ErrNotFound is returned when a key is not a node of the graph.
	ErrNotFound = errors.New("node not found")

	// ErrDuplicateNode is returned when adding a node whose key already exists.
	ErrDuplicateNode = errors.New("duplicate node")

	// ErrCycle is returned by traversals that run into a dependency cycle.
	ErrCycle = errors.New("dependency cycle")
)

// CycleError carries the witness path of a detected cycle. The first and last
// elements of Path are the same key.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	if e == nil || len(e.Path) == 0 {
		return ErrCycle.Error()
	}
	return ErrCycle.Error() + ": " + strings.Join(e.Path, " -> ")
}

func (e *CycleError) Unwrap() error { return ErrCycle }
