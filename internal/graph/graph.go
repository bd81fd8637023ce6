package graph

import (
	"fmt"

	"github.com/RoaringBitmap/roaring"
)

// DepGraph is a directed dependency graph keyed by string. An edge from A to
// B means "A depends on B" (B comes first).
//
// Every key is assigned a dense internal uint32 ID on insertion; traversals
// track visited and on-path sets as roaring bitmaps over those IDs.
//
// DepGraph is not safe for concurrent mutation. It is meant to be built by a
// single caller and then only read.
type DepGraph[T any] struct {
	data     map[string]T
	outgoing map[string][]string // key -> dependencies, insertion order
	incoming map[string][]string // key -> dependants, insertion order

	nodeIntID   map[string]uint32
	intToNodeID []string // reverse: uint32 -> key, also insertion order
}

// New returns an empty graph.
func New[T any]() *DepGraph[T] {
	return &DepGraph[T]{
		data:      make(map[string]T),
		outgoing:  make(map[string][]string),
		incoming:  make(map[string][]string),
		nodeIntID: make(map[string]uint32),
	}
}

// AddNode inserts a node. Adding an existing key fails with ErrDuplicateNode
// and leaves the stored payload untouched.
func (g *DepGraph[T]) AddNode(key string, data T) error {
	if _, ok := g.nodeIntID[key]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateNode, key)
	}
	g.nodeIntID[key] = uint32(len(g.intToNodeID))
	g.intToNodeID = append(g.intToNodeID, key)
	g.data[key] = data
	return nil
}

// HasNode reports whether key is a node of the graph.
func (g *DepGraph[T]) HasNode(key string) bool {
	_, ok := g.nodeIntID[key]
	return ok
}

// NodeData returns the payload stored for key.
func (g *DepGraph[T]) NodeData(key string) (T, error) {
	d, ok := g.data[key]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: %q", ErrNotFound, key)
	}
	return d, nil
}

// Size returns the number of nodes.
func (g *DepGraph[T]) Size() int {
	return len(g.intToNodeID)
}

// Keys returns all node keys in insertion order.
func (g *DepGraph[T]) Keys() []string {
	out := make([]string, len(g.intToNodeID))
	copy(out, g.intToNodeID)
	return out
}

// AddDependency records that from depends on to. Both nodes must exist.
// Repeating an edge is a no-op.
func (g *DepGraph[T]) AddDependency(from, to string) error {
	if !g.HasNode(from) {
		return fmt.Errorf("dependency source %w: %q", ErrNotFound, from)
	}
	if !g.HasNode(to) {
		return fmt.Errorf("dependency target %w: %q", ErrNotFound, to)
	}
	for _, existing := range g.outgoing[from] {
		if existing == to {
			return nil
		}
	}
	g.outgoing[from] = append(g.outgoing[from], to)
	g.incoming[to] = append(g.incoming[to], from)
	return nil
}

// DirectDependenciesOf returns the keys key depends on directly.
func (g *DepGraph[T]) DirectDependenciesOf(key string) ([]string, error) {
	if !g.HasNode(key) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, key)
	}
	return append([]string{}, g.outgoing[key]...), nil
}

// DirectDependantsOf returns the keys that depend directly on key.
func (g *DepGraph[T]) DirectDependantsOf(key string) ([]string, error) {
	if !g.HasNode(key) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, key)
	}
	return append([]string{}, g.incoming[key]...), nil
}

// DependenciesOf returns every transitive dependency of key, deepest first:
// a dependency always appears before anything that depends on it. For a
// chain c -> b -> a the result for c is [a b].
//
// A cycle reachable from key fails with a *CycleError.
func (g *DepGraph[T]) DependenciesOf(key string) ([]string, error) {
	if !g.HasNode(key) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, key)
	}

	visited := roaring.New()
	out := make([]string, 0)
	if err := g.walk(key, visited, roaring.New(), nil, &out); err != nil {
		return nil, err
	}
	// The walk emits key itself last.
	return out[:len(out)-1], nil
}

// OverallOrder returns all keys so that dependencies precede dependants.
// Independent components keep insertion order.
func (g *DepGraph[T]) OverallOrder() ([]string, error) {
	visited := roaring.New()
	out := make([]string, 0, len(g.intToNodeID))
	for id, key := range g.intToNodeID {
		if visited.Contains(uint32(id)) {
			continue
		}
		if err := g.walk(key, visited, roaring.New(), nil, &out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// walk is a depth-first post-order traversal over dependency edges.
func (g *DepGraph[T]) walk(key string, visited, onPath *roaring.Bitmap, path []string, out *[]string) error {
	id := g.nodeIntID[key]
	visited.Add(id)
	onPath.Add(id)
	path = append(path, key)

	for _, dep := range g.outgoing[key] {
		depID := g.nodeIntID[dep]
		if onPath.Contains(depID) {
			return &CycleError{Path: cycleWitness(path, dep)}
		}
		if visited.Contains(depID) {
			continue
		}
		if err := g.walk(dep, visited, onPath, path, out); err != nil {
			return err
		}
	}

	onPath.Remove(id)
	*out = append(*out, key)
	return nil
}

// cycleWitness cuts path down to the loop that closes on key.
func cycleWitness(path []string, key string) []string {
	start := 0
	for i, k := range path {
		if k == key {
			start = i
			break
		}
	}
	witness := make([]string, 0, len(path)-start+1)
	witness = append(witness, path[start:]...)
	return append(witness, key)
}
