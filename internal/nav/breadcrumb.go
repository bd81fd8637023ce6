package nav

import (
	"errors"

	"github.com/agentic-research/navtree/api"
	"github.com/agentic-research/navtree/internal/graph"
)

// BreadcrumbOptions tunes Breadcrumbs. The zero value is strict and excludes
// the active entry.
type BreadcrumbOptions struct {
	// AllowMissing returns an empty trail instead of ErrUnknownKey when the
	// active key is not part of the navigation.
	AllowMissing bool
	// IncludeSelf appends the active entry after its ancestors.
	IncludeSelf bool
}

// BuildGraph turns a resolved forest into a dependency graph with one node per
// key and an edge from every child to its parent. Payloads are copies of the
// nodes without their children. Entries with an empty key are left out.
//
// Two entries sharing a key fail with ErrDuplicateKey.
func BuildGraph(forest []*Node) (*graph.DepGraph[*Node], error) {
	g := graph.New[*Node]()
	if err := addDependencies(g, forest, ""); err != nil {
		return nil, err
	}
	return g, nil
}

func addDependencies(g *graph.DepGraph[*Node], nodes []*Node, parentKey string) error {
	for _, n := range nodes {
		if n.Key == "" {
			continue
		}
		if err := g.AddNode(n.Key, n.withoutChildren()); err != nil {
			if errors.Is(err, graph.ErrDuplicateNode) {
				return &Error{Kind: ErrDuplicateKey, Key: n.Key}
			}
			return err
		}
		if parentKey != "" {
			if err := g.AddDependency(n.Key, parentKey); err != nil {
				return err
			}
		}
		if err := addDependencies(g, n.Children, n.Key); err != nil {
			return err
		}
	}
	return nil
}

// DependencyGraph resolves the full forest of records and builds its graph.
func DependencyGraph(records []api.Record) (*graph.DepGraph[*Node], error) {
	forest, err := Resolve(records)
	if err != nil {
		return nil, err
	}
	return BuildGraph(forest)
}

// Breadcrumbs returns the ancestors of activeKey ordered from the root down to
// the nearest parent. The graph is rebuilt from records on every call.
//
// An empty activeKey yields an empty trail.
func Breadcrumbs(records []api.Record, activeKey string, opts BreadcrumbOptions) ([]*Node, error) {
	if activeKey == "" {
		return []*Node{}, nil
	}

	g, err := DependencyGraph(records)
	if err != nil {
		return nil, err
	}

	if !g.HasNode(activeKey) {
		if opts.AllowMissing {
			return []*Node{}, nil
		}
		return nil, unknownKey(activeKey)
	}

	keys, err := g.DependenciesOf(activeKey)
	if err != nil {
		var ce *graph.CycleError
		if errors.As(err, &ce) {
			return nil, cycleError(ce.Path)
		}
		return nil, err
	}
	if opts.IncludeSelf {
		keys = append(keys, activeKey)
	}

	trail := make([]*Node, 0, len(keys))
	for _, k := range keys {
		data, err := g.NodeData(k)
		if err != nil {
			return nil, err
		}
		crumb := data.withoutChildren()
		crumb.origin = originBreadcrumb
		trail = append(trail, crumb)
	}
	return trail, nil
}
