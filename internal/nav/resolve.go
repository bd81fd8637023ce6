package nav

import (
	"slices"
	"strings"

	"github.com/agentic-research/navtree/api"
)

// ParseKeys splits a comma-separated key list, dropping empty entries.
func ParseKeys(s string) []string {
	var keys []string
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// Resolve builds the ordered navigation forest from records.
//
// Without parentKeys it returns the top-level entries (records whose
// descriptor has no parent). With parentKeys it returns the children of any
// of those keys, each tagged with the ParentKey it matched. Children are
// resolved recursively for every entry with a non-empty key.
//
// Records without a descriptor are skipped. A parent cycle reachable from
// the requested keys fails with ErrStructuralCycle.
func Resolve(records []api.Record, parentKeys ...string) ([]*Node, error) {
	return resolve(records, nonEmpty(parentKeys), nil)
}

func resolve(records []api.Record, keys []string, path []string) ([]*Node, error) {
	keyed := len(keys) > 0

	// Group by matched parent in first-seen order before sorting.
	groups := make(map[string][]*Node)
	var groupOrder []string
	for i := range records {
		rec := &records[i]
		d := rec.Nav
		if d == nil {
			continue
		}

		var group string
		switch {
		case !keyed && d.Parent == "":
			group = ""
		case keyed && slices.Contains(keys, d.Parent):
			group = d.Parent
		default:
			continue
		}

		if _, seen := groups[group]; !seen {
			groupOrder = append(groupOrder, group)
		}
		groups[group] = append(groups[group], newNode(rec, d.Parent, keyed))
	}

	nodes := make([]*Node, 0)
	for _, g := range groupOrder {
		nodes = append(nodes, groups[g]...)
	}
	slices.SortStableFunc(nodes, func(a, b *Node) int {
		return Compare(a.Record.Nav, b.Record.Nav)
	})

	for _, n := range nodes {
		if n.Key == "" {
			n.Children = make([]*Node, 0)
			continue
		}
		if i := slices.Index(path, n.Key); i >= 0 {
			witness := append(slices.Clone(path[i:]), n.Key)
			return nil, cycleError(witness)
		}
		children, err := resolve(records, []string{n.Key}, append(slices.Clip(path), n.Key))
		if err != nil {
			return nil, err
		}
		n.Children = children
	}
	return nodes, nil
}

func nonEmpty(keys []string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if k != "" {
			out = append(out, k)
		}
	}
	return out
}
