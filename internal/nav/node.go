package nav

import "github.com/agentic-research/navtree/api"

type origin uint8

const (
	originNone origin = iota
	originResolver
	originBreadcrumb
)

// Node is a resolved navigation entry.
type Node struct {
	Key     string   `json:"key"`
	Title   string   `json:"title"`
	URL     string   `json:"url,omitempty"`
	Order   *float64 `json:"order,omitempty"`
	Pinned  bool     `json:"pinned,omitempty"`
	Parent  string   `json:"parent,omitempty"`
	Excerpt string   `json:"excerpt,omitempty"`

	// ParentKey is the requested parent key this node matched. It is only
	// set when resolution was asked for explicit parent keys, which lets a
	// multi-key result tell its groups apart.
	ParentKey string `json:"parentKey,omitempty"`

	// Children is non-nil on every node returned by Resolve. Breadcrumb
	// nodes carry no children.
	Children []*Node `json:"children,omitempty"`

	// Record points at the source record. It must be treated as read-only.
	Record *api.Record `json:"-"`

	origin origin
}

// Resolved reports whether n was produced by Resolve or Breadcrumbs rather
// than assembled by hand.
func (n *Node) Resolved() bool {
	return n != nil && n.origin != originNone
}

// IsBreadcrumb reports whether n came out of Breadcrumbs.
func (n *Node) IsBreadcrumb() bool {
	return n != nil && n.origin == originBreadcrumb
}

// HasChildren reports whether n has at least one child.
func (n *Node) HasChildren() bool {
	return len(n.Children) > 0
}

// withoutChildren returns a shallow copy of n with Children dropped.
func (n *Node) withoutChildren() *Node {
	c := *n
	c.Children = nil
	return &c
}

func newNode(rec *api.Record, matchedParent string, keyed bool) *Node {
	d := rec.Nav
	n := &Node{
		Key:     d.Key,
		Title:   d.Title,
		URL:     d.URL,
		Pinned:  d.Pinned,
		Parent:  d.Parent,
		Excerpt: d.Excerpt,
		Record:  rec,
		origin:  originResolver,
	}
	if d.Order != nil {
		o := *d.Order
		n.Order = &o
	}
	if n.Title == "" {
		n.Title = n.Key
	}
	if n.URL == "" {
		n.URL = rec.URL
	}
	if keyed {
		n.ParentKey = matchedParent
	}
	return n
}
