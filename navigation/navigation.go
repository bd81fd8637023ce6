// Package navigation is the library entry point: it turns flat page records
// into an ordered navigation tree, answers breadcrumb queries and renders
// either as HTML or Markdown.
//
//	forest, err := navigation.ResolveNavigation(records)
//	html, err := navigation.RenderHTML(forest, navigation.HTMLOptions{ActiveKey: "intro"}, navigation.Identity)
//
// All functions are pure over their inputs and safe for concurrent use.
package navigation

import (
	"github.com/agentic-research/navtree/api"
	"github.com/agentic-research/navtree/internal/graph"
	"github.com/agentic-research/navtree/internal/nav"
	"github.com/agentic-research/navtree/internal/render"
)

type (
	Record            = api.Record
	Descriptor        = api.Descriptor
	Node              = nav.Node
	BreadcrumbOptions = nav.BreadcrumbOptions
	Error             = nav.Error
	Graph             = graph.DepGraph[*nav.Node]
	CycleError        = graph.CycleError
	HTMLOptions       = render.HTMLOptions
	MarkdownOptions   = render.MarkdownOptions
	URLRewriter       = render.URLRewriter
	URLFunc           = render.URLFunc
	ValidationError   = render.ValidationError
)

var (
	ErrUnknownKey         = nav.ErrUnknownKey
	ErrStructuralCycle    = nav.ErrStructuralCycle
	ErrDuplicateKey       = nav.ErrDuplicateKey
	ErrMissingURLHook     = render.ErrMissingURLHook
	ErrInvalidRenderInput = render.ErrInvalidRenderInput
)

// Identity is a URLRewriter that leaves URLs unchanged.
var Identity = render.Identity

// Float returns a pointer to v, for building Descriptor.Order.
func Float(v float64) *float64 { return api.Float(v) }

// ResolveNavigation returns the top-level entries of records with their
// children attached, or the children of parentKeys when any are given.
func ResolveNavigation(records []Record, parentKeys ...string) ([]*Node, error) {
	return nav.Resolve(records, parentKeys...)
}

// ResolveNavigationKeys is ResolveNavigation with a comma-separated key list.
func ResolveNavigationKeys(records []Record, keys string) ([]*Node, error) {
	return nav.Resolve(records, nav.ParseKeys(keys)...)
}

// Breadcrumbs returns the ancestors of activeKey, root first.
func Breadcrumbs(records []Record, activeKey string, opts BreadcrumbOptions) ([]*Node, error) {
	return nav.Breadcrumbs(records, activeKey, opts)
}

// BuildDependencyGraph resolves records and returns their child-to-parent
// dependency graph.
func BuildDependencyGraph(records []Record) (*Graph, error) {
	return nav.DependencyGraph(records)
}

// RenderHTML renders resolved nodes as nested HTML lists.
func RenderHTML(nodes []*Node, opts HTMLOptions, rewrite URLRewriter) (string, error) {
	return render.HTML(nodes, opts, rewrite)
}

// RenderMarkdown renders resolved nodes as a nested Markdown list.
func RenderMarkdown(nodes []*Node, opts MarkdownOptions, rewrite URLRewriter) (string, error) {
	return render.Markdown(nodes, opts, rewrite)
}

// PathPrefix returns a URLRewriter mounting root-relative URLs under prefix.
func PathPrefix(prefix string) URLRewriter { return render.PathPrefix(prefix) }

// ValidateHTML reports the first markup error in rendered HTML.
func ValidateHTML(markup string) error { return render.ValidateHTML(markup) }
