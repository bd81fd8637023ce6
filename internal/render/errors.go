package render

import (
	"errors"

	"github.com/agentic-research/navtree/internal/nav"
)

var (
	// ErrMissingURLHook is returned when a node has a URL but no URLRewriter
	// was supplied.
	ErrMissingURLHook = errors.New("render: no URL rewriter supplied for a node with a URL")

	// ErrInvalidRenderInput is returned when the input was not produced by
	// nav.Resolve or nav.Breadcrumbs.
	ErrInvalidRenderInput = errors.New("render: input must come from nav.Resolve or nav.Breadcrumbs")
)

func checkInput(nodes []*nav.Node) error {
	if len(nodes) > 0 && !nodes[0].Resolved() {
		return ErrInvalidRenderInput
	}
	return nil
}

// CheckNodes applies the renderers' input check to every list level of
// nodes, for callers that serialize the forest themselves.
func CheckNodes(nodes []*nav.Node) error {
	if err := checkInput(nodes); err != nil {
		return err
	}
	for _, n := range nodes {
		if n == nil {
			continue
		}
		if err := CheckNodes(n.Children); err != nil {
			return err
		}
	}
	return nil
}
