package render

import (
	"strings"

	"github.com/agentic-research/navtree/internal/nav"
)

// MarkdownOptions controls Markdown list output.
type MarkdownOptions struct {
	ShowExcerpt bool `json:"showExcerpt,omitempty" hcl:"show_excerpt,optional"`
}

// Markdown renders nodes as a nested bullet list, two spaces of indent per
// level and one line per node. Empty input renders as "".
func Markdown(nodes []*nav.Node, opts MarkdownOptions, rewrite URLRewriter) (string, error) {
	var b strings.Builder
	if err := markdownList(&b, nodes, 0, opts, lazyRewriter{rw: rewrite}); err != nil {
		return "", err
	}
	return b.String(), nil
}

func markdownList(b *strings.Builder, nodes []*nav.Node, depth int, opts MarkdownOptions, urls lazyRewriter) error {
	if err := checkInput(nodes); err != nil {
		return err
	}
	indent := strings.Repeat("  ", depth)
	for _, n := range nodes {
		b.WriteString(indent + "* ")
		if n.URL != "" {
			href, err := urls.rewrite(n.URL)
			if err != nil {
				return err
			}
			b.WriteString("[" + n.Title + "](" + href + ")")
		} else {
			b.WriteString(n.Title)
		}
		if opts.ShowExcerpt && n.Excerpt != "" {
			b.WriteString(": " + n.Excerpt)
		}
		b.WriteString("\n")
		if err := markdownList(b, n.Children, depth+1, opts, urls); err != nil {
			return err
		}
	}
	return nil
}
