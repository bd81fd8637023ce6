package render

import (
	"strings"

	"github.com/agentic-research/navtree/internal/nav"
)

// HTMLOptions controls HTML list output. Empty element names fall back to
// "ul", "li" and "a"; every class defaults to none.
type HTMLOptions struct {
	ListElement     string `json:"listElement,omitempty" hcl:"list_element,optional" validate:"omitempty,alphanum"`
	ListItemElement string `json:"listItemElement,omitempty" hcl:"list_item_element,optional" validate:"omitempty,alphanum"`

	// ListClass is written on the outermost list only.
	ListClass                string `json:"listClass,omitempty" hcl:"list_class,optional"`
	ListItemClass            string `json:"listItemClass,omitempty" hcl:"list_item_class,optional"`
	ListItemHasChildrenClass string `json:"listItemHasChildrenClass,omitempty" hcl:"list_item_has_children_class,optional"`

	ActiveKey           string `json:"activeKey,omitempty" hcl:"active_key,optional"`
	ActiveListItemClass string `json:"activeListItemClass,omitempty" hcl:"active_list_item_class,optional"`
	AnchorClass         string `json:"anchorClass,omitempty" hcl:"anchor_class,optional"`
	ActiveAnchorClass   string `json:"activeAnchorClass,omitempty" hcl:"active_anchor_class,optional"`
	UseAriaCurrentAttr  bool   `json:"useAriaCurrentAttr,omitempty" hcl:"use_aria_current_attr,optional"`

	ShowExcerpt        bool `json:"showExcerpt,omitempty" hcl:"show_excerpt,optional"`
	UseTopLevelDetails bool `json:"useTopLevelDetails,omitempty" hcl:"use_top_level_details,optional"`

	// AnchorElementWithoutHref wraps the title of entries without a URL.
	// Attributes are not carried over to it.
	AnchorElementWithoutHref string `json:"anchorElementWithoutHref,omitempty" hcl:"anchor_element_without_href,optional" validate:"omitempty,alphanum"`
}

func (o HTMLOptions) withDefaults() HTMLOptions {
	if o.ListElement == "" {
		o.ListElement = "ul"
	}
	if o.ListItemElement == "" {
		o.ListItemElement = "li"
	}
	if o.AnchorElementWithoutHref == "" {
		o.AnchorElementWithoutHref = "a"
	}
	return o
}

type attr struct {
	name   string
	values []string
}

func (a attr) String() string {
	if len(a.values) == 0 || (len(a.values) == 1 && a.values[0] == "") {
		return ""
	}
	return " " + a.name + `="` + strings.Join(a.values, " ") + `"`
}

// HTML renders nodes as nested lists. Empty input renders as "".
//
// rewrite is consulted for every node with a URL; it may be nil when no
// node has one.
func HTML(nodes []*nav.Node, opts HTMLOptions, rewrite URLRewriter) (string, error) {
	var b strings.Builder
	r := htmlRenderer{opts: opts.withDefaults(), urls: lazyRewriter{rw: rewrite}}
	if err := r.list(&b, nodes, false); err != nil {
		return "", err
	}
	return b.String(), nil
}

type htmlRenderer struct {
	opts HTMLOptions
	urls lazyRewriter
}

func (r htmlRenderer) list(b *strings.Builder, nodes []*nav.Node, child bool) error {
	if err := checkInput(nodes); err != nil {
		return err
	}
	if len(nodes) == 0 {
		return nil
	}

	o := r.opts
	b.WriteString("<" + o.ListElement)
	if !child && o.ListClass != "" {
		b.WriteString(` class="` + o.ListClass + `"`)
	}
	b.WriteString(">")
	for i, n := range nodes {
		if i > 0 {
			b.WriteString("\n")
		}
		if err := r.item(b, n, child); err != nil {
			return err
		}
	}
	b.WriteString("</" + o.ListElement + ">")
	return nil
}

func (r htmlRenderer) item(b *strings.Builder, n *nav.Node, child bool) error {
	o := r.opts
	var liClass, aClass []string
	var aAttrs []attr

	if o.ListItemClass != "" {
		liClass = append(liClass, o.ListItemClass)
	}
	if o.AnchorClass != "" {
		aClass = append(aClass, o.AnchorClass)
	}
	hasLink := n.URL != ""
	if hasLink {
		href, err := r.urls.rewrite(n.URL)
		if err != nil {
			return err
		}
		aAttrs = append(aAttrs, attr{"href", []string{href}})
	}
	if o.ActiveKey != "" && o.ActiveKey == n.Key {
		if o.ActiveListItemClass != "" {
			liClass = append(liClass, o.ActiveListItemClass)
		}
		if o.ActiveAnchorClass != "" {
			aClass = append(aClass, o.ActiveAnchorClass)
		}
		if o.UseAriaCurrentAttr {
			aAttrs = append(aAttrs, attr{"aria-current", []string{"page"}})
		}
	}
	if o.ListItemHasChildrenClass != "" && n.HasChildren() {
		liClass = append(liClass, o.ListItemHasChildrenClass)
	}
	if len(aClass) > 0 {
		aAttrs = append(aAttrs, attr{"class", aClass})
	}

	var title string
	if hasLink {
		var attrs strings.Builder
		for _, a := range aAttrs {
			attrs.WriteString(a.String())
		}
		title = "<a" + attrs.String() + ">" + n.Title + "</a>"
	} else {
		el := o.AnchorElementWithoutHref
		title = "<" + el + ">" + n.Title + "</" + el + ">"
	}

	var closing string
	if o.UseTopLevelDetails && !child && n.HasChildren() {
		summary := "<details><summary>" + n.Title + "</summary>"
		if hasLink {
			// Interactive content is not allowed inside <summary>.
			title += summary
		} else {
			title = summary
		}
		closing = "</details>"
	}

	b.WriteString("<" + o.ListItemElement + attr{"class", liClass}.String() + ">")
	b.WriteString(title)
	if o.ShowExcerpt && n.Excerpt != "" {
		b.WriteString(": " + n.Excerpt)
	}
	if n.Children != nil {
		if err := r.list(b, n.Children, true); err != nil {
			return err
		}
	}
	b.WriteString(closing)
	b.WriteString("</" + o.ListItemElement + ">")
	return nil
}
