package render

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	tshtml "github.com/smacker/go-tree-sitter/html"
)

// ValidationError locates a markup error in rendered HTML.
type ValidationError struct {
	Line    uint32 // 0-indexed
	Column  uint32 // 0-indexed
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("html:%d:%d: %s", e.Line+1, e.Column+1, e.Message)
}

// ValidateHTML parses markup with tree-sitter and returns the first syntax
// error, or nil when the document is well formed. Stray end tags count as
// errors.
func ValidateHTML(markup string) error {
	errs, err := HTMLErrors(markup)
	if err != nil {
		return err
	}
	if len(errs) == 0 {
		return nil
	}
	return &errs[0]
}

// HTMLErrors returns every error location in markup in document order.
func HTMLErrors(markup string) ([]ValidationError, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(tshtml.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, []byte(markup))
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse failed: %w", err)
	}
	root := tree.RootNode()
	if root == nil {
		return nil, fmt.Errorf("tree-sitter returned nil root")
	}

	var errs []ValidationError
	collectErrors(root, &errs)
	return errs, nil
}

func collectErrors(node *sitter.Node, errs *[]ValidationError) {
	var msg string
	switch {
	case node.IsMissing():
		msg = "missing " + node.Type()
	case node.IsError():
		msg = "syntax error"
	case node.Type() == "erroneous_end_tag":
		msg = "unexpected end tag"
	}
	if msg != "" {
		*errs = append(*errs, ValidationError{
			Line:    node.StartPoint().Row,
			Column:  node.StartPoint().Column,
			Message: msg,
		})
		return // don't recurse into error children
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		collectErrors(node.Child(i), errs)
	}
}
