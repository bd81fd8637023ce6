package nav

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownKey is returned by Breadcrumbs for a key absent from the graph.
	ErrUnknownKey = errors.New("unknown navigation key")
	// ErrStructuralCycle is returned when parent references form a cycle.
	ErrStructuralCycle = errors.New("navigation parent cycle")
	// ErrDuplicateKey is returned when two records declare the same key.
	ErrDuplicateKey = errors.New("duplicate navigation key")
)

// Error wraps a navigation failure with the key it concerns and, for cycles,
// the witness path.
type Error struct {
	Kind error
	Key  string
	Path []string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	switch {
	case len(e.Path) > 0:
		return fmt.Sprintf("%s: %s", e.Kind.Error(), strings.Join(e.Path, " -> "))
	case e.Key != "":
		return fmt.Sprintf("%s: %q", e.Kind.Error(), e.Key)
	default:
		return e.Kind.Error()
	}
}

func (e *Error) Unwrap() error { return e.Kind }

func unknownKey(key string) error {
	return &Error{Kind: ErrUnknownKey, Key: key}
}

func cycleError(path []string) error {
	return &Error{Kind: ErrStructuralCycle, Path: path}
}
