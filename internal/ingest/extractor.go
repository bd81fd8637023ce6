package ingest

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/agentic-research/navtree/api"
	"github.com/ohler55/ojg/jp"
	"go.uber.org/zap"
)

// Default selectors match the record layout of a static site generator:
// front matter under "data" and page metadata under "data.page".
const (
	DefaultNavSelector = "$.data.eleventyNavigation"
	DefaultURLSelector = "$.data.page.url"
)

// Extractor pulls the navigation descriptor and fallback URL out of an
// opaque record payload using JSONPath selectors.
type Extractor struct {
	nav jp.Expr
	url jp.Expr
	log *zap.Logger
}

// NewExtractor compiles the two selectors. Empty selectors use the defaults
// and a nil logger discards warnings.
func NewExtractor(navSelector, urlSelector string, log *zap.Logger) (*Extractor, error) {
	if navSelector == "" {
		navSelector = DefaultNavSelector
	}
	if urlSelector == "" {
		urlSelector = DefaultURLSelector
	}
	if log == nil {
		log = zap.NewNop()
	}

	navExpr, err := jp.ParseString(navSelector)
	if err != nil {
		return nil, fmt.Errorf("invalid jsonpath '%s': %w", navSelector, err)
	}
	urlExpr, err := jp.ParseString(urlSelector)
	if err != nil {
		return nil, fmt.Errorf("invalid jsonpath '%s': %w", urlSelector, err)
	}
	return &Extractor{nav: navExpr, url: urlExpr, log: log}, nil
}

// DefaultExtractor returns an Extractor with the default selectors.
func DefaultExtractor() *Extractor {
	x, err := NewExtractor("", "", nil)
	if err != nil {
		panic(err) // default selectors are constants
	}
	return x
}

// Extract builds a record from one payload. A payload without a descriptor
// object yields a record with a nil Nav, which the resolver skips.
func (x *Extractor) Extract(id string, data any) api.Record {
	rec := api.Record{ID: id, Data: data}
	if u, ok := x.url.First(data).(string); ok {
		rec.URL = u
	}

	switch v := x.nav.First(data).(type) {
	case nil:
	case map[string]any:
		rec.Nav = x.descriptor(id, v)
	default:
		x.log.Warn("navigation descriptor is not an object, ignoring",
			zap.String("record", id), zap.String("type", fmt.Sprintf("%T", v)))
	}
	return rec
}

func (x *Extractor) descriptor(id string, m map[string]any) *api.Descriptor {
	d := &api.Descriptor{
		Key:     scalarString(m["key"]),
		Parent:  scalarString(m["parent"]),
		Title:   scalarString(m["title"]),
		URL:     scalarString(m["url"]),
		Excerpt: scalarString(m["excerpt"]),
	}
	if raw, ok := m["order"]; ok && raw != nil {
		if f, ok := number(raw); ok {
			d.Order = api.Float(f)
		} else {
			x.log.Warn("non-numeric navigation order, treating as unset",
				zap.String("record", id), zap.Any("order", raw))
		}
	}
	d.Pinned = truthy(m["pinned"])
	return d
}

func scalarString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	default:
		return fmt.Sprint(s)
	}
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func truthy(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return b != "" && b != "false" && b != "0"
	case nil:
		return false
	default:
		f, ok := number(b)
		return ok && f != 0
	}
}
