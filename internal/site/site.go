// Package site wires a record provider to navigation resolution and
// rendering. Every call reloads records from the provider and rebuilds the
// forest, so a Service always reflects the current source.
package site

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/agentic-research/navtree/api"
	"github.com/agentic-research/navtree/internal/config"
	"github.com/agentic-research/navtree/internal/graph"
	"github.com/agentic-research/navtree/internal/ingest"
	"github.com/agentic-research/navtree/internal/nav"
	"github.com/agentic-research/navtree/internal/render"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("navtree.site")

// Service answers navigation queries over a record provider.
type Service struct {
	provider ingest.Provider
	rewrite  render.URLRewriter
	html     render.HTMLOptions
	markdown render.MarkdownOptions
	log      *zap.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithURLRewriter sets the rewriter applied to rendered URLs. The default is
// render.Identity.
func WithURLRewriter(rw render.URLRewriter) Option {
	return func(s *Service) { s.rewrite = rw }
}

// WithHTMLOptions sets the base HTML options.
func WithHTMLOptions(o render.HTMLOptions) Option {
	return func(s *Service) { s.html = o }
}

// WithMarkdownOptions sets the Markdown options.
func WithMarkdownOptions(o render.MarkdownOptions) Option {
	return func(s *Service) { s.markdown = o }
}

// New returns a Service reading from p.
func New(p ingest.Provider, opts ...Option) *Service {
	s := &Service{
		provider: p,
		rewrite:  render.Identity,
		log:      zap.NewNop(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// FromConfig opens the configured source and applies the configured
// selectors, path prefix and render options. c must already be validated.
func FromConfig(c *config.Config, log *zap.Logger) (*Service, error) {
	if log == nil {
		log = zap.NewNop()
	}
	x, err := ingest.NewExtractor(c.Selectors.Navigation, c.Selectors.URL, log)
	if err != nil {
		return nil, err
	}
	kind, err := ingest.ParseKind(c.Source.Kind)
	if err != nil {
		return nil, err
	}
	p, err := ingest.Open(c.Source.Path, kind, x, log)
	if err != nil {
		return nil, fmt.Errorf("open source %s: %w", c.Source.Path, err)
	}
	return New(p,
		WithLogger(log),
		WithURLRewriter(render.PathPrefix(c.Site.PathPrefix)),
		WithHTMLOptions(*c.HTML),
		WithMarkdownOptions(*c.Markdown),
	), nil
}

// HTMLOptions returns a copy of the base HTML options.
func (s *Service) HTMLOptions() render.HTMLOptions { return s.html }

// Records loads the current record set.
func (s *Service) Records(ctx context.Context) ([]api.Record, error) {
	ctx, span := tracer.Start(ctx, "site.Records")
	defer span.End()

	records, err := s.provider.Records(ctx)
	if err != nil {
		return nil, fail(span, fmt.Errorf("load records: %w", err))
	}
	span.SetAttributes(attribute.Int("records", len(records)))
	s.log.Debug("records loaded", zap.Int("count", len(records)))
	return records, nil
}

// Navigation resolves the forest, or the children of keys when given.
func (s *Service) Navigation(ctx context.Context, keys ...string) ([]*nav.Node, error) {
	ctx, span := tracer.Start(ctx, "site.Navigation",
		trace.WithAttributes(attribute.StringSlice("keys", keys)))
	defer span.End()

	records, err := s.Records(ctx)
	if err != nil {
		return nil, fail(span, err)
	}
	nodes, err := nav.Resolve(records, keys...)
	if err != nil {
		s.log.Warn("navigation resolve failed", zap.Strings("keys", keys), zap.Error(err))
		return nil, fail(span, err)
	}
	span.SetAttributes(attribute.Int("nodes", len(nodes)))
	return nodes, nil
}

// Breadcrumbs returns the ancestor trail of key, root first.
func (s *Service) Breadcrumbs(ctx context.Context, key string, opts nav.BreadcrumbOptions) ([]*nav.Node, error) {
	ctx, span := tracer.Start(ctx, "site.Breadcrumbs", trace.WithAttributes(
		attribute.String("key", key),
		attribute.Bool("include_self", opts.IncludeSelf),
		attribute.Bool("allow_missing", opts.AllowMissing),
	))
	defer span.End()

	records, err := s.Records(ctx)
	if err != nil {
		return nil, fail(span, err)
	}
	trail, err := nav.Breadcrumbs(records, key, opts)
	if err != nil {
		s.log.Warn("breadcrumb lookup failed", zap.String("key", key), zap.Error(err))
		return nil, fail(span, err)
	}
	span.SetAttributes(attribute.Int("depth", len(trail)))
	return trail, nil
}

// Graph builds the dependency graph of the full forest.
func (s *Service) Graph(ctx context.Context) (*graph.DepGraph[*nav.Node], error) {
	ctx, span := tracer.Start(ctx, "site.Graph")
	defer span.End()

	records, err := s.Records(ctx)
	if err != nil {
		return nil, fail(span, err)
	}
	g, err := nav.DependencyGraph(records)
	if err != nil {
		return nil, fail(span, err)
	}
	span.SetAttributes(attribute.Int("nodes", g.Size()))
	return g, nil
}

// Edge is one child-to-parent link of the navigation graph.
type Edge struct {
	Child  string `json:"child"`
	Parent string `json:"parent"`
}

// Edges lists every child-to-parent link in graph insertion order.
func (s *Service) Edges(ctx context.Context) ([]Edge, error) {
	g, err := s.Graph(ctx)
	if err != nil {
		return nil, err
	}
	edges := make([]Edge, 0, g.Size())
	for _, k := range g.Keys() {
		parents, err := g.DirectDependenciesOf(k)
		if err != nil {
			return nil, err
		}
		for _, p := range parents {
			edges = append(edges, Edge{Child: k, Parent: p})
		}
	}
	return edges, nil
}

// HTML renders nodes with the service's HTML options. A non-empty
// activeKey overrides the configured one.
func (s *Service) HTML(ctx context.Context, nodes []*nav.Node, activeKey string) (string, error) {
	_, span := tracer.Start(ctx, "site.HTML", trace.WithAttributes(attribute.Int("nodes", len(nodes))))
	defer span.End()

	opts := s.html
	if activeKey != "" {
		opts.ActiveKey = activeKey
	}
	out, err := render.HTML(nodes, opts, s.rewrite)
	if err != nil {
		return "", fail(span, err)
	}
	return out, nil
}

// Markdown renders nodes with the service's Markdown options.
func (s *Service) Markdown(ctx context.Context, nodes []*nav.Node) (string, error) {
	_, span := tracer.Start(ctx, "site.Markdown", trace.WithAttributes(attribute.Int("nodes", len(nodes))))
	defer span.End()

	out, err := render.Markdown(nodes, s.markdown, s.rewrite)
	if err != nil {
		return "", fail(span, err)
	}
	return out, nil
}

// JSON encodes nodes as indented JSON. Like the other renderers it only
// accepts nodes produced by navigation resolution.
func (s *Service) JSON(ctx context.Context, nodes []*nav.Node) (string, error) {
	_, span := tracer.Start(ctx, "site.JSON", trace.WithAttributes(attribute.Int("nodes", len(nodes))))
	defer span.End()

	if err := render.CheckNodes(nodes); err != nil {
		return "", fail(span, err)
	}
	b, err := json.MarshalIndent(nodes, "", "  ")
	if err != nil {
		return "", fail(span, fmt.Errorf("encode nodes: %w", err))
	}
	return string(b) + "\n", nil
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

// Format selects an output rendering.
type Format string

const (
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// ParseFormat validates a user-supplied format name. "" means markdown.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case "", "md":
		return FormatMarkdown, nil
	case FormatJSON, FormatMarkdown, FormatHTML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (want json, markdown or html)", s)
	}
}

// Render writes nodes in the given format. activeKey only affects HTML.
func (s *Service) Render(ctx context.Context, nodes []*nav.Node, f Format, activeKey string) (string, error) {
	switch f {
	case FormatHTML:
		return s.HTML(ctx, nodes, activeKey)
	case FormatJSON:
		return s.JSON(ctx, nodes)
	default:
		return s.Markdown(ctx, nodes)
	}
}
