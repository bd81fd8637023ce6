package site

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/agentic-research/navtree/api"
	"github.com/agentic-research/navtree/internal/config"
	"github.com/agentic-research/navtree/internal/ingest"
	"github.com/agentic-research/navtree/internal/nav"
	"github.com/agentic-research/navtree/internal/render"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func contentService(t *testing.T, opts ...Option) *Service {
	t.Helper()
	fs := memfs.New()
	pages := map[string]string{
		"index.md":      "---\ntitle: Home\neleventyNavigation:\n  key: home\n---\n",
		"docs/index.md": "---\neleventyNavigation:\n  key: docs\n  parent: home\n  title: Documentation\n---\n",
		"docs/intro.md": "---\neleventyNavigation:\n  key: intro\n  parent: docs\n  order: 2\n---\n",
		"docs/setup.md": "---\neleventyNavigation:\n  key: setup\n  parent: docs\n  order: 1\n  excerpt: Install it\n---\n",
	}
	for name, body := range pages {
		require.NoError(t, util.WriteFile(fs, name, []byte(body), 0o644))
	}
	log := zaptest.NewLogger(t)
	p := ingest.NewContentDir(fs, "/", nil, log)
	return New(p, append([]Option{WithLogger(log)}, opts...)...)
}

func TestService_ContentRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := contentService(t, WithURLRewriter(render.PathPrefix("/site")))

	trail, err := s.Breadcrumbs(ctx, "setup", nav.BreadcrumbOptions{IncludeSelf: true})
	require.NoError(t, err)

	out, err := s.HTML(ctx, trail, "setup")
	require.NoError(t, err)
	assert.Equal(t,
		"<ul><li><a href=\"/site/\">home</a></li>\n"+
			"<li><a href=\"/site/docs/\">Documentation</a></li>\n"+
			"<li><a href=\"/site/docs/setup/\">setup</a></li></ul>",
		out)
	assert.NoError(t, render.ValidateHTML(out))
}

func TestService_Navigation(t *testing.T) {
	ctx := context.Background()
	s := contentService(t, WithMarkdownOptions(render.MarkdownOptions{ShowExcerpt: true}))

	forest, err := s.Navigation(ctx)
	require.NoError(t, err)
	md, err := s.Markdown(ctx, forest)
	require.NoError(t, err)
	assert.Equal(t,
		"* [home](/)\n"+
			"  * [Documentation](/docs/)\n"+
			"    * [setup](/docs/setup/): Install it\n"+
			"    * [intro](/docs/intro/)\n",
		md)

	children, err := s.Navigation(ctx, "docs")
	require.NoError(t, err)
	require.Len(t, children, 2)
	assert.Equal(t, "setup", children[0].Key)
	assert.Equal(t, "docs", children[0].ParentKey)
}

func TestService_Edges(t *testing.T) {
	edges, err := contentService(t).Edges(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Edge{
		{Child: "docs", Parent: "home"},
		{Child: "setup", Parent: "docs"},
		{Child: "intro", Parent: "docs"},
	}, edges)
}

func TestService_Errors(t *testing.T) {
	ctx := context.Background()
	s := contentService(t)

	_, err := s.Breadcrumbs(ctx, "nope", nav.BreadcrumbOptions{})
	assert.ErrorIs(t, err, nav.ErrUnknownKey)

	dup := New(ingest.Static{
		{Nav: &api.Descriptor{Key: "a"}},
		{Nav: &api.Descriptor{Key: "a"}},
	})
	_, err = dup.Graph(ctx)
	assert.ErrorIs(t, err, nav.ErrDuplicateKey)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = s.Navigation(cancelled)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFromConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "records.json"), []byte(`[
		{"data":{"eleventyNavigation":{"key":"root1"},"page":{"url":"/root1/"}}},
		{"data":{"eleventyNavigation":{"key":"child1","parent":"root1"},"page":{"url":"/child1/"}}}
	]`), 0o644))

	c := config.Default()
	c.Source.Path = filepath.Join(dir, "records.json")
	c.Site.PathPrefix = "/p"
	c.HTML.ListClass = "nav"
	require.NoError(t, c.Validate())

	s, err := FromConfig(c, nil)
	require.NoError(t, err)

	forest, err := s.Navigation(context.Background())
	require.NoError(t, err)
	out, err := s.HTML(context.Background(), forest, "")
	require.NoError(t, err)
	assert.Equal(t, `<ul class="nav"><li><a href="/p/root1/">root1</a><ul><li><a href="/p/child1/">child1</a></li></ul></li></ul>`, out)

	c.Source.Path = filepath.Join(dir, "missing")
	_, err = FromConfig(c, nil)
	assert.Error(t, err)
}

func TestService_Render(t *testing.T) {
	ctx := context.Background()
	s := contentService(t)
	trail, err := s.Breadcrumbs(ctx, "docs", nav.BreadcrumbOptions{IncludeSelf: true})
	require.NoError(t, err)

	f, err := ParseFormat("json")
	require.NoError(t, err)
	out, err := s.Render(ctx, trail, f, "")
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"key":"home","title":"home","url":"/"},
		{"key":"docs","title":"Documentation","url":"/docs/","parent":"home"}
	]`, out)

	f, err = ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatMarkdown, f)
	out, err = s.Render(ctx, trail, f, "")
	require.NoError(t, err)
	assert.Equal(t, "* [home](/)\n* [Documentation](/docs/)\n", out)

	_, err = ParseFormat("pdf")
	assert.Error(t, err)
}

func TestService_JSON(t *testing.T) {
	ctx := context.Background()
	s := contentService(t)

	forest, err := s.Navigation(ctx, "docs")
	require.NoError(t, err)
	out, err := s.JSON(ctx, forest)
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"key":"setup","title":"setup","url":"/docs/setup/","order":1,"parent":"docs","excerpt":"Install it","parentKey":"docs"},
		{"key":"intro","title":"intro","url":"/docs/intro/","order":2,"parent":"docs","parentKey":"docs"}
	]`, out)

	handmade := []*nav.Node{{Key: "x", Title: "x"}}
	_, err = s.Render(ctx, handmade, FormatJSON, "")
	assert.ErrorIs(t, err, render.ErrInvalidRenderInput)

	forest, err = s.Navigation(ctx)
	require.NoError(t, err)
	forest[0].Children = append(forest[0].Children, &nav.Node{Key: "nested"})
	forest[0].Children[0], forest[0].Children[1] = forest[0].Children[1], forest[0].Children[0]
	_, err = s.JSON(ctx, forest)
	assert.ErrorIs(t, err, render.ErrInvalidRenderInput)

	out, err = s.JSON(ctx, []*nav.Node{})
	require.NoError(t, err)
	assert.JSONEq(t, "[]", out)
}
