package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/agentic-research/navtree/api"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestExtractor(t *testing.T) {
	x := DefaultExtractor()

	t.Run("descriptor and url", func(t *testing.T) {
		rec := x.Extract("p1", map[string]any{
			"data": map[string]any{
				"eleventyNavigation": map[string]any{
					"key":     "child1",
					"parent":  "root1",
					"title":   "Child",
					"order":   int64(0),
					"pinned":  true,
					"excerpt": "short",
				},
				"page": map[string]any{"url": "/child1/"},
			},
		})
		assert.Equal(t, "p1", rec.ID)
		assert.Equal(t, "/child1/", rec.URL)
		require.NotNil(t, rec.Nav)
		assert.Equal(t, api.Descriptor{
			Key: "child1", Parent: "root1", Title: "Child",
			Order: api.Float(0), Pinned: true, Excerpt: "short",
		}, *rec.Nav)
	})

	t.Run("no descriptor", func(t *testing.T) {
		rec := x.Extract("p2", map[string]any{"data": map[string]any{"title": "x"}})
		assert.Nil(t, rec.Nav)
		assert.Empty(t, rec.URL)
	})

	t.Run("numeric key from yaml", func(t *testing.T) {
		rec := x.Extract("p3", map[string]any{
			"data": map[string]any{"eleventyNavigation": map[string]any{"key": 2024, "order": "1.5"}},
		})
		assert.Equal(t, "2024", rec.Nav.Key)
		assert.Equal(t, 1.5, *rec.Nav.Order)
	})
}

func TestExtractor_WarnsOnBadValues(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	x, err := NewExtractor("", "", zap.New(core))
	require.NoError(t, err)

	rec := x.Extract("bad", map[string]any{
		"data": map[string]any{"eleventyNavigation": map[string]any{"key": "k", "order": "soon"}},
	})
	assert.Nil(t, rec.Nav.Order)

	rec = x.Extract("scalar", map[string]any{"data": map[string]any{"eleventyNavigation": "k"}})
	assert.Nil(t, rec.Nav)

	assert.Equal(t, 2, logs.Len())
	assert.Equal(t, "bad", logs.All()[0].ContextMap()["record"])
}

func TestExtractor_CustomSelectors(t *testing.T) {
	x, err := NewExtractor("$.nav", "$.href", nil)
	require.NoError(t, err)
	rec := x.Extract("c", map[string]any{"nav": map[string]any{"key": "k"}, "href": "/k/"})
	assert.Equal(t, "k", rec.Nav.Key)
	assert.Equal(t, "/k/", rec.URL)

	_, err = NewExtractor("$[1", "", nil)
	assert.Error(t, err)
}

func TestFrontMatter(t *testing.T) {
	fm, err := FrontMatter([]byte("---\ntitle: Hello\neleventyNavigation:\n  key: hello\n  order: 3\n---\nbody\n"))
	require.NoError(t, err)
	assert.Equal(t, "Hello", fm["title"])
	nav := fm["eleventyNavigation"].(map[string]any)
	assert.Equal(t, "hello", nav["key"])
	assert.Equal(t, 3, nav["order"])

	fm, err = FrontMatter([]byte("# no front matter\n"))
	require.NoError(t, err)
	assert.Empty(t, fm)

	fm, err = FrontMatter([]byte("---\r\n---\r\nempty\r\n"))
	require.NoError(t, err)
	assert.Empty(t, fm)

	_, err = FrontMatter([]byte("---\ntitle: never closed\n"))
	assert.Error(t, err)
}

func TestPermalinkURL(t *testing.T) {
	tests := map[string]string{
		"index.md":            "/",
		"about.md":            "/about/",
		"docs/index.md":       "/docs/",
		"docs/intro.md":       "/docs/intro/",
		"docs/deep/page.html": "/docs/deep/page/",
	}
	for in, want := range tests {
		assert.Equal(t, want, PermalinkURL(in), in)
	}
}

func TestContentDir(t *testing.T) {
	fs := memfs.New()
	files := map[string]string{
		"index.md":          "---\neleventyNavigation:\n  key: home\n---\n",
		"docs/index.md":     "---\neleventyNavigation:\n  key: docs\n  parent: home\n  order: 1\n---\n",
		"docs/intro.md":     "---\npermalink: /start/\neleventyNavigation:\n  key: intro\n  parent: docs\n---\n",
		"docs/notes.txt":    "not a page",
		"plain.md":          "# just markdown\n",
		"broken.md":         "---\neleventyNavigation: [\n---\n",
		".drafts/secret.md": "---\neleventyNavigation:\n  key: secret\n---\n",
	}
	for name, body := range files {
		require.NoError(t, util.WriteFile(fs, name, []byte(body), 0o644))
	}

	records, err := NewContentDir(fs, "/", nil, nil).Records(context.Background())
	require.NoError(t, err)

	byID := map[string]api.Record{}
	for _, r := range records {
		byID[r.ID] = r
	}
	assert.Len(t, records, 4)
	assert.NotContains(t, byID, "broken.md")
	assert.NotContains(t, byID, ".drafts/secret.md")

	assert.Equal(t, "home", byID["index.md"].Nav.Key)
	assert.Equal(t, "/", byID["index.md"].URL)
	assert.Equal(t, "/docs/", byID["docs/index.md"].URL)
	assert.Equal(t, "/start/", byID["docs/intro.md"].URL)
	assert.Nil(t, byID["plain.md"].Nav)
	assert.Equal(t, "/plain/", byID["plain.md"].URL)
}

func TestJSONFileAndOpen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "site.json")
	body := `[
		{"data":{"eleventyNavigation":{"key":"root1"},"page":{"url":"/root1/","inputPath":"root1.md"}}},
		{"data":{"eleventyNavigation":{"key":"child1","parent":"root1"},"page":{"url":"/child1/"}}}
	]`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	p, err := Open(path, KindAuto, nil, nil)
	require.NoError(t, err)
	require.IsType(t, &JSONFile{}, p)

	records, err := p.Records(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "root1.md", records[0].ID)
	assert.Equal(t, "1", records[1].ID)
	assert.Equal(t, "root1", records[1].Nav.Parent)

	p, err = Open(dir, KindAuto, nil, nil)
	require.NoError(t, err)
	assert.IsType(t, &ContentDir{}, p)

	_, err = Open(dir, KindJSON, nil, nil)
	assert.Error(t, err)

	_, err = Open(filepath.Join(dir, "missing.json"), KindAuto, nil, nil)
	assert.Error(t, err)
}

func TestJSONFile_NotAnArray(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, util.WriteFile(fs, "obj.json", []byte(`{"data":{}}`), 0o644))
	_, err := NewJSONFile(fs, "obj.json", nil).Records(context.Background())
	assert.ErrorContains(t, err, "expected a JSON array")
}

func TestParseKind(t *testing.T) {
	for _, s := range []string{"", "auto", "AUTO"} {
		k, err := ParseKind(s)
		require.NoError(t, err)
		assert.Equal(t, KindAuto, k)
	}
	k, err := ParseKind("SQLite")
	require.NoError(t, err)
	assert.Equal(t, KindSQLite, k)

	_, err = ParseKind("xml")
	assert.Error(t, err)
}

func TestStatic(t *testing.T) {
	src := Static{{ID: "a"}}
	got, err := src.Records(context.Background())
	require.NoError(t, err)
	got[0].ID = "changed"
	assert.Equal(t, "a", src[0].ID)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = src.Records(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
