package ingest

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/agentic-research/navtree/api"
	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var contentExts = []string{".md", ".markdown", ".html"}

// ContentDir treats every page file under Root as a record. YAML front
// matter becomes the record's "data" object and the derived page URL is
// stored at data.page.url, so the default selectors apply unchanged.
type ContentDir struct {
	FS      billy.Filesystem
	Root    string
	Extract *Extractor
	Log     *zap.Logger
}

// NewContentDir returns a provider over root inside fs.
func NewContentDir(fs billy.Filesystem, root string, x *Extractor, log *zap.Logger) *ContentDir {
	if x == nil {
		x = DefaultExtractor()
	}
	if log == nil {
		log = zap.NewNop()
	}
	if root == "" {
		root = "/"
	}
	return &ContentDir{FS: fs, Root: root, Extract: x, Log: log}
}

// Records implements Provider. Records are returned in lexical path order.
func (c *ContentDir) Records(ctx context.Context) ([]api.Record, error) {
	var files []string
	err := util.Walk(c.FS, c.Root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if info.IsDir() {
			if p != c.Root && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if slices.Contains(contentExts, strings.ToLower(path.Ext(p))) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", c.Root, err)
	}
	slices.Sort(files)

	records := make([]api.Record, 0, len(files))
	for _, p := range files {
		content, err := util.ReadFile(c.FS, p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		rel := relPath(c.Root, p)
		data, err := pageData(rel, content)
		if err != nil {
			c.Log.Warn("skipping page with unreadable front matter", zap.String("path", rel), zap.Error(err))
			continue
		}
		records = append(records, c.Extract.Extract(rel, data))
	}
	c.Log.Debug("loaded content directory", zap.String("root", c.Root), zap.Int("pages", len(records)))
	return records, nil
}

func relPath(root, p string) string {
	p = strings.TrimPrefix(path.Clean("/"+p), path.Clean("/"+root))
	return strings.TrimPrefix(p, "/")
}

// pageData assembles the {"data": {...front matter, "page": {...}}} payload.
func pageData(rel string, content []byte) (map[string]any, error) {
	fm, err := FrontMatter(content)
	if err != nil {
		return nil, err
	}
	url := PermalinkURL(rel)
	if p, ok := fm["permalink"].(string); ok && p != "" {
		url = p
	}
	fm["page"] = map[string]any{
		"url":       url,
		"inputPath": rel,
	}
	return map[string]any{"data": fm}, nil
}

// FrontMatter parses a leading "---" delimited YAML block. Content without
// one yields an empty map.
func FrontMatter(content []byte) (map[string]any, error) {
	fm := map[string]any{}
	content = bytes.TrimPrefix(content, []byte("\xef\xbb\xbf"))
	content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
	if !bytes.HasPrefix(content, []byte("---\n")) {
		return fm, nil
	}
	body := content[len("---\n"):]

	var block []byte
	switch {
	case bytes.HasPrefix(body, []byte("---")):
		block = nil
	default:
		end := bytes.Index(body, []byte("\n---"))
		if end < 0 {
			return nil, fmt.Errorf("unterminated front matter")
		}
		block = body[:end]
	}

	if err := yaml.Unmarshal(block, &fm); err != nil {
		return nil, fmt.Errorf("parse front matter: %w", err)
	}
	if fm == nil {
		fm = map[string]any{}
	}
	return fm, nil
}

// PermalinkURL derives a directory-style URL from a page path:
// "docs/intro.md" maps to "/docs/intro/" and "docs/index.md" to "/docs/".
func PermalinkURL(rel string) string {
	rel = strings.TrimPrefix(path.Clean("/"+rel), "/")
	dir, file := path.Split(rel)
	stem := strings.TrimSuffix(file, path.Ext(file))
	if stem == "index" {
		return "/" + dir
	}
	return "/" + dir + stem + "/"
}
