package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/agentic-research/navtree/api"
	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/ohler55/ojg/oj"
	"go.uber.org/zap"
)

// Kind names a record source format.
type Kind string

const (
	KindAuto    Kind = ""
	KindJSON    Kind = "json"
	KindSQLite  Kind = "sqlite"
	KindContent Kind = "content"
)

// ParseKind validates a user-supplied source kind. "auto" and "" both mean
// detect from the path.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(s)); k {
	case KindAuto, KindJSON, KindSQLite, KindContent:
		return k, nil
	case "auto":
		return KindAuto, nil
	default:
		return "", fmt.Errorf("unknown source kind %q (want json, sqlite or content)", s)
	}
}

// JSONFile reads a JSON array of raw records from a single file. A record's
// ID is its data.page.inputPath when present, otherwise its array index.
type JSONFile struct {
	FS      billy.Filesystem
	Path    string
	Extract *Extractor
}

// NewJSONFile returns a provider over the file at path inside fs.
func NewJSONFile(fs billy.Filesystem, path string, x *Extractor) *JSONFile {
	if x == nil {
		x = DefaultExtractor()
	}
	return &JSONFile{FS: fs, Path: path, Extract: x}
}

// Records implements Provider.
func (j *JSONFile) Records(ctx context.Context) ([]api.Record, error) {
	content, err := util.ReadFile(j.FS, j.Path)
	if err != nil {
		return nil, err
	}
	data, err := oj.Parse(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse json %s: %w", j.Path, err)
	}
	items, ok := data.([]any)
	if !ok {
		return nil, fmt.Errorf("%s: expected a JSON array of records, got %T", j.Path, data)
	}

	records := make([]api.Record, 0, len(items))
	for i, item := range items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		records = append(records, j.Extract.Extract(recordID(item, i), item))
	}
	return records, nil
}

func recordID(item any, i int) string {
	if m, ok := item.(map[string]any); ok {
		if data, ok := m["data"].(map[string]any); ok {
			if page, ok := data["page"].(map[string]any); ok {
				if p, ok := page["inputPath"].(string); ok && p != "" {
					return p
				}
			}
		}
	}
	return strconv.Itoa(i)
}

// Open picks a provider for path. With KindAuto, directories are content
// trees, ".db"/".sqlite" files are SQLite databases and anything else is
// read as a JSON record array.
func Open(path string, kind Kind, x *Extractor, log *zap.Logger) (Provider, error) {
	if log == nil {
		log = zap.NewNop()
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	if kind == KindAuto {
		kind = detectKind(path, info)
		log.Debug("detected source kind", zap.String("path", path), zap.String("kind", string(kind)))
	}

	switch kind {
	case KindContent:
		if !info.IsDir() {
			return nil, fmt.Errorf("content source %s is not a directory", path)
		}
		return NewContentDir(osfs.New(path), "/", x, log), nil
	case KindSQLite:
		return NewSQLiteTable(path, x), nil
	case KindJSON:
		if info.IsDir() {
			return nil, fmt.Errorf("json source %s is a directory", path)
		}
		return NewJSONFile(osfs.New(filepath.Dir(path)), filepath.Base(path), x), nil
	default:
		return nil, fmt.Errorf("unknown source kind %q", kind)
	}
}

func detectKind(path string, info os.FileInfo) Kind {
	if info.IsDir() {
		return KindContent
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return KindSQLite
	default:
		return KindJSON
	}
}
