// Package config loads navtree.hcl.
//
//	source {
//	  path = "content"
//	  kind = "auto"
//	}
//
//	selectors {
//	  navigation = "$.data.eleventyNavigation"
//	  url        = "$.data.page.url"
//	}
//
//	site {
//	  path_prefix = "/docs"
//	}
//
//	html {
//	  list_class          = "nav"
//	  active_anchor_class = "is-active"
//	}
//
//	markdown {
//	  show_excerpt = true
//	}
//
// Every block is optional. Command-line flags override file values.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/agentic-research/navtree/internal/ingest"
	"github.com/agentic-research/navtree/internal/render"
	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// DefaultFile is the config file looked up when none is named.
const DefaultFile = "navtree.hcl"

// Config is the decoded navtree.hcl.
type Config struct {
	Source    *Source                 `hcl:"source,block"`
	Selectors *Selectors              `hcl:"selectors,block"`
	Site      *Site                   `hcl:"site,block"`
	HTML      *render.HTMLOptions     `hcl:"html,block"`
	Markdown  *render.MarkdownOptions `hcl:"markdown,block"`
}

// Source names where records come from.
type Source struct {
	Path string `hcl:"path,optional" validate:"required"`
	Kind string `hcl:"kind,optional" validate:"omitempty,oneof=auto json sqlite content"`
}

// Selectors override the JSONPath expressions used to read records.
type Selectors struct {
	Navigation string `hcl:"navigation,optional"`
	URL        string `hcl:"url,optional"`
}

// Site holds output-wide settings.
type Site struct {
	PathPrefix string `hcl:"path_prefix,optional" validate:"omitempty,startswith=/"`
}

// Default returns a config with every block present and empty.
func Default() *Config {
	c := &Config{}
	c.fill()
	return c
}

func (c *Config) fill() {
	if c.Source == nil {
		c.Source = &Source{}
	}
	if c.Source.Kind == "" {
		c.Source.Kind = "auto"
	}
	if c.Selectors == nil {
		c.Selectors = &Selectors{}
	}
	if c.Selectors.Navigation == "" {
		c.Selectors.Navigation = ingest.DefaultNavSelector
	}
	if c.Selectors.URL == "" {
		c.Selectors.URL = ingest.DefaultURLSelector
	}
	if c.Site == nil {
		c.Site = &Site{}
	}
	if c.HTML == nil {
		c.HTML = &render.HTMLOptions{}
	}
	if c.Markdown == nil {
		c.Markdown = &render.MarkdownOptions{}
	}
}

// Load parses and decodes the file at path. A relative source path is
// resolved against the file's directory. The result is not validated, so
// flags can still fill in missing values before Validate.
func Load(path string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}
	c, err := decode(file.Body, path)
	if err != nil {
		return nil, err
	}
	if p := c.Source.Path; p != "" && !filepath.IsAbs(p) {
		c.Source.Path = filepath.Join(filepath.Dir(path), p)
	}
	return c, nil
}

// Parse decodes HCL source held in memory. filename is only used in
// diagnostics.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	return decode(file.Body, filename)
}

func decode(body hcl.Body, filename string) (*Config, error) {
	var c Config
	if diags := gohcl.DecodeBody(body, nil, &c); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}
	c.fill()
	return &c, nil
}

var validate = validator.New()

// Validate checks the config after defaults and flag overrides are applied.
func (c *Config) Validate() error {
	c.fill()
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}
	if _, err := ingest.ParseKind(c.Source.Kind); err != nil {
		return err
	}
	return nil
}

// formatValidationError turns validator field errors into one readable error.
func formatValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, e := range fieldErrs {
		msgs = append(msgs, formatFieldError(e))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func formatFieldError(e validator.FieldError) string {
	field := fieldPath(e)
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	case "startswith":
		return fmt.Sprintf("%s must start with %q", field, e.Param())
	case "alphanum":
		return fmt.Sprintf("%s must be a bare element name", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// fieldPath maps "Config.Source.Path" to the HCL-ish "source.path".
func fieldPath(e validator.FieldError) string {
	ns := strings.TrimPrefix(e.Namespace(), "Config.")
	parts := strings.Split(ns, ".")
	for i, p := range parts {
		parts[i] = strings.ToLower(p)
	}
	return strings.Join(parts, ".")
}
