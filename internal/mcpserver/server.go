// Package mcpserver exposes navigation queries as MCP tools.
package mcpserver

import (
	"context"

	"github.com/agentic-research/navtree/internal/nav"
	"github.com/agentic-research/navtree/internal/site"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Version is reported to MCP clients.
var Version = "dev"

// Tool pairs an MCP tool definition with its handler.
type Tool interface {
	Definition() mcp.Tool
	Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

// New builds an MCP server with every navigation tool registered against svc.
func New(svc *site.Service) *server.MCPServer {
	s := server.NewMCPServer(
		"navtree",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)
	for _, t := range Tools(svc) {
		s.AddTool(t.Definition(), t.Handle)
	}
	return s
}

// Tools returns the tool set in registration order.
func Tools(svc *site.Service) []Tool {
	return []Tool{
		&navigationTool{svc: svc},
		&breadcrumbsTool{svc: svc},
		&renderTool{svc: svc, format: site.FormatHTML},
		&renderTool{svc: svc, format: site.FormatMarkdown},
	}
}

// ServeStdio runs the server on stdin/stdout until the client disconnects.
func ServeStdio(svc *site.Service) error {
	return server.ServeStdio(New(svc))
}

const instructions = `navtree answers questions about a site's navigation hierarchy.
Use "navigation" to list the tree (or the children of some keys), "breadcrumbs"
for the ancestors of a page, and render_html / render_markdown for ready-made
menus. Keys are the navigation keys declared by each page.`

type navigationTool struct {
	svc *site.Service
}

func (t *navigationTool) Definition() mcp.Tool {
	return mcp.NewTool("navigation",
		mcp.WithDescription("Resolve the navigation tree. With keys, return only the children of those keys."),
		mcp.WithString("keys", mcp.Description("Comma-separated parent keys; empty for the top level")),
		mcp.WithString("format", mcp.Description("json, markdown or html (default json)")),
		mcp.WithString("active", mcp.Description("Key to mark active in html output")),
	)
}

func (t *navigationTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	format, err := site.ParseFormat(req.GetString("format", string(site.FormatJSON)))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	nodes, err := t.svc.Navigation(ctx, nav.ParseKeys(req.GetString("keys", ""))...)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return result(t.svc.Render(ctx, nodes, format, req.GetString("active", "")))
}

type breadcrumbsTool struct {
	svc *site.Service
}

func (t *breadcrumbsTool) Definition() mcp.Tool {
	return mcp.NewTool("breadcrumbs",
		mcp.WithDescription("List the ancestors of a navigation key, root first."),
		mcp.WithString("key", mcp.Required(), mcp.Description("Navigation key of the active page")),
		mcp.WithBoolean("include_self", mcp.Description("Append the active page after its ancestors")),
		mcp.WithBoolean("allow_missing", mcp.Description("Return an empty list for unknown keys instead of an error")),
		mcp.WithString("format", mcp.Description("json, markdown or html (default json)")),
	)
}

func (t *breadcrumbsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := req.RequireString("key")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	format, err := site.ParseFormat(req.GetString("format", string(site.FormatJSON)))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	trail, err := t.svc.Breadcrumbs(ctx, key, nav.BreadcrumbOptions{
		IncludeSelf:  req.GetBool("include_self", false),
		AllowMissing: req.GetBool("allow_missing", false),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return result(t.svc.Render(ctx, trail, format, key))
}

type renderTool struct {
	svc    *site.Service
	format site.Format
}

func (t *renderTool) Definition() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithString("keys", mcp.Description("Comma-separated parent keys; empty for the whole tree")),
	}
	if t.format == site.FormatHTML {
		opts = append(opts,
			mcp.WithDescription("Render the navigation tree as nested HTML lists."),
			mcp.WithString("active", mcp.Description("Key to mark active")),
		)
	} else {
		opts = append(opts, mcp.WithDescription("Render the navigation tree as a Markdown bullet list."))
	}
	return mcp.NewTool("render_"+string(t.format), opts...)
}

func (t *renderTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	nodes, err := t.svc.Navigation(ctx, nav.ParseKeys(req.GetString("keys", ""))...)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return result(t.svc.Render(ctx, nodes, t.format, req.GetString("active", "")))
}

func result(text string, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(text), nil
}
