package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"sitesmith/internal/domain"
	"sitesmith/internal/ports"
)

// Stores bundles the content stores the tools operate on.
type Stores struct {
	Pages ports.ContentStore
	Menu  ports.ContentStore
}

// ByKind returns the store a kind targets.
func (s Stores) ByKind(kind domain.Kind) ports.ContentStore {
	if kind == domain.KindMenu {
		return s.Menu
	}
	return s.Pages
}

// RegisterReadTools adds all read-only tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, stores Stores) {
	s.AddTool(parseOutlineTool(), parseOutlineHandler())
	s.AddTool(treeTool(), treeHandler(stores))
	s.AddTool(listTool(), listHandler(stores))
}

// --- parse_outline ---

func parseOutlineTool() mcp.Tool {
	return mcp.NewTool("parse_outline",
		mcp.WithDescription("Parse an indented bullet outline into flat nodes with parent links. Lines that do not match the grammar are reported, not fatal."),
		mcp.WithString("text",
			mcp.Description("Outline text, one `- Title (key: value)` entry per line, children indented by 2 spaces"),
			mcp.Required(),
		),
	)
}

func parseOutlineHandler() server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text := req.GetString("text", "")
		if text == "" {
			return toolError(fmt.Errorf("text is required"))
		}

		nodes, skipped := domain.ParseOutline(text)
		if len(nodes) == 0 {
			return mcp.NewToolResultText("No nodes parsed."), nil
		}

		var sb strings.Builder
		for _, n := range nodes {
			parent := "-"
			if !n.IsRoot() {
				parent = fmt.Sprintf("%d", n.ParentIndex)
			}
			fmt.Fprintf(&sb, "%d  level=%d parent=%s  %s %v\n",
				n.Index, n.Level, parent, n.Title, n.Attrs)
		}
		if len(skipped) > 0 {
			fmt.Fprintf(&sb, "\n%d line(s) skipped:\n", len(skipped))
			for _, line := range skipped {
				fmt.Fprintf(&sb, "  %s\n", line)
			}
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- tree ---

func treeTool() mcp.Tool {
	return mcp.NewTool("tree",
		mcp.WithDescription("Display the stored content tree for pages or the menu."),
		mcp.WithString("kind",
			mcp.Description("Which tree to show: pages (default) or menu"),
		),
	)
}

func treeHandler(stores Stores) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		kind, ok := domain.ParseKind(req.GetString("kind", "pages"))
		if !ok {
			return toolError(fmt.Errorf("invalid kind (expected pages or menu)"))
		}

		entities, err := stores.ByKind(kind).List()
		if err != nil {
			return toolError(err)
		}
		if len(entities) == 0 {
			return mcp.NewToolResultText("Empty."), nil
		}

		var sb strings.Builder
		for _, root := range domain.BuildTree(entities) {
			renderTree(&sb, root, "")
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

func renderTree(sb *strings.Builder, node *domain.TreeNode, prefix string) {
	fmt.Fprintf(sb, "%s#%d %s\n", prefix, node.ID, node.Title)
	for _, child := range node.Children {
		renderTree(sb, child, prefix+"  ")
	}
}

// --- list ---

func listTool() mcp.Tool {
	return mcp.NewTool("list",
		mcp.WithDescription("List stored entities flat, with IDs and parent IDs."),
		mcp.WithString("kind",
			mcp.Description("Which entities to list: pages (default) or menu"),
		),
	)
}

func listHandler(stores Stores) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		kind, ok := domain.ParseKind(req.GetString("kind", "pages"))
		if !ok {
			return toolError(fmt.Errorf("invalid kind (expected pages or menu)"))
		}

		entities, err := stores.ByKind(kind).List()
		if err != nil {
			return toolError(err)
		}
		return formatEntities(entities, formatEntity)
	}
}

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatEntities[T any](entities []T, format func(T) string) (*mcp.CallToolResult, error) {
	if len(entities) == 0 {
		return mcp.NewToolResultText("No results."), nil
	}
	var sb strings.Builder
	for _, e := range entities {
		sb.WriteString(format(e))
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func formatEntity(e domain.Entity) string {
	return fmt.Sprintf("#%d  %s  (parent #%d)", e.ID, e.Title, e.ParentID)
}
