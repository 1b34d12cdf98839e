package mcp

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"sitesmith/internal/application"
	"sitesmith/internal/application/commands"
	"sitesmith/internal/domain"
	"sitesmith/internal/ports"
)

// RegisterWriteTools adds the mutating tools to the MCP server. The
// generate tool is only registered when an assistant is configured.
func RegisterWriteTools(s *server.MCPServer, stores Stores, assistant ports.Assistant) {
	s.AddTool(materializeTool(), materializeHandler(stores))
	if assistant != nil && assistant.IsAvailable() {
		s.AddTool(generateTool(), generateHandler(assistant))
	}
}

// --- materialize ---

func materializeTool() mcp.Tool {
	return mcp.NewTool("materialize",
		mcp.WithDescription("Parse an outline and create its entries in the content store, linking children to their parents. Reports created, skipped (already existing) and failed entries."),
		mcp.WithString("text",
			mcp.Description("Outline text to materialize"),
			mcp.Required(),
		),
		mcp.WithString("kind",
			mcp.Description("Destination: pages (default) or menu"),
		),
		mcp.WithString("select",
			mcp.Description("Comma-separated node indices to materialize. Omit for all."),
		),
	)
}

func materializeHandler(stores Stores) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text := req.GetString("text", "")
		if text == "" {
			return toolError(fmt.Errorf("text is required"))
		}
		kind, ok := domain.ParseKind(req.GetString("kind", "pages"))
		if !ok {
			return toolError(fmt.Errorf("invalid kind (expected pages or menu)"))
		}

		nodes, _ := domain.ParseOutline(text)
		if sel := req.GetString("select", ""); sel != "" {
			selected, err := filterNodes(nodes, sel)
			if err != nil {
				return toolError(err)
			}
			nodes = selected
		}
		if len(nodes) == 0 {
			return mcp.NewToolResultText("Nothing to materialize."), nil
		}

		cmd := commands.NewMaterializeCommand(stores.ByKind(kind), nodes)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(formatReport(result)), nil
	}
}

func filterNodes(nodes []domain.Node, sel string) ([]domain.Node, error) {
	wanted := make(map[int]bool)
	for _, part := range strings.Split(sel, ",") {
		idx, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid selection %q", part)
		}
		wanted[idx] = true
	}

	var selected []domain.Node
	for _, n := range nodes {
		if wanted[n.Index] {
			selected = append(selected, n)
		}
	}
	if len(selected) == 0 {
		return nil, application.ErrEmptySelection
	}
	return selected, nil
}

func formatReport(result *commands.MaterializeResult) string {
	var sb strings.Builder
	sb.WriteString(result.Message)
	sb.WriteByte('\n')
	for _, r := range result.Created {
		fmt.Fprintf(&sb, "created  #%d  %s\n", r.ID, r.Title)
	}
	for _, r := range result.Skipped {
		fmt.Fprintf(&sb, "skipped  #%d  %s (already exists)\n", r.ID, r.Title)
	}
	for _, r := range result.Failed {
		fmt.Fprintf(&sb, "failed   %s: %s\n", r.Title, r.Reason)
	}
	return sb.String()
}

// --- generate_structure ---

func generateTool() mcp.Tool {
	return mcp.NewTool("generate_structure",
		mcp.WithDescription("Ask the AI assistant for a site structure outline. Returns the outline text, ready to review and pass to materialize."),
		mcp.WithString("goal",
			mcp.Description("What the site is about"),
			mcp.Required(),
		),
		mcp.WithString("kind",
			mcp.Description("What to plan: pages (default) or menu"),
		),
	)
}

func generateHandler(assistant ports.Assistant) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		goal := req.GetString("goal", "")
		if goal == "" {
			return toolError(fmt.Errorf("goal is required"))
		}
		kind, ok := domain.ParseKind(req.GetString("kind", "pages"))
		if !ok {
			return toolError(fmt.Errorf("invalid kind (expected pages or menu)"))
		}

		cmd := commands.NewGenerateCommand(assistant, goal, kind)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if result.Empty() {
			return mcp.NewToolResultText("The assistant had no suggestion."), nil
		}
		return mcp.NewToolResultText(domain.FormatOutline(result.Nodes)), nil
	}
}
