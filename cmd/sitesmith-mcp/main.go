package main

import (
	"context"
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	mcpadapter "sitesmith/internal/adapters/mcp"
	"sitesmith/internal/adapters/openai"
	"sitesmith/internal/adapters/sqlite"
	"sitesmith/internal/config"
)

func main() {
	dbFlag := flag.String("db", config.DatabasePath(), "path to the content database")
	flag.Parse()

	db, err := sqlite.Open(*dbFlag)
	if err != nil {
		log.Fatalf("sitesmith-mcp: %v", err)
	}
	defer db.Close()

	stores := mcpadapter.Stores{
		Pages: db.Pages(),
		Menu:  db.Menu(),
	}
	assistant := openai.NewAssistant(config.APIKey(),
		openai.WithModel(config.Model()),
		openai.WithBaseURL(config.BaseURL()),
	)

	mcpServer := server.NewMCPServer(
		"sitesmith-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check — returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, stores)
	mcpadapter.RegisterWriteTools(mcpServer, stores, assistant)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("sitesmith-mcp: %v", err)
	}
}
