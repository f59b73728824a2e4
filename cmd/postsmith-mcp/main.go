package main

import (
	"context"
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	mcpadapter "postsmith/internal/adapters/mcp"
	"postsmith/internal/bootstrap"
	"postsmith/internal/config"
	"postsmith/internal/logging"
)

func main() {
	configFlag := flag.String("config", config.ConfigPath(), "path to posts.config.json")
	flag.Parse()

	// stdout carries the protocol, logs stay on stderr
	logger := logging.New(logging.Config{Level: logging.LevelWarn})

	app, err := bootstrap.Load(*configFlag, logger)
	if err != nil {
		log.Fatalf("postsmith-mcp: %v", err)
	}
	defer app.Close()

	mcpServer := server.NewMCPServer(
		"postsmith-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, app.Reader, app.Config.TagField())
	mcpadapter.RegisterWriteTools(mcpServer, app)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("postsmith-mcp: %v", err)
	}
}
