package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"postsmith/internal/application/commands"
)

// Builder hands out build and clean commands over one configured site
type Builder interface {
	BuildCommand() *commands.BuildCommand
	CleanCommand() *commands.CleanCommand
}

// RegisterWriteTools adds the tools that change the output directory.
func RegisterWriteTools(s *server.MCPServer, builder Builder) {
	s.AddTool(buildTool(), buildHandler(builder))
	s.AddTool(cleanTool(), cleanHandler(builder))
}

// --- build ---

func buildTool() mcp.Tool {
	return mcp.NewTool("build",
		mcp.WithDescription("Run an incremental build: regenerate changed posts and update every index."),
		mcp.WithBoolean("force",
			mcp.Description("Rewrite every index even when nothing changed"),
		),
		mcp.WithBoolean("clean",
			mcp.Description("Remove all previous outputs first"),
		),
	)
}

func buildHandler(builder Builder) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := builder.BuildCommand()
		cmd.Force = req.GetBool("force", false)
		cmd.Clean = req.GetBool("clean", false)

		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- clean ---

func cleanTool() mcp.Tool {
	return mcp.NewTool("clean",
		mcp.WithDescription("Remove every artifact and index from the output directory."),
		mcp.WithDestructiveHintAnnotation(true),
	)
}

func cleanHandler(builder Builder) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := builder.CleanCommand().Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}
