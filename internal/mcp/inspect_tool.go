package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	mcputils "github.com/mvp-joe/monosplit/internal/mcp-utils"
	"github.com/mvp-joe/monosplit/internal/splitter"
)

// inspectRequest are the arguments of the monosplit_inspect tool.
type inspectRequest struct {
	Path string `json:"path"`
}

// AddInspectTool registers the monosplit_inspect tool with an MCP server.
func AddInspectTool(s *server.MCPServer, logger *zap.Logger) {
	tool := mcp.NewTool(
		"monosplit_inspect",
		mcp.WithDescription("Report the split plan for a marker-annotated Python file without writing anything: segments with their exports, resolved imports, cross-segment references and replicated bindings, the detected main block, and all diagnostics."),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the annotated Python source file")),
	)

	s.AddTool(tool, createInspectHandler(logger))
}

// createInspectHandler creates the handler function for the inspect tool.
func createInspectHandler(logger *zap.Logger) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var req inspectRequest
		if err := mcputils.CoerceBindArguments(request, &req); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
		}

		if req.Path == "" {
			return mcp.NewToolResultError("path parameter is required"), nil
		}

		source, err := os.ReadFile(req.Path)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("cannot read %s: %v", req.Path, err)), nil
		}

		res, err := splitter.SplitWithLogger(source, splitter.Options{}, logger)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		jsonData, err := json.Marshal(res)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response: %w", err)
		}

		return mcp.NewToolResultText(string(jsonData)), nil
	}
}
