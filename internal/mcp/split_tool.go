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

// splitRequest are the arguments of the monosplit_split tool.
type splitRequest struct {
	Path      string `json:"path"`
	OutputDir string `json:"output_dir,omitempty"`
	DryRun    bool   `json:"dry_run,omitempty"`
	Strict    bool   `json:"strict,omitempty"`
}

// splitResponse is the JSON payload returned by the split tool.
type splitResponse struct {
	DryRun    bool             `json:"dry_run,omitempty"`
	OutputDir string           `json:"output_dir,omitempty"`
	Written   []string         `json:"written,omitempty"`
	Result    *splitter.Result `json:"result"`
}

// AddSplitTool registers the monosplit_split tool with an MCP server.
// This function is composable - it can be combined with other tool registrations.
func AddSplitTool(s *server.MCPServer, logger *zap.Logger) {
	tool := mcp.NewTool(
		"monosplit_split",
		mcp.WithDescription("Split a marker-annotated Python file into a package. Plans one artifact per `# pragma: newfile(\"...\")` segment with re-derived imports and cross-segment references, plus an __init__.py facade and, when the file has a main block, a runnable __main__.py. Installs the artifacts unless dry_run is set."),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the annotated Python source file")),
		mcp.WithString("output_dir",
			mcp.Description("Destination directory (default: a directory named after the file's stem, next to it)")),
		mcp.WithBoolean("dry_run",
			mcp.Description("Plan only; nothing is written")),
		mcp.WithBoolean("strict",
			mcp.Description("Fail when any diagnostic is reported")),
	)

	s.AddTool(tool, createSplitHandler(logger))
}

// createSplitHandler creates the handler function for the split tool.
func createSplitHandler(logger *zap.Logger) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var req splitRequest
		if err := mcputils.CoerceBindArguments(request, &req); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
		}

		// Validate required fields (to provide clear error messages)
		if req.Path == "" {
			return mcp.NewToolResultError("path parameter is required"), nil
		}

		source, err := os.ReadFile(req.Path)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("cannot read %s: %v", req.Path, err)), nil
		}

		res, err := splitter.SplitWithLogger(source, splitter.Options{Strict: req.Strict}, logger)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		response := &splitResponse{
			DryRun: req.DryRun,
			Result: res,
		}

		if !req.DryRun {
			dir := req.OutputDir
			if dir == "" {
				dir = splitter.DeriveOutputDir(req.Path)
			}
			writer, err := splitter.NewAtomicWriter(dir)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			if err := writer.WriteArtifacts(res.Artifacts, nil); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			response.OutputDir = dir
			for _, a := range res.Artifacts {
				response.Written = append(response.Written, a.Name)
			}
		}

		// Marshal to JSON
		jsonData, err := json.Marshal(response)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response: %w", err)
		}

		// Return as text result (mcp-go convention)
		return mcp.NewToolResultText(string(jsonData)), nil
	}
}
