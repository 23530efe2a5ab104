package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/monosplit/internal/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for splitting annotated files",
	Long: `Start the Model Context Protocol (MCP) server that lets LLM-powered
coding assistants plan and perform splits of annotated Python files.

The MCP server:
- Exposes monosplit_split for performing (or dry-running) a split
- Exposes monosplit_inspect for examining a split plan
- Communicates via stdio (standard MCP transport)

Example:
  monosplit mcp`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	// Startup banner on stderr; stdout belongs to the MCP transport.
	fmt.Fprintf(os.Stderr, "Monosplit MCP Server\n\n")

	server := mcp.NewServer(Version, logger)
	if err := server.Serve(context.Background()); err != nil {
		return fmt.Errorf("MCP server error: %w", err)
	}
	return nil
}
