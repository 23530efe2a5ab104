// Package mcp exposes the splitter over the Model Context Protocol:
// a stdio server with one tool that plans and installs a split and one
// that only reports the plan.
package mcp

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

// Server manages the MCP server lifecycle.
type Server struct {
	logger *zap.Logger
	mcp    *server.MCPServer
}

// NewServer creates an MCP server with the split and inspect tools
// registered.
func NewServer(version string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	mcpServer := server.NewMCPServer(
		"monosplit-mcp",
		version,
		server.WithToolCapabilities(true),
	)

	AddSplitTool(mcpServer, logger)
	AddInspectTool(mcpServer, logger)

	return &Server{
		logger: logger,
		mcp:    mcpServer,
	}
}

// Serve starts the MCP server on stdio and blocks until shutdown.
func (s *Server) Serve(ctx context.Context) error {
	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	// Start MCP server in goroutine
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting MCP server on stdio")
		if err := server.ServeStdio(s.mcp); err != nil {
			errCh <- fmt.Errorf("MCP server error: %w", err)
		}
	}()

	// Wait for shutdown signal or error
	select {
	case <-sigCh:
		s.logger.Info("received shutdown signal, stopping")
		return nil
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
