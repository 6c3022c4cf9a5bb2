package mcp

import (
	"context"
	"fmt"

	mcp "github.com/metoro-io/mcp-golang"
	"github.com/metoro-io/mcp-golang/transport/stdio"

	"text-editor-server/internal/log"
	"text-editor-server/internal/service"
)

// Server wraps an mcp-golang server speaking MCP over stdio. It exposes one
// tool per service operation, the guided prompts, and the text:// line
// range resource.
type Server struct {
	svc    service.TextEditingService
	logger log.Logger
	server *mcp.Server
}

// NewServer creates the MCP server and registers every tool, prompt and
// resource.
func NewServer(svc service.TextEditingService, logger log.Logger) (*Server, error) {
	transport := stdio.NewStdioServerTransport()
	mcpSrv := mcp.NewServer(transport)

	if err := registerTools(mcpSrv, svc); err != nil {
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}
	if err := registerPrompts(mcpSrv); err != nil {
		return nil, fmt.Errorf("failed to register prompts: %w", err)
	}
	if err := registerResources(mcpSrv, svc); err != nil {
		return nil, fmt.Errorf("failed to register resources: %w", err)
	}

	return &Server{
		svc:    svc,
		logger: logger,
		server: mcpSrv,
	}, nil
}

// Run serves MCP over stdio until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	go func() {
		if err := s.server.Serve(); err != nil {
			s.logger.Error("mcp server error", "error", err)
		}
	}()

	<-ctx.Done()
	return nil
}
