// Package mcpserver exposes the meeting service as MCP tools over stdio.
package mcpserver

import (
	"context"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/nguyentantai21042004/recap-flow/internal/logger"
	"github.com/nguyentantai21042004/recap-flow/internal/meeting"
)

// Server serves the tools until ctx is done or stdin closes.
type Server interface {
	Serve(ctx context.Context) error
}

type implServer struct {
	mcp      *server.MCPServer
	meetings meeting.Service
	logger   logger.Logger
}

func New(meetings meeting.Service, log logger.Logger, version string) Server {
	s := &implServer{
		mcp:      server.NewMCPServer("recap-flow", version, server.WithToolCapabilities(false), server.WithRecovery()),
		meetings: meetings,
		logger:   log,
	}
	s.registerTools()
	return s
}

func (s *implServer) Serve(ctx context.Context) error {
	s.logger.Info(ctx, "MCP server listening on stdio")
	return server.NewStdioServer(s.mcp).Listen(ctx, os.Stdin, os.Stdout)
}
