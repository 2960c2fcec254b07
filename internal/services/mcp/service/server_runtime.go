package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/modeyang/mcp-akshare-all/internal/services/mcp/provider"
)

// Run is the service entrypoint for MCP and blocks until context cancellation.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Transport == "" {
		cfg.Transport = TransportHTTP
	}
	switch cfg.Transport {
	case TransportStdio, TransportHTTP, TransportSSE:
	default:
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}

	providerURL := strings.TrimSpace(cfg.ProviderURL)
	if providerURL == "" {
		providerURL = DefaultProviderURL
	}
	client, err := provider.NewClient(providerURL)
	if err != nil {
		return err
	}
	server, err := New(client)
	if err != nil {
		return err
	}
	log.Printf("serving %d operations from provider %s", server.registry.Len(), client.BaseURL())

	if cfg.Transport == TransportStdio {
		return server.serveWithTransport(ctx, &mcp.StdioTransport{})
	}
	return server.serveHTTP(ctx, cfg)
}

// serveHTTP serves s over the configured HTTP transport.
func (s *Server) serveHTTP(ctx context.Context, cfg Config) error {
	httpAddr := cfg.HTTPAddr
	if httpAddr == "" {
		httpAddr = DefaultHTTPAddr
	}
	transport := NewHTTPTransport(httpAddr, s)
	transport.applyConfig(cfg)
	return transport.Start(ctx)
}

// serveWithTransport runs the MCP session until the peer disconnects or ctx ends.
func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}
