package service

import (
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel"

	"github.com/modeyang/mcp-akshare-all/internal/platform/branding"
	"github.com/modeyang/mcp-akshare-all/internal/services/mcp/dataset"
	"github.com/modeyang/mcp-akshare-all/internal/services/mcp/provider"
	"github.com/modeyang/mcp-akshare-all/internal/services/mcp/registry"
)

const (
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"

	// DefaultProviderURL is the local AKTools address.
	DefaultProviderURL = "http://127.0.0.1:8080"
	// DefaultHTTPAddr keeps HTTP listeners on loopback unless configured.
	DefaultHTTPAddr = "localhost:9000"
)

// serverName identifies this MCP server to clients.
const serverName = branding.ServerTitle

// TransportKind identifies the MCP transport implementation.
type TransportKind string

const (
	// TransportStdio uses standard input/output for MCP.
	TransportStdio TransportKind = "stdio"
	// TransportHTTP serves streamable HTTP at /mcp.
	TransportHTTP TransportKind = "http"
	// TransportSSE serves the legacy SSE transport at /sse.
	TransportSSE TransportKind = "sse"
)

// Config configures the MCP server.
type Config struct {
	ProviderURL string
	Transport   TransportKind
	HTTPAddr    string
	// AllowedHosts extends the loopback-only Host/Origin allowlist.
	AllowedHosts []string
	// AuthToken, when set, is required as a bearer token on HTTP requests.
	AuthToken string
	// RateLimit is the allowed HTTP requests per second; zero disables it.
	RateLimit float64
	RateBurst int
}

// Server hosts the MCP server.
type Server struct {
	mcpServer *mcp.Server
	registry  *registry.Registry
	telemetry *invocationTelemetry
}

// New creates an MCP server whose operations fetch through p.
func New(p provider.Provider) (*Server, error) {
	if p == nil {
		return nil, fmt.Errorf("provider is required")
	}
	return newServer(newMCPRegistrationModules(p, time.Now))
}

// newServer registers every module into one registry and exposes each
// operation as a tool.
func newServer(modules []mcpRegistrationModule) (*Server, error) {
	builder := registry.NewBuilder(dataset.NewNormalizer(dataset.DefaultMaxRows))
	for _, module := range modules {
		if err := module.register(builder); err != nil {
			return nil, fmt.Errorf("register MCP module %q: %w", module.name, err)
		}
	}
	reg := builder.Build()

	telemetry, err := newInvocationTelemetry(otel.GetTracerProvider(), otel.GetMeterProvider())
	if err != nil {
		return nil, err
	}
	server := &Server{
		mcpServer: mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil),
		registry:  reg,
		telemetry: telemetry,
	}
	for _, op := range reg.Operations() {
		server.mcpServer.AddTool(toolFor(op), server.toolHandler(op.Name))
	}
	server.mcpServer.AddReceivingMiddleware(server.routeUnknownTools)
	return server, nil
}

// Registry returns the operations served by s.
func (s *Server) Registry() *registry.Registry {
	return s.registry
}
