package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/modeyang/mcp-akshare-all/internal/platform/timeouts"
)

var listenTCP = net.Listen

const (
	// streamablePath serves the streamable HTTP transport.
	streamablePath = "/mcp"
	// ssePath serves the legacy SSE transport.
	ssePath = "/sse"
	// defaultRateBurst applies when a rate limit is set without a burst.
	defaultRateBurst = 10
)

// HTTPTransport serves one MCP server over HTTP next to the operations API.
// Every request except the health probe passes the host allowlist, the
// optional bearer token and the optional rate limit.
type HTTPTransport struct {
	addr         string
	kind         TransportKind
	allowedHosts map[string]struct{}
	server       *Server
	apiToken     string
	limiter      *rate.Limiter
}

// NewHTTPTransport creates an HTTP transport for server. It defaults to a
// loopback address and the streamable transport.
func NewHTTPTransport(addr string, server *Server) *HTTPTransport {
	if addr == "" {
		addr = DefaultHTTPAddr
	}
	return &HTTPTransport{
		addr:         addr,
		kind:         TransportHTTP,
		allowedHosts: map[string]struct{}{},
		server:       server,
	}
}

func (t *HTTPTransport) applyConfig(cfg Config) {
	if t == nil {
		return
	}
	if cfg.Transport == TransportSSE {
		t.kind = TransportSSE
	}
	t.allowedHosts = parseAllowedHosts(cfg.AllowedHosts)
	t.apiToken = strings.TrimSpace(cfg.AuthToken)
	t.limiter = nil
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst <= 0 {
			burst = defaultRateBurst
		}
		t.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
}

// Handler returns the instrumented HTTP handler for all routes.
func (t *HTTPTransport) Handler() http.Handler {
	getServer := func(*http.Request) *mcp.Server {
		return t.server.mcpServer
	}

	mux := http.NewServeMux()
	switch t.kind {
	case TransportSSE:
		mux.Handle(ssePath, t.guard(mcp.NewSSEHandler(getServer, nil)))
	default:
		mux.Handle(streamablePath, t.guard(mcp.NewStreamableHTTPHandler(getServer, nil)))
	}
	mux.HandleFunc("/mcp/health", t.handleHealth)
	mux.Handle("GET /operations", t.guard(http.HandlerFunc(t.handleListOperations)))
	mux.Handle("GET /operations/{name}", t.guard(http.HandlerFunc(t.handleGetOperation)))
	mux.Handle("POST /operations/{name}", t.guard(http.HandlerFunc(t.handleInvokeOperation)))

	return otelhttp.NewHandler(mux, "akshare-mcp")
}

// guard applies host validation, authorization and rate limiting.
func (t *HTTPTransport) guard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := t.validateLocalRequest(r); err != nil {
			http.Error(w, err.Error(), http.StatusForbidden)
			return
		}
		if !t.authorizeRequest(w, r) {
			return
		}
		if t.limiter != nil && !t.limiter.Allow() {
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Start serves until ctx ends, then shuts down gracefully.
func (t *HTTPTransport) Start(ctx context.Context) error {
	listener, err := listenTCP("tcp", t.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", t.addr, err)
	}
	return t.serve(ctx, listener)
}

func (t *HTTPTransport) serve(ctx context.Context, listener net.Listener) error {
	httpServer := &http.Server{
		Handler:           t.Handler(),
		ReadHeaderTimeout: timeouts.ReadHeader,
	}
	log.Printf("Starting MCP HTTP server on %s (transport=%s)", listener.Addr(), t.kind)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		log.Printf("Shutting down MCP HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown HTTP server: %w", err)
		}
		return nil
	})
	return group.Wait()
}
