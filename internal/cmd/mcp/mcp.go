// Package mcp parses gateway command configuration and starts the selected
// transport.
package mcp

import (
	"context"
	"flag"

	entrypoint "github.com/modeyang/mcp-akshare-all/internal/platform/cmd"
	"github.com/modeyang/mcp-akshare-all/internal/services/mcp/service"
)

// Config holds MCP command configuration.
type Config struct {
	ProviderURL  string   `env:"AKSHARE_MCP_PROVIDER_URL"  envDefault:"http://127.0.0.1:8080"`
	Transport    string   `env:"AKSHARE_MCP_TRANSPORT"     envDefault:"http"`
	HTTPAddr     string   `env:"AKSHARE_MCP_HTTP_ADDR"     envDefault:"localhost:9000"`
	AllowedHosts []string `env:"AKSHARE_MCP_ALLOWED_HOSTS" envSeparator:","`
	AuthToken    string   `env:"AKSHARE_MCP_AUTH_TOKEN"`
	RateLimit    float64  `env:"AKSHARE_MCP_RATE_LIMIT"    envDefault:"0"`
	RateBurst    int      `env:"AKSHARE_MCP_RATE_BURST"    envDefault:"10"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.ProviderURL, "provider-url", cfg.ProviderURL, "AKTools-compatible provider base URL")
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio, http or sse")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP server address (for http and sse transports)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ServiceConfig maps command configuration onto the service.
func (c Config) ServiceConfig() service.Config {
	return service.Config{
		ProviderURL:  c.ProviderURL,
		Transport:    service.TransportKind(c.Transport),
		HTTPAddr:     c.HTTPAddr,
		AllowedHosts: c.AllowedHosts,
		AuthToken:    c.AuthToken,
		RateLimit:    c.RateLimit,
		RateBurst:    c.RateBurst,
	}
}

// Run starts the MCP gateway with telemetry configured.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceMCP, func(ctx context.Context) error {
		return service.Run(ctx, cfg.ServiceConfig())
	})
}
