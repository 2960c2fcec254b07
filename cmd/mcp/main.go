package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	mcpcmd "github.com/modeyang/mcp-akshare-all/internal/cmd/mcp"
	"github.com/modeyang/mcp-akshare-all/internal/platform/config"
)

// main starts the akshare MCP gateway on stdio, streamable HTTP or SSE.
func main() {
	log.SetPrefix("[MCP] ")
	cfg, err := mcpcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		config.Exitf("akshare-mcp: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := mcpcmd.Run(ctx, cfg); err != nil {
		log.Fatalf("failed to serve MCP: %v", err)
	}
}
