package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/modeyang/mcp-akshare-all/internal/services/mcp/dataset"
	"github.com/modeyang/mcp-akshare-all/internal/services/mcp/provider"
)

// catalogSize is the clock operation plus the stock and futures catalogs.
const catalogSize = 40

// fakeProvider answers a few functions with fixed shapes and counts calls.
type fakeProvider struct {
	calls atomic.Int32
}

func (f *fakeProvider) Fetch(_ context.Context, function string, params map[string]string) (dataset.Result, error) {
	f.calls.Add(1)
	switch function {
	case "stock_zh_a_new_em":
		rows := make([][]any, 120)
		for i := range rows {
			rows[i] = []any{fmt.Sprintf("%06d", i), fmt.Sprintf("name-%d", i), float64(i) + 0.5}
		}
		return dataset.Tabular([]string{"code", "name", "price"}, rows), nil
	case "stock_bid_ask_em":
		return dataset.Result{}, &provider.Error{Function: function, StatusCode: 500, Message: "symbol " + params["symbol"] + " not supported"}
	case "match_main_contract":
		return dataset.Scalar("V2205,P2205"), nil
	case "futures_global_spot_em":
		return dataset.Opaque(map[string]any{"raw": []any{"a", "b"}}), nil
	default:
		return dataset.Tabular([]string{"function"}, [][]any{{function}}), nil
	}
}

func newTestServer(t *testing.T) (*Server, *fakeProvider) {
	t.Helper()
	fake := &fakeProvider{}
	server, err := New(fake)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return server, fake
}

// connectInMemory serves server on an in-memory transport and returns a
// connected client session.
func connectInMemory(t *testing.T, server *Server) *mcp.ClientSession {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.serveWithTransport(ctx, serverTransport)
	}()

	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "v0.0.1"}, nil)
	clientCtx, clientCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer clientCancel()
	session, err := client.Connect(clientCtx, clientTransport, nil)
	if err != nil {
		cancel()
		t.Fatalf("connect client: %v", err)
	}
	t.Cleanup(func() {
		_ = session.Close()
		cancel()
		select {
		case <-serveErr:
		case <-time.After(2 * time.Second):
			t.Error("server did not stop after cancel")
		}
	})
	return session
}

func textOf(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil || len(result.Content) != 1 {
		t.Fatalf("expected one content item, got %#v", result)
	}
	text, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", result.Content[0])
	}
	return text.Text
}
