package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/modeyang/mcp-akshare-all/internal/services/mcp/dataset"
	"github.com/modeyang/mcp-akshare-all/internal/services/mcp/registry"
)

// TestNewConfiguresServer ensures New registers the whole catalog.
func TestNewConfiguresServer(t *testing.T) {
	server, _ := newTestServer(t)
	if server.mcpServer == nil {
		t.Fatal("expected configured MCP server")
	}
	if got := server.Registry().Len(); got != catalogSize {
		t.Fatalf("expected %d operations, got %d", catalogSize, got)
	}
	if server.Registry().MaxRows() != dataset.DefaultMaxRows {
		t.Fatalf("expected row cap %d, got %d", dataset.DefaultMaxRows, server.Registry().MaxRows())
	}
}

func TestNewRequiresProvider(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatal("expected error for nil provider")
	}
}

// TestNewServerRejectsDuplicateOperations ensures conflicting modules stop start-up.
func TestNewServerRejectsDuplicateOperations(t *testing.T) {
	fake := &fakeProvider{}
	modules := newMCPRegistrationModules(fake, time.Now)
	modules = append(modules, mcpRegistrationModule{
		name: "duplicate-operations",
		register: func(target mcpRegistrationTarget) error {
			return target.Register(registry.Operation{
				Name: "stock_sse_summary",
				Call: func(context.Context, registry.Args) (dataset.Result, error) {
					return dataset.Scalar(nil), nil
				},
			})
		},
	})

	_, err := newServer(modules)
	if err == nil {
		t.Fatal("expected duplicate registration error")
	}
	if !strings.Contains(err.Error(), `register MCP module "duplicate-operations"`) {
		t.Fatalf("expected module name in error, got %v", err)
	}
}

func TestListToolsDescribesParameters(t *testing.T) {
	server, _ := newTestServer(t)
	session := connectInMemory(t, server)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	result, err := session.ListTools(ctx, &mcp.ListToolsParams{})
	if err != nil {
		t.Fatalf("list tools: %v", err)
	}
	if len(result.Tools) != catalogSize {
		t.Fatalf("expected %d tools, got %d", catalogSize, len(result.Tools))
	}

	var summary *mcp.Tool
	for _, tool := range result.Tools {
		if tool.Name == "stock_szse_sector_summary" {
			summary = tool
		}
	}
	if summary == nil {
		t.Fatal("expected stock_szse_sector_summary tool")
	}
	if !strings.Contains(summary.Description, "深圳证券交易所") {
		t.Fatalf("expected source in description, got %q", summary.Description)
	}
	encoded, err := json.Marshal(summary.InputSchema)
	if err != nil {
		t.Fatalf("marshal schema: %v", err)
	}
	var schema struct {
		Type       string                    `json:"type"`
		Required   []string                  `json:"required"`
		Properties map[string]map[string]any `json:"properties"`
	}
	if err := json.Unmarshal(encoded, &schema); err != nil {
		t.Fatalf("decode schema: %v", err)
	}
	if schema.Type != "object" {
		t.Fatalf("expected object schema, got %q", schema.Type)
	}
	if strings.Join(schema.Required, ",") != "symbol,date" {
		t.Fatalf("unexpected required list %v", schema.Required)
	}
	if schema.Properties["symbol"]["type"] != "string" {
		t.Fatalf("expected string property, got %v", schema.Properties["symbol"])
	}
	if !strings.Contains(schema.Properties["symbol"]["description"].(string), "当月") {
		t.Fatalf("expected options in description, got %v", schema.Properties["symbol"]["description"])
	}
}

func TestCallToolTruncatesTable(t *testing.T) {
	server, _ := newTestServer(t)
	session := connectInMemory(t, server)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	result, err := session.CallTool(ctx, &mcp.CallToolParams{Name: "stock_zh_a_new_em"})
	if err != nil {
		t.Fatalf("call tool: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", textOf(t, result))
	}

	var records []map[string]any
	if err := json.Unmarshal([]byte(textOf(t, result)), &records); err != nil {
		t.Fatalf("decode text: %v", err)
	}
	if len(records) != dataset.DefaultMaxRows {
		t.Fatalf("expected %d records, got %d", dataset.DefaultMaxRows, len(records))
	}
	if records[0]["code"] != "000000" || records[49]["code"] != "000049" {
		t.Fatalf("unexpected head rows %v .. %v", records[0]["code"], records[49]["code"])
	}

	structured, ok := result.StructuredContent.(map[string]any)
	if !ok {
		t.Fatalf("expected structured object, got %T", result.StructuredContent)
	}
	rows, ok := structured["result"].([]any)
	if !ok || len(rows) != dataset.DefaultMaxRows {
		t.Fatalf("expected structured result rows, got %#v", structured["result"])
	}
}

func TestCallToolWrapsScalar(t *testing.T) {
	server, _ := newTestServer(t)
	session := connectInMemory(t, server)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "match_main_contract",
		Arguments: map[string]any{"symbol": "dce"},
	})
	if err != nil {
		t.Fatalf("call tool: %v", err)
	}
	if got := textOf(t, result); got != `{"main_contracts":"V2205,P2205"}` {
		t.Fatalf("unexpected text %s", got)
	}
	structured, ok := result.StructuredContent.(map[string]any)
	if !ok || structured["main_contracts"] != "V2205,P2205" {
		t.Fatalf("unexpected structured content %#v", result.StructuredContent)
	}
}

func TestCallToolReportsProviderError(t *testing.T) {
	server, _ := newTestServer(t)
	session := connectInMemory(t, server)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "stock_bid_ask_em",
		Arguments: map[string]any{"symbol": "000001"},
	})
	if err != nil {
		t.Fatalf("call tool: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected tool error")
	}
	if got := textOf(t, result); got != "PROVIDER_ERROR: symbol 000001 not supported" {
		t.Fatalf("unexpected error text %q", got)
	}
}

func TestToolHandlerRejectsInvalidArguments(t *testing.T) {
	server, fake := newTestServer(t)
	handler := server.toolHandler("stock_szse_summary")

	tests := []struct {
		name string
		args string
	}{
		{name: "missing", args: `{}`},
		{name: "empty", args: `{"date":""}`},
		{name: "number", args: `{"date":20200619}`},
		{name: "unknown", args: `{"date":"20200619","market":"sz"}`},
		{name: "not an object", args: `["20200619"]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := handler(context.Background(), &mcp.CallToolRequest{
				Params: &mcp.CallToolParamsRaw{Name: "stock_szse_summary", Arguments: json.RawMessage(tt.args)},
			})
			if err != nil {
				t.Fatalf("handler: %v", err)
			}
			if !result.IsError {
				t.Fatal("expected tool error")
			}
			if got := textOf(t, result); !strings.HasPrefix(got, "INVALID_PARAMETER: ") {
				t.Fatalf("unexpected error text %q", got)
			}
			structured := result.StructuredContent.(map[string]any)
			if body, ok := structured["error"].(errorBody); !ok || body.Code != "INVALID_PARAMETER" {
				t.Fatalf("unexpected structured error %#v", structured["error"])
			}
		})
	}
	if fake.calls.Load() != 0 {
		t.Fatalf("expected no provider calls, got %d", fake.calls.Load())
	}
}

func TestCallToolUnknownOperation(t *testing.T) {
	server, fake := newTestServer(t)
	session := connectInMemory(t, server)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "no_such_operation",
		Arguments: map[string]any{"symbol": "000001"},
	})
	if err != nil {
		t.Fatalf("call tool: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected tool error")
	}
	if got := textOf(t, result); !strings.HasPrefix(got, "OPERATION_NOT_FOUND: ") {
		t.Fatalf("unexpected error text %q", got)
	}
	if id, _ := result.Meta[invocationIDMetaKey].(string); id == "" {
		t.Fatal("expected invocation id in metadata")
	}
	if fake.calls.Load() != 0 {
		t.Fatalf("expected no provider calls, got %d", fake.calls.Load())
	}

	// Registered tools still take the normal path.
	result, err = session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "match_main_contract",
		Arguments: map[string]any{"symbol": "dce"},
	})
	if err != nil || result.IsError {
		t.Fatalf("call registered tool: %v %#v", err, result)
	}
}

func TestToolHandlerPassesOpaqueValues(t *testing.T) {
	server, _ := newTestServer(t)
	result, err := server.toolHandler("futures_global_spot_em")(context.Background(), &mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if result.IsError {
		t.Fatalf("opaque result must not fail: %s", textOf(t, result))
	}
	if got := textOf(t, result); got != `{"raw":["a","b"]}` {
		t.Fatalf("unexpected text %s", got)
	}
}

// TestServeWithTransportStopsOnCancel ensures the MCP session ends with its context.
func TestServeWithTransportStopsOnCancel(t *testing.T) {
	server, _ := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.serveWithTransport(ctx, serverTransport)
	}()

	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "v0.0.1"}, nil)
	clientCtx, clientCancel := context.WithTimeout(context.Background(), time.Second)
	defer clientCancel()
	session, err := client.Connect(clientCtx, clientTransport, nil)
	if err != nil {
		t.Fatalf("connect client: %v", err)
	}
	defer session.Close()

	cancel()

	select {
	case err := <-serveErr:
		if err != nil {
			t.Fatalf("serve returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop after cancel")
	}
}

func TestServeWithTransportRequiresServer(t *testing.T) {
	var server *Server
	if err := server.serveWithTransport(context.Background(), &mcp.StdioTransport{}); err == nil {
		t.Fatal("expected error for unconfigured server")
	}
}

// TestRunUnsupportedTransport ensures Run rejects unknown transport kinds.
func TestRunUnsupportedTransport(t *testing.T) {
	err := Run(context.Background(), Config{Transport: "websocket"})
	if err == nil {
		t.Fatal("expected error for unsupported transport")
	}
	if !strings.Contains(err.Error(), "not supported") {
		t.Errorf("expected 'not supported' in error, got: %v", err)
	}
}

func TestRunRejectsInvalidProviderURL(t *testing.T) {
	err := Run(context.Background(), Config{Transport: TransportStdio, ProviderURL: "ftp://example.com"})
	if err == nil {
		t.Fatal("expected provider url error")
	}
}
