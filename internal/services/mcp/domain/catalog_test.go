package domain

import (
	"context"
	"testing"
	"time"

	"github.com/modeyang/mcp-akshare-all/internal/services/mcp/dataset"
	"github.com/modeyang/mcp-akshare-all/internal/services/mcp/provider"
	"github.com/modeyang/mcp-akshare-all/internal/services/mcp/registry"
)

type recordedFetch struct {
	function string
	params   map[string]string
}

func recordingProvider(calls *[]recordedFetch, result dataset.Result) provider.Provider {
	return provider.Func(func(_ context.Context, function string, params map[string]string) (dataset.Result, error) {
		*calls = append(*calls, recordedFetch{function: function, params: params})
		return result, nil
	})
}

func buildCatalog(t *testing.T, p provider.Provider) *registry.Registry {
	t.Helper()
	builder := registry.NewBuilder(dataset.NewNormalizer(dataset.DefaultMaxRows))
	groups := [][]registry.Operation{
		ClockOperations(nil),
		StockOperations(p),
		FuturesOperations(p),
	}
	for _, group := range groups {
		for _, op := range group {
			if err := builder.Register(op); err != nil {
				t.Fatalf("register %q: %v", op.Name, err)
			}
		}
	}
	return builder.Build()
}

func TestCatalogRegistersWithoutConflicts(t *testing.T) {
	reg := buildCatalog(t, provider.Func(func(context.Context, string, map[string]string) (dataset.Result, error) {
		return dataset.Result{}, nil
	}))
	want := 1 + len(StockDefinitions()) + len(FuturesDefinitions())
	if reg.Len() != want {
		t.Fatalf("expected %d operations, got %d", want, reg.Len())
	}
	for _, op := range reg.Operations() {
		if op.Summary == "" || op.Source == "" {
			t.Errorf("operation %q is missing summary or source", op.Name)
		}
	}
}

func TestCatalogIncludesKnownOperations(t *testing.T) {
	var calls []recordedFetch
	reg := buildCatalog(t, recordingProvider(&calls, dataset.Tabular(nil, nil)))
	for _, name := range []string{
		"get_current_time",
		"stock_trade_date_hist",
		"stock_hot_search_baidu",
		"stock_us_spot_em",
		"futures_zh_spot",
		"match_main_contract",
		"futures_news_shmet",
	} {
		if _, ok := reg.Lookup(name); !ok {
			t.Errorf("expected operation %q", name)
		}
	}
}

func TestTradeDateHistCallsSinaCalendar(t *testing.T) {
	var calls []recordedFetch
	reg := buildCatalog(t, recordingProvider(&calls, dataset.Tabular([]string{"trade_date"}, [][]any{{"1990-12-19"}})))

	if _, err := reg.Invoke(context.Background(), "stock_trade_date_hist", nil); err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if len(calls) != 1 || calls[0].function != "tool_trade_date_hist_sina" {
		t.Fatalf("unexpected provider calls: %+v", calls)
	}
}

func TestOptionalDefaultsReachProvider(t *testing.T) {
	tests := []struct {
		operation string
		args      map[string]any
		want      map[string]string
	}{
		{
			operation: "futures_zh_spot",
			args:      map[string]any{"symbol": "V2205"},
			want:      map[string]string{"symbol": "V2205", "market": "CF", "adjust": "0"},
		},
		{
			operation: "futures_comm_info",
			args:      nil,
			want:      map[string]string{"symbol": "所有"},
		},
		{
			operation: "stock_hk_hist_min_em",
			args:      map[string]any{"symbol": "01611", "period": "15"},
			want: map[string]string{
				"symbol":     "01611",
				"period":     "15",
				"adjust":     "",
				"start_date": "1979-09-01 09:32:00",
				"end_date":   "2222-01-01 09:32:00",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.operation, func(t *testing.T) {
			var calls []recordedFetch
			reg := buildCatalog(t, recordingProvider(&calls, dataset.Tabular(nil, nil)))
			if _, err := reg.Invoke(context.Background(), tt.operation, tt.args); err != nil {
				t.Fatalf("invoke: %v", err)
			}
			if len(calls) != 1 {
				t.Fatalf("expected one provider call, got %d", len(calls))
			}
			got := calls[0].params
			if len(got) != len(tt.want) {
				t.Fatalf("params = %v, want %v", got, tt.want)
			}
			for name, value := range tt.want {
				if got[name] != value {
					t.Fatalf("param %q = %q, want %q", name, got[name], value)
				}
			}
		})
	}
}

func TestMatchMainContractWrapsScalar(t *testing.T) {
	var calls []recordedFetch
	reg := buildCatalog(t, recordingProvider(&calls, dataset.Scalar("V2205,P2205")))

	got, err := reg.Invoke(context.Background(), "match_main_contract", map[string]any{"symbol": "dce"})
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}
	mapping, ok := got.Value.(map[string]any)
	if !ok || mapping["main_contracts"] != "V2205,P2205" {
		t.Fatalf("unexpected value %#v", got.Value)
	}
}

func TestCurrentTimeIsLocal(t *testing.T) {
	fixed := time.Date(2025, 3, 14, 9, 30, 5, 0, time.Local)
	builder := registry.NewBuilder(dataset.NewNormalizer(0))
	for _, op := range ClockOperations(func() time.Time { return fixed }) {
		if err := builder.Register(op); err != nil {
			t.Fatalf("register: %v", err)
		}
	}
	got, err := builder.Build().Invoke(context.Background(), "get_current_time", nil)
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}
	mapping, ok := got.Value.(map[string]any)
	if !ok || mapping["current_time"] != "2025-03-14 09:30:05" {
		t.Fatalf("unexpected value %#v", got.Value)
	}
	if got.Fallback {
		t.Fatal("clock result must not be a fallback")
	}
}

func TestDefinitionProviderFunction(t *testing.T) {
	if got := (Definition{Name: "stock_sse_summary"}).ProviderFunction(); got != "stock_sse_summary" {
		t.Fatalf("unexpected function %q", got)
	}
	if got := (Definition{Name: "a", Function: "b"}).ProviderFunction(); got != "b" {
		t.Fatalf("unexpected function %q", got)
	}
}
