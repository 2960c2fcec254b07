// Package provider fetches raw datasets from the upstream financial-data
// service. The provider is opaque: it is never retried and its results are
// never cached here.
package provider

import (
	"context"
	"fmt"

	"github.com/modeyang/mcp-akshare-all/internal/services/mcp/dataset"
)

// Provider fetches one dataset by upstream function name.
type Provider interface {
	Fetch(ctx context.Context, function string, params map[string]string) (dataset.Result, error)
}

// Func adapts a function to Provider.
type Func func(ctx context.Context, function string, params map[string]string) (dataset.Result, error)

// Fetch calls f.
func (f Func) Fetch(ctx context.Context, function string, params map[string]string) (dataset.Result, error) {
	return f(ctx, function, params)
}

// Error is a failure reported by the provider itself.
type Error struct {
	Function   string
	StatusCode int
	// Message is the provider's own failure text.
	Message string
}

// Error returns the provider message verbatim when it has one.
func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("provider function %s failed with status %d", e.Function, e.StatusCode)
}
