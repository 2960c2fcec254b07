package domain

import (
	"context"

	"github.com/modeyang/mcp-akshare-all/internal/services/mcp/dataset"
	"github.com/modeyang/mcp-akshare-all/internal/services/mcp/provider"
	"github.com/modeyang/mcp-akshare-all/internal/services/mcp/registry"
)

// Definition describes a provider-backed operation.
type Definition struct {
	Name string
	// Function is the upstream function name; empty means Name.
	Function string
	Summary  string
	Source   string
	Params   []registry.Param
	WrapKey  string
}

// ProviderFunction returns the upstream function the definition calls.
func (d Definition) ProviderFunction() string {
	if d.Function != "" {
		return d.Function
	}
	return d.Name
}

// Operation binds the definition to p.
func (d Definition) Operation(p provider.Provider) registry.Operation {
	function := d.ProviderFunction()
	return registry.Operation{
		Name:    d.Name,
		Summary: d.Summary,
		Source:  d.Source,
		Params:  d.Params,
		WrapKey: d.WrapKey,
		Call: func(ctx context.Context, args registry.Args) (dataset.Result, error) {
			return p.Fetch(ctx, function, args)
		},
	}
}

// Operations binds every definition to p, preserving order.
func Operations(p provider.Provider, definitions []Definition) []registry.Operation {
	ops := make([]registry.Operation, 0, len(definitions))
	for _, definition := range definitions {
		ops = append(ops, definition.Operation(p))
	}
	return ops
}

func required(name, description string, options ...string) registry.Param {
	return registry.Param{Name: name, Description: description, Options: options}
}

func optional(name, description, defaultValue string, options ...string) registry.Param {
	return registry.Param{Name: name, Description: description, Default: defaultValue, Optional: true, Options: options}
}
