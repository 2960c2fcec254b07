package registry

import (
	"context"
	"fmt"
	"slices"
	"strings"

	apperrors "github.com/modeyang/mcp-akshare-all/internal/platform/errors"
	"github.com/modeyang/mcp-akshare-all/internal/services/mcp/dataset"
)

// Call performs the provider request for one invocation.
type Call func(ctx context.Context, args Args) (dataset.Result, error)

// Operation is one named, invocable data operation.
type Operation struct {
	Name    string
	Summary string
	// Source is the informational upstream attribution.
	Source string
	Params []Param
	// WrapKey wraps scalar results as {WrapKey: value}.
	WrapKey string
	Call    Call
}

// Param returns the declared parameter with the given name.
func (o Operation) Param(name string) (Param, bool) {
	for _, param := range o.Params {
		if param.Name == name {
			return param, true
		}
	}
	return Param{}, false
}

// Description combines the summary and source attribution.
func (o Operation) Description() string {
	if o.Source == "" {
		return o.Summary
	}
	return fmt.Sprintf("%s (source: %s)", o.Summary, o.Source)
}

// clone copies op deeply enough that callers cannot change the catalog
// through Params or Options.
func (o Operation) clone() Operation {
	if o.Params == nil {
		return o
	}
	params := make([]Param, len(o.Params))
	for i, param := range o.Params {
		param.Options = slices.Clone(param.Options)
		params[i] = param
	}
	o.Params = params
	return o
}

// Builder collects operations before the registry is sealed.
type Builder struct {
	normalizer dataset.Normalizer
	operations []Operation
	index      map[string]int
}

// NewBuilder returns a builder whose registry normalizes with normalizer.
func NewBuilder(normalizer dataset.Normalizer) *Builder {
	return &Builder{normalizer: normalizer, index: make(map[string]int)}
}

// Register adds op. Names must be unique across the registry and parameter
// names unique within op.
func (b *Builder) Register(op Operation) error {
	if strings.TrimSpace(op.Name) == "" {
		return fmt.Errorf("operation name is required")
	}
	if op.Call == nil {
		return fmt.Errorf("operation %q: call is required", op.Name)
	}
	if _, exists := b.index[op.Name]; exists {
		return fmt.Errorf("operation %q is already registered", op.Name)
	}
	seen := make(map[string]struct{}, len(op.Params))
	for _, param := range op.Params {
		if strings.TrimSpace(param.Name) == "" {
			return fmt.Errorf("operation %q: parameter name is required", op.Name)
		}
		if _, dup := seen[param.Name]; dup {
			return fmt.Errorf("operation %q: duplicate parameter %q", op.Name, param.Name)
		}
		seen[param.Name] = struct{}{}
	}
	op = op.clone()
	b.index[op.Name] = len(b.operations)
	b.operations = append(b.operations, op)
	return nil
}

// Build seals the collected operations into a read-only registry. The builder
// should not be reused afterwards.
func (b *Builder) Build() *Registry {
	operations := append([]Operation(nil), b.operations...)
	index := make(map[string]int, len(b.index))
	for name, i := range b.index {
		index[name] = i
	}
	return &Registry{normalizer: b.normalizer, operations: operations, index: index}
}

// Registry is the immutable operation catalog.
type Registry struct {
	normalizer dataset.Normalizer
	operations []Operation
	index      map[string]int
}

// Operations returns copies of the operations in registration order.
func (r *Registry) Operations() []Operation {
	out := make([]Operation, len(r.operations))
	for i, op := range r.operations {
		out[i] = op.clone()
	}
	return out
}

// Lookup returns a copy of the named operation.
func (r *Registry) Lookup(name string) (Operation, bool) {
	i, ok := r.index[name]
	if !ok {
		return Operation{}, false
	}
	return r.operations[i].clone(), true
}

// Len returns the number of registered operations.
func (r *Registry) Len() int {
	return len(r.operations)
}

// MaxRows reports the row cap applied to tabular results.
func (r *Registry) MaxRows() int {
	return r.normalizer.Limit()
}

// Invoke runs the named operation with args decoded from a transport.
// Failures are *errors.Error values coded OPERATION_NOT_FOUND,
// INVALID_PARAMETER or PROVIDER_ERROR.
func (r *Registry) Invoke(ctx context.Context, name string, args map[string]any) (dataset.Normalized, error) {
	op, ok := r.Lookup(name)
	if !ok {
		return dataset.Normalized{}, apperrors.WithMetadata(
			apperrors.CodeOperationNotFound,
			fmt.Sprintf("operation %q not found", name),
			map[string]string{"operation": name},
		)
	}
	resolved, err := resolveArgs(op, args)
	if err != nil {
		return dataset.Normalized{}, err
	}
	raw, err := op.Call(ctx, resolved)
	if err != nil {
		return dataset.Normalized{}, apperrors.WrapWithMetadata(
			apperrors.CodeProviderError,
			err.Error(),
			map[string]string{"operation": name},
			err,
		)
	}
	return r.normalizer.Normalize(raw, op.WrapKey), nil
}

func resolveArgs(op Operation, args map[string]any) (Args, error) {
	for name := range args {
		if _, ok := op.Param(name); !ok {
			return nil, invalidParameter(op.Name, name, fmt.Sprintf("unknown parameter %q", name))
		}
	}
	resolved := make(Args, len(op.Params))
	for _, param := range op.Params {
		raw, present := args[param.Name]
		if !present || raw == nil {
			if param.Required() {
				return nil, invalidParameter(op.Name, param.Name, fmt.Sprintf("missing required parameter %q", param.Name))
			}
			resolved[param.Name] = param.Default
			continue
		}
		value, ok := raw.(string)
		if !ok {
			return nil, invalidParameter(op.Name, param.Name, fmt.Sprintf("parameter %q must be a string, got %T", param.Name, raw))
		}
		if param.Required() && strings.TrimSpace(value) == "" {
			return nil, invalidParameter(op.Name, param.Name, fmt.Sprintf("parameter %q must not be empty", param.Name))
		}
		resolved[param.Name] = value
	}
	return resolved, nil
}

func invalidParameter(operation, param, message string) error {
	return apperrors.WithMetadata(apperrors.CodeInvalidParameter, message, map[string]string{
		"operation": operation,
		"parameter": param,
	})
}
