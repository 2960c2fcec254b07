package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	apperrors "github.com/modeyang/mcp-akshare-all/internal/platform/errors"
	"github.com/modeyang/mcp-akshare-all/internal/services/mcp/dataset"
	"github.com/modeyang/mcp-akshare-all/internal/services/mcp/registry"
)

const (
	// invocationIDMetaKey carries the invocation id in tool result metadata.
	invocationIDMetaKey = "invocation_id"
	methodCallTool      = "tools/call"
)

// toolFor describes op as an MCP tool with string parameters.
func toolFor(op registry.Operation) *mcp.Tool {
	schema := &jsonschema.Schema{
		Type:                 "object",
		Properties:           make(map[string]*jsonschema.Schema, len(op.Params)),
		AdditionalProperties: &jsonschema.Schema{Not: &jsonschema.Schema{}},
	}
	for _, param := range op.Params {
		property := &jsonschema.Schema{
			Type:        "string",
			Description: param.Help(),
		}
		if param.Optional {
			if encoded, err := json.Marshal(param.Default); err == nil {
				property.Default = encoded
			}
		} else {
			schema.Required = append(schema.Required, param.Name)
		}
		schema.Properties[param.Name] = property
	}
	return &mcp.Tool{
		Name:        op.Name,
		Description: op.Description(),
		InputSchema: schema,
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}
}

// toolHandler invokes the named operation. Failures are reported in the tool
// result so clients can read the error code.
func (s *Server) toolHandler(name string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var raw json.RawMessage
		if req != nil && req.Params != nil {
			raw = req.Params.Arguments
		}
		args, err := decodeArguments(raw)
		if err != nil {
			return errorResult(err, ""), nil
		}
		call, err := s.invoke(ctx, name, args)
		if err != nil {
			return errorResult(err, call.ID), nil
		}
		return successResult(call.Result, call.ID)
	}
}

// routeUnknownTools sends tools/call requests for unregistered names through
// invoke, so clients get an OPERATION_NOT_FOUND tool result instead of a
// protocol error.
func (s *Server) routeUnknownTools(next mcp.MethodHandler) mcp.MethodHandler {
	return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
		if method != methodCallTool {
			return next(ctx, method, req)
		}
		call, ok := req.(*mcp.CallToolRequest)
		if !ok || call.Params == nil {
			return next(ctx, method, req)
		}
		if _, found := s.registry.Lookup(call.Params.Name); found {
			return next(ctx, method, req)
		}
		return s.toolHandler(call.Params.Name)(ctx, call)
	}
}

// decodeArguments reads tool arguments as a JSON object. Numbers stay
// json.Number so non-string values can be rejected by the registry.
func decodeArguments(raw json.RawMessage) (map[string]any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var args map[string]any
	if err := dec.Decode(&args); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInvalidParameter, "arguments must be a JSON object", err)
	}
	return args, nil
}

func successResult(result dataset.Normalized, invocationID string) (*mcp.CallToolResult, error) {
	text, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	return &mcp.CallToolResult{
		Meta:              map[string]any{invocationIDMetaKey: invocationID},
		Content:           []mcp.Content{&mcp.TextContent{Text: string(text)}},
		StructuredContent: structuredValue(result.Value),
	}, nil
}

// structuredValue returns mappings as-is and wraps everything else under
// "result" so structured content is always an object.
func structuredValue(value any) any {
	if mapping, ok := value.(map[string]any); ok {
		return mapping
	}
	return map[string]any{"result": value}
}

func errorResult(err error, invocationID string) *mcp.CallToolResult {
	code := apperrors.CodeOf(err)
	result := &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("%s: %s", code, err.Error())}},
		StructuredContent: map[string]any{
			"error": errorBody{Code: string(code), Message: err.Error()},
		},
	}
	if invocationID != "" {
		result.Meta = map[string]any{invocationIDMetaKey: invocationID}
	}
	return result
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
