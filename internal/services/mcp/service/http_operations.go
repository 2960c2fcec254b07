package service

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	apperrors "github.com/modeyang/mcp-akshare-all/internal/platform/errors"
	"github.com/modeyang/mcp-akshare-all/internal/services/mcp/registry"
)

// maxInvokeBodyBytes bounds POST /operations/{name} request bodies.
const maxInvokeBodyBytes = 1 << 20

type operationParamView struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Required    bool     `json:"required"`
	Default     *string  `json:"default,omitempty"`
	Options     []string `json:"options,omitempty"`
}

type operationView struct {
	Name    string               `json:"name"`
	Summary string               `json:"summary"`
	Source  string               `json:"source,omitempty"`
	Params  []operationParamView `json:"params"`
}

type operationListView struct {
	Operations []operationView `json:"operations"`
	MaxRows    int             `json:"max_rows"`
}

type invokeResponse struct {
	Operation    string `json:"operation"`
	InvocationID string `json:"invocation_id"`
	Result       any    `json:"result"`
	TotalRows    int    `json:"total_rows"`
	Truncated    bool   `json:"truncated"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

func newOperationView(op registry.Operation) operationView {
	params := make([]operationParamView, 0, len(op.Params))
	for _, param := range op.Params {
		view := operationParamView{
			Name:        param.Name,
			Description: param.Description,
			Required:    param.Required(),
			Options:     param.Options,
		}
		if param.Optional {
			value := param.Default
			view.Default = &value
		}
		params = append(params, view)
	}
	return operationView{Name: op.Name, Summary: op.Summary, Source: op.Source, Params: params}
}

// handleListOperations handles GET /operations.
func (t *HTTPTransport) handleListOperations(w http.ResponseWriter, _ *http.Request) {
	reg := t.server.registry
	views := make([]operationView, 0, reg.Len())
	for _, op := range reg.Operations() {
		views = append(views, newOperationView(op))
	}
	writeJSON(w, http.StatusOK, operationListView{Operations: views, MaxRows: reg.MaxRows()})
}

// handleGetOperation handles GET /operations/{name}.
func (t *HTTPTransport) handleGetOperation(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	op, ok := t.server.registry.Lookup(name)
	if !ok {
		writeError(w, apperrors.New(apperrors.CodeOperationNotFound, "operation \""+name+"\" not found"))
		return
	}
	writeJSON(w, http.StatusOK, newOperationView(op))
}

// handleInvokeOperation handles POST /operations/{name} with a JSON object
// of string arguments. An empty body means no arguments.
func (t *HTTPTransport) handleInvokeOperation(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxInvokeBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "failed to read request", http.StatusBadRequest)
		return
	}
	args, err := decodeArguments(body)
	if err != nil {
		writeError(w, err)
		return
	}
	call, err := t.server.invoke(r.Context(), name, args)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, invokeResponse{
		Operation:    name,
		InvocationID: call.ID,
		Result:       call.Result,
		TotalRows:    call.Result.TotalRows,
		Truncated:    call.Result.Truncated,
	})
}

func writeError(w http.ResponseWriter, err error) {
	code := apperrors.CodeOf(err)
	writeJSON(w, code.HTTPStatus(), errorResponse{Error: errorBody{Code: string(code), Message: err.Error()}})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}
