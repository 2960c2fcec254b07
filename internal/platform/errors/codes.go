// Package errors provides the structured error taxonomy shared by the
// operation registry and the transports that report its failures.
package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Invocation errors
	CodeOperationNotFound Code = "OPERATION_NOT_FOUND"
	CodeInvalidParameter  Code = "INVALID_PARAMETER"

	// Provider errors
	CodeProviderError Code = "PROVIDER_ERROR"

	// CodeNormalizationFallback marks a result that was passed through because
	// its shape was neither tabular nor scalar. It is a signal, not a failure.
	CodeNormalizationFallback Code = "NORMALIZATION_FALLBACK"
)

// HTTPStatus maps domain codes to HTTP status codes for the REST surface.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeOperationNotFound:
		return http.StatusNotFound
	case CodeInvalidParameter:
		return http.StatusBadRequest
	case CodeProviderError:
		return http.StatusBadGateway
	case CodeNormalizationFallback:
		return http.StatusOK
	default:
		return http.StatusInternalServerError
	}
}
