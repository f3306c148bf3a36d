// Package http provides the JSON transport for the transaction ledger.
// Every response, success or failure, carries the uniform success flag;
// failures carry a caller-safe message and nothing else.
package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// JSONResponseBuilder provides a fluent API for building enveloped JSON
// responses.
type JSONResponseBuilder struct {
	statusCode int
	fields     map[string]any
}

// NewJSONResponse creates a success envelope with default 200 status.
func NewJSONResponse() *JSONResponseBuilder {
	return &JSONResponseBuilder{
		statusCode: http.StatusOK,
		fields:     map[string]any{"success": true},
	}
}

// Status sets the HTTP status code for the response.
func (b *JSONResponseBuilder) Status(code int) *JSONResponseBuilder {
	b.statusCode = code
	return b
}

// Field adds a named payload field to the envelope.
func (b *JSONResponseBuilder) Field(name string, value any) *JSONResponseBuilder {
	b.fields[name] = value
	return b
}

// Write sends the built response to the http.ResponseWriter.
func (b *JSONResponseBuilder) Write(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(b.statusCode)
	if err := json.NewEncoder(w).Encode(b.fields); err != nil {
		slog.Error("Failed to encode response envelope", "error", err)
	}
}

// ErrorResponse creates a failure envelope with the given status and
// caller-safe message.
func ErrorResponse(statusCode int, message string) *JSONResponseBuilder {
	return &JSONResponseBuilder{
		statusCode: statusCode,
		fields:     map[string]any{"success": false, "message": message},
	}
}

// BadRequestError creates a 400 Bad Request failure envelope.
func BadRequestError(message string) *JSONResponseBuilder {
	return ErrorResponse(http.StatusBadRequest, message)
}

// InternalServerError creates a 500 Internal Server Error failure envelope.
func InternalServerError(message string) *JSONResponseBuilder {
	return ErrorResponse(http.StatusInternalServerError, message)
}
