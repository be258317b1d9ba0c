// Package mcp exposes the query services as Model Context Protocol tools.
package mcp

import "fmt"

// JSON-RPC error codes used by the tool handlers. Domain misses (unknown
// component, template, use case) are structured outputs, not protocol
// errors; these codes cover malformed requests only.
const (
	ErrCodeInvalidParams = -32602
	ErrCodeInternalError = -32603
)

// Error is an MCP protocol error with a JSON-RPC code.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// NewInvalidParamsError builds an invalid-params protocol error.
func NewInvalidParamsError(message string) *Error {
	return &Error{Code: ErrCodeInvalidParams, Message: message}
}

// NewInternalError builds an internal protocol error.
func NewInternalError(message string) *Error {
	return &Error{Code: ErrCodeInternalError, Message: message}
}
