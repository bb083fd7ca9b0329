// Package errors defines the API error taxonomy: typed errors that carry a
// client-safe message, optional log-only fields, and a fixed mapping onto
// HTTP status codes. Handlers return these; the echo middleware in this
// package turns them into JSON responses and metrics.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Type categorizes an error for status mapping and metrics labels.
type Type string

const (
	TypeValidation Type = "validation" // bad request input, 400
	TypeNotFound   Type = "not_found"  // unknown resource, 404
	TypeInternal   Type = "internal"   // everything else, 500
)

var statusByType = map[Type]int{
	TypeValidation: http.StatusBadRequest,
	TypeNotFound:   http.StatusNotFound,
	TypeInternal:   http.StatusInternalServerError,
}

// Error is the structured error returned by handlers. Message is sent to the
// client; Cause and Fields stay in the logs.
type Error struct {
	Type    Type
	Message string
	Cause   error
	Fields  map[string]any
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// HTTPStatus maps the error type onto a response status code.
func (e *Error) HTTPStatus() int {
	if status, ok := statusByType[e.Type]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// WithField attaches a diagnostic field for the error log line (chainable).
func (e *Error) WithField(key string, value any) *Error {
	if e.Fields == nil {
		e.Fields = make(map[string]any)
	}
	e.Fields[key] = value
	return e
}

// ValidationError reports invalid request input (HTTP 400).
func ValidationError(message string) *Error {
	return &Error{Type: TypeValidation, Message: message}
}

// NotFoundError reports an unknown resource (HTTP 404).
func NotFoundError(message string) *Error {
	return &Error{Type: TypeNotFound, Message: message}
}

// InternalError reports a server-side failure (HTTP 500), keeping the cause
// out of the client response.
func InternalError(message string, cause error) *Error {
	return &Error{Type: TypeInternal, Message: message, Cause: cause}
}

// Response is the JSON error shape sent to clients. Fields never leak here.
type Response struct {
	Error string `json:"error"`
	Type  Type   `json:"type"`
}

func (e *Error) response() Response {
	return Response{Error: e.Message, Type: e.Type}
}

// asError coerces any handler error into an *Error. Unknown errors become
// internal errors with a generic client message.
func asError(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return InternalError("internal server error", err)
}
