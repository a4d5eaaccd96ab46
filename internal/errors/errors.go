// Package errors provides domain-specific error types and sentinel errors
// for the chat endpoint.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// User-facing messages returned in the {"error": ...} payload.
const (
	MsgInvalidJSON      = "Invalid JSON"
	MsgEmptyMessage     = "메시지가 없습니다."
	MsgMethodNotAllowed = "허용되지 않는 메소드입니다."
	MsgNotFound         = "페이지를 찾을 수 없습니다."
	MsgInternal         = "서버 내부 오류가 발생했습니다."
)

// Sentinel errors. Use errors.Is() to check them.
var (
	// ErrInvalidJSON indicates the request body could not be decoded.
	ErrInvalidJSON = errors.New("request body is not valid JSON")

	// ErrEmptyMessage indicates the message field is missing or blank.
	ErrEmptyMessage = errors.New("message is empty")

	// ErrMethodNotAllowed indicates an unsupported HTTP method.
	ErrMethodNotAllowed = errors.New("method not allowed")
)

// ClientError is a structurally invalid request. It maps to a 4xx status and
// carries the message shown to the caller.
type ClientError struct {
	Status  int
	Message string
	Err     error
}

func (e *ClientError) Error() string {
	return fmt.Sprintf("client error (status=%d): %v", e.Status, e.Err)
}

func (e *ClientError) Unwrap() error {
	return e.Err
}

// NewClientError creates a new client error.
func NewClientError(status int, message string, err error) *ClientError {
	return &ClientError{Status: status, Message: message, Err: err}
}

// InvalidJSON returns the 400 error for an undecodable body.
func InvalidJSON(cause error) *ClientError {
	return NewClientError(http.StatusBadRequest, MsgInvalidJSON, fmt.Errorf("%w: %w", ErrInvalidJSON, cause))
}

// EmptyMessage returns the 400 error for a blank message.
func EmptyMessage() *ClientError {
	return NewClientError(http.StatusBadRequest, MsgEmptyMessage, ErrEmptyMessage)
}

// MethodNotAllowed returns the 405 error for unsupported methods.
func MethodNotAllowed(method string) *ClientError {
	return NewClientError(http.StatusMethodNotAllowed, MsgMethodNotAllowed, fmt.Errorf("%w: %s", ErrMethodNotAllowed, method))
}

// AsClientError extracts a *ClientError from err.
func AsClientError(err error) (*ClientError, bool) {
	var ce *ClientError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
