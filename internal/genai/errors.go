package genai

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
)

// ErrNoChoices is returned when the provider answers without any choice or candidate.
var ErrNoChoices = errors.New("completion response has no choices")

// ErrMissingAPIKey is returned when a Completer is created without a credential.
var ErrMissingAPIKey = errors.New("genai: api key is required")

// RemoteError is any failure of the remote completion call: transport error,
// HTTP error status, unparseable body or a response without choices.
type RemoteError struct {
	Provider   Provider
	Model      string
	StatusCode int // 0 when no HTTP response was received
	Err        error
}

// Error implements the error interface.
func (e *RemoteError) Error() string {
	msg := string(e.Provider) + " completion failed: " + e.Err.Error()
	if e.StatusCode > 0 {
		msg += " (status: " + strconv.Itoa(e.StatusCode) + ")"
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *RemoteError) Unwrap() error {
	return e.Err
}

// Failure reasons, used as metric labels.
const (
	ReasonTimeout     = "timeout"
	ReasonCanceled    = "canceled"
	ReasonRateLimited = "rate_limited"
	ReasonServerError = "server_error"
	ReasonClientError = "client_error"
	ReasonNetwork     = "network"
	ReasonNoChoices   = "no_choices"
	ReasonUnknown     = "unknown"
)

// Reason classifies the failure into a small fixed set of labels.
func (e *RemoteError) Reason() string {
	switch {
	case errors.Is(e.Err, context.DeadlineExceeded):
		return ReasonTimeout
	case errors.Is(e.Err, context.Canceled):
		return ReasonCanceled
	case errors.Is(e.Err, ErrNoChoices):
		return ReasonNoChoices
	case e.StatusCode == http.StatusTooManyRequests:
		return ReasonRateLimited
	case e.StatusCode >= 500:
		return ReasonServerError
	case e.StatusCode >= 400:
		return ReasonClientError
	}
	var netErr net.Error
	if errors.As(e.Err, &netErr) {
		if netErr.Timeout() {
			return ReasonTimeout
		}
		return ReasonNetwork
	}
	return ReasonUnknown
}

// IsRemoteError reports whether err is (or wraps) a *RemoteError.
func IsRemoteError(err error) bool {
	var re *RemoteError
	return errors.As(err, &re)
}
