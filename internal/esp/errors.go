package esp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
)

// Kind is the closed set of failure classes a provider call can end in.
// Every failure that escapes this package maps to exactly one Kind.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidCredentials
	KindRateLimited
	KindProviderUnavailable
	KindProviderRejected
	KindTimeout
	KindNetwork
	KindBadKeyFormat
	KindUnsupportedProvider
	KindPersistence
)

func (k Kind) String() string {
	switch k {
	case KindInvalidCredentials:
		return "invalid_credentials"
	case KindRateLimited:
		return "rate_limited"
	case KindProviderUnavailable:
		return "provider_unavailable"
	case KindProviderRejected:
		return "provider_rejected"
	case KindTimeout:
		return "timeout"
	case KindNetwork:
		return "network_error"
	case KindBadKeyFormat:
		return "bad_key_format"
	case KindUnsupportedProvider:
		return "unsupported_provider"
	case KindPersistence:
		return "persistence_error"
	}
	return "unknown"
}

// Error is the classified outcome of a failed provider interaction. Message is
// safe to show to a caller; Raw keeps the upstream body for diagnostics only.
type Error struct {
	Kind       Kind
	Message    string
	StatusCode int             // upstream status, 0 when no response was received
	Raw        json.RawMessage // upstream body, nil when no response was received
	cause      error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// HTTPStatus maps the kind to the status the caller of this service receives.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindInvalidCredentials:
		return http.StatusUnauthorized
	case KindRateLimited:
		return http.StatusTooManyRequests
	case KindProviderUnavailable, KindNetwork:
		return http.StatusBadGateway
	case KindProviderRejected:
		// pass the upstream status through only when it is itself an error;
		// a rejected 2xx (malformed payload) must not surface as a success code
		if e.StatusCode >= 400 {
			return e.StatusCode
		}
		return http.StatusBadGateway
	case KindTimeout:
		return http.StatusGatewayTimeout
	case KindBadKeyFormat, KindUnsupportedProvider:
		return http.StatusBadRequest
	case KindPersistence:
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}

// Retryable reports whether another attempt may help: only pure network
// failures and 5xx responses qualify.
func (e *Error) Retryable() bool {
	switch e.Kind {
	case KindTimeout, KindNetwork, KindProviderUnavailable:
		return true
	}
	return false
}

func BadKeyFormat(msg string) *Error {
	return &Error{Kind: KindBadKeyFormat, Message: msg}
}

func UnsupportedProvider(provider string) *Error {
	return &Error{Kind: KindUnsupportedProvider, Message: fmt.Sprintf("unsupported provider %q", provider)}
}

func PersistenceError(err error) *Error {
	return &Error{Kind: KindPersistence, Message: "storage failure", cause: err}
}

// AsError extracts a classified *Error, wrapping anything else as unknown so
// callers always see a member of the taxonomy.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{Kind: KindUnknown, Message: "internal error", cause: err}
}

// ClassifyResponse maps a non-2xx upstream response to its kind. The same
// (status, body) pair always yields the same result.
func ClassifyResponse(status int, body []byte) *Error {
	e := &Error{StatusCode: status, Raw: body}
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		e.Kind = KindInvalidCredentials
		e.Message = "invalid credentials for provider"
	case status == http.StatusTooManyRequests:
		e.Kind = KindRateLimited
		e.Message = "provider rate limit exceeded"
	case status >= 500:
		e.Kind = KindProviderUnavailable
		e.Message = "provider is unavailable"
	default:
		e.Kind = KindProviderRejected
		e.Message = fmt.Sprintf("provider rejected request with status %d", status)
	}
	return e
}

// ClassifyTransport maps a no-response transport failure to its kind.
func ClassifyTransport(err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindTimeout, Message: "timeout while connecting to provider", cause: err}
	}

	var uerr *url.Error
	if errors.As(err, &uerr) && uerr.Timeout() {
		return &Error{Kind: KindTimeout, Message: "timeout while connecting to provider", cause: err}
	}
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return &Error{Kind: KindTimeout, Message: "timeout while connecting to provider", cause: err}
	}

	return &Error{Kind: KindNetwork, Message: "network error while contacting provider", cause: err}
}
