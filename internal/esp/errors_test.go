package esp

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyResponse(t *testing.T) {
	cases := []struct {
		name       string
		status     int
		wantKind   Kind
		wantStatus int
	}{
		{"unauthorized", http.StatusUnauthorized, KindInvalidCredentials, http.StatusUnauthorized},
		{"forbidden", http.StatusForbidden, KindInvalidCredentials, http.StatusUnauthorized},
		{"rate limited", http.StatusTooManyRequests, KindRateLimited, http.StatusTooManyRequests},
		{"server error", http.StatusInternalServerError, KindProviderUnavailable, http.StatusBadGateway},
		{"bad gateway upstream", http.StatusBadGateway, KindProviderUnavailable, http.StatusBadGateway},
		{"not found passes through", http.StatusNotFound, KindProviderRejected, http.StatusNotFound},
		{"conflict passes through", http.StatusConflict, KindProviderRejected, http.StatusConflict},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ClassifyResponse(tc.status, []byte(`{"detail":"x"}`))
			assert.Equal(t, tc.wantKind, err.Kind)
			assert.Equal(t, tc.wantStatus, err.HTTPStatus())
			assert.Equal(t, tc.status, err.StatusCode)
			assert.NotEmpty(t, err.Message)
			assert.NotNil(t, err.Raw)
		})
	}
}

func TestRejectedSuccessStatusDoesNotPassThrough(t *testing.T) {
	// a 2xx upstream status on a rejected call stays diagnostic only
	err := &Error{Kind: KindProviderRejected, Message: "malformed payload", StatusCode: http.StatusOK}
	assert.Equal(t, http.StatusBadGateway, err.HTTPStatus())

	err = &Error{Kind: KindProviderRejected, StatusCode: 0}
	assert.Equal(t, http.StatusBadGateway, err.HTTPStatus())

	err = &Error{Kind: KindProviderRejected, StatusCode: http.StatusNotFound}
	assert.Equal(t, http.StatusNotFound, err.HTTPStatus())
}

func TestClassifyResponseIdempotent(t *testing.T) {
	body := []byte(`{"title":"API Key Invalid"}`)
	first := ClassifyResponse(401, body)
	second := ClassifyResponse(401, body)

	assert.Equal(t, first.Kind, second.Kind)
	assert.Equal(t, first.Message, second.Message)
	assert.Equal(t, first.HTTPStatus(), second.HTTPStatus())
}

func TestClassifyTransport(t *testing.T) {
	t.Run("context deadline", func(t *testing.T) {
		err := ClassifyTransport(context.DeadlineExceeded)
		assert.Equal(t, KindTimeout, err.Kind)
		assert.Equal(t, http.StatusGatewayTimeout, err.HTTPStatus())
	})

	t.Run("url timeout", func(t *testing.T) {
		uerr := &url.Error{Op: "Get", URL: "https://example.com", Err: timeoutErr{}}
		err := ClassifyTransport(uerr)
		assert.Equal(t, KindTimeout, err.Kind)
	})

	t.Run("connection refused", func(t *testing.T) {
		uerr := &url.Error{Op: "Get", URL: "https://example.com", Err: &net.OpError{Op: "dial", Err: errors.New("connection refused")}}
		err := ClassifyTransport(uerr)
		assert.Equal(t, KindNetwork, err.Kind)
		assert.Equal(t, http.StatusBadGateway, err.HTTPStatus())
	})
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestRetryable(t *testing.T) {
	assert.True(t, (&Error{Kind: KindTimeout}).Retryable())
	assert.True(t, (&Error{Kind: KindNetwork}).Retryable())
	assert.True(t, (&Error{Kind: KindProviderUnavailable}).Retryable())

	assert.False(t, (&Error{Kind: KindInvalidCredentials}).Retryable())
	assert.False(t, (&Error{Kind: KindRateLimited}).Retryable())
	assert.False(t, (&Error{Kind: KindProviderRejected}).Retryable())
	assert.False(t, (&Error{Kind: KindBadKeyFormat}).Retryable())
}

func TestAsError(t *testing.T) {
	classified := BadKeyFormat("no datacenter")
	require.Same(t, classified, AsError(classified))

	plain := AsError(errors.New("boom"))
	assert.Equal(t, KindUnknown, plain.Kind)
	assert.ErrorContains(t, plain, "boom")
}
