package esp

import (
	"context"
	"io"
	"net/http"
	"time"
)

// Response is the normalized result of a single upstream GET.
type Response struct {
	StatusCode int
	Body       []byte
}

// Transport performs one HTTP call per invocation and classifies every
// failure. Adapters never touch net/http directly.
type Transport struct {
	httpClient *http.Client
}

func NewTransport() *Transport {
	return &Transport{
		httpClient: &http.Client{},
	}
}

// Get executes a single GET with the given per-call timeout. A non-2xx status
// and a missing response are both returned as a classified *Error.
func (t *Transport) Get(ctx context.Context, url string, headers map[string]string, timeout time.Duration) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Message: "network error while contacting provider", cause: err}
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, ClassifyTransport(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, ClassifyTransport(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, ClassifyResponse(resp.StatusCode, body)
	}

	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}
