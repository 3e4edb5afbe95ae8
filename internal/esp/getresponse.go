package esp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/esp-integration/backend/internal/config"
	"github.com/esp-integration/backend/internal/domain"
)

// GetResponse uses a single fixed endpoint and a custom auth header. Its
// nearest analog to mailing lists is the campaigns resource.
type GetResponse struct {
	baseURL         string
	validateTimeout time.Duration
	listsTimeout    time.Duration
	transport       *Transport
	retry           RetryPolicy
}

func NewGetResponse(cfg config.ESP, transport *Transport, retry RetryPolicy) *GetResponse {
	return &GetResponse{
		baseURL:         cfg.GetResponseBaseURL,
		validateTimeout: cfg.ValidateTimeout,
		listsTimeout:    cfg.ListsTimeout,
		transport:       transport,
		retry:           retry,
	}
}

func (g *GetResponse) authHeader(apiKey string) map[string]string {
	return map[string]string{"X-Auth-Token": "api-key " + apiKey}
}

func (g *GetResponse) ValidateKey(ctx context.Context, apiKey string) (domain.Meta, error) {
	resp, err := g.retry.Do(ctx, func(ctx context.Context) (*Response, error) {
		return g.transport.Get(ctx, g.baseURL+"/accounts", g.authHeader(apiKey), g.validateTimeout)
	})
	if err != nil {
		return nil, err
	}

	var account any
	if err := json.Unmarshal(resp.Body, &account); err != nil {
		account = string(resp.Body)
	}
	return domain.Meta{"account": account, "raw": account}, nil
}

func (g *GetResponse) FetchLists(ctx context.Context, apiKey string) (*ListPage, error) {
	resp, err := g.retry.Do(ctx, func(ctx context.Context) (*Response, error) {
		return g.transport.Get(ctx, g.baseURL+"/campaigns", g.authHeader(apiKey), g.listsTimeout)
	})
	if err != nil {
		return nil, err
	}

	// total is only known when the body is an array
	var items []json.RawMessage
	var total *int64
	if err := json.Unmarshal(resp.Body, &items); err == nil {
		n := int64(len(items))
		total = &n
	}

	return &ListPage{Total: total, Field: "campaigns", Items: resp.Body}, nil
}
