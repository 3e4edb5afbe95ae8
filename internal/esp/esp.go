// Package esp talks to the supported email service providers. It normalizes
// two structurally different upstream APIs (Mailchimp, GetResponse) behind one
// adapter contract and turns every upstream failure into a member of a closed
// error taxonomy.
package esp

import (
	"context"
	"encoding/json"

	"github.com/esp-integration/backend/internal/config"
	"github.com/esp-integration/backend/internal/domain"
)

// ListPage is a single bounded page of mailing lists. Items keeps the
// provider's raw array; Field names it the way the provider does ("lists" or
// "campaigns"). Total is nil when the provider does not report a count.
type ListPage struct {
	Total *int64
	Field string
	Items json.RawMessage
}

// Adapter is the per-provider capability contract.
type Adapter interface {
	// ValidateKey checks the credential against the provider's identity
	// endpoint and returns normalized account metadata.
	ValidateKey(ctx context.Context, apiKey string) (domain.Meta, error)
	// FetchLists retrieves the provider's mailing lists in one page.
	FetchLists(ctx context.Context, apiKey string) (*ListPage, error)
}

// Registry owns one adapter per supported provider.
type Registry struct {
	adapters map[domain.Provider]Adapter
}

func NewRegistry(cfg config.ESP) *Registry {
	transport := NewTransport()
	retry := NewRetryPolicy(cfg.RetryAttempts, cfg.RetryBaseDelay)

	return &Registry{
		adapters: map[domain.Provider]Adapter{
			domain.ProviderMailchimp:   NewMailchimp(cfg, transport, retry),
			domain.ProviderGetResponse: NewGetResponse(cfg, transport, retry),
		},
	}
}

// For dispatches to the adapter for the given provider. The dispatch is total:
// an unknown value yields an UnsupportedProvider error, never a nil adapter.
func (r *Registry) For(provider domain.Provider) (Adapter, error) {
	adapter, ok := r.adapters[provider]
	if !ok {
		return nil, UnsupportedProvider(string(provider))
	}
	return adapter, nil
}
