package esp

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/esp-integration/backend/internal/config"
	"github.com/esp-integration/backend/internal/domain"
)

// Mailchimp keys embed a datacenter suffix after the last '-'; the suffix
// picks the API host. Basic auth, any username, the key as password.
type Mailchimp struct {
	baseURLFormat   string
	pageSize        int
	validateTimeout time.Duration
	listsTimeout    time.Duration
	transport       *Transport
	retry           RetryPolicy
}

func NewMailchimp(cfg config.ESP, transport *Transport, retry RetryPolicy) *Mailchimp {
	return &Mailchimp{
		baseURLFormat:   cfg.MailchimpBaseURL,
		pageSize:        cfg.ListsPageSize,
		validateTimeout: cfg.ValidateTimeout,
		listsTimeout:    cfg.ListsTimeout,
		transport:       transport,
		retry:           retry,
	}
}

// datacenter extracts the routing suffix from the key. A key without one is a
// format error and must be rejected before any network call.
func datacenter(apiKey string) (string, error) {
	idx := strings.LastIndex(apiKey, "-")
	if idx < 0 || idx == len(apiKey)-1 {
		return "", BadKeyFormat("invalid mailchimp key format (no datacenter)")
	}
	return apiKey[idx+1:], nil
}

func (m *Mailchimp) authHeader(apiKey string) map[string]string {
	token := base64.StdEncoding.EncodeToString([]byte("anystring:" + apiKey))
	return map[string]string{"Authorization": "Basic " + token}
}

func (m *Mailchimp) ValidateKey(ctx context.Context, apiKey string) (domain.Meta, error) {
	dc, err := datacenter(apiKey)
	if err != nil {
		return nil, err
	}
	base := fmt.Sprintf(m.baseURLFormat, dc)

	resp, err := m.retry.Do(ctx, func(ctx context.Context) (*Response, error) {
		return m.transport.Get(ctx, base+"/", m.authHeader(apiKey), m.validateTimeout)
	})
	if err != nil {
		return nil, err
	}

	meta := domain.Meta{"datacenter": dc}
	var account map[string]any
	if err := json.Unmarshal(resp.Body, &account); err == nil {
		meta["raw"] = account
		if id, ok := account["account_id"].(string); ok {
			meta["account_id"] = id
		}
	} else {
		meta["raw"] = string(resp.Body)
	}
	return meta, nil
}

func (m *Mailchimp) FetchLists(ctx context.Context, apiKey string) (*ListPage, error) {
	dc, err := datacenter(apiKey)
	if err != nil {
		return nil, err
	}
	base := fmt.Sprintf(m.baseURLFormat, dc)
	url := fmt.Sprintf("%s/lists?count=%d", base, m.pageSize)

	resp, err := m.retry.Do(ctx, func(ctx context.Context) (*Response, error) {
		return m.transport.Get(ctx, url, m.authHeader(apiKey), m.listsTimeout)
	})
	if err != nil {
		return nil, err
	}

	var payload struct {
		TotalItems int64           `json:"total_items"`
		Lists      json.RawMessage `json:"lists"`
	}
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		return nil, &Error{
			Kind:       KindProviderRejected,
			Message:    "provider returned a malformed lists payload",
			StatusCode: resp.StatusCode,
			Raw:        resp.Body,
			cause:      err,
		}
	}

	return &ListPage{Total: &payload.TotalItems, Field: "lists", Items: payload.Lists}, nil
}
