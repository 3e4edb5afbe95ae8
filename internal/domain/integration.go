package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Provider string

const (
	ProviderMailchimp   Provider = "MAILCHIMP"
	ProviderGetResponse Provider = "GETRESPONSE"
)

func ParseProvider(s string) (Provider, error) {
	switch Provider(s) {
	case ProviderMailchimp, ProviderGetResponse:
		return Provider(s), nil
	}
	return "", fmt.Errorf("unknown provider %q", s)
}

// Meta is the provider metadata stored in the JSON column of esp_integration.
// On a successful validation it holds normalized account data; on a failed one
// it holds a single "error" key. The two never mix.
type Meta map[string]any

func (m Meta) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *Meta) Scan(src any) error {
	if src == nil {
		*m = nil
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported meta column type %T", src)
	}
	if len(data) == 0 {
		*m = nil
		return nil
	}
	return json.Unmarshal(data, m)
}

type Integration struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	Provider    Provider   `db:"provider" json:"provider"`
	APIKey      string     `db:"api_key" json:"-"`
	IsValid     bool       `db:"is_valid" json:"is_valid"`
	ValidatedAt *time.Time `db:"validated_at" json:"validated_at"`
	Meta        Meta       `db:"meta" json:"meta"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}
