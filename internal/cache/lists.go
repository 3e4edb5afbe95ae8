package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/esp-integration/backend/internal/esp"
	"github.com/esp-integration/backend/pkg/logger"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const listsKeyPrefix = "esp:lists:"

type listsEntry struct {
	Total *int64          `json:"total"`
	Field string          `json:"field"`
	Items json.RawMessage `json:"items"`
}

// ListsCache keeps recently fetched list pages for a short TTL so repeated
// reads do not hammer the provider. Validation results are never cached.
type ListsCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewListsCache(client redis.UniversalClient, ttl time.Duration) *ListsCache {
	return &ListsCache{client: client, ttl: ttl}
}

func (c *ListsCache) Get(ctx context.Context, integrationID uuid.UUID) (*esp.ListPage, bool) {
	data, err := c.client.Get(ctx, listsKeyPrefix+integrationID.String()).Bytes()
	if err != nil {
		if !pkgerrors.Is(err, redis.Nil) {
			logger.Warn("lists cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var entry listsEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}
	return &esp.ListPage{Total: entry.Total, Field: entry.Field, Items: entry.Items}, true
}

// Set is best effort: a cache write failure only logs, the page was already
// fetched from the provider.
func (c *ListsCache) Set(ctx context.Context, integrationID uuid.UUID, page *esp.ListPage) {
	data, err := json.Marshal(listsEntry{Total: page.Total, Field: page.Field, Items: page.Items})
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, listsKeyPrefix+integrationID.String(), data, c.ttl).Err(); err != nil {
		logger.Warn("lists cache write failed", zap.Error(err))
	}
}
