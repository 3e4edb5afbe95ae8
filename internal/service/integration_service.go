package service

import (
	"context"
	"fmt"
	"time"

	"github.com/esp-integration/backend/internal/cache"
	"github.com/esp-integration/backend/internal/domain"
	"github.com/esp-integration/backend/internal/esp"
	"github.com/esp-integration/backend/internal/repository"
	"github.com/esp-integration/backend/pkg/logger"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"go.uber.org/zap"
)

type IntegrationService struct {
	integrations repository.Integrations
	registry     *esp.Registry
	listsCache   *cache.ListsCache
	now          func() time.Time
}

func newIntegrationService(integrations repository.Integrations, registry *esp.Registry, listsCache *cache.ListsCache) *IntegrationService {
	return &IntegrationService{
		integrations: integrations,
		registry:     registry,
		listsCache:   listsCache,
		now:          time.Now,
	}
}

// CreateAndValidate persists the credential first, then checks it against the
// provider. The row is written before any outbound call so a crash mid
// validation still leaves an auditable record, and it is updated exactly once
// afterwards: marked valid with the account metadata, or marked invalid with
// the failure reason.
func (s *IntegrationService) CreateAndValidate(ctx context.Context, provider domain.Provider, apiKey string) (*ValidationResult, error) {
	integration, err := s.integrations.Create(ctx, provider, apiKey)
	if err != nil {
		return nil, esp.PersistenceError(pkgerrors.Wrap(err, "create integration"))
	}

	// Unsupported values fail right here: the initial row is the only write.
	adapter, err := s.registry.For(provider)
	if err != nil {
		return nil, err
	}

	meta, err := adapter.ValidateKey(ctx, apiKey)
	if err != nil {
		return nil, s.markInvalid(ctx, integration.ID, esp.AsError(err))
	}

	updated, err := s.integrations.MarkValidated(ctx, integration.ID, s.now(), meta)
	if err != nil {
		return nil, esp.PersistenceError(pkgerrors.Wrap(err, "mark integration validated"))
	}

	logger.Info("integration validated",
		zap.String("integration_id", updated.ID.String()),
		zap.String("provider", string(provider)),
	)

	return &ValidationResult{
		Message:     fmt.Sprintf("%s validated", provider),
		Integration: updated,
	}, nil
}

// markInvalid records the classified failure on the row and hands the same
// failure back to the caller. A storage failure here outranks the validation
// failure: masking it would leave the row in a state nobody can trust.
func (s *IntegrationService) markInvalid(ctx context.Context, id uuid.UUID, cause *esp.Error) error {
	if _, err := s.integrations.MarkInvalid(ctx, id, domain.Meta{"error": cause.Message}); err != nil {
		return esp.PersistenceError(pkgerrors.Wrap(err, "mark integration invalid"))
	}

	logger.Warn("integration validation failed",
		zap.String("integration_id", id.String()),
		zap.String("kind", cause.Kind.String()),
	)

	return cause
}

// GetLists fetches the provider's mailing lists with a stored credential.
// Resolution: an explicit id wins regardless of validity; otherwise the most
// recently validated row for the provider. The stored row's provider decides
// which adapter runs, since the row is the evidence of which API the key
// belongs to. This path never mutates the row.
func (s *IntegrationService) GetLists(ctx context.Context, provider domain.Provider, integrationID *uuid.UUID) (*esp.ListPage, error) {
	var integration *domain.Integration
	var err error

	if integrationID != nil {
		integration, err = s.integrations.GetByID(ctx, *integrationID)
	} else {
		integration, err = s.integrations.GetLatestValid(ctx, provider)
	}
	if err != nil {
		if pkgerrors.Is(err, domain.ErrNotFound) {
			return nil, ErrIntegrationNotFound
		}
		return nil, esp.PersistenceError(pkgerrors.Wrap(err, "resolve integration"))
	}

	if s.listsCache != nil {
		if page, ok := s.listsCache.Get(ctx, integration.ID); ok {
			return page, nil
		}
	}

	adapter, err := s.registry.For(integration.Provider)
	if err != nil {
		return nil, err
	}

	page, err := adapter.FetchLists(ctx, integration.APIKey)
	if err != nil {
		return nil, err
	}

	if s.listsCache != nil {
		s.listsCache.Set(ctx, integration.ID, page)
	}

	return page, nil
}
