package service

import (
	"context"

	"github.com/esp-integration/backend/internal/cache"
	"github.com/esp-integration/backend/internal/domain"
	"github.com/esp-integration/backend/internal/esp"
	"github.com/esp-integration/backend/internal/repository"

	"github.com/google/uuid"
)

type Services struct {
	Integrations Integrations
}

type Deps struct {
	Repos      *repository.Repositories
	Registry   *esp.Registry
	ListsCache *cache.ListsCache
}

func NewServices(deps Deps) *Services {
	return &Services{
		Integrations: newIntegrationService(deps.Repos.Integrations, deps.Registry, deps.ListsCache),
	}
}

type Integrations interface {
	CreateAndValidate(ctx context.Context, provider domain.Provider, apiKey string) (*ValidationResult, error)
	GetLists(ctx context.Context, provider domain.Provider, integrationID *uuid.UUID) (*esp.ListPage, error)
}

// ValidationResult is what a successful create+validate returns to the caller.
type ValidationResult struct {
	Message     string              `json:"message"`
	Integration *domain.Integration `json:"integration"`
}
