package repository

import (
	"context"
	"time"

	"github.com/esp-integration/backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	Integrations Integrations
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		Integrations: newIntegrationRepository(db),
	}
}

type Integrations interface {
	Create(ctx context.Context, provider domain.Provider, apiKey string) (*domain.Integration, error)
	MarkValidated(ctx context.Context, id uuid.UUID, validatedAt time.Time, meta domain.Meta) (*domain.Integration, error)
	MarkInvalid(ctx context.Context, id uuid.UUID, meta domain.Meta) (*domain.Integration, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Integration, error)
	GetLatestValid(ctx context.Context, provider domain.Provider) (*domain.Integration, error)
}
