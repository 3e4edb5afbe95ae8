package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/esp-integration/backend/internal/db"
	"github.com/esp-integration/backend/internal/domain"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

type integrationRepository struct {
	db *sqlx.DB
}

func newIntegrationRepository(db *sqlx.DB) *integrationRepository {
	return &integrationRepository{
		db: db,
	}
}

const selectColumns = `bin_to_uuid(id) AS id, provider, api_key, is_valid, validated_at, meta, created_at, updated_at`

func (r *integrationRepository) Create(ctx context.Context, provider domain.Provider, apiKey string) (*domain.Integration, error) {
	const query = `
	INSERT INTO esp_integration (id, provider, api_key)
	VALUES (uuid_to_bin(?), ?, ?);
	`

	id := uuid.New()
	result, err := r.db.ExecContext(ctx, query, id, provider, apiKey)
	if err != nil {
		//nolint:errorlint
		if mysqlError, ok := err.(*mysql.MySQLError); ok && mysqlError.Number == db.DuplicateEntry {
			return nil, domain.ErrDuplicateEntry
		}
		return nil, fmt.Errorf("db insert esp integration: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected failed: %w", err)
	}
	if rowsAffected == 0 {
		return nil, domain.ErrNoRowsAffected
	}

	return r.GetByID(ctx, id)
}

func (r *integrationRepository) MarkValidated(ctx context.Context, id uuid.UUID, validatedAt time.Time, meta domain.Meta) (*domain.Integration, error) {
	const query = `
	UPDATE esp_integration SET is_valid = 1, validated_at = ?, meta = ? WHERE id = uuid_to_bin(?);
	`
	if _, err := r.db.ExecContext(ctx, query, validatedAt, meta, id); err != nil {
		return nil, fmt.Errorf("update esp integration as valid failed: %w", err)
	}
	return r.GetByID(ctx, id)
}

// MarkInvalid records the failure reason and leaves validated_at untouched so
// the last successful validation stays visible for audit.
func (r *integrationRepository) MarkInvalid(ctx context.Context, id uuid.UUID, meta domain.Meta) (*domain.Integration, error) {
	const query = `
	UPDATE esp_integration SET is_valid = 0, meta = ? WHERE id = uuid_to_bin(?);
	`
	if _, err := r.db.ExecContext(ctx, query, meta, id); err != nil {
		return nil, fmt.Errorf("update esp integration as invalid failed: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r *integrationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Integration, error) {
	query := `
	SELECT ` + selectColumns + ` FROM esp_integration WHERE id = uuid_to_bin(?);
	`
	var integration domain.Integration
	if err := r.db.GetContext(ctx, &integration, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select esp integration by id failed: %w", err)
	}
	return &integration, nil
}

// GetLatestValid returns the most recently validated integration for the
// provider. validated_at ties fall back to the newest row; created_at is
// DATETIME with second granularity, so id is the final tie break to keep the
// pick deterministic.
func (r *integrationRepository) GetLatestValid(ctx context.Context, provider domain.Provider) (*domain.Integration, error) {
	query := `
	SELECT ` + selectColumns + ` FROM esp_integration
	WHERE provider = ? AND is_valid = 1
	ORDER BY validated_at DESC, created_at DESC, id DESC
	LIMIT 1;
	`
	var integration domain.Integration
	if err := r.db.GetContext(ctx, &integration, query, provider); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select latest valid esp integration failed: %w", err)
	}
	return &integration, nil
}
