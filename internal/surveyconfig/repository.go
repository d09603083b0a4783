package surveyconfig

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/policy-pulse/backend/internal/models"
)

// Repository handles survey-config persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a survey-config repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// GetCurrent returns the authoritative config for the current generation, or
// (nil, nil) when none exists.
func (r *Repository) GetCurrent(ctx context.Context) (*models.SurveyConfig, error) {
	const q = `SELECT id, survey_period, is_active, start_date, end_date, title, description, expected_responses, created_at, updated_at
		FROM survey_configs ORDER BY created_at DESC LIMIT 1`
	var cfg models.SurveyConfig
	err := r.pool.QueryRow(ctx, q).Scan(&cfg.ID, &cfg.SurveyPeriod, &cfg.IsActive, &cfg.StartDate, &cfg.EndDate,
		&cfg.Title, &cfg.Description, &cfg.ExpectedResponses, &cfg.CreatedAt, &cfg.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Create inserts a new config row.
func (r *Repository) Create(ctx context.Context, cfg *models.SurveyConfig) error {
	const q = `INSERT INTO survey_configs (id, survey_period, is_active, start_date, end_date, title, description, expected_responses)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, q, cfg.SurveyPeriod, cfg.IsActive, cfg.StartDate, cfg.EndDate,
		cfg.Title, cfg.Description, cfg.ExpectedResponses).
		Scan(&cfg.ID, &cfg.CreatedAt, &cfg.UpdatedAt)
}

// Update rewrites an existing config row. Last write wins; concurrent admin
// updates are not guarded by optimistic locking.
func (r *Repository) Update(ctx context.Context, cfg *models.SurveyConfig) error {
	const q = `UPDATE survey_configs
		SET is_active = $2, start_date = $3, end_date = $4, title = $5, description = $6, expected_responses = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`
	return r.pool.QueryRow(ctx, q, cfg.ID, cfg.IsActive, cfg.StartDate, cfg.EndDate,
		cfg.Title, cfg.Description, cfg.ExpectedResponses).Scan(&cfg.UpdatedAt)
}

// Delete removes a config row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM survey_configs WHERE id = $1`, id)
	return err
}
