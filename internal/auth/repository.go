package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/policy-pulse/backend/internal/models"
)

// ErrNotFound is returned when no matching admin user exists.
var ErrNotFound = errors.New("admin user not found")

// Repository handles admin-user persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an auth repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const userColumns = `id, username, password_hash, role, active, last_login, created_at, updated_at`

// GetByUsername returns an active admin user by username.
func (r *Repository) GetByUsername(ctx context.Context, username string) (*models.AdminUser, error) {
	const q = `SELECT ` + userColumns + ` FROM admin_users WHERE username = $1 AND active`
	return r.scanOne(r.pool.QueryRow(ctx, q, username))
}

// GetByID returns an admin user by ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.AdminUser, error) {
	const q = `SELECT ` + userColumns + ` FROM admin_users WHERE id = $1`
	return r.scanOne(r.pool.QueryRow(ctx, q, id))
}

// Create inserts a new admin user.
func (r *Repository) Create(ctx context.Context, username, passwordHash string, role models.Role) (*models.AdminUser, error) {
	const q = `INSERT INTO admin_users (id, username, password_hash, role, active)
		VALUES (gen_random_uuid(), $1, $2, $3, TRUE)
		RETURNING ` + userColumns
	return r.scanOne(r.pool.QueryRow(ctx, q, username, passwordHash, string(role)))
}

// UpdateLastLogin stamps a successful login.
func (r *Repository) UpdateLastLogin(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `UPDATE admin_users SET last_login = NOW(), updated_at = NOW() WHERE id = $1`, id)
	return err
}

// Deactivate soft-deletes an admin account. Accounts are never hard-deleted.
func (r *Repository) Deactivate(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `UPDATE admin_users SET active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	return err
}

func (r *Repository) scanOne(row pgx.Row) (*models.AdminUser, error) {
	var u models.AdminUser
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.Active, &u.LastLogin, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
