package departments

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/policy-pulse/backend/internal/models"
)

// Repository handles department-count persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a departments repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListActive returns the active expected-count row per department.
func (r *Repository) ListActive(ctx context.Context) ([]models.DepartmentCount, error) {
	const q = `SELECT id, department, staff_count, active, created_at
		FROM department_counts WHERE active ORDER BY department`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.DepartmentCount
	for rows.Next() {
		var count models.DepartmentCount
		if err := rows.Scan(&count.ID, &count.Department, &count.StaffCount, &count.Active, &count.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, count)
	}
	return list, rows.Err()
}

// Replace deactivates the current count set and inserts a new active row per
// department, in one transaction. Previous rows are kept for history.
func (r *Repository) Replace(ctx context.Context, counts []models.DepartmentCount) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `UPDATE department_counts SET active = FALSE WHERE active`); err != nil {
		return fmt.Errorf("deactivate counts: %w", err)
	}
	for _, count := range counts {
		_, err := tx.Exec(ctx,
			`INSERT INTO department_counts (id, department, staff_count, active) VALUES (gen_random_uuid(), $1, $2, TRUE)`,
			count.Department, count.StaffCount)
		if err != nil {
			return fmt.Errorf("insert count for %s: %w", count.Department, err)
		}
	}
	return tx.Commit(ctx)
}
