package responses

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/policy-pulse/backend/internal/models"
	"github.com/policy-pulse/backend/internal/survey"
)

const responseColumns = `id, department, awareness,
	guidance_needs, guidance_other, resource_needs, resource_other,
	confidence_level, faced_unsure_situation, unsure_situation_detail,
	observed_issues, reporting_channel_knowledge,
	training_method, training_method_other, refresher_frequency,
	prioritized_policies, prioritization_reason,
	challenges, compliance_suggestions, general_comments,
	survey_period, created_at`

// Repository handles survey-response reads and bulk period operations.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a responses repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// List returns a page of responses for the period, newest first, optionally
// filtered by department.
func (r *Repository) List(ctx context.Context, period, department string, limit, offset int) ([]models.SurveyResponse, error) {
	q := `SELECT ` + responseColumns + ` FROM survey_responses WHERE survey_period = $1`
	args := []interface{}{period}
	if department != "" {
		q += ` AND department = $2`
		args = append(args, department)
	}
	q += fmt.Sprintf(` ORDER BY created_at DESC LIMIT %d OFFSET %d`, limit, offset)

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.SurveyResponse
	for rows.Next() {
		resp, err := scanResponse(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *resp)
	}
	return list, rows.Err()
}

// ListAll returns every response for the period, newest first.
func (r *Repository) ListAll(ctx context.Context, period string) ([]models.SurveyResponse, error) {
	q := `SELECT ` + responseColumns + ` FROM survey_responses WHERE survey_period = $1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, q, period)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.SurveyResponse
	for rows.Next() {
		resp, err := scanResponse(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *resp)
	}
	return list, rows.Err()
}

// Count returns the number of responses for the period, optionally filtered
// by department.
func (r *Repository) Count(ctx context.Context, period, department string) (int64, error) {
	q := `SELECT COUNT(*) FROM survey_responses WHERE survey_period = $1`
	args := []interface{}{period}
	if department != "" {
		q += ` AND department = $2`
		args = append(args, department)
	}
	var total int64
	err := r.pool.QueryRow(ctx, q, args...).Scan(&total)
	return total, err
}

// CountByDepartment returns response counts grouped by department for the period.
func (r *Repository) CountByDepartment(ctx context.Context, period string) (map[string]int64, error) {
	const q = `SELECT department, COUNT(*) FROM survey_responses WHERE survey_period = $1 GROUP BY department`
	rows, err := r.pool.Query(ctx, q, period)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var department string
		var count int64
		if err := rows.Scan(&department, &count); err != nil {
			return nil, err
		}
		counts[department] = count
	}
	return counts, rows.Err()
}

// RetagPeriod moves all responses from one survey period to another and
// returns the number of rows re-tagged. Used by reset to archive, not delete.
func (r *Repository) RetagPeriod(ctx context.Context, from, to string) (int64, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE survey_responses SET survey_period = $2 WHERE survey_period = $1`, from, to)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// DeleteByPeriod removes every response in one survey generation. Only the
// explicit, confirmed reset-responses operation calls this.
func (r *Repository) DeleteByPeriod(ctx context.Context, period string) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM survey_responses WHERE survey_period = $1`, period)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanResponse(row pgx.Row) (*models.SurveyResponse, error) {
	var resp models.SurveyResponse
	var awareness, guidance, resources, issues, prioritized string
	err := row.Scan(&resp.ID, &resp.Department, &awareness,
		&guidance, &resp.GuidanceOther, &resources, &resp.ResourceOther,
		&resp.ConfidenceLevel, &resp.FacedUnsureSituation, &resp.UnsureSituationDetail,
		&issues, &resp.ReportingChannelKnowledge,
		&resp.TrainingMethod, &resp.TrainingMethodOther, &resp.RefresherFrequency,
		&prioritized, &resp.PrioritizationReason,
		&resp.Challenges, &resp.ComplianceSuggestions, &resp.GeneralComments,
		&resp.SurveyPeriod, &resp.CreatedAt)
	if err != nil {
		return nil, err
	}
	if resp.Awareness, err = survey.DecodeAwareness(awareness); err != nil {
		return nil, err
	}
	if resp.GuidanceNeeds, err = survey.DecodeStringList(guidance); err != nil {
		return nil, err
	}
	if resp.ResourceNeeds, err = survey.DecodeStringList(resources); err != nil {
		return nil, err
	}
	if resp.ObservedIssues, err = survey.DecodeStringList(issues); err != nil {
		return nil, err
	}
	if resp.PrioritizedPolicies, err = survey.DecodeStringList(prioritized); err != nil {
		return nil, err
	}
	return &resp, nil
}
