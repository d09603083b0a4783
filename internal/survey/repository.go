package survey

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/policy-pulse/backend/internal/models"
)

// Repository handles durable survey-response writes.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a survey repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Insert writes one immutable response record. List and map fields are
// stored in their canonical encoded form.
func (r *Repository) Insert(ctx context.Context, resp *models.SurveyResponse) error {
	awareness, err := EncodeAwareness(resp.Awareness)
	if err != nil {
		return err
	}
	lists := make([]string, 0, 4)
	for _, values := range [][]string{resp.GuidanceNeeds, resp.ResourceNeeds, resp.ObservedIssues, resp.PrioritizedPolicies} {
		encoded, err := EncodeStringList(values)
		if err != nil {
			return err
		}
		lists = append(lists, encoded)
	}

	const q = `INSERT INTO survey_responses (
			id, department, awareness,
			guidance_needs, guidance_other, resource_needs, resource_other,
			confidence_level, faced_unsure_situation, unsure_situation_detail,
			observed_issues, reporting_channel_knowledge,
			training_method, training_method_other, refresher_frequency,
			prioritized_policies, prioritization_reason,
			challenges, compliance_suggestions, general_comments,
			survey_period, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)`
	_, err = r.pool.Exec(ctx, q,
		resp.ID, resp.Department, awareness,
		lists[0], resp.GuidanceOther, lists[1], resp.ResourceOther,
		resp.ConfidenceLevel, resp.FacedUnsureSituation, resp.UnsureSituationDetail,
		lists[2], resp.ReportingChannelKnowledge,
		resp.TrainingMethod, resp.TrainingMethodOther, resp.RefresherFrequency,
		lists[3], resp.PrioritizationReason,
		resp.Challenges, resp.ComplianceSuggestions, resp.GeneralComments,
		resp.SurveyPeriod, resp.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert response: %w", err)
	}
	return nil
}
