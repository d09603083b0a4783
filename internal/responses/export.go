package responses

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/policy-pulse/backend/internal/models"
	"github.com/policy-pulse/backend/internal/survey"
)

// listSeparator joins multi-select values inside one CSV cell.
const listSeparator = "; "

// WriteCSV renders responses as CSV: one row per response, one column per
// flattened field, awareness ratings expanded to one column per policy area,
// array fields joined with "; ".
func WriteCSV(w io.Writer, list []models.SurveyResponse) error {
	cw := csv.NewWriter(w)

	header := []string{"id", "department"}
	for _, area := range survey.PolicyAreas {
		header = append(header, "awareness_"+area)
	}
	header = append(header,
		"guidance_needs", "guidance_other",
		"resource_needs", "resource_other",
		"confidence_level",
		"faced_unsure_situation", "unsure_situation_detail",
		"observed_issues", "reporting_channel_knowledge",
		"training_method", "training_method_other", "refresher_frequency",
		"prioritized_policies", "prioritization_reason",
		"challenges", "compliance_suggestions", "general_comments",
		"survey_period", "created_at",
	)
	if err := cw.Write(header); err != nil {
		return err
	}

	for i := range list {
		resp := &list[i]
		row := []string{resp.ID.String(), resp.Department}
		for _, area := range survey.PolicyAreas {
			row = append(row, strconv.Itoa(resp.Awareness[area]))
		}
		row = append(row,
			strings.Join(resp.GuidanceNeeds, listSeparator), resp.GuidanceOther,
			strings.Join(resp.ResourceNeeds, listSeparator), resp.ResourceOther,
			resp.ConfidenceLevel,
			strconv.FormatBool(resp.FacedUnsureSituation), resp.UnsureSituationDetail,
			strings.Join(resp.ObservedIssues, listSeparator), resp.ReportingChannelKnowledge,
			resp.TrainingMethod, resp.TrainingMethodOther, resp.RefresherFrequency,
			strings.Join(resp.PrioritizedPolicies, listSeparator), resp.PrioritizationReason,
			resp.Challenges, resp.ComplianceSuggestions, resp.GeneralComments,
			resp.SurveyPeriod, resp.CreatedAt.Format(time.RFC3339),
		)
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
