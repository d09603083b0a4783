package responses

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/policy-pulse/backend/internal/models"
	"github.com/policy-pulse/backend/internal/survey"
)

func TestWriteCSV(t *testing.T) {
	resp := models.SurveyResponse{
		ID:                        uuid.New(),
		Department:                "Finance",
		Awareness:                 map[string]int{"code_of_conduct": 4, "data_privacy": 5},
		GuidanceNeeds:             []string{"data_privacy", "anti_bribery"},
		ResourceNeeds:             []string{"helpdesk"},
		ConfidenceLevel:           "confident",
		ObservedIssues:            []string{},
		ReportingChannelKnowledge: "know_exactly",
		TrainingMethod:            "e_learning",
		RefresherFrequency:        "quarterly",
		PrioritizedPolicies:       []string{"data_privacy"},
		PrioritizationReason:      "customer records everywhere",
		ComplianceSuggestions:     "shorter policies",
		SurveyPeriod:              models.DefaultSurveyPeriod,
		CreatedAt:                 time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC),
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, []models.SurveyResponse{resp}))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	header, row := records[0], records[1]
	require.Equal(t, len(header), len(row))

	byColumn := make(map[string]string, len(header))
	for i, name := range header {
		byColumn[name] = row[i]
	}
	assert.Equal(t, resp.ID.String(), byColumn["id"])
	assert.Equal(t, "Finance", byColumn["department"])
	assert.Equal(t, "4", byColumn["awareness_code_of_conduct"])
	assert.Equal(t, "5", byColumn["awareness_data_privacy"])
	assert.Equal(t, "0", byColumn["awareness_anti_bribery"], "unrated areas export as 0")
	assert.Equal(t, "data_privacy; anti_bribery", byColumn["guidance_needs"])
	assert.Equal(t, "", byColumn["observed_issues"])
	assert.Equal(t, "2025-06-01T09:30:00Z", byColumn["created_at"])
}

func TestWriteCSVHeaderCoversAllPolicyAreas(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)

	header := records[0]
	for _, area := range survey.PolicyAreas {
		assert.Contains(t, header, "awareness_"+area)
	}
}
