package survey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSubmission() *Submission {
	awareness := make(map[string]int, len(PolicyAreas))
	for _, area := range PolicyAreas {
		awareness[area] = 3
	}
	return &Submission{
		Department:                "Finance",
		Awareness:                 awareness,
		GuidanceNeeds:             []string{"data_privacy", "anti_bribery"},
		ResourceNeeds:             []string{"employee_handbook", "helpdesk"},
		ConfidenceLevel:           "confident",
		FacedUnsureSituation:      true,
		UnsureSituationDetail:     "was unsure whether a vendor gift needed reporting",
		ObservedIssues:            []string{"outdated_documents"},
		ReportingChannelKnowledge: "have_rough_idea",
		TrainingMethod:            "e_learning",
		RefresherFrequency:        "quarterly",
		PrioritizedPolicies:       []string{"data_privacy"},
		PrioritizationReason:      "most of our work handles customer records",
		ComplianceSuggestions:     "publish a short monthly policy digest",
	}
}

func violationFields(t *testing.T, err error) []string {
	t.Helper()
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	fields := make([]string, 0, len(valErr.Violations))
	for _, v := range valErr.Violations {
		fields = append(fields, v.Field)
	}
	return fields
}

func TestValidateAcceptsConformingSubmission(t *testing.T) {
	v := NewValidator(false)
	require.NoError(t, v.Validate(validSubmission()))
}

func TestValidateRatingBoundaries(t *testing.T) {
	v := NewValidator(false)
	for rating, wantValid := range map[int]bool{0: false, 1: true, 5: true, 6: false} {
		sub := validSubmission()
		sub.Awareness["anti_bribery"] = rating
		err := v.Validate(sub)
		if wantValid {
			assert.NoError(t, err, "rating %d", rating)
		} else {
			assert.Contains(t, violationFields(t, err), "awareness.anti_bribery", "rating %d", rating)
		}
	}
}

func TestValidateRejectsUnknownDepartment(t *testing.T) {
	v := NewValidator(false)
	sub := validSubmission()
	sub.Department = "Shipping"
	assert.Contains(t, violationFields(t, v.Validate(sub)), "department")
}

func TestValidateRejectsMissingAwarenessArea(t *testing.T) {
	v := NewValidator(false)
	sub := validSubmission()
	delete(sub.Awareness, "whistleblower_protection")
	assert.Contains(t, violationFields(t, v.Validate(sub)), "awareness.whistleblower_protection")
}

func TestValidateRejectsUnknownMultiSelectValue(t *testing.T) {
	v := NewValidator(false)
	sub := validSubmission()
	sub.ObservedIssues = []string{"outdated_documents", "aliens"}
	assert.Contains(t, violationFields(t, v.Validate(sub)), "observedIssues")
}

func TestValidateRequiresNonEmptyPrioritizedPolicies(t *testing.T) {
	v := NewValidator(false)
	sub := validSubmission()
	sub.PrioritizedPolicies = []string{}
	assert.Contains(t, violationFields(t, v.Validate(sub)), "prioritizedPolicies")
}

func TestValidateRequiredTextTrimmed(t *testing.T) {
	v := NewValidator(false)
	sub := validSubmission()
	sub.PrioritizationReason = "   "
	sub.ComplianceSuggestions = ""
	fields := violationFields(t, v.Validate(sub))
	assert.Contains(t, fields, "prioritizationReason")
	assert.Contains(t, fields, "complianceSuggestions")
}

func TestValidateOthersPairingLenientByDefault(t *testing.T) {
	sub := validSubmission()
	sub.GuidanceNeeds = append(sub.GuidanceNeeds, OthersSentinel)
	sub.GuidanceOther = ""
	assert.NoError(t, NewValidator(false).Validate(sub))
}

func TestValidateOthersPairingStrict(t *testing.T) {
	v := NewValidator(true)

	sub := validSubmission()
	sub.GuidanceNeeds = append(sub.GuidanceNeeds, OthersSentinel)
	sub.GuidanceOther = " "
	assert.Contains(t, violationFields(t, v.Validate(sub)), "guidanceOther")

	sub = validSubmission()
	sub.TrainingMethod = OthersSentinel
	assert.Contains(t, violationFields(t, v.Validate(sub)), "trainingMethodOther")

	sub = validSubmission()
	sub.TrainingMethod = OthersSentinel
	sub.TrainingMethodOther = "peer shadowing"
	assert.NoError(t, v.Validate(sub))
}

func TestValidateCollectsAllViolations(t *testing.T) {
	v := NewValidator(false)
	sub := validSubmission()
	sub.Department = "Shipping"
	sub.ConfidenceLevel = "extremely"
	sub.RefresherFrequency = "daily"
	fields := violationFields(t, v.Validate(sub))
	assert.Len(t, fields, 3)
}
