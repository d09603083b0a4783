package survey

import (
	"fmt"
	"strings"
)

// Submission is the raw questionnaire payload as received from the client,
// before validation.
type Submission struct {
	Department string         `json:"department"`
	Awareness  map[string]int `json:"awareness"`

	GuidanceNeeds []string `json:"guidanceNeeds"`
	GuidanceOther string   `json:"guidanceOther"`
	ResourceNeeds []string `json:"resourceNeeds"`
	ResourceOther string   `json:"resourceOther"`

	ConfidenceLevel       string `json:"confidenceLevel"`
	FacedUnsureSituation  bool   `json:"facedUnsureSituation"`
	UnsureSituationDetail string `json:"unsureSituationDetail"`

	ObservedIssues            []string `json:"observedIssues"`
	ReportingChannelKnowledge string   `json:"reportingChannelKnowledge"`

	TrainingMethod      string `json:"trainingMethod"`
	TrainingMethodOther string `json:"trainingMethodOther"`
	RefresherFrequency  string `json:"refresherFrequency"`

	PrioritizedPolicies  []string `json:"prioritizedPolicies"`
	PrioritizationReason string   `json:"prioritizationReason"`

	Challenges            string `json:"challenges"`
	ComplianceSuggestions string `json:"complianceSuggestions"`
	GeneralComments       string `json:"generalComments"`
}

// FieldViolation describes one schema violation in a submission.
type FieldViolation struct {
	Field      string      `json:"field"`
	Constraint string      `json:"constraint"`
	Value      interface{} `json:"value,omitempty"`
}

// ValidationError carries the full list of field-level violations for a
// rejected submission.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		fields = append(fields, v.Field)
	}
	return fmt.Sprintf("invalid submission: %s", strings.Join(fields, ", "))
}

// Validator schema-checks submissions against the fixed questionnaire shape.
// It is a pure check: valid payloads pass through unchanged.
type Validator struct {
	// strictOthers requires a non-empty paired explanation whenever a
	// multi-select includes the Others sentinel. The observed production
	// behavior is lenient, so this is off unless explicitly configured.
	strictOthers bool

	departments   map[string]struct{}
	policyAreas   map[string]struct{}
	guidanceSet   map[string]struct{}
	resourceSet   map[string]struct{}
	issueSet      map[string]struct{}
	confidenceSet map[string]struct{}
	reportingSet  map[string]struct{}
	trainingSet   map[string]struct{}
	refresherSet  map[string]struct{}
}

// NewValidator creates a validator for the fixed questionnaire shape.
func NewValidator(strictOthers bool) *Validator {
	return &Validator{
		strictOthers:  strictOthers,
		departments:   toSet(Departments),
		policyAreas:   toSet(PolicyAreas),
		guidanceSet:   toSet(guidanceOptions()),
		resourceSet:   toSet(ResourceOptions),
		issueSet:      toSet(ObservedIssueOptions),
		confidenceSet: toSet(ConfidenceLevels),
		reportingSet:  toSet(ReportingChannelLevels),
		trainingSet:   toSet(TrainingMethods),
		refresherSet:  toSet(RefresherFrequencies),
	}
}

// Validate returns nil for a schema-conforming submission, or a
// *ValidationError listing every violation found.
func (v *Validator) Validate(sub *Submission) error {
	var violations []FieldViolation

	if _, ok := v.departments[sub.Department]; !ok {
		violations = append(violations, FieldViolation{
			Field:      "department",
			Constraint: "must be one of the listed departments",
			Value:      sub.Department,
		})
	}

	violations = append(violations, v.checkAwareness(sub.Awareness)...)

	violations = append(violations, v.checkMultiSelect("guidanceNeeds", sub.GuidanceNeeds, v.guidanceSet, false)...)
	violations = append(violations, v.checkOthersPairing("guidanceNeeds", sub.GuidanceNeeds, "guidanceOther", sub.GuidanceOther)...)

	violations = append(violations, v.checkMultiSelect("resourceNeeds", sub.ResourceNeeds, v.resourceSet, false)...)
	violations = append(violations, v.checkOthersPairing("resourceNeeds", sub.ResourceNeeds, "resourceOther", sub.ResourceOther)...)

	violations = append(violations, v.checkMultiSelect("observedIssues", sub.ObservedIssues, v.issueSet, false)...)

	violations = append(violations, v.checkEnum("confidenceLevel", sub.ConfidenceLevel, v.confidenceSet)...)
	violations = append(violations, v.checkEnum("reportingChannelKnowledge", sub.ReportingChannelKnowledge, v.reportingSet)...)
	violations = append(violations, v.checkEnum("trainingMethod", sub.TrainingMethod, v.trainingSet)...)
	if v.strictOthers && sub.TrainingMethod == OthersSentinel && strings.TrimSpace(sub.TrainingMethodOther) == "" {
		violations = append(violations, FieldViolation{
			Field:      "trainingMethodOther",
			Constraint: "required when trainingMethod is " + OthersSentinel,
		})
	}
	violations = append(violations, v.checkEnum("refresherFrequency", sub.RefresherFrequency, v.refresherSet)...)

	violations = append(violations, v.checkMultiSelect("prioritizedPolicies", sub.PrioritizedPolicies, v.policyAreas, true)...)
	violations = append(violations, checkRequiredText("prioritizationReason", sub.PrioritizationReason)...)
	violations = append(violations, checkRequiredText("complianceSuggestions", sub.ComplianceSuggestions)...)

	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}

// checkAwareness requires a rating in [1,5] for exactly the fixed policy areas.
func (v *Validator) checkAwareness(ratings map[string]int) []FieldViolation {
	var violations []FieldViolation
	if ratings == nil {
		return []FieldViolation{{Field: "awareness", Constraint: "required object of policy-area ratings"}}
	}
	for area := range ratings {
		if _, ok := v.policyAreas[area]; !ok {
			violations = append(violations, FieldViolation{
				Field:      "awareness." + area,
				Constraint: "unknown policy area",
				Value:      area,
			})
		}
	}
	for _, area := range PolicyAreas {
		rating, ok := ratings[area]
		if !ok {
			violations = append(violations, FieldViolation{
				Field:      "awareness." + area,
				Constraint: "rating required",
			})
			continue
		}
		if rating < 1 || rating > 5 {
			violations = append(violations, FieldViolation{
				Field:      "awareness." + area,
				Constraint: "rating must be an integer between 1 and 5",
				Value:      rating,
			})
		}
	}
	return violations
}

func (v *Validator) checkEnum(field, value string, allowed map[string]struct{}) []FieldViolation {
	if _, ok := allowed[value]; !ok {
		return []FieldViolation{{
			Field:      field,
			Constraint: "must be one of the allowed values",
			Value:      value,
		}}
	}
	return nil
}

func (v *Validator) checkMultiSelect(field string, values []string, allowed map[string]struct{}, requireNonEmpty bool) []FieldViolation {
	var violations []FieldViolation
	if values == nil {
		violations = append(violations, FieldViolation{Field: field, Constraint: "required array"})
		return violations
	}
	if requireNonEmpty && len(values) == 0 {
		violations = append(violations, FieldViolation{Field: field, Constraint: "at least one selection required"})
	}
	for _, value := range values {
		if _, ok := allowed[value]; !ok {
			violations = append(violations, FieldViolation{
				Field:      field,
				Constraint: "must be within the allowed set",
				Value:      value,
			})
		}
	}
	return violations
}

func (v *Validator) checkOthersPairing(field string, values []string, otherField, otherValue string) []FieldViolation {
	if !v.strictOthers {
		return nil
	}
	for _, value := range values {
		if value == OthersSentinel && strings.TrimSpace(otherValue) == "" {
			return []FieldViolation{{
				Field:      otherField,
				Constraint: "required when " + field + " includes " + OthersSentinel,
			}}
		}
	}
	return nil
}

func checkRequiredText(field, value string) []FieldViolation {
	if strings.TrimSpace(value) == "" {
		return []FieldViolation{{Field: field, Constraint: "must not be empty"}}
	}
	return nil
}
