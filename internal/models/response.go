package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultSurveyPeriod tags responses collected since the last administrative
// reset. Resets move existing rows to an archival period tag instead of
// deleting them.
const DefaultSurveyPeriod = "default"

// SurveyResponse is one anonymous submission of the policy-awareness
// questionnaire. Records are immutable after creation; a reset only changes
// SurveyPeriod.
type SurveyResponse struct {
	ID         uuid.UUID `json:"id"`
	Department string    `json:"department"`

	// Awareness maps each of the fixed policy areas to a 1-5 rating.
	Awareness map[string]int `json:"awareness"`

	GuidanceNeeds []string `json:"guidanceNeeds"`
	GuidanceOther string   `json:"guidanceOther,omitempty"`
	ResourceNeeds []string `json:"resourceNeeds"`
	ResourceOther string   `json:"resourceOther,omitempty"`

	ConfidenceLevel       string `json:"confidenceLevel"`
	FacedUnsureSituation  bool   `json:"facedUnsureSituation"`
	UnsureSituationDetail string `json:"unsureSituationDetail,omitempty"`

	ObservedIssues            []string `json:"observedIssues"`
	ReportingChannelKnowledge string   `json:"reportingChannelKnowledge"`

	TrainingMethod      string `json:"trainingMethod"`
	TrainingMethodOther string `json:"trainingMethodOther,omitempty"`
	RefresherFrequency  string `json:"refresherFrequency"`

	PrioritizedPolicies  []string `json:"prioritizedPolicies"`
	PrioritizationReason string   `json:"prioritizationReason"`

	Challenges            string `json:"challenges,omitempty"`
	ComplianceSuggestions string `json:"complianceSuggestions"`
	GeneralComments       string `json:"generalComments,omitempty"`

	SurveyPeriod string    `json:"surveyPeriod"`
	CreatedAt    time.Time `json:"createdAt"`
}
