package models

import (
	"time"

	"github.com/google/uuid"
)

// SurveyConfig is the singleton window/metadata record for the current survey
// generation. Submissions are accepted only while IsActive and now falls
// inside [StartDate, EndDate]; when no record exists the guard fails open.
type SurveyConfig struct {
	ID                uuid.UUID `json:"id"`
	SurveyPeriod      string    `json:"surveyPeriod"`
	IsActive          bool      `json:"isActive"`
	StartDate         time.Time `json:"startDate"`
	EndDate           time.Time `json:"endDate"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	ExpectedResponses int       `json:"expectedResponses"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// DefaultSurveyConfig returns the lazily-created config: a 7-day window
// starting at now, active, for the default period.
func DefaultSurveyConfig(now time.Time) *SurveyConfig {
	return &SurveyConfig{
		SurveyPeriod: DefaultSurveyPeriod,
		IsActive:     true,
		StartDate:    now,
		EndDate:      now.Add(7 * 24 * time.Hour),
		Title:        "Policy Awareness Survey",
		Description:  "Anonymous survey on workplace policy awareness.",
	}
}
