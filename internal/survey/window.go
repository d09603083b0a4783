package survey

import (
	"fmt"
	"time"

	"github.com/policy-pulse/backend/internal/models"
)

// WindowState classifies where the current instant falls relative to the
// configured survey window.
type WindowState string

const (
	WindowActive     WindowState = "active"
	WindowNotStarted WindowState = "not_started"
	WindowEnded      WindowState = "ended"
	WindowInactive   WindowState = "inactive"
)

// UnavailableError rejects a submission that arrives outside the survey
// window, carrying the reason and schedule for user display.
type UnavailableError struct {
	State WindowState `json:"state"`
	Start time.Time   `json:"startDate"`
	End   time.Time   `json:"endDate"`
}

func (e *UnavailableError) Error() string {
	switch e.State {
	case WindowNotStarted:
		return fmt.Sprintf("survey has not started yet; it opens at %s", e.Start.Format(time.RFC3339))
	case WindowEnded:
		return fmt.Sprintf("survey has ended; it closed at %s", e.End.Format(time.RFC3339))
	default:
		return "survey is not currently accepting responses"
	}
}

// EvaluateWindow returns the window state for cfg at now. A nil cfg is
// treated as active: missing or unreachable configuration fails open, since
// losing genuine responses is worse than accepting a few outside the nominal
// window.
func EvaluateWindow(cfg *models.SurveyConfig, now time.Time) WindowState {
	if cfg == nil {
		return WindowActive
	}
	if !cfg.IsActive {
		return WindowInactive
	}
	if now.Before(cfg.StartDate) {
		return WindowNotStarted
	}
	if now.After(cfg.EndDate) {
		return WindowEnded
	}
	return WindowActive
}

// CheckWindow returns nil when a submission may be accepted at now, or an
// *UnavailableError describing why not.
func CheckWindow(cfg *models.SurveyConfig, now time.Time) error {
	state := EvaluateWindow(cfg, now)
	if state == WindowActive {
		return nil
	}
	unavailable := &UnavailableError{State: state}
	if cfg != nil {
		unavailable.Start = cfg.StartDate
		unavailable.End = cfg.EndDate
	}
	return unavailable
}
