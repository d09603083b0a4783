// Package survey implements the submission lifecycle: questionnaire schema
// validation, response-window gating, and durable-with-fallback persistence.
package survey

// OthersSentinel is the reserved multi-select value indicating free-text
// elaboration is expected in the paired "other" field.
const OthersSentinel = "Others"

// Departments is the fixed set of departments a respondent may select.
var Departments = []string{
	"Human Resources",
	"Finance",
	"Operations",
	"Information Technology",
	"Sales",
	"Marketing",
	"Legal & Compliance",
	"Customer Service",
	"Procurement",
	"Administration",
}

// PolicyAreas is the fixed set of 11 policy areas rated in the awareness map
// and selectable in guidanceNeeds/prioritizedPolicies.
var PolicyAreas = []string{
	"code_of_conduct",
	"anti_harassment",
	"data_privacy",
	"information_security",
	"conflict_of_interest",
	"anti_bribery",
	"health_safety",
	"leave_attendance",
	"expense_reimbursement",
	"social_media_use",
	"whistleblower_protection",
}

// ResourceOptions are the selectable support resources.
var ResourceOptions = []string{
	"employee_handbook",
	"intranet_portal",
	"quick_reference_cards",
	"manager_briefings",
	"helpdesk",
	OthersSentinel,
}

// ObservedIssueOptions are the selectable policy-compliance issues.
var ObservedIssueOptions = []string{
	"unreported_incidents",
	"policy_shortcuts",
	"unclear_ownership",
	"outdated_documents",
	"inconsistent_enforcement",
	"none_observed",
}

// ConfidenceLevels rank how confident the respondent feels applying policies.
var ConfidenceLevels = []string{
	"very_confident",
	"confident",
	"neutral",
	"not_confident",
	"not_at_all_confident",
}

// ReportingChannelLevels rank knowledge of where to report a violation.
var ReportingChannelLevels = []string{
	"know_exactly",
	"have_rough_idea",
	"no_idea",
}

// TrainingMethods are the selectable preferred training formats.
var TrainingMethods = []string{
	"in_person_workshop",
	"e_learning",
	"email_digest",
	"team_briefing",
	OthersSentinel,
}

// RefresherFrequencies are the selectable refresher-training cadences.
var RefresherFrequencies = []string{
	"monthly",
	"quarterly",
	"half_yearly",
	"yearly",
	"on_major_change",
}

// guidanceOptions is PolicyAreas plus the Others sentinel.
func guidanceOptions() []string {
	return append(append([]string{}, PolicyAreas...), OthersSentinel)
}

func toSet(values []string) map[string]struct{} {
	s := make(map[string]struct{}, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}
