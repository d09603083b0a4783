package survey

import (
	"context"
	"math"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/policy-pulse/backend/internal/models"
	"github.com/policy-pulse/backend/internal/ratelimit"
	"github.com/policy-pulse/backend/pkg/response"
)

// ConfigSource reads the current survey configuration. A nil config or an
// error means no authoritative window exists; the handler fails open.
type ConfigSource interface {
	GetCurrent(ctx context.Context) (*models.SurveyConfig, error)
}

// Handler handles public submission endpoints.
type Handler struct {
	validator *Validator
	configs   ConfigSource
	limiter   *ratelimit.Limiter
	persister *Persister
	logger    *zap.Logger
	now       func() time.Time
}

// NewHandler creates the submission handler.
func NewHandler(validator *Validator, configs ConfigSource, limiter *ratelimit.Limiter, persister *Persister, logger *zap.Logger) *Handler {
	return &Handler{
		validator: validator,
		configs:   configs,
		limiter:   limiter,
		persister: persister,
		logger:    logger,
		now:       time.Now,
	}
}

// Submit handles POST /submit: validate, gate on the survey window, rate
// limit, persist. Storage failures never surface as errors here; the
// persister degrades to a fallback success instead.
func (h *Handler) Submit(c *gin.Context) {
	var sub Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	if err := h.validator.Validate(&sub); err != nil {
		valErr := err.(*ValidationError)
		response.BadRequestDetails(c, "submission failed validation", valErr.Violations)
		return
	}

	cfg, err := h.configs.GetCurrent(c.Request.Context())
	if err != nil {
		// Fail open: an unreachable config must not block submissions.
		h.logger.Warn("survey config unavailable, accepting submission", zap.Error(err))
		cfg = nil
	}
	now := h.now()
	if err := CheckWindow(cfg, now); err != nil {
		unavailable := err.(*UnavailableError)
		response.ForbiddenDetails(c, unavailable.Error(), unavailable)
		return
	}

	decision := h.limiter.Allow(c.Request.Context(), c.ClientIP())
	if !decision.Allowed {
		retryAfter := int(math.Ceil(decision.RetryAfter.Seconds()))
		response.TooManyRequests(c, "too many submissions, please try again later", retryAfter)
		return
	}

	resp := h.toResponse(&sub, cfg, now)
	result := h.persister.Persist(c.Request.Context(), resp)

	data := gin.H{"id": result.ID}
	if result.Fallback {
		response.CreatedWithWarning(c, data, result.Warning)
		return
	}
	response.Created(c, data)
}

func (h *Handler) toResponse(sub *Submission, cfg *models.SurveyConfig, now time.Time) *models.SurveyResponse {
	period := models.DefaultSurveyPeriod
	if cfg != nil && cfg.SurveyPeriod != "" {
		period = cfg.SurveyPeriod
	}
	return &models.SurveyResponse{
		ID:                        uuid.New(),
		Department:                sub.Department,
		Awareness:                 sub.Awareness,
		GuidanceNeeds:             sub.GuidanceNeeds,
		GuidanceOther:             sub.GuidanceOther,
		ResourceNeeds:             sub.ResourceNeeds,
		ResourceOther:             sub.ResourceOther,
		ConfidenceLevel:           sub.ConfidenceLevel,
		FacedUnsureSituation:      sub.FacedUnsureSituation,
		UnsureSituationDetail:     sub.UnsureSituationDetail,
		ObservedIssues:            sub.ObservedIssues,
		ReportingChannelKnowledge: sub.ReportingChannelKnowledge,
		TrainingMethod:            sub.TrainingMethod,
		TrainingMethodOther:       sub.TrainingMethodOther,
		RefresherFrequency:        sub.RefresherFrequency,
		PrioritizedPolicies:       sub.PrioritizedPolicies,
		PrioritizationReason:      sub.PrioritizationReason,
		Challenges:                sub.Challenges,
		ComplianceSuggestions:     sub.ComplianceSuggestions,
		GeneralComments:           sub.GeneralComments,
		SurveyPeriod:              period,
		CreatedAt:                 now,
	}
}
