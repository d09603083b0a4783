package surveyconfig

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/policy-pulse/backend/internal/models"
	"github.com/policy-pulse/backend/pkg/response"
)

// ArchivePeriodPrefix tags the generation responses are moved to on reset.
const ArchivePeriodPrefix = "archived-"

// Store is the config persistence surface the handler needs.
type Store interface {
	GetCurrent(ctx context.Context) (*models.SurveyConfig, error)
	Create(ctx context.Context, cfg *models.SurveyConfig) error
	Update(ctx context.Context, cfg *models.SurveyConfig) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ResponseArchiver bulk re-tags responses from one survey period to another.
type ResponseArchiver interface {
	RetagPeriod(ctx context.Context, from, to string) (int64, error)
}

// UpdateRequest is the body for PUT /survey-config.
type UpdateRequest struct {
	IsActive          *bool     `json:"isActive" binding:"required"`
	StartDate         time.Time `json:"startDate" binding:"required"`
	EndDate           time.Time `json:"endDate" binding:"required"`
	Title             *string   `json:"title"`
	Description       *string   `json:"description"`
	ExpectedResponses *int      `json:"expectedResponses"`
}

// Handler handles survey-config endpoints. Reads are public; writes and
// reset are admin-only (enforced by route middleware).
type Handler struct {
	store     Store
	responses ResponseArchiver
	logger    *zap.Logger
	now       func() time.Time
}

// NewHandler creates a survey-config handler.
func NewHandler(store Store, responses ResponseArchiver, logger *zap.Logger) *Handler {
	return &Handler{store: store, responses: responses, logger: logger, now: time.Now}
}

// Get handles GET /survey-config, lazily creating a default 7-day window
// when no config exists yet.
func (h *Handler) Get(c *gin.Context) {
	cfg, err := h.store.GetCurrent(c.Request.Context())
	if err != nil {
		// Read path stays available: report the default window with a warning.
		h.logger.Warn("survey config read failed", zap.Error(err))
		response.OKWithWarning(c, models.DefaultSurveyConfig(h.now()), "storage unavailable, showing default configuration")
		return
	}
	if cfg == nil {
		cfg = models.DefaultSurveyConfig(h.now())
		if err := h.store.Create(c.Request.Context(), cfg); err != nil {
			h.logger.Warn("lazy config create failed", zap.Error(err))
			response.OKWithWarning(c, cfg, "storage unavailable, showing default configuration")
			return
		}
	}
	response.OK(c, cfg)
}

// Update handles PUT /survey-config (admin). Upserts the singleton config.
func (h *Handler) Update(c *gin.Context) {
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if req.EndDate.Before(req.StartDate) {
		response.BadRequest(c, "endDate must not be before startDate")
		return
	}

	ctx := c.Request.Context()
	cfg, err := h.store.GetCurrent(ctx)
	if err != nil {
		response.Internal(c, "failed to load survey config")
		return
	}
	created := false
	if cfg == nil {
		cfg = models.DefaultSurveyConfig(h.now())
		created = true
	}

	cfg.IsActive = *req.IsActive
	cfg.StartDate = req.StartDate
	cfg.EndDate = req.EndDate
	if req.Title != nil {
		cfg.Title = *req.Title
	}
	if req.Description != nil {
		cfg.Description = *req.Description
	}
	if req.ExpectedResponses != nil {
		cfg.ExpectedResponses = *req.ExpectedResponses
	}

	if created {
		err = h.store.Create(ctx, cfg)
	} else {
		err = h.store.Update(ctx, cfg)
	}
	if err != nil {
		h.logger.Error("survey config write failed", zap.Error(err))
		response.Internal(c, "failed to save survey config")
		return
	}
	response.OK(c, cfg)
}

// Reset handles DELETE /survey-config (admin): archives all current-period
// responses under a fresh timestamp-derived period tag, removes the config,
// and creates a new default one. Responses are preserved, never destroyed.
func (h *Handler) Reset(c *gin.Context) {
	ctx := c.Request.Context()
	now := h.now()

	cfg, err := h.store.GetCurrent(ctx)
	if err != nil {
		response.Internal(c, "failed to load survey config")
		return
	}

	period := models.DefaultSurveyPeriod
	if cfg != nil && cfg.SurveyPeriod != "" {
		period = cfg.SurveyPeriod
	}
	archiveTag := ArchivePeriodPrefix + now.UTC().Format("20060102150405")

	archived, err := h.responses.RetagPeriod(ctx, period, archiveTag)
	if err != nil {
		h.logger.Error("response archiving failed", zap.Error(err))
		response.Internal(c, "failed to archive responses")
		return
	}

	if cfg != nil {
		if err := h.store.Delete(ctx, cfg.ID); err != nil {
			h.logger.Error("config delete failed", zap.Error(err))
			response.Internal(c, "failed to remove previous survey config")
			return
		}
	}

	fresh := models.DefaultSurveyConfig(now)
	if err := h.store.Create(ctx, fresh); err != nil {
		h.logger.Error("config create failed", zap.Error(err))
		response.Internal(c, "failed to create new survey config")
		return
	}

	h.logger.Info("survey reset",
		zap.String("archived_period", archiveTag),
		zap.Int64("archived_responses", archived),
	)
	response.OK(c, gin.H{
		"archivedPeriod":    archiveTag,
		"archivedResponses": archived,
		"config":            fresh,
	})
}
