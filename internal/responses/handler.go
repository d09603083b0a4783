package responses

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/policy-pulse/backend/internal/models"
	"github.com/policy-pulse/backend/pkg/response"
)

// Store is the response read/bulk surface the handler needs.
type Store interface {
	List(ctx context.Context, period, department string, limit, offset int) ([]models.SurveyResponse, error)
	ListAll(ctx context.Context, period string) ([]models.SurveyResponse, error)
	Count(ctx context.Context, period, department string) (int64, error)
	CountByDepartment(ctx context.Context, period string) (map[string]int64, error)
	DeleteByPeriod(ctx context.Context, period string) (int64, error)
}

// CountSource reads the active expected-headcount rows.
type CountSource interface {
	ListActive(ctx context.Context) ([]models.DepartmentCount, error)
}

// ConfigSource reads the current survey config to scope queries to the
// current period.
type ConfigSource interface {
	GetCurrent(ctx context.Context) (*models.SurveyConfig, error)
}

// ResetRequest is the body for POST /reset-responses.
type ResetRequest struct {
	Confirm      bool   `json:"confirm"`
	SurveyPeriod string `json:"surveyPeriod"`
}

// Handler handles admin response-browsing endpoints.
type Handler struct {
	store   Store
	counts  CountSource
	configs ConfigSource
	logger  *zap.Logger
}

// NewHandler creates a responses handler.
func NewHandler(store Store, counts CountSource, configs ConfigSource, logger *zap.Logger) *Handler {
	return &Handler{store: store, counts: counts, configs: configs, logger: logger}
}

// List handles GET /responses?page&limit&department (admin). Storage
// failures degrade to an empty page with a warning instead of an error,
// mirroring the submission path's availability-first policy.
func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	page, limit = clampPage(page, limit)
	department := c.Query("department")

	ctx := c.Request.Context()
	period := h.currentPeriod(ctx)

	total, err := h.store.Count(ctx, period, department)
	if err != nil {
		h.degradedPage(c, page, limit, err)
		return
	}
	list, err := h.store.List(ctx, period, department, limit, (page-1)*limit)
	if err != nil {
		h.degradedPage(c, page, limit, err)
		return
	}
	if list == nil {
		list = []models.SurveyResponse{}
	}
	response.OK(c, gin.H{
		"responses":  list,
		"pagination": NewPageMeta(page, limit, total),
	})
}

// Stats handles GET /responses/stats (admin): per-department expected
// headcount, collected responses, remaining, and response rate.
func (h *Handler) Stats(c *gin.Context) {
	ctx := c.Request.Context()
	period := h.currentPeriod(ctx)

	counts, err := h.counts.ListActive(ctx)
	if err != nil {
		h.logger.Warn("department counts read failed", zap.Error(err))
		response.OKWithWarning(c, gin.H{"departments": []DepartmentStat{}}, "storage unavailable, statistics incomplete")
		return
	}
	byDepartment, err := h.store.CountByDepartment(ctx, period)
	if err != nil {
		h.logger.Warn("response counts read failed", zap.Error(err))
		response.OKWithWarning(c, gin.H{"departments": []DepartmentStat{}}, "storage unavailable, statistics incomplete")
		return
	}
	response.OK(c, gin.H{"departments": ComputeStats(counts, byDepartment)})
}

// Export handles GET /export (admin): streams the current period's
// responses as CSV, one row per response.
func (h *Handler) Export(c *gin.Context) {
	ctx := c.Request.Context()
	period := h.currentPeriod(ctx)

	list, err := h.store.ListAll(ctx, period)
	if err != nil {
		h.logger.Error("export read failed", zap.Error(err))
		response.Internal(c, "failed to load responses for export")
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="survey-responses.csv"`)
	if err := WriteCSV(c.Writer, list); err != nil {
		h.logger.Error("csv write failed", zap.Error(err))
	}
}

// ResetResponses handles POST /reset-responses (admin): bulk-deletes one
// survey generation. Requires an explicit confirmation flag and a period
// scope; there is no unscoped delete.
func (h *Handler) ResetResponses(c *gin.Context) {
	var req ResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if !req.Confirm {
		response.BadRequest(c, "confirm must be true to delete responses")
		return
	}
	if req.SurveyPeriod == "" {
		response.BadRequest(c, "surveyPeriod is required")
		return
	}

	deleted, err := h.store.DeleteByPeriod(c.Request.Context(), req.SurveyPeriod)
	if err != nil {
		h.logger.Error("response delete failed", zap.Error(err), zap.String("survey_period", req.SurveyPeriod))
		response.Internal(c, "failed to delete responses")
		return
	}
	h.logger.Info("responses deleted", zap.String("survey_period", req.SurveyPeriod), zap.Int64("deleted", deleted))
	response.OK(c, gin.H{"surveyPeriod": req.SurveyPeriod, "deleted": deleted})
}

func (h *Handler) currentPeriod(ctx context.Context) string {
	cfg, err := h.configs.GetCurrent(ctx)
	if err != nil || cfg == nil || cfg.SurveyPeriod == "" {
		return models.DefaultSurveyPeriod
	}
	return cfg.SurveyPeriod
}

func (h *Handler) degradedPage(c *gin.Context, page, limit int, err error) {
	h.logger.Warn("response read failed", zap.Error(err))
	response.OKWithWarning(c, gin.H{
		"responses":  []models.SurveyResponse{},
		"pagination": NewPageMeta(page, limit, 0),
	}, "storage unavailable, showing empty result")
}
