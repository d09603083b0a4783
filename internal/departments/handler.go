package departments

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/policy-pulse/backend/internal/models"
	"github.com/policy-pulse/backend/internal/survey"
	"github.com/policy-pulse/backend/pkg/response"
)

// Store is the department-count persistence surface the handler needs.
type Store interface {
	ListActive(ctx context.Context) ([]models.DepartmentCount, error)
	Replace(ctx context.Context, counts []models.DepartmentCount) error
}

// CountEntry is one department's expected headcount in a replace request.
type CountEntry struct {
	Department string `json:"department" binding:"required"`
	StaffCount int    `json:"staffCount"`
}

// ReplaceRequest is the body for PUT /department-counts.
type ReplaceRequest struct {
	Counts []CountEntry `json:"counts" binding:"required"`
}

// Handler handles admin department-count endpoints.
type Handler struct {
	store  Store
	logger *zap.Logger
}

// NewHandler creates a departments handler.
func NewHandler(store Store, logger *zap.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// List handles GET /department-counts (admin).
func (h *Handler) List(c *gin.Context) {
	list, err := h.store.ListActive(c.Request.Context())
	if err != nil {
		h.logger.Error("department counts read failed", zap.Error(err))
		response.Internal(c, "failed to load department counts")
		return
	}
	if list == nil {
		list = []models.DepartmentCount{}
	}
	response.OK(c, list)
}

// Replace handles PUT /department-counts (admin): swaps the active count
// set. Unknown departments and negative counts are rejected.
func (h *Handler) Replace(c *gin.Context) {
	var req ReplaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	known := make(map[string]struct{}, len(survey.Departments))
	for _, department := range survey.Departments {
		known[department] = struct{}{}
	}
	seen := make(map[string]struct{}, len(req.Counts))
	counts := make([]models.DepartmentCount, 0, len(req.Counts))
	for _, entry := range req.Counts {
		if _, ok := known[entry.Department]; !ok {
			response.BadRequest(c, "unknown department: "+entry.Department)
			return
		}
		if _, dup := seen[entry.Department]; dup {
			response.BadRequest(c, "duplicate department: "+entry.Department)
			return
		}
		if entry.StaffCount < 0 {
			response.BadRequest(c, "staffCount must not be negative for "+entry.Department)
			return
		}
		seen[entry.Department] = struct{}{}
		counts = append(counts, models.DepartmentCount{Department: entry.Department, StaffCount: entry.StaffCount})
	}

	if err := h.store.Replace(c.Request.Context(), counts); err != nil {
		h.logger.Error("department counts replace failed", zap.Error(err))
		response.Internal(c, "failed to replace department counts")
		return
	}
	response.OK(c, gin.H{"replaced": len(counts)})
}
