package auth

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/policy-pulse/backend/internal/models"
	"github.com/policy-pulse/backend/pkg/response"
	"github.com/policy-pulse/backend/pkg/utils"
)

// LoginRequest is the body for POST /auth/login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse is the auth response with JWT.
type TokenResponse struct {
	Token string            `json:"token"`
	User  *models.AdminUser `json:"user"`
}

// Handler handles auth HTTP endpoints.
type Handler struct {
	repo   *Repository
	jwt    *JWTService
	logger *zap.Logger
}

// NewHandler creates an auth handler.
func NewHandler(repo *Repository, jwt *JWTService, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, jwt: jwt, logger: logger}
}

// Login handles POST /auth/login.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	user, err := h.repo.GetByUsername(c.Request.Context(), req.Username)
	if err != nil {
		response.Unauthorized(c, "invalid username or password")
		return
	}
	if !utils.CheckPassword(req.Password, user.PasswordHash) {
		response.Unauthorized(c, "invalid username or password")
		return
	}

	token, err := h.jwt.Generate(user.ID, user.Username, string(user.Role))
	if err != nil {
		h.logger.Error("token generation failed", zap.Error(err))
		response.Internal(c, "failed to generate token")
		return
	}
	if err := h.repo.UpdateLastLogin(c.Request.Context(), user.ID); err != nil {
		h.logger.Warn("last-login update failed", zap.Error(err))
	}

	response.OK(c, TokenResponse{Token: token, User: user})
}

// CreateAdminRequest is the body for POST /auth/admins.
type CreateAdminRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// CreateAdmin handles POST /auth/admins (admin only).
func (h *Handler) CreateAdmin(c *gin.Context) {
	var req CreateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	if _, err := h.repo.GetByUsername(c.Request.Context(), req.Username); err == nil {
		response.BadRequest(c, "username already taken")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		response.Internal(c, "failed to hash password")
		return
	}
	user, err := h.repo.Create(c.Request.Context(), req.Username, hash, models.RoleAdmin)
	if err != nil {
		h.logger.Error("admin create failed", zap.Error(err))
		response.Internal(c, "failed to create admin")
		return
	}
	response.Created(c, user)
}

// DeactivateAdmin handles DELETE /auth/admins/:id (admin only). Accounts are
// soft-deactivated, never hard-deleted, and an admin cannot deactivate the
// account they are logged in with.
func (h *Handler) DeactivateAdmin(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid admin id")
		return
	}
	if callerID, ok := c.Get(ContextUserID); ok {
		if caller, ok := callerID.(uuid.UUID); ok && caller == id {
			response.BadRequest(c, "cannot deactivate the account you are logged in with")
			return
		}
	}

	if _, err := h.repo.GetByID(c.Request.Context(), id); err != nil {
		response.NotFound(c, "admin not found")
		return
	}
	if err := h.repo.Deactivate(c.Request.Context(), id); err != nil {
		h.logger.Error("admin deactivate failed", zap.Error(err))
		response.Internal(c, "failed to deactivate admin")
		return
	}
	response.OK(c, gin.H{"id": id, "active": false})
}

// EnsureAdmin seeds the primary admin account when it does not exist yet.
func EnsureAdmin(ctx context.Context, repo *Repository, username, password string, logger *zap.Logger) error {
	_, err := repo.GetByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrNotFound) {
		return err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	if _, err := repo.Create(ctx, username, hash, models.RoleAdmin); err != nil {
		return err
	}
	logger.Info("primary admin account seeded", zap.String("username", username))
	return nil
}
