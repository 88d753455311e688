package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "ledgerlens/internal/errors"
	"ledgerlens/internal/middleware"
	"ledgerlens/internal/models"
	"ledgerlens/internal/services"
)

// AuthHandler serves registration, login, and token lifecycle endpoints.
type AuthHandler struct {
	users services.UserService
	audit services.AuditService
}

// NewAuthHandler creates an auth handler.
func NewAuthHandler(users services.UserService, audit services.AuditService) *AuthHandler {
	return &AuthHandler{users: users, audit: audit}
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest carries a refresh token to exchange.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// TokenResponse returns a token pair and the authenticated user.
type TokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         *models.User `json:"user,omitempty"`
}

// Register godoc
// @Summary Register a new account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body services.RegisterRequest true "Registration payload"
// @Success 201 {object} models.User
// @Failure 409 {object} errors.AppError
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.users.Register(req)
	if err != nil {
		fail(c, err)
		return
	}

	h.audit.Log(user.ID, "register", "user", user.ID, c.ClientIP(), "")
	c.JSON(http.StatusCreated, user)
}

// Login godoc
// @Summary Authenticate and receive a token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} TokenResponse
// @Failure 401 {object} errors.AppError
// @Failure 423 {object} errors.AppError
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.users.AttemptLogin(req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}

	tokens, err := h.issueTokens(user)
	if err != nil {
		fail(c, err)
		return
	}
	tokens.User = user

	h.audit.Log(user.ID, "login", "user", user.ID, c.ClientIP(), "")
	c.JSON(http.StatusOK, tokens)
}

// Refresh godoc
// @Summary Exchange a refresh token for a new token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RefreshRequest true "Refresh token"
// @Success 200 {object} TokenResponse
// @Failure 401 {object} errors.AppError
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if !bindJSON(c, &req) {
		return
	}

	claims, err := middleware.ValidateToken(req.RefreshToken, "refresh")
	if err != nil {
		fail(c, err)
		return
	}

	user, err := h.users.ValidateRefreshToken(claims.UserID, middleware.HashToken(req.RefreshToken))
	if err != nil {
		fail(c, err)
		return
	}

	tokens, err := h.issueTokens(user)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, tokens)
}

// Logout godoc
// @Summary Invalidate the current session's refresh token
// @Tags auth
// @Security BearerAuth
// @Success 204
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	userID := middleware.UserID(c)
	if err := h.users.ClearRefreshToken(userID); err != nil {
		fail(c, err)
		return
	}
	h.audit.Log(userID, "logout", "user", userID, c.ClientIP(), "")
	c.Status(http.StatusNoContent)
}

// Me godoc
// @Summary Get the authenticated user's profile
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.User
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.users.GetByID(middleware.UserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) issueTokens(user *models.User) (*TokenResponse, error) {
	access, err := middleware.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	refresh, err := middleware.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := h.users.StoreRefreshToken(user.ID, middleware.HashToken(refresh)); err != nil {
		return nil, err
	}
	return &TokenResponse{AccessToken: access, RefreshToken: refresh}, nil
}
