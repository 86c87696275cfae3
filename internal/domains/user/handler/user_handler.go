package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"campaignhub-backend/internal/domains/user/model"
	"campaignhub-backend/internal/domains/user/service"
	"campaignhub-backend/internal/shared/middleware"
	"campaignhub-backend/internal/shared/response"
	"campaignhub-backend/pkg/logger"
)

// =====================================================
// USER HANDLER
// =====================================================

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// Register - POST /auth/register
func (h *UserHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Invalid request body")
		return
	}

	auth, err := h.userService.Register(c.Request.Context(), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, auth)
}

// Login - POST /auth/login
func (h *UserHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Invalid request body")
		return
	}

	auth, err := h.userService.Login(c.Request.Context(), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, auth)
}

// RefreshToken - POST /auth/refresh
func (h *UserHandler) RefreshToken(c *gin.Context) {
	var req model.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Invalid request body")
		return
	}

	tokens, err := h.userService.Refresh(c.Request.Context(), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, tokens)
}

// Logout - POST /auth/logout
func (h *UserHandler) Logout(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.userService.Logout(c.Request.Context(), callerID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"logged_out": true})
}

// GetProfile - GET /users/me
func (h *UserHandler) GetProfile(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	user, err := h.userService.GetProfile(c.Request.Context(), callerID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, model.NewUserResponse(user))
}

// =====================================================
// ERROR MAPPING
// =====================================================

func (h *UserHandler) handleServiceError(c *gin.Context, err error) {
	var vErrs validation.Errors
	switch {
	case errors.As(err, &vErrs):
		response.ValidationErrorWithDetails(c, "Validation failed", vErrs)
	case errors.Is(err, model.ErrEmailAlreadyExists):
		response.Conflict(c, err.Error())
	case errors.Is(err, model.ErrInvalidCredentials), errors.Is(err, model.ErrInvalidRefreshToken):
		response.Unauthorized(c, err.Error())
	case errors.Is(err, model.ErrUserNotFound):
		response.NotFound(c, err.Error())
	default:
		logger.Error("user handler internal error", err)
		response.InternalServerError(c, "Something went wrong")
	}
}
