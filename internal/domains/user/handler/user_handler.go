package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"blogicum-backend/internal/domains/user"
	"blogicum-backend/internal/shared/middleware"
	"blogicum-backend/internal/shared/response"
	"blogicum-backend/pkg/logger"
)

var timeNow = time.Now

// UserHandler xử lý HTTP requests cho auth và profile
type UserHandler struct {
	service user.Service
}

func NewUserHandler(service user.Service) *UserHandler {
	return &UserHandler{service: service}
}

// ========================================
// AUTHENTICATION ENDPOINTS
// ========================================

// Register xử lý POST /auth/registration, thành công → redirect về trang chủ
func (h *UserHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	userDTO, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Redirect(c, "/", userDTO)
}

// Login xử lý POST /auth/login
func (h *UserHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// Logout xử lý POST /auth/logout - revoke token hiện tại
func (h *UserHandler) Logout(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.service.Logout(c.Request.Context(), claims.TokenID(), claims.Remaining(timeNow())); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"logged_out": true})
}

// ChangePassword xử lý PUT /auth/password_change
func (h *UserHandler) ChangePassword(c *gin.Context) {
	userID, ok := middleware.GetAuthenticatedUserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	var req user.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), *userID, req); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"password_changed": true})
}

// ========================================
// PROFILE ENDPOINTS
// ========================================

// GetMe xử lý GET /profile - thông tin của chính mình (kèm email)
func (h *UserHandler) GetMe(c *gin.Context) {
	userID, ok := middleware.GetAuthenticatedUserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	dto, err := h.service.GetProfile(c.Request.Context(), *userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, dto)
}

// UpdateProfile xử lý PUT /profile → redirect tới trang profile mới
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := middleware.GetAuthenticatedUserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	var req user.UpdateProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	dto, err := h.service.UpdateProfile(c.Request.Context(), *userID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Redirect(c, "/profile/"+dto.Username, dto)
}

// handleError map domain errors thành HTTP responses
func (h *UserHandler) handleError(c *gin.Context, err error) {
	var verrs validation.Errors

	switch {
	// 400 Bad Request
	case errors.As(err, &verrs):
		response.ValidationError(c, err)
	case errors.Is(err, user.ErrSamePassword),
		errors.Is(err, user.ErrWrongPassword):
		response.BadRequest(c, err.Error())

	// 401 Unauthorized
	case errors.Is(err, user.ErrInvalidCredentials),
		errors.Is(err, user.ErrUserInactive):
		response.Unauthorized(c, err.Error())

	// 404 Not Found
	case errors.Is(err, user.ErrUserNotFound):
		response.NotFound(c, err.Error())

	// 409 Conflict
	case errors.Is(err, user.ErrUsernameTaken),
		errors.Is(err, user.ErrEmailAlreadyExists):
		response.Conflict(c, err.Error())

	default:
		logger.ErrorWithFields("user handler: internal error", err, map[string]interface{}{
			"request_id": c.GetString(middleware.ContextRequestID),
			"path":       c.FullPath(),
		})
		response.InternalServerError(c, "Internal server error")
	}
}
