package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"blogicum-backend/internal/shared/response"
	"blogicum-backend/pkg/jwt"
)

// Context keys set by the auth middlewares
const (
	ContextUserID          = "user_id"
	ContextUsername        = "username"
	ContextRole            = "role"
	ContextClaims          = "token_claims"
	ContextIsAuthenticated = "is_authenticated"
)

var errTokenRevoked = errors.New("token revoked")

// TokenRevocationChecker reports whether a token id was revoked by logout
type TokenRevocationChecker interface {
	IsTokenRevoked(ctx context.Context, tokenID string) (bool, error)
}

// AuthMiddleware - Middleware xác thực JWT token, bắt buộc phải có
func AuthMiddleware(manager *jwt.Manager, revocations TokenRevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Lấy token từ Authorization header
		token, ok := bearerToken(c)
		if !ok {
			response.Unauthorized(c, "missing or malformed authorization header")
			c.Abort()
			return
		}

		// 2. Verify và parse JWT
		claims, userID, err := authenticate(c.Request.Context(), manager, revocations, token)
		if err != nil {
			response.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}

		// 3. Set identity vào context
		setIdentity(c, claims, userID)
		c.Next()
	}
}

// OptionalAuthMiddleware cho phép cả anonymous lẫn authenticated users
// Token sai/hết hạn => treat as anonymous, không trả lỗi
//
// In handlers:
//
//	viewerID, ok := GetAuthenticatedUserID(c) // (*uuid.UUID, bool)
func OptionalAuthMiddleware(manager *jwt.Manager, revocations TokenRevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextIsAuthenticated, false)

		token, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}

		claims, userID, err := authenticate(c.Request.Context(), manager, revocations, token)
		if err != nil {
			log.Debug().Err(err).Msg("optional auth: treating request as anonymous")
			c.Next()
			return
		}

		setIdentity(c, claims, userID)
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	parts := strings.Split(c.GetHeader("Authorization"), " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func authenticate(ctx context.Context, manager *jwt.Manager, revocations TokenRevocationChecker, token string) (*jwt.Claims, uuid.UUID, error) {
	claims, err := manager.ValidateAccessToken(token)
	if err != nil {
		return nil, uuid.Nil, err
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, uuid.Nil, err
	}

	if revocations != nil {
		revoked, err := revocations.IsTokenRevoked(ctx, claims.TokenID())
		if err != nil {
			return nil, uuid.Nil, err
		}
		if revoked {
			return nil, uuid.Nil, errTokenRevoked
		}
	}

	return claims, userID, nil
}

func setIdentity(c *gin.Context, claims *jwt.Claims, userID uuid.UUID) {
	c.Set(ContextIsAuthenticated, true)
	c.Set(ContextUserID, userID)
	c.Set(ContextUsername, claims.Username)
	c.Set(ContextRole, claims.Role)
	c.Set(ContextClaims, claims)
}

// GetAuthenticatedUserID retrieves user ID if user is authenticated
// Returns: (userID, true) if authenticated, (nil, false) if anonymous
func GetAuthenticatedUserID(c *gin.Context) (*uuid.UUID, bool) {
	if !c.GetBool(ContextIsAuthenticated) {
		return nil, false
	}

	userID, exists := c.Get(ContextUserID)
	if !exists {
		return nil, false
	}

	uid, ok := userID.(uuid.UUID)
	if !ok {
		return nil, false
	}

	return &uid, true
}

// GetClaims returns the parsed token of an authenticated request
func GetClaims(c *gin.Context) (*jwt.Claims, bool) {
	v, exists := c.Get(ContextClaims)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	return claims, ok
}
