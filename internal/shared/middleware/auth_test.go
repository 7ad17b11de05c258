package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogicum-backend/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type revokedSet map[string]bool

func (r revokedSet) IsTokenRevoked(_ context.Context, id string) (bool, error) {
	return r[id], nil
}

func issue(t *testing.T, m *jwt.Manager, role string) (string, *jwt.Claims, uuid.UUID) {
	t.Helper()
	id := uuid.New()
	token, claims, err := m.GenerateAccessToken(id.String(), "leo", role)
	require.NoError(t, err)
	return token, claims, id
}

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers = append(handlers, func(c *gin.Context) {
		uid, ok := GetAuthenticatedUserID(c)
		if !ok {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, uid.String())
	})
	r.GET("/", handlers...)
	return r
}

func do(r http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	m := jwt.NewManager("secret", time.Hour)
	token, claims, id := issue(t, m, "user")
	revoked := revokedSet{}
	r := newEngine(AuthMiddleware(m, revoked))

	w := do(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id.String(), w.Body.String())

	revoked[claims.TokenID()] = true
	w = do(r, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOptionalAuthMiddleware(t *testing.T) {
	m := jwt.NewManager("secret", time.Hour)
	token, _, id := issue(t, m, "user")
	r := newEngine(OptionalAuthMiddleware(m, nil))

	w := do(r, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "anonymous", w.Body.String())

	w = do(r, "expired-or-bad")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "anonymous", w.Body.String())

	w = do(r, token)
	assert.Equal(t, id.String(), w.Body.String())
}

func TestAdminMiddleware(t *testing.T) {
	m := jwt.NewManager("secret", time.Hour)
	userToken, _, _ := issue(t, m, "user")
	adminToken, _, _ := issue(t, m, RoleAdmin)
	r := newEngine(AuthMiddleware(m, nil), AdminMiddleware())

	assert.Equal(t, http.StatusForbidden, do(r, userToken).Code)
	assert.Equal(t, http.StatusOK, do(r, adminToken).Code)
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(ContextRequestID)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Body.String())
	assert.Equal(t, "abc", w.Header().Get(HeaderRequestID))

	w = do(r, "")
	assert.NotEmpty(t, w.Header().Get(HeaderRequestID))
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery())
	r.GET("/", func(c *gin.Context) { panic("boom") })

	assert.Equal(t, http.StatusInternalServerError, do(r, "").Code)
}
