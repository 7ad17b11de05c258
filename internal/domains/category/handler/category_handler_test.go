package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"blogicum-backend/internal/domains/category"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) GetPublishedBySlug(ctx context.Context, slug string) (*category.Category, error) {
	args := m.Called(ctx, slug)
	c, _ := args.Get(0).(*category.Category)
	return c, args.Error(1)
}

func (m *mockService) ListPublished(ctx context.Context) ([]category.Category, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]category.Category)
	return list, args.Error(1)
}

func (m *mockService) Create(ctx context.Context, req category.CreateCategoryRequest) (*category.Category, error) {
	args := m.Called(ctx, req)
	c, _ := args.Get(0).(*category.Category)
	return c, args.Error(1)
}

func (m *mockService) GetByID(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*category.Category)
	return c, args.Error(1)
}

func (m *mockService) ListAll(ctx context.Context) ([]category.Category, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]category.Category)
	return list, args.Error(1)
}

func (m *mockService) Update(ctx context.Context, id uuid.UUID, req category.UpdateCategoryRequest) (*category.Category, error) {
	args := m.Called(ctx, id, req)
	c, _ := args.Get(0).(*category.Category)
	return c, args.Error(1)
}

func (m *mockService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func init() {
	gin.SetMode(gin.TestMode)
}

func setup(svc *mockService) *gin.Engine {
	h := NewCategoryHandler(svc)
	r := gin.New()
	r.GET("/categories", h.ListPublished)
	r.POST("/admin/categories", h.Create)
	r.GET("/admin/categories/:id", h.Get)
	r.DELETE("/admin/categories/:id", h.Delete)
	return r
}

func TestListPublished(t *testing.T) {
	svc := new(mockService)
	svc.On("ListPublished", mock.Anything).Return([]category.Category{{Slug: "travel", IsPublished: true}}, nil)

	w := httptest.NewRecorder()
	setup(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/categories", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Success bool                `json:"success"`
		Data    []category.Category `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Len(t, body.Data, 1)
}

func TestCreate_SlugConflict(t *testing.T) {
	svc := new(mockService)
	svc.On("Create", mock.Anything, mock.Anything).Return(nil, category.ErrSlugTaken)

	raw, _ := json.Marshal(category.CreateCategoryRequest{Title: "Travel", Description: "trips", Slug: "travel"})
	req := httptest.NewRequest(http.MethodPost, "/admin/categories", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	setup(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGet_NotFoundAndBadID(t *testing.T) {
	svc := new(mockService)
	id := uuid.New()
	svc.On("GetByID", mock.Anything, id).Return(nil, category.ErrCategoryNotFound)
	r := setup(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/categories/"+id.String(), nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/categories/not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNumberOfCalls(t, "GetByID", 1)
}

func TestDelete(t *testing.T) {
	svc := new(mockService)
	id := uuid.New()
	svc.On("Delete", mock.Anything, id).Return(nil)

	w := httptest.NewRecorder()
	setup(svc).ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/admin/categories/"+id.String(), nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
}
