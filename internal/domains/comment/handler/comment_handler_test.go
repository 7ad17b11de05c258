package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"blogicum-backend/internal/domains/comment"
	postModel "blogicum-backend/internal/domains/post/model"
	"blogicum-backend/internal/shared/authz"
	"blogicum-backend/internal/shared/middleware"
)

type mockService struct{ mock.Mock }

func (m *mockService) ListByPost(ctx context.Context, postID uuid.UUID) ([]comment.Comment, error) {
	args := m.Called(ctx, postID)
	list, _ := args.Get(0).([]comment.Comment)
	return list, args.Error(1)
}

func (m *mockService) Add(ctx context.Context, postID, viewerID uuid.UUID, form comment.CommentForm) (*comment.Comment, error) {
	args := m.Called(ctx, postID, viewerID, form)
	c, _ := args.Get(0).(*comment.Comment)
	return c, args.Error(1)
}

func (m *mockService) Edit(ctx context.Context, postID, commentID, viewerID uuid.UUID, form comment.CommentForm) (*comment.Comment, error) {
	args := m.Called(ctx, postID, commentID, viewerID, form)
	c, _ := args.Get(0).(*comment.Comment)
	return c, args.Error(1)
}

func (m *mockService) Delete(ctx context.Context, postID, commentID, viewerID uuid.UUID) error {
	return m.Called(ctx, postID, commentID, viewerID).Error(0)
}

func init() {
	gin.SetMode(gin.TestMode)
}

func setup(svc *mockService, viewer uuid.UUID) *gin.Engine {
	h := NewCommentHandler(svc)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextIsAuthenticated, true)
		c.Set(middleware.ContextUserID, viewer)
		c.Next()
	})
	r.POST("/posts/:post_id/comment", h.Add)
	r.POST("/posts/:post_id/edit_comment/:comment_id", h.Edit)
	r.POST("/posts/:post_id/delete_comment/:comment_id", h.Delete)
	return r
}

func formRequest(path, text string) *http.Request {
	body := url.Values{"text": {text}}.Encode()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestAdd_RedirectsToPost(t *testing.T) {
	svc := new(mockService)
	viewer, postID := uuid.New(), uuid.New()
	svc.On("Add", mock.Anything, postID, viewer, comment.CommentForm{Text: "hello"}).
		Return(&comment.Comment{ID: uuid.New(), PostID: postID}, nil)

	w := httptest.NewRecorder()
	setup(svc, viewer).ServeHTTP(w, formRequest("/posts/"+postID.String()+"/comment", "hello"))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/posts/"+postID.String(), w.Header().Get("Location"))
}

func TestAdd_InvisiblePost(t *testing.T) {
	svc := new(mockService)
	viewer, postID := uuid.New(), uuid.New()
	svc.On("Add", mock.Anything, postID, viewer, mock.Anything).Return(nil, postModel.ErrPostNotFound)

	w := httptest.NewRecorder()
	setup(svc, viewer).ServeHTTP(w, formRequest("/posts/"+postID.String()+"/comment", "hello"))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEdit_StatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"comment of another post", comment.ErrCommentNotFound, http.StatusNotFound},
		{"not author", authz.ErrNotAuthor, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockService)
			viewer, postID, commentID := uuid.New(), uuid.New(), uuid.New()
			svc.On("Edit", mock.Anything, postID, commentID, viewer, mock.Anything).Return(nil, tt.err)

			w := httptest.NewRecorder()
			setup(svc, viewer).ServeHTTP(w, formRequest(
				"/posts/"+postID.String()+"/edit_comment/"+commentID.String(), "x"))

			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestDelete_MalformedIDs(t *testing.T) {
	svc := new(mockService)
	r := setup(svc, uuid.New())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, formRequest("/posts/abc/delete_comment/"+uuid.New().String(), ""))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, formRequest("/posts/"+uuid.New().String()+"/delete_comment/abc", ""))
	assert.Equal(t, http.StatusNotFound, w.Code)

	svc.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
