package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"blogicum-backend/internal/domains/category"
	"blogicum-backend/internal/domains/comment"
	"blogicum-backend/internal/domains/post/model"
	"blogicum-backend/internal/domains/post/service"
	"blogicum-backend/internal/domains/user"
	"blogicum-backend/internal/shared/authz"
	"blogicum-backend/internal/shared/middleware"
	"blogicum-backend/internal/shared/response"
	"blogicum-backend/pkg/logger"
)

// CommentLister - post detail hiển thị comments từ cũ đến mới
type CommentLister interface {
	ListByPost(ctx context.Context, postID uuid.UUID) ([]comment.Comment, error)
}

type PostHandler struct {
	service       service.ServiceInterface
	comments      CommentLister
	maxImageBytes int64
}

func NewPostHandler(svc service.ServiceInterface, comments CommentLister, maxImageBytes int64) *PostHandler {
	return &PostHandler{
		service:       svc,
		comments:      comments,
		maxImageBytes: maxImageBytes,
	}
}

type postDetailResponse struct {
	Post     model.PostResponse `json:"post"`
	Comments []comment.Comment  `json:"comments"`
}

// ========================================
// FEEDS (public, optional auth)
// ========================================

// Home GET /?page=N
func (h *PostHandler) Home(c *gin.Context) {
	feed, err := h.service.HomeFeed(c.Request.Context(), c.Query("page"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, feed, feed.Page.Meta())
}

// Category GET /category/:slug
func (h *PostHandler) Category(c *gin.Context) {
	feed, err := h.service.CategoryFeed(c.Request.Context(), c.Param("slug"), c.Query("page"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, feed, feed.Page.Meta())
}

// Profile GET /profile/:username
func (h *PostHandler) Profile(c *gin.Context) {
	viewerID, _ := middleware.GetAuthenticatedUserID(c)

	feed, err := h.service.ProfileFeed(c.Request.Context(), c.Param("username"), viewerID, c.Query("page"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, feed, feed.Page.Meta())
}

// Detail GET /posts/:post_id - post ẩn với viewer trả 404 như post không tồn tại
func (h *PostHandler) Detail(c *gin.Context) {
	postID, ok := parsePostID(c)
	if !ok {
		return
	}
	viewerID, _ := middleware.GetAuthenticatedUserID(c)

	p, err := h.service.GetVisiblePost(c.Request.Context(), postID, viewerID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	comments, err := h.comments.ListByPost(c.Request.Context(), postID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, postDetailResponse{
		Post:     h.service.ToResponse(p),
		Comments: comments,
	})
}

// ========================================
// AUTHOR ACTIONS (auth required)
// ========================================

// Create POST /posts (multipart) → redirect về profile của author
func (h *PostHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetAuthenticatedUserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	form, ok := h.bindForm(c)
	if !ok {
		return
	}

	created, err := h.service.Create(c.Request.Context(), *userID, form)
	if err != nil {
		h.handleError(c, err)
		return
	}

	// username lấy từ DB, token có thể còn giữ username cũ sau khi đổi profile
	response.Redirect(c, "/profile/"+created.Author.Username, created)
}

// EditForm GET /posts/:post_id/edit
func (h *PostHandler) EditForm(c *gin.Context) {
	postID, userID, ok := identify(c)
	if !ok {
		return
	}

	form, err := h.service.GetEditForm(c.Request.Context(), postID, userID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, form)
}

// Update POST /posts/:post_id/edit → redirect về post detail
func (h *PostHandler) Update(c *gin.Context) {
	postID, userID, ok := identify(c)
	if !ok {
		return
	}

	form, ok := h.bindForm(c)
	if !ok {
		return
	}

	updated, err := h.service.Update(c.Request.Context(), postID, userID, form)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Redirect(c, "/posts/"+postID.String(), updated)
}

// Delete POST /posts/:post_id/delete → redirect về trang chủ
func (h *PostHandler) Delete(c *gin.Context) {
	postID, userID, ok := identify(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), postID, userID); err != nil {
		h.handleError(c, err)
		return
	}
	response.Redirect(c, "/", gin.H{"deleted": true})
}

// ========================================
// ADMIN
// ========================================

// SetPublished PATCH /admin/posts/:post_id/publish
func (h *PostHandler) SetPublished(c *gin.Context) {
	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	var req model.SetPublishedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "is_published is required")
		return
	}

	updated, err := h.service.SetPublished(c.Request.Context(), postID, *req.IsPublished)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, updated)
}

// ========================================
// HELPERS
// ========================================

func (h *PostHandler) bindForm(c *gin.Context) (model.PostForm, bool) {
	var form model.PostForm
	if err := c.ShouldBind(&form); err != nil {
		response.BadRequest(c, "Invalid request body")
		return form, false
	}

	image, err := readImage(c, h.maxImageBytes)
	if err != nil {
		response.BadRequest(c, "Invalid image upload")
		return form, false
	}
	form.Image = image
	return form, true
}

// readImage đọc field "image" của multipart form; đọc dư 1 byte để validator phát hiện file quá lớn
func readImage(c *gin.Context, limit int64) ([]byte, error) {
	header, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	return data, nil
}

// parsePostID - id sai format không thể trỏ tới post nào → 404
func parsePostID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("post_id"))
	if err != nil {
		response.NotFound(c, model.ErrPostNotFound.Error())
		return uuid.Nil, false
	}
	return id, true
}

func identify(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := middleware.GetAuthenticatedUserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return uuid.Nil, uuid.Nil, false
	}
	postID, ok := parsePostID(c)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	return postID, *userID, true
}

func (h *PostHandler) handleError(c *gin.Context, err error) {
	var verrs validation.Errors

	switch {
	// 400 - form errors theo từng field
	case errors.As(err, &verrs):
		response.ValidationError(c, err)

	// 403
	case errors.Is(err, authz.ErrNotAuthor):
		response.Forbidden(c, err.Error())

	// 404
	case errors.Is(err, model.ErrPostNotFound),
		errors.Is(err, category.ErrCategoryNotFound),
		errors.Is(err, user.ErrUserNotFound):
		response.NotFound(c, err.Error())

	default:
		logger.ErrorWithFields("post handler: internal error", err, map[string]interface{}{
			"request_id": c.GetString(middleware.ContextRequestID),
			"path":       c.FullPath(),
		})
		response.InternalServerError(c, "Internal server error")
	}
}
