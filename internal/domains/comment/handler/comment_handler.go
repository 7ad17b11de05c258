package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"blogicum-backend/internal/domains/comment"
	postModel "blogicum-backend/internal/domains/post/model"
	"blogicum-backend/internal/shared/authz"
	"blogicum-backend/internal/shared/middleware"
	"blogicum-backend/internal/shared/response"
	"blogicum-backend/pkg/logger"
)

// CommentHandler - mọi action đều redirect về trang post khi thành công
type CommentHandler struct {
	service comment.Service
}

func NewCommentHandler(service comment.Service) *CommentHandler {
	return &CommentHandler{service: service}
}

// Add POST /posts/:post_id/comment
func (h *CommentHandler) Add(c *gin.Context) {
	postID, viewerID, ok := h.identify(c)
	if !ok {
		return
	}

	var form comment.CommentForm
	if err := c.ShouldBind(&form); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	created, err := h.service.Add(c.Request.Context(), postID, viewerID, form)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Redirect(c, postURL(postID), created)
}

// Edit POST /posts/:post_id/edit_comment/:comment_id
func (h *CommentHandler) Edit(c *gin.Context) {
	postID, viewerID, ok := h.identify(c)
	if !ok {
		return
	}
	commentID, err := uuid.Parse(c.Param("comment_id"))
	if err != nil {
		response.NotFound(c, comment.ErrCommentNotFound.Error())
		return
	}

	var form comment.CommentForm
	if err := c.ShouldBind(&form); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.service.Edit(c.Request.Context(), postID, commentID, viewerID, form)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Redirect(c, postURL(postID), updated)
}

// Delete POST /posts/:post_id/delete_comment/:comment_id
func (h *CommentHandler) Delete(c *gin.Context) {
	postID, viewerID, ok := h.identify(c)
	if !ok {
		return
	}
	commentID, err := uuid.Parse(c.Param("comment_id"))
	if err != nil {
		response.NotFound(c, comment.ErrCommentNotFound.Error())
		return
	}

	if err := h.service.Delete(c.Request.Context(), postID, commentID, viewerID); err != nil {
		h.handleError(c, err)
		return
	}
	response.Redirect(c, postURL(postID), gin.H{"deleted": true})
}

// identify đọc post_id (sai format → 404) và user đang đăng nhập
func (h *CommentHandler) identify(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := middleware.GetAuthenticatedUserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return uuid.Nil, uuid.Nil, false
	}

	postID, err := uuid.Parse(c.Param("post_id"))
	if err != nil {
		response.NotFound(c, postModel.ErrPostNotFound.Error())
		return uuid.Nil, uuid.Nil, false
	}
	return postID, *userID, true
}

func postURL(postID uuid.UUID) string {
	return "/posts/" + postID.String()
}

func (h *CommentHandler) handleError(c *gin.Context, err error) {
	var verrs validation.Errors

	switch {
	case errors.As(err, &verrs):
		response.ValidationError(c, err)
	case errors.Is(err, postModel.ErrPostNotFound),
		errors.Is(err, comment.ErrCommentNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, authz.ErrNotAuthor):
		response.Forbidden(c, err.Error())
	default:
		logger.ErrorWithFields("comment handler: internal error", err, map[string]interface{}{
			"request_id": c.GetString(middleware.ContextRequestID),
			"path":       c.FullPath(),
		})
		response.InternalServerError(c, "Internal server error")
	}
}
