package comment

import (
	"context"

	"github.com/google/uuid"

	postModel "blogicum-backend/internal/domains/post/model"
)

type Service interface {
	ListByPost(ctx context.Context, postID uuid.UUID) ([]Comment, error)
	Add(ctx context.Context, postID, viewerID uuid.UUID, form CommentForm) (*Comment, error)
	Edit(ctx context.Context, postID, commentID, viewerID uuid.UUID, form CommentForm) (*Comment, error)
	Delete(ctx context.Context, postID, commentID, viewerID uuid.UUID) error
}

// PostVisibility - comment chỉ được thêm vào post mà viewer nhìn thấy
type PostVisibility interface {
	GetVisiblePost(ctx context.Context, postID uuid.UUID, viewerID *uuid.UUID) (*postModel.Post, error)
}
