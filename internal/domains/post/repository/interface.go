package repository

import (
	"context"

	"github.com/google/uuid"

	"blogicum-backend/internal/domains/post/model"
)

// RepositoryInterface - data access cho posts
type RepositoryInterface interface {
	Create(ctx context.Context, p *model.Post) error
	// GetByID trả về post kèm author/category/location và comment count, không lọc visibility
	GetByID(ctx context.Context, id uuid.UUID) (*model.Post, error)
	Update(ctx context.Context, p *model.Post) error
	Delete(ctx context.Context, id uuid.UUID) error
	SetPublished(ctx context.Context, id uuid.UUID, published bool) error

	ListFeed(ctx context.Context, q FeedQuery, limit, offset int) ([]model.Post, error)
	CountFeed(ctx context.Context, q FeedQuery) (int, error)

	// ExistingIDs lọc ra những id còn tồn tại, dùng cho orphan image sweep
	ExistingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)
}
