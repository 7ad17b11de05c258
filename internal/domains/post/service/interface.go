package service

import (
	"context"

	"github.com/google/uuid"

	"blogicum-backend/internal/domains/category"
	"blogicum-backend/internal/domains/location"
	"blogicum-backend/internal/domains/post/model"
	"blogicum-backend/internal/domains/user"
)

// ServiceInterface - business logic của posts (feeds, detail, CRUD của author)
type ServiceInterface interface {
	HomeFeed(ctx context.Context, rawPage string) (*model.Feed, error)
	CategoryFeed(ctx context.Context, slug, rawPage string) (*model.Feed, error)
	ProfileFeed(ctx context.Context, username string, viewerID *uuid.UUID, rawPage string) (*model.Feed, error)

	// GetVisiblePost trả về ErrPostNotFound khi post không tồn tại hoặc viewer không được xem
	GetVisiblePost(ctx context.Context, postID uuid.UUID, viewerID *uuid.UUID) (*model.Post, error)
	ToResponse(p *model.Post) model.PostResponse

	Create(ctx context.Context, authorID uuid.UUID, form model.PostForm) (*model.PostResponse, error)
	GetEditForm(ctx context.Context, postID, viewerID uuid.UUID) (*model.EditFormResponse, error)
	Update(ctx context.Context, postID, viewerID uuid.UUID, form model.PostForm) (*model.PostResponse, error)
	Delete(ctx context.Context, postID, viewerID uuid.UUID) error

	// Admin
	SetPublished(ctx context.Context, postID uuid.UUID, published bool) (*model.PostResponse, error)
}

// ImageServiceInterface - chạy trong worker
type ImageServiceInterface interface {
	ProcessImage(ctx context.Context, postID uuid.UUID, imageKey string) error
	DeleteImages(ctx context.Context, prefix string) error
	SweepOrphans(ctx context.Context, batchSize int) (int, error)
}

// ========================================
// DEPENDENCIES
// ========================================

type UserLookup interface {
	GetByUsername(ctx context.Context, username string) (*user.User, error)
}

type CategoryLookup interface {
	GetPublishedBySlug(ctx context.Context, slug string) (*category.Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (*category.Category, error)
}

type LocationLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*location.Location, error)
}

// ImageStorage is the subset of the MinIO storage used for post images
type ImageStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	Download(ctx context.Context, key string) ([]byte, error)
	DeleteByPrefix(ctx context.Context, prefix string) error
	ListPrefixes(ctx context.Context, parent string) ([]string, error)
	URL(key string) string
}

// Enqueuer đẩy background task vào asynq
type Enqueuer interface {
	Enqueue(ctx context.Context, taskType string, payload interface{}) error
}
