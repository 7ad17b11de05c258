package category

import (
	"context"

	"github.com/google/uuid"
)

type Service interface {
	// Public
	GetPublishedBySlug(ctx context.Context, slug string) (*Category, error)
	ListPublished(ctx context.Context) ([]Category, error)

	// Admin
	Create(ctx context.Context, req CreateCategoryRequest) (*Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Category, error)
	ListAll(ctx context.Context) ([]Category, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateCategoryRequest) (*Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
