package location

import (
	"context"

	"github.com/google/uuid"
)

type Service interface {
	ListPublished(ctx context.Context) ([]Location, error)

	// Admin
	Create(ctx context.Context, req CreateLocationRequest) (*Location, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Location, error)
	ListAll(ctx context.Context) ([]Location, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateLocationRequest) (*Location, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
