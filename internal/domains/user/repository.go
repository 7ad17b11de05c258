package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository định nghĩa contract cho data access layer
type Repository interface {
	// Create tạo user mới
	// Returns: ErrUsernameTaken / ErrEmailAlreadyExists khi trùng
	Create(ctx context.Context, user *User) error

	// Returns: ErrUserNotFound nếu không tìm thấy
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)

	// Update cập nhật profile fields (username, email, first/last name)
	Update(ctx context.Context, user *User) error

	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
}
