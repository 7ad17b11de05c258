package location

import (
	"time"

	"github.com/google/uuid"
)

// Location là địa điểm gắn với post. Location chưa publish vẫn giữ nguyên post, chỉ ẩn tên.
type Location struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
}
