package category

import (
	"time"

	"github.com/google/uuid"
)

// Category là nhóm chủ đề của posts. Category chưa publish ẩn toàn bộ posts của nó khỏi feed công khai.
type Category struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Slug        string    `json:"slug"`
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
}
