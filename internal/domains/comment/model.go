package comment

import (
	"time"

	"github.com/google/uuid"
)

// Comment thuộc về đúng một post; hiển thị theo thứ tự cũ → mới
type Comment struct {
	ID             uuid.UUID `json:"id"`
	Text           string    `json:"text"`
	PostID         uuid.UUID `json:"post_id"`
	AuthorID       uuid.UUID `json:"author_id"`
	AuthorUsername string    `json:"author_username"`
	CreatedAt      time.Time `json:"created_at"`
}
