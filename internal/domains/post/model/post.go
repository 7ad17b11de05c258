package model

import (
	"time"

	"github.com/google/uuid"
)

// Post - entity chính của blog, kèm các reference đã join sẵn (author, category, location)
type Post struct {
	ID          uuid.UUID
	Title       string
	Text        string
	PubDate     time.Time
	AuthorID    uuid.UUID
	CategoryID  *uuid.UUID
	LocationID  *uuid.UUID
	ImageKey    *string
	IsPublished bool
	CreatedAt   time.Time

	// Joined
	AuthorUsername string
	Category       *CategoryRef
	Location       *LocationRef
	CommentCount   int
}

type CategoryRef struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	IsPublished bool      `json:"is_published"`
}

type LocationRef struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	IsPublished bool      `json:"is_published"`
}

// IsPubliclyVisible: published, category (nếu có) published, pub_date không ở tương lai
func (p *Post) IsPubliclyVisible(now time.Time) bool {
	if !p.IsPublished {
		return false
	}
	if p.Category != nil && !p.Category.IsPublished {
		return false
	}
	return !p.PubDate.After(now)
}

// VisibleTo - author luôn thấy post của mình, người khác chỉ thấy post public
func (p *Post) VisibleTo(viewerID *uuid.UUID, now time.Time) bool {
	return p.IsAuthor(viewerID) || p.IsPubliclyVisible(now)
}

// IsAuthor reports whether viewer wrote the post
func (p *Post) IsAuthor(viewerID *uuid.UUID) bool {
	return viewerID != nil && *viewerID == p.AuthorID
}
