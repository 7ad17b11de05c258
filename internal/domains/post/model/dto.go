package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	"blogicum-backend/internal/domains/user"
	"blogicum-backend/internal/infrastructure/storage"
	"blogicum-backend/internal/shared/pagination"
)

// ========================================
// REQUEST DTOs
// ========================================

// PostForm - multipart form cho create và edit. Image được handler đọc riêng từ field "image".
type PostForm struct {
	Title       string     `form:"title" json:"title"`
	Text        string     `form:"text" json:"text"`
	PubDate     *time.Time `form:"pub_date" json:"pub_date"` // RFC3339, rỗng = now
	CategoryID  string     `form:"category_id" json:"category_id"`
	LocationID  string     `form:"location_id" json:"location_id"`
	IsPublished *bool      `form:"is_published" json:"is_published"`
	ClearImage  bool       `form:"clear_image" json:"clear_image"`

	Image []byte `form:"-" json:"-"`
}

func (f PostForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Title, validation.Required, validation.Length(1, 256)),
		validation.Field(&f.Text, validation.Required),
		validation.Field(&f.CategoryID, is.UUID),
		validation.Field(&f.LocationID, is.UUID),
	)
}

// PubDateOr trả về pub_date của form, fallback khi form bỏ trống
func (f PostForm) PubDateOr(fallback time.Time) time.Time {
	if f.PubDate == nil || f.PubDate.IsZero() {
		return fallback
	}
	return *f.PubDate
}

func (f PostForm) CategoryUUID() *uuid.UUID {
	return parseOptionalUUID(f.CategoryID)
}

func (f PostForm) LocationUUID() *uuid.UUID {
	return parseOptionalUUID(f.LocationID)
}

func parseOptionalUUID(s string) *uuid.UUID {
	if s == "" {
		return nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil
	}
	return &id
}

type SetPublishedRequest struct {
	IsPublished *bool `json:"is_published" binding:"required"`
}

// ========================================
// RESPONSE DTOs
// ========================================

type AuthorRef struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

type ImageURLs struct {
	Original  string `json:"original"`
	Large     string `json:"large"`
	Medium    string `json:"medium"`
	Thumbnail string `json:"thumbnail"`
}

type PostResponse struct {
	ID           uuid.UUID    `json:"id"`
	Title        string       `json:"title"`
	Text         string       `json:"text"`
	PubDate      time.Time    `json:"pub_date"`
	Author       AuthorRef    `json:"author"`
	Category     *CategoryRef `json:"category,omitempty"`
	Location     *LocationRef `json:"location,omitempty"`
	Image        *ImageURLs   `json:"image,omitempty"`
	IsPublished  bool         `json:"is_published"`
	CommentCount int          `json:"comment_count"`
	CreatedAt    time.Time    `json:"created_at"`
}

// ToResponse - location chưa publish thì ẩn khỏi response
func (p *Post) ToResponse(urlFor func(key string) string) PostResponse {
	resp := PostResponse{
		ID:           p.ID,
		Title:        p.Title,
		Text:         p.Text,
		PubDate:      p.PubDate,
		Author:       AuthorRef{ID: p.AuthorID, Username: p.AuthorUsername},
		Category:     p.Category,
		IsPublished:  p.IsPublished,
		CommentCount: p.CommentCount,
		CreatedAt:    p.CreatedAt,
	}
	if p.Location != nil && p.Location.IsPublished {
		resp.Location = p.Location
	}
	if p.ImageKey != nil && urlFor != nil {
		key := *p.ImageKey
		resp.Image = &ImageURLs{
			Original:  urlFor(key),
			Large:     urlFor(VariantKey(key, storage.VariantLarge)),
			Medium:    urlFor(VariantKey(key, storage.VariantMedium)),
			Thumbnail: urlFor(VariantKey(key, storage.VariantThumbnail)),
		}
	}
	return resp
}

// EditFormResponse là dữ liệu điền sẵn cho form edit
type EditFormResponse struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Text        string     `json:"text"`
	PubDate     time.Time  `json:"pub_date"`
	CategoryID  *uuid.UUID `json:"category_id"`
	LocationID  *uuid.UUID `json:"location_id"`
	IsPublished bool       `json:"is_published"`
	ImageURL    string     `json:"image_url,omitempty"`
}

// Feed là một trang của home / category / profile feed
type Feed struct {
	Posts    []PostResponse      `json:"posts"`
	Category *CategoryRef        `json:"category,omitempty"`
	Profile  *user.PublicProfile `json:"profile,omitempty"`
	Page     pagination.Page     `json:"-"`
}
