package category

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"blogicum-backend/internal/shared/utils"
)

var slugRule = validation.By(func(value interface{}) error {
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case *string:
		if v != nil {
			s = *v
		}
	}
	if s == "" || utils.IsValidSlug(s) {
		return nil
	}
	return validation.NewError("validation_slug", "only lowercase latin letters, digits, hyphen and underscore, up to 64 characters")
})

// CreateCategoryRequest - slug rỗng sẽ được generate từ title
type CreateCategoryRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Slug        string `json:"slug"`
	IsPublished *bool  `json:"is_published"`
}

func (r CreateCategoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 256)),
		validation.Field(&r.Description, validation.Required),
		validation.Field(&r.Slug, slugRule),
	)
}

type UpdateCategoryRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Slug        *string `json:"slug"`
	IsPublished *bool   `json:"is_published"`
}

func (r UpdateCategoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NilOrNotEmpty, validation.Length(1, 256)),
		validation.Field(&r.Description, validation.NilOrNotEmpty),
		validation.Field(&r.Slug, validation.NilOrNotEmpty, slugRule),
	)
}

// Apply ghi các field được gửi lên vào entity
func (r UpdateCategoryRequest) Apply(c *Category) {
	if r.Title != nil {
		c.Title = *r.Title
	}
	if r.Description != nil {
		c.Description = *r.Description
	}
	if r.Slug != nil {
		c.Slug = *r.Slug
	}
	if r.IsPublished != nil {
		c.IsPublished = *r.IsPublished
	}
}
