package category

import "errors"

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrSlugTaken        = errors.New("category slug already exists")
	ErrInvalidSlug      = errors.New("invalid category slug")
)
