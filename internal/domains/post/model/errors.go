package model

import "errors"

var (
	// ErrPostNotFound cũng dùng cho post tồn tại nhưng viewer không được thấy
	ErrPostNotFound = errors.New("post not found")

	// Field errors của post form
	ErrCategoryMissing = errors.New("category does not exist")
	ErrLocationMissing = errors.New("location does not exist")
)
