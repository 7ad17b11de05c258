package model

import (
	"fmt"
	"path"

	"github.com/google/uuid"
)

// Object layout trong bucket:
//
//	posts/<post_id>/<image_id>/original.<ext>
//	posts/<post_id>/<image_id>/{large,medium,thumbnail}.jpg
const ImageRoot = "posts/"

// PostImagePrefix chứa mọi object của một post
func PostImagePrefix(postID uuid.UUID) string {
	return fmt.Sprintf("%s%s/", ImageRoot, postID)
}

func OriginalImageKey(postID, imageID uuid.UUID, ext string) string {
	return fmt.Sprintf("%s%s/original.%s", PostImagePrefix(postID), imageID, ext)
}

// ImageDir là prefix của một lần upload (original + variants)
func ImageDir(originalKey string) string {
	return path.Dir(originalKey) + "/"
}

func VariantKey(originalKey, variant string) string {
	return ImageDir(originalKey) + variant + ".jpg"
}
