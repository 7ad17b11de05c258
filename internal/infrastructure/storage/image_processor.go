package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
)

// Image variants written by the worker next to the original
const (
	VariantLarge     = "large"
	VariantMedium    = "medium"
	VariantThumbnail = "thumbnail"
)

var variantSizes = map[string]int{
	VariantLarge:     1200,
	VariantMedium:    600,
	VariantThumbnail: 300,
}

var (
	ErrImageTooLarge   = errors.New("image too large")
	ErrImageFormat     = errors.New("image format not allowed")
	ErrImageNotDecoded = errors.New("not an image")
)

type ImageProcessor struct {
	MaxSize int64 // bytes
}

func NewImageProcessor(maxSize int64) *ImageProcessor {
	if maxSize <= 0 {
		maxSize = 5 * 1024 * 1024 // 5MB
	}
	return &ImageProcessor{MaxSize: maxSize}
}

// ValidateImage check JPEG/PNG và size, trả về format ("jpeg" | "png")
func (p *ImageProcessor) ValidateImage(data []byte) (string, error) {
	if int64(len(data)) > p.MaxSize {
		return "", fmt.Errorf("%w: exceeds %dMB", ErrImageTooLarge, p.MaxSize/(1024*1024))
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrImageNotDecoded, err)
	}
	switch format {
	case "jpeg", "png":
		return format, nil
	default:
		return "", fmt.Errorf("%w: %s (only jpeg/png)", ErrImageFormat, format)
	}
}

// ProcessImage trả về map[variant][]byte: resize → encode JPEG chất lượng 90
func (p *ImageProcessor) ProcessImage(data []byte) (map[string][]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("cannot decode image: %w", err)
	}

	variants := make(map[string][]byte, len(variantSizes))
	for name, size := range variantSizes {
		resized := imaging.Fit(img, size, size, imaging.Lanczos)
		b := new(bytes.Buffer)
		if err := jpeg.Encode(b, resized, &jpeg.Options{Quality: 90}); err != nil {
			return nil, fmt.Errorf("cannot encode %s: %w", name, err)
		}
		variants[name] = b.Bytes()
	}
	return variants, nil
}

// Extension maps a validated format to the object key extension
func Extension(format string) string {
	if format == "png" {
		return "png"
	}
	return "jpg"
}

// ContentType maps a validated format to its MIME type
func ContentType(format string) string {
	if format == "png" {
		return "image/png"
	}
	return "image/jpeg"
}
