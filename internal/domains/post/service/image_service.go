package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"blogicum-backend/internal/domains/post/model"
	"blogicum-backend/internal/domains/post/repository"
	"blogicum-backend/internal/infrastructure/storage"
	"blogicum-backend/pkg/logger"
)

const defaultSweepBatch = 500

type imageService struct {
	repo      repository.RepositoryInterface
	images    ImageStorage
	processor *storage.ImageProcessor
}

func NewImageService(
	repo repository.RepositoryInterface,
	images ImageStorage,
	processor *storage.ImageProcessor,
) ImageServiceInterface {
	return &imageService{
		repo:      repo,
		images:    images,
		processor: processor,
	}
}

// ProcessImage resize original thành các variants (được gọi từ Worker).
// Post đã bị xóa hoặc đã đổi ảnh thì bỏ qua.
func (s *imageService) ProcessImage(ctx context.Context, postID uuid.UUID, imageKey string) error {
	p, err := s.repo.GetByID(ctx, postID)
	if errors.Is(err, model.ErrPostNotFound) {
		logger.Info("post gone, skip image processing", map[string]interface{}{"post_id": postID.String()})
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get post: %w", err)
	}
	if p.ImageKey == nil || *p.ImageKey != imageKey {
		logger.Info("image replaced, skip processing", map[string]interface{}{
			"post_id":   postID.String(),
			"image_key": imageKey,
		})
		return nil
	}

	original, err := s.images.Download(ctx, imageKey)
	if err != nil {
		return fmt.Errorf("failed to download original: %w", err)
	}

	variants, err := s.processor.ProcessImage(original)
	if err != nil {
		return fmt.Errorf("failed to process image: %w", err)
	}

	for name, data := range variants {
		if err := s.images.Upload(ctx, model.VariantKey(imageKey, name), data, "image/jpeg"); err != nil {
			return fmt.Errorf("failed to upload %s variant: %w", name, err)
		}
	}

	logger.Info("Post image processed successfully", map[string]interface{}{
		"post_id":  postID.String(),
		"variants": len(variants),
	})
	return nil
}

// DeleteImages xóa mọi object dưới prefix, chỉ chấp nhận prefix nằm trong posts/
func (s *imageService) DeleteImages(ctx context.Context, prefix string) error {
	if !strings.HasPrefix(prefix, model.ImageRoot) || prefix == model.ImageRoot {
		return fmt.Errorf("refusing to delete prefix %q", prefix)
	}
	return s.images.DeleteByPrefix(ctx, prefix)
}

// SweepOrphans xóa thư mục ảnh của những post không còn tồn tại, trả về số post đã dọn
func (s *imageService) SweepOrphans(ctx context.Context, batchSize int) (int, error) {
	if batchSize <= 0 {
		batchSize = defaultSweepBatch
	}

	prefixes, err := s.images.ListPrefixes(ctx, model.ImageRoot)
	if err != nil {
		return 0, err
	}

	ids := make([]uuid.UUID, 0, len(prefixes))
	for _, prefix := range prefixes {
		raw := strings.TrimSuffix(strings.TrimPrefix(prefix, model.ImageRoot), "/")
		id, err := uuid.Parse(raw)
		if err != nil {
			logger.Warn("unexpected object prefix", map[string]interface{}{"prefix": prefix})
			continue
		}
		ids = append(ids, id)
	}

	removed := 0
	for start := 0; start < len(ids); start += batchSize {
		end := start + batchSize
		if end > len(ids) {
			end = len(ids)
		}
		batch := ids[start:end]

		existing, err := s.repo.ExistingIDs(ctx, batch)
		if err != nil {
			return removed, err
		}
		alive := make(map[uuid.UUID]struct{}, len(existing))
		for _, id := range existing {
			alive[id] = struct{}{}
		}

		for _, id := range batch {
			if _, ok := alive[id]; ok {
				continue
			}
			if err := s.images.DeleteByPrefix(ctx, model.PostImagePrefix(id)); err != nil {
				return removed, err
			}
			removed++
		}
	}

	return removed, nil
}
