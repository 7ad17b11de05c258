package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"blogicum-backend/internal/domains/post/service"
	"blogicum-backend/internal/shared"
)

// DeleteImagesHandler xóa ảnh của post (khi xóa post hoặc thay ảnh)
type DeleteImagesHandler struct {
	imageService service.ImageServiceInterface
}

func NewDeleteImagesHandler(imageService service.ImageServiceInterface) *DeleteImagesHandler {
	return &DeleteImagesHandler{imageService: imageService}
}

func (h *DeleteImagesHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.DeletePostImagesPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal DeleteImages payload")
		return fmt.Errorf("unmarshal payload: %w: %w", err, asynq.SkipRetry)
	}

	log.Info().
		Str("post_id", payload.PostID).
		Str("prefix", payload.Prefix).
		Msg("Deleting post images")

	if err := h.imageService.DeleteImages(ctx, payload.Prefix); err != nil {
		log.Error().
			Err(err).
			Str("post_id", payload.PostID).
			Msg("Failed to delete post images")
		return fmt.Errorf("delete images: %w", err)
	}

	return nil
}
