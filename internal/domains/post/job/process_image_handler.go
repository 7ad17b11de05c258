package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"blogicum-backend/internal/domains/post/service"
	"blogicum-backend/internal/shared"
)

// ProcessImageHandler xử lý resize và upload variants của ảnh post
type ProcessImageHandler struct {
	imageService service.ImageServiceInterface
}

func NewProcessImageHandler(imageService service.ImageServiceInterface) *ProcessImageHandler {
	return &ProcessImageHandler{imageService: imageService}
}

// ProcessTask xử lý background job resize ảnh
func (h *ProcessImageHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.PostImagePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal ProcessImage payload")
		return fmt.Errorf("unmarshal payload: %w: %w", err, asynq.SkipRetry)
	}

	postID, err := uuid.Parse(payload.PostID)
	if err != nil {
		return fmt.Errorf("invalid post id %q: %w", payload.PostID, asynq.SkipRetry)
	}

	log.Info().
		Str("post_id", payload.PostID).
		Str("image_key", payload.ImageKey).
		Msg("Processing post image variants")

	if err := h.imageService.ProcessImage(ctx, postID, payload.ImageKey); err != nil {
		log.Error().
			Err(err).
			Str("post_id", payload.PostID).
			Msg("Failed to process image")
		return fmt.Errorf("process image: %w", err)
	}

	return nil
}
