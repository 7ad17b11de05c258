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

// SweepOrphansHandler - scheduled job dọn ảnh của post đã bị xóa
type SweepOrphansHandler struct {
	imageService service.ImageServiceInterface
}

func NewSweepOrphansHandler(imageService service.ImageServiceInterface) *SweepOrphansHandler {
	return &SweepOrphansHandler{imageService: imageService}
}

func (h *SweepOrphansHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.SweepOrphanImagesPayload
	if len(task.Payload()) > 0 {
		if err := json.Unmarshal(task.Payload(), &payload); err != nil {
			return fmt.Errorf("unmarshal payload: %w: %w", err, asynq.SkipRetry)
		}
	}

	removed, err := h.imageService.SweepOrphans(ctx, payload.BatchSize)
	if err != nil {
		log.Error().Err(err).Int("removed", removed).Msg("Orphan image sweep failed")
		return fmt.Errorf("sweep orphan images: %w", err)
	}

	log.Info().Int("removed", removed).Msg("Orphan image sweep completed")
	return nil
}
