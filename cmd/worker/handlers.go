package main

import (
	"github.com/hibiken/asynq"

	postJob "blogicum-backend/internal/domains/post/job"
	"blogicum-backend/internal/shared"
	"blogicum-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	processPostImage  *postJob.ProcessImageHandler
	deletePostImages  *postJob.DeleteImagesHandler
	sweepOrphanImages *postJob.SweepOrphansHandler
}

// initializeHandlers creates all job handlers with their dependencies
func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		processPostImage:  postJob.NewProcessImageHandler(c.PostImageService),
		deletePostImages:  postJob.NewDeleteImagesHandler(c.PostImageService),
		sweepOrphanImages: postJob.NewSweepOrphansHandler(c.PostImageService),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	// Image tasks
	mux.HandleFunc(shared.TypeProcessPostImage, h.processPostImage.ProcessTask)
	mux.HandleFunc(shared.TypeDeletePostImages, h.deletePostImages.ProcessTask)

	// Maintenance tasks
	mux.HandleFunc(shared.TypeSweepOrphanImages, h.sweepOrphanImages.ProcessTask)
}
