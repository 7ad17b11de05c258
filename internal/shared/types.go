package shared

// Queue names
const (
	QueueImages      = "images"
	QueueMaintenance = "maintenance"
)

// Task types
const (
	TypeProcessPostImage  = "post:process_image"
	TypeDeletePostImages  = "post:delete_images"
	TypeSweepOrphanImages = "post:sweep_orphan_images"
)

// PostImagePayload identifies the stored original of a post image
type PostImagePayload struct {
	PostID   string `json:"post_id"`
	ImageKey string `json:"image_key"`
}

// DeletePostImagesPayload removes every object under Prefix:
// the whole post on delete, a single upload when the image is replaced
type DeletePostImagesPayload struct {
	PostID string `json:"post_id"`
	Prefix string `json:"prefix"`
}

// SweepOrphanImagesPayload bounds one sweep run
type SweepOrphanImagesPayload struct {
	BatchSize int `json:"batch_size"`
}
