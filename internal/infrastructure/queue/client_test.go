package queue

import (
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"

	"blogicum-backend/internal/shared"
)

func queueOf(opts []asynq.Option) string {
	for _, o := range opts {
		if o.Type() == asynq.QueueOpt {
			return o.Value().(string)
		}
	}
	return ""
}

func TestOptionsFor_RoutesTasksToQueues(t *testing.T) {
	assert.Equal(t, shared.QueueImages, queueOf(optionsFor(shared.TypeProcessPostImage)))
	assert.Equal(t, shared.QueueImages, queueOf(optionsFor(shared.TypeDeletePostImages)))
	assert.Equal(t, shared.QueueMaintenance, queueOf(optionsFor(shared.TypeSweepOrphanImages)))
}
