package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"blogicum-backend/internal/shared"
)

// Client wraps asynq.Client with the queue/retry policy of each task type
type Client struct {
	client *asynq.Client
}

func NewClient(redisAddr, password string, db int) *Client {
	return &Client{
		client: asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr, Password: password, DB: db}),
	}
}

// Enqueue marshals payload to JSON and submits the task
func (c *Client) Enqueue(ctx context.Context, taskType string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", taskType, err)
	}

	task := asynq.NewTask(taskType, body)
	if _, err := c.client.EnqueueContext(ctx, task, optionsFor(taskType)...); err != nil {
		return fmt.Errorf("enqueue %s: %w", taskType, err)
	}
	return nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

func optionsFor(taskType string) []asynq.Option {
	switch taskType {
	case shared.TypeProcessPostImage:
		return []asynq.Option{asynq.Queue(shared.QueueImages), asynq.MaxRetry(3), asynq.Timeout(2 * time.Minute)}
	case shared.TypeDeletePostImages:
		return []asynq.Option{asynq.Queue(shared.QueueImages), asynq.MaxRetry(5), asynq.Timeout(time.Minute)}
	default:
		return []asynq.Option{asynq.Queue(shared.QueueMaintenance), asynq.MaxRetry(2)}
	}
}
