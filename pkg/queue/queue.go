package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/policy-pulse/backend/internal/models"
)

const (
	// QueueDeferred is the Redis list key for submissions whose durable
	// write was deferred by the fallback persistence path.
	QueueDeferred = "recovery:submissions"
	// QueueDLQ is the dead-letter queue for submissions that still fail
	// after retries.
	QueueDLQ = "recovery:dlq"
	// MaxRetries is the number of insert attempts before a job moves to the DLQ.
	MaxRetries = 3
	// RetryBackoff is the delay between insert attempts.
	RetryBackoff = 10 * time.Second
)

// DeferredSubmission is a survey response captured by the fallback path,
// waiting to be written durably once storage recovers.
type DeferredSubmission struct {
	FallbackID string                `json:"fallback_id"`
	Response   models.SurveyResponse `json:"response"`
}

// Job is the queue envelope around a deferred submission.
type Job struct {
	ID        string             `json:"id"`
	Payload   DeferredSubmission `json:"payload"`
	Attempt   int                `json:"attempt"`
	CreatedAt time.Time          `json:"created_at"`
}

// Queue enqueues and dequeues deferred submissions via Redis.
type Queue struct {
	client *redis.Client
	logger *zap.Logger
}

// NewQueue creates a Redis-backed recovery queue.
func NewQueue(client *redis.Client, logger *zap.Logger) *Queue {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Queue{client: client, logger: logger}
}

// Enqueue pushes a deferred submission onto the recovery queue.
func (q *Queue) Enqueue(ctx context.Context, payload DeferredSubmission) error {
	job := Job{
		ID:        uuid.New().String(),
		Payload:   payload,
		Attempt:   0,
		CreatedAt: time.Now(),
	}
	raw, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal job: %w", err)
	}
	if err := q.client.RPush(ctx, QueueDeferred, raw).Err(); err != nil {
		return fmt.Errorf("rpush: %w", err)
	}
	q.logger.Info("deferred submission enqueued",
		zap.String("job_id", job.ID),
		zap.String("fallback_id", payload.FallbackID),
	)
	return nil
}

// Dequeue blocks until a job is available or ctx is done.
func (q *Queue) Dequeue(ctx context.Context) (*Job, error) {
	result, err := q.client.BLPop(ctx, 0, QueueDeferred).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	if len(result) < 2 {
		return nil, nil
	}
	var job Job
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		q.logger.Warn("invalid job payload", zap.String("raw", result[1]), zap.Error(err))
		return nil, nil
	}
	return &job, nil
}

// Retry re-enqueues a job with incremented attempt. If attempt >= MaxRetries,
// pushes to the DLQ instead.
func (q *Queue) Retry(ctx context.Context, job *Job) error {
	job.Attempt++
	raw, err := json.Marshal(job)
	if err != nil {
		return err
	}
	if job.Attempt >= MaxRetries {
		if err := q.client.RPush(ctx, QueueDLQ, raw).Err(); err != nil {
			q.logger.Error("dlq push failed", zap.Error(err), zap.String("job_id", job.ID))
			return err
		}
		q.logger.Warn("job moved to DLQ", zap.String("job_id", job.ID), zap.Int("attempt", job.Attempt))
		return nil
	}
	if err := q.client.RPush(ctx, QueueDeferred, raw).Err(); err != nil {
		return err
	}
	q.logger.Info("job retried", zap.String("job_id", job.ID), zap.Int("attempt", job.Attempt))
	return nil
}
