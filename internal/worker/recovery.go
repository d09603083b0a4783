// Package worker replays deferred submissions captured by the fallback
// persistence path once durable storage is reachable again.
package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/policy-pulse/backend/internal/models"
	"github.com/policy-pulse/backend/pkg/queue"
)

// SubmissionInserter is the durable write path the processor replays into.
type SubmissionInserter interface {
	Insert(ctx context.Context, resp *models.SurveyResponse) error
}

// RecoveryProcessor drains the recovery queue and writes each deferred
// submission to the durable store.
type RecoveryProcessor struct {
	store  SubmissionInserter
	queue  *queue.Queue
	logger *zap.Logger
}

// NewRecoveryProcessor creates a recovery processor.
func NewRecoveryProcessor(store SubmissionInserter, q *queue.Queue, logger *zap.Logger) *RecoveryProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecoveryProcessor{store: store, queue: q, logger: logger}
}

// Process writes one deferred submission durably.
func (p *RecoveryProcessor) Process(ctx context.Context, job *queue.Job) error {
	resp := job.Payload.Response
	if err := p.store.Insert(ctx, &resp); err != nil {
		return err
	}
	p.logger.Info("deferred submission recovered",
		zap.String("job_id", job.ID),
		zap.String("fallback_id", job.Payload.FallbackID),
		zap.String("response_id", resp.ID.String()),
	)
	return nil
}

// Run starts the worker loop: dequeue, insert, retry on error.
func (p *RecoveryProcessor) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("recovery worker stopping")
			return
		default:
		}

		job, err := p.queue.Dequeue(ctx)
		if err != nil {
			p.logger.Warn("dequeue error", zap.Error(err))
			time.Sleep(queue.RetryBackoff)
			continue
		}
		if job == nil {
			continue
		}

		if err := p.Process(ctx, job); err != nil {
			p.logger.Error("recovery insert failed", zap.String("job_id", job.ID), zap.Error(err))
			if reErr := p.queue.Retry(ctx, job); reErr != nil {
				p.logger.Error("retry enqueue failed", zap.Error(reErr))
			}
			time.Sleep(queue.RetryBackoff)
			continue
		}
	}
}
