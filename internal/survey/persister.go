package survey

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/policy-pulse/backend/internal/models"
	"github.com/policy-pulse/backend/pkg/queue"
)

// FallbackIDPrefix marks synthetic identifiers minted when the durable write
// was deferred.
const FallbackIDPrefix = "fallback-"

// FallbackWarning is the user-visible annotation on a degraded success.
const FallbackWarning = "response accepted; durable storage temporarily unavailable, submission queued for recovery"

// ResponseStore is the durable write path for validated responses.
type ResponseStore interface {
	Insert(ctx context.Context, resp *models.SurveyResponse) error
}

// RecoveryQueue captures submissions whose durable write failed, for later
// replay. Enqueue is best effort.
type RecoveryQueue interface {
	Enqueue(ctx context.Context, payload queue.DeferredSubmission) error
}

// PersistResult is the outcome of persisting one submission.
type PersistResult struct {
	ID       string
	Fallback bool
	Warning  string
}

// Persister durably stores validated responses. When the store is
// unavailable it does not fail the caller: the full payload is logged for
// manual recovery, queued for replay when possible, and a synthetic id plus
// warning is returned so an anonymous one-shot submission is never lost to a
// storage hiccup.
type Persister struct {
	store  ResponseStore
	queue  RecoveryQueue // may be nil when Redis is not configured
	logger *zap.Logger
	now    func() time.Time
}

// NewPersister creates a persister. queue may be nil.
func NewPersister(store ResponseStore, recovery RecoveryQueue, logger *zap.Logger) *Persister {
	return &Persister{store: store, queue: recovery, logger: logger, now: time.Now}
}

// Persist writes the response, degrading to the fallback path on storage
// failure. The returned id is the durable record id, or a synthetic
// fallback id with Fallback set and a warning for the caller.
func (p *Persister) Persist(ctx context.Context, resp *models.SurveyResponse) PersistResult {
	if err := p.store.Insert(ctx, resp); err != nil {
		return p.fallback(ctx, resp, err)
	}
	return PersistResult{ID: resp.ID.String()}
}

func (p *Persister) fallback(ctx context.Context, resp *models.SurveyResponse, cause error) PersistResult {
	fallbackID := fmt.Sprintf("%s%d", FallbackIDPrefix, p.now().UnixNano())

	// Log the full payload so the submission can be recovered by hand even
	// if the recovery queue is down too.
	p.logger.Error("durable write failed, submission deferred",
		zap.String("fallback_id", fallbackID),
		zap.Error(cause),
		zap.Any("payload", resp),
	)

	if p.queue != nil {
		deferred := queue.DeferredSubmission{FallbackID: fallbackID, Response: *resp}
		if err := p.queue.Enqueue(ctx, deferred); err != nil {
			p.logger.Error("recovery enqueue failed", zap.String("fallback_id", fallbackID), zap.Error(err))
		}
	}

	return PersistResult{ID: fallbackID, Fallback: true, Warning: FallbackWarning}
}
