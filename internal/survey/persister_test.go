package survey

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/policy-pulse/backend/internal/models"
	"github.com/policy-pulse/backend/pkg/queue"
)

type fakeStore struct {
	err      error
	inserted []*models.SurveyResponse
}

func (s *fakeStore) Insert(_ context.Context, resp *models.SurveyResponse) error {
	if s.err != nil {
		return s.err
	}
	s.inserted = append(s.inserted, resp)
	return nil
}

type fakeRecoveryQueue struct {
	err      error
	enqueued []queue.DeferredSubmission
}

func (q *fakeRecoveryQueue) Enqueue(_ context.Context, payload queue.DeferredSubmission) error {
	if q.err != nil {
		return q.err
	}
	q.enqueued = append(q.enqueued, payload)
	return nil
}

func testResponse() *models.SurveyResponse {
	return &models.SurveyResponse{
		ID:           uuid.New(),
		Department:   "Finance",
		SurveyPeriod: models.DefaultSurveyPeriod,
		CreatedAt:    time.Now(),
	}
}

func TestPersistDurableSuccess(t *testing.T) {
	store := &fakeStore{}
	p := NewPersister(store, nil, zap.NewNop())

	resp := testResponse()
	result := p.Persist(context.Background(), resp)

	assert.Equal(t, resp.ID.String(), result.ID)
	assert.False(t, result.Fallback)
	assert.Empty(t, result.Warning)
	require.Len(t, store.inserted, 1)
}

func TestPersistFallbackOnStoreFailure(t *testing.T) {
	store := &fakeStore{err: errors.New("connection refused")}
	recovery := &fakeRecoveryQueue{}
	p := NewPersister(store, recovery, zap.NewNop())

	resp := testResponse()
	result := p.Persist(context.Background(), resp)

	assert.True(t, result.Fallback)
	assert.True(t, strings.HasPrefix(result.ID, FallbackIDPrefix), "id %q", result.ID)
	assert.Equal(t, FallbackWarning, result.Warning)

	require.Len(t, recovery.enqueued, 1)
	assert.Equal(t, result.ID, recovery.enqueued[0].FallbackID)
	assert.Equal(t, resp.ID, recovery.enqueued[0].Response.ID)
}

func TestPersistFallbackSurvivesQueueFailure(t *testing.T) {
	store := &fakeStore{err: errors.New("connection refused")}
	recovery := &fakeRecoveryQueue{err: errors.New("redis down too")}
	p := NewPersister(store, recovery, zap.NewNop())

	result := p.Persist(context.Background(), testResponse())

	// Still a degraded success: the payload was logged for manual recovery.
	assert.True(t, result.Fallback)
	assert.NotEmpty(t, result.Warning)
}

func TestPersistFallbackWithoutQueue(t *testing.T) {
	store := &fakeStore{err: errors.New("connection refused")}
	p := NewPersister(store, nil, zap.NewNop())

	result := p.Persist(context.Background(), testResponse())
	assert.True(t, result.Fallback)
}
