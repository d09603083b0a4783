package survey

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/policy-pulse/backend/internal/models"
	"github.com/policy-pulse/backend/internal/ratelimit"
)

type fakeConfigSource struct {
	cfg *models.SurveyConfig
	err error
}

func (s *fakeConfigSource) GetCurrent(context.Context) (*models.SurveyConfig, error) {
	return s.cfg, s.err
}

func newTestRouter(store ResponseStore, configs ConfigSource, limit int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	limiter := ratelimit.NewLimiter(ratelimit.NewMemoryStore(), limit, time.Minute, zap.NewNop())
	persister := NewPersister(store, nil, zap.NewNop())
	handler := NewHandler(NewValidator(false), configs, limiter, persister, zap.NewNop())

	router := gin.New()
	router.POST("/submit", handler.Submit)
	return router
}

func postSubmission(t *testing.T, router *gin.Engine, sub *Submission) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(sub)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/submit", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "203.0.113.7:52100"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func openWindow() *fakeConfigSource {
	now := time.Now()
	return &fakeConfigSource{cfg: &models.SurveyConfig{
		SurveyPeriod: models.DefaultSurveyPeriod,
		IsActive:     true,
		StartDate:    now.Add(-24 * time.Hour),
		EndDate:      now.Add(24 * time.Hour),
	}}
}

func TestSubmitSuccess(t *testing.T) {
	store := &fakeStore{}
	router := newTestRouter(store, openWindow(), 5)

	w := postSubmission(t, router, validSubmission())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			ID string `json:"id"`
		} `json:"data"`
		Warning string `json:"warning"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.NotEmpty(t, body.Data.ID)
	assert.Empty(t, body.Warning)

	require.Len(t, store.inserted, 1)
	assert.Equal(t, models.DefaultSurveyPeriod, store.inserted[0].SurveyPeriod)
}

func TestSubmitValidationFailure(t *testing.T) {
	router := newTestRouter(&fakeStore{}, openWindow(), 5)

	sub := validSubmission()
	sub.Department = "Shipping"
	w := postSubmission(t, router, sub)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "department")
}

func TestSubmitOutsideWindow(t *testing.T) {
	now := time.Now()
	configs := &fakeConfigSource{cfg: &models.SurveyConfig{
		IsActive:  true,
		StartDate: now.Add(-72 * time.Hour),
		EndDate:   now.Add(-48 * time.Hour),
	}}
	router := newTestRouter(&fakeStore{}, configs, 5)

	w := postSubmission(t, router, validSubmission())
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "ended")
}

func TestSubmitFailsOpenWhenConfigUnreachable(t *testing.T) {
	store := &fakeStore{}
	configs := &fakeConfigSource{err: errors.New("config store down")}
	router := newTestRouter(store, configs, 5)

	w := postSubmission(t, router, validSubmission())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.Len(t, store.inserted, 1)
	assert.Equal(t, models.DefaultSurveyPeriod, store.inserted[0].SurveyPeriod)
}

func TestSubmitRateLimited(t *testing.T) {
	router := newTestRouter(&fakeStore{}, openWindow(), 5)

	for i := 0; i < 5; i++ {
		w := postSubmission(t, router, validSubmission())
		require.Equal(t, http.StatusCreated, w.Code, "submission %d", i+1)
	}

	w := postSubmission(t, router, validSubmission())
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestSubmitFallbackPersistence(t *testing.T) {
	store := &fakeStore{err: errors.New("storage offline")}
	router := newTestRouter(store, openWindow(), 5)

	w := postSubmission(t, router, validSubmission())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			ID string `json:"id"`
		} `json:"data"`
		Warning string `json:"warning"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Contains(t, body.Data.ID, FallbackIDPrefix)
	assert.NotEmpty(t, body.Warning)
}
