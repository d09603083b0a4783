package surveyconfig

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/policy-pulse/backend/internal/models"
)

type fakeConfigStore struct {
	cfg     *models.SurveyConfig
	getErr  error
	deleted []uuid.UUID
}

func (s *fakeConfigStore) GetCurrent(context.Context) (*models.SurveyConfig, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.cfg, nil
}

func (s *fakeConfigStore) Create(_ context.Context, cfg *models.SurveyConfig) error {
	cfg.ID = uuid.New()
	cfg.CreatedAt = time.Now()
	cfg.UpdatedAt = cfg.CreatedAt
	s.cfg = cfg
	return nil
}

func (s *fakeConfigStore) Update(_ context.Context, cfg *models.SurveyConfig) error {
	cfg.UpdatedAt = time.Now()
	s.cfg = cfg
	return nil
}

func (s *fakeConfigStore) Delete(_ context.Context, id uuid.UUID) error {
	s.deleted = append(s.deleted, id)
	s.cfg = nil
	return nil
}

type fakeArchiver struct {
	byPeriod map[string]int64
	retags   []string
}

func (a *fakeArchiver) RetagPeriod(_ context.Context, from, to string) (int64, error) {
	n := a.byPeriod[from]
	delete(a.byPeriod, from)
	a.byPeriod[to] += n
	a.retags = append(a.retags, to)
	return n, nil
}

func newConfigRouter(store Store, archiver ResponseArchiver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewHandler(store, archiver, zap.NewNop())
	router := gin.New()
	router.GET("/survey-config", handler.Get)
	router.PUT("/survey-config", handler.Update)
	router.DELETE("/survey-config", handler.Reset)
	return router
}

func TestGetLazilyCreatesDefault(t *testing.T) {
	store := &fakeConfigStore{}
	router := newConfigRouter(store, &fakeArchiver{byPeriod: map[string]int64{}})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/survey-config", nil))
	require.Equal(t, http.StatusOK, w.Code)

	require.NotNil(t, store.cfg)
	assert.True(t, store.cfg.IsActive)
	assert.Equal(t, models.DefaultSurveyPeriod, store.cfg.SurveyPeriod)
	assert.Equal(t, 7*24*time.Hour, store.cfg.EndDate.Sub(store.cfg.StartDate))
}

func TestGetDegradesOnStoreFailure(t *testing.T) {
	store := &fakeConfigStore{getErr: errors.New("storage down")}
	router := newConfigRouter(store, &fakeArchiver{byPeriod: map[string]int64{}})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/survey-config", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "warning")
}

func TestUpdateRejectsInvertedWindow(t *testing.T) {
	store := &fakeConfigStore{}
	router := newConfigRouter(store, &fakeArchiver{byPeriod: map[string]int64{}})

	payload := `{"isActive": true, "startDate": "2025-06-10T00:00:00Z", "endDate": "2025-06-01T00:00:00Z"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/survey-config", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, store.cfg)
}

func TestUpdateUpsertsSingleton(t *testing.T) {
	store := &fakeConfigStore{}
	router := newConfigRouter(store, &fakeArchiver{byPeriod: map[string]int64{}})

	payload := `{"isActive": false, "startDate": "2025-06-01T00:00:00Z", "endDate": "2025-06-10T00:00:00Z", "title": "Q2 refresh", "expectedResponses": 120}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/survey-config", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, store.cfg)
	assert.False(t, store.cfg.IsActive)
	assert.Equal(t, "Q2 refresh", store.cfg.Title)
	assert.Equal(t, 120, store.cfg.ExpectedResponses)
}

func TestResetArchivesAndRecreates(t *testing.T) {
	existing := &models.SurveyConfig{
		ID:           uuid.New(),
		SurveyPeriod: models.DefaultSurveyPeriod,
		IsActive:     true,
		StartDate:    time.Now().Add(-10 * 24 * time.Hour),
		EndDate:      time.Now().Add(-3 * 24 * time.Hour),
	}
	store := &fakeConfigStore{cfg: existing}
	archiver := &fakeArchiver{byPeriod: map[string]int64{models.DefaultSurveyPeriod: 4}}
	router := newConfigRouter(store, archiver)

	before := time.Now()
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/survey-config", nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Previous responses moved, not destroyed.
	require.Len(t, archiver.retags, 1)
	archiveTag := archiver.retags[0]
	assert.True(t, strings.HasPrefix(archiveTag, ArchivePeriodPrefix))
	assert.Equal(t, int64(4), archiver.byPeriod[archiveTag])
	assert.Zero(t, archiver.byPeriod[models.DefaultSurveyPeriod])

	// Old config removed, fresh default in place.
	assert.Equal(t, []uuid.UUID{existing.ID}, store.deleted)
	require.NotNil(t, store.cfg)
	assert.NotEqual(t, existing.ID, store.cfg.ID)
	assert.True(t, store.cfg.IsActive)
	assert.False(t, store.cfg.StartDate.Before(before.Truncate(time.Second)))

	var body struct {
		Data struct {
			ArchivedPeriod    string `json:"archivedPeriod"`
			ArchivedResponses int64  `json:"archivedResponses"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, archiveTag, body.Data.ArchivedPeriod)
	assert.Equal(t, int64(4), body.Data.ArchivedResponses)
}
