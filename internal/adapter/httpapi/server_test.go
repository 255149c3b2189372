package httpapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/disaster-alerts-service/internal/adapter/httpapi"
	"github.com/couchcryptid/disaster-alerts-service/internal/domain"
)

type mockLister struct {
	events      []domain.DisasterEvent
	err         error
	gotCategory string
	gotSource   string
}

func (m *mockLister) ListFiltered(_ context.Context, category, source string) ([]domain.DisasterEvent, error) {
	m.gotCategory = category
	m.gotSource = source
	return m.events, m.err
}

type mockReadiness struct {
	err error
}

func (m *mockReadiness) CheckReadiness(_ context.Context) error { return m.err }

type mockTrigger struct {
	calls atomic.Int64
}

func (m *mockTrigger) TriggerCycle(_ context.Context) { m.calls.Add(1) }

func newTestServer(lister *mockLister, readyErr error, trigger *mockTrigger) *httpapi.Server {
	if lister == nil {
		lister = &mockLister{}
	}
	if trigger == nil {
		trigger = &mockTrigger{}
	}
	return httpapi.NewServer(":0", lister, &mockReadiness{err: readyErr}, trigger, slog.Default())
}

func TestEventsReturnsStoredRecords(t *testing.T) {
	lister := &mockLister{events: []domain.DisasterEvent{
		{ID: "us1", Title: "M 4.5", Category: "earthquake", Latitude: 35.58,
			Longitude: -117.67, Source: "USGS", URL: "https://example.org",
			Date: "1724832000000", Magnitude: 4.5},
	}}
	srv := newTestServer(lister, nil, nil)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/events", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, "us1", body[0]["id"])
	assert.Equal(t, "earthquake", body[0]["category"])
	assert.Equal(t, 35.58, body[0]["latitude"])
	assert.Equal(t, -117.67, body[0]["longitude"])
	assert.Equal(t, "USGS", body[0]["source"])
	assert.Equal(t, "1724832000000", body[0]["date"])
	assert.Equal(t, 4.5, body[0]["magnitude"])
}

func TestEventsPassesFilters(t *testing.T) {
	lister := &mockLister{}
	srv := newTestServer(lister, nil, nil)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/events?category=earthquake&source=USGS", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "earthquake", lister.gotCategory)
	assert.Equal(t, "USGS", lister.gotSource)
}

func TestEventsEmptyStoreReturnsEmptyArray(t *testing.T) {
	srv := newTestServer(&mockLister{}, nil, nil)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/events", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestEventsStorageFaultReturns500(t *testing.T) {
	lister := &mockLister{err: errors.New("disk I/O error")}
	srv := newTestServer(lister, nil, nil)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/events", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHealthReturns200(t *testing.T) {
	srv := newTestServer(nil, nil, nil)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestReadyzReturns503BeforeFirstCycle(t *testing.T) {
	srv := newTestServer(nil, fmt.Errorf("no poll cycle has completed yet"), nil)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not ready", body["status"])
	assert.Equal(t, "no poll cycle has completed yet", body["error"])
}

func TestReadyzReturns200WhenReady(t *testing.T) {
	srv := newTestServer(nil, nil, nil)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(nil, nil, nil)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestPollTriggersCycle(t *testing.T) {
	trigger := &mockTrigger{}
	srv := newTestServer(nil, nil, trigger)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/poll", nil))

	assert.Equal(t, http.StatusAccepted, rec.Code)
	require.Eventually(t, func() bool { return trigger.calls.Load() == 1 },
		time.Second, time.Millisecond)
}

func TestEventsRejectsPost(t *testing.T) {
	srv := newTestServer(nil, nil, nil)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/events", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
