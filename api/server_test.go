package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marine-data/behavior.report/db"
	"github.com/marine-data/behavior.report/internal/source"
	"github.com/marine-data/behavior.report/internal/tracking"
)

func newTestServer(t *testing.T) (*Server, *db.DB) {
	t.Helper()
	database, err := db.NewDB(filepath.Join(t.TempDir(), "api_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return NewServer(database), database
}

func recordRun(t *testing.T, database *db.DB) db.Run {
	t.Helper()
	samples := (&tracking.SyntheticGenerator{Seed: 42, SampleCount: 100}).Generate()
	analyzer := tracking.NewMovementAnalyzer()
	analyzer.Load(samples)
	summary, ok := analyzer.Analyze()
	require.True(t, ok)

	run := db.NewRun("chelonia", source.OriginSynthetic, len(samples), summary)
	require.NoError(t, database.RecordRun(run))
	require.NoError(t, database.RecordSamples(run.RunID, samples))
	return run
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.ServeMux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestLatestSummary(t *testing.T) {
	s, database := newTestServer(t)

	// Empty database: summary is absent, not zero-filled.
	rec := get(t, s, "/api/summary")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	want := recordRun(t, database)

	rec = get(t, s, "/api/summary")
	require.Equal(t, http.StatusOK, rec.Code)

	var got db.Run
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, want.RunID, got.RunID)
	assert.Equal(t, want.Summary, got.Summary)
	assert.Equal(t, source.OriginSynthetic, got.Origin)
}

func TestListRuns(t *testing.T) {
	s, database := newTestServer(t)

	rec := get(t, s, "/api/runs")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	recordRun(t, database)
	recordRun(t, database)

	rec = get(t, s, "/api/runs")
	require.Equal(t, http.StatusOK, rec.Code)
	var runs []db.Run
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &runs))
	assert.Len(t, runs, 2)

	rec = get(t, s, "/api/runs?limit=1")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &runs))
	assert.Len(t, runs, 1)

	rec = get(t, s, "/api/runs?limit=bogus")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCharts(t *testing.T) {
	s, database := newTestServer(t)

	rec := get(t, s, "/charts/interactions")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	recordRun(t, database)

	rec = get(t, s, "/charts/interactions")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Interaction Types")

	rec = get(t, s, "/charts/distance")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Distance Between Subjects")
}

func TestMethodNotAllowed(t *testing.T) {
	s, _ := newTestServer(t)

	for _, path := range []string{"/api/summary", "/api/runs", "/charts/interactions", "/charts/distance"} {
		rec := httptest.NewRecorder()
		s.ServeMux().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, path)
	}
}

func TestHome(t *testing.T) {
	s, _ := newTestServer(t)

	rec := get(t, s, "/")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = get(t, s, "/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
