package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/Coverage/internal/analysis"
	"github.com/MikeSquared-Agency/Coverage/internal/broker"
	"github.com/MikeSquared-Agency/Coverage/internal/config"
	"github.com/MikeSquared-Agency/Coverage/internal/report"
	"github.com/MikeSquared-Agency/Coverage/internal/store"
)

const adminToken = "test-token"

type mockHermes struct{}

func (m *mockHermes) Publish(_ string, _ interface{}) error            { return nil }
func (m *mockHermes) Subscribe(_ string, _ func(string, []byte)) error { return nil }
func (m *mockHermes) Close()                                           {}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() *config.Config {
	return &config.Config{Analysis: config.AnalysisConfig{Decimals: 3, MaxPoints: 1000}}
}

func setupTestRouterWithStore(s store.Store) http.Handler {
	logger := discardLogger()
	b := broker.New(s, &mockHermes{}, testConfig(), logger)
	return NewRouter(s, b, adminToken, 0, logger)
}

func setupTestRouter() (http.Handler, *store.MemoryStore) {
	s := store.NewMemoryStore()
	return setupTestRouterWithStore(s), s
}

func do(t *testing.T, h http.Handler, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("X-Client-ID", "test-client")
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func pointsBody(t *testing.T, points []analysis.Point) string {
	t.Helper()
	data, err := json.Marshal(PointsRequest{Points: points})
	require.NoError(t, err)
	return string(data)
}

func TestClientIDRequired(t *testing.T) {
	router, _ := setupTestRouter()
	req := httptest.NewRequest("POST", "/api/v1/analyze", strings.NewReader(`{"points":[]}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAnalyze_EndToEnd(t *testing.T) {
	router, _ := setupTestRouter()

	body := `{"points":[{"model":"A","x":0.4,"y":0.6},{"model":"B","x":0.2,"y":0.4}]}`
	w := do(t, router, "POST", "/api/v1/analyze", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res analysis.Result
	require.NoError(t, json.NewDecoder(w.Body).Decode(&res))
	assert.Empty(t, res.Dominated)
	assert.Equal(t, []string{"always negative", "B", "A", "always positive"}, analysis.Models(res.Frontier))
	require.Len(t, res.Preferences, 3)
	assert.Equal(t, 2.0, res.Preferences[0].Slope)
	assert.Equal(t, 1.0, res.Preferences[1].Slope)
	assert.Equal(t, 0.667, res.Preferences[2].Slope)
	assert.Equal(t, []analysis.RecallGroup{{AverageRecall: 0.6, Models: []string{"A", "B"}}}, res.RecallGroups)
}

func TestAnalyze_BadRequests(t *testing.T) {
	router, _ := setupTestRouter()

	tests := []struct {
		name string
		body string
	}{
		{"malformed body", `{"points":`},
		{"out of range", `{"points":[{"model":"A","x":1.5,"y":0.6}]}`},
		{"empty model", `{"points":[{"model":"","x":0.5,"y":0.6}]}`},
		{"duplicate model", `{"points":[{"model":"A","x":0.5,"y":0.6},{"model":"A","x":0.1,"y":0.2}]}`},
		{"anchor name", `{"points":[{"model":"always negative","x":0.3,"y":0.5}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, router, "POST", "/api/v1/analyze", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}
}

func TestAnalyze_VerticalEdgeEncodes(t *testing.T) {
	router, _ := setupTestRouter()
	w := do(t, router, "POST", "/api/v1/analyze", `{"points":[{"model":"edge","x":0,"y":0.5}]}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"slope":"+Inf"`)
}

func TestAnalyzeReport(t *testing.T) {
	router, _ := setupTestRouter()

	w := do(t, router, "POST", "/api/v1/analyze/report", pointsBody(t, analysis.ExamplePoints()))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "- 2 is dominated by 4\n")
	assert.Contains(t, w.Body.String(), "- 5 is preferred to 4 when the class ratio ≥ 2\n")
	assert.Contains(t, w.Body.String(), "- 1 and 2 have average recall 0.6\n")

	w = do(t, router, "POST", "/api/v1/analyze/report?format=json", pointsBody(t, analysis.ExamplePoints()))
	require.Equal(t, http.StatusOK, w.Code)
	var sections []report.Section
	require.NoError(t, json.NewDecoder(w.Body).Decode(&sections))
	require.Len(t, sections, 3)
	assert.Equal(t, report.TitleRecall, sections[2].Title)
}

func TestComparisonLifecycle(t *testing.T) {
	router, _ := setupTestRouter()

	w := do(t, router, "POST", "/api/v1/comparisons",
		`{"name":"baseline","points":[{"model":"C","x":0.2,"y":0.7},{"model":"D","x":0.2,"y":0.4}]}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created ComparisonResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
	require.NotNil(t, created.Comparison)
	assert.Equal(t, "baseline", created.Name)
	assert.Equal(t, "test-client", created.Source)
	assert.Equal(t, 1, created.Revision)
	require.Len(t, created.Analysis.Dominated, 1)
	assert.Equal(t, "C", created.Analysis.Dominated[0].Dominator.Model)
	assert.Equal(t, "D", created.Analysis.Dominated[0].Dominated.Model)

	base := "/api/v1/comparisons/" + created.ID.String()

	w = do(t, router, "GET", base, "")
	require.Equal(t, http.StatusOK, w.Code)
	var got store.Comparison
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Len(t, got.Points, 2)

	w = do(t, router, "GET", "/api/v1/comparisons", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []store.Comparison
	require.NoError(t, json.NewDecoder(w.Body).Decode(&list))
	assert.Len(t, list, 1)

	w = do(t, router, "PUT", base+"/points", pointsBody(t, analysis.ExamplePoints()))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated ComparisonResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&updated))
	assert.Equal(t, 2, updated.Revision)
	assert.Len(t, updated.Analysis.Preferences, 3)

	w = do(t, router, "GET", base+"/analysis", "")
	require.Equal(t, http.StatusOK, w.Code)
	var res analysis.Result
	require.NoError(t, json.NewDecoder(w.Body).Decode(&res))
	assert.Len(t, res.Dominated, 4)

	w = do(t, router, "GET", base+"/report", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), report.TitleDominated)

	w = do(t, router, "DELETE", base, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, router, "DELETE", base, "", "Authorization", "Bearer "+adminToken)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, router, "GET", base, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestComparisonErrors(t *testing.T) {
	router, _ := setupTestRouter()

	w := do(t, router, "POST", "/api/v1/comparisons", `{"points":[]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, router, "GET", "/api/v1/comparisons/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	missing := "/api/v1/comparisons/" + uuid.New().String()
	assert.Equal(t, http.StatusNotFound, do(t, router, "GET", missing, "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, router, "GET", missing+"/analysis", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, router, "PUT", missing+"/points", `{"points":[]}`).Code)
	assert.Equal(t, http.StatusNotFound,
		do(t, router, "DELETE", missing, "", "Authorization", "Bearer "+adminToken).Code)

	w = do(t, router, "GET", "/api/v1/comparisons?limit=-1", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStatsEndpoint(t *testing.T) {
	router, s := setupTestRouter()
	require.NoError(t, s.CreateComparison(context.Background(), &store.Comparison{Name: "x", Points: analysis.ExamplePoints()}))

	w := do(t, router, "GET", "/api/v1/stats", "", "Authorization", "Bearer "+adminToken)
	require.Equal(t, http.StatusOK, w.Code)

	var stats store.Stats
	require.NoError(t, json.NewDecoder(w.Body).Decode(&stats))
	assert.Equal(t, 1, stats.TotalComparisons)
	assert.Equal(t, 5, stats.TotalPoints)
}

// MockStore stubs the store calls the error-path tests need.
type MockStore struct {
	mock.Mock
	store.Store
}

func (m *MockStore) ListComparisons(ctx context.Context, f store.ComparisonFilter) ([]*store.Comparison, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*store.Comparison), args.Error(1)
}

func (m *MockStore) GetStats(ctx context.Context) (*store.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Stats), args.Error(1)
}

func TestStoreErrors(t *testing.T) {
	ms := new(MockStore)
	ms.On("ListComparisons", mock.Anything, store.ComparisonFilter{Limit: 2}).Return(nil, errors.New("db down"))
	ms.On("GetStats", mock.Anything).Return(nil, errors.New("db down"))
	router := setupTestRouterWithStore(ms)

	w := do(t, router, "GET", "/api/v1/comparisons?limit=2", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "db down")

	w = do(t, router, "GET", "/api/v1/stats", "", "Authorization", "Bearer "+adminToken)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	ms.AssertExpectations(t)
}

func TestMetricsRouter(t *testing.T) {
	router := NewMetricsRouter()

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest("GET", "/metrics", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "coverage_analysis_duration_seconds")
}
