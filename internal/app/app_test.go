package app

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobpulse/internal/config"
	apierrors "jobpulse/internal/errors"
	"jobpulse/internal/exporter"
	"jobpulse/internal/infrastructure"
	"jobpulse/internal/shared/testutil"
)

func newTestApp(t *testing.T, datasetPath string) *httptest.Server {
	t.Helper()

	cfg := config.Default()
	cfg.Dataset.Path = datasetPath
	cfg.Security.RateLimit.Enabled = false

	app, err := New(cfg, infrastructure.DiscardLogger())
	require.NoError(t, err)

	srv := httptest.NewServer(app.Router)
	t.Cleanup(srv.Close)
	return srv
}

func writeDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "employment_dataset.csv")
	_, err := exporter.WriteFile(path, testutil.HundredJobs())
	require.NoError(t, err)
	return path
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestApplicationRoutes(t *testing.T) {
	srv := newTestApp(t, writeDataset(t))

	tests := []struct {
		name        string
		path        string
		wantStatus  int
		wantType    string
		wantContent string
	}{
		{"health", "/api/health", http.StatusOK, "application/json", `"status":"ok"`},
		{"ready", "/api/health/ready", http.StatusOK, "application/json", `"status":"ready"`},
		{"live", "/api/health/live", http.StatusOK, "application/json", `"status":"alive"`},
		{"version", "/api/version", http.StatusOK, "application/json", `"api_version"`},
		{"data", "/api/employment-data?industries=Technology&limit=100", http.StatusOK, "application/json", `"hasMore":false`},
		{"charts", "/api/employment-data/charts", http.StatusOK, "application/json", `"scatterPlot"`},
		{"single chart", "/api/employment-data/charts/geo", http.StatusOK, "application/json", `"chart":"geo"`},
		{"unknown chart", "/api/employment-data/charts/pie", http.StatusNotFound, apierrors.ProblemContentType, apierrors.TypeChartNotFound},
		{"bad pagination", "/api/employment-data?page=0", http.StatusBadRequest, apierrors.ProblemContentType, apierrors.TypeValidation},
		{"export", "/api/employment-data/export?format=csv", http.StatusOK, "text/csv", "Job ID,Job Title"},
		{"unknown route", "/api/nope", http.StatusNotFound, apierrors.ProblemContentType, apierrors.TypeNotFound},
		{"metrics", "/metrics", http.StatusOK, "text/plain", "http_requests"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := get(t, srv.URL+tt.path)

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Contains(t, resp.Header.Get("Content-Type"), tt.wantType)
			assert.Contains(t, body, tt.wantContent)
			assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
		})
	}
}

func TestApplicationDataMatchesFixture(t *testing.T) {
	srv := newTestApp(t, writeDataset(t))

	for _, limit := range []string{"7", "30", "100"} {
		_, body := get(t, srv.URL+"/api/employment-data?industries=Technology&limit="+limit)

		var page struct {
			Stats struct {
				TotalJobs int `json:"totalJobs"`
			} `json:"stats"`
			Locations []string `json:"locations"`
		}
		require.NoError(t, json.Unmarshal([]byte(body), &page))
		assert.Equal(t, 30, page.Stats.TotalJobs, "limit=%s", limit)
		assert.Len(t, page.Locations, 5)
	}
}

func TestApplicationMissingDataset(t *testing.T) {
	srv := newTestApp(t, filepath.Join(t.TempDir(), "missing.csv"))

	resp, body := get(t, srv.URL+"/api/health/ready")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Contains(t, body, "not_ready")

	resp, body = get(t, srv.URL+"/api/employment-data")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"jobs":[]`)
	assert.Contains(t, body, `"totalJobs":0`)
}

func TestApplicationMethodNotAllowed(t *testing.T) {
	srv := newTestApp(t, writeDataset(t))

	resp, err := http.Post(srv.URL+"/api/employment-data/charts", "application/json", strings.NewReader("{}"))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	assert.Equal(t, apierrors.ProblemContentType, resp.Header.Get("Content-Type"))
}
