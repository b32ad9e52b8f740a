package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apierrors "jobpulse/internal/errors"
	"jobpulse/internal/exporter"
	"jobpulse/internal/infrastructure"
	"jobpulse/internal/services"
	"jobpulse/pkg/contracts/domain"
)

// MockEmploymentService is a mock implementation of EmploymentService
type MockEmploymentService struct {
	mock.Mock
}

func (m *MockEmploymentService) Query(ctx context.Context, filter domain.JobFilter, page, limit int) (domain.EmploymentPage, error) {
	args := m.Called(filter, page, limit)
	return args.Get(0).(domain.EmploymentPage), args.Error(1)
}

func (m *MockEmploymentService) Charts(ctx context.Context, filter domain.JobFilter, opts services.ChartOptions) (domain.VisualizationData, int, error) {
	args := m.Called(filter, opts)
	return args.Get(0).(domain.VisualizationData), args.Int(1), args.Error(2)
}

func (m *MockEmploymentService) Chart(ctx context.Context, chart domain.ChartType, filter domain.JobFilter, opts services.ChartOptions) (interface{}, int, error) {
	args := m.Called(chart, filter, opts)
	return args.Get(0), args.Int(1), args.Error(2)
}

func (m *MockEmploymentService) Export(ctx context.Context, filter domain.JobFilter, format exporter.Format, w io.Writer) (int, error) {
	args := m.Called(filter, format)
	if body := args.String(0); body != "" {
		if _, err := io.WriteString(w, body); err != nil {
			return 0, err
		}
	}
	return args.Int(1), args.Error(2)
}

func newTestRouter(svc EmploymentService) chi.Router {
	logger := infrastructure.DiscardLogger()
	h := NewEmploymentHandler(svc, logger, apierrors.NewErrorHandler(logger, false), 20, 10)
	h.now = func() time.Time { return time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC) }

	r := chi.NewRouter()
	r.Get("/api/employment-data/export", h.Export)
	r.Mount("/api/employment-data", h.Routes())
	return r
}

func serve(r http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func problemType(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	require.Equal(t, apierrors.ProblemContentType, rec.Header().Get("Content-Type"))
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	typ, _ := body["type"].(string)
	return typ
}

func TestEmploymentHandler_GetData(t *testing.T) {
	page := domain.EmploymentPage{
		Jobs:      []domain.JobListing{{ID: "J1", JobTitle: "Engineer", Salary: 90000, PostedDate: "2023-01-02"}},
		HasMore:   true,
		Locations: []string{"Remote"},
		Stats:     domain.DashboardStats{TotalJobs: 2, JobsGrowthRate: 12, SalaryGrowthRate: 5.2},
	}

	tests := []struct {
		name       string
		target     string
		setup      func(*MockEmploymentService)
		wantStatus int
		wantType   string
	}{
		{
			name:   "defaults",
			target: "/api/employment-data",
			setup: func(m *MockEmploymentService) {
				m.On("Query", domain.JobFilter{}, 1, 20).Return(page, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "repeated and bracketed filters",
			target: "/api/employment-data?industries=Technology&industries=Finance&locations[]=Remote&page=2&limit=5",
			setup: func(m *MockEmploymentService) {
				m.On("Query", domain.JobFilter{
					Industries: []string{"Technology", "Finance"},
					Locations:  []string{"Remote"},
				}, 2, 5).Return(page, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "page below one",
			target:     "/api/employment-data?page=0",
			setup:      func(*MockEmploymentService) {},
			wantStatus: http.StatusBadRequest,
			wantType:   apierrors.TypeValidation,
		},
		{
			name:       "limit not a number",
			target:     "/api/employment-data?limit=lots",
			setup:      func(*MockEmploymentService) {},
			wantStatus: http.StatusBadRequest,
			wantType:   apierrors.TypeValidation,
		},
		{
			name:       "limit above maximum",
			target:     "/api/employment-data?limit=1001",
			setup:      func(*MockEmploymentService) {},
			wantStatus: http.StatusBadRequest,
			wantType:   apierrors.TypeValidation,
		},
		{
			name:   "service rejects pagination",
			target: "/api/employment-data?limit=900",
			setup: func(m *MockEmploymentService) {
				m.On("Query", domain.JobFilter{}, 1, 900).Return(domain.EmploymentPage{}, services.ErrInvalidPagination)
			},
			wantStatus: http.StatusBadRequest,
			wantType:   apierrors.TypeValidation,
		},
		{
			name:   "unexpected failure",
			target: "/api/employment-data",
			setup: func(m *MockEmploymentService) {
				m.On("Query", domain.JobFilter{}, 1, 20).Return(domain.EmploymentPage{}, errors.New("boom"))
			},
			wantStatus: http.StatusInternalServerError,
			wantType:   apierrors.TypeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockEmploymentService)
			tt.setup(svc)

			rec := serve(newTestRouter(svc), tt.target)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantType != "" {
				assert.Equal(t, tt.wantType, problemType(t, rec))
			} else {
				var body map[string]interface{}
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, true, body["hasMore"])
				assert.Len(t, body["jobs"], 1)
				assert.Equal(t, []interface{}{"Remote"}, body["locations"])
				stats := body["stats"].(map[string]interface{})
				assert.Equal(t, 12.0, stats["jobsGrowthRate"])
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestEmploymentHandler_GetDataEmptyPageEncodesArrays(t *testing.T) {
	svc := new(MockEmploymentService)
	svc.On("Query", domain.JobFilter{}, 1, 20).Return(domain.EmploymentPage{}, nil)

	rec := serve(newTestRouter(svc), "/api/employment-data")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"jobs":[]`)
	assert.Contains(t, rec.Body.String(), `"locations":[]`)
}

func TestEmploymentHandler_GetCharts(t *testing.T) {
	svc := new(MockEmploymentService)
	filter := domain.JobFilter{ExperienceLevels: []string{"Senior"}}
	data := domain.VisualizationData{Geo: domain.GeoData{Locations: []string{"Remote"}, MaxJobCount: 3}}
	svc.On("Charts", filter, services.ChartOptions{Interval: domain.IntervalWeekly, Top: 10}).Return(data, 3, nil)

	rec := serve(newTestRouter(svc), "/api/employment-data/charts?experienceLevels=Senior&interval=weekly")

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	for _, key := range []string{"boxPlot", "groupedBar", "stackedBar", "ridgeline", "timeLine", "scatterPlot", "geo"} {
		assert.Contains(t, body, key)
	}
	svc.AssertExpectations(t)
}

func TestEmploymentHandler_GetChartsPresentationOptions(t *testing.T) {
	svc := new(MockEmploymentService)
	svc.On("Charts", domain.JobFilter{}, services.ChartOptions{Density: true, Top: 0}).
		Return(domain.VisualizationData{}, 0, nil)

	rec := serve(newTestRouter(svc), "/api/employment-data/charts?density=true&top=0")

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)

	rec = serve(newTestRouter(new(MockEmploymentService)), "/api/employment-data/charts?top=101")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEmploymentHandler_GetChart(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		setup      func(*MockEmploymentService)
		wantStatus int
		wantType   string
	}{
		{
			name:   "ridgeline with presentation options",
			target: "/api/employment-data/charts/ridgeline?density=true&top=3",
			setup: func(m *MockEmploymentService) {
				m.On("Chart", domain.ChartRidgeline, domain.JobFilter{}, services.ChartOptions{Density: true, Top: 3}).
					Return(domain.RidgelineData{JobTitles: []string{"Engineer"}}, 4, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "top defaults to configured cap",
			target: "/api/employment-data/charts/ridgeline",
			setup: func(m *MockEmploymentService) {
				m.On("Chart", domain.ChartRidgeline, domain.JobFilter{}, services.ChartOptions{Top: 10}).
					Return(domain.RidgelineData{}, 0, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "unknown chart",
			target:     "/api/employment-data/charts/pie",
			setup:      func(*MockEmploymentService) {},
			wantStatus: http.StatusNotFound,
			wantType:   apierrors.TypeChartNotFound,
		},
		{
			name:       "unknown interval",
			target:     "/api/employment-data/charts/time-line?interval=yearly",
			setup:      func(*MockEmploymentService) {},
			wantStatus: http.StatusBadRequest,
			wantType:   apierrors.TypeValidation,
		},
		{
			name:       "density not a bool",
			target:     "/api/employment-data/charts/ridgeline?density=maybe",
			setup:      func(*MockEmploymentService) {},
			wantStatus: http.StatusBadRequest,
			wantType:   apierrors.TypeValidation,
		},
		{
			name:   "timeout",
			target: "/api/employment-data/charts/geo",
			setup: func(m *MockEmploymentService) {
				m.On("Chart", domain.ChartGeo, domain.JobFilter{}, services.ChartOptions{Top: 10}).
					Return(nil, 0, context.DeadlineExceeded)
			},
			wantStatus: http.StatusGatewayTimeout,
			wantType:   apierrors.TypeTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockEmploymentService)
			tt.setup(svc)

			rec := serve(newTestRouter(svc), tt.target)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantType != "" {
				assert.Equal(t, tt.wantType, problemType(t, rec))
			} else {
				var body map[string]interface{}
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, "ridgeline", body["chart"])
				assert.Contains(t, body, "data")
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestEmploymentHandler_Export(t *testing.T) {
	t.Run("csv download", func(t *testing.T) {
		svc := new(MockEmploymentService)
		svc.On("Export", domain.JobFilter{Industries: []string{"Technology"}}, exporter.FormatCSV).
			Return("Job ID,Job Title\n", 1, nil)

		rec := serve(newTestRouter(svc), "/api/employment-data/export?industries=Technology&format=csv")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename="employment_data_20240301_093000.csv"`, rec.Header().Get("Content-Disposition"))
		assert.True(t, strings.HasPrefix(rec.Body.String(), "Job ID"))
		svc.AssertExpectations(t)
	})

	t.Run("format defaults to csv", func(t *testing.T) {
		svc := new(MockEmploymentService)
		svc.On("Export", domain.JobFilter{}, exporter.FormatCSV).Return("", 0, nil)

		rec := serve(newTestRouter(svc), "/api/employment-data/export")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Disposition"), ".csv")
		svc.AssertExpectations(t)
	})

	t.Run("unsupported format", func(t *testing.T) {
		svc := new(MockEmploymentService)

		rec := serve(newTestRouter(svc), "/api/employment-data/export?format=pdf")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apierrors.TypeValidation, problemType(t, rec))
		svc.AssertNotCalled(t, "Export", mock.Anything, mock.Anything)
	})

	t.Run("failure before output is a problem", func(t *testing.T) {
		svc := new(MockEmploymentService)
		svc.On("Export", domain.JobFilter{}, exporter.FormatXLSX).Return("", 0, apierrors.NewExportError("export xlsx", errors.New("zip: write failed")))

		rec := serve(newTestRouter(svc), "/api/employment-data/export?format=xlsx")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, apierrors.TypeExportFailed, problemType(t, rec))
		assert.Empty(t, rec.Header().Get("Content-Disposition"))
	})
}

func TestMapServiceError(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{services.ErrUnknownChart, http.StatusNotFound, "CHART_NOT_FOUND"},
		{services.ErrInvalidPagination, http.StatusBadRequest, "INVALID_PARAMETER"},
		{services.ErrUnknownInterval, http.StatusBadRequest, "VALIDATION_FAILED"},
		{services.ErrUnsupportedFormat, http.StatusBadRequest, "VALIDATION_FAILED"},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			var apiErr *apierrors.APIError
			require.ErrorAs(t, mapServiceError(tt.err), &apiErr)
			assert.Equal(t, tt.wantStatus, apiErr.StatusCode)
			assert.Equal(t, tt.wantCode, apiErr.ErrorCode)
		})
	}
}
