package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apierrors "jobpulse/internal/errors"
	"jobpulse/internal/infrastructure"
	"jobpulse/internal/services"
)

// MockHealthChecker is a mock implementation of HealthChecker
type MockHealthChecker struct {
	mock.Mock
}

func (m *MockHealthChecker) HealthCheck(ctx context.Context) services.HealthStatus {
	return m.Called().Get(0).(services.HealthStatus)
}

func (m *MockHealthChecker) ReadinessCheck(ctx context.Context) services.HealthStatus {
	return m.Called().Get(0).(services.HealthStatus)
}

func (m *MockHealthChecker) LivenessCheck(ctx context.Context) services.HealthStatus {
	return m.Called().Get(0).(services.HealthStatus)
}

func (m *MockHealthChecker) Version() map[string]interface{} {
	return m.Called().Get(0).(map[string]interface{})
}

func (m *MockHealthChecker) SystemStats() services.SystemStats {
	return m.Called().Get(0).(services.SystemStats)
}

func TestHealthHandler_ReadinessCheck(t *testing.T) {
	tests := []struct {
		name       string
		status     string
		wantStatus int
	}{
		{"ready", "ready", http.StatusOK},
		{"dataset failed", "not_ready", http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockHealthChecker)
			svc.On("ReadinessCheck").Return(services.HealthStatus{Status: tt.status, Timestamp: time.Now()})
			h := NewHealthHandler(svc, infrastructure.DiscardLogger())

			rec := httptest.NewRecorder()
			h.ReadinessCheck(rec, httptest.NewRequest(http.MethodGet, "/api/health/ready", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body services.HealthStatus
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.status, body.Status)
		})
	}
}

func TestHealthHandler_Endpoints(t *testing.T) {
	svc := new(MockHealthChecker)
	svc.On("HealthCheck").Return(services.HealthStatus{Status: "ok"})
	svc.On("LivenessCheck").Return(services.HealthStatus{Status: "alive"})
	svc.On("Version").Return(map[string]interface{}{"version": "dev"})
	svc.On("SystemStats").Return(services.SystemStats{Goroutines: 4})
	h := NewHealthHandler(svc, infrastructure.DiscardLogger())

	tests := []struct {
		handler http.HandlerFunc
		want    string
	}{
		{h.HealthCheck, `"status":"ok"`},
		{h.LivenessCheck, `"status":"alive"`},
		{h.Version, `"version":"dev"`},
		{h.SystemStats, `"goroutines":4`},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		tt.handler(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), tt.want)
	}
	svc.AssertExpectations(t)
}

func TestMetricsHandler(t *testing.T) {
	logger := infrastructure.DiscardLogger()
	errorHandler := apierrors.NewErrorHandler(logger, false)

	t.Run("disabled", func(t *testing.T) {
		rec := httptest.NewRecorder()
		NewMetricsHandler(nil, errorHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("exposition", func(t *testing.T) {
		exposition := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("# HELP jobpulse_up\n"))
		})
		rec := httptest.NewRecorder()
		NewMetricsHandler(exposition, errorHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "jobpulse_up")
	})
}
