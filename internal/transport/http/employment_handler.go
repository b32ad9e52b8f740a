package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "jobpulse/internal/errors"
	"jobpulse/internal/exporter"
	"jobpulse/internal/middleware"
	"jobpulse/internal/services"
	api "jobpulse/pkg/contracts/api/v1"
	"jobpulse/pkg/contracts/domain"
)

// EmploymentService is the part of services.EmploymentService the handler uses
type EmploymentService interface {
	Query(ctx context.Context, filter domain.JobFilter, page, limit int) (domain.EmploymentPage, error)
	Charts(ctx context.Context, filter domain.JobFilter, opts services.ChartOptions) (domain.VisualizationData, int, error)
	Chart(ctx context.Context, chart domain.ChartType, filter domain.JobFilter, opts services.ChartOptions) (interface{}, int, error)
	Export(ctx context.Context, filter domain.JobFilter, format exporter.Format, w io.Writer) (int, error)
}

// EmploymentHandler serves /api/employment-data
type EmploymentHandler struct {
	service      EmploymentService
	validator    *middleware.Validator
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler

	defaultPageSize int
	defaultTop      int
	now             func() time.Time
}

// NewEmploymentHandler creates the handler. defaultPageSize applies when the
// request has no limit; defaultTop is the ridgeline title cap when top is absent.
func NewEmploymentHandler(service EmploymentService, logger *slog.Logger, errorHandler *apierrors.ErrorHandler, defaultPageSize, defaultTop int) *EmploymentHandler {
	if defaultPageSize <= 0 {
		defaultPageSize = 20
	}
	return &EmploymentHandler{
		service:         service,
		validator:       middleware.NewValidator(),
		logger:          logger.With(slog.String("component", "employment_handler")),
		errorHandler:    errorHandler,
		defaultPageSize: defaultPageSize,
		defaultTop:      defaultTop,
		now:             time.Now,
	}
}

// Routes returns the employment-data routes. The export route is registered
// separately so it can run under a longer timeout.
func (h *EmploymentHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/", h.GetData)
	r.Get("/charts", h.GetCharts)
	r.Get("/charts/{chart}", h.GetChart)
	return r
}

// GetData handles GET /api/employment-data
func (h *EmploymentHandler) GetData(w http.ResponseWriter, r *http.Request) {
	req := api.EmploymentDataRequest{
		PaginationRequest: api.PaginationRequest{Page: 1, Limit: h.defaultPageSize},
	}
	if err := h.validator.Bind(r, &req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	page, err := h.service.Query(r.Context(), req.ToFilter(), req.Page, req.Limit)
	if err != nil {
		h.errorHandler.HandleError(w, r, mapServiceError(err))
		return
	}

	render.JSON(w, r, api.NewEmploymentDataResponse(page))
}

// GetCharts handles GET /api/employment-data/charts
func (h *EmploymentHandler) GetCharts(w http.ResponseWriter, r *http.Request) {
	req := api.ChartsRequest{Top: h.defaultTop}
	if err := h.validator.Bind(r, &req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	data, total, err := h.service.Charts(r.Context(), req.ToFilter(), services.ChartOptions{
		Interval: domain.Interval(req.Interval),
		Density:  req.Density,
		Top:      req.Top,
	})
	if err != nil {
		h.errorHandler.HandleError(w, r, mapServiceError(err))
		return
	}

	h.logger.DebugContext(r.Context(), "charts computed", slog.Int("matched", total))
	render.JSON(w, r, data)
}

// GetChart handles GET /api/employment-data/charts/{chart}
func (h *EmploymentHandler) GetChart(w http.ResponseWriter, r *http.Request) {
	req := api.ChartRequest{Top: h.defaultTop}
	if err := h.validator.Bind(r, &req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	chart := domain.ChartType(req.Chart)
	if !chart.Valid() {
		h.errorHandler.HandleError(w, r, apierrors.ChartNotFoundError(req.Chart))
		return
	}

	data, total, err := h.service.Chart(r.Context(), chart, req.ToFilter(), services.ChartOptions{
		Interval: domain.Interval(req.Interval),
		Density:  req.Density,
		Top:      req.Top,
	})
	if err != nil {
		h.errorHandler.HandleError(w, r, mapServiceError(err))
		return
	}

	render.JSON(w, r, api.ChartResponse{Chart: req.Chart, Total: total, Data: data})
}

// Export handles GET /api/employment-data/export. The file is written
// straight to the response, so a failure after the first byte can only be
// logged.
func (h *EmploymentHandler) Export(w http.ResponseWriter, r *http.Request) {
	req := api.ExportRequest{Format: string(exporter.FormatCSV)}
	if err := h.validator.Bind(r, &req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	format, err := exporter.ParseFormat(req.Format)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("format", err.Error()))
		return
	}

	cw := &committingWriter{w: w, commit: func() {
		w.Header().Set("Content-Type", format.ContentType())
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", format.FileName(h.now())))
		w.WriteHeader(http.StatusOK)
	}}

	rows, err := h.service.Export(r.Context(), req.ToFilter(), format, cw)
	if err != nil {
		if cw.committed {
			h.logger.ErrorContext(r.Context(), "export aborted mid-stream",
				slog.String("format", string(format)),
				slog.String("error", err.Error()))
			return
		}
		h.errorHandler.HandleError(w, r, mapServiceError(err))
		return
	}
	if !cw.committed {
		cw.commit()
	}

	h.logger.InfoContext(r.Context(), "export served",
		slog.String("format", string(format)),
		slog.Int("rows", rows))
}

// committingWriter sends the download headers on the first write so errors
// raised before any output still get a problem response
type committingWriter struct {
	w         http.ResponseWriter
	commit    func()
	committed bool
}

func (c *committingWriter) Write(p []byte) (int, error) {
	if !c.committed {
		c.committed = true
		c.commit()
	}
	return c.w.Write(p)
}

// mapServiceError turns service sentinels into API errors
func mapServiceError(err error) error {
	var apiErr *apierrors.APIError
	switch {
	case errors.As(err, &apiErr):
		return err
	case errors.Is(err, services.ErrUnknownChart):
		return apierrors.ErrChartNotFound.WithDetails(err.Error())
	case errors.Is(err, services.ErrInvalidPagination):
		return apierrors.ErrInvalidParameter.WithDetails(err.Error())
	case errors.Is(err, services.ErrUnknownInterval):
		return apierrors.ErrValidation("interval", err.Error())
	case errors.Is(err, services.ErrUnsupportedFormat):
		return apierrors.ErrValidation("format", err.Error())
	default:
		return err
	}
}
