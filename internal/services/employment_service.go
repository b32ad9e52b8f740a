package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"jobpulse/internal/analytics"
	"jobpulse/internal/config"
	"jobpulse/internal/dataset"
	apperrors "jobpulse/internal/errors"
	"jobpulse/internal/exporter"
	"jobpulse/internal/infrastructure"
	"jobpulse/pkg/contracts/domain"
)

// ChartOptions are the presentation parameters of a chart request
type ChartOptions struct {
	Interval domain.Interval
	Density  bool
	// Top limits the ridgeline to the n titles with the highest median. Zero keeps all.
	Top int
}

// EmploymentService answers dashboard queries over the cached dataset
type EmploymentService struct {
	store   dataset.Store
	cfg     config.AnalyticsConfig
	rank    analytics.RankConvention
	logger  *slog.Logger
	metrics *infrastructure.BusinessMetrics
	tracer  trace.Tracer
}

// NewEmploymentService creates the service. metrics may be nil.
func NewEmploymentService(store dataset.Store, cfg config.AnalyticsConfig, logger *slog.Logger, metrics *infrastructure.BusinessMetrics) (*EmploymentService, error) {
	rank, err := analytics.ParseRankConvention(cfg.RankConvention)
	if err != nil {
		return nil, fmt.Errorf("invalid analytics config: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &EmploymentService{
		store:   store,
		cfg:     cfg,
		rank:    rank,
		logger:  logger.With(slog.String("component", "employment_service")),
		metrics: metrics,
		tracer:  otel.Tracer("jobpulse/services"),
	}, nil
}

// Filter returns the listings that pass every non-empty filter set, in
// dataset order
func (s *EmploymentService) Filter(ctx context.Context, filter domain.JobFilter) []domain.JobListing {
	jobs := s.store.Dataset(ctx).Jobs
	if filter.IsEmpty() {
		return jobs
	}

	out := make([]domain.JobListing, 0, len(jobs))
	for _, job := range jobs {
		if filter.Matches(job) {
			out = append(out, job)
		}
	}
	return out
}

// Locations lists every location in the dataset, first-seen order
func (s *EmploymentService) Locations(ctx context.Context) []string {
	return s.store.Dataset(ctx).Locations
}

// Query returns one page of filtered listings with stats over the whole
// filtered set. page is 1-based.
func (s *EmploymentService) Query(ctx context.Context, filter domain.JobFilter, page, limit int) (domain.EmploymentPage, error) {
	if page < 1 || limit < 1 || (s.cfg.MaxPageSize > 0 && limit > s.cfg.MaxPageSize) {
		return domain.EmploymentPage{}, fmt.Errorf("%w: page=%d limit=%d", ErrInvalidPagination, page, limit)
	}

	filtered := s.Filter(ctx, filter)
	infrastructure.RecordQuery(ctx, s.metrics, "data", len(filtered))

	start, end := pageBounds(page, limit, len(filtered))

	jobs := make([]domain.JobListing, end-start)
	copy(jobs, filtered[start:end])

	s.logger.DebugContext(ctx, "employment query",
		slog.Int("matched", len(filtered)),
		slog.Int("page", page),
		slog.Int("limit", limit),
		slog.Int("returned", len(jobs)))

	return domain.EmploymentPage{
		Jobs:      jobs,
		HasMore:   end < len(filtered),
		Locations: s.Locations(ctx),
		Stats:     analytics.Stats(filtered),
		Total:     len(filtered),
	}, nil
}

// pageBounds returns the [start, end) slice of a page over n rows. Pages past
// the end, however large, are empty at n.
func pageBounds(page, limit, n int) (int, int) {
	if page-1 > n/limit {
		return n, n
	}
	start := min((page-1)*limit, n)
	return start, min(start+limit, n)
}

// Stats summarises the filtered set
func (s *EmploymentService) Stats(ctx context.Context, filter domain.JobFilter) domain.DashboardStats {
	return analytics.Stats(s.Filter(ctx, filter))
}

// Charts computes every aggregate of the filtered set concurrently. The
// first failure or a cancelled ctx aborts the remaining work.
func (s *EmploymentService) Charts(ctx context.Context, filter domain.JobFilter, opts ChartOptions) (domain.VisualizationData, int, error) {
	ctx, span := s.tracer.Start(ctx, "employment.charts")
	defer span.End()

	jobs := s.Filter(ctx, filter)
	infrastructure.RecordQuery(ctx, s.metrics, "charts", len(jobs))
	span.SetAttributes(attribute.Int("jobs.matched", len(jobs)))

	var data domain.VisualizationData
	g, gctx := errgroup.WithContext(ctx)
	stage := func(chart domain.ChartType, build func() error) {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return s.timed(gctx, chart, build)
		})
	}

	stage(domain.ChartBoxPlot, func() error {
		data.BoxPlot = analytics.BoxPlot(jobs, s.rank)
		return nil
	})
	stage(domain.ChartGroupedBar, func() error {
		data.GroupedBar = analytics.GroupedBar(jobs)
		return nil
	})
	stage(domain.ChartStackedBar, func() error {
		data.StackedBar = analytics.StackedBar(jobs)
		return nil
	})
	stage(domain.ChartRidgeline, func() error {
		data.Ridgeline = analytics.Ridgeline(jobs, s.ridgelineOptions(opts))
		return nil
	})
	stage(domain.ChartTimeLine, func() error {
		tl, err := s.timeLine(jobs, opts.Interval)
		data.TimeLine = tl
		return err
	})
	stage(domain.ChartScatter, func() error {
		data.ScatterPlot = analytics.Scatter(jobs)
		return nil
	})
	stage(domain.ChartGeo, func() error {
		data.Geo = analytics.Geo(jobs)
		return nil
	})

	if err := g.Wait(); err != nil {
		infrastructure.RecordError(ctx, err)
		return domain.VisualizationData{}, len(jobs), err
	}
	return data, len(jobs), nil
}

// Chart computes a single aggregate of the filtered set
func (s *EmploymentService) Chart(ctx context.Context, chart domain.ChartType, filter domain.JobFilter, opts ChartOptions) (interface{}, int, error) {
	if !chart.Valid() {
		return nil, 0, fmt.Errorf("%w: %q", ErrUnknownChart, chart)
	}

	ctx, span := s.tracer.Start(ctx, "employment.chart", trace.WithAttributes(attribute.String("chart", string(chart))))
	defer span.End()

	jobs := s.Filter(ctx, filter)
	infrastructure.RecordQuery(ctx, s.metrics, "chart", len(jobs))
	if err := ctx.Err(); err != nil {
		return nil, len(jobs), err
	}

	var result interface{}
	err := s.timed(ctx, chart, func() error {
		switch chart {
		case domain.ChartBoxPlot:
			result = analytics.BoxPlot(jobs, s.rank)
		case domain.ChartGroupedBar:
			result = analytics.GroupedBar(jobs)
		case domain.ChartStackedBar:
			result = analytics.StackedBar(jobs)
		case domain.ChartRidgeline:
			result = analytics.Ridgeline(jobs, s.ridgelineOptions(opts))
		case domain.ChartTimeLine:
			tl, err := s.timeLine(jobs, opts.Interval)
			if err != nil {
				return err
			}
			result = tl
		case domain.ChartScatter:
			result = analytics.Scatter(jobs)
		case domain.ChartGeo:
			result = analytics.Geo(jobs)
		}
		return nil
	})
	if err != nil {
		infrastructure.RecordError(ctx, err)
		return nil, len(jobs), err
	}
	return result, len(jobs), nil
}

// Export writes every filtered listing, across all pages, to w
func (s *EmploymentService) Export(ctx context.Context, filter domain.JobFilter, format exporter.Format, w io.Writer) (int, error) {
	if format != exporter.FormatCSV && format != exporter.FormatXLSX {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	jobs := s.Filter(ctx, filter)
	infrastructure.RecordQuery(ctx, s.metrics, "export", len(jobs))
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	n, err := exporter.Write(w, format, jobs)
	if err != nil {
		if ctx.Err() != nil {
			return n, ctx.Err()
		}
		return n, apperrors.NewExportError(fmt.Sprintf("export %s", format), err).WithContext("rows", n)
	}

	infrastructure.RecordExport(ctx, s.metrics, string(format), n)
	s.logger.InfoContext(ctx, "export written",
		slog.String("format", string(format)),
		slog.Int("rows", n))
	return n, nil
}

func (s *EmploymentService) ridgelineOptions(opts ChartOptions) analytics.RidgelineOptions {
	ro := analytics.DefaultRidgelineOptions()
	ro.Top = opts.Top
	ro.Density = opts.Density
	if s.cfg.KDEBandwidth > 0 {
		ro.Bandwidth = s.cfg.KDEBandwidth
	}
	if s.cfg.KDEThresholds > 0 {
		ro.Thresholds = s.cfg.KDEThresholds
	}
	return ro
}

func (s *EmploymentService) timeLine(jobs []domain.JobListing, interval domain.Interval) (domain.TimeLineData, error) {
	tl, err := analytics.Rebucket(analytics.TimeLine(jobs), interval)
	if err != nil {
		return domain.TimeLineData{}, fmt.Errorf("%w: %q", ErrUnknownInterval, interval)
	}
	return tl, nil
}

func (s *EmploymentService) timed(ctx context.Context, chart domain.ChartType, build func() error) error {
	start := time.Now()
	err := build()
	infrastructure.RecordAggregation(ctx, s.metrics, string(chart), time.Since(start), err)
	return err
}
