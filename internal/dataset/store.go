package dataset

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"jobpulse/internal/config"
	apperrors "jobpulse/internal/errors"
	"jobpulse/internal/infrastructure"
	"jobpulse/pkg/contracts/domain"
)

// Store hands out the process-wide dataset. Implementations never return nil.
type Store interface {
	Dataset(ctx context.Context) *domain.Dataset
}

// Status describes the state of a Store for health reporting
type Status struct {
	Loaded   bool      `json:"loaded"`
	Source   string    `json:"source,omitempty"`
	Jobs     int       `json:"jobs"`
	Skipped  int       `json:"skipped_rows"`
	LoadedAt time.Time `json:"loaded_at,omitempty"`
	Error    string    `json:"error,omitempty"`
}

// LazyStore loads the configured file on first use and keeps it until exit
type LazyStore struct {
	cfg     config.DatasetConfig
	loader  *Loader
	logger  *slog.Logger
	metrics *infrastructure.BusinessMetrics

	once    sync.Once
	mu      sync.RWMutex
	ds      *domain.Dataset
	loadErr error
}

// NewStore creates a store for cfg. metrics may be nil.
func NewStore(cfg config.DatasetConfig, logger *slog.Logger, metrics *infrastructure.BusinessMetrics) *LazyStore {
	return &LazyStore{
		cfg:     cfg,
		loader:  NewLoader(logger),
		logger:  logger.With(slog.String("component", "dataset_store")),
		metrics: metrics,
	}
}

// Dataset returns the cached dataset, loading it on the first call.
// A failed load yields an empty dataset for the rest of the process.
func (s *LazyStore) Dataset(ctx context.Context) *domain.Dataset {
	s.once.Do(func() { s.load(ctx) })

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ds
}

// Preload forces the first load, typically at start-up
func (s *LazyStore) Preload(ctx context.Context) error {
	s.Dataset(ctx)

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadErr
}

// Status reports whether the dataset has been loaded and from where
func (s *LazyStore) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.ds == nil {
		return Status{}
	}
	st := Status{
		Loaded:   true,
		Source:   s.ds.Source,
		Jobs:     s.ds.Len(),
		Skipped:  s.ds.Skipped,
		LoadedAt: s.ds.LoadedAt,
	}
	if s.loadErr != nil {
		st.Error = s.loadErr.Error()
	}
	return st
}

func (s *LazyStore) load(ctx context.Context) {
	// the first caller's cancellation must not poison the cache
	ctx = context.WithoutCancel(ctx)
	start := time.Now()

	ds, err := s.read(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load employment dataset, serving empty dataset",
			slog.String("error", err.Error()))
		ds = &domain.Dataset{
			Jobs:      []domain.JobListing{},
			Locations: []string{},
			Source:    s.cfg.Path,
			LoadedAt:  time.Now().UTC(),
		}
	} else {
		s.logger.InfoContext(ctx, "employment dataset loaded",
			slog.String("source", ds.Source),
			slog.Int("jobs", ds.Len()),
			slog.Int("locations", len(ds.Locations)),
			slog.Int("skipped", ds.Skipped),
			slog.Duration("duration", time.Since(start)))
		infrastructure.RecordDatasetLoad(ctx, s.metrics, ds.Source, ds.Len(), ds.Skipped, time.Since(start))
	}

	s.mu.Lock()
	s.ds, s.loadErr = ds, err
	s.mu.Unlock()
}

func (s *LazyStore) read(ctx context.Context) (*domain.Dataset, error) {
	path, err := s.cfg.ResolveDatasetPath(s.logger)
	if err != nil {
		return nil, apperrors.NewStorageError("dataset file not found", err).WithContext("path", s.cfg.Path)
	}
	return s.loader.LoadFile(ctx, path)
}

// StaticStore serves a dataset that was loaded elsewhere
type StaticStore struct {
	ds *domain.Dataset
}

// NewStaticStore wraps ds. Locations are derived when ds has none.
func NewStaticStore(ds *domain.Dataset) *StaticStore {
	if ds == nil {
		ds = &domain.Dataset{}
	}
	if ds.Jobs == nil {
		ds.Jobs = []domain.JobListing{}
	}
	if len(ds.Locations) == 0 {
		ds.Locations = UniqueLocations(ds.Jobs)
	}
	return &StaticStore{ds: ds}
}

// Dataset returns the wrapped dataset
func (s *StaticStore) Dataset(context.Context) *domain.Dataset {
	return s.ds
}

// Status reports the wrapped dataset as loaded
func (s *StaticStore) Status() Status {
	return Status{
		Loaded:   true,
		Source:   s.ds.Source,
		Jobs:     s.ds.Len(),
		Skipped:  s.ds.Skipped,
		LoadedAt: s.ds.LoadedAt,
	}
}

// UniqueLocations lists each location once in first-seen order
func UniqueLocations(jobs []domain.JobListing) []string {
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, j := range jobs {
		if !seen[j.Location] {
			seen[j.Location] = true
			out = append(out, j.Location)
		}
	}
	return out
}
