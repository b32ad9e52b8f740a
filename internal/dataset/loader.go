package dataset

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	apperrors "jobpulse/internal/errors"
	"jobpulse/pkg/contracts/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Loader turns a CSV or XLSX file into a Dataset
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a loader that reports skipped rows to logger
func NewLoader(logger *slog.Logger) *Loader {
	return &Loader{logger: logger.With(slog.String("component", "dataset_loader"))}
}

// LoadFile picks the reader from the file extension
func (l *Loader) LoadFile(ctx context.Context, path string) (*domain.Dataset, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return l.LoadXLSX(ctx, path)
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, apperrors.NewStorageError("failed to open dataset", err).WithContext("path", path)
		}
		defer f.Close()
		return l.ReadCSV(ctx, f, path)
	}
}

// ReadCSV parses CSV content. source is recorded on the Dataset.
func (l *Loader) ReadCSV(ctx context.Context, r io.Reader, source string) (*domain.Dataset, error) {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, apperrors.NewParsingError("dataset is empty", err).WithContext("source", source)
		}
		return nil, apperrors.NewParsingError("failed to read dataset header", err).WithContext("source", source)
	}

	parser, err := newRowParser(header, false)
	if err != nil {
		return nil, err
	}

	b := newBuilder(source)
	for line := 2; ; line++ {
		if line%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("dataset load cancelled: %w", err)
			}
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				b.skip(l.logger, line, err)
				continue
			}
			return nil, apperrors.NewParsingError("failed to read dataset", err).WithContext("source", source)
		}
		b.add(l.logger, parser, line, record)
	}

	return b.finish(l.logger), nil
}

// LoadXLSX reads the first sheet of a workbook
func (l *Loader) LoadXLSX(ctx context.Context, path string) (*domain.Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to open workbook", err).WithContext("path", path)
	}
	defer f.Close()

	return l.readWorkbook(ctx, f, path)
}

// ReadXLSX parses workbook content from r
func (l *Loader) ReadXLSX(ctx context.Context, r io.Reader, source string) (*domain.Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperrors.NewParsingError("failed to read workbook", err).WithContext("source", source)
	}
	defer f.Close()

	return l.readWorkbook(ctx, f, source)
}

func (l *Loader) readWorkbook(ctx context.Context, f *excelize.File, source string) (*domain.Dataset, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.NewParsingError("workbook has no sheets", nil).WithContext("source", source)
	}

	rows, err := f.Rows(sheets[0])
	if err != nil {
		return nil, apperrors.NewParsingError("failed to read sheet", err).WithContext("sheet", sheets[0])
	}
	defer rows.Close()

	var parser *rowParser
	b := newBuilder(source)
	for line := 1; rows.Next(); line++ {
		if line%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("dataset load cancelled: %w", err)
			}
		}

		record, err := rows.Columns()
		if err != nil {
			b.skip(l.logger, line, err)
			continue
		}

		if parser == nil {
			if blank(record) {
				continue
			}
			if parser, err = newRowParser(record, true); err != nil {
				return nil, err
			}
			continue
		}
		b.add(l.logger, parser, line, record)
	}
	if err := rows.Error(); err != nil {
		return nil, apperrors.NewParsingError("failed to read sheet", err).WithContext("sheet", sheets[0])
	}
	if parser == nil {
		return nil, apperrors.NewParsingError("dataset is empty", nil).WithContext("source", source)
	}

	return b.finish(l.logger), nil
}

// builder accumulates parsed rows into a Dataset
type builder struct {
	ds   *domain.Dataset
	seen map[string]bool
}

func newBuilder(source string) *builder {
	return &builder{
		ds:   &domain.Dataset{Jobs: []domain.JobListing{}, Locations: []string{}, Source: source},
		seen: make(map[string]bool),
	}
}

func (b *builder) add(logger *slog.Logger, parser *rowParser, line int, record []string) {
	if blank(record) {
		return
	}

	job, err := parser.parse(record)
	if err != nil {
		b.skip(logger, line, err)
		return
	}

	b.ds.Jobs = append(b.ds.Jobs, job)
	if !b.seen[job.Location] {
		b.seen[job.Location] = true
		b.ds.Locations = append(b.ds.Locations, job.Location)
	}
}

func (b *builder) skip(logger *slog.Logger, line int, err error) {
	b.ds.Skipped++
	logger.Debug("skipping malformed row", slog.Int("line", line), slog.String("error", err.Error()))
}

func (b *builder) finish(logger *slog.Logger) *domain.Dataset {
	b.ds.LoadedAt = time.Now().UTC()
	if b.ds.Skipped > 0 {
		logger.Warn("skipped malformed dataset rows",
			slog.String("source", b.ds.Source),
			slog.Int("skipped", b.ds.Skipped),
			slog.Int("loaded", len(b.ds.Jobs)))
	}
	return b.ds
}
