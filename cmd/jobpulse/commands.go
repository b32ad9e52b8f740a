package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"jobpulse/internal/config"
	"jobpulse/internal/dataset"
	"jobpulse/internal/exporter"
	"jobpulse/internal/infrastructure"
	"jobpulse/internal/services"
	"jobpulse/pkg/contracts"
	api "jobpulse/pkg/contracts/api/v1"
	"jobpulse/pkg/contracts/domain"
)

// options are the flags shared by every subcommand
type options struct {
	dataPath string
	logLevel string

	experienceLevels []string
	locations        []string
	industries       []string
	employmentTypes  []string
}

// filter drops blank flag values, as the HTTP binder does for query params
func (o *options) filter() domain.JobFilter {
	return domain.JobFilter{
		ExperienceLevels: nonBlank(o.experienceLevels),
		Locations:        nonBlank(o.locations),
		Industries:       nonBlank(o.industries),
		EmploymentTypes:  nonBlank(o.employmentTypes),
	}
}

func nonBlank(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "jobpulse",
		Short:         "Query an employment dataset from the command line",
		Version:       contracts.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.dataPath, "data", "d", config.DefaultDatasetPath, "Employment data file (.csv or .xlsx)")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "Log level written to stderr")
	flags.StringArrayVar(&opts.experienceLevels, "experience-level", nil, "Keep listings with this experience level (repeatable)")
	flags.StringArrayVar(&opts.locations, "location", nil, "Keep listings in this location (repeatable)")
	flags.StringArrayVar(&opts.industries, "industry", nil, "Keep listings in this industry (repeatable)")
	flags.StringArrayVar(&opts.employmentTypes, "employment-type", nil, "Keep listings with this employment type (repeatable)")

	root.AddCommand(newSummaryCmd(opts))
	root.AddCommand(newChartCmd(opts))
	root.AddCommand(newExportCmd(opts))
	return root
}

func newSummaryCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print dashboard statistics of the filtered listings as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := opts.service(cmd)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), svc.Stats(cmd.Context(), opts.filter()))
		},
	}
}

func newChartCmd(opts *options) *cobra.Command {
	var (
		interval string
		top      int
		density  bool
	)

	names := make([]string, 0, len(domain.AllChartTypes))
	for _, c := range domain.AllChartTypes {
		names = append(names, string(c))
	}

	cmd := &cobra.Command{
		Use:       "chart <name>",
		Short:     "Print one chart aggregate of the filtered listings as JSON",
		Long:      "Charts: " + strings.Join(names, ", "),
		Args:      cobra.ExactArgs(1),
		ValidArgs: names,
		RunE: func(cmd *cobra.Command, args []string) error {
			chart := domain.ChartType(args[0])
			if !chart.Valid() {
				return fmt.Errorf("unknown chart %q, want one of %s", args[0], strings.Join(names, ", "))
			}

			svc, err := opts.service(cmd)
			if err != nil {
				return err
			}

			data, total, err := svc.Chart(cmd.Context(), chart, opts.filter(), services.ChartOptions{
				Interval: domain.Interval(interval),
				Density:  density,
				Top:      top,
			})
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), api.ChartResponse{Chart: string(chart), Total: total, Data: data})
		},
	}

	cmd.Flags().StringVar(&interval, "interval", string(domain.IntervalMonthly), "Time line bucket: monthly, weekly or quarterly")
	cmd.Flags().IntVar(&top, "top", config.DefaultTopTitles, "Ridgeline: keep the n titles with the highest median (0 keeps all)")
	cmd.Flags().BoolVar(&density, "density", false, "Ridgeline: include kernel density curves")
	return cmd
}

func newExportCmd(opts *options) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the filtered listings to a .csv or .xlsx file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := exporter.FormatFromPath(out)
			if err != nil {
				return err
			}

			svc, err := opts.service(cmd)
			if err != nil {
				return err
			}

			if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}

			rows, err := svc.Export(cmd.Context(), opts.filter(), format, f)
			if closeErr := f.Close(); err == nil {
				err = closeErr
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d rows to %s\n", rows, out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file; the extension picks the format")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

// service loads the data file eagerly. Unlike the server, a CLI run with an
// unreadable file is an error rather than an empty dataset.
func (o *options) service(cmd *cobra.Command) (*services.EmploymentService, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	logger := infrastructure.NewLoggerWithWriter(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: levelFromString(o.logLevel),
	})

	ds, err := dataset.NewLoader(logger).LoadFile(ctx, o.dataPath)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", o.dataPath, err)
	}

	return services.NewEmploymentService(dataset.NewStaticStore(ds), config.Default().Analytics, logger, nil)
}

func levelFromString(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelWarn
	}
	return l
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
