package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sort"

	"github.com/spf13/cobra"

	"github.com/aali-22/askengine/internal/config"
	"github.com/aali-22/askengine/internal/domain"
	"github.com/aali-22/askengine/internal/fetch"
	"github.com/aali-22/askengine/internal/logging"
	"github.com/aali-22/askengine/internal/metrics"
	"github.com/aali-22/askengine/internal/organize"
	"github.com/aali-22/askengine/internal/pipeline"
	"github.com/aali-22/askengine/internal/schema"
	"github.com/aali-22/askengine/internal/sources"
	"github.com/aali-22/askengine/internal/sources/bbref"
	"github.com/aali-22/askengine/internal/sources/fixture"
	"github.com/aali-22/askengine/internal/sources/mlbstats"
	"github.com/aali-22/askengine/internal/sources/nbastats"
	"github.com/aali-22/askengine/internal/upload"
	"github.com/aali-22/askengine/internal/validate"
)

// appOptions holds the flag values shared across subcommands. Environment
// configuration supplies the defaults; flags override per invocation.
type appOptions struct {
	sport      string
	seasons    string
	source     string
	dataDir    string
	schemaPath string
	parallel   int
	force      bool
	withUpload bool
}

func newRootCmd() *cobra.Command {
	cfg := config.Load()
	opts := &appOptions{
		source:     cfg.Source,
		dataDir:    cfg.DataDir,
		schemaPath: cfg.SchemaPath,
		parallel:   cfg.Parallel,
	}

	root := &cobra.Command{
		Use:           "askdata",
		Short:         "Fetch, organize, validate, and publish season-keyed sports data",
		Version:       appVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.sport, "sport", "baseball", "sport to operate on (baseball or basketball)")
	root.PersistentFlags().StringVar(&opts.seasons, "seasons", "", `season year or range, e.g. "2021" or "2015-2020"`)
	root.PersistentFlags().StringVar(&opts.source, "source", opts.source, "upstream source (mlb, nba, fixture)")
	root.PersistentFlags().StringVar(&opts.dataDir, "data", opts.dataDir, "root of the organized data directory")
	root.PersistentFlags().StringVar(&opts.schemaPath, "schema", opts.schemaPath, "YAML schema table overriding the embedded defaults")

	root.AddCommand(
		newFetchCmd(cfg, opts),
		newValidateCmd(cfg, opts),
		newStatusCmd(cfg, opts),
		newUploadCmd(cfg, opts),
		newRunCmd(cfg, opts),
	)
	return root
}

func newFetchCmd(cfg config.Config, opts *appOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Fetch seasons from the upstream source and organize them on disk",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := buildApp(cmd.Context(), cfg, opts)
			if err != nil {
				return err
			}
			defer app.close(cmd.Context())

			for _, year := range app.years {
				season := domain.Season{Sport: app.sport, Year: year}
				payload, err := app.fetcher.FetchSeason(cmd.Context(), season)
				if err != nil {
					return err
				}
				result, err := app.organizer.Organize(payload)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d written, %d skipped, %d gaps\n",
					season, result.Written, result.Skipped, result.Gaps)
			}
			return nil
		},
	}
}

func newValidateCmd(cfg config.Config, opts *appOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate stored seasons against the schema table",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := buildApp(cmd.Context(), cfg, opts)
			if err != nil {
				return err
			}
			defer app.close(cmd.Context())

			incomplete := 0
			for _, year := range app.years {
				season := domain.Season{Sport: app.sport, Year: year}
				report, err := app.runner.Validate(season)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), report.Summary())
				if !report.Complete() {
					incomplete++
				}
			}
			if incomplete > 0 {
				return fmt.Errorf("%d of %d seasons incomplete", incomplete, len(app.years))
			}
			return nil
		},
	}
}

func newStatusCmd(cfg config.Config, opts *appOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report per-season completeness for stored data",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := buildApp(cmd.Context(), cfg, opts)
			if err != nil {
				return err
			}
			defer app.close(cmd.Context())

			type line struct {
				season       string
				completeness float64
				files        int
				missing      int
			}
			var lines []line
			for _, year := range app.years {
				season := domain.Season{Sport: app.sport, Year: year}
				report, err := app.runner.Validate(season)
				if err != nil {
					return err
				}
				lines = append(lines, line{
					season:       season.String(),
					completeness: report.Completeness(),
					files:        len(report.Files),
					missing:      len(report.MissingFiles()),
				})
			}
			sort.Slice(lines, func(i, j int) bool { return lines[i].season < lines[j].season })
			for _, l := range lines {
				fmt.Fprintf(cmd.OutOrStdout(), "%-18s %6.1f%%  %d files, %d missing\n",
					l.season, l.completeness, l.files, l.missing)
			}
			return nil
		},
	}
}

func newUploadCmd(cfg config.Config, opts *appOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Publish validated seasons to the object store",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := buildApp(cmd.Context(), cfg, opts)
			if err != nil {
				return err
			}
			defer app.close(cmd.Context())

			if app.uploader == nil {
				return fmt.Errorf("upload is not configured; set ASKDATA_UPLOAD_ENDPOINT and ASKDATA_UPLOAD_BUCKET")
			}

			var totals upload.Stats
			for _, year := range app.years {
				season := domain.Season{Sport: app.sport, Year: year}
				report, err := app.runner.Validate(season)
				if err != nil {
					return err
				}
				stats, err := app.uploader.Upload(cmd.Context(), season, report)
				totals.Add(stats)
				if err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "uploaded %d, skipped %d, failed %d\n",
				totals.Uploaded, totals.Skipped, totals.Failed)
			return nil
		},
	}
	cmd.Flags().BoolVar(&opts.force, "force", false, "publish seasons even when validation reports them incomplete")
	return cmd
}

func newRunCmd(cfg config.Config, opts *appOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full pipeline: fetch, organize, validate, and optionally upload",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := buildApp(cmd.Context(), cfg, opts)
			if err != nil {
				return err
			}
			defer app.close(cmd.Context())

			app.serveMetrics(cfg)

			if err := app.runner.RunAll(cmd.Context(), app.sport, app.years, opts.parallel); err != nil {
				return err
			}
			for _, status := range app.runner.Statuses().All() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-18s ready=%t completeness=%.1f%%\n",
					status.Season, status.IsReady(), status.Completeness)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&opts.parallel, "parallel", opts.parallel, "seasons to run concurrently")
	cmd.Flags().BoolVar(&opts.withUpload, "upload", false, "publish each season after validation")
	cmd.Flags().BoolVar(&opts.force, "force", false, "publish seasons even when validation reports them incomplete")
	return cmd
}

// app bundles the wired components for one command invocation.
type app struct {
	sport       domain.Sport
	years       []int
	fetcher     *fetch.Fetcher
	organizer   *organize.Organizer
	runner      *pipeline.Runner
	uploader    upload.Uploader
	promHandler http.Handler
	shutdown    func(context.Context) error
}

func (a *app) close(ctx context.Context) {
	if a.shutdown != nil {
		_ = a.shutdown(ctx)
	}
}

// serveMetrics exposes the Prometheus endpoint for the lifetime of the run.
func (a *app) serveMetrics(cfg config.Config) {
	if a.promHandler == nil {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", a.promHandler)
	go func() {
		_ = http.ListenAndServe(":"+cfg.Metrics.Port, mux)
	}()
}

func buildApp(ctx context.Context, cfg config.Config, opts *appOptions) (*app, error) {
	sport, err := domain.ParseSport(opts.sport)
	if err != nil {
		return nil, err
	}

	table, err := schema.Load(opts.schemaPath)
	if err != nil {
		return nil, err
	}

	years, err := resolveYears(table, opts.seasons)
	if err != nil {
		return nil, err
	}

	logger := logging.NewLogger(logging.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: "askdata",
		Version: appVersion,
	})

	recorder, promHandler, shutdown, err := metrics.Setup(ctx, metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	})
	if err != nil {
		return nil, fmt.Errorf("set up metrics: %w", err)
	}

	source, err := buildSource(cfg, opts, sport, table, logger)
	if err != nil {
		return nil, err
	}

	fetcher := fetch.New(source, table, logger, recorder, cfg.Workers)
	organizer := organize.New(opts.dataDir, logger)
	validator := validate.New(table)

	var uploader upload.Uploader
	if cfg.Upload.Enabled() {
		client, err := upload.NewObjectStoreClient(upload.Config{
			Endpoint:        cfg.Upload.Endpoint,
			Bucket:          cfg.Upload.Bucket,
			Region:          cfg.Upload.Region,
			Attempts:        cfg.Upload.Attempts,
			Delay:           cfg.Upload.Delay,
			BatchSize:       cfg.Upload.BatchSize,
			IncludePatterns: cfg.Upload.IncludePatterns,
			ExcludePatterns: cfg.Upload.ExcludePatterns,
			Force:           opts.force,
		}, opts.dataDir, logger, recorder)
		if err != nil {
			return nil, err
		}
		uploader = client
	}

	runnerUploader := uploader
	if !opts.withUpload {
		runnerUploader = nil
	}
	runner := pipeline.NewRunner(fetcher, organizer, validator, runnerUploader, logger, recorder)

	return &app{
		sport:       sport,
		years:       years,
		fetcher:     fetcher,
		organizer:   organizer,
		runner:      runner,
		uploader:    uploader,
		promHandler: promHandler,
		shutdown:    shutdown,
	}, nil
}

// buildSource constructs the upstream source named by the options and wraps
// it with the retry and rate-limit decorators.
func buildSource(cfg config.Config, opts *appOptions, sport domain.Sport, table *schema.Table, logger *slog.Logger) (sources.Source, error) {
	sportTable, err := table.Sport(sport)
	if err != nil {
		return nil, err
	}

	var source sources.Source
	switch opts.source {
	case "mlb":
		if sport != domain.SportBaseball {
			return nil, fmt.Errorf("source mlb serves baseball, not %s", sport)
		}
		source = mlbstats.NewClient(mlbstats.Config{BaseURL: cfg.Sources.MLBBaseURL})
	case "nba":
		if sport != domain.SportBasketball {
			return nil, fmt.Errorf("source nba serves basketball, not %s", sport)
		}
		source = nbastats.NewClient(nbastats.Config{BaseURL: cfg.Sources.NBABaseURL})
	case "fixture":
		source = fixture.New(sport, sportTable.Teams, sportTable.RecordCategories)
	default:
		return nil, fmt.Errorf("unknown source %q", opts.source)
	}

	if cfg.Sources.BBRefFallback && cfg.Sources.BBRefBaseURL != "" {
		scraper := bbref.New(bbref.Config{
			BaseURL:     cfg.Sources.BBRefBaseURL,
			PagePattern: cfg.Sources.BBRefPagePattern,
		})
		source = sources.WithStandingsFallback(source, scraper, logger)
	}

	source = sources.NewRetryingSource(source, logger, cfg.MaxAttempts, cfg.Backoff)
	source = sources.NewRateLimitedSource(source, cfg.Rate, logger)
	return source, nil
}

// resolveYears parses the --seasons flag, defaulting to the table's full
// covered range, and rejects years outside it.
func resolveYears(table *schema.Table, raw string) ([]int, error) {
	if raw == "" {
		return table.Years(), nil
	}
	years, err := schema.ParseSeasonRange(raw)
	if err != nil {
		return nil, err
	}
	for _, year := range years {
		if !table.SeasonValid(year) {
			return nil, fmt.Errorf("season %d outside covered range %d-%d",
				year, table.Seasons.Start, table.Seasons.End)
		}
	}
	return years, nil
}
