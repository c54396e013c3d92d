// Package pipeline chains fetch, organize, validate, and upload for one or
// more seasons.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aali-22/askengine/internal/domain"
	"github.com/aali-22/askengine/internal/fetch"
	"github.com/aali-22/askengine/internal/logging"
	"github.com/aali-22/askengine/internal/metrics"
	"github.com/aali-22/askengine/internal/organize"
	"github.com/aali-22/askengine/internal/upload"
	"github.com/aali-22/askengine/internal/validate"
)

const defaultParallel = 2

// Runner drives the full pipeline for a season. The uploader is optional;
// when nil, runs stop after validation.
type Runner struct {
	fetcher   *fetch.Fetcher
	organizer *organize.Organizer
	validator *validate.Validator
	uploader  upload.Uploader
	logger    *slog.Logger
	metrics   *metrics.Recorder
	statuses  *StatusStore
}

func NewRunner(fetcher *fetch.Fetcher, organizer *organize.Organizer, validator *validate.Validator, uploader upload.Uploader, logger *slog.Logger, recorder *metrics.Recorder) *Runner {
	return &Runner{
		fetcher:   fetcher,
		organizer: organizer,
		validator: validator,
		uploader:  uploader,
		logger:    logger,
		metrics:   recorder,
		statuses:  NewStatusStore(),
	}
}

// Statuses exposes the per-season status store.
func (r *Runner) Statuses() *StatusStore { return r.statuses }

// Run executes fetch, organize, validate, and optionally upload for one
// season. Fetch gaps do not fail the run; they surface in the report and the
// manifest instead.
func (r *Runner) Run(ctx context.Context, season domain.Season) (*validate.Report, error) {
	start := time.Now()
	report, err := r.run(ctx, season)
	r.metrics.RecordPipelineRun(string(season.Sport), time.Since(start), err)

	if err != nil {
		r.statuses.recordFailure(season.String(), err)
		logging.Error(r.logger, "season run failed", err,
			logging.FieldSport, string(season.Sport),
			logging.FieldSeason, season.Year,
		)
		return report, err
	}

	r.statuses.recordSuccess(season.String(), report.Completeness())
	logging.Info(r.logger, "season run finished",
		logging.FieldSport, string(season.Sport),
		logging.FieldSeason, season.Year,
		"complete", report.Complete(),
		"completeness", fmt.Sprintf("%.1f", report.Completeness()),
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
	return report, nil
}

func (r *Runner) run(ctx context.Context, season domain.Season) (*validate.Report, error) {
	payload, err := r.fetcher.FetchSeason(ctx, season)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	if _, err := r.organizer.Organize(payload); err != nil {
		return nil, fmt.Errorf("organize: %w", err)
	}

	report, err := r.Validate(season)
	if err != nil {
		return nil, err
	}

	if r.uploader != nil {
		if _, err := r.uploader.Upload(ctx, season, report); err != nil {
			return report, fmt.Errorf("upload: %w", err)
		}
	}
	return report, nil
}

// Validate loads the stored season and validates it without fetching.
func (r *Runner) Validate(season domain.Season) (*validate.Report, error) {
	stored, err := r.organizer.LoadSeason(season)
	if err != nil {
		return nil, fmt.Errorf("load season: %w", err)
	}
	report, err := r.validator.ValidateSeason(stored)
	if err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}
	return report, nil
}

// RunAll runs the pipeline for every given year, at most parallel seasons at
// a time. Individual season failures do not stop the sweep; the first error
// is returned once every season has run.
func (r *Runner) RunAll(ctx context.Context, sport domain.Sport, years []int, parallel int) error {
	if parallel <= 0 {
		parallel = defaultParallel
	}

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		firstErr error
	)
	sem := make(chan struct{}, parallel)

	for _, year := range years {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(year int) {
			defer wg.Done()
			defer func() { <-sem }()

			season := domain.Season{Sport: sport, Year: year}
			if _, err := r.Run(ctx, season); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("season %s: %w", season, err)
				}
				mu.Unlock()
			}
		}(year)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}
	return firstErr
}
