package upload

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aali-22/askengine/internal/domain"
	"github.com/aali-22/askengine/internal/logging"
	"github.com/aali-22/askengine/internal/metrics"
	"github.com/aali-22/askengine/internal/organize"
	"github.com/aali-22/askengine/internal/validate"
)

const (
	defaultAttempts  = 3
	defaultDelay     = 2 * time.Second
	defaultBatchSize = 4
)

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config controls where and how an ObjectStoreClient publishes.
type Config struct {
	// Endpoint is the object store base URL; Bucket is appended as the
	// first path segment, Region travels as a request header.
	Endpoint string
	Bucket   string
	Region   string

	// Attempts and Delay bound the per-file retry loop.
	Attempts int
	Delay    time.Duration
	// BatchSize caps concurrent uploads.
	BatchSize int

	// IncludePatterns and ExcludePatterns filter files by their path
	// relative to the data root, doublestar syntax. Empty includes mean
	// everything.
	IncludePatterns []string
	ExcludePatterns []string

	// Force publishes a season even when its validation report is
	// incomplete.
	Force bool

	HTTPClient httpDoer
}

// ObjectStoreClient uploads season partitions over plain HTTP PUT. Object
// keys mirror the on-disk layout, so the bucket is browsable the same way
// the data directory is.
type ObjectStoreClient struct {
	cfg      Config
	basePath string
	logger   *slog.Logger
	metrics  *metrics.Recorder
}

func NewObjectStoreClient(cfg Config, basePath string, logger *slog.Logger, recorder *metrics.Recorder) (*ObjectStoreClient, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("upload: endpoint is required")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("upload: bucket is required")
	}
	if cfg.Attempts <= 0 {
		cfg.Attempts = defaultAttempts
	}
	if cfg.Delay <= 0 {
		cfg.Delay = defaultDelay
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &ObjectStoreClient{
		cfg:      cfg,
		basePath: basePath,
		logger:   logger,
		metrics:  recorder,
	}, nil
}

// Upload publishes one season partition. Incomplete seasons are skipped
// unless the client was configured with Force; the returned stats count the
// whole partition as skipped in that case.
func (c *ObjectStoreClient) Upload(ctx context.Context, season domain.Season, report *validate.Report) (Stats, error) {
	files, err := c.seasonFiles(season)
	if err != nil {
		return Stats{}, err
	}
	if len(files) == 0 {
		logging.Info(c.logger, "no files to upload",
			logging.FieldSport, string(season.Sport),
			logging.FieldSeason, season.Year,
		)
		return Stats{}, nil
	}

	if report != nil && !report.Complete() && !c.cfg.Force {
		logging.Warn(c.logger, "season incomplete, skipping upload",
			logging.FieldSport, string(season.Sport),
			logging.FieldSeason, season.Year,
			"completeness", fmt.Sprintf("%.1f%%", report.Completeness()),
		)
		return Stats{Skipped: len(files)}, nil
	}

	var (
		mu    sync.Mutex
		wg    sync.WaitGroup
		stats Stats
	)
	sem := make(chan struct{}, c.cfg.BatchSize)

	for _, rel := range files {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(rel string) {
			defer wg.Done()
			defer func() { <-sem }()

			err := c.putFile(ctx, rel)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				stats.Failed++
				logging.Warn(c.logger, "upload failed",
					logging.FieldKey, rel,
					"err", err.Error(),
				)
				return
			}
			stats.Uploaded++
		}(rel)
	}
	wg.Wait()

	c.metrics.RecordUpload(stats.Uploaded, stats.Failed)
	logging.Info(c.logger, "season upload finished",
		logging.FieldSport, string(season.Sport),
		logging.FieldSeason, season.Year,
		"uploaded", stats.Uploaded,
		"skipped", stats.Skipped,
		"failed", stats.Failed,
	)

	if err := ctx.Err(); err != nil {
		return stats, err
	}
	if stats.Failed > 0 {
		return stats, fmt.Errorf("upload %s: %d of %d files failed", season, stats.Failed, stats.Failed+stats.Uploaded)
	}
	return stats, nil
}

// seasonFiles walks the season partition and returns the upload candidates
// as paths relative to the data root, sorted, pattern filters applied. A
// season without a data directory has no candidates.
func (c *ObjectStoreClient) seasonFiles(season domain.Season) ([]string, error) {
	seasonDir := organize.SeasonDir(c.basePath, season)
	var files []string
	err := filepath.WalkDir(seasonDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(c.basePath, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if !c.matches(rel) {
			return nil
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func (c *ObjectStoreClient) matches(rel string) bool {
	for _, pattern := range c.cfg.ExcludePatterns {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return false
		}
	}
	if len(c.cfg.IncludePatterns) == 0 {
		return true
	}
	for _, pattern := range c.cfg.IncludePatterns {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// putFile uploads one file with bounded retries. The object key mirrors the
// file's path relative to the data root.
func (c *ObjectStoreClient) putFile(ctx context.Context, rel string) error {
	data, err := os.ReadFile(filepath.Join(c.basePath, filepath.FromSlash(rel)))
	if err != nil {
		return err
	}
	objectURL := c.cfg.Endpoint + "/" + path.Join(c.cfg.Bucket, rel)

	var lastErr error
	for attempt := 1; attempt <= c.cfg.Attempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.cfg.Delay):
			}
		}
		lastErr = c.put(ctx, objectURL, data)
		if lastErr == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return fmt.Errorf("put %s after %d attempts: %w", rel, c.cfg.Attempts, lastErr)
}

func (c *ObjectStoreClient) put(ctx context.Context, url string, data []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Content-Length", strconv.Itoa(len(data)))
	if c.cfg.Region != "" {
		req.Header.Set("X-Store-Region", c.cfg.Region)
	}

	resp, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}
