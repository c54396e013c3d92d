// Package organize merges fetched season payloads into the on-disk layout,
// applying the completeness merge policy and writing artifacts atomically.
package organize

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aali-22/askengine/internal/fetch"
	"github.com/aali-22/askengine/internal/logging"
	"github.com/aali-22/askengine/internal/schema"
)

// ErrMergeConflict reports a second entry into a season's merge critical
// section. The per-season mutex makes this unreachable; it exists so an
// interleaved merge would fail loudly instead of corrupting the partition.
var ErrMergeConflict = errors.New("organize: concurrent merge on season partition")

// seasonLock serializes merges into one season partition. Concurrent
// Organize calls for the same season queue on mu and merge in arrival
// order; entered double-checks the critical section is never re-entered.
type seasonLock struct {
	mu      sync.Mutex
	entered atomic.Bool
}

// Result summarizes one organize pass over a season.
type Result struct {
	Season  string
	Written int
	Skipped int
	Gaps    int
}

// Organizer owns the data directory and the per-season lock registry.
type Organizer struct {
	basePath string
	logger   *slog.Logger

	mu    sync.Mutex
	locks map[string]*seasonLock
}

func New(basePath string, logger *slog.Logger) *Organizer {
	return &Organizer{
		basePath: basePath,
		logger:   logger,
		locks:    make(map[string]*seasonLock),
	}
}

// BasePath returns the root of the data directory.
func (o *Organizer) BasePath() string { return o.basePath }

func (o *Organizer) lockFor(season string) *seasonLock {
	o.mu.Lock()
	defer o.mu.Unlock()
	lock, ok := o.locks[season]
	if !ok {
		lock = &seasonLock{}
		o.locks[season] = lock
	}
	return lock
}

// Organize merges a fetched payload into the season partition on disk.
// Calls for the same season serialize in arrival order; different seasons
// proceed independently. Only artifacts whose bytes actually changed are
// rewritten; re-organizing the same payload is a no-op. The season's
// manifest is refreshed on every call.
func (o *Organizer) Organize(payload *fetch.Payload) (*Result, error) {
	seasonName := payload.Season.String()
	lock := o.lockFor(seasonName)
	lock.mu.Lock()
	defer lock.mu.Unlock()
	if !lock.entered.CompareAndSwap(false, true) {
		return nil, fmt.Errorf("%w: %s", ErrMergeConflict, seasonName)
	}
	defer lock.entered.Store(false)

	seasonDir := SeasonDir(o.basePath, payload.Season)
	if err := os.MkdirAll(filepath.Join(seasonDir, "league"), 0o755); err != nil {
		return nil, fmt.Errorf("create season dir: %w", err)
	}
	if err := os.MkdirAll(filepath.Join(seasonDir, "players"), 0o755); err != nil {
		return nil, fmt.Errorf("create players dir: %w", err)
	}

	stored, err := o.LoadSeason(payload.Season)
	if err != nil {
		return nil, fmt.Errorf("load season %s: %w", seasonName, err)
	}

	result := &Result{Season: seasonName, Gaps: len(payload.Gaps)}

	for abbr, incoming := range payload.Teams {
		existing, ok := stored.Teams[abbr]
		merged, changed := mergeTeam(existing, ok, incoming)
		if err := o.writeArtifact(payload, schema.TeamKey(abbr), merged, changed, result); err != nil {
			return nil, err
		}
		stored.Teams[abbr] = merged
	}

	if standings, changed := mergeStandings(stored.Standings, payload.Standings); standings != nil {
		if err := o.writeArtifact(payload, schema.StandingsKey(), standings, changed, result); err != nil {
			return nil, err
		}
		stored.Standings = standings
	}

	if records, changed := mergeRecords(stored.Records, payload.Records); records != nil {
		if err := o.writeArtifact(payload, schema.RecordsKey(), records, changed, result); err != nil {
			return nil, err
		}
		stored.Records = records
	}

	for id, incoming := range payload.Players {
		existing, ok := stored.Players[id]
		merged, changed := mergePlayer(existing, ok, incoming)
		if err := o.writeArtifact(payload, schema.PlayerKey(id), merged, changed, result); err != nil {
			return nil, err
		}
		stored.Players[id] = merged
	}

	manifest := readManifest(seasonDir, payload.Season)
	manifest.Sport = string(payload.Season.Sport)
	manifest.Year = payload.Season.Year
	manifest.LastOrganized = time.Now().UTC()
	manifest.Files = storedFiles(stored)
	manifest.Gaps = payload.Gaps
	if err := writeManifest(seasonDir, manifest); err != nil {
		return nil, fmt.Errorf("write manifest: %w", err)
	}

	logging.Info(o.logger, "season organized",
		logging.FieldRunID, payload.RunID,
		logging.FieldSport, string(payload.Season.Sport),
		logging.FieldSeason, payload.Season.Year,
		"written", result.Written,
		"skipped", result.Skipped,
		"gaps", result.Gaps,
	)
	return result, nil
}

// writeArtifact marshals one artifact and writes it atomically. A merge that
// kept the stored record, or bytes identical to what is already on disk,
// count as skipped.
func (o *Organizer) writeArtifact(payload *fetch.Payload, key schema.FileKey, record any, changed bool, result *Result) error {
	path := FilePath(o.basePath, payload.Season, key)
	if !changed {
		if _, err := os.Stat(path); err == nil {
			result.Skipped++
			return nil
		}
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	data = append(data, '\n')

	if existing, err := os.ReadFile(path); err == nil && bytes.Equal(existing, data) {
		result.Skipped++
		return nil
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename %s: %w", key, err)
	}
	result.Written++
	return nil
}

// storedFiles lists the relative paths of every artifact in the partition,
// sorted, for the manifest.
func storedFiles(stored *StoredSeason) []string {
	files := make([]string, 0, len(stored.Teams)+len(stored.Players)+2)
	for abbr := range stored.Teams {
		files = append(files, schema.TeamKey(abbr).Path())
	}
	if stored.Standings != nil {
		files = append(files, schema.StandingsKey().Path())
	}
	if stored.Records != nil {
		files = append(files, schema.RecordsKey().Path())
	}
	for id := range stored.Players {
		files = append(files, schema.PlayerKey(id).Path())
	}
	sort.Strings(files)
	return files
}
