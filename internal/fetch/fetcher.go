// Package fetch retrieves a season's raw records from an upstream source,
// collecting per-artifact failures instead of aborting the season.
package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aali-22/askengine/internal/domain"
	"github.com/aali-22/askengine/internal/domain/league"
	"github.com/aali-22/askengine/internal/domain/players"
	"github.com/aali-22/askengine/internal/domain/teams"
	"github.com/aali-22/askengine/internal/logging"
	"github.com/aali-22/askengine/internal/metrics"
	"github.com/aali-22/askengine/internal/schema"
	"github.com/aali-22/askengine/internal/sources"
)

const defaultWorkers = 4

// Gap records one artifact the source could not provide.
type Gap struct {
	Key     schema.FileKey    `json:"key"`
	Kind    sources.ErrorKind `json:"kind"`
	Message string            `json:"message"`
}

// Payload is a season's worth of fetched records, plus the gaps encountered.
// The fetcher never writes to storage; the payload is handed to the organizer.
type Payload struct {
	Season    domain.Season
	RunID     string
	Teams     map[string]teams.Record
	Standings *league.Standings
	Records   *league.Records
	Players   map[string]players.Record
	Gaps      []Gap
}

// Fetcher drives a season's fetch against a single source.
type Fetcher struct {
	source  sources.Source
	table   *schema.Table
	logger  *slog.Logger
	metrics *metrics.Recorder
	workers int
}

// New constructs a Fetcher. If workers <= 0, a default is used.
func New(source sources.Source, table *schema.Table, logger *slog.Logger, recorder *metrics.Recorder, workers int) *Fetcher {
	if workers <= 0 {
		workers = defaultWorkers
	}
	return &Fetcher{
		source:  source,
		table:   table,
		logger:  logger,
		metrics: recorder,
		workers: workers,
	}
}

// FetchSeason retrieves every required artifact for the season. Team and
// player fetches run concurrently under a bounded worker limit. Per-artifact
// errors become gaps; only a failed team listing or a cancelled context abort
// the whole fetch.
func (f *Fetcher) FetchSeason(ctx context.Context, season domain.Season) (*Payload, error) {
	if !f.table.SeasonValid(season.Year) {
		return nil, fmt.Errorf("season %s outside covered range", season)
	}
	sportTable, err := f.table.Sport(season.Sport)
	if err != nil {
		return nil, err
	}

	payload := &Payload{
		Season:  season,
		RunID:   uuid.New().String(),
		Teams:   make(map[string]teams.Record),
		Players: make(map[string]players.Record),
	}

	start := time.Now()
	refs, err := f.listTeams(ctx, season)
	if err != nil {
		return nil, fmt.Errorf("list teams for %s: %w", season, err)
	}

	// Keep only teams the schema knows; upstream occasionally lists
	// historical or minor-league entries.
	known := refs[:0]
	for _, ref := range refs {
		if sportTable.HasTeam(ref.Abbreviation) {
			known = append(known, ref)
		}
	}

	var mu sync.Mutex
	f.fetchTeams(ctx, season, known, payload, &mu)
	f.fetchLeague(ctx, season, payload, &mu)
	f.fetchPlayers(ctx, season, payload, &mu)

	sort.Slice(payload.Gaps, func(i, j int) bool {
		return payload.Gaps[i].Key.String() < payload.Gaps[j].Key.String()
	})

	logging.Info(f.logger, "season fetch finished",
		logging.FieldRunID, payload.RunID,
		logging.FieldSport, string(season.Sport),
		logging.FieldSeason, season.Year,
		logging.FieldCount, len(payload.Teams),
		"gaps", len(payload.Gaps),
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return payload, nil
}

func (f *Fetcher) listTeams(ctx context.Context, season domain.Season) ([]sources.TeamRef, error) {
	start := time.Now()
	refs, err := f.source.ListTeams(ctx, season.Year)
	f.metrics.RecordSourceCall(f.source.Name(), time.Since(start), err)
	return refs, err
}

func (f *Fetcher) fetchTeams(ctx context.Context, season domain.Season, refs []sources.TeamRef, payload *Payload, mu *sync.Mutex) {
	sem := make(chan struct{}, f.workers)
	var wg sync.WaitGroup

	for _, ref := range refs {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(ref sources.TeamRef) {
			defer wg.Done()
			defer func() { <-sem }()

			start := time.Now()
			record, err := f.source.GetTeamRecord(ctx, season.Year, ref)
			f.metrics.RecordSourceCall(f.source.Name(), time.Since(start), err)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				f.recordGap(payload, schema.TeamKey(ref.Abbreviation), err)
				return
			}
			payload.Teams[ref.Abbreviation] = record
		}(ref)
	}
	wg.Wait()
}

func (f *Fetcher) fetchLeague(ctx context.Context, season domain.Season, payload *Payload, mu *sync.Mutex) {
	if ctx.Err() != nil {
		return
	}

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		start := time.Now()
		standings, err := f.source.GetLeagueStandings(ctx, season.Year)
		f.metrics.RecordSourceCall(f.source.Name(), time.Since(start), err)

		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			f.recordGap(payload, schema.StandingsKey(), err)
			return
		}
		payload.Standings = &standings
	}()

	go func() {
		defer wg.Done()
		start := time.Now()
		records, err := f.source.GetLeagueRecords(ctx, season.Year)
		f.metrics.RecordSourceCall(f.source.Name(), time.Since(start), err)

		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			f.recordGap(payload, schema.RecordsKey(), err)
			return
		}
		payload.Records = &records
	}()

	wg.Wait()
}

func (f *Fetcher) fetchPlayers(ctx context.Context, season domain.Season, payload *Payload, mu *sync.Mutex) {
	ids := rosterPlayerIDs(payload)
	if len(ids) == 0 || ctx.Err() != nil {
		return
	}

	sem := make(chan struct{}, f.workers)
	var wg sync.WaitGroup

	for _, id := range ids {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(id string) {
			defer wg.Done()
			defer func() { <-sem }()

			start := time.Now()
			record, err := f.source.GetPlayerRecord(ctx, season.Year, id)
			f.metrics.RecordSourceCall(f.source.Name(), time.Since(start), err)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				f.recordGap(payload, schema.PlayerKey(id), err)
				return
			}
			if record.Name == "" {
				record.Name = rosterPlayerName(payload, id)
			}
			payload.Players[id] = record
		}(id)
	}
	wg.Wait()
}

// recordGap appends an artifact failure to the payload. Callers must hold the
// payload mutex.
func (f *Fetcher) recordGap(payload *Payload, key schema.FileKey, err error) {
	kind := sources.KindUnavailable
	if se, ok := sources.AsSourceError(err); ok {
		kind = se.Kind
	}
	payload.Gaps = append(payload.Gaps, Gap{
		Key:     key,
		Kind:    kind,
		Message: err.Error(),
	})
	f.metrics.RecordGap(f.source.Name())
	logging.Warn(f.logger,
		"artifact fetch failed",
		logging.FieldRunID, payload.RunID,
		logging.FieldKey, key.String(),
		"kind", string(kind),
		"err", err.Error(),
	)
}

// rosterPlayerIDs unions the roster player IDs across all fetched teams. A
// traded player appears once even when multiple rosters list them.
func rosterPlayerIDs(payload *Payload) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, team := range payload.Teams {
		for _, ref := range team.Roster {
			if ref.ID == "" || seen[ref.ID] {
				continue
			}
			seen[ref.ID] = true
			ids = append(ids, ref.ID)
		}
	}
	sort.Strings(ids)
	return ids
}

func rosterPlayerName(payload *Payload, id string) string {
	for _, team := range payload.Teams {
		for _, ref := range team.Roster {
			if ref.ID == id {
				return ref.Name
			}
		}
	}
	return ""
}
