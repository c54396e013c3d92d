package sources

import (
	"context"
	"log/slog"
	"time"

	"github.com/aali-22/askengine/internal/domain/league"
	"github.com/aali-22/askengine/internal/domain/players"
	"github.com/aali-22/askengine/internal/domain/teams"
)

// rateLimitedSource wraps a Source and enforces a minimum interval between
// upstream calls to stay under provider quotas.
type rateLimitedSource struct {
	next     Source
	interval time.Duration
	ticker   *time.Ticker
	logger   *slog.Logger
}

// NewRateLimitedSource returns a Source that limits calls to the given
// interval. Calls block until the interval elapses.
func NewRateLimitedSource(next Source, interval time.Duration, logger *slog.Logger) Source {
	if interval <= 0 {
		interval = time.Second
	}
	return &rateLimitedSource{
		next:     next,
		interval: interval,
		ticker:   time.NewTicker(interval),
		logger:   logger,
	}
}

func (s *rateLimitedSource) Name() string {
	return s.next.Name()
}

func (s *rateLimitedSource) wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		if s.logger != nil {
			s.logger.Warn("rate-limited fetch canceled", slog.String("source", s.Name()))
		}
		return ctx.Err()
	case <-s.ticker.C:
		return nil
	}
}

func (s *rateLimitedSource) ListTeams(ctx context.Context, year int) ([]TeamRef, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return s.next.ListTeams(ctx, year)
}

func (s *rateLimitedSource) GetTeamRecord(ctx context.Context, year int, team TeamRef) (teams.Record, error) {
	if err := s.wait(ctx); err != nil {
		return teams.Record{}, err
	}
	return s.next.GetTeamRecord(ctx, year, team)
}

func (s *rateLimitedSource) GetLeagueStandings(ctx context.Context, year int) (league.Standings, error) {
	if err := s.wait(ctx); err != nil {
		return league.Standings{}, err
	}
	return s.next.GetLeagueStandings(ctx, year)
}

func (s *rateLimitedSource) GetLeagueRecords(ctx context.Context, year int) (league.Records, error) {
	if err := s.wait(ctx); err != nil {
		return league.Records{}, err
	}
	return s.next.GetLeagueRecords(ctx, year)
}

func (s *rateLimitedSource) GetPlayerRecord(ctx context.Context, year int, playerID string) (players.Record, error) {
	if err := s.wait(ctx); err != nil {
		return players.Record{}, err
	}
	return s.next.GetPlayerRecord(ctx, year, playerID)
}
