package sources

import (
	"context"
	"log/slog"

	"github.com/aali-22/askengine/internal/domain/league"
	"github.com/aali-22/askengine/internal/domain/players"
	"github.com/aali-22/askengine/internal/domain/teams"
)

// StandingsSource is the single capability a standings fallback needs.
type StandingsSource interface {
	Name() string
	GetLeagueStandings(ctx context.Context, year int) (league.Standings, error)
}

// standingsFallbackSource tries the primary source first and falls back to a
// secondary standings provider (e.g. a reference-site scrape) when the
// primary fails with anything other than a cancellation.
type standingsFallbackSource struct {
	primary  Source
	fallback StandingsSource
	logger   *slog.Logger
}

// WithStandingsFallback layers a secondary standings provider over a source.
func WithStandingsFallback(primary Source, fallback StandingsSource, logger *slog.Logger) Source {
	if fallback == nil {
		return primary
	}
	return &standingsFallbackSource{primary: primary, fallback: fallback, logger: logger}
}

func (s *standingsFallbackSource) Name() string {
	return s.primary.Name()
}

func (s *standingsFallbackSource) ListTeams(ctx context.Context, year int) ([]TeamRef, error) {
	return s.primary.ListTeams(ctx, year)
}

func (s *standingsFallbackSource) GetTeamRecord(ctx context.Context, year int, team TeamRef) (teams.Record, error) {
	return s.primary.GetTeamRecord(ctx, year, team)
}

func (s *standingsFallbackSource) GetLeagueStandings(ctx context.Context, year int) (league.Standings, error) {
	standings, err := s.primary.GetLeagueStandings(ctx, year)
	if err == nil {
		return standings, nil
	}
	if ctx.Err() != nil {
		return league.Standings{}, err
	}
	logWithSource(ctx, s.logger, slog.LevelWarn, s.primary.Name(),
		"primary standings fetch failed, trying fallback",
		slog.String("fallback", s.fallback.Name()),
		slog.Int("season", year),
		"err", err,
	)
	return s.fallback.GetLeagueStandings(ctx, year)
}

func (s *standingsFallbackSource) GetLeagueRecords(ctx context.Context, year int) (league.Records, error) {
	return s.primary.GetLeagueRecords(ctx, year)
}

func (s *standingsFallbackSource) GetPlayerRecord(ctx context.Context, year int, playerID string) (players.Record, error) {
	return s.primary.GetPlayerRecord(ctx, year, playerID)
}
