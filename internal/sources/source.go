// Package sources defines the upstream capability contract and the decorators
// (retry, rate limit, fallback) layered over concrete providers.
package sources

import (
	"context"

	"github.com/aali-22/askengine/internal/domain/league"
	"github.com/aali-22/askengine/internal/domain/players"
	"github.com/aali-22/askengine/internal/domain/teams"
)

// TeamRef identifies a team as known upstream, before it has a record.
type TeamRef struct {
	Abbreviation string
	Name         string
	UpstreamID   string
}

// TeamSource lists teams and fetches normalized team records for a season.
type TeamSource interface {
	ListTeams(ctx context.Context, year int) ([]TeamRef, error)
	GetTeamRecord(ctx context.Context, year int, team TeamRef) (teams.Record, error)
}

// LeagueSource fetches season-wide standings and notable records.
type LeagueSource interface {
	GetLeagueStandings(ctx context.Context, year int) (league.Standings, error)
	GetLeagueRecords(ctx context.Context, year int) (league.Records, error)
}

// PlayerSource fetches normalized per-season player records.
type PlayerSource interface {
	GetPlayerRecord(ctx context.Context, year int, playerID string) (players.Record, error)
}

// Source combines all upstream capabilities. The fetcher depends on this
// contract only, never on a specific provider.
type Source interface {
	Name() string
	TeamSource
	LeagueSource
	PlayerSource
}
