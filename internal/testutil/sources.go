// Package testutil provides stub sources, schema tables, and logger helpers
// shared across package tests.
package testutil

import (
	"context"
	"sync"

	"github.com/aali-22/askengine/internal/domain"
	"github.com/aali-22/askengine/internal/domain/league"
	"github.com/aali-22/askengine/internal/domain/players"
	"github.com/aali-22/askengine/internal/domain/teams"
	"github.com/aali-22/askengine/internal/sources"
)

// StubSource implements sources.Source with per-method hooks. Nil hooks
// return zero values with no error. Call counts are safe for concurrent use.
type StubSource struct {
	SourceName string

	ListTeamsFn          func(ctx context.Context, year int) ([]sources.TeamRef, error)
	GetTeamRecordFn      func(ctx context.Context, year int, team sources.TeamRef) (teams.Record, error)
	GetLeagueStandingsFn func(ctx context.Context, year int) (league.Standings, error)
	GetLeagueRecordsFn   func(ctx context.Context, year int) (league.Records, error)
	GetPlayerRecordFn    func(ctx context.Context, year int, playerID string) (players.Record, error)

	mu    sync.Mutex
	calls map[string]int
}

func (s *StubSource) Name() string {
	if s.SourceName == "" {
		return "stub"
	}
	return s.SourceName
}

// Calls returns how many times the named method has been invoked.
func (s *StubSource) Calls(method string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[method]
}

func (s *StubSource) record(method string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.calls == nil {
		s.calls = make(map[string]int)
	}
	s.calls[method]++
}

func (s *StubSource) ListTeams(ctx context.Context, year int) ([]sources.TeamRef, error) {
	s.record("ListTeams")
	if s.ListTeamsFn == nil {
		return nil, nil
	}
	return s.ListTeamsFn(ctx, year)
}

func (s *StubSource) GetTeamRecord(ctx context.Context, year int, team sources.TeamRef) (teams.Record, error) {
	s.record("GetTeamRecord")
	if s.GetTeamRecordFn == nil {
		return teams.Record{}, nil
	}
	return s.GetTeamRecordFn(ctx, year, team)
}

func (s *StubSource) GetLeagueStandings(ctx context.Context, year int) (league.Standings, error) {
	s.record("GetLeagueStandings")
	if s.GetLeagueStandingsFn == nil {
		return league.Standings{}, nil
	}
	return s.GetLeagueStandingsFn(ctx, year)
}

func (s *StubSource) GetLeagueRecords(ctx context.Context, year int) (league.Records, error) {
	s.record("GetLeagueRecords")
	if s.GetLeagueRecordsFn == nil {
		return league.Records{}, nil
	}
	return s.GetLeagueRecordsFn(ctx, year)
}

func (s *StubSource) GetPlayerRecord(ctx context.Context, year int, playerID string) (players.Record, error) {
	s.record("GetPlayerRecord")
	if s.GetPlayerRecordFn == nil {
		return players.Record{}, nil
	}
	return s.GetPlayerRecordFn(ctx, year, playerID)
}

// SampleTeamRecord returns a complete team record for tests.
func SampleTeamRecord(abbr string, year int) teams.Record {
	return teams.Record{
		Abbreviation: abbr,
		Name:         "Team " + abbr,
		Season:       year,
		Wins:         81,
		Losses:       81,
		Stats:        domain.StatLine{"runs": 700},
		Roster: []teams.PlayerRef{
			{ID: abbr + "-p1", Name: abbr + " Player One", Position: "P"},
			{ID: abbr + "-p2", Name: abbr + " Player Two", Position: "C"},
		},
		PlayerStats: map[string]domain.StatLine{
			abbr + "-p1": {"era": 3.50},
			abbr + "-p2": {"avg": 0.280},
		},
	}
}

// SamplePlayerRecord returns a complete player record for tests.
func SamplePlayerRecord(id string, year int) players.Record {
	return players.Record{
		ID:            id,
		Name:          "Player " + id,
		Season:        year,
		Position:      "P",
		RegularSeason: domain.StatLine{"games": 150, "avg": 0.301},
		Stints:        []players.Stint{{Team: "AAA", Games: 150}},
	}
}
