// Package fixture provides a deterministic in-memory source useful for local
// runs and tests.
package fixture

import (
	"context"
	"fmt"
	"sort"

	"github.com/aali-22/askengine/internal/domain"
	"github.com/aali-22/askengine/internal/domain/league"
	"github.com/aali-22/askengine/internal/domain/players"
	"github.com/aali-22/askengine/internal/domain/teams"
	"github.com/aali-22/askengine/internal/sources"
)

// Source serves a deterministic season built from a configured team list.
// Every team gets two roster players with populated stat lines, so a season
// fetched from a fixture validates as complete against a matching schema.
type Source struct {
	sport      domain.Sport
	games      int
	teamAbbrs  []string
	categories []string
}

// New creates a fixture source for the given sport and team abbreviations.
func New(sport domain.Sport, teamAbbrs, recordCategories []string) *Source {
	abbrs := append([]string(nil), teamAbbrs...)
	sort.Strings(abbrs)
	games := 162
	if sport == domain.SportBasketball {
		games = 82
	}
	return &Source{
		sport:      sport,
		games:      games,
		teamAbbrs:  abbrs,
		categories: append([]string(nil), recordCategories...),
	}
}

// Name identifies the source in logs and errors.
func (s *Source) Name() string {
	return "fixture"
}

// ListTeams returns the configured team set.
func (s *Source) ListTeams(ctx context.Context, year int) ([]sources.TeamRef, error) {
	_ = ctx
	refs := make([]sources.TeamRef, 0, len(s.teamAbbrs))
	for i, abbr := range s.teamAbbrs {
		refs = append(refs, sources.TeamRef{
			Abbreviation: abbr,
			Name:         "Team " + abbr,
			UpstreamID:   fmt.Sprintf("%d", i+1),
		})
	}
	return refs, nil
}

// GetTeamRecord returns a deterministic complete team record.
func (s *Source) GetTeamRecord(ctx context.Context, year int, team sources.TeamRef) (teams.Record, error) {
	_ = ctx
	idx := s.teamIndex(team.Abbreviation)
	if idx < 0 {
		return teams.Record{}, sources.NotFound(s.Name(), "team "+team.Abbreviation)
	}

	wins, losses := s.winLoss(idx)
	roster := s.roster(team.Abbreviation)
	playerStats := make(map[string]domain.StatLine, len(roster))
	for _, ref := range roster {
		playerStats[ref.ID] = domain.StatLine{"games": 100, "points": float64(500 + 10*idx)}
	}

	return teams.Record{
		Abbreviation: team.Abbreviation,
		Name:         team.Name,
		Season:       year,
		Wins:         wins,
		Losses:       losses,
		Stats:        domain.StatLine{"points": float64(8000 + 100*idx)},
		Roster:       roster,
		PlayerStats:  playerStats,
	}, nil
}

// GetLeagueStandings ranks the configured teams deterministically.
func (s *Source) GetLeagueStandings(ctx context.Context, year int) (league.Standings, error) {
	_ = ctx
	standings := league.Standings{Season: year}
	for i, abbr := range s.teamAbbrs {
		wins, losses := s.winLoss(i)
		standings.Rows = append(standings.Rows, league.StandingsRow{
			Abbreviation: abbr,
			Name:         "Team " + abbr,
			Wins:         wins,
			Losses:       losses,
			WinPct:       float64(wins) / float64(wins+losses),
		})
	}
	sort.Slice(standings.Rows, func(i, j int) bool {
		return standings.Rows[i].Wins > standings.Rows[j].Wins
	})
	for i := range standings.Rows {
		standings.Rows[i].Rank = i + 1
	}
	return standings, nil
}

// GetLeagueRecords fills every configured category with one deterministic holder.
func (s *Source) GetLeagueRecords(ctx context.Context, year int) (league.Records, error) {
	_ = ctx
	if len(s.teamAbbrs) == 0 {
		return league.Records{}, sources.NotFound(s.Name(), "records")
	}
	records := league.Records{
		Season:     year,
		Categories: make(map[string][]league.RecordHolder, len(s.categories)),
	}
	for i, category := range s.categories {
		abbr := s.teamAbbrs[i%len(s.teamAbbrs)]
		records.Categories[category] = []league.RecordHolder{{
			Holder: "Player One " + abbr,
			Team:   abbr,
			Value:  float64(40 + i),
		}}
	}
	return records, nil
}

// GetPlayerRecord returns a deterministic player record for fixture players.
func (s *Source) GetPlayerRecord(ctx context.Context, year int, playerID string) (players.Record, error) {
	_ = ctx
	abbr, ordinal, ok := s.parsePlayerID(playerID)
	if !ok {
		return players.Record{}, sources.NotFound(s.Name(), "player "+playerID)
	}
	return players.Record{
		ID:            playerID,
		Name:          fmt.Sprintf("Player %s %s", ordinal, abbr),
		Season:        year,
		Position:      "G",
		RegularSeason: domain.StatLine{"games": 100, "points": 500},
		Playoffs:      domain.StatLine{"games": 10, "points": 60},
		Stints:        []players.Stint{{Team: abbr, Games: 100}},
	}, nil
}

func (s *Source) teamIndex(abbr string) int {
	for i, a := range s.teamAbbrs {
		if a == abbr {
			return i
		}
	}
	return -1
}

// winLoss spreads wins symmetrically around .500 so the league-wide win
// total always equals teams x games / 2.
func (s *Source) winLoss(idx int) (int, int) {
	spread := len(s.teamAbbrs) - 1 - 2*idx
	wins := s.games/2 + spread
	if wins < 0 {
		wins = 0
	}
	if wins > s.games {
		wins = s.games
	}
	return wins, s.games - wins
}

func (s *Source) roster(abbr string) []teams.PlayerRef {
	return []teams.PlayerRef{
		{ID: abbr + "-p1", Name: "Player One " + abbr, Position: "G", JerseyNumber: "1"},
		{ID: abbr + "-p2", Name: "Player Two " + abbr, Position: "F", JerseyNumber: "2"},
	}
}

func (s *Source) parsePlayerID(playerID string) (abbr, ordinal string, ok bool) {
	for _, a := range s.teamAbbrs {
		switch playerID {
		case a + "-p1":
			return a, "One", true
		case a + "-p2":
			return a, "Two", true
		}
	}
	return "", "", false
}
