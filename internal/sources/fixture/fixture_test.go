package fixture

import (
	"context"
	"testing"

	"github.com/aali-22/askengine/internal/domain"
	"github.com/aali-22/askengine/internal/sources"
)

func TestListTeamsDeterministicOrder(t *testing.T) {
	src := New(domain.SportBaseball, []string{"NYM", "AAA", "WSN"}, nil)

	refs, err := src.ListTeams(context.Background(), 2021)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(refs) != 3 || refs[0].Abbreviation != "AAA" || refs[2].Abbreviation != "WSN" {
		t.Fatalf("expected sorted refs, got %+v", refs)
	}
}

func TestWinTotalsBalanceAcrossLeague(t *testing.T) {
	abbrs := []string{"AAA", "BBB", "CCC", "DDD"}
	src := New(domain.SportBaseball, abbrs, nil)

	standings, err := src.GetLeagueStandings(context.Background(), 2021)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	totalWins, totalLosses := 0, 0
	for _, row := range standings.Rows {
		if row.Wins+row.Losses != 162 {
			t.Fatalf("expected 162 games per team, got %d for %s", row.Wins+row.Losses, row.Abbreviation)
		}
		totalWins += row.Wins
		totalLosses += row.Losses
	}
	want := len(abbrs) * 162 / 2
	if totalWins != want || totalLosses != want {
		t.Fatalf("expected balanced league totals %d, got wins=%d losses=%d", want, totalWins, totalLosses)
	}
}

func TestBasketballSeasonLength(t *testing.T) {
	src := New(domain.SportBasketball, []string{"BOS", "LAL"}, nil)

	record, err := src.GetTeamRecord(context.Background(), 2023, sources.TeamRef{Abbreviation: "BOS", Name: "Team BOS"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.Wins+record.Losses != 82 {
		t.Fatalf("expected 82 games, got %d", record.Wins+record.Losses)
	}
}

func TestTeamRecordMatchesStandings(t *testing.T) {
	src := New(domain.SportBaseball, []string{"AAA", "BBB"}, nil)

	record, err := src.GetTeamRecord(context.Background(), 2021, sources.TeamRef{Abbreviation: "AAA", Name: "Team AAA"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	standings, _ := src.GetLeagueStandings(context.Background(), 2021)
	for _, row := range standings.Rows {
		if row.Abbreviation == "AAA" && (row.Wins != record.Wins || row.Losses != record.Losses) {
			t.Fatalf("standings %d-%d disagree with team record %d-%d", row.Wins, row.Losses, record.Wins, record.Losses)
		}
	}
}

func TestPlayerRecordForRosterPlayer(t *testing.T) {
	src := New(domain.SportBaseball, []string{"AAA"}, nil)

	record, err := src.GetPlayerRecord(context.Background(), 2021, "AAA-p2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.Name != "Player Two AAA" {
		t.Fatalf("unexpected name: %q", record.Name)
	}
	if len(record.Stints) != 1 || record.Stints[0].Team != "AAA" {
		t.Fatalf("unexpected stints: %+v", record.Stints)
	}
}

func TestUnknownLookupsReturnNotFound(t *testing.T) {
	src := New(domain.SportBaseball, []string{"AAA"}, nil)

	if _, err := src.GetTeamRecord(context.Background(), 2021, sources.TeamRef{Abbreviation: "ZZZ"}); !sources.IsNotFound(err) {
		t.Fatalf("expected not-found for unknown team, got %v", err)
	}
	if _, err := src.GetPlayerRecord(context.Background(), 2021, "ZZZ-p1"); !sources.IsNotFound(err) {
		t.Fatalf("expected not-found for unknown player, got %v", err)
	}
}

func TestLeagueRecordsCoverConfiguredCategories(t *testing.T) {
	src := New(domain.SportBaseball, []string{"AAA", "BBB"}, []string{"most_hits", "best_era"})

	records, err := src.GetLeagueRecords(context.Background(), 2021)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, category := range []string{"most_hits", "best_era"} {
		if len(records.Categories[category]) == 0 {
			t.Fatalf("expected holders for %s, got %+v", category, records.Categories)
		}
	}
}
