package fetch_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aali-22/askengine/internal/domain"
	"github.com/aali-22/askengine/internal/domain/league"
	"github.com/aali-22/askengine/internal/domain/players"
	"github.com/aali-22/askengine/internal/domain/teams"
	"github.com/aali-22/askengine/internal/fetch"
	"github.com/aali-22/askengine/internal/metrics"
	"github.com/aali-22/askengine/internal/schema"
	"github.com/aali-22/askengine/internal/sources"
	"github.com/aali-22/askengine/internal/testutil"
)

func completeStub(year int) *testutil.StubSource {
	return &testutil.StubSource{
		ListTeamsFn: func(ctx context.Context, y int) ([]sources.TeamRef, error) {
			return []sources.TeamRef{
				{Abbreviation: "AAA", Name: "Team AAA"},
				{Abbreviation: "BBB", Name: "Team BBB"},
			}, nil
		},
		GetTeamRecordFn: func(ctx context.Context, y int, team sources.TeamRef) (teams.Record, error) {
			return testutil.SampleTeamRecord(team.Abbreviation, year), nil
		},
		GetLeagueStandingsFn: func(ctx context.Context, y int) (league.Standings, error) {
			return league.Standings{Season: y, Rows: []league.StandingsRow{
				{Rank: 1, Abbreviation: "AAA", Wins: 6, Losses: 4},
				{Rank: 2, Abbreviation: "BBB", Wins: 4, Losses: 6},
			}}, nil
		},
		GetLeagueRecordsFn: func(ctx context.Context, y int) (league.Records, error) {
			return league.Records{Season: y, Categories: map[string][]league.RecordHolder{
				"most_hits": {{Holder: "Player AAA-p1", Team: "AAA", Value: 42}},
			}}, nil
		},
		GetPlayerRecordFn: func(ctx context.Context, y int, id string) (players.Record, error) {
			return testutil.SamplePlayerRecord(id, year), nil
		},
	}
}

func TestFetchSeasonComplete(t *testing.T) {
	table := testutil.SmallTable("baseball")
	logger, _ := testutil.NewBufferLogger()
	recorder := metrics.NewRecorder()
	stub := completeStub(2021)

	f := fetch.New(stub, table, logger, recorder, 2)
	payload, err := f.FetchSeason(context.Background(), domain.Season{Sport: domain.SportBaseball, Year: 2021})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(payload.Teams) != 2 {
		t.Fatalf("expected 2 teams, got %d", len(payload.Teams))
	}
	if payload.Standings == nil || payload.Records == nil {
		t.Fatalf("expected standings and records fetched")
	}
	// Two roster players per team, some shared prefix but all distinct IDs.
	if len(payload.Players) != 4 {
		t.Fatalf("expected 4 players, got %d", len(payload.Players))
	}
	if len(payload.Gaps) != 0 {
		t.Fatalf("expected no gaps, got %+v", payload.Gaps)
	}
	if payload.RunID == "" {
		t.Fatalf("expected run id assigned")
	}
	if recorder.SourceCalls("stub") == 0 {
		t.Fatalf("expected source calls recorded")
	}
}

func TestFetchSeasonRecordsGapsInsteadOfFailing(t *testing.T) {
	table := testutil.SmallTable("baseball")
	logger, _ := testutil.NewBufferLogger()
	stub := completeStub(2021)
	stub.GetTeamRecordFn = func(ctx context.Context, y int, team sources.TeamRef) (teams.Record, error) {
		if team.Abbreviation == "BBB" {
			return teams.Record{}, sources.NotFound("stub", "team:BBB")
		}
		return testutil.SampleTeamRecord(team.Abbreviation, 2021), nil
	}
	stub.GetLeagueRecordsFn = func(ctx context.Context, y int) (league.Records, error) {
		return league.Records{}, sources.Unavailable("stub", "records", errors.New("down"))
	}

	f := fetch.New(stub, table, logger, metrics.NewRecorder(), 2)
	payload, err := f.FetchSeason(context.Background(), domain.Season{Sport: domain.SportBaseball, Year: 2021})
	if err != nil {
		t.Fatalf("expected gaps, not failure, got %v", err)
	}

	if _, ok := payload.Teams["AAA"]; !ok {
		t.Fatalf("expected AAA fetched despite BBB gap")
	}
	if _, ok := payload.Teams["BBB"]; ok {
		t.Fatalf("expected BBB missing from payload")
	}
	if len(payload.Gaps) != 2 {
		t.Fatalf("expected 2 gaps, got %+v", payload.Gaps)
	}

	kinds := map[string]sources.ErrorKind{}
	for _, gap := range payload.Gaps {
		kinds[gap.Key.String()] = gap.Kind
	}
	if kinds["team:BBB"] != sources.KindNotFound {
		t.Fatalf("expected not_found gap for BBB, got %+v", kinds)
	}
	if kinds["records"] != sources.KindUnavailable {
		t.Fatalf("expected unavailable gap for records, got %+v", kinds)
	}
}

func TestFetchSeasonFailsWhenTeamListingFails(t *testing.T) {
	table := testutil.SmallTable("baseball")
	logger, _ := testutil.NewBufferLogger()
	stub := &testutil.StubSource{
		ListTeamsFn: func(ctx context.Context, year int) ([]sources.TeamRef, error) {
			return nil, sources.Unavailable("stub", "teams", errors.New("down"))
		},
	}

	f := fetch.New(stub, table, logger, metrics.NewRecorder(), 2)
	if _, err := f.FetchSeason(context.Background(), domain.Season{Sport: domain.SportBaseball, Year: 2021}); err == nil {
		t.Fatalf("expected failure when team listing fails")
	}
}

func TestFetchSeasonRejectsUncoveredYear(t *testing.T) {
	table := testutil.SmallTable("baseball")
	logger, _ := testutil.NewBufferLogger()

	f := fetch.New(completeStub(2031), table, logger, metrics.NewRecorder(), 2)
	if _, err := f.FetchSeason(context.Background(), domain.Season{Sport: domain.SportBaseball, Year: 2031}); err == nil {
		t.Fatalf("expected error for season outside covered range")
	}
}

func TestFetchSeasonFiltersUnknownTeams(t *testing.T) {
	table := testutil.SmallTable("baseball")
	logger, _ := testutil.NewBufferLogger()
	stub := completeStub(2021)
	inner := stub.ListTeamsFn
	stub.ListTeamsFn = func(ctx context.Context, year int) ([]sources.TeamRef, error) {
		refs, err := inner(ctx, year)
		if err != nil {
			return nil, err
		}
		return append(refs, sources.TeamRef{Abbreviation: "ZZZ", Name: "Historical Club"}), nil
	}

	f := fetch.New(stub, table, logger, metrics.NewRecorder(), 2)
	payload, err := f.FetchSeason(context.Background(), domain.Season{Sport: domain.SportBaseball, Year: 2021})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := payload.Teams["ZZZ"]; ok {
		t.Fatalf("expected unknown team filtered out")
	}
}

func TestFetchSeasonFillsPlayerNameFromRoster(t *testing.T) {
	table := testutil.SmallTable("baseball")
	logger, _ := testutil.NewBufferLogger()
	stub := completeStub(2021)
	stub.GetPlayerRecordFn = func(ctx context.Context, y int, id string) (players.Record, error) {
		record := testutil.SamplePlayerRecord(id, 2021)
		record.Name = ""
		return record, nil
	}

	f := fetch.New(stub, table, logger, metrics.NewRecorder(), 2)
	payload, err := f.FetchSeason(context.Background(), domain.Season{Sport: domain.SportBaseball, Year: 2021})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	record, ok := payload.Players["AAA-p1"]
	if !ok {
		t.Fatalf("expected record for AAA-p1")
	}
	if record.Name != "AAA Player One" {
		t.Fatalf("expected roster name fallback, got %q", record.Name)
	}
}

func TestFetchSeasonCancelledContext(t *testing.T) {
	table := testutil.SmallTable("baseball")
	logger, _ := testutil.NewBufferLogger()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := fetch.New(completeStub(2021), table, logger, metrics.NewRecorder(), 2)
	if _, err := f.FetchSeason(ctx, domain.Season{Sport: domain.SportBaseball, Year: 2021}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestGapKeysAreSchemaKeys(t *testing.T) {
	gap := fetch.Gap{Key: schema.TeamKey("AAA"), Kind: sources.KindNotFound, Message: "absent"}
	if gap.Key.Path() != "AAA.json" {
		t.Fatalf("unexpected gap path: %s", gap.Key.Path())
	}
}
