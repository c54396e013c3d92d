package mlbstats

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aali-22/askengine/internal/sources"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewClient(Config{BaseURL: srv.URL, HTTPClient: srv.Client()})
	return srv, client
}

func writeJSON(t *testing.T, w http.ResponseWriter, payload any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		t.Fatalf("encode response: %v", err)
	}
}

func TestListTeamsMapsAndNormalizes(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/teams" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("season"); got != "2021" {
			t.Fatalf("expected season=2021, got %s", got)
		}
		writeJSON(t, w, teamsResponse{Teams: []apiTeam{
			{ID: 120, Name: "Washington Nationals", Abbreviation: "wsn "},
			{ID: 121, Name: "New York Mets", Abbreviation: "NYM"},
		}})
	})

	refs, err := client.ListTeams(context.Background(), 2021)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(refs) != 2 {
		t.Fatalf("expected 2 refs, got %d", len(refs))
	}
	if refs[0].Abbreviation != "WSN" || refs[0].UpstreamID != "120" {
		t.Fatalf("unexpected first ref: %+v", refs[0])
	}
}

func TestGetTeamRecordAssemblesWinLossRosterAndStats(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/standings":
			writeJSON(t, w, standingsResponse{Records: []divisionRecord{{
				TeamRecords: []teamStanding{
					{Team: apiTeam{ID: 120, Abbreviation: "WSN"}, Wins: 97, Losses: 65, WinningPercentage: ".599"},
				},
			}}})
		case "/teams/120/roster/Active":
			writeJSON(t, w, rosterResponse{Roster: []rosterEntry{
				{Person: apiPerson{ID: 5, FullName: "Max Scherzer"}, JerseyNumber: "31", Position: apiPosition{Abbreviation: "P", Type: "Pitcher"}},
				{Person: apiPerson{ID: 7, FullName: "Juan Soto"}, JerseyNumber: "22", Position: apiPosition{Abbreviation: "RF", Type: "Outfielder"}},
			}})
		case "/people/5/stats":
			writeJSON(t, w, statsResponse{Stats: []statGroup{{Splits: []statSplit{
				{Stat: map[string]any{"era": "2.92", "strikeOuts": float64(243), "wins": float64(18)}},
			}}}})
		case "/people/7/stats":
			writeJSON(t, w, statsResponse{Stats: []statGroup{{Splits: []statSplit{
				{Stat: map[string]any{"avg": ".282", "homeRuns": float64(34), "hits": float64(153), "runs": float64(110)}},
			}}}})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	})

	record, err := client.GetTeamRecord(context.Background(), 2019, sources.TeamRef{
		Abbreviation: "WSN", Name: "Washington Nationals", UpstreamID: "120",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.Wins != 97 || record.Losses != 65 {
		t.Fatalf("expected 97-65, got %d-%d", record.Wins, record.Losses)
	}
	if len(record.Roster) != 2 || record.Roster[0].ID != "5" {
		t.Fatalf("expected sorted roster, got %+v", record.Roster)
	}
	pitcher, ok := record.PlayerStats["5"]
	if !ok {
		t.Fatalf("expected stats for player 5")
	}
	if pitcher["era"] != 2.92 || pitcher["pitching_strikeouts"] != 243 {
		t.Fatalf("unexpected pitcher line: %+v", pitcher)
	}
	hitter := record.PlayerStats["7"]
	if hitter["avg"] != 0.282 || hitter["home_runs"] != 34 {
		t.Fatalf("unexpected hitter line: %+v", hitter)
	}
	if record.Stats["home_runs"] != 34 || record.Stats["runs"] != 110 {
		t.Fatalf("unexpected team aggregate: %+v", record.Stats)
	}
}

func TestGetLeagueStandingsRanksLeagueWide(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/teams":
			writeJSON(t, w, teamsResponse{Teams: []apiTeam{
				{ID: 120, Abbreviation: "WSN"},
				{ID: 121, Abbreviation: "NYM"},
			}})
		case "/standings":
			writeJSON(t, w, standingsResponse{Records: []divisionRecord{{
				TeamRecords: []teamStanding{
					{Team: apiTeam{ID: 121, Name: "New York Mets"}, Wins: 77, Losses: 85, WinningPercentage: ".475", GamesBack: "20.0"},
					{Team: apiTeam{ID: 120, Name: "Washington Nationals"}, Wins: 97, Losses: 65, WinningPercentage: ".599", GamesBack: "-"},
				},
			}}})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	})

	standings, err := client.GetLeagueStandings(context.Background(), 2019)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(standings.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(standings.Rows))
	}
	if standings.Rows[0].Abbreviation != "WSN" || standings.Rows[0].Rank != 1 {
		t.Fatalf("expected WSN ranked first, got %+v", standings.Rows[0])
	}
	if standings.Rows[1].GamesBack != 20.0 {
		t.Fatalf("expected games back 20.0, got %v", standings.Rows[1].GamesBack)
	}
}

func TestGetLeagueRecordsQueriesConfiguredCategories(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/stats/leaders" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("leaderCategories"); got != "hits" {
			t.Fatalf("expected leaderCategories=hits, got %s", got)
		}
		_ = json.NewEncoder(w).Encode(leadersResponse{LeagueLeaders: []leaderCategory{{
			LeaderCategory: "hits",
			Leaders: []leaderEntry{
				{Rank: 1, Person: apiPerson{FullName: "Trea Turner"}, Team: apiTeam{Name: "Washington Nationals"}, Value: "195"},
			},
		}}})
	}))
	defer srv.Close()

	client := NewClient(Config{
		BaseURL:          srv.URL,
		HTTPClient:       srv.Client(),
		RecordCategories: map[string]string{"most_hits": "hits"},
	})

	records, err := client.GetLeagueRecords(context.Background(), 2021)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	holders := records.Categories["most_hits"]
	if len(holders) != 1 || holders[0].Holder != "Trea Turner" || holders[0].Value != 195 {
		t.Fatalf("unexpected holders: %+v", holders)
	}
}

func TestGetPlayerRecordMergesGroupsAndStints(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/people/5/stats" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		switch q.Get("group") + "/" + q.Get("gameType") {
		case "hitting/R":
			writeJSON(t, w, statsResponse{Stats: []statGroup{{Splits: []statSplit{
				{
					Team:   apiTeam{ID: 120, Abbreviation: "WSN"},
					Player: apiPerson{ID: 5, FullName: "Trea Turner"},
					Stat:   map[string]any{"gamesPlayed": float64(96), "hits": float64(117), "avg": ".322"},
				},
				{
					Team:   apiTeam{ID: 119, Abbreviation: "LAD"},
					Player: apiPerson{ID: 5, FullName: "Trea Turner"},
					Stat:   map[string]any{"gamesPlayed": float64(52), "hits": float64(78), "avg": ".338"},
				},
			}}}})
		case "hitting/P":
			writeJSON(t, w, statsResponse{Stats: []statGroup{{Splits: []statSplit{
				{Team: apiTeam{ID: 119, Abbreviation: "LAD"}, Stat: map[string]any{"gamesPlayed": float64(12), "hits": float64(11)}},
			}}}})
		default:
			// No pitching line for this player.
			writeJSON(t, w, statsResponse{})
		}
	})

	record, err := client.GetPlayerRecord(context.Background(), 2021, "5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.Name != "Trea Turner" {
		t.Fatalf("expected name from splits, got %q", record.Name)
	}
	if record.RegularSeason["hits"] != 195 {
		t.Fatalf("expected hits summed across stints, got %v", record.RegularSeason["hits"])
	}
	if record.Playoffs["hits"] != 11 {
		t.Fatalf("expected playoff hits 11, got %v", record.Playoffs["hits"])
	}
	if len(record.Stints) != 2 || record.Stints[0].Team != "LAD" || record.Stints[0].Games != 52 {
		t.Fatalf("unexpected stints: %+v", record.Stints)
	}
}

func TestGetJSONClassifiesStatusCodes(t *testing.T) {
	cases := []struct {
		status int
		kind   sources.ErrorKind
	}{
		{http.StatusNotFound, sources.KindNotFound},
		{http.StatusTooManyRequests, sources.KindUnavailable},
		{http.StatusInternalServerError, sources.KindUnavailable},
		{http.StatusForbidden, sources.KindMalformed},
	}
	for _, tc := range cases {
		_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
		})

		_, err := client.ListTeams(context.Background(), 2021)
		se, ok := sources.AsSourceError(err)
		if !ok {
			t.Fatalf("status %d: expected SourceError, got %v", tc.status, err)
		}
		if se.Kind != tc.kind {
			t.Fatalf("status %d: expected kind %s, got %s", tc.status, tc.kind, se.Kind)
		}
	}
}

func TestGetTeamRecordRejectsBadUpstreamID(t *testing.T) {
	client := NewClient(Config{BaseURL: "http://unused.invalid"})

	_, err := client.GetTeamRecord(context.Background(), 2021, sources.TeamRef{Abbreviation: "WSN", UpstreamID: "abc"})
	se, ok := sources.AsSourceError(err)
	if !ok || se.Kind != sources.KindMalformed {
		t.Fatalf("expected malformed error, got %v", err)
	}
}
