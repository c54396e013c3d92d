package bbref

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aali-22/askengine/internal/sources"
)

const standingsPage = `<html><body>
<table id="standings_E">
<tbody>
<tr><th>1</th><td><a href="/teams/NYY/2021.shtml">New York Yankees</a></td><td>92</td><td>70</td><td>.568</td></tr>
<tr><td><a href="/teams/BOS/2021.shtml">Boston Red Sox</a></td><td>92</td><td>70</td><td>.568</td></tr>
</tbody>
</table>
<table id="standings_W">
<tbody>
<tr><td><a href="/teams/SFG/2021.shtml">San Francisco Giants</a></td><td>107</td><td>55</td><td>.660</td></tr>
<tr><td><a href="/teams/NYY/2021.shtml">New York Yankees</a></td><td>92</td><td>70</td><td>.568</td></tr>
<tr><td><span>No link row</span></td><td>80</td><td>82</td></tr>
</tbody>
</table>
</body></html>`

func newTestScraper(t *testing.T, handler http.HandlerFunc) *Scraper {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Config{
		BaseURL:     srv.URL,
		PagePattern: "/leagues/majors/%d-standings.shtml",
		HTTPClient:  srv.Client(),
	})
}

func TestGetLeagueStandingsParsesTables(t *testing.T) {
	scraper := newTestScraper(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/leagues/majors/2021-standings.shtml" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		fmt.Fprint(w, standingsPage)
	})

	standings, err := scraper.GetLeagueStandings(context.Background(), 2021)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(standings.Rows) != 3 {
		t.Fatalf("expected 3 unique teams, got %d: %+v", len(standings.Rows), standings.Rows)
	}
	if standings.Rows[0].Abbreviation != "SFG" || standings.Rows[0].Rank != 1 {
		t.Fatalf("expected SFG ranked first, got %+v", standings.Rows[0])
	}
	if standings.Rows[0].Wins != 107 || standings.Rows[0].Losses != 55 {
		t.Fatalf("unexpected SFG record: %+v", standings.Rows[0])
	}
}

func TestGetLeagueStandingsDeduplicatesTeams(t *testing.T) {
	scraper := newTestScraper(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, standingsPage)
	})

	standings, err := scraper.GetLeagueStandings(context.Background(), 2021)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	count := 0
	for _, row := range standings.Rows {
		if row.Abbreviation == "NYY" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected NYY listed once, got %d", count)
	}
}

func TestGetLeagueStandingsNotFoundSeason(t *testing.T) {
	scraper := newTestScraper(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := scraper.GetLeagueStandings(context.Background(), 1890)
	if !sources.IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestGetLeagueStandingsEmptyPageIsMalformed(t *testing.T) {
	scraper := newTestScraper(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body><p>rain delay</p></body></html>")
	})

	_, err := scraper.GetLeagueStandings(context.Background(), 2021)
	se, ok := sources.AsSourceError(err)
	if !ok || se.Kind != sources.KindMalformed {
		t.Fatalf("expected malformed error, got %v", err)
	}
}

func TestGetLeagueStandingsServerErrorIsRetryable(t *testing.T) {
	scraper := newTestScraper(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := scraper.GetLeagueStandings(context.Background(), 2021)
	if !sources.IsRetryable(err) {
		t.Fatalf("expected retryable error, got %v", err)
	}
}
