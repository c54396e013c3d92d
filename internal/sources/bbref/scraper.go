// Package bbref scrapes season standings from sports-reference style pages.
// It implements only the standings capability and is wired as a fallback
// behind the primary API sources.
package bbref

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/aali-22/askengine/internal/domain/league"
	"github.com/aali-22/askengine/internal/sources"
)

const sourceName = "bbref"

var teamHrefPattern = regexp.MustCompile(`/teams/([A-Z]{2,3})/`)

// Config controls which reference site is scraped.
type Config struct {
	// BaseURL is the site root, e.g. https://www.baseball-reference.com.
	BaseURL string
	// PagePattern builds the standings page path from a year, e.g.
	// "/leagues/majors/%d-standings.shtml".
	PagePattern string
	HTTPClient  *http.Client
}

// Scraper extracts standings rows from a reference site's HTML tables.
type Scraper struct {
	baseURL     string
	pagePattern string
	httpClient  *http.Client
}

// New constructs a standings scraper.
func New(cfg Config) *Scraper {
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	return &Scraper{
		baseURL:     strings.TrimSuffix(cfg.BaseURL, "/"),
		pagePattern: cfg.PagePattern,
		httpClient:  client,
	}
}

// Name identifies the source in logs and errors.
func (s *Scraper) Name() string {
	return sourceName
}

// GetLeagueStandings fetches and parses the standings page for a season.
func (s *Scraper) GetLeagueStandings(ctx context.Context, year int) (league.Standings, error) {
	pageURL := s.baseURL + fmt.Sprintf(s.pagePattern, year)
	key := fmt.Sprintf("standings %d", year)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return league.Standings{}, sources.Malformed(sourceName, key, err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return league.Standings{}, sources.Unavailable(sourceName, key, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return league.Standings{}, sources.NotFound(sourceName, key)
	default:
		return league.Standings{}, &sources.SourceError{Source: sourceName, Kind: sources.KindUnavailable, Key: key, StatusCode: resp.StatusCode}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return league.Standings{}, sources.Malformed(sourceName, key, err)
	}

	standings := parseStandings(doc, year)
	if len(standings.Rows) == 0 {
		return league.Standings{}, sources.Malformed(sourceName, key, fmt.Errorf("no standings rows found"))
	}
	return standings, nil
}

// parseStandings walks every standings table row. A row counts when its team
// cell links to a /teams/ABBR/ page and it carries at least two numeric cells
// (wins then losses).
func parseStandings(doc *goquery.Document, year int) league.Standings {
	seen := make(map[string]bool)
	var rows []league.StandingsRow

	doc.Find("table tbody tr").Each(func(_ int, tr *goquery.Selection) {
		link := tr.Find("a[href*='/teams/']").First()
		href, ok := link.Attr("href")
		if !ok {
			return
		}
		match := teamHrefPattern.FindStringSubmatch(href)
		if match == nil {
			return
		}
		abbr := match[1]
		if seen[abbr] {
			return
		}

		wins, losses, ok := firstTwoNumbers(tr)
		if !ok {
			return
		}

		seen[abbr] = true
		row := league.StandingsRow{
			Abbreviation: abbr,
			Name:         strings.TrimSpace(link.Text()),
			Wins:         wins,
			Losses:       losses,
		}
		if wins+losses > 0 {
			row.WinPct = float64(wins) / float64(wins+losses)
		}
		rows = append(rows, row)
	})

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].WinPct != rows[j].WinPct {
			return rows[i].WinPct > rows[j].WinPct
		}
		return rows[i].Wins > rows[j].Wins
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return league.Standings{Season: year, Rows: rows}
}

func firstTwoNumbers(tr *goquery.Selection) (int, int, bool) {
	var numbers []int
	tr.Find("td").EachWithBreak(func(_ int, td *goquery.Selection) bool {
		text := strings.TrimSpace(td.Text())
		n, err := strconv.Atoi(text)
		if err != nil {
			return true
		}
		numbers = append(numbers, n)
		return len(numbers) < 2
	})
	if len(numbers) < 2 {
		return 0, 0, false
	}
	return numbers[0], numbers[1], true
}
