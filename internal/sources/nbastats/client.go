// Package nbastats fetches season records from stats.nba.com and maps its
// tabular resultSets format to domain models.
package nbastats

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"sync"

	"github.com/aali-22/askengine/internal/domain"
	"github.com/aali-22/askengine/internal/domain/league"
	"github.com/aali-22/askengine/internal/domain/players"
	"github.com/aali-22/askengine/internal/domain/teams"
	"github.com/aali-22/askengine/internal/sources"
)

// Config controls how the client reaches the upstream API.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	// RecordCategories maps schema record categories to player-stats column
	// names. Empty entries fall back to the built-in mapping.
	RecordCategories map[string]string
	LeaderLimit      int
}

// Client fetches NBA season data and maps it to domain records.
type Client struct {
	baseURL          string
	httpClient       httpDoer
	recordCategories map[string]string
	leaderLimit      int

	mu          sync.Mutex
	standings   map[int]statsResponse
	playerStats map[string]statsResponse // keyed by year+season type
}

// NewClient constructs a stats.nba.com client with the provided configuration.
func NewClient(cfg Config) *Client {
	limit := cfg.LeaderLimit
	if limit <= 0 {
		limit = 5
	}
	return &Client{
		baseURL:          normalizeBaseURL(cfg.BaseURL),
		httpClient:       resolveHTTPClient(cfg.HTTPClient),
		recordCategories: resolveRecordCategories(cfg.RecordCategories),
		leaderLimit:      limit,
		standings:        make(map[int]statsResponse),
		playerStats:      make(map[string]statsResponse),
	}
}

// Name identifies the source in logs and errors.
func (c *Client) Name() string {
	return sourceName
}

// ListTeams derives the season's teams from the standings table.
func (c *Client) ListTeams(ctx context.Context, year int) ([]sources.TeamRef, error) {
	rows, err := c.standingsRows(ctx, year)
	if err != nil {
		return nil, err
	}
	refs := make([]sources.TeamRef, 0, len(rows))
	for _, r := range rows {
		teamID := r.int("TeamID")
		abbr, ok := teamAbbreviations[teamID]
		if !ok {
			continue
		}
		refs = append(refs, sources.TeamRef{
			Abbreviation: abbr,
			Name:         fmt.Sprintf("%s %s", r.str("TeamCity"), r.str("TeamName")),
			UpstreamID:   strconv.Itoa(teamID),
		})
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].Abbreviation < refs[j].Abbreviation })
	return refs, nil
}

// GetTeamRecord assembles a team's season record from standings, roster, and
// the league-wide player stats table.
func (c *Client) GetTeamRecord(ctx context.Context, year int, team sources.TeamRef) (teams.Record, error) {
	teamID, err := strconv.Atoi(team.UpstreamID)
	if err != nil {
		return teams.Record{}, sources.Malformed(sourceName, "team "+team.Abbreviation, fmt.Errorf("bad upstream id %q", team.UpstreamID))
	}

	record := teams.Record{
		Abbreviation: team.Abbreviation,
		Name:         team.Name,
		Season:       year,
	}

	standingsRows, err := c.standingsRows(ctx, year)
	if err != nil {
		return teams.Record{}, err
	}
	for _, r := range standingsRows {
		if r.int("TeamID") == teamID {
			record.Wins = r.int("WINS")
			record.Losses = r.int("LOSSES")
			break
		}
	}

	roster, err := c.fetchRoster(ctx, year, teamID, team.Abbreviation)
	if err != nil {
		return teams.Record{}, err
	}
	record.Roster = roster

	statRows, err := c.playerStatRows(ctx, year, seasonTypeRegular)
	if err != nil && !sources.IsNotFound(err) {
		return teams.Record{}, err
	}
	record.PlayerStats = make(map[string]domain.StatLine)
	teamStats := make(domain.StatLine)
	for _, r := range statRows {
		if r.int("TEAM_ID") != teamID {
			continue
		}
		line := statLineFromRow(r)
		record.PlayerStats[r.str("PLAYER_ID")] = line
		for _, key := range []string{"points", "rebounds", "assists"} {
			teamStats[key] += line[key]
		}
	}
	if len(teamStats) > 0 {
		record.Stats = teamStats
	}

	return record, nil
}

// GetLeagueStandings returns the season-wide ordered standings.
func (c *Client) GetLeagueStandings(ctx context.Context, year int) (league.Standings, error) {
	rows, err := c.standingsRows(ctx, year)
	if err != nil {
		return league.Standings{}, err
	}
	standings := league.Standings{Season: year}
	for _, r := range rows {
		abbr, ok := teamAbbreviations[r.int("TeamID")]
		if !ok {
			continue
		}
		standings.Rows = append(standings.Rows, league.StandingsRow{
			Abbreviation: abbr,
			Name:         fmt.Sprintf("%s %s", r.str("TeamCity"), r.str("TeamName")),
			Wins:         r.int("WINS"),
			Losses:       r.int("LOSSES"),
			WinPct:       r.f64("WinPCT"),
		})
	}
	if len(standings.Rows) == 0 {
		return league.Standings{}, sources.NotFound(sourceName, fmt.Sprintf("standings %d", year))
	}
	sort.Slice(standings.Rows, func(i, j int) bool {
		if standings.Rows[i].WinPct != standings.Rows[j].WinPct {
			return standings.Rows[i].WinPct > standings.Rows[j].WinPct
		}
		return standings.Rows[i].Wins > standings.Rows[j].Wins
	})
	for i := range standings.Rows {
		standings.Rows[i].Rank = i + 1
	}
	return standings, nil
}

// GetLeagueRecords computes season leaders per configured category from the
// league-wide player stats table.
func (c *Client) GetLeagueRecords(ctx context.Context, year int) (league.Records, error) {
	rows, err := c.playerStatRows(ctx, year, seasonTypeRegular)
	if err != nil {
		return league.Records{}, err
	}

	records := league.Records{
		Season:     year,
		Categories: make(map[string][]league.RecordHolder, len(c.recordCategories)),
	}
	for category, column := range c.recordCategories {
		records.Categories[category] = topPerformers(rows, column, c.leaderLimit)
	}
	if records.Completeness() == 0 {
		return league.Records{}, sources.NotFound(sourceName, fmt.Sprintf("records %d", year))
	}
	return records, nil
}

// GetPlayerRecord returns a player's aggregated season record.
func (c *Client) GetPlayerRecord(ctx context.Context, year int, playerID string) (players.Record, error) {
	record := players.Record{ID: playerID, Season: year}

	regularRows, err := c.playerStatRows(ctx, year, seasonTypeRegular)
	if err != nil && !sources.IsNotFound(err) {
		return players.Record{}, err
	}
	for _, r := range regularRows {
		if r.str("PLAYER_ID") != playerID {
			continue
		}
		record.Name = r.str("PLAYER_NAME")
		record.RegularSeason = statLineFromRow(r)
		if abbr := r.str("TEAM_ABBREVIATION"); abbr != "" {
			record.Stints = players.UnionStints(record.Stints, []players.Stint{{
				Team:  abbr,
				Games: r.int("GP"),
			}})
		}
	}

	playoffRows, err := c.playerStatRows(ctx, year, seasonTypePlayoffs)
	if err != nil && !sources.IsNotFound(err) {
		return players.Record{}, err
	}
	for _, r := range playoffRows {
		if r.str("PLAYER_ID") == playerID {
			record.Playoffs = statLineFromRow(r)
			break
		}
	}

	if len(record.RegularSeason) == 0 && len(record.Playoffs) == 0 {
		return players.Record{}, sources.NotFound(sourceName, fmt.Sprintf("player %s %d", playerID, year))
	}
	return record, nil
}

func (c *Client) standingsRows(ctx context.Context, year int) ([]row, error) {
	c.mu.Lock()
	cached, ok := c.standings[year]
	c.mu.Unlock()

	key := fmt.Sprintf("standings %d", year)
	if !ok {
		q := url.Values{
			"LeagueID":   {defaultLeagueID},
			"Season":     {seasonString(year)},
			"SeasonType": {seasonTypeRegular},
		}
		var resp statsResponse
		if err := c.getJSON(ctx, "/leaguestandingsv3", q, key, &resp); err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.standings[year] = resp
		c.mu.Unlock()
		cached = resp
	}

	set, found := cached.find("Standings")
	if !found {
		return nil, sources.Malformed(sourceName, key, fmt.Errorf("missing Standings result set"))
	}
	rows := set.rows()
	if len(rows) == 0 {
		return nil, sources.NotFound(sourceName, key)
	}
	return rows, nil
}

func (c *Client) playerStatRows(ctx context.Context, year int, seasonType string) ([]row, error) {
	cacheKey := fmt.Sprintf("%d/%s", year, seasonType)
	c.mu.Lock()
	cached, ok := c.playerStats[cacheKey]
	c.mu.Unlock()

	key := fmt.Sprintf("player stats %d %s", year, seasonType)
	if !ok {
		q := url.Values{
			"LeagueID":   {defaultLeagueID},
			"Season":     {seasonString(year)},
			"SeasonType": {seasonType},
			"PerMode":    {"Totals"},
		}
		var resp statsResponse
		if err := c.getJSON(ctx, "/leaguedashplayerstats", q, key, &resp); err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.playerStats[cacheKey] = resp
		c.mu.Unlock()
		cached = resp
	}

	set, found := cached.find("LeagueDashPlayerStats")
	if !found {
		set, found = cached.find("")
	}
	if !found {
		return nil, sources.Malformed(sourceName, key, fmt.Errorf("missing result set"))
	}
	rows := set.rows()
	if len(rows) == 0 {
		return nil, sources.NotFound(sourceName, key)
	}
	return rows, nil
}

func (c *Client) fetchRoster(ctx context.Context, year, teamID int, abbr string) ([]teams.PlayerRef, error) {
	q := url.Values{
		"TeamID":   {strconv.Itoa(teamID)},
		"Season":   {seasonString(year)},
		"LeagueID": {defaultLeagueID},
	}
	var resp statsResponse
	key := fmt.Sprintf("roster %s %d", abbr, year)
	if err := c.getJSON(ctx, "/commonteamroster", q, key, &resp); err != nil {
		return nil, err
	}
	set, found := resp.find("CommonTeamRoster")
	if !found {
		return nil, sources.Malformed(sourceName, key, fmt.Errorf("missing CommonTeamRoster result set"))
	}
	rows := set.rows()
	if len(rows) == 0 {
		return nil, sources.NotFound(sourceName, key)
	}
	refs := make([]teams.PlayerRef, 0, len(rows))
	for _, r := range rows {
		refs = append(refs, teams.PlayerRef{
			ID:           r.str("PLAYER_ID"),
			Name:         r.str("PLAYER"),
			Position:     r.str("POSITION"),
			JerseyNumber: r.str("NUM"),
		})
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].ID < refs[j].ID })
	return refs, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, key string, payload any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return sources.Malformed(sourceName, key, err)
	}
	req.URL.RawQuery = query.Encode()
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Referer", defaultReferer)
	req.Header.Set("Origin", defaultOrigin)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return sources.Unavailable(sourceName, key, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return sources.NotFound(sourceName, key)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return &sources.SourceError{Source: sourceName, Kind: sources.KindUnavailable, Key: key, StatusCode: resp.StatusCode}
	default:
		return &sources.SourceError{Source: sourceName, Kind: sources.KindMalformed, Key: key, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(payload); err != nil {
		return sources.Malformed(sourceName, key, err)
	}
	return nil
}
