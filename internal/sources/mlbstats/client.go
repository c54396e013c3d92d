// Package mlbstats fetches season records from the MLB stats API and maps
// them to domain models.
package mlbstats

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	"github.com/aali-22/askengine/internal/domain/league"
	"github.com/aali-22/askengine/internal/domain/players"
	"github.com/aali-22/askengine/internal/domain/teams"
	"github.com/aali-22/askengine/internal/sources"
)

// Config controls how the client reaches the upstream API.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	// RecordCategories maps schema record categories to statsapi leader
	// category names. Empty entries fall back to the built-in mapping.
	RecordCategories map[string]string
	LeaderLimit      int
}

// Client fetches MLB season data and maps it to domain records.
type Client struct {
	baseURL          string
	httpClient       httpDoer
	recordCategories map[string]string
	leaderLimit      int

	mu             sync.Mutex
	teamCache      map[int][]apiTeam
	standingsCache map[int]standingsResponse
}

// NewClient constructs an MLB stats client with the provided configuration.
func NewClient(cfg Config) *Client {
	limit := cfg.LeaderLimit
	if limit <= 0 {
		limit = defaultLeaderLimit
	}
	return &Client{
		baseURL:          normalizeBaseURL(cfg.BaseURL),
		httpClient:       resolveHTTPClient(cfg.HTTPClient),
		recordCategories: resolveRecordCategories(cfg.RecordCategories),
		leaderLimit:      limit,
		teamCache:        make(map[int][]apiTeam),
		standingsCache:   make(map[int]standingsResponse),
	}
}

// Name identifies the source in logs and errors.
func (c *Client) Name() string {
	return sourceName
}

// ListTeams returns the league's teams for the given season.
func (c *Client) ListTeams(ctx context.Context, year int) ([]sources.TeamRef, error) {
	apiTeams, err := c.loadTeams(ctx, year)
	if err != nil {
		return nil, err
	}
	refs := make([]sources.TeamRef, 0, len(apiTeams))
	for _, t := range apiTeams {
		refs = append(refs, mapTeamRef(t))
	}
	return refs, nil
}

// GetTeamRecord assembles a team's season record: win/loss from standings,
// roster, and per-player stat lines.
func (c *Client) GetTeamRecord(ctx context.Context, year int, team sources.TeamRef) (teams.Record, error) {
	teamID, err := strconv.Atoi(team.UpstreamID)
	if err != nil {
		return teams.Record{}, sources.Malformed(sourceName, fmt.Sprintf("team %s", team.Abbreviation), fmt.Errorf("bad upstream id %q", team.UpstreamID))
	}

	record := teams.Record{
		Abbreviation: team.Abbreviation,
		Name:         team.Name,
		Season:       year,
	}

	standings, err := c.loadStandings(ctx, year)
	if err == nil {
		if ts, ok := findTeamStanding(standings, teamID); ok {
			record.Wins = ts.Wins
			record.Losses = ts.Losses
		}
	} else if !sources.IsNotFound(err) {
		return teams.Record{}, err
	}

	var roster rosterResponse
	key := fmt.Sprintf("roster %s %d", team.Abbreviation, year)
	q := url.Values{"season": {strconv.Itoa(year)}}
	if err := c.getJSON(ctx, fmt.Sprintf("/teams/%d/roster/Active", teamID), q, key, &roster); err != nil {
		return teams.Record{}, err
	}
	if len(roster.Roster) == 0 {
		return teams.Record{}, sources.NotFound(sourceName, key)
	}
	record.Roster = mapRoster(roster)

	record.PlayerStats = make(map[string]domainStatMap, 0)
	for _, entry := range roster.Roster {
		line, err := c.playerSeasonLine(ctx, entry.Person.ID, year, entry.Position.Type)
		if err != nil {
			if sources.IsNotFound(err) {
				continue
			}
			return teams.Record{}, err
		}
		record.PlayerStats[strconv.Itoa(entry.Person.ID)] = line
	}
	record.Stats = aggregateTeamStats(record.PlayerStats)

	return record, nil
}

// GetLeagueStandings returns the season-wide ordered standings.
func (c *Client) GetLeagueStandings(ctx context.Context, year int) (league.Standings, error) {
	resp, err := c.loadStandings(ctx, year)
	if err != nil {
		return league.Standings{}, err
	}
	abbrs, err := c.abbreviations(ctx, year)
	if err != nil {
		return league.Standings{}, err
	}
	standings := mapStandings(resp, year, abbrs)
	if len(standings.Rows) == 0 {
		return league.Standings{}, sources.NotFound(sourceName, fmt.Sprintf("standings %d", year))
	}
	return standings, nil
}

// GetLeagueRecords returns season leaders for each configured record category.
func (c *Client) GetLeagueRecords(ctx context.Context, year int) (league.Records, error) {
	records := league.Records{
		Season:     year,
		Categories: make(map[string][]league.RecordHolder, len(c.recordCategories)),
	}
	for category, leaderCat := range c.recordCategories {
		q := url.Values{
			"leaderCategories": {leaderCat},
			"season":           {strconv.Itoa(year)},
			"sportId":          {sportIDBaseball},
			"limit":            {strconv.Itoa(c.leaderLimit)},
		}
		var resp leadersResponse
		key := fmt.Sprintf("leaders %s %d", leaderCat, year)
		if err := c.getJSON(ctx, "/stats/leaders", q, key, &resp); err != nil {
			return league.Records{}, err
		}
		records.Categories[category] = mapLeaders(resp)
	}
	if records.Completeness() == 0 {
		return league.Records{}, sources.NotFound(sourceName, fmt.Sprintf("records %d", year))
	}
	return records, nil
}

// GetPlayerRecord returns a player's aggregated season record, including
// playoff stats and per-team stints.
func (c *Client) GetPlayerRecord(ctx context.Context, year int, playerID string) (players.Record, error) {
	id, err := strconv.Atoi(playerID)
	if err != nil {
		return players.Record{}, sources.Malformed(sourceName, "player "+playerID, fmt.Errorf("bad player id"))
	}

	record := players.Record{
		ID:     playerID,
		Season: year,
	}

	regular, stints, name, err := c.playerSplits(ctx, id, year, "R")
	if err != nil && !sources.IsNotFound(err) {
		return players.Record{}, err
	}
	record.RegularSeason = regular
	record.Stints = stints
	record.Name = name

	playoffs, _, _, err := c.playerSplits(ctx, id, year, "P")
	if err != nil && !sources.IsNotFound(err) {
		return players.Record{}, err
	}
	record.Playoffs = playoffs

	if len(record.RegularSeason) == 0 && len(record.Playoffs) == 0 {
		return players.Record{}, sources.NotFound(sourceName, fmt.Sprintf("player %s %d", playerID, year))
	}
	return record, nil
}

func (c *Client) loadTeams(ctx context.Context, year int) ([]apiTeam, error) {
	c.mu.Lock()
	cached, ok := c.teamCache[year]
	c.mu.Unlock()
	if ok {
		return cached, nil
	}

	q := url.Values{
		"season":  {strconv.Itoa(year)},
		"sportId": {sportIDBaseball},
	}
	var resp teamsResponse
	if err := c.getJSON(ctx, "/teams", q, fmt.Sprintf("teams %d", year), &resp); err != nil {
		return nil, err
	}
	if len(resp.Teams) == 0 {
		return nil, sources.NotFound(sourceName, fmt.Sprintf("teams %d", year))
	}

	c.mu.Lock()
	c.teamCache[year] = resp.Teams
	c.mu.Unlock()
	return resp.Teams, nil
}

func (c *Client) loadStandings(ctx context.Context, year int) (standingsResponse, error) {
	c.mu.Lock()
	cached, ok := c.standingsCache[year]
	c.mu.Unlock()
	if ok {
		return cached, nil
	}

	q := url.Values{
		"leagueId": {leagueIDs},
		"season":   {strconv.Itoa(year)},
	}
	var resp standingsResponse
	if err := c.getJSON(ctx, "/standings", q, fmt.Sprintf("standings %d", year), &resp); err != nil {
		return standingsResponse{}, err
	}

	c.mu.Lock()
	c.standingsCache[year] = resp
	c.mu.Unlock()
	return resp, nil
}

func (c *Client) abbreviations(ctx context.Context, year int) (map[int]string, error) {
	apiTeams, err := c.loadTeams(ctx, year)
	if err != nil {
		return nil, err
	}
	abbrs := make(map[int]string, len(apiTeams))
	for _, t := range apiTeams {
		abbrs[t.ID] = normalizeAbbr(t.Abbreviation)
	}
	return abbrs, nil
}

func (c *Client) playerSeasonLine(ctx context.Context, playerID, year int, positionType string) (domainStatMap, error) {
	group := "hitting"
	fields := hittingFields
	if positionType == "Pitcher" {
		group = "pitching"
		fields = pitchingFields
	}
	resp, err := c.fetchPlayerStats(ctx, playerID, year, group, "R")
	if err != nil {
		return nil, err
	}
	line := statLineFromSplits(resp, fields)
	if len(line) == 0 {
		return nil, sources.NotFound(sourceName, fmt.Sprintf("player %d %s %d", playerID, group, year))
	}
	return line, nil
}

func (c *Client) playerSplits(ctx context.Context, playerID, year int, gameType string) (domainStatMap, []players.Stint, string, error) {
	combined := make(domainStatMap)
	var stints []players.Stint
	var name string

	for _, group := range []struct {
		name   string
		fields map[string]string
	}{
		{"hitting", hittingFields},
		{"pitching", pitchingFields},
	} {
		resp, err := c.fetchPlayerStats(ctx, playerID, year, group.name, gameType)
		if err != nil {
			if sources.IsNotFound(err) {
				continue
			}
			return nil, nil, "", err
		}
		for _, sg := range resp.Stats {
			for _, split := range sg.Splits {
				mergeStatLine(combined, mapStatFields(split.Stat, group.fields))
				if split.Player.FullName != "" {
					name = split.Player.FullName
				}
				if gameType == "R" && split.Team.ID != 0 {
					stints = appendStint(stints, split)
				}
			}
		}
	}

	if len(combined) == 0 {
		return nil, nil, "", sources.NotFound(sourceName, fmt.Sprintf("player %d %s %d", playerID, gameType, year))
	}
	return combined, players.UnionStints(stints, nil), name, nil
}

func (c *Client) fetchPlayerStats(ctx context.Context, playerID, year int, group, gameType string) (statsResponse, error) {
	q := url.Values{
		"stats":    {"season"},
		"group":    {group},
		"season":   {strconv.Itoa(year)},
		"gameType": {gameType},
	}
	var resp statsResponse
	key := fmt.Sprintf("player %d %s %s %d", playerID, group, gameType, year)
	if err := c.getJSON(ctx, fmt.Sprintf("/people/%d/stats", playerID), q, key, &resp); err != nil {
		return statsResponse{}, err
	}
	if len(resp.Stats) == 0 {
		return statsResponse{}, sources.NotFound(sourceName, key)
	}
	return resp, nil
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
