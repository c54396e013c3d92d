package mlbstats

import (
	"sort"
	"strconv"
	"strings"

	"github.com/aali-22/askengine/internal/domain"
	"github.com/aali-22/askengine/internal/domain/league"
	"github.com/aali-22/askengine/internal/domain/players"
	"github.com/aali-22/askengine/internal/domain/teams"
	"github.com/aali-22/askengine/internal/sources"
)

type domainStatMap = domain.StatLine

// hittingFields maps statsapi hitting stat names to canonical stat keys.
var hittingFields = map[string]string{
	"gamesPlayed":    "games",
	"atBats":         "at_bats",
	"runs":           "runs",
	"hits":           "hits",
	"doubles":        "doubles",
	"triples":        "triples",
	"homeRuns":       "home_runs",
	"rbi":            "rbi",
	"avg":            "avg",
	"obp":            "obp",
	"slg":            "slg",
	"ops":            "ops",
	"stolenBases":    "stolen_bases",
	"caughtStealing": "caught_stealing",
	"baseOnBalls":    "walks",
	"strikeOuts":     "strikeouts",
}

// pitchingFields maps statsapi pitching stat names to canonical stat keys,
// distinct from the hitting keys so a two-way player's lines never collide.
var pitchingFields = map[string]string{
	"wins":           "pitching_wins",
	"losses":         "pitching_losses",
	"era":            "era",
	"whip":           "whip",
	"inningsPitched": "innings_pitched",
	"strikeOuts":     "pitching_strikeouts",
	"baseOnBalls":    "pitching_walks",
	"saves":          "saves",
	"gamesPitched":   "games_pitched",
}

// teamAggregateKeys are the hitting counters summed into the team stat line.
var teamAggregateKeys = []string{"runs", "hits", "home_runs", "rbi", "stolen_bases", "walks", "strikeouts"}

func mapTeamRef(t apiTeam) sources.TeamRef {
	return sources.TeamRef{
		Abbreviation: normalizeAbbr(t.Abbreviation),
		Name:         t.Name,
		UpstreamID:   strconv.Itoa(t.ID),
	}
}

func normalizeAbbr(abbr string) string {
	return strings.ToUpper(strings.TrimSpace(abbr))
}

func mapRoster(resp rosterResponse) []teams.PlayerRef {
	refs := make([]teams.PlayerRef, 0, len(resp.Roster))
	for _, entry := range resp.Roster {
		refs = append(refs, teams.PlayerRef{
			ID:           strconv.Itoa(entry.Person.ID),
			Name:         entry.Person.FullName,
			Position:     entry.Position.Abbreviation,
			JerseyNumber: entry.JerseyNumber,
			Status:       entry.Status.Description,
		})
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].ID < refs[j].ID })
	return refs
}

func mapStandings(resp standingsResponse, year int, abbrs map[int]string) league.Standings {
	var rows []league.StandingsRow
	for _, division := range resp.Records {
		for _, ts := range division.TeamRecords {
			row := league.StandingsRow{
				Abbreviation: abbrs[ts.Team.ID],
				Name:         ts.Team.Name,
				Wins:         ts.Wins,
				Losses:       ts.Losses,
				WinPct:       toFloat(ts.WinningPercentage),
				GamesBack:    toFloat(ts.GamesBack),
			}
			if row.Abbreviation == "" {
				row.Abbreviation = normalizeAbbr(ts.Team.Abbreviation)
			}
			rows = append(rows, row)
		}
	}
	// League-wide ranking by win percentage, wins breaking ties.
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

func mapLeaders(resp leadersResponse) []league.RecordHolder {
	var holders []league.RecordHolder
	for _, category := range resp.LeagueLeaders {
		for _, leader := range category.Leaders {
			holders = append(holders, league.RecordHolder{
				Holder: leader.Person.FullName,
				Team:   leader.Team.Name,
				Value:  toFloat(leader.Value),
			})
		}
	}
	return holders
}

func findTeamStanding(resp standingsResponse, teamID int) (teamStanding, bool) {
	for _, division := range resp.Records {
		for _, ts := range division.TeamRecords {
			if ts.Team.ID == teamID {
				return ts, true
			}
		}
	}
	return teamStanding{}, false
}

func statLineFromSplits(resp statsResponse, fields map[string]string) domain.StatLine {
	line := make(domain.StatLine)
	for _, group := range resp.Stats {
		for _, split := range group.Splits {
			mergeStatLine(line, mapStatFields(split.Stat, fields))
		}
	}
	return line
}

func mapStatFields(raw map[string]any, fields map[string]string) domain.StatLine {
	line := make(domain.StatLine, len(fields))
	for upstream, key := range fields {
		if value, ok := raw[upstream]; ok {
			line[key] = anyToFloat(value)
		}
	}
	return line
}

// mergeStatLine sums counting stats across splits; rate stats keep the last
// observed value (statsapi emits a season-total split first).
func mergeStatLine(dst, src domain.StatLine) {
	for key, value := range src {
		switch key {
		case "avg", "obp", "slg", "ops", "era", "whip":
			dst[key] = value
		default:
			dst[key] += value
		}
	}
}

func aggregateTeamStats(playerStats map[string]domain.StatLine) domain.StatLine {
	if len(playerStats) == 0 {
		return nil
	}
	stats := make(domain.StatLine, len(teamAggregateKeys))
	for _, line := range playerStats {
		for _, key := range teamAggregateKeys {
			stats[key] += line[key]
		}
	}
	return stats
}

func appendStint(stints []players.Stint, split statSplit) []players.Stint {
	team := normalizeAbbr(split.Team.Abbreviation)
	if team == "" {
		team = split.Team.Name
	}
	games := 0
	if value, ok := split.Stat["gamesPlayed"]; ok {
		games = int(anyToFloat(value))
	}
	return append(stints, players.Stint{Team: team, Games: games})
}

func anyToFloat(value any) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		return toFloat(v)
	default:
		return 0
	}
}

// toFloat parses upstream numeric strings, tolerating MLB formats like
// ".298" and "-" for zero games back.
func toFloat(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "-" {
		return 0
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return f
}
