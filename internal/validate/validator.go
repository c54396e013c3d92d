// Package validate checks a season partition for completeness and internal
// consistency against the schema table.
package validate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aali-22/askengine/internal/domain/league"
	"github.com/aali-22/askengine/internal/domain/players"
	"github.com/aali-22/askengine/internal/domain/teams"
	"github.com/aali-22/askengine/internal/organize"
	"github.com/aali-22/askengine/internal/schema"
)

// Validator checks stored seasons against a schema table. The table, not the
// validator, decides which teams, fields, and record categories are required.
type Validator struct {
	table *schema.Table
}

func New(table *schema.Table) *Validator {
	return &Validator{table: table}
}

// ValidateSeason checks one stored season: every required artifact present,
// every required field populated, and the cross-file consistency checks.
func (v *Validator) ValidateSeason(stored *organize.StoredSeason) (*Report, error) {
	season := stored.Season
	sportTable, err := v.table.Sport(season.Sport)
	if err != nil {
		return nil, err
	}
	required, err := v.table.RequiredFiles(season.Sport, season.Year)
	if err != nil {
		return nil, err
	}

	report := &Report{Season: season}

	for _, key := range required {
		switch key.Kind {
		case schema.KindTeam:
			record, ok := stored.Teams[key.ID]
			status := FileStatus{Key: key, Present: ok}
			if ok {
				status.MissingFields = missingTeamFields(record, sportTable.RequiredTeamFields)
				if record.Abbreviation != key.ID {
					status.MissingFields = append(status.MissingFields,
						fmt.Sprintf("abbreviation %q does not match file key", record.Abbreviation))
				}
			}
			report.Files = append(report.Files, status)
		case schema.KindStandings:
			report.Files = append(report.Files, FileStatus{Key: key, Present: stored.Standings != nil})
		case schema.KindRecords:
			status := FileStatus{Key: key, Present: stored.Records != nil}
			if stored.Records != nil {
				status.MissingFields = missingRecordCategories(stored.Records.Categories, sportTable.RecordCategories)
			}
			report.Files = append(report.Files, status)
		}
	}

	// Player files are roster-derived: every ID any roster names must have
	// a record under players/.
	for _, id := range rosterIDs(stored) {
		record, ok := stored.Players[id]
		status := FileStatus{Key: schema.PlayerKey(id), Present: ok}
		if ok {
			status.MissingFields = missingPlayerFields(record, sportTable.RequiredPlayerFields)
			if record.ID != id {
				status.MissingFields = append(status.MissingFields,
					fmt.Sprintf("id %q does not match file key", record.ID))
			}
		}
		report.Files = append(report.Files, status)
	}

	report.Checks = append(report.Checks,
		v.checkStandingsCoverage(stored, sportTable),
		v.checkWinTotals(stored, sportTable),
	)
	return report, nil
}

// checkStandingsCoverage verifies the standings list exactly the configured
// team set, with no duplicates.
func (v *Validator) checkStandingsCoverage(stored *organize.StoredSeason, st schema.SportTable) CheckResult {
	result := CheckResult{Name: "standings_coverage"}
	if stored.Standings == nil {
		result.Detail = "standings missing"
		return result
	}

	seen := make(map[string]int, len(st.Teams))
	for _, row := range stored.Standings.Rows {
		seen[row.Abbreviation]++
	}

	var problems []string
	for _, abbr := range st.Teams {
		switch seen[abbr] {
		case 0:
			problems = append(problems, "missing "+abbr)
		case 1:
		default:
			problems = append(problems, "duplicate "+abbr)
		}
	}
	for abbr := range seen {
		if !st.HasTeam(abbr) {
			problems = append(problems, "unknown "+abbr)
		}
	}

	if len(problems) > 0 {
		sort.Strings(problems)
		result.Detail = strings.Join(problems, ", ")
		return result
	}
	result.Passed = true
	return result
}

// checkWinTotals verifies that league-wide wins fall inside the bounds the
// season length implies. Every game produces exactly one win, so totals
// range from teams*min_games/2 (shortened season) to teams*games/2.
func (v *Validator) checkWinTotals(stored *organize.StoredSeason, st schema.SportTable) CheckResult {
	result := CheckResult{Name: "win_totals"}
	if stored.Standings == nil {
		result.Detail = "standings missing"
		return result
	}

	totalWins := 0
	for _, row := range stored.Standings.Rows {
		totalWins += row.Wins
	}
	teamCount := len(st.Teams)
	low := teamCount * st.MinGamesPerSeason / 2
	high := teamCount * st.GamesPerSeason / 2
	if totalWins < low || totalWins > high {
		result.Detail = fmt.Sprintf("league wins %d outside [%d, %d]", totalWins, low, high)
		return result
	}
	result.Passed = true
	return result
}

func missingTeamFields(record teams.Record, required []string) []string {
	var missing []string
	for _, field := range required {
		if !teamFieldPopulated(record, field) {
			missing = append(missing, field)
		}
	}
	return missing
}

func teamFieldPopulated(record teams.Record, field string) bool {
	switch field {
	case "name":
		return record.Name != ""
	case "win_loss":
		return record.Wins > 0 || record.Losses > 0
	case "stats":
		return len(record.Stats) > 0
	case "roster":
		return len(record.Roster) > 0
	case "player_stats":
		return len(record.PlayerStats) > 0
	default:
		return true
	}
}

func missingPlayerFields(record players.Record, required []string) []string {
	var missing []string
	for _, field := range required {
		if !playerFieldPopulated(record, field) {
			missing = append(missing, field)
		}
	}
	return missing
}

func playerFieldPopulated(record players.Record, field string) bool {
	switch field {
	case "name":
		return record.Name != ""
	case "regular_season":
		return len(record.RegularSeason) > 0
	case "playoffs":
		return len(record.Playoffs) > 0
	case "stints":
		return len(record.Stints) > 0
	default:
		return true
	}
}

func missingRecordCategories(categories map[string][]league.RecordHolder, required []string) []string {
	var missing []string
	for _, category := range required {
		if len(categories[category]) == 0 {
			missing = append(missing, "category "+category)
		}
	}
	return missing
}

func rosterIDs(stored *organize.StoredSeason) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, team := range stored.Teams {
		for _, ref := range team.Roster {
			if ref.ID == "" || seen[ref.ID] {
				continue
			}
			seen[ref.ID] = true
			ids = append(ids, ref.ID)
		}
	}
	sort.Strings(ids)
	return ids
}
