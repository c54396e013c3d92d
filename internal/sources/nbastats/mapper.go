package nbastats

import (
	"fmt"
	"sort"

	"github.com/aali-22/askengine/internal/domain"
	"github.com/aali-22/askengine/internal/domain/league"
)

// seasonString converts a season year to the upstream "2023-24" format.
func seasonString(year int) string {
	return fmt.Sprintf("%d-%02d", year, (year+1)%100)
}

func statLineFromRow(r row) domain.StatLine {
	line := make(domain.StatLine, len(playerStatColumns))
	for column, key := range playerStatColumns {
		if _, ok := r.value(column); ok {
			line[key] = r.f64(column)
		}
	}
	return line
}

// topPerformers ranks the player table by one column, descending.
func topPerformers(rows []row, column string, limit int) []league.RecordHolder {
	type entry struct {
		name  string
		team  string
		value float64
	}
	entries := make([]entry, 0, len(rows))
	for _, r := range rows {
		if _, ok := r.value(column); !ok {
			continue
		}
		entries = append(entries, entry{
			name:  r.str("PLAYER_NAME"),
			team:  r.str("TEAM_ABBREVIATION"),
			value: r.f64(column),
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].value > entries[j].value })
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	holders := make([]league.RecordHolder, 0, len(entries))
	for _, e := range entries {
		if e.value == 0 {
			continue
		}
		holders = append(holders, league.RecordHolder{
			Holder: e.name,
			Team:   e.team,
			Value:  e.value,
		})
	}
	return holders
}
