package players

import (
	"sort"

	"github.com/aali-22/askengine/internal/domain"
)

// Stint records one stretch of a season spent with a single team. A traded
// player keeps one record per season with a stint per team.
type Stint struct {
	Team  string `json:"team"`
	Games int    `json:"games,omitempty"`
}

// Record is the canonical per-season player shape written to players/{id}.json.
type Record struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Season        int             `json:"season"`
	Position      string          `json:"position,omitempty"`
	RegularSeason domain.StatLine `json:"regularSeason,omitempty"`
	Playoffs      domain.StatLine `json:"playoffs,omitempty"`
	Awards        []string        `json:"awards,omitempty"`
	Milestones    []string        `json:"milestones,omitempty"`
	Stints        []Stint         `json:"stints,omitempty"`
}

// Completeness counts the populated required sections of the record.
func (r Record) Completeness() int {
	count := 0
	if r.Name != "" {
		count++
	}
	if len(r.RegularSeason) > 0 {
		count++
	}
	if len(r.Playoffs) > 0 {
		count++
	}
	if len(r.Awards) > 0 || len(r.Milestones) > 0 {
		count++
	}
	if len(r.Stints) > 0 {
		count++
	}
	return count
}

// UnionStints merges two stint lists, keyed by team, keeping the higher game
// count when both sides carry the same team.
func UnionStints(a, b []Stint) []Stint {
	byTeam := make(map[string]Stint, len(a)+len(b))
	for _, s := range a {
		byTeam[s.Team] = s
	}
	for _, s := range b {
		if existing, ok := byTeam[s.Team]; !ok || s.Games > existing.Games {
			byTeam[s.Team] = s
		}
	}
	merged := make([]Stint, 0, len(byTeam))
	for _, s := range byTeam {
		merged = append(merged, s)
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].Team < merged[j].Team })
	return merged
}
