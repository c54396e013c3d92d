package teams

import "github.com/aali-22/askengine/internal/domain"

// PlayerRef identifies a roster member without duplicating the full player record.
type PlayerRef struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Position     string `json:"position,omitempty"`
	JerseyNumber string `json:"jerseyNumber,omitempty"`
	Status       string `json:"status,omitempty"`
}

// Record is the canonical per-season team shape written to {TEAM}.json.
type Record struct {
	Abbreviation string                     `json:"abbreviation"`
	Name         string                     `json:"name"`
	Season       int                        `json:"season"`
	Wins         int                        `json:"wins"`
	Losses       int                        `json:"losses"`
	Stats        domain.StatLine            `json:"stats,omitempty"`
	Roster       []PlayerRef                `json:"roster,omitempty"`
	PlayerStats  map[string]domain.StatLine `json:"playerStats,omitempty"`
}

// Completeness counts the populated required sections of the record. The
// organizer only replaces a stored record with a strictly higher count.
func (r Record) Completeness() int {
	count := 0
	if r.Name != "" {
		count++
	}
	if r.Wins > 0 || r.Losses > 0 {
		count++
	}
	if len(r.Stats) > 0 {
		count++
	}
	if len(r.Roster) > 0 {
		count++
	}
	if len(r.PlayerStats) > 0 {
		count++
	}
	return count
}
