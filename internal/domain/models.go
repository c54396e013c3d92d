// Package domain defines the canonical season-keyed record shapes shared by
// the fetch, organize, and validate stages.
package domain

import (
	"fmt"
	"strings"
)

// Sport identifies a covered competition.
type Sport string

const (
	SportBaseball   Sport = "baseball"
	SportBasketball Sport = "basketball"
)

// Valid reports whether the sport is one of the covered competitions.
func (s Sport) Valid() bool {
	return s == SportBaseball || s == SportBasketball
}

// ParseSport normalizes a user-supplied sport name.
func ParseSport(raw string) (Sport, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "baseball", "mlb":
		return SportBaseball, nil
	case "basketball", "nba":
		return SportBasketball, nil
	default:
		return "", fmt.Errorf("unknown sport %q", raw)
	}
}

// Season identifies one top-level data partition.
type Season struct {
	Sport Sport `json:"sport"`
	Year  int   `json:"year"`
}

func (s Season) String() string {
	return fmt.Sprintf("%s/%d", s.Sport, s.Year)
}

// StatLine holds named numeric statistics for a team or player.
type StatLine map[string]float64
