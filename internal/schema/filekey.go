// Package schema defines the required file set for a season and the per-sport
// configuration table that drives it.
package schema

import (
	"fmt"
	"path"
)

// Kind classifies a logical artifact within a season partition.
type Kind string

const (
	KindTeam      Kind = "team"
	KindStandings Kind = "standings"
	KindRecords   Kind = "records"
	KindPlayer    Kind = "player"
)

// FileKey identifies one logical artifact: a team file, a league file, or a
// player file. League files carry an empty ID.
type FileKey struct {
	Kind Kind   `json:"kind"`
	ID   string `json:"id,omitempty"`
}

// TeamKey returns the key for a team file.
func TeamKey(abbr string) FileKey {
	return FileKey{Kind: KindTeam, ID: abbr}
}

// PlayerKey returns the key for a player file.
func PlayerKey(id string) FileKey {
	return FileKey{Kind: KindPlayer, ID: id}
}

// StandingsKey returns the key for the league standings file.
func StandingsKey() FileKey {
	return FileKey{Kind: KindStandings}
}

// RecordsKey returns the key for the league notable-records file.
func RecordsKey() FileKey {
	return FileKey{Kind: KindRecords}
}

// Path returns the artifact location relative to its season directory.
func (k FileKey) Path() string {
	switch k.Kind {
	case KindTeam:
		return k.ID + ".json"
	case KindStandings:
		return path.Join("league", "standings.json")
	case KindRecords:
		return path.Join("league", "records.json")
	case KindPlayer:
		return path.Join("players", k.ID+".json")
	default:
		return k.ID + ".json"
	}
}

func (k FileKey) String() string {
	if k.ID == "" {
		return string(k.Kind)
	}
	return fmt.Sprintf("%s:%s", k.Kind, k.ID)
}
