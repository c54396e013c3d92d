package organize

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/aali-22/askengine/internal/domain"
	"github.com/aali-22/askengine/internal/domain/league"
	"github.com/aali-22/askengine/internal/domain/players"
	"github.com/aali-22/askengine/internal/domain/teams"
)

// StoredSeason is a season partition loaded back from disk.
type StoredSeason struct {
	Season    domain.Season
	Teams     map[string]teams.Record
	Standings *league.Standings
	Records   *league.Records
	Players   map[string]players.Record
}

// NewStoredSeason returns an empty season partition.
func NewStoredSeason(season domain.Season) *StoredSeason {
	return &StoredSeason{
		Season:  season,
		Teams:   make(map[string]teams.Record),
		Players: make(map[string]players.Record),
	}
}

// LoadSeason reads a season partition from disk. A missing partition returns
// an empty StoredSeason, not an error.
func (o *Organizer) LoadSeason(season domain.Season) (*StoredSeason, error) {
	stored := NewStoredSeason(season)
	seasonDir := SeasonDir(o.basePath, season)

	entries, err := os.ReadDir(seasonDir)
	if err != nil {
		if os.IsNotExist(err) {
			return stored, nil
		}
		return nil, err
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") || name == manifestName {
			continue
		}
		var record teams.Record
		if err := decodeFile(filepath.Join(seasonDir, name), &record); err != nil {
			return nil, err
		}
		stored.Teams[strings.TrimSuffix(name, ".json")] = record
	}

	var standings league.Standings
	if err := decodeFile(filepath.Join(seasonDir, "league", "standings.json"), &standings); err == nil {
		stored.Standings = &standings
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	var records league.Records
	if err := decodeFile(filepath.Join(seasonDir, "league", "records.json"), &records); err == nil {
		stored.Records = &records
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	playersDir := filepath.Join(seasonDir, "players")
	playerEntries, err := os.ReadDir(playersDir)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	for _, entry := range playerEntries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		var record players.Record
		if err := decodeFile(filepath.Join(playersDir, name), &record); err != nil {
			return nil, err
		}
		stored.Players[strings.TrimSuffix(name, ".json")] = record
	}

	return stored, nil
}

func decodeFile(path string, payload any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewDecoder(f).Decode(payload)
}
