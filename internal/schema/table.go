package schema

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/aali-22/askengine/internal/domain"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// SportTable configures one sport's required artifacts and consistency bounds.
type SportTable struct {
	// Teams is the set of valid uppercase team abbreviations.
	Teams []string `yaml:"teams"`
	// RecordCategories lists the notable-record categories expected in
	// league/records.json (e.g. most_home_runs vs most_points).
	RecordCategories []string `yaml:"record_categories"`
	// RequiredTeamFields and RequiredPlayerFields name the record sections
	// the validator treats as mandatory.
	RequiredTeamFields   []string `yaml:"required_team_fields"`
	RequiredPlayerFields []string `yaml:"required_player_fields"`
	// GamesPerSeason is the full regular-season length; MinGamesPerSeason is
	// the lower bound used for shortened seasons (2020 MLB, lockout years).
	GamesPerSeason    int `yaml:"games_per_season"`
	MinGamesPerSeason int `yaml:"min_games_per_season"`
}

// SeasonRange bounds the covered years, inclusive.
type SeasonRange struct {
	Start int `yaml:"start"`
	End   int `yaml:"end"`
}

// Table is the full schema configuration for all covered sports.
type Table struct {
	Seasons SeasonRange           `yaml:"seasons"`
	Sports  map[string]SportTable `yaml:"sports"`
}

// Default returns the embedded schema table.
func Default() (*Table, error) {
	var t Table
	if err := yaml.Unmarshal(defaultsYAML, &t); err != nil {
		return nil, fmt.Errorf("parse embedded schema table: %w", err)
	}
	return &t, nil
}

// LoadFile reads a schema table from a YAML file.
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse schema table %s: %w", path, err)
	}
	return &t, nil
}

// Load returns the embedded defaults merged with an optional override file.
func Load(path string) (*Table, error) {
	table, err := Default()
	if err != nil {
		return nil, err
	}
	if path != "" {
		override, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		table.Merge(override)
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}

// Merge overlays non-zero fields from other onto the table.
func (t *Table) Merge(other *Table) {
	if other == nil {
		return
	}
	if other.Seasons.Start != 0 {
		t.Seasons.Start = other.Seasons.Start
	}
	if other.Seasons.End != 0 {
		t.Seasons.End = other.Seasons.End
	}
	if t.Sports == nil {
		t.Sports = make(map[string]SportTable)
	}
	for name, sport := range other.Sports {
		base := t.Sports[name]
		if len(sport.Teams) > 0 {
			base.Teams = sport.Teams
		}
		if len(sport.RecordCategories) > 0 {
			base.RecordCategories = sport.RecordCategories
		}
		if len(sport.RequiredTeamFields) > 0 {
			base.RequiredTeamFields = sport.RequiredTeamFields
		}
		if len(sport.RequiredPlayerFields) > 0 {
			base.RequiredPlayerFields = sport.RequiredPlayerFields
		}
		if sport.GamesPerSeason > 0 {
			base.GamesPerSeason = sport.GamesPerSeason
		}
		if sport.MinGamesPerSeason > 0 {
			base.MinGamesPerSeason = sport.MinGamesPerSeason
		}
		t.Sports[name] = base
	}
}

// Validate checks the table for internal consistency.
func (t *Table) Validate() error {
	if t.Seasons.Start <= 0 || t.Seasons.End < t.Seasons.Start {
		return fmt.Errorf("invalid season range %d-%d", t.Seasons.Start, t.Seasons.End)
	}
	if len(t.Sports) == 0 {
		return fmt.Errorf("no sports configured")
	}
	for name, sport := range t.Sports {
		if len(sport.Teams) == 0 {
			return fmt.Errorf("sport %s: no teams configured", name)
		}
		if sport.GamesPerSeason <= 0 {
			return fmt.Errorf("sport %s: games_per_season must be positive", name)
		}
		if sport.MinGamesPerSeason <= 0 || sport.MinGamesPerSeason > sport.GamesPerSeason {
			return fmt.Errorf("sport %s: min_games_per_season out of range", name)
		}
	}
	return nil
}

// Sport returns the configuration for one sport.
func (t *Table) Sport(sport domain.Sport) (SportTable, error) {
	st, ok := t.Sports[string(sport)]
	if !ok {
		return SportTable{}, fmt.Errorf("sport %s not configured", sport)
	}
	return st, nil
}

// SeasonValid reports whether the year falls inside the covered range.
func (t *Table) SeasonValid(year int) bool {
	return year >= t.Seasons.Start && year <= t.Seasons.End
}

// Years lists every covered year in ascending order.
func (t *Table) Years() []int {
	years := make([]int, 0, t.Seasons.End-t.Seasons.Start+1)
	for y := t.Seasons.Start; y <= t.Seasons.End; y++ {
		years = append(years, y)
	}
	return years
}

// RequiredFiles returns the statically known required artifacts for a season:
// one team file per configured abbreviation plus the two league files. Player
// keys are roster-derived and added by the validator once rosters exist.
func (t *Table) RequiredFiles(sport domain.Sport, year int) ([]FileKey, error) {
	if !t.SeasonValid(year) {
		return nil, fmt.Errorf("season %d outside covered range %d-%d", year, t.Seasons.Start, t.Seasons.End)
	}
	st, err := t.Sport(sport)
	if err != nil {
		return nil, err
	}
	abbrs := append([]string(nil), st.Teams...)
	sort.Strings(abbrs)
	keys := make([]FileKey, 0, len(abbrs)+2)
	for _, abbr := range abbrs {
		keys = append(keys, TeamKey(abbr))
	}
	keys = append(keys, StandingsKey(), RecordsKey())
	return keys, nil
}

// HasTeam reports whether the abbreviation belongs to the sport's team set.
func (st SportTable) HasTeam(abbr string) bool {
	for _, t := range st.Teams {
		if t == abbr {
			return true
		}
	}
	return false
}
