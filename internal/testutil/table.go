package testutil

import "github.com/aali-22/askengine/internal/schema"

// SmallTable returns a two-team schema table so tests stay readable. The
// sport name mirrors the production tables; game counts are tiny on purpose.
func SmallTable(sport string, teams ...string) *schema.Table {
	if len(teams) == 0 {
		teams = []string{"AAA", "BBB"}
	}
	return &schema.Table{
		Seasons: schema.SeasonRange{Start: 2010, End: 2025},
		Sports: map[string]schema.SportTable{
			sport: {
				Teams:                teams,
				RecordCategories:     []string{"most_hits"},
				RequiredTeamFields:   []string{"name", "win_loss", "stats", "roster"},
				RequiredPlayerFields: []string{"name", "regular_season", "stints"},
				GamesPerSeason:       10,
				MinGamesPerSeason:    4,
			},
		},
	}
}
