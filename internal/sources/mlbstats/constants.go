package mlbstats

import "time"

const (
	defaultBaseURL     = "https://statsapi.mlb.com/api/v1"
	defaultHTTPTimeout = 15 * time.Second
	defaultUserAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	defaultReferer     = "https://www.mlb.com/"
	defaultLeaderLimit = 5

	sportIDBaseball = "1"
	leagueIDs       = "103,104"
)

// defaultRecordCategories maps schema record categories to statsapi leader
// category names. Override via Config.RecordCategories.
var defaultRecordCategories = map[string]string{
	"most_home_runs":  "homeRuns",
	"most_rbi":        "runsBattedIn",
	"most_hits":       "hits",
	"best_era":        "earnedRunAverage",
	"most_strikeouts": "strikeouts",
}
