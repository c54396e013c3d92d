package nbastats

import "time"

const (
	defaultBaseURL     = "https://stats.nba.com/stats"
	defaultHTTPTimeout = 30 * time.Second
	defaultUserAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	defaultReferer     = "https://www.nba.com/"
	defaultOrigin      = "https://www.nba.com"
	defaultLeagueID    = "00"

	seasonTypeRegular  = "Regular Season"
	seasonTypePlayoffs = "Playoffs"
)

// teamAbbreviations maps stats.nba.com team IDs to canonical abbreviations.
var teamAbbreviations = map[int]string{
	1610612737: "ATL",
	1610612738: "BOS",
	1610612751: "BKN",
	1610612766: "CHA",
	1610612741: "CHI",
	1610612739: "CLE",
	1610612742: "DAL",
	1610612743: "DEN",
	1610612765: "DET",
	1610612744: "GSW",
	1610612745: "HOU",
	1610612754: "IND",
	1610612746: "LAC",
	1610612747: "LAL",
	1610612763: "MEM",
	1610612748: "MIA",
	1610612749: "MIL",
	1610612750: "MIN",
	1610612740: "NOP",
	1610612752: "NYK",
	1610612760: "OKC",
	1610612753: "ORL",
	1610612755: "PHI",
	1610612756: "PHX",
	1610612757: "POR",
	1610612758: "SAC",
	1610612759: "SAS",
	1610612761: "TOR",
	1610612762: "UTA",
	1610612764: "WAS",
}

// defaultRecordCategories maps schema record categories to player-stats
// column names. Override via Config.RecordCategories.
var defaultRecordCategories = map[string]string{
	"most_points":     "PTS",
	"most_rebounds":   "REB",
	"most_assists":    "AST",
	"triple_doubles":  "TD3",
	"scoring_average": "PTS",
}

// playerStatColumns maps player-stats columns to canonical stat keys.
var playerStatColumns = map[string]string{
	"GP":      "games",
	"MIN":     "minutes",
	"PTS":     "points",
	"REB":     "rebounds",
	"AST":     "assists",
	"STL":     "steals",
	"BLK":     "blocks",
	"TOV":     "turnovers",
	"FG_PCT":  "fg_pct",
	"FG3_PCT": "fg3_pct",
	"FT_PCT":  "ft_pct",
	"TD3":     "triple_doubles",
}
