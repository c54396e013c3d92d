package mlbstats

const sourceName = "mlbstats"

type teamsResponse struct {
	Teams []apiTeam `json:"teams"`
}

type apiTeam struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	TeamName     string `json:"teamName"`
	Abbreviation string `json:"abbreviation"`
}

type rosterResponse struct {
	Roster []rosterEntry `json:"roster"`
}

type rosterEntry struct {
	Person       apiPerson   `json:"person"`
	JerseyNumber string      `json:"jerseyNumber"`
	Position     apiPosition `json:"position"`
	Status       apiStatus   `json:"status"`
}

type apiPerson struct {
	ID       int    `json:"id"`
	FullName string `json:"fullName"`
}

type apiPosition struct {
	Abbreviation string `json:"abbreviation"`
	Type         string `json:"type"`
}

type apiStatus struct {
	Description string `json:"description"`
}

type standingsResponse struct {
	Records []divisionRecord `json:"records"`
}

type divisionRecord struct {
	TeamRecords []teamStanding `json:"teamRecords"`
}

type teamStanding struct {
	Team               apiTeam `json:"team"`
	Wins               int     `json:"wins"`
	Losses             int     `json:"losses"`
	WinningPercentage  string  `json:"winningPercentage"`
	GamesBack          string  `json:"gamesBack"`
	DivisionGamesBack  string  `json:"divisionGamesBack"`
	WildCardGamesBack  string  `json:"wildCardGamesBack"`
	LeagueGamesBack    string  `json:"leagueGamesBack"`
	SportGamesBack     string  `json:"sportGamesBack"`
	DivisionLeader     bool    `json:"divisionLeader"`
	ClinchedPostseason bool    `json:"hasWildcard"`
}

type statsResponse struct {
	Stats []statGroup `json:"stats"`
}

type statGroup struct {
	Group  groupName   `json:"group"`
	Splits []statSplit `json:"splits"`
}

type groupName struct {
	DisplayName string `json:"displayName"`
}

type statSplit struct {
	Team   apiTeam        `json:"team"`
	Player apiPerson      `json:"player"`
	Stat   map[string]any `json:"stat"`
}

type leadersResponse struct {
	LeagueLeaders []leaderCategory `json:"leagueLeaders"`
}

type leaderCategory struct {
	LeaderCategory string        `json:"leaderCategory"`
	Leaders        []leaderEntry `json:"leaders"`
}

type leaderEntry struct {
	Rank   int       `json:"rank"`
	Person apiPerson `json:"person"`
	Team   apiTeam   `json:"team"`
	Value  string    `json:"value"`
}
