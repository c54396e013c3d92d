package league

// StandingsRow is one team's position in the season-wide ranking.
type StandingsRow struct {
	Rank         int     `json:"rank"`
	Abbreviation string  `json:"abbreviation"`
	Name         string  `json:"name,omitempty"`
	Wins         int     `json:"wins"`
	Losses       int     `json:"losses"`
	WinPct       float64 `json:"winPct"`
	GamesBack    float64 `json:"gamesBack,omitempty"`
}

// Standings is the payload written to league/standings.json.
type Standings struct {
	Season int            `json:"season"`
	Rows   []StandingsRow `json:"standings"`
}

// RecordHolder is one entry under a notable-record category.
type RecordHolder struct {
	Holder string  `json:"holder"`
	Team   string  `json:"team,omitempty"`
	Value  float64 `json:"value"`
	Detail string  `json:"detail,omitempty"`
}

// Records is the payload written to league/records.json. Categories are
// sport-specific schema configuration, not fixed here.
type Records struct {
	Season     int                       `json:"season"`
	Categories map[string][]RecordHolder `json:"records"`
}

// Completeness counts populated standings content for merge comparisons.
func (s Standings) Completeness() int {
	return len(s.Rows)
}

// Completeness counts populated record categories for merge comparisons.
func (r Records) Completeness() int {
	count := 0
	for _, holders := range r.Categories {
		if len(holders) > 0 {
			count++
		}
	}
	return count
}
