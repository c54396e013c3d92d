package nbastats

import "testing"

func TestSeasonString(t *testing.T) {
	cases := []struct {
		year int
		want string
	}{
		{2023, "2023-24"},
		{2009, "2009-10"},
		{1999, "1999-00"},
		{2010, "2010-11"},
	}
	for _, tc := range cases {
		if got := seasonString(tc.year); got != tc.want {
			t.Fatalf("seasonString(%d): expected %s, got %s", tc.year, tc.want, got)
		}
	}
}

func TestTopPerformersSkipsZeroValues(t *testing.T) {
	set := resultSet{
		Headers: []string{"PLAYER_NAME", "TEAM_ABBREVIATION", "TD3"},
		RowSet: [][]any{
			{"Nikola Jokic", "DEN", float64(25)},
			{"Role Player", "DEN", float64(0)},
			{"Russell Westbrook", "LAC", float64(11)},
		},
	}

	holders := topPerformers(set.rows(), "TD3", 5)
	if len(holders) != 2 {
		t.Fatalf("expected zero-value rows dropped, got %+v", holders)
	}
	if holders[0].Holder != "Nikola Jokic" || holders[0].Value != 25 {
		t.Fatalf("unexpected leader: %+v", holders[0])
	}
}

func TestTopPerformersHonorsLimit(t *testing.T) {
	set := resultSet{
		Headers: []string{"PLAYER_NAME", "TEAM_ABBREVIATION", "PTS"},
		RowSet: [][]any{
			{"A", "AAA", float64(100)},
			{"B", "BBB", float64(90)},
			{"C", "CCC", float64(80)},
		},
	}

	holders := topPerformers(set.rows(), "PTS", 2)
	if len(holders) != 2 || holders[1].Holder != "B" {
		t.Fatalf("expected top 2 by points, got %+v", holders)
	}
}

func TestRowAccessorsHandleMissingColumns(t *testing.T) {
	set := resultSet{
		Headers: []string{"PLAYER_NAME"},
		RowSet:  [][]any{{"Somebody"}},
	}
	r := set.rows()[0]

	if got := r.str("MISSING"); got != "" {
		t.Fatalf("expected empty string for missing column, got %q", got)
	}
	if got := r.f64("MISSING"); got != 0 {
		t.Fatalf("expected 0 for missing column, got %v", got)
	}
	if line := statLineFromRow(r); len(line) != 0 {
		t.Fatalf("expected empty stat line without stat columns, got %+v", line)
	}
}
