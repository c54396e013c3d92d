package mlbstats

import "testing"

func TestToFloatToleratesUpstreamFormats(t *testing.T) {
	cases := []struct {
		raw  string
		want float64
	}{
		{".298", 0.298},
		{"2.92", 2.92},
		{"-", 0},
		{"", 0},
		{" 17.5 ", 17.5},
		{"garbage", 0},
	}
	for _, tc := range cases {
		if got := toFloat(tc.raw); got != tc.want {
			t.Fatalf("toFloat(%q): expected %v, got %v", tc.raw, tc.want, got)
		}
	}
}

func TestMergeStatLineSumsCountersKeepsRates(t *testing.T) {
	dst := domainStatMap{"hits": 100, "avg": 0.310}
	mergeStatLine(dst, domainStatMap{"hits": 50, "avg": 0.290})

	if dst["hits"] != 150 {
		t.Fatalf("expected counting stat summed to 150, got %v", dst["hits"])
	}
	if dst["avg"] != 0.290 {
		t.Fatalf("expected rate stat replaced with 0.290, got %v", dst["avg"])
	}
}

func TestMapStatFieldsSkipsUnknownKeys(t *testing.T) {
	line := mapStatFields(map[string]any{
		"homeRuns":    float64(42),
		"unmappedKey": float64(9),
	}, hittingFields)

	if line["home_runs"] != 42 {
		t.Fatalf("expected home_runs 42, got %v", line["home_runs"])
	}
	if _, ok := line["unmappedKey"]; ok {
		t.Fatalf("expected unmapped key dropped")
	}
}

func TestAggregateTeamStatsEmptyInput(t *testing.T) {
	if got := aggregateTeamStats(nil); got != nil {
		t.Fatalf("expected nil aggregate for empty input, got %v", got)
	}
}
