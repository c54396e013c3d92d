package domain

import "testing"

func TestParseSport(t *testing.T) {
	cases := []struct {
		raw     string
		want    Sport
		wantErr bool
	}{
		{"baseball", SportBaseball, false},
		{"MLB", SportBaseball, false},
		{" nba ", SportBasketball, false},
		{"basketball", SportBasketball, false},
		{"cricket", "", true},
		{"", "", true},
	}
	for _, tc := range cases {
		got, err := ParseSport(tc.raw)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseSport(%q): expected error", tc.raw)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("ParseSport(%q) = %v, %v; want %v", tc.raw, got, err, tc.want)
		}
	}
}

func TestSportValid(t *testing.T) {
	if !SportBaseball.Valid() || !SportBasketball.Valid() {
		t.Fatalf("covered sports must be valid")
	}
	if Sport("hockey").Valid() {
		t.Fatalf("uncovered sport must be invalid")
	}
}

func TestSeasonString(t *testing.T) {
	s := Season{Sport: SportBasketball, Year: 2023}
	if got := s.String(); got != "basketball/2023" {
		t.Fatalf("unexpected season string %q", got)
	}
}
