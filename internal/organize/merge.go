package organize

import (
	"github.com/aali-22/askengine/internal/domain/league"
	"github.com/aali-22/askengine/internal/domain/players"
	"github.com/aali-22/askengine/internal/domain/teams"
)

// mergeTeam applies the completeness merge policy: the incoming record
// replaces the stored one only when strictly more complete, so a partial
// re-fetch never clobbers previously validated data.
func mergeTeam(stored teams.Record, hasStored bool, incoming teams.Record) (teams.Record, bool) {
	if !hasStored {
		return incoming, true
	}
	if incoming.Completeness() > stored.Completeness() {
		return incoming, true
	}
	return stored, false
}

// mergePlayer follows the same policy, except that stints union across both
// records: a trade seen by one fetch and not the other must not be lost.
func mergePlayer(stored players.Record, hasStored bool, incoming players.Record) (players.Record, bool) {
	if !hasStored {
		return incoming, true
	}
	merged := stored
	replaced := false
	if incoming.Completeness() > stored.Completeness() {
		merged = incoming
		replaced = true
	}
	combined := players.UnionStints(stored.Stints, incoming.Stints)
	if !stintsEqual(combined, merged.Stints) {
		merged.Stints = combined
		replaced = true
	}
	return merged, replaced
}

func stintsEqual(a, b []players.Stint) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func mergeStandings(stored *league.Standings, incoming *league.Standings) (*league.Standings, bool) {
	if incoming == nil {
		return stored, false
	}
	if stored == nil || incoming.Completeness() > stored.Completeness() {
		return incoming, true
	}
	return stored, false
}

func mergeRecords(stored *league.Records, incoming *league.Records) (*league.Records, bool) {
	if incoming == nil {
		return stored, false
	}
	if stored == nil || incoming.Completeness() > stored.Completeness() {
		return incoming, true
	}
	return stored, false
}
