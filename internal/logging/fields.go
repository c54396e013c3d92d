package logging

// Common structured log field keys to keep logs searchable/consistent.
const (
	FieldService    = "service"
	FieldVersion    = "version"
	FieldSource     = "source"
	FieldSport      = "sport"
	FieldSeason     = "season"
	FieldKey        = "key"
	FieldTeam       = "team"
	FieldPlayer     = "player"
	FieldCount      = "count"
	FieldRunID      = "run_id"
	FieldErr        = "error"
	FieldDurationMS = "duration_ms"
)
