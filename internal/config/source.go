package config

const (
	envMLBBaseURL    = "ASKDATA_MLB_BASE_URL"
	envNBABaseURL    = "ASKDATA_NBA_BASE_URL"
	envBBRefBaseURL  = "ASKDATA_BBREF_BASE_URL"
	envBBRefPattern  = "ASKDATA_BBREF_PAGE_PATTERN"
	envBBRefFallback = "ASKDATA_BBREF_FALLBACK"
)

// SourcesConfig controls how each upstream source is reached. Empty base
// URLs fall back to each client's built-in default.
type SourcesConfig struct {
	MLBBaseURL string
	NBABaseURL string

	BBRefBaseURL     string
	BBRefPagePattern string
	// BBRefFallback wires the reference-site scraper as a standings
	// fallback behind the primary source.
	BBRefFallback bool
}

func loadSources() SourcesConfig {
	return SourcesConfig{
		MLBBaseURL:       envOrDefault(envMLBBaseURL, ""),
		NBABaseURL:       envOrDefault(envNBABaseURL, ""),
		BBRefBaseURL:     envOrDefault(envBBRefBaseURL, ""),
		BBRefPagePattern: envOrDefault(envBBRefPattern, ""),
		BBRefFallback:    boolEnvOrDefault(envBBRefFallback, false),
	}
}
