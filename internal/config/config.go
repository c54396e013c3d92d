// Package config reads runtime configuration from environment variables with
// sensible defaults. Command-line flags may override individual fields.
package config

// Config holds runtime configuration for the pipeline.
type Config struct {
	// DataDir is the root of the organized data tree.
	DataDir string
	// SchemaPath optionally points at a YAML schema table overriding the
	// embedded defaults.
	SchemaPath string
	// Source selects the upstream: mlb, nba, bbref, or fixture.
	Source string

	// Workers bounds concurrent artifact fetches within a season; Parallel
	// bounds concurrent seasons in a sweep.
	Workers  int
	Parallel int

	// MaxAttempts and Backoff drive the retry decorator; Rate spaces
	// consecutive source calls.
	MaxAttempts int
	Backoff     Duration
	Rate        Duration

	LogLevel  string
	LogFormat string

	Sources SourcesConfig
	Upload  UploadConfig
	Metrics MetricsConfig
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		DataDir:     envOrDefault(envDataDir, defaultDataDir),
		SchemaPath:  envOrDefault(envSchemaPath, ""),
		Source:      envOrDefault(envSource, defaultSource),
		Workers:     intEnvOrDefault(envWorkers, defaultWorkers),
		Parallel:    intEnvOrDefault(envParallel, defaultParallel),
		MaxAttempts: intEnvOrDefault(envMaxAttempts, defaultMaxAttempts),
		Backoff:     durationEnvOrDefault(envBackoff, defaultBackoff),
		Rate:        durationEnvOrDefault(envRate, defaultRate),
		LogLevel:    envOrDefault(envLogLevel, defaultLogLevel),
		LogFormat:   envOrDefault(envLogFormat, defaultLogFormat),
		Sources:     loadSources(),
		Upload:      loadUpload(),
		Metrics:     loadMetrics(),
	}
}
