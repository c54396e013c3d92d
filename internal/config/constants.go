package config

import "time"

const (
	envDataDir     = "ASKDATA_DATA_DIR"
	envSchemaPath  = "ASKDATA_SCHEMA"
	envSource      = "ASKDATA_SOURCE"
	envWorkers     = "ASKDATA_FETCH_WORKERS"
	envParallel    = "ASKDATA_PARALLEL_SEASONS"
	envMaxAttempts = "ASKDATA_FETCH_ATTEMPTS"
	envBackoff     = "ASKDATA_FETCH_BACKOFF"
	envRate        = "ASKDATA_FETCH_INTERVAL"

	envLogLevel  = "ASKDATA_LOG_LEVEL"
	envLogFormat = "ASKDATA_LOG_FORMAT"

	envMetricsPort  = "METRICS_PORT"
	envMetricsOn    = "METRICS_ENABLED"
	envOtelEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService  = "OTEL_SERVICE_NAME"
	envOtelInsecure = "OTEL_EXPORTER_OTLP_INSECURE"

	defaultDataDir = "data"
	defaultSource  = "fixture"
	defaultWorkers = 4
	// Seasons are independent partitions, so a small parallel sweep is safe;
	// upstream quotas are governed by the per-call interval instead.
	defaultParallel    = 2
	defaultMaxAttempts = 3
	defaultBackoff     = 200 * Duration(time.Millisecond)
	// Conservative default spacing between source calls; the stats APIs
	// throttle aggressive clients.
	defaultRate = 500 * Duration(time.Millisecond)

	defaultLogLevel  = "info"
	defaultLogFormat = "text"

	defaultMetricsPort = "9090"
)
