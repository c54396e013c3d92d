package metrics

import (
	"sync"
	"time"
)

type sourceStats struct {
	calls           int
	errors          int
	notFound        int
	lastCallLatency time.Duration
}

type pipelineStats struct {
	runs     int
	failures int
	gaps     int
}

type uploadStats struct {
	files  int
	failed int
}

// Recorder captures lightweight, in-memory metrics about source calls,
// pipeline runs, and uploads. It is intentionally simple so it can be swapped
// for a real backend later.
type Recorder struct {
	mu       sync.Mutex
	sources  map[string]*sourceStats
	pipeline pipelineStats
	uploads  uploadStats
	otel     *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		sources: make(map[string]*sourceStats),
		otel:    otel,
	}
}

// RecordSourceCall increments counters for a source call and stores the last
// observed latency.
func (r *Recorder) RecordSourceCall(source string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	stats := r.ensureStats(source)
	r.mu.Lock()
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordSourceCall(source, duration, err)
	}
}

// RecordGap tracks a known-missing artifact recorded during a fetch.
func (r *Recorder) RecordGap(source string) {
	if r == nil {
		return
	}
	stats := r.ensureStats(source)
	r.mu.Lock()
	stats.notFound++
	r.pipeline.gaps++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordGap(source)
	}
}

// RecordPipelineRun tracks one season pipeline run.
func (r *Recorder) RecordPipelineRun(sport string, duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.pipeline.runs++
	if err != nil {
		r.pipeline.failures++
	}
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordPipelineRun(sport, duration, err)
	}
}

// RecordUpload tracks uploaded and failed files for one publish.
func (r *Recorder) RecordUpload(uploaded, failed int) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.uploads.files += uploaded
	r.uploads.failed += failed
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordUpload(uploaded, failed)
	}
}

// SourceCalls returns the total calls recorded for a source.
func (r *Recorder) SourceCalls(source string) int {
	return r.Snapshot(source).Calls
}

// SourceErrors returns the total failed calls recorded for a source.
func (r *Recorder) SourceErrors(source string) int {
	return r.Snapshot(source).Errors
}

// Gaps returns the known-missing artifact count recorded for a source.
func (r *Recorder) Gaps(source string) int {
	return r.Snapshot(source).NotFound
}

// PipelineRuns returns the total pipeline runs recorded.
func (r *Recorder) PipelineRuns() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipeline.runs
}

// UploadedFiles returns the total uploaded file count recorded.
func (r *Recorder) UploadedFiles() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.uploads.files
}

// Snapshot is a copy of the current stats for one source.
type Snapshot struct {
	Calls           int
	Errors          int
	NotFound        int
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(source string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stats, ok := r.sources[source]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		NotFound:        stats.notFound,
		LastCallLatency: stats.lastCallLatency,
	}
}

func (r *Recorder) ensureStats(source string) *sourceStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.sources[source]
	if !ok {
		stats = &sourceStats{}
		r.sources[source] = stats
	}
	return stats
}
