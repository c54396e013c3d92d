package validate

import (
	"fmt"

	"github.com/aali-22/askengine/internal/domain"
	"github.com/aali-22/askengine/internal/schema"
)

// FileStatus is the per-artifact outcome of a validation pass.
type FileStatus struct {
	Key           schema.FileKey `json:"key"`
	Present       bool           `json:"present"`
	MissingFields []string       `json:"missingFields,omitempty"`
}

// OK reports whether the artifact is present with all required fields.
func (s FileStatus) OK() bool {
	return s.Present && len(s.MissingFields) == 0
}

// CheckResult is the outcome of one cross-file consistency check.
type CheckResult struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail,omitempty"`
}

// Report is the full outcome of validating one season partition.
type Report struct {
	Season domain.Season `json:"season"`
	Files  []FileStatus  `json:"files"`
	Checks []CheckResult `json:"checks"`
}

// Complete reports whether every artifact is present and well formed and
// every consistency check passed. Only complete seasons are published.
func (r *Report) Complete() bool {
	for _, f := range r.Files {
		if !f.OK() {
			return false
		}
	}
	for _, c := range r.Checks {
		if !c.Passed {
			return false
		}
	}
	return true
}

// MissingFiles lists the keys of absent artifacts.
func (r *Report) MissingFiles() []schema.FileKey {
	var missing []schema.FileKey
	for _, f := range r.Files {
		if !f.Present {
			missing = append(missing, f.Key)
		}
	}
	return missing
}

// Completeness returns the fraction of artifacts that are present and well
// formed, as a percentage. An empty report counts as zero.
func (r *Report) Completeness() float64 {
	if len(r.Files) == 0 {
		return 0
	}
	ok := 0
	for _, f := range r.Files {
		if f.OK() {
			ok++
		}
	}
	return 100 * float64(ok) / float64(len(r.Files))
}

// Summary renders a one-line human summary.
func (r *Report) Summary() string {
	failedChecks := 0
	for _, c := range r.Checks {
		if !c.Passed {
			failedChecks++
		}
	}
	return fmt.Sprintf("%s: %.1f%% complete, %d files, %d missing, %d failed checks",
		r.Season, r.Completeness(), len(r.Files), len(r.MissingFiles()), failedChecks)
}
