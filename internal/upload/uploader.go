// Package upload publishes validated season partitions to an object store.
package upload

import (
	"context"

	"github.com/aali-22/askengine/internal/domain"
	"github.com/aali-22/askengine/internal/validate"
)

// Stats summarizes one upload pass.
type Stats struct {
	Uploaded int
	Skipped  int
	Failed   int
}

// Add folds another pass into the running totals.
func (s *Stats) Add(other Stats) {
	s.Uploaded += other.Uploaded
	s.Skipped += other.Skipped
	s.Failed += other.Failed
}

// Uploader publishes one season partition. The validation report gates the
// upload: incomplete seasons are skipped unless the implementation is forced.
type Uploader interface {
	Upload(ctx context.Context, season domain.Season, report *validate.Report) (Stats, error)
}
