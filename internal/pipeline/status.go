package pipeline

import (
	"sync"
	"time"
)

// Status tracks the health of one season's pipeline runs.
type Status struct {
	Season              string    `json:"season"`
	ConsecutiveFailures int       `json:"consecutiveFailures"`
	LastError           string    `json:"lastError,omitempty"`
	LastAttempt         time.Time `json:"lastAttempt,omitempty"`
	LastSuccess         time.Time `json:"lastSuccess,omitempty"`
	Completeness        float64   `json:"completeness"`
}

// IsReady reports whether the season has at least one successful run and is
// not currently failing.
func (s Status) IsReady() bool {
	return !s.LastSuccess.IsZero() && s.ConsecutiveFailures == 0
}

// StatusStore holds per-season run status, safe for concurrent use.
type StatusStore struct {
	mu       sync.RWMutex
	statuses map[string]Status
}

func NewStatusStore() *StatusStore {
	return &StatusStore{statuses: make(map[string]Status)}
}

// Get returns the status for a season. Unknown seasons return a zero status.
func (s *StatusStore) Get(season string) Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	status := s.statuses[season]
	status.Season = season
	return status
}

// All returns a copy of every tracked status.
func (s *StatusStore) All() []Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := make([]Status, 0, len(s.statuses))
	for season, status := range s.statuses {
		status.Season = season
		all = append(all, status)
	}
	return all
}

func (s *StatusStore) recordSuccess(season string, completeness float64) {
	now := time.Now().UTC()
	s.mu.Lock()
	defer s.mu.Unlock()
	status := s.statuses[season]
	status.ConsecutiveFailures = 0
	status.LastError = ""
	status.LastAttempt = now
	status.LastSuccess = now
	status.Completeness = completeness
	s.statuses[season] = status
}

func (s *StatusStore) recordFailure(season string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	status := s.statuses[season]
	status.ConsecutiveFailures++
	status.LastError = err.Error()
	status.LastAttempt = time.Now().UTC()
	s.statuses[season] = status
}
