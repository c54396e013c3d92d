package sources

import (
	"context"
	"log/slog"
	"time"

	"github.com/aali-22/askengine/internal/domain/league"
	"github.com/aali-22/askengine/internal/domain/players"
	"github.com/aali-22/askengine/internal/domain/teams"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
)

type backoffFunc func(attempt int) time.Duration

// retryingSource wraps a Source with retry/backoff behavior. Only retryable
// errors are retried; not-found and malformed responses fail immediately.
type retryingSource struct {
	inner       Source
	logger      *slog.Logger
	maxAttempts int
	backoffFn   backoffFunc
}

// NewRetryingSource wraps the given source with retries. If maxAttempts or
// backoff are <= 0, defaults are used.
func NewRetryingSource(inner Source, logger *slog.Logger, maxAttempts int, backoff time.Duration) Source {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if backoff <= 0 {
		backoff = defaultBackoff
	}
	return &retryingSource{
		inner:       inner,
		logger:      logger,
		maxAttempts: maxAttempts,
		backoffFn: func(attempt int) time.Duration {
			return time.Duration(attempt) * backoff
		},
	}
}

func (r *retryingSource) Name() string {
	return r.inner.Name()
}

func (r *retryingSource) ListTeams(ctx context.Context, year int) ([]TeamRef, error) {
	return retry(ctx, r, "list teams", func() ([]TeamRef, error) {
		return r.inner.ListTeams(ctx, year)
	})
}

func (r *retryingSource) GetTeamRecord(ctx context.Context, year int, team TeamRef) (teams.Record, error) {
	return retry(ctx, r, "team record", func() (teams.Record, error) {
		return r.inner.GetTeamRecord(ctx, year, team)
	})
}

func (r *retryingSource) GetLeagueStandings(ctx context.Context, year int) (league.Standings, error) {
	return retry(ctx, r, "standings", func() (league.Standings, error) {
		return r.inner.GetLeagueStandings(ctx, year)
	})
}

func (r *retryingSource) GetLeagueRecords(ctx context.Context, year int) (league.Records, error) {
	return retry(ctx, r, "records", func() (league.Records, error) {
		return r.inner.GetLeagueRecords(ctx, year)
	})
}

func (r *retryingSource) GetPlayerRecord(ctx context.Context, year int, playerID string) (players.Record, error) {
	return retry(ctx, r, "player record", func() (players.Record, error) {
		return r.inner.GetPlayerRecord(ctx, year, playerID)
	})
}

func retry[T any](ctx context.Context, r *retryingSource, op string, fn func() (T, error)) (T, error) {
	var (
		zero    T
		lastErr error
	)

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !IsRetryable(err) || attempt == r.maxAttempts {
			break
		}

		logWithSource(ctx, r.logger, slog.LevelWarn, r.Name(), "source fetch retry",
			"op", op, "attempt", attempt, "max_attempts", r.maxAttempts, "err", err)

		// backoff with context awareness
		delay := r.backoffFn(attempt)
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(delay):
		}
	}

	return zero, lastErr
}
