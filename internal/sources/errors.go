package sources

import (
	"errors"
	"fmt"
)

// ErrSourceUnavailable signals that a source cannot serve any request.
var ErrSourceUnavailable = errors.New("source unavailable")

// ErrorKind classifies a source failure for retry and gap-recording decisions.
type ErrorKind string

const (
	// KindUnavailable covers transient network/site failures; retryable.
	KindUnavailable ErrorKind = "unavailable"
	// KindNotFound means the season/team/player is absent upstream; recorded
	// as a known gap, never retried.
	KindNotFound ErrorKind = "not_found"
	// KindMalformed means the upstream response did not match the expected
	// shape; surfaced for manual review, never retried.
	KindMalformed ErrorKind = "malformed"
)

// SourceError captures a classified failure from an upstream source.
type SourceError struct {
	Source     string
	Kind       ErrorKind
	Key        string
	StatusCode int
	Err        error
}

func (e *SourceError) Error() string {
	msg := fmt.Sprintf("%s: %s %s", e.Source, e.Kind, e.Key)
	if e.StatusCode > 0 {
		msg = fmt.Sprintf("%s (status=%d)", msg, e.StatusCode)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// Unavailable builds a retryable transient failure.
func Unavailable(source, key string, err error) *SourceError {
	return &SourceError{Source: source, Kind: KindUnavailable, Key: key, Err: err}
}

// NotFound builds a permanent absent-upstream failure.
func NotFound(source, key string) *SourceError {
	return &SourceError{Source: source, Kind: KindNotFound, Key: key}
}

// Malformed builds a permanent schema-mismatch failure.
func Malformed(source, key string, err error) *SourceError {
	return &SourceError{Source: source, Kind: KindMalformed, Key: key, Err: err}
}

// AsSourceError attempts to unwrap an error into a SourceError.
func AsSourceError(err error) (*SourceError, bool) {
	var se *SourceError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// IsNotFound reports whether the error is a permanent absent-upstream gap.
func IsNotFound(err error) bool {
	if se, ok := AsSourceError(err); ok {
		return se.Kind == KindNotFound
	}
	return false
}

// IsRetryable reports whether retrying the operation could succeed.
func IsRetryable(err error) bool {
	if errors.Is(err, ErrSourceUnavailable) {
		return true
	}
	if se, ok := AsSourceError(err); ok {
		return se.Kind == KindUnavailable
	}
	return false
}
