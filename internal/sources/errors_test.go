package sources

import (
	"errors"
	"fmt"
	"testing"
)

func TestSourceErrorMessage(t *testing.T) {
	err := &SourceError{Source: "mlb", Kind: KindUnavailable, Key: "team:WSN", StatusCode: 503, Err: errors.New("boom")}

	want := "mlb: unavailable team:WSN (status=503): boom"
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
}

func TestAsSourceErrorUnwrapsWrapped(t *testing.T) {
	inner := NotFound("nba", "player:77")
	wrapped := fmt.Errorf("fetch failed: %w", inner)

	se, ok := AsSourceError(wrapped)
	if !ok {
		t.Fatalf("expected wrapped SourceError to unwrap")
	}
	if se.Kind != KindNotFound || se.Key != "player:77" {
		t.Fatalf("unexpected unwrapped error: %+v", se)
	}
}

func TestIsRetryable(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"unavailable", Unavailable("mlb", "team:WSN", errors.New("timeout")), true},
		{"sentinel", fmt.Errorf("fetch: %w", ErrSourceUnavailable), true},
		{"not found", NotFound("mlb", "team:WSN"), false},
		{"malformed", Malformed("mlb", "team:WSN", errors.New("bad json")), false},
		{"plain", errors.New("boom"), false},
	}
	for _, tc := range cases {
		if got := IsRetryable(tc.err); got != tc.want {
			t.Fatalf("%s: expected retryable=%v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(NotFound("mlb", "player:12")) {
		t.Fatalf("expected not-found error to report true")
	}
	if IsNotFound(Unavailable("mlb", "player:12", errors.New("x"))) {
		t.Fatalf("expected unavailable error to report false")
	}
}
