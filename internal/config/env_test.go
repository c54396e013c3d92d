package config

import (
	"testing"
	"time"
)

func TestBoolEnvOrDefault(t *testing.T) {
	t.Setenv("ASKDATA_BOOL_TEST", "")
	if got := boolEnvOrDefault("ASKDATA_BOOL_TEST", true); !got {
		t.Fatalf("expected default true when unset")
	}

	cases := []struct {
		val      string
		expected bool
	}{
		{"true", true},
		{"TRUE", true},
		{"1", true},
		{"yes", true},
		{"false", false},
		{"FALSE", false},
		{"0", false},
		{"no", false},
		{"maybe", true}, // falls back to default on unknown
	}

	for _, tc := range cases {
		t.Setenv("ASKDATA_BOOL_TEST", tc.val)
		if got := boolEnvOrDefault("ASKDATA_BOOL_TEST", true); got != tc.expected {
			t.Fatalf("expected %v for %s, got %v", tc.expected, tc.val, got)
		}
	}
}

func TestDurationEnvOrDefault(t *testing.T) {
	t.Setenv("ASKDATA_DUR_TEST", "750ms")
	if got := durationEnvOrDefault("ASKDATA_DUR_TEST", time.Second); got != 750*time.Millisecond {
		t.Fatalf("expected 750ms, got %v", got)
	}

	t.Setenv("ASKDATA_DUR_TEST", "not-a-duration")
	if got := durationEnvOrDefault("ASKDATA_DUR_TEST", time.Second); got != time.Second {
		t.Fatalf("expected fallback on bad value, got %v", got)
	}
}

func TestListEnvOrDefault(t *testing.T) {
	t.Setenv("ASKDATA_LIST_TEST", "")
	if got := listEnvOrDefault("ASKDATA_LIST_TEST", []string{"a"}); len(got) != 1 || got[0] != "a" {
		t.Fatalf("expected default list when unset, got %v", got)
	}

	t.Setenv("ASKDATA_LIST_TEST", " one , two ,, three ")
	got := listEnvOrDefault("ASKDATA_LIST_TEST", nil)
	want := []string{"one", "two", "three"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}
