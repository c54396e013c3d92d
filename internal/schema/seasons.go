package schema

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseSeasonRange parses a CLI season argument: a single year ("2021") or an
// inclusive range ("2010-2025"). Returns the years in ascending order.
func ParseSeasonRange(raw string) ([]int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("season required")
	}
	if start, end, ok := strings.Cut(raw, "-"); ok {
		from, err := strconv.Atoi(strings.TrimSpace(start))
		if err != nil {
			return nil, fmt.Errorf("invalid season range %q", raw)
		}
		to, err := strconv.Atoi(strings.TrimSpace(end))
		if err != nil {
			return nil, fmt.Errorf("invalid season range %q", raw)
		}
		if to < from {
			return nil, fmt.Errorf("season range %q ends before it starts", raw)
		}
		years := make([]int, 0, to-from+1)
		for y := from; y <= to; y++ {
			years = append(years, y)
		}
		return years, nil
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid season %q", raw)
	}
	return []int{year}, nil
}
