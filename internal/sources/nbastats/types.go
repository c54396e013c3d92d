package nbastats

import (
	"fmt"
	"strconv"
	"strings"
)

const sourceName = "nbastats"

// statsResponse is the tabular envelope every stats.nba.com endpoint returns:
// named result sets with parallel header and row arrays.
type statsResponse struct {
	ResultSets []resultSet `json:"resultSets"`
}

type resultSet struct {
	Name    string   `json:"name"`
	Headers []string `json:"headers"`
	RowSet  [][]any  `json:"rowSet"`
}

// find returns the result set with the given name, or the first set when the
// name is empty.
func (r statsResponse) find(name string) (resultSet, bool) {
	for _, set := range r.ResultSets {
		if name == "" || strings.EqualFold(set.Name, name) {
			return set, true
		}
	}
	return resultSet{}, false
}

// rows materializes the set into column-addressable rows.
func (s resultSet) rows() []row {
	idx := make(map[string]int, len(s.Headers))
	for i, h := range s.Headers {
		idx[h] = i
	}
	out := make([]row, 0, len(s.RowSet))
	for _, values := range s.RowSet {
		out = append(out, row{idx: idx, values: values})
	}
	return out
}

type row struct {
	idx    map[string]int
	values []any
}

func (r row) value(col string) (any, bool) {
	i, ok := r.idx[col]
	if !ok || i >= len(r.values) {
		return nil, false
	}
	return r.values[i], true
}

func (r row) str(col string) string {
	v, ok := r.value(col)
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", s)
	}
}

func (r row) f64(col string) float64 {
	v, ok := r.value(col)
	if !ok || v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case string:
		f, _ := strconv.ParseFloat(n, 64)
		return f
	default:
		return 0
	}
}

func (r row) int(col string) int {
	return int(r.f64(col))
}
