package db

import (
	"encoding/json"
	"fmt"
)

// Filter is an equality condition on a top-level string field.
type Filter struct {
	Field string
	Value string
}

// Eq builds an equality filter.
func Eq(field, value string) Filter {
	return Filter{Field: field, Value: value}
}

// Match reports whether a JSON document satisfies every filter.
// Backends without server-side querying apply filters with it after the scan.
func Match(data []byte, filters []Filter) (bool, error) {
	if len(filters) == 0 {
		return true, nil
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return false, &Error{Op: OpDecode, Err: fmt.Errorf("filter document: %w", err)}
	}
	for _, f := range filters {
		v, ok := fields[f.Field].(string)
		if !ok || v != f.Value {
			return false, nil
		}
	}
	return true, nil
}
