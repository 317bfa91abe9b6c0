// Package query derives filtered, sorted, paginated and aggregated views
// over record collections fetched from the claims backend.
package query

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Record is one claim, client or provider row as returned by the backend.
// The engine only ever reads from it.
type Record map[string]any

// dateLayouts lists the accepted date encodings, most precise first
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Lookup resolves a possibly dotted field path ("provider.name") into nested
// sub-records. The second result is false when any segment is missing or nil.
func (r Record) Lookup(field string) (any, bool) {
	if r == nil || field == "" {
		return nil, false
	}

	// Fast path for flat fields
	if v, ok := r[field]; ok {
		return v, v != nil
	}

	var current any = map[string]any(r)
	for _, part := range strings.Split(field, ".") {
		switch node := current.(type) {
		case map[string]any:
			current = node[part]
		case Record:
			current = node[part]
		default:
			return nil, false
		}
		if current == nil {
			return nil, false
		}
	}
	return current, true
}

// String returns the field as text, or "" when missing.
func (r Record) String(field string) string {
	v, ok := r.Lookup(field)
	if !ok {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case json.Number:
		return val.String()
	case time.Time:
		return val.Format(time.RFC3339)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}

// Number returns the field as a float64. Missing, non-numeric and non-finite
// values read as 0.
func (r Record) Number(field string) float64 {
	n, ok := r.NumberOK(field)
	if !ok {
		return 0
	}
	return n
}

// NumberOK is Number with a flag telling whether a usable value was present.
func (r Record) NumberOK(field string) (float64, bool) {
	v, ok := r.Lookup(field)
	if !ok {
		return 0, false
	}

	var n float64
	switch val := v.(type) {
	case float64:
		n = val
	case float32:
		n = float64(val)
	case int:
		n = float64(val)
	case int8:
		n = float64(val)
	case int16:
		n = float64(val)
	case int32:
		n = float64(val)
	case int64:
		n = float64(val)
	case uint:
		n = float64(val)
	case uint8:
		n = float64(val)
	case uint16:
		n = float64(val)
	case uint32:
		n = float64(val)
	case uint64:
		n = float64(val)
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return 0, false
		}
		n = f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0, false
		}
		n = f
	default:
		return 0, false
	}

	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// Time returns the field as a time. The flag is false when the field is
// missing or cannot be parsed as one of the accepted layouts.
func (r Record) Time(field string) (time.Time, bool) {
	v, ok := r.Lookup(field)
	if !ok {
		return time.Time{}, false
	}

	switch val := v.(type) {
	case time.Time:
		if val.IsZero() {
			return time.Time{}, false
		}
		return val, true
	case *time.Time:
		if val == nil || val.IsZero() {
			return time.Time{}, false
		}
		return *val, true
	case string:
		return ParseDate(val)
	default:
		return time.Time{}, false
	}
}

// FirstTime returns the first resolvable date among fields, in priority order.
func (r Record) FirstTime(fields []string) (time.Time, bool) {
	for _, field := range fields {
		if t, ok := r.Time(field); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseDate parses a date string in any of the accepted layouts.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
