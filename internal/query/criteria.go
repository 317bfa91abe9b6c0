package query

import (
	"strings"
	"time"
)

// Criteria holds the independent, optional constraints of a filter. The zero
// value passes every record.
type Criteria struct {
	Search    string            `json:"search,omitempty"`
	Category  string            `json:"category,omitempty"`
	Status    string            `json:"status,omitempty"`
	DateFrom  *time.Time        `json:"date_from,omitempty"`
	DateTo    *time.Time        `json:"date_to,omitempty"`
	AmountMin *float64          `json:"amount_min,omitempty"`
	AmountMax *float64          `json:"amount_max,omitempty"`
	Fields    map[string]string `json:"fields,omitempty"`
}

// isOpen reports whether an equality value imposes no constraint.
func isOpen(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || strings.EqualFold(v, AllValues)
}

// ActiveCount returns how many filter dimensions currently narrow the result.
// A date or amount range counts once however many bounds it has.
func (c Criteria) ActiveCount() int {
	n := 0
	if strings.TrimSpace(c.Search) != "" {
		n++
	}
	if !isOpen(c.Category) {
		n++
	}
	if !isOpen(c.Status) {
		n++
	}
	if c.DateFrom != nil || c.DateTo != nil {
		n++
	}
	if c.AmountMin != nil || c.AmountMax != nil {
		n++
	}
	for _, text := range c.Fields {
		if strings.TrimSpace(text) != "" {
			n++
		}
	}
	return n
}

// IsIdentity reports whether the criteria pass every record.
func (c Criteria) IsIdentity() bool {
	return c.ActiveCount() == 0
}

// Clone returns a deep copy so state transitions never share pointers.
func (c Criteria) Clone() Criteria {
	out := c
	if c.DateFrom != nil {
		t := *c.DateFrom
		out.DateFrom = &t
	}
	if c.DateTo != nil {
		t := *c.DateTo
		out.DateTo = &t
	}
	if c.AmountMin != nil {
		v := *c.AmountMin
		out.AmountMin = &v
	}
	if c.AmountMax != nil {
		v := *c.AmountMax
		out.AmountMax = &v
	}
	if c.Fields != nil {
		out.Fields = make(map[string]string, len(c.Fields))
		for k, v := range c.Fields {
			out.Fields[k] = v
		}
	}
	return out
}

// endOfDay extends t to the last instant of its calendar day.
func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
