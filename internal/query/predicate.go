package query

import (
	"strings"
)

// Matches reports whether a record satisfies every active constraint of c.
// Constraints are independent and combined with AND.
func (s Schema) Matches(r Record, c Criteria) bool {
	if !s.matchesSearch(r, c.Search) {
		return false
	}
	if !matchesEqual(s.fieldValue(r, s.CategoryField), c.Category) {
		return false
	}
	if !matchesEqual(s.fieldValue(r, s.StatusField), c.Status) {
		return false
	}
	if !s.matchesDateRange(r, c) {
		return false
	}
	if !s.matchesAmountRange(r, c) {
		return false
	}
	return matchesFields(r, c.Fields)
}

// Filter returns the records matching c, in input order. The result never
// shares its backing array with the input.
func (s Schema) Filter(records []Record, c Criteria) []Record {
	result := make([]Record, 0, len(records))
	if c.IsIdentity() {
		return append(result, records...)
	}
	for _, r := range records {
		if s.Matches(r, c) {
			result = append(result, r)
		}
	}
	return result
}

// matchesSearch does a case-insensitive substring search over the search
// fields. Blank text matches everything.
func (s Schema) matchesSearch(r Record, search string) bool {
	needle := strings.ToLower(strings.TrimSpace(search))
	if needle == "" {
		return true
	}
	for _, field := range s.SearchFields {
		if strings.Contains(strings.ToLower(r.String(field)), needle) {
			return true
		}
	}
	return false
}

func (s Schema) fieldValue(r Record, field string) string {
	if field == "" {
		return ""
	}
	return strings.TrimSpace(r.String(field))
}

// matchesEqual is a case-insensitive exact match; blank or ALL disables it.
func matchesEqual(value, want string) bool {
	if isOpen(want) {
		return true
	}
	return strings.EqualFold(value, strings.TrimSpace(want))
}

func (s Schema) matchesDateRange(r Record, c Criteria) bool {
	if c.DateFrom == nil && c.DateTo == nil {
		return true
	}

	date, ok := s.comparisonDate(r)
	if !ok {
		// An undated record cannot be placed inside any range
		return false
	}

	if c.DateFrom != nil && date.Before(*c.DateFrom) {
		return false
	}
	if c.DateTo != nil && date.After(endOfDay(*c.DateTo)) {
		return false
	}
	return true
}

func (s Schema) matchesAmountRange(r Record, c Criteria) bool {
	if c.AmountMin == nil && c.AmountMax == nil {
		return true
	}

	amount := s.amount(r)
	if c.AmountMin != nil && amount < *c.AmountMin {
		return false
	}
	if c.AmountMax != nil && amount > *c.AmountMax {
		return false
	}
	return true
}

// matchesFields applies the secondary per-field text constraints.
func matchesFields(r Record, fields map[string]string) bool {
	for field, text := range fields {
		needle := strings.ToLower(strings.TrimSpace(text))
		if needle == "" {
			continue
		}
		if !strings.Contains(strings.ToLower(r.String(field)), needle) {
			return false
		}
	}
	return true
}
