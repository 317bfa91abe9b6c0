package query

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey names one of the supported orderings.
type SortKey string

const (
	SortDateDesc   SortKey = "dateDesc"
	SortDateAsc    SortKey = "dateAsc"
	SortAmountDesc SortKey = "amountDesc"
	SortAmountAsc  SortKey = "amountAsc"
	SortNameAsc    SortKey = "nameAsc"
	SortNameDesc   SortKey = "nameDesc"
	SortStatusAsc  SortKey = "statusAsc"
	SortStatusDesc SortKey = "statusDesc"
)

// SortKeys lists every supported key in display order.
var SortKeys = []SortKey{
	SortDateDesc, SortDateAsc,
	SortAmountDesc, SortAmountAsc,
	SortNameAsc, SortNameDesc,
	SortStatusAsc, SortStatusDesc,
}

// Valid reports whether k is a known sort key.
func (k SortKey) Valid() bool {
	return slices.Contains(SortKeys, k)
}

// ParseSortKey resolves a key case-insensitively. ok is false for unknown keys.
func ParseSortKey(s string) (SortKey, bool) {
	for _, k := range SortKeys {
		if strings.EqualFold(string(k), strings.TrimSpace(s)) {
			return k, true
		}
	}
	return "", false
}

// Comparator compares records of one schema. It holds a collator and must
// not be shared between goroutines.
type Comparator struct {
	schema   Schema
	collator *collate.Collator
}

// NewComparator builds a comparator using the schema's locale for names.
func (s Schema) NewComparator() *Comparator {
	tag, err := language.Parse(s.Locale)
	if err != nil {
		tag = language.English
	}
	return &Comparator{
		schema:   s,
		collator: collate.New(tag, collate.IgnoreCase, collate.Loose),
	}
}

// Compare returns a negative number when a sorts before b under key, a
// positive number when after, and 0 when the key cannot tell them apart.
func (c *Comparator) Compare(a, b Record, key SortKey) int {
	switch key {
	case SortDateAsc:
		return c.compareDate(a, b)
	case SortDateDesc:
		return -c.compareDate(a, b)
	case SortAmountAsc:
		return cmp.Compare(c.schema.amount(a), c.schema.amount(b))
	case SortAmountDesc:
		return -cmp.Compare(c.schema.amount(a), c.schema.amount(b))
	case SortNameAsc:
		return c.compareName(a, b)
	case SortNameDesc:
		return -c.compareName(a, b)
	case SortStatusAsc:
		return c.compareStatus(a, b)
	case SortStatusDesc:
		return -c.compareStatus(a, b)
	default:
		return 0
	}
}

// compareDate orders by comparison date; undated records count as oldest.
func (c *Comparator) compareDate(a, b Record) int {
	ta, okA := c.schema.comparisonDate(a)
	tb, okB := c.schema.comparisonDate(b)
	switch {
	case !okA && !okB:
		return 0
	case !okA:
		return -1
	case !okB:
		return 1
	}
	return ta.Compare(tb)
}

func (c *Comparator) compareName(a, b Record) int {
	field := c.schema.NameField
	if field == "" && len(c.schema.SearchFields) > 0 {
		field = c.schema.SearchFields[0]
	}
	return c.collator.CompareString(
		strings.TrimSpace(a.String(field)),
		strings.TrimSpace(b.String(field)),
	)
}

func (c *Comparator) compareStatus(a, b Record) int {
	return cmp.Compare(
		c.schema.statusRank(a.String(c.schema.StatusField)),
		c.schema.statusRank(b.String(c.schema.StatusField)),
	)
}

// Compare is a convenience wrapper building a one-off comparator.
func (s Schema) Compare(a, b Record, key SortKey) int {
	return s.WithDefaults().NewComparator().Compare(a, b, key)
}

// Sort returns a sorted copy of records. Records the key considers equal keep
// their input order, so pages stay stable across recomputes.
func (s Schema) Sort(records []Record, key SortKey) []Record {
	sorted := slices.Clone(records)
	if sorted == nil {
		sorted = []Record{}
	}
	if !key.Valid() {
		key = s.DefaultSort
	}
	if !key.Valid() {
		return sorted
	}

	c := s.WithDefaults().NewComparator()
	slices.SortStableFunc(sorted, func(a, b Record) int {
		return c.Compare(a, b, key)
	})
	return sorted
}
