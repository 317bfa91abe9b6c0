package query

import (
	"math"
	"sort"
	"strings"
)

// CategoryTotal is the rollup of one category.
type CategoryTotal struct {
	Count  int     `json:"count"`
	Amount float64 `json:"amount"`
}

// Aggregate summarises a collection. It is always derived, never stored.
type Aggregate struct {
	TotalCount  int                      `json:"total_count"`
	TotalAmount float64                  `json:"total_amount"`
	PerCategory map[string]CategoryTotal `json:"per_category"`
}

// Bounds is the range offered by a slider-style amount filter.
type Bounds struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// kahan is a compensated running sum.
type kahan struct {
	sum, c float64
}

func (k *kahan) add(v float64) {
	y := v - k.c
	t := k.sum + y
	k.c = (t - k.sum) - y
	k.sum = t
}

// Aggregate rolls records up by category in a single pass. Categories listed
// in enumerate are always present, with zero totals if nothing matched.
// Records without a category are grouped under the uncategorized label.
func (s Schema) Aggregate(records []Record, enumerate ...string) Aggregate {
	s = s.WithDefaults()
	agg := Aggregate{
		PerCategory: make(map[string]CategoryTotal, len(enumerate)),
	}
	for _, cat := range enumerate {
		agg.PerCategory[cat] = CategoryTotal{}
	}
	if len(records) == 0 {
		return agg
	}

	var total kahan
	sums := make(map[string]*kahan)
	counts := make(map[string]int)
	for _, r := range records {
		amount := s.amount(r)
		total.add(amount)

		cat := s.category(r)
		if cat == "" {
			cat = s.UncategorizedLabel
		}
		cat = canonicalCategory(cat, enumerate)

		if sums[cat] == nil {
			sums[cat] = &kahan{}
		}
		sums[cat].add(amount)
		counts[cat]++
	}

	agg.TotalCount = len(records)
	agg.TotalAmount = total.sum
	for cat, sum := range sums {
		agg.PerCategory[cat] = CategoryTotal{Count: counts[cat], Amount: sum.sum}
	}
	return agg
}

// canonicalCategory maps a raw value onto the spelling of an enumerated
// category when they differ only in case.
func canonicalCategory(raw string, enumerate []string) string {
	for _, cat := range enumerate {
		if cat == raw {
			return cat
		}
	}
	for _, cat := range enumerate {
		if strings.EqualFold(cat, raw) {
			return cat
		}
	}
	return raw
}

// Percentage returns the share of the total amount held by category, in
// percent. It is 0 when the total is 0.
func (a Aggregate) Percentage(category string) float64 {
	return percent(a.PerCategory[category].Amount, a.TotalAmount)
}

// CountPercentage returns the share of records in category, in percent.
func (a Aggregate) CountPercentage(category string) float64 {
	return percent(float64(a.PerCategory[category].Count), float64(a.TotalCount))
}

// Categories returns the category names sorted for stable display.
func (a Aggregate) Categories() []string {
	names := make([]string, 0, len(a.PerCategory))
	for name := range a.PerCategory {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func percent(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	p := part / whole * 100
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return 0
	}
	return p
}

// RangeBounds computes slider bounds: the max amount rounded up to the next
// multiple of step, or fallback when there is nothing to size the range on.
func (s Schema) RangeBounds(records []Record, step, fallback float64) Bounds {
	if step <= 0 {
		step = 1
	}

	maxAmount := 0.0
	for _, r := range records {
		if v := s.amount(r); v > maxAmount {
			maxAmount = v
		}
	}
	if maxAmount <= 0 {
		return Bounds{Min: 0, Max: fallback}
	}
	return Bounds{Min: 0, Max: math.Ceil(maxAmount/step) * step}
}

// CategoryCounts counts records per enumerated category over whatever
// collection it is given. Tab badges call it on the unfiltered snapshot.
func (s Schema) CategoryCounts(records []Record, categories []string) map[string]int {
	counts := make(map[string]int, len(categories))
	for _, cat := range categories {
		counts[cat] = 0
	}
	for _, r := range records {
		cat := s.category(r)
		for _, want := range categories {
			if strings.EqualFold(cat, want) {
				counts[want]++
				break
			}
		}
	}
	return counts
}
