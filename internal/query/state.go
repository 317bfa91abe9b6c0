package query

import (
	"strings"
	"time"
)

// QueryState is everything a screen has selected: criteria, ordering, page
// and the active tab. It is a value; every transition returns a new state.
type QueryState struct {
	Criteria Criteria   `json:"criteria"`
	Sort     SortKey    `json:"sort"`
	Window   PageWindow `json:"window"`
	Tab      string     `json:"tab,omitempty"`
}

// View is what the rendering layer consumes. It must be treated as read-only.
type View struct {
	VisibleItems      []Record  `json:"visible_items"`
	PageCount         int       `json:"page_count"`
	PageIndex         int       `json:"page_index"`
	PageSize          int       `json:"page_size"`
	TotalMatched      int       `json:"total_matched"`
	Aggregate         Aggregate `json:"aggregate"`
	ActiveFilterCount int       `json:"active_filter_count"`
	Bounds            Bounds    `json:"bounds"`
	Sort              SortKey   `json:"sort"`
}

// withCriteria applies a criteria change and resets the page index.
func (q QueryState) withCriteria(mutate func(*Criteria)) QueryState {
	next := q
	next.Criteria = q.Criteria.Clone()
	mutate(&next.Criteria)
	next.Window.PageIndex = 0
	return next
}

func (q QueryState) WithSearch(text string) QueryState {
	return q.withCriteria(func(c *Criteria) { c.Search = text })
}

func (q QueryState) WithCategory(category string) QueryState {
	return q.withCriteria(func(c *Criteria) { c.Category = category })
}

func (q QueryState) WithStatus(status string) QueryState {
	return q.withCriteria(func(c *Criteria) { c.Status = status })
}

// WithDateRange sets both date bounds; nil clears a bound.
func (q QueryState) WithDateRange(from, to *time.Time) QueryState {
	return q.withCriteria(func(c *Criteria) {
		c.DateFrom = copyTime(from)
		c.DateTo = copyTime(to)
	})
}

// WithAmountRange sets both amount bounds; nil clears a bound.
func (q QueryState) WithAmountRange(minAmount, maxAmount *float64) QueryState {
	return q.withCriteria(func(c *Criteria) {
		c.AmountMin = copyFloat(minAmount)
		c.AmountMax = copyFloat(maxAmount)
	})
}

// WithField sets a secondary text constraint; blank text removes it.
func (q QueryState) WithField(field, text string) QueryState {
	return q.withCriteria(func(c *Criteria) {
		if strings.TrimSpace(text) == "" {
			delete(c.Fields, field)
			if len(c.Fields) == 0 {
				c.Fields = nil
			}
			return
		}
		if c.Fields == nil {
			c.Fields = make(map[string]string)
		}
		c.Fields[field] = text
	})
}

// WithSort changes the ordering and keeps the current page.
func (q QueryState) WithSort(key SortKey) QueryState {
	next := q
	next.Criteria = q.Criteria.Clone()
	next.Sort = key
	return next
}

// WithPage moves to another page; negative indexes read as 0.
func (q QueryState) WithPage(index int) QueryState {
	next := q
	next.Criteria = q.Criteria.Clone()
	next.Window.PageIndex = max(index, 0)
	return next
}

// WithPageSize changes the page size and resets to the first page, since the
// old index may no longer exist.
func (q QueryState) WithPageSize(size int) QueryState {
	next := q
	next.Criteria = q.Criteria.Clone()
	if size > 0 {
		next.Window.PageSize = size
	}
	next.Window.PageIndex = 0
	return next
}

// WithTab switches the logical tab. The tab becomes the category filter, the
// page resets and the search text is kept.
func (q QueryState) WithTab(tab string) QueryState {
	next := q.withCriteria(func(c *Criteria) { c.Category = tab })
	next.Tab = tab
	return next
}

// Reset returns the schema's default state, keeping the tab.
func (q QueryState) Reset(s Schema) QueryState {
	next := s.DefaultState()
	if q.Tab != "" {
		next = next.WithTab(q.Tab)
	}
	return next
}

// Run derives the full view from a snapshot and a state: filter, sort, then
// paginate for display and aggregate over the whole filtered set.
func (s Schema) Run(records []Record, q QueryState) View {
	s = s.WithDefaults()
	if q.Window.PageSize <= 0 {
		q.Window.PageSize = s.DefaultPageSize
	}
	if !q.Sort.Valid() {
		q.Sort = s.DefaultSort
	}

	filtered := s.Filter(records, q.Criteria)
	sorted := s.Sort(filtered, q.Sort)
	page := Paginate(sorted, q.Window)

	return View{
		VisibleItems:      page.Items,
		PageCount:         page.PageCount,
		PageIndex:         page.PageIndex,
		PageSize:          page.PageSize,
		TotalMatched:      len(sorted),
		Aggregate:         s.Aggregate(sorted, s.Categories...),
		ActiveFilterCount: q.Criteria.ActiveCount(),
		Bounds:            s.RangeBounds(records, s.SliderStep, s.SliderFallback),
		Sort:              q.Sort,
	}
}

// Export renders the filtered and sorted collection of a state, ignoring
// the page window.
func (s Schema) Export(records []Record, q QueryState) string {
	s = s.WithDefaults()
	filtered := s.Filter(records, q.Criteria)
	sorted := s.Sort(filtered, q.Sort)
	return ToDelimitedText(sorted, s.Columns())
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func copyFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}
