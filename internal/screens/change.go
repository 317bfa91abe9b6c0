package screens

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"claimsview/internal/query"
)

// ErrInvalidChange is returned for changes that name unknown sort keys or
// carry unparseable dates.
var ErrInvalidChange = errors.New("invalid change")

// DateRange replaces both date bounds. An empty bound is open.
type DateRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// AmountRange replaces both amount bounds. A nil bound is open.
type AmountRange struct {
	Min *float64 `json:"min"`
	Max *float64 `json:"max"`
}

// Change is one user interaction with a screen. Only the fields that are
// set are applied, in this order: reset, tab, criteria, sort, page size, page.
type Change struct {
	Reset       bool              `json:"reset,omitempty"`
	Tab         *string           `json:"tab,omitempty"`
	Refetch     bool              `json:"refetch,omitempty"`
	Search      *string           `json:"search,omitempty"`
	Category    *string           `json:"category,omitempty"`
	Status      *string           `json:"status,omitempty"`
	DateRange   *DateRange        `json:"date_range,omitempty"`
	AmountRange *AmountRange      `json:"amount_range,omitempty"`
	Fields      map[string]string `json:"fields,omitempty"`
	Sort        *string           `json:"sort,omitempty"`
	PageSize    *int              `json:"page_size,omitempty"`
	Page        *int              `json:"page,omitempty"`
}

// ApplyTo returns the state that results from applying c to state.
func (c Change) ApplyTo(schema query.Schema, state query.QueryState) (query.QueryState, error) {
	next := state
	if c.Reset {
		next = next.Reset(schema)
	}
	if c.Tab != nil {
		next = next.WithTab(*c.Tab)
	}
	if c.Search != nil {
		next = next.WithSearch(*c.Search)
	}
	if c.Category != nil {
		next = next.WithCategory(*c.Category)
	}
	if c.Status != nil {
		next = next.WithStatus(*c.Status)
	}
	if c.DateRange != nil {
		from, err := parseBound(c.DateRange.From)
		if err != nil {
			return state, err
		}
		to, err := parseBound(c.DateRange.To)
		if err != nil {
			return state, err
		}
		next = next.WithDateRange(from, to)
	}
	if c.AmountRange != nil {
		next = next.WithAmountRange(c.AmountRange.Min, c.AmountRange.Max)
	}
	for field, text := range c.Fields {
		next = next.WithField(field, text)
	}
	if c.Sort != nil {
		key, ok := query.ParseSortKey(*c.Sort)
		if !ok {
			return state, fmt.Errorf("unknown sort key %q: %w", *c.Sort, ErrInvalidChange)
		}
		next = next.WithSort(key)
	}
	if c.PageSize != nil {
		next = next.WithPageSize(*c.PageSize)
	}
	if c.Page != nil {
		next = next.WithPage(*c.Page)
	}
	return next, nil
}

// parseBound reads one date bound; blank means open.
func parseBound(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, ok := query.ParseDate(s)
	if !ok {
		return nil, fmt.Errorf("unparseable date %q: %w", s, ErrInvalidChange)
	}
	return &t, nil
}

// IsEmpty reports whether the change does nothing.
func (c Change) IsEmpty() bool {
	return !c.Reset && c.Tab == nil && c.Search == nil && c.Category == nil &&
		c.Status == nil && c.DateRange == nil && c.AmountRange == nil &&
		len(c.Fields) == 0 && c.Sort == nil && c.PageSize == nil && c.Page == nil
}
