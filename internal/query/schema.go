package query

import (
	"strings"
	"time"
)

// AllValues is the sentinel that disables a category or status constraint.
const AllValues = "ALL"

const (
	defaultPageSize           = 10
	defaultSliderStep         = 50
	defaultSliderFallback     = 1000
	defaultUncategorizedLabel = "UNCATEGORIZED"
	defaultLocale             = "en"
	defaultMissingPlaceholder = "N/A"
)

// DefaultStatusRank orders statuses approved < pending < returned < rejected.
// Statuses are matched by prefix, so APPROVED_FINAL ranks as APPROVED.
var DefaultStatusRank = []string{"APPROVED", "PENDING", "RETURNED", "REJECTED"}

// ColumnKind selects how an export column renders its value.
type ColumnKind string

const (
	ColumnText   ColumnKind = "text"
	ColumnAmount ColumnKind = "amount"
	ColumnDate   ColumnKind = "date"
)

// ColumnSpec declares one export column of a resource.
type ColumnSpec struct {
	Header      string     `yaml:"header" json:"header"`
	Field       string     `yaml:"field" json:"field"`
	Kind        ColumnKind `yaml:"kind" json:"kind"`
	Placeholder string     `yaml:"placeholder,omitempty" json:"placeholder,omitempty"`
}

// Schema is the per-resource configuration the engine is parameterised by:
// which fields it searches, groups, ranks and sums.
type Schema struct {
	Resource           string       `yaml:"resource" json:"resource"`
	Path               string       `yaml:"path,omitempty" json:"path,omitempty"`
	Table              string       `yaml:"table,omitempty" json:"table,omitempty"`
	IDField            string       `yaml:"id_field" json:"id_field"`
	SearchFields       []string     `yaml:"search_fields" json:"search_fields"`
	NameField          string       `yaml:"name_field" json:"name_field"`
	CategoryField      string       `yaml:"category_field" json:"category_field"`
	Categories         []string     `yaml:"categories" json:"categories"`
	StatusField        string       `yaml:"status_field" json:"status_field"`
	Statuses           []string     `yaml:"statuses" json:"statuses"`
	StatusRank         []string     `yaml:"status_rank" json:"status_rank"`
	DateFields         []string     `yaml:"date_fields" json:"date_fields"`
	AmountField        string       `yaml:"amount_field" json:"amount_field"`
	DefaultSort        SortKey      `yaml:"default_sort" json:"default_sort"`
	DefaultPageSize    int          `yaml:"default_page_size" json:"default_page_size"`
	DefaultDateFrom    string       `yaml:"default_date_from,omitempty" json:"default_date_from,omitempty"`
	DefaultDateTo      string       `yaml:"default_date_to,omitempty" json:"default_date_to,omitempty"`
	SliderStep         float64      `yaml:"slider_step" json:"slider_step"`
	SliderFallback     float64      `yaml:"slider_fallback" json:"slider_fallback"`
	UncategorizedLabel string       `yaml:"uncategorized_label,omitempty" json:"uncategorized_label,omitempty"`
	Locale             string       `yaml:"locale,omitempty" json:"locale,omitempty"`
	ExportColumns      []ColumnSpec `yaml:"export_columns" json:"export_columns"`
}

// WithDefaults returns a copy of the schema with every unset knob filled in.
func (s Schema) WithDefaults() Schema {
	if s.IDField == "" {
		s.IDField = "id"
	}
	if s.DefaultPageSize <= 0 {
		s.DefaultPageSize = defaultPageSize
	}
	if s.SliderStep <= 0 {
		s.SliderStep = defaultSliderStep
	}
	if s.SliderFallback <= 0 {
		s.SliderFallback = defaultSliderFallback
	}
	if s.UncategorizedLabel == "" {
		s.UncategorizedLabel = defaultUncategorizedLabel
	}
	if s.Locale == "" {
		s.Locale = defaultLocale
	}
	if len(s.StatusRank) == 0 {
		s.StatusRank = DefaultStatusRank
	}
	if !s.DefaultSort.Valid() {
		s.DefaultSort = SortDateDesc
	}
	if s.Path == "" {
		s.Path = s.Resource
	}
	if s.Table == "" {
		s.Table = strings.ReplaceAll(s.Resource, "-", "_")
	}
	return s
}

// DefaultCriteria returns the criteria a fresh screen starts with. Only the
// configured default date bounds are applied; everything else is open.
func (s Schema) DefaultCriteria() Criteria {
	var c Criteria
	if t, ok := ParseDate(s.DefaultDateFrom); ok {
		c.DateFrom = &t
	}
	if t, ok := ParseDate(s.DefaultDateTo); ok {
		c.DateTo = &t
	}
	return c
}

// DefaultState returns the initial query state of a screen on this resource.
func (s Schema) DefaultState() QueryState {
	s = s.WithDefaults()
	return QueryState{
		Criteria: s.DefaultCriteria(),
		Sort:     s.DefaultSort,
		Window:   PageWindow{PageIndex: 0, PageSize: s.DefaultPageSize},
	}
}

// comparisonDate resolves the date used by both filtering and sorting.
func (s Schema) comparisonDate(r Record) (time.Time, bool) {
	return r.FirstTime(s.DateFields)
}

// amount reads the schema's amount field, treating missing as 0.
func (s Schema) amount(r Record) float64 {
	if s.AmountField == "" {
		return 0
	}
	return r.Number(s.AmountField)
}

// category reads the grouping value of a record.
func (s Schema) category(r Record) string {
	if s.CategoryField == "" {
		return ""
	}
	return strings.TrimSpace(r.String(s.CategoryField))
}

// statusRank returns the position of a status in the rank table. Unknown
// statuses rank after every known one.
func (s Schema) statusRank(status string) int {
	status = strings.ToUpper(strings.TrimSpace(status))
	for i, prefix := range s.StatusRank {
		if strings.HasPrefix(status, strings.ToUpper(prefix)) {
			return i
		}
	}
	return len(s.StatusRank)
}
