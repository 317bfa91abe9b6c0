package query

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Column is one export column: a header and how to read it off a record.
type Column struct {
	Header  string
	Extract func(Record) string
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-z0-9_-]+`)

// TextColumn exports a field verbatim; a missing value becomes placeholder.
func TextColumn(header, field, placeholder string) Column {
	return Column{
		Header: header,
		Extract: func(r Record) string {
			if _, ok := r.Lookup(field); !ok {
				return placeholder
			}
			return r.String(field)
		},
	}
}

// AmountColumn exports a number with two decimals; a missing or non-numeric
// value becomes placeholder.
func AmountColumn(header, field, placeholder string) Column {
	return Column{
		Header: header,
		Extract: func(r Record) string {
			n, ok := r.NumberOK(field)
			if !ok {
				return placeholder
			}
			return strconv.FormatFloat(n, 'f', 2, 64)
		},
	}
}

// DateColumn exports a date as YYYY-MM-DD; an unresolved date becomes
// placeholder.
func DateColumn(header, field, placeholder string) Column {
	return Column{
		Header: header,
		Extract: func(r Record) string {
			t, ok := r.Time(field)
			if !ok {
				return placeholder
			}
			return t.Format("2006-01-02")
		},
	}
}

// Columns builds the export columns declared on the schema.
func (s Schema) Columns() []Column {
	columns := make([]Column, 0, len(s.ExportColumns))
	for _, spec := range s.ExportColumns {
		placeholder := spec.Placeholder
		if placeholder == "" {
			placeholder = defaultMissingPlaceholder
		}
		header := spec.Header
		if header == "" {
			header = spec.Field
		}

		switch spec.Kind {
		case ColumnAmount:
			columns = append(columns, AmountColumn(header, spec.Field, placeholder))
		case ColumnDate:
			columns = append(columns, DateColumn(header, spec.Field, placeholder))
		default:
			columns = append(columns, TextColumn(header, spec.Field, placeholder))
		}
	}
	return columns
}

// ToDelimitedText renders records as CSV with every field quoted and
// embedded quotes doubled. The header row always comes first, so an empty
// collection yields a header-only document.
func ToDelimitedText(records []Record, columns []Column) string {
	var b strings.Builder

	headers := make([]string, len(columns))
	for i, col := range columns {
		headers[i] = col.Header
	}
	writeRow(&b, headers)

	row := make([]string, len(columns))
	for _, r := range records {
		for i, col := range columns {
			if col.Extract == nil {
				row[i] = ""
				continue
			}
			row[i] = col.Extract(r)
		}
		b.WriteByte('\n')
		writeRow(&b, row)
	}
	return b.String()
}

func writeRow(b *strings.Builder, fields []string) {
	for i, field := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(field, `"`, `""`))
		b.WriteByte('"')
	}
}

// ExportFilename names an export file <resource>_<YYYY-MM-DD>.csv.
func ExportFilename(resource string, at time.Time) string {
	name := strings.ToLower(strings.TrimSpace(resource))
	name = unsafeFilenameChars.ReplaceAllString(name, "-")
	name = strings.Trim(name, "-")
	if name == "" {
		name = "export"
	}
	return name + "_" + at.Format("2006-01-02") + ".csv"
}
