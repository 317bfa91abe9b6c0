package query

import (
	"time"
)

// claimsSchema mirrors the claims resource used by the dashboards
func claimsSchema() Schema {
	return Schema{
		Resource:      "claims",
		SearchFields:  []string{"name", "id", "diagnosis"},
		NameField:     "name",
		CategoryField: "cat",
		Categories:    []string{"DOCTOR", "PHARMACIST"},
		StatusField:   "status",
		DateFields:    []string{"decisionDate", "submissionDate", "date"},
		AmountField:   "amount",
		ExportColumns: []ColumnSpec{
			{Header: "ID", Field: "id", Kind: ColumnText},
			{Header: "Name", Field: "name", Kind: ColumnText},
			{Header: "Amount", Field: "amount", Kind: ColumnAmount},
			{Header: "Date", Field: "date", Kind: ColumnDate},
		},
	}.WithDefaults()
}

// exampleRecords is the three-claim scenario used across the engine tests
func exampleRecords() []Record {
	return []Record{
		{"id": "c1", "name": "Alice Martin", "cat": "DOCTOR", "status": "APPROVED_FINAL", "amount": 100.0, "date": "2024-01-05"},
		{"id": "c2", "name": "Bob Stone", "cat": "DOCTOR", "status": "REJECTED_FINAL", "amount": 50.0, "date": "2024-02-01"},
		{"id": "c3", "name": "Chloé Durand", "cat": "PHARMACIST", "status": "APPROVED_FINAL", "amount": 75.0, "date": "2024-01-20"},
	}
}

func ids(records []Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.String("id")
	}
	return out
}

func day(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

func amount(v float64) *float64 {
	return &v
}
