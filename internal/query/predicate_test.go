package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatches(t *testing.T) {
	s := claimsSchema()
	records := exampleRecords()

	t.Run("default criteria is the identity filter", func(t *testing.T) {
		for _, r := range append(records, Record{}, nil, Record{"amount": "oops"}) {
			assert.True(t, s.Matches(r, Criteria{}))
		}
	})

	t.Run("search is a case-insensitive substring over search fields", func(t *testing.T) {
		assert.Equal(t, []string{"c2"}, ids(s.Filter(records, Criteria{Search: "STONE"})))
		assert.Equal(t, []string{"c3"}, ids(s.Filter(records, Criteria{Search: "c3"})))
		assert.Len(t, s.Filter(records, Criteria{Search: "   "}), 3)
		assert.Empty(t, s.Filter(records, Criteria{Search: "zzz"}))
	})

	t.Run("category equality ignores case and ALL disables it", func(t *testing.T) {
		assert.Equal(t, []string{"c1", "c2"}, ids(s.Filter(records, Criteria{Category: "doctor"})))
		assert.Len(t, s.Filter(records, Criteria{Category: "all"}), 3)
		assert.Len(t, s.Filter(records, Criteria{Category: AllValues}), 3)
	})

	t.Run("status equality is exact, not prefix", func(t *testing.T) {
		assert.Equal(t, []string{"c1", "c3"}, ids(s.Filter(records, Criteria{Status: "approved_final"})))
		assert.Empty(t, s.Filter(records, Criteria{Status: "APPROVED"}))
	})

	t.Run("date range is inclusive and dateTo covers the whole day", func(t *testing.T) {
		late := append(records, Record{"id": "c4", "date": "2024-02-01T23:59:59.999Z"})
		got := s.Filter(late, Criteria{DateFrom: day("2024-01-05"), DateTo: day("2024-02-01")})
		assert.Equal(t, []string{"c1", "c2", "c3", "c4"}, ids(got))

		got = s.Filter(late, Criteria{DateTo: day("2024-01-19")})
		assert.Equal(t, []string{"c1"}, ids(got))

		got = s.Filter(late, Criteria{DateFrom: day("2024-01-06")})
		assert.Equal(t, []string{"c2", "c3", "c4"}, ids(got))
	})

	t.Run("date priority list picks the first resolvable date", func(t *testing.T) {
		r := Record{"decisionDate": "2023-12-31", "submissionDate": "2024-01-10", "date": "2024-01-10"}
		assert.False(t, s.Matches(r, Criteria{DateFrom: day("2024-01-01")}))

		r = Record{"decisionDate": nil, "submissionDate": "2024-01-10"}
		assert.True(t, s.Matches(r, Criteria{DateFrom: day("2024-01-01")}))
	})

	t.Run("undated records fail an active date constraint", func(t *testing.T) {
		assert.False(t, s.Matches(Record{"id": "x"}, Criteria{DateFrom: day("2000-01-01")}))
	})

	t.Run("amount range is inclusive and missing amounts read as zero", func(t *testing.T) {
		got := s.Filter(records, Criteria{AmountMin: amount(50), AmountMax: amount(75)})
		assert.Equal(t, []string{"c2", "c3"}, ids(got))

		assert.True(t, s.Matches(Record{}, Criteria{AmountMax: amount(0)}))
		assert.False(t, s.Matches(Record{}, Criteria{AmountMin: amount(0.01)}))
	})

	t.Run("secondary text fields narrow independently", func(t *testing.T) {
		got := s.Filter(records, Criteria{Fields: map[string]string{"name": "al", "status": "approved"}})
		assert.Equal(t, []string{"c1"}, ids(got))

		got = s.Filter(records, Criteria{Fields: map[string]string{"name": " "}})
		assert.Len(t, got, 3)
	})

	t.Run("criteria combine with AND", func(t *testing.T) {
		got := s.Filter(records, Criteria{Category: "DOCTOR", Status: "REJECTED_FINAL"})
		assert.Equal(t, []string{"c2"}, ids(got))

		got = s.Filter(records, Criteria{Category: "PHARMACIST", Search: "alice"})
		assert.Empty(t, got)
	})
}

func TestFilterMonotonicity(t *testing.T) {
	s := claimsSchema()
	records := exampleRecords()

	steps := []func(Criteria) Criteria{
		func(c Criteria) Criteria { c.Category = "DOCTOR"; return c },
		func(c Criteria) Criteria { c.DateFrom = day("2024-01-01"); return c },
		func(c Criteria) Criteria { c.AmountMax = amount(80); return c },
		func(c Criteria) Criteria { c.Search = "b"; return c },
		func(c Criteria) Criteria { c.Status = "REJECTED_FINAL"; return c },
	}

	c := Criteria{}
	prev := s.Filter(records, c)
	for i, step := range steps {
		c = step(c)
		next := s.Filter(records, c)
		assert.LessOrEqual(t, len(next), len(prev), "step %d grew the result", i)
		for _, r := range next {
			assert.Contains(t, ids(prev), r.String("id"), "step %d admitted a new record", i)
		}
		prev = next
	}
}

func TestFilterDoesNotAliasInput(t *testing.T) {
	s := claimsSchema()
	records := exampleRecords()

	out := s.Filter(records, Criteria{})
	out[0] = Record{"id": "replaced"}

	assert.Equal(t, "c1", records[0].String("id"))
}

func TestCriteriaActiveCount(t *testing.T) {
	assert.Equal(t, 0, Criteria{}.ActiveCount())
	assert.Equal(t, 0, Criteria{Search: "  ", Category: "ALL", Status: "all"}.ActiveCount())
	assert.True(t, Criteria{Category: "All"}.IsIdentity())

	c := Criteria{
		Search:    "bob",
		Category:  "DOCTOR",
		Status:    "PENDING",
		DateFrom:  day("2024-01-01"),
		DateTo:    day("2024-12-31"),
		AmountMin: amount(1),
		Fields:    map[string]string{"diagnosis": "flu", "city": ""},
	}
	assert.Equal(t, 6, c.ActiveCount())
}

func TestCriteriaClone(t *testing.T) {
	c := Criteria{DateFrom: day("2024-01-01"), AmountMin: amount(3), Fields: map[string]string{"a": "b"}}
	clone := c.Clone()

	*clone.DateFrom = clone.DateFrom.AddDate(1, 0, 0)
	*clone.AmountMin = 10
	clone.Fields["a"] = "z"

	assert.Equal(t, 2024, c.DateFrom.Year())
	assert.Equal(t, 3.0, *c.AmountMin)
	assert.Equal(t, "b", c.Fields["a"])
}
