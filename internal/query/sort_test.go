package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func amounts(records []Record) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = r.Number("amount")
	}
	return out
}

func TestSortKeys(t *testing.T) {
	s := claimsSchema()
	records := exampleRecords()

	tests := []struct {
		key  SortKey
		want []string
	}{
		{SortDateDesc, []string{"c2", "c3", "c1"}},
		{SortDateAsc, []string{"c1", "c3", "c2"}},
		{SortAmountDesc, []string{"c1", "c3", "c2"}},
		{SortAmountAsc, []string{"c2", "c3", "c1"}},
		{SortNameAsc, []string{"c1", "c2", "c3"}},
		{SortNameDesc, []string{"c3", "c2", "c1"}},
		{SortStatusAsc, []string{"c1", "c3", "c2"}},
		{SortStatusDesc, []string{"c2", "c1", "c3"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			assert.Equal(t, tt.want, ids(s.Sort(records, tt.key)))
		})
	}
}

func TestSortDoesNotReorderInput(t *testing.T) {
	s := claimsSchema()
	records := exampleRecords()

	_ = s.Sort(records, SortAmountAsc)

	assert.Equal(t, []string{"c1", "c2", "c3"}, ids(records))
}

func TestSortIsStableForEveryKey(t *testing.T) {
	s := claimsSchema()

	// Every record ties on every key
	var records []Record
	for _, id := range []string{"t1", "t2", "t3", "t4", "t5"} {
		records = append(records, Record{"id": id, "name": "Same", "status": "PENDING", "amount": 10, "date": "2024-01-01"})
	}

	for _, key := range SortKeys {
		assert.Equal(t, []string{"t1", "t2", "t3", "t4", "t5"}, ids(s.Sort(records, key)), "key %s", key)
	}
}

func TestSortIsDeterministic(t *testing.T) {
	s := claimsSchema()
	records := append(exampleRecords(),
		Record{"id": "c4", "name": "alice martin", "amount": 100.0},
		Record{"id": "c5", "cat": "DOCTOR"},
	)

	for _, key := range SortKeys {
		first := ids(s.Sort(records, key))
		second := ids(s.Sort(records, key))
		assert.Equal(t, first, second, "key %s", key)
	}
}

func TestSortMissingValues(t *testing.T) {
	s := claimsSchema()
	records := []Record{
		{"id": "dated", "date": "2024-01-01", "amount": -5},
		{"id": "undated"},
	}

	t.Run("undated records sort last when newest first", func(t *testing.T) {
		assert.Equal(t, []string{"dated", "undated"}, ids(s.Sort(records, SortDateDesc)))
		assert.Equal(t, []string{"undated", "dated"}, ids(s.Sort(records, SortDateAsc)))
	})

	t.Run("missing amount compares as zero", func(t *testing.T) {
		assert.Equal(t, []float64{0, -5}, amounts(s.Sort(records, SortAmountDesc)))
	})
}

func TestSortNameIsLocaleAware(t *testing.T) {
	s := claimsSchema()
	records := []Record{
		{"id": "z", "name": "Zoé"},
		{"id": "e-accent", "name": "Élodie"},
		{"id": "b", "name": "bernard"},
		{"id": "a", "name": "Adam"},
	}

	// Byte order would put lowercase and accented names last
	assert.Equal(t, []string{"a", "b", "e-accent", "z"}, ids(s.Sort(records, SortNameAsc)))
}

func TestSortStatusRank(t *testing.T) {
	s := claimsSchema()
	records := []Record{
		{"id": "unknown", "status": "ARCHIVED"},
		{"id": "rejected", "status": "REJECTED_FINAL"},
		{"id": "returned", "status": "RETURNED"},
		{"id": "pending", "status": "pending_review"},
		{"id": "approved", "status": "APPROVED_FINAL"},
	}

	assert.Equal(t,
		[]string{"approved", "pending", "returned", "rejected", "unknown"},
		ids(s.Sort(records, SortStatusAsc)))
	assert.Equal(t,
		[]string{"unknown", "rejected", "returned", "pending", "approved"},
		ids(s.Sort(records, SortStatusDesc)))
}

func TestSortUnknownKeyFallsBackToDefault(t *testing.T) {
	s := claimsSchema()
	assert.Equal(t, ids(s.Sort(exampleRecords(), SortDateDesc)), ids(s.Sort(exampleRecords(), SortKey("bogus"))))
}

func TestParseSortKey(t *testing.T) {
	k, ok := ParseSortKey("AMOUNTDESC")
	assert.True(t, ok)
	assert.Equal(t, SortAmountDesc, k)

	_, ok = ParseSortKey("priority")
	assert.False(t, ok)
}

func TestCompare(t *testing.T) {
	s := claimsSchema()
	a := Record{"amount": 1}
	b := Record{"amount": 2}

	assert.Negative(t, s.Compare(a, b, SortAmountAsc))
	assert.Positive(t, s.Compare(a, b, SortAmountDesc))
	assert.Zero(t, s.Compare(a, a, SortAmountAsc))
}
