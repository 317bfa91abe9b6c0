package query

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordLookup(t *testing.T) {
	r := Record{
		"name":     "Alice",
		"missing":  nil,
		"provider": map[string]any{"name": "Clinic", "address": map[string]any{"city": "Lyon"}},
		"nested":   Record{"role": "DOCTOR"},
	}

	t.Run("flat field", func(t *testing.T) {
		v, ok := r.Lookup("name")
		require.True(t, ok)
		assert.Equal(t, "Alice", v)
	})

	t.Run("nil field is missing", func(t *testing.T) {
		_, ok := r.Lookup("missing")
		assert.False(t, ok)
	})

	t.Run("dotted path into nested maps", func(t *testing.T) {
		assert.Equal(t, "Clinic", r.String("provider.name"))
		assert.Equal(t, "Lyon", r.String("provider.address.city"))
		assert.Equal(t, "DOCTOR", r.String("nested.role"))
	})

	t.Run("path through a scalar is missing", func(t *testing.T) {
		_, ok := r.Lookup("name.first")
		assert.False(t, ok)
	})

	t.Run("nil record never panics", func(t *testing.T) {
		var empty Record
		assert.Equal(t, "", empty.String("name"))
		assert.Equal(t, 0.0, empty.Number("amount"))
		_, ok := empty.Time("date")
		assert.False(t, ok)
	})
}

func TestRecordNumber(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  float64
		ok    bool
	}{
		{"float64", 12.5, 12.5, true},
		{"int", 7, 7, true},
		{"int64", int64(9), 9, true},
		{"json number", json.Number("3.25"), 3.25, true},
		{"numeric string", " 42.10 ", 42.10, true},
		{"garbage string", "n/a", 0, false},
		{"bool", true, 0, false},
		{"nan", math.NaN(), 0, false},
		{"inf", math.Inf(1), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Record{"amount": tt.value}.NumberOK("amount")
			assert.Equal(t, tt.ok, ok)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}

	t.Run("missing reads as zero", func(t *testing.T) {
		assert.Equal(t, 0.0, Record{}.Number("amount"))
	})
}

func TestRecordTime(t *testing.T) {
	want := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)

	for _, value := range []any{
		"2024-03-09",
		"2024-03-09T00:00:00Z",
		"2024-03-09 00:00:00",
		"2024-03-09T00:00:00",
		want,
	} {
		got, ok := Record{"d": value}.Time("d")
		require.True(t, ok, "value %v", value)
		assert.True(t, want.Equal(got), "value %v parsed as %v", value, got)
	}

	for _, value := range []any{"", "yesterday", 12, time.Time{}} {
		_, ok := Record{"d": value}.Time("d")
		assert.False(t, ok, "value %v", value)
	}
}

func TestRecordFirstTime(t *testing.T) {
	r := Record{"decisionDate": nil, "submissionDate": "bad", "createdAt": "2024-05-01"}

	got, ok := r.FirstTime([]string{"decisionDate", "submissionDate", "createdAt"})
	require.True(t, ok)
	assert.Equal(t, "2024-05-01", got.Format("2006-01-02"))

	_, ok = r.FirstTime([]string{"decisionDate"})
	assert.False(t, ok)
}
