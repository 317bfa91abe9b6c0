package screens

import (
	"encoding/json"
	"testing"

	"claimsview/internal/query"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangeFromJSON(t *testing.T) {
	var c Change
	require.NoError(t, json.Unmarshal([]byte(`{
		"search": "martin",
		"date_range": {"from": "2024-01-01", "to": ""},
		"amount_range": {"max": 80},
		"fields": {"diagnosis": "flu"},
		"sort": "NAMEDESC",
		"page": 3
	}`), &c))
	assert.False(t, c.IsEmpty())

	schema := claimsSchema()
	next, err := c.ApplyTo(schema, schema.DefaultState())
	require.NoError(t, err)

	assert.Equal(t, "martin", next.Criteria.Search)
	require.NotNil(t, next.Criteria.DateFrom)
	assert.Equal(t, "2024-01-01", next.Criteria.DateFrom.Format("2006-01-02"))
	assert.Nil(t, next.Criteria.DateTo)
	assert.Nil(t, next.Criteria.AmountMin)
	assert.Equal(t, 80.0, *next.Criteria.AmountMax)
	assert.Equal(t, map[string]string{"diagnosis": "flu"}, next.Criteria.Fields)
	assert.Equal(t, query.SortNameDesc, next.Sort)
	// Page is applied after the criteria, so it survives their reset
	assert.Equal(t, 3, next.Window.PageIndex)
}

func TestEmptyChange(t *testing.T) {
	assert.True(t, Change{}.IsEmpty())

	schema := claimsSchema()
	state := schema.DefaultState().WithPage(2)
	next, err := Change{}.ApplyTo(schema, state)
	require.NoError(t, err)
	assert.Equal(t, state, next)
}

func TestPageSizeResetsPage(t *testing.T) {
	schema := claimsSchema()
	state := schema.DefaultState().WithPage(4)

	next, err := Change{PageSize: ptr(25)}.ApplyTo(schema, state)
	require.NoError(t, err)
	assert.Equal(t, 25, next.Window.PageSize)
	assert.Equal(t, 0, next.Window.PageIndex)
}
