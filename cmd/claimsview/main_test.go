package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"claimsview/internal/query"
	"claimsview/internal/records"
	"claimsview/internal/screens"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exportSchemas() []query.Schema {
	return []query.Schema{{
		Resource:    "claims",
		NameField:   "name",
		StatusField: "status",
		ExportColumns: []query.ColumnSpec{
			{Header: "ID", Field: "id", Kind: query.ColumnText},
			{Header: "Name", Field: "name", Kind: query.ColumnText},
		},
	}}
}

func backend(t *testing.T) *records.HTTPSource {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/claims" {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`[
			{"id":"c1","name":"Ana","status":"PENDING"},
			{"id":"c2","name":"Bo","status":"REJECTED"},
			{"id":"c3","name":"Cy","status":"PENDING"}
		]`))
	}))
	t.Cleanup(server.Close)

	src := records.NewHTTPSource(server.URL+"/api", "", time.Second)
	src.Client = server.Client()
	return src
}

func TestExportResource(t *testing.T) {
	src := backend(t)
	ctx := context.Background()

	t.Run("filters and sorts", func(t *testing.T) {
		status, sort := "PENDING", "nameDesc"
		var out bytes.Buffer
		n, err := exportResource(ctx, src, exportSchemas(), "claims", screens.Change{Status: &status, Sort: &sort}, &out)
		require.NoError(t, err)

		assert.Equal(t, 2, n)
		assert.Equal(t, "\"ID\",\"Name\"\n\"c3\",\"Cy\"\n\"c1\",\"Ana\"", out.String())
	})

	t.Run("no change exports everything", func(t *testing.T) {
		var out bytes.Buffer
		n, err := exportResource(ctx, src, exportSchemas(), "claims", screens.Change{}, &out)
		require.NoError(t, err)
		assert.Equal(t, 3, n)
	})

	t.Run("unknown resource", func(t *testing.T) {
		_, err := exportResource(ctx, src, exportSchemas(), "invoices", screens.Change{}, &bytes.Buffer{})
		assert.ErrorIs(t, err, records.ErrUnknownResource)
	})

	t.Run("invalid sort key", func(t *testing.T) {
		sort := "sideways"
		_, err := exportResource(ctx, src, exportSchemas(), "claims", screens.Change{Sort: &sort}, &bytes.Buffer{})
		assert.ErrorIs(t, err, screens.ErrInvalidChange)
	})

	t.Run("fetch failure", func(t *testing.T) {
		schemas := append(exportSchemas(), query.Schema{Resource: "clients"})
		var out bytes.Buffer
		_, err := exportResource(ctx, src, schemas, "clients", screens.Change{}, &out)
		require.Error(t, err)
		assert.Empty(t, out.String())
	})
}

func TestWriteExport(t *testing.T) {
	src := backend(t)
	ctx := context.Background()

	t.Run("writes the file after a successful fetch", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "claims.csv")
		n, err := writeExport(ctx, src, exportSchemas(), "claims", screens.Change{}, out, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Equal(t, 3, n)

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"c2","Bo"`)
	})

	t.Run("dash writes to stdout", func(t *testing.T) {
		var stdout bytes.Buffer
		_, err := writeExport(ctx, src, exportSchemas(), "claims", screens.Change{}, "-", &stdout)
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), `"ID","Name"`)
	})

	t.Run("failed fetch leaves no file", func(t *testing.T) {
		schemas := append(exportSchemas(), query.Schema{Resource: "clients"})
		out := filepath.Join(t.TempDir(), "clients.csv")
		_, err := writeExport(ctx, src, schemas, "clients", screens.Change{}, out, &bytes.Buffer{})
		require.Error(t, err)
		assert.NoFileExists(t, out)
	})

	t.Run("unknown resource leaves no file", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "invoices.csv")
		_, err := writeExport(ctx, src, exportSchemas(), "invoices", screens.Change{}, out, &bytes.Buffer{})
		assert.ErrorIs(t, err, records.ErrUnknownResource)
		assert.NoFileExists(t, out)
	})
}

func TestExportChangeFromFlags(t *testing.T) {
	flags := exportCmd.Flags()
	require.NoError(t, flags.Set("status", "PENDING"))
	require.NoError(t, flags.Set("min", "10"))
	require.NoError(t, flags.Set("field", "diagnosis=flu"))

	change := exportChange(exportCmd)

	require.NotNil(t, change.Status)
	assert.Equal(t, "PENDING", *change.Status)
	require.NotNil(t, change.AmountRange)
	require.NotNil(t, change.AmountRange.Min)
	assert.Equal(t, 10.0, *change.AmountRange.Min)
	assert.Nil(t, change.AmountRange.Max)
	assert.Equal(t, map[string]string{"diagnosis": "flu"}, change.Fields)
	assert.Nil(t, change.Search)
	assert.Nil(t, change.DateRange)
	assert.Nil(t, change.Sort)
}

func TestSweepInterval(t *testing.T) {
	assert.Equal(t, time.Duration(0), sweepInterval(0))
	assert.Equal(t, time.Second, sweepInterval(2*time.Second))
	assert.Equal(t, 5*time.Minute, sweepInterval(20*time.Minute))
}
