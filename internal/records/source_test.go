package records

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"claimsview/internal/query"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPSourceFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		switch r.URL.Path {
		case "/api/claims":
			w.Write([]byte(`[{"id":"c1","amount":100.5,"provider":{"name":"Clinic"}},null]`))
		case "/api/clients":
			w.Write([]byte(`{"data":[{"id":"x","role":"DOCTOR"}],"total":1}`))
		case "/api/empty":
			w.Write([]byte(``))
		case "/api/big":
			w.Write([]byte(`[{"id":"a"},{"id":"b"}]`))
		case "/api/weird":
			w.Write([]byte(`{"message":"ok"}`))
		default:
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	}))
	defer server.Close()

	src := NewHTTPSource(server.URL+"/api/", "secret", time.Second)
	src.Client = server.Client()
	ctx := context.Background()

	t.Run("bare array with nested record", func(t *testing.T) {
		recs, err := src.Fetch(ctx, query.Schema{Resource: "claims"})
		require.NoError(t, err)
		require.Len(t, recs, 1)

		assert.Equal(t, json.Number("100.5"), recs[0]["amount"])
		assert.Equal(t, 100.5, recs[0].Number("amount"))
		assert.Equal(t, "Clinic", recs[0].String("provider.name"))
	})

	t.Run("envelope with explicit path", func(t *testing.T) {
		recs, err := src.Fetch(ctx, query.Schema{Resource: "people", Path: "clients"})
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, "DOCTOR", recs[0].String("role"))
	})

	t.Run("empty body is an empty collection", func(t *testing.T) {
		recs, err := src.Fetch(ctx, query.Schema{Resource: "empty"})
		require.NoError(t, err)
		assert.Empty(t, recs)
	})

	t.Run("unknown envelope is an error", func(t *testing.T) {
		_, err := src.Fetch(ctx, query.Schema{Resource: "weird"})
		assert.ErrorIs(t, err, ErrUnexpectedPayload)
	})

	t.Run("body over the limit is rejected", func(t *testing.T) {
		capped := NewHTTPSource(server.URL+"/api", "secret", time.Second)
		capped.Client = server.Client()

		capped.MaxBodyBytes = 10
		_, err := capped.Fetch(ctx, query.Schema{Resource: "big"})
		assert.ErrorIs(t, err, ErrBodyTooLarge)

		capped.MaxBodyBytes = int64(len(`[{"id":"a"},{"id":"b"}]`))
		recs, err := capped.Fetch(ctx, query.Schema{Resource: "big"})
		require.NoError(t, err)
		assert.Len(t, recs, 2)
	})

	t.Run("non-2xx is an error", func(t *testing.T) {
		_, err := src.Fetch(ctx, query.Schema{Resource: "providers"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "503")
	})

	t.Run("missing token is rejected", func(t *testing.T) {
		anon := NewHTTPSource(server.URL+"/api", "", time.Second)
		anon.Client = server.Client()
		_, err := anon.Fetch(ctx, query.Schema{Resource: "claims"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "401")
	})

	t.Run("cancelled context is an error", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := src.Fetch(cancelled, query.Schema{Resource: "claims"})
		assert.Error(t, err)
	})
}
