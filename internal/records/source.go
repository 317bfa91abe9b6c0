package records

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"claimsview/internal/query"
)

// Source fetches the full collection of one resource from the backend.
type Source interface {
	Fetch(ctx context.Context, schema query.Schema) ([]query.Record, error)
}

// ErrUnexpectedPayload is returned when a response body is not a record list.
var ErrUnexpectedPayload = errors.New("unexpected payload")

// ErrBodyTooLarge is returned when a response body exceeds the source's limit.
var ErrBodyTooLarge = errors.New("response body too large")

// DefaultMaxBodyBytes caps a response body when no limit is configured.
const DefaultMaxBodyBytes int64 = 64 << 20

// envelopeKeys are the wrapper keys the backend uses around record lists
var envelopeKeys = []string{"data", "items", "content", "results"}

// HTTPSource reads collections from the REST API of the claims backend.
type HTTPSource struct {
	BaseURL string
	Token   string
	Client  *http.Client

	// MaxBodyBytes caps a response body; zero means DefaultMaxBodyBytes.
	MaxBodyBytes int64
}

// NewHTTPSource creates a source for baseURL with a request timeout.
func NewHTTPSource(baseURL, token string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		Client:  &http.Client{Timeout: timeout},
	}
}

// Fetch GETs <base>/<schema.Path> and decodes a JSON array of records, or an
// object wrapping one under data/items/content/results.
func (h *HTTPSource) Fetch(ctx context.Context, schema query.Schema) ([]query.Record, error) {
	schema = schema.WithDefaults()

	endpoint, err := url.JoinPath(h.BaseURL, schema.Path)
	if err != nil {
		return nil, fmt.Errorf("build url for %s: %w", schema.Resource, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", schema.Resource, err)
	}
	req.Header.Set("Accept", "application/json")
	if h.Token != "" {
		req.Header.Set("Authorization", "Bearer "+h.Token)
	}

	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", schema.Resource, err)
	}
	defer resp.Body.Close()

	limit := h.MaxBodyBytes
	if limit <= 0 {
		limit = DefaultMaxBodyBytes
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", schema.Resource, err)
	}
	if int64(len(body)) > limit {
		return nil, fmt.Errorf("read %s: over %d bytes: %w", schema.Resource, limit, ErrBodyTooLarge)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch %s: backend returned %d", schema.Resource, resp.StatusCode)
	}

	return decodeRecords(body)
}

// decodeRecords accepts either a bare array or a known envelope.
func decodeRecords(body []byte) ([]query.Record, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return []query.Record{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	if body[0] == '[' {
		var list []query.Record
		if err := dec.Decode(&list); err != nil {
			return nil, fmt.Errorf("decode records: %w", err)
		}
		return dropNil(list), nil
	}

	var envelope map[string]json.RawMessage
	if err := dec.Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	for _, key := range envelopeKeys {
		raw, ok := envelope[key]
		if !ok {
			continue
		}
		inner := bytes.TrimSpace(raw)
		if len(inner) == 0 || inner[0] != '[' {
			continue
		}
		return decodeRecords(inner)
	}
	return nil, ErrUnexpectedPayload
}

// dropNil removes null entries so the engine only ever sees maps.
func dropNil(list []query.Record) []query.Record {
	out := make([]query.Record, 0, len(list))
	for _, r := range list {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}
