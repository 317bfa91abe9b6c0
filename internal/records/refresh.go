package records

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"claimsview/internal/query"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrUnknownResource is returned for resources with no configured schema.
var ErrUnknownResource = errors.New("unknown resource")

// maxParallelFetches bounds concurrent backend requests per refresh
const maxParallelFetches = 4

// Refresher fetches resources from a source into a store.
type Refresher struct {
	store   *Store
	source  Source
	schemas map[string]query.Schema
	logger  *zap.Logger
}

// NewRefresher wires a store to a source for the given schemas.
func NewRefresher(store *Store, source Source, schemas []query.Schema, logger *zap.Logger) *Refresher {
	if logger == nil {
		logger = zap.NewNop()
	}
	bySchema := make(map[string]query.Schema, len(schemas))
	for _, s := range schemas {
		bySchema[s.Resource] = s.WithDefaults()
	}
	return &Refresher{
		store:   store,
		source:  source,
		schemas: bySchema,
		logger:  logger,
	}
}

// Store returns the store the refresher writes into.
func (r *Refresher) Store() *Store {
	return r.store
}

// Schema returns the configured schema of resource.
func (r *Refresher) Schema(resource string) (query.Schema, bool) {
	s, ok := r.schemas[resource]
	return s, ok
}

// Resources lists the configured resources, sorted.
func (r *Refresher) Resources() []string {
	names := make([]string, 0, len(r.schemas))
	for name := range r.schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Refresh fetches the named resources, or every configured one when none
// are named. Each resource is fetched independently: a failure leaves that
// resource's previous snapshot in place and does not stop the others. The
// returned error joins every failure.
func (r *Refresher) Refresh(ctx context.Context, resources ...string) error {
	if len(resources) == 0 {
		resources = r.Resources()
	}

	var (
		mu   sync.Mutex
		errs []error
	)
	record := func(err error) {
		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
	}

	var g errgroup.Group
	g.SetLimit(maxParallelFetches)
	for _, resource := range resources {
		schema, ok := r.schemas[resource]
		if !ok {
			record(fmt.Errorf("refresh %s: %w", resource, ErrUnknownResource))
			continue
		}
		g.Go(func() error {
			if err := r.refreshOne(ctx, schema); err != nil {
				record(err)
			}
			return nil
		})
	}
	_ = g.Wait()

	return errors.Join(errs...)
}

func (r *Refresher) refreshOne(ctx context.Context, schema query.Schema) error {
	seq := r.store.Begin(schema.Resource)

	fetched, err := r.source.Fetch(ctx, schema)
	if err != nil {
		r.logger.Warn("Fetch failed, keeping previous snapshot",
			zap.String("resource", schema.Resource),
			zap.Uint64("seq", seq),
			zap.Error(err))
		if failErr := r.store.Fail(schema.Resource, seq, err); failErr != nil {
			r.logger.Debug("Dropped failure of superseded fetch", zap.String("resource", schema.Resource), zap.Error(failErr))
			return nil
		}
		return fmt.Errorf("refresh %s: %w", schema.Resource, err)
	}

	if err := r.store.Commit(schema.Resource, seq, fetched); err != nil {
		if errors.Is(err, ErrStaleResponse) {
			r.logger.Debug("Dropped superseded fetch", zap.String("resource", schema.Resource), zap.Uint64("seq", seq))
			return nil
		}
		return err
	}

	r.logger.Info("Refreshed resource",
		zap.String("resource", schema.Resource),
		zap.Uint64("seq", seq),
		zap.Int("records", len(fetched)))
	return nil
}
