package pricing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// ErrModelNotFound is returned by CostFor when no pricing record resolves
// for a model identifier. It is distinct from a computed $0 cost; the
// zero-cost fallback policy belongs to the caller.
var ErrModelNotFound = errors.New("model pricing not found")

// Engine memoizes one pricing table and composes resolution with cost
// calculation. A single instance may be shared across goroutines: the first
// load is deduplicated, and all reads after it are lock-free against an
// immutable snapshot. Instances are independent of each other.
type Engine struct {
	source   Source
	prefixes []string
	log      *slog.Logger

	table atomic.Pointer[Table]
	gen   atomic.Uint64
	group singleflight.Group
}

// Option configures an Engine.
type Option func(*Engine)

// WithPrefixes replaces DefaultPrefixes as the phase-1 provider prefix list.
// An empty list disables prefixed matching; only the raw identifier is tried.
func WithPrefixes(prefixes []string) Option {
	return func(e *Engine) { e.prefixes = prefixes }
}

// WithLogger sets the logger used for load diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// NewEngine builds an Engine over a pricing source. Nothing is loaded until
// the first call that needs the table.
func NewEngine(src Source, opts ...Option) *Engine {
	e := &Engine{
		source:   src,
		prefixes: DefaultPrefixes,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// FetchAll returns the pricing table, loading it on first call. Concurrent
// first calls share a single in-flight load. Load failures are not
// propagated: the table degrades to empty with a warning, so downstream
// cost reporting keeps working offline.
func (e *Engine) FetchAll(ctx context.Context) *Table {
	if t := e.table.Load(); t != nil {
		return t
	}

	gen := e.gen.Load()
	v, _, _ := e.group.Do("load-"+strconv.FormatUint(gen, 10), func() (any, error) {
		t := e.load(ctx)
		// An Invalidate that raced with this load bumped the generation;
		// callers of the stale load still get its table, but it must not
		// repopulate the cache.
		if e.gen.Load() == gen {
			e.table.Store(t)
		}
		return t, nil
	})
	return v.(*Table)
}

// GetPricing loads (if needed) and resolves a model identifier.
func (e *Engine) GetPricing(ctx context.Context, model string) (ModelPricing, bool) {
	return Resolve(model, e.prefixes, e.FetchAll(ctx))
}

// CostFor loads, resolves, and computes the cost of one usage event.
// Returns an error wrapping ErrModelNotFound when no record resolves.
func (e *Engine) CostFor(ctx context.Context, usage TokenUsage, model string) (float64, error) {
	rec, ok := e.GetPricing(ctx, model)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrModelNotFound, model)
	}
	return CalculateCost(usage, rec), nil
}

// Invalidate drops the cached table so the next call reloads from the
// source. Callers already resolving against the old snapshot are unaffected.
func (e *Engine) Invalidate() {
	e.gen.Add(1)
	e.table.Store(nil)
}

// Close releases the cached table. The engine holds no other resources;
// Close exists so scoped callers can pair acquisition with release. It is
// idempotent, and a closed engine simply reloads on next use.
func (e *Engine) Close() error {
	e.Invalidate()
	return nil
}

func (e *Engine) load(ctx context.Context) *Table {
	raw, err := e.source(ctx)
	if err != nil {
		e.log.Warn("pricing source unavailable, costs will compute as zero", "error", err)
		return emptyTable()
	}
	t, err := ParseTable(raw)
	if err != nil {
		e.log.Warn("pricing data unreadable, costs will compute as zero", "error", err)
		return emptyTable()
	}
	e.log.Debug("pricing table loaded", "models", t.Len())
	return t
}
