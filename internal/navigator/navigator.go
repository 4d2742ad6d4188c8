// Package navigator orchestrates a concept query: concurrent fan-out
// over the six dimension engines with per-engine timeouts, a barrier,
// cross-reference expansion of the direct matches, and the merge into
// one ConceptResult.
package navigator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"bcnav/internal/cache"
	"bcnav/internal/engine"
	apperrors "bcnav/internal/errors"
	"bcnav/internal/graph"
	"bcnav/internal/logging"
	"bcnav/internal/ref"
)

// DefaultEngineTimeout bounds each engine when the caller sets none.
const DefaultEngineTimeout = 10 * time.Second

// Options scope one navigate call.
type Options struct {
	engine.Options

	// MaxHops bounds cross-reference expansion (0 = graph default).
	MaxHops int `json:"max_hops,omitempty"`
	// MinEdgeWeight is the expansion weight floor.
	MinEdgeWeight float64 `json:"min_edge_weight,omitempty"`
	// NoCache bypasses the result cache for this call.
	NoCache bool `json:"-"`
}

// Observer receives progress events while a navigate call runs. Calls
// arrive from engine goroutines; implementations must be safe for
// concurrent use.
type Observer interface {
	EngineCompleted(queryID string, result engine.Result)
}

// Config tunes a Navigator.
type Config struct {
	// EngineTimeout is the per-engine deadline. An engine exceeding it is
	// recorded Unavailable(Timeout); the query continues.
	EngineTimeout time.Duration
	// CacheSize is the result cache capacity (0 disables caching).
	CacheSize int
	// Observer, when set, is notified as each engine completes.
	Observer Observer
}

// Navigator runs concept queries across the dimension engines.
type Navigator struct {
	engines  []engine.Engine
	graph    *graph.Accessor
	timeout  time.Duration
	results  cache.Cache[string, ConceptResult]
	observer Observer
}

// New returns a Navigator over the given engines and cross-reference
// accessor. The accessor may be nil, disabling expansion.
func New(engines []engine.Engine, accessor *graph.Accessor, cfg Config) *Navigator {
	n := &Navigator{
		engines:  engines,
		graph:    accessor,
		timeout:  cfg.EngineTimeout,
		observer: cfg.Observer,
	}
	if n.timeout <= 0 {
		n.timeout = DefaultEngineTimeout
	}
	if cfg.CacheSize > 0 {
		n.results = cache.NewLRU[string, ConceptResult](cache.Config{MaxSize: cfg.CacheSize})
	}
	return n
}

// Navigate runs the full query pipeline for a concept. Partial failure
// never raises: unavailable dimensions become notes on the result. Only
// an invalid concept name or all engines unavailable return an error.
func (n *Navigator) Navigate(ctx context.Context, concept string, opts Options) (*ConceptResult, error) {
	concept = strings.TrimSpace(concept)
	if concept == "" {
		return nil, &apperrors.InvalidQueryError{Message: "empty concept name"}
	}

	key := ""
	if n.results != nil && !opts.NoCache {
		key = cache.Key(concept, opts)
		if cached, ok := n.results.Get(key); ok {
			logging.DebugContext(ctx, "navigate_cache_hit", "concept", concept)
			return &cached, nil
		}
	}

	queryID := uuid.NewString()
	ctx = logging.WithQueryID(ctx, queryID)
	start := time.Now()
	logging.InfoContext(ctx, "navigate_start", "concept", concept)

	results := n.fanOut(ctx, concept, opts)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	unavailable := 0
	var notes []string
	for _, r := range results {
		if r.Unavailable() {
			unavailable++
			notes = append(notes, r.Err.Error())
		}
	}
	if unavailable == len(results) {
		return nil, &apperrors.TotalFailureError{Concept: concept, Notes: notes}
	}

	expansion, expErr := n.expand(ctx, results, opts)

	merged := Merge(concept, results, expansion)
	merged.QueryID = queryID
	merged.GeneratedAt = time.Now().UTC()
	if expErr != nil {
		merged.SourceNotes = append(merged.SourceNotes, fmt.Sprintf("expansion: %v", expErr))
	}

	logging.InfoContext(ctx, "navigate_done",
		"concept", concept,
		"verses", len(merged.Verses),
		"unavailable", unavailable,
		"duration_ms", time.Since(start).Milliseconds())

	if key != "" {
		n.results.Put(key, merged)
	}
	return &merged, nil
}

// fanOut queries every engine concurrently and waits for all slots. Each
// engine gets its own deadline; one that overruns is abandoned and its
// slot marked Unavailable(Timeout) rather than blocking the barrier.
func (n *Navigator) fanOut(ctx context.Context, concept string, opts Options) []engine.Result {
	results := make([]engine.Result, len(n.engines))
	g := new(errgroup.Group)
	for i, e := range n.engines {
		g.Go(func() error {
			ectx, cancel := context.WithTimeout(ctx, n.timeout)
			defer cancel()

			done := make(chan engine.Result, 1)
			go func() {
				done <- e.Query(ectx, concept, opts.Options)
			}()

			select {
			case r := <-done:
				results[i] = r
			case <-ectx.Done():
				reason := apperrors.ReasonTimeout
				logging.EngineUnavailable(ctx, string(e.Dimension()), string(reason), ectx.Err())
				results[i] = engine.Result{
					Dimension: e.Dimension(),
					Err: &apperrors.UnavailableError{
						Dimension: string(e.Dimension()),
						Reason:    reason,
						Err:       ectx.Err(),
					},
				}
			}
			if n.observer != nil {
				n.observer.EngineCompleted(logging.GetQueryID(ctx), results[i])
			}
			return nil
		})
	}
	g.Wait()
	return results
}

// expand runs cross-reference expansion seeded by the text and
// linguistic engines' direct matches. Expansion failure degrades the
// result, it never fails the query.
func (n *Navigator) expand(ctx context.Context, results []engine.Result, opts Options) ([]graph.Reached, error) {
	if n.graph == nil {
		return nil, nil
	}
	var seeds []ref.Coordinate
	for _, r := range results {
		if r.Unavailable() {
			continue
		}
		switch r.Dimension {
		case engine.DimText, engine.DimLinguistic:
			seeds = append(seeds, r.Facts.Coordinates...)
		}
	}
	if len(seeds) == 0 {
		return nil, nil
	}

	reached, err := n.graph.ExpandDetailed(ctx, seeds, opts.MaxHops, opts.MinEdgeWeight)
	if err != nil {
		logging.WarnContext(ctx, "expansion_failed", "error", err.Error())
		return nil, err
	}
	return reached, nil
}
