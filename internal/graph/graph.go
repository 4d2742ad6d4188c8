// Package graph implements bounded breadth-first expansion over the
// cross-reference graph. The graph holds on the order of 340,000 edges,
// so traversal is always hop- and weight-bounded.
package graph

import (
	"context"
	"slices"

	"bcnav/internal/corpus"
	"bcnav/internal/ref"
)

// DefaultMaxHops limits expansion to direct cross-references. Unbounded
// expansion is combinatorially unusable for a concept query.
const DefaultMaxHops = 1

// Accessor expands coordinate sets through a corpus.CrossReferenceStore.
type Accessor struct {
	store corpus.CrossReferenceStore
}

// New returns an Accessor over the given edge store.
func New(store corpus.CrossReferenceStore) *Accessor {
	return &Accessor{store: store}
}

// Reached describes one coordinate added by expansion: the edge that
// first reached it and the hop at which it was found.
type Reached struct {
	Coordinate ref.Coordinate `json:"coordinate"`
	Source     ref.Coordinate `json:"source"`
	Weight     float64        `json:"weight"`
	Hop        int            `json:"hop"`
}

// Expand performs a bounded BFS from the seed set, following edges with
// weight >= minWeight for at most maxHops hops. The result is the union
// of seeds and reached coordinates, deduplicated and in canonical order.
// maxHops <= 0 selects DefaultMaxHops.
func (a *Accessor) Expand(ctx context.Context, seeds []ref.Coordinate, maxHops int, minWeight float64) ([]ref.Coordinate, error) {
	reached, err := a.ExpandDetailed(ctx, seeds, maxHops, minWeight)
	if err != nil {
		return nil, err
	}

	out := make([]ref.Coordinate, 0, len(seeds)+len(reached))
	out = append(out, seeds...)
	for _, r := range reached {
		out = append(out, r.Coordinate)
	}
	slices.SortFunc(out, ref.Compare)
	return slices.Compact(out), nil
}

// ExpandDetailed is Expand keeping provenance: only newly reached
// coordinates are returned, each with the edge that first found it.
// Seeds themselves are not included.
func (a *Accessor) ExpandDetailed(ctx context.Context, seeds []ref.Coordinate, maxHops int, minWeight float64) ([]Reached, error) {
	if maxHops <= 0 {
		maxHops = DefaultMaxHops
	}

	visited := make(map[ref.Coordinate]bool, len(seeds))
	frontier := make([]ref.Coordinate, 0, len(seeds))
	for _, c := range seeds {
		if !visited[c] {
			visited[c] = true
			frontier = append(frontier, c)
		}
	}

	var reached []Reached
	for hop := 1; hop <= maxHops && len(frontier) > 0; hop++ {
		var next []ref.Coordinate
		for _, c := range frontier {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			edges, err := a.store.EdgesFrom(ctx, c)
			if err != nil {
				return nil, err
			}
			for _, e := range edges {
				if e.Weight < minWeight || visited[e.Target] {
					continue
				}
				visited[e.Target] = true
				next = append(next, e.Target)
				reached = append(reached, Reached{
					Coordinate: e.Target,
					Source:     c,
					Weight:     e.Weight,
					Hop:        hop,
				})
			}
		}
		frontier = next
	}

	slices.SortFunc(reached, func(a, b Reached) int {
		return ref.Compare(a.Coordinate, b.Coordinate)
	})
	return reached, nil
}
