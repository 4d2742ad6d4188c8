package engine

import (
	"context"
	"time"

	"bcnav/internal/corpus"
	"bcnav/internal/logging"
)

// HistoricalEngine looks up source-critical layer assignments overlapping
// the concept's coordinate set. When multiple competing assignments
// overlap one coordinate they are all returned with their individual
// confidence, never merged.
type HistoricalEngine struct {
	provider corpus.TextProvider
	sources  corpus.SourceProvider
	probe    Probe
}

// NewHistoricalEngine returns the historical/source-criticism engine.
func NewHistoricalEngine(provider corpus.TextProvider, sources corpus.SourceProvider, probe Probe) *HistoricalEngine {
	return &HistoricalEngine{provider: provider, sources: sources, probe: probe}
}

func (e *HistoricalEngine) Dimension() Dimension { return DimHistorical }

func (e *HistoricalEngine) Query(ctx context.Context, concept string, opts Options) Result {
	start := time.Now()
	defer func() {
		logging.EngineQuery(ctx, string(DimHistorical), concept, time.Since(start))
	}()

	scope := corpus.SearchScope{Book: opts.Book, MaxResults: opts.MaxResults}
	coords, err := e.provider.Search(ctx, concept, scope)
	if err != nil {
		return fromProviderError(ctx, DimHistorical, err)
	}
	if len(coords) == 0 {
		return emptyOrNoData(ctx, e.probe, DimHistorical)
	}

	var facts Facts
	for _, c := range coords {
		assignments, err := e.sources.AssignmentsFor(ctx, c)
		if err != nil {
			return fromProviderError(ctx, DimHistorical, err)
		}
		if len(assignments) == 0 {
			continue
		}
		facts.Assignments = append(facts.Assignments, assignments...)
		facts.Coordinates = append(facts.Coordinates, c)
	}
	if facts.Empty() {
		return emptyOrNoData(ctx, e.probe, DimHistorical)
	}
	return Result{Dimension: DimHistorical, Facts: facts}
}

var _ Engine = (*HistoricalEngine)(nil)
