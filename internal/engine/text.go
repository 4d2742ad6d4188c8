package engine

import (
	"context"
	"time"

	"bcnav/internal/corpus"
	"bcnav/internal/logging"
	"bcnav/internal/ref"
)

// LexicalMatchConfidence is the evidence confidence of an explicit
// keyword match.
const LexicalMatchConfidence = 1.0

// TextEngine resolves a concept to coordinates by lexical search against
// the verse-text provider and returns the manuscript witnesses per
// coordinate across all requested traditions.
type TextEngine struct {
	provider corpus.TextProvider
	probe    Probe
}

// NewTextEngine returns the textual dimension engine.
func NewTextEngine(provider corpus.TextProvider, probe Probe) *TextEngine {
	return &TextEngine{provider: provider, probe: probe}
}

func (e *TextEngine) Dimension() Dimension { return DimText }

func (e *TextEngine) Query(ctx context.Context, concept string, opts Options) Result {
	start := time.Now()
	defer func() {
		logging.EngineQuery(ctx, string(DimText), concept, time.Since(start))
	}()

	scope := corpus.SearchScope{Book: opts.Book, MaxResults: opts.MaxResults}
	coords, err := e.provider.Search(ctx, concept, scope)
	if err != nil {
		return fromProviderError(ctx, DimText, err)
	}
	if len(coords) == 0 {
		return emptyOrNoData(ctx, e.probe, DimText)
	}

	facts := Facts{
		Witnesses:   make(map[string][]corpus.Witness, len(coords)),
		Coordinates: make([]ref.Coordinate, 0, len(coords)),
		Evidence:    make([]corpus.ConceptEvidence, 0, len(coords)),
	}
	for _, c := range coords {
		witnesses, err := e.provider.Witnesses(ctx, c)
		if err != nil {
			return fromProviderError(ctx, DimText, err)
		}
		facts.Witnesses[c.String()] = filterTraditions(witnesses, opts.Traditions)
		facts.Coordinates = append(facts.Coordinates, c)
		facts.Evidence = append(facts.Evidence, corpus.ConceptEvidence{
			Concept:    concept,
			Coordinate: c,
			Method:     corpus.DetectLexical,
			Confidence: LexicalMatchConfidence,
		})
	}
	return Result{Dimension: DimText, Facts: facts}
}

// filterTraditions keeps only the requested traditions; an empty request
// keeps everything.
func filterTraditions(witnesses []corpus.Witness, wanted []corpus.Tradition) []corpus.Witness {
	if len(wanted) == 0 {
		return witnesses
	}
	keep := make(map[corpus.Tradition]bool, len(wanted))
	for _, t := range wanted {
		keep[t] = true
	}
	out := witnesses[:0:0]
	for _, w := range witnesses {
		if keep[w.Tradition] {
			out = append(out, w)
		}
	}
	return out
}

var _ Engine = (*TextEngine)(nil)
