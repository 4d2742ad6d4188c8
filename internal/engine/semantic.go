package engine

import (
	"context"
	"time"

	"bcnav/internal/corpus"
	"bcnav/internal/logging"
)

// MetaphorConfidence is the evidence confidence assigned to
// classifier-detected metaphors. Chosen below explicit lexical matches;
// the classifier is heuristic.
const MetaphorConfidence = 0.7

// SemanticEngine runs metaphor/analogy detection over witness text for
// the concept's coordinate set. The classifier is a black box; the
// engine's contract is to invoke it per verse and collect structured
// output, tolerating per-verse classifier failure without aborting the
// batch.
type SemanticEngine struct {
	provider   corpus.TextProvider
	classifier corpus.Classifier
	probe      Probe
}

// NewSemanticEngine returns the semantic dimension engine.
func NewSemanticEngine(provider corpus.TextProvider, classifier corpus.Classifier, probe Probe) *SemanticEngine {
	return &SemanticEngine{provider: provider, classifier: classifier, probe: probe}
}

func (e *SemanticEngine) Dimension() Dimension { return DimSemantic }

func (e *SemanticEngine) Query(ctx context.Context, concept string, opts Options) Result {
	start := time.Now()
	defer func() {
		logging.EngineQuery(ctx, string(DimSemantic), concept, time.Since(start))
	}()

	scope := corpus.SearchScope{Book: opts.Book, MaxResults: opts.MaxResults}
	coords, err := e.provider.Search(ctx, concept, scope)
	if err != nil {
		return fromProviderError(ctx, DimSemantic, err)
	}
	if len(coords) == 0 {
		return emptyOrNoData(ctx, e.probe, DimSemantic)
	}

	var facts Facts
	for _, c := range coords {
		if err := ctx.Err(); err != nil {
			return fromProviderError(ctx, DimSemantic, err)
		}
		witnesses, err := e.provider.Witnesses(ctx, c)
		if err != nil {
			return fromProviderError(ctx, DimSemantic, err)
		}
		for _, w := range witnesses {
			records, err := e.classifier.Classify(ctx, concept, w)
			if err != nil {
				// A failing verse is absent from the metaphor set; the
				// batch continues and the engine stays available.
				logging.WarnContext(ctx, "classifier_failed",
					"coordinate", c.String(), "tradition", string(w.Tradition), "error", err.Error())
				continue
			}
			for _, m := range records {
				facts.Metaphors = append(facts.Metaphors, m)
				facts.Coordinates = append(facts.Coordinates, m.Coordinate)
				facts.Evidence = append(facts.Evidence, corpus.ConceptEvidence{
					Concept:    concept,
					Coordinate: m.Coordinate,
					Method:     corpus.DetectMetaphor,
					Confidence: MetaphorConfidence,
				})
			}
		}
	}
	facts.Coordinates = dedupe(facts.Coordinates)
	return Result{Dimension: DimSemantic, Facts: facts}
}

var _ Engine = (*SemanticEngine)(nil)
