package engine

import (
	"context"
	"time"

	"bcnav/internal/corpus"
	"bcnav/internal/logging"
)

// LinguisticEngine resolves a concept to candidate lemma identities
// through the concept-to-lemma mapping (data, not logic) and returns the
// full occurrence set with morphology per occurrence.
type LinguisticEngine struct {
	lexicon corpus.LexiconProvider
	probe   Probe
}

// NewLinguisticEngine returns the linguistic dimension engine.
func NewLinguisticEngine(lexicon corpus.LexiconProvider, probe Probe) *LinguisticEngine {
	return &LinguisticEngine{lexicon: lexicon, probe: probe}
}

func (e *LinguisticEngine) Dimension() Dimension { return DimLinguistic }

func (e *LinguisticEngine) Query(ctx context.Context, concept string, opts Options) Result {
	start := time.Now()
	defer func() {
		logging.EngineQuery(ctx, string(DimLinguistic), concept, time.Since(start))
	}()

	lemmas, err := e.lexicon.LemmasForConcept(ctx, concept)
	if err != nil {
		return fromProviderError(ctx, DimLinguistic, err)
	}
	if len(lemmas) == 0 {
		return emptyOrNoData(ctx, e.probe, DimLinguistic)
	}

	facts := Facts{Lemmas: lemmas}
	for _, l := range lemmas {
		occs, err := e.lexicon.Occurrences(ctx, l.ID())
		if err != nil {
			return fromProviderError(ctx, DimLinguistic, err)
		}
		for _, o := range occs {
			if opts.Book != "" && o.Coordinate.Book != opts.Book {
				continue
			}
			facts.Occurrences = append(facts.Occurrences, o)
			facts.Coordinates = append(facts.Coordinates, o.Coordinate)
			facts.Evidence = append(facts.Evidence, corpus.ConceptEvidence{
				Concept:    concept,
				Coordinate: o.Coordinate,
				Method:     corpus.DetectLexical,
				Confidence: LexicalMatchConfidence,
			})
		}
	}
	facts.Coordinates = dedupe(facts.Coordinates)
	return Result{Dimension: DimLinguistic, Facts: facts}
}

var _ Engine = (*LinguisticEngine)(nil)
