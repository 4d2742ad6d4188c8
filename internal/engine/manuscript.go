package engine

import (
	"context"
	"time"

	"bcnav/internal/corpus"
	"bcnav/internal/logging"
)

// ManuscriptEngine groups witnesses by coordinate and flags coordinates
// where traditions disagree in wording: text present in one tradition,
// absent or divergent in another. The divergence flag is this
// dimension's primary output, not the raw text.
type ManuscriptEngine struct {
	provider   corpus.TextProvider
	traditions []corpus.Tradition
	probe      Probe
}

// NewManuscriptEngine returns the manuscript dimension engine. The
// traditions list names the witnesses expected per coordinate; a
// coordinate lacking one of them is flagged as a lacuna-style divergence.
func NewManuscriptEngine(provider corpus.TextProvider, traditions []corpus.Tradition, probe Probe) *ManuscriptEngine {
	return &ManuscriptEngine{provider: provider, traditions: traditions, probe: probe}
}

func (e *ManuscriptEngine) Dimension() Dimension { return DimManuscript }

func (e *ManuscriptEngine) Query(ctx context.Context, concept string, opts Options) Result {
	start := time.Now()
	defer func() {
		logging.EngineQuery(ctx, string(DimManuscript), concept, time.Since(start))
	}()

	scope := corpus.SearchScope{Book: opts.Book, MaxResults: opts.MaxResults}
	coords, err := e.provider.Search(ctx, concept, scope)
	if err != nil {
		return fromProviderError(ctx, DimManuscript, err)
	}
	if len(coords) == 0 {
		return emptyOrNoData(ctx, e.probe, DimManuscript)
	}

	expected := e.traditions
	if len(opts.Traditions) > 0 {
		expected = opts.Traditions
	}

	var facts Facts
	for _, c := range coords {
		witnesses, err := e.provider.Witnesses(ctx, c)
		if err != nil {
			return fromProviderError(ctx, DimManuscript, err)
		}

		div := diverge(witnesses, expected)
		if div == nil {
			continue
		}
		facts.Divergences = append(facts.Divergences, *div)
		facts.Coordinates = append(facts.Coordinates, c)
	}
	if facts.Empty() {
		// Witnesses agree everywhere the concept occurs; the engine ran
		// and found no divergence.
		return Result{Dimension: DimManuscript}
	}
	return Result{Dimension: DimManuscript, Facts: facts}
}

// diverge compares a coordinate's witnesses against the expected
// tradition set. It returns nil when all expected traditions are present
// and agree after normalization.
func diverge(witnesses []corpus.Witness, expected []corpus.Tradition) *Divergence {
	if len(witnesses) == 0 {
		return nil
	}

	present := make(map[corpus.Tradition]string, len(witnesses))
	d := Divergence{Coordinate: witnesses[0].Coordinate}
	for _, w := range witnesses {
		if _, ok := present[w.Tradition]; !ok {
			d.Present = append(d.Present, w.Tradition)
		}
		present[w.Tradition] = corpus.Fold(w.Text)
	}

	for _, t := range expected {
		if _, ok := present[t]; !ok {
			d.Missing = append(d.Missing, t)
		}
	}

	// Wording divergence between same-language traditions.
	byLang := make(map[corpus.Language]map[string]bool)
	for _, w := range witnesses {
		folded := corpus.Fold(w.Text)
		if byLang[w.Language] == nil {
			byLang[w.Language] = make(map[string]bool)
		}
		byLang[w.Language][folded] = true
	}
	for _, texts := range byLang {
		if len(texts) > 1 {
			d.Divergent = true
			break
		}
	}

	if !d.Divergent && len(d.Missing) == 0 {
		return nil
	}
	return &d
}

var _ Engine = (*ManuscriptEngine)(nil)
