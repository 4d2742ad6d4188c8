// Package engine implements the six research dimension engines. Every
// engine answers the same contract: a concept name in, a Result out,
// either a populated fact set or an explicit Unavailable marker, never an
// unhandled failure. Engines are independent, independently swappable,
// and may each depend on a different external provider.
package engine

import (
	"context"

	"bcnav/internal/corpus"
	apperrors "bcnav/internal/errors"
	"bcnav/internal/ref"
)

// Dimension names one research facet.
type Dimension string

const (
	DimText          Dimension = "text"
	DimLinguistic    Dimension = "linguistic"
	DimManuscript    Dimension = "manuscript"
	DimSemantic      Dimension = "semantic"
	DimHistorical    Dimension = "historical"
	DimExtraBiblical Dimension = "extrabiblical"
)

// Dimensions lists all six dimensions in presentation order.
var Dimensions = []Dimension{
	DimText, DimLinguistic, DimManuscript, DimSemantic, DimHistorical, DimExtraBiblical,
}

// Options scope a dimension query.
type Options struct {
	// Traditions to consult; empty means every imported tradition.
	Traditions []corpus.Tradition
	// Book limits matching to one canonical book.
	Book string
	// MaxResults caps the coordinate set per engine (0 = unlimited).
	MaxResults int
}

// Divergence flags a coordinate where manuscript traditions disagree:
// text present in one tradition and absent or divergent in another.
type Divergence struct {
	Coordinate ref.Coordinate     `json:"coordinate"`
	Present    []corpus.Tradition `json:"present"`
	Missing    []corpus.Tradition `json:"missing,omitempty"`
	Divergent  bool               `json:"divergent"`
}

// Facts is the union of dimension-specific fact sets. Each engine fills
// only its own fields; absent fields stay nil.
type Facts struct {
	// Text dimension
	Witnesses map[string][]corpus.Witness `json:"witnesses,omitempty"` // keyed by rendered coordinate

	// Linguistic dimension
	Lemmas      []corpus.Lemma            `json:"lemmas,omitempty"`
	Occurrences []corpus.LemmaOccurrence  `json:"occurrences,omitempty"`

	// Manuscript dimension
	Divergences []Divergence `json:"divergences,omitempty"`

	// Semantic dimension
	Metaphors []corpus.MetaphorRecord `json:"metaphors,omitempty"`

	// Historical dimension
	Assignments []corpus.SourceAssignment `json:"assignments,omitempty"`

	// Extra-biblical dimension
	Citations []corpus.ExtraBiblicalReference `json:"citations,omitempty"`
	Remedies  []corpus.RemedyRecord           `json:"remedies,omitempty"`
	// SourceNotes records external corpora that failed; partial success
	// is a normal outcome, not a fault.
	SourceNotes []string `json:"source_notes,omitempty"`

	// Evidence links coordinates to the concept with a detection method
	// and confidence. Every engine that touches coordinates emits it.
	Evidence []corpus.ConceptEvidence `json:"evidence,omitempty"`

	// Coordinates is the deduplicated coordinate set this engine touched.
	Coordinates []ref.Coordinate `json:"coordinates,omitempty"`
}

// Empty reports whether the fact set holds nothing.
func (f Facts) Empty() bool {
	return len(f.Witnesses) == 0 && len(f.Lemmas) == 0 && len(f.Occurrences) == 0 &&
		len(f.Divergences) == 0 && len(f.Metaphors) == 0 && len(f.Assignments) == 0 &&
		len(f.Citations) == 0 && len(f.Remedies) == 0 && len(f.Evidence) == 0 &&
		len(f.Coordinates) == 0
}

// Result is a dimension engine's answer: either facts or an Unavailable
// marker. The three-way distinction matters: Unavailable (engine could
// not be consulted or holds no dataset), empty facts (engine ran, found
// nothing), populated facts (found).
type Result struct {
	Dimension Dimension
	Facts     Facts
	Err       *apperrors.UnavailableError // non-nil marks Unavailable
}

// Unavailable reports whether the engine could not produce an answer.
func (r Result) Unavailable() bool {
	return r.Err != nil
}

// Engine is the common contract of all six dimension engines. Query
// never returns a Go error; failures are folded into the Result.
type Engine interface {
	Dimension() Dimension
	Query(ctx context.Context, concept string, opts Options) Result
}

// Probe reports whether a dimension's backing dataset holds any rows at
// all. It separates "this dataset was never imported" (Unavailable with
// NoData) from "the dataset is there but the concept is not in it"
// (empty facts).
type Probe interface {
	Populated(ctx context.Context, d Dimension) (bool, error)
}

// unavailable builds an Unavailable result.
func unavailable(d Dimension, reason apperrors.UnavailableReason, err error) Result {
	return Result{
		Dimension: d,
		Err:       &apperrors.UnavailableError{Dimension: string(d), Reason: reason, Err: err},
	}
}

// fromProviderError classifies a provider failure: context expiry becomes
// Timeout, anything else ProviderError.
func fromProviderError(ctx context.Context, d Dimension, err error) Result {
	if ctx.Err() != nil {
		return unavailable(d, apperrors.ReasonTimeout, ctx.Err())
	}
	return unavailable(d, apperrors.ReasonProviderError, err)
}

// emptyOrNoData resolves an empty answer against the dataset probe.
func emptyOrNoData(ctx context.Context, probe Probe, d Dimension) Result {
	if probe != nil {
		populated, err := probe.Populated(ctx, d)
		if err == nil && !populated {
			return unavailable(d, apperrors.ReasonNoData, nil)
		}
	}
	return Result{Dimension: d}
}

// dedupe returns coords without duplicates, preserving first-seen order.
func dedupe(coords []ref.Coordinate) []ref.Coordinate {
	seen := make(map[ref.Coordinate]bool, len(coords))
	out := coords[:0:0]
	for _, c := range coords {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}
