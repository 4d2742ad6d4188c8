package navigator

import (
	"time"

	"bcnav/internal/corpus"
	"bcnav/internal/engine"
	apperrors "bcnav/internal/errors"
	"bcnav/internal/graph"
	"bcnav/internal/ref"
)

// DimensionNote records a dimension that contributed nothing because its
// engine was unavailable. The note carries why, so callers can tell "no
// data exists" from "the engine could not be reached".
type DimensionNote struct {
	Dimension engine.Dimension            `json:"dimension"`
	Reason    apperrors.UnavailableReason `json:"reason"`
	Detail    string                      `json:"detail,omitempty"`
}

// VerseDetail is the merged per-verse record of a ConceptResult. A
// dimension that produced nothing for this coordinate leaves its slot
// absent, never zero-filled.
type VerseDetail struct {
	Coordinate  ref.Coordinate            `json:"coordinate"`
	Witnesses   []corpus.Witness          `json:"witnesses,omitempty"`
	Occurrences []corpus.LemmaOccurrence  `json:"occurrences,omitempty"`
	Divergence  *engine.Divergence        `json:"divergence,omitempty"`
	Metaphors   []corpus.MetaphorRecord   `json:"metaphors,omitempty"`
	Assignments []corpus.SourceAssignment `json:"assignments,omitempty"`

	// Evidence keeps every detection record for this coordinate; no
	// method's record is discarded when several agree.
	Evidence []corpus.ConceptEvidence `json:"evidence,omitempty"`

	// PrimaryConfidence is the ranking signal: the maximum confidence
	// across all evidence methods.
	PrimaryConfidence float64 `json:"primary_confidence"`

	// ExpandedFrom is set when this coordinate entered the result only
	// through cross-reference expansion, recording the edge that reached
	// it.
	ExpandedFrom *graph.Reached `json:"expanded_from,omitempty"`
}

// ConceptResult is the merged answer to one concept query.
type ConceptResult struct {
	QueryID     string    `json:"query_id,omitempty"`
	Concept     string    `json:"concept"`
	GeneratedAt time.Time `json:"generated_at,omitempty"`

	// Verses is the unified coverage set in canonical order.
	Verses []VerseDetail `json:"verses"`

	// Lemmas are the concept's resolved lemma identities.
	Lemmas []corpus.Lemma `json:"lemmas,omitempty"`

	// Citations and Remedies are concept-level, not verse-level.
	Citations []corpus.ExtraBiblicalReference `json:"citations,omitempty"`
	Remedies  []corpus.RemedyRecord           `json:"remedies,omitempty"`

	// SourceNotes records collaborators that failed partially (external
	// corpora, graph expansion) without making the query fail.
	SourceNotes []string `json:"source_notes,omitempty"`

	// Notes records dimensions that were unavailable for this query.
	Notes []DimensionNote `json:"notes,omitempty"`
}

// Coordinates returns the unified coverage set in result order.
func (r ConceptResult) Coordinates() []ref.Coordinate {
	coords := make([]ref.Coordinate, len(r.Verses))
	for i, v := range r.Verses {
		coords[i] = v.Coordinate
	}
	return coords
}

// Unavailable reports whether the named dimension was unavailable.
func (r ConceptResult) Unavailable(d engine.Dimension) bool {
	for _, n := range r.Notes {
		if n.Dimension == d {
			return true
		}
	}
	return false
}
