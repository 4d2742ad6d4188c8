package corpus

import (
	"context"

	"bcnav/internal/ref"
)

// SearchScope filters a keyword search.
type SearchScope struct {
	Book       string    // Limit to one canonical book ("" = whole canon)
	Tradition  Tradition // Limit to one tradition ("" = all)
	Testament  ref.Testament
	MaxResults int // 0 = unlimited
}

// TextProvider supplies verse text per coordinate and tradition, and
// keyword search over it. Implementations index already-normalized text;
// acquisition and markup stripping happen at import time.
type TextProvider interface {
	// Text returns the witness for a coordinate in one tradition.
	// Missing verses return errors.ErrNotFound (a lacuna, not a fault).
	Text(ctx context.Context, c ref.Coordinate, tradition Tradition) (Witness, error)

	// Witnesses returns every tradition's witness for a coordinate.
	// An empty slice is a valid answer.
	Witnesses(ctx context.Context, c ref.Coordinate) ([]Witness, error)

	// Search returns the coordinates whose text contains the keyword.
	// Matching is case- and diacritic-insensitive.
	Search(ctx context.Context, keyword string, scope SearchScope) ([]ref.Coordinate, error)
}

// LexiconProvider supplies lemma identity and occurrence data.
type LexiconProvider interface {
	// Lemma resolves a Strong's number or root form to a lemma identity.
	Lemma(ctx context.Context, strongsOrRoot string) (Lemma, error)

	// LemmasForConcept returns the lemma identities mapped to a concept
	// name. The mapping is data, not logic.
	LemmasForConcept(ctx context.Context, concept string) ([]Lemma, error)

	// Occurrences returns every occurrence of a lemma with full
	// morphology.
	Occurrences(ctx context.Context, lemmaID string) ([]LemmaOccurrence, error)
}

// CrossReferenceStore exposes the cross-reference graph one node at a
// time; traversal policy belongs to the graph accessor.
type CrossReferenceStore interface {
	EdgesFrom(ctx context.Context, c ref.Coordinate) ([]CrossReferenceEdge, error)
}

// SourceProvider supplies source-critical layer assignments.
type SourceProvider interface {
	// AssignmentsFor returns every assignment whose span overlaps the
	// coordinate. Competing assignments are all returned, never merged.
	AssignmentsFor(ctx context.Context, c ref.Coordinate) ([]SourceAssignment, error)
}

// RemedyProvider supplies remedy records for a concept.
type RemedyProvider interface {
	RemediesFor(ctx context.Context, concept string) ([]RemedyRecord, error)
}

// CorpusClient queries one external corpus (CAL, Perseus, Sefaria, ...)
// for citations. Each client is queried independently; a failing client
// must not block the others.
type CorpusClient interface {
	// Name identifies the external corpus.
	Name() string

	// Citations returns citations for a concept name or lemma identity.
	Citations(ctx context.Context, conceptOrLemma string) ([]ExtraBiblicalReference, error)
}

// Classifier is the black-box metaphor detector. The core only invokes it
// per verse and collects structured output.
type Classifier interface {
	Classify(ctx context.Context, concept string, w Witness) ([]MetaphorRecord, error)
}
