package engine

import (
	"context"
	"errors"
	"testing"

	"bcnav/internal/corpus"
	apperrors "bcnav/internal/errors"
	"bcnav/internal/ref"
)

func coord(book string, chapter, verse int) ref.Coordinate {
	return ref.Coordinate{Book: book, Chapter: chapter, Verse: verse}
}

// fakeText is an in-memory corpus.TextProvider with controllable
// failure.
type fakeText struct {
	witnesses map[ref.Coordinate][]corpus.Witness
	matches   []ref.Coordinate
	searchErr error
	fetchErr  error
}

func (f *fakeText) Text(ctx context.Context, c ref.Coordinate, tradition corpus.Tradition) (corpus.Witness, error) {
	for _, w := range f.witnesses[c] {
		if w.Tradition == tradition {
			return w, nil
		}
	}
	return corpus.Witness{}, apperrors.ErrNotFound
}

func (f *fakeText) Witnesses(ctx context.Context, c ref.Coordinate) ([]corpus.Witness, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.witnesses[c], nil
}

func (f *fakeText) Search(ctx context.Context, keyword string, scope corpus.SearchScope) ([]ref.Coordinate, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	var out []ref.Coordinate
	for _, c := range f.matches {
		if scope.Book != "" && c.Book != scope.Book {
			continue
		}
		out = append(out, c)
		if scope.MaxResults > 0 && len(out) == scope.MaxResults {
			break
		}
	}
	return out, nil
}

// fakeLexicon is an in-memory corpus.LexiconProvider.
type fakeLexicon struct {
	concepts    map[string][]corpus.Lemma
	occurrences map[string][]corpus.LemmaOccurrence
	err         error
}

func (f *fakeLexicon) Lemma(ctx context.Context, strongsOrRoot string) (corpus.Lemma, error) {
	for _, lemmas := range f.concepts {
		for _, l := range lemmas {
			if l.Strongs == strongsOrRoot || l.Root == strongsOrRoot {
				return l, nil
			}
		}
	}
	return corpus.Lemma{}, apperrors.ErrNotFound
}

func (f *fakeLexicon) LemmasForConcept(ctx context.Context, concept string) ([]corpus.Lemma, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.concepts[concept], nil
}

func (f *fakeLexicon) Occurrences(ctx context.Context, lemmaID string) ([]corpus.LemmaOccurrence, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.occurrences[lemmaID], nil
}

// staticProbe answers Populated with a fixed value.
type staticProbe bool

func (p staticProbe) Populated(ctx context.Context, d Dimension) (bool, error) {
	return bool(p), nil
}

func witness(c ref.Coordinate, tradition corpus.Tradition, text string) corpus.Witness {
	lang := corpus.LangEnglish
	return corpus.Witness{Tradition: tradition, Coordinate: c, Text: text, Language: lang}
}

func TestTextEngineFindsWitnesses(t *testing.T) {
	rom323 := coord("Romans", 3, 23)
	provider := &fakeText{
		matches: []ref.Coordinate{rom323},
		witnesses: map[ref.Coordinate][]corpus.Witness{
			rom323: {
				witness(rom323, corpus.TraditionNA28, "all have sinned"),
				witness(rom323, corpus.TraditionVulgate, "omnes enim peccaverunt"),
			},
		},
	}
	e := NewTextEngine(provider, staticProbe(true))

	r := e.Query(context.Background(), "sin", Options{})
	if r.Unavailable() {
		t.Fatalf("engine unavailable: %v", r.Err)
	}
	if got := len(r.Facts.Witnesses[rom323.String()]); got != 2 {
		t.Errorf("witnesses at %s = %d, want 2", rom323, got)
	}
	if len(r.Facts.Evidence) != 1 || r.Facts.Evidence[0].Confidence != LexicalMatchConfidence {
		t.Errorf("evidence = %+v, want one lexical record at confidence 1.0", r.Facts.Evidence)
	}

	r = e.Query(context.Background(), "sin", Options{Traditions: []corpus.Tradition{corpus.TraditionNA28}})
	if got := len(r.Facts.Witnesses[rom323.String()]); got != 1 {
		t.Errorf("filtered witnesses = %d, want 1", got)
	}
}

func TestTextEngineThreeWayDistinction(t *testing.T) {
	tests := []struct {
		name            string
		provider        *fakeText
		probe           Probe
		wantUnavailable bool
		wantReason      apperrors.UnavailableReason
	}{
		{
			name:            "provider failure",
			provider:        &fakeText{searchErr: errors.New("disk gone")},
			probe:           staticProbe(true),
			wantUnavailable: true,
			wantReason:      apperrors.ReasonProviderError,
		},
		{
			name:            "dataset never imported",
			provider:        &fakeText{},
			probe:           staticProbe(false),
			wantUnavailable: true,
			wantReason:      apperrors.ReasonNoData,
		},
		{
			name:            "dataset present, concept absent",
			provider:        &fakeText{},
			probe:           staticProbe(true),
			wantUnavailable: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewTextEngine(tt.provider, tt.probe)
			r := e.Query(context.Background(), "sin", Options{})
			if r.Unavailable() != tt.wantUnavailable {
				t.Fatalf("Unavailable() = %v, want %v (err %v)", r.Unavailable(), tt.wantUnavailable, r.Err)
			}
			if tt.wantUnavailable && r.Err.Reason != tt.wantReason {
				t.Errorf("reason = %s, want %s", r.Err.Reason, tt.wantReason)
			}
			if !tt.wantUnavailable && !r.Facts.Empty() {
				t.Errorf("facts = %+v, want empty", r.Facts)
			}
		})
	}
}

func TestLinguisticEngineOccurrences(t *testing.T) {
	gen47 := coord("Genesis", 4, 7)
	ps513 := coord("Psalms", 51, 3)
	lemma := corpus.Lemma{Root: "חטא", Language: corpus.LangHebrew, Strongs: "H2398"}
	lexicon := &fakeLexicon{
		concepts: map[string][]corpus.Lemma{"sin": {lemma}},
		occurrences: map[string][]corpus.LemmaOccurrence{
			"H2398": {
				{Coordinate: gen47, Lemma: lemma, Surface: "חַטָּאת", Morphology: corpus.Morphology{POS: "noun"}},
				{Coordinate: ps513, Lemma: lemma, Surface: "חַטָּאתִי"},
			},
		},
	}
	e := NewLinguisticEngine(lexicon, staticProbe(true))

	r := e.Query(context.Background(), "sin", Options{})
	if r.Unavailable() {
		t.Fatalf("engine unavailable: %v", r.Err)
	}
	if len(r.Facts.Occurrences) != 2 {
		t.Errorf("occurrences = %d, want 2", len(r.Facts.Occurrences))
	}
	if r.Facts.Occurrences[0].Morphology.POS != "noun" {
		t.Error("morphology dropped from occurrence")
	}

	r = e.Query(context.Background(), "sin", Options{Book: "Genesis"})
	if len(r.Facts.Occurrences) != 1 || r.Facts.Occurrences[0].Coordinate != gen47 {
		t.Errorf("book-scoped occurrences = %+v, want only Genesis 4:7", r.Facts.Occurrences)
	}
}

func TestManuscriptEngineDivergence(t *testing.T) {
	gen47 := coord("Genesis", 4, 7)
	isa11 := coord("Isaiah", 1, 1)
	provider := &fakeText{
		matches: []ref.Coordinate{gen47, isa11},
		witnesses: map[ref.Coordinate][]corpus.Witness{
			// MT present, LXX missing.
			gen47: {witness(gen47, corpus.TraditionMT, "sin crouches at the door")},
			// Both present and agreeing.
			isa11: {
				witness(isa11, corpus.TraditionMT, "the vision of isaiah"),
				witness(isa11, corpus.TraditionLXX, "the vision of isaiah"),
			},
		},
	}
	expected := []corpus.Tradition{corpus.TraditionMT, corpus.TraditionLXX}
	e := NewManuscriptEngine(provider, expected, staticProbe(true))

	r := e.Query(context.Background(), "sin", Options{})
	if r.Unavailable() {
		t.Fatalf("engine unavailable: %v", r.Err)
	}
	if len(r.Facts.Divergences) != 1 {
		t.Fatalf("divergences = %d, want only the lacuna coordinate", len(r.Facts.Divergences))
	}
	d := r.Facts.Divergences[0]
	if d.Coordinate != gen47 {
		t.Errorf("divergence at %v, want %v", d.Coordinate, gen47)
	}
	if len(d.Missing) != 1 || d.Missing[0] != corpus.TraditionLXX {
		t.Errorf("missing = %v, want [LXX]", d.Missing)
	}
}

func TestManuscriptEngineWordingDivergence(t *testing.T) {
	gen47 := coord("Genesis", 4, 7)
	provider := &fakeText{
		matches: []ref.Coordinate{gen47},
		witnesses: map[ref.Coordinate][]corpus.Witness{
			gen47: {
				{Tradition: corpus.TraditionMT, Coordinate: gen47, Text: "sin crouches", Language: corpus.LangEnglish},
				{Tradition: corpus.TraditionDSS, Coordinate: gen47, Text: "sin waits", Language: corpus.LangEnglish},
			},
		},
	}
	expected := []corpus.Tradition{corpus.TraditionMT, corpus.TraditionDSS}
	e := NewManuscriptEngine(provider, expected, staticProbe(true))

	r := e.Query(context.Background(), "sin", Options{})
	if len(r.Facts.Divergences) != 1 || !r.Facts.Divergences[0].Divergent {
		t.Errorf("divergences = %+v, want one wording divergence", r.Facts.Divergences)
	}
}

// flakyClassifier fails for one specific coordinate.
type flakyClassifier struct {
	failAt ref.Coordinate
}

func (f *flakyClassifier) Classify(ctx context.Context, concept string, w corpus.Witness) ([]corpus.MetaphorRecord, error) {
	if w.Coordinate == f.failAt {
		return nil, errors.New("model crashed")
	}
	return []corpus.MetaphorRecord{{
		Coordinate:   w.Coordinate,
		Concept:      concept,
		SourceDomain: "burden",
		MetaphorType: "metaphor",
	}}, nil
}

func TestSemanticEngineToleratesPerVerseFailure(t *testing.T) {
	var coords []ref.Coordinate
	witnesses := make(map[ref.Coordinate][]corpus.Witness)
	for v := 1; v <= 10; v++ {
		c := coord("Psalms", 38, v)
		coords = append(coords, c)
		witnesses[c] = []corpus.Witness{witness(c, corpus.TraditionMT, "my sin is a burden")}
	}
	failing := coords[4]
	provider := &fakeText{matches: coords, witnesses: witnesses}
	e := NewSemanticEngine(provider, &flakyClassifier{failAt: failing}, staticProbe(true))

	r := e.Query(context.Background(), "sin", Options{})
	if r.Unavailable() {
		t.Fatalf("one failing verse marked the whole engine unavailable: %v", r.Err)
	}
	if len(r.Facts.Metaphors) != 9 {
		t.Fatalf("metaphors = %d, want 9 of 10", len(r.Facts.Metaphors))
	}
	for _, m := range r.Facts.Metaphors {
		if m.Coordinate == failing {
			t.Errorf("failing verse %v present in metaphor set", failing)
		}
	}
}

// fakeSources returns fixed assignments per coordinate.
type fakeSources map[ref.Coordinate][]corpus.SourceAssignment

func (f fakeSources) AssignmentsFor(ctx context.Context, c ref.Coordinate) ([]corpus.SourceAssignment, error) {
	return f[c], nil
}

func TestHistoricalEngineKeepsCompetingAssignments(t *testing.T) {
	gen47 := coord("Genesis", 4, 7)
	provider := &fakeText{matches: []ref.Coordinate{gen47}}
	sources := fakeSources{
		gen47: {
			{Book: "Genesis", ChapterStart: 4, VerseStart: 1, ChapterEnd: 4, VerseEnd: 16, Source: "J", Confidence: 0.6},
			{Book: "Genesis", ChapterStart: 4, VerseStart: 7, Source: "R", Confidence: 0.4},
		},
	}
	e := NewHistoricalEngine(provider, sources, staticProbe(true))

	r := e.Query(context.Background(), "sin", Options{})
	if r.Unavailable() {
		t.Fatalf("engine unavailable: %v", r.Err)
	}
	if len(r.Facts.Assignments) != 2 {
		t.Fatalf("assignments = %d, want both competing records", len(r.Facts.Assignments))
	}
}

// fakeClient is a controllable corpus.CorpusClient.
type fakeClient struct {
	name string
	refs []corpus.ExtraBiblicalReference
	err  error
}

func (f *fakeClient) Name() string { return f.name }

func (f *fakeClient) Citations(ctx context.Context, key string) ([]corpus.ExtraBiblicalReference, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.refs, nil
}

func TestExtraBiblicalEnginePartialSuccess(t *testing.T) {
	good := &fakeClient{
		name: "Sefaria",
		refs: []corpus.ExtraBiblicalReference{
			{Corpus: "Sefaria", Work: "Mishnah Yoma", Citation: "8:9", Concept: "sin"},
		},
	}
	bad := &fakeClient{name: "Perseus", err: errors.New("connection refused")}
	e := NewExtraBiblicalEngine([]corpus.CorpusClient{good, bad}, nil, nil, staticProbe(true))

	r := e.Query(context.Background(), "sin", Options{})
	if r.Unavailable() {
		t.Fatalf("partial failure marked the engine unavailable: %v", r.Err)
	}
	if len(r.Facts.Citations) != 1 {
		t.Errorf("citations = %d, want the good client's record", len(r.Facts.Citations))
	}
	if len(r.Facts.SourceNotes) != 1 {
		t.Errorf("source notes = %v, want the failing client recorded", r.Facts.SourceNotes)
	}
}

func TestExtraBiblicalEngineAllClientsFail(t *testing.T) {
	clients := []corpus.CorpusClient{
		&fakeClient{name: "Perseus", err: errors.New("down")},
		&fakeClient{name: "CAL", err: errors.New("down")},
	}
	e := NewExtraBiblicalEngine(clients, nil, nil, staticProbe(true))

	r := e.Query(context.Background(), "sin", Options{})
	if !r.Unavailable() {
		t.Fatal("engine stayed available with every client failing")
	}
	if r.Err.Reason != apperrors.ReasonProviderError {
		t.Errorf("reason = %s, want provider_error", r.Err.Reason)
	}
}
