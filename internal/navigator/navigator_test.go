package navigator

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"bcnav/internal/corpus"
	"bcnav/internal/engine"
	apperrors "bcnav/internal/errors"
	"bcnav/internal/graph"
	"bcnav/internal/ref"
)

// stubEngine returns a fixed result after an optional delay, counting
// invocations.
type stubEngine struct {
	dim    engine.Dimension
	result engine.Result
	delay  time.Duration
	calls  atomic.Int64
}

func (s *stubEngine) Dimension() engine.Dimension { return s.dim }

func (s *stubEngine) Query(ctx context.Context, concept string, opts engine.Options) engine.Result {
	s.calls.Add(1)
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	return s.result
}

func okEngine(dim engine.Dimension, coords ...ref.Coordinate) *stubEngine {
	facts := engine.Facts{Coordinates: coords}
	for _, c := range coords {
		facts.Evidence = append(facts.Evidence, lexEvidence("sin", c))
	}
	return &stubEngine{dim: dim, result: engine.Result{Dimension: dim, Facts: facts}}
}

func downEngine(dim engine.Dimension, reason apperrors.UnavailableReason) *stubEngine {
	return &stubEngine{dim: dim, result: engine.Result{
		Dimension: dim,
		Err:       &apperrors.UnavailableError{Dimension: string(dim), Reason: reason},
	}}
}

// edgeMap is an in-memory corpus.CrossReferenceStore.
type edgeMap map[ref.Coordinate][]corpus.CrossReferenceEdge

func (m edgeMap) EdgesFrom(ctx context.Context, c ref.Coordinate) ([]corpus.CrossReferenceEdge, error) {
	return m[c], nil
}

func TestNavigateRejectsEmptyConcept(t *testing.T) {
	n := New([]engine.Engine{okEngine(engine.DimText)}, nil, Config{})
	for _, concept := range []string{"", "   ", "\t"} {
		_, err := n.Navigate(context.Background(), concept, Options{})
		if err == nil {
			t.Fatalf("Navigate(%q) succeeded, want InvalidQuery", concept)
		}
		var invalid *apperrors.InvalidQueryError
		if !apperrors.As(err, &invalid) {
			t.Errorf("Navigate(%q) error = %v, want InvalidQueryError", concept, err)
		}
	}
}

func TestNavigateTotalFailure(t *testing.T) {
	engines := []engine.Engine{
		downEngine(engine.DimText, apperrors.ReasonProviderError),
		downEngine(engine.DimLinguistic, apperrors.ReasonNoData),
		downEngine(engine.DimManuscript, apperrors.ReasonNoData),
	}
	n := New(engines, nil, Config{})

	_, err := n.Navigate(context.Background(), "sin", Options{})
	if err == nil {
		t.Fatal("Navigate succeeded with every engine unavailable")
	}
	var total *apperrors.TotalFailureError
	if !apperrors.As(err, &total) {
		t.Fatalf("error = %v, want TotalFailureError", err)
	}
	if !apperrors.Is(err, apperrors.ErrTotalFailure) {
		t.Error("TotalFailureError does not unwrap to ErrTotalFailure")
	}
	if len(total.Notes) != 3 {
		t.Errorf("len(Notes) = %d, want one per engine", len(total.Notes))
	}
}

func TestNavigatePartialFailureReturnsResult(t *testing.T) {
	rom323 := coord("Romans", 3, 23)
	engines := []engine.Engine{
		okEngine(engine.DimText, rom323),
		downEngine(engine.DimLinguistic, apperrors.ReasonNoData),
		downEngine(engine.DimExtraBiblical, apperrors.ReasonProviderError),
	}
	n := New(engines, nil, Config{})

	result, err := n.Navigate(context.Background(), "sin", Options{})
	if err != nil {
		t.Fatalf("Navigate failed on partial availability: %v", err)
	}
	if len(result.Verses) != 1 || result.Verses[0].Coordinate != rom323 {
		t.Errorf("Verses = %v, want [%v]", result.Coordinates(), rom323)
	}
	if len(result.Notes) != 2 {
		t.Errorf("len(Notes) = %d, want a note per unavailable dimension", len(result.Notes))
	}
	if result.QueryID == "" {
		t.Error("QueryID not stamped")
	}
}

func TestNavigateSlowEngineTimesOut(t *testing.T) {
	rom323 := coord("Romans", 3, 23)
	slow := okEngine(engine.DimManuscript, coord("Romans", 6, 23))
	slow.delay = 500 * time.Millisecond
	engines := []engine.Engine{
		okEngine(engine.DimText, rom323),
		slow,
	}
	n := New(engines, nil, Config{EngineTimeout: 20 * time.Millisecond})

	start := time.Now()
	result, err := n.Navigate(context.Background(), "sin", Options{})
	if err != nil {
		t.Fatalf("Navigate failed: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 400*time.Millisecond {
		t.Errorf("Navigate blocked %v on a slow engine instead of abandoning it", elapsed)
	}
	if !result.Unavailable(engine.DimManuscript) {
		t.Fatal("slow engine not recorded unavailable")
	}
	for _, note := range result.Notes {
		if note.Dimension == engine.DimManuscript && note.Reason != apperrors.ReasonTimeout {
			t.Errorf("slow engine reason = %s, want timeout", note.Reason)
		}
	}
	if len(result.Verses) != 1 {
		t.Errorf("timed-out engine leaked coordinates: %v", result.Coordinates())
	}
}

func TestNavigateExpandsDirectMatches(t *testing.T) {
	rom323 := coord("Romans", 3, 23)
	rom512 := coord("Romans", 5, 12)
	rom623 := coord("Romans", 6, 23)
	gen47 := coord("Genesis", 4, 7)

	edges := edgeMap{
		rom323: {
			{Source: rom323, Target: rom512, Weight: 0.7},
			{Source: rom323, Target: coord("Psalms", 14, 3), Weight: 0.3},
		},
	}
	engines := []engine.Engine{
		okEngine(engine.DimText, rom323, rom623),
		okEngine(engine.DimLinguistic, gen47),
	}
	n := New(engines, graph.New(edges), Config{})

	result, err := n.Navigate(context.Background(), "sin", Options{
		MaxHops:       1,
		MinEdgeWeight: 0.5,
	})
	if err != nil {
		t.Fatalf("Navigate failed: %v", err)
	}

	want := []ref.Coordinate{gen47, rom323, rom512, rom623}
	got := result.Coordinates()
	if len(got) != len(want) {
		t.Fatalf("unified set = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unified set = %v, want %v", got, want)
		}
	}

	// Unified set is a superset of direct matches and a subset of direct
	// plus one-hop expansion.
	direct := map[ref.Coordinate]bool{rom323: true, rom623: true, gen47: true}
	reachable := map[ref.Coordinate]bool{rom323: true, rom623: true, gen47: true, rom512: true}
	for c := range direct {
		found := false
		for _, g := range got {
			if g == c {
				found = true
			}
		}
		if !found {
			t.Errorf("direct match %v missing from unified set", c)
		}
	}
	for _, g := range got {
		if !reachable[g] {
			t.Errorf("unified set contains %v, outside direct plus one hop", g)
		}
	}
}

func TestNavigateCachesResults(t *testing.T) {
	text := okEngine(engine.DimText, coord("Romans", 3, 23))
	n := New([]engine.Engine{text}, nil, Config{CacheSize: 8})

	first, err := n.Navigate(context.Background(), "sin", Options{})
	if err != nil {
		t.Fatalf("first Navigate failed: %v", err)
	}
	second, err := n.Navigate(context.Background(), "sin", Options{})
	if err != nil {
		t.Fatalf("second Navigate failed: %v", err)
	}
	if text.calls.Load() != 1 {
		t.Errorf("engine invoked %d times, want 1 (cache hit)", text.calls.Load())
	}
	if first.QueryID != second.QueryID {
		t.Error("cache hit returned a different result")
	}

	if _, err := n.Navigate(context.Background(), "grace", Options{}); err != nil {
		t.Fatalf("Navigate failed: %v", err)
	}
	if text.calls.Load() != 2 {
		t.Errorf("engine invoked %d times after distinct concept, want 2", text.calls.Load())
	}
}
