package graph

import (
	"context"
	"testing"

	"bcnav/internal/corpus"
	"bcnav/internal/ref"
)

// edgeMap is an in-memory corpus.CrossReferenceStore.
type edgeMap map[ref.Coordinate][]corpus.CrossReferenceEdge

func (m edgeMap) EdgesFrom(ctx context.Context, c ref.Coordinate) ([]corpus.CrossReferenceEdge, error) {
	return m[c], nil
}

func coord(book string, chapter, verse int) ref.Coordinate {
	return ref.Coordinate{Book: book, Chapter: chapter, Verse: verse}
}

func edge(src, tgt ref.Coordinate, w float64) corpus.CrossReferenceEdge {
	return corpus.CrossReferenceEdge{Source: src, Target: tgt, Weight: w}
}

func TestExpandOneHop(t *testing.T) {
	rom323 := coord("Romans", 3, 23)
	rom512 := coord("Romans", 5, 12)
	rom623 := coord("Romans", 6, 23)
	gen47 := coord("Genesis", 4, 7)
	jas115 := coord("James", 1, 15)

	edges := edgeMap{
		rom323: {edge(rom323, rom512, 0.7), edge(rom323, jas115, 0.3)},
		rom512: {edge(rom512, gen47, 0.9)},
	}
	a := New(edges)

	got, err := a.Expand(context.Background(), []ref.Coordinate{rom323, rom623}, 1, 0.5)
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}

	// One hop at weight 0.5: Romans 5:12 joins, James 1:15 (0.3) and the
	// two-hop Genesis 4:7 do not. Output is in canonical order.
	want := []ref.Coordinate{rom323, rom512, rom623}
	if len(got) != len(want) {
		t.Fatalf("Expand = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Expand = %v, want %v", got, want)
		}
	}
}

func TestExpandTwoHops(t *testing.T) {
	a1 := coord("Genesis", 1, 1)
	a2 := coord("Exodus", 1, 1)
	a3 := coord("Leviticus", 1, 1)

	edges := edgeMap{
		a1: {edge(a1, a2, 1.0)},
		a2: {edge(a2, a3, 1.0)},
	}
	a := New(edges)

	got, err := a.Expand(context.Background(), []ref.Coordinate{a1}, 2, 0)
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("two-hop expansion reached %d coordinates, want 3", len(got))
	}
}

func TestExpandTerminatesOnCycle(t *testing.T) {
	a1 := coord("Genesis", 1, 1)
	a2 := coord("Exodus", 1, 1)

	edges := edgeMap{
		a1: {edge(a1, a2, 1.0)},
		a2: {edge(a2, a1, 1.0)},
	}
	a := New(edges)

	got, err := a.Expand(context.Background(), []ref.Coordinate{a1}, 10, 0)
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("cyclic expansion = %v, want exactly 2 coordinates", got)
	}
}

func TestExpandDetailedProvenance(t *testing.T) {
	rom323 := coord("Romans", 3, 23)
	rom512 := coord("Romans", 5, 12)
	gen47 := coord("Genesis", 4, 7)

	edges := edgeMap{
		rom323: {edge(rom323, rom512, 0.7)},
		rom512: {edge(rom512, gen47, 0.9)},
	}
	a := New(edges)

	got, err := a.ExpandDetailed(context.Background(), []ref.Coordinate{rom323}, 2, 0.5)
	if err != nil {
		t.Fatalf("ExpandDetailed failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("reached %d coordinates, want 2: %v", len(got), got)
	}

	// Canonical order puts Genesis first; it was reached at hop 2 via
	// Romans 5:12 with that edge's weight.
	if got[0].Coordinate != gen47 || got[0].Source != rom512 || got[0].Weight != 0.9 || got[0].Hop != 2 {
		t.Errorf("Genesis 4:7 provenance = %+v", got[0])
	}
	if got[1].Coordinate != rom512 || got[1].Source != rom323 || got[1].Weight != 0.7 || got[1].Hop != 1 {
		t.Errorf("Romans 5:12 provenance = %+v", got[1])
	}
}

func TestExpandDefaultsAndDedup(t *testing.T) {
	a1 := coord("Genesis", 1, 1)
	a := New(edgeMap{})

	got, err := a.Expand(context.Background(), []ref.Coordinate{a1, a1, a1}, 0, 0.5)
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("duplicate seeds not deduplicated: %v", got)
	}
}
