package navigator

import (
	"slices"

	"bcnav/internal/corpus"
	"bcnav/internal/engine"
	"bcnav/internal/graph"
	"bcnav/internal/ref"
)

// Merge combines engine results and the cross-reference expansion into
// one ConceptResult. It is a pure function: merging the same inputs
// twice yields identical output, and nothing accumulates across calls.
//
// The unified verse set is the union of every coordinate any engine
// touched plus the expansion. Each coordinate's detail record pulls the
// sub-results that reference it; an engine that produced nothing for a
// coordinate leaves its slot absent. An unavailable engine contributes
// nothing and is recorded as a dimension note.
func Merge(concept string, results []engine.Result, expansion []graph.Reached) ConceptResult {
	out := ConceptResult{Concept: concept}

	details := make(map[ref.Coordinate]*VerseDetail)
	detail := func(c ref.Coordinate) *VerseDetail {
		d, ok := details[c]
		if !ok {
			d = &VerseDetail{Coordinate: c}
			details[c] = d
		}
		return d
	}

	for _, r := range results {
		if r.Unavailable() {
			note := DimensionNote{Dimension: r.Dimension, Reason: r.Err.Reason}
			if r.Err.Err != nil {
				note.Detail = r.Err.Err.Error()
			}
			out.Notes = append(out.Notes, note)
			continue
		}

		f := r.Facts
		for _, c := range f.Coordinates {
			detail(c)
		}
		for _, witnesses := range f.Witnesses {
			for _, w := range witnesses {
				d := detail(w.Coordinate)
				d.Witnesses = append(d.Witnesses, w)
			}
		}
		for _, o := range f.Occurrences {
			d := detail(o.Coordinate)
			d.Occurrences = append(d.Occurrences, o)
		}
		for _, dv := range f.Divergences {
			d := detail(dv.Coordinate)
			dvCopy := dv
			d.Divergence = &dvCopy
		}
		for _, m := range f.Metaphors {
			d := detail(m.Coordinate)
			d.Metaphors = append(d.Metaphors, m)
		}
		// Competing assignments overlapping one coordinate are all kept.
		for _, c := range f.Coordinates {
			for _, a := range f.Assignments {
				if a.Covers(c) {
					d := detail(c)
					d.Assignments = append(d.Assignments, a)
				}
			}
		}
		for _, e := range f.Evidence {
			d := detail(e.Coordinate)
			d.Evidence = append(d.Evidence, e)
		}

		out.Lemmas = append(out.Lemmas, f.Lemmas...)
		out.Citations = append(out.Citations, f.Citations...)
		out.Remedies = append(out.Remedies, f.Remedies...)
		out.SourceNotes = append(out.SourceNotes, f.SourceNotes...)
	}

	for _, reached := range expansion {
		d, seen := details[reached.Coordinate]
		if !seen {
			d = detail(reached.Coordinate)
			rCopy := reached
			d.ExpandedFrom = &rCopy
		}
		d.Evidence = append(d.Evidence, corpus.ConceptEvidence{
			Concept:    concept,
			Coordinate: reached.Coordinate,
			Method:     corpus.DetectExpansion,
			Confidence: reached.Weight,
		})
	}

	out.Verses = make([]VerseDetail, 0, len(details))
	for _, d := range details {
		d.Witnesses = dedupeWitnesses(d.Witnesses)
		for _, e := range d.Evidence {
			if e.Confidence > d.PrimaryConfidence {
				d.PrimaryConfidence = e.Confidence
			}
		}
		out.Verses = append(out.Verses, *d)
	}
	slices.SortFunc(out.Verses, func(a, b VerseDetail) int {
		return ref.Compare(a.Coordinate, b.Coordinate)
	})
	return out
}

// dedupeWitnesses drops exact duplicates produced by several engines
// reporting the same witness, preserving first-seen order.
func dedupeWitnesses(witnesses []corpus.Witness) []corpus.Witness {
	if len(witnesses) < 2 {
		return witnesses
	}
	type key struct {
		t corpus.Tradition
		c ref.Coordinate
	}
	seen := make(map[key]bool, len(witnesses))
	out := witnesses[:0:0]
	for _, w := range witnesses {
		k := key{w.Tradition, w.Coordinate}
		if !seen[k] {
			seen[k] = true
			out = append(out, w)
		}
	}
	return out
}
