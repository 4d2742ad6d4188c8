package store

import (
	"context"
	"fmt"

	"bcnav/internal/engine"
)

// Stats summarizes corpus contents per table, for status reporting.
type Stats struct {
	Witnesses       int `json:"witnesses"`
	Lemmas          int `json:"lemmas"`
	Occurrences     int `json:"occurrences"`
	CrossReferences int `json:"cross_references"`
	Assignments     int `json:"source_assignments"`
	Metaphors       int `json:"metaphors"`
	Remedies        int `json:"remedies"`
	ExtraBiblical   int `json:"extra_biblical"`
}

// Stats counts the rows behind every dimension.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	counts := []struct {
		table string
		dest  *int
	}{
		{"witnesses", &st.Witnesses},
		{"lemmas", &st.Lemmas},
		{"occurrences", &st.Occurrences},
		{"cross_references", &st.CrossReferences},
		{"source_assignments", &st.Assignments},
		{"metaphors", &st.Metaphors},
		{"remedies", &st.Remedies},
		{"extra_biblical", &st.ExtraBiblical},
	}
	for _, c := range counts {
		row := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+c.table)
		if err := row.Scan(c.dest); err != nil {
			return Stats{}, fmt.Errorf("failed to count %s: %w", c.table, err)
		}
	}
	return st, nil
}

// dimensionTables names the table whose emptiness means a dimension's
// dataset was never imported.
var dimensionTables = map[engine.Dimension]string{
	engine.DimText:          "witnesses",
	engine.DimLinguistic:    "lemmas",
	engine.DimManuscript:    "witnesses",
	engine.DimSemantic:      "witnesses",
	engine.DimHistorical:    "source_assignments",
	engine.DimExtraBiblical: "extra_biblical",
}

// Populated reports whether the dataset backing a dimension holds any
// rows. Implements engine.Probe.
func (s *Store) Populated(ctx context.Context, d engine.Dimension) (bool, error) {
	table, ok := dimensionTables[d]
	if !ok {
		return false, fmt.Errorf("unknown dimension %q", d)
	}
	var n int
	row := s.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM `+table+`)`)
	if err := row.Scan(&n); err != nil {
		return false, err
	}
	return n == 1, nil
}

var _ engine.Probe = (*Store)(nil)
