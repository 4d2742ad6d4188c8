package store

import (
	"context"

	"bcnav/internal/corpus"
	apperrors "bcnav/internal/errors"
	"bcnav/internal/ref"
)

// PutEdge stores one cross-reference edge. Self-loops are rejected.
func (s *Store) PutEdge(ctx context.Context, e corpus.CrossReferenceEdge) error {
	if e.Source == e.Target {
		return &apperrors.ParseError{Input: e.Source.String(), Message: "cross-reference self-loop"}
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO cross_references (src_book, src_chapter, src_verse, tgt_book, tgt_chapter, tgt_verse, weight)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.Source.Book, e.Source.Chapter, e.Source.Verse,
		e.Target.Book, e.Target.Chapter, e.Target.Verse, e.Weight)
	return err
}

// EdgesFrom returns the outgoing cross-reference edges of a coordinate.
func (s *Store) EdgesFrom(ctx context.Context, c ref.Coordinate) ([]corpus.CrossReferenceEdge, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT src_book, src_chapter, src_verse, tgt_book, tgt_chapter, tgt_verse, weight
		 FROM cross_references WHERE src_book = ? AND src_chapter = ? AND src_verse = ?
		 ORDER BY weight DESC`,
		c.Book, c.Chapter, c.Verse)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var edges []corpus.CrossReferenceEdge
	for rows.Next() {
		var e corpus.CrossReferenceEdge
		err := rows.Scan(
			&e.Source.Book, &e.Source.Chapter, &e.Source.Verse,
			&e.Target.Book, &e.Target.Chapter, &e.Target.Verse, &e.Weight)
		if err != nil {
			return nil, err
		}
		edges = append(edges, e)
	}
	return edges, rows.Err()
}
