package store

import (
	"context"

	"bcnav/internal/corpus"
	"bcnav/internal/ref"
)

// PutAssignment stores one source-critical layer assignment.
func (s *Store) PutAssignment(ctx context.Context, a corpus.SourceAssignment) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO source_assignments
		 (book, chapter_start, verse_start, chapter_end, verse_end, source, confidence, scholar, date_earliest, date_latest, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.Book, a.ChapterStart, a.VerseStart, a.ChapterEnd, a.VerseEnd,
		a.Source, a.Confidence, a.Scholar, a.DateEarliest, a.DateLatest, a.Notes)
	return err
}

// AssignmentsFor returns every assignment whose span overlaps the
// coordinate. Competing assignments are all returned, never merged.
func (s *Store) AssignmentsFor(ctx context.Context, c ref.Coordinate) ([]corpus.SourceAssignment, error) {
	// Span overlap is finished in Go; the book filter keeps the scan
	// small and the span arithmetic readable.
	rows, err := s.db.QueryContext(ctx,
		`SELECT book, chapter_start, verse_start, chapter_end, verse_end,
		        source, confidence, scholar, date_earliest, date_latest, notes
		 FROM source_assignments WHERE book = ?
		 ORDER BY confidence DESC, source`,
		c.Book)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []corpus.SourceAssignment
	for rows.Next() {
		var a corpus.SourceAssignment
		err := rows.Scan(
			&a.Book, &a.ChapterStart, &a.VerseStart, &a.ChapterEnd, &a.VerseEnd,
			&a.Source, &a.Confidence, &a.Scholar, &a.DateEarliest, &a.DateLatest, &a.Notes)
		if err != nil {
			return nil, err
		}
		if a.Covers(c) {
			assignments = append(assignments, a)
		}
	}
	return assignments, rows.Err()
}
