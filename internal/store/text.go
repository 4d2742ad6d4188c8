package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"bcnav/internal/corpus"
	apperrors "bcnav/internal/errors"
	"bcnav/internal/ref"
)

// markupTags matches OSIS/GBF/ThML style markup left in source texts.
var markupTags = regexp.MustCompile(`<[^>]+>`)

// CleanMarkup strips markup tags and collapses whitespace. Applied once
// at import time; stored text is always clean.
func CleanMarkup(text string) string {
	text = markupTags.ReplaceAllString(text, "")
	return strings.Join(strings.Fields(text), " ")
}

// PutWitness stores one tradition's text for a coordinate, replacing any
// previous text. Markup is stripped before storage.
func (s *Store) PutWitness(ctx context.Context, w corpus.Witness) error {
	if !w.Coordinate.Valid() {
		return &apperrors.ParseError{Input: w.Coordinate.String(), Message: "invalid coordinate"}
	}
	clean := CleanMarkup(w.Text)
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO witnesses (tradition, book, chapter, verse, language, text, text_folded)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		string(w.Tradition), w.Coordinate.Book, w.Coordinate.Chapter, w.Coordinate.Verse,
		string(w.Language), clean, corpus.Fold(clean))
	return err
}

// Text returns the witness for a coordinate in one tradition.
func (s *Store) Text(ctx context.Context, c ref.Coordinate, tradition corpus.Tradition) (corpus.Witness, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT tradition, book, chapter, verse, language, text
		 FROM witnesses WHERE tradition = ? AND book = ? AND chapter = ? AND verse = ?`,
		string(tradition), c.Book, c.Chapter, c.Verse)

	w, err := scanWitness(row)
	if errors.Is(err, sql.ErrNoRows) {
		return corpus.Witness{}, &apperrors.NotFoundError{Resource: "verse", ID: fmt.Sprintf("%s (%s)", c, tradition)}
	}
	return w, err
}

// Witnesses returns every tradition's witness for a coordinate, ordered
// by tradition tag for determinism. An empty slice is a lacuna, not an
// error.
func (s *Store) Witnesses(ctx context.Context, c ref.Coordinate) ([]corpus.Witness, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT tradition, book, chapter, verse, language, text
		 FROM witnesses WHERE book = ? AND chapter = ? AND verse = ? ORDER BY tradition`,
		c.Book, c.Chapter, c.Verse)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var witnesses []corpus.Witness
	for rows.Next() {
		w, err := scanWitness(rows)
		if err != nil {
			return nil, err
		}
		witnesses = append(witnesses, w)
	}
	return witnesses, rows.Err()
}

// Search returns coordinates whose stored text contains the keyword,
// case- and diacritic-insensitive, in canonical order.
func (s *Store) Search(ctx context.Context, keyword string, scope corpus.SearchScope) ([]ref.Coordinate, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, &apperrors.InvalidQueryError{Message: "empty search keyword"}
	}

	query := `SELECT DISTINCT w.book, w.chapter, w.verse, b.ord
		FROM witnesses w JOIN books b ON b.name = w.book
		WHERE w.text_folded LIKE ?`
	args := []any{"%" + corpus.Fold(keyword) + "%"}

	if scope.Book != "" {
		query += ` AND w.book = ?`
		args = append(args, scope.Book)
	}
	if scope.Tradition != "" {
		query += ` AND w.tradition = ?`
		args = append(args, string(scope.Tradition))
	}
	if scope.Testament != "" {
		query += ` AND b.testament = ?`
		args = append(args, string(scope.Testament))
	}
	query += ` ORDER BY b.ord, w.chapter, w.verse`
	if scope.MaxResults > 0 {
		query += fmt.Sprintf(` LIMIT %d`, scope.MaxResults)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var coords []ref.Coordinate
	for rows.Next() {
		var c ref.Coordinate
		var ord int
		if err := rows.Scan(&c.Book, &c.Chapter, &c.Verse, &ord); err != nil {
			return nil, err
		}
		coords = append(coords, c)
	}
	return coords, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWitness(row rowScanner) (corpus.Witness, error) {
	var w corpus.Witness
	var tradition, language string
	err := row.Scan(&tradition, &w.Coordinate.Book, &w.Coordinate.Chapter, &w.Coordinate.Verse, &language, &w.Text)
	if err != nil {
		return corpus.Witness{}, err
	}
	w.Tradition = corpus.Tradition(tradition)
	w.Language = corpus.Language(language)
	return w, nil
}
