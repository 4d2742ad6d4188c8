package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"bcnav/internal/corpus"
	apperrors "bcnav/internal/errors"
)

// PutLemma stores a lemma identity.
func (s *Store) PutLemma(ctx context.Context, l corpus.Lemma) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO lemmas (id, root, transliteration, language, strongs, gloss)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		l.ID(), l.Root, l.Transliteration, string(l.Language), l.Strongs, l.Gloss)
	return err
}

// PutOccurrence stores one lemma occurrence with its morphology.
func (s *Store) PutOccurrence(ctx context.Context, o corpus.LemmaOccurrence) error {
	m := o.Morphology
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO occurrences
		 (lemma_id, book, chapter, verse, surface, position, morph, pos, person, gender, num, tense, voice, mood, gcase)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.Lemma.ID(), o.Coordinate.Book, o.Coordinate.Chapter, o.Coordinate.Verse,
		o.Surface, o.Position, m.Code, m.POS, m.Person, m.Gender, m.Number, m.Tense, m.Voice, m.Mood, m.Case)
	return err
}

// MapConceptLemma records that a concept resolves to a lemma. The mapping
// is data; the linguistic engine only reads it.
func (s *Store) MapConceptLemma(ctx context.Context, concept, lemmaID string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO concept_lemmas (concept, lemma_id) VALUES (?, ?)`,
		strings.ToLower(strings.TrimSpace(concept)), lemmaID)
	return err
}

// Lemma resolves a Strong's number, lemma id, or root form to a lemma.
func (s *Store) Lemma(ctx context.Context, strongsOrRoot string) (corpus.Lemma, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT root, transliteration, language, strongs, gloss FROM lemmas
		 WHERE id = ? OR strongs = ? OR root = ? LIMIT 1`,
		strongsOrRoot, strongsOrRoot, strongsOrRoot)

	l, err := scanLemma(row)
	if errors.Is(err, sql.ErrNoRows) {
		return corpus.Lemma{}, &apperrors.NotFoundError{Resource: "lemma", ID: strongsOrRoot}
	}
	return l, err
}

// LemmasForConcept returns the lemma identities mapped to a concept name.
func (s *Store) LemmasForConcept(ctx context.Context, concept string) ([]corpus.Lemma, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT l.root, l.transliteration, l.language, l.strongs, l.gloss
		 FROM concept_lemmas cl JOIN lemmas l ON l.id = cl.lemma_id
		 WHERE cl.concept = ? ORDER BY l.id`,
		strings.ToLower(strings.TrimSpace(concept)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lemmas []corpus.Lemma
	for rows.Next() {
		l, err := scanLemma(rows)
		if err != nil {
			return nil, err
		}
		lemmas = append(lemmas, l)
	}
	return lemmas, rows.Err()
}

// Occurrences returns every occurrence of a lemma in canonical order with
// full morphology.
func (s *Store) Occurrences(ctx context.Context, lemmaID string) ([]corpus.LemmaOccurrence, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT o.book, o.chapter, o.verse, o.surface, o.position,
		        o.morph, o.pos, o.person, o.gender, o.num, o.tense, o.voice, o.mood, o.gcase,
		        l.root, l.transliteration, l.language, l.strongs, l.gloss
		 FROM occurrences o
		 JOIN lemmas l ON l.id = o.lemma_id
		 JOIN books b ON b.name = o.book
		 WHERE o.lemma_id = ?
		 ORDER BY b.ord, o.chapter, o.verse, o.position`,
		lemmaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var occs []corpus.LemmaOccurrence
	for rows.Next() {
		var o corpus.LemmaOccurrence
		var m corpus.Morphology
		var language string
		err := rows.Scan(
			&o.Coordinate.Book, &o.Coordinate.Chapter, &o.Coordinate.Verse, &o.Surface, &o.Position,
			&m.Code, &m.POS, &m.Person, &m.Gender, &m.Number, &m.Tense, &m.Voice, &m.Mood, &m.Case,
			&o.Lemma.Root, &o.Lemma.Transliteration, &language, &o.Lemma.Strongs, &o.Lemma.Gloss)
		if err != nil {
			return nil, err
		}
		o.Lemma.Language = corpus.Language(language)
		o.Morphology = m
		occs = append(occs, o)
	}
	return occs, rows.Err()
}

func scanLemma(row rowScanner) (corpus.Lemma, error) {
	var l corpus.Lemma
	var language string
	err := row.Scan(&l.Root, &l.Transliteration, &language, &l.Strongs, &l.Gloss)
	if err != nil {
		return corpus.Lemma{}, err
	}
	l.Language = corpus.Language(language)
	return l, nil
}
