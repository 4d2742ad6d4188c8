package store

import (
	"context"
	"encoding/json"
	"strings"

	"bcnav/internal/corpus"
	"bcnav/internal/ref"
)

// PutMetaphor stores one curated metaphor record.
func (s *Store) PutMetaphor(ctx context.Context, m corpus.MetaphorRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO metaphors (book, chapter, verse, concept, source_domain, metaphor_type, description)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.Coordinate.Book, m.Coordinate.Chapter, m.Coordinate.Verse,
		strings.ToLower(strings.TrimSpace(m.Concept)), m.SourceDomain, m.MetaphorType, m.Description)
	return err
}

// MetaphorsFor returns curated metaphor records for a concept at one
// coordinate.
func (s *Store) MetaphorsFor(ctx context.Context, concept string, c ref.Coordinate) ([]corpus.MetaphorRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT book, chapter, verse, concept, source_domain, metaphor_type, description
		 FROM metaphors WHERE concept = ? AND book = ? AND chapter = ? AND verse = ?`,
		strings.ToLower(strings.TrimSpace(concept)), c.Book, c.Chapter, c.Verse)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []corpus.MetaphorRecord
	for rows.Next() {
		var m corpus.MetaphorRecord
		err := rows.Scan(&m.Coordinate.Book, &m.Coordinate.Chapter, &m.Coordinate.Verse,
			&m.Concept, &m.SourceDomain, &m.MetaphorType, &m.Description)
		if err != nil {
			return nil, err
		}
		records = append(records, m)
	}
	return records, rows.Err()
}

// PutRemedy stores one remedy record. Supporting coordinates are kept as
// a JSON array.
func (s *Store) PutRemedy(ctx context.Context, r corpus.RemedyRecord) error {
	support, err := json.Marshal(r.Support)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO remedies (concept, remedy_type, description, support) VALUES (?, ?, ?, ?)`,
		strings.ToLower(strings.TrimSpace(r.Concept)), r.RemedyType, r.Description, string(support))
	return err
}

// RemediesFor returns the remedy records for a concept.
func (s *Store) RemediesFor(ctx context.Context, concept string) ([]corpus.RemedyRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT concept, remedy_type, description, support FROM remedies WHERE concept = ? ORDER BY remedy_type`,
		strings.ToLower(strings.TrimSpace(concept)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var remedies []corpus.RemedyRecord
	for rows.Next() {
		var r corpus.RemedyRecord
		var support string
		if err := rows.Scan(&r.Concept, &r.RemedyType, &r.Description, &support); err != nil {
			return nil, err
		}
		if support != "" {
			if err := json.Unmarshal([]byte(support), &r.Support); err != nil {
				return nil, err
			}
		}
		remedies = append(remedies, r)
	}
	return remedies, rows.Err()
}

// PutExtraBiblical stores one extra-biblical citation.
func (s *Store) PutExtraBiblical(ctx context.Context, e corpus.ExtraBiblicalReference) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO extra_biblical (lemma_id, concept, corpus, work, citation, context, language, url)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.LemmaID, strings.ToLower(strings.TrimSpace(e.Concept)), e.Corpus, e.Work, e.Citation,
		e.Context, string(e.Language), e.URL)
	return err
}

// corpusClient is a Store-backed corpus.CorpusClient scoped to one
// external corpus tag. It serves citations imported offline.
type corpusClient struct {
	store  *Store
	corpus string
}

// CorpusClient returns a client serving citations imported from one
// external corpus (e.g. "CAL", "Perseus", "Sefaria").
func (s *Store) CorpusClient(corpusTag string) corpus.CorpusClient {
	return &corpusClient{store: s, corpus: corpusTag}
}

// CorpusTags returns the distinct external corpus tags present in the
// store, each usable with CorpusClient.
func (s *Store) CorpusTags(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT corpus FROM extra_biblical ORDER BY corpus`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

func (c *corpusClient) Name() string {
	return c.corpus
}

func (c *corpusClient) Citations(ctx context.Context, conceptOrLemma string) ([]corpus.ExtraBiblicalReference, error) {
	rows, err := c.store.db.QueryContext(ctx,
		`SELECT lemma_id, concept, corpus, work, citation, context, language, url
		 FROM extra_biblical
		 WHERE corpus = ? AND (lemma_id = ? OR concept = ?)
		 ORDER BY work, citation`,
		c.corpus, conceptOrLemma, strings.ToLower(strings.TrimSpace(conceptOrLemma)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var refs []corpus.ExtraBiblicalReference
	for rows.Next() {
		var e corpus.ExtraBiblicalReference
		var language string
		err := rows.Scan(&e.LemmaID, &e.Concept, &e.Corpus, &e.Work, &e.Citation, &e.Context, &language, &e.URL)
		if err != nil {
			return nil, err
		}
		e.Language = corpus.Language(language)
		refs = append(refs, e)
	}
	return refs, rows.Err()
}
