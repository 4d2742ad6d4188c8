package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"bcnav/internal/corpus"
	apperrors "bcnav/internal/errors"
	"bcnav/internal/ref"
)

// tsvReader configures a reader for tab-separated dumps: comment lines
// start with '#', records may have trailing optional columns.
func tsvReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return cr
}

// eachRecord runs fn per TSV record of a dataset file and wraps the run
// in an import log entry.
func (im *Importer) eachRecord(ctx context.Context, importType, path string, minFields int, fn func(fields []string) error) (int, error) {
	started := time.Now()

	r, err := openMaybeCompressed(path)
	if err != nil {
		return 0, im.logRun(ctx, importType, started, 0, err)
	}
	defer r.Close()

	cr := tsvReader(r)
	records := 0
	for {
		if err := ctx.Err(); err != nil {
			return records, im.logRun(ctx, importType, started, records, err)
		}
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return records, im.logRun(ctx, importType, started, records, err)
		}
		if len(fields) < minFields {
			err := fmt.Errorf("%w: record %d has %d fields, need %d", apperrors.ErrInvalidInput, records+1, len(fields), minFields)
			return records, im.logRun(ctx, importType, started, records, err)
		}
		if err := fn(fields); err != nil {
			return records, im.logRun(ctx, importType, started, records, err)
		}
		records++
	}
	return records, im.logRun(ctx, importType, started, records, nil)
}

// ImportCrossReferences loads a TSV cross-reference dump:
// source-ref, target-ref, weight.
func (im *Importer) ImportCrossReferences(ctx context.Context, path string) (int, error) {
	return im.eachRecord(ctx, "cross_references", path, 3, func(fields []string) error {
		src, err := ref.ResolveCoordinate(fields[0])
		if err != nil {
			return err
		}
		tgt, err := ref.ResolveCoordinate(fields[1])
		if err != nil {
			return err
		}
		weight, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return fmt.Errorf("%w: bad weight %q", apperrors.ErrInvalidInput, fields[2])
		}
		return im.store.PutEdge(ctx, corpus.CrossReferenceEdge{Source: src, Target: tgt, Weight: weight})
	})
}

// ImportLexicon loads lemma identities:
// strongs, root, language, transliteration, gloss.
func (im *Importer) ImportLexicon(ctx context.Context, path string) (int, error) {
	return im.eachRecord(ctx, "lexicon", path, 3, func(fields []string) error {
		l := corpus.Lemma{
			Strongs:  strings.TrimSpace(fields[0]),
			Root:     strings.TrimSpace(fields[1]),
			Language: corpus.Language(strings.TrimSpace(fields[2])),
		}
		if len(fields) > 3 {
			l.Transliteration = strings.TrimSpace(fields[3])
		}
		if len(fields) > 4 {
			l.Gloss = strings.TrimSpace(fields[4])
		}
		return im.store.PutLemma(ctx, l)
	})
}

// ImportConceptMap loads concept-to-lemma mappings: concept, lemma-id.
func (im *Importer) ImportConceptMap(ctx context.Context, path string) (int, error) {
	return im.eachRecord(ctx, "concept_map", path, 2, func(fields []string) error {
		return im.store.MapConceptLemma(ctx, fields[0], strings.TrimSpace(fields[1]))
	})
}

// ImportSources loads source-critical assignments:
// book, chapter-start, verse-start, chapter-end, verse-end, source,
// confidence, scholar.
func (im *Importer) ImportSources(ctx context.Context, path string) (int, error) {
	return im.eachRecord(ctx, "source_assignments", path, 7, func(fields []string) error {
		book, err := ref.MatchBook(fields[0])
		if err != nil {
			return err
		}
		nums := make([]int, 4)
		for i := 0; i < 4; i++ {
			n, err := strconv.Atoi(strings.TrimSpace(fields[i+1]))
			if err != nil {
				return fmt.Errorf("%w: bad span number %q", apperrors.ErrInvalidInput, fields[i+1])
			}
			nums[i] = n
		}
		confidence, err := strconv.ParseFloat(fields[6], 64)
		if err != nil {
			return fmt.Errorf("%w: bad confidence %q", apperrors.ErrInvalidInput, fields[6])
		}
		a := corpus.SourceAssignment{
			Book:         book.Name,
			ChapterStart: nums[0],
			VerseStart:   nums[1],
			ChapterEnd:   nums[2],
			VerseEnd:     nums[3],
			Source:       strings.TrimSpace(fields[5]),
			Confidence:   confidence,
		}
		if len(fields) > 7 {
			a.Scholar = strings.TrimSpace(fields[7])
		}
		return im.store.PutAssignment(ctx, a)
	})
}

// ImportMetaphors loads curated metaphor records:
// reference, concept, source-domain, metaphor-type, description.
func (im *Importer) ImportMetaphors(ctx context.Context, path string) (int, error) {
	return im.eachRecord(ctx, "metaphors", path, 4, func(fields []string) error {
		c, err := ref.ResolveCoordinate(fields[0])
		if err != nil {
			return err
		}
		m := corpus.MetaphorRecord{
			Coordinate:   c,
			Concept:      strings.ToLower(strings.TrimSpace(fields[1])),
			SourceDomain: strings.TrimSpace(fields[2]),
			MetaphorType: strings.TrimSpace(fields[3]),
		}
		if len(fields) > 4 {
			m.Description = strings.TrimSpace(fields[4])
		}
		return im.store.PutMetaphor(ctx, m)
	})
}

// ImportRemedies loads remedy records:
// concept, remedy-type, description, supporting refs (';'-separated).
func (im *Importer) ImportRemedies(ctx context.Context, path string) (int, error) {
	return im.eachRecord(ctx, "remedies", path, 2, func(fields []string) error {
		r := corpus.RemedyRecord{
			Concept:    strings.ToLower(strings.TrimSpace(fields[0])),
			RemedyType: strings.TrimSpace(fields[1]),
		}
		if len(fields) > 2 {
			r.Description = strings.TrimSpace(fields[2])
		}
		if len(fields) > 3 {
			for _, part := range strings.Split(fields[3], ";") {
				part = strings.TrimSpace(part)
				if part == "" {
					continue
				}
				c, err := ref.ResolveCoordinate(part)
				if err != nil {
					return err
				}
				r.Support = append(r.Support, c)
			}
		}
		return im.store.PutRemedy(ctx, r)
	})
}

// ImportExtraBiblical loads cached external-corpus citations:
// corpus, work, citation, lemma-id, concept, context.
func (im *Importer) ImportExtraBiblical(ctx context.Context, path string) (int, error) {
	return im.eachRecord(ctx, "extra_biblical", path, 3, func(fields []string) error {
		e := corpus.ExtraBiblicalReference{
			Corpus:   strings.TrimSpace(fields[0]),
			Work:     strings.TrimSpace(fields[1]),
			Citation: strings.TrimSpace(fields[2]),
		}
		if len(fields) > 3 {
			e.LemmaID = strings.TrimSpace(fields[3])
		}
		if len(fields) > 4 {
			e.Concept = strings.ToLower(strings.TrimSpace(fields[4]))
		}
		if len(fields) > 5 {
			e.Context = strings.TrimSpace(fields[5])
		}
		return im.store.PutExtraBiblical(ctx, e)
	})
}
