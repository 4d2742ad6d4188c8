package importer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/antchfx/xmlquery"

	"bcnav/internal/corpus"
	apperrors "bcnav/internal/errors"
	"bcnav/internal/logging"
	"bcnav/internal/ref"
)

// ImportOSIS loads an OSIS XML document (optionally .xz compressed) as
// one manuscript tradition's witnesses. Verse coordinates come from the
// osisID attribute ("Gen.1.1"); tagged words with Strong's lemma
// attributes also become lemma occurrences. Verses whose osisID does not
// resolve against the canonical book enumeration are skipped and
// counted, not fatal: OSIS documents routinely carry deuterocanonical
// material outside the 66-book canon.
func (im *Importer) ImportOSIS(ctx context.Context, path string, tradition corpus.Tradition, language corpus.Language) (int, error) {
	started := time.Now()
	importType := "osis:" + string(tradition)

	r, err := openMaybeCompressed(path)
	if err != nil {
		return 0, im.logRun(ctx, importType, started, 0, err)
	}
	defer r.Close()

	doc, err := xmlquery.Parse(r)
	if err != nil {
		return 0, im.logRun(ctx, importType, started, 0, fmt.Errorf("failed to parse OSIS document: %w", err))
	}

	records := 0
	skipped := 0
	for _, verse := range xmlquery.Find(doc, `//verse[@osisID]`) {
		if err := ctx.Err(); err != nil {
			return records, im.logRun(ctx, importType, started, records, err)
		}

		c, err := ref.ResolveCoordinate(verse.SelectAttr("osisID"))
		if err != nil {
			skipped++
			continue
		}

		if err := im.store.PutWitness(ctx, corpus.Witness{
			Tradition:  tradition,
			Coordinate: c,
			Text:       strings.TrimSpace(verse.InnerText()),
			Language:   language,
		}); err != nil {
			return records, im.logRun(ctx, importType, started, records, err)
		}
		records++

		if err := im.importTaggedWords(ctx, verse, c, language); err != nil {
			return records, im.logRun(ctx, importType, started, records, err)
		}
	}
	if records == 0 {
		err := fmt.Errorf("%w: no verses with osisID in %s", apperrors.ErrInvalidInput, path)
		return 0, im.logRun(ctx, importType, started, 0, err)
	}
	if skipped > 0 {
		logging.Debug("osis_verses_skipped", "path", path, "skipped", skipped)
	}
	return records, im.logRun(ctx, importType, started, records, nil)
}

// importTaggedWords stores lemma occurrences for <w> elements carrying
// a Strong's lemma attribute ("strong:H2398", possibly several,
// space-separated).
func (im *Importer) importTaggedWords(ctx context.Context, verse *xmlquery.Node, c ref.Coordinate, language corpus.Language) error {
	position := 0
	for _, w := range xmlquery.Find(verse, `.//w[@lemma]`) {
		position++
		surface := strings.TrimSpace(w.InnerText())
		morph := w.SelectAttr("morph")
		for _, lemmaRef := range strings.Fields(w.SelectAttr("lemma")) {
			strongs, ok := strongsNumber(lemmaRef)
			if !ok {
				continue
			}
			lemma := corpus.Lemma{Root: surface, Language: language, Strongs: strongs}
			if err := im.store.PutLemma(ctx, lemma); err != nil {
				return err
			}
			if err := im.store.PutOccurrence(ctx, corpus.LemmaOccurrence{
				Coordinate: c,
				Lemma:      lemma,
				Surface:    surface,
				Position:   position,
				Morphology: parseMorph(morph),
			}); err != nil {
				return err
			}
		}
	}
	return nil
}

// strongsNumber extracts the number from a "strong:H2398" style lemma
// reference.
func strongsNumber(lemmaRef string) (string, bool) {
	_, num, found := strings.Cut(lemmaRef, ":")
	if !found {
		num = lemmaRef
	}
	num = strings.TrimSpace(num)
	if len(num) < 2 {
		return "", false
	}
	switch num[0] {
	case 'H', 'G':
	default:
		return "", false
	}
	for _, r := range num[1:] {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	return num, true
}

// parseMorph keeps the raw tagging-scheme code. Feature decomposition
// depends on the scheme (Robinson, OSHM) and stays in the raw code until
// a scheme-specific decoder exists.
func parseMorph(code string) corpus.Morphology {
	return corpus.Morphology{Code: strings.TrimSpace(code)}
}
