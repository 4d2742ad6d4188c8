package importer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ulikunitz/xz"

	"bcnav/internal/corpus"
	"bcnav/internal/ref"
	"bcnav/internal/store"
)

const osisSample = `<?xml version="1.0" encoding="UTF-8"?>
<osis><osisText osisIDWork="Test">
  <div type="book" osisID="Gen">
    <chapter osisID="Gen.1">
      <verse osisID="Gen.1.1">In the beginning God created the heavens and the earth.</verse>
    </chapter>
  </div>
  <div type="book" osisID="Rom">
    <chapter osisID="Rom.3">
      <verse osisID="Rom.3.23">for all <w lemma="strong:G264" morph="V-2AAI-3P">sinned</w> and fall short</verse>
    </chapter>
  </div>
  <div type="book" osisID="Tob">
    <chapter osisID="Tob.1">
      <verse osisID="Tob.1.1">outside the canonical enumeration</verse>
    </chapter>
  </div>
</osisText></osis>`

func newTestImporter(t *testing.T) (*Importer, *store.Store) {
	t.Helper()
	s, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return New(s), s
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestImportOSIS(t *testing.T) {
	im, s := newTestImporter(t)
	ctx := context.Background()
	path := writeFile(t, "kjv.xml", osisSample)

	records, err := im.ImportOSIS(ctx, path, corpus.TraditionMT, corpus.LangEnglish)
	if err != nil {
		t.Fatalf("ImportOSIS failed: %v", err)
	}
	if records != 2 {
		t.Errorf("records = %d, want 2 canonical verses (Tobit skipped)", records)
	}

	w, err := s.Text(ctx, ref.Coordinate{Book: "Genesis", Chapter: 1, Verse: 1}, corpus.TraditionMT)
	if err != nil {
		t.Fatalf("imported verse not stored: %v", err)
	}
	if w.Text != "In the beginning God created the heavens and the earth." {
		t.Errorf("stored text = %q", w.Text)
	}

	occs, err := s.Occurrences(ctx, "G264")
	if err != nil {
		t.Fatalf("Occurrences failed: %v", err)
	}
	if len(occs) != 1 || occs[0].Coordinate != (ref.Coordinate{Book: "Romans", Chapter: 3, Verse: 23}) {
		t.Errorf("occurrences = %+v, want the tagged word at Romans 3:23", occs)
	}
	if occs[0].Morphology.Code != "V-2AAI-3P" {
		t.Errorf("morph code = %q, want raw tag preserved", occs[0].Morphology.Code)
	}

	logs, err := s.ImportLogs(ctx)
	if err != nil {
		t.Fatalf("ImportLogs failed: %v", err)
	}
	if len(logs) != 1 || logs[0].Status != "completed" || logs[0].Records != 2 {
		t.Errorf("import log = %+v, want one completed run with 2 records", logs)
	}
}

func TestImportOSISCompressed(t *testing.T) {
	im, s := newTestImporter(t)
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "kjv.xml.xz")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	xw, err := xz.NewWriter(f)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := xw.Write([]byte(osisSample)); err != nil {
		t.Fatal(err)
	}
	if err := xw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	records, err := im.ImportOSIS(ctx, path, corpus.TraditionLXX, corpus.LangGreek)
	if err != nil {
		t.Fatalf("ImportOSIS on .xz failed: %v", err)
	}
	if records != 2 {
		t.Errorf("records = %d, want 2", records)
	}
	if _, err := s.Text(ctx, ref.Coordinate{Book: "Romans", Chapter: 3, Verse: 23}, corpus.TraditionLXX); err != nil {
		t.Errorf("compressed import missing verse: %v", err)
	}
}

func TestImportOSISMissingFile(t *testing.T) {
	im, s := newTestImporter(t)
	ctx := context.Background()

	if _, err := im.ImportOSIS(ctx, filepath.Join(t.TempDir(), "absent.xml"), corpus.TraditionMT, corpus.LangHebrew); err == nil {
		t.Fatal("ImportOSIS succeeded on a missing file")
	}
	logs, err := s.ImportLogs(ctx)
	if err != nil {
		t.Fatalf("ImportLogs failed: %v", err)
	}
	if len(logs) != 1 || logs[0].Status != "failed" {
		t.Errorf("import log = %+v, want one failed run", logs)
	}
}

func TestImportCrossReferences(t *testing.T) {
	im, s := newTestImporter(t)
	ctx := context.Background()
	path := writeFile(t, "xrefs.tsv",
		"# source\ttarget\tweight\n"+
			"Rom 3:23\tRom 5:12\t0.7\n"+
			"Rom 3:23\tPs 14:3\t0.3\n")

	records, err := im.ImportCrossReferences(ctx, path)
	if err != nil {
		t.Fatalf("ImportCrossReferences failed: %v", err)
	}
	if records != 2 {
		t.Errorf("records = %d, want 2", records)
	}

	edges, err := s.EdgesFrom(ctx, ref.Coordinate{Book: "Romans", Chapter: 3, Verse: 23})
	if err != nil {
		t.Fatalf("EdgesFrom failed: %v", err)
	}
	if len(edges) != 2 || edges[0].Weight != 0.7 {
		t.Errorf("edges = %+v, want 2 edges ordered by weight", edges)
	}
}

func TestImportLexiconAndConceptMap(t *testing.T) {
	im, s := newTestImporter(t)
	ctx := context.Background()

	lexicon := writeFile(t, "lexicon.tsv",
		"H2398\tחטא\tHebrew\tchata\tto sin, miss the mark\n"+
			"G266\tἁμαρτία\tGreek\thamartia\tsin\n")
	if _, err := im.ImportLexicon(ctx, lexicon); err != nil {
		t.Fatalf("ImportLexicon failed: %v", err)
	}

	concepts := writeFile(t, "concepts.tsv", "Sin\tH2398\nsin\tG266\n")
	if _, err := im.ImportConceptMap(ctx, concepts); err != nil {
		t.Fatalf("ImportConceptMap failed: %v", err)
	}

	lemmas, err := s.LemmasForConcept(ctx, "SIN")
	if err != nil {
		t.Fatalf("LemmasForConcept failed: %v", err)
	}
	if len(lemmas) != 2 {
		t.Errorf("lemmas = %+v, want both mapped lemmas regardless of case", lemmas)
	}
}

func TestImportSources(t *testing.T) {
	im, s := newTestImporter(t)
	ctx := context.Background()
	path := writeFile(t, "sources.tsv",
		"Genesis\t4\t1\t4\t16\tJ\t0.6\tFriedman 2003\n"+
			"Genesis\t4\t7\t0\t0\tR\t0.4\n")

	records, err := im.ImportSources(ctx, path)
	if err != nil {
		t.Fatalf("ImportSources failed: %v", err)
	}
	if records != 2 {
		t.Errorf("records = %d, want 2", records)
	}

	assignments, err := s.AssignmentsFor(ctx, ref.Coordinate{Book: "Genesis", Chapter: 4, Verse: 7})
	if err != nil {
		t.Fatalf("AssignmentsFor failed: %v", err)
	}
	if len(assignments) != 2 {
		t.Errorf("assignments = %+v, want both overlapping records", assignments)
	}
}

func TestImportMetaphorsAndRemedies(t *testing.T) {
	im, s := newTestImporter(t)
	ctx := context.Background()

	metaphors := writeFile(t, "metaphors.tsv",
		"Isa 1:18\tsin\tstain\tmetaphor\tscarlet sins washed white\n")
	if _, err := im.ImportMetaphors(ctx, metaphors); err != nil {
		t.Fatalf("ImportMetaphors failed: %v", err)
	}
	records, err := s.MetaphorsFor(ctx, "sin", ref.Coordinate{Book: "Isaiah", Chapter: 1, Verse: 18})
	if err != nil || len(records) != 1 {
		t.Errorf("MetaphorsFor = %+v, %v; want the imported record", records, err)
	}

	remedies := writeFile(t, "remedies.tsv",
		"sin\tsacrifice\tsin offering\tLev 4:35; Heb 9:22\n")
	if _, err := im.ImportRemedies(ctx, remedies); err != nil {
		t.Fatalf("ImportRemedies failed: %v", err)
	}
	got, err := s.RemediesFor(ctx, "sin")
	if err != nil || len(got) != 1 || len(got[0].Support) != 2 {
		t.Errorf("RemediesFor = %+v, %v; want one remedy with 2 supports", got, err)
	}
}

func TestImportExtraBiblical(t *testing.T) {
	im, s := newTestImporter(t)
	ctx := context.Background()
	path := writeFile(t, "extra.tsv",
		"Sefaria\tMishnah Yoma\t8:9\t\tsin\trepentance atones\n")

	if _, err := im.ImportExtraBiblical(ctx, path); err != nil {
		t.Fatalf("ImportExtraBiblical failed: %v", err)
	}
	client := s.CorpusClient("Sefaria")
	refs, err := client.Citations(ctx, "sin")
	if err != nil || len(refs) != 1 {
		t.Errorf("Citations = %+v, %v; want the imported citation", refs, err)
	}
}
