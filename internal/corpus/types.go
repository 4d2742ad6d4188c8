// Package corpus defines the core data model shared by every research
// dimension: manuscript witnesses, lemma occurrences, cross-reference
// edges, concept evidence, and the provider contracts that supply them.
// All corpus entities are created during import and read-only at query
// time.
package corpus

import (
	"bcnav/internal/ref"
)

// Tradition tags a manuscript tradition.
type Tradition string

const (
	TraditionMT       Tradition = "MT"       // Masoretic Text
	TraditionLXX      Tradition = "LXX"      // Septuagint
	TraditionDSS      Tradition = "DSS"      // Dead Sea Scrolls
	TraditionPeshitta Tradition = "Peshitta" // Syriac Peshitta
	TraditionVulgate  Tradition = "Vulgate"  // Latin Vulgate
	TraditionTargum   Tradition = "Targum"   // Aramaic Targumim
	TraditionNA28     Tradition = "NA28"     // Nestle-Aland critical NT
)

// Language tags the language of a text or lemma.
type Language string

const (
	LangHebrew  Language = "Hebrew"
	LangGreek   Language = "Greek"
	LangAramaic Language = "Aramaic"
	LangSyriac  Language = "Syriac"
	LangLatin   Language = "Latin"
	LangEnglish Language = "English"
)

// Witness is one manuscript tradition's text for a verse coordinate.
// Multiple witnesses may exist per coordinate (one per tradition); a
// coordinate with no witness in some tradition is a lacuna, not an error.
type Witness struct {
	Tradition  Tradition      `json:"tradition"`
	Coordinate ref.Coordinate `json:"coordinate"`
	Text       string         `json:"text"`
	Language   Language       `json:"language"`
}

// Lemma is a dictionary root form in an original language, identified by
// root + language + Strong's-style number. The Strong's number is unique
// per lemma ("H2398", "G266").
type Lemma struct {
	Root            string   `json:"root"`
	Transliteration string   `json:"transliteration,omitempty"`
	Language        Language `json:"language"`
	Strongs         string   `json:"strongs"`
	Gloss           string   `json:"gloss,omitempty"`
}

// ID returns the unique lemma identity. Strong's numbers are unique on
// their own; root+language disambiguates lemmas that lack one.
func (l Lemma) ID() string {
	if l.Strongs != "" {
		return l.Strongs
	}
	return string(l.Language) + ":" + l.Root
}

// Morphology is the parsed feature set of one word occurrence. Any subset
// may be absent depending on part of speech; absent features are "".
type Morphology struct {
	Code   string `json:"code,omitempty"` // Raw tagging-scheme code
	POS    string `json:"pos,omitempty"`
	Person string `json:"person,omitempty"`
	Gender string `json:"gender,omitempty"`
	Number string `json:"number,omitempty"`
	Tense  string `json:"tense,omitempty"`
	Voice  string `json:"voice,omitempty"`
	Mood   string `json:"mood,omitempty"`
	Case   string `json:"case,omitempty"`
}

// LemmaOccurrence is one inflected appearance of a lemma in a verse.
// Many occurrences reference one lemma; an occurrence set may span
// multiple manuscript traditions.
type LemmaOccurrence struct {
	Coordinate ref.Coordinate `json:"coordinate"`
	Lemma      Lemma          `json:"lemma"`
	Surface    string         `json:"surface"`
	Position   int            `json:"position,omitempty"` // 1-indexed position in verse
	Morphology Morphology     `json:"morphology"`
}

// CrossReferenceEdge is a scholarly-asserted thematic link between two
// coordinates. Directed, self-loops excluded; weight is conventionally in
// [0,1] but not enforced.
type CrossReferenceEdge struct {
	Source ref.Coordinate `json:"source"`
	Target ref.Coordinate `json:"target"`
	Weight float64        `json:"weight"`
}

// DetectionMethod tags how a verse was linked to a concept.
type DetectionMethod string

const (
	DetectLexical   DetectionMethod = "lexical"   // Explicit keyword/lemma match
	DetectMetaphor  DetectionMethod = "metaphor"  // Metaphor classifier
	DetectExpansion DetectionMethod = "expansion" // Cross-reference graph expansion
)

// ConceptEvidence records one detection of a concept at a coordinate.
// A coordinate may carry evidence from several methods at once; the union
// of records, not any single one, defines "this verse is about this
// concept".
type ConceptEvidence struct {
	Concept    string          `json:"concept"`
	Coordinate ref.Coordinate  `json:"coordinate"`
	Method     DetectionMethod `json:"method"`
	Confidence float64         `json:"confidence"`
}

// MetaphorRecord is one detected metaphor or analogy for a concept.
type MetaphorRecord struct {
	Coordinate   ref.Coordinate `json:"coordinate"`
	Concept      string         `json:"concept"`
	SourceDomain string         `json:"source_domain"` // e.g. "disease", "debt", "burden"
	MetaphorType string         `json:"metaphor_type"` // simile, metaphor, personification
	Description  string         `json:"description,omitempty"`
}

// SourceAssignment maps a coordinate span to a source-critical layer
// (J/E/P/D/R). Competing scholarly assignments may overlap the same
// coordinate and must all be surfaced.
type SourceAssignment struct {
	Book         string  `json:"book"`
	ChapterStart int     `json:"chapter_start"`
	VerseStart   int     `json:"verse_start"`
	ChapterEnd   int     `json:"chapter_end,omitempty"` // 0 = same as start
	VerseEnd     int     `json:"verse_end,omitempty"`
	Source       string  `json:"source"` // J, E, D, P, R, or "unknown"
	Confidence   float64 `json:"confidence"`
	Scholar      string  `json:"scholar,omitempty"` // Attribution, e.g. "Friedman 2003"
	DateEarliest int     `json:"date_earliest,omitempty"`
	DateLatest   int     `json:"date_latest,omitempty"`
	Notes        string  `json:"notes,omitempty"`
}

// Covers reports whether the assignment's span includes the coordinate.
func (s SourceAssignment) Covers(c ref.Coordinate) bool {
	if s.Book != c.Book {
		return false
	}
	endCh, endVs := s.ChapterEnd, s.VerseEnd
	if endCh == 0 {
		endCh = s.ChapterStart
	}
	if endVs == 0 {
		endVs = s.VerseStart
	}
	if c.Chapter < s.ChapterStart || c.Chapter > endCh {
		return false
	}
	if c.Chapter == s.ChapterStart && c.Verse < s.VerseStart {
		return false
	}
	if c.Chapter == endCh && c.Verse > endVs {
		return false
	}
	return true
}

// RemedyRecord describes a remedy the corpus proposes for a concept
// (sacrifice, repentance, forgiveness), with supporting coordinates.
type RemedyRecord struct {
	Concept     string           `json:"concept"`
	RemedyType  string           `json:"remedy_type"`
	Description string           `json:"description,omitempty"`
	Support     []ref.Coordinate `json:"support,omitempty"`
}

// ExtraBiblicalReference cites a concept's lemma in literature outside the
// canon (ANE, rabbinic, classical corpora).
type ExtraBiblicalReference struct {
	LemmaID  string   `json:"lemma_id"` // Lemma identity, or "" for concept-level citations
	Concept  string   `json:"concept,omitempty"`
	Corpus   string   `json:"corpus"` // CAL, Perseus, ORACC, Sefaria, ...
	Work     string   `json:"work"`   // Specific document
	Citation string   `json:"citation"`
	Context  string   `json:"context,omitempty"`
	Language Language `json:"language,omitempty"`
	URL      string   `json:"url,omitempty"`
}
