package ref

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	apperrors "bcnav/internal/errors"
)

// rawReference is the participle AST for a scripture reference.
// The book token absorbs numeric prefixes ("1 John") so the following
// number is always the chapter.
type rawReference struct {
	Book     string `parser:"@Book"`
	Chapter  *int   `parser:"( @Number"`
	Verse    *int   `parser:"( ':' @Number"`
	VerseEnd *int   `parser:"( '-' @Number )? )? )?"`
}

// referenceLexer tokenizes scripture references.
var referenceLexer = lexer.MustSimple([]lexer.SimpleRule{
	// Book names: optional numeric prefix, letters, multi-word ("Song of
	// Solomon"), optional trailing period on abbreviations.
	{Name: "Book", Pattern: `(?:\d\s*)?[A-Za-z]+(?:\s+(?:of\s+)?[A-Za-z]+)*\.?`},
	{Name: "Number", Pattern: `\d+`},
	{Name: "Colon", Pattern: `:`},
	{Name: "Dash", Pattern: `-`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var referenceParser = participle.MustBuild[rawReference](
	participle.Lexer(referenceLexer),
	participle.Elide("Whitespace"),
)

// Resolve normalizes a free-text scripture reference into a Range keyed on
// the canonical book enumeration. Accepted forms:
//
//	"Genesis 1:1"     single verse
//	"Gen. 1:1"        abbreviated book
//	"Gen.1.1"         dot separators
//	"1 John 3:16"     numeric book prefix
//	"Genesis 1:1-5"   verse range
//	"Genesis 1"       whole chapter
//
// Malformed input fails with ParseError; a book token that matches nothing
// fails with UnknownBookError and one that matches several books with
// AmbiguousBookError.
func Resolve(input string) (Range, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return Range{}, &apperrors.ParseError{Input: input, Message: "empty reference"}
	}

	raw, err := referenceParser.ParseString("", normalizeSeparators(trimmed))
	if err != nil {
		return Range{}, &apperrors.ParseError{Input: input, Message: "not of form Book Chapter[:Verse[-Verse]]", Err: err}
	}
	if raw.Chapter == nil {
		return Range{}, &apperrors.ParseError{Input: input, Message: "missing chapter number"}
	}

	book, err := MatchBook(raw.Book)
	if err != nil {
		return Range{}, err
	}

	r := Range{Book: book.Name, Chapter: *raw.Chapter}
	if *raw.Chapter < 1 {
		return Range{}, &apperrors.ParseError{Input: input, Message: "chapter must be positive"}
	}
	if raw.Verse != nil {
		if *raw.Verse < 1 {
			return Range{}, &apperrors.ParseError{Input: input, Message: "verse must be positive"}
		}
		r.Verse = *raw.Verse
	}
	if raw.VerseEnd != nil {
		if *raw.VerseEnd < r.Verse {
			return Range{}, &apperrors.ParseError{Input: input, Message: "verse range end before start"}
		}
		r.VerseEnd = *raw.VerseEnd
	}
	return r, nil
}

// ResolveCoordinate resolves a reference that must name exactly one verse.
func ResolveCoordinate(input string) (Coordinate, error) {
	r, err := Resolve(input)
	if err != nil {
		return Coordinate{}, err
	}
	if !r.IsSingle() {
		return Coordinate{}, &apperrors.ParseError{Input: input, Message: "expected a single verse reference"}
	}
	return r.Start(), nil
}

// normalizeSeparators converts "Gen.1.1" style dot separators to the
// standard "Gen 1:1" form before lexing.
func normalizeSeparators(input string) string {
	parts := strings.Split(input, ".")
	if len(parts) < 2 {
		return input
	}

	book := parts[0]
	rest := parts[1:]
	for _, p := range rest {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		for _, c := range p {
			if c < '0' || c > '9' {
				// A non-numeric segment means the dots belong to an
				// abbreviation ("Gen. 1:1"), not to separators.
				return input
			}
		}
	}

	if len(rest) == 1 {
		return book + " " + rest[0]
	}
	return book + " " + rest[0] + ":" + strings.Join(rest[1:], ":")
}
