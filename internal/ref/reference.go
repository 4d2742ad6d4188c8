// Package ref implements the shared verse coordinate system: the canonical
// book enumeration and the resolver that normalizes free-text scripture
// references ("1 John 3:16") into (book, chapter, verse) coordinates.
package ref

import (
	"fmt"
	"strings"
)

// Coordinate identifies a single verse location by canonical book name,
// chapter and verse. It is an immutable value type; equality is structural
// and every manuscript tradition shares the same coordinate space.
type Coordinate struct {
	Book    string `json:"book"`
	Chapter int    `json:"chapter"`
	Verse   int    `json:"verse"`
}

// String renders the coordinate in canonical "Book Chapter:Verse" form.
// The rendering round-trips through Resolve.
func (c Coordinate) String() string {
	return fmt.Sprintf("%s %d:%d", c.Book, c.Chapter, c.Verse)
}

// Valid reports whether the coordinate names a canonical book and has
// positive chapter and verse numbers.
func (c Coordinate) Valid() bool {
	if _, ok := BookByName(c.Book); !ok {
		return false
	}
	return c.Chapter >= 1 && c.Verse >= 1
}

// Compare orders coordinates by canonical book order, then chapter, then
// verse. Non-canonical books sort after canonical ones, alphabetically.
func Compare(a, b Coordinate) int {
	ao, bo := BookOrder(a.Book), BookOrder(b.Book)
	switch {
	case ao == 0 && bo == 0:
		if c := strings.Compare(a.Book, b.Book); c != 0 {
			return c
		}
	case ao == 0:
		return 1
	case bo == 0:
		return -1
	case ao != bo:
		if ao < bo {
			return -1
		}
		return 1
	}
	if a.Chapter != b.Chapter {
		if a.Chapter < b.Chapter {
			return -1
		}
		return 1
	}
	if a.Verse != b.Verse {
		if a.Verse < b.Verse {
			return -1
		}
		return 1
	}
	return 0
}

// Range is a resolved scripture reference that may span a whole chapter or
// a run of verses. Zero fields mean "absent": a whole-chapter reference has
// Verse 0, a single verse has VerseEnd 0.
type Range struct {
	Book     string `json:"book"`
	Chapter  int    `json:"chapter"`
	Verse    int    `json:"verse,omitempty"`
	VerseEnd int    `json:"verse_end,omitempty"`
}

// IsChapter reports whether the range covers a whole chapter.
func (r Range) IsChapter() bool {
	return r.Verse == 0
}

// IsSingle reports whether the range pins down exactly one verse.
func (r Range) IsSingle() bool {
	return r.Verse != 0 && (r.VerseEnd == 0 || r.VerseEnd == r.Verse)
}

// Start returns the first coordinate of the range. For whole-chapter
// ranges the verse is 1.
func (r Range) Start() Coordinate {
	v := r.Verse
	if v == 0 {
		v = 1
	}
	return Coordinate{Book: r.Book, Chapter: r.Chapter, Verse: v}
}

// Coordinates expands the range to its coordinate list. Whole-chapter
// ranges cannot be expanded without verse counts and return only Start.
func (r Range) Coordinates() []Coordinate {
	if r.IsChapter() || r.VerseEnd == 0 || r.VerseEnd <= r.Verse {
		return []Coordinate{r.Start()}
	}
	out := make([]Coordinate, 0, r.VerseEnd-r.Verse+1)
	for v := r.Verse; v <= r.VerseEnd; v++ {
		out = append(out, Coordinate{Book: r.Book, Chapter: r.Chapter, Verse: v})
	}
	return out
}

// String renders the range in canonical form.
func (r Range) String() string {
	var sb strings.Builder
	sb.WriteString(r.Book)
	sb.WriteString(fmt.Sprintf(" %d", r.Chapter))
	if r.Verse != 0 {
		sb.WriteString(fmt.Sprintf(":%d", r.Verse))
		if r.VerseEnd != 0 && r.VerseEnd != r.Verse {
			sb.WriteString(fmt.Sprintf("-%d", r.VerseEnd))
		}
	}
	return sb.String()
}
