package ref

import (
	"testing"

	apperrors "bcnav/internal/errors"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     Range
		wantErr  error
		wantsErr bool
	}{
		{
			name:  "full reference",
			input: "Genesis 1:1",
			want:  Range{Book: "Genesis", Chapter: 1, Verse: 1},
		},
		{
			name:  "abbreviated book",
			input: "Gen 1:1",
			want:  Range{Book: "Genesis", Chapter: 1, Verse: 1},
		},
		{
			name:  "abbreviated with period",
			input: "Gen. 1:1",
			want:  Range{Book: "Genesis", Chapter: 1, Verse: 1},
		},
		{
			name:  "dot separators",
			input: "Gen.1.1",
			want:  Range{Book: "Genesis", Chapter: 1, Verse: 1},
		},
		{
			name:  "numeric book prefix",
			input: "1 John 3:16",
			want:  Range{Book: "1 John", Chapter: 3, Verse: 16},
		},
		{
			name:  "numeric prefix without space",
			input: "1John 3:16",
			want:  Range{Book: "1 John", Chapter: 3, Verse: 16},
		},
		{
			name:  "case insensitive",
			input: "rOmAnS 3:23",
			want:  Range{Book: "Romans", Chapter: 3, Verse: 23},
		},
		{
			name:  "multi-word book",
			input: "Song of Solomon 2:1",
			want:  Range{Book: "Song of Solomon", Chapter: 2, Verse: 1},
		},
		{
			name:  "verse range",
			input: "Genesis 1:1-5",
			want:  Range{Book: "Genesis", Chapter: 1, Verse: 1, VerseEnd: 5},
		},
		{
			name:  "whole chapter",
			input: "Genesis 1",
			want:  Range{Book: "Genesis", Chapter: 1},
		},
		{
			name:    "unknown book",
			input:   "Hezekiah 3:16",
			wantErr: apperrors.ErrUnknownBook,
		},
		{
			name:    "ambiguous book",
			input:   "Ju 1:1",
			wantErr: apperrors.ErrAmbiguousBook,
		},
		{
			name:     "missing chapter",
			input:    "Genesis",
			wantsErr: true,
		},
		{
			name:     "empty input",
			input:    "",
			wantsErr: true,
		},
		{
			name:     "garbage",
			input:    ":::",
			wantsErr: true,
		},
		{
			name:     "range end before start",
			input:    "Genesis 1:5-2",
			wantsErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.input)
			if tt.wantErr != nil {
				if !apperrors.Is(err, tt.wantErr) {
					t.Fatalf("Resolve(%q) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				return
			}
			if tt.wantsErr {
				var perr *apperrors.ParseError
				if !apperrors.As(err, &perr) {
					t.Fatalf("Resolve(%q) error = %v, want ParseError", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Resolve(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

// Every canonical coordinate must survive a render/resolve round trip.
func TestCoordinateRoundTrip(t *testing.T) {
	for _, b := range Canon {
		coord := Coordinate{Book: b.Name, Chapter: 3, Verse: 16}
		got, err := ResolveCoordinate(coord.String())
		if err != nil {
			t.Fatalf("ResolveCoordinate(%q) failed: %v", coord, err)
		}
		if got != coord {
			t.Errorf("round trip %q = %+v, want %+v", coord, got, coord)
		}
	}
}

func TestMatchBook(t *testing.T) {
	tests := []struct {
		token   string
		want    string
		wantErr error
	}{
		{token: "Genesis", want: "Genesis"},
		{token: "genesis", want: "Genesis"},
		{token: "GEN", want: "Genesis"},
		{token: "Rom", want: "Romans"},
		{token: "1jn", want: "1 John"},
		{token: "1 jn", want: "1 John"},
		{token: "Psalm", want: "Psalms"},
		{token: "song of songs", want: "Song of Solomon"},
		{token: "Philem", want: "Philemon"},
		{token: "Zedekiah", wantErr: apperrors.ErrUnknownBook},
		{token: "", wantErr: apperrors.ErrUnknownBook},
		// "Ju" prefixes Judges and Jude.
		{token: "Ju", wantErr: apperrors.ErrAmbiguousBook},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			b, err := MatchBook(tt.token)
			if tt.wantErr != nil {
				if !apperrors.Is(err, tt.wantErr) {
					t.Fatalf("MatchBook(%q) error = %v, want %v", tt.token, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("MatchBook(%q) unexpected error: %v", tt.token, err)
			}
			if b.Name != tt.want {
				t.Errorf("MatchBook(%q) = %q, want %q", tt.token, b.Name, tt.want)
			}
		})
	}
}

func TestCompare(t *testing.T) {
	gen := Coordinate{Book: "Genesis", Chapter: 4, Verse: 7}
	rom323 := Coordinate{Book: "Romans", Chapter: 3, Verse: 23}
	rom512 := Coordinate{Book: "Romans", Chapter: 5, Verse: 12}
	rom623 := Coordinate{Book: "Romans", Chapter: 6, Verse: 23}

	if Compare(gen, rom323) >= 0 {
		t.Error("Genesis should sort before Romans")
	}
	if Compare(rom323, rom512) >= 0 {
		t.Error("Romans 3:23 should sort before Romans 5:12")
	}
	if Compare(rom512, rom623) >= 0 {
		t.Error("Romans 5:12 should sort before Romans 6:23")
	}
	if Compare(rom623, rom623) != 0 {
		t.Error("identical coordinates should compare equal")
	}
}

func TestRangeCoordinates(t *testing.T) {
	r := Range{Book: "Genesis", Chapter: 1, Verse: 1, VerseEnd: 3}
	coords := r.Coordinates()
	if len(coords) != 3 {
		t.Fatalf("Coordinates() returned %d coordinates, want 3", len(coords))
	}
	for i, c := range coords {
		if c.Verse != i+1 {
			t.Errorf("coordinate %d has verse %d, want %d", i, c.Verse, i+1)
		}
	}

	single := Range{Book: "John", Chapter: 3, Verse: 16}
	if !single.IsSingle() {
		t.Error("single verse range should report IsSingle")
	}
	chapter := Range{Book: "John", Chapter: 3}
	if !chapter.IsChapter() {
		t.Error("verse-less range should report IsChapter")
	}
}

func TestCanonIntegrity(t *testing.T) {
	if len(Canon) != 66 {
		t.Fatalf("canon has %d books, want 66", len(Canon))
	}
	for i, b := range Canon {
		if b.Order != i+1 {
			t.Errorf("book %q has order %d, want %d", b.Name, b.Order, i+1)
		}
		if b.Chapters < 1 {
			t.Errorf("book %q has no chapters", b.Name)
		}
	}
	for alias, name := range bookAliases {
		if _, ok := BookByName(name); !ok {
			t.Errorf("alias %q points at non-canonical book %q", alias, name)
		}
	}
}
