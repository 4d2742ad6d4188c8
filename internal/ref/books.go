package ref

import (
	"strings"

	apperrors "bcnav/internal/errors"
)

// Testament identifies which testament a canonical book belongs to.
type Testament string

const (
	OldTestament Testament = "OT"
	NewTestament Testament = "NT"
)

// Book describes one canonical book: name, testament, position in the
// canonical ordering (1-based), and chapter count.
type Book struct {
	Name      string
	Testament Testament
	Order     int
	Chapters  int
}

// Canon is the canonical 66-book enumeration (39 OT + 27 NT) in
// traditional Protestant ordering. All verse coordinates are keyed on it.
var Canon = []Book{
	{"Genesis", OldTestament, 1, 50},
	{"Exodus", OldTestament, 2, 40},
	{"Leviticus", OldTestament, 3, 27},
	{"Numbers", OldTestament, 4, 36},
	{"Deuteronomy", OldTestament, 5, 34},
	{"Joshua", OldTestament, 6, 24},
	{"Judges", OldTestament, 7, 21},
	{"Ruth", OldTestament, 8, 4},
	{"1 Samuel", OldTestament, 9, 31},
	{"2 Samuel", OldTestament, 10, 24},
	{"1 Kings", OldTestament, 11, 22},
	{"2 Kings", OldTestament, 12, 25},
	{"1 Chronicles", OldTestament, 13, 29},
	{"2 Chronicles", OldTestament, 14, 36},
	{"Ezra", OldTestament, 15, 10},
	{"Nehemiah", OldTestament, 16, 13},
	{"Esther", OldTestament, 17, 10},
	{"Job", OldTestament, 18, 42},
	{"Psalms", OldTestament, 19, 150},
	{"Proverbs", OldTestament, 20, 31},
	{"Ecclesiastes", OldTestament, 21, 12},
	{"Song of Solomon", OldTestament, 22, 8},
	{"Isaiah", OldTestament, 23, 66},
	{"Jeremiah", OldTestament, 24, 52},
	{"Lamentations", OldTestament, 25, 5},
	{"Ezekiel", OldTestament, 26, 48},
	{"Daniel", OldTestament, 27, 12},
	{"Hosea", OldTestament, 28, 14},
	{"Joel", OldTestament, 29, 3},
	{"Amos", OldTestament, 30, 9},
	{"Obadiah", OldTestament, 31, 1},
	{"Jonah", OldTestament, 32, 4},
	{"Micah", OldTestament, 33, 7},
	{"Nahum", OldTestament, 34, 3},
	{"Habakkuk", OldTestament, 35, 3},
	{"Zephaniah", OldTestament, 36, 3},
	{"Haggai", OldTestament, 37, 2},
	{"Zechariah", OldTestament, 38, 14},
	{"Malachi", OldTestament, 39, 4},
	{"Matthew", NewTestament, 40, 28},
	{"Mark", NewTestament, 41, 16},
	{"Luke", NewTestament, 42, 24},
	{"John", NewTestament, 43, 21},
	{"Acts", NewTestament, 44, 28},
	{"Romans", NewTestament, 45, 16},
	{"1 Corinthians", NewTestament, 46, 16},
	{"2 Corinthians", NewTestament, 47, 13},
	{"Galatians", NewTestament, 48, 6},
	{"Ephesians", NewTestament, 49, 6},
	{"Philippians", NewTestament, 50, 4},
	{"Colossians", NewTestament, 51, 4},
	{"1 Thessalonians", NewTestament, 52, 5},
	{"2 Thessalonians", NewTestament, 53, 3},
	{"1 Timothy", NewTestament, 54, 6},
	{"2 Timothy", NewTestament, 55, 4},
	{"Titus", NewTestament, 56, 3},
	{"Philemon", NewTestament, 57, 1},
	{"Hebrews", NewTestament, 58, 13},
	{"James", NewTestament, 59, 5},
	{"1 Peter", NewTestament, 60, 5},
	{"2 Peter", NewTestament, 61, 3},
	{"1 John", NewTestament, 62, 5},
	{"2 John", NewTestament, 63, 1},
	{"3 John", NewTestament, 64, 1},
	{"Jude", NewTestament, 65, 1},
	{"Revelation", NewTestament, 66, 22},
}

// bookAliases maps normalized abbreviations to canonical names.
// Keys are produced by normalizeToken.
var bookAliases = map[string]string{
	"gen": "Genesis",
	"exod": "Exodus", "exo": "Exodus", "ex": "Exodus",
	"lev": "Leviticus",
	"num": "Numbers",
	"deut": "Deuteronomy", "deu": "Deuteronomy", "dt": "Deuteronomy",
	"josh": "Joshua", "jos": "Joshua",
	"judg": "Judges", "jdg": "Judges",
	"1sam": "1 Samuel", "1sa": "1 Samuel",
	"2sam": "2 Samuel", "2sa": "2 Samuel",
	"1kgs": "1 Kings", "1ki": "1 Kings",
	"2kgs": "2 Kings", "2ki": "2 Kings",
	"1chr": "1 Chronicles", "1ch": "1 Chronicles",
	"2chr": "2 Chronicles", "2ch": "2 Chronicles",
	"ezr": "Ezra",
	"neh": "Nehemiah",
	"esth": "Esther", "est": "Esther",
	"ps": "Psalms", "psa": "Psalms", "psalm": "Psalms",
	"prov": "Proverbs", "pro": "Proverbs", "prv": "Proverbs",
	"eccl": "Ecclesiastes", "ecc": "Ecclesiastes", "qoh": "Ecclesiastes",
	"song": "Song of Solomon", "songofsongs": "Song of Solomon",
	"sos": "Song of Solomon", "canticles": "Song of Solomon", "cant": "Song of Solomon",
	"isa": "Isaiah", "is": "Isaiah",
	"jer": "Jeremiah",
	"lam": "Lamentations",
	"ezek": "Ezekiel", "eze": "Ezekiel",
	"dan": "Daniel", "dn": "Daniel",
	"hos": "Hosea",
	"jol": "Joel",
	"am": "Amos",
	"obad": "Obadiah", "oba": "Obadiah",
	"jon": "Jonah",
	"mic": "Micah",
	"nah": "Nahum", "nam": "Nahum",
	"hab": "Habakkuk",
	"zeph": "Zephaniah", "zep": "Zephaniah",
	"hag": "Haggai",
	"zech": "Zechariah", "zec": "Zechariah",
	"mal": "Malachi",
	"matt": "Matthew", "mat": "Matthew", "mt": "Matthew",
	"mrk": "Mark", "mk": "Mark",
	"luk": "Luke", "lk": "Luke",
	"joh": "John", "jn": "John", "jhn": "John",
	"act": "Acts",
	"rom": "Romans", "rm": "Romans",
	"1cor": "1 Corinthians", "1co": "1 Corinthians",
	"2cor": "2 Corinthians", "2co": "2 Corinthians",
	"gal": "Galatians",
	"eph": "Ephesians",
	"phil": "Philippians", "php": "Philippians",
	"col": "Colossians",
	"1thess": "1 Thessalonians", "1th": "1 Thessalonians",
	"2thess": "2 Thessalonians", "2th": "2 Thessalonians",
	"1tim": "1 Timothy", "1ti": "1 Timothy",
	"2tim": "2 Timothy", "2ti": "2 Timothy",
	"tit": "Titus",
	"phlm": "Philemon", "phm": "Philemon",
	"heb": "Hebrews",
	"jas": "James", "jam": "James",
	"1pet": "1 Peter", "1pe": "1 Peter", "1pt": "1 Peter",
	"2pet": "2 Peter", "2pe": "2 Peter", "2pt": "2 Peter",
	"1john": "1 John", "1jn": "1 John", "1jo": "1 John",
	"2john": "2 John", "2jn": "2 John", "2jo": "2 John",
	"3john": "3 John", "3jn": "3 John", "3jo": "3 John",
	"jud": "Jude",
	"rev": "Revelation", "rv": "Revelation", "apoc": "Revelation",
}

// byName indexes Canon by normalized canonical name.
var byName = func() map[string]Book {
	m := make(map[string]Book, len(Canon))
	for _, b := range Canon {
		m[normalizeToken(b.Name)] = b
	}
	return m
}()

// normalizeToken lowercases a book token, strips trailing periods and
// removes all interior whitespace so "1 Jn." and "1jn" compare equal.
func normalizeToken(token string) string {
	token = strings.TrimSpace(token)
	token = strings.TrimSuffix(token, ".")
	token = strings.ToLower(token)
	return strings.Join(strings.Fields(token), "")
}

// MatchBook resolves a free-text book token against the canonical
// enumeration. Matching is case-insensitive and abbreviation-tolerant.
// Unrecognized tokens fail with UnknownBookError; tokens that prefix-match
// more than one canonical book fail with AmbiguousBookError.
func MatchBook(token string) (Book, error) {
	norm := normalizeToken(token)
	if norm == "" {
		return Book{}, &apperrors.UnknownBookError{Token: token}
	}

	// Exact canonical name.
	if b, ok := byName[norm]; ok {
		return b, nil
	}

	// Known abbreviation.
	if name, ok := bookAliases[norm]; ok {
		return byName[normalizeToken(name)], nil
	}

	// Unique prefix of a canonical name.
	var candidates []Book
	for _, b := range Canon {
		if strings.HasPrefix(normalizeToken(b.Name), norm) {
			candidates = append(candidates, b)
		}
	}
	switch len(candidates) {
	case 0:
		return Book{}, &apperrors.UnknownBookError{Token: token}
	case 1:
		return candidates[0], nil
	default:
		names := make([]string, len(candidates))
		for i, b := range candidates {
			names[i] = b.Name
		}
		return Book{}, &apperrors.AmbiguousBookError{Token: token, Candidates: names}
	}
}

// BookByName returns the canonical book for an exact canonical name.
func BookByName(name string) (Book, bool) {
	b, ok := byName[normalizeToken(name)]
	return b, ok
}

// BookOrder returns the canonical 1-based position of a book name,
// or 0 if the name is not canonical.
func BookOrder(name string) int {
	if b, ok := byName[normalizeToken(name)]; ok {
		return b.Order
	}
	return 0
}
