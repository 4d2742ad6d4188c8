package store

// DDL statements for the corpus database. The schema is keyed on
// (book, chapter, verse) coordinates so dimension tables join directly on
// the shared coordinate system instead of surrogate verse ids.
var schemaDDL = []string{
	`CREATE TABLE IF NOT EXISTS books (
		name      TEXT PRIMARY KEY,
		testament TEXT NOT NULL,
		ord       INTEGER NOT NULL,
		chapters  INTEGER NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS witnesses (
		tradition   TEXT NOT NULL,
		book        TEXT NOT NULL,
		chapter     INTEGER NOT NULL,
		verse       INTEGER NOT NULL,
		language    TEXT NOT NULL,
		text        TEXT NOT NULL,
		text_folded TEXT NOT NULL,
		PRIMARY KEY (tradition, book, chapter, verse)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_witnesses_coord ON witnesses (book, chapter, verse)`,

	`CREATE TABLE IF NOT EXISTS lemmas (
		id              TEXT PRIMARY KEY,
		root            TEXT NOT NULL,
		transliteration TEXT NOT NULL DEFAULT '',
		language        TEXT NOT NULL,
		strongs         TEXT NOT NULL DEFAULT '',
		gloss           TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_lemmas_strongs ON lemmas (strongs)`,
	`CREATE INDEX IF NOT EXISTS idx_lemmas_root ON lemmas (root)`,

	`CREATE TABLE IF NOT EXISTS occurrences (
		lemma_id  TEXT NOT NULL REFERENCES lemmas(id),
		book      TEXT NOT NULL,
		chapter   INTEGER NOT NULL,
		verse     INTEGER NOT NULL,
		surface   TEXT NOT NULL,
		position  INTEGER NOT NULL DEFAULT 0,
		morph     TEXT NOT NULL DEFAULT '',
		pos       TEXT NOT NULL DEFAULT '',
		person    TEXT NOT NULL DEFAULT '',
		gender    TEXT NOT NULL DEFAULT '',
		num       TEXT NOT NULL DEFAULT '',
		tense     TEXT NOT NULL DEFAULT '',
		voice     TEXT NOT NULL DEFAULT '',
		mood      TEXT NOT NULL DEFAULT '',
		gcase     TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_occurrences_lemma ON occurrences (lemma_id)`,
	`CREATE INDEX IF NOT EXISTS idx_occurrences_coord ON occurrences (book, chapter, verse)`,

	`CREATE TABLE IF NOT EXISTS concept_lemmas (
		concept  TEXT NOT NULL,
		lemma_id TEXT NOT NULL REFERENCES lemmas(id),
		PRIMARY KEY (concept, lemma_id)
	)`,

	`CREATE TABLE IF NOT EXISTS cross_references (
		src_book    TEXT NOT NULL,
		src_chapter INTEGER NOT NULL,
		src_verse   INTEGER NOT NULL,
		tgt_book    TEXT NOT NULL,
		tgt_chapter INTEGER NOT NULL,
		tgt_verse   INTEGER NOT NULL,
		weight      REAL NOT NULL DEFAULT 1.0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_xref_src ON cross_references (src_book, src_chapter, src_verse)`,

	`CREATE TABLE IF NOT EXISTS source_assignments (
		book          TEXT NOT NULL,
		chapter_start INTEGER NOT NULL,
		verse_start   INTEGER NOT NULL,
		chapter_end   INTEGER NOT NULL DEFAULT 0,
		verse_end     INTEGER NOT NULL DEFAULT 0,
		source        TEXT NOT NULL,
		confidence    REAL NOT NULL DEFAULT 0,
		scholar       TEXT NOT NULL DEFAULT '',
		date_earliest INTEGER NOT NULL DEFAULT 0,
		date_latest   INTEGER NOT NULL DEFAULT 0,
		notes         TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sources_book ON source_assignments (book)`,

	`CREATE TABLE IF NOT EXISTS metaphors (
		book          TEXT NOT NULL,
		chapter       INTEGER NOT NULL,
		verse         INTEGER NOT NULL,
		concept       TEXT NOT NULL,
		source_domain TEXT NOT NULL,
		metaphor_type TEXT NOT NULL,
		description   TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_metaphors_concept ON metaphors (concept)`,

	`CREATE TABLE IF NOT EXISTS remedies (
		concept     TEXT NOT NULL,
		remedy_type TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		support     TEXT NOT NULL DEFAULT '[]'
	)`,
	`CREATE INDEX IF NOT EXISTS idx_remedies_concept ON remedies (concept)`,

	`CREATE TABLE IF NOT EXISTS extra_biblical (
		lemma_id TEXT NOT NULL DEFAULT '',
		concept  TEXT NOT NULL DEFAULT '',
		corpus   TEXT NOT NULL,
		work     TEXT NOT NULL,
		citation TEXT NOT NULL,
		context  TEXT NOT NULL DEFAULT '',
		language TEXT NOT NULL DEFAULT '',
		url      TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_extra_lemma ON extra_biblical (lemma_id)`,
	`CREATE INDEX IF NOT EXISTS idx_extra_corpus ON extra_biblical (corpus)`,

	`CREATE TABLE IF NOT EXISTS import_logs (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		import_type  TEXT NOT NULL,
		status       TEXT NOT NULL,
		records      INTEGER NOT NULL DEFAULT 0,
		started_at   TEXT NOT NULL,
		completed_at TEXT NOT NULL DEFAULT '',
		error        TEXT NOT NULL DEFAULT ''
	)`,
}
