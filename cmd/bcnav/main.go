// Command bcnav is the CLI for the biblical concept navigator.
// It provides corpus import, reference resolution, keyword search, and
// multi-dimensional concept queries.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"bcnav/internal/api"
	"bcnav/internal/classify"
	"bcnav/internal/config"
	"bcnav/internal/corpus"
	"bcnav/internal/engine"
	"bcnav/internal/export"
	"bcnav/internal/graph"
	"bcnav/internal/importer"
	"bcnav/internal/logging"
	"bcnav/internal/navigator"
	"bcnav/internal/ref"
	"bcnav/internal/store"
)

const version = "0.1.0"

// CLI defines the command-line interface for bcnav.
var CLI struct {
	// Global flags
	DataDir  string `name:"data-dir" help:"Root data directory" type:"path"`
	DB       string `name:"db" help:"Database file path (overrides data dir layout)" type:"path"`
	LogLevel string `name:"log-level" default:"info" enum:"debug,info,warn,error" help:"Log level"`
	LogJSON  bool   `name:"log-json" help:"Emit JSON logs"`

	Init     InitCmd     `cmd:"" help:"Create the data directory tree and an empty database"`
	Status   StatusCmd   `cmd:"" help:"Show corpus statistics and import history"`
	Resolve  ResolveCmd  `cmd:"" help:"Resolve a scripture reference to canonical form"`
	Verse    VerseCmd    `cmd:"" help:"Print a verse's manuscript witnesses"`
	Search   SearchCmd   `cmd:"" help:"Keyword search over the verse text"`
	Navigate NavigateCmd `cmd:"" help:"Run a multi-dimensional concept query"`
	Import   ImportGroup `cmd:"" help:"Load datasets into the corpus store"`
	Serve    ServeCmd    `cmd:"" help:"Start the REST API and WebSocket server"`
	Version  VersionCmd  `cmd:"" help:"Print version information"`
}

// loadConfig resolves configuration from flags and environment.
func loadConfig() config.Config {
	cfg := config.FromEnv()
	if CLI.DataDir != "" {
		cfg = config.Default(CLI.DataDir)
	}
	if CLI.DB != "" {
		cfg.DatabasePath = CLI.DB
	}
	return cfg
}

func openStore(cfg config.Config) (*store.Store, error) {
	s, err := store.Open(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus store at %s: %w", cfg.DatabasePath, err)
	}
	return s, nil
}

// buildNavigator wires the six engines, the graph accessor, and the
// result cache over one store.
func buildNavigator(ctx context.Context, s *store.Store, cfg config.Config, observer navigator.Observer) (*navigator.Navigator, error) {
	traditions := []corpus.Tradition{
		corpus.TraditionMT, corpus.TraditionLXX, corpus.TraditionDSS,
		corpus.TraditionPeshitta, corpus.TraditionVulgate, corpus.TraditionNA28,
	}

	tags, err := s.CorpusTags(ctx)
	if err != nil {
		return nil, err
	}
	var clients []corpus.CorpusClient
	for _, tag := range tags {
		clients = append(clients, s.CorpusClient(tag))
	}

	engines := []engine.Engine{
		engine.NewTextEngine(s, s),
		engine.NewLinguisticEngine(s, s),
		engine.NewManuscriptEngine(s, traditions, s),
		engine.NewSemanticEngine(s, classify.Default(s), s),
		engine.NewHistoricalEngine(s, s, s),
		engine.NewExtraBiblicalEngine(clients, s, s, s),
	}
	return navigator.New(engines, graph.New(s), navigator.Config{
		EngineTimeout: cfg.EngineTimeout,
		CacheSize:     64,
		Observer:      observer,
	}), nil
}

// InitCmd creates the data directory tree and an empty database.
type InitCmd struct{}

func (c *InitCmd) Run() error {
	cfg := loadConfig()
	if err := cfg.EnsureDirs(); err != nil {
		return err
	}
	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()
	fmt.Printf("initialized corpus database at %s\n", cfg.DatabasePath)
	return nil
}

// StatusCmd shows corpus statistics and import history.
type StatusCmd struct{}

func (c *StatusCmd) Run() error {
	cfg := loadConfig()
	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()
	ctx := context.Background()

	stats, err := s.Stats(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("database: %s\n", cfg.DatabasePath)
	fmt.Printf("  witnesses:          %d\n", stats.Witnesses)
	fmt.Printf("  lemmas:             %d\n", stats.Lemmas)
	fmt.Printf("  occurrences:        %d\n", stats.Occurrences)
	fmt.Printf("  cross references:   %d\n", stats.CrossReferences)
	fmt.Printf("  source assignments: %d\n", stats.Assignments)
	fmt.Printf("  metaphors:          %d\n", stats.Metaphors)
	fmt.Printf("  remedies:           %d\n", stats.Remedies)
	fmt.Printf("  extra-biblical:     %d\n", stats.ExtraBiblical)

	logs, err := s.ImportLogs(ctx)
	if err != nil {
		return err
	}
	if len(logs) > 0 {
		fmt.Println("imports:")
		for _, l := range logs {
			fmt.Printf("  %s  %-20s %-9s %d records", l.StartedAt.Format("2006-01-02 15:04"), l.ImportType, l.Status, l.Records)
			if l.Error != "" {
				fmt.Printf("  (%s)", l.Error)
			}
			fmt.Println()
		}
	}
	return nil
}

// ResolveCmd resolves a scripture reference.
type ResolveCmd struct {
	Reference []string `arg:"" help:"Scripture reference, e.g. 'Gen 1:1' or 'Romans 3:23-25'"`
}

func (c *ResolveCmd) Run() error {
	input := joinArgs(c.Reference)
	r, err := ref.Resolve(input)
	if err != nil {
		return err
	}
	if book, ok := ref.BookByName(r.Book); ok {
		fmt.Printf("%s (%s, book %d of 66)\n", r, book.Testament, book.Order)
		return nil
	}
	fmt.Println(r)
	return nil
}

// VerseCmd prints a verse's manuscript witnesses.
type VerseCmd struct {
	Reference []string `arg:"" help:"Single-verse reference"`
	Tradition string   `help:"Limit to one manuscript tradition"`
}

func (c *VerseCmd) Run() error {
	cfg := loadConfig()
	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()
	ctx := context.Background()

	coord, err := ref.ResolveCoordinate(joinArgs(c.Reference))
	if err != nil {
		return err
	}

	if c.Tradition != "" {
		w, err := s.Text(ctx, coord, corpus.Tradition(c.Tradition))
		if err != nil {
			return err
		}
		fmt.Printf("%s [%s] %s\n", w.Coordinate, w.Tradition, w.Text)
		return nil
	}

	witnesses, err := s.Witnesses(ctx, coord)
	if err != nil {
		return err
	}
	if len(witnesses) == 0 {
		fmt.Printf("%s: no witnesses imported\n", coord)
		return nil
	}
	for _, w := range witnesses {
		fmt.Printf("%s [%s] %s\n", w.Coordinate, w.Tradition, w.Text)
	}
	return nil
}

// SearchCmd runs a keyword search over the verse text.
type SearchCmd struct {
	Keyword   []string `arg:"" help:"Search keyword"`
	Book      string   `help:"Limit to one canonical book"`
	Tradition string   `help:"Limit to one manuscript tradition"`
	Limit     int      `default:"25" help:"Maximum results (0 = unlimited)"`
}

func (c *SearchCmd) Run() error {
	cfg := loadConfig()
	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()
	ctx := context.Background()

	scope := corpus.SearchScope{
		Book:       c.Book,
		Tradition:  corpus.Tradition(c.Tradition),
		MaxResults: c.Limit,
	}
	coords, err := s.Search(ctx, joinArgs(c.Keyword), scope)
	if err != nil {
		return err
	}
	for _, coord := range coords {
		fmt.Println(coord)
	}
	fmt.Printf("%d verses\n", len(coords))
	return nil
}

// NavigateCmd runs a multi-dimensional concept query.
type NavigateCmd struct {
	Concept    []string `arg:"" help:"Concept name, e.g. 'sin' or 'covenant'"`
	Book       string   `help:"Limit to one canonical book"`
	Traditions []string `help:"Manuscript traditions to consult"`
	MaxHops    int      `name:"max-hops" help:"Cross-reference expansion hop limit"`
	MinWeight  float64  `name:"min-weight" help:"Cross-reference expansion weight floor"`
	Format     string   `default:"markdown" enum:"json,csv,markdown,md" help:"Output format"`
	NoCache    bool     `name:"no-cache" help:"Bypass the result cache"`
}

func (c *NavigateCmd) Run() error {
	format, err := export.ParseFormat(c.Format)
	if err != nil {
		return err
	}

	cfg := loadConfig()
	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()
	ctx := context.Background()

	nav, err := buildNavigator(ctx, s, cfg, nil)
	if err != nil {
		return err
	}

	opts := navigator.Options{
		MaxHops:       cfg.MaxHops,
		MinEdgeWeight: cfg.MinEdgeWeight,
		NoCache:       c.NoCache,
	}
	if c.MaxHops > 0 {
		opts.MaxHops = c.MaxHops
	}
	if c.MinWeight > 0 {
		opts.MinEdgeWeight = c.MinWeight
	}
	opts.Book = c.Book
	for _, t := range c.Traditions {
		opts.Traditions = append(opts.Traditions, corpus.Tradition(t))
	}

	result, err := nav.Navigate(ctx, joinArgs(c.Concept), opts)
	if err != nil {
		return err
	}
	return export.Render(os.Stdout, result, format)
}

// ImportGroup contains dataset import commands.
type ImportGroup struct {
	Osis     ImportOsisCmd     `cmd:"" help:"Import OSIS XML verse text (optionally .xz)"`
	Xrefs    ImportXrefsCmd    `cmd:"" help:"Import TSV cross-reference dump"`
	Lexicon  ImportLexiconCmd  `cmd:"" help:"Import TSV lemma lexicon"`
	Concepts ImportConceptsCmd `cmd:"" help:"Import TSV concept-to-lemma map"`
	Sources  ImportSourcesCmd  `cmd:"" help:"Import TSV source-critical assignments"`
	Curated  ImportCuratedCmd  `cmd:"" help:"Import TSV curated metaphors and remedies"`
	Extra    ImportExtraCmd    `cmd:"" help:"Import TSV extra-biblical citations"`
}

// ImportOsisCmd imports OSIS XML verse text.
type ImportOsisCmd struct {
	Path      string `arg:"" help:"OSIS XML file (.xml or .xml.xz)" type:"existingfile"`
	Tradition string `required:"" help:"Manuscript tradition tag (MT, LXX, NA28, ...)"`
	Language  string `required:"" help:"Text language (Hebrew, Greek, English, ...)"`
}

func (c *ImportOsisCmd) Run() error {
	return withImporter(func(ctx context.Context, im *importer.Importer) (int, error) {
		return im.ImportOSIS(ctx, c.Path, corpus.Tradition(c.Tradition), corpus.Language(c.Language))
	})
}

// ImportXrefsCmd imports a cross-reference dump.
type ImportXrefsCmd struct {
	Path string `arg:"" type:"existingfile"`
}

func (c *ImportXrefsCmd) Run() error {
	return withImporter(func(ctx context.Context, im *importer.Importer) (int, error) {
		return im.ImportCrossReferences(ctx, c.Path)
	})
}

// ImportLexiconCmd imports a lemma lexicon.
type ImportLexiconCmd struct {
	Path string `arg:"" type:"existingfile"`
}

func (c *ImportLexiconCmd) Run() error {
	return withImporter(func(ctx context.Context, im *importer.Importer) (int, error) {
		return im.ImportLexicon(ctx, c.Path)
	})
}

// ImportConceptsCmd imports concept-to-lemma mappings.
type ImportConceptsCmd struct {
	Path string `arg:"" type:"existingfile"`
}

func (c *ImportConceptsCmd) Run() error {
	return withImporter(func(ctx context.Context, im *importer.Importer) (int, error) {
		return im.ImportConceptMap(ctx, c.Path)
	})
}

// ImportSourcesCmd imports source-critical assignments.
type ImportSourcesCmd struct {
	Path string `arg:"" type:"existingfile"`
}

func (c *ImportSourcesCmd) Run() error {
	return withImporter(func(ctx context.Context, im *importer.Importer) (int, error) {
		return im.ImportSources(ctx, c.Path)
	})
}

// ImportCuratedCmd imports curated metaphors and remedies.
type ImportCuratedCmd struct {
	Metaphors string `help:"TSV metaphor records" type:"existingfile"`
	Remedies  string `help:"TSV remedy records" type:"existingfile"`
}

func (c *ImportCuratedCmd) Run() error {
	if c.Metaphors == "" && c.Remedies == "" {
		return fmt.Errorf("nothing to import: pass --metaphors and/or --remedies")
	}
	return withImporter(func(ctx context.Context, im *importer.Importer) (int, error) {
		total := 0
		if c.Metaphors != "" {
			n, err := im.ImportMetaphors(ctx, c.Metaphors)
			total += n
			if err != nil {
				return total, err
			}
		}
		if c.Remedies != "" {
			n, err := im.ImportRemedies(ctx, c.Remedies)
			total += n
			if err != nil {
				return total, err
			}
		}
		return total, nil
	})
}

// ImportExtraCmd imports extra-biblical citations.
type ImportExtraCmd struct {
	Path string `arg:"" type:"existingfile"`
}

func (c *ImportExtraCmd) Run() error {
	return withImporter(func(ctx context.Context, im *importer.Importer) (int, error) {
		return im.ImportExtraBiblical(ctx, c.Path)
	})
}

// withImporter opens the store, runs one import, and reports the count.
func withImporter(fn func(ctx context.Context, im *importer.Importer) (int, error)) error {
	cfg := loadConfig()
	if err := cfg.EnsureDirs(); err != nil {
		return err
	}
	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	records, err := fn(context.Background(), importer.New(s))
	if err != nil {
		return err
	}
	fmt.Printf("imported %d records\n", records)
	return nil
}

// ServeCmd starts the REST API and WebSocket server.
type ServeCmd struct {
	Addr string `default:"127.0.0.1:8470" help:"Listen address"`
}

func (c *ServeCmd) Run() error {
	cfg := loadConfig()
	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := api.NewHub()
	nav, err := buildNavigator(ctx, s, cfg, hub)
	if err != nil {
		return err
	}
	return api.New(nav, s, hub, c.Addr).ListenAndServe(ctx)
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("bcnav version %s\n", version)
	return nil
}

// joinArgs joins a multi-word positional argument.
func joinArgs(args []string) string {
	out := ""
	for i, a := range args {
		if i > 0 {
			out += " "
		}
		out += a
	}
	return out
}

func initLogging() {
	level := logging.LevelInfo
	switch CLI.LogLevel {
	case "debug":
		level = logging.LevelDebug
	case "warn":
		level = logging.LevelWarn
	case "error":
		level = logging.LevelError
	}
	format := logging.FormatText
	if CLI.LogJSON {
		format = logging.FormatJSON
	}
	logging.InitLogger(level, format)
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("bcnav"),
		kong.Description("Biblical concept navigator - multi-dimensional corpus research queries"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	initLogging()
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
