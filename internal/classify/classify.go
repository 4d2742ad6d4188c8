// Package classify provides metaphor detection over verse text. The real
// NLP model is an external collaborator behind corpus.Classifier; this
// package ships a curated-data classifier and a rule-based lexical
// fallback so queries work offline.
package classify

import (
	"context"
	"strings"

	"bcnav/internal/corpus"
	"bcnav/internal/store"
)

// sourceDomains maps metaphor source domains to the cue words that signal
// them. Derived from conceptual-metaphor studies of biblical language:
// sin as burden, debt, stain, disease; grace as gift; wisdom as light.
var sourceDomains = map[string][]string{
	"burden":   {"burden", "weight", "heavy", "bear", "carry"},
	"debt":     {"debt", "owe", "pay", "ransom", "redeem", "wages"},
	"stain":    {"stain", "wash", "cleanse", "clean", "scarlet", "crimson", "white", "purge"},
	"disease":  {"heal", "sick", "wound", "plague", "leprosy"},
	"darkness": {"darkness", "dark", "shadow", "blind", "night"},
	"slavery":  {"slave", "bondage", "captive", "yoke", "free"},
	"death":    {"death", "dead", "grave", "perish"},
	"path":     {"way", "path", "walk", "stray", "wander", "turn"},
	"gift":     {"gift", "give", "freely", "grant"},
	"light":    {"light", "lamp", "shine", "bright"},
	"seed":     {"seed", "sow", "reap", "fruit", "harvest"},
	"water":    {"water", "fountain", "river", "thirst", "well"},
}

// simileCues mark explicit comparisons.
var simileCues = []string{" like ", " as "}

// Lexical is a rule-based corpus.Classifier: it flags verses where the
// concept co-occurs with source-domain cue words, tagging explicit
// comparisons as similes.
type Lexical struct{}

// NewLexical returns the rule-based classifier.
func NewLexical() *Lexical {
	return &Lexical{}
}

// Classify inspects one witness text for metaphoric use of the concept.
func (l *Lexical) Classify(ctx context.Context, concept string, w corpus.Witness) ([]corpus.MetaphorRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	text := " " + corpus.Fold(w.Text) + " "
	conceptFolded := corpus.Fold(concept)
	if !strings.Contains(text, conceptFolded) {
		return nil, nil
	}

	metaphorType := "metaphor"
	for _, cue := range simileCues {
		if strings.Contains(text, cue) {
			metaphorType = "simile"
			break
		}
	}

	var records []corpus.MetaphorRecord
	for domain, cues := range sourceDomains {
		for _, cue := range cues {
			if cue == conceptFolded {
				continue
			}
			if strings.Contains(text, " "+cue) {
				records = append(records, corpus.MetaphorRecord{
					Coordinate:   w.Coordinate,
					Concept:      concept,
					SourceDomain: domain,
					MetaphorType: metaphorType,
				})
				break
			}
		}
	}
	return records, nil
}

// Curated is a corpus.Classifier backed by the store's curated metaphor
// table.
type Curated struct {
	store *store.Store
}

// NewCurated returns a classifier serving imported metaphor records.
func NewCurated(s *store.Store) *Curated {
	return &Curated{store: s}
}

func (c *Curated) Classify(ctx context.Context, concept string, w corpus.Witness) ([]corpus.MetaphorRecord, error) {
	return c.store.MetaphorsFor(ctx, concept, w.Coordinate)
}

// Chain runs several classifiers in order and returns the first non-empty
// answer, so curated data wins over heuristics.
type Chain []corpus.Classifier

func (ch Chain) Classify(ctx context.Context, concept string, w corpus.Witness) ([]corpus.MetaphorRecord, error) {
	for _, c := range ch {
		records, err := c.Classify(ctx, concept, w)
		if err != nil {
			return nil, err
		}
		if len(records) > 0 {
			return records, nil
		}
	}
	return nil, nil
}

// Default returns the standard classifier stack: curated records first,
// lexical heuristics as fallback.
func Default(s *store.Store) corpus.Classifier {
	return Chain{NewCurated(s), NewLexical()}
}

var _ corpus.Classifier = (*Lexical)(nil)
var _ corpus.Classifier = (*Curated)(nil)
var _ corpus.Classifier = (Chain)(nil)
