package engine

import (
	"context"
	"fmt"
	"time"

	"bcnav/internal/corpus"
	apperrors "bcnav/internal/errors"
	"bcnav/internal/logging"
)

// ExtraBiblicalEngine queries external-corpus clients for citations of
// the concept and its resolved lemma identities. Each source is queried
// independently; a failure in one source never blocks results from
// another. Partial success is a normal outcome, not a fault.
type ExtraBiblicalEngine struct {
	clients  []corpus.CorpusClient
	lexicon  corpus.LexiconProvider
	remedies corpus.RemedyProvider
	probe    Probe
}

// NewExtraBiblicalEngine returns the extra-biblical/comparative engine.
// The lexicon and remedies providers may be nil when only concept-level
// citations are wanted.
func NewExtraBiblicalEngine(clients []corpus.CorpusClient, lexicon corpus.LexiconProvider, remedies corpus.RemedyProvider, probe Probe) *ExtraBiblicalEngine {
	return &ExtraBiblicalEngine{clients: clients, lexicon: lexicon, remedies: remedies, probe: probe}
}

func (e *ExtraBiblicalEngine) Dimension() Dimension { return DimExtraBiblical }

func (e *ExtraBiblicalEngine) Query(ctx context.Context, concept string, opts Options) Result {
	start := time.Now()
	defer func() {
		logging.EngineQuery(ctx, string(DimExtraBiblical), concept, time.Since(start))
	}()

	// Query keys: the concept name plus every lemma mapped to it. A
	// lexicon failure only narrows the key set.
	keys := []string{concept}
	if e.lexicon != nil {
		if lemmas, err := e.lexicon.LemmasForConcept(ctx, concept); err == nil {
			for _, l := range lemmas {
				keys = append(keys, l.ID())
			}
		}
	}

	var facts Facts
	failures := 0
	for _, client := range e.clients {
		if err := ctx.Err(); err != nil {
			return fromProviderError(ctx, DimExtraBiblical, err)
		}
		var clientRefs []corpus.ExtraBiblicalReference
		var clientErr error
		for _, key := range keys {
			refs, err := client.Citations(ctx, key)
			if err != nil {
				clientErr = err
				continue
			}
			clientRefs = append(clientRefs, refs...)
		}
		if clientErr != nil && len(clientRefs) == 0 {
			failures++
			note := fmt.Sprintf("%s: %v", client.Name(), clientErr)
			facts.SourceNotes = append(facts.SourceNotes, note)
			logging.WarnContext(ctx, "corpus_client_failed", "corpus", client.Name(), "error", clientErr.Error())
			continue
		}
		facts.Citations = append(facts.Citations, dedupeCitations(clientRefs)...)
	}

	if len(e.clients) > 0 && failures == len(e.clients) {
		return unavailable(DimExtraBiblical, apperrors.ReasonProviderError,
			fmt.Errorf("all %d external corpora failed", failures))
	}

	if e.remedies != nil {
		if remedies, err := e.remedies.RemediesFor(ctx, concept); err == nil {
			facts.Remedies = append(facts.Remedies, remedies...)
		}
	}

	if facts.Empty() {
		return emptyOrNoData(ctx, e.probe, DimExtraBiblical)
	}
	return Result{Dimension: DimExtraBiblical, Facts: facts}
}

// dedupeCitations removes exact duplicates produced by querying one
// client under several keys (concept name and lemma ids).
func dedupeCitations(refs []corpus.ExtraBiblicalReference) []corpus.ExtraBiblicalReference {
	type key struct{ corpus, work, citation string }
	seen := make(map[key]bool, len(refs))
	out := refs[:0:0]
	for _, r := range refs {
		k := key{r.Corpus, r.Work, r.Citation}
		if !seen[k] {
			seen[k] = true
			out = append(out, r)
		}
	}
	return out
}

var _ Engine = (*ExtraBiblicalEngine)(nil)
