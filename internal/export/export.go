// Package export renders a ConceptResult for downstream consumers.
// Renderers are read-only over the result; picking a format never
// changes what the query computed.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	apperrors "bcnav/internal/errors"
	"bcnav/internal/navigator"
)

// Format names an output rendering.
type Format string

const (
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
)

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatMarkdown, "md":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("%w: unknown export format %q", apperrors.ErrInvalidInput, name)
}

// Render writes the result to w in the requested format.
func Render(w io.Writer, result *navigator.ConceptResult, format Format) error {
	switch format {
	case FormatJSON:
		return renderJSON(w, result)
	case FormatCSV:
		return renderCSV(w, result)
	case FormatMarkdown:
		return renderMarkdown(w, result)
	}
	return fmt.Errorf("%w: unknown export format %q", apperrors.ErrInvalidInput, format)
}

func renderJSON(w io.Writer, result *navigator.ConceptResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// csvHeader is one row per verse; list-valued dimensions are joined with
// "; " inside a cell.
var csvHeader = []string{
	"book", "chapter", "verse", "primary_confidence",
	"methods", "lemmas", "metaphors", "sources", "divergent", "expanded_from",
}

func renderCSV(w io.Writer, result *navigator.ConceptResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, v := range result.Verses {
		var methods, lemmas, metaphors, sources []string
		for _, e := range v.Evidence {
			methods = appendUnique(methods, string(e.Method))
		}
		for _, o := range v.Occurrences {
			lemmas = appendUnique(lemmas, o.Lemma.ID())
		}
		for _, m := range v.Metaphors {
			metaphors = appendUnique(metaphors, m.SourceDomain)
		}
		for _, a := range v.Assignments {
			sources = appendUnique(sources, fmt.Sprintf("%s (%.2f)", a.Source, a.Confidence))
		}
		divergent := ""
		if v.Divergence != nil {
			divergent = strconv.FormatBool(v.Divergence.Divergent)
		}
		expandedFrom := ""
		if v.ExpandedFrom != nil {
			expandedFrom = v.ExpandedFrom.Source.String()
		}
		row := []string{
			v.Coordinate.Book,
			strconv.Itoa(v.Coordinate.Chapter),
			strconv.Itoa(v.Coordinate.Verse),
			strconv.FormatFloat(v.PrimaryConfidence, 'f', 2, 64),
			strings.Join(methods, "; "),
			strings.Join(lemmas, "; "),
			strings.Join(metaphors, "; "),
			strings.Join(sources, "; "),
			divergent,
			expandedFrom,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func renderMarkdown(w io.Writer, result *navigator.ConceptResult) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# Concept: %s\n\n", result.Concept)
	if result.QueryID != "" {
		fmt.Fprintf(&b, "Query `%s`", result.QueryID)
		if !result.GeneratedAt.IsZero() {
			fmt.Fprintf(&b, ", generated %s", result.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
		}
		b.WriteString("\n\n")
	}

	if len(result.Lemmas) > 0 {
		b.WriteString("## Lemmas\n\n")
		for _, l := range result.Lemmas {
			fmt.Fprintf(&b, "- **%s** (%s, %s)", l.Root, l.ID(), l.Language)
			if l.Gloss != "" {
				fmt.Fprintf(&b, ": %s", l.Gloss)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "## Verses (%d)\n\n", len(result.Verses))
	for _, v := range result.Verses {
		fmt.Fprintf(&b, "### %s (confidence %.2f)\n\n", v.Coordinate, v.PrimaryConfidence)
		for _, w := range v.Witnesses {
			fmt.Fprintf(&b, "> [%s] %s\n", w.Tradition, w.Text)
		}
		if len(v.Witnesses) > 0 {
			b.WriteString("\n")
		}
		for _, o := range v.Occurrences {
			fmt.Fprintf(&b, "- Lemma %s, surface %q", o.Lemma.ID(), o.Surface)
			if o.Morphology.Code != "" {
				fmt.Fprintf(&b, ", morphology %s", o.Morphology.Code)
			}
			b.WriteString("\n")
		}
		for _, m := range v.Metaphors {
			fmt.Fprintf(&b, "- %s: source domain %q\n", m.MetaphorType, m.SourceDomain)
		}
		for _, a := range v.Assignments {
			fmt.Fprintf(&b, "- Source layer %s (confidence %.2f", a.Source, a.Confidence)
			if a.Scholar != "" {
				fmt.Fprintf(&b, ", %s", a.Scholar)
			}
			b.WriteString(")\n")
		}
		if v.Divergence != nil {
			fmt.Fprintf(&b, "- Manuscript divergence: present %v, missing %v\n",
				v.Divergence.Present, v.Divergence.Missing)
		}
		if v.ExpandedFrom != nil {
			fmt.Fprintf(&b, "- Reached by cross-reference from %s (weight %.2f)\n",
				v.ExpandedFrom.Source, v.ExpandedFrom.Weight)
		}
		b.WriteString("\n")
	}

	if len(result.Citations) > 0 {
		b.WriteString("## Extra-biblical citations\n\n")
		for _, c := range result.Citations {
			fmt.Fprintf(&b, "- %s, *%s*, %s", c.Corpus, c.Work, c.Citation)
			if c.Context != "" {
				fmt.Fprintf(&b, ": %s", c.Context)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(result.Remedies) > 0 {
		b.WriteString("## Remedies\n\n")
		for _, r := range result.Remedies {
			fmt.Fprintf(&b, "- **%s**", r.RemedyType)
			if r.Description != "" {
				fmt.Fprintf(&b, ": %s", r.Description)
			}
			if len(r.Support) > 0 {
				parts := make([]string, len(r.Support))
				for i, c := range r.Support {
					parts[i] = c.String()
				}
				fmt.Fprintf(&b, " (%s)", strings.Join(parts, "; "))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(result.Notes) > 0 {
		b.WriteString("## Unavailable dimensions\n\n")
		for _, n := range result.Notes {
			fmt.Fprintf(&b, "- %s: %s", n.Dimension, n.Reason)
			if n.Detail != "" {
				fmt.Fprintf(&b, " (%s)", n.Detail)
			}
			b.WriteString("\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func appendUnique(list []string, s string) []string {
	for _, have := range list {
		if have == s {
			return list
		}
	}
	return append(list, s)
}
