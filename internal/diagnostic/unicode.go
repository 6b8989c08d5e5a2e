package diagnostic

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/width"

	"github.com/remlc/remlc/internal/ast"
)

// graphemeCluster is a single base rune plus any trailing combining
// marks, approximating a full Unicode grapheme-cluster break without
// pulling in a dedicated segmenter: good enough for diagnostic
// snippets, not a claim of full UAX #29 conformance.
func graphemeClusters(s string) []string {
	var clusters []string
	runes := []rune(s)
	i := 0
	for i < len(runes) {
		start := i
		i++
		for i < len(runes) && unicode.IsMark(runes[i]) {
			i++
		}
		clusters = append(clusters, string(runes[start:i]))
	}
	return clusters
}

func displayWidth(s string) int {
	total := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			total += 2
		default:
			total++
		}
	}
	return total
}

// UnicodeDetail is the input to WithUnicode: the raw kind/phase tags a
// lexing or identifier-normalization failure carries, plus an optional
// byte offset (relative to the span start) pinpointing the offending
// grapheme.
type UnicodeDetail struct {
	Kind           string
	Phase          string
	RelativeOffset *int
	Raw            string
	Locale         string
	Profile        string
}

// WithUnicode refines span to the grapheme-precise offending cluster
// within source and attaches width/snippet metadata. It replaces the
// diagnostic's primary span with the refined one and dual-writes kind,
// phase, offset, width, and snippet into both the `unicode` extension
// and the audit metadata.
func (b *Builder) WithUnicode(detail UnicodeDetail, span ast.Span, source string) *Builder {
	start, end := clampSpan(span, len(source))

	fields := map[string]any{
		"kind":  detail.Kind,
		"phase": detail.Phase,
	}
	if detail.Raw != "" {
		fields["identifier.raw"] = detail.Raw
	}
	if detail.Locale != "" {
		fields["locale.requested"] = detail.Locale
	}
	if detail.Profile != "" {
		fields["identifier.profile"] = detail.Profile
	}

	if start >= end {
		b.WithPrimarySpan(span)
		return b.mergeExtension("unicode", fields)
	}

	highlightStart, highlightEnd, snippet := selectHighlight(detail, source, start, end)
	refined := ast.Span{
		Start: ast.Pos{File: span.Start.File, Offset: highlightStart},
		End:   ast.Pos{File: span.Start.File, Offset: highlightEnd},
	}
	b.WithPrimarySpan(refined)

	prefixClusters := len(graphemeClusters(source[:highlightStart]))
	snippetClusters := len(graphemeClusters(snippet))

	fields["offset"] = highlightStart
	fields["span.start"] = refined.Start.Offset
	fields["span.end"] = refined.End.Offset
	fields["original_span.start"] = span.Start.Offset
	fields["original_span.end"] = span.End.Offset
	fields["grapheme.start"] = prefixClusters
	fields["grapheme.end"] = prefixClusters + snippetClusters
	fields["display_width"] = displayWidth(snippet)
	fields["snippet"] = snippet

	return b.mergeExtension("unicode", fields)
}

func clampSpan(span ast.Span, length int) (int, int) {
	start, end := span.Start.Offset, span.End.Offset
	if start > end {
		start, end = end, start
	}
	if start < 0 {
		start = 0
	}
	if start > length {
		start = length
	}
	if end > length {
		end = length
	}
	return start, end
}

func selectHighlight(detail UnicodeDetail, source string, start, end int) (int, int, string) {
	if detail.RelativeOffset != nil {
		highlightStart := start + *detail.RelativeOffset
		if highlightStart > end {
			highlightStart = end
		}
		if highlightStart < start {
			highlightStart = start
		}
		tail := source[highlightStart:end]
		if tail != "" {
			r, size := utf8.DecodeRuneInString(tail)
			_ = r
			clusterEnd := highlightStart + size
			// Extend over trailing combining marks so the highlighted
			// slice is a full grapheme cluster, not a bare code point.
			for clusterEnd < end {
				nr, nsize := utf8.DecodeRuneInString(source[clusterEnd:end])
				if !unicode.IsMark(nr) {
					break
				}
				clusterEnd += nsize
			}
			return highlightStart, clusterEnd, source[highlightStart:clusterEnd]
		}
	}
	return start, end, source[start:end]
}
