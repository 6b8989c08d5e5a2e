// Package ast holds the source-position types shared across the checker:
// every span attached to a type, constraint violation, or diagnostic
// traces back to a Pos pair recorded here. The checker itself is
// AST-shape-agnostic — it consumes a typed-AST mirror (package typedast)
// rather than walking concrete surface syntax, so this package carries
// only the position/span vocabulary, not a parser's node tree.
package ast

import "fmt"

// Pos represents a position in source code.
type Pos struct {
	Line   int
	Column int
	File   string
	Offset int // byte offset, used for stable ID derivation
}

// String formats a position as "file:line:col".
func (p Pos) String() string {
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Span represents a contiguous range in source code.
type Span struct {
	Start Pos
	End   Pos
}

// String formats a span as "file:startLine:startCol-endLine:endCol".
func (s Span) String() string {
	if s.Start.File == s.End.File {
		return fmt.Sprintf("%s:%d:%d-%d:%d", s.Start.File, s.Start.Line, s.Start.Column, s.End.Line, s.End.Column)
	}
	return fmt.Sprintf("%s-%s", s.Start.String(), s.End.String())
}
