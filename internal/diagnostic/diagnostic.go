// Package diagnostic implements the structured diagnostic record, its
// fluent builder, and the audit event/envelope types that the
// diagnostic pipeline emits alongside them. Every diagnostic carries a
// closed schema (code, severity, domain, message, audit metadata);
// domain-specific detail is namespaced under extensions and mirrored,
// flattened, into the audit metadata so both surfaces are
// self-contained.
package diagnostic

import "github.com/remlc/remlc/internal/ast"

// Domain is the closed tag identifying which subsystem produced a
// diagnostic. New domains are added as the checker grows; the set of
// fields every diagnostic carries never changes.
type Domain string

const (
	DomainConfig   Domain = "config"
	DomainNative   Domain = "native"
	DomainCore     Domain = "core"
	DomainIO       Domain = "io"
	DomainEffect   Domain = "effect"
	DomainBridge   Domain = "bridge"
	DomainTypeck   Domain = "typeck"
	DomainUnicode  Domain = "unicode"
)

// Severity is the diagnostic's severity level.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
	SeverityHint    Severity = "hint"
)

// Diagnostic is a single structured diagnostic record. Code follows
// the taxonomy `<domain>.<concept>.<variant>`; every field besides
// Notes/Extensions/AuditMetadata/spans is required at construction.
type Diagnostic struct {
	Code     string            `json:"code"`
	Domain   Domain            `json:"domain"`
	Severity Severity          `json:"severity"`
	Message  string            `json:"message"`
	Notes    []string          `json:"notes,omitempty"`

	Extensions    map[string]any `json:"extensions,omitempty"`
	AuditMetadata map[string]any `json:"audit_metadata"`

	PrimarySpan    *ast.Span  `json:"primary_span,omitempty"`
	SecondarySpans []ast.Span `json:"secondary_spans,omitempty"`
}

// Builder constructs a Diagnostic through a fluent API. A Builder is a
// single-owner value: once Build is called, the returned Diagnostic is
// handed off to a sink and must not be further mutated by the builder.
type Builder struct {
	d Diagnostic
}

// New starts a builder for a diagnostic with the given code, domain,
// severity, and message — the four fields the schema always requires.
func New(code string, domain Domain, severity Severity, message string) *Builder {
	return &Builder{d: Diagnostic{
		Code:          code,
		Domain:        domain,
		Severity:      severity,
		Message:       message,
		Extensions:    map[string]any{},
		AuditMetadata: map[string]any{},
	}}
}

// WithNote appends an ordered note.
func (b *Builder) WithNote(note string) *Builder {
	b.d.Notes = append(b.d.Notes, note)
	return b
}

// WithPrimarySpan sets the diagnostic's primary span.
func (b *Builder) WithPrimarySpan(span ast.Span) *Builder {
	b.d.PrimarySpan = &span
	return b
}

// WithSecondarySpan appends a secondary span.
func (b *Builder) WithSecondarySpan(span ast.Span) *Builder {
	b.d.SecondarySpans = append(b.d.SecondarySpans, span)
	return b
}

// WithExtension sets a single top-level extension namespace to value,
// without the dual audit-metadata write the domain-specific With*
// helpers perform. Use for one-off extensions that have no audit
// significance.
func (b *Builder) WithExtension(namespace string, value any) *Builder {
	b.d.Extensions[namespace] = value
	return b
}

// WithAuditMetadata sets a single flat dotted-key audit metadata entry
// directly, without a matching extension. Use for audit-only facts.
func (b *Builder) WithAuditMetadata(key string, value any) *Builder {
	b.d.AuditMetadata[key] = value
	return b
}

// mergeExtension merges fields into the named extension namespace
// (creating it if absent) and writes the same fields, dotted by
// namespace, into AuditMetadata — the dual-write every domain helper
// performs.
func (b *Builder) mergeExtension(namespace string, fields map[string]any) *Builder {
	ext, _ := b.d.Extensions[namespace].(map[string]any)
	if ext == nil {
		ext = map[string]any{}
	}
	for k, v := range fields {
		ext[k] = v
		b.d.AuditMetadata[namespace+"."+k] = v
	}
	b.d.Extensions[namespace] = ext
	return b
}

// Build finalizes the diagnostic.
func (b *Builder) Build() Diagnostic {
	return b.d
}
