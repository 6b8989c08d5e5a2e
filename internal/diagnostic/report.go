package diagnostic

import "github.com/remlc/remlc/internal/errors"

// ToReport projects a Diagnostic into the shared structured error
// envelope so it can cross a package boundary as a plain error and
// still survive errors.As at the far end. Domain becomes Phase,
// AuditMetadata becomes Data — both are already the flat, dotted-key
// view the rest of the system expects.
func (d Diagnostic) ToReport() *errors.Report {
	r := &errors.Report{
		Code:    d.Code,
		Phase:   string(d.Domain),
		Message: d.Message,
		Data:    d.AuditMetadata,
	}
	if d.PrimarySpan != nil {
		s := *d.PrimarySpan
		r.Span = &s
	}
	return r
}

// AsReportError wraps the diagnostic's Report as an error, so callers
// that propagate plain errors (cobra's RunE, for instance) can still
// recover the structured record with errors.As.
func (d Diagnostic) AsReportError() error {
	return errors.WrapReport(d.ToReport())
}
