package diagnostic

import "fmt"

// Event is a single audit record: a named kind, a unix timestamp, and
// the envelope of metadata that kind requires. Constructing one does
// not validate it — call Validate (or let the Sink do it) once the
// metadata is fully populated.
type Event struct {
	Kind      EventKind `json:"kind"`
	Timestamp int64     `json:"timestamp"`
	Envelope  Envelope  `json:"envelope"`
}

// NewEvent starts an event of the given kind at the given unix-seconds
// timestamp with an empty envelope, and stamps event.kind into the
// envelope metadata so Envelope.Validate can find it.
func NewEvent(kind EventKind, timestampSecs int64) Event {
	env := NewEnvelope()
	env.InsertMetadata(eventKindKey, string(kind))
	return Event{Kind: kind, Timestamp: timestampSecs, Envelope: env}
}

// FromDiagnostic builds an audit event of the given kind from a
// diagnostic's already-flattened audit metadata — the diagnostic
// pipeline's usual path from a Diagnostic to something a Sink can
// write, since every domain helper (WithConfig, WithCapabilityStage,
// WithEnvMutation, WithMetricPoint, ...) already dual-writes into
// AuditMetadata in the shape the envelope's required-key tables expect.
func FromDiagnostic(kind EventKind, timestampSecs int64, d Diagnostic) Event {
	ev := NewEvent(kind, timestampSecs)
	for k, v := range d.AuditMetadata {
		ev.Envelope.InsertMetadata(k, v)
	}
	if d.Code != "" {
		ev.Envelope.InsertMetadata("diagnostic.code", d.Code)
	}
	return ev
}

// Validate checks the event's envelope against the five envelope rules.
func (e Event) Validate() error {
	if err := e.Envelope.Validate(); err != nil {
		return fmt.Errorf("audit event %q: %w", e.Kind, err)
	}
	return nil
}
