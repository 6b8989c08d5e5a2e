package diagnostic

import (
	"fmt"
	"sort"
	"strings"
)

const eventKindKey = "event.kind"

var effectStageKeys = []string{"effect.stage.required", "effect.stage.actual", "effect.capability"}
var bridgeStageKeys = []string{"bridge.id", "bridge.stage.required", "bridge.stage.actual"}
var bridgeReloadKeys = []string{"bridge.reload", "bridge.id", "bridge.stage.required", "bridge.stage.actual"}

// EventKind is one of the closed set of audit event kinds, each with
// its own required-metadata-key list. An unrecognized kind string is
// simply not checked against any required-key list — validation rule
// 2 only fires for a *known* kind.
type EventKind string

const (
	EventPipelineStarted           EventKind = "pipeline_started"
	EventPipelineCompleted         EventKind = "pipeline_completed"
	EventPipelineFailed            EventKind = "pipeline_failed"
	EventCapabilityMismatch        EventKind = "capability_mismatch"
	EventCapabilityCheck           EventKind = "capability_check"
	EventAsyncSupervisorRestarted  EventKind = "async_supervisor_restarted"
	EventAsyncSupervisorExhausted  EventKind = "async_supervisor_exhausted"
	EventConfigCompatChanged       EventKind = "config_compat_changed"
	EventEnvMutation                EventKind = "env_mutation"
	EventBridgeReload              EventKind = "bridge.reload"
	EventBridgeRollback            EventKind = "bridge.rollback"
	EventSnapshotUpdated           EventKind = "snapshot.updated"
	EventDocTest                    EventKind = "doc.doctest"
)

var requiredKeysByKind = map[EventKind][]string{
	EventPipelineStarted:          {"pipeline.id", "pipeline.dsl_id", "pipeline.node", "timestamp"},
	EventPipelineCompleted:        {"pipeline.id", "pipeline.dsl_id", "pipeline.node", "timestamp", "pipeline.outcome", "pipeline.count"},
	EventPipelineFailed:           {"pipeline.id", "pipeline.dsl_id", "pipeline.node", "timestamp", "error.code", "error.message", "error.severity"},
	EventCapabilityMismatch:       {"capability.id", "capability.expected_stage", "capability.actual_stage", "dsl.node"},
	EventCapabilityCheck:          {"capability.id", "capability.result", "effect.capability", "effect.stage.required", "effect.stage.actual", "capability.ids", "effect.required_capabilities", "effect.actual_capabilities"},
	EventAsyncSupervisorRestarted: {"async.supervisor.id", "async.supervisor.actor", "async.supervisor.restart_count"},
	EventAsyncSupervisorExhausted: {"async.supervisor.id", "async.supervisor.actor", "async.supervisor.restart_count", "async.supervisor.budget", "async.supervisor.outcome"},
	EventConfigCompatChanged:      {"config.source", "config.format", "config.profile", "config.compatibility"},
	EventEnvMutation:              {"env.operation", "env.key", "env.scope", "requested_by"},
	EventBridgeReload:             bridgeReloadKeys,
	EventBridgeRollback:           bridgeReloadKeys,
	EventSnapshotUpdated:          {"snapshot.name", "snapshot.hash"},
	// EventDocTest has no required keys beyond the baseline non-empty check.
}

// RequiredMetadataKeys returns the required-key list for a known kind,
// or nil if the kind is unrecognized or carries no extra requirement.
func RequiredMetadataKeys(kind EventKind) []string {
	return requiredKeysByKind[kind]
}

// Envelope carries the audit metadata map plus the optional envelope
// fields (audit id, change-set value, capability id).
type Envelope struct {
	AuditID    string         `json:"audit_id,omitempty"`
	ChangeSet  any            `json:"change_set,omitempty"`
	Capability string         `json:"capability,omitempty"`
	Metadata   map[string]any `json:"metadata"`
}

// NewEnvelope returns an envelope with an initialized, empty metadata map.
func NewEnvelope() Envelope {
	return Envelope{Metadata: map[string]any{}}
}

// EventKind returns the envelope's declared event.kind, if the
// metadata carries one and it's non-blank.
func (e Envelope) EventKind() (EventKind, bool) {
	raw, ok := e.Metadata[eventKindKey]
	if !ok {
		return "", false
	}
	s, ok := raw.(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	return EventKind(s), true
}

// InsertMetadata sets a single metadata key.
func (e *Envelope) InsertMetadata(key string, value any) {
	if e.Metadata == nil {
		e.Metadata = map[string]any{}
	}
	e.Metadata[key] = value
}

// Validate applies the five ordered envelope-validation rules:
//  1. metadata must be non-empty.
//  2. a present, recognized event.kind must satisfy its required-key list.
//  3. any bridge.* kind additionally requires the bridge stage key triple.
//  4. the presence of any effect.stage.* key requires the full
//     effect.capability/effect.stage.required/effect.stage.actual triple.
//  5. the presence of bridge.reload, or an event.kind of bridge.reload/
//     bridge.rollback, requires the full reload key set.
//
// All violated rules are collected before returning — validation never
// stops at the first missing key — so the error names every gap at once.
func (e Envelope) Validate() error {
	var missing []string

	if len(e.Metadata) == 0 {
		missing = append(missing, "metadata")
	}

	if kind, ok := e.EventKind(); ok {
		if required, known := requiredKeysByKind[kind]; known {
			missing = append(missing, missingKeys(e.Metadata, required)...)
		}
		if strings.HasPrefix(string(kind), "bridge.") {
			missing = append(missing, missingKeys(e.Metadata, bridgeStageKeys)...)
		}
	}

	if containsAny(e.Metadata, effectStageKeys) {
		missing = append(missing, missingKeys(e.Metadata, effectStageKeys)...)
	}
	if containsAny(e.Metadata, bridgeStageKeys) {
		missing = append(missing, missingKeys(e.Metadata, bridgeStageKeys)...)
	}
	if expectsBridgeReload(e.Metadata) {
		missing = append(missing, missingKeys(e.Metadata, bridgeReloadKeys)...)
	}

	if len(missing) == 0 {
		return nil
	}
	missing = dedupSorted(missing)
	return fmt.Errorf("audit metadata validation failed: missing keys %v", missing)
}

func missingKeys(metadata map[string]any, required []string) []string {
	var missing []string
	for _, key := range required {
		if _, ok := metadata[key]; !ok {
			missing = append(missing, key)
		}
	}
	return missing
}

func containsAny(metadata map[string]any, keys []string) bool {
	for _, key := range keys {
		if _, ok := metadata[key]; ok {
			return true
		}
	}
	return false
}

func expectsBridgeReload(metadata map[string]any) bool {
	if _, ok := metadata["bridge.reload"]; ok {
		return true
	}
	kind, _ := metadata[eventKindKey].(string)
	return kind == string(EventBridgeReload) || kind == string(EventBridgeRollback)
}

func dedupSorted(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := keys[:0]
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
