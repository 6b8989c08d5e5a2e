package capreg

import "strings"

// RuntimeCapability is a capability grant parsed from CLI or config
// input: an id paired with a stage. Grant syntax accepts `id`, `id@stage`,
// or `id:stage`; an id with no stage suffix defaults to Stable.
type RuntimeCapability struct {
	ID    string
	Stage Stage
}

// ParseRuntimeCapability parses the CLI-grant syntax. Returns false if
// value has no usable id portion.
func ParseRuntimeCapability(value string) (RuntimeCapability, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return RuntimeCapability{}, false
	}

	idPart, stagePart := trimmed, ""
	if idx := strings.IndexByte(trimmed, '@'); idx >= 0 {
		idPart, stagePart = trimmed[:idx], trimmed[idx+1:]
	} else if idx := strings.IndexByte(trimmed, ':'); idx >= 0 {
		idPart, stagePart = trimmed[:idx], trimmed[idx+1:]
	}

	id := strings.ToLower(strings.TrimSpace(idPart))
	if id == "" {
		return RuntimeCapability{}, false
	}

	stage, err := ParseStage(stagePart)
	if err != nil {
		stage = Stable
	}
	return RuntimeCapability{ID: id, Stage: stage}, true
}

// String renders the grant: bare id when the stage is Stable (the
// default), otherwise "id@stage".
func (r RuntimeCapability) String() string {
	if r.Stage == Stable {
		return r.ID
	}
	return r.ID + "@" + r.Stage.String()
}

// capabilityPattern maps an effect-name prefix to a capability id.
type capabilityPattern struct {
	prefix string
	id     string
}

// capabilityPatterns is the effect-name → capability-id resolution
// table: the prefixes a declared effect name is checked against, in
// order, before falling back to special-cased exact names and finally
// to a user-defined capability derived from the effect's own first
// segment.
var capabilityPatterns = []capabilityPattern{
	{"core.io.", "io"},
	{"core.file.", "io"},
	{"core.fs.", "io"},
	{"core.time.", "time"},
	{"core.text.", "unicode"},
	{"core.process.", "process"},
	{"core.thread.", "thread"},
	{"core.system.", "syscall"},
	{"core.memory.", "memory"},
	{"core.signal.", "signal"},
	{"core.hardware.", "hardware"},
	{"core.realtime.", "realtime"},
	{"core.diagnostics.audit_ctx.", "audit"},
	{"core.security.", "security"},
	{"core.trace.", "trace"},
	{"core.debug.", "debug"},
	{"core.collection.", "mem"},
}

var specialCapabilities = map[string]string{
	"panic":   "panic",
	"unsafe":  "unsafe",
	"ffi":     "ffi",
	"runtime": "runtime",
	"metrics": "metrics",
	"audit":   "audit",
	"time":    "time",
}

// experimentalCapabilityIDs lists the resolved capability ids whose
// default stage is Experimental rather than Beta — the small set that
// are inherently unsafe or unstable regardless of how they're reached.
var experimentalCapabilityIDs = map[string]struct{}{
	"panic":   {},
	"unsafe":  {},
	"ffi":     {},
	"runtime": {},
}

// ResolvedCapability is the outcome of resolving a declared effect name
// to a capability id: the id, a default stage to check against absent
// other information, and whether the id was a recognized pattern
// (false means it was derived as a user-defined fallback).
type ResolvedCapability struct {
	ID            string
	DefaultStage  Stage
	UserDefined   bool
}

// ResolveCapability maps a declared effect name to its capability id,
// mirroring the checker's fixed prefix/special-case table. An effect
// name matching no known prefix or special case resolves to a
// user-defined capability named after its leading dotted segment, at
// default stage Stable.
func ResolveCapability(effectName string) ResolvedCapability {
	trimmed := strings.TrimSpace(effectName)
	if trimmed == "" {
		return ResolvedCapability{ID: "unknown", DefaultStage: Stable, UserDefined: true}
	}

	normalized := strings.ToLower(strings.TrimPrefix(trimmed, ":"))
	normalized = strings.ReplaceAll(normalized, "::", ".")

	for _, p := range capabilityPatterns {
		if strings.HasPrefix(normalized, p.prefix) {
			return resolvedWithID(p.id)
		}
	}
	if id, ok := specialCapabilities[normalized]; ok {
		return resolvedWithID(id)
	}

	fallback := normalized
	if idx := strings.IndexByte(normalized, '.'); idx >= 0 {
		fallback = normalized[:idx]
	}
	fallback = strings.TrimSpace(fallback)
	if fallback == "" {
		fallback = "unknown"
	}
	return ResolvedCapability{ID: fallback, DefaultStage: Stable, UserDefined: true}
}

func resolvedWithID(id string) ResolvedCapability {
	stage := Beta
	if _, ok := experimentalCapabilityIDs[id]; ok {
		stage = Experimental
	}
	return ResolvedCapability{ID: id, DefaultStage: stage}
}
