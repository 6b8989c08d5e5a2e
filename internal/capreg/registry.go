package capreg

import (
	"sync"
	"time"
)

// ProbeRecord is a capability-stage probe retained by the bridge-probe
// log: one record per capability id, latest verification wins.
type ProbeRecord struct {
	CapabilityID string
	Requirement  Requirement
	ActualStage  Stage
	Timestamp    time.Time

	// Bridge metadata, populated only when the probe concerns an
	// external execution bridge (native/WASM/etc).
	BridgeKind       string
	BridgeEngine     string
	BridgeBundleHash string
	BridgeModuleHash string
}

// Registry is the process-wide capability registry: an ordered mapping
// from capability id to descriptor, plus a bridge-probe log retaining
// the latest record per capability id. Every read and write goes
// through mu; bundle operations build their candidate state off-lock
// and swap it in under a single critical section so installs are
// linearizable (an observer sees the full bundle or none of it).
type Registry struct {
	mu sync.RWMutex

	order       []string
	descriptors map[string]Descriptor
	probes      map[string]ProbeRecord
}

// NewRegistry returns an empty registry. Use Provision to seed it with
// the core capability set at startup.
func NewRegistry() *Registry {
	return &Registry{
		descriptors: make(map[string]Descriptor),
		probes:      make(map[string]ProbeRecord),
	}
}

// Provision populates the registry with the given core capabilities.
// Intended to run once at process startup, before any bundle install.
func (r *Registry) Provision(descriptors ...Descriptor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range descriptors {
		r.insertLocked(d.clone())
	}
}

func (r *Registry) insertLocked(d Descriptor) {
	if _, exists := r.descriptors[d.ID]; !exists {
		r.order = append(r.order, d.ID)
	}
	r.descriptors[d.ID] = d
}

// Lookup returns the descriptor registered under id, if any.
func (r *Registry) Lookup(id string) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.descriptors[id]
	return d.clone(), ok
}

// Verify checks capability id against a stage requirement and a list
// of declared effects, recording a probe on every attempt (success or
// failure). Check order is fixed: registration, then stage, then
// effects, so the returned error always names the earliest failure.
func (r *Registry) Verify(id string, required Requirement, declaredEffects []string) (Stage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.descriptors[id]
	if !ok {
		return 0, &NotRegisteredError{ID: id}
	}

	if !required.Matches(d.Stage) {
		r.recordProbeLocked(id, required, d.Stage)
		return d.Stage, &StageViolationError{ID: id, Required: required, Actual: d.Stage}
	}

	missing := missingEffects(d.EffectScope, declaredEffects)
	if len(missing) > 0 {
		r.recordProbeLocked(id, required, d.Stage)
		return d.Stage, &EffectViolationError{ID: id, Missing: missing}
	}

	r.recordProbeLocked(id, required, d.Stage)
	return d.Stage, nil
}

func missingEffects(scope, declared []string) []string {
	have := make(map[string]struct{}, len(scope))
	for _, s := range scope {
		have[s] = struct{}{}
	}
	var missing []string
	for _, e := range declared {
		if _, ok := have[e]; !ok {
			missing = append(missing, e)
		}
	}
	return missing
}

func (r *Registry) recordProbeLocked(id string, required Requirement, actual Stage) {
	r.probes[id] = ProbeRecord{
		CapabilityID: id,
		Requirement:  required,
		ActualStage:  actual,
		Timestamp:    time.Now(),
	}
}

// RecordBridgeProbe replaces the bridge-probe record for id, carrying
// bridge-specific metadata (kind, engine, bundle/module hash). Retained
// under the same lock as ordinary verification probes: "latest per
// capability id" is the only retention policy.
func (r *Registry) RecordBridgeProbe(id string, required Requirement, actual Stage, kind, engine, bundleHash, moduleHash string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.probes[id] = ProbeRecord{
		CapabilityID:     id,
		Requirement:      required,
		ActualStage:      actual,
		Timestamp:        time.Now(),
		BridgeKind:       kind,
		BridgeEngine:     engine,
		BridgeBundleHash: bundleHash,
		BridgeModuleHash: moduleHash,
	}
}

// Probe returns the latest probe record for id, if any.
func (r *Registry) Probe(id string) (ProbeRecord, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.probes[id]
	return p, ok
}

// Snapshot returns a deep copy of the registry's current descriptor
// set, keyed by id. Used internally to implement atomic bundle
// install; exported for tests asserting registry-atomicity.
func (r *Registry) Snapshot() map[string]Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]Descriptor, len(r.descriptors))
	for id, d := range r.descriptors {
		out[id] = d.clone()
	}
	return out
}

// unregisterLocked removes a single capability id's descriptor and
// probe record. Callers must hold mu.
func (r *Registry) unregisterLocked(id string) {
	if _, ok := r.descriptors[id]; !ok {
		return
	}
	delete(r.descriptors, id)
	delete(r.probes, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}
