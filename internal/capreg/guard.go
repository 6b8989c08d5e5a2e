package capreg

import "sync"

// Guard memoizes a single call site's verification result against a
// capability id, stage requirement, and declared-effects set. Call
// sites are expected to construct one Guard and reuse it across
// repeated evaluations (e.g. inside a loop body), so the registry lock
// is only taken once per distinct call site rather than once per
// evaluation.
type Guard struct {
	registry        *Registry
	capabilityID    string
	requirement     Requirement
	declaredEffects []string

	once     sync.Once
	verified Stage
	err      error
}

// NewGuard binds a guard to a specific capability id, stage
// requirement, and declared effect set against registry.
func NewGuard(registry *Registry, capabilityID string, requirement Requirement, declaredEffects []string) *Guard {
	return &Guard{
		registry:        registry,
		capabilityID:    capabilityID,
		requirement:     requirement,
		declaredEffects: declaredEffects,
	}
}

// Check runs verification exactly once for this guard's lifetime and
// caches the result; subsequent calls return the memoized outcome
// without touching the registry lock again.
func (g *Guard) Check() (Stage, error) {
	g.once.Do(func() {
		g.verified, g.err = g.registry.Verify(g.capabilityID, g.requirement, g.declaredEffects)
	})
	return g.verified, g.err
}

// Reset clears the memoized result, forcing the next Check to
// re-verify against the registry. Used after a bundle install/unload
// invalidates previously-cached guards for affected capability ids.
func (g *Guard) Reset() {
	g.once = sync.Once{}
	g.verified = 0
	g.err = nil
}
