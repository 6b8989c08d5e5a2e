package diagnostic

import "github.com/remlc/remlc/internal/capreg"

// CapabilityFailure describes a C3 verification failure as the
// diagnostic layer needs it: the capability id, the requirement that
// was checked, the actual registered stage, the descriptor's declared
// effect scope, and — only for an effect mismatch — the missing
// effect tags.
type CapabilityFailure struct {
	CapabilityID    string
	Required        capreg.Requirement
	Actual          capreg.Stage
	EffectScope     []string
	MissingEffects  []string // non-nil only for an EffectViolation
}

// WithCapabilityStage attaches the registry snapshot keys a capability
// failure always carries — effect.capability, effect.stage.required,
// effect.stage.actual, effect.scope — plus effect.stage.missing_effects
// when the failure was an effect mismatch, in one operation, dual-written
// to both the `effect` extension and the audit metadata.
func (b *Builder) WithCapabilityStage(f CapabilityFailure) *Builder {
	fields := map[string]any{
		"capability":     f.CapabilityID,
		"stage.required": f.Required.String(),
		"stage.actual":   f.Actual.String(),
		"scope":          append([]string(nil), f.EffectScope...),
	}
	if len(f.MissingEffects) > 0 {
		fields["stage.missing_effects"] = append([]string(nil), f.MissingEffects...)
	}
	return b.mergeExtension("effect", fields)
}
