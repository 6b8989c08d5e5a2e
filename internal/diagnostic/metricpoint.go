package diagnostic

import (
	"sort"

	"github.com/remlc/remlc/internal/capreg"
)

// MetricPoint is a single named numeric observation, the unit the
// metrics capability reports through the diagnostic/audit pipeline.
type MetricPoint struct {
	Name            string
	Value           float64
	Tags            map[string]string
	TimestampSecs   int64
	RequiredEffects []string
}

// WithMetricPoint attaches a metric observation's audit trail: the
// point's name/value/tags/timestamp under `metric_point.*`, plus the
// standard effect.capability/effect.stage.*/effect.required_effects
// triple under `effect.*`, both dual-written into extensions and audit
// metadata in one operation.
func (b *Builder) WithMetricPoint(point MetricPoint, capabilityID string, requirement capreg.Requirement, actual capreg.Stage) *Builder {
	fields := map[string]any{
		"name":               point.Name,
		"value":              point.Value,
		"timestamp.seconds":  point.TimestampSecs,
	}
	if len(point.Tags) > 0 {
		keys := make([]string, 0, len(point.Tags))
		for k := range point.Tags {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		tagObject := make(map[string]any, len(keys))
		for _, k := range keys {
			fields["tag."+k] = point.Tags[k]
			tagObject[k] = point.Tags[k]
		}
		fields["tags"] = tagObject
	}
	b.mergeExtension("metric_point", fields)

	effectFields := map[string]any{
		"capability":           capabilityID,
		"stage.required":       requirement.String(),
		"stage.actual":         actual.String(),
		"required_capabilities": []string{capabilityID},
		"actual_capabilities":   []string{capabilityID},
	}
	if len(point.RequiredEffects) > 0 {
		effectFields["required_effects"] = append([]string(nil), point.RequiredEffects...)
	}
	return b.mergeExtension("effect", effectFields)
}
