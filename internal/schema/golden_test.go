package schema_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/remlc/remlc/internal/errors"
	"github.com/remlc/remlc/internal/schema"
)

// TestGoldenErrorJSON pins the exact deterministic JSON shape produced for
// a structured error report, across the checker's error-builder phases.
func TestGoldenErrorJSON(t *testing.T) {
	tests := []struct {
		name     string
		err      errors.Encoded
		wantJSON string
	}{
		{
			name: "kind_mismatch",
			err: errors.NewTypesys("TS#001", errors.TS001, "kind mismatch: expected Type, got Effect", errors.ErrorContext{
				Constraints: []string{"Num a", "a = String"},
				TraceSlice:  "TS#001 -> TS#002",
			}),
			wantJSON: `{
  "code": "TS001",
  "context": {
    "constraints": ["Num a", "a = String"],
    "trace_slice": "TS#001 -> TS#002"
  },
  "fix": {
    "confidence": 0,
    "suggestion": ""
  },
  "message": "kind mismatch: expected Type, got Effect",
  "phase": "typesys",
  "schema": "remlc.error/v1",
  "sid": "TS#001"
}`,
		},
		{
			name: "capability_stage_requirement",
			err: errors.NewCapability("CR#042", errors.CR002, "stage requirement not satisfied", nil).
				WithFix("provision the capability at the required stage", 0.85),
			wantJSON: `{
  "code": "CR002",
  "fix": {
    "confidence": 0.85,
    "suggestion": "provision the capability at the required stage"
  },
  "message": "stage requirement not satisfied",
  "phase": "capreg",
  "schema": "remlc.error/v1",
  "sid": "CR#042"
}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := schema.MarshalDeterministic(tt.err)
			if err != nil {
				t.Fatalf("MarshalDeterministic() error = %v", err)
			}

			formatted, err := schema.FormatJSON(got)
			if err != nil {
				t.Fatalf("FormatJSON() error = %v", err)
			}

			wantNorm := normalizeJSON(t, tt.wantJSON)
			gotNorm := normalizeJSON(t, string(formatted))

			if gotNorm != wantNorm {
				t.Errorf("JSON mismatch:\nGot:\n%s\nWant:\n%s", gotNorm, wantNorm)
			}

			var parsed map[string]interface{}
			if err := json.Unmarshal(got, &parsed); err != nil {
				t.Fatalf("Failed to parse JSON: %v", err)
			}

			if schemaField, ok := parsed["schema"].(string); ok {
				if !schema.Accepts(schemaField, schema.ErrorV1) {
					t.Errorf("schema %q not accepted by %q", schemaField, schema.ErrorV1)
				}
			} else {
				t.Error("missing schema field in JSON output")
			}
		})
	}
}

// TestGoldenEffectsJSON tests that an effect-usage audit payload marshals
// to the same deterministic, sorted-key shape as an error report.
func TestGoldenEffectsJSON(t *testing.T) {
	report := map[string]interface{}{
		"schema": schema.EffectsV1,
		"stage":  "staged",
		"usages": []interface{}{
			map[string]interface{}{
				"effect": "FS",
				"span":   "ingest.rl:12:5",
			},
			map[string]interface{}{
				"effect": "Net",
				"span":   "ingest.rl:19:9",
			},
		},
	}

	wantJSON := `{
  "schema": "remlc.effects/v1",
  "stage": "staged",
  "usages": [
    {"effect": "FS", "span": "ingest.rl:12:5"},
    {"effect": "Net", "span": "ingest.rl:19:9"}
  ]
}`

	got, err := schema.MarshalDeterministic(report)
	if err != nil {
		t.Fatalf("MarshalDeterministic() error = %v", err)
	}

	formatted, err := schema.FormatJSON(got)
	if err != nil {
		t.Fatalf("FormatJSON() error = %v", err)
	}

	wantNorm := normalizeJSON(t, wantJSON)
	gotNorm := normalizeJSON(t, string(formatted))

	if gotNorm != wantNorm {
		t.Errorf("JSON mismatch:\nGot:\n%s\nWant:\n%s", gotNorm, wantNorm)
	}
}

// TestGoldenCompactMode tests that compact mode strips the indentation
// FormatJSON otherwise applies, without reordering keys.
func TestGoldenCompactMode(t *testing.T) {
	data := map[string]interface{}{
		"schema": schema.DecisionsV1,
		"counts": map[string]interface{}{
			"granted": 10,
			"denied":  2,
		},
	}

	schema.SetCompactMode(false)
	pretty, err := schema.MarshalDeterministic(data)
	if err != nil {
		t.Fatalf("MarshalDeterministic error = %v", err)
	}
	prettyFormatted, err := schema.FormatJSON(pretty)
	if err != nil {
		t.Fatalf("FormatJSON error = %v", err)
	}
	if !strings.Contains(string(prettyFormatted), "\n") {
		t.Error("pretty mode should contain newlines")
	}

	schema.SetCompactMode(true)
	compact, err := schema.MarshalDeterministic(data)
	if err != nil {
		t.Fatalf("MarshalDeterministic error = %v", err)
	}
	compactFormatted, err := schema.FormatJSON(compact)
	if err != nil {
		t.Fatalf("FormatJSON error = %v", err)
	}
	if strings.Contains(string(compactFormatted), "\n") {
		t.Error("compact mode should not contain newlines")
	}

	wantCompact := `{"counts":{"denied":2,"granted":10},"schema":"remlc.decisions/v1"}`
	if string(compactFormatted) != wantCompact {
		t.Errorf("compact JSON mismatch:\nGot:  %s\nWant: %s", string(compactFormatted), wantCompact)
	}

	schema.SetCompactMode(false)
}

// TestAcceptsCompatibility tests schema version compatibility across the
// schema families this repo actually emits.
func TestAcceptsCompatibility(t *testing.T) {
	tests := []struct {
		name     string
		got      string
		want     string
		expected bool
	}{
		{"exact error v1", "remlc.error/v1", schema.ErrorV1, true},
		{"exact effects v1", "remlc.effects/v1", schema.EffectsV1, true},
		{"exact decisions v1", "remlc.decisions/v1", schema.DecisionsV1, true},

		{"error v1.1", "remlc.error/v1.1", schema.ErrorV1, true},
		{"effects v1.2.3", "remlc.effects/v1.2.3", schema.EffectsV1, true},

		{"error v2", "remlc.error/v2", schema.ErrorV1, false},
		{"effects v2", "remlc.effects/v2", schema.EffectsV1, false},

		{"wrong schema", "remlc.effects/v1", schema.ErrorV1, false},
		{"wrong schema reversed", "remlc.error/v1", schema.EffectsV1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := schema.Accepts(tt.got, tt.want); got != tt.expected {
				t.Errorf("Accepts(%q, %q) = %v, want %v", tt.got, tt.want, got, tt.expected)
			}
		})
	}
}

// normalizeJSON normalizes JSON for comparison by parsing and re-formatting.
func normalizeJSON(t *testing.T, jsonStr string) string {
	var data interface{}
	if err := json.Unmarshal([]byte(jsonStr), &data); err != nil {
		t.Fatalf("invalid JSON: %v\nJSON: %s", err, jsonStr)
	}

	normalized, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		t.Fatalf("failed to normalize JSON: %v", err)
	}

	return string(normalized)
}
