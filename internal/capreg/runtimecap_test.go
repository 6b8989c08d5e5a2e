package capreg

import "testing"

func TestParseRuntimeCapability(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantID   string
		wantStage Stage
		wantOK   bool
	}{
		{"bare id defaults to stable", "io", "io", Stable, true},
		{"at sign stage", "metrics@beta", "metrics", Beta, true},
		{"colon stage", "audit:experimental", "audit", Experimental, true},
		{"unknown stage falls back to stable", "io@nightly", "io", Stable, true},
		{"empty input", "   ", "", Stable, false},
		{"uppercase id normalized", "IO@Beta", "io", Beta, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseRuntimeCapability(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if got.ID != tt.wantID || got.Stage != tt.wantStage {
				t.Errorf("got %+v, want id=%s stage=%s", got, tt.wantID, tt.wantStage)
			}
		})
	}
}

func TestRuntimeCapabilityStringOmitsStableStage(t *testing.T) {
	cap := RuntimeCapability{ID: "io", Stage: Stable}
	if cap.String() != "io" {
		t.Errorf("expected bare id for stable stage, got %q", cap.String())
	}

	cap2 := RuntimeCapability{ID: "io", Stage: Beta}
	if cap2.String() != "io@beta" {
		t.Errorf("expected id@stage for non-stable stage, got %q", cap2.String())
	}
}

func TestResolveCapabilityPrefixTable(t *testing.T) {
	tests := []struct {
		effect string
		wantID string
	}{
		{"core.io.print", "io"},
		{"core.fs.read_file", "io"},
		{"core.system.syscall", "syscall"},
		{"core.text.normalize", "unicode"},
		{"panic", "panic"},
		{"metrics", "metrics"},
		{"custom.unknown", "custom"},
		{"core::io::print", "io"},
	}
	for _, tt := range tests {
		t.Run(tt.effect, func(t *testing.T) {
			got := ResolveCapability(tt.effect)
			if got.ID != tt.wantID {
				t.Errorf("ResolveCapability(%q).ID = %q, want %q", tt.effect, got.ID, tt.wantID)
			}
		})
	}
}

func TestResolveCapabilityUserDefinedFallback(t *testing.T) {
	got := ResolveCapability("my_app.widgets.render")
	if got.ID != "my_app" || !got.UserDefined {
		t.Errorf("expected user-defined fallback, got %+v", got)
	}
}

func TestResolveCapabilityEmptyIsUnknown(t *testing.T) {
	got := ResolveCapability("   ")
	if got.ID != "unknown" || !got.UserDefined {
		t.Errorf("expected unknown user-defined fallback, got %+v", got)
	}
}

func TestResolveCapabilityExperimentalDefaults(t *testing.T) {
	for _, effect := range []string{"panic", "unsafe", "ffi", "runtime"} {
		got := ResolveCapability(effect)
		if got.DefaultStage != Experimental {
			t.Errorf("ResolveCapability(%q).DefaultStage = %s, want Experimental", effect, got.DefaultStage)
		}
	}
}
