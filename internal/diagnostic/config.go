package diagnostic

// ConfigDetail carries the fields the configuration extension helper
// dual-writes: manifest path, key path, source, profile, format, and
// an optional compatibility/diff payload. Zero-value fields are
// omitted.
type ConfigDetail struct {
	ManifestPath  string
	KeyPath       string
	Source        string
	Profile       string
	Format        string
	Compatibility any
	Diff          any
}

// WithConfig attaches manifest path, key path, profile, and
// compatibility metadata to the diagnostic's `config` extension and
// audit metadata, in one operation.
func (b *Builder) WithConfig(detail ConfigDetail) *Builder {
	fields := map[string]any{}
	if detail.ManifestPath != "" {
		fields["path"] = detail.ManifestPath
	}
	if detail.KeyPath != "" {
		fields["key_path"] = detail.KeyPath
	}
	if detail.Source != "" {
		fields["source"] = detail.Source
	}
	if detail.Profile != "" {
		fields["profile"] = detail.Profile
	}
	if detail.Format != "" {
		fields["format"] = detail.Format
	}
	if detail.Compatibility != nil {
		fields["compatibility"] = detail.Compatibility
	}
	if detail.Diff != nil {
		fields["diff"] = detail.Diff
	}
	return b.mergeExtension("config", fields)
}
