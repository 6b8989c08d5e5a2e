package capreg

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// PluginManifest describes a single plugin's exposed capabilities, as
// decoded from a bundle's manifest YAML.
type PluginManifest struct {
	Name                string   `yaml:"name"`
	Version             string   `yaml:"version"`
	ExposedCapabilities []string `yaml:"exposed_capabilities"`
	Stage               string   `yaml:"stage"`
	EffectScope         []string `yaml:"effect_scope"`
}

// Bundle is a plugin bundle descriptor: an id, version, the list of
// plugin manifests it carries, and optional content hashes used for
// bridge-probe provenance.
type Bundle struct {
	BundleID      string           `yaml:"bundle_id"`
	BundleVersion string           `yaml:"bundle_version"`
	BundleHash    string           `yaml:"bundle_hash"`
	Plugins       []PluginManifest `yaml:"plugins"`
	ModulePaths   map[string]string `yaml:"module_paths"`
}

// ParseBundle decodes a bundle descriptor from YAML, the on-disk
// manifest format plugin authors ship.
func ParseBundle(data []byte) (Bundle, error) {
	var b Bundle
	if err := yaml.Unmarshal(data, &b); err != nil {
		return Bundle{}, fmt.Errorf("capreg: parse bundle manifest: %w", err)
	}
	return b, nil
}

// InstallBundle installs every capability exposed by bundle's plugins,
// atomically: either the whole bundle's capability set is registered,
// or the registry is left byte-identical to its pre-install state.
// Candidate descriptors are built off-lock; only the swap happens
// under the lock, so a failing build never holds the lock longer than
// necessary and a failing verification step rolls back cleanly.
func (r *Registry) InstallBundle(bundle Bundle) error {
	candidates := make([]Descriptor, 0, len(bundle.Plugins))

	for _, plugin := range bundle.Plugins {
		stage, err := ParseStage(plugin.Stage)
		if err != nil {
			return &BundleInstallError{BundleID: bundle.BundleID, Reason: err.Error()}
		}
		for _, capID := range plugin.ExposedCapabilities {
			candidates = append(candidates, Descriptor{
				ID:          capID,
				Stage:       stage,
				EffectScope: append([]string(nil), plugin.EffectScope...),
				Provider: Provider{
					Kind:    ProviderPlugin,
					Name:    plugin.Name,
					Version: plugin.Version,
				},
				BundleID: bundle.BundleID,
			})
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range candidates {
		if _, exists := r.descriptors[c.ID]; exists {
			return &BundleInstallError{
				BundleID: bundle.BundleID,
				Reason:   fmt.Sprintf("capability %q already registered", c.ID),
			}
		}
	}

	// All entries are free to take: commit the whole set. Nothing
	// partially registered is ever visible to another goroutine because
	// the check and the commit happen under the same critical section.
	for _, c := range candidates {
		r.insertLocked(c)
	}
	return nil
}

// UnloadBundle removes every capability registered under bundleID,
// along with their bridge-probe records. Returns UnknownBundleError if
// the bundle contributed no currently-registered capabilities.
func (r *Registry) UnloadBundle(bundleID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var toRemove []string
	for _, id := range r.order {
		if r.descriptors[id].BundleID == bundleID {
			toRemove = append(toRemove, id)
		}
	}
	if len(toRemove) == 0 {
		return &UnknownBundleError{BundleID: bundleID}
	}
	for _, id := range toRemove {
		r.unregisterLocked(id)
	}
	return nil
}
