package capreg

import (
	"fmt"
	"time"
)

// ProviderKind distinguishes who registered a capability.
type ProviderKind int

const (
	ProviderCore ProviderKind = iota
	ProviderPlugin
	ProviderExternalBridge
	ProviderRuntimeComponent
)

// Provider identifies the origin of a registered capability.
type Provider struct {
	Kind    ProviderKind
	Name    string // Plugin/ExternalBridge package or RuntimeComponent name
	Version string // optional, Plugin/ExternalBridge only
}

func (p Provider) String() string {
	switch p.Kind {
	case ProviderCore:
		return "core"
	case ProviderPlugin:
		if p.Version != "" {
			return fmt.Sprintf("plugin/%s@%s", p.Name, p.Version)
		}
		return fmt.Sprintf("plugin/%s", p.Name)
	case ProviderExternalBridge:
		if p.Version != "" {
			return fmt.Sprintf("bridge/%s@%s", p.Name, p.Version)
		}
		return fmt.Sprintf("bridge/%s", p.Name)
	case ProviderRuntimeComponent:
		return fmt.Sprintf("runtime/%s", p.Name)
	default:
		return "unknown"
	}
}

// Descriptor is a registered capability's public metadata.
type Descriptor struct {
	ID             string
	Stage          Stage
	EffectScope    []string
	Provider       Provider
	ManifestPath   string
	LastVerifiedAt time.Time

	// BundleID identifies the bundle this capability was installed
	// under, empty for core capabilities. Used by UnloadBundle to find
	// everything a bundle contributed.
	BundleID string
}

// NewDescriptor builds a minimal descriptor with no manifest path or
// verification timestamp set.
func NewDescriptor(id string, stage Stage, effectScope []string, provider Provider) Descriptor {
	return Descriptor{
		ID:          id,
		Stage:       stage,
		EffectScope: append([]string(nil), effectScope...),
		Provider:    provider,
	}
}

// clone returns a deep-enough copy for snapshotting: the slice is
// copied so a rollback can't be corrupted by later mutation of the
// original's backing array.
func (d Descriptor) clone() Descriptor {
	d.EffectScope = append([]string(nil), d.EffectScope...)
	return d
}
