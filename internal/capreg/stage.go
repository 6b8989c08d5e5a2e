// Package capreg implements the process-wide capability registry and
// stage guard: the sole authority on whether a capability may be used
// at a given release stage, with which declared effects, from a given
// caller. Registry state is protected by a single mutual-exclusion
// lock; bundle installation is atomic (all-or-nothing, with rollback
// to the pre-install snapshot on any failure).
package capreg

import (
	"fmt"
	"strings"
)

// Stage is a release stage in the closed, totally-ordered enum
// experimental < alpha < beta < stable.
type Stage int

const (
	Experimental Stage = iota
	Alpha
	Beta
	Stable
)

// String renders the wire form: lowercase experimental/alpha/beta/stable.
func (s Stage) String() string {
	switch s {
	case Experimental:
		return "experimental"
	case Alpha:
		return "alpha"
	case Beta:
		return "beta"
	case Stable:
		return "stable"
	default:
		return "unknown"
	}
}

// ParseStage parses the wire form of a stage, case-insensitively.
func ParseStage(s string) (Stage, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "experimental":
		return Experimental, nil
	case "alpha":
		return Alpha, nil
	case "beta":
		return Beta, nil
	case "stable":
		return Stable, nil
	default:
		return 0, fmt.Errorf("capreg: unknown stage %q", s)
	}
}

// Requirement is a stage requirement: either an exact stage or a
// minimum stage ("at least").
type Requirement struct {
	kind     requirementKind
	boundary Stage
}

type requirementKind int

const (
	reqExact requirementKind = iota
	reqAtLeast
)

// Exact requires the actual stage to equal s precisely.
func Exact(s Stage) Requirement { return Requirement{kind: reqExact, boundary: s} }

// AtLeast requires the actual stage to be s or later.
func AtLeast(s Stage) Requirement { return Requirement{kind: reqAtLeast, boundary: s} }

// Matches reports whether actual satisfies the requirement: Exact(b)
// iff actual == b; AtLeast(b) iff actual >= b.
func (r Requirement) Matches(actual Stage) bool {
	switch r.kind {
	case reqExact:
		return actual == r.boundary
	case reqAtLeast:
		return actual >= r.boundary
	default:
		return false
	}
}

// Boundary returns the stage the requirement is anchored on.
func (r Requirement) Boundary() Stage { return r.boundary }

// IsAtLeast reports whether the requirement is an AtLeast bound rather
// than an Exact one.
func (r Requirement) IsAtLeast() bool { return r.kind == reqAtLeast }

// String renders the wire form: the bare stage name for Exact, or
// "at_least <stage>" for AtLeast.
func (r Requirement) String() string {
	if r.kind == reqAtLeast {
		return "at_least " + r.boundary.String()
	}
	return r.boundary.String()
}

// ParseRequirement parses either a bare stage name (Exact) or the
// "at_least <stage>" form.
func ParseRequirement(s string) (Requirement, error) {
	trimmed := strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(strings.ToLower(trimmed), "at_least "); ok {
		stage, err := ParseStage(rest)
		if err != nil {
			return Requirement{}, err
		}
		return AtLeast(stage), nil
	}
	stage, err := ParseStage(trimmed)
	if err != nil {
		return Requirement{}, err
	}
	return Exact(stage), nil
}
