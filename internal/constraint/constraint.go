// Package constraint implements the constraint solver: syntactic
// first-order unification over typesys terms, type-alias expansion with
// cycle and depth guards, sum-type constructor arity checking, and
// condition-must-be-bool checking. HasCapability and ImplBound
// constraints are never solved here — they are carried as residual
// "side conditions" for the capability registry to decide.
package constraint

import "github.com/remlc/remlc/internal/typesys"

// Kind distinguishes the three constraint shapes a checking run may emit.
type Kind int

const (
	// Equal requires two type terms to unify.
	Equal Kind = iota
	// HasCapability requires that ty be usable under the named
	// capability, given the attached effect/stage context. Solved by the
	// capability registry, not here.
	HasCapability
	// ImplBound requires that ty implement the named typeclass/interface.
	// Solved by the capability registry, not here.
	ImplBound
)

// Constraint is a single unit of work handed to the solver.
type Constraint struct {
	Kind Kind

	// Equal
	Left, Right typesys.Type

	// HasCapability / ImplBound
	Type            typesys.Type
	Capability      string // HasCapability
	Implementation  string // ImplBound
	RequiredEffects []string
	StageRequired   string
}

// NewEqual builds an Equal constraint.
func NewEqual(left, right typesys.Type) Constraint {
	return Constraint{Kind: Equal, Left: left, Right: right}
}

// NewHasCapability builds a HasCapability constraint.
func NewHasCapability(ty typesys.Type, capability string, requiredEffects []string, stageRequired string) Constraint {
	return Constraint{
		Kind:            HasCapability,
		Type:            ty,
		Capability:      capability,
		RequiredEffects: requiredEffects,
		StageRequired:   stageRequired,
	}
}

// NewImplBound builds an ImplBound constraint.
func NewImplBound(ty typesys.Type, implementation string) Constraint {
	return Constraint{Kind: ImplBound, Type: ty, Implementation: implementation}
}
