// Package typesys implements the algebraic term layer for the type
// checker: type variables, built-ins, arrows, applications, slices and
// references, plus the machinery (schemes, substitutions, fresh-variable
// generation) that sits underneath unification. No capability or effect
// logic lives here — see internal/constraint and internal/capreg.
package typesys

import (
	"fmt"
	"strings"
)

// TypeVar is a fresh type variable identifier, unique within the
// TypeVarGen that produced it.
type TypeVar struct {
	id uint64
}

// ID returns the variable's numeric identifier.
func (v TypeVar) ID() uint64 { return v.id }

func (v TypeVar) String() string { return fmt.Sprintf("t%d", v.id) }

// BuiltinKind enumerates the closed set of primitive types.
type BuiltinKind int

const (
	Int BuiltinKind = iota
	UInt
	Float
	Bool
	Char
	Str
	Bytes
	Unit
	Unknown
)

func (b BuiltinKind) String() string {
	switch b {
	case Int:
		return "Int"
	case UInt:
		return "UInt"
	case Float:
		return "Float"
	case Bool:
		return "Bool"
	case Char:
		return "Char"
	case Str:
		return "Str"
	case Bytes:
		return "Bytes"
	case Unit:
		return "Unit"
	default:
		return "Unknown"
	}
}

// Type is the sealed interface implemented by every type-term variant:
// Var, Builtin, Arrow, App, Slice, Ref.
type Type interface {
	// Label renders the type deterministically for diagnostics.
	Label() string
	isType()
}

// Var is a type-variable term.
type Var struct {
	Variable TypeVar
}

func (Var) isType()          {}
func (t Var) Label() string  { return t.Variable.String() }

// Builtin is a primitive type term.
type Builtin struct {
	Kind BuiltinKind
}

func (Builtin) isType()         {}
func (t Builtin) Label() string { return t.Kind.String() }

// Arrow is a function type term: ordered parameters and a result.
type Arrow struct {
	Parameters []Type
	Result     Type
}

func (Arrow) isType() {}

func (t Arrow) Label() string {
	parts := make([]string, len(t.Parameters))
	for i, p := range t.Parameters {
		parts[i] = p.Label()
	}
	return fmt.Sprintf("(%s) -> %s", strings.Join(parts, ", "), t.Result.Label())
}

// App is a type-constructor application: Name<arg, arg, ...>.
type App struct {
	Constructor string
	Arguments   []Type
}

func (App) isType() {}

func (t App) Label() string {
	if len(t.Arguments) == 0 {
		return t.Constructor
	}
	parts := make([]string, len(t.Arguments))
	for i, a := range t.Arguments {
		parts[i] = a.Label()
	}
	return fmt.Sprintf("%s<%s>", t.Constructor, strings.Join(parts, ", "))
}

// Slice is a homogeneous sequence type term.
type Slice struct {
	Element Type
}

func (Slice) isType()         {}
func (t Slice) Label() string { return fmt.Sprintf("[%s]", t.Element.Label()) }

// Ref is a reference type term, optionally mutable.
type Ref struct {
	Target  Type
	Mutable bool
}

func (Ref) isType() {}

func (t Ref) Label() string {
	if t.Mutable {
		return fmt.Sprintf("&mut %s", t.Target.Label())
	}
	return fmt.Sprintf("&%s", t.Target.Label())
}

// FreeTypeVars collects the set of variable ids appearing unbound in t.
func FreeTypeVars(t Type) map[uint64]struct{} {
	out := make(map[uint64]struct{})
	collectFreeTypeVars(t, out)
	return out
}

func collectFreeTypeVars(t Type, out map[uint64]struct{}) {
	switch v := t.(type) {
	case Var:
		out[v.Variable.id] = struct{}{}
	case Arrow:
		for _, p := range v.Parameters {
			collectFreeTypeVars(p, out)
		}
		collectFreeTypeVars(v.Result, out)
	case App:
		for _, a := range v.Arguments {
			collectFreeTypeVars(a, out)
		}
	case Slice:
		collectFreeTypeVars(v.Element, out)
	case Ref:
		collectFreeTypeVars(v.Target, out)
	}
}

// Occurs reports whether variable v appears anywhere in term t.
func Occurs(v TypeVar, t Type) bool {
	switch ty := t.(type) {
	case Var:
		return ty.Variable.id == v.id
	case Arrow:
		for _, p := range ty.Parameters {
			if Occurs(v, p) {
				return true
			}
		}
		return Occurs(v, ty.Result)
	case App:
		for _, a := range ty.Arguments {
			if Occurs(v, a) {
				return true
			}
		}
		return false
	case Slice:
		return Occurs(v, ty.Element)
	case Ref:
		return Occurs(v, ty.Target)
	default:
		return false
	}
}

// TypeVarGen produces monotonically increasing fresh type-variable ids.
// It is process-local to a single checking run — never a package global —
// so that concurrent checking runs never collide.
type TypeVarGen struct {
	counter uint64
}

// Next returns a fresh TypeVar.
func (g *TypeVarGen) Next() TypeVar {
	g.counter++
	return TypeVar{id: g.counter}
}

// FreshType returns a fresh Var term.
func (g *TypeVarGen) FreshType() Type {
	return Var{Variable: g.Next()}
}

// Scheme represents a polymorphic type scheme ∀αβ. C ⇒ τ.
type Scheme struct {
	Quantifiers []TypeVar
	Constraints []SchemeConstraint
	Body        Type
}

// SchemeConstraint is a lightweight constraint attached to a scheme body
// (class/impl name plus the type it applies to). Full constraint solving
// lives in package constraint; this is only the shape stored on a scheme.
type SchemeConstraint struct {
	Class string
	Type  Type
}

// Instantiate creates a fresh instance of the scheme, replacing each
// quantified variable with a newly generated one.
func (s *Scheme) Instantiate(gen *TypeVarGen) Type {
	sub := make(map[uint64]Type, len(s.Quantifiers))
	for _, q := range s.Quantifiers {
		sub[q.id] = gen.FreshType()
	}
	return substituteVars(s.Body, sub)
}

func substituteVars(t Type, sub map[uint64]Type) Type {
	switch ty := t.(type) {
	case Var:
		if repl, ok := sub[ty.Variable.id]; ok {
			return repl
		}
		return ty
	case Arrow:
		params := make([]Type, len(ty.Parameters))
		for i, p := range ty.Parameters {
			params[i] = substituteVars(p, sub)
		}
		return Arrow{Parameters: params, Result: substituteVars(ty.Result, sub)}
	case App:
		args := make([]Type, len(ty.Arguments))
		for i, a := range ty.Arguments {
			args[i] = substituteVars(a, sub)
		}
		return App{Constructor: ty.Constructor, Arguments: args}
	case Slice:
		return Slice{Element: substituteVars(ty.Element, sub)}
	case Ref:
		return Ref{Target: substituteVars(ty.Target, sub), Mutable: ty.Mutable}
	default:
		return t
	}
}

// Common built-in type terms, for convenience at call sites.
var (
	TInt     = Builtin{Kind: Int}
	TUInt    = Builtin{Kind: UInt}
	TFloat   = Builtin{Kind: Float}
	TBool    = Builtin{Kind: Bool}
	TChar    = Builtin{Kind: Char}
	TStr     = Builtin{Kind: Str}
	TBytes   = Builtin{Kind: Bytes}
	TUnit    = Builtin{Kind: Unit}
	TUnknown = Builtin{Kind: Unknown}
)
