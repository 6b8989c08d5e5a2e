package constraint

import (
	"github.com/remlc/remlc/internal/ast"
	"github.com/remlc/remlc/internal/typesys"
)

// maxAliasExpansionDepth is the default expansion depth guard: the
// thirty-second expansion of an alias chain succeeds, the thirty-third
// fails with TypeAliasExpansionLimit.
const maxAliasExpansionDepth = 32

// AliasDef describes a single `type alias Name<params> = body` binding,
// as registered with the solver before constraint generation begins.
type AliasDef struct {
	Name   string
	Params []typesys.TypeVar
	Body   typesys.Type
}

// ConstructorDef describes the declared payload shape of a sum-type
// constructor, consulted when that constructor appears in value or
// pattern position.
type ConstructorDef struct {
	Name  string
	Arity int
}

// Solver is the incremental constraint solver for a single checking
// run. It is never shared across runs: construct a fresh Solver (and a
// fresh typesys.TypeVarGen) per invocation.
type Solver struct {
	subst      *typesys.Substitution
	violations []Violation
	residual   []Constraint

	aliases      map[string]AliasDef
	constructors map[string]ConstructorDef
}

// NewSolver constructs an empty solver. aliases and constructors may be
// nil if the run has none registered.
func NewSolver(aliases map[string]AliasDef, constructors map[string]ConstructorDef) *Solver {
	if aliases == nil {
		aliases = map[string]AliasDef{}
	}
	if constructors == nil {
		constructors = map[string]ConstructorDef{}
	}
	return &Solver{
		subst:        typesys.NewSubstitution(),
		aliases:      aliases,
		constructors: constructors,
	}
}

func (s *Solver) fail(v Violation) { s.violations = append(s.violations, v) }

// Substitution returns the solver's current (possibly partial)
// substitution. Valid to call even after a failed Solve — a failure
// never discards prior binds.
func (s *Solver) Substitution() *typesys.Substitution { return s.subst }

// Violations returns the violations collected so far, in emission order.
func (s *Solver) Violations() []Violation { return append([]Violation(nil), s.violations...) }

// Solve processes a constraint list: Equal constraints are unified
// in-place; HasCapability/ImplBound constraints are routed verbatim
// into the returned residual set for the capability registry to
// decide. Processing never stops at the first Equal failure — all
// constraints are attempted so the final report collects every
// violation in one pass, mirroring the "collect, don't abort" checker
// invariant.
func (s *Solver) Solve(span ast.Span, constraints []Constraint) (residual []Constraint) {
	for _, c := range constraints {
		switch c.Kind {
		case Equal:
			s.unify(span, c.Left, c.Right)
		case HasCapability, ImplBound:
			s.residual = append(s.residual, c)
		}
	}
	return append([]Constraint(nil), s.residual...)
}

// UnifyCondition checks that a branch condition's type unifies with
// Bool, recording ConditionLiteralBool on mismatch instead of a bare
// Mismatch violation (the caller-facing error names the specific rule
// that was broken).
func (s *Solver) UnifyCondition(span ast.Span, conditionType typesys.Type) bool {
	resolved := typesys.Apply(s.subst, conditionType)
	if v, ok := resolved.(typesys.Var); ok {
		return s.bindVariable(span, v.Variable, typesys.TBool)
	}
	if b, ok := resolved.(typesys.Builtin); ok && b.Kind == typesys.Bool {
		return true
	}
	s.fail(conditionViolation(span, resolved))
	return false
}

// CheckConstructorArity validates a sum-type constructor's call-site
// argument count against its declared payload arity.
func (s *Solver) CheckConstructorArity(span ast.Span, ctor string, argCount int) bool {
	def, ok := s.constructors[ctor]
	if !ok {
		// Unknown constructors are not this solver's concern; name
		// resolution happens upstream.
		return true
	}
	if def.Arity != argCount {
		s.fail(arityViolation(span, ctor, def.Arity, argCount))
		return false
	}
	return true
}

// ExpandAlias resolves name to its underlying type, substituting args
// for the alias's declared parameters capture-free, repeating while the
// result is itself an alias application. Re-entering an alias already
// on the expansion stack fails with TypeAliasCycle; exceeding
// maxAliasExpansionDepth fails with TypeAliasExpansionLimit.
func (s *Solver) ExpandAlias(span ast.Span, name string, args []typesys.Type) (typesys.Type, bool) {
	visited := map[string]struct{}{}
	return s.expandAlias(span, name, args, visited, 0)
}

func (s *Solver) expandAlias(span ast.Span, name string, args []typesys.Type, visited map[string]struct{}, depth int) (typesys.Type, bool) {
	if _, seen := visited[name]; seen {
		s.fail(aliasCycleViolation(span, name))
		return nil, false
	}
	if depth > maxAliasExpansionDepth {
		s.fail(aliasLimitViolation(span, name, maxAliasExpansionDepth))
		return nil, false
	}

	def, ok := s.aliases[name]
	if !ok {
		// Not an alias at all: nothing to expand.
		return typesys.App{Constructor: name, Arguments: args}, true
	}

	visited[name] = struct{}{}

	sub := make(map[uint64]typesys.Type, len(def.Params))
	for i, p := range def.Params {
		if i < len(args) {
			sub[p.ID()] = args[i]
		}
	}
	body := substituteAliasParams(def.Body, sub)

	nextApp, ok := body.(typesys.App)
	if !ok {
		return body, true
	}
	if _, isAlias := s.aliases[nextApp.Constructor]; !isAlias {
		return body, true
	}
	return s.expandAlias(span, nextApp.Constructor, nextApp.Arguments, visited, depth+1)
}

// substituteAliasParams performs a capture-free substitution of alias
// parameters in the alias body. It mirrors typesys's internal variable
// substitution but is kept local to this package since alias
// parameters are a constraint-layer concept, not part of the bare term
// algebra.
func substituteAliasParams(t typesys.Type, sub map[uint64]typesys.Type) typesys.Type {
	switch ty := t.(type) {
	case typesys.Var:
		if repl, ok := sub[ty.Variable.ID()]; ok {
			return repl
		}
		return ty
	case typesys.Arrow:
		params := make([]typesys.Type, len(ty.Parameters))
		for i, p := range ty.Parameters {
			params[i] = substituteAliasParams(p, sub)
		}
		return typesys.Arrow{Parameters: params, Result: substituteAliasParams(ty.Result, sub)}
	case typesys.App:
		args := make([]typesys.Type, len(ty.Arguments))
		for i, a := range ty.Arguments {
			args[i] = substituteAliasParams(a, sub)
		}
		return typesys.App{Constructor: ty.Constructor, Arguments: args}
	case typesys.Slice:
		return typesys.Slice{Element: substituteAliasParams(ty.Element, sub)}
	case typesys.Ref:
		return typesys.Ref{Target: substituteAliasParams(ty.Target, sub), Mutable: ty.Mutable}
	default:
		return t
	}
}
