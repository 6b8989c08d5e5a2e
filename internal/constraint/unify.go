package constraint

import (
	"github.com/remlc/remlc/internal/ast"
	"github.com/remlc/remlc/internal/typesys"
)

// unify performs syntactic first-order unification of left and right,
// first mapping both sides through the solver's current substitution.
// A successful bind is applied immediately — the solver is incremental,
// not batched — so a later failure still leaves prior binds intact.
func (s *Solver) unify(span ast.Span, left, right typesys.Type) bool {
	left = typesys.Apply(s.subst, left)
	right = typesys.Apply(s.subst, right)

	switch l := left.(type) {
	case typesys.Var:
		return s.bindVariable(span, l.Variable, right)
	default:
		if r, ok := right.(typesys.Var); ok {
			return s.bindVariable(span, r.Variable, left)
		}
	}

	switch l := left.(type) {
	case typesys.Builtin:
		r, ok := right.(typesys.Builtin)
		if !ok || l.Kind != r.Kind {
			s.fail(mismatchViolation(span, left, right))
			return false
		}
		return true

	case typesys.Arrow:
		r, ok := right.(typesys.Arrow)
		if !ok || len(l.Parameters) != len(r.Parameters) {
			s.fail(mismatchViolation(span, left, right))
			return false
		}
		ok = true
		for i := range l.Parameters {
			if !s.unify(span, l.Parameters[i], r.Parameters[i]) {
				ok = false
			}
		}
		if !s.unify(span, l.Result, r.Result) {
			ok = false
		}
		return ok

	case typesys.App:
		r, ok := right.(typesys.App)
		if !ok || l.Constructor != r.Constructor || len(l.Arguments) != len(r.Arguments) {
			s.fail(mismatchViolation(span, left, right))
			return false
		}
		ok = true
		for i := range l.Arguments {
			if !s.unify(span, l.Arguments[i], r.Arguments[i]) {
				ok = false
			}
		}
		return ok

	case typesys.Slice:
		r, ok := right.(typesys.Slice)
		if !ok {
			s.fail(mismatchViolation(span, left, right))
			return false
		}
		return s.unify(span, l.Element, r.Element)

	case typesys.Ref:
		r, ok := right.(typesys.Ref)
		if !ok || l.Mutable != r.Mutable {
			s.fail(mismatchViolation(span, left, right))
			return false
		}
		return s.unify(span, l.Target, r.Target)

	default:
		s.fail(mismatchViolation(span, left, right))
		return false
	}
}

func (s *Solver) bindVariable(span ast.Span, v typesys.TypeVar, ty typesys.Type) bool {
	if same, ok := ty.(typesys.Var); ok && same.Variable.ID() == v.ID() {
		return true
	}
	if typesys.Occurs(v, ty) {
		s.fail(occursViolation(span, v, ty))
		return false
	}
	if err := s.subst.Insert(v, ty); err != nil {
		s.fail(occursViolation(span, v, ty))
		return false
	}
	return true
}
