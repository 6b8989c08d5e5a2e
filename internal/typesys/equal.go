package typesys

// Equal performs structural equality, used by tests (e.g. to verify
// unification soundness: Apply(s, t1) Equal Apply(s, t2)) rather than by
// the solver itself, which only ever compares tags structurally inline.
func Equal(a, b Type) bool {
	switch av := a.(type) {
	case Var:
		bv, ok := b.(Var)
		return ok && av.Variable.id == bv.Variable.id
	case Builtin:
		bv, ok := b.(Builtin)
		return ok && av.Kind == bv.Kind
	case Arrow:
		bv, ok := b.(Arrow)
		if !ok || len(av.Parameters) != len(bv.Parameters) {
			return false
		}
		for i := range av.Parameters {
			if !Equal(av.Parameters[i], bv.Parameters[i]) {
				return false
			}
		}
		return Equal(av.Result, bv.Result)
	case App:
		bv, ok := b.(App)
		if !ok || av.Constructor != bv.Constructor || len(av.Arguments) != len(bv.Arguments) {
			return false
		}
		for i := range av.Arguments {
			if !Equal(av.Arguments[i], bv.Arguments[i]) {
				return false
			}
		}
		return true
	case Slice:
		bv, ok := b.(Slice)
		return ok && Equal(av.Element, bv.Element)
	case Ref:
		bv, ok := b.(Ref)
		return ok && av.Mutable == bv.Mutable && Equal(av.Target, bv.Target)
	default:
		return false
	}
}
