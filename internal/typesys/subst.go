package typesys

// Substitution is an insertion-ordered mapping from type variable id to
// type term. The occurs check is enforced on every Insert: no entry may
// map a variable to a term that still contains that same variable.
// Application is capture-free and a fixed point: Apply(Apply(s, t)) ==
// Apply(s, t).
type Substitution struct {
	order   []uint64
	entries map[uint64]Type
}

// NewSubstitution returns an empty substitution.
func NewSubstitution() *Substitution {
	return &Substitution{entries: make(map[uint64]Type)}
}

// Insert binds variable v to term t. It panics only on a violated
// invariant that callers are expected to have already prevented via
// Unify's own occurs check; Insert itself reports the violation as an
// error so callers can fail gracefully instead.
func (s *Substitution) Insert(v TypeVar, t Type) error {
	if Occurs(v, t) {
		return &OccursError{Variable: v, Term: t}
	}
	if _, exists := s.entries[v.id]; !exists {
		s.order = append(s.order, v.id)
	}
	s.entries[v.id] = t
	return nil
}

// Get returns the term bound to v, if any.
func (s *Substitution) Get(v TypeVar) (Type, bool) {
	t, ok := s.entries[v.id]
	return t, ok
}

// Len reports the number of bindings.
func (s *Substitution) Len() int { return len(s.order) }

// Apply homomorphically applies the substitution to a type term. The
// result contains no variable that the substitution still maps — i.e.
// Apply is a fixed point of its own image.
func Apply(s *Substitution, t Type) Type {
	if s == nil || s.Len() == 0 {
		return t
	}
	switch ty := t.(type) {
	case Var:
		if repl, ok := s.Get(ty.Variable); ok {
			// Follow chains (v -> w -> term) until no further binding
			// exists, so repeated Apply calls are idempotent.
			seen := map[uint64]struct{}{ty.Variable.id: {}}
			cur := repl
			for {
				next, ok := cur.(Var)
				if !ok {
					break
				}
				if _, visited := seen[next.Variable.id]; visited {
					break
				}
				bound, ok := s.Get(next.Variable)
				if !ok {
					break
				}
				seen[next.Variable.id] = struct{}{}
				cur = bound
			}
			return applyRecursive(s, cur)
		}
		return ty
	default:
		return applyRecursive(s, t)
	}
}

func applyRecursive(s *Substitution, t Type) Type {
	switch ty := t.(type) {
	case Var:
		if repl, ok := s.Get(ty.Variable); ok {
			return Apply(s, repl)
		}
		return ty
	case Builtin:
		return ty
	case Arrow:
		params := make([]Type, len(ty.Parameters))
		for i, p := range ty.Parameters {
			params[i] = Apply(s, p)
		}
		return Arrow{Parameters: params, Result: Apply(s, ty.Result)}
	case App:
		args := make([]Type, len(ty.Arguments))
		for i, a := range ty.Arguments {
			args[i] = Apply(s, a)
		}
		return App{Constructor: ty.Constructor, Arguments: args}
	case Slice:
		return Slice{Element: Apply(s, ty.Element)}
	case Ref:
		return Ref{Target: Apply(s, ty.Target), Mutable: ty.Mutable}
	default:
		return t
	}
}

// Compose merges s2 into s1, left-biased: keys present in both retain
// the value from s2 (s2 "wins" because it is the more recent
// substitution applied on top of s1), matching spec §3's "merging S2
// into S1 overwrites keys present in both".
func Compose(s1, s2 *Substitution) *Substitution {
	result := NewSubstitution()
	if s1 != nil {
		for _, id := range s1.order {
			t := s1.entries[id]
			_ = result.Insert(TypeVar{id: id}, Apply(s2, t))
		}
	}
	if s2 != nil {
		for _, id := range s2.order {
			if _, exists := result.entries[id]; !exists {
				result.order = append(result.order, id)
			}
			result.entries[id] = s2.entries[id]
		}
	}
	return result
}

// OccursError reports that a substitution insert would violate the
// occurs-check invariant.
type OccursError struct {
	Variable TypeVar
	Term     Type
}

func (e *OccursError) Error() string {
	return "occurs check failed: " + e.Variable.String() + " occurs in " + e.Term.Label()
}
