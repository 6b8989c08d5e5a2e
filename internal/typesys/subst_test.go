package typesys

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubstitutionInsertRejectsOccursViolation(t *testing.T) {
	gen := &TypeVarGen{}
	v := gen.Next()
	sub := NewSubstitution()

	err := sub.Insert(v, Slice{Element: Var{Variable: v}})
	require.Error(t, err)

	var occursErr *OccursError
	assert.ErrorAs(t, err, &occursErr)
	assert.Equal(t, v, occursErr.Variable)
}

func TestSubstitutionInsertAllowsNonSelfReferential(t *testing.T) {
	gen := &TypeVarGen{}
	v := gen.Next()
	sub := NewSubstitution()

	require.NoError(t, sub.Insert(v, TInt))
	bound, ok := sub.Get(v)
	require.True(t, ok)
	assert.True(t, Equal(TInt, bound))
}

func TestApplyResolvesChains(t *testing.T) {
	gen := &TypeVarGen{}
	a := gen.Next()
	b := gen.Next()
	c := gen.Next()

	sub := NewSubstitution()
	require.NoError(t, sub.Insert(a, Var{Variable: b}))
	require.NoError(t, sub.Insert(b, Var{Variable: c}))
	require.NoError(t, sub.Insert(c, TBool))

	got := Apply(sub, Var{Variable: a})
	assert.True(t, Equal(TBool, got), "expected chain a->b->c->Bool to resolve, got %s", got.Label())
}

func TestApplyIsFixedPoint(t *testing.T) {
	gen := &TypeVarGen{}
	a := gen.Next()
	b := gen.Next()

	sub := NewSubstitution()
	require.NoError(t, sub.Insert(a, Arrow{Parameters: []Type{Var{Variable: b}}, Result: TInt}))
	require.NoError(t, sub.Insert(b, TStr))

	once := Apply(sub, Var{Variable: a})
	twice := Apply(sub, once)

	assert.True(t, Equal(once, twice), "Apply must be idempotent once all variables are resolved: %s vs %s", once.Label(), twice.Label())
}

func TestApplyLeavesUnboundVariablesAlone(t *testing.T) {
	gen := &TypeVarGen{}
	bound := gen.Next()
	free := gen.Next()

	sub := NewSubstitution()
	require.NoError(t, sub.Insert(bound, TInt))

	got := Apply(sub, Arrow{Parameters: []Type{Var{Variable: free}}, Result: Var{Variable: bound}})
	arrow := got.(Arrow)
	assert.True(t, Equal(Var{Variable: free}, arrow.Parameters[0]))
	assert.True(t, Equal(TInt, arrow.Result))
}

func TestApplyNilOrEmptySubstitutionIsIdentity(t *testing.T) {
	typ := Arrow{Parameters: []Type{TBool}, Result: TStr}

	assert.True(t, Equal(typ, Apply(nil, typ)))
	assert.True(t, Equal(typ, Apply(NewSubstitution(), typ)))
}

func TestComposeIsLeftBiasedTowardSecondArgument(t *testing.T) {
	gen := &TypeVarGen{}
	v := gen.Next()

	s1 := NewSubstitution()
	require.NoError(t, s1.Insert(v, TInt))

	s2 := NewSubstitution()
	require.NoError(t, s2.Insert(v, TBool))

	composed := Compose(s1, s2)
	bound, ok := composed.Get(v)
	require.True(t, ok)
	assert.True(t, Equal(TBool, bound), "expected s2's binding to win on conflict, got %s", bound.Label())
}

func TestComposeAppliesSecondSubstitutionThroughFirst(t *testing.T) {
	gen := &TypeVarGen{}
	a := gen.Next()
	b := gen.Next()

	s1 := NewSubstitution()
	require.NoError(t, s1.Insert(a, Var{Variable: b}))

	s2 := NewSubstitution()
	require.NoError(t, s2.Insert(b, TFloat))

	composed := Compose(s1, s2)

	boundA, ok := composed.Get(a)
	require.True(t, ok)
	assert.True(t, Equal(TFloat, boundA), "expected composed[a] to resolve through s2, got %s", boundA.Label())

	boundB, ok := composed.Get(b)
	require.True(t, ok)
	assert.True(t, Equal(TFloat, boundB))
}

func TestComposeWithNilArguments(t *testing.T) {
	gen := &TypeVarGen{}
	v := gen.Next()

	s := NewSubstitution()
	require.NoError(t, s.Insert(v, TInt))

	assert.Equal(t, 1, Compose(s, nil).Len())
	assert.Equal(t, 1, Compose(nil, s).Len())
	assert.Equal(t, 0, Compose(nil, nil).Len())
}

func TestSubstitutionPreservesInsertionOrder(t *testing.T) {
	gen := &TypeVarGen{}
	v1 := gen.Next()
	v2 := gen.Next()
	v3 := gen.Next()

	sub := NewSubstitution()
	require.NoError(t, sub.Insert(v2, TInt))
	require.NoError(t, sub.Insert(v3, TBool))
	require.NoError(t, sub.Insert(v1, TStr))

	assert.Equal(t, []uint64{v2.id, v3.id, v1.id}, sub.order)
}
