package constraint

import (
	"testing"

	"github.com/remlc/remlc/internal/ast"
	"github.com/remlc/remlc/internal/typesys"
)

func freshVar(gen *typesys.TypeVarGen) typesys.Type {
	return gen.FreshType()
}

func TestUnifySoundness(t *testing.T) {
	gen := &typesys.TypeVarGen{}
	v1 := freshVar(gen)
	v2 := freshVar(gen)

	s := NewSolver(nil, nil)
	s.Solve(ast.Span{}, []Constraint{NewEqual(v1, v2)})

	if len(s.Violations()) != 0 {
		t.Fatalf("expected no violations, got %v", s.Violations())
	}

	got1 := typesys.Apply(s.Substitution(), v1)
	got2 := typesys.Apply(s.Substitution(), v2)
	if !typesys.Equal(got1, got2) {
		t.Errorf("soundness violated: S(v1)=%s, S(v2)=%s", got1.Label(), got2.Label())
	}
}

func TestUnifyArrowArityMismatchLeavesSubstitutionUntouched(t *testing.T) {
	left := typesys.Arrow{Parameters: []typesys.Type{typesys.TInt}, Result: typesys.TBool}
	right := typesys.Arrow{Parameters: []typesys.Type{typesys.TInt, typesys.TInt}, Result: typesys.TBool}

	s := NewSolver(nil, nil)
	s.Solve(ast.Span{}, []Constraint{NewEqual(left, right)})

	if len(s.Violations()) != 1 || s.Violations()[0].Kind != MismatchViolation {
		t.Fatalf("expected single Mismatch violation, got %v", s.Violations())
	}
	if s.Substitution().Len() != 0 {
		t.Errorf("expected substitution untouched on arity mismatch, got %d entries", s.Substitution().Len())
	}
}

func TestUnifyBuiltinMismatch(t *testing.T) {
	s := NewSolver(nil, nil)
	s.Solve(ast.Span{}, []Constraint{NewEqual(typesys.TInt, typesys.TBool)})

	if len(s.Violations()) != 1 || s.Violations()[0].Kind != MismatchViolation {
		t.Fatalf("expected Mismatch, got %v", s.Violations())
	}
}

func TestUnifyOccursCheck(t *testing.T) {
	gen := &typesys.TypeVarGen{}
	v := gen.Next()
	self := typesys.Slice{Element: typesys.Var{Variable: v}}

	s := NewSolver(nil, nil)
	s.Solve(ast.Span{}, []Constraint{NewEqual(typesys.Var{Variable: v}, self)})

	if len(s.Violations()) != 1 || s.Violations()[0].Kind != OccursViolation {
		t.Fatalf("expected Occurs violation, got %v", s.Violations())
	}
}

func TestUnifyApplicationArityAndConstructor(t *testing.T) {
	tests := []struct {
		name    string
		left    typesys.Type
		right   typesys.Type
		wantErr bool
	}{
		{
			name:  "matching",
			left:  typesys.App{Constructor: "Pair", Arguments: []typesys.Type{typesys.TInt, typesys.TBool}},
			right: typesys.App{Constructor: "Pair", Arguments: []typesys.Type{typesys.TInt, typesys.TBool}},
		},
		{
			name:    "different constructor",
			left:    typesys.App{Constructor: "Pair", Arguments: []typesys.Type{typesys.TInt}},
			right:   typesys.App{Constructor: "Option", Arguments: []typesys.Type{typesys.TInt}},
			wantErr: true,
		},
		{
			name:    "different arity",
			left:    typesys.App{Constructor: "Pair", Arguments: []typesys.Type{typesys.TInt, typesys.TBool}},
			right:   typesys.App{Constructor: "Pair", Arguments: []typesys.Type{typesys.TInt}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSolver(nil, nil)
			s.Solve(ast.Span{}, []Constraint{NewEqual(tt.left, tt.right)})
			gotErr := len(s.Violations()) != 0
			if gotErr != tt.wantErr {
				t.Errorf("wantErr=%v gotViolations=%v", tt.wantErr, s.Violations())
			}
		})
	}
}

func TestResidualConstraintsRoutedVerbatim(t *testing.T) {
	gen := &typesys.TypeVarGen{}
	ty := freshVar(gen)

	s := NewSolver(nil, nil)
	hc := NewHasCapability(ty, "io.fs.read", []string{"io", "fs.read"}, "stable")
	ib := NewImplBound(ty, "Show")

	residual := s.Solve(ast.Span{}, []Constraint{hc, ib})
	if len(residual) != 2 {
		t.Fatalf("expected both constraints routed to residual, got %d", len(residual))
	}
	if residual[0].Capability != "io.fs.read" || residual[1].Implementation != "Show" {
		t.Errorf("residual constraints not preserved verbatim: %+v", residual)
	}
	if len(s.Violations()) != 0 {
		t.Errorf("HasCapability/ImplBound must never be solved locally, got violations %v", s.Violations())
	}
}

func TestConditionMustBeBool(t *testing.T) {
	s := NewSolver(nil, nil)
	if !s.UnifyCondition(ast.Span{}, typesys.TBool) {
		t.Error("expected Bool condition to pass")
	}

	s2 := NewSolver(nil, nil)
	if s2.UnifyCondition(ast.Span{}, typesys.TInt) {
		t.Error("expected Int condition to fail")
	}
	violations := s2.Violations()
	if len(violations) != 1 || violations[0].Kind != ConditionLiteralBool {
		t.Fatalf("expected ConditionLiteralBool, got %v", violations)
	}
}

func TestConditionUnboundVariableBindsToBool(t *testing.T) {
	gen := &typesys.TypeVarGen{}
	v := gen.FreshType()

	s := NewSolver(nil, nil)
	if !s.UnifyCondition(ast.Span{}, v) {
		t.Fatal("expected a fresh variable to unify with Bool")
	}
	resolved := typesys.Apply(s.Substitution(), v)
	if !typesys.Equal(typesys.TBool, resolved) {
		t.Errorf("expected condition variable bound to Bool, got %s", resolved.Label())
	}
}

func TestConstructorArityMismatch(t *testing.T) {
	constructors := map[string]ConstructorDef{
		"Bar": {Name: "Bar", Arity: 2},
		"Baz": {Name: "Baz", Arity: 0},
	}

	s := NewSolver(nil, constructors)
	if s.CheckConstructorArity(ast.Span{}, "Bar", 1) {
		t.Fatal("expected arity mismatch to fail")
	}
	violations := s.Violations()
	if len(violations) != 1 || violations[0].Kind != ConstructorArityMismatch {
		t.Fatalf("expected ConstructorArityMismatch, got %v", violations)
	}

	s2 := NewSolver(nil, constructors)
	if !s2.CheckConstructorArity(ast.Span{}, "Baz", 0) {
		t.Error("expected matching arity to pass")
	}
}

func TestAliasSelfReferenceCyclesAtDepthOne(t *testing.T) {
	aliases := map[string]AliasDef{
		"A": {Name: "A", Body: typesys.App{Constructor: "A"}},
	}
	s := NewSolver(aliases, nil)
	_, ok := s.ExpandAlias(ast.Span{}, "A", nil)
	if ok {
		t.Fatal("expected self-referential alias to fail")
	}
	violations := s.Violations()
	if len(violations) != 1 || violations[0].Kind != TypeAliasCycle {
		t.Fatalf("expected TypeAliasCycle, got %v", violations)
	}
}

func TestAliasMutualCycle(t *testing.T) {
	aliases := map[string]AliasDef{
		"A": {Name: "A", Body: typesys.App{Constructor: "B"}},
		"B": {Name: "B", Body: typesys.App{Constructor: "A"}},
	}
	s := NewSolver(aliases, nil)
	_, ok := s.ExpandAlias(ast.Span{}, "A", nil)
	if ok {
		t.Fatal("expected mutually recursive aliases to fail")
	}
	if len(s.Violations()) != 1 || s.Violations()[0].Kind != TypeAliasCycle {
		t.Fatalf("expected TypeAliasCycle, got %v", s.Violations())
	}
}

// buildAliasChain returns a chain of `total` aliases A0..A(total-1),
// each pointing to the next, with the last bottoming out at Int.
// Expanding A0 through such a chain performs total-1 expansion steps.
func buildAliasChain(total int) map[string]AliasDef {
	aliases := make(map[string]AliasDef, total)
	for i := 0; i < total; i++ {
		name := aliasName(i)
		if i == total-1 {
			aliases[name] = AliasDef{Name: name, Body: typesys.TInt}
			continue
		}
		aliases[name] = AliasDef{Name: name, Body: typesys.App{Constructor: aliasName(i + 1)}}
	}
	return aliases
}

func aliasName(i int) string {
	return "A" + string(rune('0'+i/10)) + string(rune('0'+i%10))
}

func TestAliasExpansionDepthExactly32Succeeds(t *testing.T) {
	aliases := buildAliasChain(33) // A00..A32, 32 expansion steps to bottom out
	s := NewSolver(aliases, nil)
	result, ok := s.ExpandAlias(ast.Span{}, aliasName(0), nil)
	if !ok {
		t.Fatalf("expected depth-32 expansion to succeed, violations: %v", s.Violations())
	}
	if !typesys.Equal(typesys.TInt, result) {
		t.Errorf("expected fully expanded Int, got %s", result.Label())
	}
}

func TestAliasExpansionDepth33Fails(t *testing.T) {
	aliases := buildAliasChain(34) // A00..A33, 33 expansion steps to bottom out
	s := NewSolver(aliases, nil)
	_, ok := s.ExpandAlias(ast.Span{}, aliasName(0), nil)
	if ok {
		t.Fatal("expected depth-33 expansion to fail")
	}
	violations := s.Violations()
	if len(violations) != 1 || violations[0].Kind != TypeAliasExpansionLimit {
		t.Fatalf("expected TypeAliasExpansionLimit, got %v", violations)
	}
}

func TestAliasExpansionSubstitutesParamsCaptureFree(t *testing.T) {
	gen := &typesys.TypeVarGen{}
	param := gen.Next()

	aliases := map[string]AliasDef{
		"Box": {
			Name:   "Box",
			Params: []typesys.TypeVar{param},
			Body:   typesys.Slice{Element: typesys.Var{Variable: param}},
		},
	}

	s := NewSolver(aliases, nil)
	result, ok := s.ExpandAlias(ast.Span{}, "Box", []typesys.Type{typesys.TStr})
	if !ok {
		t.Fatalf("expected expansion to succeed, violations: %v", s.Violations())
	}
	want := typesys.Slice{Element: typesys.TStr}
	if !typesys.Equal(want, result) {
		t.Errorf("Box<Str> expansion = %s, want %s", result.Label(), want.Label())
	}
}

func TestAbortedReportHasSingleViolation(t *testing.T) {
	report := AbortedReport()
	if !report.Aborted() {
		t.Fatal("expected AbortedReport().Aborted() to be true")
	}
	if len(report.TypedAST.Functions) != 0 {
		t.Error("expected empty typed AST on abort")
	}
}
