// Package typedast holds the data-only output contract the AST walker
// hands the constraint solver: a typed function table plus the
// constraint and effect-usage streams derived from it. Nothing in this
// package traverses source text — it is the checker's *input* shape,
// produced upstream and consumed by package constraint.
package typedast

import (
	"github.com/remlc/remlc/internal/ast"
	"github.com/remlc/remlc/internal/typesys"
)

// EffectUsage records a single effect name observed at a span, as
// collected by the walker ahead of capability verification.
type EffectUsage struct {
	Name string
	Span ast.Span
}

// Param is a typed function parameter.
type Param struct {
	Name string
	Type typesys.Type
}

// Function is the typed-AST mirror of a single function declaration:
// its parameter list, return type, and body expression tree, keyed by
// name in Program.
type Function struct {
	Name       string
	Params     []Param
	ReturnType typesys.Type
	Body       Expr
	Span       ast.Span
}

// ExprKind distinguishes the handful of expression shapes the checker
// cares about; the walker's richer AST is erased to this before it
// reaches the solver.
type ExprKind int

const (
	ExprVar ExprKind = iota
	ExprCall
	ExprIf
	ExprConstructor
	ExprLiteral
	ExprOpaque
)

// Expr is a typed expression node. Not every field is populated for
// every Kind; see the ExprKind constants for which apply.
type Expr struct {
	Kind ExprKind
	Type typesys.Type
	Span ast.Span

	// ExprVar / ExprCall
	Name string

	// ExprIf
	Cond, Then, Else *Expr

	// ExprCall / ExprConstructor
	Args []Expr

	// ExprConstructor
	Constructor string
}

// Program is the complete typed-AST mirror for a checking run: every
// function, in declaration order, plus the effect usages observed
// while walking the source AST.
type Program struct {
	Functions    []Function
	EffectUsages []EffectUsage
}

// FunctionByName looks up a typed function by name.
func (p *Program) FunctionByName(name string) (Function, bool) {
	for _, f := range p.Functions {
		if f.Name == name {
			return f, true
		}
	}
	return Function{}, false
}
