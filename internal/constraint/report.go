package constraint

import (
	"github.com/remlc/remlc/internal/typedast"
	"github.com/remlc/remlc/internal/typesys"
)

// FunctionStats summarizes solver activity attributable to a single
// function, for reporting and for any downstream tooling that wants a
// per-function breakdown rather than a run-wide total.
type FunctionStats struct {
	Name             string
	ConstraintCount  int
	ViolationCount   int
	ResidualCount    int
}

// Report is the constraint solver's full output for a checking run:
// the final substitution, the residual capability/impl constraints for
// C3, every violation collected, per-function statistics, the set of
// impl names actually used, and the typed-AST mirror passed through
// unchanged for downstream consumers.
type Report struct {
	Substitution *typesys.Substitution
	Residual     []Constraint
	Violations   []Violation
	Functions    []FunctionStats
	UsedImpls    map[string]struct{}
	TypedAST     *typedast.Program
}

// Aborted reports whether the run could not make progress at all (the
// AstUnavailable case): when true, Violations holds exactly the single
// AstUnavailableViolation and TypedAST is empty.
func (r *Report) Aborted() bool {
	return len(r.Violations) == 1 && r.Violations[0].Kind == AstUnavailable
}

// AbortedReport builds the single-violation report emitted when no AST
// was supplied for the run: the checker cannot make progress, so the
// typed AST is left empty rather than partially populated.
func AbortedReport() *Report {
	return &Report{
		Substitution: typesys.NewSubstitution(),
		Violations:   []Violation{AstUnavailableViolation()},
		UsedImpls:    map[string]struct{}{},
		TypedAST:     &typedast.Program{},
	}
}

// Finish packages the solver's accumulated state into a Report. stats
// and usedImpls are supplied by the caller (the checker driver),
// because the solver itself has no notion of "function" — it only
// tracks constraints and violations.
func (s *Solver) Finish(typedAST *typedast.Program, stats []FunctionStats, usedImpls map[string]struct{}) *Report {
	if usedImpls == nil {
		usedImpls = map[string]struct{}{}
	}
	if typedAST == nil {
		typedAST = &typedast.Program{}
	}
	return &Report{
		Substitution: s.subst,
		Residual:     append([]Constraint(nil), s.residual...),
		Violations:   s.Violations(),
		Functions:    stats,
		UsedImpls:    usedImpls,
		TypedAST:     typedAST,
	}
}
