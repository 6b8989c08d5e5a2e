package constraint

import (
	"fmt"

	"github.com/remlc/remlc/internal/ast"
	"github.com/remlc/remlc/internal/typesys"
)

// ViolationKind is the closed set of checker violation tags.
type ViolationKind string

const (
	ConditionLiteralBool       ViolationKind = "ConditionLiteralBool"
	TypeAliasCycle             ViolationKind = "TypeAliasCycle"
	TypeAliasExpansionLimit    ViolationKind = "TypeAliasExpansionLimit"
	ConstructorArityMismatch   ViolationKind = "ConstructorArityMismatch"
	OccursViolation            ViolationKind = "Occurs"
	MismatchViolation          ViolationKind = "Mismatch"
	AstUnavailable             ViolationKind = "AstUnavailable"
)

// Violation is a single collected checker failure: a closed kind tag,
// source span, human message, and optional rendered type labels for
// diagnostics built on top of this package. Violations are collected
// during a run rather than aborting it, unless progress is impossible
// (AstUnavailable).
type Violation struct {
	Kind    ViolationKind
	Span    ast.Span
	Message string

	// LeftLabel/RightLabel are populated for Mismatch/Occurs/condition
	// violations so a diagnostic builder can render them without
	// re-deriving the types involved.
	LeftLabel  string
	RightLabel string
}

func mismatchViolation(span ast.Span, left, right typesys.Type) Violation {
	return Violation{
		Kind:       MismatchViolation,
		Span:       span,
		Message:    fmt.Sprintf("type mismatch: %s vs %s", left.Label(), right.Label()),
		LeftLabel:  left.Label(),
		RightLabel: right.Label(),
	}
}

func occursViolation(span ast.Span, v typesys.TypeVar, t typesys.Type) Violation {
	return Violation{
		Kind:       OccursViolation,
		Span:       span,
		Message:    fmt.Sprintf("occurs check failed: %s occurs in %s", v.String(), t.Label()),
		LeftLabel:  v.String(),
		RightLabel: t.Label(),
	}
}

func conditionViolation(span ast.Span, actual typesys.Type) Violation {
	return Violation{
		Kind:       ConditionLiteralBool,
		Span:       span,
		Message:    fmt.Sprintf("branch condition must be Bool, found %s", actual.Label()),
		LeftLabel:  typesys.TBool.Label(),
		RightLabel: actual.Label(),
	}
}

func aliasCycleViolation(span ast.Span, name string) Violation {
	return Violation{
		Kind:    TypeAliasCycle,
		Span:    span,
		Message: fmt.Sprintf("type alias %q re-entered during expansion", name),
	}
}

func aliasLimitViolation(span ast.Span, name string, limit int) Violation {
	return Violation{
		Kind:    TypeAliasExpansionLimit,
		Span:    span,
		Message: fmt.Sprintf("type alias %q exceeded expansion depth limit of %d", name, limit),
	}
}

func arityViolation(span ast.Span, ctor string, expected, actual int) Violation {
	return Violation{
		Kind:    ConstructorArityMismatch,
		Span:    span,
		Message: fmt.Sprintf("constructor %s expects %d argument(s), found %d", ctor, expected, actual),
	}
}

// AstUnavailableViolation is emitted, alone, when the checker cannot
// make progress because no AST was supplied for the run.
func AstUnavailableViolation() Violation {
	return Violation{
		Kind:    AstUnavailable,
		Message: "typeck.aborted.ast_unavailable",
	}
}
