// Package errors provides a centralized, phase-tagged error code
// taxonomy shared by the type-and-effect representation, constraint
// solver, capability registry, and diagnostic pipeline. Every code
// constant represents one specific failure condition with structured
// reporting; the set is closed and validated by GetErrorInfo.
package errors

// Error code constants organized by phase.
const (
	// ============================================================================
	// Type-and-effect representation errors (TS###)
	// ============================================================================

	// TS001 indicates a kind mismatch between two type constructors
	TS001 = "TS001"

	// TS002 indicates two row labels conflict under the same row tail
	TS002 = "TS002"

	// TS003 indicates an effect row could not be closed for a stage check
	TS003 = "TS003"

	// TS004 indicates an arrow's parameter count disagrees with its call site
	TS004 = "TS004"

	// ============================================================================
	// Constraint solver violations (CN###) — mirrors constraint.ViolationKind
	// ============================================================================

	// CN001 indicates a branch condition failed to unify with Bool
	CN001 = "CN001"

	// CN002 indicates a type alias re-entered itself during expansion
	CN002 = "CN002"

	// CN003 indicates a type alias exceeded its expansion depth limit
	CN003 = "CN003"

	// CN004 indicates a constructor was applied to the wrong argument count
	CN004 = "CN004"

	// CN005 indicates an occurs-check failure during unification
	CN005 = "CN005"

	// CN006 indicates a plain type mismatch during unification
	CN006 = "CN006"

	// CN007 indicates the solver was asked to run without an AST to attach violations to
	CN007 = "CN007"

	// ============================================================================
	// Capability registry errors (CR###) — mirrors capreg's error types
	// ============================================================================

	// CR001 indicates the requested capability id has no registered descriptor
	CR001 = "CR001"

	// CR002 indicates the registered stage does not satisfy the caller's requirement
	CR002 = "CR002"

	// CR003 indicates the caller declared effects absent from the descriptor's scope
	CR003 = "CR003"

	// CR004 indicates an atomic bundle install failed and was rolled back
	CR004 = "CR004"

	// CR005 indicates UnloadBundle was asked to unload an unknown bundle id
	CR005 = "CR005"

	// ============================================================================
	// Diagnostic and audit pipeline errors (DG###)
	// ============================================================================

	// DG001 indicates an audit envelope was built with empty metadata
	DG001 = "DG001"

	// DG002 indicates a recognized event kind is missing one or more required metadata keys
	DG002 = "DG002"

	// DG003 indicates a bridge.* event kind is missing its stage identity triple
	DG003 = "DG003"

	// DG004 indicates a partial effect-stage key set was supplied without the full triple
	DG004 = "DG004"

	// DG005 indicates a bridge reload/rollback event is missing its full key set
	DG005 = "DG005"

	// DG006 indicates a sink failed to durably emit a validated event
	DG006 = "DG006"
)

// ErrorInfo provides structured information about an error code.
type ErrorInfo struct {
	Code        string
	Phase       string
	Category    string
	Description string
}

// ErrorRegistry maps error codes to their information.
var ErrorRegistry = map[string]ErrorInfo{
	// Type-and-effect representation
	TS001: {TS001, "typesys", "kind", "Kind mismatch"},
	TS002: {TS002, "typesys", "row", "Row label conflict"},
	TS003: {TS003, "typesys", "effect", "Effect row could not be closed"},
	TS004: {TS004, "typesys", "arity", "Arrow arity mismatch"},

	// Constraint solver
	CN001: {CN001, "constraint", "condition", "Branch condition not Bool"},
	CN002: {CN002, "constraint", "alias", "Type alias cycle"},
	CN003: {CN003, "constraint", "alias", "Type alias expansion limit"},
	CN004: {CN004, "constraint", "constructor", "Constructor arity mismatch"},
	CN005: {CN005, "constraint", "unification", "Occurs check failed"},
	CN006: {CN006, "constraint", "unification", "Type mismatch"},
	CN007: {CN007, "constraint", "aborted", "AST unavailable"},

	// Capability registry
	CR001: {CR001, "capreg", "lookup", "Capability not registered"},
	CR002: {CR002, "capreg", "stage", "Stage requirement not satisfied"},
	CR003: {CR003, "capreg", "effect", "Declared effects missing from scope"},
	CR004: {CR004, "capreg", "bundle", "Bundle install failed"},
	CR005: {CR005, "capreg", "bundle", "Unknown bundle"},

	// Diagnostic / audit pipeline
	DG001: {DG001, "diagnostic", "envelope", "Empty audit metadata"},
	DG002: {DG002, "diagnostic", "envelope", "Missing required metadata keys"},
	DG003: {DG003, "diagnostic", "envelope", "Incomplete bridge stage triple"},
	DG004: {DG004, "diagnostic", "envelope", "Incomplete effect stage triple"},
	DG005: {DG005, "diagnostic", "envelope", "Incomplete bridge reload key set"},
	DG006: {DG006, "diagnostic", "sink", "Sink emit failed"},
}

// GetErrorInfo returns information about an error code.
func GetErrorInfo(code string) (ErrorInfo, bool) {
	info, exists := ErrorRegistry[code]
	return info, exists
}

// IsTypesysError checks if the error code belongs to the type-and-effect
// representation phase.
func IsTypesysError(code string) bool {
	info, exists := GetErrorInfo(code)
	return exists && info.Phase == "typesys"
}

// IsConstraintError checks if the error code belongs to the constraint
// solver phase.
func IsConstraintError(code string) bool {
	info, exists := GetErrorInfo(code)
	return exists && info.Phase == "constraint"
}

// IsCapabilityError checks if the error code belongs to the capability
// registry phase.
func IsCapabilityError(code string) bool {
	info, exists := GetErrorInfo(code)
	return exists && info.Phase == "capreg"
}

// IsDiagnosticError checks if the error code belongs to the diagnostic
// and audit pipeline phase.
func IsDiagnosticError(code string) bool {
	info, exists := GetErrorInfo(code)
	return exists && info.Phase == "diagnostic"
}
