package diagnostic

// ExitCode maps a collected set of diagnostics to the process exit
// code the stage-guard driver returns: 0 when nothing was reported, 1
// when only warnings/info/hints were reported, 2 when at least one
// error-severity diagnostic is present.
func ExitCode(diags []Diagnostic) int {
	if len(diags) == 0 {
		return 0
	}
	hasError := false
	for _, d := range diags {
		if d.Severity == SeverityError {
			hasError = true
			break
		}
	}
	if hasError {
		return 2
	}
	return 1
}
