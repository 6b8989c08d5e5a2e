package capreg

import "fmt"

// NotRegisteredError reports that no descriptor exists for the
// requested capability id. Checked before any stage or effect
// comparison, so it is always the earliest possible failure.
type NotRegisteredError struct {
	ID string
}

func (e *NotRegisteredError) Error() string {
	return fmt.Sprintf("capreg: capability %q is not registered", e.ID)
}

// StageViolationError reports that the registered stage does not
// satisfy the caller's requirement.
type StageViolationError struct {
	ID       string
	Required Requirement
	Actual   Stage
}

func (e *StageViolationError) Error() string {
	return fmt.Sprintf("capreg: capability %q requires stage %s, found %s", e.ID, e.Required, e.Actual)
}

// EffectViolationError reports that one or more effects the caller
// declared are absent from the descriptor's effect scope.
type EffectViolationError struct {
	ID      string
	Missing []string
}

func (e *EffectViolationError) Error() string {
	return fmt.Sprintf("capreg: capability %q missing declared effects %v", e.ID, e.Missing)
}

// BundleInstallError reports a failed atomic bundle install. The
// registry is guaranteed to be byte-identical to its pre-install
// snapshot once this error is returned.
type BundleInstallError struct {
	BundleID string
	Reason   string
}

func (e *BundleInstallError) Error() string {
	return fmt.Sprintf("capreg: bundle %q install failed: %s", e.BundleID, e.Reason)
}

// UnknownBundleError reports that UnloadBundle was asked to unload a
// bundle id with no registered entries.
type UnknownBundleError struct {
	BundleID string
}

func (e *UnknownBundleError) Error() string {
	return fmt.Sprintf("capreg: bundle %q has no registered capabilities", e.BundleID)
}
