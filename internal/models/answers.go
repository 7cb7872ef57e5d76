package models

// Answers holds everything the wizard collects before scaffolding.
type Answers struct {
	// CrateName is the trimmed, lower-cased crate identifier
	CrateName string

	// DriverType is the driver model written to Cargo.toml
	DriverType DriverType

	// VCS is passed through to `cargo new --vcs` unvalidated
	VCS string
}

// Complete reports whether every field has been collected
func (a Answers) Complete() bool {
	return a.CrateName != "" && a.DriverType != "" && a.VCS != ""
}

// Reset clears every field so the wizard asks for all of them again
func (a *Answers) Reset() {
	*a = Answers{}
}

// Decision is the outcome of the confirmation prompt
type Decision int

const (
	DecisionAccept Decision = iota
	DecisionRetry
	DecisionAbort
)

func (d Decision) String() string {
	switch d {
	case DecisionAccept:
		return "accept"
	case DecisionRetry:
		return "retry"
	case DecisionAbort:
		return "abort"
	default:
		return "unknown"
	}
}
