// Package report decides when a test phase counts as a real failure and
// attaches browser diagnostics to the configured reporting sink.
package report

// Phase is one step of a test's execution.
type Phase string

const (
	PhaseSetup    Phase = "setup"
	PhaseCall     Phase = "call"
	PhaseTeardown Phase = "teardown"
)

// Outcome is the result of a single phase.
type Outcome struct {
	Failed  bool
	Skipped bool
	// WasXFail is set when the test was declared as an expected failure.
	WasXFail bool
	Message  string
}

// Passed reports whether the phase neither failed nor skipped.
func (o Outcome) Passed() bool {
	return !o.Failed && !o.Skipped
}

// IsFailure reports whether o is a failure worth collecting diagnostics for.
// An expected failure that failed is not one; an expected failure that was
// skipped is.
func IsFailure(o Outcome) bool {
	return (o.Skipped && o.WasXFail) || (o.Failed && !o.WasXFail)
}

// Status is the final state recorded for a test.
type Status string

const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusBroken  Status = "broken"
	StatusSkipped Status = "skipped"
)

// StatusOf maps a phase outcome onto a recorded status. Failures outside the
// test body are reported as broken, the way errors in setup or teardown are
// distinguished from assertion failures.
func StatusOf(phase Phase, o Outcome) Status {
	switch {
	case o.Passed():
		return StatusPassed
	case o.Failed && phase != PhaseCall:
		return StatusBroken
	case o.Failed:
		return StatusFailed
	default:
		return StatusSkipped
	}
}
