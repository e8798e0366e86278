package model

// SuiteStatus is the running status of a test suite.
type SuiteStatus string

const (
	SuiteStatusRunning SuiteStatus = "Running"
	SuiteStatusStopped SuiteStatus = "Stopped"
	SuiteStatusAborted SuiteStatus = "Aborted"
)

// Finished returns true when the suite is not running anymore.
func (s SuiteStatus) Finished() bool {
	return s == SuiteStatusStopped || s == SuiteStatusAborted
}

// Verdict is the binary outcome of a test run.
type Verdict string

const (
	VerdictPassed Verdict = "Passed"
	VerdictFailed Verdict = "Failed"
)

// TestResult is the summary of the latest test run of a sandbox.
type TestResult struct {
	TestStatus  string
	Total       int
	CasesPassed int
	CasesFailed int
	StepsPassed int
	StepsFailed int
}

// Verdict returns failed when any case or step failed.
func (r TestResult) Verdict() Verdict {
	if r.CasesFailed != 0 || r.StepsFailed != 0 {
		return VerdictFailed
	}
	return VerdictPassed
}
