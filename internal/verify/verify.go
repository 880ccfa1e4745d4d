package verify

import (
	"time"

	"github.com/thoreinstein/sitrep/pkg/report"
)

// Context carries the report file under verification. It is built once
// per file and shared by every check.
type Context struct {
	// Path is where the file was read from, for display only.
	Path string

	// Data is the raw file content.
	Data []byte

	// Report is the decoded report, or nil if decoding failed.
	Report *report.Report

	// DecodeErr is the decode failure, or nil on success.
	DecodeErr error
}

// NewContext decodes data and returns a context ready for checks.
func NewContext(path string, data []byte) *Context {
	ctx := &Context{Path: path, Data: data}
	ctx.Report, ctx.DecodeErr = report.DecodeBytes(data)
	return ctx
}

// Check is the interface that integrity checks must implement.
type Check interface {
	// Name returns the unique identifier for this check.
	Name() string

	// Category returns the grouping for this check (e.g., "wire", "content").
	Category() string

	// Run executes the check against the given context and returns its result.
	Run(ctx *Context) *CheckResult
}

// Runner executes integrity checks and aggregates their results.
type Runner struct {
	checks []Check
}

// NewRunner creates a new check runner.
func NewRunner() *Runner {
	return &Runner{
		checks: make([]Check, 0),
	}
}

// AddCheck registers an integrity check with the runner.
func (r *Runner) AddCheck(c Check) {
	r.checks = append(r.checks, c)
}

// Run executes all registered checks and returns a report.
func (r *Runner) Run(ctx *Context) *VerifyReport {
	vr := &VerifyReport{
		Timestamp: time.Now().UTC(),
		Path:      ctx.Path,
		Results:   make([]*CheckResult, 0, len(r.checks)),
	}

	for _, check := range r.checks {
		result := check.Run(ctx)
		vr.Results = append(vr.Results, result)

		// Update summary counts
		switch result.Status {
		case SeverityPass:
			vr.Summary.Passed++
		case SeverityInfo:
			vr.Summary.Info++
		case SeverityWarning:
			vr.Summary.Warnings++
		case SeverityError:
			vr.Summary.Errors++
		}
	}

	return vr
}

// VerifyReport aggregates all check results with timing and summary.
type VerifyReport struct {
	// Timestamp is when the verification run started.
	Timestamp time.Time `json:"timestamp"`

	// Path is the file that was verified.
	Path string `json:"path"`

	// Results contains the outcome of each check.
	Results []*CheckResult `json:"results"`

	// Summary contains counts by severity level.
	Summary Summary `json:"summary"`
}

// HasErrors returns true if any check has SeverityError.
func (r *VerifyReport) HasErrors() bool {
	return r.Summary.Errors > 0
}

// HasWarnings returns true if any check has SeverityWarning.
func (r *VerifyReport) HasWarnings() bool {
	return r.Summary.Warnings > 0
}

// DefaultChecks returns the standard set of checks in execution order.
func DefaultChecks() []Check {
	return []Check{
		NewWireSyntaxCheck(),
		NewDecodeCheck(),
		NewRoundTripCheck(),
		NewLevelConsistencyCheck(),
		NewStructureCheck(),
	}
}
