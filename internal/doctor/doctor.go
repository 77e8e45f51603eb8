package doctor

import (
	"context"
	"fmt"
	"time"
)

// Check is one diagnostic probe of the logging setup.
type Check interface {
	Name() string
	Category() string
	Run() *CheckResult
}

// Runner executes checks in registration order.
type Runner struct {
	checks []Check
	now    func() time.Time
}

// NewRunner returns an empty runner.
func NewRunner() *Runner {
	return &Runner{now: time.Now}
}

// AddCheck registers c. Checks run in the order they were added.
func (r *Runner) AddCheck(c Check) {
	r.checks = append(r.checks, c)
}

// Run executes every registered check and aggregates the results. Once ctx
// is done the remaining checks are reported as skipped instead of run. A
// check that panics is reported as an error.
func (r *Runner) Run(ctx context.Context) *Report {
	report := &Report{
		Timestamp: r.now().UTC(),
		Results:   make([]*CheckResult, 0, len(r.checks)),
	}

	for _, check := range r.checks {
		var result *CheckResult
		if err := ctx.Err(); err != nil {
			result = &CheckResult{Status: SeverityInfo, Message: "skipped: " + err.Error()}
		} else {
			result = runCheck(check)
		}

		if result.Name == "" {
			result.Name = check.Name()
		}
		if result.Category == "" {
			result.Category = check.Category()
		}
		report.add(result)
	}

	return report
}

func runCheck(check Check) (result *CheckResult) {
	defer func() {
		if p := recover(); p != nil {
			result = &CheckResult{
				Status:  SeverityError,
				Message: fmt.Sprintf("check panicked: %v", p),
			}
		}
	}()

	result = check.Run()
	if result == nil {
		result = &CheckResult{Status: SeverityPass}
	}
	return result
}

// Report is the outcome of one Runner.Run.
type Report struct {
	Timestamp time.Time      `json:"timestamp"`
	Results   []*CheckResult `json:"results"`
	Summary   Summary        `json:"summary"`
}

func (r *Report) add(result *CheckResult) {
	r.Results = append(r.Results, result)
	switch result.Status {
	case SeverityPass:
		r.Summary.Passed++
	case SeverityInfo:
		r.Summary.Info++
	case SeverityWarning:
		r.Summary.Warnings++
	case SeverityError:
		r.Summary.Errors++
	}
}

// HasErrors reports whether any check failed.
func (r *Report) HasErrors() bool {
	return r.Summary.Errors > 0
}

// HasWarnings reports whether any check warned.
func (r *Report) HasWarnings() bool {
	return r.Summary.Warnings > 0
}

// Worst returns the highest severity in the report, SeverityPass when empty.
func (r *Report) Worst() Severity {
	worst := SeverityPass
	for _, result := range r.Results {
		if result.Status > worst {
			worst = result.Status
		}
	}
	return worst
}

// Actionable returns the warnings and errors, in report order.
func (r *Report) Actionable() []*CheckResult {
	var out []*CheckResult
	for _, result := range r.Results {
		if result.Status.Actionable() {
			out = append(out, result)
		}
	}
	return out
}
