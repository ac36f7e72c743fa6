package domain

// PayrollReport is everything the payslip renderer and compliance UI need for
// one employee and one period.
type PayrollReport struct {
	Period          PeriodResult           `json:"period"`
	Cumulative      CumulativeResult       `json:"cumulative"`
	Verdicts        []ComplianceVerdict    `json:"verdicts"`
	HolidaySchedule []HolidayScheduleEntry `json:"holiday_schedule"`
	Warnings        []string               `json:"warnings,omitempty"`
}

// IsCompliant reports whether every verdict passed
func (r *PayrollReport) IsCompliant() bool {
	for _, v := range r.Verdicts {
		if !v.IsCompliant {
			return false
		}
	}
	return true
}

// Verdict returns the verdict for a rule, if it was evaluated
func (r *PayrollReport) Verdict(id RuleID) (ComplianceVerdict, bool) {
	for _, v := range r.Verdicts {
		if v.RuleID == id {
			return v, true
		}
	}
	return ComplianceVerdict{}, false
}

// PayrollRequest is one employee's input to a batch run. PriorPeriods are the
// stored results for the same year, deduplicated and ordered by month.
type PayrollRequest struct {
	Employee     EmployeeSnapshot
	PriorPeriods []PeriodResult
	Input        PeriodInput
}

// RunFailure records an employee whose calculation hit a hard error
type RunFailure struct {
	EmployeeID string `json:"employee_id"`
	Error      string `json:"error"`
}

// PayrollRun is the outcome of a batch over many employees for one period
type PayrollRun struct {
	RunID    string          `json:"run_id"`
	Year     int             `json:"year"`
	Month    int             `json:"month"`
	Reports  []PayrollReport `json:"reports"`
	Failures []RunFailure    `json:"failures,omitempty"`
}
