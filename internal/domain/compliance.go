package domain

// RuleID is the machine-readable identity of a compliance rule. Consumers
// branch on RuleID and IsCompliant; Message is display text only.
type RuleID string

const (
	RuleMinimumWage      RuleID = "minimum_wage"
	RuleWorkingHours     RuleID = "working_hours"
	RuleHolidayAllowance RuleID = "holiday_allowance"
	RuleVacationBalance  RuleID = "vacation_balance"
)

// AllRules lists the rules in the order they are evaluated and reported
var AllRules = []RuleID{RuleMinimumWage, RuleWorkingHours, RuleHolidayAllowance, RuleVacationBalance}

// ComplianceVerdict is an advisory judgement. It never blocks a payroll run.
type ComplianceVerdict struct {
	RuleID      RuleID `json:"rule_id" csv:"rule_id"`
	IsCompliant bool   `json:"is_compliant" csv:"is_compliant"`
	Message     string `json:"message" csv:"message"`

	// Degraded is set when the rule ran on defaulted input and needs human review
	Degraded bool `json:"degraded" csv:"degraded"`
}
