package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PeriodKey identifies one payroll period of one employee. It is unique per employee.
type PeriodKey struct {
	EmployeeID string `json:"employee_id"`
	Year       int    `json:"year"`
	Month      int    `json:"month"`
}

func (k PeriodKey) String() string {
	return fmt.Sprintf("%s/%04d-%02d", k.EmployeeID, k.Year, k.Month)
}

// PeriodInput is the period context a calculation runs against.
type PeriodInput struct {
	Year  int
	Month int

	// HoursWorked overrides the hours derived from the contract (timesheet data).
	HoursWorked *decimal.Decimal

	// ReferenceDate drives age and compliance checks. The zero value resolves
	// to the last day of the period; the engine never reads the wall clock.
	ReferenceDate time.Time
}

// BracketContribution is the share of tax raised by one bracket
type BracketContribution struct {
	Low           decimal.Decimal  `json:"low"`
	High          *decimal.Decimal `json:"high,omitempty"`
	Rate          decimal.Decimal  `json:"rate"`
	TaxableAmount decimal.Decimal  `json:"taxable_amount"` // annual income inside this bracket
	AnnualTax     decimal.Decimal  `json:"annual_tax"`
	MonthlyTax    decimal.Decimal  `json:"monthly_tax"`
}

// ContributionLine is one social security premium for one period
type ContributionLine struct {
	Name         string          `json:"name"`
	Rate         decimal.Decimal `json:"rate"`
	CappedIncome decimal.Decimal `json:"capped_income"`
	Amount       decimal.Decimal `json:"amount"`
}

// ContributionBreakdown groups the premiums of one side (employee or employer)
type ContributionBreakdown struct {
	Lines []ContributionLine `json:"lines"`
	Total decimal.Decimal    `json:"total"`
}

// Line returns the named line, if present
func (b ContributionBreakdown) Line(name string) (ContributionLine, bool) {
	for _, l := range b.Lines {
		if l.Name == name {
			return l, true
		}
	}
	return ContributionLine{}, false
}

// DefaultApplied records that a missing or unusable input was replaced
type DefaultApplied struct {
	Field  string `json:"field"`
	Value  string `json:"value"`
	Reason string `json:"reason"`
}

// PeriodResult is the gross-to-net outcome of one employee for one month.
// Monetary fields are rounded to cents; rates are decimal fractions.
type PeriodResult struct {
	Key          PeriodKey    `json:"key"`
	ContractType ContractType `json:"contract_type"`
	TaxTable     TaxTable     `json:"tax_table"`

	GrossSalary       decimal.Decimal       `json:"gross_salary"`
	AnnualizedGross   decimal.Decimal       `json:"annualized_gross"`
	BracketTax        decimal.Decimal       `json:"bracket_tax"`
	TaxCredit         decimal.Decimal       `json:"tax_credit"`
	TaxAmount         decimal.Decimal       `json:"tax_amount"`
	TaxBreakdown      []BracketContribution `json:"tax_breakdown"`
	SocialSecurity    ContributionBreakdown `json:"social_security"`
	EmployerSocialSec ContributionBreakdown `json:"employer_social_security"`

	HolidayAllowanceRate    decimal.Decimal `json:"holiday_allowance_rate"`
	HolidayAllowanceAccrual decimal.Decimal `json:"holiday_allowance_accrual"`
	VacationDaysAccrued     decimal.Decimal `json:"vacation_days_accrued"`

	NetSalary    decimal.Decimal `json:"net_salary"`
	EmployerCost decimal.Decimal `json:"employer_cost"`

	ProRataFactor decimal.Decimal `json:"pro_rata_factor"`
	HoursWorked   decimal.Decimal `json:"hours_worked"`
	ExpectedHours decimal.Decimal `json:"expected_hours"`
	// HoursDefaulted is set when no timesheet was supplied and HoursWorked
	// equals ExpectedHours by substitution
	HoursDefaulted bool `json:"hours_defaulted,omitempty"`

	Defaults []DefaultApplied `json:"defaults,omitempty"`
}

// TotalDeductions returns tax plus employee social security
func (p PeriodResult) TotalDeductions() decimal.Decimal {
	return p.TaxAmount.Add(p.SocialSecurity.Total)
}

// CumulativeResult is the year-to-date sum of period results. It is derived on
// demand and never persisted by the engine.
type CumulativeResult struct {
	EmployeeID   string `json:"employee_id"`
	Year         int    `json:"year"`
	ThroughMonth int    `json:"through_month"`
	Months       []int  `json:"months"` // months folded, in fold order

	GrossSalary             decimal.Decimal `json:"gross_salary"`
	TaxAmount               decimal.Decimal `json:"tax_amount"`
	SocialSecurity          decimal.Decimal `json:"social_security"`
	EmployerSocialSecurity  decimal.Decimal `json:"employer_social_security"`
	HolidayAllowanceAccrued decimal.Decimal `json:"holiday_allowance_accrued"`
	VacationDaysAccrued     decimal.Decimal `json:"vacation_days_accrued"`
	NetSalary               decimal.Decimal `json:"net_salary"`
	EmployerCost            decimal.Decimal `json:"employer_cost"`
	HoursWorked             decimal.Decimal `json:"hours_worked"`
	ExpectedHours           decimal.Decimal `json:"expected_hours"`

	// Statutory simplification: every folded period counts as 22 days / 176 hours.
	WorkingDays   int             `json:"working_days"`
	StandardHours decimal.Decimal `json:"standard_hours"`

	// Per-premium totals merged by name, in first-seen order
	ContributionTotals         []ContributionLine `json:"contribution_totals"`
	EmployerContributionTotals []ContributionLine `json:"employer_contribution_totals"`
}

// IsEmpty reports whether no period has been folded in yet
func (c CumulativeResult) IsEmpty() bool {
	return len(c.Months) == 0
}

// MissingMonths lists months between 1 and ThroughMonth that were never folded
func (c CumulativeResult) MissingMonths() []int {
	seen := make(map[int]bool, len(c.Months))
	for _, m := range c.Months {
		seen[m] = true
	}
	var missing []int
	for m := 1; m <= c.ThroughMonth; m++ {
		if !seen[m] {
			missing = append(missing, m)
		}
	}
	return missing
}

// HolidayScheduleEntry is one month of the holiday allowance ledger. Reserve is
// the signed movement of the reserve that month; in a payout month it equals
// minus the balance carried into the month.
type HolidayScheduleEntry struct {
	Month         int             `json:"month"`
	Accrual       decimal.Decimal `json:"accrual"`
	Reserve       decimal.Decimal `json:"reserve"`
	Payout        decimal.Decimal `json:"payout"`
	Balance       decimal.Decimal `json:"balance"`
	IsPayoutMonth bool            `json:"is_payout_month"`
}
