package calculation

import (
	"fmt"

	"github.com/glodinasflexwork/dutch-payroll-system-sub000/internal/domain"
	"github.com/shopspring/decimal"
)

// StandardWorkingDaysPerPeriod and StandardHoursPerPeriod are the statutory
// simplification: every folded period counts as a standard month, independent
// of the calendar.
const StandardWorkingDaysPerPeriod = 22

var StandardHoursPerPeriod = decimal.NewFromInt(176)

// NewCumulative returns the empty year-to-date state for an employee and year
func NewCumulative(employeeID string, year int) domain.CumulativeResult {
	return domain.CumulativeResult{
		EmployeeID:                 employeeID,
		Year:                       year,
		Months:                     []int{},
		GrossSalary:                decimal.Zero,
		TaxAmount:                  decimal.Zero,
		SocialSecurity:             decimal.Zero,
		EmployerSocialSecurity:     decimal.Zero,
		HolidayAllowanceAccrued:    decimal.Zero,
		VacationDaysAccrued:        decimal.Zero,
		NetSalary:                  decimal.Zero,
		EmployerCost:               decimal.Zero,
		HoursWorked:                decimal.Zero,
		ExpectedHours:              decimal.Zero,
		StandardHours:              decimal.Zero,
		ContributionTotals:         []domain.ContributionLine{},
		EmployerContributionTotals: []domain.ContributionLine{},
	}
}

// Fold adds one period to a year-to-date state. It is a pure reduction: the
// prior state is not modified and the result shares no slices with it.
// Fold performs no deduplication; feeding the same month twice counts it twice.
func Fold(prior domain.CumulativeResult, p domain.PeriodResult) (domain.CumulativeResult, error) {
	if prior.EmployeeID != "" && prior.EmployeeID != p.Key.EmployeeID {
		return prior, fmt.Errorf("%w: period %s folded into employee %s", ErrPeriodMismatch, p.Key, prior.EmployeeID)
	}
	if prior.Year != 0 && prior.Year != p.Key.Year {
		return prior, fmt.Errorf("%w: period %s folded into year %d", ErrPeriodMismatch, p.Key, prior.Year)
	}

	next := prior
	next.EmployeeID = p.Key.EmployeeID
	next.Year = p.Key.Year
	if p.Key.Month > next.ThroughMonth {
		next.ThroughMonth = p.Key.Month
	}

	next.Months = make([]int, 0, len(prior.Months)+1)
	next.Months = append(next.Months, prior.Months...)
	next.Months = append(next.Months, p.Key.Month)

	next.GrossSalary = prior.GrossSalary.Add(p.GrossSalary)
	next.TaxAmount = prior.TaxAmount.Add(p.TaxAmount)
	next.SocialSecurity = prior.SocialSecurity.Add(p.SocialSecurity.Total)
	next.EmployerSocialSecurity = prior.EmployerSocialSecurity.Add(p.EmployerSocialSec.Total)
	next.HolidayAllowanceAccrued = prior.HolidayAllowanceAccrued.Add(p.HolidayAllowanceAccrual)
	next.VacationDaysAccrued = prior.VacationDaysAccrued.Add(p.VacationDaysAccrued)
	next.NetSalary = prior.NetSalary.Add(p.NetSalary)
	next.EmployerCost = prior.EmployerCost.Add(p.EmployerCost)
	next.HoursWorked = prior.HoursWorked.Add(p.HoursWorked)
	next.ExpectedHours = prior.ExpectedHours.Add(p.ExpectedHours)

	next.WorkingDays = prior.WorkingDays + StandardWorkingDaysPerPeriod
	next.StandardHours = prior.StandardHours.Add(StandardHoursPerPeriod)

	next.ContributionTotals = mergeLines(prior.ContributionTotals, p.SocialSecurity.Lines)
	next.EmployerContributionTotals = mergeLines(prior.EmployerContributionTotals, p.EmployerSocialSec.Lines)

	return next, nil
}

// Aggregate folds periods, in the given order, into a fresh year-to-date state.
// Gaps are folded silently and surface through MissingMonths. A period of a
// different employee or year is a hard error.
func Aggregate(employeeID string, year int, periods []domain.PeriodResult) (domain.CumulativeResult, error) {
	cum := NewCumulative(employeeID, year)
	for _, p := range periods {
		var err error
		cum, err = Fold(cum, p)
		if err != nil {
			return domain.CumulativeResult{}, fmt.Errorf("aggregate %s %d: %w", employeeID, year, err)
		}
	}
	return cum, nil
}

// SequenceWarnings describes ordering problems in a period list: months that
// appear more than once and months that come after a later month. The list is
// still foldable; these are data-quality hints for the caller.
func SequenceWarnings(periods []domain.PeriodResult) []string {
	var warnings []string
	seen := make(map[domain.PeriodKey]int, len(periods))
	last := 0
	for _, p := range periods {
		seen[p.Key]++
		if seen[p.Key] == 2 {
			warnings = append(warnings, fmt.Sprintf("period %s appears more than once", p.Key))
		}
		if p.Key.Month < last {
			warnings = append(warnings, fmt.Sprintf("period %s follows month %d", p.Key, last))
		}
		if p.Key.Month > last {
			last = p.Key.Month
		}
	}
	return warnings
}

func mergeLines(totals, lines []domain.ContributionLine) []domain.ContributionLine {
	out := make([]domain.ContributionLine, len(totals), len(totals)+len(lines))
	copy(out, totals)
	for _, l := range lines {
		found := false
		for i := range out {
			if out[i].Name == l.Name {
				out[i].CappedIncome = out[i].CappedIncome.Add(l.CappedIncome)
				out[i].Amount = out[i].Amount.Add(l.Amount)
				out[i].Rate = l.Rate
				found = true
				break
			}
		}
		if !found {
			out = append(out, l)
		}
	}
	return out
}
