package calculation

import (
	"fmt"

	"github.com/glodinasflexwork/dutch-payroll-system-sub000/internal/domain"
	"github.com/glodinasflexwork/dutch-payroll-system-sub000/internal/rates"
	"github.com/glodinasflexwork/dutch-payroll-system-sub000/pkg/dateutil"
	money "github.com/glodinasflexwork/dutch-payroll-system-sub000/pkg/decimal"
	"github.com/shopspring/decimal"
)

// GROSS-TO-NET ASSUMPTIONS:
//
// 1. Monthly contracts earn AnnualGrossSalary / 12, scaled by the pro-rata
//    factor when employment starts or ends inside the month.
// 2. Hourly contracts earn HourlyRate x hours worked. Without a timesheet
//    override the (pro-rated) contract hours are used.
// 3. Wage tax is computed on the period gross annualized x 12, then divided
//    back to the month. Nothing is rounded until the PeriodResult is built.
// 4. Holiday allowance accrues on the period gross, so pro-rating is inherited
//    from gross. It is an employer cost for the month, not a deduction.

// PayrollCalculator turns an employee snapshot and a period into a PeriodResult.
// It holds no mutable state and is safe for concurrent use.
type PayrollCalculator struct {
	Rates    *rates.Registry
	Calendar WorkingDayCalendar
	Logger   Logger
}

// NewPayrollCalculator creates a calculator over the given rate registry
func NewPayrollCalculator(reg *rates.Registry) *PayrollCalculator {
	return &PayrollCalculator{
		Rates:    reg,
		Calendar: WeekdayCalendar{},
		Logger:   NopLogger{},
	}
}

// Calculate computes the gross-to-net result of one employee for one month.
// Structural input errors abort; incomplete data is defaulted and recorded in
// PeriodResult.Defaults.
func (pc *PayrollCalculator) Calculate(emp domain.EmployeeSnapshot, in domain.PeriodInput) (domain.PeriodResult, error) {
	if err := validateInputs(emp, in); err != nil {
		return domain.PeriodResult{}, err
	}
	rt, err := pc.Rates.Lookup(in.Year)
	if err != nil {
		return domain.PeriodResult{}, fmt.Errorf("calculate %s %04d-%02d: %w", emp.ID, in.Year, in.Month, err)
	}

	var defaults []domain.DefaultApplied
	record := func(field, value, reason string) {
		defaults = append(defaults, domain.DefaultApplied{Field: field, Value: value, Reason: reason})
		pc.logger().Warnf("employee %s %04d-%02d: %s defaulted to %s (%s)", emp.ID, in.Year, in.Month, field, value, reason)
	}

	contractType, defaulted := ResolveContractType(emp.ContractType)
	if defaulted {
		record("contract_type", string(contractType), "contract type not specified")
	}
	taxTable, defaulted := ResolveTaxTable(emp.TaxTable)
	if defaulted {
		record("tax_table", string(taxTable), "tax table not specified")
	}
	ref, _ := ResolveReferenceDate(in.ReferenceDate, in.Year, in.Month)
	if _, defaulted := ResolveAge(emp.BirthDate, ref); defaulted {
		reason := "date of birth unknown, adult minimum wage band assumed"
		if emp.BirthDate != nil && !emp.BirthDate.IsZero() {
			reason = fmt.Sprintf("date of birth %s lies after %s, adult minimum wage band assumed",
				emp.BirthDate.Format(dateutil.DateLayout), ref.Format(dateutil.DateLayout))
		}
		record("birth_date", fmt.Sprintf("age %d", DefaultAdultAge), reason)
	}

	start, defaulted := ResolveStartDate(emp.StartDate, in.Year)
	if defaulted {
		record("start_date", start.Format(dateutil.DateLayout), "employment start unknown, start of year assumed")
	}

	factor := ProRataFactor(start, emp.EndDate, in.Year, in.Month, pc.calendar())
	expectedHours := emp.MonthlyContractHours().Mul(factor)

	// Salaried gross does not depend on hours, so only hourly contracts record
	// the substitution. HoursDefaulted still reaches the working hours rule.
	hours, hoursDefaulted := ResolveHoursWorked(in.HoursWorked, expectedHours)
	if hoursDefaulted && contractType == domain.ContractHourly {
		record("hours_worked", money.Cents(hours).String(), "no timesheet, contract hours used")
	}

	var gross decimal.Decimal
	switch contractType {
	case domain.ContractHourly:
		gross = emp.HourlyRate.Mul(hours)
	default:
		gross = emp.MonthlySalary().Mul(factor)
	}

	annualized := gross.Mul(twelve)
	bracket := BracketTax(annualized, rt.Brackets)
	annualTax := bracket.Total
	annualCredit := decimal.Zero
	if taxTable == domain.TaxTableWithCredit {
		annualTax, annualCredit = ApplyTaxCredit(bracket.Total, annualized, rt.GeneralTaxCredit)
	}
	monthlyTax := annualTax.Div(twelve)

	employeeSS := roundBreakdown(EmployeeContributions(gross, emp.IsFullTime, rt.EmployeeContributions))
	employerSS := roundBreakdown(EmployerContributions(gross, emp.IsFullTime, rt.EmployerContributions))

	holidayRate, defaulted := ResolveHolidayAllowanceRate(emp.HolidayAllowanceRate, rt.HolidayAllowanceMinimumRate)
	if defaulted {
		record("holiday_allowance_rate", holidayRate.String(), "no contractual rate, statutory minimum used")
	}
	accrual := gross.Mul(holidayRate)

	vacationDays := decimal.Max(rt.StatutoryVacationDays(emp.ContractHoursPerWeek), emp.ContractualVacationDays).
		Div(twelve).Mul(factor)

	// Rounding happens here and only here.
	grossCents := money.Cents(gross)
	taxCents := money.Cents(monthlyTax)
	accrualCents := money.Cents(accrual)

	result := domain.PeriodResult{
		Key:                     domain.PeriodKey{EmployeeID: emp.ID, Year: in.Year, Month: in.Month},
		ContractType:            contractType,
		TaxTable:                taxTable,
		GrossSalary:             grossCents,
		AnnualizedGross:         money.Cents(annualized),
		BracketTax:              money.Cents(bracket.Total.Div(twelve)),
		TaxCredit:               money.Cents(annualCredit.Div(twelve)),
		TaxAmount:               taxCents,
		TaxBreakdown:            roundBrackets(bracket.Breakdown),
		SocialSecurity:          employeeSS,
		EmployerSocialSec:       employerSS,
		HolidayAllowanceRate:    holidayRate,
		HolidayAllowanceAccrual: accrualCents,
		VacationDaysAccrued:     vacationDays.Round(2),
		NetSalary:               grossCents.Sub(taxCents).Sub(employeeSS.Total),
		EmployerCost:            grossCents.Add(employerSS.Total).Add(accrualCents),
		ProRataFactor:           factor,
		HoursWorked:             hours.Round(2),
		ExpectedHours:           expectedHours.Round(2),
		HoursDefaulted:          hoursDefaulted,
		Defaults:                defaults,
	}

	pc.logger().Debugf("employee %s %04d-%02d: gross=%s tax=%s ss=%s net=%s factor=%s",
		emp.ID, in.Year, in.Month, result.GrossSalary, result.TaxAmount, result.SocialSecurity.Total, result.NetSalary, factor)

	return result, nil
}

func (pc *PayrollCalculator) logger() Logger {
	if pc.Logger == nil {
		return NopLogger{}
	}
	return pc.Logger
}

func (pc *PayrollCalculator) calendar() WorkingDayCalendar {
	if pc.Calendar == nil {
		return WeekdayCalendar{}
	}
	return pc.Calendar
}

// validateInputs enforces the hard preconditions of a calculation
func validateInputs(emp domain.EmployeeSnapshot, in domain.PeriodInput) error {
	if in.Month < 1 || in.Month > 12 {
		return fmt.Errorf("%w: month %d outside 1..12", ErrInvalidPeriod, in.Month)
	}
	if in.Year < 1 {
		return fmt.Errorf("%w: year %d", ErrInvalidPeriod, in.Year)
	}
	if !emp.ContractHoursPerWeek.IsPositive() {
		return fmt.Errorf("employee %s: %w (got %s)", emp.ID, ErrInvalidContractHours, emp.ContractHoursPerWeek)
	}
	switch emp.ContractType {
	case "", domain.ContractMonthly, domain.ContractHourly:
	default:
		return fmt.Errorf("employee %s: %w: unknown contract type %q", emp.ID, ErrInvalidContract, emp.ContractType)
	}
	switch emp.TaxTable {
	case "", domain.TaxTableWithCredit, domain.TaxTableWithoutCredit:
	default:
		return fmt.Errorf("employee %s: %w: unknown tax table %q", emp.ID, ErrInvalidContract, emp.TaxTable)
	}
	if emp.AnnualGrossSalary.IsNegative() {
		return fmt.Errorf("employee %s: %w: negative annual salary %s", emp.ID, ErrInvalidSalary, emp.AnnualGrossSalary)
	}
	if emp.HourlyRate.IsNegative() {
		return fmt.Errorf("employee %s: %w: negative hourly rate %s", emp.ID, ErrInvalidSalary, emp.HourlyRate)
	}
	if emp.HolidayAllowanceRate.IsNegative() {
		return fmt.Errorf("employee %s: %w: negative holiday allowance rate %s", emp.ID, ErrInvalidSalary, emp.HolidayAllowanceRate)
	}
	if in.HoursWorked != nil && in.HoursWorked.IsNegative() {
		return fmt.Errorf("employee %s: %w: negative hours worked %s", emp.ID, ErrInvalidSalary, *in.HoursWorked)
	}
	if emp.EndDate != nil && !emp.StartDate.IsZero() && emp.EndDate.Before(emp.StartDate) {
		return fmt.Errorf("employee %s: %w: %s < %s", emp.ID, ErrInvalidDateRange,
			emp.EndDate.Format(dateutil.DateLayout), emp.StartDate.Format(dateutil.DateLayout))
	}
	return nil
}

func roundBrackets(in []domain.BracketContribution) []domain.BracketContribution {
	out := make([]domain.BracketContribution, len(in))
	for i, b := range in {
		b.TaxableAmount = money.Cents(b.TaxableAmount)
		b.AnnualTax = money.Cents(b.AnnualTax)
		b.MonthlyTax = money.Cents(b.MonthlyTax)
		out[i] = b
	}
	return out
}
