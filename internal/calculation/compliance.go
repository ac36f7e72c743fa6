package calculation

import (
	"fmt"
	"time"

	"github.com/glodinasflexwork/dutch-payroll-system-sub000/internal/domain"
	money "github.com/glodinasflexwork/dutch-payroll-system-sub000/pkg/decimal"
	"github.com/shopspring/decimal"
)

// COMPLIANCE RULES:
//
// Each check is a pure function over a narrow input and never fails. Missing
// or defaulted input still yields a verdict, marked Degraded so a human can
// review it. Verdicts are advisory; they never block a payroll run.

// WorkingHoursTolerance is the relative deviation from expected hours that is
// still considered compliant.
var WorkingHoursTolerance = decimal.NewFromFloat(0.10)

// MinimumWageInput is what the minimum wage rule needs
type MinimumWageInput struct {
	BirthDate            *time.Time
	ReferenceDate        time.Time
	ContractHoursPerWeek decimal.Decimal
	GrossSalary          decimal.Decimal
	ProRataFactor        decimal.Decimal
	Table                domain.MinimumWageTable
}

// CheckMinimumWage compares period gross against the statutory monthly minimum
// for the employee's age band, pro-rated for partial months. The boundary is
// inclusive: a gross exactly at the minimum is compliant.
func CheckMinimumWage(in MinimumWageInput) domain.ComplianceVerdict {
	v := domain.ComplianceVerdict{RuleID: domain.RuleMinimumWage}

	if in.ProRataFactor.IsZero() {
		v.IsCompliant = true
		v.Message = "Not employed during this period; minimum wage does not apply"
		return v
	}

	age, defaulted := ResolveAge(in.BirthDate, in.ReferenceDate)
	band, exact := in.Table.BandForAge(age)
	v.Degraded = defaulted || !exact

	minimum := money.Cents(in.Table.MonthlyAmount(band, in.ContractHoursPerWeek).Mul(in.ProRataFactor))
	gross := money.Cents(in.GrossSalary)
	diff := money.NewMoneyFromDecimal(gross.Sub(minimum))

	v.IsCompliant = gross.GreaterThanOrEqual(minimum)
	verb := "meets"
	if !v.IsCompliant {
		verb = "is below"
	}
	v.Message = fmt.Sprintf("Gross %s %s the statutory minimum of %s for age %d (%s)",
		money.NewMoneyFromDecimal(gross).Format(), verb, money.NewMoneyFromDecimal(minimum).Format(), age, diff.FormatSigned())
	if defaulted {
		v.Message += fmt.Sprintf("; date of birth unknown, adult band (age %d) assumed", DefaultAdultAge)
	} else if !exact {
		v.Message += fmt.Sprintf("; age %d is below the youngest band, %d-year-old rate applied", age, band.MinAge)
	}
	return v
}

// WorkingHoursInput is what the working hours rule needs. ExpectedHours is
// already pro-rated; WorkingDays is the number of working days employed in the period.
type WorkingHoursInput struct {
	ActualHours    decimal.Decimal
	ExpectedHours  decimal.Decimal
	WorkingDays    int
	MaxWeeklyHours decimal.Decimal
	Defaulted      bool
}

// CheckWorkingHours flags hours that deviate from the expected baseline by more
// than WorkingHoursTolerance, or that exceed the statutory weekly maximum on average.
func CheckWorkingHours(in WorkingHoursInput) domain.ComplianceVerdict {
	v := domain.ComplianceVerdict{RuleID: domain.RuleWorkingHours, Degraded: in.Defaulted}
	actual := in.ActualHours.Round(2)
	expected := in.ExpectedHours.Round(2)

	if expected.IsZero() {
		v.IsCompliant = actual.IsZero()
		if v.IsCompliant {
			v.Message = "No hours expected and none worked"
		} else {
			v.Message = fmt.Sprintf("%s hours worked while no hours were expected in this period", actual.StringFixed(2))
		}
		return v
	}

	if in.WorkingDays > 0 && in.MaxWeeklyHours.IsPositive() {
		weeks := decimal.NewFromInt(int64(in.WorkingDays)).Div(decimal.NewFromInt(5))
		weekly := actual.Div(weeks)
		if weekly.GreaterThan(in.MaxWeeklyHours) {
			v.Message = fmt.Sprintf("Average of %s hours per week exceeds the statutory maximum of %s",
				weekly.StringFixed(1), in.MaxWeeklyHours.StringFixed(0))
			return v
		}
	}

	deviation := actual.Sub(expected)
	allowed := expected.Mul(WorkingHoursTolerance)
	v.IsCompliant = deviation.Abs().LessThanOrEqual(allowed)

	pct := deviation.Div(expected).Mul(decimal.NewFromInt(100))
	switch {
	case v.IsCompliant:
		v.Message = fmt.Sprintf("%s hours worked against %s expected (%s%%), within the %s%% tolerance",
			actual.StringFixed(2), expected.StringFixed(2), signedFixed(pct, 1), WorkingHoursTolerance.Mul(decimal.NewFromInt(100)).StringFixed(0))
	case deviation.IsPositive():
		v.Message = fmt.Sprintf("Overtime: %s hours worked against %s expected (%s%%)",
			actual.StringFixed(2), expected.StringFixed(2), signedFixed(pct, 1))
	default:
		v.Message = fmt.Sprintf("Undertime: %s hours worked against %s expected (%s%%)",
			actual.StringFixed(2), expected.StringFixed(2), signedFixed(pct, 1))
	}
	if in.Defaulted {
		v.Message += "; no timesheet supplied, contract hours assumed"
	}
	return v
}

// HolidayAllowanceInput is what the holiday allowance rule needs
type HolidayAllowanceInput struct {
	Rate             decimal.Decimal
	StatutoryMinimum decimal.Decimal
	Defaulted        bool
}

// CheckHolidayAllowance requires the accrual rate to reach the statutory
// floor, regardless of the amount accrued.
func CheckHolidayAllowance(in HolidayAllowanceInput) domain.ComplianceVerdict {
	v := domain.ComplianceVerdict{
		RuleID:      domain.RuleHolidayAllowance,
		IsCompliant: in.Rate.GreaterThanOrEqual(in.StatutoryMinimum),
		Degraded:    in.Defaulted,
	}
	rate := percent(in.Rate)
	floor := percent(in.StatutoryMinimum)
	if v.IsCompliant {
		v.Message = fmt.Sprintf("Holiday allowance rate %s%% meets the statutory minimum of %s%%; paid out in %s",
			rate, floor, time.Month(PayoutMonth))
	} else {
		v.Message = fmt.Sprintf("Holiday allowance rate %s%% is below the statutory minimum of %s%%", rate, floor)
	}
	if in.Defaulted {
		v.Message += "; no contractual rate on file, statutory minimum assumed"
	}
	return v
}

// VacationBalanceInput is what the vacation balance rule needs. MonthlyAccrual
// is the full-month entitlement in days.
type VacationBalanceInput struct {
	MonthlyAccrual decimal.Decimal
	StartDate      time.Time
	EndDate        *time.Time
	Year           int
	ThroughMonth   int
	Used           decimal.Decimal
	Calendar       WorkingDayCalendar
}

// EarnedVacationDays sums the pro-rated monthly accrual from January through
// ThroughMonth. Months before the start date or after the end date earn nothing.
func EarnedVacationDays(in VacationBalanceInput) decimal.Decimal {
	earned := decimal.Zero
	for m := 1; m <= in.ThroughMonth && m <= 12; m++ {
		factor := ProRataFactor(in.StartDate, in.EndDate, in.Year, m, in.Calendar)
		earned = earned.Add(in.MonthlyAccrual.Mul(factor))
	}
	return earned
}

// CheckVacationBalance flags a negative remaining vacation balance
func CheckVacationBalance(in VacationBalanceInput) domain.ComplianceVerdict {
	earned := EarnedVacationDays(in).Round(2)
	used := in.Used.Round(2)
	remaining := earned.Sub(used)

	v := domain.ComplianceVerdict{
		RuleID:      domain.RuleVacationBalance,
		IsCompliant: !remaining.IsNegative(),
	}
	if v.IsCompliant {
		v.Message = fmt.Sprintf("%s vacation days remaining (%s earned through %s, %s used)",
			remaining.StringFixed(2), earned.StringFixed(2), monthName(in.ThroughMonth), used.StringFixed(2))
	} else {
		v.Message = fmt.Sprintf("Vacation balance is negative: %s days used but only %s earned through %s (%s)",
			used.StringFixed(2), earned.StringFixed(2), monthName(in.ThroughMonth), signedFixed(remaining, 2))
	}
	return v
}

// ComplianceInput bundles everything RunComplianceChecks slices into the
// individual rule inputs.
type ComplianceInput struct {
	Employee      domain.EmployeeSnapshot
	Period        domain.PeriodResult
	Cumulative    domain.CumulativeResult
	Table         domain.RateTable
	ReferenceDate time.Time
	Calendar      WorkingDayCalendar
}

// RunComplianceChecks evaluates every rule in domain.AllRules order
func RunComplianceChecks(in ComplianceInput) []domain.ComplianceVerdict {
	cal := in.Calendar
	if cal == nil {
		cal = WeekdayCalendar{}
	}
	key := in.Period.Key
	workedDays, _ := EmployedWorkingDays(in.Employee.StartDate, in.Employee.EndDate, key.Year, key.Month, cal)

	holidayRate, holidayDefaulted := ResolveHolidayAllowanceRate(in.Employee.HolidayAllowanceRate, in.Table.HolidayAllowanceMinimumRate)
	monthlyVacation := decimal.Max(in.Table.StatutoryVacationDays(in.Employee.ContractHoursPerWeek), in.Employee.ContractualVacationDays).
		Div(twelve)

	through := in.Cumulative.ThroughMonth
	if through < key.Month {
		through = key.Month
	}

	return []domain.ComplianceVerdict{
		CheckMinimumWage(MinimumWageInput{
			BirthDate:            in.Employee.BirthDate,
			ReferenceDate:        in.ReferenceDate,
			ContractHoursPerWeek: in.Employee.ContractHoursPerWeek,
			GrossSalary:          in.Period.GrossSalary,
			ProRataFactor:        in.Period.ProRataFactor,
			Table:                in.Table.MinimumWage,
		}),
		CheckWorkingHours(WorkingHoursInput{
			ActualHours:    in.Period.HoursWorked,
			ExpectedHours:  in.Period.ExpectedHours,
			WorkingDays:    workedDays,
			MaxWeeklyHours: in.Table.MaxWeeklyHours,
			Defaulted:      in.Period.HoursDefaulted,
		}),
		CheckHolidayAllowance(HolidayAllowanceInput{
			Rate:             holidayRate,
			StatutoryMinimum: in.Table.HolidayAllowanceMinimumRate,
			Defaulted:        holidayDefaulted,
		}),
		CheckVacationBalance(VacationBalanceInput{
			MonthlyAccrual: monthlyVacation,
			StartDate:      in.Employee.StartDate,
			EndDate:        in.Employee.EndDate,
			Year:           key.Year,
			ThroughMonth:   through,
			Used:           in.Employee.VacationDaysUsed,
			Calendar:       cal,
		}),
	}
}

func percent(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).StringFixed(2)
}

func signedFixed(d decimal.Decimal, places int32) string {
	if d.IsNegative() {
		return d.StringFixed(places)
	}
	return "+" + d.StringFixed(places)
}

func monthName(m int) string {
	if m < 1 || m > 12 {
		return fmt.Sprintf("month %d", m)
	}
	return time.Month(m).String()
}
