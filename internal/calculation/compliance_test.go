package calculation

import (
	"testing"
	"time"

	"github.com/glodinasflexwork/dutch-payroll-system-sub000/internal/domain"
	"github.com/glodinasflexwork/dutch-payroll-system-sub000/internal/rates"
	"github.com/glodinasflexwork/dutch-payroll-system-sub000/pkg/dateutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func minimumWageInput(gross string, birth *time.Time) MinimumWageInput {
	return MinimumWageInput{
		BirthDate:            birth,
		ReferenceDate:        dateutil.Date(2025, 10, 31),
		ContractHoursPerWeek: dec("40"),
		GrossSalary:          dec(gross),
		ProRataFactor:        decimal.NewFromInt(1),
		Table:                table2025().MinimumWage,
	}
}

func TestInvariant_MinimumWageBoundaryIsInclusive(t *testing.T) {
	// Property: a gross exactly at the statutory minimum is compliant.
	mw := table2025().MinimumWage
	adult, _ := mw.BandForAge(33)
	minimum := mw.MonthlyAmount(adult, dec("40")).Round(2)
	require.Equal(t, "2437.07", minimum.StringFixed(2))

	at := CheckMinimumWage(minimumWageInput(minimum.String(), datePtr(1992, 3, 14)))
	assert.True(t, at.IsCompliant)
	assert.Contains(t, at.Message, "+€ 0,00")

	below := CheckMinimumWage(minimumWageInput(minimum.Sub(dec("0.01")).String(), datePtr(1992, 3, 14)))
	assert.False(t, below.IsCompliant)
	assert.Contains(t, below.Message, "-€ 0,01")
	assert.Equal(t, domain.RuleMinimumWage, below.RuleID)
}

func TestCheckMinimumWage(t *testing.T) {
	tests := []struct {
		name      string
		gross     string
		birth     *time.Time
		factor    string
		compliant bool
		degraded  bool
		contains  string
	}{
		{"Adult well above minimum", "3500", datePtr(1992, 3, 14), "1", true, false, "+€ 1.062,93"},
		{"Eighteen year old at youth rate", "1300", datePtr(2007, 5, 1), "1", true, false, "age 18"},
		{"Eighteen year old below youth rate", "1200", datePtr(2007, 5, 1), "1", false, false, "-€ 18,53"},
		{"Unknown birth date assumes adult", "2000", nil, "1", false, true, "adult band"},
		{"Birth date after reference assumes adult", "3000", datePtr(2030, 1, 1), "1", true, true, "adult band"},
		{"Younger than youngest band", "800", datePtr(2011, 1, 1), "1", true, true, "below the youngest band"},
		{"Half month pro-rates minimum", "1218.53", datePtr(1992, 3, 14), "0.5", true, false, "€ 1.218,53"},
		{"Not employed", "0", datePtr(1992, 3, 14), "0", true, false, "Not employed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := minimumWageInput(tt.gross, tt.birth)
			in.ProRataFactor = dec(tt.factor)
			v := CheckMinimumWage(in)
			assert.Equal(t, tt.compliant, v.IsCompliant, v.Message)
			assert.Equal(t, tt.degraded, v.Degraded, v.Message)
			assert.Contains(t, v.Message, tt.contains)
		})
	}
}

func TestCheckWorkingHours(t *testing.T) {
	tests := []struct {
		name      string
		actual    string
		expected  string
		days      int
		compliant bool
		contains  string
	}{
		{"On contract", "173.33", "173.33", 23, true, "within the 10% tolerance"},
		{"Inside tolerance above", "190", "173.33", 23, true, "+9.6%"},
		{"Overtime beyond tolerance", "191", "173.33", 23, false, "Overtime"},
		{"Undertime beyond tolerance", "150", "173.33", 23, false, "Undertime"},
		{"Exceeds weekly maximum", "280", "270", 23, false, "statutory maximum of 60"},
		{"Nothing expected nothing worked", "0", "0", 0, true, "No hours expected"},
		{"Worked while not expected", "5", "0", 0, false, "no hours were expected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := CheckWorkingHours(WorkingHoursInput{
				ActualHours:    dec(tt.actual),
				ExpectedHours:  dec(tt.expected),
				WorkingDays:    tt.days,
				MaxWeeklyHours: dec("60"),
			})
			assert.Equal(t, domain.RuleWorkingHours, v.RuleID)
			assert.Equal(t, tt.compliant, v.IsCompliant, v.Message)
			assert.Contains(t, v.Message, tt.contains)
		})
	}
}

func TestCheckHolidayAllowance(t *testing.T) {
	floor := dec("0.0833")

	below := CheckHolidayAllowance(HolidayAllowanceInput{Rate: dec("0.08"), StatutoryMinimum: floor})
	assert.False(t, below.IsCompliant)
	assert.Contains(t, below.Message, "8.00% is below the statutory minimum of 8.33%")

	at := CheckHolidayAllowance(HolidayAllowanceInput{Rate: floor, StatutoryMinimum: floor})
	assert.True(t, at.IsCompliant)
	assert.Contains(t, at.Message, "May")

	defaulted := CheckHolidayAllowance(HolidayAllowanceInput{Rate: floor, StatutoryMinimum: floor, Defaulted: true})
	assert.True(t, defaulted.IsCompliant)
	assert.True(t, defaulted.Degraded)
}

func TestCheckVacationBalance(t *testing.T) {
	monthly := dec("20").Div(dec("12"))
	base := VacationBalanceInput{
		MonthlyAccrual: monthly,
		StartDate:      dateutil.Date(2020, 1, 1),
		Year:           2025,
		ThroughMonth:   10,
	}

	base.Used = dec("10")
	ok := CheckVacationBalance(base)
	assert.True(t, ok.IsCompliant)
	assert.Contains(t, ok.Message, "6.67 vacation days remaining (16.67 earned through October")

	base.Used = dec("18")
	negative := CheckVacationBalance(base)
	assert.False(t, negative.IsCompliant)
	assert.Contains(t, negative.Message, "(-1.33)")

	// partial-year start only earns from August 11
	partial := base
	partial.StartDate = dateutil.Date(2025, 8, 11)
	assert.Equal(t, "4.52", EarnedVacationDays(partial).StringFixed(2))
}

func TestRunComplianceChecksStandardScenario(t *testing.T) {
	emp := standardEmployee()
	calc := NewPayrollCalculator(rates.Builtin())
	period, err := calc.Calculate(emp, domain.PeriodInput{Year: 2025, Month: 10})
	require.NoError(t, err)

	verdicts := RunComplianceChecks(ComplianceInput{
		Employee:      emp,
		Period:        period,
		Cumulative:    domain.CumulativeResult{ThroughMonth: 10},
		Table:         table2025(),
		ReferenceDate: dateutil.Date(2025, 10, 31),
	})

	require.Len(t, verdicts, len(domain.AllRules))
	for i, id := range domain.AllRules {
		assert.Equal(t, id, verdicts[i].RuleID)
	}

	assert.True(t, verdicts[0].IsCompliant, verdicts[0].Message)
	assert.Contains(t, verdicts[0].Message, "age 33")
	assert.True(t, verdicts[1].IsCompliant, verdicts[1].Message)
	assert.False(t, verdicts[2].IsCompliant, "8% contract is below the 8.33% floor")
	assert.True(t, verdicts[3].IsCompliant, verdicts[3].Message)
}

func TestRunComplianceChecksWithoutTimesheetIsDegraded(t *testing.T) {
	engine := NewCalculationEngine()

	report, err := engine.ProcessPeriod(standardEmployee(), nil, domain.PeriodInput{Year: 2025, Month: 10})
	require.NoError(t, err)
	v, ok := report.Verdict(domain.RuleWorkingHours)
	require.True(t, ok)
	assert.True(t, v.IsCompliant, v.Message)
	assert.True(t, v.Degraded)
	assert.Contains(t, v.Message, "no timesheet supplied, contract hours assumed")

	hours := dec("173.33")
	report, err = engine.ProcessPeriod(standardEmployee(), nil, domain.PeriodInput{Year: 2025, Month: 10, HoursWorked: &hours})
	require.NoError(t, err)
	v, _ = report.Verdict(domain.RuleWorkingHours)
	assert.True(t, v.IsCompliant, v.Message)
	assert.False(t, v.Degraded)
}
