package calculation

import (
	"testing"
	"time"

	"github.com/glodinasflexwork/dutch-payroll-system-sub000/internal/domain"
	"github.com/glodinasflexwork/dutch-payroll-system-sub000/pkg/dateutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFullYearCalculation runs December reports for complete employment histories
func TestFullYearCalculation(t *testing.T) {
	engine := NewCalculationEngine()

	t.Run("Salaried employee, full year", func(t *testing.T) {
		report, err := engine.RecomputeYear(standardEmployee(), 2025, 12, nil, time.Time{})
		require.NoError(t, err)

		c := report.Cumulative
		assert.Equal(t, "42000.00", c.GrossSalary.StringFixed(2))
		assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, c.Months)
		assert.Empty(t, c.MissingMonths())
		assert.Equal(t, 264, c.WorkingDays)
		assert.Equal(t, "2112", c.StandardHours.String())
		assertLedgerBalances(t, report)

		// June..December stay reserved for next year's payout
		december := report.HolidaySchedule[11]
		assert.Equal(t, "1960.00", december.Balance.StringFixed(2))
	})

	t.Run("Mid-year starter", func(t *testing.T) {
		emp := standardEmployee()
		emp.StartDate = dateutil.Date(2025, time.August, 11)

		report, err := engine.RecomputeYear(emp, 2025, 12, nil, time.Time{})
		require.NoError(t, err)

		// August is 15 of 21 working days, then four full months
		assert.Equal(t, "16500.00", report.Cumulative.GrossSalary.StringFixed(2))
		may := report.HolidaySchedule[PayoutMonth-1]
		assert.True(t, may.Payout.IsZero())
		assertLedgerBalances(t, report)
	})

	t.Run("Leaver settles in the termination month", func(t *testing.T) {
		emp := standardEmployee()
		emp.EndDate = datePtr(2025, time.March, 31)

		report, err := engine.RecomputeYear(emp, 2025, 12, nil, time.Time{})
		require.NoError(t, err)

		assert.Equal(t, "10500.00", report.Cumulative.GrossSalary.StringFixed(2))
		march := report.HolidaySchedule[2]
		assert.True(t, march.IsPayoutMonth)
		assert.Equal(t, "840.00", march.Payout.StringFixed(2))
		for _, e := range report.HolidaySchedule[3:] {
			assert.False(t, e.IsPayoutMonth, "month %d", e.Month)
			assert.True(t, e.Balance.IsZero(), "month %d", e.Month)
		}
		assertLedgerBalances(t, report)

		mw, ok := report.Verdict(domain.RuleMinimumWage)
		require.True(t, ok)
		assert.True(t, mw.IsCompliant)
		assert.Contains(t, mw.Message, "Not employed")
	})

	t.Run("Hourly youth with timesheets", func(t *testing.T) {
		hours := map[int]decimal.Decimal{}
		for m := 1; m <= 12; m++ {
			hours[m] = dec("80")
		}
		report, err := engine.RecomputeYear(hourlyEmployee(), 2025, 12, hours, time.Time{})
		require.NoError(t, err)

		assert.Equal(t, "14880.00", report.Cumulative.GrossSalary.StringFixed(2))
		assert.Equal(t, "960.00", report.Cumulative.HoursWorked.StringFixed(2))
		assertLedgerBalances(t, report)
	})
}

// TestCumulativeMatchesRecomputation checks that the report for month m
// aggregates exactly the months a fresh recomputation produces.
func TestCumulativeMatchesRecomputation(t *testing.T) {
	engine := NewCalculationEngine()
	emp := standardEmployee()
	emp.StartDate = dateutil.Date(2025, time.February, 17)

	for m := 1; m <= 12; m++ {
		report, err := engine.RecomputeYear(emp, 2025, m, nil, time.Time{})
		require.NoError(t, err)

		periods, err := engine.PriorPeriods(emp, 2025, m+1, nil)
		require.NoError(t, err)
		want, err := Aggregate(emp.ID, 2025, periods)
		require.NoError(t, err)

		assert.Equal(t, want, report.Cumulative, "month %d", m)
	}
}

func TestErrorConditions(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(emp *domain.EmployeeSnapshot, in *domain.PeriodInput)
		want   error
	}{
		{"no rate table", func(_ *domain.EmployeeSnapshot, in *domain.PeriodInput) { in.Year = 2019 }, ErrRateTableMissing},
		{"zero contract hours", func(emp *domain.EmployeeSnapshot, _ *domain.PeriodInput) { emp.ContractHoursPerWeek = decimal.Zero }, ErrInvalidContractHours},
		{"end before start", func(emp *domain.EmployeeSnapshot, _ *domain.PeriodInput) { emp.EndDate = datePtr(2019, time.December, 31) }, ErrInvalidDateRange},
		{"month zero", func(_ *domain.EmployeeSnapshot, in *domain.PeriodInput) { in.Month = 0 }, ErrInvalidPeriod},
		{"negative salary", func(emp *domain.EmployeeSnapshot, _ *domain.PeriodInput) { emp.AnnualGrossSalary = dec("-1") }, ErrInvalidSalary},
	}

	engine := NewCalculationEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emp := standardEmployee()
			in := domain.PeriodInput{Year: 2025, Month: 6}
			tt.mutate(&emp, &in)

			report, err := engine.ProcessPeriod(emp, nil, in)
			require.Error(t, err)
			assert.Nil(t, report)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

// assertLedgerBalances checks that every euro accrued is either paid out or
// still reserved at year end.
func assertLedgerBalances(t *testing.T, report *domain.PayrollReport) {
	t.Helper()
	require.Len(t, report.HolidaySchedule, 12)
	accrued, paid := decimal.Zero, decimal.Zero
	for _, e := range report.HolidaySchedule {
		accrued = accrued.Add(e.Accrual)
		paid = paid.Add(e.Payout)
	}
	final := report.HolidaySchedule[11].Balance
	assert.True(t, accrued.Equal(paid.Add(final)), "accrued %s, paid %s, reserved %s", accrued, paid, final)
}
