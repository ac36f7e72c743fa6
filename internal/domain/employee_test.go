package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestEmployeeSnapshot_MonthlyFigures(t *testing.T) {
	emp := &EmployeeSnapshot{
		ContractType:         ContractMonthly,
		AnnualGrossSalary:    d("42000"),
		ContractHoursPerWeek: d("36"),
	}

	assert.True(t, emp.MonthlySalary().Equal(d("3500")))
	assert.True(t, emp.MonthlyContractHours().Equal(d("156")), "36 x 52 / 12")
}

func TestPeriodKeyString(t *testing.T) {
	assert.Equal(t, "emp-7/2025-03", PeriodKey{EmployeeID: "emp-7", Year: 2025, Month: 3}.String())
}

func TestCumulativeResult_MissingMonths(t *testing.T) {
	var empty CumulativeResult
	assert.True(t, empty.IsEmpty())
	assert.Empty(t, empty.MissingMonths())

	c := CumulativeResult{Months: []int{1, 2, 5}, ThroughMonth: 6}
	assert.False(t, c.IsEmpty())
	assert.Equal(t, []int{3, 4, 6}, c.MissingMonths())
}

func TestContributionBreakdownLine(t *testing.T) {
	b := ContributionBreakdown{Lines: []ContributionLine{
		{Name: "aow", Amount: d("10")},
		{Name: "wlz", Amount: d("2")},
	}}

	line, ok := b.Line("wlz")
	require.True(t, ok)
	assert.True(t, line.Amount.Equal(d("2")))

	_, ok = b.Line("ww")
	assert.False(t, ok)
}

func TestMinimumWageTable(t *testing.T) {
	table := MinimumWageTable{
		WeeksPerYear: d("52"),
		Bands: []MinimumWageBand{
			{MinAge: 21, HourlyRate: d("14.06")},
			{MinAge: 18, MaxAge: 18, HourlyRate: d("7.03")},
			{MinAge: 15, MaxAge: 15, HourlyRate: d("4.22")},
		},
	}

	band, ok := table.BandForAge(40)
	require.True(t, ok)
	assert.True(t, band.HourlyRate.Equal(d("14.06")))

	band, ok = table.BandForAge(18)
	require.True(t, ok)
	assert.Equal(t, 18, band.MinAge)

	// below the youngest band: youngest band, not an exact match
	band, ok = table.BandForAge(14)
	assert.False(t, ok)
	assert.Equal(t, 15, band.MinAge)

	monthly := table.MonthlyAmount(MinimumWageBand{HourlyRate: d("14.06")}, d("40"))
	assert.Equal(t, "2437.07", monthly.StringFixed(2))

	_, ok = MinimumWageTable{}.BandForAge(30)
	assert.False(t, ok)
}

func TestRateTableHelpers(t *testing.T) {
	high := d("38441")
	assert.False(t, TaxBracket{High: &high}.IsUnbounded())
	assert.True(t, TaxBracket{}.IsUnbounded())

	assert.True(t, Contribution{AnnualCeiling: d("60000")}.MonthlyCeiling().Equal(d("5000")))

	rt := RateTable{StatutoryVacationWeeks: d("4"), StandardWeekHours: d("40")}
	assert.True(t, rt.StatutoryVacationDays(d("40")).Equal(d("20")))
	assert.True(t, rt.StatutoryVacationDays(d("24")).Equal(d("12")))
	assert.True(t, RateTable{}.StatutoryVacationDays(d("40")).IsZero())
}

func TestPayrollReportVerdicts(t *testing.T) {
	r := &PayrollReport{Verdicts: []ComplianceVerdict{
		{RuleID: RuleMinimumWage, IsCompliant: true},
		{RuleID: RuleWorkingHours, IsCompliant: false, Message: "too many hours"},
	}}
	assert.False(t, r.IsCompliant())

	v, ok := r.Verdict(RuleWorkingHours)
	require.True(t, ok)
	assert.Equal(t, "too many hours", v.Message)

	_, ok = r.Verdict(RuleVacationBalance)
	assert.False(t, ok)

	r.Verdicts[1].IsCompliant = true
	assert.True(t, r.IsCompliant())
}
