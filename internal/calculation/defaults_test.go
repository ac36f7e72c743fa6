package calculation

import (
	"testing"
	"time"

	"github.com/glodinasflexwork/dutch-payroll-system-sub000/internal/domain"
	"github.com/glodinasflexwork/dutch-payroll-system-sub000/internal/rates"
	"github.com/glodinasflexwork/dutch-payroll-system-sub000/pkg/dateutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveAge(t *testing.T) {
	ref := dateutil.Date(2025, time.October, 31)

	tests := []struct {
		name          string
		birth         *time.Time
		wantAge       int
		wantDefaulted bool
	}{
		{"known birth date", datePtr(2007, time.September, 3), 18, false},
		{"birthday after reference", datePtr(2007, time.November, 3), 17, false},
		{"missing", nil, DefaultAdultAge, true},
		{"zero value", &time.Time{}, DefaultAdultAge, true},
		{"born after reference", datePtr(2026, time.January, 1), DefaultAdultAge, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			age, defaulted := ResolveAge(tt.birth, ref)
			assert.Equal(t, tt.wantAge, age)
			assert.Equal(t, tt.wantDefaulted, defaulted)
		})
	}
}

func TestResolveHolidayAllowanceRate(t *testing.T) {
	statutory := dec("0.0833")

	rate, defaulted := ResolveHolidayAllowanceRate(dec("0.08"), statutory)
	assert.False(t, defaulted)
	assert.True(t, rate.Equal(dec("0.08")))

	rate, defaulted = ResolveHolidayAllowanceRate(dec("0"), statutory)
	assert.True(t, defaulted)
	assert.True(t, rate.Equal(statutory))
}

func TestResolveHoursWorked(t *testing.T) {
	expected := dec("173.33")

	hours, defaulted := ResolveHoursWorked(nil, expected)
	assert.True(t, defaulted)
	assert.True(t, hours.Equal(expected))

	zero := dec("0")
	hours, defaulted = ResolveHoursWorked(&zero, expected)
	assert.False(t, defaulted, "an explicit zero is a timesheet, not a gap")
	assert.True(t, hours.IsZero())
}

func TestResolveReferenceDate(t *testing.T) {
	ref, defaulted := ResolveReferenceDate(time.Time{}, 2024, 2)
	assert.True(t, defaulted)
	assert.Equal(t, dateutil.Date(2024, time.February, 29), ref)

	ref, defaulted = ResolveReferenceDate(time.Date(2025, 3, 14, 16, 45, 0, 0, time.UTC), 2025, 3)
	assert.False(t, defaulted)
	assert.Equal(t, dateutil.Date(2025, time.March, 14), ref)
}

func TestResolveStartDate(t *testing.T) {
	start, defaulted := ResolveStartDate(time.Time{}, 2025)
	assert.True(t, defaulted)
	assert.Equal(t, dateutil.Date(2025, time.January, 1), start)

	start, defaulted = ResolveStartDate(dateutil.Date(2019, time.February, 1), 2025)
	assert.False(t, defaulted)
	assert.Equal(t, dateutil.Date(2019, time.February, 1), start)
}

func TestResolveContractAndTaxTable(t *testing.T) {
	ct, defaulted := ResolveContractType("")
	assert.True(t, defaulted)
	assert.Equal(t, domain.ContractMonthly, ct)

	ct, defaulted = ResolveContractType(domain.ContractHourly)
	assert.False(t, defaulted)
	assert.Equal(t, domain.ContractHourly, ct)

	tt, defaulted := ResolveTaxTable("")
	assert.True(t, defaulted)
	assert.Equal(t, domain.TaxTableWithCredit, tt)

	tt, defaulted = ResolveTaxTable(domain.TaxTableWithoutCredit)
	assert.False(t, defaulted)
	assert.Equal(t, domain.TaxTableWithoutCredit, tt)
}

func TestCalculateMissingStartDateIsDefaulted(t *testing.T) {
	calc := NewPayrollCalculator(rates.Builtin())
	emp := standardEmployee()
	emp.StartDate = time.Time{}

	result, err := calc.Calculate(emp, domain.PeriodInput{Year: 2025, Month: 3})
	require.NoError(t, err)
	assert.True(t, result.ProRataFactor.Equal(dec("1")))
	require.Len(t, result.Defaults, 1)
	assert.Equal(t, "start_date", result.Defaults[0].Field)
	assert.Equal(t, "2025-01-01", result.Defaults[0].Value)
}
