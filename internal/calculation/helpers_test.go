package calculation

import (
	"time"

	"github.com/glodinasflexwork/dutch-payroll-system-sub000/internal/domain"
	"github.com/glodinasflexwork/dutch-payroll-system-sub000/internal/rates"
	"github.com/glodinasflexwork/dutch-payroll-system-sub000/pkg/dateutil"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := dateutil.Date(y, m, d)
	return &t
}

func table2025() domain.RateTable {
	return rates.Table2025()
}

// standardEmployee is 33 in October 2025, earns 3500 a month on a 40 hour week
func standardEmployee() domain.EmployeeSnapshot {
	return domain.EmployeeSnapshot{
		ID:                   "emp-001",
		Name:                 "Sanne de Vries",
		BirthDate:            datePtr(1992, time.March, 14),
		ContractType:         domain.ContractMonthly,
		ContractHoursPerWeek: dec("40"),
		AnnualGrossSalary:    dec("42000"),
		TaxTable:             domain.TaxTableWithCredit,
		IsFullTime:           true,
		StartDate:            dateutil.Date(2020, time.January, 1),
		HolidayAllowanceRate: dec("0.08"),
	}
}

func hourlyEmployee() domain.EmployeeSnapshot {
	return domain.EmployeeSnapshot{
		ID:                   "emp-002",
		Name:                 "Daan Jansen",
		BirthDate:            datePtr(2006, time.June, 1),
		ContractType:         domain.ContractHourly,
		ContractHoursPerWeek: dec("24"),
		HourlyRate:           dec("15.50"),
		TaxTable:             domain.TaxTableWithoutCredit,
		StartDate:            dateutil.Date(2024, time.September, 1),
	}
}

// recordingLogger captures warnings for assertions
type recordingLogger struct {
	NopLogger
	warnings []string
}

func (r *recordingLogger) Warnf(format string, args ...any) {
	r.warnings = append(r.warnings, format)
}
