package calculation

import (
	"time"

	"github.com/glodinasflexwork/dutch-payroll-system-sub000/internal/domain"
	"github.com/glodinasflexwork/dutch-payroll-system-sub000/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// DEFAULTING POLICY:
//
// Payroll must produce a number even with incomplete employee data. Every
// substitution goes through one of the Resolve functions below, each of which
// reports whether it substituted. Callers record a domain.DefaultApplied and
// log it; nothing in this file logs.

// DefaultAdultAge is assumed when the date of birth is unknown or implausible.
// It selects the adult minimum wage band.
const DefaultAdultAge = 21

// ResolveAge returns the age at ref, or DefaultAdultAge when birthDate is
// missing or lies after ref.
func ResolveAge(birthDate *time.Time, ref time.Time) (int, bool) {
	if birthDate == nil || birthDate.IsZero() || birthDate.After(ref) {
		return DefaultAdultAge, true
	}
	return dateutil.Age(*birthDate, ref), false
}

// ResolveHolidayAllowanceRate returns the contractual rate, or the statutory
// minimum when no rate was specified (zero).
func ResolveHolidayAllowanceRate(rate, statutory decimal.Decimal) (decimal.Decimal, bool) {
	if rate.IsZero() {
		return statutory, true
	}
	return rate, false
}

// ResolveHoursWorked returns the timesheet override, or the expected hours
// derived from the contract when no override was supplied.
func ResolveHoursWorked(override *decimal.Decimal, expected decimal.Decimal) (decimal.Decimal, bool) {
	if override == nil {
		return expected, true
	}
	return *override, false
}

// ResolveReferenceDate returns ref, or the last day of the period when ref is zero.
func ResolveReferenceDate(ref time.Time, year, month int) (time.Time, bool) {
	if ref.IsZero() {
		return dateutil.EndOfMonth(year, time.Month(month)), true
	}
	return dateutil.TruncateToDay(ref), false
}

// ResolveStartDate returns start, or January 1st of year when start is zero.
func ResolveStartDate(start time.Time, year int) (time.Time, bool) {
	if start.IsZero() {
		return dateutil.Date(year, time.January, 1), true
	}
	return dateutil.TruncateToDay(start), false
}

// ResolveContractType treats an empty contract type as a monthly salary.
func ResolveContractType(ct domain.ContractType) (domain.ContractType, bool) {
	if ct == "" {
		return domain.ContractMonthly, true
	}
	return ct, false
}

// ResolveTaxTable treats an empty selection as the table with the general tax credit.
func ResolveTaxTable(tt domain.TaxTable) (domain.TaxTable, bool) {
	if tt == "" {
		return domain.TaxTableWithCredit, true
	}
	return tt, false
}
