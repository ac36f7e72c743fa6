package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ContractType distinguishes salaried from hourly-paid employees
type ContractType string

const (
	ContractMonthly ContractType = "monthly"
	ContractHourly  ContractType = "hourly"
)

// TaxTable selects the wage tax regime applied to an employee
type TaxTable string

const (
	// TaxTableWithCredit applies the general tax credit (loonheffingskorting)
	TaxTableWithCredit TaxTable = "with_credit"
	// TaxTableWithoutCredit applies the brackets only
	TaxTableWithoutCredit TaxTable = "without_credit"
)

// EmployeeSnapshot is the immutable view of an employee the engine calculates
// against. It is owned by the caller and never modified by the engine.
type EmployeeSnapshot struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`

	// BirthDate may be unknown; the engine then assumes the adult minimum wage band.
	BirthDate *time.Time `yaml:"birth_date,omitempty" json:"birth_date,omitempty"`

	ContractType         ContractType    `yaml:"contract_type" json:"contract_type"`
	ContractHoursPerWeek decimal.Decimal `yaml:"contract_hours_per_week" json:"contract_hours_per_week"`
	AnnualGrossSalary    decimal.Decimal `yaml:"annual_gross_salary" json:"annual_gross_salary"` // monthly contracts
	HourlyRate           decimal.Decimal `yaml:"hourly_rate" json:"hourly_rate"`                 // hourly contracts
	TaxTable             TaxTable        `yaml:"tax_table" json:"tax_table"`
	IsFullTime           bool            `yaml:"is_full_time" json:"is_full_time"`

	StartDate time.Time  `yaml:"start_date" json:"start_date"`
	EndDate   *time.Time `yaml:"end_date,omitempty" json:"end_date,omitempty"`

	// HolidayAllowanceRate is the contractual rate as a fraction (0.08 = 8%).
	// Zero means "not specified" and resolves to the statutory minimum.
	HolidayAllowanceRate decimal.Decimal `yaml:"holiday_allowance_rate" json:"holiday_allowance_rate"`

	VacationDaysUsed        decimal.Decimal `yaml:"vacation_days_used" json:"vacation_days_used"`
	ContractualVacationDays decimal.Decimal `yaml:"contractual_vacation_days" json:"contractual_vacation_days"`
}

// MonthlySalary returns the contractual monthly salary for salaried employees
func (e *EmployeeSnapshot) MonthlySalary() decimal.Decimal {
	return e.AnnualGrossSalary.Div(decimal.NewFromInt(12))
}

// MonthlyContractHours converts the weekly contract to an average month
// (weekly x 52 / 12).
func (e *EmployeeSnapshot) MonthlyContractHours() decimal.Decimal {
	return e.ContractHoursPerWeek.Mul(decimal.NewFromInt(52)).Div(decimal.NewFromInt(12))
}
