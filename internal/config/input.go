package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/glodinasflexwork/dutch-payroll-system-sub000/internal/domain"
	"github.com/glodinasflexwork/dutch-payroll-system-sub000/internal/rates"
	"github.com/glodinasflexwork/dutch-payroll-system-sub000/pkg/dateutil"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// PayrollConfiguration is the YAML payroll file: the company, the period to
// run and the employees to run it for.
type PayrollConfiguration struct {
	Company    string             `yaml:"company" validate:"required"`
	Period     PeriodConfig       `yaml:"period"`
	Employees  []EmployeeInput    `yaml:"employees" validate:"required,min=1,unique=ID,dive"`
	RateTables []domain.RateTable `yaml:"rate_tables,omitempty"`
}

// PeriodConfig selects the payroll month. ReferenceDate defaults to the last
// day of the month.
type PeriodConfig struct {
	Year          int    `yaml:"year" validate:"required,gte=1900"`
	Month         int    `yaml:"month" validate:"required,min=1,max=12"`
	ReferenceDate string `yaml:"reference_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// EmployeeInput is one employee as written in the payroll file. Dates are
// YYYY-MM-DD strings; HoursWorked holds timesheet totals keyed by month.
type EmployeeInput struct {
	ID                      string                  `yaml:"id" validate:"required"`
	Name                    string                  `yaml:"name" validate:"required"`
	BirthDate               string                  `yaml:"birth_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ContractType            string                  `yaml:"contract_type,omitempty" validate:"omitempty,oneof=monthly hourly"`
	ContractHoursPerWeek    decimal.Decimal         `yaml:"contract_hours_per_week"`
	AnnualGrossSalary       decimal.Decimal         `yaml:"annual_gross_salary,omitempty"`
	HourlyRate              decimal.Decimal         `yaml:"hourly_rate,omitempty"`
	TaxTable                string                  `yaml:"tax_table,omitempty" validate:"omitempty,oneof=with_credit without_credit"`
	IsFullTime              bool                    `yaml:"is_full_time"`
	StartDate               string                  `yaml:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate                 string                  `yaml:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	HolidayAllowanceRate    decimal.Decimal         `yaml:"holiday_allowance_rate,omitempty"`
	VacationDaysUsed        decimal.Decimal         `yaml:"vacation_days_used,omitempty"`
	ContractualVacationDays decimal.Decimal         `yaml:"contractual_vacation_days,omitempty"`
	HoursWorked             map[int]decimal.Decimal `yaml:"hours_worked,omitempty"`
}

// InputParser handles loading and validating payroll files
type InputParser struct {
	validate *validator.Validate
}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &InputParser{validate: v}
}

// LoadFromFile loads a payroll configuration from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*PayrollConfiguration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a payroll configuration
func (ip *InputParser) Parse(data []byte) (*PayrollConfiguration, error) {
	var cfg PayrollConfiguration
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := ip.ValidateConfiguration(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// ValidateConfiguration checks struct tags first, then the rules tags cannot express
func (ip *InputParser) ValidateConfiguration(cfg *PayrollConfiguration) error {
	if err := ip.validate.Struct(cfg); err != nil {
		return describeValidationError(err)
	}

	for i := range cfg.Employees {
		if err := validateEmployee(&cfg.Employees[i]); err != nil {
			return fmt.Errorf("employee %s: %w", cfg.Employees[i].ID, err)
		}
	}

	for _, rt := range cfg.RateTables {
		if err := rates.Validate(rt); err != nil {
			return fmt.Errorf("rate_tables: %w", err)
		}
	}
	return nil
}

// validateEmployee checks the numeric and date rules of a single employee
func validateEmployee(emp *EmployeeInput) error {
	if !emp.ContractHoursPerWeek.IsPositive() {
		return fmt.Errorf("contract_hours_per_week must be positive")
	}
	if emp.AnnualGrossSalary.IsNegative() {
		return fmt.Errorf("annual_gross_salary cannot be negative")
	}
	if emp.HourlyRate.IsNegative() {
		return fmt.Errorf("hourly_rate cannot be negative")
	}
	if emp.ContractType == string(domain.ContractHourly) && !emp.HourlyRate.IsPositive() {
		return fmt.Errorf("hourly_rate is required for hourly contracts")
	}
	if emp.HolidayAllowanceRate.IsNegative() || emp.HolidayAllowanceRate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("holiday_allowance_rate must be a fraction between 0 and 1")
	}
	if emp.VacationDaysUsed.IsNegative() {
		return fmt.Errorf("vacation_days_used cannot be negative")
	}
	if emp.ContractualVacationDays.IsNegative() {
		return fmt.Errorf("contractual_vacation_days cannot be negative")
	}
	for month, hours := range emp.HoursWorked {
		if month < 1 || month > 12 {
			return fmt.Errorf("hours_worked: month %d outside 1..12", month)
		}
		if hours.IsNegative() {
			return fmt.Errorf("hours_worked: month %d has negative hours", month)
		}
	}

	start, err := dateutil.ParseDate(emp.StartDate)
	if err != nil {
		return fmt.Errorf("start_date: %w", err)
	}
	end, err := dateutil.ParseOptionalDate(emp.EndDate)
	if err != nil {
		return fmt.Errorf("end_date: %w", err)
	}
	if end != nil && end.Before(start) {
		return fmt.Errorf("end_date %s is before start_date %s", emp.EndDate, emp.StartDate)
	}
	return nil
}

// describeValidationError turns validator output into one readable error
func describeValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "PayrollConfiguration.")
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", field))
		case "datetime":
			msgs = append(msgs, fmt.Sprintf("%s must be a date in YYYY-MM-DD form", field))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s]", field, fe.Param()))
		case "unique":
			msgs = append(msgs, fmt.Sprintf("%s must have unique %s values", field, strings.ToLower(fe.Param())))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s=%s", field, fe.Tag(), fe.Param()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}

// Snapshot converts the file representation into the engine's immutable view
func (e EmployeeInput) Snapshot() (domain.EmployeeSnapshot, error) {
	birth, err := dateutil.ParseOptionalDate(e.BirthDate)
	if err != nil {
		return domain.EmployeeSnapshot{}, fmt.Errorf("employee %s birth_date: %w", e.ID, err)
	}
	start, err := dateutil.ParseDate(e.StartDate)
	if err != nil {
		return domain.EmployeeSnapshot{}, fmt.Errorf("employee %s start_date: %w", e.ID, err)
	}
	end, err := dateutil.ParseOptionalDate(e.EndDate)
	if err != nil {
		return domain.EmployeeSnapshot{}, fmt.Errorf("employee %s end_date: %w", e.ID, err)
	}

	return domain.EmployeeSnapshot{
		ID:                      e.ID,
		Name:                    e.Name,
		BirthDate:               birth,
		ContractType:            domain.ContractType(e.ContractType),
		ContractHoursPerWeek:    e.ContractHoursPerWeek,
		AnnualGrossSalary:       e.AnnualGrossSalary,
		HourlyRate:              e.HourlyRate,
		TaxTable:                domain.TaxTable(e.TaxTable),
		IsFullTime:              e.IsFullTime,
		StartDate:               start,
		EndDate:                 end,
		HolidayAllowanceRate:    e.HolidayAllowanceRate,
		VacationDaysUsed:        e.VacationDaysUsed,
		ContractualVacationDays: e.ContractualVacationDays,
	}, nil
}

// ParsedReferenceDate returns the configured reference date, or the zero time when
// the engine should use the end of the period.
func (p PeriodConfig) ParsedReferenceDate() (time.Time, error) {
	if p.ReferenceDate == "" {
		return time.Time{}, nil
	}
	ref, err := dateutil.ParseDate(p.ReferenceDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("period reference_date: %w", err)
	}
	return ref, nil
}

// Input returns the engine input of one employee for the configured period
func (p PeriodConfig) Input(emp EmployeeInput, ref time.Time) domain.PeriodInput {
	in := domain.PeriodInput{Year: p.Year, Month: p.Month, ReferenceDate: ref}
	if h, ok := emp.HoursWorked[p.Month]; ok {
		in.HoursWorked = &h
	}
	return in
}

// Snapshots converts every employee, in file order
func (cfg *PayrollConfiguration) Snapshots() ([]domain.EmployeeSnapshot, error) {
	out := make([]domain.EmployeeSnapshot, 0, len(cfg.Employees))
	for _, e := range cfg.Employees {
		snap, err := e.Snapshot()
		if err != nil {
			return nil, err
		}
		out = append(out, snap)
	}
	return out, nil
}

// FindEmployee returns the employee with the given ID
func (cfg *PayrollConfiguration) FindEmployee(id string) (EmployeeInput, bool) {
	for _, e := range cfg.Employees {
		if e.ID == id {
			return e, true
		}
	}
	return EmployeeInput{}, false
}

// Registry layers the file's rate_tables over base. Without overrides base is
// returned unchanged.
func (cfg *PayrollConfiguration) Registry(base *rates.Registry) (*rates.Registry, error) {
	if len(cfg.RateTables) == 0 {
		return base, nil
	}
	reg, err := base.With(cfg.RateTables...)
	if err != nil {
		return nil, fmt.Errorf("rate_tables: %w", err)
	}
	return reg, nil
}

// CreateExampleConfiguration creates an example payroll file covering a
// salaried adult, a part-time hourly youth and a leaver.
func (ip *InputParser) CreateExampleConfiguration() *PayrollConfiguration {
	return &PayrollConfiguration{
		Company: "Voorbeeld Techniek B.V.",
		Period:  PeriodConfig{Year: 2025, Month: 10},
		Employees: []EmployeeInput{
			{
				ID:                      "EMP-001",
				Name:                    "Sanne de Vries",
				BirthDate:               "1988-04-12",
				ContractType:            string(domain.ContractMonthly),
				ContractHoursPerWeek:    decimal.NewFromInt(40),
				AnnualGrossSalary:       decimal.NewFromInt(54000),
				TaxTable:                string(domain.TaxTableWithCredit),
				IsFullTime:              true,
				StartDate:               "2019-02-01",
				HolidayAllowanceRate:    decimal.RequireFromString("0.08"),
				VacationDaysUsed:        decimal.NewFromInt(12),
				ContractualVacationDays: decimal.NewFromInt(25),
			},
			{
				ID:                   "EMP-002",
				Name:                 "Daan Jansen",
				BirthDate:            "2007-09-03",
				ContractType:         string(domain.ContractHourly),
				ContractHoursPerWeek: decimal.NewFromInt(16),
				HourlyRate:           decimal.RequireFromString("9.50"),
				TaxTable:             string(domain.TaxTableWithoutCredit),
				StartDate:            "2025-03-01",
				HolidayAllowanceRate: decimal.RequireFromString("0.0833"),
				HoursWorked: map[int]decimal.Decimal{
					9:  decimal.NewFromInt(64),
					10: decimal.NewFromInt(70),
				},
			},
			{
				ID:                   "EMP-003",
				Name:                 "Fatima el Amrani",
				BirthDate:            "1975-11-30",
				ContractType:         string(domain.ContractMonthly),
				ContractHoursPerWeek: decimal.NewFromInt(32),
				AnnualGrossSalary:    decimal.NewFromInt(46800),
				TaxTable:             string(domain.TaxTableWithCredit),
				StartDate:            "2015-06-01",
				EndDate:              "2025-10-15",
				HolidayAllowanceRate: decimal.RequireFromString("0.08"),
				VacationDaysUsed:     decimal.NewFromInt(14),
			},
		},
	}
}
