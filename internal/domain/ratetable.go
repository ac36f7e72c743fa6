package domain

import (
	"github.com/shopspring/decimal"
)

// RateTable holds the statutory figures for one tax year. Tables are loaded once
// and treated as read-only values; calculators receive them explicitly.
type RateTable struct {
	Year int `yaml:"year" json:"year"`

	// Wage tax brackets, ascending by Low. The last bracket has no upper bound.
	Brackets []TaxBracket `yaml:"brackets" json:"brackets"`

	// General tax credit applied under the "with_credit" tax table
	GeneralTaxCredit GeneralTaxCredit `yaml:"general_tax_credit" json:"general_tax_credit"`

	// Social security contributions withheld from the employee
	EmployeeContributions []Contribution `yaml:"employee_contributions" json:"employee_contributions"`

	// Social security contributions paid on top by the employer
	EmployerContributions []Contribution `yaml:"employer_contributions" json:"employer_contributions"`

	MinimumWage MinimumWageTable `yaml:"minimum_wage" json:"minimum_wage"`

	HolidayAllowanceMinimumRate decimal.Decimal `yaml:"holiday_allowance_minimum_rate" json:"holiday_allowance_minimum_rate"` // 0.0833
	StatutoryVacationWeeks      decimal.Decimal `yaml:"statutory_vacation_weeks" json:"statutory_vacation_weeks"`             // 4 x weekly contract hours
	StandardWeekHours           decimal.Decimal `yaml:"standard_week_hours" json:"standard_week_hours"`                       // 40
	MaxWeeklyHours              decimal.Decimal `yaml:"max_weekly_hours" json:"max_weekly_hours"`                             // 60 (Arbeidstijdenwet)
}

// TaxBracket is one slice of a progressive tax schedule. A nil High means unbounded.
type TaxBracket struct {
	Low  decimal.Decimal  `yaml:"low" json:"low"`
	High *decimal.Decimal `yaml:"high,omitempty" json:"high,omitempty"`
	Rate decimal.Decimal  `yaml:"rate" json:"rate"`
}

// IsUnbounded reports whether the bracket extends to infinity
func (b TaxBracket) IsUnbounded() bool {
	return b.High == nil
}

// GeneralTaxCredit models the loonheffingskorting: a maximum annual credit that
// is reduced by PhaseOutRate for every euro of annual income above PhaseOutThreshold.
type GeneralTaxCredit struct {
	MaxAmount         decimal.Decimal `yaml:"max_amount" json:"max_amount"`
	PhaseOutThreshold decimal.Decimal `yaml:"phase_out_threshold" json:"phase_out_threshold"`
	PhaseOutRate      decimal.Decimal `yaml:"phase_out_rate" json:"phase_out_rate"`
}

// Contribution is a capped-rate social security premium. AnnualCeiling is an
// annual figure; per-period calculations divide it by 12.
type Contribution struct {
	Name          string          `yaml:"name" json:"name"`
	Rate          decimal.Decimal `yaml:"rate" json:"rate"`
	AnnualCeiling decimal.Decimal `yaml:"annual_ceiling" json:"annual_ceiling"`
}

// MonthlyCeiling returns the per-period income cap
func (c Contribution) MonthlyCeiling() decimal.Decimal {
	return c.AnnualCeiling.Div(decimal.NewFromInt(12))
}

// MinimumWageTable holds the age-banded statutory hourly minimum.
// Monthly minimum = HourlyRate x contract hours per week x WeeksPerYear / 12.
type MinimumWageTable struct {
	WeeksPerYear decimal.Decimal   `yaml:"weeks_per_year" json:"weeks_per_year"`
	Bands        []MinimumWageBand `yaml:"bands" json:"bands"`
}

// MinimumWageBand is an inclusive age range. MaxAge 0 means no upper limit.
type MinimumWageBand struct {
	MinAge     int             `yaml:"min_age" json:"min_age"`
	MaxAge     int             `yaml:"max_age" json:"max_age"`
	HourlyRate decimal.Decimal `yaml:"hourly_rate" json:"hourly_rate"`
}

// Contains reports whether age falls inside the band
func (b MinimumWageBand) Contains(age int) bool {
	if age < b.MinAge {
		return false
	}
	return b.MaxAge == 0 || age <= b.MaxAge
}

// MonthlyAmount applies the monthly minimum wage formula
func (t MinimumWageTable) MonthlyAmount(band MinimumWageBand, hoursPerWeek decimal.Decimal) decimal.Decimal {
	return band.HourlyRate.Mul(hoursPerWeek).Mul(t.WeeksPerYear).Div(decimal.NewFromInt(12))
}

// BandForAge returns the band covering age. Ages below the youngest band fall
// into the youngest band; the boolean is false when no band matched exactly.
func (t MinimumWageTable) BandForAge(age int) (MinimumWageBand, bool) {
	for _, b := range t.Bands {
		if b.Contains(age) {
			return b, true
		}
	}
	if len(t.Bands) == 0 {
		return MinimumWageBand{}, false
	}
	youngest := t.Bands[0]
	for _, b := range t.Bands[1:] {
		if b.MinAge < youngest.MinAge {
			youngest = b
		}
	}
	return youngest, false
}

// StatutoryVacationDays returns the yearly statutory minimum in days:
// StatutoryVacationWeeks x weekly hours, expressed in standard days of StandardWeekHours/5.
func (rt RateTable) StatutoryVacationDays(hoursPerWeek decimal.Decimal) decimal.Decimal {
	if rt.StandardWeekHours.IsZero() {
		return decimal.Zero
	}
	hoursPerDay := rt.StandardWeekHours.Div(decimal.NewFromInt(5))
	return rt.StatutoryVacationWeeks.Mul(hoursPerWeek).Div(hoursPerDay)
}

// Clone returns a deep copy that shares no slices or bracket bounds with rt
func (rt RateTable) Clone() RateTable {
	out := rt
	if rt.Brackets != nil {
		out.Brackets = make([]TaxBracket, len(rt.Brackets))
		for i, b := range rt.Brackets {
			if b.High != nil {
				high := *b.High
				b.High = &high
			}
			out.Brackets[i] = b
		}
	}
	out.EmployeeContributions = append([]Contribution(nil), rt.EmployeeContributions...)
	out.EmployerContributions = append([]Contribution(nil), rt.EmployerContributions...)
	out.MinimumWage.Bands = append([]MinimumWageBand(nil), rt.MinimumWage.Bands...)
	return out
}
