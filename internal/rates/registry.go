package rates

import (
	"errors"
	"fmt"
	"sort"

	"github.com/glodinasflexwork/dutch-payroll-system-sub000/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	// ErrRateTableMissing is returned when no table exists for the requested year
	ErrRateTableMissing = errors.New("rate table missing")
	// ErrMalformedRateTable is returned when a table cannot support a calculation
	ErrMalformedRateTable = errors.New("malformed rate table")
)

// Registry is an immutable, year-keyed set of rate tables. Tables are copied
// on the way in and on the way out, so nothing a caller does to a table it
// passed or received reaches the registry. It is safe for concurrent use.
type Registry struct {
	tables map[int]domain.RateTable
}

// NewRegistry validates and indexes the given tables. A later table for the
// same year replaces an earlier one.
func NewRegistry(tables ...domain.RateTable) (*Registry, error) {
	r := &Registry{tables: make(map[int]domain.RateTable, len(tables))}
	for _, t := range tables {
		if err := Validate(t); err != nil {
			return nil, err
		}
		r.tables[t.Year] = t.Clone()
	}
	return r, nil
}

// With returns a new registry with the given tables added or replaced.
// The receiver is left untouched.
func (r *Registry) With(tables ...domain.RateTable) (*Registry, error) {
	merged := make([]domain.RateTable, 0, len(r.tables)+len(tables))
	for _, y := range r.Years() {
		merged = append(merged, r.tables[y])
	}
	merged = append(merged, tables...)
	return NewRegistry(merged...)
}

// Lookup returns a copy of the table for a tax year
func (r *Registry) Lookup(year int) (domain.RateTable, error) {
	t, ok := r.tables[year]
	if !ok {
		return domain.RateTable{}, fmt.Errorf("%w: no table for tax year %d (available: %v)", ErrRateTableMissing, year, r.Years())
	}
	return t.Clone(), nil
}

// Years lists the tax years in ascending order
func (r *Registry) Years() []int {
	years := make([]int, 0, len(r.tables))
	for y := range r.tables {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// Validate checks the structural preconditions the calculators rely on.
func Validate(t domain.RateTable) error {
	if t.Year < 1900 {
		return fmt.Errorf("%w: invalid year %d", ErrMalformedRateTable, t.Year)
	}
	if err := validateBrackets(t.Brackets); err != nil {
		return fmt.Errorf("%w: year %d: %v", ErrMalformedRateTable, t.Year, err)
	}
	if err := validateContributions("employee", t.EmployeeContributions); err != nil {
		return fmt.Errorf("%w: year %d: %v", ErrMalformedRateTable, t.Year, err)
	}
	if err := validateContributions("employer", t.EmployerContributions); err != nil {
		return fmt.Errorf("%w: year %d: %v", ErrMalformedRateTable, t.Year, err)
	}
	if len(t.MinimumWage.Bands) == 0 {
		return fmt.Errorf("%w: year %d: no minimum wage bands", ErrMalformedRateTable, t.Year)
	}
	if !t.MinimumWage.WeeksPerYear.IsPositive() {
		return fmt.Errorf("%w: year %d: minimum wage weeks per year must be positive", ErrMalformedRateTable, t.Year)
	}
	for _, b := range t.MinimumWage.Bands {
		if b.HourlyRate.IsNegative() || (b.MaxAge != 0 && b.MaxAge < b.MinAge) {
			return fmt.Errorf("%w: year %d: invalid minimum wage band %d-%d", ErrMalformedRateTable, t.Year, b.MinAge, b.MaxAge)
		}
	}
	if !t.StandardWeekHours.IsPositive() {
		return fmt.Errorf("%w: year %d: standard week hours must be positive", ErrMalformedRateTable, t.Year)
	}
	if t.HolidayAllowanceMinimumRate.IsNegative() || t.HolidayAllowanceMinimumRate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("%w: year %d: holiday allowance rate must be a fraction", ErrMalformedRateTable, t.Year)
	}
	return nil
}

func validateBrackets(brackets []domain.TaxBracket) error {
	if len(brackets) == 0 {
		return errors.New("no tax brackets")
	}
	if !brackets[0].Low.IsZero() {
		return fmt.Errorf("first bracket must start at 0, starts at %s", brackets[0].Low)
	}
	for i, b := range brackets {
		if b.Rate.IsNegative() || b.Rate.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("bracket %d: rate %s is not a fraction", i, b.Rate)
		}
		last := i == len(brackets)-1
		if b.IsUnbounded() {
			if !last {
				return fmt.Errorf("bracket %d: only the last bracket may be unbounded", i)
			}
			continue
		}
		if last {
			return fmt.Errorf("bracket %d: last bracket must be unbounded", i)
		}
		if !b.High.GreaterThan(b.Low) {
			return fmt.Errorf("bracket %d: high %s must exceed low %s", i, b.High, b.Low)
		}
		if !brackets[i+1].Low.Equal(*b.High) {
			return fmt.Errorf("bracket %d: gap or overlap between %s and %s", i, b.High, brackets[i+1].Low)
		}
	}
	return nil
}

func validateContributions(side string, contribs []domain.Contribution) error {
	seen := make(map[string]bool, len(contribs))
	for _, c := range contribs {
		if c.Name == "" {
			return fmt.Errorf("%s contribution without a name", side)
		}
		if seen[c.Name] {
			return fmt.Errorf("%s contribution %s listed twice", side, c.Name)
		}
		seen[c.Name] = true
		if c.Rate.IsNegative() || c.Rate.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("%s contribution %s: rate %s is not a fraction", side, c.Name, c.Rate)
		}
		if !c.AnnualCeiling.IsPositive() {
			return fmt.Errorf("%s contribution %s: ceiling must be positive", side, c.Name)
		}
	}
	return nil
}
