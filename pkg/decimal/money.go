package decimal

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Money represents a euro amount with proper financial precision
type Money struct {
	decimal.Decimal
}

// NewMoneyFromDecimal creates a new Money instance from a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// Cents rounds a raw amount to two decimals (half away from zero).
// Payroll amounts are only rounded at the output boundary through this helper.
func Cents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Round rounds the money amount to cents
func (m Money) Round() Money {
	return Money{Cents(m.Decimal)}
}

// String returns the amount with two decimals and a dot separator
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Format renders the amount the way Dutch payslips do: "€ 1.234,56".
func (m Money) Format() string {
	s := m.Round().Decimal.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")

	var grouped strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteRune(r)
	}

	sign := ""
	if m.Round().IsNegative() {
		sign = "-"
	}
	return "€ " + sign + grouped.String() + "," + frac
}

// FormatSigned is Format with an explicit leading sign, for differences: "+€ 12,50".
func (m Money) FormatSigned() string {
	r := m.Round()
	if r.IsNegative() {
		return "-" + Money{r.Abs()}.Format()
	}
	return "+" + r.Format()
}
