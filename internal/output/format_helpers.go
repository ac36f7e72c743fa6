package output

import (
	"fmt"
	"time"

	money "github.com/glodinasflexwork/dutch-payroll-system-sub000/pkg/decimal"
	"github.com/shopspring/decimal"
)

// FormatCurrency formats a decimal as euros the way a Dutch payslip does ("€ 1.234,56").
// Kept here so it can be reused by multiple formatters and unit tested in isolation.
func FormatCurrency(amount decimal.Decimal) string {
	return money.NewMoneyFromDecimal(amount).Format()
}

// FormatSignedCurrency always shows the sign, for deductions and differences ("-€ 270,00").
func FormatSignedCurrency(amount decimal.Decimal) string {
	return money.NewMoneyFromDecimal(amount).FormatSigned()
}

// FormatPercentage formats a fraction as a percentage with 2 decimals (0.0833 -> "8.33%").
func FormatPercentage(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}

// FormatPeriod renders a year and month as "October 2025".
func FormatPeriod(year, month int) string {
	if month < 1 || month > 12 {
		return fmt.Sprintf("%04d-%02d", year, month)
	}
	return fmt.Sprintf("%s %d", time.Month(month), year)
}

var decimalOne = decimal.NewFromInt(1)

func complianceMark(ok bool) string {
	if ok {
		return "OK"
	}
	return "FAIL"
}
